// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/parkshare/configuration"
	"github.com/bitmark-inc/parkshare/fault"
	"github.com/bitmark-inc/parkshare/ledger"
	"github.com/bitmark-inc/parkshare/record"
	"github.com/bitmark-inc/parkshare/rpc/listeners"
	"github.com/bitmark-inc/parkshare/store"
	"github.com/bitmark-inc/parkshare/tracker"
)

const (
	defaultDataDirectory = "" // this will error; use "." for the same directory as the config file

	defaultKeyFile         = "rpc.key"
	defaultCertificateFile = "rpc.crt"

	defaultLevelDBDirectory = "data"
	defaultDatabase         = "parkshare.leveldb"
	defaultRedisAddress     = "127.0.0.1:6379"
	defaultRedisPrefix      = "parkshare:"

	defaultLogDirectory = "log"
	defaultLogFile      = "parkshared.log"
	defaultLogCount     = 10          //  number of log files retained
	defaultLogSize      = 1024 * 1024 // rotate when <logfile> exceeds this size

	defaultRPCClients  = 10
	defaultHTTPClients = 50

	defaultRescanInterval = "1m"
)

// database backends
const (
	backendMemory  = "memory"
	backendLevelDB = "leveldb"
	backendRedis   = "redis"
)

// LoglevelMap - tag to level
type LoglevelMap map[string]string

var (
	defaultLogLevels = LoglevelMap{
		logger.DefaultTag: "critical",
	}
)

// DatabaseType - ledger backend selection
type DatabaseType struct {
	Backend       string `gluamapper:"backend" json:"backend"`
	Directory     string `gluamapper:"directory" json:"directory"`
	Name          string `gluamapper:"name" json:"name"`
	RedisAddress  string `gluamapper:"redis_address" json:"redis_address"`
	RedisPassword string `gluamapper:"redis_password" json:"-"`
	RedisDB       int    `gluamapper:"redis_db" json:"redis_db"`
	RedisPrefix   string `gluamapper:"redis_prefix" json:"redis_prefix"`
}

// SealType - how private notes are sealed
type SealType struct {
	Kind    string `gluamapper:"kind" json:"kind"`
	KeyFile string `gluamapper:"key_file" json:"key_file"`
}

// SigningType - optional signing of ledger writes
type SigningType struct {
	KeyFile     string `gluamapper:"key_file" json:"key_file"`
	AutoApprove bool   `gluamapper:"auto_approve" json:"auto_approve"`
}

// TrackerType - status display times
type TrackerType struct {
	SuccessDelay string `gluamapper:"success_delay" json:"success_delay"`
	ErrorDelay   string `gluamapper:"error_delay" json:"error_delay"`
}

// Configuration - the daemon configuration file
type Configuration struct {
	DataDirectory  string                      `gluamapper:"data_directory" json:"data_directory"`
	PidFile        string                      `gluamapper:"pidfile" json:"pidfile"`
	Database       DatabaseType                `gluamapper:"database" json:"database"`
	Seal           SealType                    `gluamapper:"seal" json:"seal"`
	Signing        SigningType                 `gluamapper:"signing" json:"signing"`
	Tracker        TrackerType                 `gluamapper:"tracker" json:"tracker"`
	RentalDelay    string                      `gluamapper:"rental_delay" json:"rental_delay"`
	RescanInterval string                      `gluamapper:"rescan_interval" json:"rescan_interval"`
	ClientRPC      listeners.RPCConfiguration  `gluamapper:"client_rpc" json:"client_rpc"`
	HTTP           listeners.HTTPConfiguration `gluamapper:"http" json:"http"`
	Logging        logger.Configuration        `gluamapper:"logging" json:"logging"`

	fileName string
}

// Timing - parsed durations from the configuration
type Timing struct {
	SuccessDelay   time.Duration
	ErrorDelay     time.Duration
	RentalDelay    time.Duration
	RescanInterval time.Duration
}

func getConfiguration(configurationFileName string) (*Configuration, error) {

	configurationFileName, err := filepath.Abs(filepath.Clean(configurationFileName))
	if nil != err {
		return nil, err
	}

	dataDirectory, _ := filepath.Split(configurationFileName)

	options := &Configuration{

		DataDirectory: defaultDataDirectory,
		PidFile:       "", // no PidFile by default

		Database: DatabaseType{
			Backend:      backendLevelDB,
			Directory:    defaultLevelDBDirectory,
			Name:         defaultDatabase,
			RedisAddress: defaultRedisAddress,
			RedisPrefix:  defaultRedisPrefix,
		},

		Seal: SealType{
			Kind: record.SealObfuscate,
		},

		Tracker: TrackerType{
			SuccessDelay: tracker.DefaultSuccessDelay.String(),
			ErrorDelay:   tracker.DefaultErrorDelay.String(),
		},

		RentalDelay:    store.DefaultRentalDelay.String(),
		RescanInterval: defaultRescanInterval,

		ClientRPC: listeners.RPCConfiguration{
			MaximumConnections: defaultRPCClients,
			Certificate:        defaultCertificateFile,
			PrivateKey:         defaultKeyFile,
		},

		HTTP: listeners.HTTPConfiguration{
			MaximumConnections: defaultHTTPClients,
		},

		Logging: logger.Configuration{
			Directory: defaultLogDirectory,
			File:      defaultLogFile,
			Size:      defaultLogSize,
			Count:     defaultLogCount,
			Levels:    defaultLogLevels,
		},

		fileName: configurationFileName,
	}

	if err := configuration.ParseConfigurationFile(configurationFileName, options); nil != err {
		return nil, err
	}

	options.Database.Backend = strings.ToLower(options.Database.Backend)
	switch options.Database.Backend {
	case backendMemory, backendLevelDB, backendRedis:
	default:
		return nil, fmt.Errorf("Database: backend %q: %w", options.Database.Backend, fault.ErrInvalidDatabaseBackend)
	}

	options.Seal.Kind = strings.ToLower(options.Seal.Kind)
	switch options.Seal.Kind {
	case record.SealObfuscate:
	case record.SealSecretBox:
		if "" == options.Seal.KeyFile {
			return nil, fmt.Errorf("Seal: kind %q requires a key_file", options.Seal.Kind)
		}
	default:
		return nil, fmt.Errorf("Seal: kind %q: %w", options.Seal.Kind, fault.ErrInvalidSealKind)
	}

	if "" == options.DataDirectory || "~" == options.DataDirectory {
		return nil, fmt.Errorf("Path: %q is not a valid directory", options.DataDirectory)
	} else if "." == options.DataDirectory {
		options.DataDirectory = dataDirectory // same directory as the configuration file
	} else {
		options.DataDirectory = filepath.Clean(options.DataDirectory)
	}

	if fileInfo, err := os.Stat(options.DataDirectory); nil != err {
		return nil, err
	} else if !fileInfo.IsDir() {
		return nil, fmt.Errorf("Path: %q is not a directory", options.DataDirectory)
	}

	mustBeAbsolute := []*string{
		&options.Database.Directory,
		&options.ClientRPC.Certificate,
		&options.ClientRPC.PrivateKey,
		&options.Logging.Directory,
	}
	for _, f := range mustBeAbsolute {
		*f = configuration.EnsureAbsolute(options.DataDirectory, *f)
	}

	optionalAbsolute := []*string{
		&options.PidFile,
		&options.Seal.KeyFile,
		&options.Signing.KeyFile,
	}
	for _, f := range optionalAbsolute {
		if "" != *f {
			*f = configuration.EnsureAbsolute(options.DataDirectory, *f)
		}
	}

	mustNotBePaths := [][2]*string{
		{&options.Database.Name, &options.Database.Directory},
		{&options.Logging.File, nil},
	}
	for _, f := range mustNotBePaths {
		switch filepath.Dir(*f[0]) {
		case "", ".":
			if nil != f[1] {
				*f[0] = configuration.EnsureAbsolute(*f[1], *f[0])
			}
		default:
			return nil, fmt.Errorf("Files: %q is not plain name", *f[0])
		}
	}

	for _, d := range []*string{
		&options.Database.Directory,
		&options.Logging.Directory,
	} {
		if err := os.MkdirAll(*d, 0700); nil != err {
			return nil, err
		}
	}

	if _, err := options.Timing(); nil != err {
		return nil, err
	}

	return options, nil
}

// Timing - parse all duration strings
func (c *Configuration) Timing() (*Timing, error) {
	t := &Timing{}
	durations := []struct {
		name  string
		value string
		d     *time.Duration
	}{
		{"tracker.success_delay", c.Tracker.SuccessDelay, &t.SuccessDelay},
		{"tracker.error_delay", c.Tracker.ErrorDelay, &t.ErrorDelay},
		{"rental_delay", c.RentalDelay, &t.RentalDelay},
		{"rescan_interval", c.RescanInterval, &t.RescanInterval},
	}
	for _, item := range durations {
		d, err := time.ParseDuration(item.value)
		if nil != err {
			return nil, fmt.Errorf("%s: %s", item.name, err)
		}
		if d < 0 {
			return nil, fmt.Errorf("%s: %q must not be negative", item.name, item.value)
		}
		*item.d = d
	}
	return t, nil
}

// RedisConfiguration - ledger settings for the redis backend
func (c *Configuration) RedisConfiguration() ledger.RedisConfiguration {
	return ledger.RedisConfiguration{
		Address:  c.Database.RedisAddress,
		Password: c.Database.RedisPassword,
		DB:       c.Database.RedisDB,
		Prefix:   c.Database.RedisPrefix,
	}
}
