// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"errors"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/parkshare/fault"
	"github.com/bitmark-inc/parkshare/fixtures"
	"github.com/bitmark-inc/parkshare/ledger"
	"github.com/bitmark-inc/parkshare/record"
)

const minimalConfiguration = `
local M = {}
M.data_directory = "."
M.database = {
    backend = "memory",
}
return M
`

const fullConfiguration = `
local M = {}
M.data_directory = "."
M.pidfile = "parkshared.pid"
M.database = {
    backend = "LevelDB",
    name = "spots.leveldb",
}
M.seal = {
    kind = "secretbox",
    key_file = "seal.key",
}
M.signing = {
    key_file = "ledger.sign",
    auto_approve = true,
}
M.tracker = {
    success_delay = "250ms",
    error_delay = "1s",
}
M.rental_delay = "0s"
M.rescan_interval = "10s"
M.client_rpc = {
    maximum_connections = 5,
    listen = { "127.0.0.1:2150" },
}
M.http = {
    listen = { "127.0.0.1:2151" },
}
return M
`

func writeConfiguration(t *testing.T, dir string, content string) string {
	fileName := filepath.Join(dir, "parkshared.conf")
	if err := ioutil.WriteFile(fileName, []byte(content), 0600); nil != err {
		t.Fatalf("write configuration error: %s", err)
	}
	return fileName
}

func tempDir(t *testing.T) string {
	dir, err := ioutil.TempDir("", "parkshared")
	if nil != err {
		t.Fatalf("temp dir error: %s", err)
	}
	return dir
}

func TestGetConfigurationDefaults(t *testing.T) {
	dir := tempDir(t)
	defer os.RemoveAll(dir)

	options, err := getConfiguration(writeConfiguration(t, dir, minimalConfiguration))
	assert.Nil(t, err, "wrong configuration error")

	assert.Equal(t, backendMemory, options.Database.Backend, "wrong backend")
	assert.Equal(t, filepath.Join(dir, defaultLevelDBDirectory, defaultDatabase), options.Database.Name, "wrong database name")
	assert.Equal(t, record.SealObfuscate, options.Seal.Kind, "wrong seal kind")
	assert.Equal(t, "", options.PidFile, "pid file should be optional")
	assert.Equal(t, "", options.Signing.KeyFile, "signing should be optional")
	assert.Equal(t, filepath.Join(dir, defaultCertificateFile), options.ClientRPC.Certificate, "wrong certificate")
	assert.Equal(t, uint64(defaultRPCClients), options.ClientRPC.MaximumConnections, "wrong rpc maximum")
	assert.Equal(t, filepath.Join(dir, defaultLogDirectory), options.Logging.Directory, "wrong log directory")

	timing, err := options.Timing()
	assert.Nil(t, err, "wrong timing error")
	assert.Equal(t, 2*time.Second, timing.SuccessDelay, "wrong success delay")
	assert.Equal(t, 3*time.Second, timing.ErrorDelay, "wrong error delay")
	assert.Equal(t, 3*time.Second, timing.RentalDelay, "wrong rental delay")
	assert.Equal(t, time.Minute, timing.RescanInterval, "wrong rescan interval")

	info, err := os.Stat(options.Logging.Directory)
	assert.Nil(t, err, "log directory not created")
	assert.True(t, info.IsDir(), "log directory is not a directory")
}

func TestGetConfigurationFull(t *testing.T) {
	dir := tempDir(t)
	defer os.RemoveAll(dir)

	options, err := getConfiguration(writeConfiguration(t, dir, fullConfiguration))
	assert.Nil(t, err, "wrong configuration error")

	assert.Equal(t, backendLevelDB, options.Database.Backend, "backend not lower cased")
	assert.Equal(t, filepath.Join(dir, defaultLevelDBDirectory, "spots.leveldb"), options.Database.Name, "wrong database name")
	assert.Equal(t, filepath.Join(dir, "parkshared.pid"), options.PidFile, "wrong pid file")
	assert.Equal(t, filepath.Join(dir, "seal.key"), options.Seal.KeyFile, "wrong seal key file")
	assert.Equal(t, filepath.Join(dir, "ledger.sign"), options.Signing.KeyFile, "wrong signing key file")
	assert.True(t, options.Signing.AutoApprove, "auto approve not set")
	assert.Equal(t, uint64(5), options.ClientRPC.MaximumConnections, "wrong rpc maximum")
	assert.Equal(t, []string{"127.0.0.1:2150"}, options.ClientRPC.Listen, "wrong rpc listen")
	assert.Equal(t, []string{"127.0.0.1:2151"}, options.HTTP.Listen, "wrong http listen")
	assert.Equal(t, uint64(defaultHTTPClients), options.HTTP.MaximumConnections, "http default lost")

	timing, err := options.Timing()
	assert.Nil(t, err, "wrong timing error")
	assert.Equal(t, 250*time.Millisecond, timing.SuccessDelay, "wrong success delay")
	assert.Equal(t, time.Second, timing.ErrorDelay, "wrong error delay")
	assert.Equal(t, time.Duration(0), timing.RentalDelay, "wrong rental delay")
	assert.Equal(t, 10*time.Second, timing.RescanInterval, "wrong rescan interval")
}

func TestGetConfigurationErrors(t *testing.T) {
	dir := tempDir(t)
	defer os.RemoveAll(dir)

	items := []struct {
		name    string
		content string
	}{
		{"backend", `return { data_directory = ".", database = { backend = "postgres" } }`},
		{"seal kind", `return { data_directory = ".", seal = { kind = "fhe" } }`},
		{"seal key", `return { data_directory = ".", seal = { kind = "secretbox" } }`},
		{"data directory", `return { database = { backend = "memory" } }`},
		{"missing directory", `return { data_directory = "/no/such/place" }`},
		{"database path", `return { data_directory = ".", database = { name = "sub/x.leveldb" } }`},
		{"duration", `return { data_directory = ".", rental_delay = "soon" }`},
		{"negative", `return { data_directory = ".", tracker = { error_delay = "-1s" } }`},
		{"not a table", `return 42`},
	}

	for _, item := range items {
		_, err := getConfiguration(writeConfiguration(t, dir, item.content))
		assert.NotNil(t, err, "no error for: %s", item.name)
	}

	_, err := getConfiguration(writeConfiguration(t, dir, items[0].content))
	assert.True(t, errors.Is(err, fault.ErrInvalidDatabaseBackend), "wrong backend error: %v", err)

	_, err = getConfiguration(writeConfiguration(t, dir, items[1].content))
	assert.True(t, errors.Is(err, fault.ErrInvalidSealKind), "wrong seal error: %v", err)
}

type delays struct {
	success time.Duration
	error   time.Duration
	rental  time.Duration
	calls   int
}

func (d *delays) SetDelays(successDelay time.Duration, errorDelay time.Duration) error {
	d.success = successDelay
	d.error = errorDelay
	d.calls += 1
	return nil
}

func (d *delays) SetRentalDelay(rental time.Duration) error {
	d.rental = rental
	d.calls += 1
	return nil
}

func TestReloaderAppliesTiming(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	dir := tempDir(t)
	defer os.RemoveAll(dir)

	fileName := writeConfiguration(t, dir, minimalConfiguration)
	options, err := getConfiguration(fileName)
	assert.Nil(t, err, "wrong configuration error")

	d := &delays{}
	r, err := newReloader(logger.New(fixtures.LogCategory), options, nil, d, d)
	assert.Nil(t, err, "wrong reloader error")

	r.reload()
	assert.Equal(t, 0, d.calls, "unchanged file applied")

	writeConfiguration(t, dir, `
local M = {}
M.data_directory = "."
M.database = { backend = "memory" }
M.tracker = { success_delay = "1s", error_delay = "5s" }
M.rental_delay = "500ms"
return M
`)
	r.reload()
	assert.Equal(t, 2, d.calls, "wrong number of updates")
	assert.Equal(t, time.Second, d.success, "wrong success delay")
	assert.Equal(t, 5*time.Second, d.error, "wrong error delay")
	assert.Equal(t, 500*time.Millisecond, d.rental, "wrong rental delay")

	writeConfiguration(t, dir, `return { data_directory = ".", rental_delay = "bad" }`)
	r.reload()
	assert.Equal(t, 2, d.calls, "invalid file applied")
	assert.Equal(t, 500*time.Millisecond, d.rental, "rental delay changed")
}

func TestOpenGatewayMemory(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	dir := tempDir(t)
	defer os.RemoveAll(dir)

	options, err := getConfiguration(writeConfiguration(t, dir, minimalConfiguration))
	assert.Nil(t, err, "wrong configuration error")

	gateway, err := openGateway(logger.New(fixtures.LogCategory), options)
	assert.Nil(t, err, "wrong gateway error")
	defer gateway.Close()

	_, ok := gateway.(*ledger.Memory)
	assert.True(t, ok, "wrong gateway type")
}

func TestOpenGatewaySigned(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	dir := tempDir(t)
	defer os.RemoveAll(dir)

	_, err := ledger.NewSigningKey(filepath.Join(dir, "ledger.sign"))
	assert.Nil(t, err, "signing key error")

	options, err := getConfiguration(writeConfiguration(t, dir, `
return {
    data_directory = ".",
    database = { backend = "memory" },
    signing = { key_file = "ledger.sign" },
}
`))
	assert.Nil(t, err, "wrong configuration error")

	gateway, err := openGateway(logger.New(fixtures.LogCategory), options)
	assert.Nil(t, err, "wrong gateway error")
	defer gateway.Close()

	_, ok := gateway.(*ledger.Signed)
	assert.True(t, ok, "wrong gateway type")

	// auto_approve is off so every write is refused
	_, err = gateway.SetData(context.Background(), "k", []byte("v"))
	assert.NotNil(t, err, "unapproved write accepted")
}

func TestMakeSealer(t *testing.T) {
	dir := tempDir(t)
	defer os.RemoveAll(dir)

	keyFile := filepath.Join(dir, "seal.key")
	err := record.WriteSecretKeyFile(keyFile)
	assert.Nil(t, err, "seal key error")

	options := &Configuration{
		Seal: SealType{
			Kind:    record.SealSecretBox,
			KeyFile: keyFile,
		},
	}
	sealer, err := makeSealer(options)
	assert.Nil(t, err, "wrong sealer error")

	token, err := sealer.Seal("Lot 7")
	assert.Nil(t, err, "seal error")
	plain, err := sealer.Open(token)
	assert.Nil(t, err, "open error")
	assert.Equal(t, "Lot 7", plain, "wrong plain text")

	options.Seal.KeyFile = filepath.Join(dir, "absent.key")
	_, err = makeSealer(options)
	assert.NotNil(t, err, "missing key accepted")
}
