// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/parkshare/ledger"
	"github.com/bitmark-inc/parkshare/record"
)

// open the configured ledger backend, wrapped in a signer when a
// signing key is configured
func openGateway(log *logger.L, options *Configuration) (ledger.Gateway, error) {

	var gateway ledger.Gateway

	switch options.Database.Backend {
	case backendMemory:
		log.Warn("memory ledger: all data is lost on exit")
		gateway = ledger.NewMemory()

	case backendRedis:
		log.Infof("redis ledger: %s  db: %d", options.Database.RedisAddress, options.Database.RedisDB)
		gateway = ledger.NewRedis(options.RedisConfiguration())

	default:
		log.Infof("leveldb ledger: %q", options.Database.Name)
		db, err := ledger.NewLevelDB(options.Database.Name, false)
		if nil != err {
			return nil, err
		}
		gateway = db
	}

	if "" == options.Signing.KeyFile {
		return gateway, nil
	}

	privateKey, err := ledger.ReadSigningKey(options.Signing.KeyFile)
	if nil != err {
		gateway.Close()
		return nil, err
	}

	approve := ledger.AutoApprove
	if !options.Signing.AutoApprove {
		approve = func(key string, value []byte) bool {
			log.Warnf("write to: %q not approved", key)
			return false
		}
	}

	signer, err := ledger.NewKeySigner(privateKey, approve)
	if nil != err {
		gateway.Close()
		return nil, err
	}
	log.Infof("signing ledger writes with: %x", signer.PublicKey())

	return ledger.NewSigned(logger.New("signer"), gateway, signer), nil
}

func makeSealer(options *Configuration) (record.Sealer, error) {
	var key []byte
	if record.SealSecretBox == options.Seal.Kind {
		k, err := record.ReadSecretKeyFile(options.Seal.KeyFile)
		if nil != err {
			return nil, err
		}
		key = k
	}
	return record.NewSealer(options.Seal.Kind, key)
}
