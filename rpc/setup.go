// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpc

import (
	"crypto/tls"
	"net"
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/parkshare/configuration"
	"github.com/bitmark-inc/parkshare/counter"
	"github.com/bitmark-inc/parkshare/fault"
	"github.com/bitmark-inc/parkshare/ledger"
	"github.com/bitmark-inc/parkshare/rpc/certificate"
	"github.com/bitmark-inc/parkshare/rpc/httpapi"
	"github.com/bitmark-inc/parkshare/rpc/listeners"
	"github.com/bitmark-inc/parkshare/rpc/server"
	"github.com/bitmark-inc/parkshare/rpc/spots"
)

const (
	tlsName = "client_rpc"
)

// globals
type rpcData struct {
	sync.RWMutex

	log *logger.L

	rpcListener  listeners.Listener
	httpListener listeners.Listener

	// set once during initialise
	initialised bool
}

// global data
var globalData rpcData

var (
	connectionCountRPC  counter.Counter
	connectionCountHTTP counter.Counter
)

// Initialise - start the RPC and HTTP listeners
func Initialise(rpcConfiguration *listeners.RPCConfiguration, httpConfiguration *listeners.HTTPConfiguration, version string, gateway ledger.Gateway, store spots.Store) error {
	globalData.Lock()
	defer globalData.Unlock()

	if globalData.initialised {
		return fault.ErrAlreadyInitialised
	}

	log := logger.New("rpc")
	globalData.log = log
	log.Info("starting…")

	var tlsConfig *tls.Config
	if "" != rpcConfiguration.Certificate && configuration.FileExists(rpcConfiguration.Certificate) {
		c, fingerprint, err := certificate.Get(log, tlsName, rpcConfiguration.Certificate, rpcConfiguration.PrivateKey)
		if nil != err {
			return err
		}
		log.Infof("%s: SHA3-256 fingerprint: %x", tlsName, fingerprint)
		tlsConfig = c
	}

	rpcListener, err := listeners.NewRPC(
		rpcConfiguration,
		log,
		&connectionCountRPC,
		server.Create(log, version, &connectionCountRPC, gateway, store),
		tlsConfig,
	)
	if nil != err {
		return err
	}
	if err := rpcListener.Serve(); nil != err {
		rpcListener.Stop()
		return err
	}

	httpListener, err := listeners.NewHTTP(
		httpConfiguration,
		log,
		&connectionCountHTTP,
		httpapi.New(log, store),
	)
	if nil != err {
		rpcListener.Stop()
		return err
	}
	if nil != httpListener {
		if err := httpListener.Serve(); nil != err {
			httpListener.Stop()
			rpcListener.Stop()
			return err
		}
	}

	globalData.rpcListener = rpcListener
	globalData.httpListener = httpListener

	// all data initialised
	globalData.initialised = true

	return nil
}

// Addrs - addresses bound by the RPC and HTTP listeners
func Addrs() (rpcAddrs []net.Addr, httpAddrs []net.Addr) {
	globalData.RLock()
	defer globalData.RUnlock()

	if nil != globalData.rpcListener {
		rpcAddrs = globalData.rpcListener.Addrs()
	}
	if nil != globalData.httpListener {
		httpAddrs = globalData.httpListener.Addrs()
	}
	return
}

// Finalise - stop all listeners
func Finalise() error {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.ErrNotInitialised
	}

	globalData.log.Info("shutting down…")
	globalData.log.Flush()

	globalData.rpcListener.Stop()
	if nil != globalData.httpListener {
		globalData.httpListener.Stop()
	}
	globalData.rpcListener = nil
	globalData.httpListener = nil

	// finally...
	globalData.initialised = false

	globalData.log.Info("finished")
	globalData.log.Flush()

	return nil
}
