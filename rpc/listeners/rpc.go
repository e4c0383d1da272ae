// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package listeners

import (
	"crypto/tls"
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/parkshare/counter"
	"github.com/bitmark-inc/parkshare/fault"
)

const (
	rpcLogName = "client_rpc"
)

// RPCConfiguration - configuration file data for RPC setup
type RPCConfiguration struct {
	MaximumConnections uint64   `gluamapper:"maximum_connections" json:"maximum_connections"`
	Listen             []string `gluamapper:"listen" json:"listen"`
	Certificate        string   `gluamapper:"certificate" json:"certificate"`
	PrivateKey         string   `gluamapper:"private_key" json:"private_key"`
}

type rpcListener struct {
	sync.Mutex

	log            *logger.L
	count          *counter.Counter
	server         *rpc.Server
	maxConnections uint64
	tlsConfig      *tls.Config
	networks       []string
	addresses      []string
	listeners      []net.Listener
}

// NewRPC - JSON RPC over TCP, with TLS if tlsConfig is not nil
func NewRPC(
	configuration *RPCConfiguration,
	log *logger.L,
	count *counter.Counter,
	server *rpc.Server,
	tlsConfig *tls.Config,
) (Listener, error) {
	if configuration.MaximumConnections < minConnectionCount {
		log.Errorf("invalid %s maximum connection limit: %d", rpcLogName, configuration.MaximumConnections)
		return nil, fault.ErrMissingParameters
	}

	if 0 == len(configuration.Listen) {
		log.Errorf("missing %s listen", rpcLogName)
		return nil, fault.ErrMissingParameters
	}

	r := &rpcListener{
		log:            log,
		count:          count,
		server:         server,
		maxConnections: configuration.MaximumConnections,
		tlsConfig:      tlsConfig,
	}

	for _, listen := range configuration.Listen {
		network, address, err := parseListenAddress(listen)
		if nil != err {
			log.Errorf("%s listen: %q  error: %s", rpcLogName, listen, err)
			return nil, err
		}
		r.networks = append(r.networks, network)
		r.addresses = append(r.addresses, address)
	}

	if nil == tlsConfig {
		log.Warnf("%s: TLS disabled", rpcLogName)
	}

	return r, nil
}

// Serve - open every listen address and accept in the background
func (r *rpcListener) Serve() error {
	r.Lock()
	defer r.Unlock()

	for i, address := range r.addresses {
		r.log.Infof("starting RPC server: %s", address)

		var l net.Listener
		var err error
		if nil == r.tlsConfig {
			l, err = net.Listen(r.networks[i], address)
		} else {
			l, err = tls.Listen(r.networks[i], address, r.tlsConfig)
		}
		if nil != err {
			r.log.Errorf("rpc server listen error: %s", err)
			return err
		}
		r.listeners = append(r.listeners, l)

		go r.accept(l)
	}
	return nil
}

func (r *rpcListener) accept(listen net.Listener) {
	for {
		conn, err := listen.Accept()
		if nil != err {
			r.log.Infof("rpc accept terminated: %s", err)
			return
		}
		if !r.count.Acquire(r.maxConnections) {
			r.log.Warnf("rejected: %s  error: %s", conn.RemoteAddr(), fault.ErrTooManyConnections)
			_ = conn.Close()
			continue
		}
		go func() {
			r.server.ServeCodec(jsonrpc.NewServerCodec(conn))
			_ = conn.Close()
			r.count.Decrement()
		}()
	}
}

// Addrs - the bound addresses, valid after Serve
func (r *rpcListener) Addrs() []net.Addr {
	r.Lock()
	defer r.Unlock()
	addrs := make([]net.Addr, len(r.listeners))
	for i, l := range r.listeners {
		addrs[i] = l.Addr()
	}
	return addrs
}

// Stop - close the listeners, open connections run to completion
func (r *rpcListener) Stop() {
	r.Lock()
	defer r.Unlock()
	for _, l := range r.listeners {
		_ = l.Close()
	}
	r.listeners = nil
}
