// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package listeners

import (
	"context"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/parkshare/counter"
	"github.com/bitmark-inc/parkshare/fault"
)

const (
	httpLogName      = "http"
	readWriteTimeout = 10 * time.Second
	shutdownTimeout  = 5 * time.Second
)

// HTTPConfiguration - configuration file data for the dashboard
type HTTPConfiguration struct {
	MaximumConnections uint64   `gluamapper:"maximum_connections" json:"maximum_connections"`
	Listen             []string `gluamapper:"listen" json:"listen"`
}

type httpListener struct {
	sync.Mutex

	log       *logger.L
	handler   http.Handler
	networks  []string
	addresses []string
	listeners []net.Listener
	servers   []*http.Server
}

// NewHTTP - plain HTTP listeners for a handler
//
// returns nil with no error if nothing is configured to listen
func NewHTTP(
	configuration *HTTPConfiguration,
	log *logger.L,
	count *counter.Counter,
	handler http.Handler,
) (Listener, error) {
	if 0 == len(configuration.Listen) {
		log.Infof("disable: %s", httpLogName)
		return nil, nil
	}

	if configuration.MaximumConnections < minConnectionCount {
		log.Errorf("invalid %s maximum connection limit: %d", httpLogName, configuration.MaximumConnections)
		return nil, fault.ErrMissingParameters
	}

	h := &httpListener{
		log:     log,
		handler: limitConnections(count, configuration.MaximumConnections, handler),
	}

	for _, listen := range configuration.Listen {
		network, address, err := parseListenAddress(listen)
		if nil != err {
			log.Errorf("%s listen: %q  error: %s", httpLogName, listen, err)
			return nil, err
		}
		h.networks = append(h.networks, network)
		h.addresses = append(h.addresses, address)
	}

	return h, nil
}

// reject requests beyond the limit
func limitConnections(count *counter.Counter, limit uint64, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !count.Acquire(limit) {
			http.Error(w, fault.ErrTooManyConnections.Error(), http.StatusServiceUnavailable)
			return
		}
		defer count.Decrement()
		next.ServeHTTP(w, r)
	})
}

// Serve - open every listen address and serve in the background
func (h *httpListener) Serve() error {
	h.Lock()
	defer h.Unlock()

	for i, address := range h.addresses {
		h.log.Infof("starting server: %s on: %q", httpLogName, address)

		l, err := net.Listen(h.networks[i], address)
		if nil != err {
			h.log.Errorf("%s listen error: %s", httpLogName, err)
			return err
		}

		s := &http.Server{
			Handler:        h.handler,
			ReadTimeout:    readWriteTimeout,
			WriteTimeout:   readWriteTimeout,
			MaxHeaderBytes: 1 << 20,
		}
		h.listeners = append(h.listeners, l)
		h.servers = append(h.servers, s)

		go func() {
			if err := s.Serve(l); nil != err && http.ErrServerClosed != err {
				h.log.Errorf("%s serve error: %s", httpLogName, err)
			}
		}()
	}
	return nil
}

// Addrs - the bound addresses, valid after Serve
func (h *httpListener) Addrs() []net.Addr {
	h.Lock()
	defer h.Unlock()
	addrs := make([]net.Addr, len(h.listeners))
	for i, l := range h.listeners {
		addrs[i] = l.Addr()
	}
	return addrs
}

// Stop - graceful shutdown of every server
func (h *httpListener) Stop() {
	h.Lock()
	defer h.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	for _, s := range h.servers {
		_ = s.Shutdown(ctx)
	}
	h.servers = nil
	h.listeners = nil
}
