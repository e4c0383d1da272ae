// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package listeners - network listeners for the RPC and HTTP services
package listeners

import (
	"net"
	"strings"

	"github.com/bitmark-inc/parkshare/fault"
)

const (
	minConnectionCount = 1
)

// Listener - a started set of network listeners
type Listener interface {
	Serve() error
	Addrs() []net.Addr
	Stop()
}

// convert a configured listen string to network and address
//
// "*:PORT" listens on every interface
func parseListenAddress(listen string) (string, string, error) {
	if strings.HasPrefix(listen, "*:") {
		return "tcp", "[::]:" + strings.TrimPrefix(listen, "*:"), nil
	}

	host, port, err := net.SplitHostPort(listen)
	if nil != err {
		return "", "", err
	}

	ip := net.ParseIP(host)
	if nil == ip {
		return "", "", fault.ErrInvalidIpAddress
	}

	if nil != ip.To4() {
		return "tcp4", net.JoinHostPort(host, port), nil
	}
	return "tcp6", net.JoinHostPort(host, port), nil
}
