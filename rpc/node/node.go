// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package node - RPC information about this daemon
package node

import (
	"context"
	"time"

	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/parkshare/counter"
	"github.com/bitmark-inc/parkshare/ledger"
	"github.com/bitmark-inc/parkshare/rpc/ratelimit"
	"github.com/bitmark-inc/parkshare/rpc/spots"
)

const (
	rateLimitNode = 200
	rateBurstNode = 100

	availabilityTimeout = 5 * time.Second
)

// Node - type for RPC calls
type Node struct {
	Log     *logger.L
	Limiter *rate.Limiter
	Start   time.Time
	Version string
	Gateway ledger.Gateway
	Store   spots.Store
	counter *counter.Counter
}

// New - create the service
func New(log *logger.L, start time.Time, version string, counter *counter.Counter, gateway ledger.Gateway, store spots.Store) *Node {
	return &Node{
		Log:     log,
		Limiter: rate.NewLimiter(rateLimitNode, rateBurstNode),
		Start:   start,
		Version: version,
		Gateway: gateway,
		Store:   store,
		counter: counter,
	}
}

// ---

// InfoArguments - empty arguments for info request
type InfoArguments struct{}

// InfoReply - results from info request
type InfoReply struct {
	Version    string `json:"version"`
	Uptime     string `json:"uptime"`
	RPCs       uint64 `json:"rpcs"`
	Ledger     bool   `json:"ledger"`
	Spots      int    `json:"spots"`
	Refreshing bool   `json:"refreshing"`
}

// Info - return some information about this daemon
func (node *Node) Info(_ *InfoArguments, reply *InfoReply) error {
	if err := ratelimit.Limit(node.Limiter); nil != err {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), availabilityTimeout)
	defer cancel()

	reply.Version = node.Version
	reply.Uptime = time.Since(node.Start).String()
	reply.RPCs = node.counter.Uint64()
	reply.Ledger = node.Gateway.IsAvailable(ctx)
	reply.Spots = len(node.Store.Spots())
	reply.Refreshing = node.Store.Busy()
	return nil
}
