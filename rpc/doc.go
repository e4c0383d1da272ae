// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package rpc - set up and handle all incoming requests from clients
//
// JSON RPC over TCP serves the Spots and Node services; standard
// golang RPC clients with the jsonrpc codec can call them.  A plain
// HTTP listener serves the read-only dashboard.
package rpc
