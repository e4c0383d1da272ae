// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package main - command line client for parkshared
//
// every command connects to the daemon's JSON RPC port; the account
// given with --account stands in for a connected wallet
package main
