// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package store - list, create and rent parking spots
//
// the store owns the in-memory collection of spots and the cached
// index for the session; the ledger owns durable storage.
//
// a create is two independent writes, record then index.  If the
// index write fails the record is orphaned: it exists under its key
// but LoadAll cannot see it.  This is not retried.
//
// a rent overwrites the status unconditionally, two renters racing on
// one spot both succeed.
package store
