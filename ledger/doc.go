// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package ledger - key/value gateway to the external ledger
//
// each key is read and written independently, there is no
// transaction spanning more than one key and no compare-and-swap
//
// backends:
//
//   memory   - process local, for testing and demonstration
//   leveldb  - on-disk database
//   redis    - shared server, allows several daemons to see the same spots
//
// any backend can be wrapped by a signer so that every write must be
// approved before it is issued
package ledger
