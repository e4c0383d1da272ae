// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package record - pack and unpack spot records and the spot index
//
// records are UTF-8 JSON, which is what other ledger clients expect
// to find under the same keys
package record
