// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package spot - the parking spot record and its ledger key layout
//
// Key namespace in the ledger:
//
//   spot_keys                  - index of all listed spots
//                                data: JSON array of spot ids
//   spot_ ++ id                - one spot record
//                                data: JSON object, all fields except the id
//
// the id is never stored inside its record, it is carried by the key
package spot
