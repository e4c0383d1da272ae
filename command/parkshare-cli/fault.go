// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/bitmark-inc/parkshare/fault"
)

// common errors - keep in alphabetic order
const (
	ErrAccountRequired  = fault.InvalidError("account is required, use --account or PARKSHARE_ACCOUNT")
	ErrOwnSpot          = fault.InvalidError("cannot rent a spot you own")
	ErrSpotNotAvailable = fault.InvalidError("spot is not available")
)
