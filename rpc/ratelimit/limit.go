// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package ratelimit - throttle RPC requests
package ratelimit

import (
	"time"

	"golang.org/x/time/rate"

	"github.com/bitmark-inc/parkshare/fault"
)

// Limit - block until the limiter grants one request
//
// a request the limiter can never grant, such as one against a zero
// burst, fails immediately instead of blocking
func Limit(limiter *rate.Limiter) error {
	reservation := limiter.ReserveN(time.Now(), 1)
	if !reservation.OK() {
		return fault.ErrRateLimiting
	}
	if delay := reservation.Delay(); delay > 0 {
		time.Sleep(delay)
	}
	return nil
}
