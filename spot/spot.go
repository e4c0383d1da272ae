// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package spot

import (
	"crypto/rand"
	"fmt"
	"strings"
	"time"

	"github.com/mr-tron/base58"
)

// ledger keys
const (
	IndexKey  = "spot_keys"
	KeyPrefix = "spot_"
)

const idSuffixLength = 7

// Spot - one listable parking slot
type Spot struct {
	Id             string  `json:"id"`
	Location       string  `json:"location"`
	PricePerHour   float64 `json:"pricePerHour"`
	AvailableFrom  int64   `json:"availableFrom"`
	AvailableUntil int64   `json:"availableUntil"`
	Owner          string  `json:"owner"`
	Status         Status  `json:"status"`
}

// Key - the ledger key holding the record for an id
func Key(id string) string {
	return KeyPrefix + id
}

// IdFromKey - recover the id from a record key
func IdFromKey(key string) (string, bool) {
	if !strings.HasPrefix(key, KeyPrefix) || IndexKey == key {
		return "", false
	}
	return strings.TrimPrefix(key, KeyPrefix), true
}

// NewId - time based id with a random suffix
//
// format: <milliseconds since epoch>-<7 random base58 characters>
func NewId(now time.Time) (string, error) {
	random := make([]byte, 8)
	if _, err := rand.Read(random); nil != err {
		return "", err
	}
	suffix := base58.Encode(random)
	if len(suffix) > idSuffixLength {
		suffix = suffix[:idSuffixLength]
	}
	return fmt.Sprintf("%d-%s", now.UnixNano()/int64(time.Millisecond), suffix), nil
}

// IsOccupied - detect a rented spot
func (s *Spot) IsOccupied() bool {
	return Occupied == s.Status
}
