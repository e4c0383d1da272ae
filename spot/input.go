// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package spot

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/bitmark-inc/parkshare/fault"
)

// Input - new spot data as entered by a user
type Input struct {
	Location       string `json:"location"`
	PricePerHour   string `json:"pricePerHour"`
	AvailableFrom  string `json:"availableFrom"`
	AvailableUntil string `json:"availableUntil"`
	Owner          string `json:"owner"`
}

// Fields - parsed form of an input
type Fields struct {
	Location       string
	PricePerHour   float64
	AvailableFrom  int64
	AvailableUntil int64
}

// accepted date layouts, most specific first
var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// Validate - check required fields are present and parse them
//
// presence is checked for every field before any parsing so the
// first missing field is always reported
func (in *Input) Validate() (*Fields, error) {
	location := strings.TrimSpace(in.Location)
	price := strings.TrimSpace(in.PricePerHour)
	from := strings.TrimSpace(in.AvailableFrom)
	until := strings.TrimSpace(in.AvailableUntil)

	switch {
	case "" == location:
		return nil, fault.ErrMissingLocation
	case "" == price:
		return nil, fault.ErrMissingPrice
	case "" == from:
		return nil, fault.ErrMissingFromTime
	case "" == until:
		return nil, fault.ErrMissingUntilTime
	}

	pricePerHour, err := strconv.ParseFloat(price, 64)
	if nil != err || math.IsNaN(pricePerHour) || math.IsInf(pricePerHour, 0) || pricePerHour < 0 {
		return nil, fault.ErrInvalidPrice
	}

	availableFrom, ok := parseTime(from)
	if !ok {
		return nil, fault.ErrInvalidFromTime
	}
	availableUntil, ok := parseTime(until)
	if !ok {
		return nil, fault.ErrInvalidUntilTime
	}

	return &Fields{
		Location:       location,
		PricePerHour:   pricePerHour,
		AvailableFrom:  availableFrom,
		AvailableUntil: availableUntil,
	}, nil
}

// epoch seconds are accepted directly, otherwise one of the layouts in UTC
func parseTime(s string) (int64, bool) {
	if n, err := strconv.ParseInt(s, 10, 64); nil == err {
		return n, true
	}
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); nil == err {
			return t.Unix(), true
		}
	}
	return 0, false
}
