// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package record

import (
	"bytes"
	"encoding/json"

	"github.com/bitmark-inc/parkshare/fault"
	"github.com/bitmark-inc/parkshare/spot"
)

// on-ledger layout of a spot, the id lives in the key
//
// field order is fixed by the struct so packing is deterministic
type packed struct {
	Location       string       `json:"location"`
	PricePerHour   float64      `json:"pricePerHour"`
	AvailableFrom  int64        `json:"availableFrom"`
	AvailableUntil int64        `json:"availableUntil"`
	Owner          string       `json:"owner"`
	Status         *spot.Status `json:"status,omitempty"`
}

// Encode - pack all fields of a spot except its id
func Encode(s *spot.Spot) ([]byte, error) {
	status := s.Status
	p := packed{
		Location:       s.Location,
		PricePerHour:   s.PricePerHour,
		AvailableFrom:  s.AvailableFrom,
		AvailableUntil: s.AvailableUntil,
		Owner:          s.Owner,
		Status:         &status,
	}
	return json.Marshal(p)
}

// Decode - unpack a spot record stored under the given id
//
// a record without a status is available
func Decode(id string, data []byte) (*spot.Spot, error) {
	// only an object is a record, null would decode as a zero spot
	trimmed := bytes.TrimSpace(data)
	if 0 == len(trimmed) || '{' != trimmed[0] {
		return nil, fault.ErrMalformedRecord
	}

	var p packed
	if err := json.Unmarshal(data, &p); nil != err {
		return nil, fault.ErrMalformedRecord
	}

	status := spot.Available
	if nil != p.Status {
		status = *p.Status
	}

	return &spot.Spot{
		Id:             id,
		Location:       p.Location,
		PricePerHour:   p.PricePerHour,
		AvailableFrom:  p.AvailableFrom,
		AvailableUntil: p.AvailableUntil,
		Owner:          p.Owner,
		Status:         status,
	}, nil
}

// EncodeIndex - pack the list of spot ids
func EncodeIndex(ids []string) ([]byte, error) {
	if nil == ids {
		ids = []string{}
	}
	return json.Marshal(ids)
}

// DecodeIndex - unpack the list of spot ids
//
// empty or malformed data gives an empty list
func DecodeIndex(data []byte) []string {
	ids, err := DecodeIndexStrict(data)
	if nil != err {
		return []string{}
	}
	return ids
}

// DecodeIndexStrict - unpack the list of spot ids reporting malformed data
//
// empty data is a valid empty list
func DecodeIndexStrict(data []byte) ([]string, error) {
	if 0 == len(bytes.TrimSpace(data)) {
		return []string{}, nil
	}
	var ids []string
	if err := json.Unmarshal(data, &ids); nil != err {
		return nil, fault.ErrMalformedIndex
	}
	if nil == ids {
		ids = []string{}
	}
	return ids, nil
}
