// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package store

import (
	"context"
	"strings"

	"github.com/bitmark-inc/parkshare/fault"
	"github.com/bitmark-inc/parkshare/record"
	"github.com/bitmark-inc/parkshare/spot"
)

// messages shown while creating
const (
	createPending = "Sealing parking data…"
	createSuccess = "Parking spot listed"
	createFailure = "Submission failed"
)

// Create - list a new spot owned by the input's owner
//
// writes the record then appends its id to the index, the collection
// is reloaded after success
func (s *Store) Create(ctx context.Context, input spot.Input) (*spot.Spot, error) {
	owner := strings.TrimSpace(input.Owner)
	if "" == owner {
		return nil, fault.ErrNotConnected
	}

	ticket := s.tracker.Begin(createPending)

	fields, err := input.Validate()
	if nil != err {
		return nil, s.fail(ticket, createFailure, err)
	}

	id, err := spot.NewId(s.now())
	if nil != err {
		return nil, s.fail(ticket, createFailure, err)
	}

	location, err := s.sealer.Seal(fields.Location)
	if nil != err {
		return nil, s.fail(ticket, createFailure, err)
	}

	sp := spot.Spot{
		Id:             id,
		Location:       location,
		PricePerHour:   fields.PricePerHour,
		AvailableFrom:  fields.AvailableFrom,
		AvailableUntil: fields.AvailableUntil,
		Owner:          owner,
		Status:         spot.Available,
	}

	data, err := record.Encode(&sp)
	if nil != err {
		return nil, s.fail(ticket, createFailure, err)
	}

	receipt, err := s.gateway.SetData(ctx, spot.Key(id), data)
	if nil != err {
		return nil, s.fail(ticket, createFailure, err)
	}
	s.log.Infof("operation: %s  spot: %q written  txId: %s", ticket, id, receipt.TxId)

	if err := s.index.AppendId(ctx, id); nil != err {
		s.log.Errorf("operation: %s  spot: %q written but not indexed", ticket, id)
		return nil, s.fail(ticket, createFailure, err)
	}

	s.tracker.Succeed(ticket, createSuccess)

	s.LoadAll(ctx)

	return &sp, nil
}
