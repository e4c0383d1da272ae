// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package store

import (
	"context"
	"strings"
	"time"

	"github.com/bitmark-inc/parkshare/fault"
	"github.com/bitmark-inc/parkshare/record"
	"github.com/bitmark-inc/parkshare/spot"
)

// messages shown while renting
const (
	rentPending = "Processing rental transaction…"
	rentSuccess = "Rental completed"
	rentFailure = "Rental failed"
)

// Rent - mark a spot as occupied
//
// the current status is not checked, an occupied spot is simply
// written as occupied again.  The index is not touched.
func (s *Store) Rent(ctx context.Context, id string, renter string) (*spot.Spot, error) {
	if "" == strings.TrimSpace(renter) {
		return nil, fault.ErrNotConnected
	}

	ticket := s.tracker.Begin(rentPending)

	if "" == id {
		return nil, s.fail(ticket, rentFailure, fault.ErrMissingSpotId)
	}

	s.RLock()
	delay := s.rentalDelay
	s.RUnlock()

	// nothing has been written yet so the wait may be abandoned
	if delay > 0 {
		timer := time.NewTimer(delay)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return nil, s.fail(ticket, rentFailure, ctx.Err())
		}
	}

	data, err := s.gateway.GetData(ctx, spot.Key(id))
	if nil != err {
		return nil, s.fail(ticket, rentFailure, err)
	}
	if 0 == len(data) {
		return nil, s.fail(ticket, rentFailure, fault.ErrSpotNotFound)
	}

	sp, err := record.Decode(id, data)
	if nil != err {
		return nil, s.fail(ticket, rentFailure, err)
	}

	if sp.IsOccupied() {
		s.log.Warnf("operation: %s  spot: %q is already occupied", ticket, id)
	}
	sp.Status = spot.Occupied

	data, err = record.Encode(sp)
	if nil != err {
		return nil, s.fail(ticket, rentFailure, err)
	}

	receipt, err := s.gateway.SetData(ctx, spot.Key(id), data)
	if nil != err {
		return nil, s.fail(ticket, rentFailure, err)
	}
	s.log.Infof("operation: %s  spot: %q rented by: %s  txId: %s", ticket, id, renter, receipt.TxId)

	s.tracker.Succeed(ticket, rentSuccess)

	s.LoadAll(ctx)

	return sp, nil
}
