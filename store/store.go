// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package store

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/parkshare/fault"
	"github.com/bitmark-inc/parkshare/index"
	"github.com/bitmark-inc/parkshare/ledger"
	"github.com/bitmark-inc/parkshare/record"
	"github.com/bitmark-inc/parkshare/spot"
	"github.com/bitmark-inc/parkshare/tracker"
)

// DefaultRentalDelay - simulated processing time before a rental write
const DefaultRentalDelay = 3 * time.Second

// Store - the spot collection and the operations on it
type Store struct {
	sync.RWMutex

	log     *logger.L
	gateway ledger.Gateway
	index   *index.Manager
	sealer  record.Sealer
	tracker *tracker.Tracker
	now     func() time.Time

	rentalDelay time.Duration
	spots       []spot.Spot
	indexCache  []string

	busy int32
}

// New - create an empty store
func New(log *logger.L, gateway ledger.Gateway, sealer record.Sealer, tr *tracker.Tracker, rentalDelay time.Duration) (*Store, error) {
	if rentalDelay < 0 {
		return nil, fault.ErrInvalidDelay
	}
	return &Store{
		log:         log,
		gateway:     gateway,
		index:       index.New(log, gateway),
		sealer:      sealer,
		tracker:     tr,
		now:         time.Now,
		rentalDelay: rentalDelay,
		spots:       []spot.Spot{},
		indexCache:  []string{},
	}, nil
}

// Spots - copy of the current collection, newest availability first
func (s *Store) Spots() []spot.Spot {
	s.RLock()
	defer s.RUnlock()
	result := make([]spot.Spot, len(s.spots))
	copy(result, s.spots)
	return result
}

// Spot - one spot from the current collection
func (s *Store) Spot(id string) (*spot.Spot, error) {
	s.RLock()
	defer s.RUnlock()
	for i := range s.spots {
		if id == s.spots[i].Id {
			found := s.spots[i]
			return &found, nil
		}
	}
	return nil, fault.ErrSpotNotFound
}

// IndexIds - the index as read by the last load
func (s *Store) IndexIds() []string {
	s.RLock()
	defer s.RUnlock()
	result := make([]string, len(s.indexCache))
	copy(result, s.indexCache)
	return result
}

// Status - the transaction status to display
func (s *Store) Status() tracker.Status {
	return s.tracker.Status()
}

// Busy - true while a Refresh is running
func (s *Store) Busy() bool {
	return 0 != atomic.LoadInt32(&s.busy)
}

// SetRentalDelay - change the simulated rental processing time
func (s *Store) SetRentalDelay(d time.Duration) error {
	if d < 0 {
		return fault.ErrInvalidDelay
	}
	s.Lock()
	s.rentalDelay = d
	s.Unlock()
	return nil
}

// Reset - forget the session, called on disconnect
func (s *Store) Reset() {
	s.Lock()
	s.spots = []spot.Spot{}
	s.indexCache = []string{}
	s.Unlock()
	s.tracker.Reset()
	s.log.Info("session reset")
}

// Refresh - reload unless a refresh is already running
//
// returns false if the request was suppressed
func (s *Store) Refresh(ctx context.Context) bool {
	if !atomic.CompareAndSwapInt32(&s.busy, 0, 1) {
		s.log.Debug("refresh already in progress")
		return false
	}
	defer atomic.StoreInt32(&s.busy, 0)

	s.LoadAll(ctx)
	return true
}

// LoadAll - read every indexed spot from the ledger
//
// individual fetch or decode failures are logged and skipped, the
// load itself never fails.  An unavailable ledger or a failed index
// read leaves the current collection in place; a malformed index is
// empty.  Loads are not serialised; the last to finish
// sets the collection.
func (s *Store) LoadAll(ctx context.Context) []spot.Spot {
	log := s.log

	if !s.gateway.IsAvailable(ctx) {
		log.Error("ledger is not available")
		return s.Spots()
	}

	// a failed index read keeps what is already shown
	ids, err := s.index.Load(ctx)
	if nil != err {
		log.Errorf("read index error: %s", err)
		return s.Spots()
	}

	list := make([]spot.Spot, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			log.Debugf("duplicate index entry: %q", id)
			continue
		}
		seen[id] = struct{}{}

		data, err := s.gateway.GetData(ctx, spot.Key(id))
		if nil != err {
			log.Errorf("load spot: %q  error: %s", id, err)
			continue
		}
		if 0 == len(data) {
			log.Warnf("load spot: %q  no record", id)
			continue
		}

		sp, err := record.Decode(id, data)
		if nil != err {
			log.Errorf("parse spot: %q  error: %s", id, err)
			continue
		}
		list = append(list, *sp)
	}

	sort.SliceStable(list, func(i, j int) bool {
		return list[i].AvailableFrom > list[j].AvailableFrom
	})

	s.Lock()
	s.spots = list
	s.indexCache = ids
	s.Unlock()

	log.Debugf("loaded: %d spots from %d index entries", len(list), len(ids))

	result := make([]spot.Spot, len(list))
	copy(result, list)
	return result
}

// report a failure to the tracker and the caller
func (s *Store) fail(ticket tracker.Ticket, prefix string, err error) error {
	s.log.Warnf("operation: %s  %s: %s", ticket, prefix, err)
	s.tracker.Fail(ticket, prefix, err)
	return err
}
