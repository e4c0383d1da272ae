// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package store

import (
	"context"
	"sort"

	"github.com/bitmark-inc/parkshare/fault"
	"github.com/bitmark-inc/parkshare/ledger"
	"github.com/bitmark-inc/parkshare/spot"
)

// Unindexed - ids of spot records that the index does not list
//
// these are records whose index append was lost to a concurrent
// writer; they are reported, not repaired
func (s *Store) Unindexed(ctx context.Context) ([]string, error) {
	lister, ok := s.gateway.(ledger.Lister)
	if !ok {
		return nil, fault.ErrCannotListKeys
	}

	ids, err := s.index.Load(ctx)
	if nil != err {
		return nil, err
	}
	indexed := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		indexed[id] = struct{}{}
	}

	keys, err := lister.Keys(ctx)
	if nil != err {
		return nil, err
	}

	missing := []string{}
	for _, key := range keys {
		id, ok := spot.IdFromKey(key)
		if !ok {
			continue
		}
		if _, ok := indexed[id]; !ok {
			missing = append(missing, id)
		}
	}
	sort.Strings(missing)
	return missing, nil
}

// RevealLocation - open the sealed location of a spot
func (s *Store) RevealLocation(sp *spot.Spot) (string, error) {
	return s.sealer.Open(sp.Location)
}
