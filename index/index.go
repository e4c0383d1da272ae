// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package index - maintain the single well known list of spot ids
//
// the ledger has no multi-key transaction and no compare-and-swap so
// Append is a read-modify-write of the whole list: two appends that
// read the same prior list will each write back a list missing the
// other's id.  Readers must also tolerate duplicate ids.
package index

import (
	"context"
	"fmt"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/parkshare/ledger"
	"github.com/bitmark-inc/parkshare/record"
	"github.com/bitmark-inc/parkshare/spot"
)

// Manager - reads and appends the spot index
type Manager struct {
	log     *logger.L
	gateway ledger.Gateway
}

// New - index manager on a gateway
func New(log *logger.L, gateway ledger.Gateway) *Manager {
	return &Manager{
		log:     log,
		gateway: gateway,
	}
}

// ListIds - the current list of ids
//
// an absent, unreadable or malformed index is an empty list
func (m *Manager) ListIds(ctx context.Context) []string {
	ids, err := m.Load(ctx)
	if nil != err {
		m.log.Errorf("read index error: %s", err)
		return []string{}
	}
	return ids
}

// Load - read the index, reporting gateway failures
//
// malformed data is logged and treated as empty
func (m *Manager) Load(ctx context.Context) ([]string, error) {
	data, err := m.gateway.GetData(ctx, spot.IndexKey)
	if nil != err {
		return nil, err
	}
	ids, err := record.DecodeIndexStrict(data)
	if nil != err {
		m.log.Errorf("parse index error: %s", err)
		return []string{}, nil
	}
	return ids, nil
}

// Save - write back the whole index
func (m *Manager) Save(ctx context.Context, ids []string) (*ledger.Receipt, error) {
	data, err := record.EncodeIndex(ids)
	if nil != err {
		return nil, err
	}
	return m.gateway.SetData(ctx, spot.IndexKey, data)
}

// AppendId - add an id to the end of the index
//
// no de-duplication and not atomic, see package comment
func (m *Manager) AppendId(ctx context.Context, id string) error {
	ids, err := m.Load(ctx)
	if nil != err {
		return fmt.Errorf("read index: %w", err)
	}

	ids = append(ids, id)

	receipt, err := m.Save(ctx, ids)
	if nil != err {
		return err
	}

	m.log.Debugf("index: %d ids  txId: %s", len(ids), receipt.TxId)
	return nil
}
