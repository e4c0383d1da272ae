// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"context"
	"sort"

	"github.com/patrickmn/go-cache"
)

// Memory - ledger held in process memory
type Memory struct {
	items *cache.Cache
}

// NewMemory - create an empty in-memory ledger
func NewMemory() *Memory {
	return &Memory{
		items: cache.New(cache.NoExpiration, 0),
	}
}

// IsAvailable - memory is always available
func (m *Memory) IsAvailable(_ context.Context) bool {
	return true
}

// GetData - fetch a copy of the value of a key
func (m *Memory) GetData(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); nil != err {
		return nil, err
	}
	v, found := m.items.Get(key)
	if !found {
		return []byte{}, nil
	}
	return copyBytes(v.([]byte)), nil
}

// SetData - store a copy of the value under a key
func (m *Memory) SetData(ctx context.Context, key string, value []byte) (*Receipt, error) {
	if err := ctx.Err(); nil != err {
		return nil, err
	}
	m.items.Set(key, copyBytes(value), cache.NoExpiration)
	return NewReceipt(key, value), nil
}

// Keys - all keys in ascending order
func (m *Memory) Keys(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); nil != err {
		return nil, err
	}
	items := m.items.Items()
	keys := make([]string, 0, len(items))
	for k := range items {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

// Close - discard all data
func (m *Memory) Close() error {
	m.items.Flush()
	return nil
}

func copyBytes(b []byte) []byte {
	c := make([]byte, len(b))
	copy(c, b)
	return c
}
