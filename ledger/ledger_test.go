// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger_test

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/parkshare/fault"
	"github.com/bitmark-inc/parkshare/ledger"
)

const databaseFileName = "test.leveldb"

func removeDatabase() {
	_ = os.RemoveAll(databaseFileName)
}

// behaviour every backend must share
func checkGateway(t *testing.T, g ledger.Gateway) {
	ctx := context.Background()

	assert.True(t, g.IsAvailable(ctx), "not available")

	value, err := g.GetData(ctx, "spot_missing")
	assert.Nil(t, err, "wrong absent error")
	assert.NotNil(t, value, "absent value must be empty, not nil")
	assert.Equal(t, 0, len(value), "absent value not empty")

	data := []byte(`{"location":"X"}`)
	receipt, err := g.SetData(ctx, "spot_one", data)
	assert.Nil(t, err, "wrong set error")
	assert.Equal(t, "spot_one", receipt.Key, "wrong receipt key")
	assert.Equal(t, ledger.NewReceipt("spot_one", data).TxId, receipt.TxId, "wrong tx id")

	// caller may reuse its buffer
	data[2] = 'L'

	value, err = g.GetData(ctx, "spot_one")
	assert.Nil(t, err, "wrong get error")
	assert.Equal(t, `{"location":"X"}`, string(value), "wrong value")

	_, err = g.SetData(ctx, "spot_one", []byte("second"))
	assert.Nil(t, err, "wrong overwrite error")
	value, _ = g.GetData(ctx, "spot_one")
	assert.Equal(t, "second", string(value), "last writer must win")
}

func TestReceipt(t *testing.T) {
	r1 := ledger.NewReceipt("k", []byte("v"))
	r2 := ledger.NewReceipt("k", []byte("v"))
	r3 := ledger.NewReceipt("k", []byte("w"))

	assert.Equal(t, 64, len(r1.TxId), "wrong tx id length")
	assert.Equal(t, r1.TxId, r2.TxId, "tx id not deterministic")
	assert.NotEqual(t, r1.TxId, r3.TxId, "tx id ignores value")
}

func TestMemory(t *testing.T) {
	m := ledger.NewMemory()
	checkGateway(t, m)

	ctx := context.Background()
	_, _ = m.SetData(ctx, "spot_keys", []byte("[]"))
	keys, err := m.Keys(ctx)
	assert.Nil(t, err, "wrong keys error")
	assert.Equal(t, []string{"spot_keys", "spot_one"}, keys, "wrong keys")

	assert.Nil(t, m.Close(), "wrong close error")
	keys, err = m.Keys(ctx)
	assert.Nil(t, err, "wrong keys error")
	assert.Equal(t, 0, len(keys), "close did not discard")
}

func TestMemoryCancelledContext(t *testing.T) {
	m := ledger.NewMemory()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := m.GetData(ctx, "a")
	assert.Equal(t, context.Canceled, err, "wrong get error")
	_, err = m.SetData(ctx, "a", []byte("b"))
	assert.Equal(t, context.Canceled, err, "wrong set error")
}

func TestLevelDB(t *testing.T) {
	removeDatabase()
	defer removeDatabase()

	l, err := ledger.NewLevelDB(databaseFileName, false)
	if nil != err {
		t.Fatalf("leveldb open error: %s", err)
	}
	checkGateway(t, l)

	keys, err := l.Keys(context.Background())
	assert.Nil(t, err, "wrong keys error")
	assert.Equal(t, []string{"spot_one"}, keys, "version key leaked into keys")

	assert.Nil(t, l.Close(), "wrong close error")
	assert.False(t, l.IsAvailable(context.Background()), "available after close")

	_, err = l.GetData(context.Background(), "spot_one")
	assert.Equal(t, fault.ErrLedgerUnavailable, err, "wrong error after close")
}

func TestLevelDBReopen(t *testing.T) {
	removeDatabase()
	defer removeDatabase()

	l, err := ledger.NewLevelDB(databaseFileName, false)
	if nil != err {
		t.Fatalf("leveldb open error: %s", err)
	}
	_, _ = l.SetData(context.Background(), "spot_keys", []byte(`["a"]`))
	l.Close()

	r, err := ledger.NewLevelDB(databaseFileName, true)
	if nil != err {
		t.Fatalf("leveldb read only open error: %s", err)
	}
	defer r.Close()

	value, err := r.GetData(context.Background(), "spot_keys")
	assert.Nil(t, err, "wrong get error")
	assert.Equal(t, `["a"]`, string(value), "data not persisted")

	_, err = r.SetData(context.Background(), "spot_keys", []byte(`[]`))
	assert.Equal(t, fault.ErrLedgerUnavailable, err, "read only database accepted write")
}

func TestLevelDBReadOnlyMissing(t *testing.T) {
	removeDatabase()

	_, err := ledger.NewLevelDB(databaseFileName, true)
	assert.NotNil(t, err, "opened missing database read only")
}
