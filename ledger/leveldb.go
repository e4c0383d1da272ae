// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"context"
	"encoding/binary"
	"fmt"
	"sync"

	"github.com/syndtr/goleveldb/leveldb"
	ldb_opt "github.com/syndtr/goleveldb/leveldb/opt"
	ldb_util "github.com/syndtr/goleveldb/leveldb/util"

	"github.com/bitmark-inc/parkshare/fault"
)

// for database version
var versionKey = []byte{0x00, 'V', 'E', 'R', 'S', 'I', 'O', 'N'}

const currentDBVersion = 0x100

// all ledger keys live under this prefix so they can never collide
// with the version key
const dataPrefix = 'L'

// LevelDB - ledger in an on-disk LevelDB database
type LevelDB struct {
	sync.RWMutex
	db       *leveldb.DB
	readOnly bool
}

// NewLevelDB - open (or create) the database
func NewLevelDB(name string, readOnly bool) (*LevelDB, error) {
	opt := &ldb_opt.Options{
		ErrorIfExist:   false,
		ErrorIfMissing: readOnly,
		ReadOnly:       readOnly,
	}

	db, err := leveldb.OpenFile(name, opt)
	if nil != err {
		return nil, err
	}

	version, err := getVersion(db)
	if nil != err {
		db.Close()
		return nil, err
	}

	switch {
	case version > currentDBVersion:
		db.Close()
		return nil, fmt.Errorf("%w: database: %d > current: %d", fault.ErrIncompatibleDatabase, version, currentDBVersion)

	case 0 == version && !readOnly:
		// database was empty so tag as current version
		if err := putVersion(db, currentDBVersion); nil != err {
			db.Close()
			return nil, err
		}

	case version < currentDBVersion && readOnly:
		db.Close()
		return nil, fmt.Errorf("%w: database: %d < current: %d", fault.ErrIncompatibleDatabase, version, currentDBVersion)
	}

	return &LevelDB{
		db:       db,
		readOnly: readOnly,
	}, nil
}

// return the stored version, zero for an empty database
func getVersion(db *leveldb.DB) (int, error) {
	versionValue, err := db.Get(versionKey, nil)
	if leveldb.ErrNotFound == err {
		return 0, nil
	} else if nil != err {
		return 0, err
	}

	if 4 != len(versionValue) {
		return 0, fmt.Errorf("%w: version length: expected: %d  actual: %d", fault.ErrIncompatibleDatabase, 4, len(versionValue))
	}

	return int(binary.BigEndian.Uint32(versionValue)), nil
}

func putVersion(db *leveldb.DB, version int) error {
	currentVersion := make([]byte, 4)
	binary.BigEndian.PutUint32(currentVersion, uint32(version))

	return db.Put(versionKey, currentVersion, nil)
}

// prepend the prefix onto the key
func prefixKey(key string) []byte {
	prefixedKey := make([]byte, 1, len(key)+1)
	prefixedKey[0] = dataPrefix
	return append(prefixedKey, key...)
}

// IsAvailable - true while the database is open
func (l *LevelDB) IsAvailable(_ context.Context) bool {
	l.RLock()
	defer l.RUnlock()
	return nil != l.db
}

// GetData - read the value of a key
func (l *LevelDB) GetData(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); nil != err {
		return nil, err
	}

	l.RLock()
	defer l.RUnlock()

	if nil == l.db {
		return nil, fault.ErrLedgerUnavailable
	}

	value, err := l.db.Get(prefixKey(key), nil)
	if leveldb.ErrNotFound == err {
		return []byte{}, nil
	}
	return value, err
}

// SetData - write the value of a key
func (l *LevelDB) SetData(ctx context.Context, key string, value []byte) (*Receipt, error) {
	if err := ctx.Err(); nil != err {
		return nil, err
	}

	l.RLock()
	defer l.RUnlock()

	if nil == l.db || l.readOnly {
		return nil, fault.ErrLedgerUnavailable
	}

	if err := l.db.Put(prefixKey(key), value, &ldb_opt.WriteOptions{Sync: true}); nil != err {
		return nil, err
	}
	return NewReceipt(key, value), nil
}

// Keys - all ledger keys in ascending order
func (l *LevelDB) Keys(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); nil != err {
		return nil, err
	}

	l.RLock()
	defer l.RUnlock()

	if nil == l.db {
		return nil, fault.ErrLedgerUnavailable
	}

	keys := []string{}
	iter := l.db.NewIterator(ldb_util.BytesPrefix([]byte{dataPrefix}), nil)
	for iter.Next() {
		keys = append(keys, string(iter.Key()[1:]))
	}
	iter.Release()
	return keys, iter.Error()
}

// Close - close the database
func (l *LevelDB) Close() error {
	l.Lock()
	defer l.Unlock()

	if nil == l.db {
		return nil
	}
	err := l.db.Close()
	l.db = nil
	return err
}
