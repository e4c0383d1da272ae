// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

//go:generate mockgen -destination=mocks/gateway.go -package=mocks github.com/bitmark-inc/parkshare/ledger Gateway
//go:generate mockgen -destination=mocks/signer.go -package=mocks github.com/bitmark-inc/parkshare/ledger Signer

import (
	"context"
	"encoding/hex"
	"time"

	"golang.org/x/crypto/sha3"
)

// Gateway - access to the ledger key/value store
//
// GetData returns an empty slice for an absent key
type Gateway interface {
	IsAvailable(ctx context.Context) bool
	GetData(ctx context.Context, key string) ([]byte, error)
	SetData(ctx context.Context, key string, value []byte) (*Receipt, error)
	Close() error
}

// Lister - a gateway that can enumerate its keys
type Lister interface {
	Keys(ctx context.Context) ([]string, error)
}

// Receipt - acknowledgement of a completed write
type Receipt struct {
	TxId      string    `json:"txId"`
	Key       string    `json:"key"`
	Signature string    `json:"signature,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// NewReceipt - receipt for a write, the transaction id is the
// SHA3-256 digest of the key followed by the value
func NewReceipt(key string, value []byte) *Receipt {
	h := sha3.New256()
	h.Write([]byte(key))
	h.Write(value)
	return &Receipt{
		TxId:      hex.EncodeToString(h.Sum(nil)),
		Key:       key,
		Timestamp: time.Now().UTC(),
	}
}
