// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"io/ioutil"
	"strings"

	"golang.org/x/crypto/ed25519"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/parkshare/fault"
)

// Signer - approves and signs a write before it is sent
//
// a refusal must be reported as fault.ErrUserRejected
type Signer interface {
	Sign(key string, value []byte) ([]byte, error)
}

// Approver - decide whether a write may be signed
type Approver func(key string, value []byte) bool

// AutoApprove - sign everything
func AutoApprove(string, []byte) bool { return true }

// KeySigner - ed25519 signer with an approval policy
type KeySigner struct {
	privateKey ed25519.PrivateKey
	approve    Approver
}

// NewKeySigner - signer from a private key
func NewKeySigner(privateKey ed25519.PrivateKey, approve Approver) (*KeySigner, error) {
	if ed25519.PrivateKeySize != len(privateKey) {
		return nil, fault.ErrInvalidSigningKey
	}
	if nil == approve {
		approve = AutoApprove
	}
	return &KeySigner{
		privateKey: privateKey,
		approve:    approve,
	}, nil
}

// Sign - sign key ++ value if approved
func (s *KeySigner) Sign(key string, value []byte) ([]byte, error) {
	if !s.approve(key, value) {
		return nil, fault.ErrUserRejected
	}
	message := make([]byte, 0, len(key)+len(value))
	message = append(message, key...)
	message = append(message, value...)
	return ed25519.Sign(s.privateKey, message), nil
}

// PublicKey - the verification key
func (s *KeySigner) PublicKey() ed25519.PublicKey {
	return s.privateKey.Public().(ed25519.PublicKey)
}

// Signed - gateway whose writes all pass through a signer
type Signed struct {
	log     *logger.L
	gateway Gateway
	signer  Signer
}

// NewSigned - wrap a gateway with a signer
func NewSigned(log *logger.L, gateway Gateway, signer Signer) *Signed {
	return &Signed{
		log:     log,
		gateway: gateway,
		signer:  signer,
	}
}

// IsAvailable - availability of the wrapped gateway
func (s *Signed) IsAvailable(ctx context.Context) bool {
	return s.gateway.IsAvailable(ctx)
}

// GetData - reads are not signed
func (s *Signed) GetData(ctx context.Context, key string) ([]byte, error) {
	return s.gateway.GetData(ctx, key)
}

// SetData - sign then write
func (s *Signed) SetData(ctx context.Context, key string, value []byte) (*Receipt, error) {
	signature, err := s.signer.Sign(key, value)
	if nil != err {
		s.log.Warnf("signing key: %q  error: %s", key, err)
		return nil, err
	}

	receipt, err := s.gateway.SetData(ctx, key, value)
	if nil != err {
		return nil, err
	}
	receipt.Signature = hex.EncodeToString(signature)

	s.log.Infof("signed write key: %q  txId: %s", key, receipt.TxId)
	return receipt, nil
}

// Keys - keys of the wrapped gateway if it can list them
func (s *Signed) Keys(ctx context.Context) ([]string, error) {
	lister, ok := s.gateway.(Lister)
	if !ok {
		return nil, fault.ErrCannotListKeys
	}
	return lister.Keys(ctx)
}

// Close - close the wrapped gateway
func (s *Signed) Close() error {
	return s.gateway.Close()
}

// NewSigningKey - generate a private key and write its seed as hex
func NewSigningKey(fileName string) (ed25519.PublicKey, error) {
	publicKey, privateKey, err := ed25519.GenerateKey(rand.Reader)
	if nil != err {
		return nil, err
	}
	seed := hex.EncodeToString(privateKey.Seed()) + "\n"
	if err := ioutil.WriteFile(fileName, []byte(seed), 0600); nil != err {
		return nil, err
	}
	return publicKey, nil
}

// ReadSigningKey - read a hex seed file written by NewSigningKey
func ReadSigningKey(fileName string) (ed25519.PrivateKey, error) {
	data, err := ioutil.ReadFile(fileName)
	if nil != err {
		return nil, err
	}
	seed, err := hex.DecodeString(strings.TrimSpace(string(data)))
	if nil != err || ed25519.SeedSize != len(seed) {
		return nil, fault.ErrInvalidSigningKey
	}
	return ed25519.NewKeyFromSeed(seed), nil
}
