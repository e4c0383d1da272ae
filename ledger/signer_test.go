// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger_test

import (
	"context"
	"encoding/hex"
	"errors"
	"os"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/ed25519"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/parkshare/fault"
	"github.com/bitmark-inc/parkshare/fixtures"
	"github.com/bitmark-inc/parkshare/ledger"
	"github.com/bitmark-inc/parkshare/ledger/mocks"
)

const keyFileName = "test.sign"

func TestSignedWrite(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	seed := make([]byte, ed25519.SeedSize)
	privateKey := ed25519.NewKeyFromSeed(seed)
	signer, err := ledger.NewKeySigner(privateKey, nil)
	assert.Nil(t, err, "wrong signer error")

	memory := ledger.NewMemory()
	g := ledger.NewSigned(logger.New(fixtures.LogCategory), memory, signer)

	receipt, err := g.SetData(context.Background(), "spot_a", []byte("data"))
	assert.Nil(t, err, "wrong set error")

	signature, err := hex.DecodeString(receipt.Signature)
	assert.Nil(t, err, "signature is not hex")
	assert.True(t, ed25519.Verify(signer.PublicKey(), []byte("spot_adata"), signature), "signature does not verify")

	value, _ := g.GetData(context.Background(), "spot_a")
	assert.Equal(t, "data", string(value), "write not passed through")
}

func TestSignedRejected(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	inner := mocks.NewMockGateway(ctl)
	signer := mocks.NewMockSigner(ctl)

	signer.EXPECT().Sign("spot_a", []byte("data")).Return(nil, fault.ErrUserRejected).Times(1)
	inner.EXPECT().SetData(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	g := ledger.NewSigned(logger.New(fixtures.LogCategory), inner, signer)
	_, err := g.SetData(context.Background(), "spot_a", []byte("data"))
	assert.Equal(t, fault.ErrUserRejected, err, "wrong error")
	assert.True(t, fault.IsUserRejection(err), "not classified as rejection")
}

func TestSignedGatewayFailure(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	inner := mocks.NewMockGateway(ctl)
	signer := mocks.NewMockSigner(ctl)
	failure := errors.New("out of gas")

	signer.EXPECT().Sign(gomock.Any(), gomock.Any()).Return([]byte{1, 2}, nil).Times(1)
	inner.EXPECT().SetData(gomock.Any(), "spot_a", []byte("data")).Return(nil, failure).Times(1)
	inner.EXPECT().IsAvailable(gomock.Any()).Return(false).Times(1)

	g := ledger.NewSigned(logger.New(fixtures.LogCategory), inner, signer)
	_, err := g.SetData(context.Background(), "spot_a", []byte("data"))
	assert.Equal(t, failure, err, "wrong error")
	assert.False(t, g.IsAvailable(context.Background()), "wrong availability")
}

func TestSignedKeys(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	ctx := context.Background()
	signer := mocks.NewMockSigner(ctl)
	signer.EXPECT().Sign(gomock.Any(), gomock.Any()).Return([]byte{1}, nil).Times(1)

	g := ledger.NewSigned(logger.New(fixtures.LogCategory), ledger.NewMemory(), signer)
	_, err := g.SetData(ctx, "spot_a", []byte("data"))
	assert.Nil(t, err, "wrong set error")

	keys, err := g.Keys(ctx)
	assert.Nil(t, err, "wrong keys error")
	assert.Equal(t, []string{"spot_a"}, keys, "wrong keys")

	// the mock gateway has no key listing
	unlisted := ledger.NewSigned(logger.New(fixtures.LogCategory), mocks.NewMockGateway(ctl), signer)
	_, err = unlisted.Keys(ctx)
	assert.Equal(t, fault.ErrCannotListKeys, err, "wrong error")
}

func TestApprovalPolicy(t *testing.T) {
	privateKey := ed25519.NewKeyFromSeed(make([]byte, ed25519.SeedSize))
	onlyIndex := func(key string, _ []byte) bool { return "spot_keys" == key }

	signer, err := ledger.NewKeySigner(privateKey, onlyIndex)
	assert.Nil(t, err, "wrong signer error")

	_, err = signer.Sign("spot_keys", []byte("[]"))
	assert.Nil(t, err, "approved write rejected")

	_, err = signer.Sign("spot_x", []byte("{}"))
	assert.Equal(t, fault.ErrUserRejected, err, "unapproved write signed")

	_, err = ledger.NewKeySigner(privateKey[:10], nil)
	assert.Equal(t, fault.ErrInvalidSigningKey, err, "short key accepted")
}

func TestSigningKeyFile(t *testing.T) {
	_ = os.Remove(keyFileName)
	defer os.Remove(keyFileName)

	publicKey, err := ledger.NewSigningKey(keyFileName)
	assert.Nil(t, err, "wrong generate error")

	privateKey, err := ledger.ReadSigningKey(keyFileName)
	assert.Nil(t, err, "wrong read error")
	assert.Equal(t, publicKey, privateKey.Public().(ed25519.PublicKey), "wrong key pair")

	_ = os.WriteFile(keyFileName, []byte("not hex"), 0600)
	_, err = ledger.ReadSigningKey(keyFileName)
	assert.Equal(t, fault.ErrInvalidSigningKey, err, "bad key file accepted")
}
