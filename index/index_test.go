// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package index_test

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/parkshare/fixtures"
	"github.com/bitmark-inc/parkshare/index"
	"github.com/bitmark-inc/parkshare/ledger"
	"github.com/bitmark-inc/parkshare/ledger/mocks"
	"github.com/bitmark-inc/parkshare/spot"
)

func TestListIdsAbsent(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	m := index.New(logger.New(fixtures.LogCategory), ledger.NewMemory())
	ids := m.ListIds(context.Background())
	assert.Equal(t, []string{}, ids, "wrong ids")
}

func TestListIdsMalformed(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	g := ledger.NewMemory()
	_, _ = g.SetData(context.Background(), spot.IndexKey, []byte("{broken"))

	m := index.New(logger.New(fixtures.LogCategory), g)
	assert.Equal(t, []string{}, m.ListIds(context.Background()), "wrong ids")
}

func TestListIdsGatewayFailure(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	g := mocks.NewMockGateway(ctl)
	g.EXPECT().GetData(gomock.Any(), spot.IndexKey).Return(nil, errors.New("rpc timeout")).Times(1)

	m := index.New(logger.New(fixtures.LogCategory), g)
	assert.Equal(t, []string{}, m.ListIds(context.Background()), "failure must not escape")
}

func TestAppendId(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ctx := context.Background()
	g := ledger.NewMemory()
	m := index.New(logger.New(fixtures.LogCategory), g)

	assert.Nil(t, m.AppendId(ctx, "a"), "wrong append error")
	assert.Nil(t, m.AppendId(ctx, "b"), "wrong append error")
	assert.Nil(t, m.AppendId(ctx, "a"), "duplicate append must be accepted")

	assert.Equal(t, []string{"a", "b", "a"}, m.ListIds(ctx), "wrong ids")

	data, _ := g.GetData(ctx, spot.IndexKey)
	assert.Equal(t, `["a","b","a"]`, string(data), "wrong stored index")
}

func TestAppendIdReadFailure(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	failure := errors.New("connection reset")
	g := mocks.NewMockGateway(ctl)
	g.EXPECT().GetData(gomock.Any(), spot.IndexKey).Return(nil, failure).Times(1)
	g.EXPECT().SetData(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	m := index.New(logger.New(fixtures.LogCategory), g)
	err := m.AppendId(context.Background(), "a")
	assert.True(t, errors.Is(err, failure), "wrong error: %v", err)
}

// two appends that read the same prior index lose one id
func TestConcurrentAppendLosesId(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ctx := context.Background()
	g := ledger.NewMemory()
	m := index.New(logger.New(fixtures.LogCategory), g)

	assert.Nil(t, m.AppendId(ctx, "existing"), "wrong append error")

	// both writers read before either writes
	first, err := m.Load(ctx)
	assert.Nil(t, err, "wrong load error")
	second, err := m.Load(ctx)
	assert.Nil(t, err, "wrong load error")

	_, err = m.Save(ctx, append(first, "id-one"))
	assert.Nil(t, err, "wrong save error")
	_, err = m.Save(ctx, append(second, "id-two"))
	assert.Nil(t, err, "wrong save error")

	ids := m.ListIds(ctx)
	assert.Equal(t, []string{"existing", "id-two"}, ids, "race did not reproduce")
	assert.NotContains(t, ids, "id-one", "first writer's id survived")
}
