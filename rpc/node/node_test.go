// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package node_test

import (
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/parkshare/counter"
	"github.com/bitmark-inc/parkshare/fixtures"
	ledgerMocks "github.com/bitmark-inc/parkshare/ledger/mocks"
	"github.com/bitmark-inc/parkshare/rpc/mocks"
	"github.com/bitmark-inc/parkshare/rpc/node"
	"github.com/bitmark-inc/parkshare/spot"
)

func TestNode_Info(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	g := ledgerMocks.NewMockGateway(ctl)
	s := mocks.NewMockStore(ctl)

	g.EXPECT().IsAvailable(gomock.Any()).Return(true).Times(1)
	s.EXPECT().Spots().Return([]spot.Spot{{Id: "1"}, {Id: "2"}}).Times(1)
	s.EXPECT().Busy().Return(true).Times(1)

	ctr := counter.Counter(3)
	n := node.New(logger.New(fixtures.LogCategory), time.Now().Add(-time.Minute), "1.2", &ctr, g, s)

	var reply node.InfoReply
	err := n.Info(&node.InfoArguments{}, &reply)
	assert.Nil(t, err, "wrong Info")
	assert.Equal(t, "1.2", reply.Version, "wrong version")
	assert.Equal(t, uint64(3), reply.RPCs, "wrong rpc count")
	assert.True(t, reply.Ledger, "wrong ledger")
	assert.Equal(t, 2, reply.Spots, "wrong spot count")
	assert.True(t, reply.Refreshing, "wrong refreshing")
	assert.NotEqual(t, "", reply.Uptime, "missing uptime")
}
