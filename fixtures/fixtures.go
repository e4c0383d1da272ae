// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package fixtures - shared set up for package tests
package fixtures

import (
	"fmt"
	"os"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/parkshare/spot"
)

const (
	dir         = "testing"
	LogCategory = "testing"
)

// account addresses
const (
	OwnerAddress  = "0xAAA0000000000000000000000000000000000001"
	RenterAddress = "0xBBB0000000000000000000000000000000000002"
)

// epoch seconds used by the sample spots
const (
	T0 = int64(1704103200) // 2024-01-01T10:00:00Z
	T1 = int64(1704117600) // 2024-01-01T14:00:00Z
)

// SampleInput - the form data for a typical listing
func SampleInput(owner string) spot.Input {
	return spot.Input{
		Location:       "X",
		PricePerHour:   "0.02",
		AvailableFrom:  "2024-01-01T10:00",
		AvailableUntil: "2024-01-01T14:00",
		Owner:          owner,
	}
}

func SetupTestLogger() {
	removeFiles()
	_ = os.Mkdir(dir, 0700)

	logging := logger.Configuration{
		Directory: dir,
		File:      fmt.Sprintf("%s.log", LogCategory),
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}

	// start logging
	_ = logger.Initialise(logging)
}

func TeardownTestLogger() {
	logger.Finalise()
	removeFiles()
}

func removeFiles() {
	err := os.RemoveAll(dir)
	if nil != err {
		fmt.Println("remove dir with error: ", err)
	}
}
