// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/urfave/cli"

	"github.com/bitmark-inc/parkshare/spot"
)

func runCreate(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)
	if "" == m.account {
		return ErrAccountRequired
	}

	input := &spot.Input{
		Location:       c.String("location"),
		PricePerHour:   c.String("price"),
		AvailableFrom:  c.String("from"),
		AvailableUntil: c.String("until"),
		Owner:          m.account,
	}

	// same checks as the daemon, without a round trip
	if _, err := input.Validate(); nil != err {
		return err
	}

	client, _, err := connect(c)
	if nil != err {
		return err
	}
	defer client.Close()

	s, err := client.CreateSpot(input)
	if nil != err {
		return err
	}

	return printJson(m.w, s)
}
