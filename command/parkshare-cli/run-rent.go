// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/urfave/cli"

	"github.com/bitmark-inc/parkshare/dashboard"
	"github.com/bitmark-inc/parkshare/spot"
)

func runRent(c *cli.Context) error {

	id, err := checkString(c, "id")
	if nil != err {
		return err
	}

	m := c.App.Metadata["config"].(*metadata)
	if "" == m.account {
		return ErrAccountRequired
	}

	client, _, err := connect(c)
	if nil != err {
		return err
	}
	defer client.Close()

	// the daemon rents unconditionally; reload first so spots written
	// by other ledger clients since the last rescan are found
	if !c.Bool("force") {
		if _, err := client.Refresh(); nil != err {
			return err
		}
		reply, err := client.GetSpot(id, false)
		if nil != err {
			return err
		}
		if err := checkRentable(m.account, reply.Spot); nil != err {
			return err
		}
	}

	s, err := client.RentSpot(id, m.account)
	if nil != err {
		return err
	}

	return printJson(m.w, s)
}

func checkRentable(account string, s *spot.Spot) error {
	if dashboard.CanRent(account, s) {
		return nil
	}
	if dashboard.IsOwner(account, s.Owner) {
		return ErrOwnSpot
	}
	return ErrSpotNotAvailable
}
