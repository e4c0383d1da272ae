// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/urfave/cli"
)

func runGet(c *cli.Context) error {

	id, err := checkString(c, "id")
	if nil != err {
		return err
	}

	client, m, err := connect(c)
	if nil != err {
		return err
	}
	defer client.Close()

	reveal := c.Bool("reveal")
	reply, err := client.GetSpot(id, reveal)
	if nil != err {
		return err
	}

	if reveal {
		return printJson(m.w, reply)
	}
	return printJson(m.w, reply.Spot)
}
