// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/urfave/cli"
)

func runList(c *cli.Context) error {

	client, m, err := connect(c)
	if nil != err {
		return err
	}
	defer client.Close()

	reply, err := client.ListSpots(c.String("query"), c.String("status"))
	if nil != err {
		return err
	}

	if c.Bool("json") {
		return printJson(m.w, reply)
	}

	printSpots(m.w, m.account, reply.Spots, reply.Stats)
	return nil
}
