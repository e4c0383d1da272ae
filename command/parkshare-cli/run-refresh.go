// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/urfave/cli"
)

func runRefresh(c *cli.Context) error {

	client, m, err := connect(c)
	if nil != err {
		return err
	}
	defer client.Close()

	reply, err := client.Refresh()
	if nil != err {
		return err
	}

	if !reply.Started {
		fmt.Fprintf(m.e, "refresh already in progress\n")
	}
	printSpots(m.w, m.account, reply.Spots, reply.Stats)
	return nil
}
