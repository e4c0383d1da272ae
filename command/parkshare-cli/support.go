// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"time"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/parkshare/command/parkshare-cli/rpccalls"
	"github.com/bitmark-inc/parkshare/dashboard"
	"github.com/bitmark-inc/parkshare/spot"
)

const timeLayout = "2006-01-02T15:04"

func connect(c *cli.Context) (*rpccalls.Client, *metadata, error) {
	m := c.App.Metadata["config"].(*metadata)

	client, err := rpccalls.NewClient(m.connect, m.useTLS, m.verbose, m.e)
	if nil != err {
		return nil, nil, err
	}
	return client, m, nil
}

func checkString(c *cli.Context, name string) (string, error) {
	s := c.String(name)
	if "" == s {
		return "", fmt.Errorf("missing --%s option", name)
	}
	return s, nil
}

func formatTime(t int64) string {
	return time.Unix(t, 0).UTC().Format(timeLayout)
}

// one line summary, owned spots are marked with *
func formatSpot(account string, s *spot.Spot) string {
	mark := " "
	if dashboard.IsOwner(account, s.Owner) {
		mark = "*"
	}
	return fmt.Sprintf("%s %-24s %-11s %10.4f/h  %s .. %s  %s",
		mark,
		s.Id,
		s.Status,
		s.PricePerHour,
		formatTime(s.AvailableFrom),
		formatTime(s.AvailableUntil),
		s.Location,
	)
}

func printSpots(handle io.Writer, account string, spots []spot.Spot, stats dashboard.Stats) {
	for i := range spots {
		fmt.Fprintf(handle, "%s\n", formatSpot(account, &spots[i]))
	}
	fmt.Fprintf(handle, "total: %d  available: %d  occupied: %d  maintenance: %d\n",
		stats.Total, stats.Available, stats.Occupied, stats.Maintenance)
}
