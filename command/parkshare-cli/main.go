// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli"
)

const defaultConnect = "127.0.0.1:2150"

type metadata struct {
	connect string
	useTLS  bool
	account string
	verbose bool
	e       io.Writer
	w       io.Writer
}

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

func main() {
	app := newApp()
	err := app.Run(os.Args)
	if nil != err {
		fmt.Fprintf(app.ErrWriter, "terminated with error: %s\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {

	app := cli.NewApp()
	app.Name = "parkshare-cli"
	app.Usage = "list and rent parking spots through parkshared"
	app.Version = version
	app.HideVersion = true

	app.Writer = os.Stdout
	app.ErrWriter = os.Stderr

	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "verbose, v",
			Usage: " verbose result",
		},
		cli.StringFlag{
			Name:   "connect, c",
			Value:  defaultConnect,
			EnvVar: "PARKSHARE_CONNECT",
			Usage:  " parkshared RPC `HOST:PORT`",
		},
		cli.BoolFlag{
			Name:  "tls, t",
			Usage: " connect using TLS",
		},
		cli.StringFlag{
			Name:   "account, a",
			Value:  "",
			EnvVar: "PARKSHARE_ACCOUNT",
			Usage:  " connected wallet `ACCOUNT`",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:      "list",
			Usage:     "list parking spots",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "query, q",
					Value: "",
					Usage: " match location or owner `TEXT`",
				},
				cli.StringFlag{
					Name:  "status, s",
					Value: "all",
					Usage: " only spots with `STATUS` [all|available|occupied|maintenance]",
				},
				cli.BoolFlag{
					Name:  "json, j",
					Usage: " output JSON",
				},
			},
			Action: runList,
		},
		{
			Name:      "get",
			Usage:     "display one parking spot",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "id, i",
					Value: "",
					Usage: "*spot `ID`",
				},
				cli.BoolFlag{
					Name:  "reveal, r",
					Usage: " include the opened location",
				},
			},
			Action: runGet,
		},
		{
			Name:      "create",
			Usage:     "list a new parking spot owned by the account",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "location, l",
					Value: "",
					Usage: "*location `TEXT`",
				},
				cli.StringFlag{
					Name:  "price, p",
					Value: "",
					Usage: "*price per hour `AMOUNT`",
				},
				cli.StringFlag{
					Name:  "from, f",
					Value: "",
					Usage: "*available from `YYYY-MM-DDTHH:MM`",
				},
				cli.StringFlag{
					Name:  "until, u",
					Value: "",
					Usage: "*available until `YYYY-MM-DDTHH:MM`",
				},
			},
			Action: runCreate,
		},
		{
			Name:      "rent",
			Usage:     "reload the spots then rent one for the account",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "id, i",
					Value: "",
					Usage: "*spot `ID`",
				},
				cli.BoolFlag{
					Name:  "force",
					Usage: " skip the owner and status checks",
				},
			},
			Action: runRent,
		},
		{
			Name:   "refresh",
			Usage:  "reload all spots from the ledger",
			Action: runRefresh,
		},
		{
			Name:   "status",
			Usage:  "display the transaction status",
			Action: runStatus,
		},
		{
			Name:   "info",
			Usage:  "display parkshared info",
			Action: runInfo,
		},
		{
			Name:  "version",
			Usage: "display parkshare-cli version",
			Action: func(c *cli.Context) error {
				fmt.Fprintf(c.App.Writer, "%s\n", version)
				return nil
			},
		},
	}

	app.Before = func(c *cli.Context) error {

		connect := strings.TrimSpace(c.GlobalString("connect"))
		if "" == connect {
			return fmt.Errorf("connect: host and port are required")
		}

		c.App.Metadata["config"] = &metadata{
			connect: connect,
			useTLS:  c.GlobalBool("tls"),
			account: strings.TrimSpace(c.GlobalString("account")),
			verbose: c.GlobalBool("verbose"),
			e:       c.App.ErrWriter,
			w:       c.App.Writer,
		}
		return nil
	}

	return app
}
