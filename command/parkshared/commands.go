// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bitmark-inc/exitwithstatus"

	"github.com/bitmark-inc/parkshare/configuration"
	"github.com/bitmark-inc/parkshare/fault"
	"github.com/bitmark-inc/parkshare/ledger"
	"github.com/bitmark-inc/parkshare/record"
	"github.com/bitmark-inc/parkshare/rpc/certificate"
)

const (
	rpcCertificateKeyFilename = "rpc.crt"
	rpcPrivateKeyFilename     = "rpc.key"

	signingKeyFilename = "ledger.sign"
	sealKeyFilename    = "seal.key"
)

// setup commands before configuration is read
// returns:
//   true  if program should exit
//   false if program should continue
func processSetupCommand(program string, arguments []string) bool {

	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
		arguments = arguments[1:]
	}

	switch command {
	case "gen-rpc-cert", "rpc":
		certificateFilename := getFilenameWithDirectory(arguments, rpcCertificateKeyFilename)
		privateKeyFilename := getFilenameWithDirectory(arguments, rpcPrivateKeyFilename)

		addresses := []string{}
		if len(arguments) >= 2 {
			for _, a := range arguments[1:] {
				if "" != a {
					addresses = append(addresses, a)
				}
			}
		}

		err := certificate.Generate("rpc", certificateFilename, privateKeyFilename, addresses)
		if nil != err {
			fmt.Printf("generate RPC key: %q and certificate: %q error: %s\n", privateKeyFilename, certificateFilename, err)
			exitwithstatus.Exit(1)
		}
		fmt.Printf("generated RPC key: %q and certificate: %q\n", privateKeyFilename, certificateFilename)

	case "gen-signing-key", "sign":
		signingKeyFile := getFilenameWithDirectory(arguments, signingKeyFilename)
		if configuration.FileExists(signingKeyFile) {
			fmt.Printf("generate signing key: %q error: %s\n", signingKeyFile, fault.ErrKeyFileExists)
			exitwithstatus.Exit(1)
		}

		publicKey, err := ledger.NewSigningKey(signingKeyFile)
		if nil != err {
			_ = os.Remove(signingKeyFile)
			fmt.Printf("generate signing key: %q error: %s\n", signingKeyFile, err)
			exitwithstatus.Exit(1)
		}
		fmt.Printf("generated signing key: %q\n", signingKeyFile)
		fmt.Printf("public key: %x\n", publicKey)

	case "gen-seal-key", "seal":
		sealKeyFile := getFilenameWithDirectory(arguments, sealKeyFilename)
		if err := record.WriteSecretKeyFile(sealKeyFile); nil != err {
			fmt.Printf("generate seal key: %q error: %s\n", sealKeyFile, err)
			exitwithstatus.Exit(1)
		}
		fmt.Printf("generated seal key: %q\n", sealKeyFile)

	case "start", "run":
		return false // continue processing

	case "config-test", "cfg":
		return false // defer processing until configuration is read

	case "version", "v":
		fmt.Printf("%s\n", version)
		return true

	default:
		switch command {
		case "help", "h", "?":
		case "", " ":
			fmt.Printf("error: missing command\n")
		default:
			fmt.Printf("error: no such command: %q\n", command)
		}

		fmt.Printf("usage: %s [--help] [--verbose] [--quiet] --config-file=FILE [[command|help] arguments...]\n\n", program)

		fmt.Printf("supported commands:\n\n")
		fmt.Printf("  help                       (h)      - display this message\n\n")
		fmt.Printf("  version                    (v)      - display version string\n\n")

		fmt.Printf("  gen-rpc-cert [DIR] [IPs...] (rpc)   - create private key in:  %q\n", "DIR/"+rpcPrivateKeyFilename)
		fmt.Printf("                                        and the certificate in: %q\n", "DIR/"+rpcCertificateKeyFilename)
		fmt.Printf("\n")

		fmt.Printf("  gen-signing-key [DIR]      (sign)   - create ledger signing key in: %q\n", "DIR/"+signingKeyFilename)
		fmt.Printf("\n")

		fmt.Printf("  gen-seal-key [DIR]         (seal)   - create location seal key in: %q\n", "DIR/"+sealKeyFilename)
		fmt.Printf("\n")

		fmt.Printf("  start                      (run)    - just run the program, same as no arguments\n")
		fmt.Printf("                                        for convenience when passing script arguments\n")
		fmt.Printf("\n")

		fmt.Printf("  config-test                (cfg)    - just check the configuration file\n")
		fmt.Printf("\n")

		exitwithstatus.Exit(1)
	}

	return true
}

// configuration commands
// returns:
//   true  if program should exit
//   false if program should continue
func processConfigCommand(arguments []string, options *Configuration) bool {

	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
	}

	switch command {
	case "config-test", "cfg":
		b, err := json.Marshal(options)
		if err != nil {
			exitwithstatus.Message("error: %s", err)
		}
		var out bytes.Buffer
		json.Indent(&out, b, "", "  ")
		out.WriteTo(os.Stdout)
		os.Stdout.WriteString("\n")

	default:
		return false
	}

	return true
}

// get the working directory; if not set in the arguments
// it's set to the current directory
func getFilenameWithDirectory(arguments []string, name string) string {
	directory := "."
	if len(arguments) >= 1 {
		directory = arguments[0]
	}

	return filepath.Join(directory, name)
}
