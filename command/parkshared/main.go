// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/getoptions"
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/parkshare/background"
	"github.com/bitmark-inc/parkshare/configuration"
	"github.com/bitmark-inc/parkshare/rpc"
	"github.com/bitmark-inc/parkshare/store"
	"github.com/bitmark-inc/parkshare/tracker"
)

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

func main() {
	defer exitwithstatus.Handler()

	flags := []getoptions.Option{
		{Long: "help", HasArg: getoptions.NO_ARGUMENT, Short: 'h'},
		{Long: "verbose", HasArg: getoptions.NO_ARGUMENT, Short: 'v'},
		{Long: "quiet", HasArg: getoptions.NO_ARGUMENT, Short: 'q'},
		{Long: "version", HasArg: getoptions.NO_ARGUMENT, Short: 'V'},
		{Long: "config-file", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'c'},
	}

	program, options, arguments, err := getoptions.GetOS(flags)
	if nil != err {
		exitwithstatus.Message("%s: getoptions error: %s", program, err)
	}

	if len(options["version"]) > 0 {
		processSetupCommand(program, []string{"version"})
		return
	}

	if len(options["help"]) > 0 {
		processSetupCommand(program, []string{"help"})
		return
	}

	if len(arguments) > 0 && processSetupCommand(program, arguments) {
		return
	}

	if 1 != len(options["config-file"]) {
		exitwithstatus.Message("%s: only one config-file option is required, %d were detected", program, len(options["config-file"]))
	}

	configurationFile := options["config-file"][0]
	theConfiguration, err := getConfiguration(configurationFile)
	if nil != err {
		exitwithstatus.Message("%s: failed to read configuration from: %q  error: %s", program, configurationFile, err)
	}

	if len(arguments) > 0 && processConfigCommand(arguments, theConfiguration) {
		return
	}

	timing, err := theConfiguration.Timing()
	if nil != err {
		exitwithstatus.Message("%s: configuration timing error: %s", program, err)
	}

	if err = logger.Initialise(theConfiguration.Logging); nil != err {
		exitwithstatus.Message("%s: logger setup failed with error: %s", program, err)
	}
	defer logger.Finalise()

	log := logger.New("main")
	defer log.Info("finished")
	log.Info("starting…")
	log.Infof("version: %s", version)
	log.Debugf("theConfiguration: %v", theConfiguration)

	// a single instance per data directory
	if "" != theConfiguration.PidFile {
		lockFile, err := os.OpenFile(theConfiguration.PidFile, os.O_WRONLY|os.O_EXCL|os.O_CREATE, os.ModeExclusive|0600)
		if err != nil {
			if os.IsExist(err) {
				exitwithstatus.Message("%s: another instance is already running", program)
			}
			exitwithstatus.Message("%s: PID file: %q creation failed, error: %s", program, theConfiguration.PidFile, err)
		}
		fmt.Fprintf(lockFile, "%d\n", os.Getpid())
		lockFile.Close()
		defer os.Remove(theConfiguration.PidFile)
	}

	log.Infof("database: %q", theConfiguration.Database.Backend)
	log.Debugf("%s = %#v", "ClientRPC", theConfiguration.ClientRPC)
	log.Debugf("%s = %#v", "HTTP", theConfiguration.HTTP)

	log.Info("initialise ledger")
	gateway, err := openGateway(logger.New("ledger"), theConfiguration)
	if nil != err {
		log.Criticalf("ledger initialise error: %s", err)
		exitwithstatus.Message("ledger initialise error: %s", err)
	}
	defer gateway.Close()

	sealer, err := makeSealer(theConfiguration)
	if nil != err {
		log.Criticalf("seal initialise error: %s", err)
		exitwithstatus.Message("seal initialise error: %s", err)
	}
	log.Infof("seal kind: %q", theConfiguration.Seal.Kind)

	statusTracker, err := tracker.New(timing.SuccessDelay, timing.ErrorDelay)
	if nil != err {
		log.Criticalf("tracker initialise error: %s", err)
		exitwithstatus.Message("tracker initialise error: %s", err)
	}
	defer statusTracker.Close()

	log.Info("initialise store")
	spotStore, err := store.New(logger.New("store"), gateway, sealer, statusTracker, timing.RentalDelay)
	if nil != err {
		log.Criticalf("store initialise error: %s", err)
		exitwithstatus.Message("store initialise error: %s", err)
	}

	watcher, err := configuration.NewWatcher(logger.New("watcher"), theConfiguration.fileName)
	if nil != err {
		log.Criticalf("configuration watcher error: %s", err)
		exitwithstatus.Message("configuration watcher error: %s", err)
	}

	reload, err := newReloader(logger.New("reload"), theConfiguration, watcher.Change(), statusTracker, spotStore)
	if nil != err {
		log.Criticalf("reload initialise error: %s", err)
		exitwithstatus.Message("reload initialise error: %s", err)
	}

	processes := background.Processes{
		store.NewRescanner(logger.New("rescan"), spotStore, timing.RescanInterval),
		newStatusLog(logger.New("status"), statusTracker),
		watcher,
		reload,
	}
	bg := background.Start(processes, nil)
	defer bg.Stop()

	err = rpc.Initialise(&theConfiguration.ClientRPC, &theConfiguration.HTTP, version, gateway, spotStore)
	if nil != err {
		log.Criticalf("rpc initialise error: %s", err)
		exitwithstatus.Message("rpc initialise error: %s", err)
	}
	defer rpc.Finalise()

	// wait for CTRL-C before shutting down to allow manual testing
	if 0 == len(options["quiet"]) {
		fmt.Printf("\n\nWaiting for CTRL-C (SIGINT) or 'kill <pid>' (SIGTERM)…")
	}

	// turn Signals into channel messages
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	sig := <-ch
	log.Infof("received signal: %v", sig)
	if 0 == len(options["quiet"]) {
		fmt.Printf("\nreceived signal: %v\n", sig)
		fmt.Printf("\nshutting down…\n")
	}

	log.Info("shutting down…")
}
