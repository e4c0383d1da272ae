// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"time"

	"github.com/bitmark-inc/logger"
)

// delaySetter - components whose timing can change while running
type delaySetter interface {
	SetDelays(successDelay time.Duration, errorDelay time.Duration) error
}

type rentalDelaySetter interface {
	SetRentalDelay(d time.Duration) error
}

// reloader - re-read the configuration file when it changes and
// apply the timing settings
//
// other settings need a restart
type reloader struct {
	log      *logger.L
	fileName string
	change   <-chan struct{}
	tracker  delaySetter
	store    rentalDelaySetter
	current  Timing
}

func newReloader(log *logger.L, options *Configuration, change <-chan struct{}, tracker delaySetter, store rentalDelaySetter) (*reloader, error) {
	timing, err := options.Timing()
	if nil != err {
		return nil, err
	}
	return &reloader{
		log:      log,
		fileName: options.fileName,
		change:   change,
		tracker:  tracker,
		store:    store,
		current:  *timing,
	}, nil
}

func (r *reloader) Run(args interface{}, shutdown <-chan struct{}) {
	log := r.log

	log.Info("starting…")
loop:
	for {
		select {
		case <-shutdown:
			break loop
		case <-r.change:
			r.reload()
		}
	}
	log.Info("stopped")
}

func (r *reloader) reload() {
	log := r.log

	options, err := getConfiguration(r.fileName)
	if nil != err {
		log.Errorf("reload: %q  error: %s", r.fileName, err)
		return
	}
	timing, err := options.Timing()
	if nil != err {
		log.Errorf("reload: timing error: %s", err)
		return
	}

	if timing.SuccessDelay != r.current.SuccessDelay || timing.ErrorDelay != r.current.ErrorDelay {
		if err := r.tracker.SetDelays(timing.SuccessDelay, timing.ErrorDelay); nil != err {
			log.Errorf("reload: tracker delays error: %s", err)
			return
		}
		log.Infof("status delays: success: %s  error: %s", timing.SuccessDelay, timing.ErrorDelay)
	}

	if timing.RentalDelay != r.current.RentalDelay {
		if err := r.store.SetRentalDelay(timing.RentalDelay); nil != err {
			log.Errorf("reload: rental delay error: %s", err)
			return
		}
		log.Infof("rental delay: %s", timing.RentalDelay)
	}

	if timing.RescanInterval != r.current.RescanInterval {
		log.Warnf("rescan interval: %s takes effect after restart", timing.RescanInterval)
	}

	r.current = *timing
}
