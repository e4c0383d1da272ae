// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package store

import (
	"context"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/parkshare/fault"
)

// Rescanner - background process that refreshes the store on a timer
//
// records added by other clients appear on the next scan; records
// whose index append was lost are logged when the ledger can list keys
type Rescanner struct {
	log      *logger.L
	store    *Store
	interval time.Duration
	listKeys bool
}

// NewRescanner - a zero interval only performs the initial load
func NewRescanner(log *logger.L, s *Store, interval time.Duration) *Rescanner {
	return &Rescanner{
		log:      log,
		store:    s,
		interval: interval,
		listKeys: true,
	}
}

// Run - background process loop
func (r *Rescanner) Run(args interface{}, shutdown <-chan struct{}) {
	log := r.log

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		<-shutdown
		cancel()
	}()

	log.Info("starting…")
	r.store.Refresh(ctx)
	r.checkIndex(ctx)

	var tick <-chan time.Time
	if r.interval > 0 {
		ticker := time.NewTicker(r.interval)
		defer ticker.Stop()
		tick = ticker.C
	} else {
		log.Info("periodic rescan disabled")
	}

loop:
	for {
		select {
		case <-shutdown:
			break loop
		case <-tick:
			if !r.store.Refresh(ctx) {
				log.Debug("rescan skipped: refresh in progress")
				continue loop
			}
			r.checkIndex(ctx)
		}
	}

	log.Info("finished")
}

// log every record missing from the index
func (r *Rescanner) checkIndex(ctx context.Context) {
	if !r.listKeys {
		return
	}

	missing, err := r.store.Unindexed(ctx)
	if fault.ErrCannotListKeys == err {
		r.log.Info("ledger cannot list keys: index check disabled")
		r.listKeys = false
		return
	}
	if nil != err {
		r.log.Errorf("index check error: %s", err)
		return
	}
	for _, id := range missing {
		r.log.Warnf("spot: %q is not in the index", id)
	}
}
