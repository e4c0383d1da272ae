// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/parkshare/tracker"
)

const statusQueueSize = 16

// statusLog - write every tracker transition to the log
type statusLog struct {
	log     *logger.L
	updates <-chan tracker.Status
}

func newStatusLog(log *logger.L, tr *tracker.Tracker) *statusLog {
	return &statusLog{
		log:     log,
		updates: tr.Subscribe(statusQueueSize),
	}
}

func (s *statusLog) Run(args interface{}, shutdown <-chan struct{}) {
	log := s.log

loop:
	for {
		select {
		case <-shutdown:
			break loop
		case status, ok := <-s.updates:
			if !ok {
				break loop
			}
			if !status.Visible {
				log.Debug("status cleared")
				continue loop
			}
			switch status.Phase {
			case tracker.Error:
				log.Warnf("%s: %s", status.Operation, status.Message)
			default:
				log.Infof("%s: %s: %s", status.Operation, status.Phase, status.Message)
			}
		}
	}
	log.Info("stopped")
}
