// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package tracker - single slot status of the in-flight write
//
//   idle → pending → success | error → idle
//
// the return to idle is on a timer that cannot be cancelled; a timer
// whose transition has been overtaken by a newer one does nothing, and
// the completion of an operation that is no longer pending is ignored
package tracker

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/bitmark-inc/parkshare/fault"
)

// default display times
const (
	DefaultSuccessDelay = 2 * time.Second
	DefaultErrorDelay   = 3 * time.Second
)

const rejectedMessage = "Transaction rejected by user"

// Ticket - identifies one operation
type Ticket string

// Status - what the view layer shows
type Status struct {
	Visible   bool   `json:"visible"`
	Phase     Phase  `json:"status"`
	Message   string `json:"message"`
	Operation Ticket `json:"operation,omitempty"`
}

// Tracker - holds the single status slot
type Tracker struct {
	sync.Mutex
	status       Status
	generation   uint64
	successDelay time.Duration
	errorDelay   time.Duration
	subscribers  []chan Status
	closed       bool
}

// New - tracker in idle state
func New(successDelay time.Duration, errorDelay time.Duration) (*Tracker, error) {
	t := &Tracker{}
	if err := t.SetDelays(successDelay, errorDelay); nil != err {
		return nil, err
	}
	return t, nil
}

// SetDelays - change the display times for later transitions
func (t *Tracker) SetDelays(successDelay time.Duration, errorDelay time.Duration) error {
	if successDelay < 0 || errorDelay < 0 {
		return fault.ErrInvalidDelay
	}
	t.Lock()
	t.successDelay = successDelay
	t.errorDelay = errorDelay
	t.Unlock()
	return nil
}

// Status - the current status
func (t *Tracker) Status() Status {
	t.Lock()
	defer t.Unlock()
	return t.status
}

// Begin - show a new pending operation, replacing anything shown
func (t *Tracker) Begin(message string) Ticket {
	ticket := Ticket(uuid.New().String())
	t.set(Status{
		Visible:   true,
		Phase:     Pending,
		Message:   message,
		Operation: ticket,
	})
	return ticket
}

// Succeed - show completion and schedule the clear
//
// ignored unless the ticket is the operation currently pending
func (t *Tracker) Succeed(ticket Ticket, message string) {
	t.finish(ticket, Success, message)
}

// Fail - show the failure and schedule the clear
//
// a user cancellation is reported as such, anything else is reported
// after the prefix; ignored unless the ticket is the operation
// currently pending
func (t *Tracker) Fail(ticket Ticket, prefix string, err error) {
	t.finish(ticket, Error, FailureMessage(prefix, err))
}

// FailureMessage - classify an error for display
func FailureMessage(prefix string, err error) string {
	if fault.IsUserRejection(err) {
		return rejectedMessage
	}
	if nil == err {
		return prefix + ": Unknown error"
	}
	return prefix + ": " + err.Error()
}

// Reset - return to idle immediately
func (t *Tracker) Reset() {
	t.set(Status{})
}

// Subscribe - receive every transition
//
// a subscriber that does not keep up misses transitions
func (t *Tracker) Subscribe(size int) <-chan Status {
	c := make(chan Status, size)
	t.Lock()
	defer t.Unlock()
	if t.closed {
		close(c)
		return c
	}
	t.subscribers = append(t.subscribers, c)
	return c
}

// Close - release all subscribers
func (t *Tracker) Close() {
	t.Lock()
	defer t.Unlock()
	if t.closed {
		return
	}
	t.closed = true
	for _, c := range t.subscribers {
		close(c)
	}
	t.subscribers = nil
}

// replace the slot without scheduling a clear
func (t *Tracker) set(status Status) {
	t.Lock()
	t.generation += 1
	t.status = status
	t.publish(status)
	t.Unlock()
}

// complete the pending operation and schedule its clear
func (t *Tracker) finish(ticket Ticket, phase Phase, message string) {
	t.Lock()
	if Pending != t.status.Phase || ticket != t.status.Operation {
		t.Unlock()
		return
	}

	clearAfter := t.successDelay
	if Error == phase {
		clearAfter = t.errorDelay
	}

	t.generation += 1
	generation := t.generation
	t.status = Status{
		Visible:   true,
		Phase:     phase,
		Message:   message,
		Operation: ticket,
	}
	t.publish(t.status)
	t.Unlock()

	time.AfterFunc(clearAfter, func() {
		t.clear(generation)
	})
}

// only clears if nothing has happened since the timer was set
func (t *Tracker) clear(generation uint64) {
	t.Lock()
	defer t.Unlock()
	if generation != t.generation {
		return
	}
	t.generation += 1
	t.status = Status{}
	t.publish(t.status)
}

// must hold lock
func (t *Tracker) publish(status Status) {
	for _, c := range t.subscribers {
		select {
		case c <- status:
		default:
		}
	}
}
