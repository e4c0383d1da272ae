// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package tracker

// Phase - where the current operation is in its lifecycle
type Phase int

// possible phases
const (
	Idle    Phase = iota
	Pending Phase = iota
	Success Phase = iota
	Error   Phase = iota
)

// String - convert the phase for printf
func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Pending:
		return "pending"
	case Success:
		return "success"
	case Error:
		return "error"
	default:
		return "*unknown*"
	}
}

// MarshalText - convert the phase for JSON
func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText - convert the phase from JSON, unknown text is idle
func (p *Phase) UnmarshalText(s []byte) error {
	switch string(s) {
	case "pending":
		*p = Pending
	case "success":
		*p = Success
	case "error":
		*p = Error
	default:
		*p = Idle
	}
	return nil
}
