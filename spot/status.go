// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package spot

import (
	"github.com/bitmark-inc/parkshare/fault"
)

// Status - lifecycle state of a spot
type Status int

// possible status values
const (
	Available   Status = iota
	Occupied    Status = iota
	Maintenance Status = iota
)

// String - convert the status value for printf
func (s Status) String() string {
	switch s {
	case Available:
		return "available"
	case Occupied:
		return "occupied"
	case Maintenance:
		return "maintenance"
	default:
		return "*unknown*"
	}
}

// MarshalText - convert the status value for JSON
func (s Status) MarshalText() ([]byte, error) {
	switch s {
	case Available, Occupied, Maintenance:
		return []byte(s.String()), nil
	default:
		return nil, fault.ErrInvalidStatus
	}
}

// UnmarshalText - convert the status value from JSON to enumeration
//
// an empty value is treated as available
func (s *Status) UnmarshalText(text []byte) error {
	status, err := ParseStatus(string(text))
	if nil != err {
		return err
	}
	*s = status
	return nil
}

// ParseStatus - decode the text form of a status
func ParseStatus(text string) (Status, error) {
	switch text {
	case "", "available":
		return Available, nil
	case "occupied":
		return Occupied, nil
	case "maintenance":
		return Maintenance, nil
	default:
		return Available, fault.ErrInvalidStatus
	}
}
