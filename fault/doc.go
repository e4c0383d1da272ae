// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package fault - shared error values for the spot store
//
// each error is a typed string constant; the IsErr* functions test
// the class of an error, including wrapped errors, so callers can
// branch on "not found" or "invalid input" without string matching.
// Cancelled errors mark a write the user declined to sign.
package fault
