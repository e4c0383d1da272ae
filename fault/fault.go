// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

import (
	"errors"
	"strings"
)

// GenericError - error base
type GenericError string

// to allow for different classes of errors
type CancelledError GenericError
type ExistsError GenericError
type InvalidError GenericError
type NotFoundError GenericError
type ProcessError GenericError
type RecordError GenericError

// common errors - keep in alphabetic order
var (
	ErrAlreadyInitialised     = ExistsError("already initialised")
	ErrCannotListKeys         = ProcessError("ledger cannot list keys")
	ErrCertificateFileExists  = ExistsError("certificate file already exists")
	ErrIncompatibleDatabase   = InvalidError("incompatible database version")
	ErrInvalidDatabaseBackend = InvalidError("invalid database backend")
	ErrInvalidDelay           = InvalidError("delay must not be negative")
	ErrInvalidFromTime        = InvalidError("available from time is invalid")
	ErrInvalidIpAddress       = InvalidError("invalid IP address")
	ErrInvalidPrice           = InvalidError("price per hour is invalid")
	ErrInvalidSealKey         = InvalidError("seal key must be 32 bytes")
	ErrInvalidSealKind        = InvalidError("invalid seal kind")
	ErrInvalidSigningKey      = InvalidError("invalid signing key")
	ErrInvalidStatus          = InvalidError("invalid spot status")
	ErrInvalidUntilTime       = InvalidError("available until time is invalid")
	ErrKeyFileExists          = ExistsError("key file already exists")
	ErrLedgerUnavailable      = ProcessError("ledger is not available")
	ErrMalformedIndex         = RecordError("malformed spot index")
	ErrMalformedRecord        = RecordError("malformed spot record")
	ErrMissingFromTime        = InvalidError("available from time is required")
	ErrMissingLocation        = InvalidError("location is required")
	ErrMissingParameters      = InvalidError("missing parameters")
	ErrMissingPrice           = InvalidError("price per hour is required")
	ErrMissingSpotId          = InvalidError("spot id is required")
	ErrMissingUntilTime       = InvalidError("available until time is required")
	ErrNotConnected           = InvalidError("please connect wallet first")
	ErrNotInitialised         = NotFoundError("not initialised")
	ErrRateLimiting           = ProcessError("rate limit exceeded")
	ErrSealOpenFailed         = ProcessError("sealed location could not be opened")
	ErrSpotNotFound           = NotFoundError("parking spot not found")
	ErrTooManyConnections     = ProcessError("too many connections")
	ErrUserRejected           = CancelledError("user rejected transaction")
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e CancelledError) Error() string { return string(e) }
func (e ExistsError) Error() string    { return string(e) }
func (e InvalidError) Error() string   { return string(e) }
func (e NotFoundError) Error() string  { return string(e) }
func (e ProcessError) Error() string   { return string(e) }
func (e RecordError) Error() string    { return string(e) }

// determine the class of an error, looking through any wrapping
func IsErrCancelled(e error) bool { var x CancelledError; return errors.As(e, &x) }
func IsErrExists(e error) bool    { var x ExistsError; return errors.As(e, &x) }
func IsErrInvalid(e error) bool   { var x InvalidError; return errors.As(e, &x) }
func IsErrNotFound(e error) bool  { var x NotFoundError; return errors.As(e, &x) }
func IsErrProcess(e error) bool   { var x ProcessError; return errors.As(e, &x) }
func IsErrRecord(e error) bool    { var x RecordError; return errors.As(e, &x) }

// the marker that external signers put in their rejection text
const userRejectedMarker = "user rejected"

// IsUserRejection - true if the error is a user cancellation, either
// from this package or from a signer that only reports text
func IsUserRejection(e error) bool {
	if nil == e {
		return false
	}
	if IsErrCancelled(e) {
		return true
	}
	return strings.Contains(strings.ToLower(e.Error()), userRejectedMarker)
}
