// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package record

import (
	"crypto/rand"
	"encoding/base64"
	"io"
	"strings"

	"golang.org/x/crypto/nacl/secretbox"

	"github.com/bitmark-inc/parkshare/fault"
)

// seal kinds for configuration
const (
	SealObfuscate = "obfuscate"
	SealSecretBox = "secretbox"
)

const (
	obfuscatePrefix = "FHE-"
	secretBoxPrefix = "NACL-"
	secretKeySize   = 32
	nonceSize       = 24
)

// Sealer - turn a plain location into the opaque token that is stored
type Sealer interface {
	Seal(string) (string, error)
	Open(string) (string, error)
}

// NewSealer - select a sealer by its configured kind
func NewSealer(kind string, key []byte) (Sealer, error) {
	switch kind {
	case "", SealObfuscate:
		return Obfuscator{}, nil
	case SealSecretBox:
		return NewSecretBox(key)
	default:
		return nil, fault.ErrInvalidSealKind
	}
}

// Obfuscator - reversible text encoding only
//
// this provides NO confidentiality, anyone reading the ledger can
// recover the location
type Obfuscator struct{}

// Seal - obfuscate a location
func (Obfuscator) Seal(plain string) (string, error) {
	return obfuscatePrefix + base64.StdEncoding.EncodeToString([]byte(plain)), nil
}

// Open - deobfuscate a location
func (Obfuscator) Open(token string) (string, error) {
	if !strings.HasPrefix(token, obfuscatePrefix) {
		return "", fault.ErrSealOpenFailed
	}
	b, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(token, obfuscatePrefix))
	if nil != err {
		return "", fault.ErrSealOpenFailed
	}
	return string(b), nil
}

// SecretBox - symmetric authenticated encryption of locations
type SecretBox struct {
	key [secretKeySize]byte
}

// NewSecretBox - create a sealer from a 32 byte key
func NewSecretBox(key []byte) (*SecretBox, error) {
	if secretKeySize != len(key) {
		return nil, fault.ErrInvalidSealKey
	}
	s := &SecretBox{}
	copy(s.key[:], key)
	return s, nil
}

// Seal - encrypt a location with a fresh random nonce
func (s *SecretBox) Seal(plain string) (string, error) {
	var nonce [nonceSize]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); nil != err {
		return "", err
	}
	box := secretbox.Seal(nonce[:], []byte(plain), &nonce, &s.key)
	return secretBoxPrefix + base64.StdEncoding.EncodeToString(box), nil
}

// Open - decrypt a location
func (s *SecretBox) Open(token string) (string, error) {
	if !strings.HasPrefix(token, secretBoxPrefix) {
		return "", fault.ErrSealOpenFailed
	}
	box, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(token, secretBoxPrefix))
	if nil != err || len(box) < nonceSize+secretbox.Overhead {
		return "", fault.ErrSealOpenFailed
	}

	var nonce [nonceSize]byte
	copy(nonce[:], box[:nonceSize])
	plain, ok := secretbox.Open(nil, box[nonceSize:], &nonce, &s.key)
	if !ok {
		return "", fault.ErrSealOpenFailed
	}
	return string(plain), nil
}

// NewSecretKey - random key suitable for NewSecretBox
func NewSecretKey() ([]byte, error) {
	key := make([]byte, secretKeySize)
	if _, err := io.ReadFull(rand.Reader, key); nil != err {
		return nil, err
	}
	return key, nil
}
