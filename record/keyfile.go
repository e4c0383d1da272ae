// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package record

import (
	"encoding/hex"
	"io/ioutil"
	"os"
	"strings"

	"github.com/bitmark-inc/parkshare/fault"
)

// WriteSecretKeyFile - create a new hex encoded secret key file
//
// an existing file is never overwritten
func WriteSecretKeyFile(fileName string) error {
	if _, err := os.Stat(fileName); nil == err {
		return fault.ErrKeyFileExists
	}
	key, err := NewSecretKey()
	if nil != err {
		return err
	}
	return ioutil.WriteFile(fileName, []byte(hex.EncodeToString(key)+"\n"), 0600)
}

// ReadSecretKeyFile - read a key written by WriteSecretKeyFile
func ReadSecretKeyFile(fileName string) ([]byte, error) {
	data, err := ioutil.ReadFile(fileName)
	if nil != err {
		return nil, err
	}
	key, err := hex.DecodeString(strings.TrimSpace(string(data)))
	if nil != err || secretKeySize != len(key) {
		return nil, fault.ErrInvalidSealKey
	}
	return key, nil
}
