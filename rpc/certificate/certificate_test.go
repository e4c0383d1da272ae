// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package certificate_test

import (
	"crypto/tls"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/parkshare/fault"
	"github.com/bitmark-inc/parkshare/fixtures"
	"github.com/bitmark-inc/parkshare/rpc/certificate"
)

func TestGenerateAndGet(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	dir, err := ioutil.TempDir("", "certificate")
	if nil != err {
		t.Fatalf("temp dir error: %s", err)
	}
	defer os.RemoveAll(dir)

	cer := filepath.Join(dir, "rpc.crt")
	key := filepath.Join(dir, "rpc.key")

	err = certificate.Generate("test", cer, key, []string{"127.0.0.1"})
	assert.Nil(t, err, "wrong Generate")

	tlsConfig, fingerprint, err := certificate.Get(logger.New(fixtures.LogCategory), "test", cer, key)
	assert.Nil(t, err, "wrong Get")

	pair, _ := tls.LoadX509KeyPair(cer, key)
	assert.Equal(t, sha3.Sum256(pair.Certificate[0]), fingerprint, "wrong fingerprint")
	assert.Equal(t, pair.Certificate, tlsConfig.Certificates[0].Certificate, "wrong config")

	err = certificate.Generate("test", cer, key, nil)
	assert.Equal(t, fault.ErrCertificateFileExists, err, "must not overwrite")

	_ = os.Remove(cer)
	err = certificate.Generate("test", cer, key, nil)
	assert.Equal(t, fault.ErrKeyFileExists, err, "must not overwrite key")
}

func TestGetMissing(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	_, _, err := certificate.Get(logger.New(fixtures.LogCategory), "test", "/nonexistent/rpc.crt", "/nonexistent/rpc.key")
	assert.NotNil(t, err, "missing files must fail")
}
