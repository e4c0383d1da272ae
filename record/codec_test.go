// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package record_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/parkshare/fault"
	"github.com/bitmark-inc/parkshare/record"
	"github.com/bitmark-inc/parkshare/spot"
)

func TestEncodeIsDeterministicAndOmitsId(t *testing.T) {
	s := spot.Spot{
		Id:             "1700000000000-abcdefg",
		Location:       "FHE-WA==",
		PricePerHour:   0.02,
		AvailableFrom:  100,
		AvailableUntil: 200,
		Owner:          "0xAAA",
		Status:         spot.Occupied,
	}

	b1, err := record.Encode(&s)
	assert.Nil(t, err, "wrong encode error")
	b2, _ := record.Encode(&s)
	assert.Equal(t, b1, b2, "encoding is not deterministic")

	expected := `{"location":"FHE-WA==","pricePerHour":0.02,"availableFrom":100,"availableUntil":200,"owner":"0xAAA","status":"occupied"}`
	assert.Equal(t, expected, string(b1), "wrong packed record")
	assert.NotContains(t, string(b1), s.Id, "id must not be packed")
}

func TestDecode(t *testing.T) {
	data := []byte(`{"location":"FHE-WA==","pricePerHour":1.5,"availableFrom":300,"availableUntil":400,"owner":"0xBBB","status":"maintenance"}`)

	s, err := record.Decode("id-1", data)
	assert.Nil(t, err, "wrong decode error")
	assert.Equal(t, "id-1", s.Id, "wrong id")
	assert.Equal(t, "FHE-WA==", s.Location, "wrong location")
	assert.Equal(t, 1.5, s.PricePerHour, "wrong price")
	assert.Equal(t, int64(300), s.AvailableFrom, "wrong from")
	assert.Equal(t, int64(400), s.AvailableUntil, "wrong until")
	assert.Equal(t, "0xBBB", s.Owner, "wrong owner")
	assert.Equal(t, spot.Maintenance, s.Status, "wrong status")
}

func TestDecodeMissingStatusIsAvailable(t *testing.T) {
	s, err := record.Decode("id-2", []byte(`{"location":"L","pricePerHour":2,"availableFrom":1,"availableUntil":2,"owner":"0x1"}`))
	assert.Nil(t, err, "wrong decode error")
	assert.Equal(t, spot.Available, s.Status, "wrong status")
}

func TestDecodeMalformed(t *testing.T) {
	items := [][]byte{
		nil,
		[]byte(""),
		[]byte("   "),
		[]byte("{not json"),
		[]byte(`["a","b"]`),
		[]byte("null"),
		[]byte(" null\n"),
		[]byte("42"),
		[]byte(`"spot"`),
		[]byte("true"),
		[]byte(`{"location":"L","status":"reserved"}`),
		[]byte(`{"pricePerHour":"free"}`),
	}

	for i, data := range items {
		s, err := record.Decode("x", data)
		assert.Nil(t, s, "%d: wrong spot", i)
		assert.Equal(t, fault.ErrMalformedRecord, err, "%d: wrong error", i)
		assert.True(t, fault.IsErrRecord(err), "%d: wrong class", i)
	}
}

func TestRecordRoundTrip(t *testing.T) {
	s := spot.Spot{
		Id:             "id-3",
		Location:       "loc",
		PricePerHour:   3.25,
		AvailableFrom:  10,
		AvailableUntil: 20,
		Owner:          "0xCCC",
		Status:         spot.Available,
	}
	b, err := record.Encode(&s)
	assert.Nil(t, err, "wrong encode error")

	d, err := record.Decode(s.Id, b)
	assert.Nil(t, err, "wrong decode error")
	assert.Equal(t, s, *d, "wrong spot")
}

func TestIndex(t *testing.T) {
	b, err := record.EncodeIndex([]string{"a", "b", "a"})
	assert.Nil(t, err, "wrong encode error")
	assert.Equal(t, `["a","b","a"]`, string(b), "wrong packed index")
	assert.Equal(t, []string{"a", "b", "a"}, record.DecodeIndex(b), "wrong ids")

	b, err = record.EncodeIndex(nil)
	assert.Nil(t, err, "wrong encode error")
	assert.Equal(t, `[]`, string(b), "wrong packed empty index")
}

func TestDecodeIndexDefaultsToEmpty(t *testing.T) {
	items := [][]byte{
		nil,
		[]byte(""),
		[]byte("null"),
		[]byte("{}"),
		[]byte("[1,2]"),
		[]byte("garbage"),
	}
	for i, data := range items {
		ids := record.DecodeIndex(data)
		assert.NotNil(t, ids, "%d: nil ids", i)
		assert.Equal(t, 0, len(ids), "%d: wrong count", i)
	}

	_, err := record.DecodeIndexStrict([]byte("garbage"))
	assert.Equal(t, fault.ErrMalformedIndex, err, "wrong strict error")
}
