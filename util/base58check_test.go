// Copyright (c) 2013-2014 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/pkg/errors"
)

// decodeHex decodes the passed hex string and panics on bad input since it
// is only used with hard-coded test data.
func decodeHex(hexStr string) []byte {
	b, err := hex.DecodeString(hexStr)
	if err != nil {
		panic("invalid hex string in test source: err " + err.Error() +
			", hex: " + hexStr)
	}
	return b
}

var checkEncodingStringTests = []struct {
	version byte
	in      string
	out     string
}{
	{0x00, "a802fc56c704ce87c42d7c92eb75e7896bdc41ae", "1GKN6gJBgvet8S92qiQjVxEaVJ5eoJE9s2"},
	{0x05, "74d691da1574e6b3c192ecfb52cc8984ee7b6c56", "3CLoMMyuoDQTPRD3XYZtCvgvkadrAdvdXh"},
	{0x6f, "41243614aecd13819d7a7f348a4a07fbcb29d8e5", "mmTPbXQFxboEtNRkwfh6K51jvdtHLxGeMA"},
	{0x00, "0000000000000000000000000000000000000000", "1111111111111111111114oLvT2"},
	{0x00, "00000000000000000000000000000000000000", "111111111111111111117K4nzc"},
}

func TestBase58Check(t *testing.T) {
	for x, test := range checkEncodingStringTests {
		payload := decodeHex(test.in)

		// test encoding
		if res := CheckEncode(payload, test.version); res != test.out {
			t.Errorf("CheckEncode test #%d failed: got %s, want: %s", x, res, test.out)
		}

		// test decoding
		res, version, err := CheckDecode(test.out)
		if err != nil {
			t.Errorf("CheckDecode test #%d failed with err: %v", x, err)
		} else if version != test.version {
			t.Errorf("CheckDecode test #%d failed: got version: %d want: %d", x, version, test.version)
		} else if !bytes.Equal(res, payload) {
			t.Errorf("CheckDecode test #%d failed: got: %x want: %x", x, res, payload)
		}
	}
}

func TestBase58CheckDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		err  error
	}{
		// The last character is changed, which keeps the length but breaks
		// the checksum.
		{"corrupted", "1GKN6gJBgvet8S92qiQjVxEaVJ5eoJE9s3", ErrInvalidAddressChecksum},
		{"empty", "", ErrInvalidFormat},
		{"too short", "1111", ErrInvalidFormat},
		{"invalid character", "1GKN6gJBgvet8S92qiQjVxEaVJ5eoJE9s0", ErrInvalidFormat},
	}

	for _, test := range tests {
		_, _, err := CheckDecode(test.in)
		if !errors.Is(err, test.err) {
			t.Errorf("CheckDecode %s: got error %v, want %v", test.name, err, test.err)
		}
	}
}

// TestBase58CheckCorruptEveryByte flips each byte of an encoded payload and
// makes sure the checksum catches it.
func TestBase58CheckCorruptEveryByte(t *testing.T) {
	payload := decodeHex("74d691da1574e6b3c192ecfb52cc8984ee7b6c56")
	encoded := CheckEncode(payload, 0x05)
	for i := 0; i < len(encoded); i++ {
		corrupted := []byte(encoded)
		if corrupted[i] == 'z' {
			corrupted[i] = 'y'
		} else {
			corrupted[i] = 'z'
		}
		_, _, err := CheckDecode(string(corrupted))
		if err == nil {
			t.Errorf("CheckDecode with character %d changed: unexpected success", i)
		}
	}
}
