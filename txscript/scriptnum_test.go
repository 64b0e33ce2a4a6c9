// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/pkg/errors"
)

// hexToBytes converts the passed hex string into bytes and will panic if there
// is an error. This is only provided for the hard-coded constants so errors in
// the source code can be detected. It will only (and must only) be called with
// hard-coded values.
func hexToBytes(s string) []byte {
	b, err := hex.DecodeString(s)
	if err != nil {
		panic("invalid hex in source file: " + s)
	}
	return b
}

// TestScriptNumBytes ensures that converting from integral script numbers to
// byte representations works as expected.
func TestScriptNumBytes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		num        scriptNum
		serialized []byte
	}{
		{0, nil},
		{1, hexToBytes("01")},
		{-1, hexToBytes("81")},
		{127, hexToBytes("7f")},
		{-127, hexToBytes("ff")},
		{128, hexToBytes("8000")},
		{-128, hexToBytes("8080")},
		{255, hexToBytes("ff00")},
		{256, hexToBytes("0001")},
		{-256, hexToBytes("0081")},
		{32767, hexToBytes("ff7f")},
		{-32768, hexToBytes("008080")},
		{2147483647, hexToBytes("ffffff7f")},
		{-2147483647, hexToBytes("ffffffff")},
		{500000000, hexToBytes("0065cd1d")},
		{9223372036854775807, hexToBytes("ffffffffffffff7f")},
	}

	for _, test := range tests {
		gotBytes := test.num.Bytes()
		if !bytes.Equal(gotBytes, test.serialized) {
			t.Errorf("Bytes: did not get expected bytes for %d - got %x, want %x",
				test.num, gotBytes, test.serialized)
			continue
		}

		num, err := makeScriptNum(test.serialized)
		if err != nil {
			t.Errorf("makeScriptNum(%x): unexpected error %v", test.serialized, err)
			continue
		}
		if num != test.num {
			t.Errorf("makeScriptNum(%x): got %d, want %d", test.serialized, num, test.num)
		}
	}
}

// TestMakeScriptNum ensures that converting from byte representations to
// integral script numbers works as expected, including non-minimal
// encodings and overflow.
func TestMakeScriptNum(t *testing.T) {
	t.Parallel()

	tests := []struct {
		serialized []byte
		num        scriptNum
		err        error
	}{
		{nil, 0, nil},
		{hexToBytes("00"), 0, nil},
		{hexToBytes("80"), 0, nil},
		{hexToBytes("0100"), 1, nil},
		{hexToBytes("0180"), -1, nil},
		{hexToBytes("ffffffffff"), -549755813887, nil},
		{hexToBytes("000000000000000001"), 0, errNumberTooBig},
	}

	for _, test := range tests {
		num, err := makeScriptNum(test.serialized)
		if !errors.Is(err, test.err) {
			t.Errorf("makeScriptNum(%x): got error %v, want %v", test.serialized, err, test.err)
			continue
		}
		if num != test.num {
			t.Errorf("makeScriptNum(%x): got %d, want %d", test.serialized, num, test.num)
		}
	}
}

func TestAsBool(t *testing.T) {
	t.Parallel()

	tests := []struct {
		item []byte
		want bool
	}{
		{nil, false},
		{[]byte{}, false},
		{hexToBytes("00"), false},
		{hexToBytes("0000"), false},
		{hexToBytes("80"), false},
		{hexToBytes("0080"), false},
		{hexToBytes("01"), true},
		{hexToBytes("8000"), true},
		{hexToBytes("0001"), true},
	}

	for _, test := range tests {
		if got := asBool(test.item); got != test.want {
			t.Errorf("asBool(%x): got %v, want %v", test.item, got, test.want)
		}
	}
}

func TestScriptNumInt32(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   scriptNum
		want int32
	}{
		{0, 0},
		{-5, -5},
		{2147483647, 2147483647},
		{2147483648, 2147483647},
		{-2147483649, -2147483648},
	}
	for _, test := range tests {
		if got := test.in.Int32(); got != test.want {
			t.Errorf("Int32(%d): got %d, want %d", test.in, got, test.want)
		}
	}
}
