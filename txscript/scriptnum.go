// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import (
	"github.com/pkg/errors"
)

// maxScriptNumLen is the longest byte encoding accepted for a numeric stack
// item. Eight bytes of sign-magnitude fit an int64.
const maxScriptNumLen = 8

// scriptNum is a numeric value taken from or pushed onto the stack.
//
// Numbers are encoded as little-endian sign-magnitude byte strings with the
// sign in the high bit of the last byte. Zero is the empty byte string, and
// an extra 0x00 or 0x80 byte is appended when the magnitude already uses the
// high bit:
//
//	 0    -> []
//	 1    -> [0x01]
//	-1    -> [0x81]
//	 127  -> [0x7f]
//	-127  -> [0xff]
//	 128  -> [0x80 0x00]
//	-128  -> [0x80 0x80]
//	 255  -> [0xff 0x00]
//	 256  -> [0x00 0x01]
//	-32767 -> [0xff 0xff]
type scriptNum int64

// Bytes returns the minimal encoding of n.
func (n scriptNum) Bytes() []byte {
	if n == 0 {
		return []byte{}
	}

	isNegative := n < 0
	magnitude := uint64(n)
	if isNegative {
		magnitude = uint64(-n)
	}

	result := make([]byte, 0, 9)
	for magnitude > 0 {
		result = append(result, byte(magnitude&0xff))
		magnitude >>= 8
	}

	if result[len(result)-1]&0x80 != 0 {
		extraByte := byte(0x00)
		if isNegative {
			extraByte = 0x80
		}
		result = append(result, extraByte)
	} else if isNegative {
		result[len(result)-1] |= 0x80
	}

	return result
}

// Int32 returns n clamped to the int32 range.
func (n scriptNum) Int32() int32 {
	if n > maxInt32 {
		return maxInt32
	}
	if n < minInt32 {
		return minInt32
	}
	return int32(n)
}

const (
	maxInt32 = 1<<31 - 1
	minInt32 = -1 << 31
)

// makeScriptNum decodes v. Non-minimal encodings are accepted. Encodings
// longer than maxScriptNumLen return errNumberTooBig.
func makeScriptNum(v []byte) (scriptNum, error) {
	if len(v) > maxScriptNumLen {
		return 0, errors.Wrapf(errNumberTooBig, "numeric value encoded as %x is %d bytes "+
			"which exceeds the max allowed of %d", v, len(v), maxScriptNumLen)
	}
	if len(v) == 0 {
		return 0, nil
	}

	var result uint64
	for i := len(v) - 1; i >= 0; i-- {
		b := v[i]
		if i == len(v)-1 {
			b &= 0x7f
		}
		result = result<<8 | uint64(b)
	}

	if v[len(v)-1]&0x80 != 0 {
		return -scriptNum(result), nil
	}
	return scriptNum(result), nil
}

// asBool interprets a stack item as a boolean. Any encoding of zero,
// including negative zero, is false.
func asBool(t []byte) bool {
	for i := range t {
		if t[i] != 0 {
			// Negative zero is still zero.
			if i == len(t)-1 && t[i] == 0x80 {
				return false
			}
			return true
		}
	}
	return false
}

// fromBool converts a boolean into the canonical script number encoding.
func fromBool(v bool) []byte {
	if v {
		return []byte{1}
	}
	return nil
}
