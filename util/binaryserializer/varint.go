package binaryserializer

import (
	"bytes"
	"io"
	"math"

	"github.com/pkg/errors"
)

// MaxVarIntPayload is the maximum payload size for a variable length integer.
const MaxVarIntPayload = 9

// ErrNonCanonicalVarInt is returned when a variable length integer is
// encoded with more bytes than its value requires.
var ErrNonCanonicalVarInt = errors.New("non-canonical varint")

// ReadVarInt reads a variable length integer from r and returns it as a uint64.
func ReadVarInt(r io.Reader) (uint64, error) {
	discriminant, err := Uint8(r)
	if err != nil {
		return 0, err
	}

	var rv, min uint64
	switch discriminant {
	case 0xff:
		rv, err = Uint64(r)
		min = 0x100000000

	case 0xfe:
		var sv uint32
		sv, err = Uint32(r)
		rv, min = uint64(sv), 0x10000

	case 0xfd:
		var sv uint16
		sv, err = Uint16(r)
		rv, min = uint64(sv), 0xfd

	default:
		return uint64(discriminant), nil
	}
	if err != nil {
		return 0, err
	}

	// The encoding is not canonical if the value could have been
	// encoded using fewer bytes.
	if rv < min {
		return 0, errors.Wrapf(ErrNonCanonicalVarInt, "%x - discriminant %x must "+
			"encode a value greater than %x", rv, discriminant, min)
	}
	return rv, nil
}

// WriteVarInt serializes val to w using a variable number of bytes depending
// on its value.
func WriteVarInt(w io.Writer, val uint64) error {
	switch {
	case val < 0xfd:
		return PutUint8(w, uint8(val))

	case val <= math.MaxUint16:
		if err := PutUint8(w, 0xfd); err != nil {
			return err
		}
		return PutUint16(w, uint16(val))

	case val <= math.MaxUint32:
		if err := PutUint8(w, 0xfe); err != nil {
			return err
		}
		return PutUint32(w, uint32(val))
	}

	if err := PutUint8(w, 0xff); err != nil {
		return err
	}
	return PutUint64(w, val)
}

// EncodeVarInt returns the variable length encoding of val.
func EncodeVarInt(val uint64) []byte {
	var buf bytes.Buffer
	buf.Grow(VarIntSerializeSize(val))
	// Writes to a bytes.Buffer never fail.
	_ = WriteVarInt(&buf, val)
	return buf.Bytes()
}

// VarIntSerializeSize returns the number of bytes it would take to serialize
// val as a variable length integer.
func VarIntSerializeSize(val uint64) int {
	switch {
	case val < 0xfd:
		return 1
	case val <= math.MaxUint16:
		return 3
	case val <= math.MaxUint32:
		return 5
	}
	return 9
}
