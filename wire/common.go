// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"encoding/binary"
	"fmt"
	"io"
	"time"

	"github.com/huynhtastic/programmingbitcoin/util/binaryserializer"
	"github.com/huynhtastic/programmingbitcoin/util/hashes"
	"github.com/pkg/errors"
)

// bigEndian is a convenience variable since binary.BigEndian is quite long.
var bigEndian = binary.BigEndian

// MaxVarIntPayload is the maximum payload size for a variable length integer.
const MaxVarIntPayload = 9

// errNoEncodingForType signifies that there's no encoding for the given type.
var errNoEncodingForType = errors.New("there's no encoding for this type")

// uint32Time represents a unix timestamp encoded with a uint32. It is used as
// a way to signal the readElement function how to decode a timestamp into a Go
// time.Time since it is otherwise ambiguous.
type uint32Time time.Time

// int64Time represents a unix timestamp encoded with an int64. It is used as
// a way to signal the readElement function how to decode a timestamp into a Go
// time.Time since it is otherwise ambiguous.
type int64Time time.Time

// readElement reads the next sequence of bytes from r using little endian
// depending on the concrete type of element pointed to.
func readElement(r io.Reader, element interface{}) error {
	// Attempt to read the element based on the concrete type via fast
	// type assertions first.
	switch e := element.(type) {
	case *int32:
		rv, err := binaryserializer.Uint32(r)
		if err != nil {
			return err
		}
		*e = int32(rv)
		return nil

	case *uint32:
		rv, err := binaryserializer.Uint32(r)
		if err != nil {
			return err
		}
		*e = rv
		return nil

	case *int64:
		rv, err := binaryserializer.Uint64(r)
		if err != nil {
			return err
		}
		*e = int64(rv)
		return nil

	case *uint64:
		rv, err := binaryserializer.Uint64(r)
		if err != nil {
			return err
		}
		*e = rv
		return nil

	case *bool:
		rv, err := binaryserializer.Uint8(r)
		if err != nil {
			return err
		}
		*e = rv != 0x00
		return nil

	// Unix timestamp encoded as a uint32.
	case *uint32Time:
		rv, err := binaryserializer.Uint32(r)
		if err != nil {
			return err
		}
		*e = uint32Time(time.Unix(int64(rv), 0))
		return nil

	// Unix timestamp encoded as an int64.
	case *int64Time:
		rv, err := binaryserializer.Uint64(r)
		if err != nil {
			return err
		}
		*e = int64Time(time.Unix(int64(rv), 0))
		return nil

	// Message header checksum.
	case *[4]byte:
		_, err := io.ReadFull(r, e[:])
		return errors.WithStack(err)

	// IP address.
	case *[16]byte:
		_, err := io.ReadFull(r, e[:])
		return errors.WithStack(err)

	case *hashes.Hash:
		_, err := io.ReadFull(r, e[:])
		return errors.WithStack(err)

	case *ServiceFlag:
		rv, err := binaryserializer.Uint64(r)
		if err != nil {
			return err
		}
		*e = ServiceFlag(rv)
		return nil

	case *BitcoinNet:
		rv, err := binaryserializer.Uint32(r)
		if err != nil {
			return err
		}
		*e = BitcoinNet(rv)
		return nil
	}

	return errors.Wrapf(errNoEncodingForType, "couldn't find a way to read type %T", element)
}

// readElements reads multiple items from r. It is equivalent to multiple
// calls to readElement.
func readElements(r io.Reader, elements ...interface{}) error {
	for _, element := range elements {
		err := readElement(r, element)
		if err != nil {
			return err
		}
	}
	return nil
}

// writeElement writes the little endian representation of element to w.
func writeElement(w io.Writer, element interface{}) error {
	// Attempt to write the element based on the concrete type via fast
	// type assertions first.
	switch e := element.(type) {
	case int32:
		return binaryserializer.PutUint32(w, uint32(e))

	case uint32:
		return binaryserializer.PutUint32(w, e)

	case int64:
		return binaryserializer.PutUint64(w, uint64(e))

	case uint64:
		return binaryserializer.PutUint64(w, e)

	case bool:
		if e {
			return binaryserializer.PutUint8(w, 0x01)
		}
		return binaryserializer.PutUint8(w, 0x00)

	// Message header checksum.
	case [4]byte:
		_, err := w.Write(e[:])
		return errors.WithStack(err)

	// IP address.
	case [16]byte:
		_, err := w.Write(e[:])
		return errors.WithStack(err)

	case *hashes.Hash:
		_, err := w.Write(e[:])
		return errors.WithStack(err)

	case ServiceFlag:
		return binaryserializer.PutUint64(w, uint64(e))

	case BitcoinNet:
		return binaryserializer.PutUint32(w, uint32(e))
	}

	return errors.Wrapf(errNoEncodingForType, "couldn't find a way to write type %T", element)
}

// writeElements writes multiple items to w. It is equivalent to multiple
// calls to writeElement.
func writeElements(w io.Writer, elements ...interface{}) error {
	for _, element := range elements {
		err := writeElement(w, element)
		if err != nil {
			return err
		}
	}
	return nil
}

// ReadVarString reads a variable length string from r and returns it as a Go
// string. A variable length string is encoded as a variable length integer
// containing the length of the string followed by the bytes that represent the
// string itself. An error is returned if the length is greater than the
// maximum block payload size since it helps protect against memory exhaustion
// attacks and forced panics through malformed messages.
func ReadVarString(r io.Reader) (string, error) {
	count, err := binaryserializer.ReadVarInt(r)
	if err != nil {
		return "", err
	}

	// Prevent variable length strings that are larger than the maximum
	// message size. It would be possible to cause memory exhaustion and
	// panics without a sane upper bound on this count.
	if count > MaxMessagePayload {
		str := fmt.Sprintf("variable length string is too long "+
			"[count %d, max %d]", count, MaxMessagePayload)
		return "", messageError("ReadVarString", str)
	}

	buf := make([]byte, count)
	_, err = io.ReadFull(r, buf)
	if err != nil {
		return "", errors.WithStack(err)
	}
	return string(buf), nil
}

// WriteVarString serializes str to w as a variable length integer containing
// the length of the string followed by the bytes that represent the string
// itself.
func WriteVarString(w io.Writer, str string) error {
	err := binaryserializer.WriteVarInt(w, uint64(len(str)))
	if err != nil {
		return err
	}
	_, err = w.Write([]byte(str))
	return errors.WithStack(err)
}
