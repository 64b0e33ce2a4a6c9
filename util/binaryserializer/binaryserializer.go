// Package binaryserializer reads and writes the little-endian integers and
// variable length integers of the bitcoin wire encoding.
package binaryserializer

import (
	"encoding/binary"
	"io"
	"sync"

	"github.com/pkg/errors"
)

// scratchPool recycles the 8 byte buffers integers are encoded through, since
// a buffer handed to an io.Reader or io.Writer escapes to the heap.
var scratchPool = sync.Pool{
	New: func() interface{} { return new([8]byte) },
}

// readLE reads a size byte little-endian unsigned integer from r.
func readLE(r io.Reader, size int) (uint64, error) {
	scratch := scratchPool.Get().(*[8]byte)
	defer scratchPool.Put(scratch)

	*scratch = [8]byte{}
	if _, err := io.ReadFull(r, scratch[:size]); err != nil {
		return 0, errors.WithStack(err)
	}
	return binary.LittleEndian.Uint64(scratch[:]), nil
}

// writeLE writes the low size bytes of val to w, least significant first.
func writeLE(w io.Writer, size int, val uint64) error {
	scratch := scratchPool.Get().(*[8]byte)
	defer scratchPool.Put(scratch)

	binary.LittleEndian.PutUint64(scratch[:], val)
	_, err := w.Write(scratch[:size])
	return errors.WithStack(err)
}

// Uint8 reads a single byte from r.
func Uint8(r io.Reader) (uint8, error) {
	v, err := readLE(r, 1)
	return uint8(v), err
}

// Uint16 reads a 2 byte little-endian integer from r.
func Uint16(r io.Reader) (uint16, error) {
	v, err := readLE(r, 2)
	return uint16(v), err
}

// Uint32 reads a 4 byte little-endian integer from r, as used for versions,
// output indexes, sequences and lock times.
func Uint32(r io.Reader) (uint32, error) {
	v, err := readLE(r, 4)
	return uint32(v), err
}

// Uint64 reads an 8 byte little-endian integer from r.
func Uint64(r io.Reader) (uint64, error) {
	return readLE(r, 8)
}

// PutUint8 writes val to w as a single byte.
func PutUint8(w io.Writer, val uint8) error {
	return writeLE(w, 1, uint64(val))
}

// PutUint16 writes val to w as 2 little-endian bytes.
func PutUint16(w io.Writer, val uint16) error {
	return writeLE(w, 2, uint64(val))
}

// PutUint32 writes val to w as 4 little-endian bytes.
func PutUint32(w io.Writer, val uint32) error {
	return writeLE(w, 4, uint64(val))
}

// PutUint64 writes val to w as 8 little-endian bytes.
func PutUint64(w io.Writer, val uint64) error {
	return writeLE(w, 8, val)
}
