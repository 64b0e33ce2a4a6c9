package binaryserializer

import (
	"bytes"
	"io"
	"testing"

	"github.com/pkg/errors"
)

func TestFixedWidthIntegers(t *testing.T) {
	tests := []struct {
		name  string
		put   func(io.Writer) error
		read  func(io.Reader) (uint64, error)
		value uint64
		want  []byte
	}{
		{
			name:  "uint8",
			put:   func(w io.Writer) error { return PutUint8(w, 0xfe) },
			read:  func(r io.Reader) (uint64, error) { v, err := Uint8(r); return uint64(v), err },
			value: 0xfe,
			want:  []byte{0xfe},
		},
		{
			name:  "uint16",
			put:   func(w io.Writer) error { return PutUint16(w, 0x0102) },
			read:  func(r io.Reader) (uint64, error) { v, err := Uint16(r); return uint64(v), err },
			value: 0x0102,
			want:  []byte{0x02, 0x01},
		},
		{
			name:  "uint32 lock time",
			put:   func(w io.Writer) error { return PutUint32(w, 0x00064319) },
			read:  func(r io.Reader) (uint64, error) { v, err := Uint32(r); return uint64(v), err },
			value: 0x00064319,
			want:  []byte{0x19, 0x43, 0x06, 0x00},
		},
		{
			name:  "uint64 amount",
			put:   func(w io.Writer) error { return PutUint64(w, 0x0000000001ef35a1) },
			read:  Uint64,
			value: 0x0000000001ef35a1,
			want:  []byte{0xa1, 0x35, 0xef, 0x01, 0x00, 0x00, 0x00, 0x00},
		},
	}

	for _, test := range tests {
		var buf bytes.Buffer
		if err := test.put(&buf); err != nil {
			t.Errorf("%s: put: %v", test.name, err)
			continue
		}
		if !bytes.Equal(buf.Bytes(), test.want) {
			t.Errorf("%s: wrote %x, want %x", test.name, buf.Bytes(), test.want)
			continue
		}

		// Trailing bytes must be left unread.
		r := bytes.NewReader(append(test.want, 0xff, 0xff))
		got, err := test.read(r)
		if err != nil {
			t.Errorf("%s: read: %v", test.name, err)
			continue
		}
		if got != test.value {
			t.Errorf("%s: read %#x, want %#x", test.name, got, test.value)
		}
		if r.Len() != 2 {
			t.Errorf("%s: %d bytes left, want 2", test.name, r.Len())
		}

		_, err = test.read(bytes.NewReader(test.want[:len(test.want)-1]))
		if !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
			t.Errorf("%s: short read got error %v, want EOF", test.name, err)
		}
	}
}
