package hashes

import (
	"hash"

	"github.com/minio/sha256-simd"
)

// DoubleHashWriter is used to incrementally double hash data without
// concatenating all of the data to a single buffer. It exposes an io.Writer
// api and a Finalize function to get the resulting hash.
// DoubleHashWriter.Write(slice).Finalize == Hash256H(slice)
type DoubleHashWriter struct {
	inner hash.Hash
}

// NewDoubleHashWriter Returns a new DoubleHashWriter
func NewDoubleHashWriter() *DoubleHashWriter {
	return &DoubleHashWriter{sha256.New()}
}

// Write will always return (len(p), nil)
func (h *DoubleHashWriter) Write(p []byte) (n int, err error) {
	return h.inner.Write(p)
}

// Finalize returns the resulting double hash
func (h *DoubleHashWriter) Finalize() Hash {
	firstHashInTheSum := h.inner.Sum(nil)
	return sha256.Sum256(firstHashInTheSum)
}
