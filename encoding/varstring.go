// Package encoding implements the length-prefixed string codec used by
// intern-pool snapshots.
package encoding

import (
	"encoding/binary"
	"fmt"

	"github.com/arloliu/mestr/errs"
	"github.com/arloliu/mestr/internal/pool"
)

// VarStringEncoder encodes variable-length strings with a uvarint length
// prefix.
//
// Each string is encoded as:
//   - 1-10 bytes: length as unsigned varint
//   - N bytes: string data (UTF-8)
//
// The encoder uses a pooled byte buffer with an amortized growth strategy,
// so encoding many strings performs a small bounded number of allocations.
type VarStringEncoder struct {
	buf   *pool.ByteBuffer
	count int
}

// NewVarStringEncoder creates a new variable-length string encoder backed by
// a pooled buffer. Call Reset when done to return the buffer to the pool.
func NewVarStringEncoder() *VarStringEncoder {
	return &VarStringEncoder{
		buf: pool.GetSnapshotBuffer(),
	}
}

// Write encodes a single string with a uvarint length prefix.
func (e *VarStringEncoder) Write(text string) {
	e.count++

	// Pre-grow for the worst-case prefix plus the string data.
	e.buf.Grow(binary.MaxVarintLen64 + len(text))

	e.buf.B = binary.AppendUvarint(e.buf.B, uint64(len(text)))
	e.buf.MustWriteString(text)
}

// WriteSlice encodes a slice of strings with a single buffer pre-allocation.
func (e *VarStringEncoder) WriteSlice(texts []string) {
	totalSize := 0
	for _, text := range texts {
		totalSize += binary.MaxVarintLen64 + len(text)
	}
	e.buf.Grow(totalSize)

	for _, text := range texts {
		e.buf.B = binary.AppendUvarint(e.buf.B, uint64(len(text)))
		e.buf.MustWriteString(text)
		e.count++
	}
}

// Bytes returns the encoded data.
//
// The returned slice shares the underlying pooled buffer with the encoder
// and is invalidated by Reset. Do not modify or retain it past Reset.
func (e *VarStringEncoder) Bytes() []byte {
	return e.buf.Bytes()
}

// Len returns the number of strings encoded since creation or the last Reset.
func (e *VarStringEncoder) Len() int {
	return e.count
}

// Size returns the total size of encoded data in bytes.
func (e *VarStringEncoder) Size() int {
	return e.buf.Len()
}

// Reset clears the encoder state and returns the buffer to the pool.
//
// After calling Reset, the encoder should not be used again.
func (e *VarStringEncoder) Reset() {
	if e.buf != nil {
		pool.PutSnapshotBuffer(e.buf)
		e.buf = nil
	}
	e.count = 0
}

// VarStringDecoder decodes strings produced by VarStringEncoder.
//
// Decoded strings are freshly copied and independent of the input buffer.
type VarStringDecoder struct {
	data []byte
	off  int
}

// NewVarStringDecoder creates a decoder over the encoded data.
func NewVarStringDecoder(data []byte) *VarStringDecoder {
	return &VarStringDecoder{data: data}
}

// More reports whether undecoded bytes remain.
func (d *VarStringDecoder) More() bool {
	return d.off < len(d.data)
}

// Next decodes the next string.
//
// It returns errs.ErrSnapshotTruncated when the remaining bytes cannot hold
// the declared string length, and a format error for a malformed prefix.
func (d *VarStringDecoder) Next() (string, error) {
	length, n := binary.Uvarint(d.data[d.off:])
	if n <= 0 {
		return "", fmt.Errorf("malformed length prefix at offset %d: %w", d.off, errs.ErrSnapshotTruncated)
	}

	start := d.off + n
	end := start + int(length)
	if length > uint64(len(d.data)) || end > len(d.data) {
		return "", fmt.Errorf("string of length %d at offset %d: %w", length, d.off, errs.ErrSnapshotTruncated)
	}

	d.off = end

	return string(d.data[start:end]), nil
}
