// Package smallstr implements a growable UTF-8 string that stores short
// content inline and spills to a heap buffer when the inline capacity is
// exceeded.
//
// A smallstr.String is the growable companion of inline.Str: it shares the
// same inline capacity (inline.MaxLen bytes) but accepts writes of any
// length, moving to heap storage the first time the content outgrows the
// inline buffer. The write API follows strings.Builder so a String can be
// handed to anything expecting an io.Writer.
//
// Spilling is one-way for a value's life: once on the heap, content stays
// on the heap even if later truncated below the inline capacity. Reset
// returns to inline storage.
package smallstr

import (
	"bytes"
	"unicode/utf8"

	"github.com/arloliu/mestr/inline"
	"github.com/arloliu/mestr/internal/hash"
)

// String is a growable UTF-8 string with inline storage for up to
// inline.MaxLen bytes. The zero value is an empty string ready for use.
//
// Callers must only write whole, valid UTF-8 through WriteString, Write,
// and WriteRune; WriteByte is restricted to ASCII for the same reason.
type String struct {
	buf  [inline.MaxLen]byte
	heap []byte // non-nil once spilled; holds the whole content
	n    int    // content length while inline; unused once spilled
}

// New creates an empty String.
func New() *String {
	return &String{}
}

// FromString creates a String holding s, spilling immediately when s does
// not fit inline.
func FromString(s string) *String {
	str := New()
	str.WriteString(s) //nolint:errcheck // never fails
	return str
}

// Len returns the content length in bytes.
func (s *String) Len() int {
	if s.heap != nil {
		return len(s.heap)
	}

	return s.n
}

// IsEmpty reports whether the content is empty.
func (s *String) IsEmpty() bool {
	return s.Len() == 0
}

// IsInline reports whether the content is currently stored inline.
func (s *String) IsInline() bool {
	return s.heap == nil
}

// Cap returns the total capacity of the current storage in bytes.
func (s *String) Cap() int {
	if s.heap != nil {
		return cap(s.heap)
	}

	return inline.MaxLen
}

// Bytes returns the content bytes. The slice aliases the receiver's storage
// and is invalidated by the next write.
func (s *String) Bytes() []byte {
	if s.heap != nil {
		return s.heap
	}

	return s.buf[:s.n]
}

// String returns the content as a Go string.
func (s *String) String() string {
	return string(s.Bytes())
}

// Grow ensures capacity for at least n more bytes. It spills to the heap
// when the inline buffer cannot hold the projected content.
func (s *String) Grow(n int) {
	if n <= 0 {
		return
	}
	if s.heap == nil {
		if s.n+n <= inline.MaxLen {
			return
		}
		s.spill(s.n + n)

		return
	}
	if cap(s.heap)-len(s.heap) < n {
		grown := make([]byte, len(s.heap), len(s.heap)+n)
		copy(grown, s.heap)
		s.heap = grown
	}
}

// spill moves the inline content to a heap buffer with the given capacity.
func (s *String) spill(capacity int) {
	heap := make([]byte, s.n, capacity)
	copy(heap, s.buf[:s.n])
	s.heap = heap
	s.n = 0
}

// WriteString appends text to the content. The returned error is always nil.
func (s *String) WriteString(text string) (int, error) {
	if s.heap == nil {
		if s.n+len(text) <= inline.MaxLen {
			copy(s.buf[s.n:], text)
			s.n += len(text)

			return len(text), nil
		}
		s.spill(s.n + len(text))
	}
	s.heap = append(s.heap, text...)

	return len(text), nil
}

// Write appends b to the content, implementing io.Writer.
// b must be whole valid UTF-8. The returned error is always nil.
func (s *String) Write(b []byte) (int, error) {
	if s.heap == nil {
		if s.n+len(b) <= inline.MaxLen {
			copy(s.buf[s.n:], b)
			s.n += len(b)

			return len(b), nil
		}
		s.spill(s.n + len(b))
	}
	s.heap = append(s.heap, b...)

	return len(b), nil
}

// WriteByte appends a single ASCII byte. The returned error is always nil.
func (s *String) WriteByte(c byte) error {
	if s.heap == nil && s.n < inline.MaxLen {
		s.buf[s.n] = c
		s.n++

		return nil
	}
	if s.heap == nil {
		s.spill(s.n + 1)
	}
	s.heap = append(s.heap, c)

	return nil
}

// WriteRune appends the UTF-8 encoding of r and returns its byte length.
// The returned error is always nil.
func (s *String) WriteRune(r rune) (int, error) {
	var buf [utf8.UTFMax]byte
	n := utf8.EncodeRune(buf[:], r)

	return s.Write(buf[:n])
}

// Truncate shortens the content to n bytes without changing the storage
// mode: a spilled String stays on the heap. It panics when n exceeds the
// current length or does not fall on a rune boundary.
func (s *String) Truncate(n int) {
	content := s.Bytes()
	if n > len(content) {
		panic("smallstr: truncation length out of range")
	}
	if n < len(content) && !utf8.RuneStart(content[n]) {
		panic("smallstr: truncation not on rune boundary")
	}

	if s.heap != nil {
		s.heap = s.heap[:n]
		return
	}
	s.n = n
}

// Reset empties the String and returns it to inline storage, releasing any
// heap buffer.
func (s *String) Reset() {
	s.heap = nil
	s.n = 0
}

// Equal reports whether s and o hold identical content, regardless of
// storage mode.
func (s *String) Equal(o *String) bool {
	return bytes.Equal(s.Bytes(), o.Bytes())
}

// Compare returns -1, 0, or 1 ordering s and o lexicographically by content
// bytes.
func (s *String) Compare(o *String) int {
	return bytes.Compare(s.Bytes(), o.Bytes())
}

// Hash64 returns the xxHash64 of the content, identical for equal content
// in either storage mode.
func (s *String) Hash64() uint64 {
	return hash.ContentBytes(s.Bytes())
}
