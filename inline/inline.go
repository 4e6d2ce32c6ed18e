// Package inline implements a fixed-capacity string stored entirely within
// the value, avoiding heap allocation for short content.
//
// An inline.Str holds up to MaxLen bytes of UTF-8 data in a fixed-size
// buffer with a length marker. It is a plain value type: assignment and
// argument passing copy the content, and no separate lifecycle exists.
//
// The capacity is derived from the native word size of the target so the
// value occupies three machine words: 22 bytes on 64-bit targets, 10 bytes
// on 32-bit targets.
package inline

import (
	"bytes"
	"unicode/utf8"

	"github.com/arloliu/mestr/errs"
	"github.com/arloliu/mestr/internal/hash"
)

// intSize is the size in bits of the native int type (32 or 64).
const intSize = 32 << (^uint(0) >> 63)

// MaxLen is the maximum length in bytes of an inline string: three machine
// words, less two bytes reserved for the length marker and a conceptual
// terminator. 22 bytes on 64-bit targets, 10 bytes on 32-bit targets.
const MaxLen = 3*(intSize/8) - 2

// Str is a short string stored in a fixed-size buffer without heap
// allocation.
//
// The zero value is an empty string. Bytes past the recorded length are
// always zero for values built through this package's constructors, but
// comparisons must still go through Equal or Compare, which consider only
// the content.
//
// Invariant: the first Len bytes are valid UTF-8. Constructors take the
// validity of their source for granted (Go string literals and validated
// input); MutableBytes is the one escape hatch that can break it, and doing
// so is a caller-contract breach, not a reported error.
type Str struct {
	buf [MaxLen]byte
	len uint8
}

// From creates a Str copying all bytes of src.
//
// It fails with *errs.StringTooLongError when len(src) > MaxLen; on failure
// no partial copy is observable. An empty src is valid, as is a src of
// exactly MaxLen bytes. src must be valid UTF-8.
func From(src []byte) (Str, error) {
	if len(src) > MaxLen {
		return Str{}, &errs.StringTooLongError{ActualLen: len(src), MaxLen: MaxLen}
	}

	var s Str
	copy(s.buf[:], src)
	s.len = uint8(len(src))

	return s, nil
}

// FromString creates a Str copying all bytes of src.
// See From for the length contract.
func FromString(src string) (Str, error) {
	if len(src) > MaxLen {
		return Str{}, &errs.StringTooLongError{ActualLen: len(src), MaxLen: MaxLen}
	}

	var s Str
	copy(s.buf[:], src)
	s.len = uint8(len(src))

	return s, nil
}

// FromRune creates a Str holding the UTF-8 encoding of r.
// A single rune always fits: MaxLen is at least 10 and UTF-8 needs at most 4 bytes.
func FromRune(r rune) Str {
	var s Str
	s.len = uint8(utf8.EncodeRune(s.buf[:], r))

	return s
}

// Len returns the length of the string in bytes.
func (s Str) Len() int {
	return int(s.len)
}

// IsEmpty reports whether the string is empty.
func (s Str) IsEmpty() bool {
	return s.len == 0
}

// Bytes returns the stored content, exactly the first Len bytes of the
// buffer. The returned slice aliases the receiver; it stays valid while the
// receiver does and reflects later in-place mutation.
func (s *Str) Bytes() []byte {
	return s.buf[:s.len]
}

// MutableBytes grants in-place mutation of the stored content.
//
// Contract: the caller must keep the full returned range valid UTF-8 and
// must not attempt to change the logical length through this handle; length
// changes require reconstruction via From. Violating the contract corrupts
// the value silently.
func (s *Str) MutableBytes() []byte {
	return s.buf[:s.len]
}

// String returns the content as a Go string.
func (s Str) String() string {
	return string(s.buf[:s.len])
}

// Equal reports whether s and o hold identical content, independent of
// unused trailing buffer bytes.
func (s Str) Equal(o Str) bool {
	return bytes.Equal(s.buf[:s.len], o.buf[:o.len])
}

// EqualString reports whether the content equals str.
func (s Str) EqualString(str string) bool {
	return string(s.buf[:s.len]) == str
}

// Compare returns -1, 0, or 1 ordering s and o lexicographically by content
// bytes.
func (s Str) Compare(o Str) int {
	return bytes.Compare(s.buf[:s.len], o.buf[:o.len])
}

// Hash64 returns the xxHash64 of the content. Two Strs with equal content
// hash identically regardless of trailing buffer bytes.
func (s Str) Hash64() uint64 {
	return hash.ContentBytes(s.buf[:s.len])
}

// TryAppend appends src in place when the result still fits.
//
// It reports whether the append happened; on false the value is untouched
// and the caller must fall back to heap storage. src must be whole valid
// UTF-8 so the invariant is preserved.
func (s *Str) TryAppend(src []byte) bool {
	if int(s.len)+len(src) > MaxLen {
		return false
	}

	copy(s.buf[s.len:], src)
	s.len += uint8(len(src))

	return true
}

// Truncate shortens the content to n bytes in place.
//
// It panics when n exceeds the current length or does not fall on a UTF-8
// rune boundary, mirroring slice bounds behavior; truncation never
// allocates and never fails with a reported error.
func (s *Str) Truncate(n int) {
	if n > int(s.len) {
		panic("inline: truncation length out of range")
	}
	if n < int(s.len) && !utf8.RuneStart(s.buf[n]) {
		panic("inline: truncation not on rune boundary")
	}

	// Zero the tail so trailing bytes stay in their constructed state.
	for i := n; i < int(s.len); i++ {
		s.buf[i] = 0
	}
	s.len = uint8(n)
}
