// Package cow implements a copy-on-write string value that is exactly one of
// three variants: heap-owned, externally borrowed, or stored inline.
//
// A cow.Str presents one uniform string contract regardless of how the
// content is stored, while minimizing allocation and copying:
//
//   - Owned: a private heap buffer with no external dependency.
//   - Borrowed: a zero-copy reference to caller-owned memory; valid only as
//     long as the source is.
//   - Inlined: an inline.Str value, self-contained with no heap allocation.
//
// Construction from an external source is deterministic: content up to
// inline.MaxLen bytes is inlined, longer content is borrowed, and content
// handed over with Own or OwnBytes is always heap-owned regardless of
// length. Variants only move forward: Borrowed and Inlined promote to Owned
// under mutation, and Owned never demotes.
//
// Equality, ordering, and hashing are defined over content bytes only; the
// active variant is observable through predicates but never participates in
// comparison.
package cow

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"github.com/arloliu/mestr/inline"
	"github.com/arloliu/mestr/internal/hash"
	"github.com/arloliu/mestr/internal/zerocopy"
)

// Variant identifies which storage arm of a Str is active.
//
// The three variants form a small state machine: construction picks the
// initial state, mutation and ForceOwned drive the only transitions
// (Borrowed→Owned, Inlined→Owned), and Owned is absorbing.
type Variant uint8

const (
	// Borrowed references externally owned bytes without copying.
	Borrowed Variant = iota
	// Inlined stores the content in the value itself, without heap allocation.
	Inlined
	// Owned holds an independently owned heap buffer.
	Owned
)

func (v Variant) String() string {
	switch v {
	case Borrowed:
		return "Borrowed"
	case Inlined:
		return "Inlined"
	case Owned:
		return "Owned"
	default:
		return "Unknown"
	}
}

// Str is a memory-optimized string value with copy-on-write semantics.
//
// The zero value is an empty Borrowed string. Exactly one variant is active
// at any time; content is valid UTF-8 in every variant.
//
// A Str with a Borrowed variant must not outlive its source. Owned and
// Inlined values carry no external dependency and may be freely copied
// across goroutines; mutation of any Str requires exclusive access
// (single writer), enforced by the caller as for any Go value.
//
// Str is not comparable with ==; use Equal or Compare. Key maps by
// IntoString() or Hash64(): String() on an Owned value is a zero-copy view
// of the mutable buffer, and a key that mutates after insertion corrupts
// the map.
type Str struct {
	borrowed string
	owned    []byte
	inl      inline.Str
	variant  Variant
}

// From builds a Str from an external string by the construction policy:
// Inlined when len(s) <= inline.MaxLen, otherwise Borrowed.
//
// Borrowing is zero-copy: the result references s's memory and is valid as
// long as s is. Short sources are inlined instead so no lifetime constraint
// is kept alive for them.
func From(s string) Str {
	if is, err := inline.FromString(s); err == nil {
		return Str{variant: Inlined, inl: is}
	}

	return Str{variant: Borrowed, borrowed: s}
}

// FromBytes builds a Str from an external byte slice by the construction
// policy: Inlined (copied) when len(b) <= inline.MaxLen, otherwise Borrowed.
//
// A Borrowed result shares b's memory without copying. The caller must not
// mutate b while the Str is in use and must keep b alive for the Str's
// lifetime; any mutation on the Str itself first copies the content out
// (copy-on-write), so the source bytes are never written through this value.
func FromBytes(b []byte) Str {
	if is, err := inline.From(b); err == nil {
		return Str{variant: Inlined, inl: is}
	}

	return Str{variant: Borrowed, borrowed: zerocopy.String(b)}
}

// Borrow builds a Borrowed Str referencing s regardless of length,
// bypassing the inlining policy. Use it when the source is known to outlive
// the value and even the inline copy is unwanted.
func Borrow(s string) Str {
	return Str{variant: Borrowed, borrowed: s}
}

// Own builds an Owned Str holding a private copy of s.
// The result is Owned regardless of length: established heap ownership is
// preserved rather than re-encoded, even for content that would fit inline.
func Own(s string) Str {
	buf := make([]byte, len(s))
	copy(buf, s)

	return Str{variant: Owned, owned: buf}
}

// OwnBytes builds an Owned Str taking ownership of b without copying.
// The caller hands the slice over and must not use it afterwards.
func OwnBytes(b []byte) Str {
	return Str{variant: Owned, owned: b}
}

// FromInline builds an Inlined Str from an existing inline buffer value.
func FromInline(is inline.Str) Str {
	return Str{variant: Inlined, inl: is}
}

// FromRune builds an Inlined Str holding the UTF-8 encoding of r.
func FromRune(r rune) Str {
	return Str{variant: Inlined, inl: inline.FromRune(r)}
}

// content returns the content bytes of the active variant without copying.
//
// For Borrowed the result aliases the external source and is read-only by
// contract; for Owned and Inlined it aliases the receiver.
func (s *Str) content() []byte {
	switch s.variant {
	case Owned:
		return s.owned
	case Inlined:
		return s.inl.Bytes()
	default:
		return zerocopy.Bytes(s.borrowed)
	}
}

// Variant returns the active variant. Observability only: equality and
// hashing never consult it.
func (s Str) Variant() Variant {
	return s.variant
}

// IsOwned reports whether the Owned variant is active.
func (s Str) IsOwned() bool { return s.variant == Owned }

// IsBorrowed reports whether the Borrowed variant is active.
func (s Str) IsBorrowed() bool { return s.variant == Borrowed }

// IsInlined reports whether the Inlined variant is active.
func (s Str) IsInlined() bool { return s.variant == Inlined }

// Len returns the content length in bytes.
func (s Str) Len() int {
	switch s.variant {
	case Owned:
		return len(s.owned)
	case Inlined:
		return s.inl.Len()
	default:
		return len(s.borrowed)
	}
}

// IsEmpty reports whether the content is empty.
func (s Str) IsEmpty() bool {
	return s.Len() == 0
}

// String returns the content as a Go string.
//
// Borrowed passes the original string through; Owned returns a zero-copy
// view of the private buffer, valid until the next mutation; Inlined copies
// its few bytes out. Use IntoString for a result that must survive
// mutation, such as a map key.
func (s Str) String() string {
	switch s.variant {
	case Owned:
		return zerocopy.String(s.owned)
	case Inlined:
		return s.inl.String()
	default:
		return s.borrowed
	}
}

// Bytes returns the content bytes without copying.
//
// The result is read-only: for Borrowed it aliases the external source, for
// Owned and Inlined it aliases the receiver and is invalidated by mutation.
func (s *Str) Bytes() []byte {
	return s.content()
}

// IntoString materializes an independently owned Go string of the content.
// The result never shares storage with the value, so it is safe as a map
// key regardless of later mutation.
func (s Str) IntoString() string {
	switch s.variant {
	case Owned:
		return string(s.owned)
	case Inlined:
		return s.inl.String()
	default:
		// A Borrowed view may share memory with mutable caller bytes, so
		// materializing always copies.
		return strings.Clone(s.borrowed)
	}
}

// AppendTo appends the content bytes to dst and returns the extended slice.
func (s Str) AppendTo(dst []byte) []byte {
	return append(dst, s.content()...)
}

// Equal reports whether s and o hold identical content bytes. Values of
// different variants with equal content are equal.
func (s Str) Equal(o Str) bool {
	return bytes.Equal(s.content(), o.content())
}

// EqualString reports whether the content equals str.
func (s Str) EqualString(str string) bool {
	return string(s.content()) == str
}

// Compare returns -1, 0, or 1 ordering s and o lexicographically by content
// bytes. The ordering is total and variant-independent.
func (s Str) Compare(o Str) int {
	return bytes.Compare(s.content(), o.content())
}

// Hash64 returns the xxHash64 of the content. Values with equal content
// hash identically regardless of variant, so hashes may key maps mixing
// variants.
func (s Str) Hash64() uint64 {
	return hash.ContentBytes(s.content())
}

// Clone returns a value-semantic copy of s.
//
// Borrowed and Inlined copy trivially. An Owned clone re-inlines when the
// content fits inline, dropping the heap buffer from the copy; otherwise it
// copies into a fresh Owned buffer so the clones never share storage.
func (s *Str) Clone() Str {
	if s.variant != Owned {
		return *s
	}

	if is, err := inline.From(s.owned); err == nil {
		return Str{variant: Inlined, inl: is}
	}

	buf := make([]byte, len(s.owned))
	copy(buf, s.owned)

	return Str{variant: Owned, owned: buf}
}

// runeBoundary reports whether n falls on a UTF-8 rune boundary of b.
func runeBoundary(b []byte, n int) bool {
	return n == len(b) || utf8.RuneStart(b[n])
}
