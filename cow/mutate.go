package cow

import (
	"unicode/utf8"

	"github.com/arloliu/mestr/inline"
)

// Mutation follows the copy-on-write contract: a Borrowed value is promoted
// to Owned before any content changes, so borrowed source bytes are never
// written through this value. An Inlined value mutates in place while the
// result fits; overflow promotes to Owned. Owned stays Owned. Appends of
// empty content change nothing and leave the variant alone. No mutation
// fails: the only constraint violations (out-of-range or non-boundary
// indices) panic like slice bounds do.

// ForceOwned promotes s to the Owned variant, copying the content into a
// private heap buffer if it is not owned already. This is the explicit
// copy-on-write trigger; it is a no-op on an Owned value.
func (s *Str) ForceOwned() {
	switch s.variant {
	case Owned:
		return
	case Borrowed:
		buf := make([]byte, len(s.borrowed))
		copy(buf, s.borrowed)
		s.owned = buf
		s.borrowed = ""
	case Inlined:
		buf := make([]byte, s.inl.Len())
		copy(buf, s.inl.Bytes())
		s.owned = buf
		s.inl = inline.Str{}
	}
	s.variant = Owned
}

// Append appends text to the content, promoting the variant as required.
// An empty text is a no-op and causes no variant transition.
func (s *Str) Append(text string) {
	s.append(text)
}

// AppendBytes appends b to the content, promoting the variant as required.
// b must be whole valid UTF-8.
func (s *Str) AppendBytes(b []byte) {
	s.append(string(b))
}

// AppendRune appends the UTF-8 encoding of r to the content.
func (s *Str) AppendRune(r rune) {
	var buf [utf8.UTFMax]byte
	n := utf8.EncodeRune(buf[:], r)
	s.append(string(buf[:n]))
}

func (s *Str) append(text string) {
	if len(text) == 0 {
		return
	}

	switch s.variant {
	case Owned:
		s.owned = append(s.owned, text...)
	case Inlined:
		if s.inl.TryAppend([]byte(text)) {
			return
		}
		// Overflow promotion: prior inline bytes followed by the new
		// content, retagged as Owned.
		grown := make([]byte, 0, s.inl.Len()+len(text))
		grown = append(grown, s.inl.Bytes()...)
		grown = append(grown, text...)
		s.owned = grown
		s.inl = inline.Str{}
		s.variant = Owned
	case Borrowed:
		grown := make([]byte, 0, len(s.borrowed)+len(text))
		grown = append(grown, s.borrowed...)
		grown = append(grown, text...)
		s.owned = grown
		s.borrowed = ""
		s.variant = Owned
	}
}

// Truncate shortens the content to n bytes.
//
// A Borrowed value is promoted to Owned first; an Inlined value truncates
// in place and stays Inlined; an Owned value stays Owned even when the
// result would fit inline (no automatic demotion). Truncate panics when n
// exceeds the current length or does not fall on a rune boundary.
func (s *Str) Truncate(n int) {
	if s.variant == Borrowed {
		s.ForceOwned()
	}

	if s.variant == Inlined {
		s.inl.Truncate(n)
		return
	}

	if n > len(s.owned) {
		panic("cow: truncation length out of range")
	}
	if !runeBoundary(s.owned, n) {
		panic("cow: truncation not on rune boundary")
	}
	s.owned = s.owned[:n]
}

// ReplaceRange replaces the content bytes in [lo, hi) with repl,
// revalidating the edit before committing.
//
// It panics when the range is out of bounds, lo or hi does not fall on a
// rune boundary, or repl is not valid UTF-8; the value is untouched in
// those cases. The variant transitions like any other mutation: Borrowed
// promotes to Owned, Inlined stays Inlined while the result fits and
// promotes on overflow.
func (s *Str) ReplaceRange(lo, hi int, repl string) {
	cur := s.content()
	if lo < 0 || hi < lo || hi > len(cur) {
		panic("cow: replace range out of bounds")
	}
	if !runeBoundary(cur, lo) || !runeBoundary(cur, hi) {
		panic("cow: replace range not on rune boundary")
	}
	if !utf8.ValidString(repl) {
		panic("cow: replacement is not valid UTF-8")
	}

	newLen := len(cur) - (hi - lo) + len(repl)
	if s.variant == Inlined && newLen <= inline.MaxLen {
		var buf [inline.MaxLen]byte
		n := copy(buf[:], cur[:lo])
		n += copy(buf[n:], repl)
		n += copy(buf[n:], cur[hi:])
		is, err := inline.From(buf[:n])
		if err != nil {
			panic("cow: inline rebuild exceeded capacity")
		}
		s.inl = is

		return
	}

	grown := make([]byte, 0, newLen)
	grown = append(grown, cur[:lo]...)
	grown = append(grown, repl...)
	grown = append(grown, cur[hi:]...)

	s.owned = grown
	s.borrowed = ""
	s.inl = inline.Str{}
	s.variant = Owned
}
