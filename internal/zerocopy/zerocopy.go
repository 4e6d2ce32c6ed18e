// Package zerocopy converts between string and []byte without copying.
//
// Both conversions share the underlying memory with the input. Callers must
// guarantee the shared bytes are not mutated while the converted form is in
// use; violating that is undefined behavior, not a reported error.
package zerocopy

import "unsafe"

// String returns a string sharing the memory of b.
//
// The caller must not mutate b while the returned string is reachable.
func String(b []byte) string {
	if len(b) == 0 {
		return ""
	}

	return unsafe.String(unsafe.SliceData(b), len(b))
}

// Bytes returns a byte slice sharing the memory of s.
//
// The returned slice is read-only by contract: Go strings are immutable and
// writing through the slice is undefined behavior.
func Bytes(s string) []byte {
	if len(s) == 0 {
		return nil
	}

	return unsafe.Slice(unsafe.StringData(s), len(s))
}
