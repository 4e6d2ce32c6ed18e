// Package errs defines the error types and sentinel errors shared across
// the mestr packages.
package errs

import (
	"errors"
	"fmt"
)

// Sentinel errors for snapshot decoding in the intern package.
var (
	// ErrInvalidSnapshotMagic indicates the snapshot data does not start with
	// the expected magic bytes.
	ErrInvalidSnapshotMagic = errors.New("invalid snapshot magic")

	// ErrInvalidSnapshotVersion indicates the snapshot was written by an
	// unsupported format version.
	ErrInvalidSnapshotVersion = errors.New("invalid snapshot version")

	// ErrInvalidSnapshotCompression indicates the snapshot header declares an
	// unknown compression type.
	ErrInvalidSnapshotCompression = errors.New("invalid snapshot compression")

	// ErrSnapshotTruncated indicates the snapshot payload ends before all
	// declared entries were decoded.
	ErrSnapshotTruncated = errors.New("snapshot payload truncated")

	// ErrSnapshotCountMismatch indicates the number of decoded entries does
	// not match the count declared in the snapshot header.
	ErrSnapshotCountMismatch = errors.New("snapshot entry count mismatch")
)

// StringTooLongError reports an attempt to build an inline string from
// content longer than the fixed inline capacity.
//
// It carries the rejected length and the maximum allowed length so callers
// can decide how to fall back (typically to heap-owned storage).
type StringTooLongError struct {
	// ActualLen is the byte length of the rejected source.
	ActualLen int
	// MaxLen is the fixed inline capacity of the target.
	MaxLen int
}

// Error implements the error interface.
func (e *StringTooLongError) Error() string {
	return fmt.Sprintf("string length %d exceeds inline capacity %d", e.ActualLen, e.MaxLen)
}

// Is reports whether target is a *StringTooLongError, ignoring the recorded
// lengths. This lets callers match with errors.Is against a zero value.
func (e *StringTooLongError) Is(target error) bool {
	_, ok := target.(*StringTooLongError)
	return ok
}
