// Package mestr provides memory-efficient string representations for Go
// programs that handle large volumes of short, repetitive text data.
//
// Mestr is optimized for scenarios with many small strings (tags, labels,
// metric names, log tokens) where per-string heap allocations and duplicate
// content dominate memory usage. It avoids both through inline storage,
// copy-on-write semantics, and interning.
//
// # Core Features
//
//   - Inline storage for strings up to 22 bytes with zero heap allocation
//   - Copy-on-write strings with explicit Owned/Borrowed/Inlined variants
//   - Deterministic construction policy (short data inlines, long data borrows)
//   - Content-based equality, ordering, and 64-bit xxHash64 hashing
//   - Growable small-string builder that starts inline and spills on demand
//   - Deduplicating intern pool with stable handles and snapshot persistence
//   - Optional snapshot compression (None, Zstd, S2, LZ4)
//
// # Basic Usage
//
// Constructing copy-on-write strings:
//
//	import "github.com/arloliu/mestr"
//
//	// Short content is stored inline, no heap allocation.
//	s := mestr.From("cpu.usage")
//	fmt.Println(s.Variant()) // Inlined
//
//	// Long content borrows the source string, zero-copy.
//	s = mestr.From("service.api.request.latency.p99.histogram")
//	fmt.Println(s.Variant()) // Borrowed
//
//	// Mutation promotes to an owned heap copy.
//	s.Append(".sum")
//	fmt.Println(s.Variant()) // Owned
//
// Interning repetitive strings:
//
//	pool, _ := mestr.NewPool()
//	h := pool.Intern("host=server1,dc=west")
//	v, _ := pool.Value(h) // one shared copy, stable handle
//
// # Package Structure
//
// This package provides convenient top-level wrappers around the cow,
// inline, smallstr, and intern packages, simplifying the most common use
// cases. For advanced usage and fine-grained control, use those packages
// directly.
package mestr

import (
	"github.com/arloliu/mestr/cow"
	"github.com/arloliu/mestr/inline"
	"github.com/arloliu/mestr/intern"
	"github.com/arloliu/mestr/internal/hash"
	"github.com/arloliu/mestr/smallstr"
)

// From creates a cow.Str from s using the regular construction policy:
// content up to inline.MaxLen bytes is copied into inline storage, longer
// content borrows s without copying.
//
// Borrowed results alias the source string and stay valid for its lifetime,
// which for Go strings is the lifetime of the value itself.
//
// Example:
//
//	tag := mestr.From("env=prod")          // Inlined
//	path := mestr.From(veryLongRequestURI) // Borrowed
func From(s string) cow.Str {
	return cow.From(s)
}

// FromBytes creates a cow.Str from b using the regular construction policy.
//
// Short content is copied inline and independent of b. Long content borrows
// b directly; the caller must not mutate b while the result (or any value
// derived from it before its first mutation) is in use.
func FromBytes(b []byte) cow.Str {
	return cow.FromBytes(b)
}

// Borrow creates a Borrowed cow.Str regardless of length, bypassing the
// construction policy. Use this when the source string outlives the result
// and even the inline copy is unwanted.
func Borrow(s string) cow.Str {
	return cow.Borrow(s)
}

// Own creates an Owned cow.Str holding a private heap copy of s, bypassing
// the construction policy. Owned strings never alias outside memory and
// mutate in place without promotion.
func Own(s string) cow.Str {
	return cow.Own(s)
}

// Inline creates an inline.Str from s.
//
// It returns a *errs.StringTooLongError if s exceeds inline.MaxLen bytes
// (22 on 64-bit targets). Use this over From when the caller requires the
// fixed-size, allocation-free representation and wants oversize content to
// be an error rather than a fallback.
//
// Example:
//
//	code, err := mestr.Inline("US-west-2a")
//	if err != nil {
//	    // content does not fit the fixed 22-byte capacity
//	}
func Inline(s string) (inline.Str, error) {
	return inline.FromString(s)
}

// NewSmallString creates a growable string builder that starts in inline
// storage and spills to the heap only when the content outgrows
// inline.MaxLen bytes.
//
// It implements io.Writer, io.StringWriter, and io.ByteWriter, so it works
// with fmt.Fprintf and friends:
//
//	b := mestr.NewSmallString()
//	fmt.Fprintf(b, "shard-%d", id)
//	key := b.String()
func NewSmallString() *smallstr.String {
	return smallstr.New()
}

// NewPool creates an empty string intern pool.
//
// Available options:
//   - intern.WithInitialCapacity(n)
//   - intern.WithSnapshotCompression(format.CompressionNone|Zstd|S2|LZ4)
//   - intern.WithLittleEndian() / intern.WithBigEndian()
//
// Example:
//
//	pool, err := mestr.NewPool(
//	    intern.WithInitialCapacity(4096),
//	    intern.WithSnapshotCompression(format.CompressionZstd),
//	)
func NewPool(opts ...intern.Option) (*intern.Pool, error) {
	return intern.New(opts...)
}

// RestorePool rebuilds an intern pool from intern.Pool.Snapshot output,
// reproducing the original handle numbering.
func RestorePool(data []byte, opts ...intern.Option) (*intern.Pool, error) {
	return intern.Restore(data, opts...)
}

// ContentID converts string content to its 64-bit xxHash64 identifier.
//
// The same function backs Hash64 on all string types in this module, so an
// ID computed from a plain string matches the hash of any cow.Str,
// inline.Str, or smallstr.String holding equal content, regardless of
// storage variant.
//
// Use this to key maps or caches by content without retaining the string:
//
//	id := mestr.ContentID("service.api.request.count")
func ContentID(s string) uint64 {
	return hash.Content(s)
}
