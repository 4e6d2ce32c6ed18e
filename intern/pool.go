// Package intern implements a deduplicating string pool with stable handles.
//
// A Pool owns one copy of every distinct string interned into it and hands
// out compact Handles that remain valid for the pool's lifetime. The pool
// is the stable borrow source for cow.Str values: Pool.Str returns a string
// value backed by pool-owned memory, so holding the pool alive keeps every
// borrowed view valid.
//
// Pools are safe for concurrent use. Snapshots serialize the pool content
// to a compact, optionally compressed byte form that Restore rebuilds with
// identical handle numbering.
package intern

import (
	"fmt"
	"strings"
	"sync"

	"github.com/cockroachdb/swiss"

	"github.com/arloliu/mestr/cow"
	"github.com/arloliu/mestr/endian"
	"github.com/arloliu/mestr/format"
	"github.com/arloliu/mestr/internal/options"
	"github.com/arloliu/mestr/internal/zerocopy"
)

// defaultCapacity is the initial lookup capacity when no option overrides it.
const defaultCapacity = 64

// Handle identifies an interned string within its pool. Handles are dense,
// assigned in interning order starting at 0, and never invalidated.
type Handle uint32

// Pool deduplicates strings and resolves Handles back to content.
type Pool struct {
	mu     sync.RWMutex
	lookup *swiss.Map[string, Handle]
	strs   []string

	engine      endian.EndianEngine
	compression format.CompressionType
}

// Option represents a functional option for configuring a Pool.
// This is a type alias for the generic Option interface specialized for Pool.
type Option = options.Option[*Pool]

// WithInitialCapacity sizes the lookup structures for an expected number of
// distinct strings, avoiding rehashing during warm-up.
func WithInitialCapacity(n int) Option {
	return options.New(func(p *Pool) error {
		if n < 0 {
			return fmt.Errorf("initial capacity cannot be negative: %d", n)
		}
		p.lookup = swiss.New[string, Handle](n)
		p.strs = make([]string, 0, n)

		return nil
	})
}

// WithSnapshotCompression selects the compression applied to Snapshot
// payloads. The default is format.CompressionNone.
func WithSnapshotCompression(comp format.CompressionType) Option {
	return options.New(func(p *Pool) error {
		if !comp.Valid() {
			return fmt.Errorf("invalid snapshot compression: %v", comp)
		}
		p.compression = comp

		return nil
	})
}

// WithLittleEndian selects little-endian snapshot headers (the default).
func WithLittleEndian() Option {
	return options.NoError(func(p *Pool) {
		p.engine = endian.GetLittleEndianEngine()
	})
}

// WithBigEndian selects big-endian snapshot headers.
func WithBigEndian() Option {
	return options.NoError(func(p *Pool) {
		p.engine = endian.GetBigEndianEngine()
	})
}

// New creates an empty Pool.
func New(opts ...Option) (*Pool, error) {
	p := &Pool{
		lookup:      swiss.New[string, Handle](defaultCapacity),
		strs:        make([]string, 0, defaultCapacity),
		engine:      endian.GetLittleEndianEngine(),
		compression: format.CompressionNone,
	}

	if err := options.Apply(p, opts...); err != nil {
		return nil, err
	}

	return p, nil
}

// Intern returns the Handle for s, interning a private copy on first sight.
//
// The pool clones s before storing it so the returned Handle never depends
// on the caller's memory.
func (p *Pool) Intern(s string) Handle {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.intern(s)
}

// InternBytes is Intern for byte content. The lookup itself is zero-copy;
// a private string copy is made only when b is seen for the first time.
func (p *Pool) InternBytes(b []byte) Handle {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.intern(zerocopy.String(b))
}

// intern assumes p.mu is held for writing.
func (p *Pool) intern(s string) Handle {
	if h, ok := p.lookup.Get(s); ok {
		return h
	}

	owned := strings.Clone(s)
	h := Handle(len(p.strs))
	p.strs = append(p.strs, owned)
	p.lookup.Put(owned, h)

	return h
}

// Lookup returns the Handle for s without interning it.
func (p *Pool) Lookup(s string) (Handle, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	h, ok := p.lookup.Get(s)

	return h, ok
}

// Value resolves h to its pool-owned string.
func (p *Pool) Value(h Handle) (string, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if int(h) >= len(p.strs) {
		return "", false
	}

	return p.strs[h], true
}

// Str resolves h to a cow.Str by the regular construction policy: short
// content is inlined, long content borrows the pool-owned memory. Borrowed
// results stay valid as long as the pool is reachable.
func (p *Pool) Str(h Handle) (cow.Str, bool) {
	v, ok := p.Value(h)
	if !ok {
		return cow.Str{}, false
	}

	return cow.From(v), true
}

// Len returns the number of distinct interned strings.
func (p *Pool) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return len(p.strs)
}
