package intern

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/mestr/cow"
	"github.com/arloliu/mestr/inline"
)

func TestPoolIntern(t *testing.T) {
	p, err := New()
	require.NoError(t, err)

	h1 := p.Intern("redis.command.latency")
	h2 := p.Intern("redis.command.errors")
	h3 := p.Intern("redis.command.latency")

	require.Equal(t, h1, h3, "identical content must map to one handle")
	require.NotEqual(t, h1, h2)
	require.Equal(t, 2, p.Len())

	v, ok := p.Value(h1)
	require.True(t, ok)
	require.Equal(t, "redis.command.latency", v)

	v, ok = p.Value(h2)
	require.True(t, ok)
	require.Equal(t, "redis.command.errors", v)
}

func TestPoolInternBytes(t *testing.T) {
	p, err := New()
	require.NoError(t, err)

	src := []byte("mutable.source.buffer.content")
	h := p.InternBytes(src)

	// The pool must own its copy; scribbling on the source afterwards must
	// not change the interned content.
	src[0] = 'X'

	v, ok := p.Value(h)
	require.True(t, ok)
	require.Equal(t, "mutable.source.buffer.content", v)

	h2 := p.Intern("mutable.source.buffer.content")
	require.Equal(t, h, h2)
}

func TestPoolLookup(t *testing.T) {
	p, err := New()
	require.NoError(t, err)

	_, ok := p.Lookup("absent")
	require.False(t, ok)

	h := p.Intern("present")
	got, ok := p.Lookup("present")
	require.True(t, ok)
	require.Equal(t, h, got)
	require.Equal(t, 1, p.Len(), "Lookup must not intern")
}

func TestPoolValueOutOfRange(t *testing.T) {
	p, err := New()
	require.NoError(t, err)
	p.Intern("only")

	_, ok := p.Value(Handle(42))
	require.False(t, ok)

	_, ok = p.Str(Handle(42))
	require.False(t, ok)
}

func TestPoolStrVariantPolicy(t *testing.T) {
	p, err := New()
	require.NoError(t, err)

	short := p.Intern("tiny")
	long := p.Intern("a string that is comfortably longer than the inline capacity")

	s, ok := p.Str(short)
	require.True(t, ok)
	require.Equal(t, cow.Inlined, s.Variant())
	require.Equal(t, "tiny", s.String())

	s, ok = p.Str(long)
	require.True(t, ok)
	require.Equal(t, cow.Borrowed, s.Variant())
	require.Equal(t, "a string that is comfortably longer than the inline capacity", s.String())
}

func TestPoolHandleOrderIsDense(t *testing.T) {
	p, err := New(WithInitialCapacity(8))
	require.NoError(t, err)

	for i := 0; i < 100; i++ {
		h := p.Intern(fmt.Sprintf("tag-%03d", i))
		require.Equal(t, Handle(i), h)
	}
	require.Equal(t, 100, p.Len())
}

func TestPoolOptions(t *testing.T) {
	_, err := New(WithInitialCapacity(-1))
	require.Error(t, err)

	_, err = New(WithSnapshotCompression(99))
	require.Error(t, err)

	p, err := New(WithInitialCapacity(0), WithBigEndian())
	require.NoError(t, err)
	require.Equal(t, Handle(0), p.Intern("first"))
}

func TestPoolConcurrentIntern(t *testing.T) {
	p, err := New()
	require.NoError(t, err)

	keys := make([]string, 32)
	for i := range keys {
		keys[i] = fmt.Sprintf("shared.key.%d", i)
	}

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				k := keys[i%len(keys)]
				h := p.Intern(k)
				v, ok := p.Value(h)
				if !ok || v != k {
					t.Errorf("handle %d resolved to %q, want %q", h, v, k)
					return
				}
			}
		}()
	}
	wg.Wait()

	require.Equal(t, len(keys), p.Len())
}

func TestPoolInternLongerThanInline(t *testing.T) {
	p, err := New()
	require.NoError(t, err)

	exact := make([]byte, inline.MaxLen)
	for i := range exact {
		exact[i] = byte('a' + i%26)
	}

	h := p.InternBytes(exact)
	s, ok := p.Str(h)
	require.True(t, ok)
	require.Equal(t, cow.Inlined, s.Variant(), "content of exactly the inline capacity inlines")
}
