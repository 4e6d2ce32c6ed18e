package smallstr

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/arloliu/mestr/inline"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
)

func TestBasicUsage(t *testing.T) {
	s := New()
	require.True(t, s.IsEmpty())
	require.True(t, s.IsInline())
	require.Equal(t, inline.MaxLen, s.Cap())

	s.WriteString("hi")
	s.WriteByte('!')
	require.Equal(t, "hi!", s.String())
	require.Equal(t, 3, s.Len())
	require.True(t, s.IsInline())
}

func TestSpill(t *testing.T) {
	s := New()
	s.WriteString(strings.Repeat("a", inline.MaxLen))
	require.True(t, s.IsInline())

	// One more byte exceeds the inline capacity and spills.
	s.WriteByte('b')
	require.False(t, s.IsInline())
	require.Equal(t, strings.Repeat("a", inline.MaxLen)+"b", s.String())
	require.Equal(t, inline.MaxLen+1, s.Len())
}

func TestFromString(t *testing.T) {
	short := FromString("short")
	require.True(t, short.IsInline())
	require.Equal(t, "short", short.String())

	long := FromString(strings.Repeat("x", 50))
	require.False(t, long.IsInline())
	require.Equal(t, 50, long.Len())
}

func TestWriteRune(t *testing.T) {
	s := New()
	n, err := s.WriteRune('藏')
	require.NoError(t, err)
	require.Equal(t, 3, n)
	require.Equal(t, "藏", s.String())
}

func TestWrite_ImplementsIOWriter(t *testing.T) {
	s := New()
	_, err := fmt.Fprintf(s, "count=%d", 42)
	require.NoError(t, err)
	require.Equal(t, "count=42", s.String())
}

func TestGrow(t *testing.T) {
	s := New()
	s.Grow(10)
	require.True(t, s.IsInline(), "growth within inline capacity stays inline")

	s.Grow(inline.MaxLen + 10)
	require.False(t, s.IsInline())
	require.GreaterOrEqual(t, s.Cap(), inline.MaxLen+10)
	require.Equal(t, 0, s.Len())
}

func TestTruncate_StaysSpilled(t *testing.T) {
	s := FromString(strings.Repeat("z", 50))
	require.False(t, s.IsInline())

	s.Truncate(3)
	require.Equal(t, "zzz", s.String())
	// No automatic demotion back to inline storage.
	require.False(t, s.IsInline())
}

func TestTruncate_Inline(t *testing.T) {
	s := FromString("héllo")
	s.Truncate(3)
	require.Equal(t, "hé", s.String())

	require.Panics(t, func() { s.Truncate(99) })
	require.Panics(t, func() {
		v := FromString("héllo")
		v.Truncate(2) // inside the é
	})
}

func TestReset_ReturnsInline(t *testing.T) {
	s := FromString(strings.Repeat("y", 50))
	require.False(t, s.IsInline())

	s.Reset()
	require.True(t, s.IsInline())
	require.True(t, s.IsEmpty())

	s.WriteString("fresh")
	require.Equal(t, "fresh", s.String())
}

func TestEqual_AcrossStorageModes(t *testing.T) {
	content := strings.Repeat("q", inline.MaxLen)

	inlined := FromString(content)
	require.True(t, inlined.IsInline())

	spilled := New()
	spilled.Grow(inline.MaxLen * 2) // force heap storage up front
	spilled.WriteString(content)
	require.False(t, spilled.IsInline())

	require.True(t, inlined.Equal(spilled))
	require.Zero(t, inlined.Compare(spilled))
	require.Equal(t, inlined.Hash64(), spilled.Hash64())
}

func TestJSON_ViaTextMarshaler(t *testing.T) {
	s := FromString("serde test")
	data, err := json.Marshal(s)
	require.NoError(t, err)
	require.Equal(t, `"serde test"`, string(data))

	var decoded String
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Equal(t, "serde test", decoded.String())
	require.True(t, decoded.IsInline())
}

func TestMsgpack_RoundTrip(t *testing.T) {
	long := strings.Repeat("m", 40)
	data, err := msgpack.Marshal(FromString(long))
	require.NoError(t, err)

	var decoded String
	require.NoError(t, msgpack.Unmarshal(data, &decoded))
	require.Equal(t, long, decoded.String())
	require.False(t, decoded.IsInline())
}
