package intern

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/mestr/errs"
	"github.com/arloliu/mestr/format"
)

func newTestPool(t *testing.T, opts ...Option) *Pool {
	t.Helper()

	p, err := New(opts...)
	require.NoError(t, err)

	p.Intern("cpu.usage.idle")
	p.Intern("cpu.usage.user")
	p.Intern("mem.available.percent")
	p.Intern("a long tag value that repeats itself, repeats itself, repeats itself")
	p.Intern("")

	return p
}

func requireSamePool(t *testing.T, want, got *Pool) {
	t.Helper()

	require.Equal(t, want.Len(), got.Len())
	for i := 0; i < want.Len(); i++ {
		wv, ok := want.Value(Handle(i))
		require.True(t, ok)
		gv, ok := got.Value(Handle(i))
		require.True(t, ok)
		require.Equal(t, wv, gv, "handle %d content diverged", i)
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	compressions := []format.CompressionType{
		format.CompressionNone,
		format.CompressionZstd,
		format.CompressionS2,
		format.CompressionLZ4,
	}

	for _, comp := range compressions {
		t.Run(comp.String(), func(t *testing.T) {
			p := newTestPool(t, WithSnapshotCompression(comp))

			data, err := p.Snapshot()
			require.NoError(t, err)

			restored, err := Restore(data)
			require.NoError(t, err)
			requireSamePool(t, p, restored)

			// Handles minted after Restore continue the dense numbering.
			h := restored.Intern("fresh.entry")
			require.Equal(t, Handle(p.Len()), h)
		})
	}
}

func TestSnapshotBigEndianRoundTrip(t *testing.T) {
	p := newTestPool(t, WithBigEndian())

	data, err := p.Snapshot()
	require.NoError(t, err)
	require.Equal(t, byte(flagBigEndian), data[5])

	restored, err := Restore(data)
	require.NoError(t, err)
	requireSamePool(t, p, restored)
}

func TestSnapshotEmptyPool(t *testing.T) {
	p, err := New()
	require.NoError(t, err)

	data, err := p.Snapshot()
	require.NoError(t, err)

	restored, err := Restore(data)
	require.NoError(t, err)
	require.Equal(t, 0, restored.Len())
}

func TestSnapshotCompressionShrinksRepetitiveContent(t *testing.T) {
	plain, err := New()
	require.NoError(t, err)
	packed, err := New(WithSnapshotCompression(format.CompressionZstd))
	require.NoError(t, err)

	for i := 0; i < 500; i++ {
		s := fmt.Sprintf("host-%04d.datacenter-west.example.internal", i)
		plain.Intern(s)
		packed.Intern(s)
	}

	plainData, err := plain.Snapshot()
	require.NoError(t, err)
	packedData, err := packed.Snapshot()
	require.NoError(t, err)

	require.Less(t, len(packedData), len(plainData))
}

func TestRestoreRejectsBadHeader(t *testing.T) {
	p := newTestPool(t)
	data, err := p.Snapshot()
	require.NoError(t, err)

	t.Run("too short", func(t *testing.T) {
		_, err := Restore(data[:snapshotHeaderSize-1])
		require.ErrorIs(t, err, errs.ErrSnapshotTruncated)
	})

	t.Run("bad magic", func(t *testing.T) {
		bad := append([]byte(nil), data...)
		bad[0] = 'X'
		_, err := Restore(bad)
		require.ErrorIs(t, err, errs.ErrInvalidSnapshotMagic)
	})

	t.Run("bad version", func(t *testing.T) {
		bad := append([]byte(nil), data...)
		bad[4] = snapshotVersion + 1
		_, err := Restore(bad)
		require.ErrorIs(t, err, errs.ErrInvalidSnapshotVersion)
	})

	t.Run("bad compression", func(t *testing.T) {
		bad := append([]byte(nil), data...)
		bad[6] = 0x7f
		_, err := Restore(bad)
		require.ErrorIs(t, err, errs.ErrInvalidSnapshotCompression)
	})
}

func TestRestoreRejectsTruncatedPayload(t *testing.T) {
	p := newTestPool(t)
	data, err := p.Snapshot()
	require.NoError(t, err)

	_, err = Restore(data[:len(data)-3])
	require.ErrorIs(t, err, errs.ErrSnapshotTruncated)
}

func TestRestoreRejectsCountMismatch(t *testing.T) {
	p := newTestPool(t)
	data, err := p.Snapshot()
	require.NoError(t, err)

	t.Run("count inflated", func(t *testing.T) {
		bad := append([]byte(nil), data...)
		p.engine.PutUint32(bad[8:12], uint32(p.Len()+5))

		// The payload runs out before the declared count is reached.
		_, err := Restore(bad)
		require.ErrorIs(t, err, errs.ErrSnapshotTruncated)
	})

	t.Run("count deflated", func(t *testing.T) {
		bad := append([]byte(nil), data...)
		p.engine.PutUint32(bad[8:12], uint32(p.Len()-1))

		_, err := Restore(bad)
		require.ErrorIs(t, err, errs.ErrSnapshotCountMismatch)
	})
}
