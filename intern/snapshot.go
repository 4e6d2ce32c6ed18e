package intern

import (
	"bytes"
	"fmt"

	"github.com/arloliu/mestr/compress"
	"github.com/arloliu/mestr/encoding"
	"github.com/arloliu/mestr/endian"
	"github.com/arloliu/mestr/errs"
	"github.com/arloliu/mestr/format"
	"github.com/arloliu/mestr/internal/pool"
)

// Snapshot format:
//
//	offset 0: magic "MSIP" (4 bytes)
//	offset 4: format version (1 byte)
//	offset 5: flags (1 byte, bit0 set for big-endian header integers)
//	offset 6: compression type (1 byte)
//	offset 7: reserved (1 byte, zero)
//	offset 8: entry count (uint32, header byte order)
//	offset 12: payload, length-prefixed strings after compression
const (
	snapshotVersion    = 1
	snapshotHeaderSize = 12

	flagBigEndian = 0x01
)

var snapshotMagic = []byte{'M', 'S', 'I', 'P'}

// Snapshot serializes the pool content in interning order.
//
// Restoring a snapshot reproduces the exact Handle numbering, so handles
// persisted alongside a snapshot stay resolvable after Restore.
func (p *Pool) Snapshot() ([]byte, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	codec, err := compress.GetCodec(p.compression)
	if err != nil {
		return nil, err
	}

	enc := encoding.NewVarStringEncoder()
	defer enc.Reset()

	enc.WriteSlice(p.strs)

	payload, err := codec.Compress(enc.Bytes())
	if err != nil {
		return nil, fmt.Errorf("failed to compress snapshot payload: %w", err)
	}

	buf := pool.GetSnapshotBuffer()
	defer pool.PutSnapshotBuffer(buf)

	buf.Grow(snapshotHeaderSize + len(payload))
	buf.MustWrite(snapshotMagic)
	buf.MustWriteByte(snapshotVersion)
	buf.MustWriteByte(p.flags())
	buf.MustWriteByte(byte(p.compression))
	buf.MustWriteByte(0)
	buf.B = p.engine.AppendUint32(buf.B, uint32(len(p.strs)))
	buf.MustWrite(payload)

	out := make([]byte, buf.Len())
	copy(out, buf.Bytes())

	return out, nil
}

func (p *Pool) flags() byte {
	if p.engine == endian.GetBigEndianEngine() {
		return flagBigEndian
	}

	return 0
}

// Restore rebuilds a Pool from Snapshot output.
//
// Header endianness and compression are taken from the snapshot itself and
// become the restored pool's settings; opts may still adjust capacity.
func Restore(data []byte, opts ...Option) (*Pool, error) {
	if len(data) < snapshotHeaderSize {
		return nil, fmt.Errorf("snapshot of %d bytes is shorter than the %d byte header: %w",
			len(data), snapshotHeaderSize, errs.ErrSnapshotTruncated)
	}

	if !bytes.Equal(data[0:4], snapshotMagic) {
		return nil, fmt.Errorf("got %q: %w", data[0:4], errs.ErrInvalidSnapshotMagic)
	}

	if data[4] != snapshotVersion {
		return nil, fmt.Errorf("got version %d, support version %d: %w",
			data[4], snapshotVersion, errs.ErrInvalidSnapshotVersion)
	}

	engine := endian.GetLittleEndianEngine()
	if data[5]&flagBigEndian != 0 {
		engine = endian.GetBigEndianEngine()
	}

	compression := format.CompressionType(data[6])
	codec, err := compress.GetCodec(compression)
	if err != nil {
		return nil, fmt.Errorf("type %#x: %w", data[6], errs.ErrInvalidSnapshotCompression)
	}

	count := engine.Uint32(data[8:12])

	payload, err := codec.Decompress(data[snapshotHeaderSize:])
	if err != nil {
		return nil, fmt.Errorf("failed to decompress snapshot payload: %w", err)
	}

	p, err := New(opts...)
	if err != nil {
		return nil, err
	}
	p.engine = engine
	p.compression = compression

	dec := encoding.NewVarStringDecoder(payload)
	for i := uint32(0); i < count; i++ {
		s, err := dec.Next()
		if err != nil {
			return nil, fmt.Errorf("entry %d of %d: %w", i, count, err)
		}
		p.intern(s)
	}

	if uint32(p.Len()) != count || dec.More() {
		return nil, fmt.Errorf("header declares %d entries, decoded %d: %w",
			count, p.Len(), errs.ErrSnapshotCountMismatch)
	}

	return p, nil
}
