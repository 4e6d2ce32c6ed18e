package compress

// ZstdCompressor compresses snapshot payloads with Zstandard.
//
// Prefer it when snapshots are written rarely and read rarely: it trades
// compression speed for the best ratio of the built-in codecs, which suits
// archived or transmitted pool snapshots.
//
// The implementation is selected at build time: pure-Go (klauspost) without
// cgo, valyala/gozstd otherwise.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd compressor with default settings.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
