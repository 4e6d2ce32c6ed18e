package hash

import "github.com/cespare/xxhash/v2"

// Content computes the xxHash64 of the given string content.
func Content(data string) uint64 {
	return xxhash.Sum64String(data)
}

// ContentBytes computes the xxHash64 of the given byte content.
//
// It produces the same value as Content for identical bytes, so hashes are
// uniform regardless of how the content is stored.
func ContentBytes(data []byte) uint64 {
	return xxhash.Sum64(data)
}
