package hashfuncs

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// SeedFor mixes a sequence number into a well-distributed 64 bit seed so that
// neighbouring event indices do not start from correlated generator states.
func SeedFor(n uint64) uint64 {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], n)
	return xxhash.Sum64(buf[:])
}

func ByteSliceHash(k []byte) uint64 {
	return xxhash.Sum64(k)
}
