package stringsfile

import (
	"hash"
	"slices"
	"sync"

	"github.com/cespare/xxhash"
)

var hasherPool = sync.Pool{
	New: func() any { return xxhash.New() },
}

// Fingerprint computes a 64-bit XXHash over the entry set.
// It is invariant under entry order, so a localization's fingerprint
// doesn't change between a freshly parsed and a re-sorted entry list.
func Fingerprint(entries []Entry) uint64 {
	sorted := make([]Entry, len(entries))
	copy(sorted, entries)
	slices.SortStableFunc(sorted, func(a, b Entry) int {
		if a.Key != b.Key {
			if a.Key < b.Key {
				return -1
			}
			return 1
		}
		if a.Value != b.Value {
			if a.Value < b.Value {
				return -1
			}
			return 1
		}
		if a.Message < b.Message {
			return -1
		}
		if a.Message > b.Message {
			return 1
		}
		return 0
	})

	h := hasherPool.Get().(hash.Hash64)
	defer hasherPool.Put(h)

	h.Reset()
	for _, e := range sorted {
		_, _ = h.Write([]byte(e.Key))
		_, _ = h.Write([]byte{0})
		_, _ = h.Write([]byte(e.Value))
		_, _ = h.Write([]byte{0})
		_, _ = h.Write([]byte(e.Message))
		_, _ = h.Write([]byte{0xff})
	}
	return h.Sum64()
}
