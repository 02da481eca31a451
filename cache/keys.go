package cache

import "hash/fnv"

// Fingerprint keys a cache entry by its SQL text. fnv-64a keeps key
// generation allocation-light on the hot path.
func Fingerprint(sql string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(sql))
	return h.Sum64()
}
