package stache

const (
	fnvOffset uint64 = 0xcbf29ce484222325
	fnvPrime  uint64 = 0x100000001b3
)

// Hash returns the 64-bit FNV-1a hash of name. Field lookups at render
// time compare hashes, never names, so generated Content implementations
// and the parser must agree on this exact function.
func Hash(name string) uint64 {
	hash := fnvOffset
	for i := 0; i < len(name); i++ {
		hash ^= uint64(name[i])
		hash *= fnvPrime
	}
	return hash
}
