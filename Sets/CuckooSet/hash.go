package CuckooSet

import (
	"encoding/binary"
	"hash/maphash"

	"github.com/cespare/xxhash/v2"
)

// Hashable is the single method a CuckooSet element must provide beyond
// comparable: a base hash suitable for salting. Unlike a general-purpose
// Equal-based hashable interface, this leans on Go's built-in comparable
// constraint for equality and only asks the element for its hash.
type Hashable interface {
	Hash() uint64
}

// Element is the constraint CuckooSet keys must satisfy: comparable (so
// == works for membership/equality) and Hashable (so it can be placed).
type Element interface {
	comparable
	Hashable
}

// combine mixes h into seed: seed ^= h + 0x9e3779b9 + (seed<<6) + (seed>>2).
func combine(seed, h uint64) uint64 {
	seed ^= h + 0x9e3779b9 + (seed << 6) + (seed >> 2)
	return seed
}

// saltedHash combines the base hash with the salt, applying the base hash
// first and the salt second so that changing the salt alone still depends
// on the element's identity.
func saltedHash(base, salt uint64) uint64 {
	seed := combine(0, base)
	seed = combine(seed, salt)
	return seed
}

var processSeed = maphash.MakeSeed()

// Int64 is a ready-made Element for 64-bit integer keys.
type Int64 int64

func (v Int64) Hash() uint64 {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(v))
	return maphash.Bytes(processSeed, buf[:])
}

// Int is a ready-made Element for platform-int keys.
type Int int

func (v Int) Hash() uint64 {
	return Int64(v).Hash()
}

// String is a ready-made Element for string keys, hashed with maphash.
type String string

func (v String) Hash() uint64 {
	return maphash.String(processSeed, string(v))
}

// XXString is a ready-made Element for string keys that should be hashed
// with xxhash rather than maphash, e.g. when the caller wants the same
// hash across process restarts (maphash reseeds per process) or wants to
// match a hash already computed elsewhere with xxhash.
type XXString string

func (v XXString) Hash() uint64 {
	return xxhash.Sum64String(string(v))
}
