// Package hashgen generates BLAKE3 hash records, sorts them by hash with a
// memory bound and writes them to disk, with separate thread counts for the
// hash, sort and write phases.
package hashgen

import (
	"bytes"
	"math/rand"

	"lukechampine.com/blake3"
)

const (
	NonceSize  = 6
	HashSize   = 10
	RecordSize = HashSize + NonceSize
)

// Record is the on-disk layout of one entry: the hash followed by the nonce
// it was computed from.
type Record [RecordSize]byte

// Hash returns the hash bytes of the record.
func (r *Record) Hash() []byte { return r[:HashSize] }

// Nonce returns the nonce bytes of the record.
func (r *Record) Nonce() []byte { return r[HashSize:] }

// Cmp orders records by hash.
func (r *Record) Cmp(other *Record) int {
	return bytes.Compare(r[:HashSize], other[:HashSize])
}

// fill draws a random nonce and stores its hash.
func (r *Record) fill(rng *rand.Rand) {
	v := rng.Uint64()
	for i := 0; i < NonceSize; i++ {
		r[HashSize+i] = byte(v >> (8 * i))
	}
	r.rehash()
}

func (r *Record) rehash() {
	sum := HashNonce(r.Nonce())
	copy(r[:HashSize], sum[:])
}

// HashNonce returns the first HashSize bytes of the BLAKE3 digest of
// 'nonce'. BLAKE3 output is extendable, so this equals a HashSize-byte
// digest.
func HashNonce(nonce []byte) [HashSize]byte {
	sum := blake3.Sum256(nonce)
	var out [HashSize]byte
	copy(out[:], sum[:HashSize])
	return out
}
