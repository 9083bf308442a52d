// Package aesprf provides an AES-128 based pseudorandom function over
// rng.Block. It trades the speed of a dedicated counter-based permutation
// for a conservative, well-studied primitive. Interchangeable with
// threefry wherever an rng.Prf is expected, though the two produce
// unrelated streams for the same seed.
package aesprf

import (
	"crypto/aes"
	"crypto/cipher"
	"encoding/binary"

	"github.com/mdsimlab/counterrand/rng"
)

// Aes128 encrypts coordinate blocks with a seed-derived AES-128 key.
// cipher.Block implementations in the standard library are safe for
// concurrent use, so a single instance can be shared.
type Aes128 struct {
	block cipher.Block
}

// New creates an Aes128 keyed by the four words of key.
func New(key rng.Block) *Aes128 {
	var kb [16]byte
	for i, w := range key {
		binary.LittleEndian.PutUint32(kb[i*4:], w)
	}

	block, err := aes.NewCipher(kb[:])
	if err != nil {
		// aes.NewCipher only fails on bad key sizes, and ours is fixed.
		panic(err)
	}

	return &Aes128{block: block}
}

// NewFromSeed keys the cipher with a single seed word, zero-padding the
// rest of the key.
func NewFromSeed(seed uint32) *Aes128 {
	return New(rng.Coord(seed))
}

// Bits encrypts in as one AES block.
func (a *Aes128) Bits(in rng.Block) rng.Block {
	var pt, ct [16]byte
	for i, w := range in {
		binary.LittleEndian.PutUint32(pt[i*4:], w)
	}

	a.block.Encrypt(ct[:], pt[:])

	var out rng.Block
	for i := range out {
		out[i] = binary.LittleEndian.Uint32(ct[i*4:])
	}

	return out
}
