// Package threefry implements the Threefry-4x32 pseudorandom bijection,
// a reduced-strength variant of the Threefish block cipher designed for
// counter-based random number generation. It is pure integer arithmetic,
// allocation-free per invocation, and keyed once at construction.
package threefry

import (
	"math/bits"

	"github.com/mdsimlab/counterrand/rng"
)

const rounds = 20

// keyScheduleParity is the Threefish key-schedule constant for 32-bit
// words (C240 truncated).
const keyScheduleParity = 0x1BD11BDA

// Rotation distances for the 4x32 variant, one pair per round, repeating
// every eight rounds.
var rotations = [8][2]uint{
	{10, 26},
	{11, 21},
	{13, 27},
	{23, 5},
	{6, 20},
	{17, 11},
	{25, 10},
	{18, 20},
}

// Threefry4x32 is a keyed bijection on rng.Block. A single instance is
// safe for unlimited concurrent use.
type Threefry4x32 struct {
	ks [5]uint32
}

// New creates a Threefry-4x32 instance keyed with key.
func New(key rng.Block) *Threefry4x32 {
	t := &Threefry4x32{}

	parity := uint32(keyScheduleParity)
	for i, k := range key {
		t.ks[i] = k
		parity ^= k
	}
	t.ks[4] = parity

	return t
}

// NewFromSeed keys the bijection with a single seed word, zero-padding
// the remaining key words.
func NewFromSeed(seed uint32) *Threefry4x32 {
	return New(rng.Coord(seed))
}

// Bits applies the 20-round Threefry-4x32 permutation to in.
func (t *Threefry4x32) Bits(in rng.Block) rng.Block {
	x0 := in[0] + t.ks[0]
	x1 := in[1] + t.ks[1]
	x2 := in[2] + t.ks[2]
	x3 := in[3] + t.ks[3]

	for r := 0; r < rounds; r++ {
		rot := rotations[r%8]

		if r%2 == 0 {
			x0 += x1
			x1 = bits.RotateLeft32(x1, int(rot[0]))
			x1 ^= x0

			x2 += x3
			x3 = bits.RotateLeft32(x3, int(rot[1]))
			x3 ^= x2
		} else {
			x0 += x3
			x3 = bits.RotateLeft32(x3, int(rot[0]))
			x3 ^= x0

			x2 += x1
			x1 = bits.RotateLeft32(x1, int(rot[1]))
			x1 ^= x2
		}

		if r%4 == 3 {
			s := uint32(r/4) + 1
			x0 += t.ks[s%5]
			x1 += t.ks[(s+1)%5]
			x2 += t.ks[(s+2)%5]
			x3 += t.ks[(s+3)%5]
			x3 += s
		}
	}

	return rng.Block{x0, x1, x2, x3}
}
