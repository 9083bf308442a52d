// Package rng provides deterministic, parallel-safe random number
// generation for simulations. Random values are derived from a coordinate
// that identifies who is being randomized, at what logical time, and for
// what purpose, rather than from the order in which values are drawn.
// Any partition of the work across goroutines therefore produces
// bit-identical results.
package rng

import "log"

// WordsPerBlock is the number of 32-bit words in a Block.
const WordsPerBlock = 4

// A Block is the fixed-width input and output unit of a Prf. When used as
// a Prf input it is called a domain value or coordinate. Blocks compare
// with ==.
type Block [WordsPerBlock]uint32

// A Prf is a keyed pseudorandom function mapping one Block to another.
// The key is fixed at construction and a Prf holds no other state, so a
// single instance can be invoked concurrently from any number of
// goroutines. The same key and input must produce the same output,
// forever, on every platform.
type Prf interface {
	Bits(in Block) Block
}

// Coord builds a coordinate from up to four words. Unspecified trailing
// words are zero, so Coord(id, step) and Coord(id, step, 0, 0) name the
// same coordinate.
func Coord(words ...uint32) Block {
	if len(words) > WordsPerBlock {
		log.Panicf("coordinate has %d words, max is %d",
			len(words), WordsPerBlock)
	}

	var b Block
	copy(b[:], words)

	return b
}
