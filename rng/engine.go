package rng

import (
	"errors"
	"log"
)

// Engine contract violations. They are programmer errors, not runtime
// conditions: the engine panics with one of these values instead of
// returning it.
var (
	// ErrUninitializedDomain is raised when an engine is asked for output
	// before any coordinate has been set.
	ErrUninitializedDomain = errors.New(
		"rng: engine has no coordinate, call Restart first")

	// ErrDomainExhausted is raised when the block counter would overflow
	// its reserved bits. Wrapping would alias another coordinate's output.
	ErrDomainExhausted = errors.New(
		"rng: coordinate stream exhausted, counter bits overflow")

	// ErrDomainOverlap is raised when a restart coordinate has bits set in
	// the field reserved for the block counter.
	ErrDomainOverlap = errors.New(
		"rng: coordinate intrudes on reserved counter bits")
)

// An Engine adapts a Prf into a sequential generator. It binds a
// coordinate and a block counter: each refill invokes the Prf on the
// coordinate with the counter laced into the high bits of the last word,
// so the words drawn for a coordinate depend only on that coordinate.
//
// An Engine is a cheap, single-owner cursor. It must not be shared
// between goroutines while live; construct or Restart one per unit of
// work instead. Engine implements the math/rand/v2 Source interface.
type Engine struct {
	prf         Prf
	counterBits uint

	domain    Block
	blockIdx  uint64
	maxBlocks uint64

	buf    Block
	bufPos int
	ready  bool
}

// NewEngine creates an engine over prf with the top counterBits bits of
// the last domain word reserved for the block counter. The engine is not
// ready until Restart is called. counterBits must be in [1, 32].
func NewEngine(prf Prf, counterBits uint) *Engine {
	if counterBits < 1 || counterBits > 32 {
		log.Panicf("counter bits must be in [1, 32], got %d", counterBits)
	}

	return &Engine{
		prf:         prf,
		counterBits: counterBits,
		maxBlocks:   1 << counterBits,
		bufPos:      WordsPerBlock,
	}
}

// NewEngineAt creates an engine already bound to a coordinate. It is
// equivalent to NewEngine followed by Restart.
func NewEngineAt(prf Prf, counterBits uint, coord Block) *Engine {
	e := NewEngine(prf, counterBits)
	e.Restart(coord)

	return e
}

// Restart discards any buffered output, binds the engine to coord, and
// resets the block counter. Drawing after a Restart is bit-identical to
// drawing from a freshly constructed engine with the same coordinate.
// Restart is the only supported way to reuse an engine across units of
// work.
func (e *Engine) Restart(coord Block) {
	if coord[WordsPerBlock-1]>>(32-e.counterBits) != 0 {
		panic(ErrDomainOverlap)
	}

	e.domain = coord
	e.blockIdx = 0
	e.bufPos = WordsPerBlock
	e.ready = true
}

// Domain returns the coordinate the engine is bound to.
func (e *Engine) Domain() Block {
	return e.domain
}

// NextWord returns the next word of the coordinate's stream, refilling
// from the Prf when the buffer is empty.
func (e *Engine) NextWord() uint32 {
	if !e.ready {
		panic(ErrUninitializedDomain)
	}

	if e.bufPos == WordsPerBlock {
		e.refill()
	}

	w := e.buf[e.bufPos]
	e.bufPos++

	return w
}

func (e *Engine) refill() {
	if e.blockIdx == e.maxBlocks {
		panic(ErrDomainExhausted)
	}

	in := e.domain
	in[WordsPerBlock-1] |= uint32(e.blockIdx) << (32 - e.counterBits)

	e.buf = e.prf.Bits(in)
	e.blockIdx++
	e.bufPos = 0
}

// Uint64 returns the next two words of the stream as one value. It makes
// Engine usable as a math/rand/v2 Source, so the standard samplers can
// draw from a coordinate's stream directly.
func (e *Engine) Uint64() uint64 {
	hi := uint64(e.NextWord())
	lo := uint64(e.NextWord())

	return hi<<32 | lo
}
