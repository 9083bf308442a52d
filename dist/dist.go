// Package dist provides distribution samplers that draw from an
// rng.Engine. Each sampler is a deterministic function of the words it
// consumes, so a sampler applied to a freshly restarted engine always
// reproduces the same value.
package dist

import (
	"math"

	"github.com/mdsimlab/counterrand/rng"
)

// Float64 returns a uniform value in [0, 1) with 53 bits of precision,
// consuming two words.
func Float64(e *rng.Engine) float64 {
	return float64(e.Uint64()<<11>>11) / (1 << 53)
}

// Float32 returns a uniform value in [0, 1) with 24 bits of precision,
// consuming one word.
func Float32(e *rng.Engine) float32 {
	return float32(e.NextWord()>>8) / (1 << 24)
}

// Bernoulli samples true with probability P.
type Bernoulli struct {
	P float64
}

// Draw consumes two words and returns the trial outcome.
func (b Bernoulli) Draw(e *rng.Engine) bool {
	return Float64(e) < b.P
}

// Uniform samples uniformly from [Min, Max).
type Uniform struct {
	Min, Max float64
}

// Draw consumes two words and returns a value in [Min, Max).
func (u Uniform) Draw(e *rng.Engine) float64 {
	return u.Min + (u.Max-u.Min)*Float64(e)
}

// Normal samples a Gaussian with the given mean and standard deviation
// using the Box-Muller transform. Each transform yields two variates; the
// second is cached, so Draw consumes four words on every other call and
// none in between.
type Normal struct {
	Mean, Sigma float64

	spare    float64
	hasSpare bool
}

// Draw returns the next normal variate.
func (n *Normal) Draw(e *rng.Engine) float64 {
	if n.hasSpare {
		n.hasSpare = false
		return n.Mean + n.Sigma*n.spare
	}

	// 1-Float64 maps [0,1) to (0,1] so the log argument is never zero.
	u1 := 1 - Float64(e)
	u2 := Float64(e)

	r := math.Sqrt(-2 * math.Log(u1))
	theta := 2 * math.Pi * u2

	n.spare = r * math.Sin(theta)
	n.hasSpare = true

	return n.Mean + n.Sigma*r*math.Cos(theta)
}

// Reset drops the cached variate. Call it before drawing against a
// restarted engine so the value cannot depend on an earlier stream.
func (n *Normal) Reset() {
	n.hasSpare = false
}
