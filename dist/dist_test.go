package dist_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/mdsimlab/counterrand/dist"
	"github.com/mdsimlab/counterrand/rng"
	"github.com/mdsimlab/counterrand/rng/threefry"
)

// 16 counter bits give each coordinate plenty of words for the
// statistical specs below.
func newEngine(coord rng.Block) *rng.Engine {
	return rng.NewEngineAt(threefry.NewFromSeed(123), 16, coord)
}

var _ = Describe("Float64", func() {
	It("should stay in [0, 1)", func() {
		eng := newEngine(rng.Coord(1))

		for i := 0; i < 10000; i++ {
			v := dist.Float64(eng)
			Expect(v).To(And(
				BeNumerically(">=", 0.0),
				BeNumerically("<", 1.0)))
		}
	})

	It("should have mean near one half", func() {
		eng := newEngine(rng.Coord(2))

		sum := 0.0
		n := 10000
		for i := 0; i < n; i++ {
			sum += dist.Float64(eng)
		}

		Expect(sum / float64(n)).To(BeNumerically("~", 0.5, 0.02))
	})
})

var _ = Describe("Bernoulli", func() {
	It("should track its probability", func() {
		eng := newEngine(rng.Coord(3))
		bd := dist.Bernoulli{P: 0.25}

		hits := 0
		n := 10000
		for i := 0; i < n; i++ {
			if bd.Draw(eng) {
				hits++
			}
		}

		Expect(float64(hits) / float64(n)).
			To(BeNumerically("~", 0.25, 0.03))
	})

	It("should reproduce the same outcome after a restart", func() {
		eng := newEngine(rng.Coord(3, 1, 1))
		bd := dist.Bernoulli{P: 0.5}

		first := bd.Draw(eng)
		eng.Restart(rng.Coord(3, 1, 1))
		Expect(bd.Draw(eng)).To(Equal(first))
	})
})

var _ = Describe("Uniform", func() {
	It("should stay in [Min, Max)", func() {
		eng := newEngine(rng.Coord(4))
		u := dist.Uniform{Min: -2, Max: 5}

		for i := 0; i < 1000; i++ {
			v := u.Draw(eng)
			Expect(v).To(And(
				BeNumerically(">=", -2.0),
				BeNumerically("<", 5.0)))
		}
	})
})

var _ = Describe("Normal", func() {
	It("should match its mean and standard deviation", func() {
		eng := newEngine(rng.Coord(5))
		nd := dist.Normal{Mean: 10, Sigma: 2}

		n := 10000
		sum := 0.0
		sumSq := 0.0
		for i := 0; i < n; i++ {
			v := nd.Draw(eng)
			sum += v
			sumSq += v * v
		}

		mean := sum / float64(n)
		std := math.Sqrt(sumSq/float64(n) - mean*mean)

		Expect(mean).To(BeNumerically("~", 10, 0.1))
		Expect(std).To(BeNumerically("~", 2, 0.1))
	})

	It("should not leak the cached variate across a reset", func() {
		nd := dist.Normal{Sigma: 1}

		eng := newEngine(rng.Coord(6))
		nd.Draw(eng) // leaves a spare cached

		nd.Reset()
		eng.Restart(rng.Coord(6))

		fresh := dist.Normal{Sigma: 1}
		freshEng := newEngine(rng.Coord(6))

		Expect(nd.Draw(eng)).To(Equal(fresh.Draw(freshEng)))
	})
})
