package moldyn_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/mdsimlab/counterrand/moldyn"
)

const (
	hydrogen = 1 * moldyn.AMU
	oxygen   = 16 * moldyn.AMU
)

func runScenario(seed uint32, workers int, timestep uint32) []moldyn.Atom {
	s := moldyn.NewSystem(100, seed, workers)
	s.AssignMasses(hydrogen, oxygen)
	s.Thermalize(timestep)

	return s.Atoms
}

var _ = Describe("System", func() {
	It("should produce the same result at any worker count", func() {
		reference := runScenario(1, 1, 1)

		for _, workers := range []int{2, 3, 7, 100} {
			Expect(runScenario(1, workers, 1)).To(Equal(reference))
		}
	})

	It("should reproduce a run exactly with the same seed", func() {
		Expect(runScenario(1, 4, 1)).To(Equal(runScenario(1, 4, 1)))
	})

	It("should change the whole run with the seed", func() {
		a := runScenario(1, 4, 1)
		b := runScenario(2, 4, 1)

		Expect(a).NotTo(Equal(b))
	})

	It("should assign one of the two masses to every atom", func() {
		s := moldyn.NewSystem(1000, 1, 4)
		s.AssignMasses(hydrogen, oxygen)

		light := 0
		for _, a := range s.Atoms {
			Expect(a.Mass).To(Or(Equal(hydrogen), Equal(oxygen)))
			if a.Mass == hydrogen {
				light++
			}
		}

		// Equal probability, 1000 trials.
		Expect(light).To(And(
			BeNumerically(">", 350),
			BeNumerically("<", 650)))
	})

	It("should keep masses independent of the thermalization step", func() {
		a := runScenario(1, 4, 1)
		b := runScenario(1, 4, 2)

		for i := range a {
			Expect(a[i].Mass).To(Equal(b[i].Mass))
		}
	})

	It("should draw fresh velocities for every timestep", func() {
		s := moldyn.NewSystem(10, 1, 2)
		s.AssignMasses(hydrogen, oxygen)

		s.Thermalize(1)
		first := append([]moldyn.Atom(nil), s.Atoms...)

		s.Thermalize(2)

		for i, a := range s.Atoms {
			Expect(a.Vx).NotTo(Equal(first[i].Vx))
			Expect(a.Vy).NotTo(Equal(first[i].Vy))
			Expect(a.Vz).NotTo(Equal(first[i].Vz))
		}
	})

	It("should be repeatable per timestep, not per call order", func() {
		forward := moldyn.NewSystem(10, 1, 2)
		forward.AssignMasses(hydrogen, oxygen)
		forward.Thermalize(1)
		forward.Thermalize(2)

		// Replaying just timestep 2 must not depend on having run
		// timestep 1 first.
		replay := moldyn.NewSystem(10, 1, 2)
		replay.AssignMasses(hydrogen, oxygen)
		replay.Thermalize(2)

		Expect(replay.Atoms).To(Equal(forward.Atoms))
	})

	It("should give heavier atoms slower thermal velocities", func() {
		s := moldyn.NewSystem(2000, 3, 4)
		s.AssignMasses(hydrogen, oxygen)
		s.Thermalize(1)

		var lightSq, heavySq float64
		var lightN, heavyN int
		for _, a := range s.Atoms {
			sq := a.Vx*a.Vx + a.Vy*a.Vy + a.Vz*a.Vz
			if a.Mass == hydrogen {
				lightSq += sq
				lightN++
			} else {
				heavySq += sq
				heavyN++
			}
		}

		Expect(lightSq / float64(lightN)).
			To(BeNumerically(">", heavySq/float64(heavyN)))
	})
})
