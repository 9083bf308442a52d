// Package moldyn is a small molecular-dynamics style demonstration of
// coordinate-addressed random number generation. Masses and thermal
// velocities are assigned to atoms in parallel, and the result is
// bit-identical for any worker count because each atom's draws are
// addressed by {atom id, timestep, purpose} rather than by the order in
// which atoms are processed.
package moldyn

import (
	"math"

	"github.com/mdsimlab/counterrand/dist"
	"github.com/mdsimlab/counterrand/parallel"
	"github.com/mdsimlab/counterrand/rng"
	"github.com/mdsimlab/counterrand/rng/threefry"
)

// Purpose tags distinguish unrelated random decisions made for the same
// atom at the same timestep. The values are part of the reproducibility
// contract and must never be reassigned between versions.
const (
	PurposeThermalize uint32 = 0
	PurposeAssignMass uint32 = 1
)

// counterBits reserves 5 bits of the last coordinate word for the block
// counter, giving each coordinate up to 128 words. Thermalization draws
// at most 12 words per atom.
const counterBits = 5

// GasConstant is the molar gas constant in J/(mol*K).
const GasConstant = 8.314

// AMU is one atomic mass unit in kg/mol.
const AMU = 1e-3

// An Atom carries the per-entity state the demonstration randomizes.
// Mass is in kg/mol, velocities in m/s.
type Atom struct {
	ID         uint32
	Mass       float64
	Vx, Vy, Vz float64
}

// A System is a collection of atoms plus the shared pseudorandom function
// their draws are keyed by. The Prf is read-only after construction and
// is shared by all workers without locking.
type System struct {
	Atoms       []Atom
	Temperature float64 // K

	prf     rng.Prf
	workers int
}

// NewSystem creates a system of n atoms at 300 K, keyed by seed, that
// randomizes with the given number of parallel workers.
func NewSystem(n int, seed uint32, workers int) *System {
	if workers < 1 {
		workers = parallel.DefaultWorkers()
	}

	s := &System{
		Atoms:       make([]Atom, n),
		Temperature: 300,
		prf:         threefry.NewFromSeed(seed),
		workers:     workers,
	}

	for i := range s.Atoms {
		s.Atoms[i].ID = uint32(i)
	}

	return s
}

// AssignMasses gives every atom mass m1 or m2 with equal probability. The
// pick for an atom depends only on its ID and the seed.
func (s *System) AssignMasses(m1, m2 float64) {
	parallel.ForEach(s.workers, len(s.Atoms), func(start, count int) {
		bd := dist.Bernoulli{P: 0.5}
		eng := rng.NewEngine(s.prf, counterBits)

		for i := start; i < start+count; i++ {
			atom := &s.Atoms[i]

			eng.Restart(rng.Coord(atom.ID, 0, PurposeAssignMass))
			if bd.Draw(eng) {
				atom.Mass = m1
			} else {
				atom.Mass = m2
			}
		}
	})
}

// Thermalize assigns every atom a Maxwell-Boltzmann velocity for the
// given timestep. The triple for an atom depends only on its ID, the
// timestep, and the seed, so re-running a timestep reproduces it exactly.
func (s *System) Thermalize(timestep uint32) {
	kT := GasConstant * s.Temperature

	parallel.ForEach(s.workers, len(s.Atoms), func(start, count int) {
		eng := rng.NewEngine(s.prf, counterBits)

		for i := start; i < start+count; i++ {
			atom := &s.Atoms[i]

			rms := math.Sqrt(kT / atom.Mass)
			mbd := dist.Normal{Sigma: rms}

			eng.Restart(rng.Coord(atom.ID, timestep, PurposeThermalize))
			atom.Vx = mbd.Draw(eng)
			atom.Vy = mbd.Draw(eng)
			atom.Vz = mbd.Draw(eng)
		}
	})
}
