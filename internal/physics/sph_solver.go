package physics

import (
	"math"
	"sync"
)

// SPHSolver evaluates the density/pressure/force pipeline over neighbor
// pairs produced by a SpatialGrid. It holds no per-particle state of its
// own; all reads and writes go through the ParticleStore passed in.
type SPHSolver struct {
	grid   *SpatialGrid
	buffer []int
}

// NewSPHSolver creates a solver backed by the given spatial grid. The
// solver owns a single reusable neighbor buffer; the parallel phases
// (ComputeDensitiesParallel and friends) do not share it and draw their
// scratch buffers from a sync.Pool instead.
func NewSPHSolver(grid *SpatialGrid) *SPHSolver {
	return &SPHSolver{grid: grid, buffer: NewNeighborBuffer()}
}

// ComputeDensities fills store.Densities[i] with the kernel-weighted sum of
// neighbor masses plus the particle's own self-contribution. Summation
// order is not prescribed; the result is commutative up to floating-point
// rounding.
func (s *SPHSolver) ComputeDensities(store *ParticleStore, p SimulationParameters) {
	selfContribution := p.Mass * Poly6(0, p.H)
	for i := range store.Positions {
		n := s.grid.QueryNeighbors(i, store.Positions, s.buffer)
		density := selfContribution
		for k := 0; k < n; k++ {
			j := s.buffer[k]
			r2 := store.Positions[i].DistSq(store.Positions[j])
			density += p.Mass * Poly6Squared(r2, p.H)
		}
		store.Densities[i] = density
	}
}

// ComputePressures applies the Tait equation of state, clamping negative
// pressures to zero: P_i = max(0, B * ((rho_i/rho0)^gamma - 1)).
func (s *SPHSolver) ComputePressures(store *ParticleStore, p SimulationParameters) {
	for i, density := range store.Densities {
		ratio := density / p.Rho0
		pressure := p.B * (math.Pow(ratio, p.Gamma) - 1.0)
		if pressure < 0 {
			pressure = 0
		}
		store.Pressures[i] = pressure
	}
}

// AccumulatePressureForces adds the symmetric pressure-force contribution
// to store.Accelerations[i] for every particle, using the
// (P_i+P_j)/(2*rho_j) convention.
func (s *SPHSolver) AccumulatePressureForces(store *ParticleStore, p SimulationParameters) {
	for i := range store.Positions {
		n := s.grid.QueryNeighbors(i, store.Positions, s.buffer)
		force := Vec2{}
		for k := 0; k < n; k++ {
			j := s.buffer[k]
			rVec := store.Positions[i].Sub(store.Positions[j])
			gradW := SpikyGradient(rVec, p.H)
			pressureTerm := (store.Pressures[i] + store.Pressures[j]) / (2.0 * store.Densities[j])
			force = force.Sub(gradW.Scale(p.Mass * pressureTerm))
		}
		store.Accelerations[i] = store.Accelerations[i].Add(force.Scale(1.0 / store.Densities[i]))
	}
}

// AccumulateViscosityForces adds the viscosity contribution to
// store.Accelerations[i], then clamps the magnitude of every acceleration
// to p.MaxAcceleration (direction preserved).
func (s *SPHSolver) AccumulateViscosityForces(store *ParticleStore, p SimulationParameters) {
	for i := range store.Positions {
		n := s.grid.QueryNeighbors(i, store.Positions, s.buffer)
		force := Vec2{}
		for k := 0; k < n; k++ {
			j := s.buffer[k]
			r := store.Positions[i].Sub(store.Positions[j]).Length()
			laplacian := ViscosityLaplacian(r, p.H)
			velDiff := store.Velocities[j].Sub(store.Velocities[i])
			force = force.Add(velDiff.Scale(p.Mass * laplacian / store.Densities[j]))
		}
		force = force.Scale(p.Mu)
		store.Accelerations[i] = store.Accelerations[i].Add(force.Scale(1.0 / store.Densities[i]))

		ClampAcceleration(store, i, p.MaxAcceleration)
	}
}

// ComputeDensitiesParallel is the WorkScheduler-driven equivalent of
// ComputeDensities. Each worker draws a scratch neighbor buffer from a pool
// instead of sharing the solver's own buffer, since QueryNeighbors writes
// through it; every loop body touches only store.Densities[i], so no other
// synchronization is needed.
func (s *SPHSolver) ComputeDensitiesParallel(store *ParticleStore, p SimulationParameters, scheduler *WorkScheduler) {
	selfContribution := p.Mass * Poly6(0, p.H)
	pool := sync.Pool{New: func() any { return NewNeighborBuffer() }}

	scheduler.ParallelFor(0, store.Size(), func(i int) {
		buf := pool.Get().([]int)
		n := s.grid.QueryNeighbors(i, store.Positions, buf)
		density := selfContribution
		for k := 0; k < n; k++ {
			j := buf[k]
			r2 := store.Positions[i].DistSq(store.Positions[j])
			density += p.Mass * Poly6Squared(r2, p.H)
		}
		store.Densities[i] = density
		pool.Put(buf)
	})
}

// ComputePressuresParallel is the WorkScheduler-driven equivalent of
// ComputePressures. No neighbor lookup is involved, so no scratch buffer is
// needed.
func (s *SPHSolver) ComputePressuresParallel(store *ParticleStore, p SimulationParameters, scheduler *WorkScheduler) {
	scheduler.ParallelFor(0, store.Size(), func(i int) {
		ratio := store.Densities[i] / p.Rho0
		pressure := p.B * (math.Pow(ratio, p.Gamma) - 1.0)
		if pressure < 0 {
			pressure = 0
		}
		store.Pressures[i] = pressure
	})
}

// AccumulatePressureForcesParallel is the WorkScheduler-driven equivalent of
// AccumulatePressureForces.
func (s *SPHSolver) AccumulatePressureForcesParallel(store *ParticleStore, p SimulationParameters, scheduler *WorkScheduler) {
	pool := sync.Pool{New: func() any { return NewNeighborBuffer() }}

	scheduler.ParallelFor(0, store.Size(), func(i int) {
		buf := pool.Get().([]int)
		n := s.grid.QueryNeighbors(i, store.Positions, buf)
		force := Vec2{}
		for k := 0; k < n; k++ {
			j := buf[k]
			rVec := store.Positions[i].Sub(store.Positions[j])
			gradW := SpikyGradient(rVec, p.H)
			pressureTerm := (store.Pressures[i] + store.Pressures[j]) / (2.0 * store.Densities[j])
			force = force.Sub(gradW.Scale(p.Mass * pressureTerm))
		}
		store.Accelerations[i] = store.Accelerations[i].Add(force.Scale(1.0 / store.Densities[i]))
		pool.Put(buf)
	})
}

// AccumulateViscosityForcesParallel is the WorkScheduler-driven equivalent
// of AccumulateViscosityForces, including the per-particle acceleration
// clamp.
func (s *SPHSolver) AccumulateViscosityForcesParallel(store *ParticleStore, p SimulationParameters, scheduler *WorkScheduler) {
	pool := sync.Pool{New: func() any { return NewNeighborBuffer() }}

	scheduler.ParallelFor(0, store.Size(), func(i int) {
		buf := pool.Get().([]int)
		n := s.grid.QueryNeighbors(i, store.Positions, buf)
		force := Vec2{}
		for k := 0; k < n; k++ {
			j := buf[k]
			r := store.Positions[i].Sub(store.Positions[j]).Length()
			laplacian := ViscosityLaplacian(r, p.H)
			velDiff := store.Velocities[j].Sub(store.Velocities[i])
			force = force.Add(velDiff.Scale(p.Mass * laplacian / store.Densities[j]))
		}
		force = force.Scale(p.Mu)
		store.Accelerations[i] = store.Accelerations[i].Add(force.Scale(1.0 / store.Densities[i]))
		pool.Put(buf)

		ClampAcceleration(store, i, p.MaxAcceleration)
	})
}

// ClampAcceleration clamps the magnitude of store.Accelerations[i] to max,
// preserving direction.
func ClampAcceleration(store *ParticleStore, i int, max float64) {
	a := store.Accelerations[i]
	magSq := a.LengthSq()
	if magSq > max*max {
		mag := math.Sqrt(magSq)
		store.Accelerations[i] = a.Scale(max / mag)
	}
}
