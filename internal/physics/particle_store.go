package physics

import "math"

// ParticleStore owns the per-particle state in structure-of-arrays form.
// Every exported slice has identical length at the start and end of every
// step; no particle is ever relocated to a new index mid-step.
type ParticleStore struct {
	Positions     []Vec2
	Velocities    []Vec2
	Accelerations []Vec2
	Densities     []float64
	Pressures     []float64

	// Discrete-collision-mode only attributes. Charge is carried but never
	// read by any force computation (spec: "carried but unused in
	// dynamics").
	Radii   []float64
	Masses  []float64
	Charges []float64
}

// NewParticleStore returns an empty store with the given initial capacity
// reserved in every parallel array.
func NewParticleStore(capacity int) *ParticleStore {
	s := &ParticleStore{}
	s.Reserve(capacity)
	return s
}

// Size returns the current particle count N.
func (s *ParticleStore) Size() int {
	return len(s.Positions)
}

// Reserve grows the backing capacity of every parallel array without
// changing Size().
func (s *ParticleStore) Reserve(capacity int) {
	fatalAllocation("ParticleStore.Reserve", capacity)
	s.Positions = growCap(s.Positions, capacity)
	s.Velocities = growCap(s.Velocities, capacity)
	s.Accelerations = growCap(s.Accelerations, capacity)
	s.Densities = growCapF(s.Densities, capacity)
	s.Pressures = growCapF(s.Pressures, capacity)
	s.Radii = growCapF(s.Radii, capacity)
	s.Masses = growCapF(s.Masses, capacity)
	s.Charges = growCapF(s.Charges, capacity)
}

func growCap(s []Vec2, capacity int) []Vec2 {
	if cap(s) >= capacity {
		return s
	}
	grown := make([]Vec2, len(s), capacity)
	copy(grown, s)
	return grown
}

func growCapF(s []float64, capacity int) []float64 {
	if cap(s) >= capacity {
		return s
	}
	grown := make([]float64, len(s), capacity)
	copy(grown, s)
	return grown
}

// Resize sets the particle count to n, truncating or zero-extending every
// parallel array in lockstep.
func (s *ParticleStore) Resize(n int) {
	fatalAllocation("ParticleStore.Resize", n)
	s.Positions = resizeVec2(s.Positions, n)
	s.Velocities = resizeVec2(s.Velocities, n)
	s.Accelerations = resizeVec2(s.Accelerations, n)
	s.Densities = resizeF(s.Densities, n)
	s.Pressures = resizeF(s.Pressures, n)
	s.Radii = resizeF(s.Radii, n)
	s.Masses = resizeF(s.Masses, n)
	s.Charges = resizeF(s.Charges, n)
}

func resizeVec2(s []Vec2, n int) []Vec2 {
	if n <= len(s) {
		return s[:n]
	}
	grown := make([]Vec2, n)
	copy(grown, s)
	return grown
}

func resizeF(s []float64, n int) []float64 {
	if n <= len(s) {
		return s[:n]
	}
	grown := make([]float64, n)
	copy(grown, s)
	return grown
}

// SpawnGrid lays out cols x rows particles on a regular lattice with zero
// velocity/acceleration/density/pressure, replacing any existing particles.
func (s *ParticleStore) SpawnGrid(cols, rows int, spacing float64, origin Vec2) {
	n := cols * rows
	s.Clear()
	s.Resize(n)
	idx := 0
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			s.Positions[idx] = Vec2{
				X: origin.X + float64(col)*spacing,
				Y: origin.Y + float64(row)*spacing,
			}
			idx++
		}
	}
}

// SpawnGridDiscrete lays out cols x rows particles on a regular lattice with
// zero velocity and the given uniform radius/mass, replacing any existing
// particles. Used for the discrete-collision mode's default scenario.
func (s *ParticleStore) SpawnGridDiscrete(cols, rows int, spacing float64, origin Vec2, radius, mass float64) {
	s.SpawnGrid(cols, rows, spacing, origin)
	for i := range s.Radii {
		s.Radii[i] = radius
		s.Masses[i] = mass
	}
}

// Add appends one particle, growing every parallel array in lockstep.
// Unset discrete-mode attributes default to zero.
func (s *ParticleStore) Add(position, velocity Vec2) {
	s.Positions = append(s.Positions, position)
	s.Velocities = append(s.Velocities, velocity)
	s.Accelerations = append(s.Accelerations, Vec2{})
	s.Densities = append(s.Densities, 0)
	s.Pressures = append(s.Pressures, 0)
	s.Radii = append(s.Radii, 0)
	s.Masses = append(s.Masses, 0)
	s.Charges = append(s.Charges, 0)
}

// AddDiscrete appends one discrete-collision-mode particle with an
// explicit radius, mass, and charge.
func (s *ParticleStore) AddDiscrete(position, velocity Vec2, radius, mass, charge float64) {
	s.Add(position, velocity)
	last := len(s.Positions) - 1
	s.Radii[last] = radius
	s.Masses[last] = mass
	s.Charges[last] = charge
}

// SetUniformDiscreteAttributes assigns the same radius and mass to every
// currently-held particle, leaving Charges untouched. Used to backfill
// discrete-collision attributes onto a store populated by an SPH-oriented
// spawn routine (e.g. a scenario preset) after the fact, since those
// routines only set Positions/Velocities.
func (s *ParticleStore) SetUniformDiscreteAttributes(radius, mass float64) {
	for i := range s.Radii {
		s.Radii[i] = radius
		s.Masses[i] = mass
	}
}

// RemoveWithinRadius performs a stable in-place compact-filter removing
// every particle within r of center, in O(N) with no allocation.
func (s *ParticleStore) RemoveWithinRadius(center Vec2, r float64) {
	rSq := r * r
	write := 0
	for read := 0; read < len(s.Positions); read++ {
		if center.DistSq(s.Positions[read]) <= rSq {
			continue
		}
		if write != read {
			s.Positions[write] = s.Positions[read]
			s.Velocities[write] = s.Velocities[read]
			s.Accelerations[write] = s.Accelerations[read]
			s.Densities[write] = s.Densities[read]
			s.Pressures[write] = s.Pressures[read]
			s.Radii[write] = s.Radii[read]
			s.Masses[write] = s.Masses[read]
			s.Charges[write] = s.Charges[read]
		}
		write++
	}
	s.Resize(write)
}

// Clear empties every array without freeing their backing capacity.
func (s *ParticleStore) Clear() {
	s.Resize(0)
}

// MaxSpeed returns the largest velocity magnitude currently held, or 0 if
// the store is empty.
func (s *ParticleStore) MaxSpeed() float64 {
	max := 0.0
	for _, v := range s.Velocities {
		if l := v.Length(); l > max {
			max = l
		}
	}
	return max
}

// HasNaNOrInf reports whether any position, velocity, acceleration,
// density, or pressure entry is NaN or +/-Inf.
func (s *ParticleStore) HasNaNOrInf() bool {
	bad := func(v float64) bool { return math.IsNaN(v) || math.IsInf(v, 0) }
	for i := range s.Positions {
		if bad(s.Positions[i].X) || bad(s.Positions[i].Y) {
			return true
		}
		if bad(s.Velocities[i].X) || bad(s.Velocities[i].Y) {
			return true
		}
		if bad(s.Accelerations[i].X) || bad(s.Accelerations[i].Y) {
			return true
		}
		if bad(s.Densities[i]) || bad(s.Pressures[i]) {
			return true
		}
	}
	return false
}
