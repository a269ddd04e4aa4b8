package physics

import "math"

// maxCollisionPairsPerParticle bounds the CollisionPairCache at roughly
// 10*N pairs. Overflow silently drops new pairs: the simulation is already
// severely over-packed and diverging by the time this bound is hit.
const maxCollisionPairsPerParticle = 10

// CollisionPair is an ordered (i, j) particle-index pair recorded during
// detection, consumed by position-based overlap resolution later in the
// same step.
type CollisionPair struct {
	A, B int
}

// CollisionPairCache is a bounded, append-only sequence of CollisionPair
// cleared at the start of every step.
type CollisionPairCache struct {
	pairs []CollisionPair
	cap   int
}

// NewCollisionPairCache sizes the cache to roughly 10*N for n particles.
func NewCollisionPairCache(n int) *CollisionPairCache {
	cap := n * maxCollisionPairsPerParticle
	if cap < maxCollisionPairsPerParticle {
		cap = maxCollisionPairsPerParticle
	}
	return &CollisionPairCache{pairs: make([]CollisionPair, 0, cap), cap: cap}
}

// Clear empties the cache at step start without shrinking its capacity.
func (c *CollisionPairCache) Clear() {
	c.pairs = c.pairs[:0]
}

// Add records a pair, silently dropping it if the cache is full.
func (c *CollisionPairCache) Add(a, b int) {
	if len(c.pairs) >= c.cap {
		return
	}
	c.pairs = append(c.pairs, CollisionPair{A: a, B: b})
}

// Pairs returns the currently cached pairs.
func (c *CollisionPairCache) Pairs() []CollisionPair {
	return c.pairs
}

// CollisionSolver implements the discrete-collision-mode pipeline: swept
// pair detection + elastic-collision response, predictive wall bounce, and
// cached position-based overlap resolution.
type CollisionSolver struct{}

// NewCollisionSolver returns a stateless collision solver; all state lives
// in the ParticleStore and the caller-owned CollisionPairCache.
func NewCollisionSolver() *CollisionSolver {
	return &CollisionSolver{}
}

// PredictAndRespond tests particles a and b for a swept-position collision
// over the step dt. If they are within contact distance and approaching,
// it applies a geometrically correct 2D elastic-collision impulse (the
// dot-product-projection formula, not the mass-ratio variant) and records
// the pair in cache.
func (c *CollisionSolver) PredictAndRespond(store *ParticleStore, a, b int, dt float64, restitution float64, cache *CollisionPairCache) {
	futureA := store.Positions[a].Add(store.Velocities[a].Scale(dt))
	futureB := store.Positions[b].Add(store.Velocities[b].Scale(dt))
	dist := futureA.Sub(futureB).Length()

	contact := store.Radii[a] + store.Radii[b]
	if dist > contact {
		return
	}

	relPos := store.Positions[b].Sub(store.Positions[a])
	relVel := store.Velocities[a].Sub(store.Velocities[b])
	approaching := relPos.Dot(relVel)
	if approaching <= 0 {
		return
	}

	c.resolveElasticImpulse(store, a, b, restitution)
	cache.Add(a, b)
}

// resolveElasticImpulse applies the geometrically correct elastic-collision
// response (dot-product projection along the contact normal). For equal
// masses and a head-on approach this swaps the two velocities exactly.
func (c *CollisionSolver) resolveElasticImpulse(store *ParticleStore, a, b int, restitution float64) {
	va := store.Velocities[a]
	vb := store.Velocities[b]
	ma := store.Masses[a]
	mb := store.Masses[b]

	dv := va.Sub(vb)
	dp := store.Positions[a].Sub(store.Positions[b])

	distSq := dp.LengthSq()
	if distSq <= 0 {
		return
	}

	scale := 2 * dv.Dot(dp) / ((ma + mb) * distSq)

	store.Velocities[a] = va.Sub(dp.Scale(mb * scale)).Scale(restitution)
	store.Velocities[b] = vb.Add(dp.Scale(ma * scale)).Scale(restitution)
}

// WallResponse performs a predictive 1D reflection against each of the
// four domain walls: if the particle would cross a wall within dt at its
// current velocity, that velocity component is reflected and damped by
// wallRestitution.
func (c *CollisionSolver) WallResponse(store *ParticleStore, i int, dt float64, domain Domain, wallRestitution float64) {
	pos := store.Positions[i]
	vel := store.Velocities[i]
	r := store.Radii[i]

	if pos.Y+r+vel.Y*dt >= domain.Top && vel.Y > 0 {
		vel.Y = -wallRestitution * vel.Y
	} else if pos.Y-r+vel.Y*dt <= domain.Bottom && vel.Y < 0 {
		vel.Y = -wallRestitution * vel.Y
	}

	if pos.X+r+vel.X*dt >= domain.Right && vel.X > 0 {
		vel.X = -wallRestitution * vel.X
	} else if pos.X-r+vel.X*dt <= domain.Left && vel.X < 0 {
		vel.X = -wallRestitution * vel.X
	}

	store.Velocities[i] = vel
}

// Domain is the rectangular simulation boundary used by discrete-mode wall
// handling and position clamping.
type Domain struct {
	Left, Right, Bottom, Top float64
}

// ResolveOverlapsCached iterates at most maxIter times over cache's pairs,
// pushing overlapping particles apart along their contact normal in
// proportion to the other particle's mass share. It exits early once the
// maximum penetration across an iteration drops below 1e-4 or no
// correction was applied. After resolution every particle is clamped to
// the domain (accounting for radius) with the outward velocity component
// zeroed on clamped sides.
func (c *CollisionSolver) ResolveOverlapsCached(store *ParticleStore, cache *CollisionPairCache, domain Domain, maxIter int) {
	const convergenceThreshold = 1e-4

	for iter := 0; iter < maxIter; iter++ {
		maxPenetration := 0.0
		corrected := false

		for _, pair := range cache.Pairs() {
			a, b := pair.A, pair.B
			dp := store.Positions[a].Sub(store.Positions[b])
			distSq := dp.LengthSq()
			contact := store.Radii[a] + store.Radii[b]

			if distSq >= contact*contact {
				continue
			}

			dist := math.Sqrt(distSq)
			penetration := contact - dist
			if penetration > maxPenetration {
				maxPenetration = penetration
			}

			var normal Vec2
			if dist > 1e-9 {
				normal = dp.Scale(1.0 / dist)
			} else {
				normal = Vec2{X: 1, Y: 0}
			}

			correction := penetration * 0.5
			totalMass := store.Masses[a] + store.Masses[b]
			if totalMass <= 0 {
				continue
			}

			store.Positions[a] = store.Positions[a].Add(normal.Scale(correction * store.Masses[b] / totalMass))
			store.Positions[b] = store.Positions[b].Sub(normal.Scale(correction * store.Masses[a] / totalMass))
			corrected = true
		}

		if maxPenetration < convergenceThreshold || !corrected {
			break
		}
	}

	c.clampToDomain(store, domain)
}

// clampToDomain clamps every particle to [left+r, right-r] x [bottom+r,
// top-r] and zeroes the outward velocity component on any clamped side.
func (c *CollisionSolver) clampToDomain(store *ParticleStore, domain Domain) {
	for i := range store.Positions {
		r := store.Radii[i]
		pos := store.Positions[i]
		vel := store.Velocities[i]

		if pos.X < domain.Left+r {
			pos.X = domain.Left + r
			if vel.X < 0 {
				vel.X = 0
			}
		} else if pos.X > domain.Right-r {
			pos.X = domain.Right - r
			if vel.X > 0 {
				vel.X = 0
			}
		}

		if pos.Y < domain.Bottom+r {
			pos.Y = domain.Bottom + r
			if vel.Y < 0 {
				vel.Y = 0
			}
		} else if pos.Y > domain.Top-r {
			pos.Y = domain.Top - r
			if vel.Y > 0 {
				vel.Y = 0
			}
		}

		store.Positions[i] = pos
		store.Velocities[i] = vel
	}
}
