package physics

import (
	"math"
	"testing"
)

func TestPredictAndRespondHeadOnEqualMassesSwapsVelocities(t *testing.T) {
	store := NewParticleStore(0)
	store.AddDiscrete(Vec2{X: 0.49, Y: 0.5}, Vec2{X: 1, Y: 0}, 0.01, 1.0, 0)
	store.AddDiscrete(Vec2{X: 0.51, Y: 0.5}, Vec2{X: -1, Y: 0}, 0.01, 1.0, 0)

	solver := NewCollisionSolver()
	cache := NewCollisionPairCache(2)
	solver.PredictAndRespond(store, 0, 1, 0.01, 1.0, cache)

	if math.Abs(store.Velocities[0].X-(-1)) > 1e-9 || store.Velocities[0].Y != 0 {
		t.Errorf("expected particle 0 velocity (-1,0), got %v", store.Velocities[0])
	}
	if math.Abs(store.Velocities[1].X-1) > 1e-9 || store.Velocities[1].Y != 0 {
		t.Errorf("expected particle 1 velocity (1,0), got %v", store.Velocities[1])
	}
	if len(cache.Pairs()) != 1 {
		t.Errorf("expected one cached pair, got %d", len(cache.Pairs()))
	}
}

func TestPredictAndRespondIgnoresSeparatingPair(t *testing.T) {
	store := NewParticleStore(0)
	store.AddDiscrete(Vec2{X: 0.49, Y: 0.5}, Vec2{X: -1, Y: 0}, 0.01, 1.0, 0)
	store.AddDiscrete(Vec2{X: 0.51, Y: 0.5}, Vec2{X: 1, Y: 0}, 0.01, 1.0, 0)

	solver := NewCollisionSolver()
	cache := NewCollisionPairCache(2)
	solver.PredictAndRespond(store, 0, 1, 0.01, 1.0, cache)

	if store.Velocities[0] != (Vec2{X: -1, Y: 0}) {
		t.Errorf("expected unchanged velocity for separating pair, got %v", store.Velocities[0])
	}
	if len(cache.Pairs()) != 0 {
		t.Errorf("expected no cached pair for separating particles, got %d", len(cache.Pairs()))
	}
}

func TestPredictAndRespondIgnoresFarPair(t *testing.T) {
	store := NewParticleStore(0)
	store.AddDiscrete(Vec2{X: 0, Y: 0}, Vec2{X: 1, Y: 0}, 0.01, 1.0, 0)
	store.AddDiscrete(Vec2{X: 5, Y: 5}, Vec2{X: -1, Y: 0}, 0.01, 1.0, 0)

	solver := NewCollisionSolver()
	cache := NewCollisionPairCache(2)
	solver.PredictAndRespond(store, 0, 1, 0.01, 1.0, cache)

	if len(cache.Pairs()) != 0 {
		t.Errorf("expected no collision for distant particles")
	}
}

func TestWallResponseReflectsApproachingTopWall(t *testing.T) {
	store := NewParticleStore(0)
	store.AddDiscrete(Vec2{X: 0, Y: 0.99}, Vec2{X: 0, Y: 10}, 0.01, 1.0, 0)
	domain := Domain{Left: -1, Right: 1, Bottom: -1, Top: 1}

	solver := NewCollisionSolver()
	solver.WallResponse(store, 0, 0.01, domain, 0.95)

	if store.Velocities[0].Y >= 0 {
		t.Errorf("expected reflected (negative) Y velocity, got %v", store.Velocities[0].Y)
	}
	if math.Abs(store.Velocities[0].Y-(-0.95*10)) > 1e-9 {
		t.Errorf("expected Y velocity -9.5, got %v", store.Velocities[0].Y)
	}
}

func TestWallResponseLeavesReceedingParticleAlone(t *testing.T) {
	store := NewParticleStore(0)
	store.AddDiscrete(Vec2{X: 0, Y: 0.99}, Vec2{X: 0, Y: -10}, 0.01, 1.0, 0)
	domain := Domain{Left: -1, Right: 1, Bottom: -1, Top: 1}

	solver := NewCollisionSolver()
	solver.WallResponse(store, 0, 0.01, domain, 0.95)

	if store.Velocities[0].Y != -10 {
		t.Errorf("expected unchanged velocity moving away from wall, got %v", store.Velocities[0].Y)
	}
}

func TestResolveOverlapsCachedSeparatesOverlappingPair(t *testing.T) {
	store := NewParticleStore(0)
	store.AddDiscrete(Vec2{X: 0, Y: 0}, Vec2{}, 0.1, 1.0, 0)
	store.AddDiscrete(Vec2{X: 0.05, Y: 0}, Vec2{}, 0.1, 1.0, 0)

	solver := NewCollisionSolver()
	cache := NewCollisionPairCache(2)
	cache.Add(0, 1)

	domain := Domain{Left: -10, Right: 10, Bottom: -10, Top: 10}
	solver.ResolveOverlapsCached(store, cache, domain, 8)

	dist := store.Positions[0].Sub(store.Positions[1]).Length()
	if dist < 0.2-1e-3 {
		t.Errorf("expected particles separated to at least contact distance 0.2, got %v", dist)
	}
}

func TestResolveOverlapsCachedClampsToDomainAndZeroesOutwardVelocity(t *testing.T) {
	store := NewParticleStore(0)
	store.AddDiscrete(Vec2{X: 0.95, Y: 0}, Vec2{X: 5, Y: 0}, 0.1, 1.0, 0)

	solver := NewCollisionSolver()
	cache := NewCollisionPairCache(1)
	domain := Domain{Left: -1, Right: 1, Bottom: -1, Top: 1}
	solver.ResolveOverlapsCached(store, cache, domain, 8)

	if store.Positions[0].X > domain.Right-store.Radii[0]+1e-9 {
		t.Errorf("expected position clamped inside domain, got %v", store.Positions[0].X)
	}
	if store.Velocities[0].X != 0 {
		t.Errorf("expected outward velocity zeroed, got %v", store.Velocities[0].X)
	}
}

func TestCollisionPairCacheOverflowDropsSilently(t *testing.T) {
	cache := NewCollisionPairCache(0) // caps at maxCollisionPairsPerParticle
	for i := 0; i < maxCollisionPairsPerParticle+5; i++ {
		cache.Add(i, i+1)
	}
	if len(cache.Pairs()) != maxCollisionPairsPerParticle {
		t.Errorf("expected cache to cap at %d pairs, got %d", maxCollisionPairsPerParticle, len(cache.Pairs()))
	}
}

func TestCollisionPairCacheClear(t *testing.T) {
	cache := NewCollisionPairCache(4)
	cache.Add(0, 1)
	cache.Clear()
	if len(cache.Pairs()) != 0 {
		t.Errorf("expected empty cache after Clear, got %d", len(cache.Pairs()))
	}
}
