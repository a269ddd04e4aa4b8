package physics

import "math/rand"

// SpawnScenario populates store per the literal definitions in spec.md
// §6. Fountain starts empty; its drip behavior is driven per-step by
// (*Integrator).TickFountain using simulated time, not wall-clock time.
func SpawnScenario(store *ParticleStore, tag ScenarioTag) {
	switch tag {
	case ScenarioDamBreak:
		store.SpawnGrid(71, 71, 0.02, Vec2{X: -0.5, Y: -0.5})
	case ScenarioWaterDrop:
		spawnDisc(store, Vec2{X: 0, Y: 0.5}, 0.3, Vec2{X: 0, Y: -1})
	case ScenarioDoubleDamBreak:
		spawnDoubleDamBreak(store)
	case ScenarioFountain:
		store.Clear()
	}
}

// spawnDisc rasterizes a filled disc of the given radius centered at
// center by rejection sampling inside the bounding square, every particle
// given the same initial velocity.
func spawnDisc(store *ParticleStore, center Vec2, radius float64, velocity Vec2) {
	store.Clear()
	const spacing = 0.02
	steps := int(2 * radius / spacing)
	for row := 0; row <= steps; row++ {
		for col := 0; col <= steps; col++ {
			offset := Vec2{
				X: -radius + float64(col)*spacing,
				Y: -radius + float64(row)*spacing,
			}
			if offset.LengthSq() > radius*radius {
				continue
			}
			store.Add(center.Add(offset), velocity)
		}
	}
}

// spawnDoubleDamBreak lays out two 35x71 blocks at the spacing DamBreak
// uses, anchored at x=-0.8 and x=0.1.
func spawnDoubleDamBreak(store *ParticleStore) {
	store.Clear()
	const cols, rows = 35, 71
	const spacing = 0.02
	appendBlock := func(originX float64) {
		for row := 0; row < rows; row++ {
			for col := 0; col < cols; col++ {
				pos := Vec2{X: originX + float64(col)*spacing, Y: -0.5 + float64(row)*spacing}
				store.Add(pos, Vec2{})
			}
		}
	}
	appendBlock(-0.8)
	appendBlock(0.1)
}

// FountainSpawnPoint and FountainVelocity are the literal constants for the
// Fountain scenario's one-particle-per-100ms drip.
var (
	FountainSpawnPoint = Vec2{X: 0, Y: 0.8}
	FountainVelocity   = Vec2{X: 0, Y: -3}
)

const fountainDripInterval = 0.1 // 100ms, in simulated seconds

// fountainDripJitter adds a small random perturbation to the spawn
// position so successive drips don't perfectly overlap; the spec permits
// random initial perturbation and disclaims cross-platform determinism.
func fountainDripJitter() Vec2 {
	return Vec2{X: (rand.Float64() - 0.5) * 0.01, Y: 0}
}
