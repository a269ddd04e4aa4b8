package physics

import "math"

// State is the Integrator's run state.
type State int

const (
	StateRunning State = iota
	StatePaused
)

// lattice holds the default lattice layout fixed at construction, so an
// instability reset and CommandReset can respawn it without the caller
// re-specifying a scenario. Loading a scenario does not change it.
type lattice struct {
	cols, rows int
	spacing    float64
	origin     Vec2
	discrete   bool
	radius     float64
	mass       float64
}

// Integrator owns the full per-step pipeline: SPH or discrete-collision
// force evaluation, Velocity-Verlet integration, adaptive timestep,
// stability validation with auto-reset, and command application. It is the
// single control thread described by the concurrency model; the
// parallelism lives inside the phases it calls, not between them.
type Integrator struct {
	store     *ParticleStore
	grid      *SpatialGrid
	sph       *SPHSolver
	collision *CollisionSolver
	pairCache *CollisionPairCache
	scheduler *WorkScheduler

	params SimulationParameters
	domain Domain
	mode   Mode
	state  State

	savedGravity  float64
	gravityZeroed bool

	colorMode int
	zoomLevel float64

	stepIndex    int64
	simulatedSec float64
	fountainAcc  float64

	fountainActive bool

	initial lattice
}

// NewIntegrator builds an Integrator in the given mode, seeded with the
// default 71x71 lattice at spacing 0.02 anchored at (-0.5, -0.5), the same
// layout as ScenarioDamBreak (spec.md §4.6's default scenario). domain is the rectangular boundary used for wall handling.
func NewIntegrator(mode Mode, params SimulationParameters, domain Domain) *Integrator {
	width := domain.Right - domain.Left
	height := domain.Top - domain.Bottom

	cellSize := params.H
	if mode == ModeDiscrete {
		cellSize = params.CellSize
	}

	store := NewParticleStore(71 * 71)
	grid := NewSpatialGrid(Vec2{X: domain.Left, Y: domain.Bottom}, width, height, cellSize)

	in := &Integrator{
		store:     store,
		grid:      grid,
		sph:       NewSPHSolver(grid),
		collision: NewCollisionSolver(),
		pairCache: NewCollisionPairCache(71 * 71),
		scheduler: NewWorkScheduler(),
		params:    params,
		domain:    domain,
		mode:      mode,
		state:     StateRunning,
		zoomLevel: 1.0,
		initial: lattice{
			cols: 71, rows: 71, spacing: 0.02,
			origin:   Vec2{X: -0.5, Y: -0.5},
			discrete: mode == ModeDiscrete,
			radius:   params.DiscreteRadius,
			mass:     params.DiscreteMass,
		},
	}
	in.spawnLattice(in.initial)
	return in
}

func (in *Integrator) spawnLattice(l lattice) {
	in.fountainActive = false
	if l.discrete {
		in.store.SpawnGridDiscrete(l.cols, l.rows, l.spacing, l.origin, l.radius, l.mass)
	} else {
		in.store.SpawnGrid(l.cols, l.rows, l.spacing, l.origin)
	}
}

// Mode reports the force/response model this Integrator runs.
func (in *Integrator) Mode() Mode { return in.mode }

// State reports Running or Paused.
func (in *Integrator) State() State { return in.state }

// Parameters returns a copy of the live SimulationParameters.
func (in *Integrator) Parameters() SimulationParameters { return in.params }

// Step advances the simulation by one tick using dt as the nominal
// timestep (overridden by the adaptive schedule when enabled) and returns
// the timestep actually applied, so a caller tracking simulated time uses
// the real value rather than the nominal one. Paused integrators skip all
// physics, return 0, and still republish the last snapshot, per spec.md
// §4.6's "pause freezes physics but still processes input commands and
// republishes the last snapshot."
func (in *Integrator) Step(dt float64) float64 {
	if in.state == StatePaused {
		in.stepIndex++
		return 0
	}
	var applied float64
	if in.mode == ModeSPH {
		applied = in.stepSPH(dt)
	} else {
		applied = dt
		in.stepDiscrete(dt)
	}
	in.stepIndex++
	return applied
}

// stepSPH runs the per-step dataflow: rebuild → densities → pressures →
// reset accelerations → pressure forces → viscosity forces → gravity →
// adaptive dt → stability check (auto-reset) → verlet kick1+drift → walls
// → verlet kick2. Returns the timestep actually applied.
func (in *Integrator) stepSPH(dt float64) float64 {
	p := in.params

	in.grid.Rebuild(in.store.Positions)
	in.sph.ComputeDensitiesParallel(in.store, p, in.scheduler)
	in.sph.ComputePressuresParallel(in.store, p, in.scheduler)
	in.resetAccelerations()
	in.sph.AccumulatePressureForcesParallel(in.store, p, in.scheduler)
	in.sph.AccumulateViscosityForcesParallel(in.store, p, in.scheduler)
	in.applyGravity()

	step := dt
	if p.Adaptive {
		step = in.computeAdaptiveDt(dt)
	}

	if !in.validateState() {
		in.resetToLattice("stability check failed")
		return step
	}

	in.verletKick1AndDrift(step)
	in.handleWalls()
	in.verletKick2(step)
	return step
}

// resetAccelerations zeroes every particle's acceleration before the force
// phases accumulate into it fresh for this step.
func (in *Integrator) resetAccelerations() {
	for i := range in.store.Accelerations {
		in.store.Accelerations[i] = Vec2{}
	}
}

// applyGravity adds the scalar gravity to every particle's Y acceleration.
// Gravity is folded into the accumulated acceleration before verletKick1,
// matching the corpus's "gravity is part of acceleration accumulated
// before verletStep1" convention.
func (in *Integrator) applyGravity() {
	g := in.params.Gravity
	for i := range in.store.Accelerations {
		in.store.Accelerations[i].Y += g
	}
}

// computeAdaptiveDt implements the CFL schedule: CFL*h/maxVelocity,
// clamped to [minDt, maxDt]. If maxVelocity is below the near-zero
// threshold the previous dt (passed in as dt) is kept unchanged.
func (in *Integrator) computeAdaptiveDt(dt float64) float64 {
	p := in.params
	maxV := in.store.MaxSpeed()
	if maxV < 1e-6 {
		return dt
	}
	adaptive := p.CFL * p.H / maxV
	if adaptive < p.MinDt {
		adaptive = p.MinDt
	} else if adaptive > p.MaxDt {
		adaptive = p.MaxDt
	}
	in.params.Dt = adaptive
	return adaptive
}

// validateState is the stability check from spec.md §4.6: every particle's
// speed must not exceed maxVelocity, density must be non-negative,
// position components must stay within +/-100, and no field may hold
// NaN/Inf.
func (in *Integrator) validateState() bool {
	if in.store.HasNaNOrInf() {
		return false
	}
	p := in.params
	for i := range in.store.Positions {
		if in.store.Velocities[i].Length() > p.MaxVelocity {
			return false
		}
		if in.store.Densities[i] < 0 {
			return false
		}
		pos := in.store.Positions[i]
		if math.Abs(pos.X) > 100 || math.Abs(pos.Y) > 100 {
			return false
		}
	}
	return true
}

// resetToLattice logs a stability event and respawns the default lattice
// set at construction, skipping the remaining integration phases for this
// step; the next step starts clean from the respawned state.
func (in *Integrator) resetToLattice(reason string) {
	logStabilityEvent(StabilityEvent{Step: in.stepIndex, Reason: reason})
	in.spawnLattice(in.initial)
	in.pairCache.Clear()
}

// verletKick1AndDrift performs v += 0.5*a*dt; p += v*dt.
func (in *Integrator) verletKick1AndDrift(dt float64) {
	half := 0.5 * dt
	for i := range in.store.Positions {
		in.store.Velocities[i] = in.store.Velocities[i].Add(in.store.Accelerations[i].Scale(half))
		in.store.Positions[i] = in.store.Positions[i].Add(in.store.Velocities[i].Scale(dt))
	}
}

// verletKick2 performs v += 0.5*a*dt using the same acceleration computed
// at the top of the step (no force recomputation between the two
// half-kicks), matching the corpus ordering spec.md §4.6 calls out as the
// variant to preserve.
func (in *Integrator) verletKick2(dt float64) {
	half := 0.5 * dt
	for i := range in.store.Velocities {
		in.store.Velocities[i] = in.store.Velocities[i].Add(in.store.Accelerations[i].Scale(half))
	}
}

// handleWalls is the SPH-mode boundary response: clamp to the domain and
// reflect the crossing velocity component, damped by WallDamping. This is
// a simpler, non-predictive response than the discrete-collision mode's
// WallResponse.
func (in *Integrator) handleWalls() {
	d := in.domain
	damping := in.params.WallDamping
	for i := range in.store.Positions {
		pos := in.store.Positions[i]
		vel := in.store.Velocities[i]

		if pos.X < d.Left {
			pos.X = d.Left
			vel.X = -damping * vel.X
		} else if pos.X > d.Right {
			pos.X = d.Right
			vel.X = -damping * vel.X
		}

		if pos.Y < d.Bottom {
			pos.Y = d.Bottom
			vel.Y = -damping * vel.Y
		} else if pos.Y > d.Top {
			pos.Y = d.Top
			vel.Y = -damping * vel.Y
		}

		in.store.Positions[i] = pos
		in.store.Velocities[i] = vel
	}
}

// stepDiscrete runs the discrete-collision pipeline: velocity-kick
// (gravity) → pairwise collision test over the rebuilt grid → position
// drift with predictive wall bounce → cached overlap resolution → clamp →
// re-bucket.
func (in *Integrator) stepDiscrete(dt float64) {
	p := in.params
	in.grid.Rebuild(in.store.Positions)
	in.pairCache.Clear()

	for i := range in.store.Velocities {
		in.store.Velocities[i].Y += p.Gravity * dt
	}

	buf := NewNeighborBuffer()
	for i := range in.store.Positions {
		n := in.grid.QueryNeighbors(i, in.store.Positions, buf)
		for k := 0; k < n; k++ {
			j := buf[k]
			if j <= i {
				continue
			}
			in.collision.PredictAndRespond(in.store, i, j, dt, p.ParticleRestitution, in.pairCache)
		}
	}

	for i := range in.store.Positions {
		in.collision.WallResponse(in.store, i, dt, in.domain, p.WallRestitution)
	}
	for i := range in.store.Positions {
		in.store.Positions[i] = in.store.Positions[i].Add(in.store.Velocities[i].Scale(dt))
	}

	in.collision.ResolveOverlapsCached(in.store, in.pairCache, in.domain, p.MaxOverlapIters)
	in.grid.Rebuild(in.store.Positions)
}

// SetParameter applies a single named parameter change, validating the
// resulting configuration before committing it. On rejection the previous
// value is retained and the ParameterError is returned unwrapped.
func (in *Integrator) SetParameter(key string, value float64) error {
	candidate := in.params
	switch key {
	case "h":
		candidate.H = value
	case "m":
		candidate.Mass = value
	case "rho0":
		candidate.Rho0 = value
	case "b":
		candidate.B = value
	case "gamma":
		candidate.Gamma = value
	case "mu":
		candidate.Mu = value
	case "gravity":
		candidate.Gravity = value
	case "cfl":
		candidate.CFL = value
	default:
		return &ParameterError{Key: key, Value: value, Msg: "unknown parameter"}
	}
	if err := candidate.Validate(); err != nil {
		return err
	}
	in.params = candidate
	return nil
}

// ApplyCommand applies one input-layer command at a step boundary, per the
// table in spec.md §6.
func (in *Integrator) ApplyCommand(cmd Command) {
	switch cmd.Kind {
	case CommandTogglePause:
		if in.state == StateRunning {
			in.state = StatePaused
		} else {
			in.state = StateRunning
		}
	case CommandToggleGravity:
		if in.gravityZeroed {
			in.params.Gravity = in.savedGravity
			in.gravityZeroed = false
		} else {
			in.savedGravity = in.params.Gravity
			in.params.Gravity = 0
			in.gravityZeroed = true
		}
	case CommandAdjustGravity:
		step := cmd.Value
		if step == 0 {
			step = DefaultGravityStep
		}
		in.params.Gravity += step
	case CommandAdjustViscosity:
		step := cmd.Value
		if step == 0 {
			step = DefaultViscosityStep
		}
		mu := in.params.Mu + step
		if mu < 0 {
			mu = 0
		}
		in.params.Mu = mu
	case CommandSetColorMode:
		in.colorMode = cmd.ColorMode
	case CommandZoom:
		factor := cmd.Value
		if factor == 0 {
			factor = 1
		}
		in.zoomLevel *= factor
		if in.zoomLevel < 0.1 {
			in.zoomLevel = 0.1
		} else if in.zoomLevel > 10 {
			in.zoomLevel = 10
		}
	case CommandSpawnCluster:
		in.spawnCluster(cmd)
	case CommandDeleteNear:
		in.store.RemoveWithinRadius(cmd.Center, cmd.Radius)
	case CommandLoadScenario:
		in.loadScenario(cmd.Scenario)
	case CommandReset:
		in.spawnLattice(in.initial)
		in.pairCache.Clear()
		in.state = StateRunning
	}
}

// spawnCluster adds count particles near center within radius, clamping
// an out-of-domain center to the nearest in-domain point rather than
// rejecting the command (spec.md §4.6: "invalid commands are clamped").
func (in *Integrator) spawnCluster(cmd Command) {
	center := cmd.Center
	if center.X < in.domain.Left {
		center.X = in.domain.Left
	} else if center.X > in.domain.Right {
		center.X = in.domain.Right
	}
	if center.Y < in.domain.Bottom {
		center.Y = in.domain.Bottom
	} else if center.Y > in.domain.Top {
		center.Y = in.domain.Top
	}

	radius := cmd.Radius
	if radius == 0 {
		radius = DefaultClusterRadius
	}
	count := cmd.Count
	if count == 0 {
		count = DefaultClusterCount
	}

	for k := 0; k < count; k++ {
		angle := 2 * math.Pi * float64(k) / float64(count)
		offset := Vec2{X: radius * math.Cos(angle), Y: radius * math.Sin(angle)}
		pos := center.Add(offset)
		if in.mode == ModeDiscrete {
			in.store.AddDiscrete(pos, Vec2{}, in.params.DiscreteRadius, in.params.DiscreteMass, 0)
		} else {
			in.store.Add(pos, Vec2{})
		}
	}
}

// loadScenario replaces the particle set with one of the literal presets
// and turns the fountain drip on for ScenarioFountain and off for every
// other preset. Resets still return to the default lattice, not to the
// loaded preset. SpawnScenario only ever sets Positions/Velocities, so in discrete mode
// every spawned particle is backfilled with the configured discrete
// radius/mass here; left zeroed, CollisionSolver's (ma+mb)*distSq divide
// would produce an immediate Inf/NaN velocity on the first contact.
func (in *Integrator) loadScenario(tag ScenarioTag) {
	SpawnScenario(in.store, tag)
	if in.mode == ModeDiscrete {
		in.store.SetUniformDiscreteAttributes(in.params.DiscreteRadius, in.params.DiscreteMass)
	}
	in.fountainActive = tag == ScenarioFountain
	if in.fountainActive {
		in.fountainAcc = 0
	}
}

// TickFountain advances simulated time by dt unless the Integrator is
// paused and, while the Fountain scenario is active (loaded and not since
// replaced by another scenario or a reset), drips one particle every
// fountainDripInterval of simulated time. Callers invoke this once per step
// in addition to Step; in any other scenario it adds nothing.
func (in *Integrator) TickFountain(dt float64) {
	if in.state == StatePaused {
		return
	}
	in.simulatedSec += dt
	if !in.fountainActive {
		return
	}
	in.fountainAcc += dt
	if in.fountainAcc < fountainDripInterval {
		return
	}
	in.fountainAcc -= fountainDripInterval
	pos := FountainSpawnPoint.Add(fountainDripJitter())
	if in.mode == ModeDiscrete {
		in.store.AddDiscrete(pos, FountainVelocity, in.params.DiscreteRadius, in.params.DiscreteMass, 0)
	} else {
		in.store.Add(pos, FountainVelocity)
	}
}

// Snapshot returns the read-only display-sink view described in spec.md
// §6: N plus per-particle position, velocity, density, and pressure. The
// returned slices are copies; mutating them never affects the live store.
func (in *Integrator) Snapshot() Snapshot {
	n := in.store.Size()
	snap := Snapshot{
		N:          n,
		Positions:  make([]Vec2, n),
		Velocities: make([]Vec2, n),
		Densities:  make([]float64, n),
		Pressures:  make([]float64, n),
		Mode:       in.mode,
		State:      in.state,
		ColorMode:  in.colorMode,
		Zoom:       in.zoomLevel,
	}
	copy(snap.Positions, in.store.Positions)
	copy(snap.Velocities, in.store.Velocities)
	copy(snap.Densities, in.store.Densities)
	copy(snap.Pressures, in.store.Pressures)
	return snap
}
