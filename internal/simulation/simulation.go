package simulation

import (
	"time"

	"particlefluid/internal/config"
	"particlefluid/internal/gpu"
	"particlefluid/internal/physics"
)

// Simulation wires a Config to a physics.Integrator plus the optional GPU
// compute path, and is the boundary commands and the display sink cross:
// ApplyCommand (scenario loads included) takes commands from the input
// layer, Snapshot feeds the renderer.
type Simulation struct {
	Config     *config.Config
	Integrator *physics.Integrator
	fallback   *gpu.FallbackManager
}

// NewSimulation builds a Simulation from cfg: an Integrator seeded with
// cfg.Mode/SimulationParameters/Domain, and a FallbackManager governing
// whether the CPU or GPU compute path is selected.
func NewSimulation(cfg *config.Config) *Simulation {
	integrator := physics.NewIntegrator(cfg.Mode, cfg.SimulationParameters, cfg.Domain)

	fb := gpu.NewFallbackManager()
	if cfg.UseGPU {
		fb.SetMode(gpu.ModeAuto)
	} else {
		fb.SetMode(gpu.ModeCPU)
	}

	if cfg.StartPaused {
		integrator.ApplyCommand(physics.Command{Kind: physics.CommandTogglePause})
	}

	return &Simulation{Config: cfg, Integrator: integrator, fallback: fb}
}

// Update advances the simulation by deltaTime seconds and returns the
// timestep actually applied (see physics.Integrator.Step). It also ticks
// the Fountain scenario's simulated-time drip, which adds particles only
// while the Fountain scenario is active and the simulation is not paused.
func (s *Simulation) Update(deltaTime float32) float64 {
	start := nowFunc()
	applied := s.Integrator.Step(float64(deltaTime))
	s.Integrator.TickFountain(float64(deltaTime))

	elapsedMs := float64(nowFunc().Sub(start)) / float64(time.Millisecond)
	s.fallback.RecordPerformance(gpu.ProcessorTypeCPU, elapsedMs)

	return applied
}

// nowFunc is a seam for deterministic tests; production code always uses
// time.Now.
var nowFunc = time.Now

// ApplyCommand forwards one input-layer command to the Integrator.
func (s *Simulation) ApplyCommand(cmd physics.Command) {
	s.Integrator.ApplyCommand(cmd)
}

// Snapshot returns the current read-only display-sink view.
func (s *Simulation) Snapshot() physics.Snapshot {
	return s.Integrator.Snapshot()
}

// FallbackManager exposes the CPU/GPU mode selector so the GPU and
// renderer packages can inspect or override it (e.g. a HUD toggle).
func (s *Simulation) FallbackManager() *gpu.FallbackManager {
	return s.fallback
}

// GetConfig returns the simulation configuration.
func (s *Simulation) GetConfig() *config.Config {
	return s.Config
}
