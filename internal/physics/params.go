package physics

import "fmt"

// Mode selects which force/response model the Integrator runs: the SPH
// pressure/viscosity pipeline, or the discrete elastic-collision pipeline.
type Mode int

const (
	// ModeSPH runs the Smoothed-Particle-Hydrodynamics pipeline.
	ModeSPH Mode = iota
	// ModeDiscrete runs the discrete-collision pipeline.
	ModeDiscrete
)

func (m Mode) String() string {
	switch m {
	case ModeSPH:
		return "SPH"
	case ModeDiscrete:
		return "Discrete"
	default:
		return "Unknown"
	}
}

// SimulationParameters is the value record of tunable physical constants.
// It is copied cheaply (no pointers, no slices) and is safe to snapshot
// before mutating the live copy held by an Integrator.
type SimulationParameters struct {
	// SPH kernel / fluid properties.
	H     float64 // smoothing length (m), also the SPH spatial-grid cell edge
	Mass  float64 // per-particle mass (kg)
	Rho0  float64 // rest density (kg/m^2)
	B     float64 // Tait stiffness
	Gamma float64 // Tait pressure exponent
	Mu    float64 // viscosity coefficient

	// Timestep.
	Dt       float64
	MinDt    float64
	MaxDt    float64
	CFL      float64
	Adaptive bool

	// Global forces and stability.
	Gravity         float64 // scalar, applied to the Y component of acceleration
	WallDamping     float64 // SPH wall-bounce damping
	MaxAcceleration float64
	MaxVelocity     float64

	// Discrete-collision-mode only.
	ParticleRestitution float64 // e_particle, default 1.0
	WallRestitution     float64 // e_wall, default 0.95
	CellSize            float64 // collision-mode grid partition size
	MaxOverlapIters     int     // resolveOverlapsCached max iterations
	DiscreteRadius      float64 // uniform particle radius in discrete-collision mode
	DiscreteMass        float64 // uniform particle mass in discrete-collision mode
}

// DefaultParameters returns the spec's default SimulationParameters.
func DefaultParameters() SimulationParameters {
	return SimulationParameters{
		H:     0.08,
		Mass:  0.02,
		Rho0:  550,
		B:     50,
		Gamma: 7,
		Mu:    0.1,

		Dt:       0.016,
		MinDt:    1e-4,
		MaxDt:    0.01,
		CFL:      0.4,
		Adaptive: true,

		Gravity:         -9.81,
		WallDamping:     0.8,
		MaxAcceleration: 50,
		MaxVelocity:     100,

		ParticleRestitution: 1.0,
		WallRestitution:     0.95,
		CellSize:            0.08,
		MaxOverlapIters:     8,
		DiscreteRadius:      0.01,
		DiscreteMass:        0.02,
	}
}

// ParameterError reports a rejected parameter assignment. The previous
// valid value is always retained by the caller when this is returned.
type ParameterError struct {
	Key   string
	Value float64
	Msg   string
}

func (e *ParameterError) Error() string {
	return fmt.Sprintf("invalid parameter %s=%v: %s", e.Key, e.Value, e.Msg)
}

// Validate rejects configurations the Integrator cannot run with:
// a zero or negative smoothing length, negative viscosity, an inverted
// timestep bound, or a zero or negative particle mass. It does not mutate p.
func (p SimulationParameters) Validate() error {
	if p.H <= 0 {
		return &ParameterError{Key: "h", Value: p.H, Msg: "smoothing length must be positive"}
	}
	if p.Mu < 0 {
		return &ParameterError{Key: "mu", Value: p.Mu, Msg: "viscosity must be non-negative"}
	}
	if p.MinDt > p.MaxDt {
		return &ParameterError{Key: "minDt", Value: p.MinDt, Msg: "minDt must not exceed maxDt"}
	}
	if p.Mass <= 0 {
		return &ParameterError{Key: "m", Value: p.Mass, Msg: "particle mass must be positive"}
	}
	return nil
}

// Clone returns a copy of p (it is already a value type, but Clone
// documents the copy-cheaply contract at call sites that received a
// pointer).
func (p *SimulationParameters) Clone() SimulationParameters {
	return *p
}
