package config

import (
	"fmt"

	"particlefluid/internal/physics"
)

// Config holds all process-start configuration: the physics tunables
// (embedded from physics.SimulationParameters), the active force model,
// domain sizing, and the ambient display/camera settings consumed by the
// reference renderer.
type Config struct {
	physics.SimulationParameters

	Mode   physics.Mode
	Domain physics.Domain

	// Display settings.
	ScreenWidth  int
	ScreenHeight int

	// Camera/view settings (2D pan + zoom, unlike the teacher's 3D camera).
	InitialZoom      float32
	PanSpeed         float32
	MouseSensitivity float32

	// Runtime flags.
	StartPaused bool
	UseGPU      bool
}

// DefaultConfig returns the default configuration: spec defaults for
// SimulationParameters, SPH mode, a [-1.5,1.5]x[-1.5,1.5] domain, and a
// 1280x720 display.
func DefaultConfig() *Config {
	return &Config{
		SimulationParameters: physics.DefaultParameters(),
		Mode:                 physics.ModeSPH,
		Domain:               physics.Domain{Left: -1.5, Right: 1.5, Bottom: -1.5, Top: 1.5},

		ScreenWidth:  1280,
		ScreenHeight: 720,

		InitialZoom:      1.0,
		PanSpeed:         0.5,
		MouseSensitivity: 0.003,

		StartPaused: false,
		UseGPU:      true,
	}
}

// Validate checks the configuration as a whole: the embedded
// SimulationParameters per its own rules, plus the ambient display/domain
// fields a physics-only Validate cannot see.
func (c *Config) Validate() error {
	if err := c.SimulationParameters.Validate(); err != nil {
		return err
	}
	if c.ScreenWidth <= 0 {
		return fmt.Errorf("invalid screen width: %d", c.ScreenWidth)
	}
	if c.ScreenHeight <= 0 {
		return fmt.Errorf("invalid screen height: %d", c.ScreenHeight)
	}
	if c.Domain.Right <= c.Domain.Left {
		return fmt.Errorf("invalid domain: right %v must exceed left %v", c.Domain.Right, c.Domain.Left)
	}
	if c.Domain.Top <= c.Domain.Bottom {
		return fmt.Errorf("invalid domain: top %v must exceed bottom %v", c.Domain.Top, c.Domain.Bottom)
	}
	return nil
}

// Clone creates a deep copy of the configuration. SimulationParameters and
// Domain are plain value types, so a struct copy already deep-copies them.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}
