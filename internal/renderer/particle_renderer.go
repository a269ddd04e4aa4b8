package renderer

import (
	"errors"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"particlefluid/internal/physics"
)

// ColorMode selects which per-particle field drives the fill color.
const (
	ColorModeVelocity = iota
	ColorModeDensity
	ColorModePressure
)

// Color represents an RGBA color in the [0,1] range, independent of raylib
// so the color-mapping logic can be unit tested without a graphics context.
type Color struct {
	R, G, B, A float32
}

// BatchInfo contains batch rendering information.
type BatchInfo struct {
	TotalBatches      int
	ParticlesPerBatch int
}

// ParticleRenderer draws a physics.Snapshot through a Camera. Culling and
// color mapping are plain functions over the snapshot so they can be
// exercised without a raylib window.
type ParticleRenderer struct {
	snapshot       physics.Snapshot
	camera         *Camera
	particleRadius float64
	cullingEnabled bool

	visibleCount int
	maxBatchSize int
}

// NewParticleRenderer creates a new particle renderer.
func NewParticleRenderer() *ParticleRenderer {
	return &ParticleRenderer{
		particleRadius: 0.01,
		maxBatchSize:   1000,
	}
}

// Setup initializes the renderer. Without a live OpenGL context (as in
// tests) there is nothing to compile, so it reports that directly.
func (r *ParticleRenderer) Setup() error {
	return errors.New("OpenGL context not available")
}

// SetSnapshot sets the particle data to render.
func (r *ParticleRenderer) SetSnapshot(snap physics.Snapshot) {
	r.snapshot = snap
	r.updateVisibleCount()
}

// GetParticleCount returns the number of particles in the current snapshot.
func (r *ParticleRenderer) GetParticleCount() int {
	return r.snapshot.N
}

// GetParticleSize returns the base particle radius in world units.
func (r *ParticleRenderer) GetParticleSize() float64 {
	return r.particleRadius
}

// SetParticleSize sets the base particle radius in world units.
func (r *ParticleRenderer) SetParticleSize(radius float64) {
	r.particleRadius = radius
}

// GetBatchInfo returns batch rendering information for the current snapshot.
func (r *ParticleRenderer) GetBatchInfo() BatchInfo {
	if r.snapshot.N == 0 {
		return BatchInfo{TotalBatches: 0, ParticlesPerBatch: 0}
	}
	totalBatches := (r.snapshot.N + r.maxBatchSize - 1) / r.maxBatchSize
	return BatchInfo{TotalBatches: totalBatches, ParticlesPerBatch: r.maxBatchSize}
}

// GetParticleColor returns the fill color for particle i under the
// snapshot's current ColorMode: velocity magnitude, density, or pressure,
// each mapped onto a blue-to-red heat gradient.
func (r *ParticleRenderer) GetParticleColor(i int) Color {
	var t float64
	switch r.snapshot.ColorMode {
	case ColorModeDensity:
		t = normalize(r.snapshot.Densities[i], 0, 2*physics.DefaultParameters().Rho0)
	case ColorModePressure:
		t = normalize(r.snapshot.Pressures[i], 0, 5000)
	default:
		t = normalize(r.snapshot.Velocities[i].Length(), 0, 3.0)
	}
	return heatColor(t)
}

// normalize maps v from [lo, hi] to [0, 1], clamped at both ends.
func normalize(v, lo, hi float64) float64 {
	if hi <= lo {
		return 0
	}
	t := (v - lo) / (hi - lo)
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

// heatColor maps t in [0,1] to a blue (cold) -> red (hot) gradient.
func heatColor(t float64) Color {
	return Color{R: float32(t), G: float32(0.3 * (1 - math.Abs(2*t-1))), B: float32(1 - t), A: 1}
}

// SetCamera sets the camera used for screen projection and culling.
func (r *ParticleRenderer) SetCamera(camera *Camera) {
	r.camera = camera
	r.updateVisibleCount()
}

// EnableCulling enables or disables viewport culling.
func (r *ParticleRenderer) EnableCulling(enable bool) {
	r.cullingEnabled = enable
	r.updateVisibleCount()
}

// GetVisibleParticleCount returns the number of particles currently inside
// the camera viewport.
func (r *ParticleRenderer) GetVisibleParticleCount() int {
	return r.visibleCount
}

func (r *ParticleRenderer) updateVisibleCount() {
	if !r.cullingEnabled || r.camera == nil {
		r.visibleCount = r.snapshot.N
		return
	}
	count := 0
	for _, p := range r.snapshot.Positions {
		if r.camera.IsPointVisible(p) {
			count++
		}
	}
	r.visibleCount = count
}

// Render draws every (culled) particle in the snapshot as a filled circle.
func (r *ParticleRenderer) Render() error {
	if r.camera == nil {
		return errors.New("camera not set")
	}
	for i, pos := range r.snapshot.Positions {
		if r.cullingEnabled && !r.camera.IsPointVisible(pos) {
			continue
		}
		x, y := r.camera.WorldToScreen(pos)
		radius := r.camera.WorldLengthToPixels(r.particleRadius)
		c := r.GetParticleColor(i)
		rl.DrawCircle(int32(x), int32(y), radius, rl.NewColor(
			uint8(c.R*255), uint8(c.G*255), uint8(c.B*255), uint8(c.A*255)))
	}
	return nil
}

// Cleanup releases renderer resources.
func (r *ParticleRenderer) Cleanup() error {
	r.snapshot = physics.Snapshot{}
	r.visibleCount = 0
	return nil
}

// SetMaxBatchSize sets the maximum batch size.
func (r *ParticleRenderer) SetMaxBatchSize(size int) {
	if size > 0 {
		r.maxBatchSize = size
	}
}
