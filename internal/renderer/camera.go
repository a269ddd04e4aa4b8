package renderer

import (
	"particlefluid/internal/physics"
)

// Camera maps the simulation's world-space domain to screen pixels. It is a
// pan/zoom camera rather than a 3D projective one: Center is the world point
// drawn at the screen's midpoint, Zoom scales world units to pixels.
type Camera struct {
	Center physics.Vec2
	Zoom   float64

	screenWidth  int
	screenHeight int

	// pixelsPerUnit is the base scale before Zoom is applied; it is set once
	// from the simulation domain so the initial view frames the whole tank.
	pixelsPerUnit float64
}

// NewCamera creates a camera centered on domain and sized to fit it within
// the given screen dimensions at zoom 1.0.
func NewCamera(domain physics.Domain, screenWidth, screenHeight int) *Camera {
	cam := &Camera{
		Center:       physics.NewVec2((domain.Left+domain.Right)/2, (domain.Bottom+domain.Top)/2),
		Zoom:         1.0,
		screenWidth:  screenWidth,
		screenHeight: screenHeight,
	}
	cam.pixelsPerUnit = cam.fitScale(domain)
	return cam
}

// fitScale returns the pixels-per-world-unit scale that fits domain inside
// the screen with a small margin.
func (c *Camera) fitScale(domain physics.Domain) float64 {
	const margin = 0.9
	width := domain.Right - domain.Left
	height := domain.Top - domain.Bottom
	if width <= 0 || height <= 0 {
		return 100
	}
	scaleX := float64(c.screenWidth) * margin / width
	scaleY := float64(c.screenHeight) * margin / height
	if scaleX < scaleY {
		return scaleX
	}
	return scaleY
}

// Scale returns the current effective pixels-per-world-unit.
func (c *Camera) Scale() float64 {
	return c.pixelsPerUnit * c.Zoom
}

// WorldToScreen converts a world position to a screen pixel coordinate.
func (c *Camera) WorldToScreen(world physics.Vec2) (float32, float32) {
	scale := c.Scale()
	x := float64(c.screenWidth)/2 + (world.X-c.Center.X)*scale
	y := float64(c.screenHeight)/2 + (world.Y-c.Center.Y)*scale
	return float32(x), float32(y)
}

// ScreenToWorld converts a screen pixel coordinate to a world position.
func (c *Camera) ScreenToWorld(screenX, screenY float32) physics.Vec2 {
	scale := c.Scale()
	dx := (float64(screenX) - float64(c.screenWidth)/2) / scale
	dy := (float64(screenY) - float64(c.screenHeight)/2) / scale
	return physics.NewVec2(c.Center.X+dx, c.Center.Y+dy)
}

// WorldLengthToPixels converts a world-space length (e.g. a particle
// radius) to a pixel length at the current zoom.
func (c *Camera) WorldLengthToPixels(length float64) float32 {
	return float32(length * c.Scale())
}

// SetZoom sets the zoom factor directly, clamped to the same [0.1, 10]
// range the input layer's CommandZoom enforces.
func (c *Camera) SetZoom(zoom float64) {
	if zoom < 0.1 {
		zoom = 0.1
	} else if zoom > 10 {
		zoom = 10
	}
	c.Zoom = zoom
}

// IsPointVisible reports whether a world position falls within the current
// screen viewport, for culling particles before a draw call.
func (c *Camera) IsPointVisible(world physics.Vec2) bool {
	x, y := c.WorldToScreen(world)
	return x >= 0 && x <= float32(c.screenWidth) && y >= 0 && y <= float32(c.screenHeight)
}

// SetScreenSize updates the screen dimensions, e.g. on a window resize.
func (c *Camera) SetScreenSize(width, height int) {
	c.screenWidth = width
	c.screenHeight = height
}

// ScreenSize returns the current screen dimensions.
func (c *Camera) ScreenSize() (int, int) {
	return c.screenWidth, c.screenHeight
}
