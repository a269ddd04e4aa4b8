package input

import "particlefluid/internal/physics"

// ViewTransform maps screen pixels to the simulation's world coordinates. It
// is the input layer's own minimal notion of the camera: pan offset plus a
// uniform zoom factor, kept here (rather than in internal/renderer) so mouse
// click/scroll handling never needs to import the renderer package.
type ViewTransform struct {
	ScreenWidth  int
	ScreenHeight int
	PixelsPerUnit float64
	Center       physics.Vec2 // world point rendered at screen center
	Zoom         float64
}

// NewViewTransform creates a transform centered on center with a 1:1 zoom.
func NewViewTransform(screenWidth, screenHeight int, pixelsPerUnit float64, center physics.Vec2) *ViewTransform {
	return &ViewTransform{
		ScreenWidth:   screenWidth,
		ScreenHeight:  screenHeight,
		PixelsPerUnit: pixelsPerUnit,
		Center:        center,
		Zoom:          1.0,
	}
}

// ScreenToWorld converts a screen-space pixel coordinate into a world
// position, accounting for the current pan center and zoom level.
func (v *ViewTransform) ScreenToWorld(screenX, screenY float32) physics.Vec2 {
	scale := v.PixelsPerUnit * v.Zoom
	dx := (float64(screenX) - float64(v.ScreenWidth)/2) / scale
	dy := (float64(screenY) - float64(v.ScreenHeight)/2) / scale
	return physics.Vec2{X: v.Center.X + dx, Y: v.Center.Y + dy}
}

// ApplyZoom multiplies the current zoom by factor, matching the clamping the
// Integrator performs on a CommandZoom so the on-screen scale and the
// simulation's own notion of zoom never drift apart.
func (v *ViewTransform) ApplyZoom(factor float64) {
	if factor == 0 {
		factor = 1
	}
	v.Zoom *= factor
	if v.Zoom < 0.1 {
		v.Zoom = 0.1
	} else if v.Zoom > 10 {
		v.Zoom = 10
	}
}
