package input

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"particlefluid/internal/physics"
)

// MouseHandler tracks button/wheel state and a ViewTransform, and turns
// clicks and scroll into physics.Command values. Mirrors KeyboardHandler's
// Set*/Is* testing seam plus a real UpdateFromRaylib for production.
type MouseHandler struct {
	buttonStates map[rl.MouseButton]bool
	wheelDelta   float32
	cursorX      float32
	cursorY      float32
	view         *ViewTransform
}

// NewMouseHandler creates a new mouse handler over view.
func NewMouseHandler(view *ViewTransform) *MouseHandler {
	return &MouseHandler{
		buttonStates: make(map[rl.MouseButton]bool),
		view:         view,
	}
}

// SetButtonDown sets the state of a mouse button (for testing).
func (m *MouseHandler) SetButtonDown(button rl.MouseButton, down bool) {
	m.buttonStates[button] = down
}

// SetWheelDelta sets the scroll wheel delta (for testing).
func (m *MouseHandler) SetWheelDelta(delta float32) {
	m.wheelDelta = delta
}

// SetCursorPosition sets the cursor position in screen space (for testing).
func (m *MouseHandler) SetCursorPosition(x, y float32) {
	m.cursorX = x
	m.cursorY = y
}

// IsButtonDown checks if a mouse button is held down.
func (m *MouseHandler) IsButtonDown(button rl.MouseButton) bool {
	return m.buttonStates[button]
}

// ProcessActions turns the current click/scroll state into commands. Button
// state is expected to reflect a single just-pressed edge (UpdateFromRaylib
// polls IsMouseButtonPressed, not IsMouseButtonDown), so a held click does
// not keep spawning clusters every frame.
func (m *MouseHandler) ProcessActions() []physics.Command {
	var cmds []physics.Command

	if m.IsButtonDown(rl.MouseLeftButton) {
		world := m.view.ScreenToWorld(m.cursorX, m.cursorY)
		cmds = append(cmds, physics.Command{Kind: physics.CommandSpawnCluster, Center: world})
	}
	if m.IsButtonDown(rl.MouseRightButton) {
		world := m.view.ScreenToWorld(m.cursorX, m.cursorY)
		cmds = append(cmds, physics.Command{Kind: physics.CommandDeleteNear, Center: world, Radius: physics.DefaultDeleteRadius})
	}
	if m.wheelDelta != 0 {
		factor := 1.0 + float64(m.wheelDelta)*0.1
		m.view.ApplyZoom(factor)
		cmds = append(cmds, physics.Command{Kind: physics.CommandZoom, Value: factor})
	}

	return cmds
}

// UpdateFromRaylib updates button, wheel and cursor state from raylib (for
// production use).
func (m *MouseHandler) UpdateFromRaylib() {
	m.buttonStates[rl.MouseLeftButton] = rl.IsMouseButtonPressed(rl.MouseLeftButton)
	m.buttonStates[rl.MouseRightButton] = rl.IsMouseButtonPressed(rl.MouseRightButton)
	m.wheelDelta = rl.GetMouseWheelMove()
	pos := rl.GetMousePosition()
	m.cursorX = pos.X
	m.cursorY = pos.Y
}
