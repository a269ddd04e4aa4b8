package input

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"

	"particlefluid/internal/physics"
)

func newTestView() *ViewTransform {
	return NewViewTransform(800, 600, 100, physics.NewVec2(0, 0))
}

func TestMouseHandler_LeftClickSpawnsCluster(t *testing.T) {
	handler := NewMouseHandler(newTestView())

	handler.SetButtonDown(rl.MouseLeftButton, true)
	handler.SetCursorPosition(400, 300) // screen center -> world origin

	cmds := handler.ProcessActions()
	assert.Len(t, cmds, 1)
	assert.Equal(t, physics.CommandSpawnCluster, cmds[0].Kind)
	assert.InDelta(t, 0.0, cmds[0].Center.X, 1e-9)
	assert.InDelta(t, 0.0, cmds[0].Center.Y, 1e-9)
}

func TestMouseHandler_RightClickDeletesNear(t *testing.T) {
	handler := NewMouseHandler(newTestView())

	handler.SetButtonDown(rl.MouseRightButton, true)
	handler.SetCursorPosition(500, 300) // 100px right of center at 100px/unit -> world x=1

	cmds := handler.ProcessActions()
	assert.Len(t, cmds, 1)
	assert.Equal(t, physics.CommandDeleteNear, cmds[0].Kind)
	assert.InDelta(t, 1.0, cmds[0].Center.X, 1e-9)
	assert.Equal(t, physics.DefaultDeleteRadius, cmds[0].Radius)
}

func TestMouseHandler_WheelZooms(t *testing.T) {
	view := newTestView()
	handler := NewMouseHandler(view)

	handler.SetWheelDelta(1.0)
	cmds := handler.ProcessActions()
	assert.Len(t, cmds, 1)
	assert.Equal(t, physics.CommandZoom, cmds[0].Kind)
	assert.Greater(t, view.Zoom, 1.0)
}

func TestMouseHandler_NoInputYieldsNoCommands(t *testing.T) {
	handler := NewMouseHandler(newTestView())
	assert.Empty(t, handler.ProcessActions())
}

func TestViewTransform_ApplyZoomClamps(t *testing.T) {
	view := newTestView()
	view.ApplyZoom(0.001)
	assert.GreaterOrEqual(t, view.Zoom, 0.1)

	view = newTestView()
	view.ApplyZoom(1000)
	assert.LessOrEqual(t, view.Zoom, 10.0)
}
