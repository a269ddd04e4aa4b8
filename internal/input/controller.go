package input

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"particlefluid/internal/physics"
)

// InputController coordinates keyboard and mouse input into one command
// stream per frame.
type InputController struct {
	keyboard *KeyboardHandler
	mouse    *MouseHandler
	view     *ViewTransform
}

// NewInputController creates a new input controller over view.
func NewInputController(view *ViewTransform) *InputController {
	return &InputController{
		keyboard: NewKeyboardHandler(),
		mouse:    NewMouseHandler(view),
		view:     view,
	}
}

// ProcessInput collects commands from both the keyboard and mouse handlers
// for the current frame.
func (c *InputController) ProcessInput() []physics.Command {
	cmds := c.keyboard.ProcessActions()
	cmds = append(cmds, c.mouse.ProcessActions()...)
	return cmds
}

// UpdateFromRaylib updates both handlers' state from raylib.
func (c *InputController) UpdateFromRaylib() {
	c.keyboard.UpdateFromRaylib()
	c.mouse.UpdateFromRaylib()
}

// Reset clears all input states.
func (c *InputController) Reset() {
	c.keyboard.keyStates = make(map[int32]bool)
	c.keyboard.keyPressed = make(map[int32]bool)
	c.mouse.buttonStates = make(map[rl.MouseButton]bool)
	c.mouse.wheelDelta = 0
}

// View exposes the shared pan/zoom transform so a renderer can read the
// zoom level the mouse wheel last applied.
func (c *InputController) View() *ViewTransform {
	return c.view
}
