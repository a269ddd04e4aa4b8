package input

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"particlefluid/internal/physics"
)

// KeyboardHandler tracks key state and translates it into physics.Command
// values. State is exposed through Set*/Is* accessors so tests can drive it
// without a real raylib window.
type KeyboardHandler struct {
	keyStates  map[int32]bool
	keyPressed map[int32]bool
	colorMode  int
}

// NewKeyboardHandler creates a new keyboard handler.
func NewKeyboardHandler() *KeyboardHandler {
	return &KeyboardHandler{
		keyStates:  make(map[int32]bool),
		keyPressed: make(map[int32]bool),
	}
}

// SetKeyState sets the state of a key (for testing).
func (k *KeyboardHandler) SetKeyState(key int32, pressed bool) {
	k.keyStates[key] = pressed
}

// SetKeyPressed sets whether a key was just pressed (for testing).
func (k *KeyboardHandler) SetKeyPressed(key int32, pressed bool) {
	k.keyPressed[key] = pressed
}

// IsKeyDown checks if a key is currently held down.
func (k *KeyboardHandler) IsKeyDown(key int32) bool {
	return k.keyStates[key]
}

// IsKeyPressed checks if a key was just pressed.
func (k *KeyboardHandler) IsKeyPressed(key int32) bool {
	return k.keyPressed[key]
}

// ProcessActions translates the keys just pressed into commands, per
// spec.md §6's input command table.
func (k *KeyboardHandler) ProcessActions() []physics.Command {
	var cmds []physics.Command

	if k.IsKeyPressed(rl.KeyP) {
		cmds = append(cmds, physics.Command{Kind: physics.CommandTogglePause})
	}
	if k.IsKeyPressed(rl.KeyG) {
		cmds = append(cmds, physics.Command{Kind: physics.CommandToggleGravity})
	}
	if k.IsKeyPressed(rl.KeyUp) {
		cmds = append(cmds, physics.Command{Kind: physics.CommandAdjustGravity, Value: physics.DefaultGravityStep})
	}
	if k.IsKeyPressed(rl.KeyDown) {
		cmds = append(cmds, physics.Command{Kind: physics.CommandAdjustGravity, Value: -physics.DefaultGravityStep})
	}
	if k.IsKeyPressed(rl.KeyRightBracket) {
		cmds = append(cmds, physics.Command{Kind: physics.CommandAdjustViscosity, Value: physics.DefaultViscosityStep})
	}
	if k.IsKeyPressed(rl.KeyLeftBracket) {
		cmds = append(cmds, physics.Command{Kind: physics.CommandAdjustViscosity, Value: -physics.DefaultViscosityStep})
	}
	if k.IsKeyPressed(rl.KeyC) {
		k.colorMode = (k.colorMode + 1) % 3
		cmds = append(cmds, physics.Command{Kind: physics.CommandSetColorMode, ColorMode: k.colorMode})
	}
	if k.IsKeyPressed(rl.KeyR) {
		cmds = append(cmds, physics.Command{Kind: physics.CommandReset})
	}
	if tag, ok := k.scenarioKeyPressed(); ok {
		cmds = append(cmds, physics.Command{Kind: physics.CommandLoadScenario, Scenario: tag})
	}

	return cmds
}

// scenarioKeyPressed reports which of the four scenario hotkeys (1-4) was
// just pressed, if any.
func (k *KeyboardHandler) scenarioKeyPressed() (physics.ScenarioTag, bool) {
	switch {
	case k.IsKeyPressed(rl.KeyOne):
		return physics.ScenarioDamBreak, true
	case k.IsKeyPressed(rl.KeyTwo):
		return physics.ScenarioWaterDrop, true
	case k.IsKeyPressed(rl.KeyThree):
		return physics.ScenarioDoubleDamBreak, true
	case k.IsKeyPressed(rl.KeyFour):
		return physics.ScenarioFountain, true
	}
	return 0, false
}

// UpdateFromRaylib updates key states from raylib (for production use).
func (k *KeyboardHandler) UpdateFromRaylib() {
	k.keyPressed = make(map[int32]bool)

	tracked := []int32{
		rl.KeyP, rl.KeyG, rl.KeyUp, rl.KeyDown, rl.KeyRightBracket, rl.KeyLeftBracket,
		rl.KeyC, rl.KeyR, rl.KeyOne, rl.KeyTwo, rl.KeyThree, rl.KeyFour,
	}
	for _, key := range tracked {
		k.keyPressed[key] = rl.IsKeyPressed(key)
		k.keyStates[key] = rl.IsKeyDown(key)
	}
}
