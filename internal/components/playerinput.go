package components

import (
	"movecore/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// PlayerInput samples the keyboard and mouse once per frame and hands the
// result to the character controller on the same object.
type PlayerInput struct {
	engine.BaseComponent

	Forward, Backward, Left, Right int32
	Run, Jump                      int32

	// Enabled is cleared while a UI panel owns the keyboard.
	Enabled bool

	current engine.MovementInput
}

func NewPlayerInput() *PlayerInput {
	return &PlayerInput{
		Forward:  rl.KeyW,
		Backward: rl.KeyS,
		Left:     rl.KeyA,
		Right:    rl.KeyD,
		Run:      rl.KeyLeftShift,
		Jump:     rl.KeySpace,
		Enabled:  true,
	}
}

// Update runs before the controller because input components are added to
// the player first.
func (p *PlayerInput) Update(deltaTime float32) {
	if !p.Enabled {
		p.current = engine.MovementInput{}
		return
	}
	p.current = engine.MovementInput{
		Forward:      rl.IsKeyDown(p.Forward),
		Backward:     rl.IsKeyDown(p.Backward),
		Left:         rl.IsKeyDown(p.Left),
		Right:        rl.IsKeyDown(p.Right),
		Run:          rl.IsKeyDown(p.Run),
		Jump:         rl.IsKeyPressed(p.Jump),
		MouseForward: rl.IsMouseButtonDown(rl.MouseButtonLeft) && rl.IsMouseButtonDown(rl.MouseButtonRight),
	}
}

func (p *PlayerInput) MovementInput() engine.MovementInput {
	return p.current
}

// ScriptedInput replays a fixed input, for headless runs and tests.
type ScriptedInput struct {
	engine.BaseComponent
	Input engine.MovementInput
}

func (s *ScriptedInput) MovementInput() engine.MovementInput {
	return s.Input
}
