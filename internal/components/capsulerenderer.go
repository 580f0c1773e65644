package components

import (
	"movecore/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// CapsuleRenderer draws the character body standing on the object position,
// with a nose showing its facing. While StateColors has an entry for the
// controller's current state the body takes that color.
type CapsuleRenderer struct {
	engine.BaseComponent
	Radius float32
	Height float32
	Color  rl.Color

	StateColors map[MovementState]rl.Color
}

func NewCapsuleRenderer(radius, height float32, color rl.Color) *CapsuleRenderer {
	return &CapsuleRenderer{
		Radius: radius,
		Height: height,
		Color:  color,
		StateColors: map[MovementState]rl.Color{
			Sliding:    rl.Orange,
			SteppingUp: rl.Lime,
			Falling:    rl.Purple,
		},
	}
}

// BodyColor is the color for the current frame.
func (c *CapsuleRenderer) BodyColor() rl.Color {
	ctrl := engine.GetComponent[*CharacterController](c.GetGameObject())
	if ctrl != nil {
		if col, ok := c.StateColors[ctrl.State.MovementState]; ok {
			return col
		}
	}
	return c.Color
}

func (c *CapsuleRenderer) Draw() {
	g := c.GetGameObject()
	if g == nil || !g.Active {
		return
	}

	pos := g.WorldPosition()
	r := c.Radius
	bottom := rl.Vector3Add(pos, rl.Vector3{Y: r})
	top := rl.Vector3Add(pos, rl.Vector3{Y: max(c.Height-r, r)})
	rl.DrawCapsule(bottom, top, r, 12, 6, c.BodyColor())
	rl.DrawCapsuleWires(bottom, top, r, 12, 6, rl.Fade(rl.Black, 0.3))

	// nose
	fwd := rl.Vector3RotateByQuaternion(rl.Vector3{Z: 1}, g.WorldRotation())
	eye := rl.Vector3Add(pos, rl.Vector3{Y: c.Height * 0.8})
	rl.DrawSphere(rl.Vector3Add(eye, rl.Vector3Scale(fwd, r)), r*0.25, rl.DarkGray)
}
