package components

import (
	"movecore/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// BoxCollider is an oriented box that follows its object's world transform.
type BoxCollider struct {
	engine.BaseComponent
	Size   rl.Vector3
	Offset rl.Vector3
}

func NewBoxCollider(size rl.Vector3) *BoxCollider {
	return &BoxCollider{
		Size:   size,
		Offset: rl.Vector3{},
	}
}

// GetCenter returns the world-space center, with Offset in object space.
func (b *BoxCollider) GetCenter() rl.Vector3 {
	g := b.GetGameObject()
	off := rl.Vector3Multiply(b.Offset, g.WorldScale())
	return rl.Vector3Add(g.WorldPosition(), rl.Vector3RotateByQuaternion(off, g.WorldRotation()))
}

// HalfExtents returns the world-scaled half size. Negative scales are folded.
func (b *BoxCollider) HalfExtents() rl.Vector3 {
	s := rl.Vector3Multiply(b.Size, b.GetGameObject().WorldScale())
	return rl.Vector3{X: absf(s.X) / 2, Y: absf(s.Y) / 2, Z: absf(s.Z) / 2}
}

// Axes returns the box's local X, Y and Z axes in world space.
func (b *BoxCollider) Axes() [3]rl.Vector3 {
	q := b.GetGameObject().WorldRotation()
	return [3]rl.Vector3{
		rl.Vector3RotateByQuaternion(rl.Vector3{X: 1}, q),
		rl.Vector3RotateByQuaternion(rl.Vector3{Y: 1}, q),
		rl.Vector3RotateByQuaternion(rl.Vector3{Z: 1}, q),
	}
}

// Bounds is the world AABB enclosing the rotated box.
func (b *BoxCollider) Bounds() AABB {
	c := b.GetCenter()
	h := b.HalfExtents()
	axes := b.Axes()
	ext := rl.Vector3{
		X: absf(axes[0].X)*h.X + absf(axes[1].X)*h.Y + absf(axes[2].X)*h.Z,
		Y: absf(axes[0].Y)*h.X + absf(axes[1].Y)*h.Y + absf(axes[2].Y)*h.Z,
		Z: absf(axes[0].Z)*h.X + absf(axes[1].Z)*h.Y + absf(axes[2].Z)*h.Z,
	}
	return AABB{Min: rl.Vector3Subtract(c, ext), Max: rl.Vector3Add(c, ext)}
}

func absf(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
