package components

import (
	"movecore/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// SphereCollider is a static sphere. Non-uniform scale is not supported; the
// largest axis scales the radius.
type SphereCollider struct {
	engine.BaseComponent
	Radius float32
	Offset rl.Vector3
}

func NewSphereCollider(radius float32) *SphereCollider {
	return &SphereCollider{Radius: radius}
}

// GetCenter returns the world-space center of this collider.
func (s *SphereCollider) GetCenter() rl.Vector3 {
	g := s.GetGameObject()
	off := rl.Vector3RotateByQuaternion(rl.Vector3Multiply(s.Offset, g.WorldScale()), g.WorldRotation())
	return rl.Vector3Add(g.WorldPosition(), off)
}

// WorldRadius is Radius after the object's scale.
func (s *SphereCollider) WorldRadius() float32 {
	sc := s.GetGameObject().WorldScale()
	return s.Radius * max(sc.X, sc.Y, sc.Z)
}

func (s *SphereCollider) Bounds() AABB {
	c := s.GetCenter()
	r := s.WorldRadius()
	e := rl.Vector3{X: r, Y: r, Z: r}
	return AABB{Min: rl.Vector3Subtract(c, e), Max: rl.Vector3Add(c, e)}
}
