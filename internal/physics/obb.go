package physics

import (
	"movecore/internal/components"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// OBB represents an Oriented Bounding Box
type OBB struct {
	Center   rl.Vector3    // World-space center
	HalfSize rl.Vector3    // Half-extents along local axes
	Axes     [3]rl.Vector3 // Local X, Y, Z axes (rotated)
}

// NewOBB creates an OBB from center, full size and a rotation.
func NewOBB(center, size rl.Vector3, rotation rl.Quaternion) OBB {
	return OBB{
		Center:   center,
		HalfSize: rl.Vector3{X: absf(size.X) / 2, Y: absf(size.Y) / 2, Z: absf(size.Z) / 2},
		Axes: [3]rl.Vector3{
			rl.Vector3RotateByQuaternion(rl.Vector3{X: 1}, rotation),
			rl.Vector3RotateByQuaternion(rl.Vector3{Y: 1}, rotation),
			rl.Vector3RotateByQuaternion(rl.Vector3{Z: 1}, rotation),
		},
	}
}

// OBBFromBox reads the world-space box of a collider.
func OBBFromBox(box *components.BoxCollider) OBB {
	return OBB{Center: box.GetCenter(), HalfSize: box.HalfExtents(), Axes: box.Axes()}
}

func (o OBB) half(i int) float32 {
	switch i {
	case 0:
		return o.HalfSize.X
	case 1:
		return o.HalfSize.Y
	default:
		return o.HalfSize.Z
	}
}

// toLocal expresses a world point in box coordinates.
func (o OBB) toLocal(p rl.Vector3) [3]float32 {
	d := rl.Vector3Subtract(p, o.Center)
	return [3]float32{
		rl.Vector3DotProduct(d, o.Axes[0]),
		rl.Vector3DotProduct(d, o.Axes[1]),
		rl.Vector3DotProduct(d, o.Axes[2]),
	}
}

// Contains reports whether p is inside or on the box.
func (o OBB) Contains(p rl.Vector3) bool {
	l := o.toLocal(p)
	for i := 0; i < 3; i++ {
		if absf(l[i]) > o.half(i) {
			return false
		}
	}
	return true
}

// ClosestPointOnOBB returns the point of the box nearest to point. Points
// inside the box are returned unchanged.
func ClosestPointOnOBB(o OBB, point rl.Vector3) rl.Vector3 {
	l := o.toLocal(point)
	result := o.Center
	for i := 0; i < 3; i++ {
		dist := clampf(l[i], -o.half(i), o.half(i))
		result = rl.Vector3Add(result, rl.Vector3Scale(o.Axes[i], dist))
	}
	return result
}

func absf(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

func clampf(v, min, max float32) float32 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
