package world

import (
	"movecore/internal/components"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	frustumNear = 0.1
	frustumFar  = 1000.0
)

// Frustum holds the six planes of a view volume, normals pointing inward.
type Frustum struct {
	planes [6]Plane // left, right, bottom, top, near, far
}

// Plane is ax + by + cz + d = 0 with a unit normal.
type Plane struct {
	normal   rl.Vector3
	distance float32
}

// ExtractFrustum builds the planes from the camera's view-projection matrix
// (Gribb/Hartmann). It only does matrix math, so it works without a window.
func ExtractFrustum(camera rl.Camera3D, aspect float32) Frustum {
	view := rl.MatrixLookAt(camera.Position, camera.Target, camera.Up)

	var proj rl.Matrix
	if camera.Projection == rl.CameraPerspective {
		proj = rl.MatrixPerspective(camera.Fovy*rl.Deg2rad, aspect, frustumNear, frustumFar)
	} else {
		halfH := camera.Fovy / 2.0
		halfW := halfH * aspect
		proj = rl.MatrixOrtho(-halfW, halfW, -halfH, halfH, frustumNear, frustumFar)
	}
	r := matrixRows(rl.MatrixMultiply(view, proj))

	var f Frustum
	for axis := range 3 {
		f.planes[axis*2] = planeFrom(r[3], r[axis], 1)
		f.planes[axis*2+1] = planeFrom(r[3], r[axis], -1)
	}
	return f
}

func matrixRows(m rl.Matrix) [4]rl.Vector4 {
	return [4]rl.Vector4{
		{X: m.M0, Y: m.M4, Z: m.M8, W: m.M12},
		{X: m.M1, Y: m.M5, Z: m.M9, W: m.M13},
		{X: m.M2, Y: m.M6, Z: m.M10, W: m.M14},
		{X: m.M3, Y: m.M7, Z: m.M11, W: m.M15},
	}
}

// planeFrom returns the normalized plane w + sign*row.
func planeFrom(w, row rl.Vector4, sign float32) Plane {
	p := Plane{
		normal: rl.Vector3{
			X: w.X + sign*row.X,
			Y: w.Y + sign*row.Y,
			Z: w.Z + sign*row.Z,
		},
		distance: w.W + sign*row.W,
	}
	length := rl.Vector3Length(p.normal)
	if length == 0 {
		return p
	}
	return Plane{
		normal:   rl.Vector3Scale(p.normal, 1.0/length),
		distance: p.distance / length,
	}
}

// ContainsSphere tests if a sphere is inside or intersects the frustum.
func (f *Frustum) ContainsSphere(center rl.Vector3, radius float32) bool {
	for i := range f.planes {
		if rl.Vector3DotProduct(f.planes[i].normal, center)+f.planes[i].distance < -radius {
			return false
		}
	}
	return true
}

func (f *Frustum) ContainsPoint(point rl.Vector3) bool {
	return f.ContainsSphere(point, 0)
}

// ContainsAABB tests the box corner furthest along each plane normal.
func (f *Frustum) ContainsAABB(box components.AABB) bool {
	for i := range f.planes {
		n := f.planes[i].normal
		p := box.Min
		if n.X >= 0 {
			p.X = box.Max.X
		}
		if n.Y >= 0 {
			p.Y = box.Max.Y
		}
		if n.Z >= 0 {
			p.Z = box.Max.Z
		}
		if rl.Vector3DotProduct(n, p)+f.planes[i].distance < 0 {
			return false
		}
	}
	return true
}
