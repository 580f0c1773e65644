package physics

import (
	"math"

	"movecore/internal/components"
	"movecore/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// raycastOBB runs the slab test in box space. A ray that starts inside the
// box reports the face it leaves through, with that face's outward normal.
func raycastOBB(o OBB, origin, direction rl.Vector3, maxDistance float32) (engine.QueryHit, bool) {
	lo := o.toLocal(origin)
	ld := [3]float32{
		rl.Vector3DotProduct(direction, o.Axes[0]),
		rl.Vector3DotProduct(direction, o.Axes[1]),
		rl.Vector3DotProduct(direction, o.Axes[2]),
	}

	tmin, tmax := float32(-math.MaxFloat32), float32(math.MaxFloat32)
	enterAxis, exitAxis := -1, -1
	var enterSign, exitSign float32

	for i := 0; i < 3; i++ {
		h := o.half(i)
		if absf(ld[i]) < 1e-8 {
			if absf(lo[i]) > h {
				return engine.QueryHit{}, false
			}
			continue
		}
		t1 := (-h - lo[i]) / ld[i]
		t2 := (h - lo[i]) / ld[i]
		s1, s2 := float32(-1), float32(1)
		if t1 > t2 {
			t1, t2 = t2, t1
			s1, s2 = s2, s1
		}
		if t1 > tmin {
			tmin, enterAxis, enterSign = t1, i, s1
		}
		if t2 < tmax {
			tmax, exitAxis, exitSign = t2, i, s2
		}
		if tmin > tmax {
			return engine.QueryHit{}, false
		}
	}
	if tmax < 0 {
		return engine.QueryHit{}, false
	}

	t := tmin
	axis, sign := enterAxis, enterSign
	if tmin < 0 {
		t, axis, sign = tmax, exitAxis, exitSign
	}
	if t > maxDistance || axis < 0 {
		return engine.QueryHit{}, false
	}

	return engine.QueryHit{
		Point:    rl.Vector3Add(origin, rl.Vector3Scale(direction, t)),
		Normal:   rl.Vector3Scale(o.Axes[axis], sign),
		Distance: t,
	}, true
}

func raycastSphere(center rl.Vector3, radius float32, origin, direction rl.Vector3, maxDistance float32) (engine.QueryHit, bool) {
	oc := rl.Vector3Subtract(origin, center)
	b := rl.Vector3DotProduct(oc, direction)
	c := rl.Vector3DotProduct(oc, oc) - radius*radius
	if c > 0 && b > 0 {
		return engine.QueryHit{}, false
	}
	disc := b*b - c
	if disc < 0 {
		return engine.QueryHit{}, false
	}
	sq := float32(math.Sqrt(float64(disc)))
	t := -b - sq
	if t < 0 {
		t = -b + sq
	}
	if t < 0 || t > maxDistance {
		return engine.QueryHit{}, false
	}
	point := rl.Vector3Add(origin, rl.Vector3Scale(direction, t))
	return engine.QueryHit{
		Point:    point,
		Normal:   rl.Vector3Scale(rl.Vector3Subtract(point, center), 1/radius),
		Distance: t,
	}, true
}

// raycastTriangle is Möller–Trumbore. Triangles are two-sided; the returned
// normal always faces back along the ray.
func raycastTriangle(tri *components.Triangle, origin, direction rl.Vector3, maxDistance float32) (engine.QueryHit, bool) {
	e1 := rl.Vector3Subtract(tri.V1, tri.V0)
	e2 := rl.Vector3Subtract(tri.V2, tri.V0)
	pvec := rl.Vector3CrossProduct(direction, e2)
	det := rl.Vector3DotProduct(e1, pvec)
	if absf(det) < 1e-10 {
		return engine.QueryHit{}, false
	}
	inv := 1 / det
	tvec := rl.Vector3Subtract(origin, tri.V0)
	u := rl.Vector3DotProduct(tvec, pvec) * inv
	if u < 0 || u > 1 {
		return engine.QueryHit{}, false
	}
	qvec := rl.Vector3CrossProduct(tvec, e1)
	v := rl.Vector3DotProduct(direction, qvec) * inv
	if v < 0 || u+v > 1 {
		return engine.QueryHit{}, false
	}
	t := rl.Vector3DotProduct(e2, qvec) * inv
	if t < 0 || t > maxDistance {
		return engine.QueryHit{}, false
	}
	normal := tri.Normal
	if rl.Vector3DotProduct(normal, direction) > 0 {
		normal = rl.Vector3Negate(normal)
	}
	return engine.QueryHit{
		Point:    rl.Vector3Add(origin, rl.Vector3Scale(direction, t)),
		Normal:   normal,
		Distance: t,
	}, true
}

// raycastMesh tests the triangles under the ray's bounds and keeps the nearest.
func raycastMesh(mesh *components.MeshCollider, origin, direction rl.Vector3, maxDistance float32, scratch []int) (engine.QueryHit, bool) {
	end := rl.Vector3Add(origin, rl.Vector3Scale(direction, maxDistance))
	box := components.EmptyAABB().Extend(origin).Extend(end)
	var best engine.QueryHit
	found := false
	for _, idx := range mesh.Query(box, scratch[:0]) {
		h, ok := raycastTriangle(&mesh.Triangles[idx], origin, direction, maxDistance)
		if ok && (!found || h.Distance < best.Distance) {
			best, found = h, true
		}
	}
	return best, found
}
