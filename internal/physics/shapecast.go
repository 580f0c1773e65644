package physics

import (
	"movecore/internal/components"
	"movecore/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	// contactEpsilon is the separation at which a sweep counts as touching.
	contactEpsilon = 1e-3
	// maxAdvanceSteps caps conservative advancement per collider.
	maxAdvanceSteps = 32
	// maxProjectionSteps caps the closest-pair search.
	maxProjectionSteps = 16
)

// closestFunc returns the point of a convex collider nearest to p.
type closestFunc func(p rl.Vector3) rl.Vector3

// capsuleSeparation finds the closest pair between the capsule axis and a
// convex shape by alternating projection. It returns the gap between the
// capsule surface and the shape (negative when overlapping), the unit normal
// from the shape toward the capsule, and the contact point on the shape.
// ok is false when the axis itself touches the shape and no normal exists.
func capsuleSeparation(closest closestFunc, q, a, b rl.Vector3, radius float32) (gap float32, normal, point rl.Vector3, ok bool) {
	for i := 0; i < maxProjectionSteps; i++ {
		p := closestPointOnSegment(q, a, b)
		next := closest(p)
		moved := rl.Vector3DistanceSqr(next, q)
		q = next
		if moved < 1e-12 {
			break
		}
	}
	p := closestPointOnSegment(q, a, b)
	diff := rl.Vector3Subtract(p, q)
	l := rl.Vector3Length(diff)
	if l < 1e-6 {
		return 0, rl.Vector3{}, q, false
	}
	return l - radius, rl.Vector3Scale(diff, 1/l), q, true
}

// sweepCapsule moves an upright capsule from origin along direction and
// reports the first contact with one convex shape, using conservative
// advancement: the separation is convex in the travelled distance, so each
// Newton step lands at or before the true time of impact. A capsule that
// starts touching but moves away or tangentially does not hit. Shapes that
// already cross the capsule axis are ignored so a character can walk out of
// geometry it was spawned in.
func sweepCapsule(closest closestFunc, seed rl.Vector3, capsule engine.Capsule, origin, direction rl.Vector3, maxDistance float32) (engine.QueryHit, bool) {
	hs := capsule.HalfSegment()
	up := rl.Vector3{Y: hs}
	t := float32(0)
	q := seed
	for step := 0; step < maxAdvanceSteps; step++ {
		center := rl.Vector3Add(origin, rl.Vector3Scale(direction, t))
		a := rl.Vector3Subtract(center, up)
		b := rl.Vector3Add(center, up)

		gap, n, point, ok := capsuleSeparation(closest, q, a, b, capsule.Radius)
		if !ok {
			if step == 0 {
				return engine.QueryHit{}, false
			}
			return engine.QueryHit{Point: point, Normal: rl.Vector3Negate(direction), Distance: t}, true
		}
		q = point

		closing := -rl.Vector3DotProduct(direction, n)
		if gap <= contactEpsilon {
			if closing <= 0 {
				return engine.QueryHit{}, false
			}
			return engine.QueryHit{Point: point, Normal: n, Distance: t}, true
		}
		if closing <= 1e-6 {
			return engine.QueryHit{}, false
		}
		t += gap / closing
		if t > maxDistance {
			return engine.QueryHit{}, false
		}
	}
	// Out of steps: t is still at or before the contact.
	center := rl.Vector3Add(origin, rl.Vector3Scale(direction, t))
	_, n, point, ok := capsuleSeparation(closest, q,
		rl.Vector3Subtract(center, up), rl.Vector3Add(center, up), capsule.Radius)
	if !ok {
		n = rl.Vector3Negate(direction)
	}
	return engine.QueryHit{Point: point, Normal: n, Distance: t}, true
}

func sweepOBB(o OBB, capsule engine.Capsule, origin, direction rl.Vector3, maxDistance float32) (engine.QueryHit, bool) {
	return sweepCapsule(func(p rl.Vector3) rl.Vector3 { return ClosestPointOnOBB(o, p) },
		o.Center, capsule, origin, direction, maxDistance)
}

func sweepSphere(center rl.Vector3, radius float32, capsule engine.Capsule, origin, direction rl.Vector3, maxDistance float32) (engine.QueryHit, bool) {
	closest := func(p rl.Vector3) rl.Vector3 {
		d := rl.Vector3Subtract(p, center)
		l := rl.Vector3Length(d)
		if l <= radius {
			return p
		}
		return rl.Vector3Add(center, rl.Vector3Scale(d, radius/l))
	}
	return sweepCapsule(closest, center, capsule, origin, direction, maxDistance)
}

func sweepTriangle(tri *components.Triangle, capsule engine.Capsule, origin, direction rl.Vector3, maxDistance float32) (engine.QueryHit, bool) {
	closest := func(p rl.Vector3) rl.Vector3 { return closestPointOnTriangle(p, tri.V0, tri.V1, tri.V2) }
	seed := rl.Vector3Scale(rl.Vector3Add(rl.Vector3Add(tri.V0, tri.V1), tri.V2), 1.0/3.0)
	return sweepCapsule(closest, seed, capsule, origin, direction, maxDistance)
}

// sweepBounds is the AABB covering the capsule over the whole sweep.
func sweepBounds(capsule engine.Capsule, origin, direction rl.Vector3, maxDistance float32) components.AABB {
	hs := capsule.HalfSegment()
	up := rl.Vector3{Y: hs}
	end := rl.Vector3Add(origin, rl.Vector3Scale(direction, maxDistance))
	box := components.EmptyAABB().
		Extend(rl.Vector3Add(origin, up)).Extend(rl.Vector3Subtract(origin, up)).
		Extend(rl.Vector3Add(end, up)).Extend(rl.Vector3Subtract(end, up))
	return box.Expand(capsule.Radius + contactEpsilon)
}

func sweepMesh(mesh *components.MeshCollider, capsule engine.Capsule, origin, direction rl.Vector3, maxDistance float32, scratch []int) (engine.QueryHit, bool) {
	var best engine.QueryHit
	found := false
	for _, idx := range mesh.Query(sweepBounds(capsule, origin, direction, maxDistance), scratch[:0]) {
		h, ok := sweepTriangle(&mesh.Triangles[idx], capsule, origin, direction, maxDistance)
		if ok && (!found || h.Distance < best.Distance) {
			best, found = h, true
		}
	}
	return best, found
}
