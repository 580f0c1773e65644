package engine

// QueryHit holds information about a ray or shape cast hit.
// Defined here to avoid circular imports with physics package.
type QueryHit struct {
	GameObject *GameObject
	Point      Vec3
	Normal     Vec3
	Distance   float32
}

// QueryFilter narrows which colliders a cast may report.
type QueryFilter struct {
	ExcludedIDs []uint64
}

// Excludes reports whether the object with uid must be ignored.
func (f QueryFilter) Excludes(uid uint64) bool {
	for _, id := range f.ExcludedIDs {
		if id == uid {
			return true
		}
	}
	return false
}

// Capsule is an upright capsule centered on the cast origin. Height is the
// total height including both caps.
type Capsule struct {
	Radius float32
	Height float32
}

// HalfSegment is the distance from the center to each cap sphere center.
func (c Capsule) HalfSegment() float32 {
	h := c.Height/2 - c.Radius
	if h < 0 {
		return 0
	}
	return h
}

// SpatialQuery is the read-only collision surface the character controller
// moves against. Directions must be normalized.
type SpatialQuery interface {
	CastRay(origin, direction Vec3, maxDistance float32, filter QueryFilter) (QueryHit, bool)
	CastShape(shape Capsule, origin, direction Vec3, maxDistance float32, filter QueryFilter) (QueryHit, bool)
}
