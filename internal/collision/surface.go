package collision

import (
	"movecore/internal/config"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// SurfaceType classifies a contact by the angle of its normal from up.
type SurfaceType int

const (
	Walkable SurfaceType = iota
	Slideable
	Wall
	Ceiling
)

func (s SurfaceType) String() string {
	switch s {
	case Walkable:
		return "Walkable"
	case Slideable:
		return "Slideable"
	case Wall:
		return "Wall"
	case Ceiling:
		return "Ceiling"
	}
	return "Unknown"
}

// angleTolerance absorbs float32 rounding in acos at the class boundaries.
const angleTolerance = 1e-5

// ClassifySurface buckets a unit normal. Boundaries belong to the more
// permissive class: exactly the walkable angle is still walkable.
func ClassifySurface(normal rl.Vector3, cfg *config.Config) SurfaceType {
	angle := SlopeAngle(normal)
	switch {
	case angle <= float32(cfg.Slopes.MaxWalkableAngle)+angleTolerance:
		return Walkable
	case angle <= float32(cfg.Slopes.SlideThresholdAngle)+angleTolerance:
		return Slideable
	case angle < config.CeilingAngle:
		return Wall
	}
	return Ceiling
}

func IsSurfaceWalkable(normal rl.Vector3, cfg *config.Config) bool {
	return ClassifySurface(normal, cfg) == Walkable
}
