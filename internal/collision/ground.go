package collision

import (
	"math"

	"movecore/internal/config"
	"movecore/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	// groundProbeReach extends the probe past half the capsule height.
	groundProbeReach = 0.1
	// groundedTolerance is how far past half the capsule height a hit may
	// be and still count as ground.
	groundedTolerance = 0.05
	// minSlopeUp bounds SlopeProbeDistance for slide thresholds near vertical.
	minSlopeUp = 0.2
)

var down = rl.Vector3{Y: -1}

// GroundProbeLength is the length of the downward ground ray.
func GroundProbeLength(cfg *config.Config) float32 {
	return cfg.Collision.CapsuleHeight/2 + groundProbeReach
}

// IsGrounded casts one ray down from the feet. The character is grounded
// when the ray hits within half the capsule height plus a small tolerance
// and the surface is walkable. The result has Hit false on a miss; a hit on
// a steep surface is returned with grounded false so callers can still see it.
func IsGrounded(position rl.Vector3, world engine.SpatialQuery, cfg *config.Config, excluded []uint64) (bool, Result) {
	hit, ok := world.CastRay(position, down, GroundProbeLength(cfg), engine.QueryFilter{ExcludedIDs: excluded})
	if !ok {
		return false, Result{Normal: engine.Up}
	}
	res := Result{
		Hit:        true,
		Normal:     hit.Normal,
		Distance:   hit.Distance,
		Point:      hit.Point,
		IsWalkable: IsSurfaceWalkable(hit.Normal, cfg),
	}
	grounded := hit.Distance <= cfg.Collision.CapsuleHeight/2+groundedTolerance && res.IsWalkable
	return grounded, res
}

// SnapToGround sweeps the capsule down at most maxDistance and, on a
// walkable hit, returns the feet position resting SurfaceTolerance above it.
func SnapToGround(position rl.Vector3, maxDistance float32, world engine.SpatialQuery, cfg *config.Config, excluded []uint64) (rl.Vector3, Result, bool) {
	res := sweepDown(position, maxDistance, world, cfg, excluded)
	if !res.Hit || !res.IsWalkable {
		return position, res, false
	}
	return settle(position, res, cfg), res, true
}

// SnapToSurface is SnapToGround for any surface that is not a wall or
// ceiling, so a sliding capsule keeps contact with a steep slope.
func SnapToSurface(position rl.Vector3, maxDistance float32, world engine.SpatialQuery, cfg *config.Config, excluded []uint64) (rl.Vector3, Result, bool) {
	res := sweepDown(position, maxDistance, world, cfg, excluded)
	if !res.Hit {
		return position, res, false
	}
	if surface := ClassifySurface(res.Normal, cfg); surface != Walkable && surface != Slideable {
		return position, res, false
	}
	return settle(position, res, cfg), res, true
}

// SlopeProbeDistance is how far below the feet SupportContact looks. A
// capsule held Margin plus SurfaceTolerance off a plane is that gap divided
// by the plane's up component away along -Y, so the reach covers the
// steepest slideable slope.
func SlopeProbeDistance(cfg *config.Config) float32 {
	up := max(float32(math.Cos(float64(cfg.Slopes.SlideThresholdAngle))), minSlopeUp)
	return (cfg.Collision.Margin+cfg.Collision.SurfaceTolerance)/up + cfg.Collision.SurfaceTolerance
}

// SupportContact sweeps the capsule down by SlopeProbeDistance and returns
// the first surface it rests on. Unlike the ground ray it sees contacts off
// to the side of the feet, such as a ramp the capsule leans on.
func SupportContact(position rl.Vector3, world engine.SpatialQuery, cfg *config.Config, excluded []uint64) Result {
	return sweepDown(position, SlopeProbeDistance(cfg), world, cfg, excluded)
}

func sweepDown(position rl.Vector3, maxDistance float32, world engine.SpatialQuery, cfg *config.Config, excluded []uint64) Result {
	if maxDistance <= 0 {
		return DefaultResult()
	}
	hit, ok := world.CastShape(Capsule(cfg), CapsuleCenter(position, cfg), down, maxDistance, engine.QueryFilter{ExcludedIDs: excluded})
	if !ok {
		return DefaultResult()
	}
	return Result{
		Hit:        true,
		Normal:     hit.Normal,
		Distance:   hit.Distance,
		Point:      hit.Point,
		IsWalkable: IsSurfaceWalkable(hit.Normal, cfg),
	}
}

func settle(position rl.Vector3, res Result, cfg *config.Config) rl.Vector3 {
	drop := max(res.Distance-cfg.Collision.SurfaceTolerance, 0)
	return rl.Vector3Add(position, rl.Vector3{Y: -drop})
}
