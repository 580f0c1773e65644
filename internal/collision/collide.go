// Package collision holds the stateless geometry the character controller
// runs every tick: collide-and-slide, surface classification, the ground
// probe and step-up detection. Everything goes through an
// engine.SpatialQuery; nothing here touches terrain or scene state directly.
package collision

import (
	"movecore/internal/config"
	"movecore/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// minMoveLength ends the resolve loop once the leftover movement is noise.
const minMoveLength = 1e-3

// Capsule returns the character's collision shape.
func Capsule(cfg *config.Config) engine.Capsule {
	return engine.Capsule{Radius: cfg.Collision.CapsuleRadius, Height: cfg.Collision.CapsuleHeight}
}

// CapsuleCenter is the cast origin for a character whose feet are at position.
func CapsuleCenter(position rl.Vector3, cfg *config.Config) rl.Vector3 {
	return rl.Vector3Add(position, rl.Vector3{Y: cfg.Collision.CapsuleHeight / 2})
}

// CollideAndSlide moves the capsule whose feet are at position by movement,
// sliding along whatever it touches. It returns the resolved feet position,
// the displacement actually travelled (divide by dt for a velocity) and the
// last contact. It always returns within Collision.MaxIterations casts; if the
// movement is not used up by then the partial result stands.
//
// The displacement is net: it includes the approach up to the first contact,
// so walking into a wall from a distance still moves toward it that tick.
// The redirected part alone is the last contact's SlideVector.
func CollideAndSlide(position, movement rl.Vector3, world engine.SpatialQuery, cfg *config.Config, excluded []uint64) (rl.Vector3, rl.Vector3, Result) {
	result := DefaultResult()
	if rl.Vector3Length(movement) < minMoveLength {
		return position, rl.Vector3{}, result
	}

	shape := Capsule(cfg)
	filter := engine.QueryFilter{ExcludedIDs: excluded}
	margin := cfg.Collision.Margin

	pos := position
	remaining := movement
	for i := 0; i < cfg.Collision.MaxIterations; i++ {
		dist := rl.Vector3Length(remaining)
		if dist < minMoveLength {
			break
		}
		dir := rl.Vector3Scale(remaining, 1/dist)

		hit, ok := world.CastShape(shape, CapsuleCenter(pos, cfg), dir, dist+margin, filter)
		if !ok {
			pos = rl.Vector3Add(pos, remaining)
			break
		}

		advance := max(hit.Distance-margin, 0)
		pos = rl.Vector3Add(pos, rl.Vector3Scale(dir, advance))
		leftover := rl.Vector3Scale(dir, dist-advance)

		surface := ClassifySurface(hit.Normal, cfg)
		switch surface {
		case Slideable:
			remaining = rl.Vector3Scale(SlideDirection(hit.Normal), (dist-advance)*cfg.Slopes.SlideFriction)
		default:
			remaining = ProjectOnPlane(leftover, hit.Normal)
		}

		result = Result{
			Hit:         true,
			Normal:      hit.Normal,
			Distance:    hit.Distance,
			Point:       hit.Point,
			SlideVector: remaining,
			IsWalkable:  surface == Walkable,
		}
		remaining = rl.Vector3Scale(remaining, cfg.Collision.SlideDecay)
	}

	return pos, rl.Vector3Subtract(pos, position), result
}
