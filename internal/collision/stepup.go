package collision

import (
	"movecore/internal/config"
	"movecore/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	// stepProbeLift raises the obstacle ray off the floor it stands on.
	stepProbeLift = 0.05
	// stepInset pushes the height probe just inside the obstacle face.
	stepInset = 0.01
	// stepProbeOvershoot lets the height probe see a top above the limit so
	// it can be rejected instead of assumed.
	stepProbeOvershoot = 0.1
	// stepClearance is the gap kept under the elevated ray and the landing.
	stepClearance = 0.1
	// stepLandingReach extends the landing ray below the measured height.
	stepLandingReach = 0.2
	// minStepRise rejects "steps" that are really the floor.
	minStepRise = 0.01
)

// StepProbe records the rays of the last step attempt for debug drawing.
type StepProbe struct {
	Obstacle  rl.Vector3
	Height    float32
	Elevated  rl.Vector3
	Landing   rl.Vector3
	Succeeded bool
}

// Target is where a successful step places the feet.
func (p StepProbe) Target() rl.Vector3 {
	return rl.Vector3Add(p.Landing, rl.Vector3{Y: stepClearance})
}

// AttemptStepUp checks whether the obstacle ahead of position in direction
// is a step the character can climb. It returns the landing point on top of
// the step raised by stepClearance, or false. Any failed stage aborts.
func AttemptStepUp(position, direction rl.Vector3, world engine.SpatialQuery, cfg *config.Config, excluded []uint64) (rl.Vector3, bool) {
	p, ok := ProbeStep(position, direction, world, cfg, excluded)
	if !ok {
		return rl.Vector3{}, false
	}
	return p.Target(), true
}

// ProbeStep runs the four step casts and reports how far it got.
func ProbeStep(position, direction rl.Vector3, world engine.SpatialQuery, cfg *config.Config, excluded []uint64) (StepProbe, bool) {
	var probe StepProbe
	su := cfg.StepUp
	if !su.Enabled {
		return probe, false
	}
	dir := Horizontal(direction)
	if dir == (rl.Vector3{}) {
		return probe, false
	}
	filter := engine.QueryFilter{ExcludedIDs: excluded}

	// (a) find the obstacle face
	low := rl.Vector3Add(position, rl.Vector3{Y: stepProbeLift})
	face, ok := world.CastRay(low, dir, su.StepCheckDistance, filter)
	if !ok {
		return probe, false
	}
	probe.Obstacle = face.Point

	// (b) measure its height from the feet
	inside := rl.Vector3Add(face.Point, rl.Vector3Scale(dir, stepInset))
	height := su.MaxStepHeight
	top, ok := world.CastRay(inside, engine.Up, su.MaxStepHeight-stepProbeLift+stepProbeOvershoot, filter)
	if ok {
		height = stepProbeLift + top.Distance
		if height > su.MaxStepHeight {
			return probe, false
		}
	}
	probe.Height = height

	// (c) the space above the step must be open past its edge
	elevated := rl.Vector3Add(position, rl.Vector3{Y: height + stepClearance})
	probe.Elevated = elevated
	if blocked, ok := world.CastRay(elevated, dir, su.StepCheckDistance, filter); ok {
		if blocked.Distance < face.Distance+su.MinStepWidth {
			return probe, false
		}
	}

	// (d) land on a walkable surface beyond the edge
	above := rl.Vector3Add(elevated, rl.Vector3Scale(dir, face.Distance+su.MinStepWidth))
	landing, ok := world.CastRay(above, down, height+stepClearance+stepLandingReach, filter)
	if !ok || !IsSurfaceWalkable(landing.Normal, cfg) {
		return probe, false
	}
	rise := landing.Point.Y - position.Y
	if rise < minStepRise || rise > su.MaxStepHeight+angleTolerance {
		return probe, false
	}
	probe.Landing = landing.Point
	probe.Succeeded = true
	return probe, true
}
