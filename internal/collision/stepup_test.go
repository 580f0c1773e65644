package collision_test

import (
	"math"
	"testing"

	"movecore/internal/collision"
	"movecore/internal/components"
	"movecore/internal/config"
	"movecore/internal/engine"
	"movecore/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// stepLift is how far above the step top a successful step-up lands.
const stepLift = 0.1

func near(a, b float32) bool { return math.Abs(float64(a-b)) < 1e-4 }

func box(w *physics.World, center, size rl.Vector3) *engine.GameObject {
	g := engine.NewGameObject("Box")
	g.Transform.Position = center
	g.AddComponent(components.NewBoxCollider(size))
	w.AddStatic(g)
	return g
}

// stepWorld is a floor with its top at y=0 and a step of the given height
// whose face is 0.45 in front of the origin along +X.
func stepWorld(height float32) *physics.World {
	w := physics.NewWorld()
	box(w, rl.Vector3{Y: -0.5}, rl.Vector3{X: 20, Y: 1, Z: 20})
	box(w, rl.Vector3{X: 0.95, Y: height / 2}, rl.Vector3{X: 1, Y: height, Z: 2})
	w.Rebuild()
	return w
}

func TestStepUpHeightBoundary(t *testing.T) {
	cfg := config.Default()
	fwd := rl.Vector3{X: 1}

	landing, ok := collision.AttemptStepUp(rl.Vector3{}, fwd, stepWorld(0.29), cfg, nil)
	if !ok {
		t.Fatal("0.29 step should be climbable with a 0.3 limit")
	}
	if !near(landing.Y, 0.29+stepLift) {
		t.Errorf("Expected landing at step top + 0.1, got %v", landing)
	}
	if landing.X <= 0.45 {
		t.Errorf("landing should be on top of the step, got %v", landing)
	}

	if _, ok := collision.AttemptStepUp(rl.Vector3{}, fwd, stepWorld(0.31), cfg, nil); ok {
		t.Error("0.31 step must be rejected with a 0.3 limit")
	}
}

func TestStepUpTallWallRejected(t *testing.T) {
	cfg := config.Default()
	if _, ok := collision.AttemptStepUp(rl.Vector3{}, rl.Vector3{X: 1}, stepWorld(2), cfg, nil); ok {
		t.Error("a wall is not a step")
	}
}

func TestStepUpNeedsClearanceBeyondEdge(t *testing.T) {
	cfg := config.Default()
	w := physics.NewWorld()
	box(w, rl.Vector3{Y: -0.5}, rl.Vector3{X: 20, Y: 1, Z: 20})
	box(w, rl.Vector3{X: 0.95, Y: 0.1}, rl.Vector3{X: 1, Y: 0.2, Z: 2})
	// wall set back only 0.05 from the step face
	box(w, rl.Vector3{X: 1.0, Y: 1.2}, rl.Vector3{X: 1, Y: 2, Z: 2})
	w.Rebuild()

	probe, ok := collision.ProbeStep(rl.Vector3{}, rl.Vector3{X: 1}, w, cfg, nil)
	if ok {
		t.Error("step with a wall right behind its edge should be rejected")
	}
	if !near(probe.Height, 0.2) {
		t.Errorf("height should have been measured before the clearance check, got %f", probe.Height)
	}
}

func TestStepUpUsesHorizontalDirection(t *testing.T) {
	cfg := config.Default()
	// a direction tilted down still probes horizontally
	if _, ok := collision.AttemptStepUp(rl.Vector3{}, rl.Vector3{X: 1, Y: -0.5}, stepWorld(0.2), cfg, nil); !ok {
		t.Error("tilted direction should be flattened before probing")
	}
	if _, ok := collision.AttemptStepUp(rl.Vector3{}, rl.Vector3{Y: -1}, stepWorld(0.2), cfg, nil); ok {
		t.Error("vertical direction has no forward")
	}
}

func TestSnapToGround(t *testing.T) {
	cfg := config.Default()
	w := stepWorld(0.2)

	pos, res, ok := collision.SnapToGround(rl.Vector3{X: -3, Y: 0.2}, 0.5, w, cfg, nil)
	if !ok || !res.IsWalkable {
		t.Fatalf("Expected to snap onto the floor, got %v %+v", ok, res)
	}
	if !near(pos.Y, cfg.Collision.SurfaceTolerance) {
		t.Errorf("Expected feet at the surface tolerance, got %f", pos.Y)
	}

	if _, _, ok := collision.SnapToGround(rl.Vector3{X: -3, Y: 0.2}, 0.1, w, cfg, nil); ok {
		t.Error("ground beyond the snap distance should not snap")
	}
}

func TestCollideAndSlideAgainstPhysicsWall(t *testing.T) {
	cfg := config.Default()
	w := physics.NewWorld()
	box(w, rl.Vector3{Y: -0.5}, rl.Vector3{X: 20, Y: 1, Z: 20})
	box(w, rl.Vector3{X: 2, Y: 1}, rl.Vector3{X: 1, Y: 2, Z: 10})
	w.Rebuild()

	start := rl.Vector3{Y: 0.01}
	pos, _, res := collision.CollideAndSlide(start, rl.Vector3{X: 3, Z: 1}, w, cfg, nil)

	// wall face at x=1.5, capsule radius 0.4
	limit := 1.5 - cfg.Collision.CapsuleRadius
	if pos.X > limit {
		t.Errorf("capsule went past the wall: x=%f limit %f", pos.X, limit)
	}
	if pos.Z <= 0.3 {
		t.Errorf("should have slid along the wall, got %v", pos)
	}
	if !near(pos.Y, start.Y) {
		t.Errorf("sliding along a wall should not change height, got %f", pos.Y)
	}
	if !res.Hit || collision.ClassifySurface(res.Normal, cfg) != collision.Wall {
		t.Errorf("Expected wall contact, got %+v", res)
	}
}

func TestCollideAndSlideSkipsExcludedColliders(t *testing.T) {
	cfg := config.Default()
	w := physics.NewWorld()
	self := box(w, rl.Vector3{Y: 0.9}, rl.Vector3{X: 0.5, Y: 0.5, Z: 0.5})
	w.Rebuild()

	pos, _, res := collision.CollideAndSlide(rl.Vector3{}, rl.Vector3{X: 1}, w, cfg, []uint64{self.UID})
	if res.Hit || !near(pos.X, 1) {
		t.Errorf("own collider should be ignored, got %v %+v", pos, res)
	}
}

func TestCollideAndSlideApproachBeforeWall(t *testing.T) {
	cfg := config.Default()
	w := physics.NewWorld()
	box(w, rl.Vector3{Y: -0.5}, rl.Vector3{X: 20, Y: 1, Z: 20})
	box(w, rl.Vector3{X: 2, Y: 1}, rl.Vector3{X: 1, Y: 2, Z: 10})
	w.Rebuild()

	// wall face at x=1.5; the capsule starts 0.6 short of touching it
	start := rl.Vector3{Y: 0.01, X: 0.5}
	pos, moved, res := collision.CollideAndSlide(start, rl.Vector3{X: 1}, w, cfg, nil)

	if !res.Hit {
		t.Fatal("Expected the wall to be hit")
	}
	want := 1.5 - cfg.Collision.CapsuleRadius - cfg.Collision.Margin
	if math.Abs(float64(pos.X-want)) > 0.01 {
		t.Errorf("Expected to stop a margin short of the wall at x=%f, got %f", want, pos.X)
	}
	if moved.X <= 0.5 {
		t.Errorf("net displacement should include the approach, got %v", moved)
	}
	if math.Abs(float64(res.SlideVector.X)) > 1e-4 {
		t.Errorf("redirected movement should have no component into the wall, got %v", res.SlideVector)
	}
}

// slopeWorld is a floor with its top at y=0 and a 20 long ramp through the
// origin rising toward +X at deg degrees.
func slopeWorld(deg float32) *physics.World {
	w := physics.NewWorld()
	box(w, rl.Vector3{Y: -0.5}, rl.Vector3{X: 60, Y: 1, Z: 60})
	ramp := engine.NewGameObject("Ramp")
	ramp.Transform.Rotation = rl.QuaternionFromAxisAngle(rl.Vector3{Z: 1}, deg*rl.Deg2rad)
	ramp.AddComponent(components.NewBoxCollider(rl.Vector3{X: 20, Y: 1, Z: 6}))
	w.AddStatic(ramp)
	w.Rebuild()
	return w
}

func TestSupportContactSeesRampBesideFeet(t *testing.T) {
	cfg := config.Default()
	w := slopeWorld(50)

	// Feet just past the foot of the ramp (x=-0.653) and 0.27 above the
	// floor; the capsule side is 0.036 off the ramp. The ground ray finds the
	// floor, the sweep finds the ramp first.
	feet := rl.Vector3{X: -0.66, Y: 0.27}

	grounded, ground := collision.IsGrounded(feet, w, cfg, nil)
	if !grounded || !near(ground.Normal.Y, 1) {
		t.Fatalf("Expected the ray to find the floor, got %v %+v", grounded, ground)
	}
	support := collision.SupportContact(feet, w, cfg, nil)
	if !support.Hit || collision.ClassifySurface(support.Normal, cfg) != collision.Slideable {
		t.Fatalf("Expected a slideable support contact, got %+v", support)
	}
	if support.Distance >= ground.Distance {
		t.Errorf("ramp contact at %f should come before the floor at %f", support.Distance, ground.Distance)
	}

	// snapping keeps to walkable ground only; the surface variant takes the ramp
	if _, _, ok := collision.SnapToGround(feet, 0.1, w, cfg, nil); ok {
		t.Error("SnapToGround must not settle on a slideable ramp")
	}
	if _, res, ok := collision.SnapToSurface(feet, 0.1, w, cfg, nil); !ok || res.IsWalkable {
		t.Errorf("SnapToSurface should settle on the ramp, got %v %+v", ok, res)
	}
}

func TestSlopeProbeDistanceCoversSlideThreshold(t *testing.T) {
	cfg := config.Default()
	gap := cfg.Collision.Margin + cfg.Collision.SurfaceTolerance
	// at 60 degrees the vertical gap is twice the normal gap
	if got := collision.SlopeProbeDistance(cfg); got < 2*gap {
		t.Errorf("probe distance %f does not reach a %f gap on a 60 degree slope", got, gap)
	}
}
