package collision

import (
	"math"
	"testing"

	"movecore/internal/config"
	"movecore/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// scriptedQuery answers casts from callbacks and counts them.
type scriptedQuery struct {
	ray        func(origin, dir rl.Vector3, maxDist float32) (engine.QueryHit, bool)
	shape      func(origin, dir rl.Vector3, maxDist float32) (engine.QueryHit, bool)
	rayCalls   int
	shapeCalls int
}

func (q *scriptedQuery) CastRay(origin, dir rl.Vector3, maxDist float32, _ engine.QueryFilter) (engine.QueryHit, bool) {
	q.rayCalls++
	if q.ray == nil {
		return engine.QueryHit{}, false
	}
	return q.ray(origin, dir, maxDist)
}

func (q *scriptedQuery) CastShape(_ engine.Capsule, origin, dir rl.Vector3, maxDist float32, _ engine.QueryFilter) (engine.QueryHit, bool) {
	q.shapeCalls++
	if q.shape == nil {
		return engine.QueryHit{}, false
	}
	return q.shape(origin, dir, maxDist)
}

func near(a, b float32) bool { return math.Abs(float64(a-b)) < 1e-4 }

func nearVec(a, b rl.Vector3) bool { return near(a.X, b.X) && near(a.Y, b.Y) && near(a.Z, b.Z) }

// normalAt tilts up by deg degrees toward +Z.
func normalAt(deg float64) rl.Vector3 {
	r := deg * math.Pi / 180
	return rl.Vector3{Y: float32(math.Cos(r)), Z: float32(math.Sin(r))}
}

func TestCollideAndSlideZeroMovement(t *testing.T) {
	cfg := config.Default()
	q := &scriptedQuery{}
	start := rl.Vector3{X: 3, Y: 1, Z: -2}

	pos, vel, res := CollideAndSlide(start, rl.Vector3{}, q, cfg, nil)

	if pos != start {
		t.Errorf("Expected position unchanged, got %v", pos)
	}
	if vel != (rl.Vector3{}) {
		t.Errorf("Expected zero velocity, got %v", vel)
	}
	if res != DefaultResult() {
		t.Errorf("Expected default result, got %+v", res)
	}
	if q.shapeCalls != 0 {
		t.Errorf("zero movement should not cast, got %d casts", q.shapeCalls)
	}
}

func TestCollideAndSlideFreeSpace(t *testing.T) {
	cfg := config.Default()
	q := &scriptedQuery{}
	dt := float32(0.016)
	move := rl.Vector3Scale(rl.Vector3{X: 5}, dt)

	pos, vel, res := CollideAndSlide(rl.Vector3{}, move, q, cfg, nil)

	if !nearVec(pos, rl.Vector3{X: 0.08}) {
		t.Errorf("Expected (0.08,0,0), got %v", pos)
	}
	if !nearVec(rl.Vector3Scale(vel, 1/dt), rl.Vector3{X: 5}) {
		t.Errorf("Expected velocity 5 along X, got %v", rl.Vector3Scale(vel, 1/dt))
	}
	if res.Hit {
		t.Error("free space should not report a hit")
	}
}

func TestCollideAndSlideCastsFromCapsuleCenter(t *testing.T) {
	cfg := config.Default()
	var origin rl.Vector3
	q := &scriptedQuery{shape: func(o, _ rl.Vector3, maxDist float32) (engine.QueryHit, bool) {
		origin = o
		if !near(maxDist, 1+cfg.Collision.Margin) {
			t.Errorf("Expected cast length movement+margin, got %f", maxDist)
		}
		return engine.QueryHit{}, false
	}}

	CollideAndSlide(rl.Vector3{Y: 2}, rl.Vector3{Z: 1}, q, cfg, nil)

	if !nearVec(origin, rl.Vector3{Y: 2.9}) {
		t.Errorf("Expected cast origin half the capsule above the feet, got %v", origin)
	}
}

func TestClassifySurface(t *testing.T) {
	cfg := config.Default()
	cases := []struct {
		deg  float64
		want SurfaceType
	}{
		{0, Walkable},
		{30, Walkable},
		{44.9, Walkable},
		{45, Walkable},
		{50, Slideable},
		{59.9, Slideable},
		{60, Slideable},
		{90, Wall},
		{120, Wall},
		{170, Ceiling},
		{180, Ceiling},
	}
	for _, tc := range cases {
		if got := ClassifySurface(normalAt(tc.deg), cfg); got != tc.want {
			t.Errorf("%.1f deg: expected %s, got %s", tc.deg, tc.want, got)
		}
	}
}

func TestClassifyFollowsConfig(t *testing.T) {
	cfg := config.Realistic()
	if got := ClassifySurface(normalAt(40), cfg); got != Slideable {
		t.Errorf("40 deg should be slideable with a 30 deg walkable limit, got %s", got)
	}
}

func TestGroundedRequiresWalkableSurface(t *testing.T) {
	cfg := config.Default()
	steep := normalAt(70)
	q := &scriptedQuery{ray: func(o, d rl.Vector3, maxDist float32) (engine.QueryHit, bool) {
		return engine.QueryHit{Normal: steep, Distance: 0.03, Point: rl.Vector3Add(o, rl.Vector3Scale(d, 0.03))}, true
	}}

	grounded, res := IsGrounded(rl.Vector3{}, q, cfg, nil)

	if grounded {
		t.Error("a close hit on a 70 degree surface must not ground the character")
	}
	if !res.Hit || res.IsWalkable {
		t.Errorf("Expected a non-walkable hit in the result, got %+v", res)
	}
}

func TestGroundedDistanceLimits(t *testing.T) {
	cfg := config.Default()
	var probeLen float32
	dist := float32(0)
	q := &scriptedQuery{ray: func(o, d rl.Vector3, maxDist float32) (engine.QueryHit, bool) {
		probeLen = maxDist
		if dist > maxDist {
			return engine.QueryHit{}, false
		}
		return engine.QueryHit{Normal: engine.Up, Distance: dist}, true
	}}

	dist = 0.94
	if ok, _ := IsGrounded(rl.Vector3{}, q, cfg, nil); !ok {
		t.Error("hit within half height + 0.05 should ground")
	}
	if !near(probeLen, 1.0) {
		t.Errorf("Expected probe length 1.0, got %f", probeLen)
	}
	dist = 0.97
	if ok, res := IsGrounded(rl.Vector3{}, q, cfg, nil); ok || !res.Hit {
		t.Errorf("hit past the tolerance should be reported but not ground, got %v %+v", ok, res)
	}
	dist = 2
	if ok, res := IsGrounded(rl.Vector3{}, q, cfg, nil); ok || res.Hit {
		t.Error("miss should report no hit")
	}
}

func TestSlideableContactSlidesAlongPlane(t *testing.T) {
	cfg := config.Default()
	n := rl.Vector3{Y: float32(math.Cos(50 * math.Pi / 180)), Z: float32(math.Sin(50 * math.Pi / 180))}
	if ClassifySurface(n, cfg) != Slideable {
		t.Fatal("50 degree normal should be slideable")
	}
	first := true
	q := &scriptedQuery{shape: func(o, d rl.Vector3, maxDist float32) (engine.QueryHit, bool) {
		if first {
			first = false
			return engine.QueryHit{Normal: n, Distance: 0.02}, true
		}
		return engine.QueryHit{}, false
	}}

	_, _, res := CollideAndSlide(rl.Vector3{}, rl.Vector3{Z: -0.5}, q, cfg, nil)

	if !res.Hit || res.IsWalkable {
		t.Fatalf("Expected a non-walkable hit, got %+v", res)
	}
	if d := rl.Vector3DotProduct(res.SlideVector, n); !near(d, 0) {
		t.Errorf("slide vector should lie in the plane, normal component %f", d)
	}
	if res.SlideVector.Y >= 0 {
		t.Errorf("slide should head downhill, got %v", res.SlideVector)
	}
	want := 0.5 * cfg.Slopes.SlideFriction
	if !near(rl.Vector3Length(res.SlideVector), want) {
		t.Errorf("Expected slide length %f, got %f", want, rl.Vector3Length(res.SlideVector))
	}
}

func TestWallBlocksNormalComponent(t *testing.T) {
	cfg := config.Default()
	wall := rl.Vector3{X: -1}
	q := &scriptedQuery{shape: func(o, d rl.Vector3, maxDist float32) (engine.QueryHit, bool) {
		if d.X > 1e-4 {
			return engine.QueryHit{Normal: wall, Distance: 0}, true
		}
		return engine.QueryHit{}, false
	}}

	pos, _, res := CollideAndSlide(rl.Vector3{}, rl.Vector3{X: 1, Z: 0.5}, q, cfg, nil)

	if !near(pos.X, 0) {
		t.Errorf("wall should stop X movement, got %f", pos.X)
	}
	if pos.Z <= 0 {
		t.Errorf("movement along the wall should survive, got %v", pos)
	}
	if !nearVec(pos, rl.Vector3{Z: 0.5 * cfg.Collision.SlideDecay}) {
		t.Errorf("Expected decayed tangent movement, got %v", pos)
	}
	if !res.Hit || res.IsWalkable {
		t.Errorf("Expected wall contact, got %+v", res)
	}

	_, _, res = CollideAndSlide(rl.Vector3{}, rl.Vector3{X: 1}, q, cfg, nil)
	if rl.Vector3Length(res.SlideVector) > 1e-5 {
		t.Errorf("head-on wall hit should leave nothing to slide, got %v", res.SlideVector)
	}
}

func TestConcaveCornerRespectsIterationCap(t *testing.T) {
	cfg := config.Default()
	// two walls meeting in a V that keeps deflecting the movement
	left := rl.Vector3Normalize(rl.Vector3{X: -1, Z: 0.3})
	right := rl.Vector3Normalize(rl.Vector3{X: -1, Z: -0.3})
	q := &scriptedQuery{}
	q.shape = func(o, d rl.Vector3, maxDist float32) (engine.QueryHit, bool) {
		n := left
		if q.shapeCalls%2 == 0 {
			n = right
		}
		return engine.QueryHit{Normal: n, Distance: 0.01}, true
	}

	for _, iters := range []int{1, 4, 9} {
		cfg.Collision.MaxIterations = iters
		q.shapeCalls = 0
		CollideAndSlide(rl.Vector3{}, rl.Vector3{X: 2, Z: 0.1}, q, cfg, nil)
		if q.shapeCalls > iters {
			t.Errorf("MaxIterations=%d: made %d casts", iters, q.shapeCalls)
		}
	}
}

func TestSlopeSpeedModifier(t *testing.T) {
	cfg := config.Default()
	// ground descends toward +Z
	n := normalAt(20)
	if got := SlopeSpeedModifier(n, rl.Vector3{Z: 1}, cfg); got != cfg.Slopes.DownhillMultiplier {
		t.Errorf("heading downhill: expected %f, got %f", cfg.Slopes.DownhillMultiplier, got)
	}
	if got := SlopeSpeedModifier(n, rl.Vector3{Z: -1}, cfg); got != cfg.Slopes.UphillMultiplier {
		t.Errorf("heading uphill: expected %f, got %f", cfg.Slopes.UphillMultiplier, got)
	}
	if got := SlopeSpeedModifier(n, rl.Vector3{X: 1}, cfg); got != 1 {
		t.Errorf("across the slope: expected 1, got %f", got)
	}
	if got := SlopeSpeedModifier(engine.Up, rl.Vector3{Z: 1}, cfg); got != 1 {
		t.Errorf("flat ground: expected 1, got %f", got)
	}
	if got := SlopeSpeedModifier(n, rl.Vector3{}, cfg); got != 1 {
		t.Errorf("no movement: expected 1, got %f", got)
	}
}

func TestMathGuards(t *testing.T) {
	if SafeNormalize(rl.Vector3{}) != (rl.Vector3{}) {
		t.Error("zero vector should normalize to zero")
	}
	if SlideDirection(engine.Up) != (rl.Vector3{}) {
		t.Error("flat ground has no slide direction")
	}
	if got := SmoothNormalTransition(engine.Up, rl.Vector3{Y: -1}, 0.5); got != engine.Up {
		t.Errorf("opposite normals should keep the source, got %v", got)
	}
	mid := SmoothNormalTransition(engine.Up, rl.Vector3{X: 1}, 0.5)
	if !near(rl.Vector3Length(mid), 1) || !near(mid.X, mid.Y) {
		t.Errorf("Expected unit halfway normal, got %v", mid)
	}
	if !NormalsSimilar(engine.Up, normalAt(5), 0.01) || NormalsSimilar(engine.Up, normalAt(30), 0.01) {
		t.Error("NormalsSimilar tolerance not applied")
	}
	if a := AngleBetween(engine.Up, rl.Vector3{X: 1}); !near(a, math.Pi/2) {
		t.Errorf("Expected pi/2, got %f", a)
	}
	v := ProjectOnPlane(rl.Vector3{X: 1, Y: 1}, engine.Up)
	if !nearVec(v, rl.Vector3{X: 1}) {
		t.Errorf("Expected (1,0,0), got %v", v)
	}
}

func TestStepUpDisabled(t *testing.T) {
	cfg := config.Default()
	cfg.StepUp.Enabled = false
	q := &scriptedQuery{}
	if _, ok := AttemptStepUp(rl.Vector3{}, rl.Vector3{X: 1}, q, cfg, nil); ok {
		t.Error("disabled step-up should never succeed")
	}
	if q.rayCalls != 0 {
		t.Errorf("disabled step-up should not cast, got %d", q.rayCalls)
	}
}

func TestStepUpNeedsObstacle(t *testing.T) {
	cfg := config.Default()
	q := &scriptedQuery{}
	if _, ok := AttemptStepUp(rl.Vector3{}, rl.Vector3{X: 1}, q, cfg, nil); ok {
		t.Error("no obstacle means no step")
	}
	if q.rayCalls != 1 {
		t.Errorf("should stop after the forward ray, got %d casts", q.rayCalls)
	}
}
