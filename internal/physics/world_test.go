package physics

import (
	"math"
	"testing"

	"movecore/internal/components"
	"movecore/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

var (
	down    = rl.Vector3{Y: -1}
	up      = rl.Vector3{Y: 1}
	right   = rl.Vector3{X: 1}
	capsule = engine.Capsule{Radius: 0.4, Height: 1.8}
)

func near(a, b float32) bool { return math.Abs(float64(a-b)) < 2e-3 }

func nearVec(a, b rl.Vector3) bool {
	return near(a.X, b.X) && near(a.Y, b.Y) && near(a.Z, b.Z)
}

func addBox(w *World, name string, center, size rl.Vector3) *engine.GameObject {
	g := engine.NewGameObject(name)
	g.Transform.Position = center
	g.AddComponent(components.NewBoxCollider(size))
	w.AddStatic(g)
	return g
}

// floorWorld has a 20x1x20 floor whose top face is y=0.
func floorWorld() (*World, *engine.GameObject) {
	w := NewWorld()
	floor := addBox(w, "Floor", rl.Vector3{Y: -0.5}, rl.Vector3{X: 20, Y: 1, Z: 20})
	w.Rebuild()
	return w, floor
}

func TestRaycastBoxTopFace(t *testing.T) {
	w, floor := floorWorld()

	hit, ok := w.CastRay(rl.Vector3{Y: 2}, down, 5, engine.QueryFilter{})
	if !ok {
		t.Fatal("Expected ray to hit the floor")
	}
	if !near(hit.Distance, 2) {
		t.Errorf("Expected distance 2, got %f", hit.Distance)
	}
	if !nearVec(hit.Normal, up) {
		t.Errorf("Expected up normal, got %v", hit.Normal)
	}
	if hit.GameObject != floor {
		t.Error("hit should report the floor object")
	}
}

func TestRaycastRespectsMaxDistanceAndFilter(t *testing.T) {
	w, floor := floorWorld()

	if _, ok := w.CastRay(rl.Vector3{Y: 2}, down, 1.5, engine.QueryFilter{}); ok {
		t.Error("ray shorter than the gap should miss")
	}
	if _, ok := w.CastRay(rl.Vector3{Y: 2}, down, 5, engine.QueryFilter{ExcludedIDs: []uint64{floor.UID}}); ok {
		t.Error("excluded collider should not be hit")
	}
}

func TestRaycastFromInsideBoxReportsExitFace(t *testing.T) {
	w := NewWorld()
	addBox(w, "Step", rl.Vector3{X: 1, Y: 0.15}, rl.Vector3{X: 1, Y: 0.3, Z: 1})
	w.Rebuild()

	hit, ok := w.CastRay(rl.Vector3{X: 0.6, Y: 0.05}, up, 1, engine.QueryFilter{})
	if !ok {
		t.Fatal("ray from inside the box should hit its exit face")
	}
	if !near(hit.Distance, 0.25) {
		t.Errorf("Expected distance 0.25, got %f", hit.Distance)
	}
	if !nearVec(hit.Normal, up) {
		t.Errorf("Expected exit normal up, got %v", hit.Normal)
	}
}

func TestRaycastRotatedBox(t *testing.T) {
	w := NewWorld()
	g := addBox(w, "Ramp", rl.Vector3{}, rl.Vector3{X: 4, Y: 0.2, Z: 4})
	g.Transform.Rotation = rl.QuaternionFromAxisAngle(rl.Vector3{Z: 1}, 30*rl.Deg2rad)
	w.Rebuild()

	hit, ok := w.CastRay(rl.Vector3{Y: 3}, down, 5, engine.QueryFilter{})
	if !ok {
		t.Fatal("Expected to hit the ramp")
	}
	angle := math.Acos(float64(hit.Normal.Y)) * 180 / math.Pi
	if math.Abs(angle-30) > 0.1 {
		t.Errorf("Expected 30 degree normal, got %f", angle)
	}
}

func TestRaycastSphereAndMesh(t *testing.T) {
	w := NewWorld()
	ball := engine.NewGameObject("Ball")
	ball.Transform.Position = rl.Vector3{X: 5}
	ball.AddComponent(components.NewSphereCollider(1))
	w.AddStatic(ball)

	ground := engine.NewGameObject("Ground")
	mesh := components.NewMeshCollider()
	ground.AddComponent(mesh)
	mesh.Build([]components.Triangle{
		components.NewTriangle(rl.Vector3{X: -10, Z: -10}, rl.Vector3{X: -10, Z: 10}, rl.Vector3{X: 10, Z: 10}),
		components.NewTriangle(rl.Vector3{X: -10, Z: -10}, rl.Vector3{X: 10, Z: 10}, rl.Vector3{X: 10, Z: -10}),
	})
	w.AddStatic(ground)
	w.Rebuild()

	hit, ok := w.CastRay(rl.Vector3{Y: 0.5}, right, 10, engine.QueryFilter{})
	if !ok || hit.GameObject != ball {
		t.Fatalf("Expected to hit the ball, got %v %v", ok, hit.GameObject)
	}
	if !near(hit.Distance, 5-float32(math.Sqrt(0.75))) {
		t.Errorf("unexpected sphere distance %f", hit.Distance)
	}

	hit, ok = w.CastRay(rl.Vector3{X: 1, Y: 1, Z: 2}, down, 3, engine.QueryFilter{})
	if !ok || hit.GameObject != ground {
		t.Fatal("Expected to hit the ground mesh")
	}
	if !near(hit.Distance, 1) || !nearVec(hit.Normal, up) {
		t.Errorf("unexpected mesh hit %+v", hit)
	}

	// from below the normal flips to face the ray
	hit, ok = w.CastRay(rl.Vector3{X: 1, Y: -1, Z: 2}, up, 3, engine.QueryFilter{})
	if !ok || !nearVec(hit.Normal, down) {
		t.Errorf("underside hit should face down, got %+v", hit)
	}
}

func TestCastShapeOntoFloor(t *testing.T) {
	w, _ := floorWorld()

	// capsule bottom starts 1.0 above the floor
	hit, ok := w.CastShape(capsule, rl.Vector3{Y: 1.9}, down, 3, engine.QueryFilter{})
	if !ok {
		t.Fatal("Expected capsule to land on the floor")
	}
	if !near(hit.Distance, 1) {
		t.Errorf("Expected distance 1, got %f", hit.Distance)
	}
	if !nearVec(hit.Normal, up) {
		t.Errorf("Expected up normal, got %v", hit.Normal)
	}
}

func TestCastShapeIntoWall(t *testing.T) {
	w := NewWorld()
	addBox(w, "Wall", rl.Vector3{X: 3, Y: 1}, rl.Vector3{X: 1, Y: 4, Z: 10})
	w.Rebuild()

	hit, ok := w.CastShape(capsule, rl.Vector3{Y: 1}, right, 5, engine.QueryFilter{})
	if !ok {
		t.Fatal("Expected capsule to hit the wall")
	}
	// wall face at x=2.5, capsule radius 0.4
	if !near(hit.Distance, 2.1) {
		t.Errorf("Expected distance 2.1, got %f", hit.Distance)
	}
	if !nearVec(hit.Normal, rl.Vector3{X: -1}) {
		t.Errorf("Expected wall normal -X, got %v", hit.Normal)
	}
}

func TestCastShapeTangentAndSeparatingMiss(t *testing.T) {
	w, _ := floorWorld()

	// resting just above the floor and moving sideways
	origin := rl.Vector3{Y: 0.9 + 0.01}
	if _, ok := w.CastShape(capsule, origin, right, 2, engine.QueryFilter{}); ok {
		t.Error("sliding parallel to the floor should not hit it")
	}
	// touching and moving away
	origin = rl.Vector3{Y: 0.9 + 0.0005}
	if _, ok := w.CastShape(capsule, origin, up, 2, engine.QueryFilter{}); ok {
		t.Error("moving away from a touching surface should not hit")
	}
	// touching and pushing in hits at zero
	hit, ok := w.CastShape(capsule, origin, down, 2, engine.QueryFilter{})
	if !ok || hit.Distance > contactEpsilon {
		t.Errorf("pushing into a touching surface should hit at 0, got %v %f", ok, hit.Distance)
	}
}

func TestCastShapeAgainstMeshSlope(t *testing.T) {
	w := NewWorld()
	ground := engine.NewGameObject("Slope")
	mesh := components.NewMeshCollider()
	ground.AddComponent(mesh)
	// plane rising 1 in +X for every 1 in X (45 degrees)
	mesh.Build([]components.Triangle{
		components.NewTriangle(rl.Vector3{X: -5, Y: -5, Z: -5}, rl.Vector3{X: -5, Y: -5, Z: 5}, rl.Vector3{X: 5, Y: 5, Z: 5}),
		components.NewTriangle(rl.Vector3{X: -5, Y: -5, Z: -5}, rl.Vector3{X: 5, Y: 5, Z: 5}, rl.Vector3{X: 5, Y: 5, Z: -5}),
	})
	w.AddStatic(ground)
	w.Rebuild()

	hit, ok := w.CastShape(capsule, rl.Vector3{X: -2, Y: 2}, right, 10, engine.QueryFilter{})
	if !ok {
		t.Fatal("Expected to hit the slope")
	}
	want := rl.Vector3Normalize(rl.Vector3{X: -1, Y: 1})
	if !nearVec(hit.Normal, want) {
		t.Errorf("Expected slope normal %v, got %v", want, hit.Normal)
	}
	// the bottom cap touches the plane when its center is radius away
	bottom := rl.Vector3{X: -2 + hit.Distance, Y: 2 - 0.5}
	dist := rl.Vector3DotProduct(bottom, want)
	if !near(dist, 0.4) {
		t.Errorf("capsule should rest radius from the plane, got %f", dist)
	}
}

func TestGridFindsCollidersAcrossCells(t *testing.T) {
	w := NewWorld()
	for i := 0; i < 20; i++ {
		addBox(w, "Pillar", rl.Vector3{X: float32(i) * 7, Y: 1}, rl.Vector3{X: 1, Y: 2, Z: 1})
	}
	w.Rebuild()

	hit, ok := w.CastRay(rl.Vector3{X: 70, Y: 10}, down, 20, engine.QueryFilter{})
	if !ok || !near(hit.Distance, 8) {
		t.Errorf("Expected to hit pillar 10 top, got %v %+v", ok, hit)
	}
	if w.Stats().RayCasts != 1 {
		t.Errorf("Expected 1 ray cast counted, got %d", w.Stats().RayCasts)
	}
	if _, ok := w.CastRay(rl.Vector3{X: 73.5, Y: 10}, down, 20, engine.QueryFilter{}); ok {
		t.Error("ray between pillars should miss")
	}
}
