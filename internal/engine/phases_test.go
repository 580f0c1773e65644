package engine

import (
	"math"
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type recorder struct {
	BaseComponent
	name string
	log  *[]string
}

func (r *recorder) Update(dt float32)     { *r.log = append(*r.log, r.name+".update") }
func (r *recorder) LateUpdate(dt float32) { *r.log = append(*r.log, r.name+".late") }

func TestSceneTickRunsLateUpdateAfterAllUpdates(t *testing.T) {
	var log []string
	scene := NewScene("Test")
	a := NewGameObject("A")
	a.AddComponent(&recorder{name: "a", log: &log})
	b := NewGameObject("B")
	b.AddComponent(&recorder{name: "b", log: &log})
	scene.AddGameObject(a)
	scene.AddGameObject(b)

	scene.Tick(0.016)

	want := []string{"a.update", "b.update", "a.late", "b.late"}
	if len(log) != len(want) {
		t.Fatalf("Expected %d calls, got %v", len(want), log)
	}
	for i := range want {
		if log[i] != want[i] {
			t.Errorf("call %d: expected %s, got %s", i, want[i], log[i])
		}
	}
}

func TestInactiveObjectSkipsBothPhases(t *testing.T) {
	var log []string
	obj := NewGameObject("A")
	obj.AddComponent(&recorder{name: "a", log: &log})
	obj.Active = false

	obj.Update(0.016)
	obj.LateUpdate(0.016)

	if len(log) != 0 {
		t.Errorf("inactive object should not run components, got %v", log)
	}
}

func TestSelfAndDescendantUIDs(t *testing.T) {
	root := NewGameObject("Player")
	hitbox := NewGameObject("Hitbox")
	weapon := NewGameObject("Weapon")
	root.AddChild(hitbox)
	hitbox.AddChild(weapon)

	ids := root.SelfAndDescendantUIDs()
	if len(ids) != 3 {
		t.Fatalf("Expected 3 ids, got %d", len(ids))
	}
	filter := QueryFilter{ExcludedIDs: ids}
	for _, g := range []*GameObject{root, hitbox, weapon} {
		if !filter.Excludes(g.UID) {
			t.Errorf("filter should exclude %s", g.Name)
		}
	}
	if filter.Excludes(NewGameObject("Other").UID) {
		t.Error("filter should not exclude unrelated objects")
	}
}

func TestChildWorldPositionFollowsParentRotation(t *testing.T) {
	parent := NewGameObject("Parent")
	parent.Transform.Position = Vec3{X: 1}
	parent.Transform.Rotation = rl.QuaternionFromAxisAngle(Up, math.Pi/2)
	child := NewGameObject("Child")
	child.Transform.Position = Vec3{Z: 1}
	parent.AddChild(child)

	wp := child.WorldPosition()
	if math.Abs(float64(wp.X-2)) > 1e-4 || math.Abs(float64(wp.Z)) > 1e-4 {
		t.Errorf("Expected (2,0,0), got %v", wp)
	}
}

func TestCapsuleHalfSegment(t *testing.T) {
	if got := (Capsule{Radius: 0.4, Height: 1.8}).HalfSegment(); math.Abs(float64(got)-0.5) > 1e-6 {
		t.Errorf("Expected 0.5, got %f", got)
	}
	if got := (Capsule{Radius: 1, Height: 1}).HalfSegment(); got != 0 {
		t.Errorf("sphere-like capsule should have zero segment, got %f", got)
	}
}
