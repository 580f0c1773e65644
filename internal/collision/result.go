package collision

import (
	"movecore/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Result is the outcome of one collision query. It is rebuilt by every call
// and never carried across ticks.
type Result struct {
	Hit         bool
	Normal      rl.Vector3
	Distance    float32
	Point       rl.Vector3
	SlideVector rl.Vector3
	IsWalkable  bool
}

// DefaultResult is the "nothing touched" value: no hit, normal straight up,
// and IsWalkable true. Code that reads IsWalkable without checking Hit
// therefore treats open space as standable floor.
func DefaultResult() Result {
	return Result{Normal: engine.Up, IsWalkable: true}
}
