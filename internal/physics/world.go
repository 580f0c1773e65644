package physics

import (
	"log"
	"math"
	"time"

	"movecore/internal/components"
	"movecore/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Spatial grid cell size - colliders are bucketed by the cells their bounds cover
const CellSize = 5.0

// maxCellsPerCollider sends huge colliders (terrain) to an always-tested list
// instead of flooding the grid.
const maxCellsPerCollider = 512

// Cell key for spatial hashing
type CellKey struct {
	X, Y, Z int
}

func posToCell(pos rl.Vector3) CellKey {
	return CellKey{
		X: int(math.Floor(float64(pos.X / CellSize))),
		Y: int(math.Floor(float64(pos.Y / CellSize))),
		Z: int(math.Floor(float64(pos.Z / CellSize))),
	}
}

type colliderKind int

const (
	kindBox colliderKind = iota
	kindSphere
	kindMesh
)

// entry is one static collider with its cached world shape.
type entry struct {
	obj    *engine.GameObject
	kind   colliderKind
	bounds components.AABB
	obb    OBB
	center rl.Vector3
	radius float32
	mesh   *components.MeshCollider
	stamp  uint32
}

// Stats counts queries since the world was built.
type Stats struct {
	RayCasts   uint64
	ShapeCasts uint64
	Candidates uint64
}

// World is the static collision scene the character controller queries.
// Colliders are snapshotted by Rebuild; moving an object afterwards needs
// another Rebuild.
type World struct {
	Statics []*engine.GameObject
	entries []entry
	grid    map[CellKey][]int
	large   []int
	stamp   uint32
	scratch []int
	tris    []int
	stats   Stats

	lastLogTime time.Time
}

func NewWorld() *World {
	return &World{
		Statics: make([]*engine.GameObject, 0),
		grid:    make(map[CellKey][]int),
	}
}

// AddStatic registers an object carrying box, sphere or mesh colliders.
func (w *World) AddStatic(g *engine.GameObject) {
	w.Statics = append(w.Statics, g)
}

// AddScene registers every object in the scene that has a collider.
func (w *World) AddScene(s *engine.Scene) {
	for _, g := range s.GameObjects {
		if hasCollider(g) {
			w.AddStatic(g)
		}
	}
}

func hasCollider(g *engine.GameObject) bool {
	return engine.GetComponent[*components.BoxCollider](g) != nil ||
		engine.GetComponent[*components.SphereCollider](g) != nil ||
		engine.GetComponent[*components.MeshCollider](g) != nil
}

// Rebuild snapshots collider shapes and repopulates the grid.
func (w *World) Rebuild() {
	w.entries = w.entries[:0]
	w.large = w.large[:0]
	for k := range w.grid {
		delete(w.grid, k)
	}

	for _, g := range w.Statics {
		if box := engine.GetComponent[*components.BoxCollider](g); box != nil {
			w.insert(entry{obj: g, kind: kindBox, obb: OBBFromBox(box), bounds: box.Bounds()})
		}
		if sphere := engine.GetComponent[*components.SphereCollider](g); sphere != nil {
			w.insert(entry{obj: g, kind: kindSphere, center: sphere.GetCenter(), radius: sphere.WorldRadius(), bounds: sphere.Bounds()})
		}
		if mesh := engine.GetComponent[*components.MeshCollider](g); mesh != nil && mesh.Built() {
			w.insert(entry{obj: g, kind: kindMesh, mesh: mesh, bounds: mesh.Bounds()})
		}
	}
	w.stats = Stats{}
	log.Printf("Physics: %d colliders from %d objects (%d cells, %d large)", len(w.entries), len(w.Statics), len(w.grid), len(w.large))
}

func (w *World) insert(e entry) {
	idx := len(w.entries)
	w.entries = append(w.entries, e)

	lo, hi := posToCell(e.bounds.Min), posToCell(e.bounds.Max)
	cells := (hi.X - lo.X + 1) * (hi.Y - lo.Y + 1) * (hi.Z - lo.Z + 1)
	if cells > maxCellsPerCollider {
		w.large = append(w.large, idx)
		return
	}
	for x := lo.X; x <= hi.X; x++ {
		for y := lo.Y; y <= hi.Y; y++ {
			for z := lo.Z; z <= hi.Z; z++ {
				key := CellKey{x, y, z}
				w.grid[key] = append(w.grid[key], idx)
			}
		}
	}
}

// candidates returns entries whose bounds overlap box, each once.
func (w *World) candidates(box components.AABB, filter engine.QueryFilter) []int {
	w.stamp++
	out := w.scratch[:0]
	visit := func(idx int) {
		e := &w.entries[idx]
		if e.stamp == w.stamp {
			return
		}
		e.stamp = w.stamp
		if filter.Excludes(e.obj.UID) || !e.obj.Active || !e.bounds.Intersects(box) {
			return
		}
		out = append(out, idx)
	}

	for _, idx := range w.large {
		visit(idx)
	}
	lo, hi := posToCell(box.Min), posToCell(box.Max)
	cells := (hi.X - lo.X + 1) * (hi.Y - lo.Y + 1) * (hi.Z - lo.Z + 1)
	if cells > maxCellsPerCollider {
		for idx := range w.entries {
			visit(idx)
		}
	} else {
		for x := lo.X; x <= hi.X; x++ {
			for y := lo.Y; y <= hi.Y; y++ {
				for z := lo.Z; z <= hi.Z; z++ {
					for _, idx := range w.grid[CellKey{x, y, z}] {
						visit(idx)
					}
				}
			}
		}
	}
	w.scratch = out
	w.stats.Candidates += uint64(len(out))
	return out
}

// CastRay returns the nearest hit along a normalized direction.
func (w *World) CastRay(origin, direction rl.Vector3, maxDistance float32, filter engine.QueryFilter) (engine.QueryHit, bool) {
	w.stats.RayCasts++
	if maxDistance <= 0 {
		return engine.QueryHit{}, false
	}
	end := rl.Vector3Add(origin, rl.Vector3Scale(direction, maxDistance))
	box := components.EmptyAABB().Extend(origin).Extend(end)

	var best engine.QueryHit
	found := false
	for _, idx := range w.candidates(box, filter) {
		e := &w.entries[idx]
		var h engine.QueryHit
		var ok bool
		switch e.kind {
		case kindBox:
			h, ok = raycastOBB(e.obb, origin, direction, maxDistance)
		case kindSphere:
			h, ok = raycastSphere(e.center, e.radius, origin, direction, maxDistance)
		case kindMesh:
			h, ok = raycastMesh(e.mesh, origin, direction, maxDistance, w.tris)
		}
		if ok && (!found || h.Distance < best.Distance) {
			h.GameObject = e.obj
			best, found = h, true
		}
	}
	return best, found
}

// CastShape sweeps an upright capsule centered on origin.
func (w *World) CastShape(shape engine.Capsule, origin, direction rl.Vector3, maxDistance float32, filter engine.QueryFilter) (engine.QueryHit, bool) {
	w.stats.ShapeCasts++
	if maxDistance <= 0 {
		return engine.QueryHit{}, false
	}

	var best engine.QueryHit
	found := false
	for _, idx := range w.candidates(sweepBounds(shape, origin, direction, maxDistance), filter) {
		e := &w.entries[idx]
		var h engine.QueryHit
		var ok bool
		switch e.kind {
		case kindBox:
			h, ok = sweepOBB(e.obb, shape, origin, direction, maxDistance)
		case kindSphere:
			h, ok = sweepSphere(e.center, e.radius, shape, origin, direction, maxDistance)
		case kindMesh:
			h, ok = sweepMesh(e.mesh, shape, origin, direction, maxDistance, w.tris)
		}
		if ok && (!found || h.Distance < best.Distance) {
			h.GameObject = e.obj
			best, found = h, true
		}
	}
	w.logStats()
	return best, found
}

// Stats returns the query counters.
func (w *World) Stats() Stats {
	return w.stats
}

func (w *World) logStats() {
	if time.Since(w.lastLogTime) < 10*time.Second {
		return
	}
	if !w.lastLogTime.IsZero() {
		log.Printf("Physics: %d shape casts, %d ray casts, %.1f candidates/query",
			w.stats.ShapeCasts, w.stats.RayCasts,
			float64(w.stats.Candidates)/float64(max(w.stats.ShapeCasts+w.stats.RayCasts, 1)))
	}
	w.lastLogTime = time.Now()
}
