package world

import (
	"unsafe"

	"movecore/internal/components"
	"movecore/internal/engine"
	"movecore/internal/terrain"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Renderer draws the level with raylib's default shading and skips objects
// outside the view.
type Renderer struct {
	Background rl.Color
	ShowGrid   bool

	// Drawn and Culled count objects of the last frame.
	Drawn, Culled int

	models []*components.ModelRenderer
}

func NewRenderer() *Renderer {
	return &Renderer{
		Background: rl.NewColor(135, 170, 200, 255),
		ShowGrid:   true,
	}
}

// Load creates GPU models for every collider in the world. Needs a GL
// context.
func (r *Renderer) Load(w *World) {
	for _, g := range w.Scene.GameObjects {
		color, ok := w.colors[g.UID]
		if !ok {
			continue
		}
		var model rl.Model
		switch {
		case engine.GetComponent[*components.BoxCollider](g) != nil:
			size := engine.GetComponent[*components.BoxCollider](g).Size
			model = rl.LoadModelFromMesh(rl.GenMeshCube(size.X, size.Y, size.Z))
		case engine.GetComponent[*components.SphereCollider](g) != nil:
			radius := engine.GetComponent[*components.SphereCollider](g).Radius
			model = rl.LoadModelFromMesh(rl.GenMeshSphere(radius, 16, 16))
		case w.Terrain != nil && g.HasTag("terrain"):
			model = rl.LoadModelFromMesh(terrainMesh(w.Terrain))
		default:
			continue
		}
		mr := components.NewModelRenderer(model, color)
		mr.Wires = g.HasTag("terrain")
		g.AddComponent(mr)
		r.models = append(r.models, mr)
	}
}

// terrainMesh copies the heightfield triangles into raylib-owned buffers so
// UnloadModel can free them.
func terrainMesh(h *terrain.Heightfield) rl.Mesh {
	tris := h.Triangles()
	n := len(tris) * 3
	mesh := rl.Mesh{
		VertexCount:   int32(n),
		TriangleCount: int32(len(tris)),
		Vertices:      (*float32)(rl.MemAlloc(uint32(n * 3 * 4))),
		Normals:       (*float32)(rl.MemAlloc(uint32(n * 3 * 4))),
	}
	verts := unsafe.Slice(mesh.Vertices, n*3)
	norms := unsafe.Slice(mesh.Normals, n*3)
	for i, t := range tris {
		// raylib expects counter-clockwise seen from the front
		for j, v := range [3]rl.Vector3{t.V0, t.V1, t.V2} {
			k := (i*3 + j) * 3
			verts[k], verts[k+1], verts[k+2] = v.X, v.Y, v.Z
			norms[k], norms[k+1], norms[k+2] = t.Normal.X, t.Normal.Y, t.Normal.Z
		}
	}
	rl.UploadMesh(&mesh, false)
	return mesh
}

// Draw renders the world between BeginMode3D and EndMode3D.
func (r *Renderer) Draw(camera rl.Camera3D, aspect float32, objects []*engine.GameObject) {
	frustum := ExtractFrustum(camera, aspect)
	r.Drawn, r.Culled = 0, 0

	if r.ShowGrid {
		rl.DrawGrid(40, 1)
	}
	for _, g := range objects {
		if bounds, ok := colliderBounds(g); ok && !frustum.ContainsAABB(bounds) {
			r.Culled++
			continue
		}
		drawn := false
		if mr := engine.GetComponent[*components.ModelRenderer](g); mr != nil {
			mr.Draw()
			drawn = true
		}
		if mr := engine.GetComponent[*components.CapsuleRenderer](g); mr != nil {
			mr.Draw()
			drawn = true
		}
		if drawn {
			r.Drawn++
		}
	}
}

func colliderBounds(g *engine.GameObject) (components.AABB, bool) {
	if b := engine.GetComponent[*components.BoxCollider](g); b != nil {
		return b.Bounds(), true
	}
	if s := engine.GetComponent[*components.SphereCollider](g); s != nil {
		return s.Bounds(), true
	}
	if m := engine.GetComponent[*components.MeshCollider](g); m != nil && m.Built() {
		return m.Bounds(), true
	}
	return components.AABB{}, false
}

func (r *Renderer) Unload() {
	for _, mr := range r.models {
		mr.Unload()
	}
	r.models = nil
}
