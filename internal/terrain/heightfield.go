// Package terrain generates the rolling ground around the playground. The
// character controller never reads it; it only sees the triangles through a
// MeshCollider.
package terrain

import (
	"math"
	"math/rand/v2"

	"movecore/internal/components"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Settings describe a square heightfield centred on the origin.
type Settings struct {
	Size       float32 `yaml:"size"`       // world units per side
	Resolution int     `yaml:"resolution"` // vertices per side
	MaxHeight  float32 `yaml:"max_height"`
	NoiseScale float32 `yaml:"noise_scale"`
	Seed       uint64  `yaml:"seed"`
	// Inside FlatRadius the ground is exactly y=0; heights fade in over
	// FlatFalloff beyond it.
	FlatRadius  float32 `yaml:"flat_radius"`
	FlatFalloff float32 `yaml:"flat_falloff"`
}

func DefaultSettings() Settings {
	return Settings{
		Size:        200,
		Resolution:  64,
		MaxHeight:   20,
		NoiseScale:  0.05,
		Seed:        42,
		FlatRadius:  30,
		FlatFalloff: 20,
	}
}

type octave struct {
	freq, amp      float32
	phaseX, phaseZ float32
}

// Heightfield is a regular grid of heights. Cells are split along the same
// diagonal everywhere so HeightAt agrees exactly with Triangles.
type Heightfield struct {
	Settings
	heights []float32
	octaves []octave
}

func New(s Settings) *Heightfield {
	if s.Resolution < 2 {
		s.Resolution = 2
	}
	h := &Heightfield{Settings: s}
	rng := rand.New(rand.NewPCG(s.Seed, s.Seed^0x9e3779b97f4a7c15))
	// large hills, medium detail, fine detail
	for i, amp := range []float32{0.7, 0.2, 0.1} {
		h.octaves = append(h.octaves, octave{
			freq:   s.NoiseScale * float32(int(1)<<i),
			amp:    amp,
			phaseX: rng.Float32() * 2 * math.Pi,
			phaseZ: rng.Float32() * 2 * math.Pi,
		})
	}

	n := s.Resolution
	h.heights = make([]float32, n*n)
	for z := range n {
		for x := range n {
			wx, wz := h.vertexXZ(x, z)
			h.heights[z*n+x] = h.sample(wx, wz)
		}
	}
	return h
}

// sample evaluates the height function itself, not the grid.
func (h *Heightfield) sample(x, z float32) float32 {
	var sum float32
	for _, o := range h.octaves {
		sx := math.Sin(float64(x*o.freq + o.phaseX))
		cz := math.Cos(float64(z*o.freq + o.phaseZ))
		sum += float32(sx*cz) * o.amp
	}
	return sum * h.MaxHeight * h.flatten(x, z)
}

func (h *Heightfield) flatten(x, z float32) float32 {
	d := float32(math.Hypot(float64(x), float64(z)))
	if d <= h.FlatRadius {
		return 0
	}
	if h.FlatFalloff <= 0 || d >= h.FlatRadius+h.FlatFalloff {
		return 1
	}
	t := (d - h.FlatRadius) / h.FlatFalloff
	return t * t * (3 - 2*t)
}

func (h *Heightfield) step() float32 {
	return h.Size / float32(h.Resolution-1)
}

func (h *Heightfield) vertexXZ(x, z int) (float32, float32) {
	st := h.step()
	return float32(x)*st - h.Size/2, float32(z)*st - h.Size/2
}

func (h *Heightfield) vertex(x, z int) rl.Vector3 {
	wx, wz := h.vertexXZ(x, z)
	return rl.Vector3{X: wx, Y: h.heights[z*h.Resolution+x], Z: wz}
}

// Contains reports whether (x, z) lies over the grid.
func (h *Heightfield) Contains(x, z float32) bool {
	half := h.Size / 2
	return x >= -half && x <= half && z >= -half && z <= half
}

// cell returns the cell indices and the position inside the cell in [0,1].
func (h *Heightfield) cell(x, z float32) (int, int, float32, float32) {
	st := h.step()
	fx := (x + h.Size/2) / st
	fz := (z + h.Size/2) / st
	last := float32(h.Resolution - 2)
	cx := int(math.Floor(float64(rl.Clamp(fx, 0, last))))
	cz := int(math.Floor(float64(rl.Clamp(fz, 0, last))))
	return cx, cz, rl.Clamp(fx-float32(cx), 0, 1), rl.Clamp(fz-float32(cz), 0, 1)
}

// HeightAt returns the surface height under (x, z) on the triangulated
// grid. Points outside are clamped to the border.
func (h *Heightfield) HeightAt(x, z float32) float32 {
	cx, cz, u, v := h.cell(x, z)
	n := h.Resolution
	h00 := h.heights[cz*n+cx]
	h10 := h.heights[cz*n+cx+1]
	h01 := h.heights[(cz+1)*n+cx]
	h11 := h.heights[(cz+1)*n+cx+1]
	// split along the (0,0)-(1,1) diagonal
	if u >= v {
		return h00 + (h10-h00)*u + (h11-h10)*v
	}
	return h00 + (h11-h01)*u + (h01-h00)*v
}

// NormalAt returns the up-facing normal of the triangle under (x, z).
func (h *Heightfield) NormalAt(x, z float32) rl.Vector3 {
	cx, cz, u, v := h.cell(x, z)
	p00, p10 := h.vertex(cx, cz), h.vertex(cx+1, cz)
	p01, p11 := h.vertex(cx, cz+1), h.vertex(cx+1, cz+1)
	if u >= v {
		return components.NewTriangle(p00, p11, p10).Normal
	}
	return components.NewTriangle(p00, p01, p11).Normal
}

// Triangles returns the surface in world space with up-facing winding.
func (h *Heightfield) Triangles() []components.Triangle {
	n := h.Resolution
	tris := make([]components.Triangle, 0, (n-1)*(n-1)*2)
	for z := range n - 1 {
		for x := range n - 1 {
			p00, p10 := h.vertex(x, z), h.vertex(x+1, z)
			p01, p11 := h.vertex(x, z+1), h.vertex(x+1, z+1)
			tris = append(tris,
				components.NewTriangle(p00, p11, p10),
				components.NewTriangle(p00, p01, p11),
			)
		}
	}
	return tris
}

// Collider builds a MeshCollider over the whole surface.
func (h *Heightfield) Collider() *components.MeshCollider {
	mc := components.NewMeshCollider()
	mc.Build(h.Triangles())
	return mc
}
