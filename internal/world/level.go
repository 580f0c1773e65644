package world

import (
	"fmt"
	"math"
	"os"

	"movecore/internal/components"
	"movecore/internal/engine"
	"movecore/internal/terrain"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gopkg.in/yaml.v3"
)

// --- YAML types ---

type Level struct {
	Name    string            `yaml:"name"`
	Spawn   [3]float32        `yaml:"spawn"`
	Terrain *terrain.Settings `yaml:"terrain,omitempty"`
	Objects []ObjectDef       `yaml:"objects"`
}

type ObjectDef struct {
	Name     string     `yaml:"name"`
	Tags     []string   `yaml:"tags,omitempty"`
	Position [3]float32 `yaml:"position"`
	Rotation [3]float32 `yaml:"rotation,omitempty"` // euler degrees
	Shape    string     `yaml:"shape"`              // box or sphere
	Size     [3]float32 `yaml:"size,omitempty"`
	Radius   float32    `yaml:"radius,omitempty"`
	Color    string     `yaml:"color,omitempty"`
}

// --- Color mapping ---

var colorByName = map[string]rl.Color{
	"Red":       rl.Red,
	"Blue":      rl.Blue,
	"Green":     rl.Green,
	"Purple":    rl.Purple,
	"Orange":    rl.Orange,
	"Yellow":    rl.Yellow,
	"Pink":      rl.Pink,
	"SkyBlue":   rl.SkyBlue,
	"Lime":      rl.Lime,
	"Magenta":   rl.Magenta,
	"White":     rl.White,
	"LightGray": rl.LightGray,
	"Gray":      rl.Gray,
	"DarkGray":  rl.DarkGray,
	"Brown":     rl.Brown,
	"Beige":     rl.Beige,
	"Maroon":    rl.Maroon,
	"Gold":      rl.Gold,
	"DarkGreen": rl.DarkGreen,
}

func lookupColor(name string) rl.Color {
	if c, ok := colorByName[name]; ok {
		return c
	}
	return rl.LightGray
}

// --- Loading ---

func LoadLevel(path string) (*Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("world: read level: %w", err)
	}
	lvl, err := ParseLevel(data)
	if err != nil {
		return nil, fmt.Errorf("world: %s: %w", path, err)
	}
	return lvl, nil
}

func ParseLevel(data []byte) (*Level, error) {
	var lvl Level
	if err := yaml.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("parse level: %w", err)
	}
	for i, def := range lvl.Objects {
		if err := def.validate(); err != nil {
			return nil, fmt.Errorf("object %d (%s): %w", i, def.Name, err)
		}
	}
	return &lvl, nil
}

func (d ObjectDef) validate() error {
	switch d.Shape {
	case "box":
		if d.Size[0] <= 0 || d.Size[1] <= 0 || d.Size[2] <= 0 {
			return fmt.Errorf("box size %v must be positive", d.Size)
		}
	case "sphere":
		if d.Radius <= 0 {
			return fmt.Errorf("sphere radius %v must be positive", d.Radius)
		}
	default:
		return fmt.Errorf("unknown shape %q", d.Shape)
	}
	return nil
}

func vec(a [3]float32) rl.Vector3 {
	return rl.Vector3{X: a[0], Y: a[1], Z: a[2]}
}

// Build creates the GameObject with its collider. Rendering is attached
// later by LoadRenderResources.
func (d ObjectDef) Build() *engine.GameObject {
	g := engine.NewGameObject(d.Name)
	g.Tags = d.Tags
	g.Transform.Position = vec(d.Position)
	g.Transform.Rotation = rl.QuaternionFromEuler(
		d.Rotation[0]*rl.Deg2rad,
		d.Rotation[1]*rl.Deg2rad,
		d.Rotation[2]*rl.Deg2rad,
	)
	switch d.Shape {
	case "box":
		g.AddComponent(components.NewBoxCollider(vec(d.Size)))
	case "sphere":
		g.AddComponent(components.NewSphereCollider(d.Radius))
	}
	return g
}

// --- Built-in playground ---

// Box returns an axis-aligned box definition.
func Box(name string, pos, size [3]float32, color string, tags ...string) ObjectDef {
	return ObjectDef{Name: name, Tags: tags, Position: pos, Shape: "box", Size: size, Color: color}
}

// Ramp returns a plank of the given length whose top surface starts at
// ground level at (x, z) and rises toward +X at deg degrees.
func Ramp(name string, x, z, length, deg float32, color string) ObjectDef {
	const thickness = 0.5
	a := float64(deg) * math.Pi / 180
	s, c := float32(math.Sin(a)), float32(math.Cos(a))
	return ObjectDef{
		Name:     name,
		Tags:     []string{"ramp"},
		Position: [3]float32{x + length/2*c + thickness/2*s, length/2*s - thickness/2*c, z},
		Rotation: [3]float32{0, 0, deg},
		Shape:    "box",
		Size:     [3]float32{length, thickness, 3},
		Color:    color,
	}
}

// DefaultLevel is the playground: a flat plaza ringed by terrain with one
// fixture for each movement case.
func DefaultLevel() *Level {
	ts := terrain.DefaultSettings()
	lvl := &Level{
		Name:    "playground",
		Spawn:   [3]float32{0, 0.5, -6},
		Terrain: &ts,
	}
	objs := &lvl.Objects

	// stair run: 0.25 rise, 0.6 tread
	for i := range 8 {
		rise := float32(i+1) * 0.25
		*objs = append(*objs, Box(fmt.Sprintf("Stair_%d", i),
			[3]float32{6 + float32(i)*0.6, rise / 2, 4}, [3]float32{0.6, rise, 3}, "Beige", "stairs"))
	}
	*objs = append(*objs, Box("StairLanding", [3]float32{12.4, 1, 4}, [3]float32{2, 2, 3}, "Beige", "stairs"))

	// a kerb just under and a block just over the step limit
	*objs = append(*objs,
		Box("Kerb", [3]float32{6, 0.14, -2}, [3]float32{2, 0.28, 2}, "Gray"),
		Box("Block", [3]float32{10, 0.25, -2}, [3]float32{2, 0.5, 2}, "DarkGray"),
	)

	*objs = append(*objs,
		Ramp("RampWalkable", -6, 4, 8, 30, "Green"),
		Ramp("RampSlide", -6, 9, 8, 50, "Orange"),
		Ramp("RampWall", -6, 14, 6, 70, "Red"),
	)

	// low ceiling over a pad
	*objs = append(*objs,
		Box("CeilingPostA", [3]float32{-1.5, 1.1, -12}, [3]float32{0.3, 2.2, 0.3}, "Gray"),
		Box("CeilingPostB", [3]float32{1.5, 1.1, -12}, [3]float32{0.3, 2.2, 0.3}, "Gray"),
		Box("Ceiling", [3]float32{0, 2.35, -12}, [3]float32{4, 0.3, 4}, "SkyBlue", "ceiling"),
	)

	// two platforms with a gap bridged by a grate of thin bars
	*objs = append(*objs,
		Box("PlatformA", [3]float32{-10, 0.5, -8}, [3]float32{4, 1, 4}, "Brown"),
		Box("PlatformB", [3]float32{-3, 0.5, -8}, [3]float32{4, 1, 4}, "Brown"),
	)
	for i := range 6 {
		*objs = append(*objs, Box(fmt.Sprintf("Grate_%d", i),
			[3]float32{-7.25 + float32(i)*0.5, 0.95, -8}, [3]float32{0.1, 0.1, 4}, "DarkGray", "grate"))
	}

	// concave corner
	*objs = append(*objs,
		Box("CornerWallX", [3]float32{14, 1.5, -10}, [3]float32{6, 3, 0.4}, "Maroon"),
		Box("CornerWallZ", [3]float32{17, 1.5, -7.2}, [3]float32{0.4, 3, 6}, "Maroon"),
	)

	// boulders
	for i, p := range [][3]float32{{-14, 0.6, 0}, {-15, 0.3, 2}, {-13, 1.2, 4}} {
		*objs = append(*objs, ObjectDef{
			Name:     fmt.Sprintf("Boulder_%d", i),
			Position: p,
			Shape:    "sphere",
			Radius:   p[1] + 0.4,
			Color:    "Gray",
		})
	}
	return lvl
}

// Marshal writes the level as YAML, used to export the built-in playground
// as a starting point for custom levels.
func (l *Level) Marshal() ([]byte, error) {
	return yaml.Marshal(l)
}
