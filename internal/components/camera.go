package components

import (
	"math"

	"movecore/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// ThirdPersonCamera orbits a target object. Holding the right mouse button
// turns the view and the character with it; the left button turns only the
// view. The orbit follows the target in LateUpdate after it has moved.
type ThirdPersonCamera struct {
	engine.BaseComponent

	Target engine.GameObjectRef

	FOV        float32
	Projection rl.CameraProjection

	Yaw      float32 // degrees around +Y, 0 looks along +Z
	Pitch    float32 // degrees, negative looks down
	Distance float32
	MinDist  float32
	MaxDist  float32
	// LookHeight is the point above the target's feet the camera looks at.
	LookHeight float32
	LookSpeed  float32
	ZoomSpeed  float32

	// ReadMouse is cleared for headless use and while UI owns the mouse.
	ReadMouse bool

	mouselook bool
	focus     rl.Vector3
}

func NewThirdPersonCamera() *ThirdPersonCamera {
	return &ThirdPersonCamera{
		FOV:        60,
		Projection: rl.CameraPerspective,
		Pitch:      -20,
		Distance:   6,
		MinDist:    2,
		MaxDist:    15,
		LookHeight: 1.5,
		LookSpeed:  0.2,
		ZoomSpeed:  1,
		ReadMouse:  true,
	}
}

func (c *ThirdPersonCamera) Update(deltaTime float32) {
	if !c.ReadMouse {
		c.mouselook = false
		return
	}
	right := rl.IsMouseButtonDown(rl.MouseButtonRight)
	left := rl.IsMouseButtonDown(rl.MouseButtonLeft)
	c.mouselook = right
	if right || left {
		d := rl.GetMouseDelta()
		c.Yaw -= d.X * c.LookSpeed
		c.Pitch -= d.Y * c.LookSpeed
	}
	c.Pitch = rl.Clamp(c.Pitch, -80, 60)
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		c.Distance = rl.Clamp(c.Distance-wheel*c.ZoomSpeed, c.MinDist, c.MaxDist)
	}
}

// LateUpdate places the camera behind the target.
func (c *ThirdPersonCamera) LateUpdate(deltaTime float32) {
	g := c.GetGameObject()
	if g == nil {
		return
	}
	if t := c.Target.Get(g.Scene); t != nil {
		c.focus = rl.Vector3Add(t.WorldPosition(), rl.Vector3{Y: c.LookHeight})
	}
	g.Transform.Position = rl.Vector3Subtract(c.focus, rl.Vector3Scale(c.lookDirection(), c.Distance))
}

func (c *ThirdPersonCamera) lookDirection() rl.Vector3 {
	yaw := float64(c.Yaw) * math.Pi / 180
	pitch := float64(c.Pitch) * math.Pi / 180
	return rl.Vector3{
		X: float32(math.Sin(yaw) * math.Cos(pitch)),
		Y: float32(math.Sin(pitch)),
		Z: float32(math.Cos(yaw) * math.Cos(pitch)),
	}
}

// ViewBasis implements engine.ViewProvider.
func (c *ThirdPersonCamera) ViewBasis() (forward, right engine.Vec3) {
	return yawBasis(c.Yaw)
}

// MouselookActive implements engine.ViewProvider.
func (c *ThirdPersonCamera) MouselookActive() bool {
	return c.mouselook
}

func (c *ThirdPersonCamera) GetRaylibCamera() rl.Camera3D {
	g := c.GetGameObject()
	if g == nil {
		return rl.Camera3D{}
	}
	return rl.Camera3D{
		Position:   g.Transform.Position,
		Target:     c.focus,
		Up:         engine.Up,
		Fovy:       c.FOV,
		Projection: c.Projection,
	}
}

// FixedView is a ViewProvider with a constant heading.
type FixedView struct {
	engine.BaseComponent
	Yaw       float32 // degrees
	Mouselook bool
}

func (f *FixedView) ViewBasis() (forward, right engine.Vec3) {
	return yawBasis(f.Yaw)
}

func (f *FixedView) MouselookActive() bool {
	return f.Mouselook
}

// yawBasis returns the horizontal forward and right vectors for a heading in
// degrees. Right is forward turned clockwise seen from above.
func yawBasis(yawDeg float32) (forward, right rl.Vector3) {
	yaw := float64(yawDeg) * math.Pi / 180
	forward = rl.Vector3{X: float32(math.Sin(yaw)), Z: float32(math.Cos(yaw))}
	right = rl.Vector3{X: -forward.Z, Z: forward.X}
	return forward, right
}
