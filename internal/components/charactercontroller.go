package components

import (
	"log"
	"math"
	"time"

	"movecore/internal/collision"
	"movecore/internal/config"
	"movecore/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	// landingNormalY is the minimum up component of a contact normal that
	// ends a fall.
	landingNormalY = 0.7
	// airResponse scales AirControl into a per-second blend rate.
	airResponse = 10
	// maxSlideSpeed caps the speed gained sliding down a steep slope.
	maxSlideSpeed = 8
	// idleSpeed is the ground speed below which a character without input
	// counts as standing still.
	idleSpeed = 0.1
	// skipLogInterval limits how often skipped ticks are reported.
	skipLogInterval = 5 * time.Second
)

// SkipCounts records ticks skipped because a collaborator was missing.
type SkipCounts struct {
	NoScene  int
	NoWorld  int
	NoConfig int
	NoCamera int
}

// Total returns the number of skipped ticks.
func (s SkipCounts) Total() int {
	return s.NoScene + s.NoWorld + s.NoConfig + s.NoCamera
}

// CharacterController moves its GameObject as a kinematic capsule: camera
// relative input, acceleration, slopes, steps, jumps and falls. Position is
// the feet of the capsule.
//
// Input is read from an engine.InputSource component on the same object.
// The view comes from the Camera reference, or from the first object tagged
// "MainCamera" when the reference is empty.
type CharacterController struct {
	engine.BaseComponent

	// Config is shared and never written. Swap the pointer between ticks to
	// retune.
	Config *config.Config
	Camera engine.GameObjectRef
	State  ControllerState

	OnStateChanged engine.EventWithArg[StateChange]

	Skipped SkipCounts

	lastInput   engine.MovementInput
	lastProbe   collision.StepProbe
	lastLogTime time.Time
}

func NewCharacterController(cfg *config.Config) *CharacterController {
	return &CharacterController{
		Config: cfg,
		State:  NewControllerState(),
	}
}

// LastInput returns the input consumed by the most recent tick.
func (c *CharacterController) LastInput() engine.MovementInput {
	return c.lastInput
}

// LastStepProbe returns the most recent step-up attempt, successful or not.
func (c *CharacterController) LastStepProbe() collision.StepProbe {
	return c.lastProbe
}

// View resolves the camera used for movement, or nil.
func (c *CharacterController) View() engine.ViewProvider {
	g := c.GetGameObject()
	if g == nil || g.Scene == nil {
		return nil
	}
	cam := c.Camera.Get(g.Scene)
	if cam == nil && !c.Camera.IsValid() {
		cam = g.Scene.FindFirstWithTag("MainCamera")
	}
	if cam == nil {
		return nil
	}
	return engine.GetComponent[engine.ViewProvider](cam)
}

func (c *CharacterController) Update(deltaTime float32) {
	if deltaTime <= 0 {
		return
	}
	g := c.GetGameObject()
	if g == nil || g.Scene == nil {
		c.skip(&c.Skipped.NoScene, "no scene")
		return
	}
	world := g.Scene.World
	if world == nil {
		c.skip(&c.Skipped.NoWorld, "no spatial query")
		return
	}
	cfg := c.Config
	if cfg == nil {
		c.skip(&c.Skipped.NoConfig, "no config")
		return
	}
	view := c.View()
	if view == nil {
		c.skip(&c.Skipped.NoCamera, "no camera")
		return
	}

	var input engine.MovementInput
	if src := engine.GetComponent[engine.InputSource](g); src != nil {
		input = src.MovementInput()
	}
	c.lastInput = input
	c.Tick(g, world, view, input, deltaTime)
}

func (c *CharacterController) skip(counter *int, reason string) {
	*counter++
	if time.Since(c.lastLogTime) < skipLogInterval {
		return
	}
	c.lastLogTime = time.Now()
	log.Printf("Controller: skipping tick (%s), %d skipped so far", reason, c.Skipped.Total())
}

// Tick runs one simulation step with explicit collaborators.
func (c *CharacterController) Tick(g *engine.GameObject, world engine.SpatialQuery, view engine.ViewProvider, input engine.MovementInput, dt float32) {
	cfg := c.Config
	s := &c.State
	excluded := g.SelfAndDescendantUIDs()
	prev := s.MovementState

	grounded, ground := collision.IsGrounded(g.Transform.Position, world, cfg, excluded)
	if s.VerticalVelocity > 0 {
		grounded = false
	}
	if grounded && cfg.Advanced.EnableGroundSnapping &&
		ground.Distance > cfg.Advanced.GroundSnapDistance+cfg.Collision.Margin {
		grounded = false
	}
	// A capsule leaning on a slope too steep to stand on slides, even when
	// the ray under the feet reaches flat ground further down.
	var slope collision.Result
	if s.VerticalVelocity <= 0 {
		support := collision.SupportContact(g.Transform.Position, world, cfg, excluded)
		if support.Hit && collision.ClassifySurface(support.Normal, cfg) == collision.Slideable &&
			(!grounded || support.Distance+cfg.Collision.SurfaceTolerance < ground.Distance) {
			slope = support
			grounded = false
		}
	}
	// a probe that finds ground under a falling character ends the fall
	// even when the sweep itself never touched it
	touchdown := grounded && !s.IsGrounded && (prev == Falling || prev == Jumping)
	s.TrackGround(grounded, ground, cfg, dt)
	if grounded {
		s.IsJumping = false
		s.LastGroundPosition = g.Transform.Position
	}

	mouselook := view.MouselookActive()
	forward, right := view.ViewBasis()
	if mouselook {
		yaw := float32(math.Atan2(float64(forward.X), float64(forward.Z)))
		c.turnToward(g, yaw, dt)
	}

	dir := desiredDirection(input, forward, right)
	hasInput := rl.Vector3Length(dir) > 0
	var target float32
	if hasInput {
		target = cfg.Ground.WalkSpeed
		if input.Run {
			target = cfg.Ground.RunSpeed
		}
	}

	if input.Jump {
		s.ConsumeJump(cfg)
	}

	var out moveOutcome
	switch {
	case slope.Hit && s.VerticalVelocity <= 0:
		out = c.moveSlide(g, world, slope.Normal, excluded, dt)
	case s.IsGrounded && s.VerticalVelocity <= 0:
		out = c.moveGround(g, world, dir, hasInput, target, excluded, dt)
	default:
		out = c.moveAir(g, world, dir, hasInput, target, excluded, dt)
	}
	out.landed = out.landed || touchdown

	s.MovementState = c.deriveState(out, hasInput, prev)
	if s.MovementState != prev {
		c.OnStateChanged.Invoke(StateChange{From: prev, To: s.MovementState})
	}

	if !mouselook && hasInput {
		yaw := float32(math.Atan2(float64(dir.X), float64(dir.Z)))
		c.turnToward(g, yaw, dt)
	}
}

type moveOutcome struct {
	landed  bool
	stepped bool
	sliding bool
}

// moveGround accelerates along the ground plane, resolves collisions, tries a
// step when blocked and keeps the feet on the ground afterwards.
func (c *CharacterController) moveGround(g *engine.GameObject, world engine.SpatialQuery, dir rl.Vector3, hasInput bool, target float32, excluded []uint64, dt float32) moveOutcome {
	cfg := c.Config
	s := &c.State
	var out moveOutcome

	s.VerticalVelocity = 0
	s.CurrentSpeed = approach(s.CurrentSpeed, target, cfg.Ground.Acceleration, cfg.Ground.Deceleration, dt)
	if hasInput {
		t := rl.Clamp(cfg.Ground.TurnSpeed*dt, 0, 1)
		blended := collision.SafeNormalize(rl.Vector3Lerp(s.CurrentDirection, dir, t))
		if rl.Vector3Length(blended) == 0 {
			blended = dir
		}
		s.CurrentDirection = blended
	}

	speed := s.CurrentSpeed * collision.SlopeSpeedModifier(s.GroundNormal, s.CurrentDirection, cfg)
	move := rl.Vector3Scale(s.CurrentDirection, speed*dt)
	if l := rl.Vector3Length(move); l > 0 {
		along := collision.SafeNormalize(collision.ProjectOnPlane(move, s.GroundNormal))
		if rl.Vector3Length(along) > 0 {
			move = rl.Vector3Scale(along, l)
		}
	}

	start := g.Transform.Position
	pos, _, res := collision.CollideAndSlide(start, move, world, cfg, excluded)
	s.LastCollision = res

	if res.Hit && !res.IsWalkable && hasInput {
		probe, ok := collision.ProbeStep(pos, s.CurrentDirection, world, cfg, excluded)
		c.lastProbe = probe
		if ok {
			pos = probe.Target()
			out.stepped = true
		}
	}
	if !out.stepped && res.Hit && collision.ClassifySurface(res.Normal, cfg) == collision.Slideable {
		out.sliding = true
	}

	if !out.stepped {
		// stick to the ground the probe found, or reach further down when
		// snapping is on
		reach := cfg.Collision.Margin + cfg.Collision.SurfaceTolerance
		if s.LastGround.Hit {
			reach += s.LastGround.Distance
		}
		if cfg.Advanced.EnableGroundSnapping {
			reach = max(reach, cfg.Advanced.GroundSnapDistance)
		}
		if snapped, _, ok := collision.SnapToGround(pos, reach, world, cfg, excluded); ok {
			pos = snapped
		}
	}

	g.Transform.Position = pos
	s.Velocity = rl.Vector3Scale(rl.Vector3Subtract(pos, start), 1/dt)
	return out
}

// moveSlide accelerates down a slope too steep to stand on, keeping the
// momentum that lies in the slope's plane. Input is ignored until the capsule
// reaches walkable ground or leaves the surface.
func (c *CharacterController) moveSlide(g *engine.GameObject, world engine.SpatialQuery, normal rl.Vector3, excluded []uint64, dt float32) moveOutcome {
	cfg := c.Config
	s := &c.State
	s.IsGrounded = false
	s.GroundBufferFrames = 0
	s.TimeInAir = 0

	friction := cfg.Slopes.SlideFriction
	v := rl.Vector3Scale(collision.ProjectOnPlane(s.Velocity, normal), max(1-friction*dt, 0))
	v = rl.Vector3Add(v, rl.Vector3Scale(collision.SlideDirection(normal), cfg.GravityAccel()*(1-friction)*dt))
	if l := rl.Vector3Length(v); l > maxSlideSpeed {
		v = rl.Vector3Scale(v, maxSlideSpeed/l)
	}
	s.VerticalVelocity = v.Y
	h := rl.Vector3{X: v.X, Z: v.Z}
	s.CurrentSpeed = rl.Vector3Length(h)
	if s.CurrentSpeed > 0 {
		s.CurrentDirection = rl.Vector3Scale(h, 1/s.CurrentSpeed)
	}

	start := g.Transform.Position
	pos, _, res := collision.CollideAndSlide(start, rl.Vector3Scale(v, dt), world, cfg, excluded)
	s.LastCollision = res
	if snapped, _, ok := collision.SnapToSurface(pos, collision.SlopeProbeDistance(cfg), world, cfg, excluded); ok {
		pos = snapped
	}

	g.Transform.Position = pos
	s.Velocity = rl.Vector3Scale(rl.Vector3Subtract(pos, start), 1/dt)
	return moveOutcome{sliding: true}
}

// moveAir integrates gravity, blends horizontal velocity toward the input
// and detects landings and ceiling hits.
func (c *CharacterController) moveAir(g *engine.GameObject, world engine.SpatialQuery, dir rl.Vector3, hasInput bool, target float32, excluded []uint64, dt float32) moveOutcome {
	cfg := c.Config
	s := &c.State
	var out moveOutcome

	s.VerticalVelocity -= cfg.GravityAccel() * dt
	if s.VerticalVelocity < -cfg.Air.FallSpeedLimit {
		s.VerticalVelocity = -cfg.Air.FallSpeedLimit
	}

	h := rl.Vector3{X: s.Velocity.X, Z: s.Velocity.Z}
	if hasInput {
		desired := rl.Vector3Scale(dir, target)
		h = rl.Vector3Lerp(h, desired, rl.Clamp(cfg.Air.AirControl*airResponse*dt, 0, 1))
	}
	if l := rl.Vector3Length(h); l > cfg.Ground.RunSpeed {
		h = rl.Vector3Scale(h, cfg.Ground.RunSpeed/l)
	}
	s.CurrentSpeed = rl.Vector3Length(h)
	if s.CurrentSpeed > 0 {
		s.CurrentDirection = rl.Vector3Scale(h, 1/s.CurrentSpeed)
	}

	move := rl.Vector3Scale(rl.Vector3{X: h.X, Y: s.VerticalVelocity, Z: h.Z}, dt)
	start := g.Transform.Position
	pos, _, res := collision.CollideAndSlide(start, move, world, cfg, excluded)
	s.LastCollision = res

	if res.Hit {
		switch {
		case res.Normal.Y > landingNormalY && s.VerticalVelocity <= 0:
			out.landed = true
			s.VerticalVelocity = 0
			s.IsGrounded = true
			s.IsJumping = false
			s.GroundNormal = res.Normal
			s.LastGroundPosition = pos
			reach := cfg.Collision.Margin + cfg.Collision.SurfaceTolerance
			if snapped, _, ok := collision.SnapToGround(pos, reach, world, cfg, excluded); ok {
				pos = snapped
			}
		case collision.ClassifySurface(res.Normal, cfg) == collision.Ceiling && s.VerticalVelocity > 0:
			s.VerticalVelocity = 0
		case collision.ClassifySurface(res.Normal, cfg) == collision.Slideable:
			out.sliding = true
		}
	}

	g.Transform.Position = pos
	s.Velocity = rl.Vector3Scale(rl.Vector3Subtract(pos, start), 1/dt)
	return out
}

func (c *CharacterController) deriveState(out moveOutcome, hasInput bool, prev MovementState) MovementState {
	s := &c.State
	switch {
	case out.landed:
		return Landing
	case out.stepped:
		return SteppingUp
	case out.sliding:
		return Sliding
	}
	if !s.IsGrounded {
		switch {
		case s.VerticalVelocity > 0:
			return Jumping
		case s.TimeInAir > c.Config.Air.FallStateDelay:
			return Falling
		case prev == Landing || prev == SteppingUp:
			return Falling
		}
		return prev
	}
	if !hasInput && s.CurrentSpeed < idleSpeed {
		return Idle
	}
	if s.CurrentSpeed > c.Config.Ground.WalkSpeed+idleSpeed {
		return Running
	}
	return Walking
}

// turnToward rotates the object about +Y toward yaw by TurnSpeed*dt of the
// remaining angle.
func (c *CharacterController) turnToward(g *engine.GameObject, yaw, dt float32) {
	goal := rl.QuaternionFromAxisAngle(engine.Up, yaw)
	t := rl.Clamp(c.Config.Ground.TurnSpeed*dt, 0, 1)
	g.Transform.Rotation = rl.QuaternionNormalize(rl.QuaternionSlerp(g.Transform.Rotation, goal, t))
}

// desiredDirection maps movement flags onto the horizontal camera basis.
func desiredDirection(in engine.MovementInput, forward, right rl.Vector3) rl.Vector3 {
	var f, r float32
	if in.Forward || in.MouseForward {
		f++
	}
	if in.Backward {
		f--
	}
	if in.Right {
		r++
	}
	if in.Left {
		r--
	}
	d := rl.Vector3Add(rl.Vector3Scale(forward, f), rl.Vector3Scale(right, r))
	d.Y = 0
	return collision.SafeNormalize(d)
}

// approach moves speed toward target at accel when speeding up and decel
// when slowing down, without overshooting.
func approach(speed, target, accel, decel, dt float32) float32 {
	if speed < target {
		return min(speed+accel*dt, target)
	}
	return max(speed-decel*dt, target)
}
