package components

import (
	"movecore/internal/collision"
	"movecore/internal/config"
	"movecore/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// MovementState is the advisory locomotion state read by animation and
// debug overlays. Physics branches on IsGrounded and VerticalVelocity, not
// on this value.
type MovementState int

const (
	Idle MovementState = iota
	Walking
	Running
	Sliding
	SteppingUp
	Falling
	Landing
	Jumping
)

func (s MovementState) String() string {
	switch s {
	case Idle:
		return "Idle"
	case Walking:
		return "Walking"
	case Running:
		return "Running"
	case Sliding:
		return "Sliding"
	case SteppingUp:
		return "SteppingUp"
	case Falling:
		return "Falling"
	case Landing:
		return "Landing"
	case Jumping:
		return "Jumping"
	}
	return "Unknown"
}

// StateChange is delivered when MovementState changes.
type StateChange struct {
	From, To MovementState
}

// normalBlend is how far the stored ground normal moves toward a new probe
// normal each tick when the two are close.
const normalBlend = 0.5

// ControllerState is the per-character mutable record. Only the owning
// CharacterController writes it.
type ControllerState struct {
	Velocity            rl.Vector3
	IsGrounded          bool
	GroundNormal        rl.Vector3
	VerticalVelocity    float32
	MovementState       MovementState
	CoyoteTimeRemaining float32
	GroundBufferFrames  int
	CanJump             bool

	IsJumping          bool
	TimeInAir          float32
	CurrentSpeed       float32
	CurrentDirection   rl.Vector3
	LastGroundPosition rl.Vector3
	// LastCollision is the final contact of this tick's movement.
	LastCollision collision.Result
	// LastGround is this tick's ground probe.
	LastGround collision.Result
}

// NewControllerState returns the spawn defaults: airborne, idle, no jump
// until the first ground contact.
func NewControllerState() ControllerState {
	return ControllerState{
		GroundNormal:  engine.Up,
		MovementState: Idle,
		LastCollision: collision.DefaultResult(),
	}
}

// TrackGround applies one tick of ground bookkeeping from the probe result.
// A grounded probe refills the coyote timer and the ground buffer. Without
// ground the buffer keeps IsGrounded true for its remaining frames while the
// coyote timer runs down by dt. CanJump follows the coyote timer, or plain
// groundedness when coyote time is disabled.
func (s *ControllerState) TrackGround(probeGrounded bool, probe collision.Result, cfg *config.Config, dt float32) {
	adv := cfg.Advanced
	s.LastGround = probe
	if probeGrounded {
		s.IsGrounded = true
		s.CoyoteTimeRemaining = adv.CoyoteTimeDuration
		s.GroundBufferFrames = adv.GroundStateBufferFrames
		s.TimeInAir = 0
		if collision.NormalsSimilar(s.GroundNormal, probe.Normal, 0.3) {
			s.GroundNormal = collision.SmoothNormalTransition(s.GroundNormal, probe.Normal, normalBlend)
		} else {
			s.GroundNormal = probe.Normal
		}
	} else {
		if s.IsGrounded && s.GroundBufferFrames > 0 {
			s.GroundBufferFrames--
		} else {
			s.IsGrounded = false
			s.GroundBufferFrames = 0
		}
		s.CoyoteTimeRemaining = max(s.CoyoteTimeRemaining-dt, 0)
		s.TimeInAir += dt
		if !s.IsGrounded {
			s.GroundNormal = engine.Up
		}
	}

	if adv.EnableCoyoteTime {
		s.CanJump = s.CoyoteTimeRemaining > 0
	} else {
		s.CanJump = s.IsGrounded
	}
}

// ConsumeJump launches the character if a jump is allowed and reports
// whether it did. A refused request is dropped, not queued.
func (s *ControllerState) ConsumeJump(cfg *config.Config) bool {
	if !s.CanJump || s.IsJumping {
		return false
	}
	s.VerticalVelocity = cfg.JumpVelocity()
	s.IsJumping = true
	s.IsGrounded = false
	s.CanJump = false
	s.CoyoteTimeRemaining = 0
	s.GroundBufferFrames = 0
	return true
}
