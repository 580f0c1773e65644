package config

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalid is wrapped by every error Validate returns.
var ErrInvalid = errors.New("invalid controller config")

// CeilingAngle is the normal angle from up at which a surface stops being a
// wall and counts as a ceiling.
const CeilingAngle = 3 * math.Pi / 4

// Validate checks the invariants the collision code relies on. Hosts call it
// once at startup and on every reload, and refuse configs that fail.
func (c *Config) Validate() error {
	walk := float64(c.Slopes.MaxWalkableAngle)
	slide := float64(c.Slopes.SlideThresholdAngle)
	switch {
	case walk <= 0:
		return invalid("slopes.max_walkable_angle must be positive, got %v", c.Slopes.MaxWalkableAngle)
	case walk >= slide:
		return invalid("slopes.max_walkable_angle (%v) must be below slopes.slide_threshold_angle (%v)",
			c.Slopes.MaxWalkableAngle, c.Slopes.SlideThresholdAngle)
	case slide >= CeilingAngle:
		return invalid("slopes.slide_threshold_angle (%v) must be below 135deg", c.Slopes.SlideThresholdAngle)
	}

	col := c.Collision
	if col.CapsuleRadius <= 0 || col.CapsuleHeight <= 0 {
		return invalid("collision capsule needs positive radius and height, got r=%g h=%g", col.CapsuleRadius, col.CapsuleHeight)
	}
	if col.CapsuleHeight < 2*col.CapsuleRadius {
		return invalid("collision.capsule_height %g is shorter than its two caps (radius %g)", col.CapsuleHeight, col.CapsuleRadius)
	}
	if col.MaxIterations < 1 {
		return invalid("collision.max_iterations must be at least 1, got %d", col.MaxIterations)
	}
	if col.Margin < 0 {
		return invalid("collision.margin must not be negative, got %g", col.Margin)
	}
	if col.SlideDecay <= 0 || col.SlideDecay > 1 {
		return invalid("collision.slide_decay must be in (0, 1], got %g", col.SlideDecay)
	}

	g := c.Ground
	if g.WalkSpeed < 0 || g.RunSpeed < 0 || g.Acceleration < 0 || g.Deceleration < 0 || g.TurnSpeed < 0 {
		return invalid("ground speeds and rates must not be negative")
	}
	if c.Air.FallSpeedLimit <= 0 {
		return invalid("air.fall_speed_limit must be positive, got %g", c.Air.FallSpeedLimit)
	}
	if c.Air.GravityScale < 0 || c.Air.JumpHeight < 0 {
		return invalid("air.gravity_scale and air.jump_height must not be negative")
	}
	if c.StepUp.Enabled && (c.StepUp.MaxStepHeight <= 0 || c.StepUp.StepCheckDistance <= 0) {
		return invalid("step_up needs positive max_step_height and step_check_distance when enabled")
	}
	if c.Advanced.GroundStateBufferFrames < 0 {
		return invalid("advanced.ground_state_buffer_frames must not be negative, got %d", c.Advanced.GroundStateBufferFrames)
	}
	if c.Advanced.CoyoteTimeDuration < 0 || c.Advanced.GroundSnapDistance < 0 {
		return invalid("advanced durations and distances must not be negative")
	}
	return nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("config: %w: %s", ErrInvalid, fmt.Sprintf(format, args...))
}
