// Package config holds the character controller tunables and the named
// presets. A Config is built once, validated, then shared read-only by every
// controller that uses it; reloads swap the pointer instead of editing it.
package config

import (
	"fmt"
	"math"
	"strings"
)

// Gravity is the base downward acceleration before GravityScale.
const Gravity = 9.81

type Ground struct {
	WalkSpeed    float32 `yaml:"walk_speed"`
	RunSpeed     float32 `yaml:"run_speed"`
	Acceleration float32 `yaml:"acceleration"`
	Deceleration float32 `yaml:"deceleration"`
	TurnSpeed    float32 `yaml:"turn_speed"`
}

type Air struct {
	AirControl     float32 `yaml:"air_control"`
	GravityScale   float32 `yaml:"gravity_scale"`
	JumpHeight     float32 `yaml:"jump_height"`
	FallSpeedLimit float32 `yaml:"fall_speed_limit"`
	// FallStateDelay is how long a descending character stays in its
	// previous state before it is reported as Falling.
	FallStateDelay float32 `yaml:"fall_state_delay"`
}

type Slopes struct {
	MaxWalkableAngle    Angle   `yaml:"max_walkable_angle"`
	SlideThresholdAngle Angle   `yaml:"slide_threshold_angle"`
	SlideFriction       float32 `yaml:"slide_friction"`
	UphillMultiplier    float32 `yaml:"uphill_multiplier"`
	DownhillMultiplier  float32 `yaml:"downhill_multiplier"`
}

type StepUp struct {
	MaxStepHeight     float32 `yaml:"max_step_height"`
	MinStepWidth      float32 `yaml:"min_step_width"`
	StepCheckDistance float32 `yaml:"step_check_distance"`
	Enabled           bool    `yaml:"enabled"`
}

type Collision struct {
	Margin           float32 `yaml:"margin"`
	MaxIterations    int     `yaml:"max_iterations"`
	SurfaceTolerance float32 `yaml:"surface_tolerance"`
	CapsuleRadius    float32 `yaml:"capsule_radius"`
	CapsuleHeight    float32 `yaml:"capsule_height"`
	// SlideDecay scales the leftover movement after every contact so the
	// resolve loop shrinks geometrically in concave corners.
	SlideDecay float32 `yaml:"slide_decay"`
}

type Advanced struct {
	CoyoteTimeDuration      float32 `yaml:"coyote_time_duration"`
	GroundStateBufferFrames int     `yaml:"ground_state_buffer_frames"`
	GroundSnapDistance      float32 `yaml:"ground_snap_distance"`
	EnableGroundSnapping    bool    `yaml:"enable_ground_snapping"`
	EnableCoyoteTime        bool    `yaml:"enable_coyote_time"`
}

type Config struct {
	Ground    Ground    `yaml:"ground"`
	Air       Air       `yaml:"air"`
	Slopes    Slopes    `yaml:"slopes"`
	StepUp    StepUp    `yaml:"step_up"`
	Collision Collision `yaml:"collision"`
	Advanced  Advanced  `yaml:"advanced"`
}

// Default returns the baseline tuning. Ground-state buffering is off.
func Default() *Config {
	return &Config{
		Ground: Ground{
			WalkSpeed:    3.0,
			RunSpeed:     6.0,
			Acceleration: 30.0,
			Deceleration: 40.0,
			TurnSpeed:    25.0,
		},
		Air: Air{
			AirControl:     0.3,
			GravityScale:   1.0,
			JumpHeight:     1.5,
			FallSpeedLimit: 15.0,
			FallStateDelay: 0.2,
		},
		Slopes: Slopes{
			MaxWalkableAngle:    Angle(math.Pi / 4),
			SlideThresholdAngle: Angle(math.Pi / 3),
			SlideFriction:       0.1,
			UphillMultiplier:    0.8,
			DownhillMultiplier:  1.2,
		},
		StepUp: StepUp{
			MaxStepHeight:     0.3,
			MinStepWidth:      0.1,
			StepCheckDistance: 0.6,
			Enabled:           true,
		},
		Collision: Collision{
			Margin:           0.05,
			MaxIterations:    4,
			SurfaceTolerance: 0.01,
			CapsuleRadius:    0.4,
			CapsuleHeight:    1.8,
			SlideDecay:       0.95,
		},
		Advanced: Advanced{
			CoyoteTimeDuration:      0.15,
			GroundStateBufferFrames: 0,
			GroundSnapDistance:      0.3,
			EnableGroundSnapping:    true,
			EnableCoyoteTime:        true,
		},
	}
}

// MMOOptimized favors responsiveness over realism: faster, more forgiving
// slopes and steps, longer coyote window and ground buffering.
func MMOOptimized() *Config {
	c := Default()
	c.Ground = Ground{
		WalkSpeed:    3.5,
		RunSpeed:     7.0,
		Acceleration: 35.0,
		Deceleration: 45.0,
		TurnSpeed:    30.0,
	}
	c.Slopes.MaxWalkableAngle = Angle(math.Pi / 3.5)
	c.Slopes.UphillMultiplier = 0.9
	c.Slopes.DownhillMultiplier = 1.1
	c.StepUp.MaxStepHeight = 0.4
	c.Advanced.CoyoteTimeDuration = 0.2
	c.Advanced.GroundSnapDistance = 0.4
	c.Advanced.GroundStateBufferFrames = 5
	return c
}

// Platformer gives strong air control and high jumps.
func Platformer() *Config {
	c := Default()
	c.Air.AirControl = 0.8
	c.Air.JumpHeight = 2.0
	c.Slopes.MaxWalkableAngle = Angle(math.Pi / 3)
	// Walkable now reaches the default slide threshold; move it up so the
	// classification stays ordered.
	c.Slopes.SlideThresholdAngle = Angle(5 * math.Pi / 12)
	c.Slopes.SlideFriction = 0.3
	c.StepUp.MaxStepHeight = 0.5
	return c
}

// Realistic is slow to accelerate and strict about slopes and steps.
func Realistic() *Config {
	c := Default()
	c.Ground = Ground{
		WalkSpeed:    1.5,
		RunSpeed:     4.0,
		Acceleration: 15.0,
		Deceleration: 20.0,
		TurnSpeed:    10.0,
	}
	c.Slopes.MaxWalkableAngle = Angle(math.Pi / 6)
	c.Slopes.SlideFriction = 0.05
	c.Slopes.UphillMultiplier = 0.5
	c.Slopes.DownhillMultiplier = 1.1
	c.StepUp.MaxStepHeight = 0.2
	return c
}

// PresetNames lists the names Preset accepts, in display order.
var PresetNames = []string{"default", "mmo", "platformer", "realistic"}

// Preset returns a fresh copy of the named preset.
func Preset(name string) (*Config, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "default":
		return Default(), nil
	case "mmo", "mmo_optimized", "mmo-optimized":
		return MMOOptimized(), nil
	case "platformer":
		return Platformer(), nil
	case "realistic":
		return Realistic(), nil
	}
	return nil, fmt.Errorf("config: unknown preset %q", name)
}

// Clone returns an independent copy.
func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}

// JumpVelocity is the launch speed that reaches JumpHeight under the scaled
// gravity.
func (c *Config) JumpVelocity() float32 {
	return float32(math.Sqrt(2 * float64(c.GravityAccel()) * float64(c.Air.JumpHeight)))
}

// GravityAccel is the scaled downward acceleration.
func (c *Config) GravityAccel() float32 {
	return Gravity * c.Air.GravityScale
}
