package world

import (
	"fmt"
	"math"

	"movecore/internal/collision"
	"movecore/internal/components"
	"movecore/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// DebugOptions toggles the 3D overlays drawn around the player.
type DebugOptions struct {
	Velocity         bool
	GroundRay        bool
	GroundNormal     bool
	CollisionNormals bool
	StepProbe        bool
	Capsule          bool
}

func DefaultDebugOptions() DebugOptions {
	return DebugOptions{Velocity: true, GroundRay: true, GroundNormal: true}
}

// probeDirections is the number of horizontal rays for CollisionNormals.
const probeDirections = 8

// DebugProbe is one horizontal ray cast from the capsule center.
type DebugProbe struct {
	Dir    rl.Vector3
	Hit    bool
	Point  rl.Vector3
	Normal rl.Vector3
	Class  collision.SurfaceType
}

// SampleCollisionNormals casts rays around the capsule to show nearby
// surfaces and how they classify.
func SampleCollisionNormals(player *engine.GameObject, world engine.SpatialQuery, ctrl *components.CharacterController) []DebugProbe {
	cfg := ctrl.Config
	center := collision.CapsuleCenter(player.Transform.Position, cfg)
	reach := cfg.Collision.CapsuleRadius + 0.5
	filter := engine.QueryFilter{ExcludedIDs: player.SelfAndDescendantUIDs()}

	probes := make([]DebugProbe, 0, probeDirections)
	for i := range probeDirections {
		a := float64(i) * 2 * math.Pi / probeDirections
		dir := rl.Vector3{X: float32(math.Sin(a)), Z: float32(math.Cos(a))}
		p := DebugProbe{Dir: dir}
		if hit, ok := world.CastRay(center, dir, reach, filter); ok {
			p.Hit = true
			p.Point = hit.Point
			p.Normal = hit.Normal
			p.Class = collision.ClassifySurface(hit.Normal, cfg)
		}
		probes = append(probes, p)
	}
	return probes
}

func classColor(s collision.SurfaceType) rl.Color {
	switch s {
	case collision.Walkable:
		return rl.Green
	case collision.Slideable:
		return rl.Orange
	case collision.Wall:
		return rl.Red
	}
	return rl.Purple
}

// DrawDebug draws the enabled overlays. Call inside BeginMode3D.
func DrawDebug(opts DebugOptions, player *engine.GameObject, world engine.SpatialQuery, ctrl *components.CharacterController) {
	if player == nil || ctrl == nil || ctrl.Config == nil {
		return
	}
	cfg := ctrl.Config
	st := ctrl.State
	feet := player.Transform.Position
	center := collision.CapsuleCenter(feet, cfg)

	if opts.Velocity {
		rl.DrawLine3D(center, rl.Vector3Add(center, rl.Vector3Scale(st.Velocity, 0.5)), rl.Yellow)
	}
	if opts.GroundRay {
		end := rl.Vector3Add(feet, rl.Vector3{Y: -collision.GroundProbeLength(cfg)})
		color := rl.Red
		if st.IsGrounded {
			color = rl.Green
		}
		rl.DrawLine3D(feet, end, color)
		if st.LastGround.Hit {
			rl.DrawSphere(st.LastGround.Point, 0.04, color)
		}
	}
	if opts.GroundNormal && st.LastGround.Hit {
		p := st.LastGround.Point
		rl.DrawLine3D(p, rl.Vector3Add(p, st.GroundNormal), rl.SkyBlue)
	}
	if opts.CollisionNormals && world != nil {
		for _, p := range SampleCollisionNormals(player, world, ctrl) {
			if !p.Hit {
				continue
			}
			c := classColor(p.Class)
			rl.DrawLine3D(center, p.Point, rl.Fade(c, 0.4))
			rl.DrawLine3D(p.Point, rl.Vector3Add(p.Point, rl.Vector3Scale(p.Normal, 0.5)), c)
		}
	}
	if opts.StepProbe {
		probe := ctrl.LastStepProbe()
		if probe.Obstacle != (rl.Vector3{}) {
			rl.DrawSphere(probe.Obstacle, 0.05, rl.Magenta)
			rl.DrawLine3D(probe.Obstacle, rl.Vector3Add(probe.Obstacle, rl.Vector3{Y: probe.Height}), rl.Magenta)
		}
		if probe.Succeeded {
			rl.DrawLine3D(probe.Elevated, probe.Landing, rl.Lime)
			rl.DrawSphere(probe.Landing, 0.06, rl.Lime)
		}
	}
	if opts.Capsule {
		r := cfg.Collision.CapsuleRadius
		bottom := rl.Vector3Add(feet, rl.Vector3{Y: r})
		top := rl.Vector3Add(feet, rl.Vector3{Y: max(cfg.Collision.CapsuleHeight-r, r)})
		rl.DrawCapsuleWires(bottom, top, r, 12, 6, rl.White)
	}
}

// SlopeReport describes the ground under the player for the debug panel.
func SlopeReport(ctrl *components.CharacterController) string {
	st := ctrl.State
	if !st.LastGround.Hit {
		return "ground: none"
	}
	n := st.LastGround.Normal
	deg := collision.SlopeAngle(n) * rl.Rad2deg
	return fmt.Sprintf("ground: %.1f deg %s  dist %.2f", deg, collision.ClassifySurface(n, ctrl.Config), st.LastGround.Distance)
}
