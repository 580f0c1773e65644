package collision

import (
	"math"

	"movecore/internal/config"
	"movecore/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// epsilon guards every normalization in this package.
const epsilon = 1e-6

// ProjectOnPlane removes the component of v along the plane normal n.
func ProjectOnPlane(v, n rl.Vector3) rl.Vector3 {
	return rl.Vector3Subtract(v, rl.Vector3Scale(n, rl.Vector3DotProduct(v, n)))
}

// SafeNormalize returns v scaled to unit length, or zero for a degenerate v.
func SafeNormalize(v rl.Vector3) rl.Vector3 {
	l := rl.Vector3Length(v)
	if l < epsilon {
		return rl.Vector3{}
	}
	return rl.Vector3Scale(v, 1/l)
}

// Horizontal drops the vertical component and normalizes.
func Horizontal(v rl.Vector3) rl.Vector3 {
	return SafeNormalize(rl.Vector3{X: v.X, Z: v.Z})
}

// SlideDirection is the steepest-descent direction within the plane of n,
// the way gravity pulls something resting on it. Flat and vertical surfaces
// have no descent direction and return zero.
func SlideDirection(n rl.Vector3) rl.Vector3 {
	if rl.Vector3Length(rl.Vector3{X: n.X, Z: n.Z}) < epsilon {
		return rl.Vector3{}
	}
	return SafeNormalize(ProjectOnPlane(rl.Vector3{Y: -1}, n))
}

// DownhillDirection is the horizontal part of SlideDirection.
func DownhillDirection(n rl.Vector3) rl.Vector3 {
	return Horizontal(n)
}

// AngleBetween returns the angle between two unit vectors in radians.
func AngleBetween(a, b rl.Vector3) float32 {
	return float32(math.Acos(float64(rl.Clamp(rl.Vector3DotProduct(a, b), -1, 1))))
}

// SlopeAngle is the angle between a surface normal and world up.
func SlopeAngle(n rl.Vector3) float32 {
	return AngleBetween(n, engine.Up)
}

// NormalsSimilar reports whether two unit normals differ by less than
// tolerance in dot-product terms.
func NormalsSimilar(a, b rl.Vector3, tolerance float32) bool {
	return rl.Vector3DotProduct(a, b) > 1-tolerance
}

// SmoothNormalTransition blends from toward to by factor and renormalizes.
// Opposite normals would blend to zero; from is kept in that case.
func SmoothNormalTransition(from, to rl.Vector3, factor float32) rl.Vector3 {
	n := SafeNormalize(rl.Vector3Lerp(from, to, rl.Clamp(factor, 0, 1)))
	if n == (rl.Vector3{}) {
		return from
	}
	return n
}

// SlopeSpeedModifier scales ground speed by whether direction heads up or
// down the slope under groundNormal.
func SlopeSpeedModifier(groundNormal, direction rl.Vector3, cfg *config.Config) float32 {
	if rl.Vector3Length(direction) < 0.1 {
		return 1
	}
	downhill := DownhillDirection(groundNormal)
	if downhill == (rl.Vector3{}) {
		return 1
	}
	d := rl.Vector3DotProduct(direction, downhill)
	switch {
	case d > 0.1:
		return cfg.Slopes.DownhillMultiplier
	case d < -0.1:
		return cfg.Slopes.UphillMultiplier
	}
	return 1
}
