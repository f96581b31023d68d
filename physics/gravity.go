package physics

import (
	"github.com/lixenwraith/nodefield/vmath"
)

// GravityForce returns the pull on a body at pos toward attractor
// Magnitude is strength*multiplier / (1 + distance*falloff), weaker with distance
// Returns zero inside minDistance so the direction is never normalized from a near-zero length
func GravityForce(pos, attractor vmath.Vec3F, strength, multiplier, falloff, minDistance float64) vmath.Vec3F {
	delta := vmath.V3FSub(attractor, pos)
	distance := vmath.V3FMag(delta)
	if distance <= minDistance {
		return vmath.Vec3F{}
	}

	magnitude := strength * multiplier / (1 + distance*falloff)
	return vmath.V3FScale(vmath.V3FNormalize(delta), magnitude)
}

// GravityMultiplier boosts gravity with recent pointer movement: 1 + gain*|offset|
func GravityMultiplier(pointerOffset vmath.Vec3F, gain float64) float64 {
	return 1 + vmath.V3FMag(pointerOffset)*gain
}
