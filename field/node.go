// Package field holds the simulated node population and its generator
package field

import (
	"github.com/lixenwraith/nodefield/vmath"
)

// Node is one simulated point
// BasePosition, Phase, Mass and Damping are fixed at creation
// Position is rewritten every frame, Velocity only by the inertial integrator
type Node struct {
	Position     vmath.Vec3F
	BasePosition vmath.Vec3F
	Phase        vmath.Vec3F // per-axis oscillator offsets in [0, 2π)
	Velocity     vmath.Vec3F
	Mass         float64 // > 0
	Damping      float64
	FloatOffset  vmath.Vec3F // scratch, recomputed per frame
}
