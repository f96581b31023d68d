package physics

import (
	"math"

	"github.com/lixenwraith/nodefield/field"
	"github.com/lixenwraith/nodefield/parameter"
	"github.com/lixenwraith/nodefield/vmath"
)

// FloatOffset evaluates the three per-axis oscillators at elapsed seconds t
// |x|,|y| <= amplitude and |z| <= amplitude*0.5 for all t
func FloatOffset(phase vmath.Vec3F, t, amplitude, frequency float64) vmath.Vec3F {
	scaled := t * frequency
	return vmath.Vec3F{
		X: math.Sin(scaled+phase.X) * amplitude,
		Y: math.Sin(scaled*parameter.FloatRatioY+phase.Y) * amplitude,
		Z: math.Sin(scaled*parameter.FloatRatioZ+phase.Z) * amplitude * parameter.FloatAmplitudeRatioZ,
	}
}

// Float places every node on its floating path at elapsed seconds t
// Pure function of (BasePosition, Phase, t): restartable and deterministic
func Float(nodes []field.Node, t, amplitude, frequency float64) {
	for i := range nodes {
		n := &nodes[i]
		n.FloatOffset = FloatOffset(n.Phase, t, amplitude, frequency)
		n.Position = vmath.V3FAdd(n.BasePosition, n.FloatOffset)
	}
}
