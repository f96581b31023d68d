package field

import (
	"github.com/lixenwraith/nodefield/vmath"
)

// Spec describes the random population drawn by Generate
type Spec struct {
	Bounds  vmath.Box
	Mass    vmath.Range
	Damping vmath.Range
}

// Generate creates count nodes drawn independently and uniformly from spec
// Position and BasePosition start identical; Velocity and FloatOffset start at zero
// count <= 0 yields an empty slice
func Generate(count int, spec Spec, rng *vmath.FastRand) []Node {
	if count <= 0 {
		return []Node{}
	}

	nodes := make([]Node, count)
	for i := range nodes {
		pos := vmath.Vec3F{
			X: rng.InRange(spec.Bounds.X.Min, spec.Bounds.X.Max),
			Y: rng.InRange(spec.Bounds.Y.Min, spec.Bounds.Y.Max),
			Z: rng.InRange(spec.Bounds.Z.Min, spec.Bounds.Z.Max),
		}

		nodes[i] = Node{
			Position:     pos,
			BasePosition: pos,
			Phase: vmath.Vec3F{
				X: rng.Float64() * vmath.Tau,
				Y: rng.Float64() * vmath.Tau,
				Z: rng.Float64() * vmath.Tau,
			},
			Mass:    rng.InRange(spec.Mass.Min, spec.Mass.Max),
			Damping: rng.InRange(spec.Damping.Min, spec.Damping.Max),
		}
	}
	return nodes
}
