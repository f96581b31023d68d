package render

import (
	"math"

	"github.com/lixenwraith/nodefield/parameter"
	"github.com/lixenwraith/nodefield/vmath"
)

// Camera is a pinhole camera on the +z axis looking at the origin
type Camera struct {
	Z      float64 // camera position along z
	FOV    float64 // vertical field of view, degrees
	Near   float64 // min depth in front of the camera
	Aspect float64 // cell height/width ratio, stretches x
}

// DefaultCamera mirrors the hero canvas camera: z=10, 45° vertical FOV
func DefaultCamera() Camera {
	return Camera{
		Z:      parameter.CameraZ,
		FOV:    parameter.CameraFOV,
		Near:   parameter.CameraNear,
		Aspect: parameter.CellAspect,
	}
}

// Projected is a point mapped into continuous cell coordinates
type Projected struct {
	X, Y  float64
	Depth float64 // distance from camera along view axis
	Scale float64 // cells per world unit at this depth (rows)
}

// Project maps p into a w x h cell viewport
// ok is false for points at or behind the near plane
func (c Camera) Project(p vmath.Vec3F, w, h int) (Projected, bool) {
	depth := c.Z - p.Z
	if depth < c.Near {
		return Projected{}, false
	}

	focal := (float64(h) / 2) / math.Tan(c.FOV*math.Pi/360)
	scale := focal / depth

	return Projected{
		X:     float64(w)/2 + p.X*scale*c.Aspect,
		Y:     float64(h)/2 - p.Y*scale,
		Depth: depth,
		Scale: scale,
	}, true
}
