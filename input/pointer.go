package input

import (
	"github.com/charmbracelet/harmonica"

	"github.com/lixenwraith/nodefield/parameter"
	"github.com/lixenwraith/nodefield/vmath"
)

// Pointer smooths the terminal mouse position with a critically damped spring per axis
// Offset is the lag between the raw target and the smoothed position, in pixels
type Pointer struct {
	spring harmonica.Spring

	targetX, targetY float64
	x, y             float64
	vx, vy           float64

	tracked bool
	visible bool
}

// NewPointer creates a pointer smoother stepping at fps
func NewPointer(fps int) *Pointer {
	if fps <= 0 {
		fps = parameter.DefaultFPS
	}
	return &Pointer{
		spring:  harmonica.NewSpring(harmonica.FPS(fps), parameter.PointerSpringFrequency, parameter.PointerSpringDamping),
		visible: true,
	}
}

// Move sets the raw pointer target in cell coordinates
// The first sample snaps the smoothed position so no offset spike is produced
func (p *Pointer) Move(x, y int) {
	p.targetX = float64(x) + 0.5
	p.targetY = float64(y) + 0.5
	if !p.tracked {
		p.x, p.y = p.targetX, p.targetY
		p.vx, p.vy = 0, 0
		p.tracked = true
	}
}

// SetVisible marks the pointer as present, a hidden pointer produces zero offset
func (p *Pointer) SetVisible(visible bool) {
	p.visible = visible
	if !visible {
		// re-snap on return
		p.tracked = false
	}
}

// Visible reports whether the pointer is inside a focused terminal
func (p *Pointer) Visible() bool {
	return p.visible
}

// Position returns the smoothed pointer in cell coordinates, ok is false while hidden or unseen
func (p *Pointer) Position() (x, y float64, ok bool) {
	if !p.visible || !p.tracked {
		return 0, 0, false
	}
	return p.x, p.y, true
}

// Tick advances the smoothing springs by one frame
func (p *Pointer) Tick() {
	if !p.tracked {
		return
	}
	p.x, p.vx = p.spring.Update(p.x, p.vx, p.targetX)
	p.y, p.vy = p.spring.Update(p.y, p.vy, p.targetY)
}

// Offset returns target minus smoothed position scaled to pixels, y up
func (p *Pointer) Offset() vmath.Vec3F {
	if !p.visible || !p.tracked {
		return vmath.Vec3F{}
	}
	return vmath.Vec3F{
		X: (p.targetX - p.x) * parameter.CellPixelsX,
		Y: -(p.targetY - p.y) * parameter.CellPixelsY,
	}
}
