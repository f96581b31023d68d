package render

import (
	"math"
	"sort"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/nodefield/parameter"
	"github.com/lixenwraith/nodefield/simulation"
	"github.com/lixenwraith/nodefield/vmath"
)

// Palette holds the resolved scene colors
type Palette struct {
	Background RGB
	Node       RGB
	Connection RGB
	Pulse      RGB
	HUD        RGB
}

// DefaultPalette resolves the parameter hex constants
func DefaultPalette() Palette {
	return Palette{
		Background: MustParseHex(parameter.ColorBackground),
		Node:       MustParseHex(parameter.ColorNode),
		Connection: MustParseHex(parameter.ColorConnection),
		Pulse:      MustParseHex(parameter.ColorPulse),
		HUD:        MustParseHex(parameter.ColorHUD),
	}
}

// Scene draws simulation frames onto a tcell screen
// Reuses its projection buffers across frames
type Scene struct {
	screen  tcell.Screen
	camera  Camera
	palette Palette

	offsetX, offsetY float64

	projected []Projected
	visible   []bool
	order     []int
}

// NewScene creates a scene bound to screen
func NewScene(screen tcell.Screen, camera Camera, palette Palette) *Scene {
	return &Scene{
		screen:  screen,
		camera:  camera,
		palette: palette,
	}
}

// SetOffset shifts the projected scene by (dx, dy) cells, (0, 0) keeps it centered
func (s *Scene) SetOffset(dx, dy float64) {
	s.offsetX, s.offsetY = dx, dy
}

// project maps p through the camera and applies the scene offset
func (s *Scene) project(p vmath.Vec3F, w, h int) (Projected, bool) {
	pr, ok := s.camera.Project(p, w, h)
	if !ok {
		return pr, false
	}
	pr.X += s.offsetX
	pr.Y += s.offsetY
	return pr, true
}

// ViewSize returns the drawable area, excluding the HUD rows
func (s *Scene) ViewSize() (int, int) {
	w, h := s.screen.Size()
	h -= parameter.HUDRows
	if h < 0 {
		h = 0
	}
	return w, h
}

// Draw renders frame and the hud line, then shows the screen
func (s *Scene) Draw(frame *simulation.Frame, hud string) {
	w, h := s.ViewSize()
	bg := s.palette.Background.Color()
	bgStyle := tcell.StyleDefault.Background(bg)

	fullW, fullH := s.screen.Size()
	for y := 0; y < fullH; y++ {
		for x := 0; x < fullW; x++ {
			s.screen.SetContent(x, y, ' ', nil, bgStyle)
		}
	}

	if frame != nil && w > 0 && h > 0 {
		s.drawSegments(frame, w, h, bgStyle)
		s.drawNodes(frame, w, h, bgStyle)
		s.drawPulses(frame, w, h, bgStyle)
	}
	s.drawHUD(hud, fullW, fullH, bgStyle)

	s.screen.Show()
}

func (s *Scene) put(x, y, w, h int, r rune, style tcell.Style) {
	if x < 0 || y < 0 || x >= w || y >= h {
		return
	}
	s.screen.SetContent(x, y, r, nil, style)
}

func vecAt(buf []float32, i int) vmath.Vec3F {
	return vmath.Vec3F{X: float64(buf[i]), Y: float64(buf[i+1]), Z: float64(buf[i+2])}
}

func (s *Scene) drawSegments(frame *simulation.Frame, w, h int, bgStyle tcell.Style) {
	fg := Lerp(s.palette.Background, s.palette.Connection, parameter.LineOpacity).Color()
	style := bgStyle.Foreground(fg)

	for i := 0; i+5 < len(frame.Segments); i += 6 {
		a, okA := s.project(vecAt(frame.Segments, i), w, h)
		b, okB := s.project(vecAt(frame.Segments, i+3), w, h)
		if !okA || !okB || !onCanvas(a, w, h) || !onCanvas(b, w, h) {
			continue
		}
		vmath.Traverse(a.X, a.Y, b.X, b.Y, func(x, y int) bool {
			s.put(x, y, w, h, parameter.GlyphConnection, style)
			return true
		})
	}
}

// onCanvas bounds line walks for endpoints projected close to the near plane
func onCanvas(p Projected, w, h int) bool {
	limit := float64(4 * (w + h))
	return math.Abs(p.X) < limit && math.Abs(p.Y) < limit
}

// drawNodes paints far to near so closer nodes win shared cells
func (s *Scene) drawNodes(frame *simulation.Frame, w, h int, bgStyle tcell.Style) {
	count := len(frame.Nodes) / simulation.NodeStride
	if cap(s.projected) < count {
		s.projected = make([]Projected, count)
		s.visible = make([]bool, count)
		s.order = make([]int, 0, count)
	}
	s.projected = s.projected[:count]
	s.visible = s.visible[:count]
	s.order = s.order[:0]

	minDepth, maxDepth := 0.0, 0.0
	for i := 0; i < count; i++ {
		p, ok := s.project(vecAt(frame.Nodes, i*simulation.NodeStride), w, h)
		s.projected[i] = p
		s.visible[i] = ok
		if !ok {
			continue
		}
		if len(s.order) == 0 || p.Depth < minDepth {
			minDepth = p.Depth
		}
		if len(s.order) == 0 || p.Depth > maxDepth {
			maxDepth = p.Depth
		}
		s.order = append(s.order, i)
	}

	sort.Slice(s.order, func(a, b int) bool {
		return s.projected[s.order[a]].Depth > s.projected[s.order[b]].Depth
	})

	span := maxDepth - minDepth
	for _, i := range s.order {
		p := s.projected[i]
		depthT := 0.0
		if span > 0 {
			depthT = (p.Depth - minDepth) / span
		}
		fg := Scale(s.palette.Node, 1-depthT*parameter.NodeDepthFade).Color()
		s.put(int(math.Floor(p.X)), int(math.Floor(p.Y)), w, h, parameter.GlyphNode, bgStyle.Foreground(fg))
	}
}

func (s *Scene) drawPulses(frame *simulation.Frame, w, h int, bgStyle tcell.Style) {
	for i := range frame.Pulses {
		off := i * simulation.NodeStride
		if off+2 >= len(frame.PulseSlots) {
			break
		}
		pos := vecAt(frame.PulseSlots, off)
		if pos.Z <= parameter.PulseHiddenZ {
			continue
		}
		p, ok := s.project(pos, w, h)
		if !ok {
			continue
		}
		opacity := 0.0
		if i < len(frame.Opacity) {
			opacity = frame.Opacity[i]
		}
		fg := Lerp(s.palette.Background, s.palette.Pulse, opacity*parameter.PulseOpacityScale).Color()
		s.put(int(math.Floor(p.X)), int(math.Floor(p.Y)), w, h, parameter.GlyphPulse, bgStyle.Foreground(fg))
	}
}

func (s *Scene) drawHUD(hud string, w, h int, bgStyle tcell.Style) {
	if h < parameter.HUDRows || hud == "" {
		return
	}
	style := bgStyle.Foreground(s.palette.HUD.Color())
	y := h - parameter.HUDRows
	x := 0
	for _, r := range hud {
		if x >= w {
			break
		}
		s.screen.SetContent(x, y, r, nil, style)
		x++
	}
}
