package render

import (
	"math"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/nodefield/parameter"
	"github.com/lixenwraith/nodefield/pulse"
	"github.com/lixenwraith/nodefield/simulation"
	"github.com/lixenwraith/nodefield/vmath"
)

func TestParseHex(t *testing.T) {
	c, err := ParseHex("#a855f7")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if c != (RGB{R: 0xa8, G: 0x55, B: 0xf7}) {
		t.Errorf("Expected a855f7, got %+v", c)
	}

	if _, err := ParseHex("575757"); err != nil {
		t.Errorf("Expected bare hex to parse, got %v", err)
	}

	for _, bad := range []string{"", "#fff", "#gggggg", "#1234567"} {
		if _, err := ParseHex(bad); err == nil {
			t.Errorf("Expected error for %q", bad)
		}
	}
}

func TestLerpAndScale(t *testing.T) {
	a := RGB{R: 0, G: 100, B: 200}
	b := RGB{R: 100, G: 0, B: 200}

	if got := Lerp(a, b, 0); got != a {
		t.Errorf("Expected a at t=0, got %+v", got)
	}
	if got := Lerp(a, b, 1); got != b {
		t.Errorf("Expected b at t=1, got %+v", got)
	}
	if got := Lerp(a, b, 0.5); got != (RGB{R: 50, G: 50, B: 200}) {
		t.Errorf("Expected midpoint, got %+v", got)
	}

	if got := Scale(RGB{R: 200, G: 100, B: 10}, 2); got != (RGB{R: 255, G: 200, B: 20}) {
		t.Errorf("Expected saturated scale, got %+v", got)
	}
	if got := Scale(RGB{R: 200, G: 100, B: 10}, -1); got != (RGB{}) {
		t.Errorf("Expected black for negative factor, got %+v", got)
	}
}

func TestCameraProject(t *testing.T) {
	cam := DefaultCamera()
	w, h := 40, 20

	p, ok := cam.Project(vmath.Vec3F{}, w, h)
	if !ok {
		t.Fatal("Expected origin to be visible")
	}
	if p.X != 20 || p.Y != 10 {
		t.Errorf("Expected origin at center (20,10), got (%v,%v)", p.X, p.Y)
	}
	if p.Depth != parameter.CameraZ {
		t.Errorf("Expected depth %v, got %v", parameter.CameraZ, p.Depth)
	}

	up, _ := cam.Project(vmath.Vec3F{Y: 1}, w, h)
	if up.Y >= p.Y {
		t.Errorf("Expected +y above center, got row %v", up.Y)
	}

	right, _ := cam.Project(vmath.Vec3F{X: 1}, w, h)
	dx := right.X - p.X
	if math.Abs(dx-(p.Y-up.Y)*parameter.CellAspect) > 1e-9 {
		t.Errorf("Expected x stretched by aspect, got dx=%v dy=%v", dx, p.Y-up.Y)
	}

	near, _ := cam.Project(vmath.Vec3F{X: 1, Z: 5}, w, h)
	if near.X-p.X <= dx {
		t.Errorf("Expected closer points to spread wider")
	}

	if _, ok := cam.Project(vmath.Vec3F{Z: parameter.CameraZ}, w, h); ok {
		t.Error("Expected point on camera plane to be rejected")
	}
	if _, ok := cam.Project(vmath.Vec3F{Z: 20}, w, h); ok {
		t.Error("Expected point behind camera to be rejected")
	}
}

func newTestScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("screen init: %v", err)
	}
	screen.SetSize(w, h)
	t.Cleanup(screen.Fini)
	return screen
}

func runeAt(screen tcell.Screen, x, y int) rune {
	r, _, _, _ := screen.GetContent(x, y)
	return r
}

func TestSceneDrawsNodesAndSegments(t *testing.T) {
	screen := newTestScreen(t, 40, 20)
	scene := NewScene(screen, DefaultCamera(), DefaultPalette())

	// two nodes on the x axis joined by one connection
	frame := &simulation.Frame{
		Nodes:    []float32{-2, 0, 0, 2, 0, 0},
		Segments: []float32{-2, 0, 0, 2, 0, 0},
	}
	scene.Draw(frame, "nodes 2")

	w, h := scene.ViewSize()
	if w != 40 || h != 19 {
		t.Fatalf("Expected view 40x19, got %dx%d", w, h)
	}

	left, _ := scene.camera.Project(vmath.Vec3F{X: -2}, w, h)
	right, _ := scene.camera.Project(vmath.Vec3F{X: 2}, w, h)
	row := int(math.Floor(left.Y))

	if r := runeAt(screen, int(left.X), row); r != parameter.GlyphNode {
		t.Errorf("Expected node at left endpoint, got %q", r)
	}
	if r := runeAt(screen, int(right.X), row); r != parameter.GlyphNode {
		t.Errorf("Expected node at right endpoint, got %q", r)
	}
	if r := runeAt(screen, 20, row); r != parameter.GlyphConnection {
		t.Errorf("Expected connection glyph mid-segment, got %q", r)
	}
	if r := runeAt(screen, 20, 0); r != ' ' {
		t.Errorf("Expected background away from geometry, got %q", r)
	}

	hud := ""
	for x := 0; x < 7; x++ {
		hud += string(runeAt(screen, x, 19))
	}
	if hud != "nodes 2" {
		t.Errorf("Expected HUD on last row, got %q", hud)
	}
}

func TestSceneSkipsParkedPulses(t *testing.T) {
	screen := newTestScreen(t, 40, 20)
	scene := NewScene(screen, DefaultCamera(), DefaultPalette())

	hidden := float32(parameter.PulseHiddenZ)
	frame := &simulation.Frame{
		PulseSlots: []float32{0, 0, 0, 0, 0, hidden},
		Pulses:     []pulse.Pulse{{ID: 1, Progress: 0.5}},
		Opacity:    []float64{1},
	}
	scene.Draw(frame, "")

	count := 0
	for y := 0; y < 19; y++ {
		for x := 0; x < 40; x++ {
			if runeAt(screen, x, y) == parameter.GlyphPulse {
				count++
			}
		}
	}
	if count != 1 {
		t.Errorf("Expected exactly one pulse glyph, got %d", count)
	}
	if r := runeAt(screen, 20, 9); r != parameter.GlyphPulse {
		t.Errorf("Expected active pulse at center, got %q", r)
	}
}

func TestSceneNodesNearerWin(t *testing.T) {
	screen := newTestScreen(t, 40, 20)
	scene := NewScene(screen, DefaultCamera(), DefaultPalette())

	// same screen cell, different depth
	frame := &simulation.Frame{Nodes: []float32{0, 0, -2, 0, 0, 2}}
	scene.Draw(frame, "")

	_, _, style, _ := screen.GetContent(20, 9)
	fg, _, _ := style.Decompose()
	want := DefaultPalette().Node.Color()
	if fg != want {
		t.Errorf("Expected nearest node at full brightness %v, got %v", want, fg)
	}
}

func TestSceneOffsetShiftsProjection(t *testing.T) {
	screen := newTestScreen(t, 40, 20)
	scene := NewScene(screen, DefaultCamera(), DefaultPalette())
	frame := &simulation.Frame{Nodes: []float32{0, 0, 0}}

	scene.Draw(frame, "")
	if r := runeAt(screen, 20, 9); r != parameter.GlyphNode {
		t.Fatalf("Expected centered node at (20,9), got %q", r)
	}

	scene.SetOffset(5, 2)
	scene.Draw(frame, "")
	if r := runeAt(screen, 25, 11); r != parameter.GlyphNode {
		t.Errorf("Expected shifted node at (25,11), got %q", r)
	}
	if r := runeAt(screen, 20, 9); r == parameter.GlyphNode {
		t.Error("Expected original cell cleared after shift")
	}
}
