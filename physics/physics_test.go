package physics

import (
	"math"
	"testing"

	"github.com/lixenwraith/nodefield/field"
	"github.com/lixenwraith/nodefield/vmath"
)

const epsilon = 1e-9

func testField(count int) []field.Node {
	return field.Generate(count, field.Spec{
		Bounds: vmath.Box{
			X: vmath.Range{Min: -3, Max: 3},
			Y: vmath.Range{Min: -3, Max: 3},
			Z: vmath.Range{Min: -2, Max: 2},
		},
		Mass:    vmath.Range{Min: 0.5, Max: 2.0},
		Damping: vmath.Range{Min: 0.88, Max: 0.96},
	}, vmath.NewFastRand(2024))
}

func TestKinematicAmplitudeBounds(t *testing.T) {
	nodes := testField(35)
	in := NewIntegrator(DefaultParams())
	amp := in.Params().FloatAmplitude

	for frame := 0; frame < 2000; frame++ {
		elapsed := float64(frame) * 0.173
		in.Step(nodes, elapsed, 0.016, vmath.Vec3F{})

		for i, n := range nodes {
			d := vmath.V3FSub(n.Position, n.BasePosition)
			if math.Abs(d.X) > amp+epsilon || math.Abs(d.Y) > amp+epsilon {
				t.Fatalf("t=%f node %d: xy offset %+v exceeds amplitude %f", elapsed, i, d, amp)
			}
			if math.Abs(d.Z) > amp*0.5+epsilon {
				t.Fatalf("t=%f node %d: z offset %f exceeds half amplitude", elapsed, i, d.Z)
			}
			if n.Velocity != (vmath.Vec3F{}) {
				t.Fatalf("Expected kinematic mode to leave velocity untouched, got %+v", n.Velocity)
			}
		}
	}
}

func TestKinematicIsPureFunctionOfTime(t *testing.T) {
	a := testField(10)
	b := testField(10)
	in := NewIntegrator(DefaultParams())

	// a visits many frames, b jumps straight to the final time
	for frame := 0; frame <= 100; frame++ {
		in.Step(a, float64(frame)*0.05, 0.05, vmath.Vec3F{})
	}
	in.Step(b, 5.0, 0.05, vmath.Vec3F{})

	for i := range a {
		if vmath.V3FDist(a[i].Position, b[i].Position) > epsilon {
			t.Errorf("Node %d: expected identical positions, got %+v vs %+v", i, a[i].Position, b[i].Position)
		}
	}
}

func TestFloatOffsetFormula(t *testing.T) {
	phase := vmath.Vec3F{X: 0.3, Y: 1.1, Z: 2.0}
	got := FloatOffset(phase, 2.5, 0.25, 0.4)
	scaled := 2.5 * 0.4
	want := vmath.Vec3F{
		X: math.Sin(scaled+0.3) * 0.25,
		Y: math.Sin(scaled*0.8+1.1) * 0.25,
		Z: math.Sin(scaled*0.6+2.0) * 0.25 * 0.5,
	}
	if vmath.V3FDist(got, want) > epsilon {
		t.Errorf("Expected %+v, got %+v", want, got)
	}
}

func TestStepEmptyIsNoop(t *testing.T) {
	for _, mode := range []Mode{ModeKinematic, ModeInertial} {
		params := DefaultParams()
		params.Mode = mode
		stats := NewIntegrator(params).Step(nil, 1, 0.016, vmath.Vec3F{X: 100})
		if stats != (StepStats{}) {
			t.Errorf("%s: expected zero stats for empty set, got %+v", mode, stats)
		}
	}
}

// distanceToTargetAfterOneSecond integrates a single displaced node for 1s of frames
func distanceToTargetAfterOneSecond(stiffness float64) float64 {
	params := DefaultParams()
	params.Mode = ModeInertial
	params.SpringStiffness = stiffness
	in := NewIntegrator(params)

	base := vmath.Vec3F{X: 1, Y: 0.5}
	nodes := []field.Node{{
		Position:     vmath.Vec3F{X: 2, Y: 1},
		BasePosition: base,
		Mass:         1,
		Damping:      0.9,
	}}

	const steps = 60
	dt := 1.0 / steps
	elapsed := 0.0
	for i := 0; i < steps; i++ {
		elapsed += dt
		in.Step(nodes, elapsed, dt, vmath.Vec3F{})
	}

	target := vmath.V3FAdd(base, FloatOffset(vmath.Vec3F{}, elapsed, params.FloatAmplitude, params.FloatFrequency))
	return vmath.V3FDist(nodes[0].Position, target)
}

func TestInertialConvergesWithStiffness(t *testing.T) {
	initial := vmath.V3FDist(vmath.Vec3F{X: 2, Y: 1}, vmath.Vec3F{X: 1, Y: 0.5})

	prev := math.Inf(1)
	for _, k := range []float64{1, 3, 10} {
		d := distanceToTargetAfterOneSecond(k)
		if math.IsNaN(d) || math.IsInf(d, 0) {
			t.Fatalf("stiffness %f: non-finite distance", k)
		}
		if d >= prev {
			t.Errorf("stiffness %f: expected distance below %f, got %f", k, prev, d)
		}
		prev = d
	}
	if prev >= initial {
		t.Errorf("Expected node to approach target, final %f initial %f", prev, initial)
	}
}

func TestInertialVelocityClamp(t *testing.T) {
	params := DefaultParams()
	params.Mode = ModeInertial
	params.SpringStiffness = 100
	in := NewIntegrator(params)

	nodes := testField(35)
	for i := range nodes {
		nodes[i].Position = vmath.V3FAdd(nodes[i].Position, vmath.Vec3F{X: 50, Y: -50, Z: 20})
	}

	clamped := 0
	elapsed := 0.0
	for frame := 0; frame < 120; frame++ {
		elapsed += 0.1
		stats := in.Step(nodes, elapsed, 0.1, vmath.Vec3F{X: 300, Y: 200})
		clamped += stats.Clamped

		if stats.MaxSpeed > params.MaxVelocity+epsilon {
			t.Fatalf("frame %d: reported max speed %f above limit", frame, stats.MaxSpeed)
		}
		for i, n := range nodes {
			if speed := vmath.V3FMag(n.Velocity); speed > params.MaxVelocity+epsilon {
				t.Fatalf("frame %d node %d: speed %f exceeds %f", frame, i, speed, params.MaxVelocity)
			}
			if !vmath.V3FIsFinite(n.Position) || !vmath.V3FIsFinite(n.Velocity) {
				t.Fatalf("frame %d node %d: non-finite state %+v", frame, i, n)
			}
		}
	}
	if clamped == 0 {
		t.Error("Expected large displacement to trigger the velocity clamp")
	}
}

func TestInertialNodeAtAttractor(t *testing.T) {
	params := DefaultParams()
	params.Mode = ModeInertial
	in := NewIntegrator(params)

	nodes := []field.Node{{Mass: 1, Damping: 0.9}}
	in.Step(nodes, 0, 0.016, vmath.Vec3F{})

	if !vmath.V3FIsFinite(nodes[0].Position) || !vmath.V3FIsFinite(nodes[0].Velocity) {
		t.Errorf("Expected finite state at the attractor, got %+v", nodes[0])
	}
}

func TestGravityForce(t *testing.T) {
	t.Run("inside min distance", func(t *testing.T) {
		f := GravityForce(vmath.Vec3F{X: 0.05}, vmath.Vec3F{}, 0.15, 1, 0.3, 0.1)
		if f != (vmath.Vec3F{}) {
			t.Errorf("Expected zero force, got %+v", f)
		}
	})

	t.Run("at min distance", func(t *testing.T) {
		f := GravityForce(vmath.Vec3F{X: 0.1}, vmath.Vec3F{}, 0.15, 1, 0.3, 0.1)
		if f != (vmath.Vec3F{}) {
			t.Errorf("Expected zero force at threshold, got %+v", f)
		}
	})

	t.Run("magnitude and direction", func(t *testing.T) {
		f := GravityForce(vmath.Vec3F{X: 2}, vmath.Vec3F{}, 0.15, 2, 0.3, 0.1)
		want := 0.15 * 2 / (1 + 2*0.3)
		if math.Abs(vmath.V3FMag(f)-want) > epsilon {
			t.Errorf("Expected magnitude %f, got %f", want, vmath.V3FMag(f))
		}
		if f.X >= 0 || f.Y != 0 || f.Z != 0 {
			t.Errorf("Expected force along -x toward attractor, got %+v", f)
		}
	})
}

func TestGravityMultiplier(t *testing.T) {
	if got := GravityMultiplier(vmath.Vec3F{}, 0.002); got != 1 {
		t.Errorf("Expected 1 without pointer movement, got %f", got)
	}
	got := GravityMultiplier(vmath.Vec3F{X: 300, Y: 400}, 0.002)
	if math.Abs(got-2) > epsilon {
		t.Errorf("Expected 2 for 500px movement, got %f", got)
	}
}

func TestModeText(t *testing.T) {
	for _, m := range []Mode{ModeKinematic, ModeInertial} {
		text, err := m.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText(%d): %v", m, err)
		}
		var back Mode
		if err := back.UnmarshalText(text); err != nil {
			t.Fatalf("UnmarshalText(%q): %v", text, err)
		}
		if back != m {
			t.Errorf("Expected %s, got %s", m, back)
		}
	}

	var m Mode
	if err := m.UnmarshalText([]byte("chaotic")); err == nil {
		t.Error("Expected error for unknown mode")
	}
}
