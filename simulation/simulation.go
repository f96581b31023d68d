// Package simulation owns the node field store and runs the fixed per-frame pipeline:
// physics update, connection refresh, pulse spawn, pulse advance, output handoff
package simulation

import (
	"fmt"
	"log"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/nodefield/config"
	"github.com/lixenwraith/nodefield/field"
	"github.com/lixenwraith/nodefield/graph"
	"github.com/lixenwraith/nodefield/parameter"
	"github.com/lixenwraith/nodefield/physics"
	"github.com/lixenwraith/nodefield/pulse"
	"github.com/lixenwraith/nodefield/status"
	"github.com/lixenwraith/nodefield/vmath"
)

// NodeStride is the float count per node in the position buffer
const NodeStride = 3

// FrameInput is what the owning collaborator supplies on each frame callback
type FrameInput struct {
	// Elapsed is monotonically increasing seconds since simulation start
	Elapsed float64
	// PointerOffset is the smoothed recent pointer movement, inertial mode only
	PointerOffset vmath.Vec3F
}

// Frame is the renderer handoff; all slices are rewritten in place by the next Update
type Frame struct {
	// Nodes holds [x y z] per node, index-stable across frames
	Nodes []float32
	// Segments holds [x1 y1 z1 x2 y2 z2] per connection, from live positions
	Segments []float32
	// PulseSlots is a fixed MaxPulses*3 buffer, unused slots parked at PulseHiddenZ
	PulseSlots []float32
	// Pulses is the active set in insertion order, Opacity is parallel to it
	Pulses  []pulse.Pulse
	Opacity []float64
	// Retired lists pulses that completed their edge this frame
	Retired []pulse.Pulse
	// Step is the clamped delta used this frame
	Step float64
	// Physics reports inertial integration stats
	Physics physics.StepStats
}

// Simulation is the single store for node, connection and pulse state
// Not safe for concurrent use: exactly one frame callback drives it
type Simulation struct {
	cfg   config.Config
	seed  uint64
	nodes []field.Node
	conns []graph.Connection

	integrator *physics.Integrator
	scheduler  *pulse.Scheduler

	lastElapsed float64
	started     bool
	frame       Frame

	metrics  *status.Registry
	frames   *atomic.Int64
	spawned  *atomic.Int64
	retired  *atomic.Int64
	clamped  *atomic.Int64
	velClamp *atomic.Int64
	maxSpeed *status.AtomicFloat
	active   *status.AtomicFloat
	elapsed  *status.AtomicFloat
	gravity  *status.AtomicFloat
}

// Option customizes a Simulation at construction
type Option func(*Simulation)

// WithRegistry publishes frame metrics into reg instead of a private registry
func WithRegistry(reg *status.Registry) Option {
	return func(s *Simulation) {
		s.metrics = reg
	}
}

// New generates the field, freezes the connection graph and prepares output buffers
// Returns an error only for invalid configuration
func New(cfg *config.Config, opts ...Option) (*Simulation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("new simulation: %w", err)
	}

	s := &Simulation{
		cfg:  *cfg,
		seed: cfg.Seed,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.metrics == nil {
		s.metrics = status.NewRegistry()
	}
	if s.seed == 0 {
		s.seed = uint64(time.Now().UnixNano())
	}

	rng := vmath.NewFastRand(s.seed)
	s.nodes = field.Generate(cfg.NodeCount, field.Spec{
		Bounds:  cfg.Bounds,
		Mass:    cfg.Mass,
		Damping: cfg.NodeDamping,
	}, rng)
	s.conns = graph.Build(s.nodes, cfg.Graph.MaxDistance, cfg.Graph.MaxDegree)
	s.integrator = physics.NewIntegrator(cfg.Physics)
	s.scheduler = pulse.NewScheduler(cfg.Pulse, rng)

	s.frame = Frame{
		Nodes:      make([]float32, len(s.nodes)*NodeStride),
		Segments:   make([]float32, len(s.conns)*graph.SegmentStride),
		PulseSlots: make([]float32, cfg.Pulse.MaxPulses*NodeStride),
		Pulses:     make([]pulse.Pulse, 0, cfg.Pulse.MaxPulses),
		Opacity:    make([]float64, 0, cfg.Pulse.MaxPulses),
		Retired:    make([]pulse.Pulse, 0, cfg.Pulse.MaxPulses),
	}

	s.bindMetrics()

	log.Printf("nodefield: %d nodes, %d connections, mode %s, seed %d",
		len(s.nodes), len(s.conns), cfg.Physics.Mode, s.seed)
	return s, nil
}

// Update runs one frame and returns the renderer handoff
// Delta is derived from successive Elapsed values and clamped to [0, MaxFrameStep]
func (s *Simulation) Update(in FrameInput) *Frame {
	dt := 0.0
	if s.started {
		dt = in.Elapsed - s.lastElapsed
	}
	s.started = true
	s.lastElapsed = in.Elapsed

	if dt > s.cfg.MaxFrameStep {
		dt = s.cfg.MaxFrameStep
		s.clamped.Add(1)
	}
	if dt < 0 {
		dt = 0
	}

	f := &s.frame
	f.Step = dt
	f.Retired = f.Retired[:0]

	// 1. Node motion
	f.Physics = s.integrator.Step(s.nodes, in.Elapsed, dt, in.PointerOffset)

	// 2. Connection refresh from live positions
	graph.WriteSegments(f.Segments, s.nodes, s.conns)

	// 3-4. Pulse lifecycle
	if s.scheduler.TrySpawn(s.conns, in.Elapsed) {
		s.spawned.Add(1)
	}
	if n := s.scheduler.Advance(s.nodes, s.conns, dt, s.collectRetired); n > 0 {
		s.retired.Add(int64(n))
	}

	// 5. Output handoff
	s.writeNodes()
	s.writePulses()
	s.publish(in)

	return f
}

func (s *Simulation) collectRetired(p pulse.Pulse) {
	s.frame.Retired = append(s.frame.Retired, p)
}

func (s *Simulation) writeNodes() {
	buf := s.frame.Nodes
	for i := range s.nodes {
		p := s.nodes[i].Position
		offset := i * NodeStride
		buf[offset] = float32(p.X)
		buf[offset+1] = float32(p.Y)
		buf[offset+2] = float32(p.Z)
	}
}

// writePulses fills the sparse active list and the fixed slot buffer
func (s *Simulation) writePulses() {
	f := &s.frame
	f.Pulses = s.scheduler.Snapshot(f.Pulses)
	f.Opacity = f.Opacity[:0]

	slots := len(f.PulseSlots) / NodeStride
	for i := 0; i < slots; i++ {
		offset := i * NodeStride
		if i < len(f.Pulses) {
			p := f.Pulses[i].Position
			f.PulseSlots[offset] = float32(p.X)
			f.PulseSlots[offset+1] = float32(p.Y)
			f.PulseSlots[offset+2] = float32(p.Z)
			continue
		}
		f.PulseSlots[offset] = 0
		f.PulseSlots[offset+1] = 0
		f.PulseSlots[offset+2] = parameter.PulseHiddenZ
	}

	for _, p := range f.Pulses {
		f.Opacity = append(f.Opacity, pulse.Opacity(p.Progress))
	}
}

// SetMode switches between kinematic and inertial floating
// Velocities restart from rest so the inertial model does not inherit stale state
func (s *Simulation) SetMode(mode physics.Mode) {
	if mode == s.integrator.Params().Mode {
		return
	}
	for i := range s.nodes {
		s.nodes[i].Velocity = vmath.Vec3F{}
	}
	s.integrator.SetMode(mode)
	s.cfg.Physics.Mode = mode
	log.Printf("nodefield: mode %s", mode)
}

// Mode returns the active floating model
func (s *Simulation) Mode() physics.Mode {
	return s.integrator.Params().Mode
}

// Nodes returns the live node store, read-only for callers
func (s *Simulation) Nodes() []field.Node {
	return s.nodes
}

// Connections returns the frozen topology
func (s *Simulation) Connections() []graph.Connection {
	return s.conns
}

// Seed returns the effective seed, resolved from the clock when configured as 0
func (s *Simulation) Seed() uint64 {
	return s.seed
}

// Config returns a copy of the configuration the simulation was built with
func (s *Simulation) Config() config.Config {
	return s.cfg
}

// Metrics returns the registry frame metrics are published to
func (s *Simulation) Metrics() *status.Registry {
	return s.metrics
}
