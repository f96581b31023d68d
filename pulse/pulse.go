// Package pulse schedules short-lived markers traveling along graph edges
package pulse

import (
	"github.com/lixenwraith/nodefield/field"
	"github.com/lixenwraith/nodefield/graph"
	"github.com/lixenwraith/nodefield/parameter"
	"github.com/lixenwraith/nodefield/vmath"
)

// Pulse is a marker traveling along one connection
// Progress grows monotonically in [0, 1); the pulse retires the frame it reaches 1
type Pulse struct {
	ID         uint64 // spawn sequence number, unique per scheduler
	Connection int    // index into the frozen connection list
	Progress   float64
	Position   vmath.Vec3F
}

// Params configures spawning and travel
type Params struct {
	MaxPulses     int     `yaml:"max_pulses" env:"MAX"`
	SpawnInterval float64 `yaml:"spawn_interval" env:"SPAWN_INTERVAL"`
	Speed         float64 `yaml:"speed" env:"SPEED"`
}

// DefaultParams returns the tuning from the parameter package
func DefaultParams() Params {
	return Params{
		MaxPulses:     parameter.MaxPulses,
		SpawnInterval: parameter.PulseSpawnInterval,
		Speed:         parameter.PulseSpeed,
	}
}

// Scheduler owns the active pulse set: spawned -> traveling -> retired
// Not safe for concurrent use, driven from the frame callback only
type Scheduler struct {
	params    Params
	rng       *vmath.FastRand
	active    []Pulse
	lastSpawn float64
	nextID    uint64
}

// NewScheduler creates an empty scheduler; the first spawn is allowed at time 0
func NewScheduler(params Params, rng *vmath.FastRand) *Scheduler {
	capacity := params.MaxPulses
	if capacity < 0 {
		capacity = 0
	}
	return &Scheduler{
		params:    params,
		rng:       rng,
		active:    make([]Pulse, 0, capacity),
		lastSpawn: -params.SpawnInterval,
	}
}

// TrySpawn starts a pulse on a uniformly random connection at time now
// No-op when there are no connections, the active set is full, or the spawn interval has not elapsed
func (s *Scheduler) TrySpawn(connections []graph.Connection, now float64) bool {
	if len(connections) == 0 {
		return false
	}
	if len(s.active) >= s.params.MaxPulses {
		return false
	}
	if now-s.lastSpawn < s.params.SpawnInterval {
		return false
	}

	s.nextID++
	s.active = append(s.active, Pulse{ID: s.nextID, Connection: s.rng.Intn(len(connections))})
	s.lastSpawn = now
	return true
}

// Advance moves every pulse forward by dt seconds and retires finished ones in place
// Survivors are repositioned between the live endpoint positions, insertion order kept
// Each retired pulse is passed to onRetire exactly once, onRetire may be nil
// Returns the number of pulses retired this call
func (s *Scheduler) Advance(nodes []field.Node, connections []graph.Connection, dt float64, onRetire func(Pulse)) int {
	kept := s.active[:0]
	retired := 0

	for _, p := range s.active {
		p.Progress += s.params.Speed * dt
		if p.Progress >= 1 {
			retired++
			if onRetire != nil {
				onRetire(p)
			}
			continue
		}

		c := connections[p.Connection]
		p.Position = vmath.V3FLerp(nodes[c.Start].Position, nodes[c.End].Position, p.Progress)
		kept = append(kept, p)
	}

	// Drop stale tail values so the backing array holds no retired pulses
	for i := len(kept); i < len(s.active); i++ {
		s.active[i] = Pulse{}
	}
	s.active = kept
	return retired
}

// Active returns the live pulse set; valid until the next TrySpawn or Advance
func (s *Scheduler) Active() []Pulse {
	return s.active
}

// Snapshot copies the active set into dst for consumers outliving the frame
func (s *Scheduler) Snapshot(dst []Pulse) []Pulse {
	return append(dst[:0], s.active...)
}

// Len returns the active pulse count
func (s *Scheduler) Len() int {
	return len(s.active)
}

// Opacity ramps a pulse in over the first 20% of travel and out over the last 20%
func Opacity(progress float64) float64 {
	switch {
	case progress < parameter.PulseFadeIn:
		return vmath.Clamp(progress/parameter.PulseFadeIn, 0, 1)
	case progress > 1-parameter.PulseFadeOut:
		return vmath.Clamp((1-progress)/parameter.PulseFadeOut, 0, 1)
	default:
		return 1
	}
}
