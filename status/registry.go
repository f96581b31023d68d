// Package status collects per-frame simulation counters and gauges
// Owners cache metric pointers at construction; frame loops write atomics directly
package status

import "sync/atomic"

// Counter keys
const (
	Frames        = "sim.frames"
	ClampedSteps  = "sim.clamped_steps"
	PulsesSpawned = "pulse.spawned"
	PulsesRetired = "pulse.retired"
	VelocityClamp = "physics.velocity_clamps"
)

// Gauge keys
const (
	Elapsed       = "sim.elapsed"
	MaxSpeed      = "physics.max_speed"
	PulsesActive  = "pulse.active"
	GravityFactor = "physics.gravity_multiplier"
)

// Registry is the metrics facade shared by the simulation and its readers
type Registry struct {
	Counters *MetricMap[atomic.Int64]
	Gauges   *MetricMap[AtomicFloat]
}

// NewRegistry creates an initialized Registry
func NewRegistry() *Registry {
	return &Registry{
		Counters: NewMetricMap[atomic.Int64](),
		Gauges:   NewMetricMap[AtomicFloat](),
	}
}

// Counter returns the current value of a counter, 0 if never written
func (r *Registry) Counter(key string) int64 {
	if !r.Counters.Has(key) {
		return 0
	}
	return r.Counters.Get(key).Load()
}

// Gauge returns the current value of a gauge, 0 if never written
func (r *Registry) Gauge(key string) float64 {
	if !r.Gauges.Has(key) {
		return 0
	}
	return r.Gauges.Get(key).Get()
}

// TotalCount returns total metrics across all types
func (r *Registry) TotalCount() int {
	return r.Counters.Count() + r.Gauges.Count()
}
