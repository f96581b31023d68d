package simulation

import (
	"github.com/lixenwraith/nodefield/physics"
	"github.com/lixenwraith/nodefield/status"
)

// bindMetrics caches registry pointers so Update writes atomics without map lookups
func (s *Simulation) bindMetrics() {
	r := s.metrics
	s.frames = r.Counters.Get(status.Frames)
	s.spawned = r.Counters.Get(status.PulsesSpawned)
	s.retired = r.Counters.Get(status.PulsesRetired)
	s.clamped = r.Counters.Get(status.ClampedSteps)
	s.velClamp = r.Counters.Get(status.VelocityClamp)
	s.maxSpeed = r.Gauges.Get(status.MaxSpeed)
	s.active = r.Gauges.Get(status.PulsesActive)
	s.elapsed = r.Gauges.Get(status.Elapsed)
	s.gravity = r.Gauges.Get(status.GravityFactor)
}

func (s *Simulation) publish(in FrameInput) {
	f := &s.frame
	s.frames.Add(1)
	s.elapsed.Set(in.Elapsed)
	s.active.Set(float64(len(f.Pulses)))
	s.maxSpeed.Max(f.Physics.MaxSpeed)
	if f.Physics.Clamped > 0 {
		s.velClamp.Add(int64(f.Physics.Clamped))
	}

	p := s.integrator.Params()
	if p.Mode == physics.ModeInertial {
		s.gravity.Set(physics.GravityMultiplier(in.PointerOffset, p.PointerGravityGain))
	} else {
		s.gravity.Set(1)
	}
}
