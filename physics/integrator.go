// Package physics advances node positions: kinematic floating or inertial spring dynamics
package physics

import (
	"github.com/lixenwraith/nodefield/field"
	"github.com/lixenwraith/nodefield/parameter"
	"github.com/lixenwraith/nodefield/vmath"
)

// Params configures both floating modes, inertial-only fields are ignored in kinematic mode
type Params struct {
	Mode           Mode    `yaml:"mode" env:"MODE"`
	FloatAmplitude float64 `yaml:"float_amplitude" env:"FLOAT_AMPLITUDE"`
	FloatFrequency float64 `yaml:"float_frequency" env:"FLOAT_FREQUENCY"`

	SpringStiffness    float64     `yaml:"spring_stiffness" env:"SPRING_STIFFNESS"`
	GlobalDamping      float64     `yaml:"global_damping" env:"GLOBAL_DAMPING"`
	MaxVelocity        float64     `yaml:"max_velocity" env:"MAX_VELOCITY"`
	GravityStrength    float64     `yaml:"gravity_strength" env:"GRAVITY_STRENGTH"`
	GravityFalloff     float64     `yaml:"gravity_falloff" env:"GRAVITY_FALLOFF"`
	GravityMinDistance float64     `yaml:"gravity_min_distance" env:"GRAVITY_MIN_DISTANCE"`
	PointerGravityGain float64     `yaml:"pointer_gravity_gain" env:"POINTER_GRAVITY_GAIN"`
	Attractor          vmath.Vec3F `yaml:"attractor"`
}

// DefaultParams returns the tuning from the parameter package, kinematic mode
func DefaultParams() Params {
	return Params{
		Mode:               ModeKinematic,
		FloatAmplitude:     parameter.FloatAmplitude,
		FloatFrequency:     parameter.FloatFrequency,
		SpringStiffness:    parameter.SpringStiffness,
		GlobalDamping:      parameter.GlobalDamping,
		MaxVelocity:        parameter.MaxVelocity,
		GravityStrength:    parameter.GravityStrength,
		GravityFalloff:     parameter.GravityFalloff,
		GravityMinDistance: parameter.GravityMinDistance,
		PointerGravityGain: parameter.PointerGravityGain,
	}
}

// StepStats summarizes one integration step
type StepStats struct {
	MaxSpeed float64 // highest post-clamp node speed, 0 in kinematic mode
	Clamped  int     // nodes whose speed hit MaxVelocity
}

// Integrator advances a node set once per frame in the configured mode
type Integrator struct {
	params Params
}

func NewIntegrator(params Params) *Integrator {
	return &Integrator{params: params}
}

// Params returns the active configuration
func (in *Integrator) Params() Params {
	return in.params
}

// SetMode switches the floating model for subsequent steps
func (in *Integrator) SetMode(mode Mode) {
	in.params.Mode = mode
}

// Step advances nodes to elapsed seconds t
// dt and pointerOffset are only consumed by inertial mode; empty node set is a no-op
func (in *Integrator) Step(nodes []field.Node, t, dt float64, pointerOffset vmath.Vec3F) StepStats {
	if len(nodes) == 0 {
		return StepStats{}
	}

	switch in.params.Mode {
	case ModeInertial:
		return in.integrate(nodes, t, dt, pointerOffset)
	default:
		Float(nodes, t, in.params.FloatAmplitude, in.params.FloatFrequency)
		return StepStats{}
	}
}

// integrate runs one semi-implicit Euler step of the spring + gravity + damping model
func (in *Integrator) integrate(nodes []field.Node, t, dt float64, pointerOffset vmath.Vec3F) StepStats {
	p := &in.params
	multiplier := GravityMultiplier(pointerOffset, p.PointerGravityGain)

	var stats StepStats
	for i := range nodes {
		n := &nodes[i]

		// 1-2. Floating target
		n.FloatOffset = FloatOffset(n.Phase, t, p.FloatAmplitude, p.FloatFrequency)
		target := vmath.V3FAdd(n.BasePosition, n.FloatOffset)

		// 3. Spring toward target
		force := vmath.V3FScale(vmath.V3FSub(n.Position, target), -p.SpringStiffness)

		// 4. Attractor gravity, zero inside min distance
		force = vmath.V3FAdd(force, GravityForce(n.Position, p.Attractor,
			p.GravityStrength, multiplier, p.GravityFalloff, p.GravityMinDistance))

		// 5. Per-node velocity damping
		force = vmath.V3FAddScaled(force, n.Velocity, -n.Damping*parameter.NodeDampingForceScale)

		// 6-7. Heavier nodes respond slower; Mass > 0 is a generator invariant
		accel := vmath.V3FScale(force, 1.0/n.Mass)
		n.Velocity = vmath.V3FAddScaled(n.Velocity, accel, dt)
		n.Velocity = vmath.V3FScale(n.Velocity, p.GlobalDamping)

		// 8. Clamp speed
		speed := vmath.V3FMag(n.Velocity)
		if speed > p.MaxVelocity {
			n.Velocity = vmath.V3FClampMagnitude(n.Velocity, p.MaxVelocity)
			speed = p.MaxVelocity
			stats.Clamped++
		}
		if speed > stats.MaxSpeed {
			stats.MaxSpeed = speed
		}

		// 9. Integrate position
		n.Position = vmath.V3FAddScaled(n.Position, n.Velocity, dt)
	}
	return stats
}
