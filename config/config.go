// Package config resolves simulation configuration from defaults, a YAML file and the environment
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/nodefield/parameter"
	"github.com/lixenwraith/nodefield/physics"
	"github.com/lixenwraith/nodefield/pulse"
	"github.com/lixenwraith/nodefield/vmath"
)

// ErrInvalid is wrapped by every validation failure
var ErrInvalid = errors.New("invalid config")

// Config is the full simulation configuration
type Config struct {
	// NodeCount is the population size, 0 yields an empty field
	NodeCount int `yaml:"node_count" env:"NODE_COUNT"`

	// Seed makes the field and pulse choices reproducible; 0 seeds from the clock
	Seed uint64 `yaml:"seed" env:"SEED"`

	// Bounds is the box node base positions are drawn from
	Bounds vmath.Box `yaml:"bounds"`

	// Mass and NodeDamping are the per-node draw ranges
	Mass        vmath.Range `yaml:"mass"`
	NodeDamping vmath.Range `yaml:"node_damping"`

	Graph   GraphConfig    `yaml:"graph" envPrefix:"GRAPH_"`
	Physics physics.Params `yaml:"physics" envPrefix:"PHYSICS_"`
	Pulse   pulse.Params   `yaml:"pulse" envPrefix:"PULSE_"`

	// MaxFrameStep clamps the per-frame delta in seconds
	MaxFrameStep float64 `yaml:"max_frame_step" env:"MAX_FRAME_STEP"`
}

// GraphConfig bounds the proximity graph
type GraphConfig struct {
	MaxDistance float64 `yaml:"max_distance" env:"MAX_DISTANCE"`
	MaxDegree   int     `yaml:"max_degree" env:"MAX_DEGREE"`
}

// Default returns a Config populated from the parameter package
func Default() *Config {
	return &Config{
		NodeCount: parameter.NodeCount,
		Bounds: vmath.Box{
			X: vmath.Range{Min: parameter.BoundsXMin, Max: parameter.BoundsXMax},
			Y: vmath.Range{Min: parameter.BoundsYMin, Max: parameter.BoundsYMax},
			Z: vmath.Range{Min: parameter.BoundsZMin, Max: parameter.BoundsZMax},
		},
		Mass:        vmath.Range{Min: parameter.MassMin, Max: parameter.MassMax},
		NodeDamping: vmath.Range{Min: parameter.NodeDampingMin, Max: parameter.NodeDampingMax},
		Graph: GraphConfig{
			MaxDistance: parameter.ConnectionDistance,
			MaxDegree:   parameter.MaxConnectionsPerNode,
		},
		Physics:      physics.DefaultParams(),
		Pulse:        pulse.DefaultParams(),
		MaxFrameStep: parameter.MaxFrameStep,
	}
}

// Load reads a YAML file over the defaults
// Keys absent from the file keep their default values
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Resolve layers defaults, an optional YAML file and NODEFIELD_* environment variables, then validates
func Resolve(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		loaded, err := Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if err := ApplyEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Marshal renders the configuration as YAML
func (c *Config) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}
	return data, nil
}

// Validate checks the invariants the simulation relies on
func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
		}
	}

	check(c.NodeCount >= 0, "node_count %d is negative", c.NodeCount)
	checkRange := func(name string, r vmath.Range) {
		check(r.Min <= r.Max, "%s min %g exceeds max %g", name, r.Min, r.Max)
	}
	checkRange("bounds.x", c.Bounds.X)
	checkRange("bounds.y", c.Bounds.Y)
	checkRange("bounds.z", c.Bounds.Z)
	checkRange("mass", c.Mass)
	checkRange("node_damping", c.NodeDamping)
	check(c.Mass.Min > 0, "mass min %g must be positive", c.Mass.Min)

	check(c.Graph.MaxDistance >= 0, "graph.max_distance %g is negative", c.Graph.MaxDistance)
	check(c.Graph.MaxDegree >= 0, "graph.max_degree %d is negative", c.Graph.MaxDegree)

	p := c.Physics
	check(p.Mode == physics.ModeKinematic || p.Mode == physics.ModeInertial, "physics.mode %s unknown", p.Mode)
	check(p.MaxVelocity > 0, "physics.max_velocity %g must be positive", p.MaxVelocity)
	check(p.GlobalDamping >= 0 && p.GlobalDamping <= 1, "physics.global_damping %g outside [0, 1]", p.GlobalDamping)
	check(p.GravityMinDistance >= 0, "physics.gravity_min_distance %g is negative", p.GravityMinDistance)
	check(p.GravityFalloff >= 0, "physics.gravity_falloff %g is negative", p.GravityFalloff)

	check(c.Pulse.MaxPulses >= 0, "pulse.max_pulses %d is negative", c.Pulse.MaxPulses)
	check(c.Pulse.SpawnInterval >= 0, "pulse.spawn_interval %g is negative", c.Pulse.SpawnInterval)
	check(c.Pulse.Speed >= 0, "pulse.speed %g is negative", c.Pulse.Speed)

	check(c.MaxFrameStep > 0, "max_frame_step %g must be positive", c.MaxFrameStep)

	return errors.Join(errs...)
}
