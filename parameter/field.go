package parameter

// Node Field
const (
	// NodeCount is the default population size, 30-40 keeps the effect localized
	NodeCount = 35

	// BoundsXMin/BoundsXMax etc. are the spawn box for node base positions (world units)
	BoundsXMin = -3.0
	BoundsXMax = 3.0
	BoundsYMin = -3.0
	BoundsYMax = 3.0
	BoundsZMin = -2.0
	BoundsZMax = 2.0

	// MassMin/MassMax bound the per-node mass, lighter nodes respond faster
	MassMin = 0.5
	MassMax = 2.0

	// NodeDampingMin/NodeDampingMax bound the per-node velocity damping coefficient
	NodeDampingMin = 0.88
	NodeDampingMax = 0.96
)

// Connection Graph
const (
	// ConnectionDistance is the max Euclidean distance for an edge at build time
	ConnectionDistance = 2.5

	// MaxConnectionsPerNode caps node degree to prevent clutter
	MaxConnectionsPerNode = 4
)

// Floating Animation
const (
	// FloatAmplitude is the oscillation range around the base position, z uses half
	FloatAmplitude = 0.25

	// FloatFrequency scales elapsed seconds before the per-axis sine oscillators
	FloatFrequency = 0.4

	// FloatRatioY/FloatRatioZ slow the y and z oscillators relative to x
	FloatRatioY = 0.8
	FloatRatioZ = 0.6

	// FloatAmplitudeRatioZ flattens motion along the view axis
	FloatAmplitudeRatioZ = 0.5
)

// Inertial Physics
const (
	// SpringStiffness is how strongly nodes return to their floating target
	SpringStiffness = 3.0

	// GlobalDamping is the uniform per-step velocity multiplier (0.85-0.98)
	GlobalDamping = 0.94

	// NodeDampingForceScale multiplies per-node damping into the velocity damping force
	NodeDampingForceScale = 2.0

	// MaxVelocity caps node speed (units/sec)
	MaxVelocity = 5.0

	// GravityStrength is the base pull toward the attractor
	GravityStrength = 0.15

	// GravityFalloff is how quickly gravity weakens with distance
	GravityFalloff = 0.3

	// GravityMinDistance disables gravity inside this radius of the attractor
	GravityMinDistance = 0.1

	// PointerGravityGain converts pointer movement magnitude (pixels) into extra gravity
	PointerGravityGain = 0.002

	// MaxFrameStep clamps frame delta (seconds) after pauses or backgrounding
	MaxFrameStep = 0.1
)
