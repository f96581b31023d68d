package parameter

// Pulses
const (
	// MaxPulses is the max number of concurrently traveling pulses
	MaxPulses = 6

	// PulseSpawnInterval is the min seconds between two spawns
	PulseSpawnInterval = 1.0

	// PulseSpeed is progress per second along an edge (0-1 range)
	PulseSpeed = 0.4

	// PulseFadeIn/PulseFadeOut are the progress spans of the opacity ramps
	PulseFadeIn  = 0.2
	PulseFadeOut = 0.2

	// PulseHiddenZ parks unused fixed-buffer slots far behind the camera
	PulseHiddenZ = -1000.0
)
