package parameter

import "time"

// Camera
const (
	// CameraZ is the camera distance along +z looking at the origin
	CameraZ = 10.0

	// CameraFOV is the vertical field of view in degrees
	CameraFOV = 45.0

	// CameraNear rejects points closer than this to the camera plane
	CameraNear = 0.1

	// CellAspect is terminal cell height over width, x is stretched to keep circles round
	CellAspect = 2.0
)

// Sandbox timing
const (
	// DefaultFPS is the frame rate of the terminal sandbox
	DefaultFPS = 30

	// HUDRows are reserved at the bottom of the screen
	HUDRows = 1

	// ChimeDuration is the length of the pulse arrival tone
	ChimeDuration = 60 * time.Millisecond

	// ChimeBaseFreq is the arrival tone frequency for the shortest edge (Hz)
	ChimeBaseFreq = 880.0

	// ChimeVolume is the beep effects.Volume exponent (base 2), negative is quieter
	ChimeVolume = -3.0
)

// Pointer
const (
	// PointerSpringFrequency/PointerSpringDamping tune cursor smoothing
	PointerSpringFrequency = 6.0
	PointerSpringDamping   = 1.0

	// CellPixelsX/CellPixelsY approximate one terminal cell in pixels for gravity gain
	CellPixelsX = 8.0
	CellPixelsY = 16.0

	// FollowStrength is the share of the cursor-to-center gap the field drifts by
	FollowStrength = 0.3
)

// Shading
const (
	// LineOpacity blends connection color over background
	LineOpacity = 0.6

	// NodeDepthFade dims the farthest node by this fraction
	NodeDepthFade = 0.4

	// PulseOpacityScale caps pulse brightness at full fade-in
	PulseOpacityScale = 0.85

	GlyphNode       = '●'
	GlyphConnection = '·'
	GlyphPulse      = '◆'
)
