package parameter

// Palette hex colors
const (
	ColorNode       = "#575757"
	ColorConnection = "#313131"
	ColorPulse      = "#a855f7"
	ColorBackground = "#0a0a0a"
	ColorHUD        = "#646470"
)
