package input

import "github.com/gdamore/tcell/v2"

// IntentType discriminates semantic actions from terminal events
type IntentType uint8

const (
	IntentNone IntentType = iota

	IntentQuit        // q, Ctrl+C, Esc
	IntentPause       // space
	IntentToggleMode  // m, kinematic/inertial
	IntentToggleSound // s
	IntentResize      // terminal resize event
	IntentPointer     // mouse motion, carries cell position
	IntentFocus       // focus change, carries visibility
)

var intentNames = [...]string{
	IntentNone:        "none",
	IntentQuit:        "quit",
	IntentPause:       "pause",
	IntentToggleMode:  "toggle_mode",
	IntentToggleSound: "toggle_sound",
	IntentResize:      "resize",
	IntentPointer:     "pointer",
	IntentFocus:       "focus",
}

func (t IntentType) String() string {
	if int(t) < len(intentNames) {
		return intentNames[t]
	}
	return "unknown"
}

// Intent is a translated terminal event
type Intent struct {
	Type    IntentType
	X, Y    int  // IntentPointer
	Focused bool // IntentFocus
}

// Translate maps a tcell event to an Intent, IntentNone for ignored events
func Translate(ev tcell.Event) Intent {
	switch e := ev.(type) {
	case *tcell.EventKey:
		switch e.Key() {
		case tcell.KeyCtrlC, tcell.KeyEscape:
			return Intent{Type: IntentQuit}
		case tcell.KeyRune:
			switch e.Rune() {
			case 'q', 'Q':
				return Intent{Type: IntentQuit}
			case ' ':
				return Intent{Type: IntentPause}
			case 'm', 'M':
				return Intent{Type: IntentToggleMode}
			case 's', 'S':
				return Intent{Type: IntentToggleSound}
			}
		}
	case *tcell.EventResize:
		return Intent{Type: IntentResize}
	case *tcell.EventMouse:
		x, y := e.Position()
		return Intent{Type: IntentPointer, X: x, Y: y}
	case *tcell.EventFocus:
		return Intent{Type: IntentFocus, Focused: e.Focused}
	}
	return Intent{}
}
