package physics

import (
	"fmt"
)

// Mode selects how node positions advance each frame
type Mode uint8

const (
	// ModeKinematic places nodes on a pure sine path around their base, no state
	ModeKinematic Mode = iota
	// ModeInertial drives nodes with spring, attractor gravity and damping forces
	ModeInertial
)

var modeNames = map[Mode]string{
	ModeKinematic: "kinematic",
	ModeInertial:  "inertial",
}

func (m Mode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("mode(%d)", uint8(m))
}

// MarshalText implements encoding.TextMarshaler for yaml and env
func (m Mode) MarshalText() ([]byte, error) {
	name, ok := modeNames[m]
	if !ok {
		return nil, fmt.Errorf("unknown floating mode %d", uint8(m))
	}
	return []byte(name), nil
}

// UnmarshalText implements encoding.TextUnmarshaler for yaml and env
func (m *Mode) UnmarshalText(text []byte) error {
	mode, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = mode
	return nil
}

// ParseMode resolves a mode by name
func ParseMode(name string) (Mode, error) {
	for mode, n := range modeNames {
		if n == name {
			return mode, nil
		}
	}
	return 0, fmt.Errorf("unknown floating mode %q (want kinematic or inertial)", name)
}
