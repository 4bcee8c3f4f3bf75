package contracts

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownGatingMode is returned by ParseGatingMode for names outside
// NOTE_OFF, NOTE_ON and IGNORE.
var ErrUnknownGatingMode = errors.New("unknown gating mode")

// GatingMode is the coarse note-on/note-off check applied before any
// attribute predicate.
type GatingMode int

const (
	// NoteOff admits only events that are not Note On.
	NoteOff GatingMode = 0
	// NoteOn admits only Note On events.
	NoteOn GatingMode = 1
	// Ignore skips the note-on/off check.
	Ignore GatingMode = -1
)

// GatingModes lists the modes in the order a host should present them.
var GatingModes = [...]GatingMode{NoteOff, NoteOn, Ignore}

func (m GatingMode) String() string {
	switch m {
	case NoteOff:
		return "NOTE_OFF"
	case NoteOn:
		return "NOTE_ON"
	case Ignore:
		return "IGNORE"
	}
	return fmt.Sprintf("GatingMode(%d)", int(m))
}

// ParseGatingMode maps a mode name (case-insensitive) to its GatingMode.
// An empty name yields Ignore.
func ParseGatingMode(name string) (GatingMode, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Ignore, nil
	}
	for _, m := range GatingModes {
		if strings.EqualFold(name, m.String()) {
			return m, nil
		}
	}
	return Ignore, fmt.Errorf("%w: %q", ErrUnknownGatingMode, name)
}

// FilterConfig is the textual configuration of the range filter. Each
// attribute field holds a comma-separated range specification such as
// "1, 2, 5-10, 100-"; an empty field admits every value.
type FilterConfig struct {
	Mode       GatingMode // Note-on/off gating applied first.
	Channel    string     // Admissible MIDI channels.
	Control    string     // Admissible control numbers.
	Note       string     // Admissible note numbers.
	Value      string     // Admissible velocity or control values.
	Normalized string     // Admissible normalized values (0-1).
}

// DefaultFilterConfig returns a FilterConfig that admits every event.
func DefaultFilterConfig() FilterConfig {
	return FilterConfig{Mode: Ignore}
}

// Field returns the specification text configured for the attribute.
func (c FilterConfig) Field(a Attribute) string {
	switch a {
	case Channel:
		return c.Channel
	case Control:
		return c.Control
	case Note:
		return c.Note
	case Value:
		return c.Value
	case Normalized:
		return c.Normalized
	}
	return ""
}

// DontCare disables an EZConfig field.
const DontCare = -1

// EZConfig is the simplified filter: each non-negative field must equal the
// event's attribute exactly, negative fields are ignored.
type EZConfig struct {
	Mode    GatingMode
	Channel int
	Control int
	Note    int
	Value   int
}

// DefaultEZConfig returns an EZConfig that admits every event.
func DefaultEZConfig() EZConfig {
	return EZConfig{Mode: Ignore, Channel: DontCare, Control: DontCare, Note: DontCare, Value: DontCare}
}
