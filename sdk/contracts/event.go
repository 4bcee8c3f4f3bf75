package contracts

import "fmt"

// EventKind is the closed set of MIDI events a Snapshot can describe.
type EventKind byte

const (
	// NoteOnEvent is a Note On message (status 0x90).
	NoteOnEvent EventKind = iota + 1
	// NoteOffEvent is a Note Off message (status 0x80).
	NoteOffEvent
	// ControlChangeEvent is a Control Change message (status 0xB0).
	ControlChangeEvent
)

func (k EventKind) String() string {
	switch k {
	case NoteOnEvent:
		return "note_on"
	case NoteOffEvent:
		return "note_off"
	case ControlChangeEvent:
		return "control_change"
	}
	return fmt.Sprintf("EventKind(%d)", byte(k))
}

// Attribute names one filterable field of a Snapshot.
type Attribute int

const (
	Channel Attribute = iota
	Control
	Note
	Value
	Normalized
)

// Attributes lists every Attribute in evaluation order.
var Attributes = [...]Attribute{Channel, Control, Note, Value, Normalized}

func (a Attribute) String() string {
	switch a {
	case Channel:
		return "channel"
	case Control:
		return "control"
	case Note:
		return "note"
	case Value:
		return "value"
	case Normalized:
		return "normalized"
	}
	return fmt.Sprintf("Attribute(%d)", int(a))
}

// MaxValue is the largest 7-bit MIDI data value; Normalized is Value/MaxValue.
const MaxValue = 127.0

// Snapshot is an immutable record of one decoded MIDI event.
//
// The zero Snapshot is not a decoded event; use NewSnapshot.
type Snapshot struct {
	kind       EventKind
	channel    int
	control    int // Control number, 0 unless kind is ControlChangeEvent.
	note       int // Note number, 0 for control changes.
	value      int // Velocity or control value.
	normalized float64
}

// NewSnapshot builds a Snapshot. The normalized value is always derived from
// value and cannot be supplied separately.
func NewSnapshot(kind EventKind, channel, control, note, value int) Snapshot {
	return Snapshot{
		kind:       kind,
		channel:    channel,
		control:    control,
		note:       note,
		value:      value,
		normalized: float64(value) / MaxValue,
	}
}

func (s Snapshot) Kind() EventKind { return s.kind }

// IsNoteOn reports whether the event is a Note On. Note Off and Control
// Change events report false.
func (s Snapshot) IsNoteOn() bool { return s.kind == NoteOnEvent }

func (s Snapshot) Channel() int        { return s.channel }
func (s Snapshot) Control() int        { return s.control }
func (s Snapshot) Note() int           { return s.note }
func (s Snapshot) Value() int          { return s.value }
func (s Snapshot) Normalized() float64 { return s.normalized }

// Attribute returns the named field as a float64 so ints and the normalized
// value can be compared by the same predicates.
func (s Snapshot) Attribute(a Attribute) float64 {
	switch a {
	case Channel:
		return float64(s.channel)
	case Control:
		return float64(s.control)
	case Note:
		return float64(s.note)
	case Value:
		return float64(s.value)
	case Normalized:
		return s.normalized
	}
	return 0
}

func (s Snapshot) String() string {
	return fmt.Sprintf("%t, %d, %d, %d, %d, %g", s.IsNoteOn(), s.channel, s.control, s.note, s.value, s.normalized)
}

// Trigger pairs a captured Snapshot with the active filter's decision.
type Trigger struct {
	Timestamp uint64   // Timestamp is when the event was received, in Unix nanoseconds.
	Snapshot  Snapshot // Snapshot is the decoded event.
	Admit     bool     // Admit is true when the active filter accepted the event.
}
