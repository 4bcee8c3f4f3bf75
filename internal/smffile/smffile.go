// Package smffile reads and writes Standard MIDI Files as snapshot lists so
// recorded material can be run through the same filters as live input.
package smffile

import (
	"errors"
	"fmt"
	"slices"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/leandrodaf/midigate/internal/decode"
	"github.com/leandrodaf/midigate/internal/filter"
	"github.com/leandrodaf/midigate/sdk/contracts"
)

// ErrEmpty is returned by Save when there is nothing to write.
var ErrEmpty = errors.New("no events to write")

// Event is a snapshot placed at an absolute tick.
type Event struct {
	Tick     uint64
	Snapshot contracts.Snapshot
}

// Load reads every track of the file at path and returns its note and
// control change events ordered by absolute tick. Events on the same tick
// keep track order.
func Load(path string) ([]Event, error) {
	s, err := smf.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var events []Event
	for _, track := range s.Tracks {
		var tick uint64
		for _, ev := range track {
			tick += uint64(ev.Delta)
			if snapshot, ok := decode.Message(gomidi.Message(ev.Message)); ok {
				events = append(events, Event{Tick: tick, Snapshot: snapshot})
			}
		}
	}

	slices.SortStableFunc(events, func(a, b Event) int {
		switch {
		case a.Tick < b.Tick:
			return -1
		case a.Tick > b.Tick:
			return 1
		}
		return 0
	})
	return events, nil
}

// Save writes events to a single-track file at path. Events must be ordered
// by tick.
func Save(path string, events []Event) error {
	if len(events) == 0 {
		return ErrEmpty
	}

	var (
		track smf.Track
		last  uint64
	)
	for i, ev := range events {
		if ev.Tick < last {
			return fmt.Errorf("event %d at tick %d precedes tick %d", i, ev.Tick, last)
		}
		msg := decode.Encode(ev.Snapshot)
		if msg == nil {
			return fmt.Errorf("event %d has no MIDI encoding", i)
		}
		track.Add(uint32(ev.Tick-last), msg)
		last = ev.Tick
	}
	track.Close(0)

	s := smf.New()
	if err := s.Add(track); err != nil {
		return err
	}
	return s.WriteFile(path)
}

// Sequence spaces snapshots step ticks apart starting at tick 0.
func Sequence(snapshots []contracts.Snapshot, step uint64) []Event {
	events := make([]Event, len(snapshots))
	for i, s := range snapshots {
		events[i] = Event{Tick: uint64(i) * step, Snapshot: s}
	}
	return events
}

// Replay returns the events f admits, in order.
func Replay(events []Event, f *filter.Filter) []Event {
	var admitted []Event
	for _, ev := range events {
		if f.Evaluate(ev.Snapshot) {
			admitted = append(admitted, ev)
		}
	}
	return admitted
}
