package decode_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomidi "gitlab.com/gomidi/midi/v2"

	"github.com/leandrodaf/midigate/internal/decode"
	"github.com/leandrodaf/midigate/sdk/contracts"
)

func TestMessage(t *testing.T) {
	cases := []struct {
		msg      gomidi.Message
		expected contracts.Snapshot
	}{
		{
			msg:      gomidi.NoteOn(2, 60, 64),
			expected: contracts.NewSnapshot(contracts.NoteOnEvent, 2, 0, 60, 64),
		},
		{
			msg:      gomidi.NoteOffVelocity(3, 61, 100),
			expected: contracts.NewSnapshot(contracts.NoteOffEvent, 3, 0, 61, 100),
		},
		{
			msg:      gomidi.ControlChange(0, 8, 14),
			expected: contracts.NewSnapshot(contracts.ControlChangeEvent, 0, 8, 0, 14),
		},
	}

	for _, c := range cases {
		got, ok := decode.Message(c.msg)
		require.True(t, ok, "%v", c.msg)
		assert.Equal(t, c.expected, got)
		assert.Equal(t, float64(got.Value())/127.0, got.Normalized())
	}
}

func TestUnsupportedMessages(t *testing.T) {
	_, ok := decode.Message(gomidi.ProgramChange(0, 12))
	assert.False(t, ok)

	_, ok = decode.Bytes([]byte{0x90, 60})
	assert.False(t, ok)
}

func TestBytes(t *testing.T) {
	got, ok := decode.Bytes([]byte{0x92, 60, 64, 0xF8})
	require.True(t, ok)
	assert.True(t, got.IsNoteOn())
	assert.Equal(t, 2, got.Channel())
	assert.Equal(t, 60, got.Note())
	assert.Equal(t, 64, got.Value())
}

func TestSplit(t *testing.T) {
	cases := []struct {
		name     string
		packet   []byte
		expected [][]byte
	}{
		{
			name:     "two note ons",
			packet:   []byte{0x90, 60, 64, 0x90, 62, 64},
			expected: [][]byte{{0x90, 60, 64}, {0x90, 62, 64}},
		},
		{
			name:     "running status",
			packet:   []byte{0x91, 60, 64, 62, 0, 0xB1, 7, 100},
			expected: [][]byte{{0x91, 60, 64}, {0x91, 62, 0}, {0xB1, 7, 100}},
		},
		{
			name:     "program change is one data byte",
			packet:   []byte{0xC0, 12, 0x80, 60, 0},
			expected: [][]byte{{0xC0, 12}, {0x80, 60, 0}},
		},
		{
			name:     "system and real-time bytes skipped",
			packet:   []byte{0xF8, 0xF0, 0x7E, 0x01, 0xF7, 0xF2, 1, 2, 0x90, 60, 64},
			expected: [][]byte{{0x90, 60, 64}},
		},
		{
			name:     "stray data and truncated tail",
			packet:   []byte{60, 64, 0xB0, 7, 100, 0x90, 60},
			expected: [][]byte{{0xB0, 7, 100}},
		},
		{
			name:   "empty",
			packet: nil,
		},
	}

	for _, c := range cases {
		assert.Equal(t, c.expected, decode.Split(c.packet), c.name)
	}
}

func TestSplitKeepsEveryNoteOn(t *testing.T) {
	var notes []int
	for _, msg := range decode.Split([]byte{0x90, 60, 64, 0x90, 62, 64}) {
		s, ok := decode.Bytes(msg)
		require.True(t, ok)
		notes = append(notes, s.Note())
	}
	assert.Equal(t, []int{60, 62}, notes)
}

func TestEncodeRoundTrip(t *testing.T) {
	snapshots := []contracts.Snapshot{
		contracts.NewSnapshot(contracts.NoteOnEvent, 1, 0, 72, 127),
		contracts.NewSnapshot(contracts.NoteOffEvent, 1, 0, 72, 10),
		contracts.NewSnapshot(contracts.ControlChangeEvent, 15, 74, 0, 33),
	}
	for _, s := range snapshots {
		got, ok := decode.Message(decode.Encode(s))
		require.True(t, ok)
		assert.Equal(t, s, got)
	}
	assert.Nil(t, decode.Encode(contracts.Snapshot{}))
}
