// Package decode turns MIDI channel messages into contracts.Snapshot values.
package decode

import (
	"bytes"

	gomidi "gitlab.com/gomidi/midi/v2"

	"github.com/leandrodaf/midigate/sdk/contracts"
)

// Message maps a Note On, Note Off or Control Change message to a Snapshot.
// Any other message reports false.
func Message(msg gomidi.Message) (contracts.Snapshot, bool) {
	var channel, key, velocity, controller, value uint8

	switch {
	case msg.GetNoteOn(&channel, &key, &velocity):
		return contracts.NewSnapshot(contracts.NoteOnEvent, int(channel), 0, int(key), int(velocity)), true
	case msg.GetNoteOff(&channel, &key, &velocity):
		return contracts.NewSnapshot(contracts.NoteOffEvent, int(channel), 0, int(key), int(velocity)), true
	case msg.GetControlChange(&channel, &controller, &value):
		return contracts.NewSnapshot(contracts.ControlChangeEvent, int(channel), int(controller), 0, int(value)), true
	}
	return contracts.Snapshot{}, false
}

// Bytes decodes a raw message as delivered by a platform driver. Short
// packets report false.
func Bytes(data []byte) (contracts.Snapshot, bool) {
	if len(data) < 3 {
		return contracts.Snapshot{}, false
	}
	return Message(gomidi.Message(data[:3]))
}

// Split breaks a packet into its channel messages. CoreMIDI packets may
// carry several messages and may use running status; each returned message
// has its status byte. System and real-time messages are skipped, as is a
// trailing incomplete message.
func Split(data []byte) [][]byte {
	var (
		messages [][]byte
		status   byte
	)
	for i := 0; i < len(data); {
		b := data[i]
		switch {
		case b >= 0xF8:
			i++
			continue
		case b == 0xF0:
			end := bytes.IndexByte(data[i:], 0xF7)
			if end < 0 {
				return messages
			}
			i += end + 1
			status = 0
			continue
		case b >= 0xF0:
			i += systemCommonLength(b)
			status = 0
			continue
		case b&0x80 != 0:
			status = b
			i++
		case status == 0:
			i++
			continue
		}

		n := channelDataLength(status)
		if i+n > len(data) {
			return messages
		}
		msg := make([]byte, 0, n+1)
		msg = append(msg, status)
		messages = append(messages, append(msg, data[i:i+n]...))
		i += n
	}
	return messages
}

func channelDataLength(status byte) int {
	switch status & 0xF0 {
	case 0xC0, 0xD0:
		return 1
	}
	return 2
}

func systemCommonLength(status byte) int {
	switch status {
	case 0xF1, 0xF3:
		return 2
	case 0xF2:
		return 3
	}
	return 1
}

// Encode is the inverse of Message, used when writing snapshots back out.
func Encode(s contracts.Snapshot) gomidi.Message {
	ch := uint8(s.Channel() & 0x0F)
	switch s.Kind() {
	case contracts.NoteOnEvent:
		return gomidi.NoteOn(ch, uint8(s.Note()&0x7F), uint8(s.Value()&0x7F))
	case contracts.NoteOffEvent:
		return gomidi.NoteOffVelocity(ch, uint8(s.Note()&0x7F), uint8(s.Value()&0x7F))
	case contracts.ControlChangeEvent:
		return gomidi.ControlChange(ch, uint8(s.Control()&0x7F), uint8(s.Value()&0x7F))
	}
	return nil
}
