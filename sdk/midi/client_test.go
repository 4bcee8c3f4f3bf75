package midi_test

import (
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"

	"github.com/leandrodaf/midigate/internal/logger"
	"github.com/leandrodaf/midigate/sdk/contracts"
	"github.com/leandrodaf/midigate/sdk/midi"
)

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

type loopbackDriver struct {
	send chan func([]byte)
}

func (d *loopbackDriver) Devices() ([]contracts.DeviceInfo, error) {
	return []contracts.DeviceInfo{{Name: "loopback"}}, nil
}

func (d *loopbackDriver) Open(name string, onMessage func([]byte)) (io.Closer, error) {
	if name != "loopback" {
		return nil, errors.New("no such port")
	}
	d.send <- onMessage
	return closerFunc(func() error { return nil }), nil
}

func (d *loopbackDriver) Close() error { return nil }

func TestNewMIDIClient(t *testing.T) {
	defer goleak.VerifyNone(t)

	d := &loopbackDriver{send: make(chan func([]byte), 1)}
	client, err := midi.NewMIDIClient(
		contracts.WithLogger(logger.NewZapLoggerWith(zap.NewNop())),
		contracts.WithDriver(d),
		contracts.WithFilter(contracts.FilterConfig{Mode: contracts.Ignore, Channel: "2", Note: "61-70"}),
	)
	require.NoError(t, err)

	devices, err := client.ListDevices()
	require.NoError(t, err)
	assert.Equal(t, []contracts.DeviceInfo{{Name: "loopback"}}, devices)

	events := make(chan contracts.Trigger, 4)
	client.StartCapture(events)
	require.NoError(t, client.SelectDevice("loopback"))

	var onMessage func([]byte)
	select {
	case onMessage = <-d.send:
	case <-time.After(time.Second):
		t.Fatal("device not opened")
	}

	onMessage([]byte{0x92, 60, 64})
	onMessage([]byte{0x92, 65, 64})

	first, second := <-events, <-events
	assert.False(t, first.Admit, "note 60 is outside 61-70")
	assert.True(t, second.Admit)

	latest, fresh := client.Latest()
	assert.True(t, fresh)
	assert.Equal(t, 65, latest.Note())

	require.NoError(t, client.Stop())
}
