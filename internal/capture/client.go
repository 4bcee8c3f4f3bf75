// Package capture runs the device side of a MIDI client: a background loop
// owning the open input port, decoding what the driver delivers, and handing
// every event with the active filter's decision to the consumer.
package capture

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/multierr"

	"github.com/leandrodaf/midigate/internal/decode"
	"github.com/leandrodaf/midigate/internal/filter"
	"github.com/leandrodaf/midigate/internal/rangespec"
	"github.com/leandrodaf/midigate/sdk/contracts"
)

// Error definitions for device selection and lifecycle.
var (
	ErrNoMIDIDevices       = errors.New("no MIDI devices found")
	ErrInvalidMIDIDevice   = errors.New("invalid MIDI device")
	ErrMIDIConnectionError = errors.New("error connecting to MIDI device")
	ErrClientStopped       = errors.New("MIDI client stopped")
)

// stamped is a captured snapshot tagged with its arrival sequence number.
type stamped struct {
	snapshot contracts.Snapshot
	version  uint64
}

var _ contracts.ClientMIDI = (*Client)(nil)

// Client implements contracts.ClientMIDI over any contracts.Driver.
type Client struct {
	logger       contracts.Logger
	driver       contracts.Driver
	filter       *filter.Active
	requests     chan string          // Device names for the loop to open.
	eventChannel atomic.Value         // chan contracts.Trigger, replaced on StartCapture.
	latest       atomic.Pointer[stamped]
	version      atomic.Uint64 // Incremented for every decoded event.
	seen         atomic.Uint64 // Version returned by the previous Latest call.
	attempts     int
	retryDelay   time.Duration
	cancel       context.CancelFunc
	done         chan struct{}
	closeErr     error // Set by the loop before done is closed.
	stopMu       sync.RWMutex // Held for reading while a request is queued.
	stopped      atomic.Bool
	stopOnce     sync.Once
	stopErr      error
}

// New starts a client on options.Driver. Options are expected to carry
// defaults already (see sdk/midi).
func New(options *contracts.ClientOptions) *Client {
	var specOpts []rangespec.Option
	if options.Tolerance != nil {
		specOpts = append(specOpts, rangespec.WithTolerance(options.Tolerance.Relative, options.Tolerance.Absolute))
	}

	ctx, cancel := context.WithCancel(context.Background())
	c := &Client{
		logger:     options.Logger,
		driver:     options.Driver,
		filter:     filter.NewActive(specOpts...),
		requests:   make(chan string, options.BufferSize),
		attempts:   options.MaxOpenAttempts,
		retryDelay: options.RetryDelay,
		cancel:     cancel,
		done:       make(chan struct{}),
	}
	c.eventChannel.Store((chan contracts.Trigger)(nil))

	switch {
	case options.Filter != nil:
		c.filter.StoreRange(*options.Filter)
	case options.EZFilter != nil:
		c.filter.StoreEZ(*options.EZFilter)
	}

	go c.run(ctx)

	if options.Device != "" {
		c.requests <- options.Device
	}
	return c
}

// ListDevices returns the driver's input devices.
func (c *Client) ListDevices() ([]contracts.DeviceInfo, error) {
	devices, err := c.driver.Devices()
	if err != nil {
		return nil, fmt.Errorf("error listing MIDI sources: %w", err)
	}
	if len(devices) == 0 {
		c.logger.Warn(ErrNoMIDIDevices.Error())
		return nil, ErrNoMIDIDevices
	}
	return devices, nil
}

// SelectDevice asks the capture loop to switch to the named device. The
// previous device, if any, is closed before the new one is opened. Opening
// happens asynchronously; failures are retried and logged by the loop.
func (c *Client) SelectDevice(name string) error {
	if c.stopped.Load() {
		return ErrClientStopped
	}

	devices, err := c.ListDevices()
	if err != nil {
		return err
	}
	found := false
	for _, d := range devices {
		if d.Name == name {
			found = true
			break
		}
	}
	if !found {
		c.logger.Error(ErrInvalidMIDIDevice.Error(), c.logger.Field().String("deviceName", name))
		return fmt.Errorf("%w: %q", ErrInvalidMIDIDevice, name)
	}

	return c.request(name)
}

// request queues name for the loop. Stop cannot begin while a request is
// being queued, so an accepted request always precedes Stop.
func (c *Client) request(name string) error {
	c.stopMu.RLock()
	defer c.stopMu.RUnlock()
	if c.stopped.Load() {
		return ErrClientStopped
	}

	select {
	case c.requests <- name:
		c.logger.Info("MIDI device selected", c.logger.Field().String("deviceName", name))
		return nil
	case <-c.done:
		return ErrClientStopped
	}
}

// StartCapture directs captured events to eventChannel, replacing any
// previous channel. Sends never block; events are dropped when the channel
// is full.
func (c *Client) StartCapture(eventChannel chan contracts.Trigger) {
	if eventChannel == nil {
		c.logger.Error("StartCapture called with nil eventChannel")
		return
	}
	if old, _ := c.eventChannel.Load().(chan contracts.Trigger); old != nil {
		c.logger.Warn("Capture already started; replacing event channel")
	}
	c.eventChannel.Store(eventChannel)
	c.logger.Info("Starting MIDI event capture")
}

// SetFilter replaces the active filter with a range filter.
func (c *Client) SetFilter(config contracts.FilterConfig) {
	if c.filter.StoreRange(config) {
		c.logger.Info("MIDI filter updated",
			c.logger.Field().String("mode", config.Mode.String()),
			c.logger.Field().String("channel", config.Channel),
			c.logger.Field().String("control", config.Control),
			c.logger.Field().String("note", config.Note),
			c.logger.Field().String("value", config.Value),
			c.logger.Field().String("normalized", config.Normalized))
	}
}

// SetEZFilter replaces the active filter with an exact-match filter.
func (c *Client) SetEZFilter(config contracts.EZConfig) {
	c.filter.StoreEZ(config)
	c.logger.Info("MIDI EZ filter updated",
		c.logger.Field().String("mode", config.Mode.String()),
		c.logger.Field().Int("channel", config.Channel),
		c.logger.Field().Int("control", config.Control),
		c.logger.Field().Int("note", config.Note),
		c.logger.Field().Int("value", config.Value))
}

// Latest returns the most recent event and whether it arrived after the
// previous call to Latest. Before the first event it returns false.
func (c *Client) Latest() (contracts.Snapshot, bool) {
	st := c.latest.Load()
	if st == nil {
		return contracts.Snapshot{}, false
	}
	return st.snapshot, c.seen.Swap(st.version) != st.version
}

// Stop closes the device and the driver and waits for the capture loop to
// exit. Only the first call does any work; later calls return its result.
func (c *Client) Stop() error {
	c.stopOnce.Do(func() {
		c.logger.Info("Stopping MIDI capture")
		c.stopMu.Lock()
		c.stopped.Store(true)
		c.stopMu.Unlock()
		c.cancel()
		<-c.done
		c.eventChannel.Store((chan contracts.Trigger)(nil))

		c.stopErr = multierr.Append(c.closeErr, c.driver.Close())
		if c.stopErr != nil {
			c.logger.Error("MIDI capture stopped with errors", c.logger.Field().Error("error", c.stopErr))
			return
		}
		c.logger.Info("MIDI capture stopped")
	})
	return c.stopErr
}

// run owns the open port. It blocks on the request channel and swaps the
// port when a different device is requested.
func (c *Client) run(ctx context.Context) {
	defer close(c.done)

	var (
		port    io.Closer
		current string
	)
	for {
		select {
		case <-ctx.Done():
			if port != nil {
				c.closeErr = port.Close()
			}
			return
		case name := <-c.requests:
			if port != nil && name == current {
				continue
			}
			if port != nil {
				if err := port.Close(); err != nil {
					c.logger.Error("Failed to close MIDI device", c.logger.Field().String("deviceName", current), c.logger.Field().Error("error", err))
				}
				c.logger.Debug("device loop ended", c.logger.Field().String("deviceName", current))
				port, current = nil, ""
			}
			if p := c.open(ctx, name); p != nil {
				port, current = p, name
			}
		}
	}
}

// open tries the driver up to c.attempts times, pausing between attempts.
func (c *Client) open(ctx context.Context, name string) io.Closer {
	for attempt := 1; ; attempt++ {
		port, err := c.driver.Open(name, c.handle)
		if err == nil {
			c.logger.Info("MIDI device successfully connected", c.logger.Field().String("deviceName", name))
			return port
		}

		err = fmt.Errorf("%w: %v", ErrMIDIConnectionError, err)
		if attempt >= c.attempts {
			c.logger.Error("Giving up on MIDI device",
				c.logger.Field().String("deviceName", name),
				c.logger.Field().Int("attempts", attempt),
				c.logger.Field().Error("error", err))
			return nil
		}
		c.logger.Warn("Failed to open MIDI device; retrying",
			c.logger.Field().String("deviceName", name),
			c.logger.Field().Int("attempt", attempt),
			c.logger.Field().Error("error", err))

		timer := time.NewTimer(c.retryDelay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil
		case <-timer.C:
		}
	}
}

// handle is the driver callback. It must not block.
func (c *Client) handle(data []byte) {
	if c.stopped.Load() {
		return
	}
	for _, msg := range decode.Split(data) {
		c.dispatch(msg)
	}
}

// dispatch records and forwards one channel message.
func (c *Client) dispatch(msg []byte) {
	snapshot, ok := decode.Bytes(msg)
	if !ok {
		c.logger.Debug("Ignoring unsupported MIDI message", c.logger.Field().Int("status", int(msg[0])))
		return
	}

	c.latest.Store(&stamped{snapshot: snapshot, version: c.version.Add(1)})

	eventChannel, _ := c.eventChannel.Load().(chan contracts.Trigger)
	if eventChannel == nil {
		return
	}

	trigger := contracts.Trigger{
		Timestamp: uint64(time.Now().UTC().UnixNano()),
		Snapshot:  snapshot,
		Admit:     c.filter.Evaluate(snapshot),
	}
	select {
	case eventChannel <- trigger:
	default:
		c.logger.Warn("Event buffer full; dropping MIDI event")
	}
}
