package contracts

import "time"

// CoreMIDIConfig holds configuration for CoreMIDI.
type CoreMIDIConfig struct {
	ClientName string // Name of the MIDI client.
}

// Tolerance bounds float equality for exact-match range clauses.
type Tolerance struct {
	Relative float64
	Absolute float64
}

// ClientOptions defines the configuration options for the MIDI client.
type ClientOptions struct {
	Logger          Logger          // Logger for logging events and errors.
	LogLevel        LogLevel        // Level of logging to use.
	LogFilePath     string          // File path for logging if file logging is enabled.
	Device          string          // Input device selected at startup, if any.
	Filter          *FilterConfig   // Range filter applied to captured events.
	EZFilter        *EZConfig       // Exact-match filter; ignored when Filter is set.
	Tolerance       *Tolerance      // Float tolerance for exact-match clauses.
	BufferSize      int             // Capacity of the internal device request queue.
	MaxOpenAttempts int             // Attempts to open a device before giving up.
	RetryDelay      time.Duration   // Pause between failed open attempts.
	Driver          Driver          // Overrides the platform driver.
	CoreMIDIConfig  *CoreMIDIConfig // Configuration specific to CoreMIDI.
}

// Option is a function that modifies ClientOptions.
type Option func(*ClientOptions)

// WithLogger sets the logger for the MIDI client.
func WithLogger(l Logger) Option {
	return func(opts *ClientOptions) {
		opts.Logger = l
	}
}

// WithLogLevel sets the logging level for the MIDI client.
func WithLogLevel(level LogLevel) Option {
	return func(opts *ClientOptions) {
		opts.LogLevel = level
	}
}

// WithLogFile sends log output to the given file.
func WithLogFile(path string) Option {
	return func(opts *ClientOptions) {
		opts.LogFilePath = path
	}
}

// WithDevice selects an input device as soon as the client starts.
func WithDevice(name string) Option {
	return func(opts *ClientOptions) {
		opts.Device = name
	}
}

// WithFilter sets the range filter for captured events.
func WithFilter(filter FilterConfig) Option {
	return func(opts *ClientOptions) {
		opts.Filter = &filter
	}
}

// WithEZFilter sets the exact-match filter for captured events.
func WithEZFilter(filter EZConfig) Option {
	return func(opts *ClientOptions) {
		opts.EZFilter = &filter
	}
}

// WithTolerance sets the relative and absolute tolerance used by exact-match
// range clauses.
func WithTolerance(relative, absolute float64) Option {
	return func(opts *ClientOptions) {
		opts.Tolerance = &Tolerance{Relative: relative, Absolute: absolute}
	}
}

// WithBufferSize sets the capacity of the device request queue.
func WithBufferSize(size int) Option {
	return func(opts *ClientOptions) {
		opts.BufferSize = size
	}
}

// WithRetry sets how many times opening a device is attempted and the delay
// between attempts.
func WithRetry(attempts int, delay time.Duration) Option {
	return func(opts *ClientOptions) {
		opts.MaxOpenAttempts = attempts
		opts.RetryDelay = delay
	}
}

// WithDriver replaces the platform driver.
func WithDriver(d Driver) Option {
	return func(opts *ClientOptions) {
		opts.Driver = d
	}
}

// WithCoreMIDIConfig sets the CoreMIDI configuration for the MIDI client.
func WithCoreMIDIConfig(config CoreMIDIConfig) Option {
	return func(opts *ClientOptions) {
		opts.CoreMIDIConfig = &config
	}
}
