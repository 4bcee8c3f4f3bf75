package midi

import (
	"errors"
	"time"

	"github.com/leandrodaf/midigate/internal/logger"
	"github.com/leandrodaf/midigate/sdk/contracts"
)

// Defaults applied by applyDefaultOptions.
const (
	DefaultBufferSize      = 16
	DefaultMaxOpenAttempts = 3
	DefaultRetryDelay      = 2 * time.Second
)

// ErrConflictingFilters is returned when both a range and an EZ filter are configured.
var ErrConflictingFilters = errors.New("range filter and EZ filter are mutually exclusive")

// applyDefaultOptions sets default values for ClientOptions if not explicitly provided.
//
// opts ...contracts.Option: A variadic list of option functions that can modify ClientOptions.
//
// Returns:
//   - contracts.ClientOptions: A structure containing the finalized client options with defaults applied.
//   - error: An error if the options contradict each other.
func applyDefaultOptions(opts ...contracts.Option) (contracts.ClientOptions, error) {
	options := &contracts.ClientOptions{}
	for _, opt := range opts {
		opt(options)
	}

	if options.Filter != nil && options.EZFilter != nil {
		return contracts.ClientOptions{}, ErrConflictingFilters
	}

	// Set defaults if options are not provided
	if options.Logger == nil {
		options.Logger = logger.NewZapLogger()
	}
	if options.LogLevel == 0 {
		options.LogLevel = contracts.InfoLevel
	}
	if options.CoreMIDIConfig == nil {
		options.CoreMIDIConfig = &contracts.CoreMIDIConfig{ClientName: "GO MIDI Client"}
	}
	if options.BufferSize <= 0 {
		options.BufferSize = DefaultBufferSize
	}
	if options.MaxOpenAttempts <= 0 {
		options.MaxOpenAttempts = DefaultMaxOpenAttempts
	}
	if options.RetryDelay <= 0 {
		options.RetryDelay = DefaultRetryDelay
	}
	if options.Filter == nil && options.EZFilter == nil {
		filter := contracts.DefaultFilterConfig()
		options.Filter = &filter
	}

	options.Logger.SetLevel(options.LogLevel)
	if options.LogFilePath != "" {
		options.Logger.SetDestination(contracts.FileLog, options.LogFilePath)
	}
	return *options, nil
}
