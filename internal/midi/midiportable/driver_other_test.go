//go:build darwin || windows
// +build darwin windows

package midiportable_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/leandrodaf/midigate/internal/logger"
	"github.com/leandrodaf/midigate/internal/midi/midiportable"
	"github.com/leandrodaf/midigate/sdk/contracts"
)

func TestNewDriverUnsupported(t *testing.T) {
	d, err := midiportable.NewDriver(&contracts.ClientOptions{Logger: logger.NewZapLoggerWith(zap.NewNop())})
	assert.Nil(t, d)
	assert.Equal(t, midiportable.ErrUnsupportedPlatform, err)
}
