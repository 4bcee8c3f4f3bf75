package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leandrodaf/midigate/internal/filter"
	"github.com/leandrodaf/midigate/sdk/contracts"
)

func TestEZConfig(t *testing.T) {
	config, err := ezConfig(contracts.NoteOn, "2", "", " 60 ", "")
	require.NoError(t, err)
	assert.Equal(t, contracts.EZConfig{
		Mode:    contracts.NoteOn,
		Channel: 2,
		Control: contracts.DontCare,
		Note:    60,
		Value:   contracts.DontCare,
	}, config)

	f := filter.NewEZ(config)
	assert.True(t, f.Evaluate(contracts.NewSnapshot(contracts.NoteOnEvent, 2, 0, 60, 10)))
	assert.False(t, f.Evaluate(contracts.NewSnapshot(contracts.NoteOnEvent, 2, 0, 61, 10)))
}

func TestEZConfigRejectsRanges(t *testing.T) {
	_, err := ezConfig(contracts.Ignore, "0-3", "", "", "")
	assert.ErrorContains(t, err, "channel")
}
