// Package filter decides whether a captured MIDI event passes a configured
// filter. A Filter is a gating step (note-on, note-off or ignore) followed by
// an attribute Policy. Two policies exist: RangePolicy, driven by range
// specification text, and EZPolicy, driven by exact integers.
//
// Filters are immutable and safe for concurrent use.
package filter

import (
	"github.com/leandrodaf/midigate/internal/rangespec"
	"github.com/leandrodaf/midigate/sdk/contracts"
)

// Policy is the attribute stage of a Filter.
type Policy interface {
	Admits(s contracts.Snapshot) bool
}

// Filter combines a gating mode with an attribute Policy.
type Filter struct {
	mode   contracts.GatingMode
	policy Policy
}

// New returns a Filter using an arbitrary policy. A nil policy admits every
// event that passes the gating step.
func New(mode contracts.GatingMode, policy Policy) *Filter {
	return &Filter{mode: mode, policy: policy}
}

// NewRange compiles cfg into a Filter. Parsing never fails.
func NewRange(cfg contracts.FilterConfig, opts ...rangespec.Option) *Filter {
	return New(cfg.Mode, NewRangePolicy(cfg, opts...))
}

// NewEZ builds the exact-match Filter for cfg.
func NewEZ(cfg contracts.EZConfig) *Filter {
	return New(cfg.Mode, EZPolicy(cfg))
}

// Mode returns the gating mode.
func (f *Filter) Mode() contracts.GatingMode { return f.mode }

// Evaluate reports whether s passes the filter. Checks run in a fixed order
// and the first failing one rejects.
func (f *Filter) Evaluate(s contracts.Snapshot) bool {
	if !Gate(f.mode, s) {
		return false
	}
	return f.policy == nil || f.policy.Admits(s)
}

// Gate applies the note-on/off gating step.
func Gate(mode contracts.GatingMode, s contracts.Snapshot) bool {
	switch mode {
	case contracts.NoteOn:
		return s.IsNoteOn()
	case contracts.NoteOff:
		return !s.IsNoteOn()
	}
	return true
}

type attributeSpec struct {
	attr contracts.Attribute
	spec rangespec.Spec
}

// RangePolicy checks each configured attribute against its parsed range
// specification. Attributes with empty text are not checked at all.
type RangePolicy struct {
	config contracts.FilterConfig
	specs  []attributeSpec
}

// NewRangePolicy parses every attribute field of cfg.
func NewRangePolicy(cfg contracts.FilterConfig, opts ...rangespec.Option) *RangePolicy {
	p := &RangePolicy{config: cfg}
	for _, attr := range contracts.Attributes {
		spec := rangespec.Parse(cfg.Field(attr), opts...)
		if spec.Unconstrained() {
			continue
		}
		p.specs = append(p.specs, attributeSpec{attr: attr, spec: spec})
	}
	return p
}

// Config returns the text the policy was compiled from.
func (p *RangePolicy) Config() contracts.FilterConfig { return p.config }

// Admits checks channel, control, note, value and normalized in that order.
func (p *RangePolicy) Admits(s contracts.Snapshot) bool {
	for _, as := range p.specs {
		if !as.spec.Admits(s.Attribute(as.attr)) {
			return false
		}
	}
	return true
}

// EZPolicy requires every non-negative field to equal the event's attribute.
// The Mode field is ignored here; it belongs to the gating step.
type EZPolicy contracts.EZConfig

// Admits checks channel, control, note and value in that order.
func (p EZPolicy) Admits(s contracts.Snapshot) bool {
	switch {
	case p.Channel > contracts.DontCare && s.Channel() != p.Channel:
		return false
	case p.Control > contracts.DontCare && s.Control() != p.Control:
		return false
	case p.Note > contracts.DontCare && s.Note() != p.Note:
		return false
	case p.Value > contracts.DontCare && s.Value() != p.Value:
		return false
	}
	return true
}
