package filter

import (
	"sync/atomic"

	"github.com/leandrodaf/midigate/internal/rangespec"
	"github.com/leandrodaf/midigate/sdk/contracts"
)

// Active holds the filter currently in force. Reconfiguration swaps the
// whole Filter so an evaluation never sees a half-updated configuration.
// The zero value admits every event.
type Active struct {
	current atomic.Pointer[Filter]
	opts    []rangespec.Option
}

// NewActive returns an Active that parses range text with opts.
func NewActive(opts ...rangespec.Option) *Active {
	return &Active{opts: opts}
}

// Load returns the filter in force, or nil if none was stored.
func (a *Active) Load() *Filter {
	return a.current.Load()
}

// Store publishes f.
func (a *Active) Store(f *Filter) {
	a.current.Store(f)
}

// StoreRange publishes a range filter for cfg. The text is parsed again only
// when it differs from the active range configuration; it reports whether a
// new filter was published.
func (a *Active) StoreRange(cfg contracts.FilterConfig) bool {
	if f := a.current.Load(); f != nil {
		if p, ok := f.policy.(*RangePolicy); ok && p.config == cfg {
			return false
		}
	}
	a.current.Store(NewRange(cfg, a.opts...))
	return true
}

// StoreEZ publishes an exact-match filter for cfg.
func (a *Active) StoreEZ(cfg contracts.EZConfig) {
	a.current.Store(NewEZ(cfg))
}

// Evaluate runs s through the filter in force.
func (a *Active) Evaluate(s contracts.Snapshot) bool {
	f := a.current.Load()
	if f == nil {
		return true
	}
	return f.Evaluate(s)
}
