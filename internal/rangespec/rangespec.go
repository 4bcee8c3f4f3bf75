// Package rangespec parses and evaluates comma-separated numeric range
// specifications such as "1, 2, 5-10, -3, 100-".
//
// Supported items:
//   - "N"   admits values equal to N (float tolerant)
//   - "A-B" admits A <= x <= B
//   - "-N"  admits x <= N
//   - "N-"  admits x >= N
//
// Items that do not parse are dropped. Dropping never widens a
// specification: text made only of malformed items admits nothing, while
// empty text admits everything.
package rangespec

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Defaults for exact-match comparison.
const (
	DefaultRelativeTolerance = 1e-9
	DefaultAbsoluteTolerance = 1e-9
)

// Kind is the shape of a Clause.
type Kind int

const (
	Exact Kind = iota
	UpperBound
	LowerBound
	ClosedRange
)

// Clause is one admission rule of a Spec.
type Clause struct {
	Kind Kind
	Lo   float64 // Bound for Exact, LowerBound and ClosedRange.
	Hi   float64 // Bound for UpperBound and ClosedRange.
}

func (c Clause) String() string {
	switch c.Kind {
	case Exact:
		return formatFloat(c.Lo)
	case UpperBound:
		return "-" + formatFloat(c.Hi)
	case LowerBound:
		return formatFloat(c.Lo) + "-"
	case ClosedRange:
		return formatFloat(c.Lo) + "-" + formatFloat(c.Hi)
	}
	return fmt.Sprintf("Clause(%d)", int(c.Kind))
}

// Spec is a parsed range specification. It is immutable and safe for
// concurrent use.
type Spec struct {
	clauses       []Clause
	unconstrained bool
	rel, abs      float64
}

// Option configures Parse.
type Option func(*Spec)

// WithTolerance sets the relative and absolute tolerance used by Exact
// clauses. Negative values are treated as zero.
func WithTolerance(relative, absolute float64) Option {
	return func(s *Spec) {
		s.rel = math.Max(relative, 0)
		s.abs = math.Max(absolute, 0)
	}
}

// Parse compiles text into a Spec. It never fails.
func Parse(text string, opts ...Option) Spec {
	s := Spec{rel: DefaultRelativeTolerance, abs: DefaultAbsoluteTolerance}
	for _, opt := range opts {
		opt(&s)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		s.unconstrained = true
		return s
	}

	for _, item := range strings.Split(text, ",") {
		if c, ok := parseClause(strings.TrimSpace(item)); ok {
			s.clauses = append(s.clauses, c)
		}
	}
	return s
}

// parseClause classifies one trimmed item. The checks run in a fixed order
// because '-' is both the range separator and the open-bound marker.
func parseClause(item string) (Clause, bool) {
	switch {
	case strings.HasPrefix(item, "-"):
		v, ok := parseNumber(item[1:])
		return Clause{Kind: UpperBound, Hi: v}, ok
	case strings.HasSuffix(item, "-"):
		v, ok := parseNumber(item[:len(item)-1])
		return Clause{Kind: LowerBound, Lo: v}, ok
	case strings.Contains(item, "-"):
		a, b, _ := strings.Cut(item, "-")
		lo, okLo := parseNumber(a)
		hi, okHi := parseNumber(b)
		return Clause{Kind: ClosedRange, Lo: lo, Hi: hi}, okLo && okHi
	default:
		v, ok := parseNumber(item)
		return Clause{Kind: Exact, Lo: v}, ok
	}
}

// parseNumber accepts out-of-range literals, which saturate to ±Inf or 0.
func parseNumber(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, false
	}
	return v, true
}

// Unconstrained reports whether the Spec came from empty text and admits
// every value.
func (s Spec) Unconstrained() bool { return s.unconstrained }

// Clauses returns a copy of the parsed clauses in input order.
func (s Spec) Clauses() []Clause {
	return append([]Clause(nil), s.clauses...)
}

// Admits reports whether x satisfies any clause. Clauses are OR-combined.
// A ClosedRange whose Lo exceeds Hi admits nothing.
func (s Spec) Admits(x float64) bool {
	if s.unconstrained {
		return true
	}
	for _, c := range s.clauses {
		if s.admits(c, x) {
			return true
		}
	}
	return false
}

func (s Spec) admits(c Clause, x float64) bool {
	switch c.Kind {
	case Exact:
		return s.isClose(x, c.Lo)
	case UpperBound:
		return x <= c.Hi
	case LowerBound:
		return x >= c.Lo
	case ClosedRange:
		return c.Lo <= x && x <= c.Hi
	}
	return false
}

func (s Spec) isClose(a, b float64) bool {
	if a == b {
		return true
	}
	if math.IsInf(a, 0) || math.IsInf(b, 0) {
		return false
	}
	diff := math.Abs(a - b)
	return diff <= s.rel*math.Max(math.Abs(a), math.Abs(b)) || diff <= s.abs
}

func (s Spec) String() string {
	if s.unconstrained {
		return ""
	}
	parts := make([]string, len(s.clauses))
	for i, c := range s.clauses {
		parts[i] = c.String()
	}
	return strings.Join(parts, ",")
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
