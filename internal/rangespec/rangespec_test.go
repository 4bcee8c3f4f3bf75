package rangespec_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/leandrodaf/midigate/internal/rangespec"
)

var samples = []float64{
	math.Inf(-1), -1000, -1, -0.5, 0, 0.5, 1, 2, 3, 4, 4.999, 5, 6, 7.5, 10, 10.001,
	11, 49, 50, 51, 99, 100, 100.5, 127, 1000, math.Inf(1),
}

func TestParse(t *testing.T) {
	cases := []struct {
		text     string
		expected []rangespec.Clause
	}{
		{
			text:     "5-10",
			expected: []rangespec.Clause{{Kind: rangespec.ClosedRange, Lo: 5, Hi: 10}},
		},
		{
			text:     "-100",
			expected: []rangespec.Clause{{Kind: rangespec.UpperBound, Hi: 100}},
		},
		{
			text:     "50-",
			expected: []rangespec.Clause{{Kind: rangespec.LowerBound, Lo: 50}},
		},
		{
			text: " 1, 2 ,5 - 10 ",
			expected: []rangespec.Clause{
				{Kind: rangespec.Exact, Lo: 1},
				{Kind: rangespec.Exact, Lo: 2},
				{Kind: rangespec.ClosedRange, Lo: 5, Hi: 10},
			},
		},
		{
			// leading '-' wins over range splitting
			text:     "--5",
			expected: []rangespec.Clause{{Kind: rangespec.UpperBound, Hi: -5}},
		},
		{
			text:     "0.25-0.75",
			expected: []rangespec.Clause{{Kind: rangespec.ClosedRange, Lo: 0.25, Hi: 0.75}},
		},
		{
			text:     "10-5",
			expected: []rangespec.Clause{{Kind: rangespec.ClosedRange, Lo: 10, Hi: 5}},
		},
		{
			text:     "abc,5-10",
			expected: []rangespec.Clause{{Kind: rangespec.ClosedRange, Lo: 5, Hi: 10}},
		},
		{text: "-", expected: nil},
		{text: "1-2-3", expected: nil},
		{text: "1e-5", expected: nil},
		{text: "x-", expected: nil},
		{text: "-x", expected: nil},
		{text: ",,", expected: nil},
	}

	for _, c := range cases {
		spec := rangespec.Parse(c.text)
		assert.False(t, spec.Unconstrained(), "text %q", c.text)
		assert.Equal(t, c.expected, spec.Clauses(), "text %q", c.text)
	}
}

func TestAdmits(t *testing.T) {
	cases := []struct {
		text   string
		admits func(x float64) bool
	}{
		{text: "", admits: func(float64) bool { return true }},
		{text: "   ", admits: func(float64) bool { return true }},
		{text: "5-10", admits: func(x float64) bool { return 5 <= x && x <= 10 }},
		{text: "-100", admits: func(x float64) bool { return x <= 100 }},
		{text: "50-", admits: func(x float64) bool { return x >= 50 }},
		{text: "1,2,5-10", admits: func(x float64) bool { return x == 1 || x == 2 || (5 <= x && x <= 10) }},
		{text: "abc,5-10", admits: func(x float64) bool { return 5 <= x && x <= 10 }},
		{text: "abc", admits: func(float64) bool { return false }},
		{text: "10-5", admits: func(float64) bool { return false }},
		{text: "-0, 127", admits: func(x float64) bool { return x <= 0 || x == 127 }},
	}

	for _, c := range cases {
		spec := rangespec.Parse(c.text)
		for _, x := range samples {
			assert.Equal(t, c.admits(x), spec.Admits(x), "text %q x %v", c.text, x)
		}
	}
}

func TestMalformedItemsEquivalent(t *testing.T) {
	clean := rangespec.Parse("5-10")
	noisy := rangespec.Parse("abc,5-10")
	for _, x := range samples {
		assert.Equal(t, clean.Admits(x), noisy.Admits(x), "x %v", x)
	}
}

// A backwards range is kept as written and admits nothing.
func TestBackwardsRangeAdmitsNothing(t *testing.T) {
	spec := rangespec.Parse("10-5")
	assert.False(t, spec.Admits(7))
	assert.False(t, spec.Admits(5))
	assert.False(t, spec.Admits(10))
}

func TestExactTolerance(t *testing.T) {
	spec := rangespec.Parse("3")
	assert.True(t, spec.Admits(3))
	assert.True(t, spec.Admits(3.0000000001))
	assert.False(t, spec.Admits(3.1))

	zero := rangespec.Parse("0")
	assert.True(t, zero.Admits(1e-10))
	assert.False(t, zero.Admits(1e-6))

	loose := rangespec.Parse("3", rangespec.WithTolerance(0, 0.2))
	assert.True(t, loose.Admits(3.1))
	assert.False(t, loose.Admits(3.3))

	strict := rangespec.Parse("3", rangespec.WithTolerance(0, 0))
	assert.False(t, strict.Admits(3.0000000001))
	assert.True(t, strict.Admits(3))
}

func TestOutOfRangeLiterals(t *testing.T) {
	spec := rangespec.Parse("1e400-")
	assert.Equal(t, []rangespec.Clause{{Kind: rangespec.LowerBound, Lo: math.Inf(1)}}, spec.Clauses())
	assert.False(t, spec.Admits(1e300))
	assert.True(t, spec.Admits(math.Inf(1)))
}

func TestString(t *testing.T) {
	assert.Equal(t, "", rangespec.Parse("").String())
	assert.Equal(t, "1,-3,50-,5-10", rangespec.Parse(" 1 , -3, 50- ,x, 5-10").String())
}
