// Package recipe loads the terrain recipe, namer, and culture-set JSON
// documents whose shapes spec §6 fixes as external schemas, and carries
// the range-string syntax ("n", "a..b", "a..=b") shared by all three.
package recipe

import (
	"math/rand"
	"strconv"
	"strings"

	"cosmopoeia/internal/errs"
)

// Range is a numeric range parsed from one of the three JSON range
// forms (spec §6): a bare number, an exclusive-upper "a..b", or an
// inclusive-upper "a..=b".
type Range struct {
	Lo, Hi      float64
	InclusiveHi bool
}

// ParseRange parses "n", "a..b", or "a..=b" into a Range.
func ParseRange(s string) (Range, error) {
	s = strings.TrimSpace(s)
	if idx := strings.Index(s, "..="); idx >= 0 {
		lo, err := strconv.ParseFloat(strings.TrimSpace(s[:idx]), 64)
		if err != nil {
			return Range{}, errs.Wrap(errs.Input, "recipe", s, "invalid range lower bound", err)
		}
		hi, err := strconv.ParseFloat(strings.TrimSpace(s[idx+3:]), 64)
		if err != nil {
			return Range{}, errs.Wrap(errs.Input, "recipe", s, "invalid range upper bound", err)
		}
		return Range{Lo: lo, Hi: hi, InclusiveHi: true}, nil
	}
	if idx := strings.Index(s, ".."); idx >= 0 {
		lo, err := strconv.ParseFloat(strings.TrimSpace(s[:idx]), 64)
		if err != nil {
			return Range{}, errs.Wrap(errs.Input, "recipe", s, "invalid range lower bound", err)
		}
		hi, err := strconv.ParseFloat(strings.TrimSpace(s[idx+2:]), 64)
		if err != nil {
			return Range{}, errs.Wrap(errs.Input, "recipe", s, "invalid range upper bound", err)
		}
		return Range{Lo: lo, Hi: hi, InclusiveHi: false}, nil
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Range{}, errs.Wrap(errs.Input, "recipe", s, "invalid numeric range", err)
	}
	return Range{Lo: n, Hi: n, InclusiveHi: true}, nil
}

// MustParseRange panics on a malformed range; reserved for
// compile-time-constant ranges in tests and defaults, never for
// user-supplied JSON.
func MustParseRange(s string) Range {
	r, err := ParseRange(s)
	if err != nil {
		panic(err)
	}
	return r
}

// SampleFloat draws a float64 uniformly from the range, respecting the
// inclusive/exclusive upper bound.
func (r Range) SampleFloat(rnd *rand.Rand) float64 {
	if r.Hi <= r.Lo {
		return r.Lo
	}
	if r.InclusiveHi {
		// Treat as inclusive by nudging the span by one ULP-scale epsilon
		// relative to the range width so Hi is reachable.
		span := r.Hi - r.Lo
		return r.Lo + rnd.Float64()*span*(1+1e-12)
	}
	return r.Lo + rnd.Float64()*(r.Hi-r.Lo)
}

// SampleInt draws an int uniformly from the range.
func (r Range) SampleInt(rnd *rand.Rand) int {
	lo, hi := int(r.Lo), int(r.Hi)
	if hi <= lo {
		return lo
	}
	if r.InclusiveHi {
		return lo + rnd.Intn(hi-lo+1)
	}
	return lo + rnd.Intn(hi-lo)
}

// Contains reports whether v falls within the range, used for
// height/x/y filters rather than sampling.
func (r Range) Contains(v float64) bool {
	if v < r.Lo {
		return false
	}
	if r.InclusiveHi {
		return v <= r.Hi
	}
	return v < r.Hi
}
