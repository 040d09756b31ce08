package recipe

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRange_Bare(t *testing.T) {
	r, err := ParseRange("5")
	require.NoError(t, err)
	assert.Equal(t, Range{Lo: 5, Hi: 5, InclusiveHi: true}, r)
}

func TestParseRange_Exclusive(t *testing.T) {
	r, err := ParseRange("1..10")
	require.NoError(t, err)
	assert.Equal(t, Range{Lo: 1, Hi: 10, InclusiveHi: false}, r)
}

func TestParseRange_Inclusive(t *testing.T) {
	r, err := ParseRange("1..=10")
	require.NoError(t, err)
	assert.Equal(t, Range{Lo: 1, Hi: 10, InclusiveHi: true}, r)
}

func TestParseRange_Malformed(t *testing.T) {
	_, err := ParseRange("abc")
	assert.Error(t, err)

	_, err = ParseRange("1..xyz")
	assert.Error(t, err)
}

func TestRange_Contains(t *testing.T) {
	excl, _ := ParseRange("1..10")
	assert.True(t, excl.Contains(1))
	assert.False(t, excl.Contains(10))

	incl, _ := ParseRange("1..=10")
	assert.True(t, incl.Contains(10))
}

func TestRange_SampleInt_Deterministic(t *testing.T) {
	r, _ := ParseRange("3..=7")
	rnd := rand.New(rand.NewSource(42))
	for i := 0; i < 100; i++ {
		v := r.SampleInt(rnd)
		assert.GreaterOrEqual(t, v, 3)
		assert.LessOrEqual(t, v, 7)
	}
}

func TestRange_SampleFloat_DegenerateRange(t *testing.T) {
	r := Range{Lo: 4, Hi: 4, InclusiveHi: true}
	rnd := rand.New(rand.NewSource(1))
	assert.Equal(t, 4.0, r.SampleFloat(rnd))
}
