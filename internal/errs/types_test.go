package errs

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	e := New(Input, "terrain", "add-hill", "height_delta out of range")
	assert.Equal(t, "terrain: add-hill: height_delta out of range", e.Error())

	wrapped := Wrap(Geometry, "region", "tile 402", "union failed", errors.New("self-intersection"))
	assert.Contains(t, wrapped.Error(), "self-intersection")
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, 0, ExitCode(nil))
	assert.Equal(t, 2, ExitCode(New(Input, "s", "c", "m")))
	assert.Equal(t, 3, ExitCode(New(IO, "s", "c", "m")))
	assert.Equal(t, 4, ExitCode(New(State, "s", "c", "m")))
	assert.Equal(t, 5, ExitCode(New(Geometry, "s", "c", "m")))
	assert.Equal(t, 1, ExitCode(errors.New("plain")))
}

func TestKindOf_WrappedChain(t *testing.T) {
	base := New(State, "hydrology", "sink 77", "prerequisite missing")
	outer := Wrap(State, "gen-water", "hydrology", "stage failed", base)
	assert.Equal(t, State, KindOf(outer))
}
