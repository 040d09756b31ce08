// Package errs provides the pipeline's error kinds (spec §7: Input, IO,
// State, Geometry) and the wrapping helpers every stage uses to attach
// stage/command/tile context before aborting.
package errs

import (
	"errors"
	"fmt"
)

// Kind classifies a failure the way spec §7 does, so the CLI can map it
// to an exit code and a one-line message without inspecting strings.
type Kind string

const (
	Input    Kind = "input"    // bad CLI args, bad JSON, out-of-range numeric
	IO       Kind = "io"       // raster/vector open/read/write
	State    Kind = "state"    // stage run without its prerequisites, or overwrite refused
	Geometry Kind = "geometry" // invalid polygon after union, recovery failed
)

// AppError is the one error type every stage returns.
type AppError struct {
	Kind    Kind
	Stage   string // e.g. "terrain", "gen-water"
	Context string // command or tile id the failure occurred at
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %s: %v", e.Stage, e.Context, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s: %s", e.Stage, e.Context, e.Message)
}

func (e *AppError) Unwrap() error { return e.Err }

// New builds an AppError with no wrapped cause.
func New(kind Kind, stage, context, message string) *AppError {
	return &AppError{Kind: kind, Stage: stage, Context: context, Message: message}
}

// Wrap attaches stage/context to an existing error under the given
// kind; the cause's own Kind is not carried over (pass KindOf(err) to
// keep it).
func Wrap(kind Kind, stage, context, message string, err error) *AppError {
	return &AppError{Kind: kind, Stage: stage, Context: context, Message: message, Err: err}
}

// KindOf extracts the Kind from err if it (or something it wraps) is an
// *AppError, defaulting to IO for unrecognized errors since most
// uncategorized failures in this pipeline come from the store or raster
// layers.
func KindOf(err error) Kind {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return IO
}

// ExitCode maps a Kind to the process exit code spec §6 requires.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var ae *AppError
	if !errors.As(err, &ae) {
		return 1
	}
	switch ae.Kind {
	case Input:
		return 2
	case IO:
		return 3
	case State:
		return 4
	case Geometry:
		return 5
	default:
		return 1
	}
}
