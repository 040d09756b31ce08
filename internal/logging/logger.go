// Package logging wires up the run-scoped zerolog logger every pipeline
// stage pulls its logger from.
package logging

import (
	"context"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type contextKey string

const (
	runIDKey  contextKey = "run_id"
	loggerKey contextKey = "logger"
)

// Init initializes the global logger for interactive CLI runs.
func Init() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
}

// NewRun stamps a fresh run id and returns a context carrying a logger
// tagged with it. The run id is also what gets written to the
// properties layer as the stored seed's companion value.
func NewRun(ctx context.Context, seed int64) (context.Context, uuid.UUID) {
	runID := uuid.New()
	logger := log.With().Str("run_id", runID.String()).Int64("seed", seed).Logger()
	ctx = context.WithValue(ctx, runIDKey, runID)
	ctx = context.WithValue(ctx, loggerKey, logger)
	return ctx, runID
}

// Stage returns a context+logger scoped to a pipeline stage name, the
// field every log line in that stage will carry.
func Stage(ctx context.Context, stage string) (context.Context, *zerolog.Logger) {
	logger := FromContext(ctx).With().Str("stage", stage).Logger()
	ctx = context.WithValue(ctx, loggerKey, logger)
	return ctx, &logger
}

// FromContext returns the logger from the context, or the global logger
// if the context carries none (e.g. in unit tests).
func FromContext(ctx context.Context) *zerolog.Logger {
	if logger, ok := ctx.Value(loggerKey).(zerolog.Logger); ok {
		return &logger
	}
	return &log.Logger
}

// RunID returns the run id stashed in ctx, or the zero UUID if absent.
func RunID(ctx context.Context) uuid.UUID {
	if id, ok := ctx.Value(runIDKey).(uuid.UUID); ok {
		return id
	}
	return uuid.UUID{}
}
