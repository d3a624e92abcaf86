package pipeline

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput rejects empty or whitespace-only text before any
	// stage runs.
	ErrInvalidInput = errors.New("text must be a non-empty string")

	// ErrAllStagesFailed is returned alongside a degraded result when
	// every component failed or timed out.
	ErrAllStagesFailed = errors.New("all analysis stages failed")

	errNoClassifier = errors.New("no classifier backend configured")
)

// StageError wraps a failure of a single pipeline stage. Stage errors are
// recovered inside the aggregator and never surface past it.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("stage %s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}
