// Package store tracks render run state, one record per run, for both
// single renders and batch mode.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/danceshorts/shortsfx/pkg/schemas"
)

var (
	// ErrRunNotFound is returned when a run does not exist
	ErrRunNotFound = errors.New("run not found")

	// ErrRunExists is returned when creating a run that already exists
	ErrRunExists = errors.New("run already exists")

	// ErrInvalidRunID is returned for empty run IDs
	ErrInvalidRunID = errors.New("invalid run ID")
)

// IllegalTransitionError reports a state change the run lifecycle does
// not allow.
type IllegalTransitionError struct {
	RunID string
	From  schemas.RunState
	To    schemas.RunState
}

func (e *IllegalTransitionError) Error() string {
	return fmt.Sprintf("run %s cannot move from %s to %s", e.RunID, e.From, e.To)
}

// legalNext is the forward edge of the run lifecycle. RunStateFailed is
// reachable from every non-terminal state and is handled separately.
var legalNext = map[schemas.RunState][]schemas.RunState{
	schemas.RunStateInit:              {schemas.RunStateConfigLoaded},
	schemas.RunStateConfigLoaded:      {schemas.RunStateScenesResolved},
	schemas.RunStateScenesResolved:    {schemas.RunStateTimelineComposed},
	schemas.RunStateTimelineComposed:  {schemas.RunStateOverlaysScheduled},
	schemas.RunStateOverlaysScheduled: {schemas.RunStateRendered, schemas.RunStateDryRunComplete},
}

// CanTransition reports whether from may legally become to.
func CanTransition(from, to schemas.RunState) bool {
	if from.Terminal() {
		return false
	}
	if to == schemas.RunStateFailed {
		return true
	}
	for _, next := range legalNext[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Run is one render run's record.
type Run struct {
	RunID   string    `json:"run_id"`
	Project string    `json:"project"`
	Created time.Time `json:"created_at"`
	Updated time.Time `json:"updated_at"`

	State      schemas.RunState    `json:"state"`
	Error      string              `json:"error,omitempty"`
	OutputPath string              `json:"output_path,omitempty"`
	Plan       *schemas.RenderPlan `json:"plan,omitempty"`

	StartedAt  *time.Time `json:"started_at,omitempty"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`
}

// IsTerminal reports whether the run has finished, one way or another.
func (r *Run) IsTerminal() bool {
	return r.State.Terminal()
}

// ListFilter narrows ListRuns results.
type ListFilter struct {
	// States keeps only runs in one of these states
	States []schemas.RunState `json:"states,omitempty"`

	// Project keeps only runs for the named project
	Project string `json:"project,omitempty"`

	// Limit caps results (0 = no limit)
	Limit int `json:"limit,omitempty"`
}

// Store persists run records.
type Store interface {
	// CreateRun registers a new run in RunStateInit
	CreateRun(ctx context.Context, run *Run) error

	// GetRun retrieves a run by ID
	GetRun(ctx context.Context, runID string) (*Run, error)

	// SetState advances a run through its lifecycle, rejecting
	// transitions the lifecycle does not allow
	SetState(ctx context.Context, runID string, state schemas.RunState) error

	// SetResult records the final output path and plan of a run
	SetResult(ctx context.Context, runID, outputPath string, plan *schemas.RenderPlan) error

	// SetError records a failure message and moves the run to RunStateFailed
	SetError(ctx context.Context, runID, message string) error

	// ListRuns lists runs, newest first
	ListRuns(ctx context.Context, filter *ListFilter) ([]*Run, error)

	// Close releases store resources
	Close() error
}
