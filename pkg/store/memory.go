package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/danceshorts/shortsfx/pkg/schemas"
)

// MemoryStore is an in-memory Store, safe for concurrent use. Batch
// mode shares one instance across its workers.
type MemoryStore struct {
	mu   sync.RWMutex
	runs map[string]*Run
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		runs: make(map[string]*Run),
	}
}

// CreateRun registers a new run.
func (m *MemoryStore) CreateRun(ctx context.Context, run *Run) error {
	if run.RunID == "" {
		return ErrInvalidRunID
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.runs[run.RunID]; exists {
		return ErrRunExists
	}

	now := time.Now()
	stored := m.copyRun(run)
	if stored.Created.IsZero() {
		stored.Created = now
	}
	stored.Updated = now
	if stored.State == "" {
		stored.State = schemas.RunStateInit
	}
	m.runs[run.RunID] = stored

	return nil
}

// GetRun retrieves a run by ID.
func (m *MemoryStore) GetRun(ctx context.Context, runID string) (*Run, error) {
	if runID == "" {
		return nil, ErrInvalidRunID
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	run, exists := m.runs[runID]
	if !exists {
		return nil, ErrRunNotFound
	}
	return m.copyRun(run), nil
}

// SetState advances a run through its lifecycle.
func (m *MemoryStore) SetState(ctx context.Context, runID string, state schemas.RunState) error {
	if runID == "" {
		return ErrInvalidRunID
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	run, exists := m.runs[runID]
	if !exists {
		return ErrRunNotFound
	}

	if !CanTransition(run.State, state) {
		return &IllegalTransitionError{RunID: runID, From: run.State, To: state}
	}

	now := time.Now()
	run.State = state
	run.Updated = now

	if state == schemas.RunStateConfigLoaded && run.StartedAt == nil {
		run.StartedAt = &now
	}
	if state.Terminal() && run.FinishedAt == nil {
		run.FinishedAt = &now
	}

	return nil
}

// SetResult records the final output path and plan of a run.
func (m *MemoryStore) SetResult(ctx context.Context, runID, outputPath string, plan *schemas.RenderPlan) error {
	if runID == "" {
		return ErrInvalidRunID
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	run, exists := m.runs[runID]
	if !exists {
		return ErrRunNotFound
	}

	run.OutputPath = outputPath
	if plan != nil {
		planCopy := *plan
		run.Plan = &planCopy
	}
	run.Updated = time.Now()

	return nil
}

// SetError records a failure and moves the run to RunStateFailed.
func (m *MemoryStore) SetError(ctx context.Context, runID, message string) error {
	if runID == "" {
		return ErrInvalidRunID
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	run, exists := m.runs[runID]
	if !exists {
		return ErrRunNotFound
	}

	if !CanTransition(run.State, schemas.RunStateFailed) {
		return &IllegalTransitionError{RunID: runID, From: run.State, To: schemas.RunStateFailed}
	}

	now := time.Now()
	run.State = schemas.RunStateFailed
	run.Error = message
	run.Updated = now
	if run.FinishedAt == nil {
		run.FinishedAt = &now
	}

	return nil
}

// ListRuns lists runs matching the filter, newest first.
func (m *MemoryStore) ListRuns(ctx context.Context, filter *ListFilter) ([]*Run, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var runs []*Run
	for _, run := range m.runs {
		if m.matches(run, filter) {
			runs = append(runs, m.copyRun(run))
		}
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Created.After(runs[j].Created)
	})

	if filter != nil && filter.Limit > 0 && filter.Limit < len(runs) {
		runs = runs[:filter.Limit]
	}

	return runs, nil
}

// Close is a no-op for the memory store.
func (m *MemoryStore) Close() error {
	return nil
}

func (m *MemoryStore) matches(run *Run, filter *ListFilter) bool {
	if filter == nil {
		return true
	}

	if filter.Project != "" && run.Project != filter.Project {
		return false
	}

	if len(filter.States) > 0 {
		found := false
		for _, state := range filter.States {
			if run.State == state {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	return true
}

func (m *MemoryStore) copyRun(run *Run) *Run {
	if run == nil {
		return nil
	}

	out := &Run{
		RunID:      run.RunID,
		Project:    run.Project,
		Created:    run.Created,
		Updated:    run.Updated,
		State:      run.State,
		Error:      run.Error,
		OutputPath: run.OutputPath,
	}

	if run.Plan != nil {
		planCopy := *run.Plan
		out.Plan = &planCopy
	}
	if run.StartedAt != nil {
		t := *run.StartedAt
		out.StartedAt = &t
	}
	if run.FinishedAt != nil {
		t := *run.FinishedAt
		out.FinishedAt = &t
	}

	return out
}
