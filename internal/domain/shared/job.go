package shared

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// JobState represents the lifecycle state of a background job
type JobState string

const (
	JobStateRunning   JobState = "RUNNING"
	JobStateSucceeded JobState = "SUCCEEDED"
	JobStateFailed    JobState = "FAILED"
)

// IsValid checks if the state is a valid JobState
func (s JobState) IsValid() bool {
	switch s {
	case JobStateRunning, JobStateSucceeded, JobStateFailed:
		return true
	}
	return false
}

// IsTerminal returns true if the job has finished
func (s JobState) IsTerminal() bool {
	return s == JobStateSucceeded || s == JobStateFailed
}

// Job tracks a long-running background operation such as a backfill run
type Job struct {
	ID         uuid.UUID
	TenantID   uuid.UUID
	Kind       string
	State      JobState
	StartedAt  time.Time
	FinishedAt *time.Time
	Detail     string
}

// NewJob creates a job in the running state
func NewJob(tenantID uuid.UUID, kind string) *Job {
	return &Job{
		ID:        uuid.New(),
		TenantID:  tenantID,
		Kind:      kind,
		State:     JobStateRunning,
		StartedAt: time.Now(),
	}
}

// Finish moves the job into a terminal state with a human-readable detail line
func (j *Job) Finish(state JobState, detail string) {
	if !state.IsTerminal() {
		return
	}
	now := time.Now()
	j.State = state
	j.FinishedAt = &now
	j.Detail = detail
}

// JobStore persists background job records
type JobStore interface {
	Create(ctx context.Context, job *Job) error
	Get(ctx context.Context, id uuid.UUID) (*Job, error)
	Update(ctx context.Context, job *Job) error
}
