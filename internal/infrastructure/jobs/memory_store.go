// Package jobs provides job-store implementations for tracking background runs.
package jobs

import (
	"context"
	"sync"

	"github.com/garmentflow/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// MemoryJobStore is an in-process shared.JobStore. Finished jobs are
// evicted oldest-first once the bound is reached so the registry cannot
// grow without limit.
type MemoryJobStore struct {
	mu       sync.RWMutex
	capacity int
	jobs     map[uuid.UUID]*shared.Job
	order    []uuid.UUID
}

var _ shared.JobStore = (*MemoryJobStore)(nil)

// NewMemoryJobStore creates a store holding at most capacity jobs
func NewMemoryJobStore(capacity int) *MemoryJobStore {
	if capacity <= 0 {
		capacity = 256
	}
	return &MemoryJobStore{
		capacity: capacity,
		jobs:     make(map[uuid.UUID]*shared.Job),
	}
}

// Create registers a new job
func (s *MemoryJobStore) Create(_ context.Context, job *shared.Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.jobs[job.ID]; exists {
		return shared.ErrAlreadyExists
	}

	if len(s.order) >= s.capacity {
		s.evictOldestFinishedLocked()
	}

	copied := *job
	s.jobs[job.ID] = &copied
	s.order = append(s.order, job.ID)
	return nil
}

// Get returns a job by id
func (s *MemoryJobStore) Get(_ context.Context, id uuid.UUID) (*shared.Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	job, ok := s.jobs[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	copied := *job
	return &copied, nil
}

// Update replaces the stored job state
func (s *MemoryJobStore) Update(_ context.Context, job *shared.Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.jobs[job.ID]; !ok {
		return shared.ErrNotFound
	}
	copied := *job
	s.jobs[job.ID] = &copied
	return nil
}

// ListForTenant returns the tenant's jobs in creation order
func (s *MemoryJobStore) ListForTenant(_ context.Context, tenantID uuid.UUID) ([]shared.Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []shared.Job
	for _, id := range s.order {
		if job, ok := s.jobs[id]; ok && job.TenantID == tenantID {
			result = append(result, *job)
		}
	}
	return result, nil
}

// evictOldestFinishedLocked drops the oldest terminal job, or the oldest
// job outright when everything is still running.
func (s *MemoryJobStore) evictOldestFinishedLocked() {
	for i, id := range s.order {
		if job, ok := s.jobs[id]; ok && job.State.IsTerminal() {
			delete(s.jobs, id)
			s.order = append(s.order[:i], s.order[i+1:]...)
			return
		}
	}
	if len(s.order) > 0 {
		delete(s.jobs, s.order[0])
		s.order = s.order[1:]
	}
}
