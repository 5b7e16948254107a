package jobs

import (
	"context"
	"testing"

	"github.com/garmentflow/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryJobStoreLifecycle(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryJobStore(8)
	tenantID := uuid.New()

	job := shared.NewJob(tenantID, "reconciliation_backfill")
	require.NoError(t, store.Create(ctx, job))

	loaded, err := store.Get(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, shared.JobStateRunning, loaded.State)
	assert.Equal(t, tenantID, loaded.TenantID)

	job.Finish(shared.JobStateSucceeded, "touched=3 skipped=1 failed=0")
	require.NoError(t, store.Update(ctx, job))

	loaded, err = store.Get(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, shared.JobStateSucceeded, loaded.State)
	assert.NotNil(t, loaded.FinishedAt)
	assert.Equal(t, "touched=3 skipped=1 failed=0", loaded.Detail)
}

func TestMemoryJobStoreErrors(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryJobStore(8)

	_, err := store.Get(ctx, uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)

	job := shared.NewJob(uuid.New(), "x")
	require.NoError(t, store.Create(ctx, job))
	assert.ErrorIs(t, store.Create(ctx, job), shared.ErrAlreadyExists)

	missing := shared.NewJob(uuid.New(), "y")
	assert.ErrorIs(t, store.Update(ctx, missing), shared.ErrNotFound)
}

func TestMemoryJobStoreEvictsFinishedFirst(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryJobStore(2)

	finished := shared.NewJob(uuid.New(), "a")
	require.NoError(t, store.Create(ctx, finished))
	finished.Finish(shared.JobStateFailed, "boom")
	require.NoError(t, store.Update(ctx, finished))

	running := shared.NewJob(uuid.New(), "b")
	require.NoError(t, store.Create(ctx, running))

	third := shared.NewJob(uuid.New(), "c")
	require.NoError(t, store.Create(ctx, third))

	_, err := store.Get(ctx, finished.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	_, err = store.Get(ctx, running.ID)
	assert.NoError(t, err)
	_, err = store.Get(ctx, third.ID)
	assert.NoError(t, err)
}
