package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avior/infuser/internal/domain"
	"github.com/avior/infuser/internal/scheduler"
	"github.com/avior/infuser/internal/service"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(filepath.Join(t.TempDir(), "infuser.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func seedJob(t *testing.T, store *Store, path string, w domain.Worker) string {
	t.Helper()
	job := domain.NewJob(domain.SubmitRequest{Path: path, Name: "job " + path})
	job.Assign(&w)
	id, err := store.InsertJob(context.Background(), job)
	require.NoError(t, err)
	return id
}

func TestStore_Workers(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveWorker(ctx, &domain.Worker{ID: "a", Name: "encoder-a", MaximumJobs: 2, Priority: 1, Online: true}))
	require.NoError(t, store.SaveWorker(ctx, &domain.Worker{ID: "b", Name: "encoder-b", MaximumJobs: 1, IgnoreOnline: true, AvailabilityStart: "22:00", AvailabilityEnd: "06:00"}))
	require.NoError(t, store.SaveWorker(ctx, &domain.Worker{Name: "legacy"}))

	// update by name keeps roster position
	require.NoError(t, store.SaveWorker(ctx, &domain.Worker{ID: "a", Name: "encoder-a", MaximumJobs: 4, Priority: 0}))

	workers, err := store.ListWorkers(ctx)
	require.NoError(t, err)
	require.Len(t, workers, 3)

	assert.Equal(t, domain.Worker{ID: "a", Name: "encoder-a", MaximumJobs: 4, Priority: 0}, workers[0])
	assert.Equal(t, domain.Worker{ID: "b", Name: "encoder-b", MaximumJobs: 1, IgnoreOnline: true, AvailabilityStart: "22:00", AvailabilityEnd: "06:00"}, workers[1])
	assert.Equal(t, "", workers[2].ID, "worker saved without id reads back without id")
}

func TestStore_InsertJob(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	w := domain.Worker{ID: "a", Name: "encoder-a", Priority: 3}

	job := domain.NewJob(domain.SubmitRequest{
		Path:     "/rec/show.ts",
		Name:     "Show",
		Subtitle: "Pilot",
		CustomParameters: []domain.CustomParameter{
			{Key: "crf", Value: "20"},
			{Key: "audio", Value: "ac3"},
		},
	})
	job.Assign(&w)

	id, err := store.InsertJob(ctx, job)
	require.NoError(t, err)
	assert.NotEmpty(t, id)
	assert.Equal(t, id, job.ID)

	exists, err := store.JobExists(ctx, "/rec/show.ts")
	require.NoError(t, err)
	assert.True(t, exists)

	got, err := store.GetJob(ctx, "/rec/show.ts")
	require.NoError(t, err)
	assert.Equal(t, id, got.ID)
	assert.Equal(t, "Pilot", got.Subtitle)
	assert.Equal(t, domain.AssignedWorker{ID: "a", Name: "encoder-a", Priority: 3}, got.AssignedWorker)
	assert.Equal(t, job.CustomParameters, got.CustomParameters)
	assert.Equal(t, job.CreatedAt.Unix(), got.CreatedAt.Unix())
}

func TestStore_InsertJob_DuplicatePath(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	w := domain.Worker{ID: "a", Name: "encoder-a"}

	seedJob(t, store, "/a", w)

	dup := domain.NewJob(domain.SubmitRequest{Path: "/a", Name: "again"})
	dup.Assign(&w)
	_, err := store.InsertJob(ctx, dup)

	assert.True(t, errors.Is(err, domain.ErrJobExists))
	n, err := store.CountJobs(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestStore_GetJob_NotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.GetJob(context.Background(), "/missing")

	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestStore_LoadSnapshot(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	a := domain.Worker{ID: "a", Name: "encoder-a"}
	b := domain.Worker{ID: "b", Name: "encoder-b"}

	snapshot, err := store.LoadSnapshot(ctx)
	require.NoError(t, err)
	assert.Empty(t, snapshot)

	seedJob(t, store, "/1", a)
	seedJob(t, store, "/2", a)
	seedJob(t, store, "/3", b)

	snapshot, err = store.LoadSnapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.LoadSnapshot{"a": 2, "b": 1}, snapshot)
}

func TestStore_SubmitEndToEnd(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveWorker(ctx, &domain.Worker{ID: "1", Name: "encoder-1", MaximumJobs: 2, Online: true}))
	require.NoError(t, store.SaveWorker(ctx, &domain.Worker{ID: "9", Name: "default-box", Priority: 9, MaximumJobs: 1}))

	svc := service.NewSubmissionService(store, store, scheduler.NewSelector(scheduler.TieBreakLegacy), "default-box")
	req := func(path string) domain.SubmitRequest { return domain.SubmitRequest{Path: path, Name: path} }

	first, err := svc.Submit(ctx, req("/a"))
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeAssigned, first.Status)
	assert.Equal(t, "encoder-1", first.Worker)
	assert.Equal(t, 0, first.Load)

	again, err := svc.Submit(ctx, req("/a"))
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeNoOp, again.Status)

	second, err := svc.Submit(ctx, req("/b"))
	require.NoError(t, err)
	assert.Equal(t, "encoder-1", second.Worker)
	assert.Equal(t, 1, second.Load)

	// encoder-1 is now at its maximum
	third, err := svc.Submit(ctx, req("/c"))
	require.NoError(t, err)
	assert.Equal(t, "default-box", third.Worker)
	assert.True(t, third.Fallback)

	n, err := store.CountJobs(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}
