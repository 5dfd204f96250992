package redisstore

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avior/infuser/internal/domain"
)

func newTestStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	store, err := NewStore(context.Background(), mr.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store, mr
}

func newAssignedJob(path string, w domain.Worker) *domain.Job {
	job := domain.NewJob(domain.SubmitRequest{Path: path, Name: "job " + path})
	job.Assign(&w)
	return job
}

func TestStore_WorkersKeepFirstSaveOrder(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveWorker(ctx, &domain.Worker{ID: "z", Name: "zulu", MaximumJobs: 1}))
	require.NoError(t, store.SaveWorker(ctx, &domain.Worker{ID: "a", Name: "alpha", MaximumJobs: 1}))
	require.NoError(t, store.SaveWorker(ctx, &domain.Worker{ID: "z", Name: "zulu", MaximumJobs: 5, Online: true}))

	workers, err := store.ListWorkers(ctx)
	require.NoError(t, err)
	require.Len(t, workers, 2)
	assert.Equal(t, "zulu", workers[0].Name)
	assert.Equal(t, 5, workers[0].MaximumJobs)
	assert.True(t, workers[0].Online)
	assert.Equal(t, "alpha", workers[1].Name)
}

func TestStore_ListWorkersEmpty(t *testing.T) {
	store, _ := newTestStore(t)

	workers, err := store.ListWorkers(context.Background())

	require.NoError(t, err)
	assert.Empty(t, workers)
}

func TestStore_InsertJobBumpsLoad(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()
	w := domain.Worker{ID: "a", Name: "alpha", Priority: 2}

	job := newAssignedJob("/rec/a.ts", w)
	job.CustomParameters = []domain.CustomParameter{{Key: "crf", Value: "20"}}

	id, err := store.InsertJob(ctx, job)
	require.NoError(t, err)
	assert.NotEmpty(t, id)
	assert.Equal(t, id, job.ID)

	_, err = store.InsertJob(ctx, newAssignedJob("/rec/b.ts", w))
	require.NoError(t, err)

	snapshot, err := store.LoadSnapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.LoadSnapshot{"a": 2}, snapshot)

	got, err := store.GetJob(ctx, "/rec/a.ts")
	require.NoError(t, err)
	assert.Equal(t, id, got.ID)
	assert.Equal(t, domain.AssignedWorker{ID: "a", Name: "alpha", Priority: 2}, got.AssignedWorker)
	assert.Equal(t, job.CustomParameters, got.CustomParameters)

	n, err := store.CountJobs(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestStore_InsertJobDuplicate(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()
	w := domain.Worker{ID: "a", Name: "alpha"}

	_, err := store.InsertJob(ctx, newAssignedJob("/a", w))
	require.NoError(t, err)

	dup := newAssignedJob("/a", w)
	_, err = store.InsertJob(ctx, dup)

	assert.True(t, errors.Is(err, domain.ErrJobExists))
	assert.Empty(t, dup.ID)

	snapshot, err := store.LoadSnapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, snapshot["a"], "duplicate must not bump load")
}

func TestStore_ConcurrentInsertSamePath(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()
	w := domain.Worker{ID: "a", Name: "alpha"}

	var wg sync.WaitGroup
	errs := make([]error, 8)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = store.InsertJob(ctx, newAssignedJob("/same", w))
		}(i)
	}
	wg.Wait()

	committed := 0
	for _, err := range errs {
		if err == nil {
			committed++
			continue
		}
		assert.True(t, errors.Is(err, domain.ErrJobExists))
	}
	assert.Equal(t, 1, committed)

	n, err := store.CountJobs(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestStore_JobExists(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	exists, err := store.JobExists(ctx, "/a")
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = store.InsertJob(ctx, newAssignedJob("/a", domain.Worker{ID: "a"}))
	require.NoError(t, err)

	exists, err = store.JobExists(ctx, "/a")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestStore_RemoveJobReleasesLoad(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()
	w := domain.Worker{ID: "a", Name: "alpha"}

	_, err := store.InsertJob(ctx, newAssignedJob("/a", w))
	require.NoError(t, err)

	require.NoError(t, store.RemoveJob(ctx, "/a"))

	snapshot, err := store.LoadSnapshot(ctx)
	require.NoError(t, err)
	_, ok := snapshot.Count("a")
	assert.False(t, ok, "released worker reads as having no entry")

	_, err = store.GetJob(ctx, "/a")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	assert.True(t, errors.Is(store.RemoveJob(ctx, "/a"), domain.ErrNotFound))

	n, err := store.CountJobs(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestStore_StoreErrorWhenRedisDown(t *testing.T) {
	store, mr := newTestStore(t)
	mr.Close()

	_, err := store.JobExists(context.Background(), "/a")

	assert.Error(t, err)
}

func TestParseRedisURL(t *testing.T) {
	tests := []struct {
		url      string
		addr     string
		password string
		db       int
		tls      bool
	}{
		{url: "localhost:6379", addr: "localhost:6379"},
		{url: "redis://:pass@localhost:6379/1", addr: "localhost:6379", password: "pass", db: 1},
		{url: "rediss://cache.internal:6380/3", addr: "cache.internal:6380", db: 3, tls: true},
	}
	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			opts, err := parseRedisURL(tt.url)
			require.NoError(t, err)
			assert.Equal(t, tt.addr, opts.Addr)
			assert.Equal(t, tt.password, opts.Password)
			assert.Equal(t, tt.db, opts.DB)
			assert.Equal(t, tt.tls, opts.TLSConfig != nil)
		})
	}
}

func TestParseRedisURL_Invalid(t *testing.T) {
	for _, addr := range []string{"http://localhost:6379", "redis://localhost:6379/notadb", "redis-sentinel://localhost:26379/mymaster"} {
		_, err := parseRedisURL(addr)
		assert.Error(t, err, addr)
	}
}
