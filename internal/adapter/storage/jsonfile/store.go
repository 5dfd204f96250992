package jsonfile

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/avior/infuser/internal/domain"
	"github.com/avior/infuser/internal/port"
)

type document struct {
	Workers []domain.Worker `json:"workers"`
	Jobs    []*domain.Job   `json:"jobs"`
}

// Store keeps the roster and the jobs in a single JSON document under the
// data directory. Every write rewrites the file through a temp file.
type Store struct {
	mu      sync.RWMutex
	path    string
	workers []domain.Worker
	jobs    map[string]*domain.Job
	order   []string
}

func NewStore(dataDir string) (*Store, error) {
	path := filepath.Join(dataDir, "infuser.json")

	store := &Store{
		path: path,
		jobs: make(map[string]*domain.Job),
	}

	if err := store.load(); err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
	}

	return store, nil
}

func (s *Store) load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		return err
	}

	if len(data) == 0 {
		return nil
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}

	s.workers = doc.Workers
	for _, j := range doc.Jobs {
		s.jobs[j.Path] = j
		s.order = append(s.order, j.Path)
	}

	return nil
}

func (s *Store) save() error {
	tmpPath := s.path + ".tmp"

	doc := document{
		Workers: s.workers,
		Jobs:    make([]*domain.Job, 0, len(s.order)),
	}
	for _, path := range s.order {
		doc.Jobs = append(doc.Jobs, s.jobs[path])
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}

	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		return err
	}

	return os.Rename(tmpPath, s.path)
}

func (s *Store) ListWorkers(_ context.Context) ([]domain.Worker, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	workers := make([]domain.Worker, len(s.workers))
	copy(workers, s.workers)
	return workers, nil
}

func (s *Store) LoadSnapshot(_ context.Context) (domain.LoadSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot := make(domain.LoadSnapshot)
	for _, j := range s.jobs {
		if j.IsAssigned() {
			snapshot[j.AssignedWorker.ID]++
		}
	}
	return snapshot, nil
}

// SaveWorker inserts the worker or replaces the one with the same name.
func (s *Store) SaveWorker(_ context.Context, w *domain.Worker) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing := domain.FindWorkerByName(s.workers, w.Name); existing != nil {
		*existing = *w
	} else {
		s.workers = append(s.workers, *w)
	}
	return s.save()
}

func (s *Store) JobExists(_ context.Context, path string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.jobs[path]
	return ok, nil
}

func (s *Store) InsertJob(_ context.Context, job *domain.Job) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.jobs[job.Path]; ok {
		return "", domain.ErrJobExists
	}
	if job.CreatedAt.IsZero() {
		job.CreatedAt = time.Now().UTC()
	}

	stored := cloneJob(job)
	stored.ID = uuid.NewString()
	s.jobs[job.Path] = stored
	s.order = append(s.order, job.Path)

	if err := s.save(); err != nil {
		delete(s.jobs, job.Path)
		s.order = s.order[:len(s.order)-1]
		return "", err
	}

	job.ID = stored.ID
	return job.ID, nil
}

func (s *Store) GetJob(_ context.Context, path string) (*domain.Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	j, ok := s.jobs[path]
	if !ok {
		return nil, domain.ErrNotFound
	}

	return cloneJob(j), nil
}

func (s *Store) CountJobs(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.jobs), nil
}

// cloneJob copies j so callers never share memory with the store.
func cloneJob(j *domain.Job) *domain.Job {
	c := *j
	c.CustomParameters = slices.Clone(j.CustomParameters)
	return &c
}

var (
	_ port.WorkerRegistry = (*Store)(nil)
	_ port.WorkerAdmin    = (*Store)(nil)
	_ port.JobStore       = (*Store)(nil)
)
