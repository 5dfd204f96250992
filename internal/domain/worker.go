package domain

// Worker is a registered executor that jobs are assigned to. Workers are
// maintained by the registry; the scheduler only reads them.
type Worker struct {
	ID                string `json:"id" yaml:"id"`
	Name              string `json:"name" yaml:"name"`
	AvailabilityStart string `json:"availability_start" yaml:"availability_start"`
	AvailabilityEnd   string `json:"availability_end" yaml:"availability_end"`
	MaximumJobs       int    `json:"maximum_jobs" yaml:"maximum_jobs"`
	Priority          int    `json:"priority" yaml:"priority"`
	Online            bool   `json:"online" yaml:"online"`
	IgnoreOnline      bool   `json:"ignore_online" yaml:"ignore_online"`
}

// IsAvailable reports whether the worker passes the online filter.
func (w *Worker) IsAvailable() bool {
	return w.Online || w.IgnoreOnline
}

// HasCapacity reports whether a worker running active jobs can take one more.
func (w *Worker) HasCapacity(active int) bool {
	return active < w.MaximumJobs
}

// LoadSnapshot maps worker IDs to their active job count at decision time.
// A missing entry means the worker has no active jobs.
type LoadSnapshot map[string]int

// Count returns the active job count for id and whether an entry exists.
func (s LoadSnapshot) Count(id string) (int, bool) {
	n, ok := s[id]
	return n, ok
}

// FindWorkerByName returns the first worker with the given display name, or nil.
func FindWorkerByName(workers []Worker, name string) *Worker {
	for i := range workers {
		if workers[i].Name == name {
			return &workers[i]
		}
	}
	return nil
}
