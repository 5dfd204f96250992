package scheduler

import (
	"github.com/avior/infuser/internal/domain"
)

// ResolveFallback looks up the default worker by display name across the
// whole roster. Online and capacity checks are not applied.
func ResolveFallback(workers []domain.Worker, defaultName string, snapshot domain.LoadSnapshot) (*Selection, error) {
	if defaultName == "" {
		return nil, &domain.Error{
			Kind: domain.KindConfiguration,
			Op:   "fallback",
			Msg:  "no default worker configured",
		}
	}

	w := domain.FindWorkerByName(workers, defaultName)
	if w == nil {
		return nil, &domain.Error{
			Kind:   domain.KindConfiguration,
			Op:     "fallback",
			Worker: defaultName,
			Msg:    "default worker not found in roster",
		}
	}
	if w.ID == "" {
		return nil, &domain.Error{
			Kind:   domain.KindDataIntegrity,
			Op:     "fallback",
			Worker: defaultName,
			Msg:    "default worker has no id",
		}
	}

	load, _ := snapshot.Count(w.ID)
	return &Selection{
		Worker:   *w,
		Load:     load,
		MaxJobs:  w.MaximumJobs,
		Tier:     w.Priority,
		Fallback: true,
	}, nil
}
