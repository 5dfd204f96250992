package port

import (
	"context"

	"github.com/avior/infuser/internal/domain"
)

// WorkerRegistry is the read side of the worker roster.
type WorkerRegistry interface {
	ListWorkers(ctx context.Context) ([]domain.Worker, error)
	LoadSnapshot(ctx context.Context) (domain.LoadSnapshot, error)
}

// WorkerAdmin writes the roster. Only administrative commands use it.
type WorkerAdmin interface {
	SaveWorker(ctx context.Context, w *domain.Worker) error
}
