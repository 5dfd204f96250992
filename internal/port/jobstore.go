package port

import (
	"context"

	"github.com/avior/infuser/internal/domain"
)

// JobStore persists jobs. InsertJob must record the job and its assignment
// atomically, assign job.ID, and return domain.ErrJobExists when the path is
// already taken.
type JobStore interface {
	JobExists(ctx context.Context, path string) (bool, error)
	InsertJob(ctx context.Context, job *domain.Job) (string, error)
}

// SubmissionJournal keeps failed submissions so they can be retried by hand.
type SubmissionJournal interface {
	RecordFailure(req domain.SubmitRequest, outcome domain.Outcome) error
}
