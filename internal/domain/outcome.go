package domain

type OutcomeStatus string

const (
	OutcomeNoOp     OutcomeStatus = "noop"
	OutcomeAssigned OutcomeStatus = "assigned"
	OutcomeFailed   OutcomeStatus = "failed"
)

// Outcome is the result of one submission. Worker, Load and MaxJobs are set
// only when Status is OutcomeAssigned; Reason and Kind only when it is
// OutcomeFailed.
type Outcome struct {
	Status   OutcomeStatus `json:"status"`
	Path     string        `json:"path"`
	JobID    string        `json:"job_id,omitempty"`
	WorkerID string        `json:"worker_id,omitempty"`
	Worker   string        `json:"worker,omitempty"`
	Load     int           `json:"load"`
	MaxJobs  int           `json:"max_jobs"`
	Fallback bool          `json:"fallback,omitempty"`
	Kind     Kind          `json:"kind,omitempty"`
	Reason   string        `json:"reason,omitempty"`
}

func NoOpOutcome(path string) Outcome {
	return Outcome{Status: OutcomeNoOp, Path: path}
}

func FailedOutcome(path string, err error) Outcome {
	return Outcome{
		Status: OutcomeFailed,
		Path:   path,
		Kind:   KindOf(err),
		Reason: err.Error(),
	}
}
