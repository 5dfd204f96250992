package sqlitedb

import "database/sql"

type Worker struct {
	RowID             int64
	ID                sql.NullString
	Name              string
	AvailabilityStart string
	AvailabilityEnd   string
	MaximumJobs       int64
	Priority          int64
	Online            bool
	IgnoreOnline      bool
}

type Job struct {
	ID                     string
	Path                   string
	Name                   string
	Subtitle               string
	AssignedWorkerID       string
	AssignedWorkerName     string
	AssignedWorkerPriority int64
	CreatedAt              int64
}

type JobParameter struct {
	JobID    string
	Position int64
	Key      string
	Value    string
}
