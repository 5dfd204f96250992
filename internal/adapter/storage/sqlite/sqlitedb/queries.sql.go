package sqlitedb

import (
	"context"
	"database/sql"
)

const listWorkers = `SELECT row_id, id, name, availability_start, availability_end, maximum_jobs, priority, online, ignore_online
FROM workers
ORDER BY row_id`

func (q *Queries) ListWorkers(ctx context.Context) ([]Worker, error) {
	rows, err := q.db.QueryContext(ctx, listWorkers)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Worker
	for rows.Next() {
		var i Worker
		if err := rows.Scan(
			&i.RowID,
			&i.ID,
			&i.Name,
			&i.AvailabilityStart,
			&i.AvailabilityEnd,
			&i.MaximumJobs,
			&i.Priority,
			&i.Online,
			&i.IgnoreOnline,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const upsertWorker = `INSERT INTO workers (id, name, availability_start, availability_end, maximum_jobs, priority, online, ignore_online)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (name) DO UPDATE SET
    id = excluded.id,
    availability_start = excluded.availability_start,
    availability_end = excluded.availability_end,
    maximum_jobs = excluded.maximum_jobs,
    priority = excluded.priority,
    online = excluded.online,
    ignore_online = excluded.ignore_online`

type UpsertWorkerParams struct {
	ID                sql.NullString
	Name              string
	AvailabilityStart string
	AvailabilityEnd   string
	MaximumJobs       int64
	Priority          int64
	Online            bool
	IgnoreOnline      bool
}

func (q *Queries) UpsertWorker(ctx context.Context, arg UpsertWorkerParams) error {
	_, err := q.db.ExecContext(ctx, upsertWorker,
		arg.ID,
		arg.Name,
		arg.AvailabilityStart,
		arg.AvailabilityEnd,
		arg.MaximumJobs,
		arg.Priority,
		arg.Online,
		arg.IgnoreOnline,
	)
	return err
}

const countActiveJobsByWorker = `SELECT assigned_worker_id, COUNT(*) AS active
FROM jobs
WHERE assigned_worker_id <> ''
GROUP BY assigned_worker_id`

type CountActiveJobsByWorkerRow struct {
	AssignedWorkerID string
	Active           int64
}

func (q *Queries) CountActiveJobsByWorker(ctx context.Context) ([]CountActiveJobsByWorkerRow, error) {
	rows, err := q.db.QueryContext(ctx, countActiveJobsByWorker)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []CountActiveJobsByWorkerRow
	for rows.Next() {
		var i CountActiveJobsByWorkerRow
		if err := rows.Scan(&i.AssignedWorkerID, &i.Active); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const jobExists = `SELECT EXISTS (SELECT 1 FROM jobs WHERE path = ?)`

func (q *Queries) JobExists(ctx context.Context, path string) (bool, error) {
	row := q.db.QueryRowContext(ctx, jobExists, path)
	var exists bool
	err := row.Scan(&exists)
	return exists, err
}

const insertJob = `INSERT INTO jobs (id, path, name, subtitle, assigned_worker_id, assigned_worker_name, assigned_worker_priority, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

type InsertJobParams struct {
	ID                     string
	Path                   string
	Name                   string
	Subtitle               string
	AssignedWorkerID       string
	AssignedWorkerName     string
	AssignedWorkerPriority int64
	CreatedAt              int64
}

func (q *Queries) InsertJob(ctx context.Context, arg InsertJobParams) error {
	_, err := q.db.ExecContext(ctx, insertJob,
		arg.ID,
		arg.Path,
		arg.Name,
		arg.Subtitle,
		arg.AssignedWorkerID,
		arg.AssignedWorkerName,
		arg.AssignedWorkerPriority,
		arg.CreatedAt,
	)
	return err
}

const insertJobParameter = `INSERT INTO job_parameters (job_id, position, key, value)
VALUES (?, ?, ?, ?)`

type InsertJobParameterParams struct {
	JobID    string
	Position int64
	Key      string
	Value    string
}

func (q *Queries) InsertJobParameter(ctx context.Context, arg InsertJobParameterParams) error {
	_, err := q.db.ExecContext(ctx, insertJobParameter,
		arg.JobID,
		arg.Position,
		arg.Key,
		arg.Value,
	)
	return err
}

const getJobByPath = `SELECT id, path, name, subtitle, assigned_worker_id, assigned_worker_name, assigned_worker_priority, created_at
FROM jobs
WHERE path = ?`

func (q *Queries) GetJobByPath(ctx context.Context, path string) (Job, error) {
	row := q.db.QueryRowContext(ctx, getJobByPath, path)
	var i Job
	err := row.Scan(
		&i.ID,
		&i.Path,
		&i.Name,
		&i.Subtitle,
		&i.AssignedWorkerID,
		&i.AssignedWorkerName,
		&i.AssignedWorkerPriority,
		&i.CreatedAt,
	)
	return i, err
}

const listJobParameters = `SELECT job_id, position, key, value
FROM job_parameters
WHERE job_id = ?
ORDER BY position`

func (q *Queries) ListJobParameters(ctx context.Context, jobID string) ([]JobParameter, error) {
	rows, err := q.db.QueryContext(ctx, listJobParameters, jobID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []JobParameter
	for rows.Next() {
		var i JobParameter
		if err := rows.Scan(&i.JobID, &i.Position, &i.Key, &i.Value); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const countJobs = `SELECT COUNT(*) FROM jobs`

func (q *Queries) CountJobs(ctx context.Context) (int64, error) {
	row := q.db.QueryRowContext(ctx, countJobs)
	var count int64
	err := row.Scan(&count)
	return count, err
}
