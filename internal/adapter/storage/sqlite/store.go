package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pressly/goose/v3"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/avior/infuser/internal/adapter/storage/sqlite/sqlitedb"
	"github.com/avior/infuser/internal/domain"
	"github.com/avior/infuser/internal/port"
)

//go:embed migrations/*.sql
var migrations embed.FS

type Store struct {
	db      *sql.DB
	queries *sqlitedb.Queries
}

var hookOnce sync.Once

func registerHook() {
	hookOnce.Do(func() {
		sqlite.RegisterConnectionHook(func(conn sqlite.ExecQuerierContext, dsn string) error {
			pragmas := []string{
				"PRAGMA journal_mode = WAL",
				"PRAGMA busy_timeout = 5000",
				"PRAGMA synchronous = NORMAL",
				"PRAGMA foreign_keys = ON",
			}
			for _, p := range pragmas {
				if _, err := conn.ExecContext(context.Background(), p, nil); err != nil {
					return fmt.Errorf("execute %s: %w", p, err)
				}
			}
			return nil
		})
	})
}

// NewStore opens (creating if needed) the database at dbPath and applies
// pending migrations.
func NewStore(dbPath string) (*Store, error) {
	registerHook()

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Single connection for SQLite (WAL allows concurrent reads but only one writer)
	db.SetMaxOpenConns(1)

	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set goose dialect: %w", err)
	}
	if err := goose.Up(db, "migrations"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Store{
		db:      db,
		queries: sqlitedb.New(db),
	}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ListWorkers(ctx context.Context) ([]domain.Worker, error) {
	rows, err := s.queries.ListWorkers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list workers: %w", err)
	}
	workers := make([]domain.Worker, len(rows))
	for i, row := range rows {
		workers[i] = workerFromRow(row)
	}
	return workers, nil
}

func (s *Store) LoadSnapshot(ctx context.Context) (domain.LoadSnapshot, error) {
	rows, err := s.queries.CountActiveJobsByWorker(ctx)
	if err != nil {
		return nil, fmt.Errorf("count active jobs: %w", err)
	}
	snapshot := make(domain.LoadSnapshot, len(rows))
	for _, row := range rows {
		snapshot[row.AssignedWorkerID] = int(row.Active)
	}
	return snapshot, nil
}

// SaveWorker inserts the worker or updates the one with the same name.
func (s *Store) SaveWorker(ctx context.Context, w *domain.Worker) error {
	return s.queries.UpsertWorker(ctx, sqlitedb.UpsertWorkerParams{
		ID:                sql.NullString{String: w.ID, Valid: w.ID != ""},
		Name:              w.Name,
		AvailabilityStart: w.AvailabilityStart,
		AvailabilityEnd:   w.AvailabilityEnd,
		MaximumJobs:       int64(w.MaximumJobs),
		Priority:          int64(w.Priority),
		Online:            w.Online,
		IgnoreOnline:      w.IgnoreOnline,
	})
}

func (s *Store) JobExists(ctx context.Context, path string) (bool, error) {
	return s.queries.JobExists(ctx, path)
}

// InsertJob writes the job and its parameters in one transaction.
func (s *Store) InsertJob(ctx context.Context, job *domain.Job) (string, error) {
	if job.CreatedAt.IsZero() {
		job.CreatedAt = time.Now().UTC()
	}
	id := uuid.NewString()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	q := s.queries.WithTx(tx)
	err = q.InsertJob(ctx, sqlitedb.InsertJobParams{
		ID:                     id,
		Path:                   job.Path,
		Name:                   job.Name,
		Subtitle:               job.Subtitle,
		AssignedWorkerID:       job.AssignedWorker.ID,
		AssignedWorkerName:     job.AssignedWorker.Name,
		AssignedWorkerPriority: int64(job.AssignedWorker.Priority),
		CreatedAt:              job.CreatedAt.Unix(),
	})
	if err != nil {
		if isUniqueViolation(err) {
			return "", domain.ErrJobExists
		}
		return "", fmt.Errorf("insert job: %w", err)
	}

	for i, p := range job.CustomParameters {
		err := q.InsertJobParameter(ctx, sqlitedb.InsertJobParameterParams{
			JobID:    id,
			Position: int64(i),
			Key:      p.Key,
			Value:    p.Value,
		})
		if err != nil {
			return "", fmt.Errorf("insert parameter %q: %w", p.Key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit: %w", err)
	}
	job.ID = id
	return id, nil
}

func (s *Store) GetJob(ctx context.Context, path string) (*domain.Job, error) {
	row, err := s.queries.GetJobByPath(ctx, path)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	params, err := s.queries.ListJobParameters(ctx, row.ID)
	if err != nil {
		return nil, fmt.Errorf("list parameters: %w", err)
	}
	return jobFromRow(row, params), nil
}

func (s *Store) CountJobs(ctx context.Context) (int, error) {
	n, err := s.queries.CountJobs(ctx)
	return int(n), err
}

func isUniqueViolation(err error) bool {
	var serr *sqlite.Error
	if !errors.As(err, &serr) {
		return false
	}
	code := serr.Code()
	return code == sqlite3.SQLITE_CONSTRAINT_UNIQUE || code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
}

func workerFromRow(row sqlitedb.Worker) domain.Worker {
	return domain.Worker{
		ID:                row.ID.String,
		Name:              row.Name,
		AvailabilityStart: row.AvailabilityStart,
		AvailabilityEnd:   row.AvailabilityEnd,
		MaximumJobs:       int(row.MaximumJobs),
		Priority:          int(row.Priority),
		Online:            row.Online,
		IgnoreOnline:      row.IgnoreOnline,
	}
}

func jobFromRow(row sqlitedb.Job, params []sqlitedb.JobParameter) *domain.Job {
	job := &domain.Job{
		ID:       row.ID,
		Path:     row.Path,
		Name:     row.Name,
		Subtitle: row.Subtitle,
		AssignedWorker: domain.AssignedWorker{
			ID:       row.AssignedWorkerID,
			Name:     row.AssignedWorkerName,
			Priority: int(row.AssignedWorkerPriority),
		},
		CreatedAt:        time.Unix(row.CreatedAt, 0).UTC(),
		CustomParameters: make([]domain.CustomParameter, len(params)),
	}
	for i, p := range params {
		job.CustomParameters[i] = domain.CustomParameter{Key: p.Key, Value: p.Value}
	}
	return job
}

var (
	_ port.WorkerRegistry = (*Store)(nil)
	_ port.WorkerAdmin    = (*Store)(nil)
	_ port.JobStore       = (*Store)(nil)
)
