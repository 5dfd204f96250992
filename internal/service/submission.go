package service

import (
	"context"
	"errors"
	"time"

	"github.com/avior/infuser/internal/domain"
	"github.com/avior/infuser/internal/infrastructure/logger"
	"github.com/avior/infuser/internal/infrastructure/metrics"
	"github.com/avior/infuser/internal/port"
	"github.com/avior/infuser/internal/scheduler"
)

type OutcomePublisher interface {
	Publish(out domain.Outcome)
}

// SubmissionService assigns new jobs to workers and commits them exactly
// once per path.
type SubmissionService struct {
	registry      port.WorkerRegistry
	jobs          port.JobStore
	selector      *scheduler.Selector
	defaultWorker string
	rules         *ParameterRules
	journal       port.SubmissionJournal
	events        OutcomePublisher
}

type Option func(*SubmissionService)

func WithParameterRules(rules *ParameterRules) Option {
	return func(s *SubmissionService) { s.rules = rules }
}

func WithJournal(journal port.SubmissionJournal) Option {
	return func(s *SubmissionService) { s.journal = journal }
}

func WithEventPublisher(events OutcomePublisher) Option {
	return func(s *SubmissionService) { s.events = events }
}

func NewSubmissionService(
	registry port.WorkerRegistry,
	jobs port.JobStore,
	selector *scheduler.Selector,
	defaultWorker string,
	opts ...Option,
) *SubmissionService {
	s := &SubmissionService{
		registry:      registry,
		jobs:          jobs,
		selector:      selector,
		defaultWorker: defaultWorker,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Submit checks whether a job with req.Path already exists and, if not,
// picks a worker and commits the job. A repeated path yields OutcomeNoOp.
// On failure the returned outcome has status OutcomeFailed and err is a
// *domain.Error; nothing has been committed.
func (s *SubmissionService) Submit(ctx context.Context, req domain.SubmitRequest) (domain.Outcome, error) {
	start := time.Now()

	out, err := s.submit(ctx, req)
	if err != nil {
		var derr *domain.Error
		if errors.As(err, &derr) && derr.Path == "" {
			derr.Path = req.Path
		}
		out = domain.FailedOutcome(req.Path, err)
		logger.Log.Error().
			Err(err).
			Str("path", logger.SanitizeForLog(req.Path)).
			Str("kind", string(out.Kind)).
			Msg("submission failed")
		s.recordFailure(req, out)
	}

	metrics.ObserveSubmission(out, time.Since(start).Seconds())
	if s.events != nil {
		s.events.Publish(out)
	}
	return out, err
}

func (s *SubmissionService) submit(ctx context.Context, req domain.SubmitRequest) (domain.Outcome, error) {
	if err := req.Validate(); err != nil {
		return domain.Outcome{}, err
	}

	exists, err := s.jobs.JobExists(ctx, req.Path)
	if err != nil {
		return domain.Outcome{}, storeErr("check job exists", req.Path, err)
	}
	if exists {
		logger.Log.Info().Str("path", logger.SanitizeForLog(req.Path)).Msg("job already exists, nothing to do")
		return domain.NoOpOutcome(req.Path), nil
	}

	workers, err := s.registry.ListWorkers(ctx)
	if err != nil {
		return domain.Outcome{}, storeErr("list workers", req.Path, err)
	}
	snapshot, err := s.registry.LoadSnapshot(ctx)
	if err != nil {
		return domain.Outcome{}, storeErr("load snapshot", req.Path, err)
	}

	job := domain.NewJob(req)
	job.CustomParameters = s.rules.Apply(job.Path, job.CustomParameters)

	sel, err := s.decide(workers, snapshot, job)
	if err != nil {
		return domain.Outcome{}, err
	}

	id, err := s.jobs.InsertJob(ctx, job)
	if errors.Is(err, domain.ErrJobExists) {
		logger.Log.Warn().Str("path", logger.SanitizeForLog(req.Path)).Msg("job committed concurrently, nothing to do")
		return domain.NoOpOutcome(req.Path), nil
	}
	if err != nil {
		return domain.Outcome{}, storeErr("insert job", req.Path, err)
	}

	logger.Log.Info().
		Str("path", logger.SanitizeForLog(req.Path)).
		Str("job_id", id).
		Str("worker", sel.Worker.Name).
		Int("load", sel.Load).
		Int("max_jobs", sel.MaxJobs).
		Int("tier", sel.Tier).
		Bool("fallback", sel.Fallback).
		Msg("job assigned")

	return domain.Outcome{
		Status:   domain.OutcomeAssigned,
		Path:     req.Path,
		JobID:    id,
		WorkerID: sel.Worker.ID,
		Worker:   sel.Worker.Name,
		Load:     sel.Load,
		MaxJobs:  sel.MaxJobs,
		Fallback: sel.Fallback,
	}, nil
}

// decide runs tier selection and attaches the winner to job, falling back to
// the default worker when no tier yields one. Data integrity errors abort
// without fallback.
func (s *SubmissionService) decide(workers []domain.Worker, snapshot domain.LoadSnapshot, job *domain.Job) (*scheduler.Selection, error) {
	sel, err := s.selector.Select(scheduler.GroupByPriority(workers), snapshot)
	switch {
	case err == nil:
		job.Assign(&sel.Worker)
		return sel, nil
	case errors.Is(err, domain.ErrNoEligibleWorker):
		logger.Log.Info().Err(err).Str("default_worker", s.defaultWorker).Msg("using default worker")
	default:
		return nil, err
	}

	fb, err := scheduler.ResolveFallback(workers, s.defaultWorker, snapshot)
	if err != nil {
		return nil, err
	}
	job.Assign(&fb.Worker)
	return fb, nil
}

func (s *SubmissionService) recordFailure(req domain.SubmitRequest, out domain.Outcome) {
	if s.journal == nil || out.Kind == domain.KindInvalidRequest {
		return
	}
	if err := s.journal.RecordFailure(req, out); err != nil {
		logger.Log.Error().Err(err).Str("path", logger.SanitizeForLog(req.Path)).Msg("failed to journal submission")
	}
}

func storeErr(op, path string, err error) *domain.Error {
	e := domain.StoreError(op, err)
	e.Path = path
	return e
}
