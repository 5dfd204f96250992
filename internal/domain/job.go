package domain

import (
	"errors"
	"strings"
	"time"
)

var (
	errEmptyPath   = errors.New("path is empty")
	errInvalidPath = errors.New("path contains null bytes")
)

// CustomParameter is an opaque key/value pair passed through to the worker.
type CustomParameter struct {
	Key   string `json:"key" yaml:"key"`
	Value string `json:"value" yaml:"value"`
}

// AssignedWorker is the worker captured on the job at commit time.
type AssignedWorker struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Priority int    `json:"priority"`
}

type Job struct {
	ID               string            `json:"id"`
	Path             string            `json:"path"`
	Name             string            `json:"name"`
	Subtitle         string            `json:"subtitle"`
	CustomParameters []CustomParameter `json:"custom_parameters"`
	AssignedWorker   AssignedWorker    `json:"assigned_worker"`
	CreatedAt        time.Time         `json:"created_at"`
}

// SubmitRequest carries the caller's arguments for one submission.
type SubmitRequest struct {
	Path             string            `json:"path"`
	Name             string            `json:"name"`
	Subtitle         string            `json:"subtitle"`
	CustomParameters []CustomParameter `json:"custom_parameters,omitempty"`
}

// Validate checks the request before any store access. Name and subtitle
// are opaque and may be empty.
func (r SubmitRequest) Validate() error {
	var cause error
	switch {
	case r.Path == "":
		cause = errEmptyPath
	case strings.ContainsRune(r.Path, '\x00'):
		cause = errInvalidPath
	}
	if cause != nil {
		return &Error{Kind: KindInvalidRequest, Op: "validate", Path: r.Path, Err: cause}
	}
	return nil
}

func NewJob(req SubmitRequest) *Job {
	params := make([]CustomParameter, len(req.CustomParameters))
	copy(params, req.CustomParameters)
	return &Job{
		Path:             req.Path,
		Name:             req.Name,
		Subtitle:         req.Subtitle,
		CustomParameters: params,
		CreatedAt:        time.Now().UTC(),
	}
}

// Assign snapshots the worker onto the job. Later changes to the worker do
// not affect the job.
func (j *Job) Assign(w *Worker) {
	j.AssignedWorker = AssignedWorker{
		ID:       w.ID,
		Name:     w.Name,
		Priority: w.Priority,
	}
}

// IsAssigned reports whether a worker snapshot is attached.
func (j *Job) IsAssigned() bool {
	return j.AssignedWorker.ID != ""
}

// Parameter returns the value of the first parameter named key.
func (j *Job) Parameter(key string) (string, bool) {
	for _, p := range j.CustomParameters {
		if p.Key == key {
			return p.Value, true
		}
	}
	return "", false
}
