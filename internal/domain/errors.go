package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound  = errors.New("resource not found")
	ErrJobExists = errors.New("job already exists")
)

// Kind classifies a submission failure so callers can branch without parsing
// error text.
type Kind string

const (
	KindConfiguration    Kind = "configuration"
	KindNoEligibleWorker Kind = "no_eligible_worker"
	KindStore            Kind = "store"
	KindDataIntegrity    Kind = "data_integrity"
	KindInvalidRequest   Kind = "invalid_request"
)

// Sentinels for errors.Is. They match any *Error of the same kind.
var (
	ErrConfiguration    = &Error{Kind: KindConfiguration}
	ErrNoEligibleWorker = &Error{Kind: KindNoEligibleWorker}
	ErrStore            = &Error{Kind: KindStore}
	ErrDataIntegrity    = &Error{Kind: KindDataIntegrity}
	ErrInvalidRequest   = &Error{Kind: KindInvalidRequest}
)

// Error is the error type returned by the scheduler and the submission flow.
// Tier is only meaningful when HasTier is set.
type Error struct {
	Kind     Kind
	Op       string
	Path     string
	WorkerID string
	Worker   string
	Tier     int
	HasTier  bool
	Msg      string
	Err      error
}

func (e *Error) Error() string {
	var b strings.Builder
	if e.Op != "" {
		b.WriteString(e.Op)
		b.WriteString(": ")
	}
	b.WriteString(string(e.Kind))
	if e.Msg != "" {
		b.WriteString(": ")
		b.WriteString(e.Msg)
	}

	var ctx []string
	if e.Path != "" {
		ctx = append(ctx, fmt.Sprintf("path=%q", e.Path))
	}
	if e.WorkerID != "" {
		ctx = append(ctx, "worker_id="+e.WorkerID)
	}
	if e.Worker != "" {
		ctx = append(ctx, fmt.Sprintf("worker=%q", e.Worker))
	}
	if e.HasTier {
		ctx = append(ctx, fmt.Sprintf("tier=%d", e.Tier))
	}
	if len(ctx) > 0 {
		b.WriteString(" (")
		b.WriteString(strings.Join(ctx, " "))
		b.WriteString(")")
	}

	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// KindOf returns the kind of the first *Error in err's chain, or "" if none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

func StoreError(op string, err error) *Error {
	return &Error{Kind: KindStore, Op: op, Err: err}
}
