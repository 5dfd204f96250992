package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/avior/infuser/internal/adapter/http/views"
	"github.com/avior/infuser/internal/domain"
	"github.com/avior/infuser/internal/infrastructure/logger"
	"github.com/avior/infuser/internal/port"
)

const maxRequestBytes = 1 << 20

type Submitter interface {
	Submit(ctx context.Context, req domain.SubmitRequest) (domain.Outcome, error)
}

type Handlers struct {
	submitter     Submitter
	registry      port.WorkerRegistry
	defaultWorker string
	tieBreak      string
}

func NewHandlers(submitter Submitter, registry port.WorkerRegistry, defaultWorker, tieBreak string) *Handlers {
	return &Handlers{
		submitter:     submitter,
		registry:      registry,
		defaultWorker: defaultWorker,
		tieBreak:      tieBreak,
	}
}

// WorkerStatus is a roster entry with its current load.
type WorkerStatus struct {
	domain.Worker
	Load    int  `json:"load"`
	Default bool `json:"default"`
	hasLoad bool
}

func (h *Handlers) SubmitJob() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxRequestBytes)

		var req domain.SubmitRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			var maxErr *http.MaxBytesError
			if errors.As(err, &maxErr) {
				writeError(w, http.StatusRequestEntityTooLarge, "request too large")
				return
			}
			if errors.Is(err, io.EOF) {
				writeError(w, http.StatusBadRequest, "empty body")
				return
			}
			writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
			return
		}

		out, err := h.submitter.Submit(r.Context(), req)
		if err != nil {
			writeJSON(w, statusForKind(out.Kind), out)
			return
		}

		code := http.StatusOK
		if out.Status == domain.OutcomeAssigned {
			code = http.StatusCreated
		}
		writeJSON(w, code, out)
	}
}

func (h *Handlers) Workers() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := h.workerStatus(r.Context())
		if err != nil {
			logger.Log.Error().Err(err).Msg("list workers")
			writeError(w, http.StatusServiceUnavailable, "store unavailable")
			return
		}
		writeJSON(w, http.StatusOK, rows)
	}
}

func (h *Handlers) StatusPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := h.workerStatus(r.Context())
		if err != nil {
			logger.Log.Error().Err(err).Msg("status page")
			http.Error(w, "store unavailable", http.StatusServiceUnavailable)
			return
		}

		viewRows := make([]views.WorkerRow, len(rows))
		for i, row := range rows {
			viewRows[i] = views.WorkerRow{Worker: row.Worker, Load: row.Load, HasLoad: row.hasLoad, Default: row.Default}
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_ = views.Status(viewRows, h.tieBreak).Render(r.Context(), w)
	}
}

func (h *Handlers) Healthz() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, err := h.registry.LoadSnapshot(r.Context()); err != nil {
			writeError(w, http.StatusServiceUnavailable, "store unavailable")
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

func (h *Handlers) workerStatus(ctx context.Context) ([]WorkerStatus, error) {
	workers, err := h.registry.ListWorkers(ctx)
	if err != nil {
		return nil, err
	}
	snapshot, err := h.registry.LoadSnapshot(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([]WorkerStatus, len(workers))
	for i, wk := range workers {
		load, ok := snapshot.Count(wk.ID)
		rows[i] = WorkerStatus{
			Worker:  wk,
			Load:    load,
			Default: wk.Name == h.defaultWorker,
			hasLoad: ok,
		}
	}
	return rows, nil
}

func statusForKind(kind domain.Kind) int {
	switch kind {
	case domain.KindInvalidRequest:
		return http.StatusBadRequest
	case domain.KindConfiguration, domain.KindDataIntegrity:
		return http.StatusUnprocessableEntity
	case domain.KindStore:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Log.Error().Err(err).Msg("encode response")
	}
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}
