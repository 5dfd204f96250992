package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/avior/infuser/internal/domain"
)

var (
	submissionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "infuser_submissions_total",
			Help: "Job submissions by outcome",
		},
		[]string{"outcome", "kind"},
	)

	assignmentsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "infuser_assignments_total",
			Help: "Committed job assignments by worker",
		},
		[]string{"worker", "fallback"},
	)

	assignmentLoad = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "infuser_assignment_load",
			Help:    "Active job count of the chosen worker at decision time",
			Buckets: []float64{0, 1, 2, 3, 4, 6, 8, 12, 16},
		},
	)

	submitDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "infuser_submit_duration_seconds",
			Help:    "Wall time of a submission including store round trips",
			Buckets: prometheus.DefBuckets,
		},
	)
)

// Register adds the collectors to r.
func Register(r prometheus.Registerer) {
	r.MustRegister(submissionsTotal, assignmentsTotal, assignmentLoad, submitDuration)
}

// ObserveSubmission records one finished submission.
func ObserveSubmission(out domain.Outcome, seconds float64) {
	submissionsTotal.WithLabelValues(string(out.Status), string(out.Kind)).Inc()
	submitDuration.Observe(seconds)
	if out.Status != domain.OutcomeAssigned {
		return
	}
	fallback := "false"
	if out.Fallback {
		fallback = "true"
	}
	assignmentsTotal.WithLabelValues(out.Worker, fallback).Inc()
	assignmentLoad.Observe(float64(out.Load))
}
