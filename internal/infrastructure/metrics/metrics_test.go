package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avior/infuser/internal/domain"
)

func TestObserveSubmission(t *testing.T) {
	reg := prometheus.NewRegistry()
	Register(reg)

	before := testutil.ToFloat64(assignmentsTotal.WithLabelValues("encoder-1", "true"))
	failedBefore := testutil.ToFloat64(submissionsTotal.WithLabelValues("failed", "configuration"))

	ObserveSubmission(domain.Outcome{Status: domain.OutcomeAssigned, Worker: "encoder-1", Load: 2, Fallback: true}, 0.01)
	ObserveSubmission(domain.Outcome{Status: domain.OutcomeNoOp}, 0.001)
	ObserveSubmission(domain.Outcome{Status: domain.OutcomeFailed, Kind: domain.KindConfiguration}, 0.002)

	assert.Equal(t, before+1, testutil.ToFloat64(assignmentsTotal.WithLabelValues("encoder-1", "true")))
	assert.Equal(t, failedBefore+1, testutil.ToFloat64(submissionsTotal.WithLabelValues("failed", "configuration")))

	families, err := reg.Gather()
	require.NoError(t, err)
	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.Contains(t, names, "infuser_submissions_total")
	assert.Contains(t, names, "infuser_submit_duration_seconds")
}
