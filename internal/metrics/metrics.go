// Package metrics registers the service's Prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	StepSaves       *prometheus.CounterVec
	Submissions     prometheus.Counter
	ScoringDuration prometheus.Histogram
	ExportRenders   *prometheus.CounterVec
	PrefillFailures prometheus.Counter
}

func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		StepSaves: f.NewCounterVec(prometheus.CounterOpts{
			Name: "appraisal_step_saves_total",
			Help: "Step payload saves, by step number.",
		}, []string{"step"}),
		Submissions: f.NewCounter(prometheus.CounterOpts{
			Name: "appraisal_submissions_total",
			Help: "Final appraisal submissions.",
		}),
		ScoringDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "appraisal_scoring_duration_seconds",
			Help:    "Wall time of full scorecard computation.",
			Buckets: prometheus.DefBuckets,
		}),
		ExportRenders: f.NewCounterVec(prometheus.CounterOpts{
			Name: "appraisal_export_renders_total",
			Help: "Rendered export artifacts, by format.",
		}, []string{"format"}),
		PrefillFailures: f.NewCounter(prometheus.CounterOpts{
			Name: "appraisal_prefill_failures_total",
			Help: "Faculty records provider fetch failures.",
		}),
	}
}
