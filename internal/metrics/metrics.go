// Package metrics provides review queue metrics for observability
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"push-review-queue/internal/entities"
)

// Selection outcomes.
const (
	SelectionFound = "found"
	SelectionEmpty = "empty"
	SelectionError = "error"
)

// Verdict outcomes.
const (
	VerdictRecorded = "recorded"
	VerdictNotFound = "not_found"
	VerdictError    = "error"
)

// ReviewMetrics contains Prometheus metrics for the review queue.
// All methods are safe on a nil receiver.
type ReviewMetrics struct {
	selectionsTotal *prometheus.CounterVec
	verdictsTotal   *prometheus.CounterVec
	reportResolved  prometheus.Gauge
	reportBuckets   *prometheus.GaugeVec
}

// NewReviewMetrics creates and registers review metrics.
func NewReviewMetrics(registry *prometheus.Registry) (*ReviewMetrics, error) {
	m := &ReviewMetrics{
		selectionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "push_review_selections_total",
				Help: "Total number of pending item selections",
			},
			[]string{"result"}, // found, empty, error
		),
		verdictsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "push_review_verdicts_total",
				Help: "Total number of submitted verdicts",
			},
			[]string{"verdict", "result"},
		),
		reportResolved: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "push_review_report_resolved",
			Help: "Resolved pushes seen by the last built report",
		}),
		reportBuckets: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "push_review_report_bucket_items",
				Help: "Items per bucket in the last built report",
			},
			[]string{"bucket"},
		),
	}
	if err := registry.Register(m); err != nil {
		return nil, err
	}
	return m, nil
}

// Describe implements prometheus.Collector.
func (m *ReviewMetrics) Describe(ch chan<- *prometheus.Desc) {
	m.selectionsTotal.Describe(ch)
	m.verdictsTotal.Describe(ch)
	m.reportResolved.Describe(ch)
	m.reportBuckets.Describe(ch)
}

// Collect implements prometheus.Collector.
func (m *ReviewMetrics) Collect(ch chan<- prometheus.Metric) {
	m.selectionsTotal.Collect(ch)
	m.verdictsTotal.Collect(ch)
	m.reportResolved.Collect(ch)
	m.reportBuckets.Collect(ch)
}

// ObserveSelection counts one selector call.
func (m *ReviewMetrics) ObserveSelection(result string) {
	if m == nil {
		return
	}
	m.selectionsTotal.WithLabelValues(result).Inc()
}

// ObserveVerdict counts one verdict submission.
func (m *ReviewMetrics) ObserveVerdict(verdict entities.Verdict, result string) {
	if m == nil {
		return
	}
	m.verdictsTotal.WithLabelValues(string(verdict), result).Inc()
}

// ObserveReport records the shape of a freshly built report.
func (m *ReviewMetrics) ObserveReport(rep entities.Report) {
	if m == nil {
		return
	}
	m.reportResolved.Set(float64(rep.TotalResolved))
	m.reportBuckets.WithLabelValues(string(entities.BucketApproved)).Set(float64(len(rep.Approved)))
	m.reportBuckets.WithLabelValues(string(entities.BucketRejected)).Set(float64(len(rep.Rejected)))
	m.reportBuckets.WithLabelValues(string(entities.BucketDisputed)).Set(float64(len(rep.Disputed)))
}
