package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the service's Prometheus collectors. A nil *Metrics is valid
// and records nothing.
type Metrics struct {
	DirectoryFetches      *prometheus.CounterVec
	DirectoryFetchLatency prometheus.Histogram
	DirectorySize         prometheus.Gauge
	Resolutions           *prometheus.CounterVec
	Verifications         *prometheus.CounterVec
	AttemptsRecorded      *prometheus.CounterVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		DirectoryFetches: f.NewCounterVec(prometheus.CounterOpts{
			Name: "student_directory_fetches_total",
			Help: "Student directory fetches by outcome",
		}, []string{"outcome"}), // outcome: "ok" or a fetch error category

		DirectoryFetchLatency: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "student_directory_fetch_duration_seconds",
			Help:    "Duration of student directory fetches",
			Buckets: []float64{0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),

		DirectorySize: f.NewGauge(prometheus.GaugeOpts{
			Name: "student_directory_records",
			Help: "Number of records in the last successful directory fetch",
		}),

		Resolutions: f.NewCounterVec(prometheus.CounterOpts{
			Name: "identity_resolutions_total",
			Help: "Identifier resolutions by result",
		}, []string{"result"}),

		Verifications: f.NewCounterVec(prometheus.CounterOpts{
			Name: "identity_verifications_total",
			Help: "Credential verifications by outcome",
		}, []string{"outcome"}),

		AttemptsRecorded: f.NewCounterVec(prometheus.CounterOpts{
			Name: "verification_attempts_recorded_total",
			Help: "Verification attempts written to the audit outbox by result",
		}, []string{"result"}),
	}
}

func (m *Metrics) ObserveDirectoryFetch(outcome string, d time.Duration, records int) {
	if m == nil {
		return
	}
	m.DirectoryFetches.WithLabelValues(outcome).Inc()
	m.DirectoryFetchLatency.Observe(d.Seconds())
	if outcome == "ok" {
		m.DirectorySize.Set(float64(records))
	}
}

func (m *Metrics) IncrementResolution(found bool) {
	if m == nil {
		return
	}
	result := "not_found"
	if found {
		result = "found"
	}
	m.Resolutions.WithLabelValues(result).Inc()
}

func (m *Metrics) IncrementVerification(outcome string) {
	if m != nil {
		m.Verifications.WithLabelValues(outcome).Inc()
	}
}

func (m *Metrics) IncrementAttemptRecorded(ok bool) {
	if m == nil {
		return
	}
	result := "ok"
	if !ok {
		result = "error"
	}
	m.AttemptsRecorded.WithLabelValues(result).Inc()
}
