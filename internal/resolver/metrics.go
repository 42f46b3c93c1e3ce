package resolver

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/rezonia/tucano/internal/model"
	"github.com/rezonia/tucano/internal/provider"
)

const (
	outcomeSuccess     = "success"
	outcomeNotFound    = "not_found"
	outcomeCancelled   = "cancelled"
	outcomeUnavailable = "unavailable"
)

// Metrics records provider attempts and resolution outcomes
type Metrics struct {
	Attempts        *prometheus.CounterVec
	AttemptDuration *prometheus.HistogramVec
	Resolutions     *prometheus.CounterVec
}

// NewMetrics registers the resolver collectors on reg
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Attempts: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "tucano_provider_attempts_total",
			Help: "Total number of provider attempts by outcome",
		}, []string{"kind", "provider", "outcome"}),
		AttemptDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "tucano_provider_attempt_duration_seconds",
			Help:    "Duration of provider attempts",
			Buckets: prometheus.DefBuckets,
		}, []string{"kind", "provider"}),
		Resolutions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "tucano_resolutions_total",
			Help: "Total number of resolutions by final outcome",
		}, []string{"kind", "outcome"}),
	}
}

func (m *Metrics) observeAttempt(kind model.Kind, name, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.Attempts.WithLabelValues(string(kind), name, outcome).Inc()
	m.AttemptDuration.WithLabelValues(string(kind), name).Observe(elapsed.Seconds())
}

func (m *Metrics) observeResolution(kind model.Kind, outcome string) {
	if m == nil {
		return
	}
	m.Resolutions.WithLabelValues(string(kind), outcome).Inc()
}

// outcomeOf labels a failed attempt by its category
func outcomeOf(err error) string {
	var notFound *model.NotFoundError
	if errors.As(err, &notFound) {
		return outcomeNotFound
	}
	if category := provider.Category(err); category != "" {
		return string(category)
	}
	return outcomeUnavailable
}
