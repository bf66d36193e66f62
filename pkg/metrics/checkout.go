package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// CheckoutMetrics records order submission outcomes and latency.
type CheckoutMetrics struct {
	duration  *prometheus.HistogramVec
	submitted *prometheus.CounterVec
	rejected  prometheus.Counter
}

// NewCheckoutMetrics registers the checkout metrics on the provided registerer.
func NewCheckoutMetrics(reg prometheus.Registerer) *CheckoutMetrics {
	if reg == nil {
		return &CheckoutMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "checkout_submission_duration_seconds",
		Help:    "Duration of checkout order submissions in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"outcome"})
	submitted := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "checkout_submissions_total",
		Help: "Checkout submissions by payment outcome.",
	}, []string{"outcome"})
	rejected := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "checkout_rejected_total",
		Help: "Submissions rejected before reaching the payment gateway.",
	})
	reg.MustRegister(duration, submitted, rejected)
	return &CheckoutMetrics{
		duration:  duration,
		submitted: submitted,
		rejected:  rejected,
	}
}

// ObserveSubmission records one submission attempt with its payment outcome.
func (c *CheckoutMetrics) ObserveSubmission(outcome string, duration time.Duration) {
	if c == nil || c.duration == nil {
		return
	}
	label := normalizeOutcome(outcome)
	c.duration.WithLabelValues(label).Observe(duration.Seconds())
	c.submitted.WithLabelValues(label).Inc()
}

// IncRejected counts submissions stopped by guards before payment ran.
func (c *CheckoutMetrics) IncRejected() {
	if c == nil || c.rejected == nil {
		return
	}
	c.rejected.Inc()
}

func normalizeOutcome(outcome string) string {
	if outcome == "" {
		return "unknown"
	}
	return outcome
}
