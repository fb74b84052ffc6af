package metrics

import (
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/common/expfmt"
)

const namespace = "bigcalc"

// AllocatorMetrics records allocator and evaluation activity in a private
// Prometheus registry. It implements allocator.Observer.
type AllocatorMetrics struct {
	registry *prometheus.Registry
	handler  http.Handler

	allocations   *prometheus.CounterVec
	reallocations *prometheus.CounterVec
	deallocations *prometheus.CounterVec
	wordsTotal    *prometheus.CounterVec
	liveWords     *prometheus.GaugeVec
	evaluations   *prometheus.CounterVec
	evalDuration  prometheus.Histogram
}

// NewAllocatorMetrics creates the collectors and registers them, along with
// the Go runtime collector, in a fresh registry.
func NewAllocatorMetrics() *AllocatorMetrics {
	m := &AllocatorMetrics{
		registry: prometheus.NewRegistry(),
		allocations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "allocations_total",
			Help:      "Number of allocations handed out, by backend.",
		}, []string{"backend"}),
		reallocations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reallocations_total",
			Help:      "Number of successful reallocations, by backend.",
		}, []string{"backend"}),
		deallocations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "deallocations_total",
			Help:      "Number of released allocations, by backend.",
		}, []string{"backend"}),
		wordsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "allocated_words_total",
			Help:      "Words requested from the backend, including growth.",
		}, []string{"backend"}),
		liveWords: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "live_words",
			Help:      "Words held by live allocations.",
		}, []string{"backend"}),
		evaluations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "evaluations_total",
			Help:      "Number of evaluated programs, by outcome.",
		}, []string{"status"}),
		evalDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "evaluation_duration_seconds",
			Help:      "Time spent evaluating a single program.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
		}),
	}
	m.registry.MustRegister(
		m.allocations, m.reallocations, m.deallocations, m.wordsTotal,
		m.liveWords, m.evaluations, m.evalDuration,
		collectors.NewGoCollector(),
	)
	m.handler = promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
	return m
}

// Allocated implements allocator.Observer.
func (m *AllocatorMetrics) Allocated(backend string, words int) {
	m.allocations.WithLabelValues(backend).Inc()
	m.wordsTotal.WithLabelValues(backend).Add(float64(words))
	m.liveWords.WithLabelValues(backend).Add(float64(words))
}

// Reallocated implements allocator.Observer.
func (m *AllocatorMetrics) Reallocated(backend string, from, to int) {
	m.reallocations.WithLabelValues(backend).Inc()
	if to > from {
		m.wordsTotal.WithLabelValues(backend).Add(float64(to - from))
	}
	m.liveWords.WithLabelValues(backend).Add(float64(to - from))
}

// Deallocated implements allocator.Observer.
func (m *AllocatorMetrics) Deallocated(backend string, words int) {
	m.deallocations.WithLabelValues(backend).Inc()
	m.liveWords.WithLabelValues(backend).Sub(float64(words))
}

// ObserveEvaluation records the outcome and duration of one program.
func (m *AllocatorMetrics) ObserveEvaluation(status string, d time.Duration) {
	m.evaluations.WithLabelValues(status).Inc()
	m.evalDuration.Observe(d.Seconds())
}

// WritePrometheus serves the metrics in the Prometheus exposition format.
func (m *AllocatorMetrics) WritePrometheus(w http.ResponseWriter, r *http.Request) {
	m.handler.ServeHTTP(w, r)
}

// WriteText writes the bigcalc metric families as plain text. Go runtime
// metrics are left out unless includeRuntime is set.
func (m *AllocatorMetrics) WriteText(w io.Writer, includeRuntime bool) error {
	families, err := m.registry.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if !includeRuntime && !strings.HasPrefix(mf.GetName(), namespace+"_") {
			continue
		}
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}
