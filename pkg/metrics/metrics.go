// Package metrics records preview client traffic as Prometheus metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/zextras/carbonio-preview-go/pkg/preview"
)

const (
	namespace = "preview_client"
)

// Recorder implements preview.Recorder on top of Prometheus collectors.
type Recorder struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	healthReady     prometheus.Gauge
	healthDuration  prometheus.Histogram
}

var _ preview.Recorder = (*Recorder)(nil)

// New builds a Recorder and registers its collectors on reg. A nil reg
// falls back to the default registerer.
func New(reg prometheus.Registerer) (*Recorder, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	r := &Recorder{
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "requests_total",
				Help:      "Preview service requests by resource kind, mode, method and outcome.",
			},
			[]string{"kind", "mode", "method", "outcome"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "request_duration_seconds",
				Help:      "Time until the preview service answered.",
				Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
			},
			[]string{"kind", "mode", "method"},
		),
		healthReady: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "health",
				Name:      "ready",
				Help:      "1 when the last readiness probe succeeded.",
			},
		),
		healthDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "health",
				Name:      "probe_duration_seconds",
				Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 5},
			},
		),
	}

	for _, c := range []prometheus.Collector{r.requestsTotal, r.requestDuration, r.healthReady, r.healthDuration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func (r *Recorder) ObserveRequest(kind preview.Kind, mode preview.Mode, method, outcome string, elapsed time.Duration) {
	r.requestsTotal.WithLabelValues(string(kind), string(mode), method, outcome).Inc()
	r.requestDuration.WithLabelValues(string(kind), string(mode), method).Observe(elapsed.Seconds())
}

func (r *Recorder) ObserveHealth(ready bool, elapsed time.Duration) {
	if ready {
		r.healthReady.Set(1)
	} else {
		r.healthReady.Set(0)
	}
	r.healthDuration.Observe(elapsed.Seconds())
}
