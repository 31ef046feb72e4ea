// Package metrics exposes the workflow outcome counters.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Result label values.
const (
	ResultSuccess  = "success"
	ResultRejected = "rejected"
	ResultFailure  = "failure"
)

var (
	setupCounter = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cryptoyield_setup_total",
		Help: "Number of setup submissions by result",
	}, []string{"result"})

	resetCounter = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cryptoyield_reset_total",
		Help: "Number of system resets by type and result",
	}, []string{"type", "result"})
)

// Observer records workflow outcomes.
type Observer interface {
	Setup(result string)
	Reset(resetType, result string)
}

type prometheusObserver struct{}

// NewPrometheusObserver returns an Observer backed by the process wide counters.
func NewPrometheusObserver() Observer {
	return prometheusObserver{}
}

func (prometheusObserver) Setup(result string) {
	setupCounter.WithLabelValues(result).Inc()
}

func (prometheusObserver) Reset(resetType, result string) {
	resetCounter.WithLabelValues(resetType, result).Inc()
}

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
