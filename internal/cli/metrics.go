package cli

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	metricsNamespace = "hyperlath"
	metricsSubsystem = "hyp"
)

// metrics lives on a private registry so that repeated invocations in one
// process (tests) never collide on the global one.
type metrics struct {
	reg *prometheus.Registry

	runs     *prometheus.CounterVec
	duration *prometheus.HistogramVec
	states   *prometheus.GaugeVec
	arcs     *prometheus.GaugeVec
}

func newMetrics() *metrics {
	m := &metrics{
		reg: prometheus.NewRegistry(),
		runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: metricsSubsystem,
				Name:      "runs_total",
				Help:      "Command runs by command and status",
			},
			[]string{"command", "status"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Subsystem: metricsSubsystem,
				Name:      "run_duration_seconds",
				Help:      "Command wall time in seconds",
				Buckets:   []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 30, 120},
			},
			[]string{"command"},
		),
		states: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: metricsNamespace,
				Subsystem: metricsSubsystem,
				Name:      "states",
				Help:      "States of the last input or output hypergraph",
			},
			[]string{"command", "role"},
		),
		arcs: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: metricsNamespace,
				Subsystem: metricsSubsystem,
				Name:      "arcs",
				Help:      "Arcs of the last input or output hypergraph",
			},
			[]string{"command", "role"},
		),
	}
	m.reg.MustRegister(m.runs, m.duration, m.states, m.arcs)

	return m
}

func (m *metrics) observe(command string, elapsed time.Duration, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.runs.WithLabelValues(command, status).Inc()
	m.duration.WithLabelValues(command).Observe(elapsed.Seconds())
}

// graph records the size of a hypergraph; role is "input" or "output".
func (m *metrics) graph(command, role string, states, arcs int) {
	m.states.WithLabelValues(command, role).Set(float64(states))
	m.arcs.WithLabelValues(command, role).Set(float64(arcs))
}

func (m *metrics) write(path string) error {
	return prometheus.WriteToTextfile(path, m.reg)
}
