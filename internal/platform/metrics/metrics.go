package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "cowregistry"

// Metrics usa un registry propio por instancia de App (nada global: los tests pueden crear varias).
type Metrics struct {
	reg *prometheus.Registry

	syncRuns       *prometheus.CounterVec
	syncDuration   prometheus.Histogram
	recordFailures prometheus.Counter
	renderedCows   prometheus.Gauge
	commands       *prometheus.CounterVec
	contentAdds    *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{
		reg: prometheus.NewRegistry(),
		syncRuns: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "sync",
				Name:      "runs_total",
				Help:      "Record synchronization runs by result.",
			},
			[]string{"result"},
		),
		syncDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "sync",
				Name:      "duration_seconds",
				Help:      "Record synchronization duration in seconds.",
				Buckets:   prometheus.DefBuckets,
			},
		),
		recordFailures: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "sync",
				Name:      "record_failures_total",
				Help:      "Per-record resolutions that failed during synchronization.",
			},
		),
		renderedCows: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "view",
				Name:      "rendered_cows",
				Help:      "Cards currently in the display list.",
			},
		),
		commands: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "commands",
				Name:      "total",
				Help:      "Command submissions by command and result.",
			},
			[]string{"command", "result"},
		),
		contentAdds: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "content",
				Name:      "adds_total",
				Help:      "Content store add operations by result.",
			},
			[]string{"result"},
		),
	}

	m.reg.MustRegister(
		collectors.NewGoCollector(),
		m.syncRuns,
		m.syncDuration,
		m.recordFailures,
		m.renderedCows,
		m.commands,
		m.contentAdds,
	)
	return m
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{})
}

func (m *Metrics) Registry() *prometheus.Registry { return m.reg }

func result(ok bool) string {
	if ok {
		return "ok"
	}
	return "error"
}

// Los métodos toleran receiver nil para que los componentes funcionen sin métricas cableadas.

func (m *Metrics) ObserveSync(d time.Duration, ok bool, failedRecords, rendered int) {
	if m == nil {
		return
	}
	m.syncRuns.WithLabelValues(result(ok)).Inc()
	m.syncDuration.Observe(d.Seconds())
	m.recordFailures.Add(float64(failedRecords))
	if ok {
		m.renderedCows.Set(float64(rendered))
	}
}

func (m *Metrics) ObserveCommand(command string, ok bool) {
	if m == nil {
		return
	}
	m.commands.WithLabelValues(command, result(ok)).Inc()
}

func (m *Metrics) ObserveContentAdd(ok bool) {
	if m == nil {
		return
	}
	m.contentAdds.WithLabelValues(result(ok)).Inc()
}
