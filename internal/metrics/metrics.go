// Package metrics provides Prometheus metrics for the command interpreter.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder owns the dossim collectors. Each Recorder has its own registry so
// tests and several shells in one process do not collide.
type Recorder struct {
	registry *prometheus.Registry

	commandsTotal    *prometheus.CounterVec
	commandDuration  *prometheus.HistogramVec
	errorsTotal      *prometheus.CounterVec
	batchLinesTotal  prometheus.Counter
	batchRunsTotal   *prometheus.CounterVec
	diskBytesUsed    prometheus.Gauge
	snapshotOpsTotal *prometheus.CounterVec
}

// New creates a Recorder with all collectors registered.
func New() *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Recorder{
		registry: reg,

		commandsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dossim_commands_total",
				Help: "Total number of dispatched command lines",
			},
			[]string{"verb", "status"},
		),

		commandDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "dossim_command_duration_seconds",
				Help:    "Command execution time in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"verb"},
		),

		errorsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dossim_errors_total",
				Help: "Total number of failed commands by error kind",
			},
			[]string{"kind"},
		),

		batchLinesTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "dossim_batch_lines_total",
				Help: "Total number of batch lines executed",
			},
		),

		batchRunsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dossim_batch_runs_total",
				Help: "Total number of batch runs by outcome",
			},
			[]string{"result"},
		),

		diskBytesUsed: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "dossim_disk_bytes_used",
				Help: "Payload bytes stored in the virtual disk",
			},
		),

		snapshotOpsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dossim_snapshot_operations_total",
				Help: "Total snapshot saves and loads",
			},
			[]string{"op", "status"},
		),
	}
}

// Registry exposes the underlying registry, mainly for tests.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Handler returns the Prometheus metrics HTTP handler.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// RecordCommand records one dispatched line. kind is empty on success.
func (r *Recorder) RecordCommand(verb, kind string, duration time.Duration) {
	if r == nil {
		return
	}
	status := "ok"
	if kind != "" {
		status = "error"
		r.errorsTotal.WithLabelValues(kind).Inc()
	}
	r.commandsTotal.WithLabelValues(verb, status).Inc()
	r.commandDuration.WithLabelValues(verb).Observe(duration.Seconds())
}

// RecordBatchLine counts one executed batch line.
func (r *Recorder) RecordBatchLine() {
	if r == nil {
		return
	}
	r.batchLinesTotal.Inc()
}

// RecordBatchRun records the outcome of a whole batch run: "ok", "failed"
// (at least one recoverable failure) or "aborted".
func (r *Recorder) RecordBatchRun(result string) {
	if r == nil {
		return
	}
	r.batchRunsTotal.WithLabelValues(result).Inc()
}

// SetDiskUsage updates the disk usage gauge.
func (r *Recorder) SetDiskUsage(bytes int64) {
	if r == nil {
		return
	}
	r.diskBytesUsed.Set(float64(bytes))
}

// RecordSnapshot records a snapshot save or load.
func (r *Recorder) RecordSnapshot(op string, err error) {
	if r == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	r.snapshotOpsTotal.WithLabelValues(op, status).Inc()
}
