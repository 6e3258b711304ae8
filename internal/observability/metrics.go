// Package observability exposes batch metrics for node_exporter's textfile collector.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Workout outcomes
const (
	OutcomeProcessed = "processed"
	OutcomeSkipped   = "skipped"
	OutcomeFailed    = "failed"
)

var (
	workoutsCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "swimreport",
		Subsystem: "batch",
		Name:      "workouts_total",
		Help:      "Number of swim workouts handled, labeled by outcome.",
	}, []string{"outcome"})

	samplesHistogram = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "swimreport",
		Subsystem: "analysis",
		Name:      "workout_samples",
		Help:      "Aligned samples per analyzed workout.",
		Buckets:   prometheus.ExponentialBuckets(60, 2, 8),
	})

	writesCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "swimreport",
		Subsystem: "report",
		Name:      "writes_total",
		Help:      "Report writes, labeled by format and result.",
	}, []string{"format", "result"})

	runDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "swimreport",
		Subsystem: "batch",
		Name:      "run_duration_seconds",
		Help:      "Wall time of a batch run.",
		Buckets:   prometheus.ExponentialBuckets(0.5, 2, 10),
	})

	lastRunGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "swimreport",
		Subsystem: "batch",
		Name:      "last_run_timestamp_seconds",
		Help:      "Unix timestamp of the most recent completed batch run.",
	})
)

func init() {
	prometheus.MustRegister(workoutsCounter, samplesHistogram, writesCounter, runDuration, lastRunGauge)
}

// RecordOutcome counts one workout by outcome
func RecordOutcome(outcome string) {
	workoutsCounter.WithLabelValues(outcome).Inc()
}

// RecordSamples observes the aligned length of an analyzed workout
func RecordSamples(n int) {
	samplesHistogram.Observe(float64(n))
}

// RecordWrite counts a report write for a format
func RecordWrite(format string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	writesCounter.WithLabelValues(format, result).Inc()
}

// RecordRun observes a finished batch run
func RecordRun(started, finished time.Time) {
	runDuration.Observe(finished.Sub(started).Seconds())
	lastRunGauge.Set(float64(finished.Unix()))
}

// WriteTextfile writes every registered metric to path in the text
// exposition format
func WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, prometheus.DefaultGatherer)
}
