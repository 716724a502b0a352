// Package metrics exposes Prometheus metrics for checkpoint compaction and
// the background job queue.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "pitkeeper"

// Compaction outcomes.
const (
	OutcomeCreated         = "created"
	OutcomeSkippedFresh    = "skipped_fresh"
	OutcomeSkippedNoCommit = "skipped_no_commit"
	OutcomeLockRetry       = "lock_retry"
	OutcomeLockGaveUp      = "lock_gave_up"
	OutcomeFailed          = "failed"
)

// Job results.
const (
	JobCompleted = "completed"
	JobRetried   = "retried"
	JobFailed    = "failed"
)

// Collector is a prometheus.Collector for compaction and queue metrics.
// A nil *Collector is valid and records nothing.
type Collector struct {
	compactions        *prometheus.CounterVec
	compactionDuration prometheus.Histogram
	checkpointFolders  prometheus.Histogram
	jobs               *prometheus.CounterVec
}

// NewCollector returns a new Collector.
func NewCollector() *Collector {
	return &Collector{
		compactions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "tree_checkpoint_compactions_total",
				Help:      "Tree checkpoint compaction attempts by outcome.",
			}, []string{"outcome"},
		),
		compactionDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Name:      "tree_checkpoint_compaction_seconds",
				Help:      "Time spent building a tree checkpoint while holding the environment lock.",
				Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5, 15},
			},
		),
		checkpointFolders: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Name:      "tree_checkpoint_folders",
				Help:      "Number of folders captured by a tree checkpoint.",
				Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
			},
		),
		jobs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "queue_jobs_total",
				Help:      "Processed background jobs by queue and result.",
			}, []string{"queue", "result"},
		),
	}
}

// Compaction records one compaction attempt.
func (c *Collector) Compaction(outcome string) {
	if c == nil {
		return
	}
	c.compactions.WithLabelValues(outcome).Inc()
}

// CheckpointBuilt records the cost of a written checkpoint.
func (c *Collector) CheckpointBuilt(folders int, took time.Duration) {
	if c == nil {
		return
	}
	c.checkpointFolders.Observe(float64(folders))
	c.compactionDuration.Observe(took.Seconds())
}

// JobProcessed records a job execution result.
func (c *Collector) JobProcessed(queue, result string) {
	if c == nil {
		return
	}
	c.jobs.WithLabelValues(queue, result).Inc()
}

// Describe is part of the prometheus.Collector interface.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	c.compactions.Describe(ch)
	c.compactionDuration.Describe(ch)
	c.checkpointFolders.Describe(ch)
	c.jobs.Describe(ch)
}

// Collect is part of the prometheus.Collector interface.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	c.compactions.Collect(ch)
	c.compactionDuration.Collect(ch)
	c.checkpointFolders.Collect(ch)
	c.jobs.Collect(ch)
}
