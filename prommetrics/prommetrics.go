// Package prommetrics exports navigator metrics to Prometheus.
//
//	reg := prometheus.NewRegistry()
//	nav, _ := quadnav.New(64, 64, quadnav.WithMetricsCollector(prommetrics.New(reg)))
//	http.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
package prommetrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/hupe1980/quadnav"
)

var _ quadnav.MetricsCollector = (*Collector)(nil)

// Options configures a Collector.
type Options struct {
	// Namespace prefixes every metric name.
	Namespace string

	// LatencyBuckets are the histogram buckets for operation latency.
	LatencyBuckets []float64

	// ExpansionBuckets are the histogram buckets for nodes expanded per search.
	ExpansionBuckets []float64
}

// DefaultOptions contains the default configuration for a Collector.
var DefaultOptions = Options{
	Namespace:        "quadnav",
	LatencyBuckets:   prometheus.ExponentialBuckets(0.00001, 4, 10),
	ExpansionBuckets: prometheus.ExponentialBuckets(1, 4, 10),
}

// Collector implements quadnav.MetricsCollector with Prometheus metrics.
type Collector struct {
	opLatency    *prometheus.HistogramVec
	expansions   prometheus.Histogram
	searches     *prometheus.CounterVec
	mutations    *prometheus.CounterVec
	batchItems   *prometheus.CounterVec
	snapshotSize *prometheus.GaugeVec
}

// New creates a Collector and registers its metrics with reg. A nil reg
// selects prometheus.DefaultRegisterer.
func New(reg prometheus.Registerer, optFns ...func(o *Options)) *Collector {
	opts := DefaultOptions
	for _, fn := range optFns {
		fn(&opts)
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	c := &Collector{
		opLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: opts.Namespace,
			Name:      "operation_latency_seconds",
			Help:      "Latency of navigator operations",
			Buckets:   opts.LatencyBuckets,
		}, []string{"op", "status"}),
		expansions: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: opts.Namespace,
			Name:      "search_expanded_nodes",
			Help:      "Nodes expanded per path search",
			Buckets:   opts.ExpansionBuckets,
		}),
		searches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: opts.Namespace,
			Name:      "searches_total",
			Help:      "Path searches by outcome",
		}, []string{"result"}),
		mutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: opts.Namespace,
			Name:      "walkability_changes_total",
			Help:      "SetWalkable calls by requested state",
		}, []string{"walkable", "status"}),
		batchItems: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: opts.Namespace,
			Name:      "batch_requests_total",
			Help:      "Requests processed by batch path searches",
		}, []string{"status"}),
		snapshotSize: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: opts.Namespace,
			Name:      "snapshot_size_bytes",
			Help:      "Size of the last committed or opened snapshot",
		}, []string{"op"}),
	}

	reg.MustRegister(
		c.opLatency,
		c.expansions,
		c.searches,
		c.mutations,
		c.batchItems,
		c.snapshotSize,
	)
	return c
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

// RecordSetWalkable implements quadnav.MetricsCollector.
func (c *Collector) RecordSetWalkable(walkable bool, d time.Duration, err error) {
	state := "false"
	if walkable {
		state = "true"
	}
	c.opLatency.WithLabelValues("set_walkable", status(err)).Observe(d.Seconds())
	c.mutations.WithLabelValues(state, status(err)).Inc()
}

// RecordFindPath implements quadnav.MetricsCollector.
func (c *Collector) RecordFindPath(found bool, expanded int, d time.Duration, err error) {
	c.opLatency.WithLabelValues("find_path", status(err)).Observe(d.Seconds())
	c.expansions.Observe(float64(expanded))

	switch {
	case err != nil:
		c.searches.WithLabelValues("error").Inc()
	case found:
		c.searches.WithLabelValues("found").Inc()
	default:
		c.searches.WithLabelValues("unreachable").Inc()
	}
}

// RecordBatchFindPath implements quadnav.MetricsCollector.
func (c *Collector) RecordBatchFindPath(count, failed int, d time.Duration) {
	c.opLatency.WithLabelValues("batch_find_path", "success").Observe(d.Seconds())
	c.batchItems.WithLabelValues("success").Add(float64(count - failed))
	c.batchItems.WithLabelValues("error").Add(float64(failed))
}

// RecordCommit implements quadnav.MetricsCollector.
func (c *Collector) RecordCommit(bytes int64, d time.Duration, err error) {
	c.opLatency.WithLabelValues("commit", status(err)).Observe(d.Seconds())
	if err == nil {
		c.snapshotSize.WithLabelValues("commit").Set(float64(bytes))
	}
}

// RecordOpen implements quadnav.MetricsCollector.
func (c *Collector) RecordOpen(bytes int64, d time.Duration, err error) {
	c.opLatency.WithLabelValues("open", status(err)).Observe(d.Seconds())
	if err == nil {
		c.snapshotSize.WithLabelValues("open").Set(float64(bytes))
	}
}
