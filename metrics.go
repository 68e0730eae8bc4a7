package quadnav

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems; the
// prommetrics package provides a Prometheus implementation.
type MetricsCollector interface {
	// RecordSetWalkable is called after each SetWalkable.
	RecordSetWalkable(walkable bool, duration time.Duration, err error)

	// RecordFindPath is called after each path search, including every
	// search of a batch. expanded is the number of nodes expanded.
	RecordFindPath(found bool, expanded int, duration time.Duration, err error)

	// RecordBatchFindPath is called after each batch. count is the number of
	// requests, failed the number that returned an error.
	RecordBatchFindPath(count, failed int, duration time.Duration)

	// RecordCommit is called after each Commit with the snapshot size.
	RecordCommit(bytes int64, duration time.Duration, err error)

	// RecordOpen is called after each Open with the snapshot size.
	RecordOpen(bytes int64, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordSetWalkable(bool, time.Duration, error)   {}
func (NoopMetricsCollector) RecordFindPath(bool, int, time.Duration, error) {}
func (NoopMetricsCollector) RecordBatchFindPath(int, int, time.Duration)    {}
func (NoopMetricsCollector) RecordCommit(int64, time.Duration, error)       {}
func (NoopMetricsCollector) RecordOpen(int64, time.Duration, error)         {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	SetWalkableCount  atomic.Int64
	SetWalkableErrors atomic.Int64
	FindPathCount     atomic.Int64
	FindPathErrors    atomic.Int64
	FindPathNotFound  atomic.Int64
	FindPathExpanded  atomic.Int64
	FindPathNanos     atomic.Int64
	BatchCount        atomic.Int64
	BatchItems        atomic.Int64
	BatchFailed       atomic.Int64
	CommitCount       atomic.Int64
	CommitErrors      atomic.Int64
	CommitBytes       atomic.Int64
	OpenCount         atomic.Int64
	OpenErrors        atomic.Int64
}

// RecordSetWalkable implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSetWalkable(_ bool, _ time.Duration, err error) {
	b.SetWalkableCount.Add(1)
	if err != nil {
		b.SetWalkableErrors.Add(1)
	}
}

// RecordFindPath implements MetricsCollector.
func (b *BasicMetricsCollector) RecordFindPath(found bool, expanded int, duration time.Duration, err error) {
	b.FindPathCount.Add(1)
	b.FindPathNanos.Add(duration.Nanoseconds())
	b.FindPathExpanded.Add(int64(expanded))
	switch {
	case err != nil:
		b.FindPathErrors.Add(1)
	case !found:
		b.FindPathNotFound.Add(1)
	}
}

// RecordBatchFindPath implements MetricsCollector.
func (b *BasicMetricsCollector) RecordBatchFindPath(count, failed int, _ time.Duration) {
	b.BatchCount.Add(1)
	b.BatchItems.Add(int64(count))
	b.BatchFailed.Add(int64(failed))
}

// RecordCommit implements MetricsCollector.
func (b *BasicMetricsCollector) RecordCommit(bytes int64, _ time.Duration, err error) {
	b.CommitCount.Add(1)
	if err != nil {
		b.CommitErrors.Add(1)
		return
	}
	b.CommitBytes.Add(bytes)
}

// RecordOpen implements MetricsCollector.
func (b *BasicMetricsCollector) RecordOpen(_ int64, _ time.Duration, err error) {
	b.OpenCount.Add(1)
	if err != nil {
		b.OpenErrors.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		SetWalkableCount:  b.SetWalkableCount.Load(),
		SetWalkableErrors: b.SetWalkableErrors.Load(),
		FindPathCount:     b.FindPathCount.Load(),
		FindPathErrors:    b.FindPathErrors.Load(),
		FindPathNotFound:  b.FindPathNotFound.Load(),
		FindPathAvgNanos:  b.getAvgFindPathNanos(),
		FindPathExpanded:  b.FindPathExpanded.Load(),
		BatchCount:        b.BatchCount.Load(),
		BatchItems:        b.BatchItems.Load(),
		BatchFailed:       b.BatchFailed.Load(),
		CommitCount:       b.CommitCount.Load(),
		CommitErrors:      b.CommitErrors.Load(),
		CommitBytes:       b.CommitBytes.Load(),
		OpenCount:         b.OpenCount.Load(),
		OpenErrors:        b.OpenErrors.Load(),
	}
}

func (b *BasicMetricsCollector) getAvgFindPathNanos() int64 {
	count := b.FindPathCount.Load()
	if count == 0 {
		return 0
	}
	return b.FindPathNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	SetWalkableCount  int64
	SetWalkableErrors int64
	FindPathCount     int64
	FindPathErrors    int64
	FindPathNotFound  int64
	FindPathAvgNanos  int64
	FindPathExpanded  int64
	BatchCount        int64
	BatchItems        int64
	BatchFailed       int64
	CommitCount       int64
	CommitErrors      int64
	CommitBytes       int64
	OpenCount         int64
	OpenErrors        int64
}
