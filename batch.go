package quadnav

import (
	"context"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"
)

// PathRequest is one query of a batch.
type PathRequest struct {
	From, To Point
}

// PathResult is the outcome of one batch query.
type PathResult struct {
	Path Path
	Err  error
}

// BatchFindPath runs reqs concurrently against the same map state and
// returns one result per request, in request order.
//
// Per-request failures (for example an unwalkable endpoint) are reported in
// PathResult.Err. The returned error is non-nil only when ctx ends before
// the batch completes. Concurrency is bounded by the resource controller's
// search slots, or GOMAXPROCS without one.
func (n *Navigator) BatchFindPath(ctx context.Context, reqs []PathRequest) ([]PathResult, error) {
	start := time.Now()

	n.mu.RLock()
	defer n.mu.RUnlock()

	results := make([]PathResult, len(reqs))
	rc := n.opts.resourceController

	g, gctx := errgroup.WithContext(ctx)
	if rc == nil {
		g.SetLimit(runtime.GOMAXPROCS(0))
	}

	for i, req := range reqs {
		g.Go(func() error {
			if err := rc.AcquireSearch(gctx); err != nil {
				return err
			}
			defer rc.ReleaseSearch()

			path, err := n.findPath(gctx, req.From, req.To)
			if err != nil && gctx.Err() != nil {
				return gctx.Err()
			}
			results[i] = PathResult{Path: path, Err: err}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	n.opts.metricsCollector.RecordBatchFindPath(len(reqs), failed, time.Since(start))
	n.opts.logger.LogBatch(ctx, len(reqs), failed)

	return results, nil
}
