package resource

import (
	"context"
	"sync/atomic"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

// Config holds resource limits.
type Config struct {
	// MaxConcurrentSearches bounds the number of path searches a batch runs
	// at once. If 0, defaults to 1.
	MaxConcurrentSearches int64

	// IOLimitBytesPerSec is the maximum snapshot IO throughput.
	// If 0, unlimited.
	IOLimitBytesPerSec int64
}

// Controller bounds search concurrency and snapshot IO.
// A nil *Controller imposes no limits.
type Controller struct {
	cfg Config

	searchSem *semaphore.Weighted
	active    atomic.Int64

	ioLimiter *rate.Limiter
	ioBytes   atomic.Int64
}

// NewController creates a new resource controller.
func NewController(cfg Config) *Controller {
	if cfg.MaxConcurrentSearches <= 0 {
		cfg.MaxConcurrentSearches = 1
	}

	c := &Controller{
		cfg:       cfg,
		searchSem: semaphore.NewWeighted(cfg.MaxConcurrentSearches),
	}

	if cfg.IOLimitBytesPerSec > 0 {
		c.ioLimiter = rate.NewLimiter(rate.Limit(cfg.IOLimitBytesPerSec), int(cfg.IOLimitBytesPerSec))
	}

	return c
}

// Config returns the effective configuration.
func (c *Controller) Config() Config {
	if c == nil {
		return Config{}
	}
	return c.cfg
}

// AcquireSearch reserves a search slot.
// Blocks until a slot is free or ctx is canceled.
func (c *Controller) AcquireSearch(ctx context.Context) error {
	if c == nil {
		return ctx.Err()
	}
	if err := c.searchSem.Acquire(ctx, 1); err != nil {
		return err
	}
	c.active.Add(1)
	return nil
}

// TryAcquireSearch reserves a search slot without blocking.
func (c *Controller) TryAcquireSearch() bool {
	if c == nil {
		return true
	}
	if !c.searchSem.TryAcquire(1) {
		return false
	}
	c.active.Add(1)
	return true
}

// ReleaseSearch releases a search slot.
func (c *Controller) ReleaseSearch() {
	if c == nil {
		return
	}
	c.active.Add(-1)
	c.searchSem.Release(1)
}

// ActiveSearches returns the number of held search slots.
func (c *Controller) ActiveSearches() int64 {
	if c == nil {
		return 0
	}
	return c.active.Load()
}

// AcquireIO waits until the IO limit allows the specified number of bytes.
// Requests larger than one second of budget are split into burst-sized waits.
func (c *Controller) AcquireIO(ctx context.Context, bytes int) error {
	if c == nil || bytes <= 0 {
		return nil
	}
	c.ioBytes.Add(int64(bytes))
	if c.ioLimiter == nil {
		return nil
	}

	burst := c.ioLimiter.Burst()
	for bytes > 0 {
		n := min(bytes, burst)
		if err := c.ioLimiter.WaitN(ctx, n); err != nil {
			return err
		}
		bytes -= n
	}
	return nil
}

// IOBytes returns the total number of bytes passed through AcquireIO.
func (c *Controller) IOBytes() int64 {
	if c == nil {
		return 0
	}
	return c.ioBytes.Load()
}
