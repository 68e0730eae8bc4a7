package quadnav

import (
	"log/slog"

	"github.com/hupe1980/quadnav/astar"
	"github.com/hupe1980/quadnav/codec"
	"github.com/hupe1980/quadnav/distance"
	"github.com/hupe1980/quadnav/persistence"
	"github.com/hupe1980/quadnav/quadtree"
	"github.com/hupe1980/quadnav/resource"
)

type options struct {
	originX, originY   int
	capacity           int
	search             astar.Options
	codec              codec.Codec
	compression        persistence.Compression
	metricsCollector   MetricsCollector
	logger             *Logger
	resourceController *resource.Controller
}

// Option configures Navigator constructor/open behavior.
type Option func(*options)

// WithOrigin places the top-left corner of the extent at (x, y).
// Open ignores it; the origin comes from the snapshot.
func WithOrigin(x, y int) Option {
	return func(o *options) {
		o.originX = x
		o.originY = y
	}
}

// WithCapacity sets the number of cells a quadtree leaf holds before it
// splits. Open ignores it; the capacity comes from the snapshot.
func WithCapacity(capacity int) Option {
	return func(o *options) {
		o.capacity = capacity
	}
}

// WithMovement selects 4- or 8-directional movement.
func WithMovement(m astar.Movement) Option {
	return func(o *options) {
		o.search.Movement = m
	}
}

// WithHeuristic selects the A* heuristic. Manhattan requires
// FourDirectional movement.
func WithHeuristic(m distance.Metric) Option {
	return func(o *options) {
		o.search.Heuristic = m
	}
}

// WithCornerCutting controls whether a diagonal step may pass between two
// blocked orthogonal cells. Enabled by default.
func WithCornerCutting(enabled bool) Option {
	return func(o *options) {
		o.search.CornerCutting = enabled
	}
}

// WithMaxExpansions caps the nodes a single search may expand; 0 means
// unbounded.
func WithMaxExpansions(n int) Option {
	return func(o *options) {
		o.search.MaxExpansions = n
	}
}

// WithCodec configures the codec used for snapshot manifests.
//
// If nil is passed, codec.Default is used.
func WithCodec(c codec.Codec) Option {
	return func(o *options) {
		if c == nil {
			c = codec.Default
		}
		o.codec = c
	}
}

// WithCompression configures snapshot body compression.
func WithCompression(c persistence.Compression) Option {
	return func(o *options) {
		o.compression = c
	}
}

// WithMetricsCollector configures a metrics collector for monitoring operations.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &quadnav.BasicMetricsCollector{}
//	nav, _ := quadnav.New(64, 64, quadnav.WithMetricsCollector(metrics))
//	// ... use nav ...
//	stats := metrics.GetStats()
//	fmt.Printf("Searches: %d, Avg latency: %dns\n", stats.FindPathCount, stats.FindPathAvgNanos)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := quadnav.NewJSONLogger(slog.LevelInfo)
//	nav, _ := quadnav.New(64, 64, quadnav.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithResourceController bounds batch search concurrency and snapshot IO.
func WithResourceController(rc *resource.Controller) Option {
	return func(o *options) {
		o.resourceController = rc
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		capacity:         quadtree.DefaultCapacity,
		search:           astar.DefaultOptions,
		codec:            codec.Default,
		compression:      persistence.CompressionLZ4,
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
