package quadnav

import (
	"bytes"
	"context"
	"log/slog"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/quadnav/astar"
	"github.com/hupe1980/quadnav/distance"
	"github.com/hupe1980/quadnav/quadtree"
	"github.com/hupe1980/quadnav/testutil"
)

// navigator builds a Navigator from a row-major picture where '.' marks a
// walkable cell.
func navigator(t *testing.T, rows []string, optFns ...Option) *Navigator {
	t.Helper()
	nav, err := New(len(rows[0]), len(rows), optFns...)
	require.NoError(t, err)
	for y, row := range rows {
		for x, c := range row {
			if c == '.' {
				require.NoError(t, nav.SetWalkable(x, y, true))
			}
		}
	}
	return nav
}

func points(path Path) []Point { return path.Points }

func TestNew(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		nav, err := New(8, 4)
		require.NoError(t, err)
		assert.Equal(t, quadtree.Rect{X: 0, Y: 0, Width: 8, Height: 4}, nav.Bounds())
		assert.Equal(t, 0, nav.Len())
		assert.Equal(t, astar.EightDirectional, nav.SearchOptions().Movement)
		assert.True(t, nav.SearchOptions().CornerCutting)
	})

	t.Run("Origin", func(t *testing.T) {
		nav, err := New(8, 4, WithOrigin(-4, -2))
		require.NoError(t, err)
		assert.Equal(t, quadtree.Rect{X: -4, Y: -2, Width: 8, Height: 4}, nav.Bounds())
		require.NoError(t, nav.SetWalkable(-4, -2, true))
		require.ErrorIs(t, nav.SetWalkable(4, 0, true), ErrOutOfExtent)
	})

	tests := []struct {
		name   string
		width  int
		height int
		opts   []Option
		want   error
	}{
		{"ZeroWidth", 0, 4, nil, ErrInvalidExtent},
		{"NegativeHeight", 4, -1, nil, ErrInvalidExtent},
		{"HugeExtent", math.MaxInt32, 4, []Option{WithOrigin(1, 0)}, ErrInvalidExtent},
		{"ZeroCapacity", 4, 4, []Option{WithCapacity(0)}, ErrInvalidCapacity},
		{"CapacityTooLarge", 4, 4, []Option{WithCapacity(1 << 16)}, ErrInvalidCapacity},
		{"InvalidMovement", 4, 4, []Option{WithMovement(astar.Movement(3))}, ErrInvalidOptions},
		{"InadmissibleHeuristic", 4, 4, []Option{WithHeuristic(distance.MetricManhattan)}, ErrInvalidOptions},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.width, tt.height, tt.opts...)
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestSetWalkable(t *testing.T) {
	nav, err := New(8, 8)
	require.NoError(t, err)

	require.NoError(t, nav.SetWalkable(3, 4, true))
	require.NoError(t, nav.SetWalkable(3, 4, true))
	assert.Equal(t, 1, nav.Len())

	ok, err := nav.IsWalkable(3, 4)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, nav.Walkable(3, 4))

	require.NoError(t, nav.SetWalkable(3, 4, false))
	require.NoError(t, nav.SetWalkable(3, 4, false))
	assert.Equal(t, 0, nav.Len())

	ok, err = nav.IsWalkable(3, 4)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = nav.IsWalkable(8, 0)
	require.ErrorIs(t, err, ErrOutOfExtent)
	require.ErrorIs(t, err, quadtree.ErrOutOfExtent)
	assert.False(t, nav.Walkable(8, 0))
	require.ErrorIs(t, nav.SetWalkable(-1, 0, false), ErrOutOfExtent)
}

func TestScenarioSplit(t *testing.T) {
	nav, err := New(4, 4)
	require.NoError(t, err)

	for _, p := range []Point{{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 0, Y: 2}, {X: 3, Y: 3}} {
		require.NoError(t, nav.SetWalkable(p.X, p.Y, true))
	}
	assert.Equal(t, 1, nav.Stats().Nodes)

	require.NoError(t, nav.SetWalkable(0, 3, true))

	var nodes []NodeInfo
	nav.Enumerate(func(n NodeInfo) bool {
		nodes = append(nodes, n)
		return true
	})
	require.Len(t, nodes, 5)
	assert.Equal(t, quadtree.Internal, nodes[0].Kind)

	cells := func(n NodeInfo) []Point {
		out := []Point{}
		for _, p := range n.Points {
			out = append(out, Point{X: p.X, Y: p.Y})
		}
		return out
	}
	assert.Equal(t, []Point{{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 0, Y: 2}}, cells(nodes[1]))
	assert.Empty(t, cells(nodes[2]))
	assert.Equal(t, []Point{{X: 0, Y: 3}}, cells(nodes[3]))
	assert.Equal(t, []Point{{X: 3, Y: 3}}, cells(nodes[4]))
	for q, n := range nodes[1:] {
		assert.Equal(t, q, n.Quadrant)
		assert.Equal(t, 0, n.Parent)
		assert.Equal(t, 2.0, n.Rect.Width)
	}

	stats := nav.Stats()
	assert.Equal(t, 5, stats.Points)
	assert.Equal(t, 4, stats.Leaves)
	assert.Equal(t, 1, stats.EmptyLeaves)
	assert.Equal(t, 3, stats.MaxLeafLoad)
	assert.Len(t, nav.Cells(), 5)
}

func TestScenarioHole(t *testing.T) {
	nav := navigator(t, []string{
		"...",
		". .",
		"...",
	})

	path, err := nav.FindPath(context.Background(), Point{X: 0, Y: 0}, Point{X: 2, Y: 2})
	require.NoError(t, err)
	require.True(t, path.Found())
	assert.Len(t, path.Points, 4)
	assert.NotContains(t, path.Points, Point{X: 1, Y: 1})
	assert.Equal(t, Point{X: 0, Y: 0}, path.Points[0])
	assert.Equal(t, Point{X: 2, Y: 2}, path.Points[3])
	assert.InDelta(t, 2+math.Sqrt2, path.Cost, 1e-9)
}

func TestScenarioStartIsGoal(t *testing.T) {
	nav := navigator(t, []string{"..", ".."})

	path, err := nav.FindPath(context.Background(), Point{X: 1, Y: 1}, Point{X: 1, Y: 1})
	require.NoError(t, err)
	assert.Equal(t, []Point{{X: 1, Y: 1}}, points(path))
	assert.Zero(t, path.Cost)
}

func TestScenarioBrokenRing(t *testing.T) {
	ctx := context.Background()
	from, to := Point{X: 0, Y: 0}, Point{X: 2, Y: 0}

	// One break: the search goes the long way round.
	nav := navigator(t, []string{
		". .",
		". .",
		"...",
	}, WithMovement(astar.FourDirectional))
	path, err := nav.FindPath(ctx, from, to)
	require.NoError(t, err)
	assert.Len(t, path.Points, 7)
	assert.InDelta(t, 6.0, path.Cost, 1e-9)

	// Broken on both sides: no path.
	require.NoError(t, nav.SetWalkable(1, 2, false))
	path, err = nav.FindPath(ctx, from, to)
	require.NoError(t, err)
	assert.False(t, path.Found())
	assert.Empty(t, path.Points)
}

func TestFindPath_UnwalkableEndpoint(t *testing.T) {
	nav := navigator(t, []string{". .", "..."})
	ctx := context.Background()

	_, err := nav.FindPath(ctx, Point{X: 1, Y: 0}, Point{X: 2, Y: 0})
	var ue *ErrUnwalkableEndpoint
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, "start", ue.Endpoint)
	assert.Equal(t, Point{X: 1, Y: 0}, ue.Point)
	assert.Equal(t, "start (1, 0) is not walkable", ue.Error())

	var inner *astar.ErrUnwalkableEndpoint
	require.ErrorAs(t, err, &inner)

	_, err = nav.FindPath(ctx, Point{X: 0, Y: 0}, Point{X: 7, Y: 7})
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, "goal", ue.Endpoint)
}

func TestFindPath_Options(t *testing.T) {
	rows := []string{
		". ",
		" .",
	}
	ctx := context.Background()

	path, err := navigator(t, rows).FindPath(ctx, Point{X: 0, Y: 0}, Point{X: 1, Y: 1})
	require.NoError(t, err)
	assert.Len(t, path.Points, 2)

	path, err = navigator(t, rows, WithCornerCutting(false)).FindPath(ctx, Point{X: 0, Y: 0}, Point{X: 1, Y: 1})
	require.NoError(t, err)
	assert.False(t, path.Found())

	open := navigator(t, []string{
		"..........",
		"..........",
		"..........",
	}, WithMaxExpansions(2))
	_, err = open.FindPath(ctx, Point{X: 0, Y: 0}, Point{X: 9, Y: 2})
	require.ErrorIs(t, err, ErrExpansionLimit)
	require.ErrorIs(t, err, astar.ErrExpansionLimit)

	canceled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = open.FindPath(canceled, Point{X: 0, Y: 0}, Point{X: 9, Y: 2})
	require.ErrorIs(t, err, context.Canceled)
}

func TestFindPath_MatchesGroundTruth(t *testing.T) {
	rng := testutil.NewRNG(7)
	ctx := context.Background()

	for _, movement := range []astar.Movement{astar.FourDirectional, astar.EightDirectional} {
		t.Run(movement.String(), func(t *testing.T) {
			field := rng.RandomField(24, 16, 0.7)
			nav, err := New(24, 16, WithMovement(movement))
			require.NoError(t, err)
			for _, c := range field.Cells() {
				require.NoError(t, nav.SetWalkable(c[0], c[1], true))
			}

			cells := field.Cells()
			for range 30 {
				from := cells[rng.Intn(len(cells))]
				to := cells[rng.Intn(len(cells))]

				path, err := nav.FindPath(ctx, Point{X: from[0], Y: from[1]}, Point{X: to[0], Y: to[1]})
				require.NoError(t, err)

				want, ok := testutil.ShortestCost(field, from[0], from[1], to[0], to[1], movement == astar.EightDirectional, true)
				require.Equal(t, ok, path.Found(), "%v -> %v", from, to)
				if ok {
					assert.InDelta(t, want, path.Cost, 1e-9, "%v -> %v", from, to)
				}
			}
		})
	}
}

func TestMetricsAndLogging(t *testing.T) {
	metrics := &BasicMetricsCollector{}
	var buf bytes.Buffer
	logger := NewLogger(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	nav := navigator(t, []string{"...", "..."}, WithMetricsCollector(metrics), WithLogger(logger))
	require.ErrorIs(t, nav.SetWalkable(5, 5, true), ErrOutOfExtent)

	_, err := nav.FindPath(context.Background(), Point{X: 0, Y: 0}, Point{X: 2, Y: 1})
	require.NoError(t, err)
	_, err = nav.FindPath(context.Background(), Point{X: 0, Y: 0}, Point{X: 4, Y: 4})
	require.Error(t, err)

	stats := metrics.GetStats()
	assert.Equal(t, int64(7), stats.SetWalkableCount)
	assert.Equal(t, int64(1), stats.SetWalkableErrors)
	assert.Equal(t, int64(2), stats.FindPathCount)
	assert.Equal(t, int64(1), stats.FindPathErrors)
	assert.Positive(t, stats.FindPathExpanded)

	out := buf.String()
	assert.Contains(t, out, `"msg":"set walkable completed"`)
	assert.Contains(t, out, `"msg":"set walkable failed"`)
	assert.Contains(t, out, `"msg":"find path completed"`)
	assert.Contains(t, out, `"msg":"find path failed"`)
	assert.Equal(t, 9, strings.Count(out, "\n"))
}

func TestNilOptions(t *testing.T) {
	nav, err := New(2, 2, nil, WithLogger(nil), WithMetricsCollector(nil), WithCodec(nil))
	require.NoError(t, err)
	require.NoError(t, nav.SetWalkable(0, 0, true))
}
