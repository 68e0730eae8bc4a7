package astar

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/hupe1980/quadnav/distance"
	"github.com/hupe1980/quadnav/internal/search"
	"github.com/hupe1980/quadnav/internal/visited"
)

// ctxCheckInterval is the number of expansions between context checks.
const ctxCheckInterval = 256

var (
	// ErrNilGrid is returned when a Search is created without a grid.
	ErrNilGrid = errors.New("astar: grid must not be nil")

	// ErrInvalidMovement is returned for a movement mode other than
	// FourDirectional or EightDirectional.
	ErrInvalidMovement = errors.New("astar: invalid movement mode")

	// ErrInadmissibleHeuristic is returned when the heuristic may
	// overestimate the remaining cost for the chosen movement mode.
	ErrInadmissibleHeuristic = errors.New("astar: heuristic is not admissible for movement mode")

	// ErrExpansionLimit is returned when a search expands more nodes than
	// Options.MaxExpansions allows.
	ErrExpansionLimit = errors.New("astar: expansion limit exceeded")
)

// ErrUnwalkableEndpoint is returned when the start or goal cell is not
// walkable.
type ErrUnwalkableEndpoint struct {
	Endpoint string // "start" or "goal"
	Cell     Cell
}

func (e *ErrUnwalkableEndpoint) Error() string {
	return fmt.Sprintf("astar: %s cell %v is not walkable", e.Endpoint, e.Cell)
}

// Grid reports which cells can be entered. Searches address cells as int32
// pairs, so only cells whose coordinates fit in int32 may be walkable;
// quadtree.Index enforces this on construction.
type Grid interface {
	Walkable(x, y int) bool
}

// GridFunc adapts a function to the Grid interface.
type GridFunc func(x, y int) bool

// Walkable calls f(x, y).
func (f GridFunc) Walkable(x, y int) bool { return f(x, y) }

// Cell is a grid coordinate.
type Cell struct {
	X, Y int
}

func (c Cell) String() string { return fmt.Sprintf("(%d, %d)", c.X, c.Y) }

// Movement is the neighbourhood used when expanding a cell. Its value is the
// number of neighbours.
type Movement int

const (
	FourDirectional  Movement = 4
	EightDirectional Movement = 8
)

func (m Movement) String() string {
	switch m {
	case FourDirectional:
		return "FourDirectional"
	case EightDirectional:
		return "EightDirectional"
	default:
		return fmt.Sprintf("Unknown(%d)", int(m))
	}
}

type offset struct {
	dx, dy int
	cost   float64
}

// neighbours lists the cardinal moves followed by the diagonal moves. The
// first Movement entries are expanded.
var neighbours = func() []offset {
	dirs := [][2]int{
		{-1, 0}, {1, 0}, {0, -1}, {0, 1}, // left, right, up, down
		{-1, -1}, {1, -1}, {-1, 1}, {1, 1}, // left-up, right-up, left-down, right-down
	}
	out := make([]offset, len(dirs))
	for i, d := range dirs {
		out[i] = offset{dx: d[0], dy: d[1], cost: distance.Euclidean(0, 0, d[0], d[1])}
	}
	return out
}()

// Options configures a Search.
type Options struct {
	// Movement selects 4- or 8-directional expansion.
	Movement Movement

	// Heuristic estimates the remaining cost to the goal. It must never
	// overestimate: Manhattan is only accepted with FourDirectional.
	Heuristic distance.Metric

	// CornerCutting allows a diagonal step between two blocked orthogonal
	// neighbours. When false a diagonal step requires both orthogonal cells
	// to be walkable.
	CornerCutting bool

	// MaxExpansions caps the number of expanded nodes per search; 0 means
	// unbounded.
	MaxExpansions int
}

// DefaultOptions contains the default configuration for a Search.
var DefaultOptions = Options{
	Movement:      EightDirectional,
	Heuristic:     distance.MetricEuclidean,
	CornerCutting: true,
	MaxExpansions: 0,
}

// Result is the outcome of a search.
type Result struct {
	// Cells is the path from start to goal, both inclusive. It is empty if
	// the goal is unreachable.
	Cells []Cell

	// Cost is the sum of the Euclidean step costs along Cells.
	Cost float64

	// Expanded is the number of nodes taken off the frontier.
	Expanded int
}

// Found reports whether a path was found.
func (r Result) Found() bool { return len(r.Cells) > 0 }

// Search runs A* queries against a Grid.
//
// A Search holds no per-query state, so concurrent calls are safe as long as
// the grid is not mutated while they run.
type Search struct {
	grid      Grid
	opts      Options
	heuristic distance.Func
	pool      *search.Pool
}

// New creates a Search over grid.
func New(grid Grid, optFns ...func(o *Options)) (*Search, error) {
	opts := DefaultOptions

	for _, fn := range optFns {
		fn(&opts)
	}

	if grid == nil {
		return nil, ErrNilGrid
	}
	if opts.Movement != FourDirectional && opts.Movement != EightDirectional {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMovement, opts.Movement)
	}
	if opts.Heuristic == distance.MetricManhattan && opts.Movement != FourDirectional {
		return nil, fmt.Errorf("%w: %v with %v", ErrInadmissibleHeuristic, opts.Heuristic, opts.Movement)
	}
	h, err := distance.Provider(opts.Heuristic)
	if err != nil {
		return nil, err
	}
	if opts.MaxExpansions < 0 {
		opts.MaxExpansions = 0
	}

	return &Search{
		grid:      grid,
		opts:      opts,
		heuristic: h,
		pool:      search.NewPool(),
	}, nil
}

// Options returns the configuration of the search.
func (s *Search) Options() Options { return s.opts }

// FindPath returns the cheapest path from (startX, startY) to (goalX, goalY),
// both endpoints included. An unreachable goal yields an empty path and a
// nil error.
func (s *Search) FindPath(ctx context.Context, startX, startY, goalX, goalY int) ([]Cell, error) {
	res, err := s.Find(ctx, Cell{X: startX, Y: startY}, Cell{X: goalX, Y: goalY})
	if err != nil {
		return nil, err
	}
	return res.Cells, nil
}

// Find is like FindPath but also reports the path cost and search effort.
func (s *Search) Find(ctx context.Context, start, goal Cell) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	if !s.grid.Walkable(start.X, start.Y) {
		return Result{}, &ErrUnwalkableEndpoint{Endpoint: "start", Cell: start}
	}
	if !s.grid.Walkable(goal.X, goal.Y) {
		return Result{}, &ErrUnwalkableEndpoint{Endpoint: "goal", Cell: goal}
	}

	sc := s.pool.Get()
	defer s.pool.Put(sc)

	root := sc.Add(search.Node{
		X:      start.X,
		Y:      start.Y,
		Parent: search.NoParent,
		H:      s.heuristic(start.X, start.Y, goal.X, goal.Y),
	})
	sc.Open.PushItem(root, sc.Nodes[root].F())

	moves := neighbours[:s.opts.Movement]

	for {
		item, ok := sc.Open.PopItem()
		if !ok {
			return Result{Expanded: sc.Expanded}, nil
		}
		cur := sc.Nodes[item.Node]

		if cur.X == goal.X && cur.Y == goal.Y {
			return Result{
				Cells:    reconstruct(sc.Nodes, item.Node),
				Cost:     cur.G,
				Expanded: sc.Expanded,
			}, nil
		}

		sc.Closed.Visit(visited.Key(cur.X, cur.Y))
		sc.Expanded++

		if s.opts.MaxExpansions > 0 && sc.Expanded > s.opts.MaxExpansions {
			return Result{Expanded: sc.Expanded}, fmt.Errorf("%w: %d", ErrExpansionLimit, s.opts.MaxExpansions)
		}
		if sc.Expanded%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return Result{Expanded: sc.Expanded}, err
			}
		}

		for _, m := range moves {
			nx, ny := cur.X+m.dx, cur.Y+m.dy
			if !s.grid.Walkable(nx, ny) || sc.Closed.Visited(visited.Key(nx, ny)) {
				continue
			}
			if m.dx != 0 && m.dy != 0 && !s.opts.CornerCutting &&
				(!s.grid.Walkable(cur.X+m.dx, cur.Y) || !s.grid.Walkable(cur.X, cur.Y+m.dy)) {
				continue
			}

			g := cur.G + m.cost

			if slot, seen := sc.Lookup(nx, ny); seen {
				n := &sc.Nodes[slot]
				if g < n.G {
					n.G = g
					n.Parent = int32(item.Node)
					sc.Open.Update(slot, n.F())
				}
				continue
			}

			slot := sc.Add(search.Node{
				X:      nx,
				Y:      ny,
				Parent: int32(item.Node),
				G:      g,
				H:      s.heuristic(nx, ny, goal.X, goal.Y),
			})
			sc.Open.PushItem(slot, sc.Nodes[slot].F())
		}
	}
}

// reconstruct follows parent links from slot back to the start and returns
// the path in start-to-goal order.
func reconstruct(nodes []search.Node, slot uint32) []Cell {
	var path []Cell
	for i := int32(slot); i != search.NoParent; i = nodes[i].Parent {
		path = append(path, Cell{X: nodes[i].X, Y: nodes[i].Y})
	}
	slices.Reverse(path)
	return path
}
