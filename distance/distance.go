package distance

import (
	"fmt"
	"math"
)

// Euclidean returns the straight-line distance between two cells.
func Euclidean(ax, ay, bx, by int) float64 {
	dx := float64(ax - bx)
	dy := float64(ay - by)
	return math.Sqrt(dx*dx + dy*dy)
}

// Manhattan returns the sum of absolute axis differences.
func Manhattan(ax, ay, bx, by int) float64 {
	return float64(abs(ax-bx) + abs(ay-by))
}

// Chebyshev returns the largest absolute axis difference.
func Chebyshev(ax, ay, bx, by int) float64 {
	return float64(max(abs(ax-bx), abs(ay-by)))
}

// Octile returns the exact cost of an unobstructed 8-directional walk with
// cardinal cost 1 and diagonal cost √2.
func Octile(ax, ay, bx, by int) float64 {
	dx, dy := abs(ax-bx), abs(ay-by)
	lo, hi := min(dx, dy), max(dx, dy)
	return float64(hi-lo) + math.Sqrt2*float64(lo)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Metric selects a grid distance function.
type Metric int

const (
	MetricEuclidean Metric = iota
	MetricManhattan
	MetricChebyshev
	MetricOctile
)

func (m Metric) String() string {
	switch m {
	case MetricEuclidean:
		return "Euclidean"
	case MetricManhattan:
		return "Manhattan"
	case MetricChebyshev:
		return "Chebyshev"
	case MetricOctile:
		return "Octile"
	default:
		return fmt.Sprintf("Unknown(%d)", m)
	}
}

// Func is a function type for distance calculation between two cells.
type Func func(ax, ay, bx, by int) float64

// Provider returns the distance function for the given metric.
func Provider(m Metric) (Func, error) {
	switch m {
	case MetricEuclidean:
		return Euclidean, nil
	case MetricManhattan:
		return Manhattan, nil
	case MetricChebyshev:
		return Chebyshev, nil
	case MetricOctile:
		return Octile, nil
	default:
		return nil, fmt.Errorf("unsupported metric: %v", m)
	}
}
