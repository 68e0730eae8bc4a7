// Package distance provides integer grid distance metrics used as path costs
// and A* heuristics.
//
// # Supported Metrics
//
//   - MetricEuclidean: straight-line distance (default heuristic)
//   - MetricManhattan: 4-connected lower bound
//   - MetricChebyshev: 8-connected lower bound with unit diagonals
//   - MetricOctile: 8-connected exact unobstructed cost with √2 diagonals
//
// # Usage
//
//	d := distance.Euclidean(0, 0, 3, 4) // 5
//	h, _ := distance.Provider(distance.MetricOctile)
package distance
