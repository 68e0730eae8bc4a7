// Package testutil provides testing utilities for quadnav.
//
// This package is intended for use in tests and benchmarks only.
// It provides a seeded RNG, dense random walkability fields and an exact
// shortest-path oracle.
//
// # Random Fields
//
//	rng := testutil.NewRNG(seed)
//	field := rng.RandomField(32, 32, 0.7)
//
// # Exact Search (Ground Truth)
//
//	cost, ok := testutil.ShortestCost(field, 0, 0, 31, 31, true, true)
package testutil
