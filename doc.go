// Package quadnav provides sparse walkability maps with A* path queries for
// tile-based games.
//
// Walkable cells live in an adaptive quadtree (package quadtree) that only
// subdivides where cells cluster, so huge mostly-blocked worlds cost memory
// proportional to the walkable area. Path queries run A* (package astar)
// directly against the quadtree.
//
// # Quick Start
//
//	nav, _ := quadnav.New(64, 64)
//	nav.SetWalkable(3, 4, true)   // a tile was unlocked
//	nav.SetWalkable(3, 5, true)
//	path, _ := nav.FindPath(ctx, quadnav.Point{X: 3, Y: 4}, quadnav.Point{X: 3, Y: 5})
//	for _, p := range path.Points {
//	    fmt.Println(p)
//	}
//
// An unreachable goal is not an error: FindPath returns an empty Path. A
// start or goal cell that is not walkable returns *ErrUnwalkableEndpoint.
//
// # Movement
//
// Movement is 8-directional by default, with diagonal steps costing √2 and
// allowed to slip between two blocked orthogonal cells. Use
// WithMovement(astar.FourDirectional) and WithCornerCutting(false) to
// restrict it.
//
// # Concurrency
//
// A Navigator is safe for concurrent use. Mutations are exclusive; path
// queries run in parallel. BatchFindPath fans a slice of queries out over
// goroutines, bounded by a resource.Controller when one is configured.
//
// # Persistence
//
// WriteTo and ReadFrom stream a compact binary snapshot. Commit and Open
// store snapshots in any blobstore.BlobStore (local disk, memory, MinIO,
// S3) behind a manifest and a CURRENT pointer:
//
//	store := blobstore.NewLocalStore("./farm")
//	nav.Commit(ctx, store)
//	nav, _ = quadnav.Open(ctx, store)
//
// # Observability
//
// WithLogger accepts a slog-based Logger; WithMetricsCollector accepts any
// MetricsCollector, such as BasicMetricsCollector or prommetrics.Collector.
package quadnav
