package quadnav

import (
	"errors"
	"fmt"

	"github.com/hupe1980/quadnav/astar"
	"github.com/hupe1980/quadnav/blobstore"
	"github.com/hupe1980/quadnav/persistence"
	"github.com/hupe1980/quadnav/quadtree"
)

var (
	// ErrOutOfExtent is returned when a coordinate lies outside the
	// navigator's extent.
	ErrOutOfExtent = errors.New("coordinate out of extent")

	// ErrInvalidExtent is returned for a non-positive width or height.
	ErrInvalidExtent = errors.New("invalid extent")

	// ErrInvalidCapacity is returned for a leaf capacity that is below 1 or
	// does not fit a snapshot header.
	ErrInvalidCapacity = errors.New("invalid capacity")

	// ErrInvalidOptions is returned for an unsupported search configuration.
	ErrInvalidOptions = errors.New("invalid options")

	// ErrExpansionLimit is returned when a search exceeds WithMaxExpansions.
	ErrExpansionLimit = errors.New("expansion limit exceeded")

	// ErrNotFound is returned by Open when the store holds no commit.
	ErrNotFound = errors.New("not found")

	// ErrCorrupt is returned when a snapshot fails validation.
	ErrCorrupt = errors.New("corrupt snapshot")
)

// ErrUnwalkableEndpoint indicates that the start or goal of a path query is
// not walkable.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrUnwalkableEndpoint struct {
	Endpoint string // "start" or "goal"
	Point    Point
	cause    error
}

func (e *ErrUnwalkableEndpoint) Error() string {
	return fmt.Sprintf("%s %v is not walkable", e.Endpoint, e.Point)
}

func (e *ErrUnwalkableEndpoint) Unwrap() error { return e.cause }

func translateError(err error) error {
	if err == nil {
		return nil
	}

	// Extent and argument normalization.
	if errors.Is(err, quadtree.ErrOutOfExtent) {
		return fmt.Errorf("%w: %w", ErrOutOfExtent, err)
	}
	if errors.Is(err, quadtree.ErrInvalidExtent) {
		return fmt.Errorf("%w: %w", ErrInvalidExtent, err)
	}
	if errors.Is(err, quadtree.ErrInvalidCapacity) {
		return fmt.Errorf("%w: %w", ErrInvalidCapacity, err)
	}
	if errors.Is(err, astar.ErrInvalidMovement) || errors.Is(err, astar.ErrInadmissibleHeuristic) {
		return fmt.Errorf("%w: %w", ErrInvalidOptions, err)
	}

	// Search outcomes.
	var ue *astar.ErrUnwalkableEndpoint
	if errors.As(err, &ue) {
		return &ErrUnwalkableEndpoint{Endpoint: ue.Endpoint, Point: ue.Cell, cause: err}
	}
	if errors.Is(err, astar.ErrExpansionLimit) {
		return fmt.Errorf("%w: %w", ErrExpansionLimit, err)
	}

	// Persistence.
	if errors.Is(err, blobstore.ErrNotFound) {
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	}
	if errors.Is(err, persistence.ErrCorrupt) ||
		errors.Is(err, persistence.ErrInvalidMagic) ||
		errors.Is(err, persistence.ErrInvalidVersion) ||
		errors.Is(err, persistence.ErrUnknownCompression) {
		return fmt.Errorf("%w: %w", ErrCorrupt, err)
	}

	return err
}
