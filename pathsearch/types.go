package pathsearch

import (
	"errors"

	"github.com/katalvlaran/tfcache/core"
)

// ErrNotConnected indicates no path exists between source and target in the
// frame graph, or the graph was exhausted before the frontiers met.
var ErrNotConnected = errors.New("pathsearch: no path between source and target frames")

// ErrSameFrame indicates Search was called with identical source and target;
// callers should special-case this rather than pay for a search.
var ErrSameFrame = errors.New("pathsearch: source and target frame are identical")

// Option configures a Search call.
type Option func(*options)

type options struct {
	maxCost int64
}

// WithMaxCost bounds the minimax edge cost (nanoseconds) Search will accept
// before giving up and returning ErrNotConnected, even if the frame graph
// itself is connected. Without this option the cost is unbounded;
// WithMaxCost(0) accepts only edges with a sample exactly at t.
func WithMaxCost(ns int64) Option {
	return func(o *options) { o.maxCost = ns }
}

// Result is a reconstructed path between two frames, split at the meeting
// frame into two legs ready for composition by the caller.
type Result struct {
	// Meet is the frame at which the two frontiers met.
	Meet core.FrameHandle

	// Cost is the minimax edge cost (nanoseconds) of the returned path: the
	// largest TimeToNearest among all edges used.
	Cost int64

	// Inverse holds the edge samples from source up to the meeting frame,
	// ordered source-nearest first.
	Inverse []core.TransformStorage

	// Forward holds the edge samples from the meeting frame down to target,
	// ordered meeting-frame-nearest first.
	Forward []core.TransformStorage
}
