// Package pathsearch implements the bidirectional best-first search that
// finds a least-temporal-error path between two frames in a
// core.FrameRegistry at a given time.
//
// The algorithm grows two frontiers — one rooted at source, one at target —
// expanding along parent edges (the only direction a Frame exposes: a
// frame's neighbours are its parents). A node's cost is the maximum
// TimeToNearest observed along any edge used to reach it (a minimax
// criterion: the returned path minimizes its worst single-edge interpolation
// error, not the sum of errors). The two frontiers are unified into one
// min-priority-queue; popping a node whose state has contributions from
// both frontiers means the frontiers have met there.
//
// Complexity: O((V + E) log V) in the size of the ancestor closure actually
// explored, following the teacher corpus's dijkstra runner/heap structure
// generalized to two simultaneous frontiers.
package pathsearch
