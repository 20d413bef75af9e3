// Package tfcache is a time-indexed coordinate-transform cache with
// on-demand backfill from a document store and bidirectional best-first
// path search across a directed transform graph.
//
// Robotics systems continuously publish rigid-body transforms between named
// reference frames. tfcache answers "what is the pose of frame S expressed
// in frame T at time t" by locating a path through the frame graph,
// interpolating each edge's transform at t, and composing the results.
//
// Subpackages:
//
//	core/       — TransformStorage, TimeCache, Frame, FrameRegistry
//	pathsearch/ — bidirectional best-first search over a FrameRegistry
//	backfill/   — on-demand loading of a FrameRegistry from a document store
//
// The root package exposes the public façade, Core, with lookup_transform,
// transform_point, and transform_pose per the wire contract.
package tfcache
