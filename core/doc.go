// Package core defines the central data model of tfcache: TransformStorage
// samples, the per-edge TimeCache that holds them, the Frame that owns a
// TimeCache per parent, and the FrameRegistry that owns every Frame.
//
// Ownership runs one way: FrameRegistry owns Frames, a Frame owns its
// TimeCaches, a TimeCache owns its TransformStorage samples. Frames never
// hold a pointer back to the registry or to each other; all cross-references
// go through a FrameHandle, a stable integer index into the registry's arena.
// This removes the parent/child reference cycle a pointer-based design would
// otherwise create and keeps Frame lifetime independent of any one caller.
//
// All mutating operations are guarded by narrow sync.RWMutex locks: one on
// the registry (new-frame insertion), one per Frame (new-parent-edge
// insertion), one per TimeCache (sample insert/evict). Reads take the
// matching RLock. No operation in this package blocks on I/O.
package core
