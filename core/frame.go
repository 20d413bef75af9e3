package core

import "sync"

// DefaultMaxStorageNS is the retention window (Δ) a Frame uses for a newly
// created TimeCache when none is specified.
const DefaultMaxStorageNS int64 = 10_000_000_000 // 10s

// Frame is a named node in the transform graph. A Frame may have data from
// multiple parents over its logged history (spec.md §9's "multi-parent
// graph" note) — it is not assumed to be a tree.
//
// The parent map is guarded by mu; each TimeCache guards its own samples
// independently, so a lookup racing an insert on a *different* parent edge
// never contends.
type Frame struct {
	Handle        FrameHandle
	ID            string
	mu            sync.RWMutex
	caches        map[FrameHandle]*TimeCache
	maxStorageNS  int64
}

func newFrame(handle FrameHandle, id string, maxStorageNS int64) *Frame {
	return &Frame{
		Handle:       handle,
		ID:           id,
		caches:       make(map[FrameHandle]*TimeCache),
		maxStorageNS: maxStorageNS,
	}
}

// GetOrCreateCache returns the TimeCache for data received from parent,
// lazily creating one with the Frame's configured Δ on first reference.
func (f *Frame) GetOrCreateCache(parent FrameHandle) *TimeCache {
	f.mu.RLock()
	tc, ok := f.caches[parent]
	f.mu.RUnlock()
	if ok {
		return tc
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if tc, ok = f.caches[parent]; ok {
		return tc
	}
	tc = NewTimeCache(f.maxStorageNS)
	f.caches[parent] = tc
	return tc
}

// Cache returns the TimeCache for parent without creating one, and whether
// it exists.
func (f *Frame) Cache(parent FrameHandle) (*TimeCache, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	tc, ok := f.caches[parent]
	return tc, ok
}

// ParentFrames returns the handles of every parent this Frame has received
// data from, in no particular order.
func (f *Frame) ParentFrames() []FrameHandle {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]FrameHandle, 0, len(f.caches))
	for p := range f.caches {
		out = append(out, p)
	}
	return out
}

// Insert forwards sample to the TimeCache for sample.Parent, creating it if
// necessary. sample.Child must equal f.Handle; callers (FrameRegistry) are
// responsible for routing samples to the right Frame.
func (f *Frame) Insert(sample TransformStorage) error {
	tc := f.GetOrCreateCache(sample.Parent)
	return tc.Insert(sample)
}

// AnyInBufferRange reports whether any of this Frame's parent caches can
// answer GetData(t) without backfill.
func (f *Frame) AnyInBufferRange(t int64) bool {
	f.mu.RLock()
	caches := make([]*TimeCache, 0, len(f.caches))
	for _, tc := range f.caches {
		caches = append(caches, tc)
	}
	f.mu.RUnlock()

	for _, tc := range caches {
		if tc.TimeInBufferRange(t) {
			return true
		}
	}
	return false
}
