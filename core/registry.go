package core

import "sync"

// FrameRegistry is the process-wide arena of Frames. It owns every Frame it
// creates and hands out FrameHandles rather than pointers, so Frames never
// reference each other or the registry directly (spec.md §9).
//
// FrameRegistry is read-mostly after warmup: lookups take a shared lock,
// and only first-reference of a new frame ID takes the exclusive lock.
type FrameRegistry struct {
	mu            sync.RWMutex
	byID          map[string]FrameHandle
	frames        []*Frame // index 0 is unused; invalidHandle == 0
	maxStorageNS  int64
	canon         *Canonicalizer
}

// NewFrameRegistry creates an empty registry. maxStorageNS is the default Δ
// given to every Frame's TimeCaches; prefix is the configured frame-ID
// prefix used by canonicalization (empty unless configuration says
// otherwise, per spec.md §9).
func NewFrameRegistry(maxStorageNS int64, prefix string) *FrameRegistry {
	return &FrameRegistry{
		byID:         make(map[string]FrameHandle),
		frames:       make([]*Frame, 1), // reserve index 0
		maxStorageNS: maxStorageNS,
		canon:        NewCanonicalizer(prefix),
	}
}

// Canonicalize exposes the registry's Canonicalizer so callers can
// normalize a raw ID before comparison without resolving a Frame.
func (r *FrameRegistry) Canonicalize(raw string) (id string, wasRaw bool, err error) {
	return r.canon.Canonicalize(raw)
}

// Resolve returns the handle for an already-canonical frame ID, or false if
// no Frame has ever been referenced under that ID.
func (r *FrameRegistry) Resolve(id string) (FrameHandle, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.byID[id]
	return h, ok
}

// ResolveOrInsert returns the handle for the canonical frame ID, creating a
// new Frame on first reference. Concurrent first-references race safely:
// the losing goroutine discards its candidate Frame and returns the
// winner's handle.
func (r *FrameRegistry) ResolveOrInsert(id string) FrameHandle {
	r.mu.RLock()
	h, ok := r.byID[id]
	r.mu.RUnlock()
	if ok {
		return h
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if h, ok = r.byID[id]; ok {
		return h
	}
	h = FrameHandle(len(r.frames))
	r.frames = append(r.frames, newFrame(h, id, r.maxStorageNS))
	r.byID[id] = h
	return h
}

// Get returns the Frame for handle, or false if the handle is out of range
// (never valid for a handle this registry itself issued).
func (r *FrameRegistry) Get(h FrameHandle) (*Frame, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if h == invalidHandle || int(h) >= len(r.frames) {
		return nil, false
	}
	return r.frames[h], true
}

// GetByID resolves id to a Frame without creating one.
func (r *FrameRegistry) GetByID(id string) (*Frame, bool) {
	h, ok := r.Resolve(id)
	if !ok {
		return nil, false
	}
	return r.Get(h)
}

// Insert routes sample to the Frame identified by sample.Child. Both handles
// must already have been issued by ResolveOrInsert; an unknown child handle
// yields ErrFrameNotFound and no Frame is created. It rejects self-transforms (parent == child) per spec.md §4.6's ingestion
// validation; ErrSelfTransform is recovered locally by callers (backfill),
// never surfaced to a query.
func (r *FrameRegistry) Insert(sample TransformStorage) error {
	if sample.Parent == sample.Child {
		return ErrSelfTransform
	}
	child, ok := r.Get(sample.Child)
	if !ok {
		return ErrFrameNotFound
	}
	return child.Insert(sample)
}

// Size returns the number of distinct frames ever referenced.
func (r *FrameRegistry) Size() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.frames) - 1
}
