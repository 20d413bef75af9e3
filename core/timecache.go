package core

import (
	"math"
	"sort"
	"sync"
)

// TimeCache is a bounded, time-ordered buffer of TransformStorage samples
// for one directed parent→child edge. Samples are kept sorted ascending by
// TimestampNS; retention window Δ (maxDurationNS) bounds newest-oldest.
//
// A TimeCache is safe for concurrent use: inserts and evictions take an
// exclusive lock, reads take a shared lock (spec.md §5).
type TimeCache struct {
	mu            sync.RWMutex
	samples       []TransformStorage
	maxDurationNS int64
}

// NewTimeCache creates an empty TimeCache retaining maxDuration nanoseconds
// of history behind its newest sample.
func NewTimeCache(maxDurationNS int64) *TimeCache {
	return &TimeCache{maxDurationNS: maxDurationNS}
}

// Insert adds sample to the cache. It is rejected with ErrOldData if its
// timestamp is older than newest−Δ for the cache's *current* newest sample.
// On acceptance, any sample older than the *new* newest−Δ is evicted.
func (tc *TimeCache) Insert(sample TransformStorage) error {
	tc.mu.Lock()
	defer tc.mu.Unlock()

	if n := len(tc.samples); n > 0 {
		newest := tc.samples[n-1].TimestampNS
		if sample.TimestampNS < newest-tc.maxDurationNS {
			return ErrOldData
		}
	}

	idx := sort.Search(len(tc.samples), func(i int) bool {
		return tc.samples[i].TimestampNS >= sample.TimestampNS
	})
	tc.samples = append(tc.samples, TransformStorage{})
	copy(tc.samples[idx+1:], tc.samples[idx:])
	tc.samples[idx] = sample

	newNewest := tc.samples[len(tc.samples)-1].TimestampNS
	cutoff := newNewest - tc.maxDurationNS
	evictIdx := sort.Search(len(tc.samples), func(i int) bool {
		return tc.samples[i].TimestampNS >= cutoff
	})
	if evictIdx > 0 {
		kept := make([]TransformStorage, len(tc.samples)-evictIdx)
		copy(kept, tc.samples[evictIdx:])
		tc.samples = kept
	}

	return nil
}

// GetData returns the best estimate of the edge's transform at time t.
// childHint is accepted for API symmetry with the original tf contract
// (disambiguating which child's cache is being queried when logging) but
// does not affect the result; every sample in a given TimeCache already
// belongs to the same edge.
func (tc *TimeCache) GetData(t int64, childHint FrameHandle) (TransformStorage, error) {
	_ = childHint
	tc.mu.RLock()
	defer tc.mu.RUnlock()

	n := len(tc.samples)
	if n == 0 {
		return TransformStorage{}, ErrNoData
	}
	if n == 1 {
		return tc.samples[0], nil
	}

	oldest, newest := tc.samples[0], tc.samples[n-1]
	if t <= oldest.TimestampNS {
		return oldest, nil
	}
	if t >= newest.TimestampNS {
		return newest, nil
	}

	// hi is the first sample with timestamp strictly greater than t;
	// since oldest.TimestampNS < t < newest.TimestampNS, 0 < hi < n.
	hi := sort.Search(n, func(i int) bool { return tc.samples[i].TimestampNS > t })
	lo := hi - 1
	a, b := tc.samples[lo], tc.samples[hi]
	if a.TimestampNS == t {
		return a, nil
	}

	frac := float64(t-a.TimestampNS) / float64(b.TimestampNS-a.TimestampNS)
	return TransformStorage{
		Translation: a.Translation.Lerp(b.Translation, frac),
		Rotation:    a.Rotation.Slerp(b.Rotation, frac),
		TimestampNS: t,
		Parent:      a.Parent,
		Child:       a.Child,
	}, nil
}

// TimeInBufferRange reports whether t falls within [oldest, newest] for the
// cache's current samples, i.e. whether GetData(t, ...) can be answered by
// interpolation or boundary clamp rather than requiring backfill.
func (tc *TimeCache) TimeInBufferRange(t int64) bool {
	tc.mu.RLock()
	defer tc.mu.RUnlock()

	if len(tc.samples) == 0 {
		return false
	}
	return tc.samples[0].TimestampNS <= t && t <= tc.samples[len(tc.samples)-1].TimestampNS
}

// TimeToNearest returns the absolute nanosecond distance from t to the
// closest sample's timestamp, used by PathSearch as an edge's traversal
// cost. An empty cache reports math.MaxInt64, making it maximally
// unattractive without special-casing empty edges in the search.
func (tc *TimeCache) TimeToNearest(t int64) int64 {
	tc.mu.RLock()
	defer tc.mu.RUnlock()

	n := len(tc.samples)
	if n == 0 {
		return math.MaxInt64
	}
	if t <= tc.samples[0].TimestampNS {
		return tc.samples[0].TimestampNS - t
	}
	if t >= tc.samples[n-1].TimestampNS {
		return t - tc.samples[n-1].TimestampNS
	}
	hi := sort.Search(n, func(i int) bool { return tc.samples[i].TimestampNS > t })
	lo := hi - 1
	dLo := t - tc.samples[lo].TimestampNS
	dHi := tc.samples[hi].TimestampNS - t
	if dLo < dHi {
		return dLo
	}
	return dHi
}

// Len returns the current number of retained samples.
func (tc *TimeCache) Len() int {
	tc.mu.RLock()
	defer tc.mu.RUnlock()
	return len(tc.samples)
}
