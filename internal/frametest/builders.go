package frametest

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/tfcache/core"
)

// ErrTooFewFrames indicates a builder was asked for fewer frames than its
// minimum shape requires.
var ErrTooFewFrames = errors.New("frametest: too few frames requested")

const minChainFrames = 2

// Path inserts a chain of n frames, frame[i-1] as the parent of frame[i],
// each sample timestamped startNS + i*stepNS with an identity rotation and
// translation (float64(i), 0, 0). It returns the frame handles in order,
// root first.
func Path(reg *core.FrameRegistry, n int, idPrefix string, startNS, stepNS int64) ([]core.FrameHandle, error) {
	if n < minChainFrames {
		return nil, fmt.Errorf("frametest.Path: n=%d: %w", n, ErrTooFewFrames)
	}

	handles := make([]core.FrameHandle, n)
	for i := 0; i < n; i++ {
		handles[i] = reg.ResolveOrInsert(fmt.Sprintf("/%s%d", idPrefix, i))
	}

	for i := 1; i < n; i++ {
		sample := core.TransformStorage{
			Parent:      handles[i-1],
			Child:       handles[i],
			Translation: core.Vector3{X: float64(i), Y: 0, Z: 0},
			Rotation:    core.IdentityQuaternion,
			TimestampNS: startNS + int64(i)*stepNS,
		}
		if err := reg.Insert(sample); err != nil {
			return nil, fmt.Errorf("frametest.Path: insert %d: %w", i, err)
		}
	}

	return handles, nil
}

// Star inserts n leaf frames, each with hub as its direct parent, all
// sharing the same sample timestamp. It returns the hub handle and the leaf
// handles in order.
func Star(reg *core.FrameRegistry, hubID string, n int, leafPrefix string, ts int64) (core.FrameHandle, []core.FrameHandle, error) {
	if n < 1 {
		return 0, nil, fmt.Errorf("frametest.Star: n=%d: %w", n, ErrTooFewFrames)
	}

	hub := reg.ResolveOrInsert("/" + hubID)
	leaves := make([]core.FrameHandle, n)
	for i := 0; i < n; i++ {
		leaf := reg.ResolveOrInsert(fmt.Sprintf("/%s%d", leafPrefix, i))
		leaves[i] = leaf
		sample := core.TransformStorage{
			Parent:      hub,
			Child:       leaf,
			Translation: core.Vector3{X: float64(i + 1), Y: 0, Z: 0},
			Rotation:    core.IdentityQuaternion,
			TimestampNS: ts,
		}
		if err := reg.Insert(sample); err != nil {
			return 0, nil, fmt.Errorf("frametest.Star: insert leaf %d: %w", i, err)
		}
	}

	return hub, leaves, nil
}

// ForkedTree inserts two Path chains of length depth sharing the same root,
// modeling the two-arm ancestor-closure shape pathsearch's bidirectional
// search is built to meet in the middle of. It returns the shared root and
// each arm's leaf handle.
func ForkedTree(reg *core.FrameRegistry, rootID string, depth int, leftPrefix, rightPrefix string, ts int64) (root, leftLeaf, rightLeaf core.FrameHandle, err error) {
	root = reg.ResolveOrInsert("/" + rootID)

	buildArm := func(prefix string) (core.FrameHandle, error) {
		cur := root
		for i := 1; i <= depth; i++ {
			next := reg.ResolveOrInsert(fmt.Sprintf("/%s%d", prefix, i))
			sample := core.TransformStorage{
				Parent:      cur,
				Child:       next,
				Translation: core.Vector3{X: float64(i), Y: 0, Z: 0},
				Rotation:    core.IdentityQuaternion,
				TimestampNS: ts,
			}
			if insErr := reg.Insert(sample); insErr != nil {
				return 0, insErr
			}
			cur = next
		}

		return cur, nil
	}

	leftLeaf, err = buildArm(leftPrefix)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("frametest.ForkedTree: left arm: %w", err)
	}
	rightLeaf, err = buildArm(rightPrefix)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("frametest.ForkedTree: right arm: %w", err)
	}

	return root, leftLeaf, rightLeaf, nil
}
