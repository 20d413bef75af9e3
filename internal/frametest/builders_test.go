package frametest_test

import (
	"testing"

	"github.com/katalvlaran/tfcache/core"
	"github.com/katalvlaran/tfcache/internal/frametest"
	"github.com/stretchr/testify/require"
)

func TestPath_InsertsChain(t *testing.T) {
	reg := core.NewFrameRegistry(core.DefaultMaxStorageNS, "")
	handles, err := frametest.Path(reg, 4, "p", 1_000_000_000, 1_000_000_000)
	require.NoError(t, err)
	require.Len(t, handles, 4)
	require.Equal(t, 4, reg.Size())
}

func TestPath_RejectsTooFew(t *testing.T) {
	reg := core.NewFrameRegistry(core.DefaultMaxStorageNS, "")
	_, err := frametest.Path(reg, 1, "p", 0, 1)
	require.ErrorIs(t, err, frametest.ErrTooFewFrames)
}

func TestStar_InsertsLeaves(t *testing.T) {
	reg := core.NewFrameRegistry(core.DefaultMaxStorageNS, "")
	hub, leaves, err := frametest.Star(reg, "hub", 3, "leaf", 1_000_000_000)
	require.NoError(t, err)
	require.Len(t, leaves, 3)

	hubFrame, ok := reg.Get(hub)
	require.True(t, ok)
	for _, leaf := range leaves {
		leafFrame, ok := reg.Get(leaf)
		require.True(t, ok)
		_, ok = leafFrame.Cache(hubFrame.Handle)
		require.True(t, ok)
	}
}

func TestForkedTree_SharesRoot(t *testing.T) {
	reg := core.NewFrameRegistry(core.DefaultMaxStorageNS, "")
	root, left, right, err := frametest.ForkedTree(reg, "root", 2, "left", "right", 1_000_000_000)
	require.NoError(t, err)
	require.NotEqual(t, left, right)

	leftClosure := core.ReachableFrames(reg, left)
	rightClosure := core.ReachableFrames(reg, right)
	require.Contains(t, leftClosure, root)
	require.Contains(t, rightClosure, root)
}
