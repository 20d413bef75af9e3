package pathsearch_test

import (
	"testing"

	"github.com/katalvlaran/tfcache/core"
	"github.com/katalvlaran/tfcache/pathsearch"
	"github.com/stretchr/testify/require"
)

func newRegistry() *core.FrameRegistry {
	return core.NewFrameRegistry(core.DefaultMaxStorageNS, "")
}

func insertIdentity(t *testing.T, reg *core.FrameRegistry, parent, child core.FrameHandle, ts int64) {
	t.Helper()
	require.NoError(t, reg.Insert(core.TransformStorage{
		Parent:      parent,
		Child:       child,
		Translation: core.Vector3{X: float64(ts), Y: 0, Z: 0},
		Rotation:    core.IdentityQuaternion,
		TimestampNS: ts,
	}))
}

func TestSearch_SameFrame(t *testing.T) {
	reg := newRegistry()
	f := reg.ResolveOrInsert("/a")
	_, err := pathsearch.Search(reg, f, f, 0)
	require.ErrorIs(t, err, pathsearch.ErrSameFrame)
}

func TestSearch_DirectParent(t *testing.T) {
	reg := newRegistry()
	parent := reg.ResolveOrInsert("/map")
	child := reg.ResolveOrInsert("/base")
	insertIdentity(t, reg, parent, child, 1_000_000_000)

	res, err := pathsearch.Search(reg, child, parent, 1_000_000_000)
	require.NoError(t, err)
	require.Equal(t, parent, res.Meet)
	require.Len(t, res.Inverse, 1)
	require.Empty(t, res.Forward)
}

func TestSearch_CommonAncestor(t *testing.T) {
	reg := newRegistry()
	root := reg.ResolveOrInsert("/map")
	left := reg.ResolveOrInsert("/left")
	right := reg.ResolveOrInsert("/right")
	insertIdentity(t, reg, root, left, 1_000_000_000)
	insertIdentity(t, reg, root, right, 1_000_000_000)

	res, err := pathsearch.Search(reg, left, right, 1_000_000_000)
	require.NoError(t, err)
	require.Equal(t, root, res.Meet)
	require.Len(t, res.Inverse, 1)
	require.Len(t, res.Forward, 1)
}

func TestSearch_NotConnected(t *testing.T) {
	reg := newRegistry()
	a := reg.ResolveOrInsert("/a")
	b := reg.ResolveOrInsert("/b")

	_, err := pathsearch.Search(reg, a, b, 0)
	require.ErrorIs(t, err, pathsearch.ErrNotConnected)
}

func TestSearch_LongerChainBothSides(t *testing.T) {
	reg := newRegistry()
	root := reg.ResolveOrInsert("/root")
	midL := reg.ResolveOrInsert("/mid-left")
	leafL := reg.ResolveOrInsert("/leaf-left")
	midR := reg.ResolveOrInsert("/mid-right")
	leafR := reg.ResolveOrInsert("/leaf-right")

	insertIdentity(t, reg, root, midL, 1_000_000_000)
	insertIdentity(t, reg, midL, leafL, 1_000_000_000)
	insertIdentity(t, reg, root, midR, 1_000_000_000)
	insertIdentity(t, reg, midR, leafR, 1_000_000_000)

	res, err := pathsearch.Search(reg, leafL, leafR, 1_000_000_000)
	require.NoError(t, err)
	require.Equal(t, root, res.Meet)
	require.Len(t, res.Inverse, 2)
	require.Len(t, res.Forward, 2)

	require.Equal(t, leafL, res.Inverse[0].Child)
	require.Equal(t, root, res.Inverse[len(res.Inverse)-1].Parent)
	require.Equal(t, root, res.Forward[0].Parent)
	require.Equal(t, leafR, res.Forward[len(res.Forward)-1].Child)
}

func TestSearch_MaxCostRejectsDistantEdges(t *testing.T) {
	reg := newRegistry()
	parent := reg.ResolveOrInsert("/map")
	child := reg.ResolveOrInsert("/base")
	insertIdentity(t, reg, parent, child, 0)

	_, err := pathsearch.Search(reg, child, parent, 1_000_000_000_000, pathsearch.WithMaxCost(1000))
	require.ErrorIs(t, err, pathsearch.ErrNotConnected)
}
