package core_test

import (
	"testing"

	"github.com/katalvlaran/tfcache/core"
	"github.com/stretchr/testify/require"
)

func TestCanonicalize_LeadingSlashUnchanged(t *testing.T) {
	c := core.NewCanonicalizer("")
	id, wasRaw, err := c.Canonicalize("/map")
	require.NoError(t, err)
	require.False(t, wasRaw)
	require.Equal(t, "/map", id)
}

func TestCanonicalize_MissingSlashGetsPrefixed(t *testing.T) {
	c := core.NewCanonicalizer("robot1/")
	id, wasRaw, err := c.Canonicalize("base")
	require.NoError(t, err)
	require.True(t, wasRaw)
	require.Equal(t, "/robot1/base", id)
}

func TestCanonicalize_EmptyPrefixDefault(t *testing.T) {
	c := core.NewCanonicalizer("")
	id, _, err := c.Canonicalize("base")
	require.NoError(t, err)
	require.Equal(t, "/base", id)
}

func TestCanonicalize_Idempotent(t *testing.T) {
	c := core.NewCanonicalizer("")
	first, _, err := c.Canonicalize("base")
	require.NoError(t, err)
	second, wasRaw, err := c.Canonicalize(first)
	require.NoError(t, err)
	require.False(t, wasRaw)
	require.Equal(t, first, second)
}

func TestCanonicalize_EmptyRejected(t *testing.T) {
	c := core.NewCanonicalizer("")
	_, _, err := c.Canonicalize("")
	require.ErrorIs(t, err, core.ErrEmptyFrameID)
}
