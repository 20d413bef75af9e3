package core_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/tfcache/core"
	"github.com/stretchr/testify/require"
)

func TestQuaternion_SlerpEndpoints(t *testing.T) {
	a := core.IdentityQuaternion
	b := core.Quaternion{X: 0, Y: 0, Z: math.Sqrt2 / 2, W: math.Sqrt2 / 2} // 90° about Z

	require.InDelta(t, 0, a.Slerp(b, 0).Dot(a)-1, 1e-9)
	got := a.Slerp(b, 1)
	require.InDelta(t, b.X, got.X, 1e-9)
	require.InDelta(t, b.W, got.W, 1e-9)
}

func TestQuaternion_SlerpPreservesUnitLength(t *testing.T) {
	a := core.IdentityQuaternion
	b := core.Quaternion{X: 0.5, Y: 0.5, Z: 0.5, W: 0.5}
	for frac := 0.0; frac <= 1.0; frac += 0.1 {
		got := a.Slerp(b, frac)
		require.InDelta(t, 1.0, got.Norm(), 1e-9)
	}
}

func TestQuaternion_RotateIdentityIsNoop(t *testing.T) {
	v := core.Vector3{X: 1, Y: 2, Z: 3}
	require.Equal(t, v, core.IdentityQuaternion.Rotate(v))
}

func TestQuaternion_ConjugateIsInverseForUnit(t *testing.T) {
	q := core.Quaternion{X: 0, Y: 0, Z: math.Sqrt2 / 2, W: math.Sqrt2 / 2}
	id := q.Mul(q.Conjugate())
	require.InDelta(t, 1, id.W, 1e-9)
	require.InDelta(t, 0, id.X, 1e-9)
	require.InDelta(t, 0, id.Y, 1e-9)
	require.InDelta(t, 0, id.Z, 1e-9)
}

func TestQuaternion_ValidateRejectsZeroLength(t *testing.T) {
	require.ErrorIs(t, core.Quaternion{}.Validate(), core.ErrInvalidQuaternion)
	require.NoError(t, core.IdentityQuaternion.Validate())
}
