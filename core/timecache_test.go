package core_test

import (
	"testing"

	"github.com/katalvlaran/tfcache/core"
	"github.com/stretchr/testify/require"
)

func TestTimeCache_EmptyIsNoData(t *testing.T) {
	tc := core.NewTimeCache(10_000_000_000)
	_, err := tc.GetData(0, 0)
	require.ErrorIs(t, err, core.ErrNoData)
	require.False(t, tc.TimeInBufferRange(0))
}

func TestTimeCache_SingleSampleNoInterpolation(t *testing.T) {
	tc := core.NewTimeCache(10_000_000_000)
	s := core.TransformStorage{
		Translation: core.Vector3{X: 1, Y: 2, Z: 3},
		Rotation:    core.IdentityQuaternion,
		TimestampNS: 1_000_000_000,
	}
	require.NoError(t, tc.Insert(s))

	got, err := tc.GetData(1_000_000_000, 0)
	require.NoError(t, err)
	require.Equal(t, s, got)

	// any other t still returns the lone sample unchanged
	got, err = tc.GetData(5_000_000_000, 0)
	require.NoError(t, err)
	require.Equal(t, s, got)
}

func TestTimeCache_Interpolation(t *testing.T) {
	tc := core.NewTimeCache(10_000_000_000)
	require.NoError(t, tc.Insert(core.TransformStorage{
		Translation: core.Vector3{X: 0, Y: 0, Z: 0},
		Rotation:    core.IdentityQuaternion,
		TimestampNS: 0,
	}))
	require.NoError(t, tc.Insert(core.TransformStorage{
		Translation: core.Vector3{X: 2, Y: 0, Z: 0},
		Rotation:    core.IdentityQuaternion,
		TimestampNS: 2_000_000_000,
	}))

	mid, err := tc.GetData(1_000_000_000, 0)
	require.NoError(t, err)
	require.InDelta(t, 1, mid.Translation.X, 1e-9)
	require.Equal(t, int64(1_000_000_000), mid.TimestampNS)

	// past the newest sample: clamp, no extrapolation
	past, err := tc.GetData(3_000_000_000, 0)
	require.NoError(t, err)
	require.InDelta(t, 2, past.Translation.X, 1e-9)
	require.Equal(t, int64(2_000_000_000), past.TimestampNS)
}

func TestTimeCache_RejectsOldInsert(t *testing.T) {
	tc := core.NewTimeCache(10_000_000_000) // Δ = 10s
	require.NoError(t, tc.Insert(core.TransformStorage{
		Rotation:    core.IdentityQuaternion,
		TimestampNS: 100_000_000_000,
	}))

	err := tc.Insert(core.TransformStorage{
		Rotation:    core.IdentityQuaternion,
		TimestampNS: 89_000_000_000,
	})
	require.ErrorIs(t, err, core.ErrOldData)
	require.Equal(t, 1, tc.Len())
}

func TestTimeCache_EvictsOnInsert(t *testing.T) {
	tc := core.NewTimeCache(10_000_000_000) // Δ = 10s
	for i := int64(0); i <= 30; i++ {
		require.NoError(t, tc.Insert(core.TransformStorage{
			Rotation:    core.IdentityQuaternion,
			TimestampNS: i * 1_000_000_000,
		}))
	}
	// newest is 30s; everything older than 20s should be gone
	require.LessOrEqual(t, tc.Len(), 11)
	require.True(t, tc.TimeInBufferRange(25_000_000_000))
	require.False(t, tc.TimeInBufferRange(5_000_000_000))
}

func TestTimeCache_TimeToNearest(t *testing.T) {
	tc := core.NewTimeCache(10_000_000_000)
	require.NoError(t, tc.Insert(core.TransformStorage{Rotation: core.IdentityQuaternion, TimestampNS: 0}))
	require.NoError(t, tc.Insert(core.TransformStorage{Rotation: core.IdentityQuaternion, TimestampNS: 10}))

	require.Equal(t, int64(0), tc.TimeToNearest(0))
	require.Equal(t, int64(2), tc.TimeToNearest(8))
	require.Equal(t, int64(5), tc.TimeToNearest(5))
	require.Equal(t, int64(90), tc.TimeToNearest(100))
}
