package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVec_Arithmetic(t *testing.T) {
	require.Equal(t, V(4, 6), V(1, 2).Add(V(3, 4)))
	require.Equal(t, V(-2, -2), V(1, 2).Sub(V(3, 4)))
	require.Equal(t, V(2, 4), V(1, 2).Scale(2))
	require.Equal(t, 11.0, V(1, 2).Dot(V(3, 4)))
	require.Equal(t, 5.0, V(3, 4).Length())
}

func TestVec_Perp(t *testing.T) {
	// 90 degree counter-clockwise rotation.
	require.Equal(t, V(0, 1), V(1, 0).Perp())
	require.Equal(t, V(-1, 0), V(0, 1).Perp())
	require.Equal(t, 0.0, V(3, -7).Dot(V(3, -7).Perp()))
}

func TestVec_Normalized(t *testing.T) {
	n, err := V(3, 4).Normalized()
	require.NoError(t, err)
	require.InDelta(t, 1.0, n.Length(), 1e-12)
	require.InDelta(t, 0.6, n.X, 1e-12)
	require.InDelta(t, 0.8, n.Y, 1e-12)
}

func TestVec_NormalizedZero(t *testing.T) {
	n, err := V(0, 0).Normalized()
	require.ErrorIs(t, err, ErrInvalidGeometry)
	require.False(t, math.IsNaN(n.X))
	require.False(t, math.IsNaN(n.Y))
}
