package saliency

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMapMaxLocFirstOccurrence(t *testing.T) {
	m := NewMap(3, 3)
	m.Set(0, 2, 0.9)
	m.Set(1, 1, 0.9)
	m.Set(2, 0, 0.9)

	// Row-major scan: (0,2) comes first among the tied maxima
	row, col := m.MaxLoc()
	require.Equal(t, 0, row)
	require.Equal(t, 2, col)
}

func TestMapMaxLocDeterministic(t *testing.T) {
	m := NewMap(5, 5)
	m.Set(2, 3, 1.0)
	m.Set(4, 1, 0.5)

	r1, c1 := m.MaxLoc()
	for i := 0; i < 10; i++ {
		r, c := m.MaxLoc()
		require.Equal(t, r1, r)
		require.Equal(t, c1, c)
	}
}

func TestMapNormalize(t *testing.T) {
	m := NewMap(2, 2)
	m.Set(0, 0, 2)
	m.Set(0, 1, 4)
	m.Set(1, 0, 1)

	m.Normalize()
	require.Equal(t, 1.0, m.Max())
	require.Equal(t, 0.5, m.At(0, 0))
	require.Equal(t, 0.25, m.At(1, 0))
}

func TestMapNormalizeAllZero(t *testing.T) {
	m := NewMap(4, 4)
	m.Normalize()

	require.True(t, m.IsZero())
	for _, v := range m.Data {
		require.False(t, v != v, "normalization of a zero map must not produce NaN")
	}
}

func TestMapClipNegative(t *testing.T) {
	m := NewMap(1, 3)
	m.Set(0, 0, -1)
	m.Set(0, 1, 0)
	m.Set(0, 2, 2)

	m.ClipNegative()
	require.Equal(t, 0.0, m.At(0, 0))
	require.Equal(t, 0.0, m.At(0, 1))
	require.Equal(t, 2.0, m.At(0, 2))
}

func TestMapAddScaled(t *testing.T) {
	a := NewMap(2, 2)
	b := NewMap(2, 2)
	b.Set(0, 0, 1)
	b.Set(1, 1, 2)

	a.AddScaled(0.5, b)
	require.Equal(t, 0.5, a.At(0, 0))
	require.Equal(t, 1.0, a.At(1, 1))
	require.Equal(t, 0.0, a.At(0, 1))
}
