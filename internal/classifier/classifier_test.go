package classifier

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRankedDescendingWithStableTies(t *testing.T) {
	ps := PredictionSet{
		{Class: "Atelectasis", Confidence: 0.3},
		{Class: "Pneumonia", Confidence: 0.9},
		{Class: "Edema", Confidence: 0.3},
	}

	ranked := ps.Ranked()
	require.Equal(t, "Pneumonia", ranked[0].Class)
	// Tied classes keep their original relative order
	require.Equal(t, "Atelectasis", ranked[1].Class)
	require.Equal(t, "Edema", ranked[2].Class)

	// Ranking must not mutate the source set
	require.Equal(t, "Atelectasis", ps[0].Class)
}

func TestPredictionsFromPairsByIndex(t *testing.T) {
	classes := []string{"Pneumonia", "Normal", "Edema"}
	scores := []float32{0.85, 0.10, 0.02}

	ps := PredictionsFrom(classes, scores)
	require.Len(t, ps, 3)

	conf, ok := ps.Get("Pneumonia")
	require.True(t, ok)
	require.InDelta(t, 0.85, conf, 1e-6)

	_, ok = ps.Get("Fracture")
	require.False(t, ok)
}

func TestPredictionsFromTruncatesToShorter(t *testing.T) {
	ps := PredictionsFrom([]string{"A"}, []float32{0.5, 0.9})
	require.Len(t, ps, 1)
}

func TestVolumePlaneIndexing(t *testing.T) {
	v := NewVolume(2, 3, 4)
	v.Set(1, 2, 3, 7.5)

	require.Equal(t, 7.5, v.At(1, 2, 3))
	require.Equal(t, 7.5, v.Plane(1)[2*4+3])
	require.Len(t, v.Plane(0), 12)
}
