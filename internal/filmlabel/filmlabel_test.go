package filmlabel

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDescribeMarkers(t *testing.T) {
	require.Equal(t, "No film annotations detected.", DescribeMarkers(nil))

	markers := []Marker{
		{Token: "L", Description: "left laterality marker"},
		{Token: "AP", Description: "anteroposterior projection"},
	}
	out := DescribeMarkers(markers)
	require.Contains(t, out, "L (left laterality marker)")
	require.Contains(t, out, "AP (anteroposterior projection)")
}

func TestKnownMarkerTable(t *testing.T) {
	for _, token := range []string{"L", "R", "AP", "PA", "LAT"} {
		_, ok := knownMarkers[token]
		require.True(t, ok, "marker %q must be recognized", token)
	}
	_, ok := knownMarkers["XYZ"]
	require.False(t, ok)
}
