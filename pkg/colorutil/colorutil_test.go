package colorutil

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHSVToRGBPrimaries(t *testing.T) {
	require.Equal(t, Red, HSVToRGB(0, 1, 1))
	require.Equal(t, Green, HSVToRGB(120, 1, 1))
	require.Equal(t, Blue, HSVToRGB(240, 1, 1))
	require.Equal(t, White, HSVToRGB(0, 0, 1))
	require.Equal(t, Black, HSVToRGB(0, 1, 0))
}

func TestHSVToRGBWrapsHue(t *testing.T) {
	require.Equal(t, HSVToRGB(30, 1, 1), HSVToRGB(390, 1, 1))
	require.Equal(t, HSVToRGB(330, 1, 1), HSVToRGB(-30, 1, 1))
}

func TestVividIsOpaqueAndSaturated(t *testing.T) {
	for hue := 0.0; hue < 360; hue += 45 {
		c := Vivid(hue)
		require.Equal(t, uint8(255), c.A)
		require.NotEqual(t, color.RGBA{A: 255}, c, "hue %v must not be black", hue)
	}
}
