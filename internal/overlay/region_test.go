package overlay

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"

	"xray-insight/internal/classifier"
	"xray-insight/internal/saliency"
)

func TestRescalePointRoundTrip(t *testing.T) {
	// Map coordinates scaled up to image resolution and back must land
	// within one cell of where they started
	for row := 0; row < 7; row++ {
		for col := 0; col < 7; col++ {
			ir, ic := RescalePoint(row, col, 7, 7, 224, 224)
			br, bc := RescalePoint(ir, ic, 224, 224, 7, 7)
			require.InDelta(t, row, br, 1)
			require.InDelta(t, col, bc, 1)
		}
	}
}

func TestRescalePointRounding(t *testing.T) {
	// 3/7 * 224 = 96 exactly
	r, c := RescalePoint(3, 3, 7, 7, 224, 224)
	require.Equal(t, 96, r)
	require.Equal(t, 96, c)

	r, c = RescalePoint(0, 0, 7, 7, 224, 224)
	require.Equal(t, 0, r)
	require.Equal(t, 0, c)
}

func TestRescalePointDegenerateSource(t *testing.T) {
	r, c := RescalePoint(3, 3, 0, 0, 224, 224)
	require.Equal(t, 0, r)
	require.Equal(t, 0, c)
}

func TestPaletteFixedAndFallback(t *testing.T) {
	pal := NewPaletteWithSeed(42)

	require.Equal(t, color.RGBA{R: 255, A: 255}, pal.ColorFor("Pneumonia"))
	require.True(t, HasFixedColor("Pneumonia"))
	require.False(t, HasFixedColor("Zebra Pattern"))

	// Unmapped classes get a stable fallback for the palette's lifetime
	first := pal.ColorFor("Zebra Pattern")
	require.Equal(t, first, pal.ColorFor("Zebra Pattern"))
	require.Equal(t, uint8(255), first.A)
}

func peakMap(rows, cols, peakRow, peakCol int) *saliency.Map {
	m := saliency.NewMap(rows, cols)
	m.Set(peakRow, peakCol, 1)
	return m
}

func TestDrawRegionOutsideDiscUnchanged(t *testing.T) {
	img := gocv.NewMatWithSize(100, 100, gocv.MatTypeCV8UC3)
	defer img.Close()

	m := peakMap(7, 7, 0, 0) // disc in the top-left corner, radius 15

	out := DrawRegion(img, m, color.RGBA{R: 255, A: 255}, 0.5)
	defer out.Close()

	// Far corner is outside the disc and must be bit-identical to the input
	require.Equal(t, img.GetVecbAt(90, 90), out.GetVecbAt(90, 90))
}

func TestDrawRegionUnknownClassColorDoesNotCrash(t *testing.T) {
	img := gocv.NewMatWithSize(64, 64, gocv.MatTypeCV8UC3)
	defer img.Close()

	pal := NewPaletteWithSeed(7)
	out := DrawRegion(img, peakMap(7, 7, 3, 3), pal.ColorFor("Unheard Of Disease"), 0.5)
	defer out.Close()

	require.False(t, out.Empty())
	require.Equal(t, 64, out.Rows())
}

func TestDrawRegionNilMapFallsBack(t *testing.T) {
	img := gocv.NewMatWithSize(32, 32, gocv.MatTypeCV8UC3)
	defer img.Close()

	out := DrawRegion(img, nil, color.RGBA{R: 255, A: 255}, 0.5)
	defer out.Close()

	require.Equal(t, img.GetVecbAt(16, 16), out.GetVecbAt(16, 16))
}

func TestDrawRegionsTopConfidenceOnTop(t *testing.T) {
	img := gocv.NewMatWithSize(100, 100, gocv.MatTypeCV8UC3)
	defer img.Close()

	// Both maps peak at the same cell so the discs fully overlap
	maps := saliency.Collection{
		"Pneumonia":   peakMap(7, 7, 3, 3),
		"Atelectasis": peakMap(7, 7, 3, 3),
	}
	preds := classifier.PredictionSet{
		{Class: "Pneumonia", Confidence: 0.9},
		{Class: "Atelectasis", Confidence: 0.5},
	}

	opts := DefaultRegionOptions()
	opts.Alpha = 1 // opaque discs make the z-order directly observable

	pal := NewPaletteWithSeed(1)
	out := DrawRegions(img, maps, preds, pal, opts)
	defer out.Close()

	// 3/7 of 100 rounds to 43; a pixel slightly below the center avoids
	// the white text label drawn above the marker
	vec := out.GetVecbAt(48, 43)
	require.Equal(t, uint8(255), vec[2], "red channel: Pneumonia (highest confidence) must be topmost")
	require.Equal(t, uint8(0), vec[0], "blue channel: Atelectasis must be covered")
}

func TestDrawRegionsRespectsThresholdAndCap(t *testing.T) {
	img := gocv.NewMatWithSize(100, 100, gocv.MatTypeCV8UC3)
	defer img.Close()

	maps := saliency.Collection{
		"Pneumonia": peakMap(7, 7, 1, 1),
		"Edema":     peakMap(7, 7, 5, 5),
	}
	preds := classifier.PredictionSet{
		{Class: "Pneumonia", Confidence: 0.9},
		{Class: "Edema", Confidence: 0.05}, // below MinConfidence
	}

	opts := DefaultRegionOptions()
	opts.Alpha = 1

	pal := NewPaletteWithSeed(1)
	out := DrawRegions(img, maps, preds, pal, opts)
	defer out.Close()

	// Edema's would-be disc area stays black
	vec := out.GetVecbAt(71, 71)
	require.Equal(t, uint8(0), vec[0])
	require.Equal(t, uint8(0), vec[1])
	require.Equal(t, uint8(0), vec[2])
}
