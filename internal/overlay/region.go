package overlay

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"gocv.io/x/gocv"

	"xray-insight/internal/classifier"
	"xray-insight/internal/saliency"
	"xray-insight/pkg/colorutil"
)

// RadiusFraction sizes region markers relative to the smaller image
// dimension, so markers scale with image size.
const RadiusFraction = 0.15

// labelOffset is how far above the marker center the text label sits.
const labelOffset = 20

// RegionOptions configures multi-region marker rendering.
type RegionOptions struct {
	MaxRegions    int     // How many top classes get a marker
	MinConfidence float64 // Classes below this confidence are not marked
	Alpha         float64 // Marker blend opacity
}

// DefaultRegionOptions returns the standard top-3 configuration.
func DefaultRegionOptions() RegionOptions {
	return RegionOptions{
		MaxRegions:    3,
		MinConfidence: 0.1,
		Alpha:         0.5,
	}
}

// PeakOf returns the map coordinate of the strongest attribution. Ties
// resolve to the first occurrence in row-major order.
func PeakOf(m *saliency.Map) (row, col int) {
	return m.MaxLoc()
}

// RescalePoint maps a (row, col) coordinate from one grid onto another by
// scaling each axis independently, rounding to the nearest cell.
func RescalePoint(row, col, fromRows, fromCols, toRows, toCols int) (int, int) {
	if fromRows <= 0 || fromCols <= 0 {
		return 0, 0
	}
	r := int(math.Round(float64(row) * float64(toRows) / float64(fromRows)))
	c := int(math.Round(float64(col) * float64(toCols) / float64(fromCols)))
	return r, c
}

// DrawRegion blends a filled disc over the map's peak location. The disc is
// centered on the peak rescaled to image coordinates, with radius
// RadiusFraction of the smaller image dimension. Outside the disc the output
// equals the input. Invalid inputs fall back to an unmodified copy.
func DrawRegion(img gocv.Mat, m *saliency.Map, col color.RGBA, alpha float64) gocv.Mat {
	if img.Empty() {
		return gocv.NewMat()
	}
	if m == nil || m.Rows == 0 || m.Cols == 0 {
		return img.Clone()
	}

	peakRow, peakCol := PeakOf(m)
	y, x := RescalePoint(peakRow, peakCol, m.Rows, m.Cols, img.Rows(), img.Cols())
	radius := int(float64(minInt(img.Rows(), img.Cols())) * RadiusFraction)

	canvas := img.Clone()
	defer canvas.Close()
	gocv.Circle(&canvas, image.Point{X: x, Y: y}, radius, col, -1)

	result := gocv.NewMat()
	gocv.AddWeighted(canvas, alpha, img, 1-alpha, 0, &result)
	return result
}

// DrawRegions marks the top-scoring classes with filled discs and labels.
// Classes are selected in descending confidence order, capped at
// opts.MaxRegions and opts.MinConfidence; classes without a saliency map are
// passed over. Markers are composited lowest confidence first, so when
// regions overlap the highest-confidence finding is topmost.
func DrawRegions(img gocv.Mat, maps saliency.Collection, preds classifier.PredictionSet, pal *Palette, opts RegionOptions) gocv.Mat {
	if img.Empty() {
		return gocv.NewMat()
	}

	type marked struct {
		class      string
		confidence float64
		m          *saliency.Map
	}

	var selected []marked
	for _, p := range preds.Ranked() {
		if len(selected) >= opts.MaxRegions || p.Confidence < opts.MinConfidence {
			break
		}
		if m, ok := maps[p.Class]; ok {
			selected = append(selected, marked{class: p.Class, confidence: p.Confidence, m: m})
		}
	}

	result := img.Clone()
	// Reverse order: draw the most confident finding last so it lands on top
	for i := len(selected) - 1; i >= 0; i-- {
		sel := selected[i]
		next := DrawRegion(result, sel.m, pal.ColorFor(sel.class), opts.Alpha)
		result.Close()
		result = next

		labelRegion(&result, sel.m, sel.class, sel.confidence)
	}

	return result
}

// labelRegion draws "Class: NN.N%" just above the region marker.
func labelRegion(img *gocv.Mat, m *saliency.Map, class string, confidence float64) {
	peakRow, peakCol := PeakOf(m)
	y, x := RescalePoint(peakRow, peakCol, m.Rows, m.Cols, img.Rows(), img.Cols())

	text := fmt.Sprintf("%s: %.1f%%", class, confidence*100)
	pos := image.Point{X: x, Y: y - labelOffset}
	gocv.PutText(img, text, pos, gocv.FontHersheySimplex, 0.5,
		colorutil.White, 2)
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
