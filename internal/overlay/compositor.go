package overlay

import (
	"image"

	"gocv.io/x/gocv"

	"xray-insight/internal/saliency"
)

// DefaultAlpha is the standard heatmap blend opacity.
const DefaultAlpha = 0.5

// UpscaleFactor is how much both the image and the map are enlarged before
// blending. Blending at native map resolution and displaying directly looks
// blocky; the cubic-up/area-down round trip yields smooth region edges.
const UpscaleFactor = 16

// Overlay blends a color-mapped saliency map onto the radiograph at the
// given opacity: result = original*(1-alpha) + colored*alpha per pixel.
// The map values are rendered through a jet colormap (blue = low evidence,
// red = high).
//
// Invalid inputs (empty image, missing map, non-BGR image) fall back to an
// unmodified copy of the original rather than failing the caller.
func Overlay(img gocv.Mat, m *saliency.Map, alpha float64) gocv.Mat {
	if img.Empty() {
		return gocv.NewMat()
	}
	if m == nil || m.Rows == 0 || m.Cols == 0 || img.Channels() != 3 {
		return img.Clone()
	}
	if alpha <= 0 {
		// Nothing to blend; skip the resize round trip so the output is
		// bit-identical to the input
		return img.Clone()
	}
	if alpha > 1 {
		alpha = 1
	}

	highRes := image.Point{X: img.Cols() * UpscaleFactor, Y: img.Rows() * UpscaleFactor}

	imgHR := gocv.NewMat()
	defer imgHR.Close()
	gocv.Resize(img, &imgHR, highRes, 0, 0, gocv.InterpolationCubic)

	heat := heatMat(m)
	defer heat.Close()

	heatHR := gocv.NewMat()
	defer heatHR.Close()
	gocv.Resize(heat, &heatHR, highRes, 0, 0, gocv.InterpolationCubic)

	colored := gocv.NewMat()
	defer colored.Close()
	gocv.ApplyColorMap(heatHR, &colored, gocv.ColormapJet)

	blended := gocv.NewMat()
	defer blended.Close()
	gocv.AddWeighted(imgHR, 1-alpha, colored, alpha, 0, &blended)

	result := gocv.NewMat()
	gocv.Resize(blended, &result, image.Point{X: img.Cols(), Y: img.Rows()},
		0, 0, gocv.InterpolationArea)
	return result
}

// heatMat renders a normalized map into an 8-bit single-channel Mat.
func heatMat(m *saliency.Map) gocv.Mat {
	mat := gocv.NewMatWithSize(m.Rows, m.Cols, gocv.MatTypeCV8U)
	for r := 0; r < m.Rows; r++ {
		for c := 0; c < m.Cols; c++ {
			v := m.At(r, c)
			if v < 0 {
				v = 0
			} else if v > 1 {
				v = 1
			}
			mat.SetUCharAt(r, c, uint8(v*255))
		}
	}
	return mat
}
