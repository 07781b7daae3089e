package saliency

import (
	"image"

	"gocv.io/x/gocv"
)

// Postprocess upsamples a raw attribution map to rows x cols with bicubic
// interpolation, normalizes the peak to 1, and smooths with a Gaussian pass
// so interpolation artifacts do not read as anatomy. Nearest-neighbor
// upsampling is deliberately not used: it produces blocky regions.
//
// The output is guaranteed to have exactly the requested dimensions with
// every cell in [0, 1]. An all-zero input stays all-zero.
func Postprocess(raw *Map, rows, cols int) *Map {
	if raw == nil || len(raw.Data) == 0 {
		return NewMap(rows, cols)
	}

	src := matFromMap(raw)
	defer src.Close()

	dst := gocv.NewMat()
	defer dst.Close()
	gocv.Resize(src, &dst, image.Point{X: cols, Y: rows}, 0, 0, gocv.InterpolationCubic)

	m := mapFromMat(dst)
	// Cubic interpolation can overshoot below zero near sharp edges
	m.ClipNegative()
	m.Normalize()

	return Smooth(m, BlurKernel)
}

// Smooth applies a Gaussian blur with the given odd kernel size and returns
// a new map. Values stay within the input's [0, 1] range.
func Smooth(m *Map, kernel int) *Map {
	if m == nil || len(m.Data) == 0 {
		return m
	}
	if kernel%2 == 0 {
		kernel++
	}

	src := matFromMap(m)
	defer src.Close()

	dst := gocv.NewMat()
	defer dst.Close()
	gocv.GaussianBlur(src, &dst, image.Point{X: kernel, Y: kernel}, 0, 0, gocv.BorderDefault)

	return mapFromMat(dst)
}

// matFromMap copies a Map into a single-channel float Mat.
func matFromMap(m *Map) gocv.Mat {
	mat := gocv.NewMatWithSize(m.Rows, m.Cols, gocv.MatTypeCV32F)
	for r := 0; r < m.Rows; r++ {
		for c := 0; c < m.Cols; c++ {
			mat.SetFloatAt(r, c, float32(m.At(r, c)))
		}
	}
	return mat
}

// mapFromMat copies a single-channel float Mat into a Map.
func mapFromMat(mat gocv.Mat) *Map {
	rows, cols := mat.Rows(), mat.Cols()
	m := NewMap(rows, cols)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			m.Set(r, c, float64(mat.GetFloatAt(r, c)))
		}
	}
	return m
}
