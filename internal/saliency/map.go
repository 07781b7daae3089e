// Package saliency computes class-discriminative attribution maps and
// prepares them for visualization.
package saliency

import (
	"gonum.org/v1/gonum/floats"
)

// MapSize is the target resolution saliency maps are upsampled to, matching
// the classifier input resolution.
const MapSize = 224

// BlurKernel is the odd Gaussian kernel size used for smoothing.
const BlurKernel = 5

// Map is a dense row-major grid of non-negative attribution values for one
// class. After normalization the maximum is 1, or every cell is 0 when the
// model produced no positive evidence.
type Map struct {
	Rows, Cols int
	Data       []float64
}

// NewMap allocates a zeroed map.
func NewMap(rows, cols int) *Map {
	return &Map{Rows: rows, Cols: cols, Data: make([]float64, rows*cols)}
}

// At returns the value at (row, col).
func (m *Map) At(r, c int) float64 {
	return m.Data[r*m.Cols+c]
}

// Set stores a value at (row, col).
func (m *Map) Set(r, c int, v float64) {
	m.Data[r*m.Cols+c] = v
}

// Clone returns a deep copy.
func (m *Map) Clone() *Map {
	out := NewMap(m.Rows, m.Cols)
	copy(out.Data, m.Data)
	return out
}

// Max returns the maximum cell value, or 0 for an empty map.
func (m *Map) Max() float64 {
	if len(m.Data) == 0 {
		return 0
	}
	return floats.Max(m.Data)
}

// MaxLoc returns the coordinate of the maximum value. Ties resolve to the
// first occurrence in row-major scan order, so repeated calls on the same
// map always return the same cell.
func (m *Map) MaxLoc() (row, col int) {
	if len(m.Data) == 0 {
		return 0, 0
	}
	idx := floats.MaxIdx(m.Data)
	return idx / m.Cols, idx % m.Cols
}

// IsZero reports whether every cell is zero.
func (m *Map) IsZero() bool {
	for _, v := range m.Data {
		if v != 0 {
			return false
		}
	}
	return true
}

// Scale multiplies every cell by f in place.
func (m *Map) Scale(f float64) {
	floats.Scale(f, m.Data)
}

// AddScaled adds w*other to m in place. Dimensions must match.
func (m *Map) AddScaled(w float64, other *Map) {
	floats.AddScaled(m.Data, w, other.Data)
}

// Normalize divides by the maximum so the peak becomes 1. An all-zero map
// is left unchanged; there is no evidence to scale.
func (m *Map) Normalize() {
	max := m.Max()
	if max == 0 {
		return
	}
	floats.Scale(1/max, m.Data)
}

// ClipNegative floors every cell at zero. Only positive evidence for a
// class is meaningful in an attribution map.
func (m *Map) ClipNegative() {
	for i, v := range m.Data {
		if v < 0 {
			m.Data[i] = 0
		}
	}
}
