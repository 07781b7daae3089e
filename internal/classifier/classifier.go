// Package classifier defines the chest X-ray classifier contract and its
// ONNX runtime adapter. The model itself is opaque: the pipeline only needs
// forward scores plus target-layer activations and their class gradients.
package classifier

import (
	"errors"
	"sort"
)

// ErrInvalidClassIndex indicates a target class outside the model's output range.
// Callers are expected to validate and skip rather than abort a batch.
var ErrInvalidClassIndex = errors.New("class index out of range")

// Classifier is the contract the saliency pipeline requires from a model:
// an ordered class list matching the score vector, forward inference, and
// gradient extraction at an intermediate convolutional layer.
type Classifier interface {
	// Classes returns the ordered pathology names matching score indices.
	Classes() []string

	// Predict runs forward inference and returns one score per class.
	Predict(t *Tensor) ([]float32, error)

	// ActivationGradients returns the target layer's activations and the
	// gradient of the given class score with respect to those activations.
	ActivationGradients(t *Tensor, classIndex int) (acts, grads *Volume, err error)
}

// Tensor is a dense float32 input tensor in NCHW layout.
type Tensor struct {
	Data  []float32
	Shape []int64
}

// Volume is a single-sample stack of 2-D feature planes (channel-major).
type Volume struct {
	Channels int
	Rows     int
	Cols     int
	Data     []float64
}

// NewVolume allocates a zeroed volume.
func NewVolume(channels, rows, cols int) *Volume {
	return &Volume{
		Channels: channels,
		Rows:     rows,
		Cols:     cols,
		Data:     make([]float64, channels*rows*cols),
	}
}

// Plane returns the backing slice for one channel's rows*cols plane.
func (v *Volume) Plane(c int) []float64 {
	n := v.Rows * v.Cols
	return v.Data[c*n : (c+1)*n]
}

// At returns the value at (channel, row, col).
func (v *Volume) At(c, r, col int) float64 {
	return v.Data[(c*v.Rows+r)*v.Cols+col]
}

// Set stores a value at (channel, row, col).
func (v *Volume) Set(c, r, col int, val float64) {
	v.Data[(c*v.Rows+r)*v.Cols+col] = val
}

// Prediction pairs a pathology name with the model's confidence.
type Prediction struct {
	Class      string
	Confidence float64
}

// PredictionSet holds per-class confidences in the classifier's class order.
// That order is what breaks confidence ties, so it must be preserved.
type PredictionSet []Prediction

// Get returns the confidence for a class name.
func (ps PredictionSet) Get(class string) (float64, bool) {
	for _, p := range ps {
		if p.Class == class {
			return p.Confidence, true
		}
	}
	return 0, false
}

// Ranked returns a copy sorted by descending confidence. Ties keep the
// original class order (stable sort).
func (ps PredictionSet) Ranked() PredictionSet {
	ranked := make(PredictionSet, len(ps))
	copy(ranked, ps)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Confidence > ranked[j].Confidence
	})
	return ranked
}

// Names returns the class names in the set's current order.
func (ps PredictionSet) Names() []string {
	names := make([]string, len(ps))
	for i, p := range ps {
		names[i] = p.Class
	}
	return names
}

// PredictionsFrom pairs a score vector with its class list.
func PredictionsFrom(classes []string, scores []float32) PredictionSet {
	n := len(scores)
	if len(classes) < n {
		n = len(classes)
	}
	ps := make(PredictionSet, 0, n)
	for i := 0; i < n; i++ {
		ps = append(ps, Prediction{Class: classes[i], Confidence: float64(scores[i])})
	}
	return ps
}
