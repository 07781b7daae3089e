package saliency

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"xray-insight/internal/classifier"
)

// ComputeAttribution derives a class-discriminative localization map for
// classIndex: the target layer's gradients are average-pooled into
// per-channel importance weights, the activation channels are summed with
// those weights, and negative contributions are clipped. The result keeps
// the layer's coarse spatial resolution; see Postprocess for upsampling.
func ComputeAttribution(c classifier.Classifier, t *classifier.Tensor, classIndex int) (*Map, error) {
	classes := c.Classes()
	if classIndex < 0 || classIndex >= len(classes) {
		return nil, fmt.Errorf("%w: %d (model has %d classes)",
			classifier.ErrInvalidClassIndex, classIndex, len(classes))
	}

	acts, grads, err := c.ActivationGradients(t, classIndex)
	if err != nil {
		return nil, fmt.Errorf("gradient extraction for class %q: %w", classes[classIndex], err)
	}
	if acts.Channels != grads.Channels || acts.Rows != grads.Rows || acts.Cols != grads.Cols {
		return nil, fmt.Errorf("activation/gradient shape mismatch: %dx%dx%d vs %dx%dx%d",
			acts.Channels, acts.Rows, acts.Cols, grads.Channels, grads.Rows, grads.Cols)
	}

	planeSize := float64(acts.Rows * acts.Cols)
	m := NewMap(acts.Rows, acts.Cols)

	for ch := 0; ch < acts.Channels; ch++ {
		// Spatial mean of the gradient is the channel's importance weight
		weight := floats.Sum(grads.Plane(ch)) / planeSize
		m.AddScaled(weight, &Map{Rows: acts.Rows, Cols: acts.Cols, Data: acts.Plane(ch)})
	}

	m.ClipNegative()
	return m, nil
}
