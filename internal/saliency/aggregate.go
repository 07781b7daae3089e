package saliency

import (
	"log"

	"xray-insight/internal/classifier"
)

// Collection maps class names to their post-processed saliency maps. A
// collection is built fresh for each analyzed image and never persisted.
type Collection map[string]*Map

// GenerateAll computes a post-processed saliency map for every prediction
// whose class resolves against the model's known class list, in descending
// confidence order (ties keep the prediction set's order).
//
// The returned ranking contains every predicted class, including ones that
// were skipped, so callers can still present "no visualization available"
// entries. A class that fails to resolve or whose attribution fails is
// skipped without aborting the batch.
func GenerateAll(c classifier.Classifier, t *classifier.Tensor, preds classifier.PredictionSet, known []string) (Collection, []string) {
	ranked := preds.Ranked()
	maps := make(Collection, len(ranked))
	names := make([]string, 0, len(ranked))

	for _, p := range ranked {
		names = append(names, p.Class)

		idx := indexOf(known, p.Class)
		if idx < 0 {
			continue
		}

		raw, err := ComputeAttribution(c, t, idx)
		if err != nil {
			log.Printf("saliency: skipping %q: %v", p.Class, err)
			continue
		}
		maps[p.Class] = Postprocess(raw, MapSize, MapSize)
	}

	return maps, names
}

// Combine produces a confidence-weighted average of the collection's maps,
// finished with the same smoothing pass as Postprocess for visual
// consistency. A collection with zero total weight yields an all-zero map.
func Combine(maps Collection, preds classifier.PredictionSet) *Map {
	avg := NewMap(MapSize, MapSize)
	totalWeight := 0.0

	// Iterate the ranked prediction order rather than the map, so the
	// accumulation order is deterministic.
	for _, p := range preds.Ranked() {
		m, ok := maps[p.Class]
		if !ok || m.Rows != avg.Rows || m.Cols != avg.Cols {
			continue
		}
		avg.AddScaled(p.Confidence, m)
		totalWeight += p.Confidence
	}

	if totalWeight > 0 {
		avg.Scale(1 / totalWeight)
	}

	return Smooth(avg, BlurKernel)
}

func indexOf(names []string, name string) int {
	for i, n := range names {
		if n == name {
			return i
		}
	}
	return -1
}
