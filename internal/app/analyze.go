package app

import (
	"fmt"
	"log"
	"time"

	"gocv.io/x/gocv"

	"xray-insight/internal/classifier"
	"xray-insight/internal/config"
	"xray-insight/internal/filmlabel"
	"xray-insight/internal/overlay"
	"xray-insight/internal/report"
	"xray-insight/internal/saliency"
	"xray-insight/internal/xray"
)

// Analyzer runs the full analysis pipeline: classification, saliency map
// generation, and report text. It holds no per-run state; every Analyze call
// produces a fresh AnalysisResult that owns all of its artifacts.
type Analyzer struct {
	Classifier classifier.Classifier
	Labels     *filmlabel.Engine // optional; nil disables film annotation OCR
	Palette    *overlay.Palette
	Alpha      float64
	Regions    overlay.RegionOptions
}

// NewAnalyzer wires an analyzer from configuration.
func NewAnalyzer(c classifier.Classifier, labels *filmlabel.Engine, cfg *config.Config) *Analyzer {
	regions := overlay.DefaultRegionOptions()
	if cfg.MaxRegions > 0 {
		regions.MaxRegions = cfg.MaxRegions
	}
	return &Analyzer{
		Classifier: c,
		Labels:     labels,
		Palette:    overlay.NewPalette(),
		Alpha:      cfg.OverlayAlpha,
		Regions:    regions,
	}
}

// AnalysisResult holds everything one analysis produced. The result owns a
// copy of the original image and all maps; nothing is shared with later
// runs. Close releases the image copy.
type AnalysisResult struct {
	Predictions classifier.PredictionSet
	Ranked      []string // All predicted classes, most confident first
	Maps        saliency.Collection
	Combined    *saliency.Map
	Markers     []filmlabel.Marker
	Summary     string
	Detailed    string

	original gocv.Mat
	palette  *overlay.Palette
	alpha    float64
	regions  overlay.RegionOptions
}

// Analyze runs the pipeline over a loaded radiograph.
func (a *Analyzer) Analyze(r *xray.Radiograph) (*AnalysisResult, error) {
	if r == nil || r.Mat.Empty() {
		return nil, fmt.Errorf("no radiograph loaded")
	}
	if a.Classifier == nil {
		return nil, fmt.Errorf("no classifier configured")
	}

	tensor, err := classifier.Preprocess(r.Image)
	if err != nil {
		return nil, fmt.Errorf("preprocessing failed: %w", err)
	}

	scores, err := a.Classifier.Predict(tensor)
	if err != nil {
		return nil, fmt.Errorf("classification failed: %w", err)
	}
	preds := classifier.PredictionsFrom(a.Classifier.Classes(), scores)

	maps, ranked := saliency.GenerateAll(a.Classifier, tensor, preds, a.Classifier.Classes())
	combined := saliency.Combine(maps, preds)

	// Film annotation OCR is best-effort; a failure never fails the run
	var markers []filmlabel.Marker
	if a.Labels != nil {
		markers, err = a.Labels.ScanMargins(r.Mat)
		if err != nil {
			log.Printf("film label scan failed: %v", err)
			markers = nil
		}
	}

	return &AnalysisResult{
		Predictions: preds,
		Ranked:      ranked,
		Maps:        maps,
		Combined:    combined,
		Markers:     markers,
		Summary:     report.Summary(preds),
		Detailed:    report.Detailed(preds, time.Now()),
		original:    r.Mat.Clone(),
		palette:     a.Palette,
		alpha:       a.Alpha,
		regions:     a.Regions,
	}, nil
}

// Original returns the result's copy of the source image. The caller must
// not Close it; the result owns it.
func (res *AnalysisResult) Original() gocv.Mat {
	return res.original
}

// CombinedOverlay renders the confidence-weighted combined heatmap blended
// onto the original image. The caller owns the returned Mat.
func (res *AnalysisResult) CombinedOverlay() gocv.Mat {
	return overlay.Overlay(res.original, res.Combined, res.alpha)
}

// OverlayFor renders one class's heatmap blended onto the original image.
// Classes without a saliency map yield an unmodified copy. The caller owns
// the returned Mat.
func (res *AnalysisResult) OverlayFor(class string) gocv.Mat {
	m, ok := res.Maps[class]
	if !ok {
		return res.original.Clone()
	}
	return overlay.Overlay(res.original, m, res.alpha)
}

// RegionOverlay renders peak markers for the top findings, most confident
// topmost. The caller owns the returned Mat.
func (res *AnalysisResult) RegionOverlay() gocv.Mat {
	return overlay.DrawRegions(res.original, res.Maps, res.Predictions, res.palette, res.regions)
}

// PeakFor returns the peak image coordinate for a class's saliency map,
// for interactive selection. ok is false when the class has no map.
func (res *AnalysisResult) PeakFor(class string) (row, col int, ok bool) {
	m, found := res.Maps[class]
	if !found {
		return 0, 0, false
	}
	pr, pc := overlay.PeakOf(m)
	row, col = overlay.RescalePoint(pr, pc, m.Rows, m.Cols, res.original.Rows(), res.original.Cols())
	return row, col, true
}

// ViewNames lists the overlay views available for display: the combined
// view, the region marker view, and each class that resolved to a map.
func (res *AnalysisResult) ViewNames() []string {
	names := []string{"Combined", "Regions"}
	for _, class := range res.Ranked {
		if _, ok := res.Maps[class]; ok {
			names = append(names, class)
		}
	}
	return names
}

// SaveOverlays writes the combined, region, and per-class overlays into the
// artifact set for report embedding.
func (res *AnalysisResult) SaveOverlays(art *report.Artifacts) error {
	combined := res.CombinedOverlay()
	defer combined.Close()
	if _, err := art.SavePNG("combined", combined); err != nil {
		return err
	}

	regions := res.RegionOverlay()
	defer regions.Close()
	if _, err := art.SavePNG("regions", regions); err != nil {
		return err
	}

	for class := range res.Maps {
		img := res.OverlayFor(class)
		if _, err := art.SavePNG(class, img); err != nil {
			img.Close()
			return err
		}
		img.Close()
	}
	return nil
}

// Close releases the result's copy of the original image.
func (res *AnalysisResult) Close() {
	if !res.original.Empty() {
		res.original.Close()
	}
}
