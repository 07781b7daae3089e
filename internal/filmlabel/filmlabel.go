// Package filmlabel reads burned-in film annotations from radiograph
// margins: laterality markers ("L"/"R"), projection markers ("AP", "PA",
// "LAT"), and positioning notes ("SUPINE", "ERECT", "PORTABLE"). These were
// exposed onto the film itself, so they survive digitization and show up as
// bright text near the image edges.
package filmlabel

import (
	"fmt"
	"image"
	"strings"

	"github.com/otiai10/gosseract/v2"
	"gocv.io/x/gocv"
)

// markerChars restricts OCR to the characters that appear in film markers.
// Excludes lowercase to reduce confusion (0/O, 1/I, etc.)
const markerChars = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ-/:"

// knownMarkers are the annotation tokens worth surfacing in a report.
var knownMarkers = map[string]string{
	"L":        "left laterality marker",
	"R":        "right laterality marker",
	"AP":       "anteroposterior projection",
	"PA":       "posteroanterior projection",
	"LAT":      "lateral projection",
	"SUPINE":   "supine positioning",
	"ERECT":    "erect positioning",
	"PORTABLE": "portable acquisition",
}

// Marker is one recognized film annotation.
type Marker struct {
	Token       string // The raw OCR token, uppercased
	Description string // Human-readable meaning
}

// Engine performs OCR over radiograph margins using Tesseract.
type Engine struct {
	client *gosseract.Client
}

// NewEngine creates a film label OCR engine.
func NewEngine() (*Engine, error) {
	client := gosseract.NewClient()

	if err := client.SetLanguage("eng"); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to set OCR language: %w", err)
	}

	// Film markers are not dictionary words; disable word correction
	_ = client.SetVariable("load_system_dawg", "false")
	_ = client.SetVariable("load_freq_dawg", "false")

	return &Engine{client: client}, nil
}

// Close releases OCR resources.
func (e *Engine) Close() error {
	if e.client != nil {
		return e.client.Close()
	}
	return nil
}

// ScanMargins runs OCR over the four edge strips of the radiograph and
// returns any recognized film markers. The scan is best-effort: an
// unreadable margin contributes nothing rather than failing the analysis.
func (e *Engine) ScanMargins(img gocv.Mat) ([]Marker, error) {
	if img.Empty() {
		return nil, fmt.Errorf("empty image")
	}

	h, w := img.Rows(), img.Cols()
	strip := h / 8
	if strip < 16 {
		strip = minInt(16, h)
	}

	regions := []image.Rectangle{
		image.Rect(0, 0, w, strip),        // top
		image.Rect(0, h-strip, w, h),      // bottom
		image.Rect(0, 0, w/4, h),          // left
		image.Rect(w-w/4, 0, w, h),        // right
	}

	seen := make(map[string]bool)
	var markers []Marker
	for _, rect := range regions {
		text, err := e.recognizeRegion(img, rect)
		if err != nil {
			continue
		}
		for _, token := range strings.Fields(text) {
			desc, ok := knownMarkers[token]
			if !ok || seen[token] {
				continue
			}
			seen[token] = true
			markers = append(markers, Marker{Token: token, Description: desc})
		}
	}

	return markers, nil
}

// recognizeRegion performs OCR on one margin strip.
func (e *Engine) recognizeRegion(img gocv.Mat, rect image.Rectangle) (string, error) {
	region := img.Region(rect)
	defer region.Close()

	processed := preprocessForOCR(region)
	defer processed.Close()

	buf, err := gocv.IMEncode(gocv.PNGFileExt, processed)
	if err != nil {
		return "", fmt.Errorf("failed to encode region: %w", err)
	}
	defer buf.Close()

	if err := e.client.SetPageSegMode(gosseract.PSM_SPARSE_TEXT); err != nil {
		return "", fmt.Errorf("failed to set PSM: %w", err)
	}
	if err := e.client.SetWhitelist(markerChars); err != nil {
		return "", fmt.Errorf("failed to set whitelist: %w", err)
	}
	if err := e.client.SetImageFromBytes(buf.GetBytes()); err != nil {
		return "", fmt.Errorf("failed to set image: %w", err)
	}

	text, err := e.client.Text()
	if err != nil {
		return "", fmt.Errorf("OCR failed: %w", err)
	}

	return strings.ToUpper(strings.TrimSpace(text)), nil
}

// preprocessForOCR isolates the bright burned-in text from the anatomy:
// grayscale, then a high threshold since marker text is near-white.
func preprocessForOCR(region gocv.Mat) gocv.Mat {
	gray := gocv.NewMat()
	defer gray.Close()
	if region.Channels() == 3 {
		gocv.CvtColor(region, &gray, gocv.ColorBGRToGray)
	} else {
		region.CopyTo(&gray)
	}

	binary := gocv.NewMat()
	gocv.Threshold(gray, &binary, 200, 255, gocv.ThresholdBinary)
	return binary
}

// DescribeMarkers renders markers as a single report line.
func DescribeMarkers(markers []Marker) string {
	if len(markers) == 0 {
		return "No film annotations detected."
	}
	parts := make([]string, len(markers))
	for i, m := range markers {
		parts[i] = fmt.Sprintf("%s (%s)", m.Token, m.Description)
	}
	return "Film annotations: " + strings.Join(parts, ", ")
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
