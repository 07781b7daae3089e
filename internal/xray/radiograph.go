// Package xray provides radiograph loading and pixel-format conversion.
package xray

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"gocv.io/x/gocv"

	_ "golang.org/x/image/tiff"
)

// Radiograph holds a loaded chest film in both the decoded Go image form
// (used for classifier preprocessing) and a BGR Mat (used for overlays).
type Radiograph struct {
	Path  string
	Image image.Image
	Mat   gocv.Mat
}

// Load reads a radiograph from disk. Supported formats: PNG, JPEG, TIFF.
func Load(path string) (*Radiograph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open radiograph: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode radiograph: %w", err)
	}

	mat, err := ToMat(img)
	if err != nil {
		return nil, err
	}

	return &Radiograph{Path: path, Image: img, Mat: mat}, nil
}

// Close releases the Mat backing store.
func (r *Radiograph) Close() {
	if !r.Mat.Empty() {
		r.Mat.Close()
	}
}

// Width returns the film width in pixels.
func (r *Radiograph) Width() int {
	if r.Image == nil {
		return 0
	}
	return r.Image.Bounds().Dx()
}

// Height returns the film height in pixels.
func (r *Radiograph) Height() int {
	if r.Image == nil {
		return 0
	}
	return r.Image.Bounds().Dy()
}

// ToMat converts a Go image.Image to a gocv.Mat in BGR format.
func ToMat(img image.Image) (gocv.Mat, error) {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w == 0 || h == 0 {
		return gocv.NewMat(), fmt.Errorf("empty image")
	}

	mat := gocv.NewMatWithSize(h, w, gocv.MatTypeCV8UC3)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			mat.SetUCharAt(y, x*3+0, uint8(b>>8))
			mat.SetUCharAt(y, x*3+1, uint8(g>>8))
			mat.SetUCharAt(y, x*3+2, uint8(r>>8))
		}
	}

	return mat, nil
}

// SupportedFormats returns the list of supported radiograph file extensions.
func SupportedFormats() []string {
	return []string{".png", ".jpg", ".jpeg", ".tiff", ".tif"}
}

// IsSupportedFormat checks if the given path has a supported image format.
func IsSupportedFormat(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, format := range SupportedFormats() {
		if ext == format {
			return true
		}
	}
	return false
}
