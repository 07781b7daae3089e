// Package overlay projects saliency maps back onto the source radiograph as
// color-mapped heatmaps and peak region markers.
package overlay

import (
	"image/color"
	"math/rand"
	"sync"
	"time"

	"xray-insight/pkg/colorutil"
)

// goldenAngle spaces successive fallback hues so nearby classes never share
// a similar color.
const goldenAngle = 137.5

// pathologyColors is the fixed marker color per pathology. Names must match
// the classifier's class list exactly; anything else goes through the
// palette's fallback.
var pathologyColors = map[string]color.RGBA{
	"Pneumonia":     colorutil.Red,
	"Tuberculosis":  colorutil.Yellow,
	"COVID":         colorutil.Orange,
	"Atelectasis":   colorutil.Blue,
	"Cardiomegaly":  colorutil.Green,
	"Pneumothorax":  colorutil.Magenta,
	"Effusion":      colorutil.Cyan,
	"Cardiomediast": colorutil.Purple,
	"Edema":         colorutil.Pink,
}

// Palette resolves marker colors for class names. Unmapped names get a vivid
// color off a golden-angle hue walk that stays stable for the lifetime of
// the palette, so a class keeps its color across every overlay of a run.
type Palette struct {
	mu       sync.Mutex
	assigned map[string]color.RGBA
	hue      float64
}

// NewPalette creates a palette with a time-seeded fallback hue.
func NewPalette() *Palette {
	return NewPaletteWithSeed(time.Now().UnixNano())
}

// NewPaletteWithSeed creates a palette with a fixed fallback seed, for
// reproducible output.
func NewPaletteWithSeed(seed int64) *Palette {
	return &Palette{
		assigned: make(map[string]color.RGBA),
		hue:      rand.New(rand.NewSource(seed)).Float64() * 360,
	}
}

// ColorFor returns the marker color for a class name.
func (p *Palette) ColorFor(class string) color.RGBA {
	if c, ok := pathologyColors[class]; ok {
		return c
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if c, ok := p.assigned[class]; ok {
		return c
	}
	c := colorutil.Vivid(p.hue)
	p.hue += goldenAngle
	p.assigned[class] = c
	return c
}

// HasFixedColor reports whether a class has an entry in the fixed table.
func HasFixedColor(class string) bool {
	_, ok := pathologyColors[class]
	return ok
}
