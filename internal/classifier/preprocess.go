package classifier

import (
	"fmt"
	"image"

	"github.com/nfnt/resize"
)

// InputSize is the spatial resolution the pretrained model expects.
const InputSize = 224

// Normalization range used by the torchxrayvision family of models:
// 8-bit pixel values are mapped linearly onto [-1024, 1024].
const normalizationRange = 1024.0

// Preprocess converts a decoded radiograph into the model input tensor:
// resize to InputSize, collapse color channels to a single luminance plane,
// and normalize to the model's expected value range.
func Preprocess(img image.Image) (*Tensor, error) {
	if img == nil {
		return nil, fmt.Errorf("nil image")
	}
	bounds := img.Bounds()
	if bounds.Dx() == 0 || bounds.Dy() == 0 {
		return nil, fmt.Errorf("empty image %dx%d", bounds.Dx(), bounds.Dy())
	}

	resized := resize.Resize(InputSize, InputSize, img, resize.Lanczos3)

	data := make([]float32, InputSize*InputSize)
	rb := resized.Bounds()
	for y := 0; y < InputSize; y++ {
		for x := 0; x < InputSize; x++ {
			r, g, b, _ := resized.At(rb.Min.X+x, rb.Min.Y+y).RGBA()
			// Mean over channels, 16-bit -> 8-bit
			gray := float64(r>>8+g>>8+b>>8) / 3.0
			data[y*InputSize+x] = float32(gray/255.0*2*normalizationRange - normalizationRange)
		}
	}

	return &Tensor{
		Data:  data,
		Shape: []int64{1, 1, InputSize, InputSize},
	}, nil
}
