// Package imaging normalizes captured item photos before upload: oversized
// images are downscaled and everything is re-encoded as JPEG.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"io"

	"golang.org/x/image/draw"
)

// MaxDimension is the maximum width or height of a prepared photo.
const MaxDimension = 1200

// Quality ladder for JPEG encoding. The step-down reacts to encoder
// failure only: a successful encode at the starting quality is returned
// as-is regardless of byte size.
const (
	startQuality = 80
	qualityStep  = 10
	minQuality   = 10
)

// EncoderFunc serializes an image as JPEG at the given quality (1-100).
type EncoderFunc func(w io.Writer, img image.Image, quality int) error

func jpegEncode(w io.Writer, img image.Image, quality int) error {
	return jpeg.Encode(w, img, &jpeg.Options{Quality: quality})
}

// Processor prepares raw captured images for upload.
type Processor struct {
	encode EncoderFunc
}

// NewProcessor returns a processor backed by the standard JPEG encoder.
func NewProcessor() *Processor {
	return &Processor{encode: jpegEncode}
}

// NewProcessorWithEncoder returns a processor with a custom encoder.
func NewProcessorWithEncoder(enc EncoderFunc) *Processor {
	return &Processor{encode: enc}
}

// Prepare decodes the raw image, downscales it if its longest edge exceeds
// MaxDimension, and serializes it as JPEG. Encoding starts at the top of the
// quality ladder and steps down on encoder failure; once quality would drop
// below the floor the preparation fails permanently.
func (p *Processor) Prepare(data []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}

	img = downscale(img, MaxDimension)

	var lastErr error
	for quality := startQuality; quality >= minQuality; quality -= qualityStep {
		var buf bytes.Buffer
		if err := p.encode(&buf, img, quality); err != nil {
			lastErr = err
			continue
		}
		return buf.Bytes(), nil
	}

	return nil, fmt.Errorf("encoding JPEG failed at every quality step: %w", lastErr)
}

// downscale resizes the image so neither dimension exceeds maxDim,
// preserving aspect ratio. Returns the original image if already within
// bounds. Uses Catmull-Rom interpolation.
func downscale(img image.Image, maxDim int) image.Image {
	bounds := img.Bounds()
	w := bounds.Dx()
	h := bounds.Dy()

	if w <= maxDim && h <= maxDim {
		return img
	}

	newW, newH := w, h
	if w > h {
		newW = maxDim
		newH = int(float64(h) * float64(maxDim) / float64(w))
	} else {
		newH = maxDim
		newW = int(float64(w) * float64(maxDim) / float64(h))
	}

	if newW < 1 {
		newW = 1
	}
	if newH < 1 {
		newH = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, newW, newH))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return dst
}
