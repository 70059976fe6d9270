package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testJPEG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{uint8(x % 256), uint8(y % 256), 120, 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}))
	return buf.Bytes()
}

func decodedSize(t *testing.T, data []byte) (int, int) {
	t.Helper()
	img, err := jpeg.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	return img.Bounds().Dx(), img.Bounds().Dy()
}

func TestPrepareKeepsSmallImages(t *testing.T) {
	data := testJPEG(t, 640, 480)

	out, err := NewProcessor().Prepare(data)
	require.NoError(t, err)

	w, h := decodedSize(t, out)
	assert.Equal(t, 640, w)
	assert.Equal(t, 480, h)
}

func TestPrepareDownscalesLongEdge(t *testing.T) {
	tests := []struct {
		name         string
		w, h         int
		wantW, wantH int
	}{
		{"landscape", 2400, 1200, 1200, 600},
		{"portrait", 900, 1800, 600, 1200},
		{"square", 2000, 2000, 1200, 1200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := NewProcessor().Prepare(testJPEG(t, tt.w, tt.h))
			require.NoError(t, err)

			w, h := decodedSize(t, out)
			assert.Equal(t, tt.wantW, w)
			assert.Equal(t, tt.wantH, h)
		})
	}
}

func TestPrepareRejectsGarbage(t *testing.T) {
	_, err := NewProcessor().Prepare([]byte("definitely not an image"))
	assert.Error(t, err)
}

// The encoder is forced to fail above a threshold quality; Prepare must walk
// the ladder down and succeed at the first quality at or below it.
func TestPrepareStepsDownOnEncoderFailure(t *testing.T) {
	var attempts []int
	enc := func(w io.Writer, img image.Image, quality int) error {
		attempts = append(attempts, quality)
		if quality > 30 {
			return fmt.Errorf("encoder rejected quality %d", quality)
		}
		return jpegEncode(w, img, quality)
	}

	out, err := NewProcessorWithEncoder(enc).Prepare(testJPEG(t, 100, 100))
	require.NoError(t, err)
	assert.NotEmpty(t, out)
	assert.Equal(t, []int{80, 70, 60, 50, 40, 30}, attempts)
}

func TestPrepareFailsBelowQualityFloor(t *testing.T) {
	enc := func(w io.Writer, img image.Image, quality int) error {
		return fmt.Errorf("encoder always fails")
	}

	_, err := NewProcessorWithEncoder(enc).Prepare(testJPEG(t, 100, 100))
	assert.Error(t, err)
}
