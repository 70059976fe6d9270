package qr

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		bagID string
	}{
		{"uuid style", "7F9A1C22-0B1D-4E7C-9F1A-3C5D8E2B4A60"},
		{"short id", "B1"},
		{"non ascii", "torba-ščit-42"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := Encode(tt.bagID)
			require.NoError(t, err)

			payload, ok := Decode(img)
			require.True(t, ok)
			assert.Equal(t, tt.bagID, payload)
		})
	}
}

func TestEncodeEmptyID(t *testing.T) {
	_, err := Encode("")
	assert.Error(t, err)

	_, err = EncodePNG("")
	assert.Error(t, err)
}

func TestDecodeImageWithoutCode(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 120, 120))
	for x := 0; x < 120; x++ {
		for y := 0; y < 120; y++ {
			img.Set(x, y, color.RGBA{200, 200, 200, 255})
		}
	}

	payload, ok := Decode(img)
	assert.False(t, ok)
	assert.Empty(t, payload)
}

func TestDecodeReaderRoundTrip(t *testing.T) {
	data, err := EncodePNG("B1")
	require.NoError(t, err)

	payload, ok := DecodeReader(bytes.NewReader(data))
	require.True(t, ok)
	assert.Equal(t, "B1", payload)
}

func TestDecodeReaderGarbage(t *testing.T) {
	_, ok := DecodeReader(bytes.NewReader([]byte("not an image")))
	assert.False(t, ok)
}

func TestEncodePNGIsValidPNG(t *testing.T) {
	data, err := EncodePNG("7F9A1C22-0B1D-4E7C-9F1A-3C5D8E2B4A60")
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.True(t, img.Bounds().Dx() > 0)
}
