// Package qr links a physical bag label to its server-side identity. The
// payload is the literal bag id encoded as UTF-8, with no wrapping schema:
// whatever text a scan yields is handed to the sync layer as a lookup key,
// and a bad scan surfaces as a lookup miss there, not here.
package qr

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/makiuchi-d/gozxing"
	zxqr "github.com/makiuchi-d/gozxing/qrcode"
	qrcode "github.com/skip2/go-qrcode"
)

// moduleScale is the pixel width of one QR module in rendered labels.
const moduleScale = 10

// Encode renders the bag id as a QR code image at a fixed module scale,
// using the codec's default error-correction level.
func Encode(bagID string) (image.Image, error) {
	if bagID == "" {
		return nil, fmt.Errorf("empty bag id")
	}
	code, err := qrcode.New(bagID, qrcode.Medium)
	if err != nil {
		return nil, fmt.Errorf("encoding qr: %w", err)
	}
	// Negative size scales each module instead of fixing the image size.
	return code.Image(-moduleScale), nil
}

// EncodePNG renders the bag id as a PNG byte slice, for writing label files.
func EncodePNG(bagID string) ([]byte, error) {
	if bagID == "" {
		return nil, fmt.Errorf("empty bag id")
	}
	data, err := qrcode.Encode(bagID, qrcode.Medium, -moduleScale)
	if err != nil {
		return nil, fmt.Errorf("encoding qr: %w", err)
	}
	return data, nil
}

// Decode detects at most one QR code in the image and returns its payload.
// The second return is false when no code was found; detection failure is
// never an error. Both capture paths (live scan frames and gallery stills)
// funnel into this primitive.
func Decode(img image.Image) (string, bool) {
	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		return "", false
	}
	result, err := zxqr.NewQRCodeReader().Decode(bmp, nil)
	if err != nil {
		return "", false
	}
	return result.GetText(), true
}

// DecodeReader decodes the first QR code from an encoded image stream
// (PNG or JPEG).
func DecodeReader(r io.Reader) (string, bool) {
	img, _, err := image.Decode(r)
	if err != nil {
		return "", false
	}
	return Decode(img)
}
