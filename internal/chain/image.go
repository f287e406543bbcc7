package chain

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"io"
)

// DecodePNG decodes PNG data into a pixel buffer normalized to RGBA
// with its origin at (0, 0), so buffers from different sources compare
// byte-for-byte.
func DecodePNG(r io.Reader) (*image.RGBA, error) {
	img, err := png.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("failed to decode PNG image: %w", err)
	}
	return normalize(img), nil
}

// normalize copies img into an RGBA buffer anchored at the origin.
func normalize(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Rect.Min == (image.Point{}) {
		return rgba
	}

	bounds := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(dst, dst.Rect, img, bounds.Min, draw.Src)
	return dst
}

// encodeImage renders the pixel buffer as a base64 string of PNG data,
// the embedded-image form used by the persisted chain format.
func encodeImage(img *image.RGBA) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("failed to encode reference image: %w", err)
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// decodeImage is the inverse of encodeImage. Any decode failure is
// returned so a malformed chain fails to load as a whole.
func decodeImage(s string) (*image.RGBA, error) {
	raw, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("failed to decode base64 image data: %w", err)
	}

	img, err := DecodePNG(bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}
	return img, nil
}

// imagesEqual reports whether two normalized buffers are pixel-for-pixel
// identical. Differing dimensions never compare equal.
func imagesEqual(a, b *image.RGBA) bool {
	if a.Rect.Dx() != b.Rect.Dx() || a.Rect.Dy() != b.Rect.Dy() {
		return false
	}
	return bytes.Equal(a.Pix, b.Pix)
}
