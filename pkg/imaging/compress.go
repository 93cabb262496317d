package imaging

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// DefaultJPEGQuality is the re-encode quality for downscaled uploads.
const DefaultJPEGQuality = 80

// Result is a compressed image ready for upload. Changed is false when the
// source was already narrow enough and Data holds the original bytes.
type Result struct {
	Data        []byte
	ContentType string
	Changed     bool
}

// Downscale decodes an image, scales it down to at most maxWidth pixels
// wide preserving aspect ratio, and re-encodes it as JPEG. Images already
// narrow enough come back unchanged. Callers treat any error as "upload the
// original bytes instead".
func Downscale(data []byte, maxWidth int) (Result, error) {
	if maxWidth <= 0 {
		return Result{}, fmt.Errorf("invalid max width %d", maxWidth)
	}

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return Result{}, fmt.Errorf("decode image: %w", err)
	}

	bounds := src.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	if width <= maxWidth {
		return Result{Data: data}, nil
	}

	scaledHeight := height * maxWidth / width
	if scaledHeight < 1 {
		scaledHeight = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, maxWidth, scaledHeight))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: DefaultJPEGQuality}); err != nil {
		return Result{}, fmt.Errorf("encode jpeg: %w", err)
	}

	return Result{Data: buf.Bytes(), ContentType: "image/jpeg", Changed: true}, nil
}
