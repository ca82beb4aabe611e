package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"io"
	"net/http"

	"golang.org/x/image/draw"
)

// ThumbDimension is the maximum width or height for attachment previews.
const ThumbDimension = 320

// JPEGQuality is the compression quality for preview output.
const JPEGQuality = 85

// previewableMIME lists the input formats a preview can be rendered from.
var previewableMIME = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
}

// CanPreview reports whether a stored MIME type has a renderable preview.
// Anything else gets a caption-only entry in the dossier.
func CanPreview(mime string) bool {
	return previewableMIME[mime]
}

// Thumbnail reads image data, validates the format by sniffing bytes,
// downscales so neither dimension exceeds ThumbDimension, and re-encodes
// as JPEG.
func Thumbnail(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading image data: %w", err)
	}

	// Sniff the actual type from bytes rather than trusting the stored
	// MIME, which was guessed from the extension.
	detected := http.DetectContentType(data)
	if !previewableMIME[detected] {
		return nil, fmt.Errorf("no preview for format %s", detected)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}

	img = downscale(img, ThumbDimension)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: JPEGQuality}); err != nil {
		return nil, fmt.Errorf("encoding preview: %w", err)
	}
	return buf.Bytes(), nil
}

// downscale resizes the image so neither dimension exceeds maxDim,
// preserving aspect ratio with Catmull-Rom interpolation. Images already
// within bounds are returned unchanged.
func downscale(img image.Image, maxDim int) image.Image {
	bounds := img.Bounds()
	w := bounds.Dx()
	h := bounds.Dy()

	if w <= maxDim && h <= maxDim {
		return img
	}

	newW, newH := maxDim, maxDim
	if w > h {
		newH = int(float64(h) * float64(maxDim) / float64(w))
	} else {
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
