package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"
)

func testJPEG(w, h int) []byte {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{255, 0, 0, 255})
		}
	}
	var buf bytes.Buffer
	jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90})
	return buf.Bytes()
}

func testPNG(w, h int) []byte {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{0, 0, 255, 255})
		}
	}
	var buf bytes.Buffer
	png.Encode(&buf, img)
	return buf.Bytes()
}

func TestThumbnailJPEG(t *testing.T) {
	data, err := Thumbnail(bytes.NewReader(testJPEG(100, 100)))
	if err != nil {
		t.Fatalf("Thumbnail JPEG: %v", err)
	}
	if len(data) == 0 {
		t.Error("expected non-empty preview")
	}
}

func TestThumbnailPNG(t *testing.T) {
	data, err := Thumbnail(bytes.NewReader(testPNG(100, 100)))
	if err != nil {
		t.Fatalf("Thumbnail PNG: %v", err)
	}

	// Output is always JPEG.
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decoding preview: %v", err)
	}
	if format != "jpeg" {
		t.Errorf("expected jpeg output, got %s", format)
	}
	if img.Bounds().Dx() != 100 {
		t.Errorf("small image should keep its size, got %d", img.Bounds().Dx())
	}
}

func TestThumbnailDownscales(t *testing.T) {
	data, err := Thumbnail(bytes.NewReader(testJPEG(1280, 960)))
	if err != nil {
		t.Fatalf("Thumbnail large image: %v", err)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decoding preview: %v", err)
	}
	bounds := img.Bounds()
	if bounds.Dx() > ThumbDimension || bounds.Dy() > ThumbDimension {
		t.Errorf("preview %dx%d exceeds %d", bounds.Dx(), bounds.Dy(), ThumbDimension)
	}
	// Aspect ratio preserved: 1280x960 scales to 320x240.
	if bounds.Dx() != 320 || bounds.Dy() != 240 {
		t.Errorf("expected 320x240, got %dx%d", bounds.Dx(), bounds.Dy())
	}
}

func TestThumbnailRejectsNonImage(t *testing.T) {
	if _, err := Thumbnail(bytes.NewReader([]byte("%PDF-1.4 not an image"))); err == nil {
		t.Error("expected error for non-image data")
	}
}

func TestCanPreview(t *testing.T) {
	if !CanPreview("image/jpeg") || !CanPreview("image/png") {
		t.Error("expected jpeg and png to be previewable")
	}
	if CanPreview("application/pdf") || CanPreview("") {
		t.Error("expected non-image types to be skipped")
	}
}
