package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
)

func encodeTestPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 100, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png encode failed: %v", err)
	}
	return buf.Bytes()
}

func TestCompressToWebPFitsBudget(t *testing.T) {
	data := encodeTestPNG(t, 200, 200)

	out, err := CompressToWebP(data, 1<<20)
	if err != nil {
		t.Fatalf("CompressToWebP() error = %v", err)
	}
	if len(out) == 0 {
		t.Fatal("got empty output")
	}
	if len(out) > 1<<20 {
		t.Errorf("output %d bytes exceeds budget", len(out))
	}

	// Output must decode as WebP.
	if _, _, err := image.Decode(bytes.NewReader(out)); err != nil {
		t.Errorf("output does not decode: %v", err)
	}
}

func TestCompressToWebPTerminatesOnTinyBudget(t *testing.T) {
	data := encodeTestPNG(t, 400, 300)

	// A budget too small to ever satisfy still returns a best-effort encode.
	out, err := CompressToWebP(data, 10)
	if err != nil {
		t.Fatalf("CompressToWebP() error = %v", err)
	}
	if len(out) == 0 {
		t.Fatal("got empty output")
	}
}

func TestCompressToWebPRejectsNonImage(t *testing.T) {
	if _, err := CompressToWebP([]byte("not an image at all"), 1<<20); err == nil {
		t.Fatal("CompressToWebP() error = nil, want decode failure")
	}
}

func TestCompressToWebPRejectsBadBudget(t *testing.T) {
	if _, err := CompressToWebP(encodeTestPNG(t, 10, 10), 0); err == nil {
		t.Fatal("CompressToWebP() error = nil, want budget error")
	}
}
