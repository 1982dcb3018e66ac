package imaging

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"

	"github.com/chai2010/webp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

const (
	qualityMax  = 90
	qualityMin  = 10
	qualityStep = 10

	// Downscaling below this edge length cannot meaningfully shrink the
	// output any further; return the floor-quality encode instead.
	minEdge = 64
)

// CompressToWebP re-encodes an image as WebP at or under maxBytes.
// It walks the quality down from 90 in steps of 10; if the floor quality is
// still over budget it shrinks the canvas to 80% of its dimensions, resets
// the quality and tries again.
func CompressToWebP(data []byte, maxBytes int) ([]byte, error) {
	if maxBytes <= 0 {
		return nil, fmt.Errorf("invalid size budget %d", maxBytes)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("input is not a supported image: %w", err)
	}

	for {
		out, fits, err := encodePass(img, maxBytes)
		if err != nil {
			return nil, err
		}
		if fits {
			return out, nil
		}

		bounds := img.Bounds()
		if bounds.Dx() <= minEdge || bounds.Dy() <= minEdge {
			return out, nil
		}
		img = downscale(img, 0.8)
	}
}

// encodePass encodes at decreasing quality and reports whether the result
// came in under budget. When the floor is reached the floor-quality encode is
// returned as a best effort.
func encodePass(img image.Image, maxBytes int) ([]byte, bool, error) {
	var out []byte
	for quality := qualityMax; quality >= qualityMin; quality -= qualityStep {
		var buf bytes.Buffer
		if err := webp.Encode(&buf, img, &webp.Options{Quality: float32(quality)}); err != nil {
			return nil, false, fmt.Errorf("webp encode failed: %w", err)
		}
		out = buf.Bytes()
		if len(out) <= maxBytes {
			return out, true, nil
		}
	}
	return out, false, nil
}

func downscale(img image.Image, factor float64) image.Image {
	bounds := img.Bounds()
	w := int(float64(bounds.Dx()) * factor)
	h := int(float64(bounds.Dy()) * factor)
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return dst
}
