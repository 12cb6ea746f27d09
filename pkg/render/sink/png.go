package sink

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
)

// PNGOption configures PNG encoding.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	level png.CompressionLevel
}

// WithCompression sets the zlib compression level (default png.DefaultCompression).
func WithCompression(l png.CompressionLevel) PNGOption {
	return func(r *pngRenderer) { r.level = l }
}

// RenderPNG encodes img as a lossless PNG.
func RenderPNG(img image.Image, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{level: png.DefaultCompression}
	for _, opt := range opts {
		opt(&r)
	}
	var buf bytes.Buffer
	enc := png.Encoder{CompressionLevel: r.level}
	if err := enc.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// PageFilename returns the download filename for the 1-based page n of year.
func PageFilename(year, n int) string {
	return fmt.Sprintf("anilist-wrapped-%d-page%d.png", year, n)
}
