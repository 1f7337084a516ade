// Package imaging turns uploaded pictures into bounded JPEGs.
package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif" // register decoders for image.Decode
	"image/jpeg"
	_ "image/png"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

const DefaultQuality = 85

var ErrEmptyImage = errors.New("imaging: empty image")

// Compress decodes data, scales it down so that neither side exceeds
// maxDimension while keeping the aspect ratio, and re-encodes it as JPEG.
// Pictures already within bounds are only re-encoded.
func Compress(data []byte, maxDimension, quality int) ([]byte, error) {
	if len(data) == 0 {
		return nil, ErrEmptyImage
	}
	if _, err := Sniff(data); err != nil {
		return nil, err
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("imaging: decode (format %q): %w", format, err)
	}

	bounds := img.Bounds()
	width, height := Fit(bounds.Dx(), bounds.Dy(), maxDimension)

	resized := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(resized, resized.Bounds(), img, bounds, draw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, resized, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("imaging: encode: %w", err)
	}
	return buf.Bytes(), nil
}

// Fit returns the largest size within maxDimension with the same aspect
// ratio as width x height. A non-positive maxDimension leaves it unchanged.
func Fit(width, height, maxDimension int) (int, int) {
	if maxDimension <= 0 || (width <= maxDimension && height <= maxDimension) {
		return width, height
	}
	if width >= height {
		h := height * maxDimension / width
		if h < 1 {
			h = 1
		}
		return maxDimension, h
	}
	w := width * maxDimension / height
	if w < 1 {
		w = 1
	}
	return w, maxDimension
}
