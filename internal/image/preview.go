package image

import (
	"image"

	"github.com/disintegration/imaging"
)

// DefaultPreviewSize is the longest side, in pixels, of an on-screen preview.
const DefaultPreviewSize = 400

// Preview returns img scaled so its longest side is at most maxSide, preserving aspect ratio.
// Images already within the limit are returned unscaled.
func Preview(img image.Image, maxSide int) image.Image {
	if img == nil {
		return nil
	}
	b := img.Bounds()
	if maxSide <= 0 || (b.Dx() <= maxSide && b.Dy() <= maxSide) {
		return img
	}
	return imaging.Fit(img, maxSide, maxSide, imaging.Lanczos)
}
