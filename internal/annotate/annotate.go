// Package annotate draws detection overlays onto a copy of the source image.
package annotate

import (
	"fmt"
	"image"
	"strconv"

	"microalgae-counter/internal/detect"
	algaeimage "microalgae-counter/internal/image"
	"microalgae-counter/pkg/colorutil"

	"gocv.io/x/gocv"
)

// Overlay style. Colours come from the application palette.
const (
	outlineThickness = 2
	markerRadius     = 2
	markerThickness  = 3
	labelOffset      = 10
	labelScale       = 0.5
	labelThickness   = 2
)

// Annotate returns a copy of img with every detection outlined, its centre marked, and its
// ID written next to the centre. img itself is not modified.
func Annotate(img image.Image, dets []detect.Detection) (image.Image, error) {
	mat, err := algaeimage.ToMat(img)
	if err != nil {
		return nil, fmt.Errorf("failed to convert image: %w", err)
	}
	defer mat.Close()

	for _, d := range dets {
		center := d.Center().ToImagePoint()

		gocv.Circle(&mat, center, d.Radius, colorutil.Success, outlineThickness)
		gocv.Circle(&mat, center, markerRadius, colorutil.Danger, markerThickness)

		labelPos := image.Point{X: d.X - labelOffset, Y: d.Y - labelOffset}
		gocv.PutText(&mat, strconv.Itoa(d.ID), labelPos,
			gocv.FontHersheySimplex, labelScale, colorutil.Primary, labelThickness)
	}

	out, err := algaeimage.FromMat(mat)
	if err != nil {
		return nil, fmt.Errorf("failed to convert annotated image: %w", err)
	}
	return out, nil
}
