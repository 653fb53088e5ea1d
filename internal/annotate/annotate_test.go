package annotate

import (
	"image"
	"image/color"
	"testing"

	"microalgae-counter/internal/detect"
	"microalgae-counter/pkg/colorutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func grayImage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = 128, 128, 128, 255
	}
	return img
}

func rgbaAt(img image.Image, x, y int) color.RGBA {
	return color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
}

func TestAnnotateDrawsOverlay(t *testing.T) {
	src := grayImage(120, 120)
	before := append([]uint8(nil), src.Pix...)

	dets := []detect.Detection{
		{ID: 1, X: 40, Y: 60, Radius: 15},
		{ID: 2, X: 90, Y: 90, Radius: 10},
	}

	out, err := Annotate(src, dets)
	require.NoError(t, err)
	assert.Equal(t, src.Bounds(), out.Bounds())
	assert.Equal(t, before, src.Pix, "source image must not be modified")

	// Outline on the right edge of each circle.
	assert.Equal(t, colorutil.Success, rgbaAt(out, 55, 60))
	assert.Equal(t, colorutil.Success, rgbaAt(out, 100, 90))

	// Centre marker ring.
	assert.Equal(t, colorutil.Danger, rgbaAt(out, 42, 60))

	// Far from any detection the image is untouched.
	assert.Equal(t, color.RGBA{R: 128, G: 128, B: 128, A: 255}, rgbaAt(out, 5, 115))

	// Some label pixels exist above-left of the first centre.
	labelled := false
	for y := 35; y <= 52 && !labelled; y++ {
		for x := 28; x <= 45; x++ {
			if rgbaAt(out, x, y) == colorutil.Primary {
				labelled = true
				break
			}
		}
	}
	assert.True(t, labelled, "expected ID label drawn near the first detection")
}

func TestAnnotateNoDetectionsCopiesImage(t *testing.T) {
	src := grayImage(20, 10)

	out, err := Annotate(src, nil)
	require.NoError(t, err)
	assert.Equal(t, src.Pix, out.(*image.RGBA).Pix)
}

func TestAnnotateEmptyImage(t *testing.T) {
	_, err := Annotate(image.NewRGBA(image.Rect(0, 0, 0, 0)), nil)
	assert.Error(t, err)
}
