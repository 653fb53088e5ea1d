package image

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatRoundTrip(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 7, 5))
	for y := 0; y < 5; y++ {
		for x := 0; x < 7; x++ {
			src.Set(x, y, color.RGBA{R: uint8(x * 30), G: uint8(y * 40), B: 7, A: 255})
		}
	}

	mat, err := ToMat(src)
	require.NoError(t, err)
	defer mat.Close()

	assert.Equal(t, 5, mat.Rows())
	assert.Equal(t, 7, mat.Cols())
	assert.Equal(t, 3, mat.Channels())
	// BGR ordering
	assert.Equal(t, uint8(7), mat.GetUCharAt(2, 3*3+0))
	assert.Equal(t, uint8(80), mat.GetUCharAt(2, 3*3+1))
	assert.Equal(t, uint8(90), mat.GetUCharAt(2, 3*3+2))

	back, err := FromMat(mat)
	require.NoError(t, err)
	assert.Equal(t, src.Pix, back.(*image.RGBA).Pix)
}

func TestToMatRejectsEmpty(t *testing.T) {
	mat, err := ToMat(image.NewRGBA(image.Rect(0, 0, 0, 0)))
	defer mat.Close()
	assert.Error(t, err)
}
