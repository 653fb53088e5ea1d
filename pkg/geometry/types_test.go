package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRectIntContains(t *testing.T) {
	r := RectInt{Width: 100, Height: 50}

	assert.True(t, r.Contains(PointInt{X: 0, Y: 0}))
	assert.True(t, r.Contains(PointInt{X: 99, Y: 49}))
	assert.False(t, r.Contains(PointInt{X: 100, Y: 10}))
	assert.False(t, r.Contains(PointInt{X: 10, Y: 50}))
	assert.False(t, r.Contains(PointInt{X: -1, Y: 0}))
	assert.Equal(t, 5000, r.Area())
}

func TestPointRound(t *testing.T) {
	assert.Equal(t, PointInt{X: 25, Y: 76}, Point2D{X: 24.5, Y: 75.6}.Round())
	assert.Equal(t, PointInt{X: 3, Y: 4}, Point2D{X: 3.49, Y: 4.4}.Round())
	assert.InDelta(t, 5.0, Point2D{}.Distance(Point2D{X: 3, Y: 4}), 1e-9)
}
