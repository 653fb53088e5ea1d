package detect

import (
	"image"

	"microalgae-counter/internal/settings"
)

// Pre-processing constants. These are fixed; only the Hough parameters are user-tunable.
var (
	BlurKernel = image.Point{X: 9, Y: 9}
)

const (
	BlurSigma = 2.0
	HoughDP   = 1.0 // Accumulator at full image resolution
)

// HoughParams holds the arguments passed to the circle finder.
type HoughParams struct {
	DP        float64 // Inverse ratio of accumulator resolution
	MinDist   float64 // Minimum distance between circle centres (pixels)
	Param1    float64 // Canny edge detector high threshold
	Param2    float64 // Accumulator threshold for circle centres
	MinRadius int
	MaxRadius int
}

// HoughParamsFrom maps the user's detection parameters onto finder arguments.
// Parameters are clamped to the slider range and the radius range is ordered.
func HoughParamsFrom(p settings.DetectionParams) HoughParams {
	p = p.Clamp()
	lo, hi := p.RadiusRange()
	return HoughParams{
		DP:        HoughDP,
		MinDist:   float64(p.MinDist),
		Param1:    float64(p.Sensitivity),
		Param2:    float64(p.Accuracy),
		MinRadius: lo,
		MaxRadius: hi,
	}
}
