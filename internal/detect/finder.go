package detect

import (
	"microalgae-counter/pkg/geometry"

	"gocv.io/x/gocv"
)

// CircleFinder locates circle candidates in a single-channel, pre-smoothed image.
type CircleFinder interface {
	FindCircles(gray gocv.Mat, params HoughParams) ([]geometry.Circle, error)
}

// HoughFinder finds circles with OpenCV's gradient Hough transform.
type HoughFinder struct{}

// FindCircles runs cv::HoughCircles and returns candidates in the order OpenCV yields them.
func (HoughFinder) FindCircles(gray gocv.Mat, params HoughParams) ([]geometry.Circle, error) {
	circles := gocv.NewMat()
	defer circles.Close()

	gocv.HoughCirclesWithParams(gray, &circles, gocv.HoughGradient,
		params.DP, params.MinDist,
		params.Param1, params.Param2,
		params.MinRadius, params.MaxRadius)

	if circles.Empty() || circles.Cols() == 0 {
		return nil, nil
	}

	// circles is a 1xN CV_32FC3 Mat of (x, y, radius).
	found := make([]geometry.Circle, circles.Cols())
	for i := 0; i < circles.Cols(); i++ {
		found[i] = geometry.Circle{
			Center: geometry.Point2D{
				X: float64(circles.GetFloatAt(0, i*3)),
				Y: float64(circles.GetFloatAt(0, i*3+1)),
			},
			Radius: float64(circles.GetFloatAt(0, i*3+2)),
		}
	}
	return found, nil
}
