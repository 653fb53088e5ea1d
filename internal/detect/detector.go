package detect

import (
	"fmt"
	"image"
	"math"
	"sort"

	algaeimage "microalgae-counter/internal/image"
	"microalgae-counter/internal/settings"
	"microalgae-counter/pkg/geometry"

	"gocv.io/x/gocv"
)

// Pipeline converts an image to grayscale, smooths it, and hands it to a CircleFinder.
type Pipeline struct {
	Finder CircleFinder
	Order  Order
}

// DefaultPipeline returns a pipeline backed by OpenCV's Hough transform, numbering
// detections in the order the transform returns them.
func DefaultPipeline() *Pipeline {
	return &Pipeline{Finder: HoughFinder{}, Order: OrderDetector}
}

// Detect runs the default pipeline.
func Detect(img image.Image, params settings.DetectionParams) ([]Detection, error) {
	return DefaultPipeline().Run(img, params)
}

// Run detects circular objects in img. Finding nothing is not an error: the result is an
// empty, non-nil slice.
func (p *Pipeline) Run(img image.Image, params settings.DetectionParams) ([]Detection, error) {
	if img == nil || img.Bounds().Empty() {
		return nil, ErrEmptyImage
	}

	src, err := algaeimage.ToMat(img)
	if err != nil {
		return nil, fmt.Errorf("failed to convert image: %w", err)
	}
	defer src.Close()

	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(src, &gray, gocv.ColorBGRToGray)

	blurred := gocv.NewMat()
	defer blurred.Close()
	gocv.GaussianBlur(gray, &blurred, BlurKernel, BlurSigma, BlurSigma, gocv.BorderDefault)

	hp := HoughParamsFrom(params)
	circles, err := p.finder().FindCircles(blurred, hp)
	if err != nil {
		return nil, fmt.Errorf("circle detection failed: %w", err)
	}

	bounds := geometry.RectInt{Width: img.Bounds().Dx(), Height: img.Bounds().Dy()}
	return toDetections(circles, bounds, hp.MinRadius, hp.MaxRadius, p.Order), nil
}

func (p *Pipeline) finder() CircleFinder {
	if p.Finder == nil {
		return HoughFinder{}
	}
	return p.Finder
}

// toDetections rounds candidates to whole pixels, drops any whose centre falls outside the
// image or whose radius falls outside [minR, maxR], and numbers the rest from 1.
func toDetections(circles []geometry.Circle, bounds geometry.RectInt, minR, maxR int, order Order) []Detection {
	dets := make([]Detection, 0, len(circles))
	for _, c := range circles {
		center := c.Center.Round()
		r := int(math.Round(c.Radius))
		if !bounds.Contains(center) || r < minR || r > maxR {
			continue
		}
		dets = append(dets, Detection{X: center.X, Y: center.Y, Radius: r})
	}

	if order == OrderRowMajor {
		sort.SliceStable(dets, func(i, j int) bool {
			if dets[i].Y != dets[j].Y {
				return dets[i].Y < dets[j].Y
			}
			return dets[i].X < dets[j].X
		})
	}

	for i := range dets {
		dets[i].ID = i + 1
	}
	return dets
}
