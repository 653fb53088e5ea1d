// Package analysis derives count, size, and density figures from a detection run.
package analysis

import (
	"fmt"

	"microalgae-counter/internal/detect"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// DensityScale converts cells/pixel² into a readable figure (cells per million pixels).
const DensityScale = 1e6

// Summary holds the statistics of one detection run.
type Summary struct {
	Count      int     // Number of detections
	MeanRadius float64 // Arithmetic mean radius in pixels; 0 when Count is 0
	Density    float64 // Count / (Width*Height), unscaled

	StdDevRadius float64 // Sample standard deviation of the radii; 0 for fewer than two
	MinRadius    int
	MaxRadius    int

	Width  int
	Height int
}

// Summarize computes statistics for dets found in a width x height image.
// width and height must be positive (any successfully loaded image satisfies this).
func Summarize(dets []detect.Detection, width, height int) Summary {
	s := Summary{
		Count:  len(dets),
		Width:  width,
		Height: height,
	}
	if area := width * height; area > 0 {
		s.Density = float64(s.Count) / float64(area)
	}
	if s.Count == 0 {
		return s
	}

	radii := detect.Radii(dets)
	s.MeanRadius = stat.Mean(radii, nil)
	if s.Count > 1 {
		s.StdDevRadius = stat.StdDev(radii, nil)
	}
	s.MinRadius = int(floats.Min(radii))
	s.MaxRadius = int(floats.Max(radii))
	return s
}

// Zero returns the summary shown before any detection run.
func Zero() Summary {
	return Summary{}
}

// ScaledDensity returns Density multiplied by DensityScale.
func (s Summary) ScaledDensity() float64 {
	return s.Density * DensityScale
}

// FormatCount returns the count as displayed.
func (s Summary) FormatCount() string {
	return fmt.Sprintf("%d", s.Count)
}

// FormatRadius returns the mean radius with one decimal.
func (s Summary) FormatRadius() string {
	return fmt.Sprintf("%.1f", s.MeanRadius)
}

// FormatDensity returns the scaled density with two decimals.
func (s Summary) FormatDensity() string {
	return fmt.Sprintf("%.2f", s.ScaledDensity())
}
