// Package detect runs Hough circle detection over microscopy images to locate cells.
package detect

import (
	"errors"

	"microalgae-counter/pkg/geometry"
)

// ErrEmptyImage is returned when detection is asked to run on an image with no pixels.
var ErrEmptyImage = errors.New("empty image")

// Detection is one circular object found in the image. IDs run 1..N within a single run.
type Detection struct {
	ID     int `json:"id"`
	X      int `json:"x"`
	Y      int `json:"y"`
	Radius int `json:"radius"`
}

// Center returns the detection centre.
func (d Detection) Center() geometry.PointInt {
	return geometry.PointInt{X: d.X, Y: d.Y}
}

// Radii returns the radius of every detection, in order.
func Radii(dets []Detection) []float64 {
	radii := make([]float64, len(dets))
	for i, d := range dets {
		radii[i] = float64(d.Radius)
	}
	return radii
}

// Order selects how detections are numbered.
type Order int

const (
	// OrderDetector keeps the order the circle finder returned. OpenCV does not document this
	// order as stable or spatially meaningful; numbering may change between library versions.
	OrderDetector Order = iota
	// OrderRowMajor numbers detections top to bottom, then left to right.
	OrderRowMajor
)

func (o Order) String() string {
	switch o {
	case OrderDetector:
		return "Detector"
	case OrderRowMajor:
		return "RowMajor"
	default:
		return "Unknown"
	}
}
