// Package settings provides the detection parameters and their JSON persistence.
package settings

// Bounds of every detection parameter, matching the range of the parameter sliders.
const (
	ParamMin = 1
	ParamMax = 100
)

// DetectionParams holds the five user-tunable circle detection parameters.
type DetectionParams struct {
	MinDist     int `json:"min_dist"`      // Minimum distance between cell centres (pixels)
	Sensitivity int `json:"sensibilidade"` // Edge detector high threshold
	Accuracy    int `json:"acuracia"`      // Accumulator threshold for circle centres
	MinRadius   int `json:"min_radius"`    // Smallest cell radius (pixels)
	MaxRadius   int `json:"max_radius"`    // Largest cell radius (pixels)
}

// DefaultParams returns the parameters used when no settings record exists.
func DefaultParams() DetectionParams {
	return DetectionParams{
		MinDist:     20,
		Sensitivity: 50,
		Accuracy:    30,
		MinRadius:   5,
		MaxRadius:   50,
	}
}

// Clamp returns a copy with every field limited to [ParamMin, ParamMax].
func (p DetectionParams) Clamp() DetectionParams {
	p.MinDist = clamp(p.MinDist)
	p.Sensitivity = clamp(p.Sensitivity)
	p.Accuracy = clamp(p.Accuracy)
	p.MinRadius = clamp(p.MinRadius)
	p.MaxRadius = clamp(p.MaxRadius)
	return p
}

// RadiusRange returns the radius search range with min <= max,
// whichever order the two sliders were left in.
func (p DetectionParams) RadiusRange() (lo, hi int) {
	if p.MinRadius > p.MaxRadius {
		return p.MaxRadius, p.MinRadius
	}
	return p.MinRadius, p.MaxRadius
}

// WithRadiusRange returns a copy of params with a new radius range.
func (p DetectionParams) WithRadiusRange(minRadius, maxRadius int) DetectionParams {
	p.MinRadius = minRadius
	p.MaxRadius = maxRadius
	return p
}

func clamp(v int) int {
	if v < ParamMin {
		return ParamMin
	}
	if v > ParamMax {
		return ParamMax
	}
	return v
}
