// Package colorutil provides the shared colour palette for the microalgae counter.
package colorutil

import (
	"fmt"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// Theme hex codes. The same palette drives the Fyne theme and the annotation overlay.
const (
	HexPrimary    = "#2196F3" // Blue
	HexSuccess    = "#4CAF50" // Green
	HexWarning    = "#FFC107" // Amber
	HexDanger     = "#F44336" // Red
	HexBackground = "#F5F5F5" // Light gray
	HexText       = "#212121" // Dark text
)

// Palette colours used throughout the application.
var (
	Primary    = MustHex(HexPrimary)
	Success    = MustHex(HexSuccess)
	Warning    = MustHex(HexWarning)
	Danger     = MustHex(HexDanger)
	Background = MustHex(HexBackground)
	Text       = MustHex(HexText)
)

// Hex parses a "#RRGGBB" string into an opaque RGBA colour.
func Hex(s string) (color.RGBA, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid hex colour %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}

// MustHex is like Hex but panics on malformed input. Only for package-level constants.
func MustHex(s string) color.RGBA {
	c, err := Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// NRGBA returns c as a color.NRGBA, which is what Fyne theme colours expect.
func NRGBA(c color.RGBA) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}
