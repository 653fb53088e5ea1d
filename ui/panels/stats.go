package panels

import (
	"image/color"

	"microalgae-counter/internal/analysis"
	"microalgae-counter/pkg/colorutil"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/data/binding"
	"fyne.io/fyne/v2/widget"
)

const statTextSize = 24

// StatsPanel shows the live analysis figures.
type StatsPanel struct {
	Count   binding.String
	Radius  binding.String
	Density binding.String

	container *fyne.Container
}

// NewStatsPanel creates the statistics panel, initialised to zero.
func NewStatsPanel() *StatsPanel {
	sp := &StatsPanel{
		Count:   binding.NewString(),
		Radius:  binding.NewString(),
		Density: binding.NewString(),
	}

	sp.container = container.NewVBox(
		widget.NewCard("Analysis Results", "", container.NewGridWithColumns(3,
			statColumn("Total Microalgae", sp.Count, colorutil.Primary),
			statColumn("Mean Size (pixels)", sp.Radius, colorutil.Success),
			statColumn("Density (microalgae/pixel²)", sp.Density, colorutil.Warning),
		)),
	)

	sp.Reset()
	return sp
}

// statColumn renders a caption above a large coloured value bound to data.
func statColumn(caption string, data binding.String, c color.Color) fyne.CanvasObject {
	value := fynecanvas.NewText("", c)
	value.TextSize = statTextSize
	value.TextStyle = fyne.TextStyle{Bold: true}
	value.Alignment = fyne.TextAlignCenter

	data.AddListener(binding.NewDataListener(func() {
		text, err := data.Get()
		if err != nil {
			return
		}
		value.Text = text
		value.Refresh()
	}))

	return container.NewVBox(
		widget.NewLabelWithStyle(caption, fyne.TextAlignCenter, fyne.TextStyle{}),
		value,
	)
}

// Update shows the figures of s.
func (sp *StatsPanel) Update(s analysis.Summary) {
	_ = sp.Count.Set(s.FormatCount())
	_ = sp.Radius.Set(s.FormatRadius())
	_ = sp.Density.Set(s.FormatDensity())
}

// Reset shows zeroes.
func (sp *StatsPanel) Reset() {
	sp.Update(analysis.Zero())
}

// Container returns the panel container.
func (sp *StatsPanel) Container() fyne.CanvasObject {
	return sp.container
}
