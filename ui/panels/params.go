// Package panels provides UI panels for the application.
package panels

import (
	"fmt"

	"microalgae-counter/internal/app"
	"microalgae-counter/internal/settings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// paramSlider binds one integer detection parameter to a slider.
type paramSlider struct {
	title  string
	desc   string
	get    func(settings.DetectionParams) int
	set    func(*settings.DetectionParams, int)
	slider *widget.Slider
	value  *widget.Label
}

// ParamsPanel lets the user tune the five detection parameters.
type ParamsPanel struct {
	session   *app.Session
	sliders   []*paramSlider
	container *fyne.Container
	syncing   bool
}

// NewParamsPanel creates the detection parameter panel.
func NewParamsPanel(session *app.Session) *ParamsPanel {
	pp := &ParamsPanel{session: session}

	pp.sliders = []*paramSlider{
		{
			title: "Minimum Distance",
			desc:  "Minimum distance between microalgae (pixels)",
			get:   func(p settings.DetectionParams) int { return p.MinDist },
			set:   func(p *settings.DetectionParams, v int) { p.MinDist = v },
		},
		{
			title: "Sensitivity",
			desc:  "Edge detection sensitivity",
			get:   func(p settings.DetectionParams) int { return p.Sensitivity },
			set:   func(p *settings.DetectionParams, v int) { p.Sensitivity = v },
		},
		{
			title: "Accuracy",
			desc:  "Circle detection accuracy",
			get:   func(p settings.DetectionParams) int { return p.Accuracy },
			set:   func(p *settings.DetectionParams, v int) { p.Accuracy = v },
		},
		{
			title: "Minimum Radius",
			desc:  "Smallest microalgae size",
			get:   func(p settings.DetectionParams) int { return p.MinRadius },
			set:   func(p *settings.DetectionParams, v int) { p.MinRadius = v },
		},
		{
			title: "Maximum Radius",
			desc:  "Largest microalgae size",
			get:   func(p settings.DetectionParams) int { return p.MaxRadius },
			set:   func(p *settings.DetectionParams, v int) { p.MaxRadius = v },
		},
	}

	rows := container.NewVBox()
	for _, ps := range pp.sliders {
		ps.slider = widget.NewSlider(settings.ParamMin, settings.ParamMax)
		ps.slider.Step = 1
		ps.value = widget.NewLabel("")
		ps.slider.OnChanged = func(val float64) {
			ps.value.SetText(fmt.Sprintf("%d", int(val)))
			if pp.syncing {
				return
			}
			params := pp.session.Params()
			ps.set(&params, int(val))
			pp.session.SetParams(params)
		}

		desc := widget.NewLabel(ps.desc)
		desc.Wrapping = fyne.TextWrapWord

		rows.Add(container.NewVBox(
			container.NewBorder(nil, nil, nil, ps.value,
				widget.NewLabelWithStyle(ps.title, fyne.TextAlignLeading, fyne.TextStyle{Bold: true})),
			desc,
			ps.slider,
		))
	}

	pp.container = container.NewVBox(
		widget.NewCard("Detection Parameters", "", rows),
	)

	pp.Sync(session.Params())
	session.On(app.EventParamsChanged, func(data interface{}) {
		if p, ok := data.(settings.DetectionParams); ok {
			pp.Sync(p)
		}
	})

	return pp
}

// Sync moves the sliders to p without writing back to the session.
func (pp *ParamsPanel) Sync(p settings.DetectionParams) {
	pp.syncing = true
	defer func() { pp.syncing = false }()
	for _, ps := range pp.sliders {
		v := float64(ps.get(p))
		if ps.slider.Value != v {
			ps.slider.SetValue(v)
		}
		ps.value.SetText(fmt.Sprintf("%d", ps.get(p)))
	}
}

// Values returns the parameters currently shown by the sliders.
func (pp *ParamsPanel) Values() settings.DetectionParams {
	var p settings.DetectionParams
	for _, ps := range pp.sliders {
		ps.set(&p, int(ps.slider.Value))
	}
	return p
}

// Container returns the panel container.
func (pp *ParamsPanel) Container() fyne.CanvasObject {
	return pp.container
}
