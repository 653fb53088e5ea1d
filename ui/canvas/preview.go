// Package canvas provides the image preview widgets.
package canvas

import (
	"image"

	algaeimage "microalgae-counter/internal/image"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// ImagePreview shows a scaled-down image inside a titled card.
type ImagePreview struct {
	maxSide int
	image   *fynecanvas.Image
	empty   *widget.Label
	card    *widget.Card

	source image.Image // Full-resolution image last set
}

// NewImagePreview creates a preview whose longest side is capped at maxSide pixels.
func NewImagePreview(title string, maxSide int) *ImagePreview {
	if maxSide <= 0 {
		maxSide = algaeimage.DefaultPreviewSize
	}
	p := &ImagePreview{
		maxSide: maxSide,
		image:   fynecanvas.NewImageFromImage(nil),
		empty:   widget.NewLabel("No image"),
	}
	p.image.FillMode = fynecanvas.ImageFillContain
	p.image.ScaleMode = fynecanvas.ImageScaleSmooth
	p.image.SetMinSize(fyne.NewSize(float32(maxSide), float32(maxSide)))
	p.image.Hide()

	p.card = widget.NewCard(title, "", container.NewStack(
		container.NewCenter(p.empty),
		p.image,
	))
	return p
}

// SetImage displays img, or clears the preview when img is nil.
func (p *ImagePreview) SetImage(img image.Image) {
	p.source = img
	if img == nil {
		p.image.Image = nil
		p.image.Hide()
		p.empty.Show()
		p.image.Refresh()
		return
	}

	p.image.Image = algaeimage.Preview(img, p.maxSide)
	p.empty.Hide()
	p.image.Show()
	p.image.Refresh()
}

// Image returns the full-resolution image currently shown, or nil.
func (p *ImagePreview) Image() image.Image {
	return p.source
}

// Displayed returns the scaled image handed to the renderer, or nil.
func (p *ImagePreview) Displayed() image.Image {
	return p.image.Image
}

// Container returns the preview card.
func (p *ImagePreview) Container() fyne.CanvasObject {
	return p.card
}
