package app

import (
	"image/color"

	"microalgae-counter/pkg/colorutil"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// CounterTheme applies the application palette on top of the default Fyne theme.
type CounterTheme struct{}

var _ fyne.Theme = (*CounterTheme)(nil)

func (t *CounterTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	switch name {
	case theme.ColorNamePrimary:
		return colorutil.NRGBA(colorutil.Primary)
	case theme.ColorNameSuccess:
		return colorutil.NRGBA(colorutil.Success)
	case theme.ColorNameWarning:
		return colorutil.NRGBA(colorutil.Warning)
	case theme.ColorNameError:
		return colorutil.NRGBA(colorutil.Danger)
	case theme.ColorNameBackground:
		if variant == theme.VariantLight {
			return colorutil.NRGBA(colorutil.Background)
		}
	case theme.ColorNameForeground:
		if variant == theme.VariantLight {
			return colorutil.NRGBA(colorutil.Text)
		}
	}
	return theme.DefaultTheme().Color(name, variant)
}

func (t *CounterTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

func (t *CounterTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

func (t *CounterTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNameHeadingText:
		return 22
	default:
		return theme.DefaultTheme().Size(name)
	}
}
