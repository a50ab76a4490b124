package pge

import (
	"fmt"
	"image/color"

	css "github.com/mazznoer/csscolorparser"
)

// Named colors, the same values every frame.
var (
	Grey            = color.RGBA{192, 192, 192, 255}
	DarkGrey        = color.RGBA{128, 128, 128, 255}
	VeryDarkGrey    = color.RGBA{64, 64, 64, 255}
	Red             = color.RGBA{255, 0, 0, 255}
	DarkRed         = color.RGBA{128, 0, 0, 255}
	VeryDarkRed     = color.RGBA{64, 0, 0, 255}
	Yellow          = color.RGBA{255, 255, 0, 255}
	DarkYellow      = color.RGBA{128, 128, 0, 255}
	VeryDarkYellow  = color.RGBA{64, 64, 0, 255}
	Green           = color.RGBA{0, 255, 0, 255}
	DarkGreen       = color.RGBA{0, 128, 0, 255}
	VeryDarkGreen   = color.RGBA{0, 64, 0, 255}
	Cyan            = color.RGBA{0, 255, 255, 255}
	DarkCyan        = color.RGBA{0, 128, 128, 255}
	VeryDarkCyan    = color.RGBA{0, 64, 64, 255}
	Blue            = color.RGBA{0, 0, 255, 255}
	DarkBlue        = color.RGBA{0, 0, 128, 255}
	VeryDarkBlue    = color.RGBA{0, 0, 64, 255}
	Magenta         = color.RGBA{255, 0, 255, 255}
	DarkMagenta     = color.RGBA{128, 0, 128, 255}
	VeryDarkMagenta = color.RGBA{64, 0, 64, 255}
	White           = color.RGBA{255, 255, 255, 255}
	Black           = color.RGBA{0, 0, 0, 255}
	Blank           = color.RGBA{0, 0, 0, 0}
)

func ColorToNRGBA(clr color.Color) color.NRGBA {
	if clr == nil {
		return color.NRGBA{}
	}
	return color.NRGBAModel.Convert(clr).(color.NRGBA)
}

func ColorToRGBA(clr color.Color) color.RGBA {
	if clr == nil {
		return color.RGBA{}
	}
	return color.RGBAModel.Convert(clr).(color.RGBA)
}

func ColorToString(clr color.Color) string {
	c := ColorToNRGBA(clr)
	return fmt.Sprintf("#%02X%02X%02X%02X", c.R, c.G, c.B, c.A)
}

// ParseColorString accepts any css color, "navy", "#000080", "rgb(0 0 128)" and so on.
func ParseColorString(str string) (color.NRGBA, error) {
	c, err := css.Parse(str)

	if err != nil {
		return color.NRGBA{}, err
	}

	nrgba := color.NRGBA{
		R: uint8(255*c.R + 0.5),
		G: uint8(255*c.G + 0.5),
		B: uint8(255*c.B + 0.5),
		A: uint8(255*c.A + 0.5),
	}

	return nrgba, nil
}
