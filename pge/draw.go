package pge

import (
	"image/color"

	eb "github.com/hajimehoshi/ebiten/v2"
	ebv "github.com/hajimehoshi/ebiten/v2/vector"
)

var gridColor = color.NRGBA{255, 255, 255, 40}

// GridLines returns the window positions of the borders between screen pixels,
// not counting the window edges.
func GridLines(cfg Config) (xs, ys []float32) {
	for x := 1; x < cfg.ScreenWidth; x++ {
		xs = append(xs, float32(x*cfg.PixelWidth))
	}
	for y := 1; y < cfg.ScreenHeight; y++ {
		ys = append(ys, float32(y*cfg.PixelHeight))
	}
	return xs, ys
}

// DrawPixelGrid outlines every screen pixel on dst.
func DrawPixelGrid(dst *eb.Image, cfg Config, clr color.Color) {
	w, h := cfg.WindowSize()
	xs, ys := GridLines(cfg)

	for _, x := range xs {
		ebv.StrokeLine(dst, x, 0, x, float32(h), 1, clr, false)
	}
	for _, y := range ys {
		ebv.StrokeLine(dst, 0, y, float32(w), y, 1, clr, false)
	}
}

func StrokeRect(
	dst *eb.Image,
	x, y, w, h float64,
	strokeWidth float64,
	clr color.Color,
) {
	ebv.StrokeRect(
		dst,
		float32(x), float32(y), float32(w), float32(h),
		float32(strokeWidth),
		clr,
		false,
	)
}
