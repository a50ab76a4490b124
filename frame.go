package main

import (
	"image"
	"image/color"

	"testpge/crt"
	"testpge/pge"

	"github.com/spf13/afero"
	"golang.org/x/image/draw"
)

// RenderFrame approximates on the CPU what the window shows for src.
// The crt shader is traced with the crt package, anything else is
// scaled up with nearest neighbour and tinted.
func RenderFrame(src image.Image, cfg pge.Config) image.Image {
	w := src.Bounds().Dx() * cfg.PixelWidth
	h := src.Bounds().Dy() * cfg.PixelHeight

	if cfg.ShaderFile == "" && cfg.ShaderName == "crt" {
		return crt.Render(src, w, h, cfg.Tint)
	}

	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)

	dim := 0.0
	if d, ok := cfg.Uniforms["Dim"].(float32); ok {
		dim = float64(d)
	}
	tintPixels(dst, cfg.Tint, 1-dim)

	return dst
}

// tintPixels multiplies every channel by tint and the color channels by bri.
func tintPixels(img *image.NRGBA, tint color.Color, bri float64) {
	if tint == nil {
		tint = color.White
	}
	t := pge.ColorToNRGBA(tint)
	if t == (color.NRGBA{255, 255, 255, 255}) && bri == 1 {
		return
	}

	scale := func(v, t uint8, bri float64) uint8 {
		return uint8(float64(v)*float64(t)/255*bri + 0.5)
	}

	for i := 0; i+3 < len(img.Pix); i += 4 {
		img.Pix[i+0] = scale(img.Pix[i+0], t.R, bri)
		img.Pix[i+1] = scale(img.Pix[i+1], t.G, bri)
		img.Pix[i+2] = scale(img.Pix[i+2], t.B, bri)
		// alpha is never dimmed
		img.Pix[i+3] = scale(img.Pix[i+3], t.A, 1)
	}
}

// WriteFrame renders src like RenderFrame and saves it as png.
func WriteFrame(fs afero.Fs, path string, src image.Image, cfg pge.Config) error {
	timer := pge.NewProfTimer("rendering " + path)
	img := RenderFrame(src, cfg)
	timer.Report()

	return pge.WritePNG(fs, path, img)
}
