package main

import (
	"image/color"
	"testing"

	"testpge/pge"
)

func exampleSprite() *pge.Sprite {
	s := pge.NewSprite(ScreenWidth, ScreenHeight)
	(&Example{}).OnUserUpdate(s, 0)
	return s
}

func TestRenderFrameNearest(t *testing.T) {
	cfg := NewConfig(Options{Shader: "none"})
	img := RenderFrame(exampleSprite(), cfg)

	if b := img.Bounds(); b.Dx() != 1024 || b.Dy() != 960 {
		t.Fatalf("bounds = %v, want 1024x960", b)
	}

	tests := []struct {
		x, y int
		want color.RGBA
	}{
		// every screen pixel covers a 4x4 block
		{0, 0, pge.DarkBlue},
		{3, 3, pge.DarkBlue},
		{400, 400, pge.Cyan},
		{403, 403, pge.Cyan},
		{800, 600, pge.Magenta},
	}

	for _, tc := range tests {
		if got := pge.ColorToRGBA(img.At(tc.x, tc.y)); got != tc.want {
			t.Errorf("pixel %d,%d = %v, want %v", tc.x, tc.y, got, tc.want)
		}
	}
}

func TestRenderFrameTintAndDim(t *testing.T) {
	cfg := NewConfig(Options{Shader: "flat", Tint: "#ff0000", Dim: 0.5})
	img := RenderFrame(exampleSprite(), cfg)

	// magenta through a red tint at half brightness
	want := color.RGBA{128, 0, 0, 255}
	if got := pge.ColorToRGBA(img.At(800, 600)); got != want {
		t.Errorf("pixel = %v, want %v", got, want)
	}
}

func TestRenderFrameCRT(t *testing.T) {
	cfg := NewConfig(Options{Shader: "crt"})
	cfg.PixelWidth, cfg.PixelHeight = 1, 1

	img := RenderFrame(exampleSprite(), cfg)

	if b := img.Bounds(); b.Dx() != ScreenWidth || b.Dy() != ScreenHeight {
		t.Fatalf("bounds = %v", b)
	}

	corner := pge.ColorToRGBA(img.At(0, 0))
	if corner.R > 40 || corner.G > 40 || corner.B > 40 {
		t.Errorf("corner = %v, want near black", corner)
	}

	// the middle of the tube shows the blue background
	center := pge.ColorToRGBA(img.At(ScreenWidth/2, ScreenHeight/2+30))
	if center.B <= center.R || center.B <= center.G {
		t.Errorf("center = %v, want mostly blue", center)
	}
}

func TestRenderFrameNilTint(t *testing.T) {
	for _, name := range []string{"crt", "flat"} {
		t.Run(name, func(t *testing.T) {
			cfg := pge.Config{ShaderName: name, PixelWidth: 1, PixelHeight: 1}

			img := RenderFrame(exampleSprite(), cfg)
			if b := img.Bounds(); b.Dx() != ScreenWidth || b.Dy() != ScreenHeight {
				t.Errorf("bounds = %v", b)
			}
		})
	}
}
