package pge

import (
	"image/color"
	"testing"
)

func TestParseColorString(t *testing.T) {
	tests := []struct {
		in      string
		want    color.NRGBA
		wantErr bool
	}{
		{"navy", color.NRGBA{0, 0, 128, 255}, false},
		{"#00FFFF", color.NRGBA{0, 255, 255, 255}, false},
		{"rgb(255, 0, 255)", color.NRGBA{255, 0, 255, 255}, false},
		{"#ff000080", color.NRGBA{255, 0, 0, 128}, false},
		{"not a color", color.NRGBA{}, true},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseColorString(tc.in)
			if tc.wantErr {
				if err == nil {
					t.Errorf("ParseColorString(%q) = %v, want error", tc.in, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseColorString(%q): %v", tc.in, err)
			}
			if got != tc.want {
				t.Errorf("ParseColorString(%q) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestColorToString(t *testing.T) {
	if got := ColorToString(DarkBlue); got != "#000080FF" {
		t.Errorf("ColorToString(DarkBlue) = %s", got)
	}
	if got := ColorToString(nil); got != "#00000000" {
		t.Errorf("ColorToString(nil) = %s", got)
	}
}

func TestColorConversion(t *testing.T) {
	half := color.NRGBA{255, 255, 255, 128}

	if got := ColorToRGBA(half); got != (color.RGBA{128, 128, 128, 128}) {
		t.Errorf("ColorToRGBA(%v) = %v", half, got)
	}
	if got := ColorToNRGBA(Magenta); got != (color.NRGBA{255, 0, 255, 255}) {
		t.Errorf("ColorToNRGBA(Magenta) = %v", got)
	}
}
