package pge

import (
	"image/color"
	"testing"
)

func countColor(s *Sprite, c color.RGBA) int {
	n := 0
	for y := range s.Height() {
		for x := range s.Width() {
			if s.RGBAAt(x, y) == c {
				n++
			}
		}
	}
	return n
}

func TestFillRect(t *testing.T) {
	tests := []struct {
		name       string
		x, y, w, h int
		want       int
	}{
		{"inside", 1, 1, 3, 2, 6},
		{"whole", 0, 0, 8, 8, 64},
		{"clipped left top", -2, -2, 4, 4, 4},
		{"clipped right bottom", 6, 6, 10, 10, 4},
		{"negative size", 4, 4, -2, -3, 6},
		{"outside", 20, 20, 5, 5, 0},
		{"empty", 2, 2, 0, 5, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := NewSprite(8, 8)
			s.FillRect(tc.x, tc.y, tc.w, tc.h, Cyan)
			if got := countColor(s, Cyan); got != tc.want {
				t.Errorf("FillRect(%d, %d, %d, %d) filled %d pixels, want %d", tc.x, tc.y, tc.w, tc.h, got, tc.want)
			}
		})
	}
}

func TestFillCircle(t *testing.T) {
	s := NewSprite(16, 16)
	s.FillCircle(8, 8, 3, Magenta)

	if got := countColor(s, Magenta); got != 37 {
		t.Errorf("radius 3 filled %d pixels, want 37", got)
	}

	wantRows := map[int]int{5: 3, 6: 5, 7: 7, 8: 7, 9: 7, 10: 5, 11: 3}
	for y := range s.Height() {
		n := 0
		for x := range s.Width() {
			if s.RGBAAt(x, y) == Magenta {
				n++
			}
		}
		if n != wantRows[y] {
			t.Errorf("row %d has %d pixels, want %d", y, n, wantRows[y])
		}
	}

	// symmetric around the center
	for y := 1; y < s.Height(); y++ {
		for x := 1; x < s.Width(); x++ {
			if s.RGBAAt(x, y) != s.RGBAAt(16-x, 16-y) {
				t.Fatalf("pixel %d,%d differs from its mirror", x, y)
			}
		}
	}
}

func TestFillCircleEdgeCases(t *testing.T) {
	s := NewSprite(8, 8)

	s.FillCircle(3, 3, 0, Red)
	if got := countColor(s, Red); got != 1 {
		t.Errorf("radius 0 filled %d pixels, want 1", got)
	}

	s.FillCircle(3, 3, -4, Green)
	if got := countColor(s, Green); got != 0 {
		t.Errorf("negative radius filled %d pixels", got)
	}

	s.FillCircle(100, 100, 5, Blue)
	if got := countColor(s, Blue); got != 0 {
		t.Errorf("far away circle filled %d pixels", got)
	}

	// partially visible circles are clipped, not skipped
	s.FillCircle(0, 0, 3, Yellow)
	if got := countColor(s, Yellow); got == 0 || got >= 37 {
		t.Errorf("corner circle filled %d pixels", got)
	}
}

func TestDrawCircle(t *testing.T) {
	s := NewSprite(16, 16)
	s.DrawCircle(8, 8, 3, White)

	for _, p := range [][2]int{{8, 5}, {8, 11}, {5, 8}, {11, 8}} {
		if s.RGBAAt(p[0], p[1]) != White {
			t.Errorf("pixel %v is not on the circle", p)
		}
	}
	if s.RGBAAt(8, 8) == White {
		t.Errorf("center of an outline was drawn")
	}
}

func TestDrawLine(t *testing.T) {
	tests := []struct {
		name           string
		x1, y1, x2, y2 int
		want           int
	}{
		{"horizontal", 0, 0, 7, 0, 8},
		{"vertical", 2, 1, 2, 5, 5},
		{"diagonal", 0, 0, 7, 7, 8},
		{"reversed", 7, 7, 0, 0, 8},
		{"point", 3, 3, 3, 3, 1},
		{"clipped", -4, 2, 3, 2, 4},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := NewSprite(8, 8)
			s.DrawLine(tc.x1, tc.y1, tc.x2, tc.y2, Red)
			if got := countColor(s, Red); got != tc.want {
				t.Errorf("line drew %d pixels, want %d", got, tc.want)
			}
			if tc.x1 >= 0 && s.RGBAAt(tc.x1, tc.y1) != Red {
				t.Errorf("start point missing")
			}
			if s.RGBAAt(tc.x2, tc.y2) != Red {
				t.Errorf("end point missing")
			}
		})
	}
}

func TestDrawRect(t *testing.T) {
	s := NewSprite(8, 8)
	s.DrawRect(1, 1, 3, 3, Green)

	// outline of a 4x4 box
	if got := countColor(s, Green); got != 12 {
		t.Errorf("outline has %d pixels, want 12", got)
	}
	if s.RGBAAt(2, 2) == Green {
		t.Errorf("inside of the outline was drawn")
	}
}

func TestPixelModes(t *testing.T) {
	t.Run("mask", func(t *testing.T) {
		s := NewSprite(2, 1)
		s.Clear(Black)
		s.Mode = PixelMask
		s.Draw(0, 0, color.NRGBA{255, 0, 0, 128})
		s.Draw(1, 0, Red)
		if got := s.RGBAAt(0, 0); got != Black {
			t.Errorf("translucent pixel drawn in mask mode: %v", got)
		}
		if got := s.RGBAAt(1, 0); got != Red {
			t.Errorf("opaque pixel = %v, want red", got)
		}
	})

	t.Run("alpha", func(t *testing.T) {
		s := NewSprite(1, 1)
		s.Clear(Black)
		s.Mode = PixelAlpha
		s.Draw(0, 0, color.NRGBA{255, 0, 0, 128})
		want := color.RGBA{128, 0, 0, 255}
		if got := s.RGBAAt(0, 0); got != want {
			t.Errorf("blended pixel = %v, want %v", got, want)
		}
	})

	t.Run("normal", func(t *testing.T) {
		s := NewSprite(1, 1)
		s.Clear(White)
		s.Draw(0, 0, Blank)
		if got := s.RGBAAt(0, 0); got != Blank {
			t.Errorf("pixel = %v, want blank", got)
		}
	})
}

func TestClear(t *testing.T) {
	s := NewSprite(4, 3)
	s.Clear(DarkBlue)
	if got := countColor(s, DarkBlue); got != 12 {
		t.Errorf("Clear colored %d pixels, want 12", got)
	}

	s.Mode = PixelMask
	s.Clear(Cyan)
	if got := countColor(s, Cyan); got != 12 {
		t.Errorf("Clear in mask mode colored %d pixels, want 12", got)
	}
}

func TestDrawString(t *testing.T) {
	s := NewSprite(32, 16)
	s.DrawString(1, 10, "HI", White)

	n := countColor(s, White)
	if n == 0 {
		t.Fatal("DrawString drew nothing")
	}

	// glyphs sit on the baseline
	for y := 11; y < s.Height(); y++ {
		for x := range s.Width() {
			if s.RGBAAt(x, y) == White {
				t.Fatalf("pixel %d,%d drawn below the baseline", x, y)
			}
		}
	}

	// text running off the sprite is clipped
	s.DrawString(30, 10, "WIDE TEXT", White)
}
