package pge

import (
	"image"
	"image/color"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
)

type PixelMode int

const (
	// PixelNormal overwrites the destination.
	PixelNormal PixelMode = iota
	// PixelMask only draws fully opaque colors.
	PixelMask
	// PixelAlpha blends with the destination.
	PixelAlpha
)

// Sprite is a fixed size rgba framebuffer with the drawing primitives of Canvas.
// Everything drawn outside of it is clipped.
type Sprite struct {
	*image.RGBA

	Mode PixelMode

	// Font used by DrawString
	Font tinyfont.Fonter
}

var (
	_ Canvas            = (*Sprite)(nil)
	_ drivers.Displayer = (*Sprite)(nil)
)

func NewSprite(width, height int) *Sprite {
	return &Sprite{
		RGBA: image.NewRGBA(RectWH(width, height)),
		Font: &tinyfont.TomThumb,
	}
}

func (s *Sprite) Width() int {
	return s.Rect.Dx()
}

func (s *Sprite) Height() int {
	return s.Rect.Dy()
}

func (s *Sprite) Draw(x, y int, c color.Color) {
	if !(image.Point{x, y}.In(s.Rect)) {
		return
	}

	src := ColorToRGBA(c)

	switch s.Mode {
	case PixelMask:
		if src.A != 255 {
			return
		}
	case PixelAlpha:
		dst := s.RGBAAt(x, y)
		// src is premultiplied
		inv := 255 - uint32(src.A)
		src = color.RGBA{
			R: uint8(uint32(src.R) + uint32(dst.R)*inv/255),
			G: uint8(uint32(src.G) + uint32(dst.G)*inv/255),
			B: uint8(uint32(src.B) + uint32(dst.B)*inv/255),
			A: uint8(uint32(src.A) + uint32(dst.A)*inv/255),
		}
	}

	s.SetRGBA(x, y, src)
}

func (s *Sprite) Clear(c color.Color) {
	if s.Mode == PixelNormal {
		src := ColorToRGBA(c)
		for i := 0; i+3 < len(s.Pix); i += 4 {
			s.Pix[i+0] = src.R
			s.Pix[i+1] = src.G
			s.Pix[i+2] = src.B
			s.Pix[i+3] = src.A
		}
		return
	}
	s.FillRect(0, 0, s.Width(), s.Height(), c)
}

func (s *Sprite) FillRect(x, y, w, h int, c color.Color) {
	if w < 0 {
		x, w = x+w, -w
	}
	if h < 0 {
		y, h = y+h, -h
	}

	r := image.Rect(x, y, x+w, y+h).Intersect(s.Rect)

	for py := r.Min.Y; py < r.Max.Y; py++ {
		for px := r.Min.X; px < r.Max.X; px++ {
			s.Draw(px, py, c)
		}
	}
}

func (s *Sprite) DrawRect(x, y, w, h int, c color.Color) {
	s.DrawLine(x, y, x+w, y, c)
	s.DrawLine(x+w, y, x+w, y+h, c)
	s.DrawLine(x+w, y+h, x, y+h, c)
	s.DrawLine(x, y+h, x, y, c)
}

// circleVisible is false when nothing of the circle can land on the sprite.
func (s *Sprite) circleVisible(x, y, radius int) bool {
	return radius >= 0 &&
		x >= -radius && y >= -radius &&
		x-s.Width() <= radius && y-s.Height() <= radius
}

func (s *Sprite) hline(x0, x1, y int, c color.Color) {
	for x := x0; x <= x1; x++ {
		s.Draw(x, y, c)
	}
}

// FillCircle fills a midpoint circle with the given radius.
// Radius 0 draws a single pixel.
func (s *Sprite) FillCircle(x, y, radius int, c color.Color) {
	if !s.circleVisible(x, y, radius) {
		return
	}
	if radius == 0 {
		s.Draw(x, y, c)
		return
	}

	x0, y0 := 0, radius
	d := 3 - 2*radius

	for y0 >= x0 {
		s.hline(x-y0, x+y0, y-x0, c)
		if x0 > 0 {
			s.hline(x-y0, x+y0, y+x0, c)
		}

		if d < 0 {
			d += 4*x0 + 6
			x0++
		} else {
			if x0 != y0 {
				s.hline(x-x0, x+x0, y-y0, c)
				s.hline(x-x0, x+x0, y+y0, c)
			}
			d += 4*(x0-y0) + 10
			x0++
			y0--
		}
	}
}

func (s *Sprite) DrawCircle(x, y, radius int, c color.Color) {
	if !s.circleVisible(x, y, radius) {
		return
	}
	if radius == 0 {
		s.Draw(x, y, c)
		return
	}

	x0, y0 := 0, radius
	d := 3 - 2*radius

	for y0 >= x0 {
		s.Draw(x+x0, y-y0, c)
		s.Draw(x+y0, y+x0, c)
		s.Draw(x-x0, y+y0, c)
		s.Draw(x-y0, y-x0, c)
		if x0 != 0 && x0 != y0 {
			s.Draw(x+y0, y-x0, c)
			s.Draw(x+x0, y+y0, c)
			s.Draw(x-y0, y+x0, c)
			s.Draw(x-x0, y-y0, c)
		}

		if d < 0 {
			d += 4*x0 + 6
		} else {
			d += 4*(x0-y0) + 10
			y0--
		}
		x0++
	}
}

// DrawLine draws a bresenham line, both ends included.
func (s *Sprite) DrawLine(x1, y1, x2, y2 int, c color.Color) {
	dx := abs(x2 - x1)
	dy := -abs(y2 - y1)

	sx, sy := 1, 1
	if x1 > x2 {
		sx = -1
	}
	if y1 > y2 {
		sy = -1
	}

	err := dx + dy
	for {
		s.Draw(x1, y1, c)
		if x1 == x2 && y1 == y2 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x1 += sx
		}
		if e2 <= dx {
			err += dx
			y1 += sy
		}
	}
}

// DrawString draws text with its baseline at y.
func (s *Sprite) DrawString(x, y int, text string, c color.Color) {
	tinyfont.WriteLine(s, s.Font, int16(x), int16(y), text, ColorToRGBA(c))
}

// Size, SetPixel and Display let tinyfont draw on the sprite.

func (s *Sprite) Size() (x, y int16) {
	return int16(s.Width()), int16(s.Height())
}

func (s *Sprite) SetPixel(x, y int16, c color.RGBA) {
	s.Draw(int(x), int(y), c)
}

func (s *Sprite) Display() error {
	return nil
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func RectWH(w, h int) image.Rectangle {
	return image.Rectangle{
		Min: image.Pt(0, 0),
		Max: image.Pt(w, h),
	}
}
