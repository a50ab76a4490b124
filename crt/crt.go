// Package crt evaluates the CRT screen effect on the CPU.
//
// It mirrors shaders/crt.kage in the shader package one function at a time,
// so the effect can be rendered without a GPU and checked in tests.
package crt

import (
	"image"
	"image/color"
	"math"
)

const (
	Downscale = 0.5

	// the screen is projected on a large sphere to give it a curve
	SphereRadius = 20.0
)

var lightPos = V3(-1, -1, 0).Scale(0.95)

// RaySphere returns the distance along rd from ro to the first hit
// of the sphere with center sph and radius sphR, or -1 on a miss.
//
//	From: https://iquilezles.org/www/articles/spherefunctions/spherefunctions.htm
func RaySphere(ro, rd, sph Vec3, sphR float64) float64 {
	oc := ro.Sub(sph)
	b := oc.Dot(rd)
	c := oc.Dot(oc) - sphR*sphR
	h := b*b - c
	if h < 0 {
		return -1
	}
	return -b - math.Sqrt(h)
}

func psin(a float64) float64 {
	return 0.5 + 0.5*math.Sin(a)
}

// Sampler reads the framebuffer the tube displays.
type Sampler struct {
	Src image.Image

	// color mixed in where Src is transparent
	Tint Vec3
}

// HSV returns the hsv color of the texel at normalized coord p,
// black outside [0, 1].
func (s Sampler) HSV(p Vec2) Vec3 {
	if math.Abs(p.X-0.5) > 0.5 || math.Abs(p.Y-0.5) > 0.5 {
		return Vec3{}
	}

	b := s.Src.Bounds()
	x := b.Min.X + Clamp(int(math.Floor(p.X*float64(b.Dx()))), 0, b.Dx()-1)
	y := b.Min.Y + Clamp(int(math.Floor(p.Y*float64(b.Dy()))), 0, b.Dy()-1)

	c := color.NRGBAModel.Convert(s.Src.At(x, y)).(color.NRGBA)
	texel := V3(float64(c.R)/255, float64(c.G)/255, float64(c.B)/255)

	return RGBToHSV(s.Tint.Mix(texel, float64(c.A)/255))
}

// Screen shades point p of the tube surface given its diffuse and specular light.
func Screen(s Sampler, reso, p Vec2, diff, spe float64) Vec3 {
	sr := reso.Y / reso.X
	res := reso.Y / Downscale

	ap := p
	ap.X *= sr

	// vignetting
	vp := ap.Add(V2(0.5, 0.5))
	vig := math.Tanh(math.Pow(max(100*vp.X*vp.Y*(1-vp.X)*(1-vp.Y), 0), 0.35))

	ap = ap.Scale(1.025)

	shsv := s.HSV(ap.Add(V2(0.5, 0.5)))

	// scanline brightness
	scanbri := Lerp(0.25, 2.0, psin(math.Pi*res*p.Y))

	shsv.Z *= scanbri
	shsv.Z = math.Tanh(1.5 * shsv.Z)
	shsv.Z *= vig

	// hue drifts across the tube
	shsv.X += (p.X + p.Y) * 0.05

	glare := (0.35*spe + 0.25*diff) * vig

	return HSVToRGB(shsv).Add(V3(glare, glare, glare))
}

// Color traces the ray from ro through texture coord p in [-1, 1].
func Color(s Sampler, reso Vec2, ro Vec3, p Vec2) Vec3 {
	rd := V3(p.X, p.Y, 2).Normalize()

	center := V3(0, 0, SphereRadius)

	sd := RaySphere(ro, rd, center, SphereRadius-1)
	if sd <= 0 {
		return Vec3{}
	}

	sp := ro.Add(rd.Scale(sd))
	nor := sp.Sub(center).Normalize()
	ld := lightPos.Sub(sp).Normalize()

	diff := max(ld.Dot(nor), 0)
	spe := math.Pow(max(rd.Reflect(nor).Dot(ld), 0), 30)

	return Screen(s, reso, sp.XY(), diff, spe)
}

// Render draws src as seen on the tube into a new w by h image.
// A nil tint is white.
func Render(src image.Image, w, h int, tint color.Color) *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	if w <= 0 || h <= 0 || src.Bounds().Empty() {
		return dst
	}

	if tint == nil {
		tint = color.White
	}
	tc := color.NRGBAModel.Convert(tint).(color.NRGBA)
	s := Sampler{
		Src:  src,
		Tint: V3(float64(tc.R)/255, float64(tc.G)/255, float64(tc.B)/255),
	}

	reso := V2(float64(src.Bounds().Dx()), float64(src.Bounds().Dy()))

	for y := range h {
		for x := range w {
			// pixel centers, like the fragment stage
			q := V2((float64(x)+0.5)/float64(w), (float64(y)+0.5)/float64(h))
			p := q.Scale(2).Sub(V2(1, 1))
			p.X *= reso.X / reso.Y

			col := Color(s, reso, Vec3{}, p)

			dst.SetNRGBA(x, y, color.NRGBA{
				R: toByte(col.X),
				G: toByte(col.Y),
				B: toByte(col.Z),
				A: 255,
			})
		}
	}

	return dst
}

func toByte(f float64) uint8 {
	return uint8(Clamp(f, 0, 1)*255 + 0.5)
}
