package crt

import "math"

// HSVToRGB converts hue, saturation, value in [0, 1] to rgb.
// Hue wraps around.
//
//	From: https://stackoverflow.com/questions/15095909/from-rgb-to-hsv-in-opengl-glsl
//	sam hocevar claims he is the author of these in particular
func HSVToRGB(c Vec3) Vec3 {
	channel := func(k float64) float64 {
		p := math.Abs(Fract(c.X+k)*6 - 3)
		return c.Z * Lerp(1, Clamp(p-1, 0, 1), c.Y)
	}

	return Vec3{channel(1), channel(2.0 / 3.0), channel(1.0 / 3.0)}
}

// RGBToHSV is the inverse of HSVToRGB, same source.
func RGBToHSV(c Vec3) Vec3 {
	type vec4 struct{ x, y, z, w float64 }
	mix := func(a, b vec4, t float64) vec4 {
		return vec4{Lerp(a.x, b.x, t), Lerp(a.y, b.y, t), Lerp(a.z, b.z, t), Lerp(a.w, b.w, t)}
	}

	k := vec4{0, -1.0 / 3.0, 2.0 / 3.0, -1}
	p := mix(vec4{c.Z, c.Y, k.w, k.z}, vec4{c.Y, c.Z, k.x, k.y}, Step(c.Z, c.Y))
	q := mix(vec4{p.x, p.y, p.w, c.X}, vec4{c.X, p.y, p.z, p.x}, Step(p.x, c.X))

	d := q.x - min(q.w, q.y)
	const e = 1.0e-10

	return Vec3{math.Abs(q.z + (q.w-q.y)/(6*d+e)), d / (q.x + e), q.x}
}
