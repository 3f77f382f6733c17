package math

import "image/color"

// Color is an 8-bit per channel RGBA colour, non-premultiplied.
type Color struct {
	R, G, B, A uint8
}

// Named colours used as defaults across the renderer.
var (
	White          = Color{255, 255, 255, 255}
	Black          = Color{0, 0, 0, 255}
	Transparent    = Color{0, 0, 0, 0}
	Red            = Color{255, 0, 0, 255}
	Green          = Color{0, 128, 0, 255}
	Blue           = Color{0, 0, 255, 255}
	Yellow         = Color{255, 255, 0, 255}
	CornflowerBlue = Color{100, 149, 237, 255}
	// FlatNormal encodes the tangent-space normal (0, 0, 1).
	FlatNormal = Color{128, 128, 255, 255}
)

// Vec4 returns the colour with each channel mapped to [0, 1].
func (c Color) Vec4() Vec4 {
	return Vec4{
		float32(c.R) / 255,
		float32(c.G) / 255,
		float32(c.B) / 255,
		float32(c.A) / 255,
	}
}

// RGBA implements color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}.RGBA()
}
