package gp

// Color is an unpremultiplied RGBA color with components in [0, 1].
// Colors are compared with exact float equality.
type Color struct {
	R, G, B, A float32
}

// Common colors.
var (
	White       = Color{1, 1, 1, 1}
	Black       = Color{0, 0, 0, 1}
	Transparent = Color{0, 0, 0, 0}
)

// RGBA creates a color from its components.
func RGBA(r, g, b, a float32) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// RGB creates an opaque color.
func RGB(r, g, b float32) Color {
	return Color{R: r, G: g, B: b, A: 1}
}
