package gp

// Point is a 2D position in pixel space.
type Point struct {
	X, Y float32
}

// Pt is a convenience function to create a Point.
func Pt(x, y float32) Point {
	return Point{X: x, Y: y}
}

// Line is a segment between two points.
type Line struct {
	A, B Point
}

// Triangle is a filled triangle.
type Triangle struct {
	A, B, C Point
}

// Rect is a rectangle given by its top-left corner and size.
type Rect struct {
	X, Y, W, H float32
}

// TexturedRect pairs a destination rectangle with a source rectangle in
// image pixels.
type TexturedRect struct {
	Dst Rect
	Src Rect
}

// IRect is an integer rectangle in device pixels.
type IRect struct {
	X, Y, W, H int
}

// noScissor marks the absence of a scissor rectangle.
var noScissor = IRect{X: 0, Y: 0, W: -1, H: -1}

// IsNoScissor reports whether r is the "no scissor" sentinel.
func (r IRect) IsNoScissor() bool {
	return r.W < 0 && r.H < 0
}
