package gp

import "math"

// Mat3 is a 3x3 row-major matrix describing a 2D affine or projective
// transform:
//
//	| m[0][0] m[0][1] m[0][2] |
//	| m[1][0] m[1][1] m[1][2] |
//	| m[2][0] m[2][1] m[2][2] |
//
// A point (x, y) maps to
//
//	x' = m[0][0]*x + m[0][1]*y + m[0][2]
//	y' = m[1][0]*x + m[1][1]*y + m[1][2]
//
// The bottom row is {0, 0, 1} for affine transforms. It is not enforced:
// Mul is a full 3x3 product so custom projections keep working.
type Mat3 [3][3]float32

// Identity returns the identity matrix.
func Identity() Mat3 {
	return Mat3{
		{1, 0, 0},
		{0, 1, 0},
		{0, 0, 1},
	}
}

// Translate creates a translation matrix.
func Translate(x, y float32) Mat3 {
	return Mat3{
		{1, 0, x},
		{0, 1, y},
		{0, 0, 1},
	}
}

// Scale creates a scaling matrix.
func Scale(sx, sy float32) Mat3 {
	return Mat3{
		{sx, 0, 0},
		{0, sy, 0},
		{0, 0, 1},
	}
}

// Rotate creates a rotation matrix (angle in radians).
// In the y-down pixel space used by gp a positive angle turns clockwise on
// screen.
func Rotate(theta float32) Mat3 {
	sin, cos := sincos(theta)
	return Mat3{
		{cos, -sin, 0},
		{sin, cos, 0},
		{0, 0, 1},
	}
}

// Ortho creates an orthographic projection mapping the box
// [left, right] x [top, bottom] to clip space [-1, 1] x [1, -1].
func Ortho(left, right, top, bottom float32) Mat3 {
	w := right - left
	h := top - bottom
	return Mat3{
		{2 / w, 0, -(right + left) / w},
		{0, 2 / h, -(top + bottom) / h},
		{0, 0, 1},
	}
}

// defaultProjection maps a w x h pixel space with a top-left origin to clip
// space: x' = 2x/w - 1, y' = 1 - 2y/h.
func defaultProjection(w, h int) Mat3 {
	return Mat3{
		{2 / float32(w), 0, -1},
		{0, -2 / float32(h), 1},
		{0, 0, 1},
	}
}

// Mul returns the full 3x3 product m * n.
func (m Mat3) Mul(n Mat3) Mat3 {
	var r Mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r[i][j] = m[i][0]*n[0][j] + m[i][1]*n[1][j] + m[i][2]*n[2][j]
		}
	}
	return r
}

// mulProjTransform returns proj * transform for an affine transform (bottom
// row {0, 0, 1}). With t[2] = {0, 0, 1} the generic product
//
//	r[i][j] = p[i][0]*t[0][j] + p[i][1]*t[1][j] + p[i][2]*t[2][j]
//
// reduces to the first two terms for j < 2 and gains p[i][2] for j == 2, which
// is what is written out below. The projection keeps its full 3x3 form.
func mulProjTransform(p, t *Mat3) Mat3 {
	return Mat3{
		{
			p[0][0]*t[0][0] + p[0][1]*t[1][0],
			p[0][0]*t[0][1] + p[0][1]*t[1][1],
			p[0][0]*t[0][2] + p[0][1]*t[1][2] + p[0][2],
		},
		{
			p[1][0]*t[0][0] + p[1][1]*t[1][0],
			p[1][0]*t[0][1] + p[1][1]*t[1][1],
			p[1][0]*t[0][2] + p[1][1]*t[1][2] + p[1][2],
		},
		{
			p[2][0]*t[0][0] + p[2][1]*t[1][0],
			p[2][0]*t[0][1] + p[2][1]*t[1][1],
			p[2][0]*t[0][2] + p[2][1]*t[1][2] + p[2][2],
		},
	}
}

// Translated returns m * Translate(x, y) without a full matrix product.
func (m Mat3) Translated(x, y float32) Mat3 {
	m[0][2] += m[0][0]*x + m[0][1]*y
	m[1][2] += m[1][0]*x + m[1][1]*y
	return m
}

// Rotated returns m * Rotate(theta) without a full matrix product.
func (m Mat3) Rotated(theta float32) Mat3 {
	sin, cos := sincos(theta)
	return Mat3{
		{cos*m[0][0] + sin*m[0][1], -sin*m[0][0] + cos*m[0][1], m[0][2]},
		{cos*m[1][0] + sin*m[1][1], -sin*m[1][0] + cos*m[1][1], m[1][2]},
		m[2],
	}
}

// Scaled returns m * Scale(sx, sy) without a full matrix product.
func (m Mat3) Scaled(sx, sy float32) Mat3 {
	m[0][0] *= sx
	m[1][0] *= sx
	m[0][1] *= sy
	m[1][1] *= sy
	return m
}

// TransformPoint applies the affine part of m to (x, y).
func (m Mat3) TransformPoint(x, y float32) (float32, float32) {
	return m[0][0]*x + m[0][1]*y + m[0][2],
		m[1][0]*x + m[1][1]*y + m[1][2]
}

// IsIdentity returns true if the matrix is the identity matrix.
func (m Mat3) IsIdentity() bool {
	return m == Identity()
}

func sincos(theta float32) (sin, cos float32) {
	s, c := math.Sincos(float64(theta))
	return float32(s), float32(c)
}
