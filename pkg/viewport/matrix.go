package viewport

import (
	"fmt"
	"math"
	"strconv"
)

// singularEpsilon is the smallest |determinant| treated as invertible.
const singularEpsilon = 1e-9

// Point is a position in screen coordinates.
type Point struct {
	X, Y float64
}

// Matrix is a 2D affine transform in SVG order:
//
//	| ScaleX  SkewX  TranslateX |
//	| SkewY   ScaleY TranslateY |
//	|   0       0        1      |
type Matrix struct {
	ScaleX     float64 // a
	SkewY      float64 // b
	SkewX      float64 // c
	ScaleY     float64 // d
	TranslateX float64 // e
	TranslateY float64 // f
}

// Identity is the transform that changes nothing.
var Identity = Matrix{ScaleX: 1, ScaleY: 1}

// Translate returns a pure translation.
func Translate(x, y float64) Matrix {
	return Matrix{ScaleX: 1, ScaleY: 1, TranslateX: x, TranslateY: y}
}

// Scale returns a pure scale about the origin.
func Scale(sx, sy float64) Matrix {
	return Matrix{ScaleX: sx, ScaleY: sy}
}

// Multiply returns m x o: o is applied first, then m.
func (m Matrix) Multiply(o Matrix) Matrix {
	return Matrix{
		ScaleX:     m.ScaleX*o.ScaleX + m.SkewX*o.SkewY,
		SkewY:      m.SkewY*o.ScaleX + m.ScaleY*o.SkewY,
		SkewX:      m.ScaleX*o.SkewX + m.SkewX*o.ScaleY,
		ScaleY:     m.SkewY*o.SkewX + m.ScaleY*o.ScaleY,
		TranslateX: m.ScaleX*o.TranslateX + m.SkewX*o.TranslateY + m.TranslateX,
		TranslateY: m.SkewY*o.TranslateX + m.ScaleY*o.TranslateY + m.TranslateY,
	}
}

// Determinant of the linear part.
func (m Matrix) Determinant() float64 {
	return m.ScaleX*m.ScaleY - m.SkewX*m.SkewY
}

// Invertible reports whether Invert yields a usable transform.
func (m Matrix) Invertible() bool {
	d := m.Determinant()
	return !math.IsNaN(d) && !math.IsInf(d, 0) && math.Abs(d) >= singularEpsilon
}

// Invert returns the inverse transform. The second result is false when m
// is singular, in which case the zero Matrix is returned.
func (m Matrix) Invert() (Matrix, bool) {
	if !m.Invertible() {
		return Matrix{}, false
	}
	det := m.Determinant()
	return Matrix{
		ScaleX:     m.ScaleY / det,
		SkewY:      -m.SkewY / det,
		SkewX:      -m.SkewX / det,
		ScaleY:     m.ScaleX / det,
		TranslateX: (m.SkewX*m.TranslateY - m.ScaleY*m.TranslateX) / det,
		TranslateY: (m.SkewY*m.TranslateX - m.ScaleX*m.TranslateY) / det,
	}, true
}

// Apply maps p through the transform.
func (m Matrix) Apply(p Point) Point {
	return Point{
		X: m.ScaleX*p.X + m.SkewX*p.Y + m.TranslateX,
		Y: m.SkewY*p.X + m.ScaleY*p.Y + m.TranslateY,
	}
}

// ApplyInverse maps a screen point back into the transform's source space.
// Singular transforms map every point to the origin.
func (m Matrix) ApplyInverse(p Point) Point {
	inv, ok := m.Invert()
	if !ok {
		return Point{}
	}
	return inv.Apply(p)
}

// String formats the transform as an SVG matrix() value.
func (m Matrix) String() string {
	return fmt.Sprintf("matrix(%s, %s, %s, %s, %s, %s)",
		num(m.ScaleX), num(m.SkewY), num(m.SkewX), num(m.ScaleY), num(m.TranslateX), num(m.TranslateY))
}

// ApproxEqual compares two matrices component-wise within eps.
func (m Matrix) ApproxEqual(o Matrix, eps float64) bool {
	return math.Abs(m.ScaleX-o.ScaleX) <= eps &&
		math.Abs(m.SkewY-o.SkewY) <= eps &&
		math.Abs(m.SkewX-o.SkewX) <= eps &&
		math.Abs(m.ScaleY-o.ScaleY) <= eps &&
		math.Abs(m.TranslateX-o.TranslateX) <= eps &&
		math.Abs(m.TranslateY-o.TranslateY) <= eps
}

// num formats a float compactly, normalizing negative zero.
func num(v float64) string {
	if v == 0 {
		v = 0
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
