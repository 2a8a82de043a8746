// Package matrix implements the 2x2 integer matrices used to rotate images
// in quarter turns.
package matrix

import (
	"fmt"
	"image"
)

// Matrix is a linear map (x, y) -> (A*x + C*y, B*x + D*y) whose
// coefficients are restricted to -1, 0 and 1.
type Matrix struct {
	A, B, C, D int
}

var (
	// Identity leaves every point where it is.
	Identity = Matrix{A: 1, B: 0, C: 0, D: 1}

	// Rotate90 turns a quarter clockwise in screen space (y grows downwards).
	Rotate90 = Matrix{A: 0, B: 1, C: -1, D: 0}
)

// Mul returns the product m*n, i.e. n applied first and m second.
func (m Matrix) Mul(n Matrix) Matrix {
	return Matrix{
		A: m.A*n.A + m.C*n.B,
		B: m.B*n.A + m.D*n.B,
		C: m.A*n.C + m.C*n.D,
		D: m.B*n.C + m.D*n.D,
	}
}

// Map applies the matrix to a point.
func (m Matrix) Map(p image.Point) image.Point {
	return image.Point{
		X: m.A*p.X + m.C*p.Y,
		Y: m.B*p.X + m.D*p.Y,
	}
}

// MapRect maps both corners of r. Rotation can swap the corners, so the
// result is canonicalized.
func (m Matrix) MapRect(r image.Rectangle) image.Rectangle {
	return image.Rectangle{Min: m.Map(r.Min), Max: m.Map(r.Max)}.Canon()
}

// Det returns the determinant, which is +1 or -1 for every rotation.
func (m Matrix) Det() int {
	return m.A*m.D - m.B*m.C
}

// Inverse returns the exact inverse. A singular matrix never comes out of
// rotation; Identity is returned for one anyway.
func (m Matrix) Inverse() Matrix {
	det := m.Det()
	if det == 0 {
		return Identity
	}
	return Matrix{
		A: m.D / det,
		B: -m.B / det,
		C: -m.C / det,
		D: m.A / det,
	}
}

// Quarters reports how many clockwise quarter turns m represents, or -1 if
// m is not a pure rotation.
func (m Matrix) Quarters() int {
	r := Identity
	for i := 0; i < 4; i++ {
		if r == m {
			return i
		}
		r = Rotate90.Mul(r)
	}
	return -1
}

func (m Matrix) String() string {
	return fmt.Sprintf("[%d %d; %d %d]", m.A, m.C, m.B, m.D)
}
