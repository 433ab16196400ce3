package geom

import "math"

// Matrix represents a 2D affine transformation matrix.
// It uses a 2x3 matrix in row-major order:
//
//	| a  b  c |
//	| d  e  f |
//
// This represents the transformation:
//
//	x' = a*x + b*y + c
//	y' = d*x + e*y + f
//
// The legacy AffineTransform names the same coefficients
// m00=A, m01=B, m02=C, m10=D, m11=E, m12=F.
type Matrix struct {
	A, B, C float64
	D, E, F float64
}

// Identity returns the identity transformation matrix.
func Identity() Matrix {
	return Matrix{
		A: 1, B: 0, C: 0,
		D: 0, E: 1, F: 0,
	}
}

// Translate creates a translation matrix.
func Translate(x, y float64) Matrix {
	return Matrix{
		A: 1, B: 0, C: x,
		D: 0, E: 1, F: y,
	}
}

// Scale creates a scaling matrix.
func Scale(x, y float64) Matrix {
	return Matrix{
		A: x, B: 0, C: 0,
		D: 0, E: y, F: 0,
	}
}

// Rotate creates a rotation matrix (angle in radians). In a y-down device
// space positive angles turn clockwise, as in the legacy API.
func Rotate(angle float64) Matrix {
	sin, cos := sincos(angle)
	return Matrix{
		A: cos, B: -sin, C: 0,
		D: sin, E: cos, F: 0,
	}
}

// RotateAbout creates a rotation by angle around the anchor (x, y).
func RotateAbout(angle, x, y float64) Matrix {
	return Translate(x, y).Multiply(Rotate(angle)).Multiply(Translate(-x, -y))
}

// QuadrantRotate rotates by n quarter turns exactly, without the rounding
// error math.Sin and math.Cos introduce at multiples of pi/2.
func QuadrantRotate(n int) Matrix {
	switch ((n % 4) + 4) % 4 {
	case 1:
		return Matrix{A: 0, B: -1, D: 1, E: 0}
	case 2:
		return Matrix{A: -1, B: 0, D: 0, E: -1}
	case 3:
		return Matrix{A: 0, B: 1, D: -1, E: 0}
	}
	return Identity()
}

// Shear creates a shear matrix.
func Shear(x, y float64) Matrix {
	return Matrix{
		A: 1, B: x, C: 0,
		D: y, E: 1, F: 0,
	}
}

// sincos snaps results at exact quadrant angles so that Rotate(math.Pi/2)
// produces an exact quarter turn.
func sincos(angle float64) (sin, cos float64) {
	sin, cos = math.Sincos(angle)
	if math.Abs(sin) < 1e-15 {
		sin = 0
	}
	if math.Abs(cos) < 1e-15 {
		cos = 0
	}
	return sin, cos
}

// Multiply multiplies two matrices (m * other). The result applies other
// first, then m: m.Multiply(other).TransformPoint(p) equals
// m.TransformPoint(other.TransformPoint(p)).
func (m Matrix) Multiply(other Matrix) Matrix {
	return Matrix{
		A: m.A*other.A + m.B*other.D,
		B: m.A*other.B + m.B*other.E,
		C: m.A*other.C + m.B*other.F + m.C,
		D: m.D*other.A + m.E*other.D,
		E: m.D*other.B + m.E*other.E,
		F: m.D*other.C + m.E*other.F + m.F,
	}
}

// TransformPoint applies the transformation to a point.
func (m Matrix) TransformPoint(p Point) Point {
	return Point{
		X: m.A*p.X + m.B*p.Y + m.C,
		Y: m.D*p.X + m.E*p.Y + m.F,
	}
}

// TransformVector applies the transformation to a vector (no translation).
func (m Matrix) TransformVector(p Point) Point {
	return Point{
		X: m.A*p.X + m.B*p.Y,
		Y: m.D*p.X + m.E*p.Y,
	}
}

// Determinant returns A*E - B*D.
func (m Matrix) Determinant() float64 {
	return m.A*m.E - m.B*m.D
}

// Invert returns the inverse matrix. A matrix whose determinant is zero or
// not finite has no inverse and Invert reports *NoninvertibleTransformError.
func (m Matrix) Invert() (Matrix, error) {
	det := m.Determinant()
	if det == 0 || !isFinite(det) || !m.IsFinite() {
		return Matrix{}, &NoninvertibleTransformError{Det: det}
	}

	invDet := 1.0 / det
	inv := Matrix{
		A: m.E * invDet,
		B: -m.B * invDet,
		C: (m.B*m.F - m.C*m.E) * invDet,
		D: -m.D * invDet,
		E: m.A * invDet,
		F: (m.C*m.D - m.A*m.F) * invDet,
	}
	if !inv.IsFinite() {
		return Matrix{}, &NoninvertibleTransformError{Det: det}
	}
	return inv, nil
}

// IsIdentity returns true if the matrix is the identity matrix.
func (m Matrix) IsIdentity() bool {
	return m.A == 1 && m.B == 0 && m.C == 0 &&
		m.D == 0 && m.E == 1 && m.F == 0
}

// IsTranslation returns true if the matrix is only a translation.
func (m Matrix) IsTranslation() bool {
	return m.A == 1 && m.B == 0 && m.D == 0 && m.E == 1
}

// IsFinite reports whether every coefficient is finite.
func (m Matrix) IsFinite() bool {
	return isFinite(m.A) && isFinite(m.B) && isFinite(m.C) &&
		isFinite(m.D) && isFinite(m.E) && isFinite(m.F)
}

// ScaleFactor returns the largest factor by which the matrix stretches a
// unit vector. Flattening tolerances given in device space divide by it.
func (m Matrix) ScaleFactor() float64 {
	// Largest singular value of the linear part.
	a, b, d, e := m.A, m.B, m.D, m.E
	s1 := a*a + b*b + d*d + e*e
	det := a*e - b*d
	disc := s1*s1 - 4*det*det
	if disc < 0 {
		disc = 0
	}
	return math.Sqrt((s1 + math.Sqrt(disc)) / 2)
}
