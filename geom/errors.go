package geom

import (
	"errors"
	"fmt"
)

// Sentinel errors for the geom package.
var (
	// ErrNoninvertible is returned when a matrix has no inverse.
	ErrNoninvertible = errors.New("geom: noninvertible transform")

	// ErrDegenerateGeometry is returned when a boolean operation cannot
	// resolve its operands into a closed region.
	ErrDegenerateGeometry = errors.New("geom: degenerate geometry")
)

// NoninvertibleTransformError reports the determinant of a matrix that
// could not be inverted.
type NoninvertibleTransformError struct {
	Det float64
}

func (e *NoninvertibleTransformError) Error() string {
	return fmt.Sprintf("geom: noninvertible transform (determinant %g)", e.Det)
}

// Is reports whether target is ErrNoninvertible.
func (e *NoninvertibleTransformError) Is(target error) bool {
	return target == ErrNoninvertible
}

// DegenerateGeometryError is returned by boolean operations on paths that
// contain non-finite coordinates.
type DegenerateGeometryError struct {
	Operand string // "a" or "b"
	Reason  string
}

func (e *DegenerateGeometryError) Error() string {
	if e.Operand == "" {
		return "geom: degenerate geometry: " + e.Reason
	}
	return fmt.Sprintf("geom: degenerate geometry in operand %s: %s", e.Operand, e.Reason)
}

// Is reports whether target is ErrDegenerateGeometry.
func (e *DegenerateGeometryError) Is(target error) bool {
	return target == ErrDegenerateGeometry
}
