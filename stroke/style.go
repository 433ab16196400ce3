package stroke

import (
	"fmt"
	"math"
)

// Cap is the decoration at the ends of open subpaths and dashes.
type Cap uint8

const (
	// CapButt ends the stroke flush with the end point.
	CapButt Cap = iota
	// CapRound adds a half disc of radius Width/2.
	CapRound
	// CapSquare extends the stroke by Width/2 past the end point.
	CapSquare
)

func (c Cap) String() string {
	switch c {
	case CapButt:
		return "butt"
	case CapRound:
		return "round"
	case CapSquare:
		return "square"
	}
	return fmt.Sprintf("Cap(%d)", uint8(c))
}

// Join is the decoration where two segments meet.
type Join uint8

const (
	// JoinMiter extends the outer edges until they meet, falling back to
	// a bevel when the miter would exceed MiterLimit.
	JoinMiter Join = iota
	// JoinRound fills the corner with a circular arc.
	JoinRound
	// JoinBevel connects the outer corners with a straight line.
	JoinBevel
)

func (j Join) String() string {
	switch j {
	case JoinMiter:
		return "miter"
	case JoinRound:
		return "round"
	case JoinBevel:
		return "bevel"
	}
	return fmt.Sprintf("Join(%d)", uint8(j))
}

// Style is a pen. The zero Style has zero width and draws nothing; use
// DefaultStyle for the legacy default pen.
type Style struct {
	Width      float64
	Cap        Cap
	Join       Join
	MiterLimit float64

	// Dash alternates on and off lengths, starting with on. DashPhase is
	// the distance into the pattern at which each subpath starts.
	Dash      []float64
	DashPhase float64
}

// DefaultStyle returns a solid 1 unit pen with square caps and miter
// joins limited at 10.
func DefaultStyle() Style {
	return Style{
		Width:      1,
		Cap:        CapSquare,
		Join:       JoinMiter,
		MiterLimit: 10,
	}
}

// WithWidth returns a copy of the style with the given width.
func (s Style) WithWidth(w float64) Style {
	s.Width = w
	return s
}

// WithCap returns a copy of the style with the given cap.
func (s Style) WithCap(c Cap) Style {
	s.Cap = c
	return s
}

// WithJoin returns a copy of the style with the given join.
func (s Style) WithJoin(j Join) Style {
	s.Join = j
	return s
}

// WithMiterLimit returns a copy of the style with the given miter limit.
// A limit of 1 turns every miter into a bevel.
func (s Style) WithMiterLimit(limit float64) Style {
	s.MiterLimit = limit
	return s
}

// WithDash returns a copy of the style using pattern, starting phase
// units into it. The pattern is copied.
func (s Style) WithDash(phase float64, pattern ...float64) Style {
	s.Dash = append([]float64(nil), pattern...)
	s.DashPhase = phase
	return s
}

// Clone returns a deep copy of the style.
func (s Style) Clone() Style {
	if s.Dash != nil {
		s.Dash = append([]float64(nil), s.Dash...)
	}
	return s
}

// IsDashed reports whether the dash pattern will split the stroke. A
// pattern with no positive finite length, or with a negative or NaN entry,
// draws solid.
func (s Style) IsDashed() bool {
	return s.dashPattern() != nil
}

// IsEmpty reports whether the pen has no area: zero, negative or NaN width.
func (s Style) IsEmpty() bool {
	return !(s.Width > 0) || math.IsInf(s.Width, 0)
}

// dashPattern returns the effective pattern with odd lengths doubled, or
// nil for a solid stroke.
func (s Style) dashPattern() []float64 {
	if len(s.Dash) == 0 {
		return nil
	}
	var total float64
	for _, d := range s.Dash {
		if !(d >= 0) || math.IsInf(d, 0) {
			return nil
		}
		total += d
	}
	if total == 0 {
		return nil
	}
	if len(s.Dash)%2 == 0 {
		return s.Dash
	}
	out := make([]float64, 2*len(s.Dash))
	copy(out, s.Dash)
	copy(out[len(s.Dash):], s.Dash)
	return out
}

// miterLimit returns the limit clamped to the legacy minimum of 1.
func (s Style) miterLimit() float64 {
	if !(s.MiterLimit >= 1) {
		return 1
	}
	return s.MiterLimit
}
