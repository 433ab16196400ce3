package awt

import (
	"fmt"

	"github.com/nullpops/awt/font"
	"github.com/nullpops/awt/geom"
	"github.com/nullpops/awt/stroke"
)

// SessionState is the lifecycle state of a Graphics.
type SessionState uint8

const (
	// Idle sessions accept only Begin.
	Idle SessionState = iota
	// Drawing sessions accept state changes and drawing.
	Drawing
	// Failed sessions reject everything but End.
	Failed
)

func (s SessionState) String() string {
	switch s {
	case Idle:
		return "idle"
	case Drawing:
		return "drawing"
	case Failed:
		return "failed"
	}
	return fmt.Sprintf("SessionState(%d)", uint8(s))
}

// Hint is a rendering hint key.
type Hint uint8

const (
	// HintAntialias smooths shape edges.
	HintAntialias Hint = iota
	// HintTextAntialias smooths glyph edges.
	HintTextAntialias
)

func (h Hint) String() string {
	switch h {
	case HintAntialias:
		return "antialias"
	case HintTextAntialias:
		return "text-antialias"
	}
	return fmt.Sprintf("Hint(%d)", uint8(h))
}

// Hints holds the rendering hints.
type Hints struct {
	Antialias     bool
	TextAntialias bool
}

func (h *Hints) set(key Hint, on bool) error {
	switch key {
	case HintAntialias:
		h.Antialias = on
	case HintTextAntialias:
		h.TextAntialias = on
	default:
		return fmt.Errorf("awt: unknown hint %d", uint8(key))
	}
	return nil
}

// RenderState is one entry of the Graphics state stack. Clip is in device
// space; nil means unbounded.
type RenderState struct {
	Transform geom.Matrix
	Clip      *geom.Area
	Paint     Paint
	Stroke    stroke.Style
	Composite Composite
	Font      *font.Face
	Hints     Hints
}

// Clone returns a copy that shares no mutable data with s. Areas and
// faces are immutable and stay shared.
func (s RenderState) Clone() RenderState {
	s.Stroke = s.Stroke.Clone()
	s.Paint = clonePaint(s.Paint)
	return s
}
