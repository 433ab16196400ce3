package recording

import (
	"errors"
	"fmt"
	"image"
	"log/slog"

	"github.com/nullpops/awt"
	"github.com/nullpops/awt/geom"
)

// ErrNilFill is returned by Recorder.Fill for a nil op.
var ErrNilFill = errors.New("recording: nil fill op")

// Recorder captures fills as commands. Use FinishRecording to obtain an
// immutable Recording that can be replayed to any awt.Rasterizer.
//
// The Recorder is not safe for concurrent use.
type Recorder struct {
	commands  []Command
	resources *ResourcePool

	clip      *geom.Area
	lastPaint PaintRef
	lastSolid awt.Color
	bounds    geom.Rect
}

var _ awt.Rasterizer = (*Recorder)(nil)

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{
		commands:  make([]Command, 0, 64),
		resources: NewResourcePool(),
		lastPaint: PaintRef(InvalidRef),
	}
}

// Fill implements awt.Rasterizer. The op's polygons are copied; nothing
// the caller owns is retained.
func (r *Recorder) Fill(op *awt.FillOp) error {
	if op == nil {
		return ErrNilFill
	}
	if op.Clip != r.clip {
		if op.Clip == nil {
			r.commands = append(r.commands, ClearClipCommand{})
		} else {
			r.commands = append(r.commands, SetClipCommand{Clip: r.resources.AddClip(op.Clip)})
		}
		r.clip = op.Clip
	}

	r.commands = append(r.commands, FillCommand{
		Polygons:  r.resources.AddPolygons(op.Polygons),
		Rule:      op.Rule,
		Bounds:    op.Bounds,
		Paint:     r.paintRef(op.Paint),
		Composite: op.Composite,
		Antialias: op.Antialias,
	})

	if vis := op.Visible(); !vis.IsEmpty() {
		if r.bounds.IsEmpty() {
			r.bounds = vis
		} else {
			r.bounds = r.bounds.Union(vis)
		}
	}
	return nil
}

// paintRef pools rp, reusing the previous entry for a repeated solid color.
func (r *Recorder) paintRef(rp awt.ResolvedPaint) PaintRef {
	if c, ok := rp.Solid(); ok {
		if r.lastPaint.IsValid() && c == r.lastSolid {
			return r.lastPaint
		}
		r.lastPaint = r.resources.AddPaint(rp)
		r.lastSolid = c
		return r.lastPaint
	}
	r.lastPaint = PaintRef(InvalidRef)
	return r.resources.AddPaint(rp)
}

// Len returns the number of commands recorded so far.
func (r *Recorder) Len() int { return len(r.commands) }

// FinishRecording returns an immutable Recording containing all recorded
// commands. After calling FinishRecording, the Recorder should not be
// used again.
func (r *Recorder) FinishRecording() *Recording {
	return &Recording{
		commands:  r.commands,
		resources: r.resources,
		bounds:    r.bounds,
	}
}

// Recording is an immutable list of recorded fills.
type Recording struct {
	commands  []Command
	resources *ResourcePool
	bounds    geom.Rect
}

// Commands returns the recorded commands.
func (r *Recording) Commands() []Command { return r.commands }

// Resources returns the resource pool.
func (r *Recording) Resources() *ResourcePool { return r.resources }

// Bounds returns the union of the visible bounds of every fill. It is
// empty when nothing visible was recorded.
func (r *Recording) Bounds() geom.Rect { return r.bounds }

// Fills returns the number of fill commands.
func (r *Recording) Fills() int {
	n := 0
	for _, c := range r.commands {
		if c.Type() == CmdFill {
			n++
		}
	}
	return n
}

// Playback replays the recording onto dst in order and stops at the first
// host error.
func (r *Recording) Playback(dst awt.Rasterizer) error {
	var (
		clip       *geom.Area
		clipBounds geom.Rect
	)
	for i, cmd := range r.commands {
		switch c := cmd.(type) {
		case SetClipCommand:
			clip = r.resources.Clip(c.Clip)
			if clip == nil {
				return fmt.Errorf("recording: command %d: invalid clip ref %d", i, c.Clip)
			}
			clipBounds = clip.Bounds()
		case ClearClipCommand:
			clip, clipBounds = nil, geom.Rect{}
		case FillCommand:
			paint, ok := r.resources.Paint(c.Paint)
			if !ok {
				return fmt.Errorf("recording: command %d: invalid paint ref %d", i, c.Paint)
			}
			op := &awt.FillOp{
				Polygons:   r.resources.Polygons(c.Polygons),
				Rule:       c.Rule,
				Bounds:     c.Bounds,
				Paint:      paint,
				Composite:  c.Composite,
				Clip:       clip,
				ClipBounds: clipBounds,
				Antialias:  c.Antialias,
			}
			if err := dst.Fill(op); err != nil {
				awt.Logger().Warn("recording: playback stopped",
					slog.Int("command", i),
					slog.Any("err", err),
				)
				return fmt.Errorf("recording: command %d: %w", i, err)
			}
		}
	}
	return nil
}

// Render replays the recording onto a fresh target from the named host
// factory and returns the target's image.
func (r *Recording) Render(name string, width, height int) (image.Image, error) {
	host, img, err := NewTarget(name, width, height)
	if err != nil {
		return nil, err
	}
	if err := r.Playback(host); err != nil {
		return nil, err
	}
	return img, nil
}
