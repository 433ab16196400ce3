// Package recording captures the fills a Graphics session submits to its
// host so they can be inspected or replayed onto another host later.
//
// A Recorder is itself an awt.Rasterizer. Every fill becomes a typed
// command; polygon data, paints and clips live in a ResourcePool and are
// referenced by index. Clip changes are recorded as state commands so a
// clip shared by many fills is stored once.
//
//	rec := recording.NewRecorder()
//	g := awt.NewGraphics(rec)
//	g.Begin()
//	g.FillRect(10, 10, 80, 40)
//	g.End()
//	r := rec.FinishRecording()
//
//	img, err := r.Render("raster", 100, 60)
package recording

import (
	"github.com/nullpops/awt"
	"github.com/nullpops/awt/geom"
)

// CommandType identifies the type of a command.
type CommandType uint8

const (
	CmdSetClip   CommandType = iota // Replace the device clip
	CmdClearClip                    // Remove the device clip
	CmdFill                         // Fill polygons
)

var commandTypeNames = [...]string{
	CmdSetClip:   "SetClip",
	CmdClearClip: "ClearClip",
	CmdFill:      "Fill",
}

// String returns the string representation of a CommandType.
func (c CommandType) String() string {
	if int(c) < len(commandTypeNames) {
		return commandTypeNames[c]
	}
	return "Unknown"
}

// Command is the interface implemented by all command types.
type Command interface {
	Type() CommandType
}

// PolygonsRef is a reference to a polygon set in the resource pool.
type PolygonsRef uint32

// PaintRef is a reference to a resolved paint in the resource pool.
type PaintRef uint32

// ClipRef is a reference to a clip area in the resource pool.
type ClipRef uint32

// InvalidRef marks a reference that points nowhere.
const InvalidRef = ^uint32(0)

// IsValid reports whether r is not InvalidRef.
func (r PolygonsRef) IsValid() bool { return uint32(r) != InvalidRef }

// IsValid reports whether r is not InvalidRef.
func (r PaintRef) IsValid() bool { return uint32(r) != InvalidRef }

// IsValid reports whether r is not InvalidRef.
func (r ClipRef) IsValid() bool { return uint32(r) != InvalidRef }

// SetClipCommand makes a pooled area the clip for following fills.
type SetClipCommand struct {
	Clip ClipRef
}

// Type implements Command.
func (SetClipCommand) Type() CommandType { return CmdSetClip }

// ClearClipCommand leaves following fills unclipped.
type ClearClipCommand struct{}

// Type implements Command.
func (ClearClipCommand) Type() CommandType { return CmdClearClip }

// FillCommand is one recorded awt.FillOp without its clip.
type FillCommand struct {
	Polygons  PolygonsRef
	Rule      geom.WindingRule
	Bounds    geom.Rect
	Paint     PaintRef
	Composite awt.Composite
	Antialias bool
}

// Type implements Command.
func (FillCommand) Type() CommandType { return CmdFill }
