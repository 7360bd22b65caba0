// seehuhn.de/go/arrowhead - arrow head markers for 2D drawing surfaces
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package recorder implements a drawing surface which records all calls.
package recorder

import (
	"fmt"
	"image/color"
	"slices"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"

	"seehuhn.de/go/arrowhead"
)

// Code identifies a recorded operation.
type Code int

const (
	OpBeginPath Code = iota
	OpMoveTo
	OpLineTo
	OpClosePath
	OpStroke
	OpFill
	OpSetStrokeColor
	OpSetFillColor
	OpSetLineWidth
	OpSetLineCap
	OpSetLineJoin
	OpSetLineDash
	OpSave
	OpRestore
	OpTransform
	OpClipEvenOdd
)

var codeNames = [...]string{
	OpBeginPath:      "BeginPath",
	OpMoveTo:         "MoveTo",
	OpLineTo:         "LineTo",
	OpClosePath:      "ClosePath",
	OpStroke:         "Stroke",
	OpFill:           "Fill",
	OpSetStrokeColor: "SetStrokeColor",
	OpSetFillColor:   "SetFillColor",
	OpSetLineWidth:   "SetLineWidth",
	OpSetLineCap:     "SetLineCap",
	OpSetLineJoin:    "SetLineJoin",
	OpSetLineDash:    "SetLineDash",
	OpSave:           "Save",
	OpRestore:        "Restore",
	OpTransform:      "Transform",
	OpClipEvenOdd:    "ClipEvenOdd",
}

func (c Code) String() string {
	if c >= 0 && int(c) < len(codeNames) {
		return codeNames[c]
	}
	return fmt.Sprintf("Code(%d)", int(c))
}

// IsPath reports whether c adds a vertex to the current path.
func (c Code) IsPath() bool {
	return c == OpMoveTo || c == OpLineTo
}

// Op is one recorded call. Only the fields belonging to the operation are
// set.
type Op struct {
	Code Code

	Pt    vec.Vec2              // MoveTo, LineTo
	Color color.Color           // SetStrokeColor, SetFillColor
	Width float64               // SetLineWidth
	Cap   graphics.LineCapStyle // SetLineCap
	Join  graphics.LineJoinStyle
	Dash  []float64 // SetLineDash
	Phase float64
	M     matrix.Matrix // Transform
}

// Recorder records drawing operations.
// The zero value is an empty recording, ready to use.
type Recorder struct {
	Ops []Op
}

var _ arrowhead.Context = (*Recorder)(nil)

// Reset discards all recorded operations.
func (r *Recorder) Reset() {
	r.Ops = r.Ops[:0]
}

// Codes returns the operation codes, in order.
func (r *Recorder) Codes() []Code {
	codes := make([]Code, len(r.Ops))
	for i, op := range r.Ops {
		codes[i] = op.Code
	}
	return codes
}

// Count returns how often the given operation was recorded.
func (r *Recorder) Count(code Code) int {
	n := 0
	for _, op := range r.Ops {
		if op.Code == code {
			n++
		}
	}
	return n
}

// Vertices returns the points of all MoveTo and LineTo operations, in order.
func (r *Recorder) Vertices() []vec.Vec2 {
	var pts []vec.Vec2
	for _, op := range r.Ops {
		if op.Code.IsPath() {
			pts = append(pts, op.Pt)
		}
	}
	return pts
}

// ApplyTo replays all recorded operations on ctx. Operations which ctx does
// not support (Save, Restore, Transform and ClipEvenOdd on a plain
// [arrowhead.Context]) are skipped.
func (r *Recorder) ApplyTo(ctx arrowhead.Context) {
	type stateful interface {
		Save()
		Restore()
		Transform(m matrix.Matrix)
		ClipEvenOdd()
	}
	st, hasState := ctx.(stateful)

	for _, op := range r.Ops {
		switch op.Code {
		case OpBeginPath:
			ctx.BeginPath()
		case OpMoveTo:
			ctx.MoveTo(op.Pt.X, op.Pt.Y)
		case OpLineTo:
			ctx.LineTo(op.Pt.X, op.Pt.Y)
		case OpClosePath:
			ctx.ClosePath()
		case OpStroke:
			ctx.Stroke()
		case OpFill:
			ctx.Fill()
		case OpSetStrokeColor:
			ctx.SetStrokeColor(op.Color)
		case OpSetFillColor:
			ctx.SetFillColor(op.Color)
		case OpSetLineWidth:
			ctx.SetLineWidth(op.Width)
		case OpSetLineCap:
			ctx.SetLineCap(op.Cap)
		case OpSetLineJoin:
			ctx.SetLineJoin(op.Join)
		case OpSetLineDash:
			ctx.SetLineDash(op.Dash, op.Phase)
		case OpSave:
			if hasState {
				st.Save()
			}
		case OpRestore:
			if hasState {
				st.Restore()
			}
		case OpTransform:
			if hasState {
				st.Transform(op.M)
			}
		case OpClipEvenOdd:
			if hasState {
				st.ClipEvenOdd()
			}
		}
	}
}

func (r *Recorder) add(op Op) {
	r.Ops = append(r.Ops, op)
}

// BeginPath implements the [arrowhead.Context] interface.
func (r *Recorder) BeginPath() { r.add(Op{Code: OpBeginPath}) }

// MoveTo implements the [arrowhead.Context] interface.
func (r *Recorder) MoveTo(x, y float64) {
	r.add(Op{Code: OpMoveTo, Pt: vec.Vec2{X: x, Y: y}})
}

// LineTo implements the [arrowhead.Context] interface.
func (r *Recorder) LineTo(x, y float64) {
	r.add(Op{Code: OpLineTo, Pt: vec.Vec2{X: x, Y: y}})
}

// ClosePath implements the [arrowhead.Context] interface.
func (r *Recorder) ClosePath() { r.add(Op{Code: OpClosePath}) }

// Stroke implements the [arrowhead.Context] interface.
func (r *Recorder) Stroke() { r.add(Op{Code: OpStroke}) }

// Fill implements the [arrowhead.Context] interface.
func (r *Recorder) Fill() { r.add(Op{Code: OpFill}) }

// SetStrokeColor implements the [arrowhead.Context] interface.
func (r *Recorder) SetStrokeColor(c color.Color) {
	r.add(Op{Code: OpSetStrokeColor, Color: c})
}

// SetFillColor implements the [arrowhead.Context] interface.
func (r *Recorder) SetFillColor(c color.Color) {
	r.add(Op{Code: OpSetFillColor, Color: c})
}

// SetLineWidth implements the [arrowhead.Context] interface.
func (r *Recorder) SetLineWidth(width float64) {
	r.add(Op{Code: OpSetLineWidth, Width: width})
}

// SetLineCap implements the [arrowhead.Context] interface.
func (r *Recorder) SetLineCap(c graphics.LineCapStyle) {
	r.add(Op{Code: OpSetLineCap, Cap: c})
}

// SetLineJoin implements the [arrowhead.Context] interface.
func (r *Recorder) SetLineJoin(j graphics.LineJoinStyle) {
	r.add(Op{Code: OpSetLineJoin, Join: j})
}

// SetLineDash implements the [arrowhead.Context] interface.
// The pattern is copied.
func (r *Recorder) SetLineDash(pattern []float64, phase float64) {
	r.add(Op{Code: OpSetLineDash, Dash: slices.Clone(pattern), Phase: phase})
}

// Save records a graphics state save.
func (r *Recorder) Save() { r.add(Op{Code: OpSave}) }

// Restore records a graphics state restore.
func (r *Recorder) Restore() { r.add(Op{Code: OpRestore}) }

// Transform records a change of the transformation matrix.
func (r *Recorder) Transform(m matrix.Matrix) {
	r.add(Op{Code: OpTransform, M: m})
}

// ClipEvenOdd records a clip operation.
func (r *Recorder) ClipEvenOdd() { r.add(Op{Code: OpClipEvenOdd}) }
