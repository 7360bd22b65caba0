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

// Package pdfcanvas implements a drawing surface on top of a PDF content
// stream.
//
// Colours are written in the DeviceRGB colour space. Transparency is not
// supported: the alpha channel of all colours is ignored.
package pdfcanvas

import (
	"image/color"
	"slices"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/pdf/graphics"
	pdfcolor "seehuhn.de/go/pdf/graphics/color"

	"seehuhn.de/go/arrowhead"
	"seehuhn.de/go/arrowhead/internal/pathbuf"
)

// Writer is the subset of [graphics.Writer] used by the canvas.
type Writer interface {
	MoveTo(x, y float64)
	LineTo(x, y float64)
	ClosePath()
	Stroke()
	Fill()
	ClipEvenOdd()
	EndPath()

	SetStrokeColor(c pdfcolor.Color)
	SetFillColor(c pdfcolor.Color)
	SetLineWidth(width float64)
	SetLineCap(c graphics.LineCapStyle)
	SetLineJoin(j graphics.LineJoinStyle)
	SetLineDash(pattern []float64, phase float64)

	Transform(m matrix.Matrix)
	PushGraphicsState()
	PopGraphicsState()
}

var _ Writer = (*graphics.Writer)(nil)

// Canvas forwards drawing operations to a PDF content stream.
//
// The current path is buffered until it is painted, since a PDF path must
// be painted right after it is constructed and cannot be continued across
// changes of the transformation.
type Canvas struct {
	w Writer

	path  pathbuf.Buffer
	state state
	stack []state
}

// state holds the parts of the graphics state which the canvas needs to
// know about itself.
type state struct {
	ctm         matrix.Matrix
	strokeColor color.Color
	fillColor   color.Color
	width       float64
}

var _ arrowhead.Context = (*Canvas)(nil)

// New returns a canvas which draws on w. The current transformation of w
// is taken as the identity.
func New(w Writer) *Canvas {
	return &Canvas{
		w: w,
		state: state{
			ctm:         matrix.Identity,
			strokeColor: color.Black,
			fillColor:   color.Black,
			width:       1,
		},
	}
}

// Save saves the graphics state, using the PDF operator q.
func (c *Canvas) Save() {
	c.w.PushGraphicsState()
	c.stack = append(c.stack, c.state)
}

// Restore restores the graphics state saved by the matching call to
// Save, using the PDF operator Q. Without a saved state, Restore does
// nothing.
func (c *Canvas) Restore() {
	if len(c.stack) == 0 {
		return
	}
	c.w.PopGraphicsState()
	c.state = c.stack[len(c.stack)-1]
	c.stack = c.stack[:len(c.stack)-1]
	c.path.SetCTM(c.state.ctm)
}

// Transform modifies the transformation so that m is applied to user
// space coordinates before the current transformation (PDF operator cm).
func (c *Canvas) Transform(m matrix.Matrix) {
	c.w.Transform(m)
	c.state.ctm = pathbuf.Concat(m, c.state.ctm)
	c.path.SetCTM(c.state.ctm)
}

// BeginPath implements the [arrowhead.Context] interface.
func (c *Canvas) BeginPath() { c.path.Reset() }

// MoveTo implements the [arrowhead.Context] interface.
func (c *Canvas) MoveTo(x, y float64) { c.path.MoveTo(x, y) }

// LineTo implements the [arrowhead.Context] interface.
func (c *Canvas) LineTo(x, y float64) { c.path.LineTo(x, y) }

// ClosePath implements the [arrowhead.Context] interface.
func (c *Canvas) ClosePath() { c.path.ClosePath() }

// SetStrokeColor implements the [arrowhead.Context] interface.
// A nil colour disables stroking.
func (c *Canvas) SetStrokeColor(col color.Color) {
	c.state.strokeColor = col
	if col != nil {
		c.w.SetStrokeColor(deviceRGB(col))
	}
}

// SetFillColor implements the [arrowhead.Context] interface.
// A nil colour disables filling.
func (c *Canvas) SetFillColor(col color.Color) {
	c.state.fillColor = col
	if col != nil {
		c.w.SetFillColor(deviceRGB(col))
	}
}

// SetLineWidth implements the [arrowhead.Context] interface.
func (c *Canvas) SetLineWidth(width float64) {
	c.state.width = width
	c.w.SetLineWidth(max(width, 0))
}

// SetLineCap implements the [arrowhead.Context] interface.
func (c *Canvas) SetLineCap(lc graphics.LineCapStyle) { c.w.SetLineCap(lc) }

// SetLineJoin implements the [arrowhead.Context] interface.
func (c *Canvas) SetLineJoin(lj graphics.LineJoinStyle) { c.w.SetLineJoin(lj) }

// SetLineDash implements the [arrowhead.Context] interface.
// Patterns which PDF does not allow are replaced by a solid line.
func (c *Canvas) SetLineDash(pattern []float64, phase float64) {
	var sum float64
	for _, v := range pattern {
		if v < 0 {
			sum = 0
			break
		}
		sum += v
	}
	if sum <= 0 {
		c.w.SetLineDash(nil, 0)
		return
	}
	c.w.SetLineDash(slices.Clone(pattern), phase)
}

// Stroke implements the [arrowhead.Context] interface.
// A zero line width paints nothing.
func (c *Canvas) Stroke() {
	if c.state.strokeColor == nil || c.state.width <= 0 {
		return
	}
	if c.emitPath() {
		c.w.Stroke()
	}
}

// Fill implements the [arrowhead.Context] interface.
func (c *Canvas) Fill() {
	if c.state.fillColor == nil {
		return
	}
	if c.emitPath() {
		c.w.Fill()
	}
}

// ClipEvenOdd intersects the clip region with the interior of the current
// path, using the even-odd rule.
func (c *Canvas) ClipEvenOdd() {
	if c.emitPath() {
		c.w.ClipEvenOdd()
		c.w.EndPath()
	}
}

// emitPath writes the buffered path in the current user space.
// It reports whether anything was written. The buffer only holds straight
// segments.
func (c *Canvas) emitPath() bool {
	if c.path.Empty() {
		return false
	}
	p, ok := c.path.User(c.state.ctm)
	if !ok {
		return false
	}

	k := 0
	for _, cmd := range p.Cmds {
		switch cmd {
		case path.CmdMoveTo:
			c.w.MoveTo(p.Coords[k].X, p.Coords[k].Y)
			k++
		case path.CmdLineTo:
			c.w.LineTo(p.Coords[k].X, p.Coords[k].Y)
			k++
		case path.CmdClose:
			c.w.ClosePath()
		}
	}
	return true
}

// deviceRGB converts col to a PDF colour. The alpha channel is dropped.
func deviceRGB(col color.Color) pdfcolor.Color {
	c := color.NRGBA64Model.Convert(col).(color.NRGBA64)
	return pdfcolor.DeviceRGB{
		float64(c.R) / 0xffff,
		float64(c.G) / 0xffff,
		float64(c.B) / 0xffff,
	}
}
