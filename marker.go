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

package arrowhead

import (
	"errors"
	"fmt"
	"image/color"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

const (
	// DefaultSize is the marker size used when no size is given.
	DefaultSize = 25.0

	// ClipTail is the y coordinate at which the clip region of a marker
	// ends, just past the tip. The value was chosen by eye to cover the
	// end of a line of typical width; it is not derived from the style.
	ClipTail = -2.0
)

// ErrNoFill is returned when a fill style is given for a marker kind which
// only strokes.
var ErrNoFill = errors.New("marker kind has no fill")

// Marker draws one kind of arrow head.
//
// Markers draw in a local frame: the tip is at the origin, and the body of
// the marker extends towards positive y, so that the arrow points in the
// negative y direction. The caller transforms the drawing surface into
// this frame before calling Render or Clip.
//
// A Marker is immutable after construction. It holds no reference to a
// drawing surface and can be used with any number of surfaces.
type Marker struct {
	kind Kind
	size float64
	line LineStyle
	fill FillStyle
}

// Option configures a Marker during creation.
type Option func(*options)

type options struct {
	size float64
	line LineStyle
	fill FillStyle
}

// WithSize sets the marker size. Non-positive sizes are accepted and give
// degenerate or mirrored shapes.
func WithSize(size float64) Option {
	return func(o *options) {
		o.size = size
	}
}

// WithLine sets the stroke style.
// The default is a solid black line of width 1.
func WithLine(line LineStyle) Option {
	return func(o *options) {
		o.line = line
	}
}

// WithFill sets the fill style. This is only valid for kinds where
// [Kind.HasFill] is true. The default is solid black.
func WithFill(fill FillStyle) Option {
	return func(o *options) {
		o.fill = fill
	}
}

// New returns a marker of the given kind.
func New(kind Kind, opts ...Option) (*Marker, error) {
	if !kind.valid() {
		return nil, fmt.Errorf("%v: %w", kind, ErrUnknownKind)
	}

	o := options{size: DefaultSize}
	for _, opt := range opts {
		opt(&o)
	}

	if o.line == nil {
		o.line = SolidLine(color.Black, 1)
	}
	if kind.HasFill() {
		if o.fill == nil {
			o.fill = SolidFill(color.Black)
		}
	} else if o.fill != nil {
		return nil, fmt.Errorf("%v: %w", kind, ErrNoFill)
	}

	return &Marker{
		kind: kind,
		size: o.size,
		line: o.line,
		fill: o.fill,
	}, nil
}

// Kind returns the shape of the marker.
func (m *Marker) Kind() Kind {
	return m.kind
}

// Size returns the marker size.
func (m *Marker) Size() float64 {
	return m.size
}

// Line returns the stroke style.
func (m *Marker) Line() LineStyle {
	return m.line
}

// Fill returns the fill style, or nil for kinds without fill.
func (m *Marker) Fill() FillStyle {
	return m.fill
}

// Render paints instance i of the marker onto ctx.
// Render starts its own paths and leaves the last one as the current path.
func (m *Marker) Render(ctx Context, i int) {
	switch m.kind {
	case Open:
		m.renderOpen(ctx, i)
	case Normal, Vee:
		m.renderClosed(ctx, i)
	case Tee:
		m.renderTee(ctx, i)
	}
}

// Clip appends the region covered by instance i of the marker to the
// current path of p. The line leading to the marker should not be drawn
// inside this region.
//
// Clip only emits vertices. It never starts or closes a path, so that the
// caller can combine the regions of several markers into one clip path.
// For Tee markers, Clip does nothing.
func (m *Marker) Clip(p PathBuilder, i int) {
	if m.kind == Tee {
		return
	}

	s := m.size
	p.MoveTo(0.5*s, s)
	p.LineTo(0.5*s, ClipTail)
	p.LineTo(-0.5*s, ClipTail)
	p.LineTo(-0.5*s, s)
	switch m.kind {
	case Open:
		p.LineTo(0, 0)
	case Vee:
		p.LineTo(0, 0.5*s)
	}
	p.LineTo(0.5*s, s)
}

func (m *Marker) renderOpen(ctx Context, i int) {
	if !m.line.StrokeActive(i) {
		return
	}
	s := m.size
	m.line.ApplyStroke(ctx, i)
	ctx.BeginPath()
	ctx.MoveTo(0.5*s, s)
	ctx.LineTo(0, 0)
	ctx.LineTo(-0.5*s, s)
	ctx.Stroke()
}

// renderClosed paints the Normal and Vee shapes. Fill comes first, so that
// the stroke is drawn on top.
func (m *Marker) renderClosed(ctx Context, i int) {
	if m.fill.FillActive(i) {
		m.fill.ApplyFill(ctx, i)
		m.closedPath(ctx)
		ctx.Fill()
	}
	if m.line.StrokeActive(i) {
		m.line.ApplyStroke(ctx, i)
		m.closedPath(ctx)
		ctx.Stroke()
	}
}

func (m *Marker) closedPath(ctx Context) {
	s := m.size
	ctx.BeginPath()
	ctx.MoveTo(0.5*s, s)
	ctx.LineTo(0, 0)
	ctx.LineTo(-0.5*s, s)
	if m.kind == Vee {
		ctx.LineTo(0, 0.5*s)
	}
	ctx.ClosePath()
}

func (m *Marker) renderTee(ctx Context, i int) {
	if !m.line.StrokeActive(i) {
		return
	}
	s := m.size
	m.line.ApplyStroke(ctx, i)
	ctx.BeginPath()
	ctx.MoveTo(0.5*s, 0)
	ctx.LineTo(-0.5*s, 0)
	ctx.Stroke()
}

// Outline returns the visible shape of the marker in the local frame.
// The path is closed for Normal and Vee markers.
func (m *Marker) Outline() *path.Data {
	s := m.size
	p := &path.Data{}
	switch m.kind {
	case Open:
		p.MoveTo(pt(0.5*s, s)).LineTo(pt(0, 0)).LineTo(pt(-0.5*s, s))
	case Normal:
		p.MoveTo(pt(0.5*s, s)).LineTo(pt(0, 0)).LineTo(pt(-0.5*s, s)).Close()
	case Vee:
		p.MoveTo(pt(0.5*s, s)).LineTo(pt(0, 0)).LineTo(pt(-0.5*s, s)).
			LineTo(pt(0, 0.5*s)).Close()
	case Tee:
		p.MoveTo(pt(0.5*s, 0)).LineTo(pt(-0.5*s, 0))
	}
	return p
}

// Bounds returns the bounding box, in the local frame, of all vertices
// emitted by Render and Clip. The stroke width is not included.
func (m *Marker) Bounds() rect.Rect {
	s := m.size
	var corners []vec.Vec2
	if m.kind == Tee {
		corners = []vec.Vec2{pt(0.5*s, 0), pt(-0.5*s, 0)}
	} else {
		corners = []vec.Vec2{
			pt(0.5*s, s), pt(-0.5*s, s),
			pt(0.5*s, ClipTail), pt(-0.5*s, ClipTail),
			pt(0, 0),
		}
	}

	var b rect.Rect
	for i, c := range corners {
		if i == 0 || c.X < b.LLx {
			b.LLx = c.X
		}
		if i == 0 || c.Y < b.LLy {
			b.LLy = c.Y
		}
		if i == 0 || c.X > b.URx {
			b.URx = c.X
		}
		if i == 0 || c.Y > b.URy {
			b.URy = c.Y
		}
	}
	return b
}

func pt(x, y float64) vec.Vec2 {
	return vec.Vec2{X: x, Y: y}
}
