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

// Package gallery lays out and draws sample arrows with markers at both
// ends.
package gallery

import (
	"errors"
	"fmt"
	"image/color"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/arrowhead"
)

// Surface is a drawing surface with a graphics state stack and clipping.
type Surface interface {
	arrowhead.Context

	Save()
	Restore()
	Transform(m matrix.Matrix)
	ClipEvenOdd()
}

// Frame returns the transformation from the local frame of a marker to
// the coordinates of its line. The tip of the marker is placed at at, and
// dir is the unit vector pointing from the line towards the tip.
func Frame(at, dir vec.Vec2) matrix.Matrix {
	return matrix.Matrix{-dir.Y, dir.X, -dir.X, -dir.Y, at.X, at.Y}
}

// Arrow is a straight line with optional markers at its ends.
type Arrow struct {
	From, To   vec.Vec2
	Start, End *arrowhead.Marker // nil for no marker
	Line       arrowhead.LineStyle
	Index      int // instance index passed to styles and markers
}

type placed struct {
	m     *arrowhead.Marker
	frame matrix.Matrix
}

func (a *Arrow) markers() []placed {
	d := a.To.Sub(a.From)
	length := d.Length()
	if length == 0 {
		return nil
	}
	d = d.Mul(1 / length)

	var res []placed
	if a.Start != nil {
		res = append(res, placed{a.Start, Frame(a.From, d.Mul(-1))})
	}
	if a.End != nil {
		res = append(res, placed{a.End, Frame(a.To, d)})
	}
	return res
}

// Draw paints the arrow onto s. The line is clipped so that it does not
// show inside the markers; bounds must contain the whole arrow.
func (a *Arrow) Draw(s Surface, bounds rect.Rect) {
	ms := a.markers()

	if a.Line != nil && a.Line.StrokeActive(a.Index) {
		s.Save()
		s.BeginPath()
		s.MoveTo(bounds.LLx, bounds.LLy)
		s.LineTo(bounds.URx, bounds.LLy)
		s.LineTo(bounds.URx, bounds.URy)
		s.LineTo(bounds.LLx, bounds.URy)
		s.ClosePath()
		for _, p := range ms {
			s.Save()
			s.Transform(p.frame)
			p.m.Clip(s, a.Index)
			s.Restore()
			s.ClosePath()
		}
		s.ClipEvenOdd()

		a.Line.ApplyStroke(s, a.Index)
		s.BeginPath()
		s.MoveTo(a.From.X, a.From.Y)
		s.LineTo(a.To.X, a.To.Y)
		s.Stroke()
		s.Restore()
	}

	for _, p := range ms {
		s.Save()
		s.Transform(p.frame)
		p.m.Render(s, a.Index)
		s.Restore()
	}
}

// Options controls the layout of a gallery.
type Options struct {
	Width     float64 // total width
	RowHeight float64 // height of one row
	Size      float64 // marker size
	LineWidth float64
	LineColor color.Color
	FillColor color.Color
	Kinds     []arrowhead.Kind // one row per entry
}

// ErrEmpty is returned when a gallery would contain no rows.
var ErrEmpty = errors.New("gallery has no rows")

// Gallery is a list of arrows, one per row.
type Gallery struct {
	Arrows []Arrow
	Bounds rect.Rect
}

// New lays out one horizontal arrow per marker kind, with the marker at
// both ends of the line.
func New(opt Options) (*Gallery, error) {
	if len(opt.Kinds) == 0 {
		return nil, ErrEmpty
	}

	line := arrowhead.SolidLine(opt.LineColor, opt.LineWidth)
	markers := make([]*arrowhead.Marker, len(opt.Kinds))
	margin := 0.0
	for i, kind := range opt.Kinds {
		opts := []arrowhead.Option{arrowhead.WithSize(opt.Size), arrowhead.WithLine(line)}
		if kind.HasFill() {
			opts = append(opts, arrowhead.WithFill(arrowhead.SolidFill(opt.FillColor)))
		}
		m, err := arrowhead.New(kind, opts...)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		markers[i] = m

		// In the marker frame, x runs across the line and -y points
		// away from it.
		b := m.Bounds()
		if across := b.URx - b.LLx + opt.LineWidth; across > opt.RowHeight {
			return nil, fmt.Errorf("row %d: %v marker of size %g does not fit into row height %g",
				i, kind, opt.Size, opt.RowHeight)
		}
		margin = max(margin, 0.5*opt.Size, -b.LLy)
	}
	margin += opt.LineWidth
	if opt.Width <= 2*margin {
		return nil, fmt.Errorf("gallery of width %g is too small for markers of size %g",
			opt.Width, opt.Size)
	}

	g := &Gallery{
		Bounds: rect.Rect{URx: opt.Width, URy: opt.RowHeight * float64(len(opt.Kinds))},
	}
	for i, m := range markers {
		y := (float64(i) + 0.5) * opt.RowHeight
		g.Arrows = append(g.Arrows, Arrow{
			From:  vec.Vec2{X: margin, Y: y},
			To:    vec.Vec2{X: opt.Width - margin, Y: y},
			Start: m,
			End:   m,
			Line:  line,
			Index: i,
		})
	}
	return g, nil
}

// Draw paints all arrows onto s.
func (g *Gallery) Draw(s Surface) {
	for i := range g.Arrows {
		g.Arrows[i].Draw(s, g.Bounds)
	}
}
