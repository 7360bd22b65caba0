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
	"image/color"

	"seehuhn.de/go/pdf/graphics"
)

// LineStyle supplies stroke parameters for each rendered instance.
type LineStyle interface {
	// StrokeActive reports whether instance i is stroked at all.
	StrokeActive(i int) bool

	// ApplyStroke sets the stroke paint attributes for instance i on ctx.
	ApplyStroke(ctx Context, i int)
}

// FillStyle supplies fill parameters for each rendered instance.
type FillStyle interface {
	// FillActive reports whether instance i is filled at all.
	FillActive(i int) bool

	// ApplyFill sets the fill paint attributes for instance i on ctx.
	ApplyFill(ctx Context, i int)
}

// LineVector is a vectorised [LineStyle].
//
// Each slice field holds either a single value, which applies to every
// instance, or one value per instance index. An empty Alpha or Width
// means 1. An instance is stroked if its colour is non-nil and both its
// alpha and width are positive.
type LineVector struct {
	Color []color.Color
	Alpha []float64
	Width []float64

	Cap        graphics.LineCapStyle
	Join       graphics.LineJoinStyle
	Dash       []float64
	DashOffset float64
}

// SolidLine returns a line style with the same colour and width for every
// instance.
func SolidLine(c color.Color, width float64) *LineVector {
	return &LineVector{
		Color: []color.Color{c},
		Width: []float64{width},
	}
}

// StrokeActive implements the [LineStyle] interface.
func (l *LineVector) StrokeActive(i int) bool {
	if at(l.Color, i, nil) == nil {
		return false
	}
	return at(l.Alpha, i, 1) > 0 && at(l.Width, i, 1) > 0
}

// ApplyStroke implements the [LineStyle] interface.
func (l *LineVector) ApplyStroke(ctx Context, i int) {
	ctx.SetStrokeColor(withAlpha(at(l.Color, i, nil), at(l.Alpha, i, 1)))
	ctx.SetLineWidth(at(l.Width, i, 1))
	ctx.SetLineCap(l.Cap)
	ctx.SetLineJoin(l.Join)
	ctx.SetLineDash(l.Dash, l.DashOffset)
}

// FillVector is a vectorised [FillStyle], using the same conventions as
// [LineVector]. An instance is filled if its colour is non-nil and its
// alpha is positive.
type FillVector struct {
	Color []color.Color
	Alpha []float64
}

// SolidFill returns a fill style with the same colour for every instance.
func SolidFill(c color.Color) *FillVector {
	return &FillVector{Color: []color.Color{c}}
}

// FillActive implements the [FillStyle] interface.
func (f *FillVector) FillActive(i int) bool {
	return at(f.Color, i, nil) != nil && at(f.Alpha, i, 1) > 0
}

// ApplyFill implements the [FillStyle] interface.
func (f *FillVector) ApplyFill(ctx Context, i int) {
	ctx.SetFillColor(withAlpha(at(f.Color, i, nil), at(f.Alpha, i, 1)))
}

// at returns the value for instance i. A single value is broadcast to all
// instances. Indexing past the end of a longer slice panics.
func at[T any](values []T, i int, dflt T) T {
	switch len(values) {
	case 0:
		return dflt
	case 1:
		return values[0]
	default:
		return values[i]
	}
}

// withAlpha scales the opacity of c by alpha, clamped to [0, 1].
func withAlpha(c color.Color, alpha float64) color.Color {
	if c == nil || alpha >= 1 {
		return c
	}
	alpha = max(alpha, 0)
	nc := color.NRGBA64Model.Convert(c).(color.NRGBA64)
	nc.A = uint16(float64(nc.A)*alpha + 0.5)
	return nc
}
