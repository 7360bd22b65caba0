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

// PathBuilder receives the vertices of a path.
type PathBuilder interface {
	MoveTo(x, y float64)
	LineTo(x, y float64)
}

// Context is a drawing surface.
//
// Contexts follow HTML canvas semantics: Stroke and Fill paint the current
// path without consuming it, and only BeginPath discards the current path.
// Paint attributes set through the Set* methods apply to all following
// paint operations.
//
// A Context is owned by the caller and is not safe for concurrent use.
type Context interface {
	PathBuilder

	BeginPath()
	ClosePath()
	Stroke()
	Fill()

	SetStrokeColor(c color.Color)
	SetFillColor(c color.Color)
	SetLineWidth(width float64)
	SetLineCap(c graphics.LineCapStyle)
	SetLineJoin(j graphics.LineJoinStyle)

	// SetLineDash sets the dash pattern. A nil pattern selects solid lines.
	SetLineDash(pattern []float64, phase float64)
}
