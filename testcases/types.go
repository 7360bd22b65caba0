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

// Package testcases defines marker scenes which are rendered both by this
// module and, through PDF, by an independent renderer.
package testcases

import (
	"image/color"
	"math"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"

	"seehuhn.de/go/arrowhead"
	"seehuhn.de/go/arrowhead/internal/gallery"
	"seehuhn.de/go/arrowhead/internal/pathbuf"
)

// TestCase defines a single marker scene.
//
// Scenes are drawn in white on a black background, so that the pixel
// values of the result equal the coverage of the painted shape.
type TestCase struct {
	Name   string         // lowercase a-z, 0-9 and _ only
	Kind   arrowhead.Kind // marker shape
	Size   float64        // marker size
	Width  int            // canvas width in pixels
	Height int            // canvas height in pixels
	Op     Operation      // what to draw
	Angle  float64        // direction of the marker in degrees, 0 points up
	CTM    matrix.Matrix  // transformation matrix (zero-value means no transform)
}

// Operation is the drawing operation applied to the marker.
type Operation interface {
	isOperation()
}

// Render draws the visible marker. A zero LineWidth disables the stroke.
type Render struct {
	LineWidth float64
	Cap       graphics.LineCapStyle
	Join      graphics.LineJoinStyle
	Dash      []float64
	DashPhase float64
	NoFill    bool // leave Normal and Vee markers unfilled
}

func (Render) isOperation() {}

// Clip fills the canvas, leaving out the clip region of the marker.
type Clip struct{}

func (Clip) isOperation() {}

// Marker returns the marker described by the test case.
func (tc TestCase) Marker() (*arrowhead.Marker, error) {
	opts := []arrowhead.Option{arrowhead.WithSize(tc.Size)}
	if op, ok := tc.Op.(Render); ok {
		opts = append(opts, arrowhead.WithLine(&arrowhead.LineVector{
			Color:      []color.Color{color.White},
			Width:      []float64{op.LineWidth},
			Cap:        op.Cap,
			Join:       op.Join,
			Dash:       op.Dash,
			DashOffset: op.DashPhase,
		}))
		if tc.Kind.HasFill() {
			fill := arrowhead.SolidFill(color.White)
			if op.NoFill {
				fill = &arrowhead.FillVector{}
			}
			opts = append(opts, arrowhead.WithFill(fill))
		}
	}
	return arrowhead.New(tc.Kind, opts...)
}

// Frame returns the transformation into the local frame of the marker.
// The marker is rotated by Angle and centred on the canvas.
func (tc TestCase) Frame() matrix.Matrix {
	sin, cos := math.Sincos(tc.Angle * math.Pi / 180)
	half := tc.Size / 2
	if tc.Kind == arrowhead.Tee {
		half = 0
	}
	cx, cy := float64(tc.Width)/2, float64(tc.Height)/2
	return matrix.Matrix{
		cos, sin, -sin, cos,
		cx + sin*half,
		cy - cos*half,
	}
}

// Draw paints the scene onto s, which must be cleared to black.
func (tc TestCase) Draw(s gallery.Surface) error {
	m, err := tc.Marker()
	if err != nil {
		return err
	}

	s.Save()
	defer s.Restore()
	if tc.CTM != (matrix.Matrix{}) {
		s.Transform(tc.CTM)
	}

	switch tc.Op.(type) {
	case Render:
		s.Transform(tc.Frame())
		m.Render(s, 0)

	case Clip:
		w, h := float64(tc.Width), float64(tc.Height)
		inv, ok := pathbuf.Invert(tc.ctm())
		if !ok {
			return nil
		}
		// The canvas rectangle, in the coordinates of CTM.
		corners := []vec.Vec2{{X: 0, Y: 0}, {X: w, Y: 0}, {X: w, Y: h}, {X: 0, Y: h}}
		s.BeginPath()
		for i, c := range corners {
			p := pathbuf.Apply(inv, c)
			if i == 0 {
				s.MoveTo(p.X, p.Y)
			} else {
				s.LineTo(p.X, p.Y)
			}
		}
		s.ClosePath()
		s.Save()
		s.Transform(tc.Frame())
		m.Clip(s, 0)
		s.Restore()
		s.ClosePath()
		s.ClipEvenOdd()

		s.SetFillColor(color.White)
		s.Fill()
	}
	return nil
}

func (tc TestCase) ctm() matrix.Matrix {
	if tc.CTM == (matrix.Matrix{}) {
		return matrix.Identity
	}
	return tc.CTM
}
