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

package recorder

import (
	"image/color"
	"slices"
	"testing"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"

	"seehuhn.de/go/arrowhead"
)

func TestRecordNormal(t *testing.T) {
	m, err := arrowhead.New(arrowhead.Normal, arrowhead.WithSize(10))
	if err != nil {
		t.Fatal(err)
	}
	r := &Recorder{}
	m.Render(r, 0)

	if got := r.Count(OpFill); got != 1 {
		t.Errorf("%d fills, want 1", got)
	}
	if got := r.Count(OpStroke); got != 1 {
		t.Errorf("%d strokes, want 1", got)
	}
	if got := r.Count(OpClosePath); got != 2 {
		t.Errorf("%d ClosePath calls, want 2", got)
	}

	want := []vec.Vec2{{X: 5, Y: 10}, {X: 0, Y: 0}, {X: -5, Y: 10}}
	want = append(want, want...)
	if got := r.Vertices(); !slices.Equal(got, want) {
		t.Errorf("vertices = %v, want %v", got, want)
	}
}

func TestReplay(t *testing.T) {
	src := &Recorder{}
	src.Save()
	src.Transform(matrix.Matrix{1, 0, 0, 1, 1, 2})
	src.SetStrokeColor(color.White)
	src.SetLineWidth(3)
	src.SetLineCap(graphics.LineCapRound)
	src.SetLineJoin(graphics.LineJoinBevel)
	src.SetLineDash([]float64{1, 2}, 0.5)
	src.BeginPath()
	src.MoveTo(0, 0)
	src.LineTo(1, 1)
	src.ClosePath()
	src.ClipEvenOdd()
	src.Stroke()
	src.SetFillColor(color.Black)
	src.Fill()
	src.Restore()

	dst := &Recorder{}
	src.ApplyTo(dst)

	if !slices.EqualFunc(src.Ops, dst.Ops, opEqual) {
		t.Errorf("replay differs:\n got %v\nwant %v", dst.Codes(), src.Codes())
	}
}

// plain only implements the methods markers use.
type plain struct {
	arrowhead.Context
	calls []string
}

func (p *plain) BeginPath() { p.calls = append(p.calls, "BeginPath") }
func (p *plain) MoveTo(x, y float64) { p.calls = append(p.calls, "MoveTo") }

func TestReplaySkipsState(t *testing.T) {
	src := &Recorder{}
	src.Save()
	src.Transform(matrix.Identity)
	src.BeginPath()
	src.MoveTo(1, 1)
	src.ClipEvenOdd()
	src.Restore()

	dst := &plain{}
	src.ApplyTo(dst)
	if want := []string{"BeginPath", "MoveTo"}; !slices.Equal(dst.calls, want) {
		t.Errorf("calls = %v, want %v", dst.calls, want)
	}
}

func TestDashIsCopied(t *testing.T) {
	dash := []float64{3, 1}
	r := &Recorder{}
	r.SetLineDash(dash, 0)
	dash[0] = 7
	if got := r.Ops[0].Dash[0]; got != 3 {
		t.Errorf("recorded dash changed to %g", got)
	}
}

func TestCodeString(t *testing.T) {
	if got := OpClipEvenOdd.String(); got != "ClipEvenOdd" {
		t.Errorf("got %q", got)
	}
	if got := Code(99).String(); got != "Code(99)" {
		t.Errorf("got %q", got)
	}
}

func opEqual(a, b Op) bool {
	return a.Code == b.Code && a.Pt == b.Pt && a.Color == b.Color &&
		a.Width == b.Width && a.Cap == b.Cap && a.Join == b.Join &&
		slices.Equal(a.Dash, b.Dash) && a.Phase == b.Phase && a.M == b.M
}
