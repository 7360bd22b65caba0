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

package pdfcanvas

import (
	"fmt"
	"image/color"
	"reflect"
	"slices"
	"strings"
	"testing"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/pdf/graphics"
	pdfcolor "seehuhn.de/go/pdf/graphics/color"

	"seehuhn.de/go/arrowhead"
	"seehuhn.de/go/arrowhead/internal/gallery"
)

var _ gallery.Surface = (*Canvas)(nil)

// fakeWriter records the content stream operators it receives.
type fakeWriter struct {
	ops        []string
	fillColors []pdfcolor.Color
}

func (f *fakeWriter) add(format string, args ...any) {
	f.ops = append(f.ops, fmt.Sprintf(format, args...))
}

func (f *fakeWriter) MoveTo(x, y float64) { f.add("%g %g m", x, y) }
func (f *fakeWriter) LineTo(x, y float64) { f.add("%g %g l", x, y) }
func (f *fakeWriter) ClosePath()          { f.add("h") }
func (f *fakeWriter) Stroke()             { f.add("S") }
func (f *fakeWriter) Fill()               { f.add("f") }
func (f *fakeWriter) ClipEvenOdd()        { f.add("W*") }
func (f *fakeWriter) EndPath()            { f.add("n") }

func (f *fakeWriter) SetStrokeColor(pdfcolor.Color) { f.add("SC") }
func (f *fakeWriter) SetFillColor(c pdfcolor.Color) {
	f.fillColors = append(f.fillColors, c)
	f.add("sc")
}
func (f *fakeWriter) SetLineWidth(width float64)           { f.add("%g w", width) }
func (f *fakeWriter) SetLineCap(c graphics.LineCapStyle)   { f.add("%d J", c) }
func (f *fakeWriter) SetLineJoin(j graphics.LineJoinStyle) { f.add("%d j", j) }
func (f *fakeWriter) SetLineDash(pattern []float64, phase float64) {
	f.add("%v %g d", pattern, phase)
}

func (f *fakeWriter) Transform(m matrix.Matrix) {
	f.add("%g %g %g %g %g %g cm", m[0], m[1], m[2], m[3], m[4], m[5])
}
func (f *fakeWriter) PushGraphicsState() { f.add("q") }
func (f *fakeWriter) PopGraphicsState()  { f.add("Q") }

func TestVeeMarker(t *testing.T) {
	w := &fakeWriter{}
	c := New(w)
	m, err := arrowhead.New(arrowhead.Vee, arrowhead.WithSize(10))
	if err != nil {
		t.Fatal(err)
	}

	c.Save()
	c.Transform(matrix.Matrix{0, 1, -1, 0, 20, 30})
	m.Render(c, 0)
	c.Restore()

	want := []string{
		"q",
		"0 1 -1 0 20 30 cm",
		"sc",
		"5 10 m", "0 0 l", "-5 10 l", "0 5 l", "h", "f",
		"SC", "1 w", "0 J", "0 j", "[] 0 d",
		"5 10 m", "0 0 l", "-5 10 l", "0 5 l", "h", "S",
		"Q",
	}
	if !slices.Equal(w.ops, want) {
		t.Errorf("got\n%s\nwant\n%s", strings.Join(w.ops, "\n"), strings.Join(want, "\n"))
	}
}

func TestClipEvenOdd(t *testing.T) {
	w := &fakeWriter{}
	c := New(w)
	c.BeginPath()
	c.MoveTo(0, 0)
	c.LineTo(10, 0)
	c.LineTo(10, 10)
	c.ClosePath()
	c.ClipEvenOdd()

	want := []string{"0 0 m", "10 0 l", "10 10 l", "h", "W*", "n"}
	if !slices.Equal(w.ops, want) {
		t.Errorf("got %v, want %v", w.ops, want)
	}
}

// TestMixedTransforms checks that a path built under two transformations
// is written in the user space which is current when it is painted.
func TestMixedTransforms(t *testing.T) {
	w := &fakeWriter{}
	c := New(w)
	c.SetFillColor(color.White)
	c.BeginPath()
	c.MoveTo(1, 1)
	c.Save()
	c.Transform(matrix.Matrix{2, 0, 0, 2, 0, 0})
	c.LineTo(1, 0)
	c.Restore()
	c.LineTo(0, 1)
	c.Fill()

	n := len(w.ops)
	want := []string{"1 1 m", "2 0 l", "0 1 l", "f"}
	if n < len(want) || !slices.Equal(w.ops[n-len(want):], want) {
		t.Errorf("got %v, want suffix %v", w.ops, want)
	}
}

func TestDisabledPaint(t *testing.T) {
	w := &fakeWriter{}
	c := New(w)
	c.BeginPath()
	c.MoveTo(0, 0)
	c.LineTo(1, 1)

	c.SetLineWidth(0)
	c.Stroke()
	c.SetFillColor(nil)
	c.Fill()
	c.BeginPath()
	c.ClipEvenOdd()

	for _, op := range w.ops {
		if op == "S" || op == "f" || op == "W*" {
			t.Errorf("unexpected %q in %v", op, w.ops)
		}
	}
}

func TestLineDash(t *testing.T) {
	w := &fakeWriter{}
	c := New(w)
	c.SetLineDash([]float64{2, 1}, 0.5)
	c.SetLineDash([]float64{0, 0}, 1)
	c.SetLineDash([]float64{2, -1}, 0)

	want := []string{"[2 1] 0.5 d", "[] 0 d", "[] 0 d"}
	if !slices.Equal(w.ops, want) {
		t.Errorf("got %v, want %v", w.ops, want)
	}
}

func TestDeviceRGB(t *testing.T) {
	w := &fakeWriter{}
	c := New(w)
	c.SetFillColor(color.White)
	c.SetFillColor(color.Black)
	c.SetFillColor(color.NRGBA{R: 255, A: 255})
	c.SetFillColor(color.NRGBA{R: 255, G: 255, B: 255, A: 10})
	c.SetFillColor(nil)

	want := []pdfcolor.Color{
		pdfcolor.DeviceRGB{1, 1, 1},
		pdfcolor.DeviceRGB{0, 0, 0},
		pdfcolor.DeviceRGB{1, 0, 0},
		pdfcolor.DeviceRGB{1, 1, 1},
	}
	if !reflect.DeepEqual(w.fillColors, want) {
		t.Errorf("got %v, want %v", w.fillColors, want)
	}
}
