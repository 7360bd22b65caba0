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
	"testing"
)

func TestAt(t *testing.T) {
	if got := at([]float64{}, 5, 1); got != 1 {
		t.Errorf("empty: got %g, want default 1", got)
	}
	if got := at([]float64{3}, 5, 1); got != 3 {
		t.Errorf("broadcast: got %g, want 3", got)
	}
	if got := at([]float64{3, 4, 5}, 2, 1); got != 5 {
		t.Errorf("indexed: got %g, want 5", got)
	}

	defer func() {
		if recover() == nil {
			t.Error("no panic for index past the end")
		}
	}()
	at([]float64{3, 4}, 2, 1)
}

func TestStrokeActive(t *testing.T) {
	cases := []struct {
		name string
		l    *LineVector
		want bool
	}{
		{"solid", SolidLine(color.Black, 1), true},
		{"no colour", &LineVector{}, false},
		{"nil colour", &LineVector{Color: []color.Color{nil}}, false},
		{"zero width", SolidLine(color.Black, 0), false},
		{"zero alpha", &LineVector{Color: []color.Color{color.Black}, Alpha: []float64{0}}, false},
		{"negative alpha", &LineVector{Color: []color.Color{color.Black}, Alpha: []float64{-0.5}}, false},
		{"negative width", SolidLine(color.Black, -1), false},
		{"defaults", &LineVector{Color: []color.Color{color.White}}, true},
	}
	for _, c := range cases {
		if got := c.l.StrokeActive(0); got != c.want {
			t.Errorf("%s: StrokeActive = %t, want %t", c.name, got, c.want)
		}
	}
}

func TestFillActive(t *testing.T) {
	f := &FillVector{
		Color: []color.Color{color.Black, nil, color.White, color.Black},
		Alpha: []float64{1, 1, 0, -1},
	}
	want := []bool{true, false, false, false}
	for i, w := range want {
		if got := f.FillActive(i); got != w {
			t.Errorf("FillActive(%d) = %t, want %t", i, got, w)
		}
	}
}

func TestWithAlpha(t *testing.T) {
	red := color.NRGBA{R: 255, A: 255}

	if got := withAlpha(red, 1); got != color.Color(red) {
		t.Errorf("alpha 1 changed the colour: %v", got)
	}

	half := withAlpha(red, 0.5)
	nc := color.NRGBA64Model.Convert(half).(color.NRGBA64)
	if nc.R != 0xffff || nc.A != 0x8000 {
		t.Errorf("alpha 0.5: got %+v", nc)
	}

	zero := color.NRGBA64Model.Convert(withAlpha(red, -1)).(color.NRGBA64)
	if zero.A != 0 {
		t.Errorf("negative alpha: got A=%d, want 0", zero.A)
	}
}
