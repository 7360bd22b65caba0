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

package pathbuf

import (
	"math"
	"slices"
	"testing"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
)

func near(a, b vec.Vec2) bool {
	return math.Abs(a.X-b.X) < 1e-9 && math.Abs(a.Y-b.Y) < 1e-9
}

func TestInvert(t *testing.T) {
	ms := []matrix.Matrix{
		matrix.Identity,
		{2, 0, 0, 3, 10, -4},
		{0, 1, -1, 0, 5, 5},
		{1, 2, 3, 4, 5, 6},
	}
	p := vec.Vec2{X: 1.5, Y: -7}
	for _, m := range ms {
		inv, ok := Invert(m)
		if !ok {
			t.Errorf("%v: not invertible", m)
			continue
		}
		if q := Apply(inv, Apply(m, p)); !near(q, p) {
			t.Errorf("%v: round trip gave %v, want %v", m, q, p)
		}
	}

	if _, ok := Invert(matrix.Matrix{1, 2, 2, 4, 0, 0}); ok {
		t.Error("singular matrix was inverted")
	}
}

func TestConcat(t *testing.T) {
	a := matrix.Matrix{0, 1, -1, 0, 0, 0} // rotate by 90 degrees
	b := matrix.Matrix{1, 0, 0, 1, 10, 0} // translate
	p := vec.Vec2{X: 1, Y: 0}

	got := Apply(Concat(a, b), p)
	want := Apply(b, Apply(a, p))
	if !near(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
	if !near(got, vec.Vec2{X: 10, Y: 1}) {
		t.Errorf("got %v, want (10, 1)", got)
	}
}

func TestMixedTransforms(t *testing.T) {
	var b Buffer
	b.MoveTo(0, 0)
	b.SetCTM(matrix.Matrix{1, 0, 0, 1, 10, 20})
	b.LineTo(1, 1)
	b.ClosePath()

	dev := b.Device()
	want := []vec.Vec2{{X: 0, Y: 0}, {X: 11, Y: 21}}
	if !slices.Equal(dev.Coords, want) {
		t.Errorf("device coords = %v, want %v", dev.Coords, want)
	}

	user, ok := b.User(matrix.Matrix{2, 0, 0, 2, 0, 0})
	if !ok {
		t.Fatal("User failed")
	}
	wantUser := []vec.Vec2{{X: 0, Y: 0}, {X: 5.5, Y: 10.5}}
	for i, p := range user.Coords {
		if !near(p, wantUser[i]) {
			t.Errorf("user coord %d = %v, want %v", i, p, wantUser[i])
		}
	}

	if _, ok := b.User(matrix.Matrix{}); ok {
		t.Error("User succeeded for a singular matrix")
	}
}

func TestImplicitMoveTo(t *testing.T) {
	var b Buffer
	b.LineTo(1, 2) // no current point
	b.LineTo(3, 4)
	b.ClosePath()
	b.LineTo(5, 6) // continues from (1, 2)

	wantCmds := []path.Command{
		path.CmdMoveTo, path.CmdLineTo, path.CmdClose,
		path.CmdMoveTo, path.CmdLineTo,
	}
	wantCoords := []vec.Vec2{{X: 1, Y: 2}, {X: 3, Y: 4}, {X: 1, Y: 2}, {X: 5, Y: 6}}
	if got := b.Device().Cmds; !slices.Equal(got, wantCmds) {
		t.Errorf("cmds = %v, want %v", got, wantCmds)
	}
	if got := b.Device().Coords; !slices.Equal(got, wantCoords) {
		t.Errorf("coords = %v, want %v", got, wantCoords)
	}

	b.Reset()
	if !b.Empty() {
		t.Error("buffer not empty after Reset")
	}
	b.ClosePath()
	if !b.Empty() {
		t.Error("ClosePath without current point changed the path")
	}
}
