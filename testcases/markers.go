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

package testcases

import (
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/pdf/graphics"

	"seehuhn.de/go/arrowhead"
)

var solid = Render{LineWidth: 2, Join: graphics.LineJoinMiter}

var renderCases = []TestCase{
	{Name: "open", Kind: arrowhead.Open, Size: 25, Width: 64, Height: 64, Op: solid},
	{Name: "normal", Kind: arrowhead.Normal, Size: 25, Width: 64, Height: 64, Op: solid},
	{Name: "vee", Kind: arrowhead.Vee, Size: 25, Width: 64, Height: 64, Op: solid},
	{Name: "tee", Kind: arrowhead.Tee, Size: 25, Width: 64, Height: 64, Op: solid},
	{Name: "normal_small", Kind: arrowhead.Normal, Size: 6, Width: 16, Height: 16, Op: Render{LineWidth: 1}},
	{Name: "vee_large", Kind: arrowhead.Vee, Size: 100, Width: 128, Height: 128, Op: solid},
	{Name: "normal_fill_only", Kind: arrowhead.Normal, Size: 25, Width: 64, Height: 64, Op: Render{}},
	{Name: "vee_stroke_only", Kind: arrowhead.Vee, Size: 25, Width: 64, Height: 64, Op: Render{LineWidth: 2, NoFill: true}},
}

var rotateCases = []TestCase{
	{Name: "open_90", Kind: arrowhead.Open, Size: 25, Width: 64, Height: 64, Op: solid, Angle: 90},
	{Name: "normal_45", Kind: arrowhead.Normal, Size: 25, Width: 64, Height: 64, Op: solid, Angle: 45},
	{Name: "vee_180", Kind: arrowhead.Vee, Size: 25, Width: 64, Height: 64, Op: solid, Angle: 180},
	{Name: "tee_30", Kind: arrowhead.Tee, Size: 25, Width: 64, Height: 64, Op: solid, Angle: 30},
	{Name: "vee_5", Kind: arrowhead.Vee, Size: 40, Width: 64, Height: 64, Op: solid, Angle: 5},
}

var clipCases = []TestCase{
	{Name: "open", Kind: arrowhead.Open, Size: 25, Width: 64, Height: 64, Op: Clip{}},
	{Name: "normal", Kind: arrowhead.Normal, Size: 25, Width: 64, Height: 64, Op: Clip{}},
	{Name: "vee", Kind: arrowhead.Vee, Size: 25, Width: 64, Height: 64, Op: Clip{}},
	{Name: "tee", Kind: arrowhead.Tee, Size: 25, Width: 64, Height: 64, Op: Clip{}},
	{Name: "vee_rotated", Kind: arrowhead.Vee, Size: 30, Width: 64, Height: 64, Op: Clip{}, Angle: 60},
}

var styleCases = []TestCase{
	{
		Name: "open_round", Kind: arrowhead.Open, Size: 30, Width: 64, Height: 64,
		Op: Render{LineWidth: 6, Cap: graphics.LineCapRound, Join: graphics.LineJoinRound},
	},
	{
		Name: "open_square", Kind: arrowhead.Open, Size: 30, Width: 64, Height: 64,
		Op: Render{LineWidth: 6, Cap: graphics.LineCapSquare, Join: graphics.LineJoinBevel},
	},
	{
		Name: "open_miter", Kind: arrowhead.Open, Size: 30, Width: 64, Height: 64,
		Op: Render{LineWidth: 6, Join: graphics.LineJoinMiter},
	},
	{
		Name: "vee_bevel", Kind: arrowhead.Vee, Size: 30, Width: 64, Height: 64,
		Op: Render{LineWidth: 4, Join: graphics.LineJoinBevel, NoFill: true},
	},
	{
		Name: "normal_dashed", Kind: arrowhead.Normal, Size: 40, Width: 64, Height: 64,
		Op: Render{LineWidth: 2, Dash: []float64{6, 3}, NoFill: true},
	},
	{
		Name: "tee_dashed_phase", Kind: arrowhead.Tee, Size: 50, Width: 64, Height: 64,
		Op: Render{LineWidth: 4, Dash: []float64{8, 4}, DashPhase: 5},
	},
}

var ctmCases = []TestCase{
	{
		Name: "normal_scale_2x", Kind: arrowhead.Normal, Size: 12, Width: 64, Height: 64, Op: solid,
		CTM: matrix.Scale(2, 2).Translate(-32, -32),
	},
	{
		Name: "open_scale_2x_1y", Kind: arrowhead.Open, Size: 20, Width: 64, Height: 64, Op: solid,
		CTM: matrix.Scale(2, 1).Translate(-32, 0),
	},
	{
		Name: "vee_shear", Kind: arrowhead.Vee, Size: 25, Width: 64, Height: 64, Op: solid,
		CTM: matrix.Matrix{1, 0, 0.5, 1, -16, 0},
	},
	{
		Name: "normal_clip_scaled", Kind: arrowhead.Normal, Size: 12, Width: 64, Height: 64, Op: Clip{},
		CTM: matrix.Scale(2, 2).Translate(-32, -32),
	},
}
