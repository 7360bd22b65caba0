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

package raster

import (
	"math"
	"slices"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

// Rasterizer converts paths to pixel coverage: the fraction of each pixel
// covered by the filled or stroked shape, between 0 and 1. Internal
// buffers are kept between calls, so one Rasterizer should be reused for
// many paths.
//
// A Rasterizer is not safe for concurrent use.
type Rasterizer struct {
	// CTM maps user space to device space. Paths and all lengths below are
	// given in user space.
	CTM matrix.Matrix

	// Clip restricts output to an integer-aligned device rectangle.
	Clip rect.Rect

	// Flatness is the maximal distance, in device pixels, between a curve
	// or arc and the polygon used to approximate it.
	Flatness float64

	// Width is the stroke width. Strokes with non-positive width paint
	// nothing.
	Width float64

	Cap        graphics.LineCapStyle
	Join       graphics.LineJoinStyle
	MiterLimit float64

	// Dash holds alternating on and off lengths. Nil gives solid lines, as
	// does a pattern without positive entries.
	Dash      []float64
	DashPhase float64

	// flattened subpaths, in user space
	pts  []vec.Vec2
	subs []subpath

	edges []edge     // device space
	acc   []float32  // signed area accumulator, (w+2) entries per row
	row   []float32  // coverage of one row
	poly  []vec.Vec2 // scratch polygon for stroke pieces

	// dash output
	dashPts    []vec.Vec2
	dashStarts []int
	dashDirs   []vec.Vec2
}

type subpath struct {
	start  int  // index into pts
	closed bool // ended by ClosePath
	drawn  bool // had at least one drawing command
}

type edge struct {
	a, b vec.Vec2
}

// NewRasterizer returns a Rasterizer for the given clip rectangle, with
// the PDF default values for the stroke parameters.
func NewRasterizer(clip rect.Rect) *Rasterizer {
	r := &Rasterizer{}
	r.Reset(clip)
	return r
}

// Reset restores all parameters to their defaults and sets a new clip
// rectangle. Buffers are kept.
func (r *Rasterizer) Reset(clip rect.Rect) {
	r.CTM = matrix.Identity
	r.Clip = clip
	r.Flatness = defaultFlatness
	r.Width = 1
	r.Cap = graphics.LineCapButt
	r.Join = graphics.LineJoinMiter
	r.MiterLimit = defaultMiterLimit
	r.Dash = nil
	r.DashPhase = 0
}

// FillNonZero fills p using the nonzero winding rule. Coverage is passed
// to emit one row at a time; the slice is only valid during the call.
func (r *Rasterizer) FillNonZero(p *path.Data, emit func(y, xMin int, coverage []float32)) {
	r.fill(p, false, emit)
}

// FillEvenOdd fills p using the even-odd rule. Coverage is passed to emit
// one row at a time; the slice is only valid during the call.
func (r *Rasterizer) FillEvenOdd(p *path.Data, emit func(y, xMin int, coverage []float32)) {
	r.fill(p, true, emit)
}

func (r *Rasterizer) fill(p *path.Data, evenOdd bool, emit func(y, xMin int, coverage []float32)) {
	r.flatten(p)
	r.edges = r.edges[:0]
	for i := range r.subs {
		pts, _ := r.subpath(i)
		if len(pts) < 3 {
			continue
		}
		for j := 1; j < len(pts); j++ {
			r.addEdge(pts[j-1], pts[j])
		}
		r.addEdge(pts[len(pts)-1], pts[0])
	}
	r.rasterize(evenOdd, emit)
}

// flatten converts p into polygons in user space. Curves are replaced by
// line segments and repeated points are dropped.
func (r *Rasterizer) flatten(p *path.Data) {
	r.pts = r.pts[:0]
	r.subs = r.subs[:0]

	var cur, start vec.Vec2
	open := false
	begin := func(pt vec.Vec2) {
		r.subs = append(r.subs, subpath{start: len(r.pts)})
		r.pts = append(r.pts, pt)
		start = pt
		open = true
	}
	lineTo := func(pt vec.Vec2) {
		if !open {
			begin(cur)
		}
		r.subs[len(r.subs)-1].drawn = true
		if pt != r.pts[len(r.pts)-1] {
			r.pts = append(r.pts, pt)
		}
	}

	k := 0
	for _, cmd := range p.Cmds {
		switch cmd {
		case path.CmdMoveTo:
			cur = p.Coords[k]
			begin(cur)
			k++
		case path.CmdLineTo:
			lineTo(p.Coords[k])
			cur = p.Coords[k]
			k++
		case path.CmdQuadTo:
			r.flattenCurve([]vec.Vec2{cur, p.Coords[k], p.Coords[k+1]}, lineTo)
			cur = p.Coords[k+1]
			k += 2
		case path.CmdCubeTo:
			r.flattenCurve([]vec.Vec2{cur, p.Coords[k], p.Coords[k+1], p.Coords[k+2]}, lineTo)
			cur = p.Coords[k+2]
			k += 3
		case path.CmdClose:
			if open {
				r.subs[len(r.subs)-1].closed = true
				open = false
			}
			cur = start
		}
	}
}

// subpath returns the points of subpath i.
func (r *Rasterizer) subpath(i int) ([]vec.Vec2, subpath) {
	end := len(r.pts)
	if i+1 < len(r.subs) {
		end = r.subs[i+1].start
	}
	return r.pts[r.subs[i].start:end], r.subs[i]
}

// flattenCurve approximates the Bézier curve with the given control points
// by n line segments. The segment count follows Wang's bound on the second
// differences of the control polygon, measured in device space.
func (r *Rasterizer) flattenCurve(ctrl []vec.Vec2, lineTo func(vec.Vec2)) {
	deg := len(ctrl) - 1
	var m float64
	for i := 0; i+2 < len(ctrl); i++ {
		d2 := ctrl[i].Sub(ctrl[i+1].Mul(2)).Add(ctrl[i+2])
		m = max(m, r.deviceLength(d2))
	}
	n := 1
	if m > 0 {
		n = max(1, int(math.Ceil(math.Sqrt(float64(deg*(deg-1))*m/(8*r.Flatness)))))
	}

	var tmp [4]vec.Vec2
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		q := tmp[:len(ctrl)]
		copy(q, ctrl)
		for k := len(q) - 1; k > 0; k-- {
			for j := range k {
				q[j] = q[j].Mul(1 - t).Add(q[j+1].Mul(t))
			}
		}
		lineTo(q[0])
	}
}

// deviceLength returns the length of the user space vector v after
// applying the linear part of the CTM.
func (r *Rasterizer) deviceLength(v vec.Vec2) float64 {
	return vec.Vec2{
		X: r.CTM[0]*v.X + r.CTM[2]*v.Y,
		Y: r.CTM[1]*v.X + r.CTM[3]*v.Y,
	}.Length()
}

// addEdge appends the user space segment a-b to the edge list.
func (r *Rasterizer) addEdge(a, b vec.Vec2) {
	m := r.CTM
	da := vec.Vec2{X: m[0]*a.X + m[2]*a.Y + m[4], Y: m[1]*a.X + m[3]*a.Y + m[5]}
	db := vec.Vec2{X: m[0]*b.X + m[2]*b.Y + m[4], Y: m[1]*b.X + m[3]*b.Y + m[5]}
	if math.Abs(db.Y-da.Y) < horizontalEdgeThreshold {
		return
	}
	r.edges = append(r.edges, edge{a: da, b: db})
}

// rasterize computes coverage for the collected edges.
//
// Every edge adds its signed area contribution to the accumulator cells of
// the rows it crosses. The running sum along a row then gives the winding
// number, weighted by the covered pixel area.
func (r *Rasterizer) rasterize(evenOdd bool, emit func(y, xMin int, coverage []float32)) {
	if len(r.edges) == 0 {
		return
	}

	bbox := rect.Rect{
		LLx: math.Inf(1), LLy: math.Inf(1),
		URx: math.Inf(-1), URy: math.Inf(-1),
	}
	for _, e := range r.edges {
		bbox.LLx = min(bbox.LLx, e.a.X, e.b.X)
		bbox.LLy = min(bbox.LLy, e.a.Y, e.b.Y)
		bbox.URx = max(bbox.URx, e.a.X, e.b.X)
		bbox.URy = max(bbox.URy, e.a.Y, e.b.Y)
	}
	x0 := max(int(math.Floor(bbox.LLx)), int(r.Clip.LLx))
	x1 := min(int(math.Ceil(bbox.URx)), int(r.Clip.URx))
	y0 := max(int(math.Floor(bbox.LLy)), int(r.Clip.LLy))
	y1 := min(int(math.Ceil(bbox.URy)), int(r.Clip.URy))
	if x0 >= x1 || y0 >= y1 {
		return
	}

	w, h := x1-x0, y1-y0
	stride := w + 2
	r.acc = slices.Grow(r.acc[:0], stride*h)[:stride*h]
	clear(r.acc)

	origin := vec.Vec2{X: float64(x0), Y: float64(y0)}
	for _, e := range r.edges {
		r.clipEdge(e.a.Sub(origin), e.b.Sub(origin), w, h, stride)
	}

	r.row = slices.Grow(r.row[:0], w)[:w]
	for y := range h {
		cells := r.acc[y*stride : y*stride+w]
		var sum float32
		for x, a := range cells {
			sum += a
			r.row[x] = coverage(sum, evenOdd)
		}
		if cov, off := trimZeros(r.row); cov != nil {
			emit(y0+y, x0+off, cov)
		}
	}
}

// clipEdge splits the edge at the left and right borders of the region and
// draws the pieces. Pieces outside the region are moved onto the border:
// to the left they still change the winding number of every pixel in the
// row, to the right they have no visible effect.
func (r *Rasterizer) clipEdge(a, b vec.Vec2, w, h, stride int) {
	var ts [4]float64
	n := 0
	ts[n] = 0
	n++
	if dx := b.X - a.X; dx != 0 {
		for _, border := range [2]float64{0, float64(w)} {
			if t := (border - a.X) / dx; t > 0 && t < 1 {
				ts[n] = t
				n++
			}
		}
	}
	slices.Sort(ts[1:n])
	ts[n] = 1
	n++

	xMax := float64(w)
	prev := a
	for _, t := range ts[1:n] {
		q := a.Add(b.Sub(a).Mul(t))
		p0 := vec.Vec2{X: min(max(prev.X, 0), xMax), Y: prev.Y}
		p1 := vec.Vec2{X: min(max(q.X, 0), xMax), Y: q.Y}
		r.drawLine(p0, p1, h, stride)
		prev = q
	}
}

// drawLine accumulates the signed area contribution of one line segment,
// given in region coordinates with 0 <= x <= w.
func (r *Rasterizer) drawLine(p0, p1 vec.Vec2, h, stride int) {
	if p0.Y == p1.Y {
		return
	}
	dir := float32(1)
	if p0.Y > p1.Y {
		dir = -1
		p0, p1 = p1, p0
	}
	dxdy := (p1.X - p0.X) / (p1.Y - p0.Y)

	yStart := max(int(math.Floor(p0.Y)), 0)
	yEnd := min(int(math.Ceil(p1.Y)), h)
	for y := yStart; y < yEnd; y++ {
		top := max(float64(y), p0.Y)
		bot := min(float64(y+1), p1.Y)
		if bot <= top {
			continue
		}
		xa := p0.X + (top-p0.Y)*dxdy
		xb := p0.X + (bot-p0.Y)*dxdy
		cells := r.acc[y*stride : (y+1)*stride]
		spread(cells, min(xa, xb), max(xa, xb), dir*float32(bot-top))
	}
}

// spread distributes the contribution d of a line crossing one row between
// x = lo and x = hi over the accumulator cells of that row. Each cell
// receives the change in covered area relative to the cell on its left.
func spread(cells []float32, lo, hi float64, d float32) {
	loFloor := math.Floor(lo)
	hiCeil := math.Ceil(hi)
	i0, i1 := int(loFloor), int(hiCeil)

	if i1 <= i0+1 {
		mid := float32(0.5*(lo+hi) - loFloor)
		cells[i0] += d * (1 - mid)
		cells[i0+1] += d * mid
		return
	}

	s := 1 / (hi - lo)
	f0 := lo - loFloor
	f1 := hi - hiCeil + 1
	a0 := float32(0.5 * s * (1 - f0) * (1 - f0))
	am := float32(0.5 * s * f1 * f1)

	cells[i0] += d * a0
	if i1 == i0+2 {
		cells[i0+1] += d * (1 - a0 - am)
	} else {
		step := float32(s)
		a1 := float32(s * (1.5 - f0))
		cells[i0+1] += d * (a1 - a0)
		for i := i0 + 2; i < i1-1; i++ {
			cells[i] += d * step
		}
		a2 := a1 + float32(i1-i0-3)*step
		cells[i1-1] += d * (1 - a2 - am)
	}
	cells[i1] += d * am
}

// coverage converts an accumulated winding value to pixel coverage.
func coverage(sum float32, evenOdd bool) float32 {
	if sum < 0 {
		sum = -sum
	}
	if !evenOdd {
		return min(sum, 1)
	}
	m := sum - 2*float32(math.Floor(float64(sum/2)))
	if m > 1 {
		return 2 - m
	}
	return m
}

// trimZeros returns the part of coverage between the first and the last
// non-zero value, together with its offset. The result is nil if all
// values are zero.
func trimZeros(coverage []float32) ([]float32, int) {
	lo := 0
	for lo < len(coverage) && coverage[lo] == 0 {
		lo++
	}
	if lo == len(coverage) {
		return nil, 0
	}
	hi := len(coverage)
	for coverage[hi-1] == 0 {
		hi--
	}
	return coverage[lo:hi], lo
}

const (
	// defaultFlatness is the default curve tolerance in device pixels.
	defaultFlatness = 0.25

	// defaultMiterLimit matches the PDF default. Joins sharper than about
	// 11.5 degrees are bevelled.
	defaultMiterLimit = 10.0

	// horizontalEdgeThreshold is the smallest vertical extent, in device
	// pixels, for an edge to contribute coverage.
	horizontalEdgeThreshold = 1e-10

	// zeroLengthThreshold is the shortest segment which is stroked.
	zeroLengthThreshold = 1e-10

	// collinearityThreshold is the largest sine of the turning angle for
	// which no join is drawn.
	collinearityThreshold = 1e-6
)
