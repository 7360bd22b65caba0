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

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

// Stroke paints the outline of p using Width, Cap, Join, MiterLimit, Dash
// and DashPhase. Coverage is passed to emit one row at a time; the slice is
// only valid during the call.
//
// The stroke is assembled from simple pieces: one rectangle per segment,
// one wedge or disc per join, and the caps. All pieces are given the same
// orientation, so that the nonzero rule paints their union.
func (r *Rasterizer) Stroke(p *path.Data, emit func(y, xMin int, coverage []float32)) {
	if r.Width <= 0 {
		return
	}
	r.flatten(p)
	r.edges = r.edges[:0]

	hw := r.Width / 2
	dashed := r.dashTotal() > 0
	for i := range r.subs {
		pts, sp := r.subpath(i)
		if len(pts) == 1 {
			// A subpath without extent still shows round caps.
			if sp.drawn && r.Cap == graphics.LineCapRound {
				r.addDisc(pts[0], hw)
			}
			continue
		}
		if dashed {
			r.strokeDashed(pts, sp.closed, hw)
		} else {
			r.strokePolyline(pts, sp.closed, hw)
		}
	}

	r.rasterize(false, emit)
}

// strokePolyline adds the pieces for one subpath with at least two
// distinct points.
func (r *Rasterizer) strokePolyline(pts []vec.Vec2, closed bool, hw float64) {
	if closed && len(pts) > 2 && pts[len(pts)-1] == pts[0] {
		pts = pts[:len(pts)-1]
	}
	n := len(pts)
	segs := n - 1
	if closed && n > 2 {
		segs = n
	} else {
		closed = false
	}

	var firstDir, prevDir vec.Vec2
	started := false
	for k := range segs {
		a, b := pts[k], pts[(k+1)%n]
		d := b.Sub(a)
		length := d.Length()
		if length < zeroLengthThreshold {
			continue
		}
		t := d.Mul(1 / length)
		nrm := vec.Vec2{X: -t.Y, Y: t.X}.Mul(hw)
		r.addPolygon(a.Add(nrm), b.Add(nrm), b.Sub(nrm), a.Sub(nrm))

		if started {
			r.addJoin(a, prevDir, t, hw)
		} else {
			firstDir = t
			started = true
		}
		prevDir = t
	}

	if !started {
		return
	}
	if closed {
		r.addJoin(pts[0], prevDir, firstDir, hw)
	} else {
		r.addCap(pts[0], firstDir.Mul(-1), hw)
		r.addCap(pts[n-1], prevDir, hw)
	}
}

// addJoin adds the piece which fills the outer corner at p, where the path
// direction changes from t1 to t2.
func (r *Rasterizer) addJoin(p, t1, t2 vec.Vec2, hw float64) {
	cross := t1.X*t2.Y - t1.Y*t2.X
	cos := t1.Dot(t2)
	if math.Abs(cross) < collinearityThreshold && cos > 0 {
		return
	}

	if r.Join == graphics.LineJoinRound {
		r.addDisc(p, hw)
		return
	}

	// The outer side of a left turn is on the right, and vice versa.
	o1 := vec.Vec2{X: -t1.Y, Y: t1.X}.Mul(hw)
	o2 := vec.Vec2{X: -t2.Y, Y: t2.X}.Mul(hw)
	if cross > 0 {
		o1, o2 = o1.Mul(-1), o2.Mul(-1)
	}

	if r.Join == graphics.LineJoinMiter {
		// The miter length relative to the line width is 1/sin(phi/2),
		// where phi is the angle between the two segments.
		sinHalf := math.Sqrt((1 + cos) / 2)
		bis := o1.Add(o2)
		if sinHalf > 0 && 1/sinHalf <= r.MiterLimit+1e-10 && bis.Length() > zeroLengthThreshold {
			tip := p.Add(bis.Mul(hw / sinHalf / bis.Length()))
			r.addPolygon(p, p.Add(o1), tip, p.Add(o2))
			return
		}
	}

	r.addPolygon(p, p.Add(o1), p.Add(o2))
}

// addCap adds the cap at the end point p of an open subpath. The vector t
// is the unit direction pointing away from the line.
func (r *Rasterizer) addCap(p, t vec.Vec2, hw float64) {
	switch r.Cap {
	case graphics.LineCapRound:
		r.addDisc(p, hw)
	case graphics.LineCapSquare:
		r.addSquare(p, t, hw)
	}
}

// addSquare adds a square of side 2*hw, centred at p and aligned with t.
func (r *Rasterizer) addSquare(p, t vec.Vec2, hw float64) {
	ext := t.Mul(hw)
	nrm := vec.Vec2{X: -t.Y, Y: t.X}.Mul(hw)
	r.addPolygon(
		p.Add(ext).Add(nrm),
		p.Add(ext).Sub(nrm),
		p.Sub(ext).Sub(nrm),
		p.Sub(ext).Add(nrm),
	)
}

// addDisc adds a disc of the given radius, approximated by a polygon
// within Flatness of the circle in device space.
func (r *Rasterizer) addDisc(center vec.Vec2, radius float64) {
	devRadius := max(
		r.deviceLength(vec.Vec2{X: radius}),
		r.deviceLength(vec.Vec2{Y: radius}))

	n := 8
	if devRadius > r.Flatness {
		step := 2 * math.Acos(1-r.Flatness/devRadius)
		n = max(n, int(math.Ceil(2*math.Pi/step)))
	}

	r.poly = r.poly[:0]
	for i := range n {
		phi := 2 * math.Pi * float64(i) / float64(n)
		r.poly = append(r.poly, center.Add(vec.Vec2{X: math.Cos(phi), Y: math.Sin(phi)}.Mul(radius)))
	}
	r.addPolygon(r.poly...)
}

// addPolygon adds the edges of a closed polygon, in counter-clockwise
// order. Polygons without area are ignored.
func (r *Rasterizer) addPolygon(poly ...vec.Vec2) {
	n := len(poly)
	var area float64
	for i, a := range poly {
		b := poly[(i+1)%n]
		area += a.X*b.Y - b.X*a.Y
	}
	switch {
	case area > 0:
		for i := range n {
			r.addEdge(poly[i], poly[(i+1)%n])
		}
	case area < 0:
		for i := range n {
			r.addEdge(poly[(i+1)%n], poly[i])
		}
	}
}

// dashTotal returns the length of one full period of the dash pattern, or
// 0 if the pattern has a negative entry or no positive ones. A zero result
// means the stroke is solid.
func (r *Rasterizer) dashTotal() float64 {
	var total float64
	for _, d := range r.Dash {
		if d < 0 {
			return 0
		}
		total += d
	}
	if len(r.Dash)%2 == 1 {
		total *= 2
	}
	return total
}

// strokeDashed splits the subpath into dashes and strokes each of them.
func (r *Rasterizer) strokeDashed(pts []vec.Vec2, closed bool, hw float64) {
	pattern := r.Dash
	period := r.dashTotal()

	// find the position within the pattern at the start of the subpath
	idx := 0
	left := pattern[0]
	phase := math.Mod(r.DashPhase, period)
	if phase < 0 {
		phase += period
	}
	for phase > 0 {
		if phase < left {
			left -= phase
			break
		}
		phase -= left
		idx++
		left = pattern[idx%len(pattern)]
	}
	on := idx%2 == 0
	startedOn := on

	r.dashPts = r.dashPts[:0]
	r.dashStarts = r.dashStarts[:0]
	r.dashDirs = r.dashDirs[:0]
	begin := func(q, t vec.Vec2) {
		r.dashStarts = append(r.dashStarts, len(r.dashPts))
		r.dashDirs = append(r.dashDirs, t)
		r.dashPts = append(r.dashPts, q)
	}
	extend := func(q vec.Vec2) {
		if q != r.dashPts[len(r.dashPts)-1] {
			r.dashPts = append(r.dashPts, q)
		}
	}

	n := len(pts)
	segs := n - 1
	if closed {
		segs = n
	}
	for k := range segs {
		a, b := pts[k], pts[(k+1)%n]
		d := b.Sub(a)
		length := d.Length()
		if length < zeroLengthThreshold {
			continue
		}
		t := d.Mul(1 / length)
		if on && len(r.dashStarts) == 0 {
			begin(a, t)
		}

		pos := 0.0
		for length-pos > left {
			pos += left
			q := a.Add(d.Mul(pos / length))
			if on {
				extend(q)
			}
			idx++
			left = pattern[idx%len(pattern)]
			on = idx%2 == 0
			if on {
				begin(q, t)
			}
		}
		left -= length - pos
		if on {
			extend(b)
		}
	}

	if len(r.dashStarts) == 0 {
		return
	}

	// On a closed subpath, a dash running through the start point is one
	// dash, not two.
	if closed && startedOn && on {
		if len(r.dashStarts) == 1 {
			r.strokePolyline(pts, true, hw)
			return
		}
		firstEnd := r.dashStarts[1]
		for _, q := range r.dashPts[1:firstEnd] {
			extend(q)
		}
		r.dashStarts = r.dashStarts[1:]
		r.dashDirs = r.dashDirs[1:]
	}

	for i, start := range r.dashStarts {
		end := len(r.dashPts)
		if i+1 < len(r.dashStarts) {
			end = r.dashStarts[i+1]
		}
		dash := r.dashPts[start:end]
		if len(dash) == 1 {
			r.addCap(dash[0], r.dashDirs[i], hw)
			continue
		}
		r.strokePolyline(dash, false, hw)
	}
}
