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

// Package pathbuf buffers the current path of a drawing surface.
//
// Vertices are stored in device space, transformed by the matrix in effect
// when they were added. This allows one path to be assembled from pieces
// given in different coordinate systems, for example the clip fragments of
// several markers. Before painting, [Buffer.User] maps the path back into
// the user space of the current transformation.
package pathbuf

import (
	"math"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
)

// singularThreshold is the smallest absolute determinant for which a
// transformation is treated as invertible.
const singularThreshold = 1e-12

// Buffer holds a path under construction.
// The zero value is an empty path with the identity transformation.
type Buffer struct {
	ctm matrix.Matrix
	dev path.Data

	start, cur vec.Vec2 // device space
	hasCur     bool
	closed     bool
}

// SetCTM sets the transformation applied to subsequent vertices.
// Vertices already in the buffer are not changed.
func (b *Buffer) SetCTM(m matrix.Matrix) {
	b.ctm = m
}

// CTM returns the transformation applied to new vertices.
func (b *Buffer) CTM() matrix.Matrix {
	if b.ctm == (matrix.Matrix{}) {
		return matrix.Identity
	}
	return b.ctm
}

// Reset discards the path. The transformation is kept.
func (b *Buffer) Reset() {
	b.dev.Cmds = b.dev.Cmds[:0]
	b.dev.Coords = b.dev.Coords[:0]
	b.hasCur = false
	b.closed = false
}

// Empty reports whether the path has no vertices.
func (b *Buffer) Empty() bool {
	return len(b.dev.Cmds) == 0
}

// MoveTo starts a new subpath at (x, y).
func (b *Buffer) MoveTo(x, y float64) {
	p := Apply(b.CTM(), vec.Vec2{X: x, Y: y})
	b.dev.MoveTo(p)
	b.start = p
	b.cur = p
	b.hasCur = true
	b.closed = false
}

// LineTo adds a straight segment to (x, y). Without a current point this
// starts a new subpath instead. After a ClosePath, the new segment starts
// a new subpath at the start of the closed one.
func (b *Buffer) LineTo(x, y float64) {
	p := Apply(b.CTM(), vec.Vec2{X: x, Y: y})
	switch {
	case !b.hasCur:
		b.dev.MoveTo(p)
		b.start = p
		b.cur = p
		b.hasCur = true
		return
	case b.closed:
		b.dev.MoveTo(b.cur)
		b.closed = false
	}
	b.dev.LineTo(p)
	b.cur = p
}

// ClosePath closes the current subpath. It does nothing if there is no
// current point.
func (b *Buffer) ClosePath() {
	if !b.hasCur || b.closed {
		return
	}
	b.dev.Close()
	b.cur = b.start
	b.closed = true
}

// Device returns the path in device coordinates. The result shares
// storage with the buffer and is only valid until the next change.
func (b *Buffer) Device() *path.Data {
	return &b.dev
}

// User returns a copy of the path, mapped into the user space of m.
// If m is not invertible, User returns false.
func (b *Buffer) User(m matrix.Matrix) (*path.Data, bool) {
	inv, ok := Invert(m)
	if !ok {
		return nil, false
	}
	res := &path.Data{
		Cmds:   append([]path.Command(nil), b.dev.Cmds...),
		Coords: make([]vec.Vec2, len(b.dev.Coords)),
	}
	for i, p := range b.dev.Coords {
		res.Coords[i] = Apply(inv, p)
	}
	return res, true
}

// Apply maps p through m.
func Apply(m matrix.Matrix, p vec.Vec2) vec.Vec2 {
	return vec.Vec2{
		X: m[0]*p.X + m[2]*p.Y + m[4],
		Y: m[1]*p.X + m[3]*p.Y + m[5],
	}
}

// Concat returns the transformation which first applies a, then b.
func Concat(a, b matrix.Matrix) matrix.Matrix {
	return matrix.Matrix{
		b[0]*a[0] + b[2]*a[1],
		b[1]*a[0] + b[3]*a[1],
		b[0]*a[2] + b[2]*a[3],
		b[1]*a[2] + b[3]*a[3],
		b[0]*a[4] + b[2]*a[5] + b[4],
		b[1]*a[4] + b[3]*a[5] + b[5],
	}
}

// Invert returns the inverse of m. The second return value is false if m
// is singular.
func Invert(m matrix.Matrix) (matrix.Matrix, bool) {
	det := m[0]*m[3] - m[1]*m[2]
	if math.Abs(det) < singularThreshold {
		return matrix.Matrix{}, false
	}
	a := m[3] / det
	b := -m[1] / det
	c := -m[2] / det
	d := m[0] / det
	return matrix.Matrix{
		a, b, c, d,
		-(a*m[4] + c*m[5]),
		-(b*m[4] + d*m[5]),
	}, true
}
