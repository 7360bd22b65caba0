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
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"slices"

	"golang.org/x/image/draw"
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/pdf/graphics"

	"seehuhn.de/go/arrowhead"
	"seehuhn.de/go/arrowhead/internal/pathbuf"
)

// Canvas is a drawing surface backed by an RGBA image.
//
// Device space has its origin in the top left corner of the image, with y
// increasing downwards; one unit is one pixel.
type Canvas struct {
	img *image.RGBA
	r   *Rasterizer

	path  pathbuf.Buffer
	state graphicsState
	stack []graphicsState

	mask  *image.Alpha // coverage of the current paint operation
	dirty image.Rectangle
}

var _ arrowhead.Context = (*Canvas)(nil)

type graphicsState struct {
	ctm         matrix.Matrix
	strokeColor color.Color
	fillColor   color.Color
	width       float64
	cap         graphics.LineCapStyle
	join        graphics.LineJoinStyle
	miterLimit  float64
	dash        []float64
	dashPhase   float64

	// clip is nil when painting is not restricted. Masks are never
	// modified after creation, so saved states can share them.
	clip *image.Alpha
}

// New allocates a transparent canvas of the given size in pixels.
func New(width, height int) *Canvas {
	bounds := image.Rect(0, 0, width, height)
	return &Canvas{
		img:  image.NewRGBA(bounds),
		r:    NewRasterizer(rect.Rect{URx: float64(width), URy: float64(height)}),
		mask: image.NewAlpha(bounds),
		state: graphicsState{
			ctm:         matrix.Identity,
			strokeColor: color.Black,
			fillColor:   color.Black,
			width:       1,
			cap:         graphics.LineCapButt,
			join:        graphics.LineJoinMiter,
			miterLimit:  defaultMiterLimit,
		},
	}
}

// Image returns the image the canvas draws into.
func (c *Canvas) Image() *image.RGBA {
	return c.img
}

// Clear sets every pixel to col, ignoring the clip region.
func (c *Canvas) Clear(col color.Color) {
	draw.Draw(c.img, c.img.Bounds(), image.NewUniform(col), image.Point{}, draw.Src)
}

// EncodePNG writes the canvas image in PNG format.
func (c *Canvas) EncodePNG(w io.Writer) error {
	if err := png.Encode(w, c.img); err != nil {
		return fmt.Errorf("encoding PNG: %w", err)
	}
	return nil
}

// Save pushes a copy of the graphics state onto the stack.
// The current path is not part of the graphics state.
func (c *Canvas) Save() {
	s := c.state
	s.dash = slices.Clone(s.dash)
	c.stack = append(c.stack, s)
}

// Restore pops the graphics state saved by the matching call to Save.
// Without a saved state, Restore does nothing.
func (c *Canvas) Restore() {
	if len(c.stack) == 0 {
		return
	}
	c.state = c.stack[len(c.stack)-1]
	c.stack = c.stack[:len(c.stack)-1]
	c.path.SetCTM(c.state.ctm)
}

// Transform modifies the transformation so that m is applied to user
// space coordinates before the current transformation.
func (c *Canvas) Transform(m matrix.Matrix) {
	c.SetTransform(pathbuf.Concat(m, c.state.ctm))
}

// SetTransform replaces the transformation from user space to device space.
func (c *Canvas) SetTransform(m matrix.Matrix) {
	c.state.ctm = m
	c.path.SetCTM(m)
}

// CTM returns the current transformation from user space to device space.
func (c *Canvas) CTM() matrix.Matrix {
	return c.state.ctm
}

// BeginPath implements the [arrowhead.Context] interface.
func (c *Canvas) BeginPath() {
	c.path.Reset()
}

// MoveTo implements the [arrowhead.Context] interface.
func (c *Canvas) MoveTo(x, y float64) {
	c.path.MoveTo(x, y)
}

// LineTo implements the [arrowhead.Context] interface.
func (c *Canvas) LineTo(x, y float64) {
	c.path.LineTo(x, y)
}

// ClosePath implements the [arrowhead.Context] interface.
func (c *Canvas) ClosePath() {
	c.path.ClosePath()
}

// SetStrokeColor implements the [arrowhead.Context] interface.
func (c *Canvas) SetStrokeColor(col color.Color) {
	c.state.strokeColor = col
}

// SetFillColor implements the [arrowhead.Context] interface.
func (c *Canvas) SetFillColor(col color.Color) {
	c.state.fillColor = col
}

// SetLineWidth implements the [arrowhead.Context] interface.
func (c *Canvas) SetLineWidth(width float64) {
	c.state.width = width
}

// SetLineCap implements the [arrowhead.Context] interface.
func (c *Canvas) SetLineCap(lc graphics.LineCapStyle) {
	c.state.cap = lc
}

// SetLineJoin implements the [arrowhead.Context] interface.
func (c *Canvas) SetLineJoin(lj graphics.LineJoinStyle) {
	c.state.join = lj
}

// SetMiterLimit sets the miter limit for miter joins.
// Values below 1 are replaced by 1.
func (c *Canvas) SetMiterLimit(limit float64) {
	c.state.miterLimit = max(limit, 1)
}

// SetLineDash implements the [arrowhead.Context] interface.
func (c *Canvas) SetLineDash(pattern []float64, phase float64) {
	c.state.dash = slices.Clone(pattern)
	c.state.dashPhase = phase
}

// Fill paints the interior of the current path, using the nonzero winding
// rule. The path is kept.
func (c *Canvas) Fill() {
	c.paint(c.state.fillColor, func(p *path.Data, emit func(int, int, []float32)) {
		c.r.FillNonZero(p, emit)
	})
}

// FillEvenOdd paints the interior of the current path, using the even-odd
// rule. The path is kept.
func (c *Canvas) FillEvenOdd() {
	c.paint(c.state.fillColor, func(p *path.Data, emit func(int, int, []float32)) {
		c.r.FillEvenOdd(p, emit)
	})
}

// Stroke paints the outline of the current path. The path is kept.
func (c *Canvas) Stroke() {
	if c.state.width <= 0 {
		return
	}
	c.paint(c.state.strokeColor, func(p *path.Data, emit func(int, int, []float32)) {
		c.r.Width = c.state.width
		c.r.Cap = c.state.cap
		c.r.Join = c.state.join
		c.r.MiterLimit = c.state.miterLimit
		c.r.Dash = c.state.dash
		c.r.DashPhase = c.state.dashPhase
		c.r.Stroke(p, emit)
	})
}

// ClipNonZero intersects the clip region with the interior of the current
// path, using the nonzero winding rule.
func (c *Canvas) ClipNonZero() {
	c.clip(false)
}

// ClipEvenOdd intersects the clip region with the interior of the current
// path, using the even-odd rule.
func (c *Canvas) ClipEvenOdd() {
	c.clip(true)
}

func (c *Canvas) clip(evenOdd bool) {
	clip := image.NewAlpha(c.img.Bounds())
	old := c.state.clip
	emit := func(y, xMin int, coverage []float32) {
		row := clip.Pix[y*clip.Stride:]
		for i, cov := range coverage {
			x := xMin + i
			a := cov
			if old != nil {
				a *= float32(old.Pix[y*old.Stride+x]) / 255
			}
			row[x] = toAlpha(a)
		}
	}

	c.r.CTM = matrix.Identity
	if evenOdd {
		c.r.FillEvenOdd(c.path.Device(), emit)
	} else {
		c.r.FillNonZero(c.path.Device(), emit)
	}
	c.state.clip = clip
}

// paint rasterizes the current path in user space and composites col
// through the resulting coverage mask.
func (c *Canvas) paint(col color.Color, raster func(*path.Data, func(int, int, []float32))) {
	if col == nil || c.path.Empty() {
		return
	}
	p, ok := c.path.User(c.state.ctm)
	if !ok {
		return
	}

	clear(c.mask.Pix)
	c.dirty = image.Rectangle{}
	clip := c.state.clip
	emit := func(y, xMin int, coverage []float32) {
		row := c.mask.Pix[y*c.mask.Stride:]
		for i, cov := range coverage {
			x := xMin + i
			if clip != nil {
				cov *= float32(clip.Pix[y*clip.Stride+x]) / 255
			}
			row[x] = toAlpha(cov)
		}
		c.dirty = c.dirty.Union(image.Rect(xMin, y, xMin+len(coverage), y+1))
	}

	c.r.CTM = c.state.ctm
	raster(p, emit)

	if c.dirty.Empty() {
		return
	}
	draw.DrawMask(c.img, c.dirty, image.NewUniform(col), image.Point{}, c.mask, c.dirty.Min, draw.Over)
}

func toAlpha(cov float32) uint8 {
	return uint8(min(max(cov, 0), 1)*255 + 0.5)
}
