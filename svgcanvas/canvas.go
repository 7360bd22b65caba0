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

// Package svgcanvas implements a drawing surface which writes SVG.
//
// Every Fill and Stroke becomes one path element. The path is given in the
// user space of the current transformation, which is written as a
// transform attribute, so that line widths and dash patterns scale in the
// same way as on the other surfaces.
package svgcanvas

import (
	"fmt"
	"image/color"
	"io"
	"slices"
	"strconv"
	"strings"

	svg "github.com/ajstarks/svgo"
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/pdf/graphics"

	"seehuhn.de/go/arrowhead"
	"seehuhn.de/go/arrowhead/internal/pathbuf"
)

// Canvas writes drawing operations to an SVG document.
type Canvas struct {
	svg *svg.SVG

	path  pathbuf.Buffer
	state graphicsState
	stack []graphicsState

	groups int // open <g> elements
	clips  int // clip paths written so far
}

var _ arrowhead.Context = (*Canvas)(nil)

type graphicsState struct {
	ctm         matrix.Matrix
	strokeColor color.Color
	fillColor   color.Color
	width       float64
	cap         graphics.LineCapStyle
	join        graphics.LineJoinStyle
	dash        []float64
	dashPhase   float64

	groups int // value of Canvas.groups when the state was saved
}

// New starts an SVG document of the given size on w.
// The document must be finished by calling Close.
func New(w io.Writer, width, height int) *Canvas {
	c := &Canvas{
		svg: svg.New(w),
		state: graphicsState{
			ctm:         matrix.Identity,
			strokeColor: color.Black,
			fillColor:   color.Black,
			width:       1,
		},
	}
	c.svg.Start(width, height)
	return c
}

// Close closes all open groups and ends the document.
func (c *Canvas) Close() {
	for ; c.groups > 0; c.groups-- {
		c.svg.Gend()
	}
	c.stack = c.stack[:0]
	c.svg.End()
}

// Save pushes a copy of the graphics state onto the stack.
func (c *Canvas) Save() {
	s := c.state
	s.dash = slices.Clone(s.dash)
	s.groups = c.groups
	c.stack = append(c.stack, s)
}

// Restore pops the graphics state saved by the matching call to Save.
// Clip groups opened since then are closed.
func (c *Canvas) Restore() {
	if len(c.stack) == 0 {
		return
	}
	s := c.stack[len(c.stack)-1]
	c.stack = c.stack[:len(c.stack)-1]
	for ; c.groups > s.groups; c.groups-- {
		c.svg.Gend()
	}
	c.state = s
	c.path.SetCTM(s.ctm)
}

// Transform modifies the transformation so that m is applied to user
// space coordinates before the current transformation.
func (c *Canvas) Transform(m matrix.Matrix) {
	c.state.ctm = pathbuf.Concat(m, c.state.ctm)
	c.path.SetCTM(c.state.ctm)
}

// BeginPath implements the [arrowhead.Context] interface.
func (c *Canvas) BeginPath() { c.path.Reset() }

// MoveTo implements the [arrowhead.Context] interface.
func (c *Canvas) MoveTo(x, y float64) { c.path.MoveTo(x, y) }

// LineTo implements the [arrowhead.Context] interface.
func (c *Canvas) LineTo(x, y float64) { c.path.LineTo(x, y) }

// ClosePath implements the [arrowhead.Context] interface.
func (c *Canvas) ClosePath() { c.path.ClosePath() }

// SetStrokeColor implements the [arrowhead.Context] interface.
func (c *Canvas) SetStrokeColor(col color.Color) { c.state.strokeColor = col }

// SetFillColor implements the [arrowhead.Context] interface.
func (c *Canvas) SetFillColor(col color.Color) { c.state.fillColor = col }

// SetLineWidth implements the [arrowhead.Context] interface.
func (c *Canvas) SetLineWidth(width float64) { c.state.width = width }

// SetLineCap implements the [arrowhead.Context] interface.
func (c *Canvas) SetLineCap(lc graphics.LineCapStyle) { c.state.cap = lc }

// SetLineJoin implements the [arrowhead.Context] interface.
func (c *Canvas) SetLineJoin(lj graphics.LineJoinStyle) { c.state.join = lj }

// SetLineDash implements the [arrowhead.Context] interface.
func (c *Canvas) SetLineDash(pattern []float64, phase float64) {
	c.state.dash = slices.Clone(pattern)
	c.state.dashPhase = phase
}

// Fill implements the [arrowhead.Context] interface.
func (c *Canvas) Fill() {
	col := c.state.fillColor
	if col == nil {
		return
	}
	d, transform, ok := c.userPath()
	if !ok {
		return
	}
	hex, opacity := rgb(col)
	style := "fill:" + hex + ";stroke:none"
	if opacity < 1 {
		style += ";fill-opacity:" + num(opacity)
	}
	c.svg.Path(d, append(transform, style)...)
}

// Stroke implements the [arrowhead.Context] interface.
func (c *Canvas) Stroke() {
	col := c.state.strokeColor
	if col == nil || c.state.width <= 0 {
		return
	}
	d, transform, ok := c.userPath()
	if !ok {
		return
	}

	hex, opacity := rgb(col)
	style := []string{
		"fill:none",
		"stroke:" + hex,
		"stroke-width:" + num(c.state.width),
		"stroke-linecap:" + capNames[c.state.cap],
		"stroke-linejoin:" + joinNames[c.state.join],
	}
	if opacity < 1 {
		style = append(style, "stroke-opacity:"+num(opacity))
	}
	if dashActive(c.state.dash) {
		parts := make([]string, len(c.state.dash))
		for i, v := range c.state.dash {
			parts[i] = num(v)
		}
		style = append(style, "stroke-dasharray:"+strings.Join(parts, ","))
		if c.state.dashPhase != 0 {
			style = append(style, "stroke-dashoffset:"+num(c.state.dashPhase))
		}
	}
	c.svg.Path(d, append(transform, strings.Join(style, ";"))...)
}

// ClipEvenOdd intersects the clip region with the interior of the current
// path, using the even-odd rule. The clip stays in effect until the
// enclosing Restore.
func (c *Canvas) ClipEvenOdd() {
	if c.path.Empty() {
		return
	}
	c.clips++
	id := fmt.Sprintf("clip%d", c.clips)

	c.svg.Def()
	c.svg.ClipPath(`id="` + id + `"`)
	c.svg.Path(pathData(c.path.Device()), `clip-rule="evenodd"`)
	c.svg.ClipEnd()
	c.svg.DefEnd()
	c.svg.Group(`clip-path="url(#` + id + `)"`)
	c.groups++
}

// userPath returns the current path in user space, together with the
// transform attribute which maps it to the document.
func (c *Canvas) userPath() (string, []string, bool) {
	if c.path.Empty() {
		return "", nil, false
	}
	p, ok := c.path.User(c.state.ctm)
	if !ok {
		return "", nil, false
	}
	var transform []string
	if m := c.state.ctm; m != matrix.Identity {
		transform = append(transform, fmt.Sprintf(`transform="matrix(%s %s %s %s %s %s)"`,
			num(m[0]), num(m[1]), num(m[2]), num(m[3]), num(m[4]), num(m[5])))
	}
	return pathData(p), transform, true
}

// pathData formats p as the d attribute of an SVG path element.
func pathData(p *path.Data) string {
	var b strings.Builder
	k := 0
	op := func(cmd string, n int) {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(cmd)
		for _, pt := range p.Coords[k : k+n] {
			b.WriteByte(' ')
			b.WriteString(num(pt.X))
			b.WriteByte(' ')
			b.WriteString(num(pt.Y))
		}
		k += n
	}
	for _, cmd := range p.Cmds {
		switch cmd {
		case path.CmdMoveTo:
			op("M", 1)
		case path.CmdLineTo:
			op("L", 1)
		case path.CmdQuadTo:
			op("Q", 2)
		case path.CmdCubeTo:
			op("C", 3)
		case path.CmdClose:
			op("Z", 0)
		}
	}
	return b.String()
}

var capNames = map[graphics.LineCapStyle]string{
	graphics.LineCapButt:   "butt",
	graphics.LineCapRound:  "round",
	graphics.LineCapSquare: "square",
}

var joinNames = map[graphics.LineJoinStyle]string{
	graphics.LineJoinMiter: "miter",
	graphics.LineJoinRound: "round",
	graphics.LineJoinBevel: "bevel",
}

// dashActive reports whether pattern describes a dashed line. Patterns
// which are empty or sum to zero give solid lines.
func dashActive(pattern []float64) bool {
	var sum float64
	for _, v := range pattern {
		if v < 0 {
			return false
		}
		sum += v
	}
	return sum > 0
}

// rgb returns col as a #rrggbb string together with its opacity.
func rgb(col color.Color) (string, float64) {
	c := color.NRGBAModel.Convert(col).(color.NRGBA)
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B), float64(c.A) / 255
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
