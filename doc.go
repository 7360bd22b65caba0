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

// Package arrowhead draws arrow head markers at the ends of lines.
//
// A [Marker] has one of four shapes ([Open], [Normal], [Vee], [Tee]) and a
// size. [Marker.Render] paints the marker onto a [Context], using the
// stroke and fill styles the marker was created with. [Marker.Clip] adds
// the area covered by the marker to a clip path, so that the line leading
// up to the marker can be kept out of the marker's interior.
//
// Styles are looked up per instance index, so that one marker can be drawn
// at many line ends with different colours, widths or visibility; see
// [LineVector] and [FillVector].
//
// Concrete drawing surfaces are provided by the sub-packages raster (RGBA
// images), svgcanvas (SVG output), pdfcanvas (PDF content streams) and
// recorder (recorded operations).
package arrowhead
