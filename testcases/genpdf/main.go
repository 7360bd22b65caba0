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

// Command genpdf generates the reference images for the raster tests.
// Each test case is drawn into a PDF file through pdfcanvas, which is then
// rendered to PNG by Ghostscript.
//
// Run it from the raster directory:
//
//	cd raster && go run ../testcases/genpdf [category ...]
package main

import (
	"fmt"
	"maps"
	"os"
	"os/exec"
	"path/filepath"
	"slices"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/document"
	"seehuhn.de/go/pdf/graphics/color"

	"seehuhn.de/go/arrowhead/pdfcanvas"
	"seehuhn.de/go/arrowhead/testcases"
)

const refDir = "testdata/reference"

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "genpdf:", err)
		os.Exit(1)
	}
}

// run writes the reference images of the given categories, or of all
// categories if none are given.
func run(categories []string) error {
	if len(categories) == 0 {
		categories = slices.Sorted(maps.Keys(testcases.All))
	}
	if err := os.MkdirAll(refDir, 0o755); err != nil {
		return err
	}

	for _, category := range categories {
		cases, ok := testcases.All[category]
		if !ok {
			return fmt.Errorf("unknown category %q", category)
		}
		for _, tc := range cases {
			base := filepath.Join(refDir, category+"_"+tc.Name)
			if err := writePDF(tc, base+".pdf"); err != nil {
				return fmt.Errorf("%s: %w", base, err)
			}
			if err := ghostscript(base+".pdf", base+".png"); err != nil {
				return fmt.Errorf("%s: %w", base, err)
			}
		}
	}
	return nil
}

// writePDF draws tc in white on a black page, one point per pixel.
func writePDF(tc testcases.TestCase, name string) error {
	w, h := float64(tc.Width), float64(tc.Height)
	page, err := document.CreateSinglePage(name, &pdf.Rectangle{URx: w, URy: h}, pdf.V1_7, nil)
	if err != nil {
		return err
	}

	page.SetFillColor(color.DeviceGray(0))
	page.Rectangle(0, 0, w, h)
	page.Fill()

	// flip to a top-left origin
	page.Transform(matrix.Matrix{1, 0, 0, -1, 0, h})

	if err := tc.Draw(pdfcanvas.New(page)); err != nil {
		return err
	}
	return page.Close()
}

// ghostscript renders the first page of a PDF file to an 8-bit grey PNG
// at 72 DPI, with 4 bit anti-aliasing.
func ghostscript(pdfPath, pngPath string) error {
	args := []string{
		"-q", "-dSAFER", "-dBATCH", "-dNOPAUSE",
		"-sDEVICE=pnggray", "-r72", "-dGraphicsAlphaBits=4",
		"-sOutputFile=" + pngPath,
		pdfPath,
	}
	out, err := exec.Command("gs", args...).CombinedOutput()
	if err != nil {
		return fmt.Errorf("gs: %w\n%s", err, out)
	}
	return nil
}
