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
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io/fs"
	"maps"
	"math"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"
	"testing"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/arrowhead"
	"seehuhn.de/go/arrowhead/internal/pathbuf"
	"seehuhn.de/go/arrowhead/testcases"
)

// TestAgainstReference compares the rendered test cases with reference
// images. The references are produced by testcases/genpdf; cases without
// a reference image are skipped.
func TestAgainstReference(t *testing.T) {
	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for _, tc := range testcases.All[category] {
			name := category + "_" + tc.Name
			t.Run(name, func(t *testing.T) {
				refPath := filepath.Join("testdata", "reference", name+".png")
				ref, err := loadGray(refPath)
				if errors.Is(err, fs.ErrNotExist) {
					t.Skip("no reference image")
				} else if err != nil {
					t.Fatalf("loading reference: %v", err)
				}

				actual, err := renderExample(tc)
				if err != nil {
					t.Fatal(err)
				}
				if len(ref) != len(actual) {
					t.Fatalf("reference has %d pixels, want %d", len(ref), len(actual))
				}

				if err := compareImages(name, ref, actual, tc.Width, tc.Height); err != nil {
					t.Error(err)
				}
			})
		}
	}
}

// TestCasesRender checks that every test case paints something, and that
// only the Tee clip case, which has an empty clip region, covers the whole
// canvas.
func TestCasesRender(t *testing.T) {
	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for _, tc := range testcases.All[category] {
			t.Run(category+"_"+tc.Name, func(t *testing.T) {
				gray, err := renderExample(tc)
				if err != nil {
					t.Fatal(err)
				}
				lit := 0
				for _, v := range gray {
					if v > 0 {
						lit++
					}
				}
				if lit == 0 {
					t.Error("nothing painted")
				}
				_, isClip := tc.Op.(testcases.Clip)
				full := isClip && tc.Kind == arrowhead.Tee
				if (lit == len(gray)) != full {
					t.Errorf("%d of %d pixels painted", lit, len(gray))
				}
			})
		}
	}
}

// TestOutlineCoverage checks that the rendered Normal and Vee markers
// cover the interior of their outline.
func TestOutlineCoverage(t *testing.T) {
	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for _, tc := range testcases.All[category] {
			op, ok := tc.Op.(testcases.Render)
			if !ok || op.NoFill || !tc.Kind.HasFill() {
				continue
			}
			t.Run(category+"_"+tc.Name, func(t *testing.T) {
				gray, err := renderExample(tc)
				if err != nil {
					t.Fatal(err)
				}
				m, err := tc.Marker()
				if err != nil {
					t.Fatal(err)
				}

				ctm := tc.CTM
				if ctm == (matrix.Matrix{}) {
					ctm = matrix.Identity
				}
				r := NewRasterizer(rect.Rect{URx: float64(tc.Width), URy: float64(tc.Height)})
				r.CTM = pathbuf.Concat(tc.Frame(), ctm)
				inside := 0
				r.FillNonZero(m.Outline(), func(y, xMin int, coverage []float32) {
					for i, c := range coverage {
						if c < 0.999 {
							continue
						}
						inside++
						if v := gray[y*tc.Width+xMin+i]; v != 255 {
							t.Errorf("pixel (%d, %d) = %d, want 255", xMin+i, y, v)
						}
					}
				})
				if inside == 0 {
					t.Error("outline covers no pixel")
				}
			})
		}
	}
}

// renderExample draws a test case in white on black and returns the
// resulting grey levels, in row-major order.
func renderExample(tc testcases.TestCase) ([]byte, error) {
	c := New(tc.Width, tc.Height)
	c.Clear(color.Black)
	if err := tc.Draw(c); err != nil {
		return nil, err
	}

	img := c.Image()
	gray := make([]byte, tc.Width*tc.Height)
	for y := range tc.Height {
		for x := range tc.Width {
			gray[y*tc.Width+x] = img.Pix[y*img.Stride+4*x]
		}
	}
	return gray, nil
}

func loadGray(path string) (gray []byte, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	img, err := png.Decode(f)
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	gray = make([]byte, w*h)
	for y := range h {
		for x := range w {
			c := color.GrayModel.Convert(img.At(x+bounds.Min.X, y+bounds.Min.Y)).(color.Gray)
			gray[y*w+x] = c.Y
		}
	}
	return gray, nil
}

// compareImages accepts the result if at least 80% of the pixels match
// exactly, 95% are within 64 grey levels and 99% within 128.
func compareImages(name string, expected, actual []byte, w, h int) error {
	total := w * h
	diffs := make([]int, total)
	for i := range total {
		d := int(expected[i]) - int(actual[i])
		if d < 0 {
			d = -d
		}
		diffs[i] = d
	}
	sort.Ints(diffs)

	percentile := func(p float64) int {
		return diffs[int(math.Round(p*float64(total-1)))]
	}
	p80, p95, p99 := percentile(0.80), percentile(0.95), percentile(0.99)

	var failures []string
	if p80 > 0 {
		failures = append(failures, fmt.Sprintf("80th percentile diff is %d (want 0)", p80))
	}
	if p95 >= 64 {
		failures = append(failures, fmt.Sprintf("95th percentile diff is %d (want <64)", p95))
	}
	if p99 >= 128 {
		failures = append(failures, fmt.Sprintf("99th percentile diff is %d (want <128)", p99))
	}

	if len(failures) > 0 {
		_ = writeDiffImage(name, expected, actual, w, h)
		return errors.New(strings.Join(failures, "; "))
	}
	return nil
}

// writeDiffImage writes debug/<name>.png with three panels: our output,
// the difference (green where we paint too little, red where we paint
// too much) and the reference.
func writeDiffImage(name string, expected, actual []byte, w, h int) (err error) {
	if err := os.MkdirAll("debug", 0o755); err != nil {
		return err
	}

	img := image.NewRGBA(image.Rect(0, 0, 3*w, h))
	for y := range h {
		for x := range w {
			i := y*w + x
			a, e := actual[i], expected[i]
			img.SetRGBA(x, y, color.RGBA{R: a, G: a, B: a, A: 255})

			var dc color.RGBA
			switch d := int(e) - int(a); {
			case d > 0:
				dc = color.RGBA{G: uint8(d), A: 255}
			case d < 0:
				dc = color.RGBA{R: uint8(-d), A: 255}
			default:
				dc = color.RGBA{A: 255}
			}
			img.SetRGBA(x+w, y, dc)

			img.SetRGBA(x+2*w, y, color.RGBA{R: e, G: e, B: e, A: 255})
		}
	}

	f, err := os.Create(filepath.Join("debug", name+".png"))
	if err != nil {
		return err
	}
	err = png.Encode(f, img)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return err
}
