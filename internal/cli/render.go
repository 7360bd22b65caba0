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

package cli

import (
	"bufio"
	"fmt"
	"image/color"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/document"

	"seehuhn.de/go/arrowhead/internal/config"
	"seehuhn.de/go/arrowhead/internal/gallery"
	"seehuhn.de/go/arrowhead/internal/logging"
	"seehuhn.de/go/arrowhead/pdfcanvas"
	"seehuhn.de/go/arrowhead/raster"
	"seehuhn.de/go/arrowhead/svgcanvas"
)

// Render returns the command which draws the marker gallery.
func Render() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Draw a gallery of markers",
		Long:  "Draw one sample arrow per marker kind, with markers at both ends",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			configFile, err := cmd.Flags().GetString("config")
			if err != nil {
				return err
			}
			conf, err := config.GetConfig(cmd, configFile)
			if err != nil {
				return err
			}
			logging.Setup(cmd.ErrOrStderr(), conf.Log.Level)
			return render(conf)
		},
	}
	config.DefineFlags(cmd)
	return cmd
}

func render(conf config.Config) error {
	opt, err := conf.Validate()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	format, err := conf.OutputFormat()
	if err != nil {
		return err
	}
	g, err := gallery.New(opt)
	if err != nil {
		return err
	}

	width, height := conf.Width, conf.Height()
	log.Debug().
		Int("width", width).
		Int("height", height).
		Strs("kinds", conf.Kinds).
		Msg("drawing gallery")

	switch format {
	case config.FormatPNG:
		err = writePNG(conf.Output, g, width, height)
	case config.FormatSVG:
		err = writeSVG(conf.Output, g, width, height)
	case config.FormatPDF:
		err = writePDF(conf.Output, g, width, height)
	}
	if err != nil {
		return fmt.Errorf("writing %s: %w", conf.Output, err)
	}

	log.Info().Str("output", conf.Output).Str("format", format).Int("rows", len(g.Arrows)).Msg("gallery written")
	return nil
}

func writePNG(name string, g *gallery.Gallery, width, height int) (err error) {
	c := raster.New(width, height)
	c.Clear(color.White)
	g.Draw(c)

	f, err := os.Create(name)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return c.EncodePNG(f)
}

func writeSVG(name string, g *gallery.Gallery, width, height int) (err error) {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	w := bufio.NewWriter(f)
	c := svgcanvas.New(w, width, height)
	g.Draw(c)
	c.Close()
	return w.Flush()
}

func writePDF(name string, g *gallery.Gallery, width, height int) error {
	paper := &pdf.Rectangle{URx: float64(width), URy: float64(height)}
	page, err := document.CreateSinglePage(name, paper, pdf.V1_7, nil)
	if err != nil {
		return err
	}

	// The gallery uses a top-left origin.
	page.Transform(matrix.Matrix{1, 0, 0, -1, 0, float64(height)})
	g.Draw(pdfcanvas.New(page))
	return page.Close()
}
