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

// Package config holds the configuration of the arrowheads command and the
// code to load it.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"seehuhn.de/go/arrowhead"
	"seehuhn.de/go/arrowhead/internal/gallery"
)

// EnvPrefix is the prefix of environment variables which override
// configuration keys. The key row_height, for example, is read from
// ARROWHEADS_ROW_HEIGHT.
const EnvPrefix = "ARROWHEADS"

// Output formats.
const (
	FormatPNG = "png"
	FormatSVG = "svg"
	FormatPDF = "pdf"
)

// Config is the configuration of a gallery rendering.
type Config struct {
	// Log configures logging.
	Log Log `mapstructure:"log" json:"log" yaml:"log"`

	// Output is the name of the file to write.
	Output string `mapstructure:"output" json:"output" yaml:"output"`
	// Format is png, svg or pdf. If empty, the format is taken from the
	// extension of Output.
	Format string `mapstructure:"format" json:"format" yaml:"format"`

	Width     int      `mapstructure:"width" json:"width" yaml:"width"`
	RowHeight float64  `mapstructure:"row_height" json:"row_height" yaml:"row_height"`
	Size      float64  `mapstructure:"size" json:"size" yaml:"size"`
	LineWidth float64  `mapstructure:"line_width" json:"line_width" yaml:"line_width"`
	LineColor string   `mapstructure:"line_color" json:"line_color" yaml:"line_color"`
	FillColor string   `mapstructure:"fill_color" json:"fill_color" yaml:"fill_color"`
	Kinds     []string `mapstructure:"kinds" json:"kinds" yaml:"kinds"`
}

// Log configures logging.
type Log struct {
	// Level is one of trace, debug, info, warn, error or none.
	Level string `mapstructure:"level" json:"level" yaml:"level"`
}

var defaults = map[string]any{
	"log.level":  "info",
	"output":     "arrowheads.png",
	"format":     "",
	"width":      400,
	"row_height": 80.0,
	"size":       arrowhead.DefaultSize,
	"line_width": 2.0,
	"line_color": "#000000",
	"fill_color": "#000000",
	"kinds":      kindNames(arrowhead.Kinds),
}

var flagKeys = []string{
	"log.level", "output", "format", "width", "row_height", "size",
	"line_width", "line_color", "fill_color", "kinds",
}

// DefineFlags adds the command line flags for all configuration keys.
func DefineFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("output", "o", "arrowheads.png", "output file")
	cmd.Flags().StringP("format", "f", "", "output format: png, svg or pdf (default from the output file name)")
	cmd.Flags().Int("width", 400, "canvas width in pixels")
	cmd.Flags().Float64("row_height", 80, "height of one gallery row")
	cmd.Flags().Float64("size", arrowhead.DefaultSize, "marker size")
	cmd.Flags().Float64("line_width", 2, "stroke width of lines and markers")
	cmd.Flags().String("line_color", "#000000", "stroke colour as #rrggbb")
	cmd.Flags().String("fill_color", "#000000", "fill colour for normal and vee markers as #rrggbb")
	cmd.Flags().StringSlice("kinds", kindNames(arrowhead.Kinds), "marker kinds to draw, one row each")
}

// DefinePersistentFlags adds the flags shared by all sub-commands.
func DefinePersistentFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringP("config", "c", "", "path to config file")
	cmd.PersistentFlags().String("log.level", "info", "set the log level: trace, debug, info, warn, error or none")
}

// GetConfig loads the configuration. Values are taken, in order of
// precedence, from the flags of cmd, from environment variables, from
// configFile and from the built-in defaults. Both cmd and configFile are
// optional.
func GetConfig(cmd *cobra.Command, configFile string) (Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cmd != nil {
		for _, key := range flagKeys {
			if f := cmd.Flags().Lookup(key); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return Config{}, fmt.Errorf("binding flag %s: %w", key, err)
				}
			}
		}
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("error reading config file %s: %w", configFile, err)
		}
	}

	conf := Config{}
	if err := v.Unmarshal(&conf); err != nil {
		return Config{}, fmt.Errorf("error unmarshaling config: %w", err)
	}
	return conf, nil
}

// ErrFormat is returned for unsupported output formats.
var ErrFormat = errors.New("unsupported output format")

// OutputFormat returns the output format, taken from the extension of the
// output file if no format is configured.
func (c Config) OutputFormat() (string, error) {
	format := strings.ToLower(c.Format)
	if format == "" {
		format = strings.ToLower(strings.TrimPrefix(filepath.Ext(c.Output), "."))
	}
	switch format {
	case FormatPNG, FormatSVG, FormatPDF:
		return format, nil
	default:
		return "", fmt.Errorf("%q: %w", format, ErrFormat)
	}
}

// Height returns the canvas height in pixels needed for all rows.
func (c Config) Height() int {
	return int(c.RowHeight*float64(len(c.Kinds)) + 0.999)
}

// Validate checks the configuration and returns the gallery layout it
// describes.
func (c Config) Validate() (gallery.Options, error) {
	var errs []error
	if c.Output == "" {
		errs = append(errs, errors.New("no output file"))
	}
	if _, err := c.OutputFormat(); err != nil {
		errs = append(errs, err)
	}
	if c.Width <= 0 {
		errs = append(errs, fmt.Errorf("invalid width %d", c.Width))
	}
	if c.RowHeight <= 0 {
		errs = append(errs, fmt.Errorf("invalid row height %g", c.RowHeight))
	}
	if c.LineWidth < 0 {
		errs = append(errs, fmt.Errorf("invalid line width %g", c.LineWidth))
	}

	lineColor, err := ParseColor(c.LineColor)
	if err != nil {
		errs = append(errs, fmt.Errorf("line_color: %w", err))
	}
	fillColor, err := ParseColor(c.FillColor)
	if err != nil {
		errs = append(errs, fmt.Errorf("fill_color: %w", err))
	}

	var kinds []arrowhead.Kind
	for _, name := range c.Kinds {
		k, err := arrowhead.ParseKind(name)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		kinds = append(kinds, k)
	}
	if len(c.Kinds) == 0 {
		errs = append(errs, errors.New("no marker kinds"))
	}

	if err := errors.Join(errs...); err != nil {
		return gallery.Options{}, err
	}
	return gallery.Options{
		Width:     float64(c.Width),
		RowHeight: c.RowHeight,
		Size:      c.Size,
		LineWidth: c.LineWidth,
		LineColor: lineColor,
		FillColor: fillColor,
		Kinds:     kinds,
	}, nil
}

// ErrColor is returned for colours which are not of the form #rrggbb.
var ErrColor = errors.New("colour must have the form #rrggbb")

// ParseColor parses a colour of the form #rrggbb.
func ParseColor(s string) (color.NRGBA, error) {
	hex, ok := strings.CutPrefix(s, "#")
	if !ok || len(hex) != 6 {
		return color.NRGBA{}, fmt.Errorf("%q: %w", s, ErrColor)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("%q: %w", s, ErrColor)
	}
	return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, nil
}

func kindNames(kinds []arrowhead.Kind) []string {
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = k.String()
	}
	return names
}
