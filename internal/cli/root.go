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

// Package cli implements the commands of the arrowheads tool.
package cli

import (
	"github.com/spf13/cobra"

	"seehuhn.de/go/arrowhead/internal/config"
)

// Root returns the top-level command, with all sub-commands attached.
func Root() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "arrowheads",
		Short:         "Draw arrow head markers",
		Long:          "Draw a gallery of arrow head markers as PNG, SVG or PDF",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	config.DefinePersistentFlags(cmd)
	cmd.AddCommand(Render(), Version())
	return cmd
}
