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

// Command arrowheads draws a gallery of arrow head markers.
//
// Usage:
//
//	arrowheads render -o markers.svg --kinds open,vee --size 30
//	arrowheads version
package main

import (
	"os"

	"github.com/rs/zerolog/log"

	"seehuhn.de/go/arrowhead/internal/cli"
)

func main() {
	if err := cli.Root().Execute(); err != nil {
		log.Error().Err(err).Msg("arrowheads failed")
		os.Exit(1)
	}
}
