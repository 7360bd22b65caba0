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

package arrowhead

import (
	"errors"
	"fmt"
	"strings"
)

// Kind selects the shape of a marker.
type Kind int

const (
	// Open is a stroked chevron "V" with the apex at the tip.
	Open Kind = iota

	// Normal is a closed triangle, filled and stroked.
	Normal

	// Vee is a closed chevron with a notch in the base, filled and stroked.
	Vee

	// Tee is a stroked bar across the line.
	Tee
)

// Kinds lists all marker kinds.
var Kinds = []Kind{Open, Normal, Vee, Tee}

// ErrUnknownKind is returned for marker kinds outside of [Kinds].
var ErrUnknownKind = errors.New("unknown marker kind")

func (k Kind) String() string {
	switch k {
	case Open:
		return "open"
	case Normal:
		return "normal"
	case Vee:
		return "vee"
	case Tee:
		return "tee"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// HasFill reports whether markers of this kind paint a closed region and
// thus use a fill style.
func (k Kind) HasFill() bool {
	return k == Normal || k == Vee
}

func (k Kind) valid() bool {
	return k >= Open && k <= Tee
}

// ParseKind converts a kind name, as returned by [Kind.String], back to
// a Kind. Case and surrounding white space are ignored.
func ParseKind(name string) (Kind, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for _, k := range Kinds {
		if k.String() == key {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%q: %w", name, ErrUnknownKind)
}
