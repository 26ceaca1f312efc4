// flags.go -
// Copyright (C) 2016  Jochen Voss <voss@seehuhn.de>
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
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package interp

import "strings"

// Flag is one of the prefixes which can modify the next command.
type Flag uint8

// The prefix flags, in priority order.
const (
	Global Flag = 1 << iota
	Immediate
	Long
	Outer
	Expanded
	Protected
)

var allFlags = []Flag{Global, Immediate, Long, Outer, Expanded, Protected}

func (f Flag) String() string {
	switch f {
	case Global:
		return "global"
	case Immediate:
		return "immediate"
	case Long:
		return "long"
	case Outer:
		return "outer"
	case Expanded:
		return "expanded"
	case Protected:
		return "protected"
	}
	var names []string
	for _, g := range allFlags {
		if f&g != 0 {
			names = append(names, g.String())
		}
	}
	return strings.Join(names, "|")
}

// Flags holds the prefixes collected for one command.  The zero value
// has no flag set.
type Flags struct {
	bits Flag
}

// Clear unsets all flags.
func (f *Flags) Clear() {
	f.bits = 0
}

// Set sets the given flags.
func (f *Flags) Set(fl Flag) {
	f.bits |= fl
}

// Unset clears the given flags.
func (f *Flags) Unset(fl Flag) {
	f.bits &^= fl
}

// Has reports whether all of the given flags are set.
func (f *Flags) Has(fl Flag) bool {
	return f.bits&fl == fl
}

// IsGlobal reports whether \global was given.
func (f *Flags) IsGlobal() bool { return f.Has(Global) }

// IsImmediate reports whether \immediate was given.
func (f *Flags) IsImmediate() bool { return f.Has(Immediate) }

// IsLong reports whether \long was given.
func (f *Flags) IsLong() bool { return f.Has(Long) }

// IsOuter reports whether \outer was given.
func (f *Flags) IsOuter() bool { return f.Has(Outer) }

// IsExpanded reports whether the expanded prefix was given.
func (f *Flags) IsExpanded() bool { return f.Has(Expanded) }

// IsProtected reports whether \protected was given.
func (f *Flags) IsProtected() bool { return f.Has(Protected) }

// Copy returns an independent snapshot of the flags.
func (f *Flags) Copy() *Flags {
	res := *f
	return &res
}

// MergeFrom copies all flag values from other.
func (f *Flags) MergeFrom(other *Flags) {
	f.bits = other.bits
}

// IsDirty reports whether at least one flag is set.
func (f *Flags) IsDirty() bool {
	return f.bits != 0
}

// First returns the first set flag in priority order.  The second
// return value is false if no flag is set.
func (f *Flags) First() (Flag, bool) {
	for _, fl := range allFlags {
		if f.bits&fl != 0 {
			return fl, true
		}
	}
	return 0, false
}

func (f *Flags) String() string {
	if f.bits == 0 {
		return "none"
	}
	return f.bits.String()
}
