// conditional.go -
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

import "github.com/seehuhn/extex/tex/scanner"

// Conditional records an open \if... construct.  Values are kept on
// the conditional stack of the Context until the matching \fi.
type Conditional struct {
	loc       scanner.Locator
	primitive string
}

// NewConditional returns the record for a conditional started by the
// given primitive at position loc.
func NewConditional(loc scanner.Locator, primitive string) Conditional {
	return Conditional{loc: loc, primitive: primitive}
}

// Locator returns the position where the conditional was started.
func (c Conditional) Locator() scanner.Locator {
	return c.loc
}

// Primitive returns the name of the primitive which started the
// conditional.
func (c Conditional) Primitive() string {
	return c.primitive
}

func (c Conditional) String() string {
	return "\\" + c.primitive + " at " + c.loc.String()
}
