// catcode.go -
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

package token

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// Category is a TeX category code.
type Category uint8

// The sixteen category codes, numbered as in TeX.
const (
	CatEscape Category = iota
	CatLeftBrace
	CatRightBrace
	CatMathShift
	CatTabMark
	CatCr
	CatMacroParam
	CatSupMark
	CatSubMark
	CatIgnore
	CatSpace
	CatLetter
	CatOther
	CatActive
	CatComment
	CatInvalid
)

// MaxCategory is the largest valid category code.
const MaxCategory = CatInvalid

var categoryNames = [...]string{
	"escape", "leftbrace", "rightbrace", "mathshift", "tabmark", "cr",
	"macroparam", "supmark", "submark", "ignore", "space", "letter",
	"other", "active", "comment", "invalid",
}

func (c Category) String() string {
	if int(c) < len(categoryNames) {
		return categoryNames[c]
	}
	return "category(" + strconv.Itoa(int(c)) + ")"
}

// ParseCategory converts a category name (as returned by
// Category.String) or a decimal category number into a Category.
func ParseCategory(s string) (Category, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range categoryNames {
		if s == name {
			return Category(i), nil
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 || n > int(MaxCategory) {
		return 0, fmt.Errorf("invalid category %q", s)
	}
	return Category(n), nil
}

// A Classifier maps characters to their category codes.
type Classifier interface {
	Catcode(r rune) Category
}

// Table is a mutable catcode table.  Characters without an explicit
// entry are Letter if they are Unicode letters and Other otherwise,
// which extends TeX's ASCII conventions to the full character range.
type Table struct {
	codes map[rune]Category
}

// NewIniTable returns a table with the category codes IniTeX starts
// with.
func NewIniTable() *Table {
	t := &Table{codes: make(map[rune]Category)}
	t.codes['\\'] = CatEscape
	t.codes['%'] = CatComment
	t.codes[' '] = CatSpace
	t.codes['\r'] = CatCr
	t.codes['\n'] = CatCr
	t.codes[0] = CatIgnore
	t.codes[0x7f] = CatInvalid
	return t
}

// NewPlainTable returns a table with the category codes set up by
// plain TeX.
func NewPlainTable() *Table {
	t := NewIniTable()
	t.codes['{'] = CatLeftBrace
	t.codes['}'] = CatRightBrace
	t.codes['$'] = CatMathShift
	t.codes['&'] = CatTabMark
	t.codes['#'] = CatMacroParam
	t.codes['^'] = CatSupMark
	t.codes['_'] = CatSubMark
	t.codes['\t'] = CatSpace
	t.codes['~'] = CatActive
	return t
}

// Catcode implements the Classifier interface.
func (t *Table) Catcode(r rune) Category {
	if c, ok := t.codes[r]; ok {
		return c
	}
	if 'a' <= r && r <= 'z' || 'A' <= r && r <= 'Z' {
		return CatLetter
	}
	if r > 0x7f && unicode.IsLetter(r) {
		return CatLetter
	}
	return CatOther
}

// Set changes the category code of r.
func (t *Table) Set(r rune, c Category) {
	t.codes[r] = c
}

// Clone returns an independent copy of the table.
func (t *Table) Clone() *Table {
	res := &Table{codes: make(map[rune]Category, len(t.codes))}
	for r, c := range t.codes {
		res.codes[r] = c
	}
	return res
}
