// symtab.go -
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

// Package symtab provides a symbol table for the interpreter.
//
// Local assignments are undone when the enclosing group ends.  For
// every assignment inside a group the previous value is recorded on a
// save stack, and the records are applied in reverse order when the
// group is closed.  Each slot remembers the group level of its last
// assignment; global assignments set this level to zero, and values
// at level zero are kept when a group ends.
package symtab

import (
	"fmt"

	"github.com/seehuhn/extex/tex/interp"
	"github.com/seehuhn/extex/tex/token"
)

type slotKind uint8

const (
	slotCode slotKind = iota
	slotCount
	slotCatcode
)

// slot identifies one assignable quantity.
type slot struct {
	kind slotKind
	key  token.Key
	name string
	char rune
}

type saveRecord struct {
	slot      slot
	value     any
	present   bool
	prevLevel int
}

type frame struct {
	gt    interp.GroupType
	saves []saveRecord
}

// Table is a symbol table.  It implements interp.Context.
type Table struct {
	catcodes  *token.Table
	namespace string

	codes  map[token.Key]interp.Code
	counts map[string]int64
	levels map[slot]int

	groups []frame
	conds  []interp.Conditional
	errors int
}

// New returns an empty symbol table which uses the given catcode
// table.  If catcodes is nil, the plain TeX catcodes are used.
func New(catcodes *token.Table) *Table {
	if catcodes == nil {
		catcodes = token.NewPlainTable()
	}
	return &Table{
		catcodes: catcodes,
		codes:    make(map[token.Key]interp.Code),
		counts:   make(map[string]int64),
		levels:   make(map[slot]int),
	}
}

// Catcode returns the category code of r.
func (t *Table) Catcode(r rune) token.Category {
	return t.catcodes.Catcode(r)
}

// Namespace returns the namespace for new control sequences.
func (t *Table) Namespace() string {
	return t.namespace
}

// SetNamespace changes the namespace for new control sequences.
func (t *Table) SetNamespace(ns string) {
	t.namespace = ns
}

func (t *Table) get(s slot) (any, bool) {
	switch s.kind {
	case slotCode:
		code, ok := t.codes[s.key]
		return code, ok
	case slotCount:
		v, ok := t.counts[s.name]
		return v, ok
	default:
		return t.catcodes.Catcode(s.char), true
	}
}

func (t *Table) put(s slot, value any, present bool) {
	switch s.kind {
	case slotCode:
		if present && value != nil {
			t.codes[s.key] = value.(interp.Code)
		} else {
			delete(t.codes, s.key)
		}
	case slotCount:
		if present {
			t.counts[s.name] = value.(int64)
		} else {
			delete(t.counts, s.name)
		}
	default:
		t.catcodes.Set(s.char, value.(token.Category))
	}
}

// assign implements the save stack discipline for all kinds of
// quantities.
func (t *Table) assign(s slot, value any, global bool) {
	level := len(t.groups)
	if global {
		t.levels[s] = 0
		t.put(s, value, true)
		return
	}
	if prev := t.levels[s]; prev < level {
		old, present := t.get(s)
		top := &t.groups[level-1]
		top.saves = append(top.saves, saveRecord{
			slot:      s,
			value:     old,
			present:   present,
			prevLevel: prev,
		})
		t.levels[s] = level
	}
	t.put(s, value, true)
}

// Lookup returns the meaning of a control sequence or active
// character.
func (t *Table) Lookup(key token.Key) (interp.Code, bool) {
	code, ok := t.codes[key]
	return code, ok
}

// Define binds key to code.  A nil code makes key undefined.
func (t *Table) Define(key token.Key, code interp.Code, global bool) {
	var value any
	if code != nil {
		value = code
	}
	t.assign(slot{kind: slotCode, key: key}, value, global)
}

// SetCatcode changes the category code of r.
func (t *Table) SetCatcode(r rune, cat token.Category, global bool) {
	t.assign(slot{kind: slotCatcode, char: r}, cat, global)
}

// Count returns the value of the named count register.  Unset
// registers are zero.
func (t *Table) Count(name string) int64 {
	return t.counts[name]
}

// SetCount assigns a value to the named count register.
func (t *Table) SetCount(name string, value int64, global bool) {
	t.assign(slot{kind: slotCount, name: name}, value, global)
}

// OpenGroup starts a new group.
func (t *Table) OpenGroup(gt interp.GroupType) {
	t.groups = append(t.groups, frame{gt: gt})
}

// CloseGroup ends the innermost group and undoes all local
// assignments made inside it.
func (t *Table) CloseGroup(gt interp.GroupType) error {
	n := len(t.groups)
	if n == 0 {
		return fmt.Errorf("%w: no group to close with %s",
			interp.ErrExtraGroupClose, gt.Closer())
	}
	top := t.groups[n-1]
	if top.gt != gt {
		return fmt.Errorf("%w: %s found where %s was expected",
			interp.ErrExtraGroupClose, gt.Closer(), top.gt.Closer())
	}
	t.groups = t.groups[:n-1]

	for i := len(top.saves) - 1; i >= 0; i-- {
		rec := top.saves[i]
		if t.levels[rec.slot] == 0 {
			// a global assignment happened inside the group
			continue
		}
		t.put(rec.slot, rec.value, rec.present)
		if rec.prevLevel == 0 {
			delete(t.levels, rec.slot)
		} else {
			t.levels[rec.slot] = rec.prevLevel
		}
	}
	return nil
}

// GroupDepth returns the number of open groups.
func (t *Table) GroupDepth() int {
	return len(t.groups)
}

// CurrentGroup returns the type of the innermost open group.
func (t *Table) CurrentGroup() (interp.GroupType, bool) {
	if len(t.groups) == 0 {
		return 0, false
	}
	return t.groups[len(t.groups)-1].gt, true
}

// PushConditional records the start of a conditional.
func (t *Table) PushConditional(c interp.Conditional) {
	t.conds = append(t.conds, c)
}

// PopConditional removes the innermost open conditional.
func (t *Table) PopConditional() (interp.Conditional, bool) {
	n := len(t.conds)
	if n == 0 {
		return interp.Conditional{}, false
	}
	c := t.conds[n-1]
	t.conds = t.conds[:n-1]
	return c, true
}

// Conditionals returns the open conditionals, oldest first.
func (t *Table) Conditionals() []interp.Conditional {
	return t.conds
}

// IncErrorCount increments the error counter and returns the new
// value.
func (t *Table) IncErrorCount() int {
	t.errors++
	return t.errors
}

// ErrorCount returns the number of errors counted so far.
func (t *Table) ErrorCount() int {
	return t.errors
}
