// text.go -
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

package typeset

import (
	"bufio"
	"io"
)

// Text writes the material as plain text.  Runs of spaces are
// collapsed and leading spaces of a paragraph are dropped.
type Text struct {
	w          *bufio.Writer
	pending    bool
	lineStart  bool
	paragraphs int
}

// NewText returns a typesetter which writes to w.
func NewText(w io.Writer) *Text {
	return &Text{
		w:         bufio.NewWriter(w),
		lineStart: true,
	}
}

// AddLetter writes one character.
func (t *Text) AddLetter(c rune) error {
	if t.pending {
		t.pending = false
		if err := t.w.WriteByte(' '); err != nil {
			return err
		}
	}
	t.lineStart = false
	_, err := t.w.WriteRune(c)
	return err
}

// AddSpace notes a blank space, which is written before the next
// character.
func (t *Text) AddSpace() error {
	if !t.lineStart {
		t.pending = true
	}
	return nil
}

// OpenGroup does nothing; groups are not visible in plain text.
func (t *Text) OpenGroup() error { return nil }

// CloseGroup does nothing.
func (t *Text) CloseGroup() error { return nil }

// Par ends the current paragraph with a blank line.
func (t *Text) Par() error {
	t.pending = false
	if t.lineStart {
		return nil
	}
	t.lineStart = true
	t.paragraphs++
	_, err := t.w.WriteString("\n\n")
	return err
}

// Paragraphs returns the number of paragraphs written so far.
func (t *Text) Paragraphs() int {
	return t.paragraphs
}

// Finish ends the last paragraph and flushes all output.
func (t *Text) Finish() error {
	if !t.lineStart {
		t.lineStart = true
		t.paragraphs++
		if err := t.w.WriteByte('\n'); err != nil {
			return err
		}
	}
	return t.w.Flush()
}
