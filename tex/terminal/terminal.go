// terminal.go -
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

// Package terminal reads interactive input line by line.  The lines
// are presented as an io.Reader, so that the interpreter can consume
// them like any other input file.
package terminal

import (
	"errors"
	"io"
	"os"
	"strings"

	"github.com/peterh/liner"
)

// Prompts shown to the user.
const (
	PromptMain = "*"
	PromptCont = "."
)

// LineSource delivers one line of input per call, without the
// trailing newline.
type LineSource interface {
	Prompt(prompt string) (string, error)
}

// Reader turns the lines from a LineSource into a byte stream.  The
// continuation prompt is used while braces are open.
type Reader struct {
	src          LineSource
	prompt, cont string
	depth        int
	buf          []byte
	done         bool

	// OnLine, if set, is called for every non-blank line read.
	OnLine func(line string)
}

// NewReader returns a reader which prompts for lines from src.
func NewReader(src LineSource, prompt, cont string) *Reader {
	return &Reader{src: src, prompt: prompt, cont: cont}
}

// Read implements the io.Reader interface.  Interrupting the prompt
// ends the input.
func (r *Reader) Read(p []byte) (int, error) {
	for len(r.buf) == 0 {
		if r.done {
			return 0, io.EOF
		}
		prompt := r.prompt
		if r.depth > 0 {
			prompt = r.cont
		}
		line, err := r.src.Prompt(prompt)
		if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
			r.done = true
			continue
		} else if err != nil {
			return 0, err
		}
		if r.OnLine != nil && strings.TrimSpace(line) != "" {
			r.OnLine(line)
		}
		r.depth = Balance(line, r.depth)
		r.buf = append(r.buf, line...)
		r.buf = append(r.buf, '\n')
	}
	n := copy(p, r.buf)
	r.buf = r.buf[n:]
	return n, nil
}

// Depth returns the number of braces left open by the input so far.
func (r *Reader) Depth() int {
	return r.depth
}

// Balance returns the brace depth after reading line, starting from
// depth.  The plain TeX category codes are assumed: a backslash
// escapes the following character and a percent sign starts a
// comment.  Extra closing braces do not make the depth negative.
func Balance(line string, depth int) int {
	escaped := false
	for _, c := range line {
		if escaped {
			escaped = false
			continue
		}
		switch c {
		case '\\':
			escaped = true
		case '%':
			return depth
		case '{':
			depth++
		case '}':
			if depth > 0 {
				depth--
			}
		}
	}
	return depth
}

// Terminal is an interactive line editor with a persistent history.
type Terminal struct {
	*Reader
	ln       *liner.State
	histPath string
}

// Open prepares the terminal for line editing.  If histPath is not
// empty, the history is loaded from and saved to this file.
func Open(histPath string) *Terminal {
	ln := liner.NewLiner()
	ln.SetCtrlCAborts(true)

	if histPath != "" {
		if f, err := os.Open(histPath); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
	}

	t := &Terminal{
		Reader:   NewReader(ln, PromptMain, PromptCont),
		ln:       ln,
		histPath: histPath,
	}
	t.OnLine = ln.AppendHistory
	return t
}

// Close saves the history and restores the terminal mode.
func (t *Terminal) Close() error {
	var err error
	if t.histPath != "" {
		var f *os.File
		f, err = os.Create(t.histPath)
		if err == nil {
			_, err = t.ln.WriteHistory(f)
			err = errors.Join(err, f.Close())
		}
	}
	return errors.Join(err, t.ln.Close())
}
