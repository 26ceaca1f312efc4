// errors.go -
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

package scanner

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Errors reported while scanning.
var (
	ErrMissingNumber        = errors.New("missing number")
	ErrInvalidCharacterCode = errors.New("invalid character code")
	ErrNumberTooBig         = errors.New("number too big")
	ErrInvalidCharacter     = errors.New("text line contains an invalid character")
	ErrMissingLeftBrace     = errors.New("missing { inserted")
	ErrNotText              = errors.New("input file is not a text file")

	// ErrInput marks failures of the underlying input source.  These
	// cannot be recovered from.
	ErrInput = errors.New("input error")
)

type charError struct {
	err error
	r   rune
}

func (e *charError) Error() string {
	return fmt.Sprintf("%s (%U)", e.err, e.r)
}

func (e *charError) Unwrap() error {
	return e.err
}

// MakeError returns an error object which wraps err and includes the
// given message together with human-readable information about the
// current input position.
func (scan *Scanner) MakeError(err error, message string) *ParseError {
	res := &ParseError{
		Err:     err,
		Message: message,
	}
	for idx := len(scan.streams) - 1; idx >= 0; idx-- {
		loc := scan.streams[idx].Locator()
		res.stack = append(res.stack, stackFrame{
			Name: loc.Name,
			Line: loc.Line,
		})
	}
	return res
}

type stackFrame struct {
	Name string
	Line int
}

// ParseError describes a problem with the input, together with the
// stack of input sources active when the problem was found.
type ParseError struct {
	Err     error
	Message string
	stack   []stackFrame
}

func (err *ParseError) Error() string {
	msg := err.Message
	if msg == "" && err.Err != nil {
		msg = err.Err.Error()
	} else if err.Err != nil {
		msg = err.Err.Error() + ": " + msg
	}
	res := []string{msg}
	for i, frame := range err.stack {
		if i > 0 {
			res = append(res, ", included from")
		}
		res = append(res, "\n    ",
			frame.Name, ", line ", strconv.Itoa(frame.Line))
	}
	return strings.Join(res, "")
}

func (err *ParseError) Unwrap() error {
	return err.Err
}

// Location returns the innermost input position recorded in the
// error.
func (err *ParseError) Location() Locator {
	if len(err.stack) == 0 {
		return Locator{}
	}
	return Locator{Name: err.stack[0].Name, Line: err.stack[0].Line}
}
