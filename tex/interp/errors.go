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

package interp

import (
	"errors"
	"fmt"
	"strings"

	"github.com/seehuhn/extex/tex/scanner"
	"github.com/seehuhn/extex/tex/token"
)

// Errors reported by the interpreter.
var (
	ErrUndefinedControlSequence   = errors.New("undefined control sequence")
	ErrUseDoesNotMatch            = errors.New("use of macro doesn't match its definition")
	ErrEofInMatch                 = errors.New("file ended while scanning use of macro")
	ErrRunawayArgument            = errors.New("runaway argument")
	ErrIllegalRegisterNumber      = errors.New("bad register code")
	ErrIllegalParameterNumber     = errors.New("illegal parameter number in definition")
	ErrUnusedPrefix               = errors.New("you can't use a prefix with this command")
	ErrUnbalancedGroupAtEof       = errors.New("end occurred inside a group")
	ErrUnbalancedConditionalAtEof = errors.New("end occurred when conditional was incomplete")
	ErrErrorLimitExceeded         = errors.New("that makes too many errors")
	ErrCantUseHere                = errors.New("you can't use this here")
	ErrRecursionTooDeep           = errors.New("recursion too deep")
	ErrExtraGroupClose            = errors.New("too many }'s")
	ErrExtraConditional           = errors.New("extra conditional")
	ErrMissingControlSequence     = errors.New("missing control sequence inserted")
	ErrMissingLeftBrace           = scanner.ErrMissingLeftBrace

	ErrNoContext    = errors.New("no symbol table given")
	ErrNoTypesetter = errors.New("no typesetter given")
)

// MaxRegister is the largest valid register number.
const MaxRegister = 32767

// Error describes a problem found while interpreting the input.
type Error struct {
	Err    error
	Token  token.Token
	Loc    scanner.Locator
	Detail string
}

func (err *Error) Error() string {
	var b strings.Builder
	if err.Loc.Name != "" {
		b.WriteString(err.Loc.String())
		b.WriteString(": ")
	}
	b.WriteString(err.Err.Error())
	if err.Token != (token.Token{}) {
		b.WriteString(" ")
		b.WriteString(err.Token.Text())
	}
	if err.Detail != "" {
		b.WriteString(" (")
		b.WriteString(err.Detail)
		b.WriteString(")")
	}
	return b.String()
}

func (err *Error) Unwrap() error {
	return err.Err
}

// UnbalancedGroupError is reported when the input ends inside a
// group.
type UnbalancedGroupError struct {
	Closer string
	Depth  int
}

func (err *UnbalancedGroupError) Error() string {
	return fmt.Sprintf("%s (%s expected, depth %d)",
		ErrUnbalancedGroupAtEof, err.Closer, err.Depth)
}

func (err *UnbalancedGroupError) Unwrap() error {
	return ErrUnbalancedGroupAtEof
}

// UnbalancedConditionalError is reported when the input ends while a
// conditional is still open.  Cond is the oldest open conditional.
type UnbalancedConditionalError struct {
	Cond Conditional
}

func (err *UnbalancedConditionalError) Error() string {
	return fmt.Sprintf("%s (%s)", ErrUnbalancedConditionalAtEof, err.Cond)
}

func (err *UnbalancedConditionalError) Unwrap() error {
	return ErrUnbalancedConditionalAtEof
}

type fatalError struct {
	err error
}

func (f fatalError) Error() string { return f.err.Error() }

func (f fatalError) Unwrap() error { return f.err }

// Fatal marks err as fatal: the run is aborted without consulting the
// error handler or the error limit.
func Fatal(err error) error {
	if err == nil {
		return nil
	}
	return fatalError{err}
}

// IsFatal reports whether err cannot be recovered from.  Failures of
// the underlying input are always fatal.
func IsFatal(err error) bool {
	var f fatalError
	return errors.As(err, &f) || errors.Is(err, scanner.ErrInput)
}
