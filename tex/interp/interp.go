// interp.go -
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
	"log/slog"

	"github.com/seehuhn/extex/tex/scanner"
	"github.com/seehuhn/extex/tex/token"
)

// GroupType distinguishes the different kinds of group.
type GroupType int

// The group types.
const (
	BraceGroup GroupType = iota
	SemiSimpleGroup
)

// Closer returns the name of the token which closes a group of this
// type.
func (gt GroupType) Closer() string {
	switch gt {
	case BraceGroup:
		return "}"
	case SemiSimpleGroup:
		return "\\endgroup"
	}
	return "?"
}

// Context is the symbol table used by the engine.  It stores the
// meaning of control sequences, registers and category codes, and
// undoes local assignments when a group ends.
type Context interface {
	scanner.Tokenizer

	Lookup(key token.Key) (Code, bool)
	// Define binds key to code.  A nil code makes key undefined.
	Define(key token.Key, code Code, global bool)
	SetCatcode(r rune, cat token.Category, global bool)
	Count(name string) int64
	SetCount(name string, value int64, global bool)

	OpenGroup(gt GroupType)
	// CloseGroup ends the innermost group and restores all local
	// assignments made inside it.  An error wrapping
	// ErrExtraGroupClose is returned if no group of type gt is open.
	CloseGroup(gt GroupType) error
	GroupDepth() int
	CurrentGroup() (GroupType, bool)

	PushConditional(c Conditional)
	PopConditional() (Conditional, bool)
	// Conditionals returns the open conditionals, oldest first.
	Conditionals() []Conditional

	IncErrorCount() int
	ErrorCount() int
}

// Code is the meaning of a control sequence or active character.
type Code interface {
	Execute(flags *Flags, ctx Context, src TokenSource, ts Typesetter) error
}

// Expandable is implemented by codes which can be expanded while the
// input is scanned.  Expand consumes the arguments and pushes the
// replacement back onto the input.
type Expandable interface {
	Code
	Expand(flags *Flags, ctx Context, src TokenSource, ts Typesetter) error
}

// FlagAware is implemented by codes which consume prefix flags.  Any
// other code leaves an error if a prefix was given.
type FlagAware interface {
	AcceptsPrefix() bool
}

// CountConvertible is implemented by codes which denote an integer
// quantity, like count registers.
type CountConvertible interface {
	ConvertCount(ctx Context, src TokenSource) (int64, error)
}

// Shower is implemented by codes which can describe their meaning,
// as shown by \show.
type Shower interface {
	Show() string
}

// Typesetter receives the material produced by the engine.
type Typesetter interface {
	AddLetter(r rune) error
	AddSpace() error
	OpenGroup() error
	CloseGroup() error
	Finish() error
}

// ParBuilder is implemented by typesetters which can end a paragraph.
type ParBuilder interface {
	Par() error
}

// ErrorHandler is offered every recoverable error.  If Handle returns
// true, the error is considered resolved and is not counted.
type ErrorHandler interface {
	Handle(err error, tok token.Token, e *Engine, ctx Context) bool
}

// ErrorHandlerFunc adapts an ordinary function to the ErrorHandler
// interface.
type ErrorHandlerFunc func(err error, tok token.Token, e *Engine, ctx Context) bool

// Handle calls f.
func (f ErrorHandlerFunc) Handle(err error, tok token.Token, e *Engine, ctx Context) bool {
	return f(err, tok, e, ctx)
}

// TokenSource is the view of the engine given to primitives.
type TokenSource interface {
	GetToken() (token.Token, error)
	GetNonSpace() (token.Token, error)
	PushToken(tok token.Token)
	PushTokens(toks token.List)
	SkipSpaces()
	GetTokens() (token.List, error)
	GetBalanced() (token.List, error)

	ScanToken() (token.Token, error)
	ScanInteger() (int64, error)
	ScanNumber(first token.Token) (int64, error)
	ScanCharacterCode() (rune, error)
	ScanKeyword(word string) (bool, error)
	ScanOptionalEquals() error

	Execute(tok token.Token, flags *Flags) error
	Expand(tok token.Token) (token.Token, error)
	ExpandOnce(tok token.Token) error

	Include(fileName string) error
	SetEveryEOF(toks token.List)
	Locator() scanner.Locator
	Logger() *slog.Logger
}
