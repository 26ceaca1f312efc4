// primitives.go -
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

// Package primitives implements a small set of TeX primitives for the
// interpreter: definitions, prefixes, count registers, conditionals
// and a few expandable commands.
package primitives

import (
	"errors"
	"io"

	"github.com/seehuhn/extex/tex/interp"
	"github.com/seehuhn/extex/tex/token"
)

// Errors reported by primitives.
var (
	ErrArithmeticOverflow = errors.New("arithmetic overflow")
	ErrInvalidCatcode     = errors.New("invalid code")
	ErrMissingEndcsname   = errors.New("missing \\endcsname inserted")
	ErrMissingRelation    = errors.New("missing = inserted for \\ifnum")
	ErrNotAssignable      = errors.New("you can't use this after \\advance")
	ErrNoInternalQuantity = errors.New("you can't use this after \\the")
)

// Func is the signature of the function implementing a primitive.
type Func func(flags *interp.Flags, ctx interp.Context, src interp.TokenSource, ts interp.Typesetter) error

type condRole uint8

const (
	roleNone condRole = iota
	roleIf
	roleElse
	roleFi
)

type primitive struct {
	name   string
	exec   Func
	prefix bool
}

func (p *primitive) Execute(flags *interp.Flags, ctx interp.Context, src interp.TokenSource, ts interp.Typesetter) error {
	return p.exec(flags, ctx, src, ts)
}

func (p *primitive) AcceptsPrefix() bool {
	return p.prefix
}

func (p *primitive) Show() string {
	return "\\" + p.name
}

type expandable struct {
	primitive
	role condRole
}

func (p *expandable) Expand(flags *interp.Flags, ctx interp.Context, src interp.TokenSource, ts interp.Typesetter) error {
	return p.exec(flags, ctx, src, ts)
}

// Install defines all primitives in ctx.
func Install(ctx interp.Context) {
	for _, p := range unexpandable {
		ctx.Define(token.CS(p.name).Key(), p, true)
	}
	for _, p := range expandables {
		ctx.Define(token.CS(p.name).Key(), p, true)
	}
	for _, p := range conditionals {
		ctx.Define(token.CS(p.name).Key(), p, true)
	}
	ctx.Define(token.CS("count").Key(), countPrimitive{}, true)
	ctx.Define(token.CS("catcode").Key(), catcodePrimitive{}, true)
}

var unexpandable []*primitive

var expandables []*expandable

func init() {
	unexpandable = []*primitive{
		{name: "relax", exec: relax},
		{name: "par", exec: par},

		{name: "def", exec: define(false, false), prefix: true},
		{name: "gdef", exec: define(true, false), prefix: true},
		{name: "edef", exec: define(false, true), prefix: true},
		{name: "xdef", exec: define(true, true), prefix: true},
		{name: "let", exec: let, prefix: true},

		{name: "global", exec: prefixCmd(interp.Global), prefix: true},
		{name: "long", exec: prefixCmd(interp.Long), prefix: true},
		{name: "outer", exec: prefixCmd(interp.Outer), prefix: true},
		{name: "protected", exec: prefixCmd(interp.Protected), prefix: true},
		{name: "immediate", exec: prefixCmd(interp.Immediate), prefix: true},

		{name: "countdef", exec: countdef, prefix: true},
		{name: "advance", exec: arithmetic(opAdvance), prefix: true},
		{name: "multiply", exec: arithmetic(opMultiply), prefix: true},
		{name: "divide", exec: arithmetic(opDivide), prefix: true},

		{name: "begingroup", exec: begingroup},
		{name: "endgroup", exec: endgroup},

		{name: "message", exec: message, prefix: true},
		{name: "everyeof", exec: everyeof, prefix: true},
		{name: "show", exec: show},
		{name: "endcsname", exec: endcsname},
	}

	expandables = []*expandable{
		{primitive: primitive{name: "the", exec: the}},
		{primitive: primitive{name: "number", exec: number}},
		{primitive: primitive{name: "string", exec: stringPrim}},
		{primitive: primitive{name: "csname", exec: csname}},
		{primitive: primitive{name: "expandafter", exec: expandafter}},
		{primitive: primitive{name: "input", exec: input}},
	}
}

func relax(*interp.Flags, interp.Context, interp.TokenSource, interp.Typesetter) error {
	return nil
}

func par(_ *interp.Flags, _ interp.Context, _ interp.TokenSource, ts interp.Typesetter) error {
	if pb, ok := ts.(interp.ParBuilder); ok {
		return pb.Par()
	}
	return nil
}

func fail(src interp.TokenSource, err error, tok token.Token, detail string) error {
	return &interp.Error{
		Err:    err,
		Token:  tok,
		Loc:    src.Locator(),
		Detail: detail,
	}
}

// getControlSequence reads the token to be defined by \def, \let and
// similar primitives.
func getControlSequence(src interp.TokenSource) (token.Token, error) {
	tok, err := src.GetNonSpace()
	if err == io.EOF {
		return tok, fail(src, interp.ErrMissingControlSequence, token.Token{}, "")
	} else if err != nil {
		return tok, err
	}
	if !tok.IsCode() {
		src.PushToken(tok)
		return tok, fail(src, interp.ErrMissingControlSequence, token.Token{}, tok.String())
	}
	return tok, nil
}

// scanExpanded reads a balanced group of tokens, expanding all
// expandable tokens except protected macros.
func scanExpanded(ctx interp.Context, src interp.TokenSource) (token.List, error) {
	tok, err := src.GetNonSpace()
	if err == io.EOF {
		return nil, fail(src, interp.ErrMissingLeftBrace, token.Token{}, "")
	} else if err != nil {
		return nil, err
	}
	if tok.Kind != token.LeftBrace {
		src.PushToken(tok)
		return nil, fail(src, interp.ErrMissingLeftBrace, tok, "")
	}

	var res token.List
	level := 1
	for {
		tok, err := src.GetToken()
		if err == io.EOF {
			return nil, fail(src, io.ErrUnexpectedEOF, token.Token{}, "file ended while scanning a group")
		} else if err != nil {
			return nil, err
		}
		if tok.IsCode() {
			code, ok := ctx.Lookup(tok.Key())
			if m, isMacro := code.(*interp.Macro); ok && isMacro && m.Protected {
				res = append(res, tok)
				continue
			}
			tok, err = src.Expand(tok)
			if err == io.EOF {
				return nil, fail(src, io.ErrUnexpectedEOF, token.Token{}, "file ended while scanning a group")
			} else if err != nil {
				return nil, err
			}
		}
		switch tok.Kind {
		case token.LeftBrace:
			level++
		case token.RightBrace:
			level--
			if level == 0 {
				return res, nil
			}
		}
		res = append(res, tok)
	}
}
