// defs.go -
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

package primitives

import (
	"io"

	"github.com/seehuhn/extex/tex/interp"
	"github.com/seehuhn/extex/tex/token"
)

// define returns the implementation of \def and its variants.
func define(global, expand bool) Func {
	return func(flags *interp.Flags, ctx interp.Context, src interp.TokenSource, ts interp.Typesetter) error {
		name, err := getControlSequence(src)
		if err != nil {
			return err
		}

		var params token.List
		for {
			tok, err := src.GetToken()
			if err == io.EOF {
				return fail(src, interp.ErrMissingLeftBrace, name, "")
			} else if err != nil {
				return err
			}
			if tok.Kind == token.LeftBrace {
				src.PushToken(tok)
				break
			}
			if tok.Kind == token.RightBrace {
				return fail(src, interp.ErrMissingLeftBrace, name, "")
			}
			params = append(params, tok)
		}

		var body token.List
		if expand || flags.IsExpanded() {
			body, err = scanExpanded(ctx, src)
		} else {
			body, err = src.GetTokens()
		}
		if err != nil {
			return err
		}

		m, err := interp.NewMacro(name.Name, params, body, flags)
		if err != nil {
			return err
		}
		m.Token = name
		if name.Kind == token.ActiveChar {
			m.Name = string(name.Char)
		}
		ctx.Define(name.Key(), m, global || flags.IsGlobal())
		flags.Unset(interp.Global | interp.Long | interp.Outer |
			interp.Protected | interp.Expanded)
		return nil
	}
}

// charCode is the meaning of a control sequence which was \let to a
// character token.
type charCode struct {
	tok token.Token
}

func (c charCode) Execute(flags *interp.Flags, ctx interp.Context, src interp.TokenSource, ts interp.Typesetter) error {
	return src.Execute(c.tok, flags)
}

func (c charCode) Show() string {
	return c.tok.String()
}

func let(flags *interp.Flags, ctx interp.Context, src interp.TokenSource, ts interp.Typesetter) error {
	name, err := getControlSequence(src)
	if err != nil {
		return err
	}

	tok, err := src.GetNonSpace()
	if err == nil && tok.Is(token.Other, '=') {
		tok, err = src.GetToken()
		if err == nil && tok.Kind == token.Space {
			tok, err = src.GetToken()
		}
	}
	if err == io.EOF {
		return fail(src, io.ErrUnexpectedEOF, name, "")
	} else if err != nil {
		return err
	}

	global := flags.IsGlobal()
	flags.Unset(interp.Global)
	if !tok.IsCode() {
		ctx.Define(name.Key(), charCode{tok}, global)
		return nil
	}
	code, _ := ctx.Lookup(tok.Key())
	ctx.Define(name.Key(), code, global)
	return nil
}

// prefixCmd returns the implementation of a prefix primitive: the flag is
// set and the next command is executed.
func prefixCmd(fl interp.Flag) Func {
	return func(flags *interp.Flags, ctx interp.Context, src interp.TokenSource, ts interp.Typesetter) error {
		flags.Set(fl)
		for {
			tok, err := src.ScanToken()
			if err == io.EOF {
				return fail(src, interp.ErrUnusedPrefix, token.Token{}, "\\"+fl.String())
			} else if err != nil {
				return err
			}
			if tok.Kind == token.Space || tok == token.CS("relax") {
				continue
			}
			if !tok.IsCode() {
				src.PushToken(tok)
				flags.Clear()
				return fail(src, interp.ErrUnusedPrefix, tok, "\\"+fl.String())
			}
			return src.Execute(tok, flags)
		}
	}
}
