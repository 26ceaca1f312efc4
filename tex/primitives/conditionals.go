// conditionals.go -
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

type testFunc func(ctx interp.Context, src interp.TokenSource) (bool, error)

var conditionals []*expandable

func init() {
	conditionals = []*expandable{
		ifPrimitive("iftrue", func(interp.Context, interp.TokenSource) (bool, error) {
			return true, nil
		}),
		ifPrimitive("iffalse", func(interp.Context, interp.TokenSource) (bool, error) {
			return false, nil
		}),
		ifPrimitive("ifnum", ifnum),
		ifPrimitive("ifodd", ifodd),
		ifPrimitive("ifx", ifx),
		{primitive: primitive{name: "else", exec: elsePrim}, role: roleElse},
		{primitive: primitive{name: "fi", exec: fi}, role: roleFi},
	}
}

func ifPrimitive(name string, test testFunc) *expandable {
	exec := func(flags *interp.Flags, ctx interp.Context, src interp.TokenSource, ts interp.Typesetter) error {
		cond := interp.NewConditional(src.Locator(), name)
		ok, err := test(ctx, src)
		if err != nil {
			return err
		}
		if ok {
			ctx.PushConditional(cond)
			return nil
		}
		role, err := skipBranch(ctx, src, true)
		if err == io.EOF || role == roleElse {
			// an unterminated conditional stays open and is reported
			// at the end of the run
			ctx.PushConditional(cond)
			return nil
		}
		return err
	}
	return &expandable{
		primitive: primitive{name: name, exec: exec},
		role:      roleIf,
	}
}

func conditionalRole(ctx interp.Context, tok token.Token) condRole {
	if !tok.IsCode() {
		return roleNone
	}
	code, _ := ctx.Lookup(tok.Key())
	if p, ok := code.(*expandable); ok {
		return p.role
	}
	return roleNone
}

// skipBranch discards raw tokens up to the \fi, or to the \else if
// stopAtElse is set, which ends the current branch.  Nested
// conditionals are skipped as a whole.  The role of the token which
// ended the branch is returned.
func skipBranch(ctx interp.Context, src interp.TokenSource, stopAtElse bool) (condRole, error) {
	level := 0
	for {
		tok, err := src.GetToken()
		if err != nil {
			return roleNone, err
		}
		switch conditionalRole(ctx, tok) {
		case roleIf:
			level++
		case roleElse:
			if level == 0 && stopAtElse {
				return roleElse, nil
			}
		case roleFi:
			if level == 0 {
				return roleFi, nil
			}
			level--
		}
	}
}

func elsePrim(flags *interp.Flags, ctx interp.Context, src interp.TokenSource, ts interp.Typesetter) error {
	if len(ctx.Conditionals()) == 0 {
		return fail(src, interp.ErrExtraConditional, token.CS("else"), "")
	}
	_, err := skipBranch(ctx, src, false)
	if err == io.EOF {
		return nil
	} else if err != nil {
		return err
	}
	ctx.PopConditional()
	return nil
}

func fi(flags *interp.Flags, ctx interp.Context, src interp.TokenSource, ts interp.Typesetter) error {
	if _, ok := ctx.PopConditional(); !ok {
		return fail(src, interp.ErrExtraConditional, token.CS("fi"), "")
	}
	return nil
}

func ifnum(ctx interp.Context, src interp.TokenSource) (bool, error) {
	a, err := src.ScanInteger()
	if err != nil {
		return false, err
	}
	rel, err := scanNonSpace(src)
	if err == io.EOF {
		return false, fail(src, ErrMissingRelation, token.Token{}, "")
	} else if err != nil {
		return false, err
	}
	if rel.Kind != token.Other || (rel.Char != '<' && rel.Char != '=' && rel.Char != '>') {
		src.PushToken(rel)
		return false, fail(src, ErrMissingRelation, rel, "")
	}
	b, err := src.ScanInteger()
	if err != nil {
		return false, err
	}
	switch rel.Char {
	case '<':
		return a < b, nil
	case '=':
		return a == b, nil
	default:
		return a > b, nil
	}
}

func ifodd(ctx interp.Context, src interp.TokenSource) (bool, error) {
	n, err := src.ScanInteger()
	if err != nil {
		return false, err
	}
	return n%2 != 0, nil
}

// ifx compares the meaning of the next two raw tokens.
func ifx(ctx interp.Context, src interp.TokenSource) (bool, error) {
	a, err := src.GetToken()
	if err != nil {
		return false, err
	}
	b, err := src.GetToken()
	if err != nil {
		return false, err
	}
	return meaning(ctx, a) == meaning(ctx, b) ||
		sameMacro(ctx, a, b), nil
}

// meaning returns a comparable value describing the meaning of tok.
func meaning(ctx interp.Context, tok token.Token) any {
	if !tok.IsCode() {
		return charCode{tok}
	}
	code, _ := ctx.Lookup(tok.Key())
	return code
}

func sameMacro(ctx interp.Context, a, b token.Token) bool {
	ma, ok := meaning(ctx, a).(*interp.Macro)
	if !ok {
		return false
	}
	mb, ok := meaning(ctx, b).(*interp.Macro)
	if !ok {
		return false
	}
	return ma.Equal(mb)
}
