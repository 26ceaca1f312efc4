// misc.go -
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

func begingroup(flags *interp.Flags, ctx interp.Context, src interp.TokenSource, ts interp.Typesetter) error {
	ctx.OpenGroup(interp.SemiSimpleGroup)
	return nil
}

func endgroup(flags *interp.Flags, ctx interp.Context, src interp.TokenSource, ts interp.Typesetter) error {
	err := ctx.CloseGroup(interp.SemiSimpleGroup)
	if err != nil {
		return fail(src, err, token.CS("endgroup"), "")
	}
	return nil
}

// message writes its expanded argument to the log.
func message(flags *interp.Flags, ctx interp.Context, src interp.TokenSource, ts interp.Typesetter) error {
	toks, err := scanExpanded(ctx, src)
	if err != nil {
		return err
	}
	src.Logger().Info(toks.String(), "loc", src.Locator().String())
	flags.Unset(interp.Immediate)
	return nil
}

func everyeof(flags *interp.Flags, ctx interp.Context, src interp.TokenSource, ts interp.Typesetter) error {
	err := src.ScanOptionalEquals()
	if err != nil {
		return err
	}
	toks, err := src.GetTokens()
	if err != nil {
		return err
	}
	src.SetEveryEOF(toks)
	flags.Unset(interp.Global)
	return nil
}

// Meaning describes the meaning of tok, as shown by \show.
func Meaning(ctx interp.Context, tok token.Token) string {
	if !tok.IsCode() {
		return tok.String()
	}
	code, ok := ctx.Lookup(tok.Key())
	if !ok {
		return "undefined"
	}
	if s, ok := code.(interp.Shower); ok {
		return s.Show()
	}
	return "unknown"
}

func show(flags *interp.Flags, ctx interp.Context, src interp.TokenSource, ts interp.Typesetter) error {
	tok, err := src.GetToken()
	if err == io.EOF {
		return nil
	} else if err != nil {
		return err
	}
	msg := "> the " + Meaning(ctx, tok) + "."
	if tok.IsCode() {
		msg = "> " + tok.Text() + "=" + Meaning(ctx, tok) + "."
	}
	src.Logger().Info(msg, "loc", src.Locator().String())
	return nil
}
