// expand.go -
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
	"strconv"
	"strings"

	"github.com/seehuhn/extex/tex/interp"
	"github.com/seehuhn/extex/tex/token"
)

func the(flags *interp.Flags, ctx interp.Context, src interp.TokenSource, ts interp.Typesetter) error {
	tok, err := scanNonSpace(src)
	if err == io.EOF {
		return fail(src, ErrNoInternalQuantity, token.Token{}, "")
	} else if err != nil {
		return err
	}
	var cc interp.CountConvertible
	if tok.IsCode() {
		code, _ := ctx.Lookup(tok.Key())
		cc, _ = code.(interp.CountConvertible)
	}
	if cc == nil {
		src.PushToken(tok)
		return fail(src, ErrNoInternalQuantity, tok, "")
	}
	v, err := cc.ConvertCount(ctx, src)
	if err != nil {
		return err
	}
	src.PushTokens(token.OtherString(strconv.FormatInt(v, 10)))
	return nil
}

func number(flags *interp.Flags, ctx interp.Context, src interp.TokenSource, ts interp.Typesetter) error {
	v, err := src.ScanInteger()
	if err != nil {
		return err
	}
	src.PushTokens(token.OtherString(strconv.FormatInt(v, 10)))
	return nil
}

func stringPrim(flags *interp.Flags, ctx interp.Context, src interp.TokenSource, ts interp.Typesetter) error {
	tok, err := src.GetToken()
	if err == io.EOF {
		return nil
	} else if err != nil {
		return err
	}
	src.PushTokens(token.OtherString(tok.Text()))
	return nil
}

func csname(flags *interp.Flags, ctx interp.Context, src interp.TokenSource, ts interp.Typesetter) error {
	var name strings.Builder
	for {
		tok, err := src.ScanToken()
		if err == io.EOF {
			return fail(src, ErrMissingEndcsname, token.Token{}, "")
		} else if err != nil {
			return err
		}
		if tok == token.CS("endcsname") {
			break
		}
		if tok.IsCode() {
			src.PushToken(tok)
			return fail(src, ErrMissingEndcsname, tok, "")
		}
		name.WriteRune(tok.Char)
	}

	res := token.CSNS(name.String(), ctx.Namespace())
	if _, ok := ctx.Lookup(res.Key()); !ok {
		relax, _ := ctx.Lookup(token.CS("relax").Key())
		ctx.Define(res.Key(), relax, false)
	}
	src.PushToken(res)
	return nil
}

func endcsname(flags *interp.Flags, ctx interp.Context, src interp.TokenSource, ts interp.Typesetter) error {
	return fail(src, interp.ErrCantUseHere, token.CS("endcsname"), "extra \\endcsname")
}

func expandafter(flags *interp.Flags, ctx interp.Context, src interp.TokenSource, ts interp.Typesetter) error {
	first, err := src.GetToken()
	if err == io.EOF {
		return nil
	} else if err != nil {
		return err
	}
	second, err := src.GetToken()
	if err == io.EOF {
		src.PushToken(first)
		return nil
	} else if err != nil {
		return err
	}
	err = src.ExpandOnce(second)
	if err != nil {
		return err
	}
	src.PushToken(first)
	return nil
}

// input reads a file name, terminated by a blank space or by an
// unexpandable control sequence, and starts reading that file.
func input(flags *interp.Flags, ctx interp.Context, src interp.TokenSource, ts interp.Typesetter) error {
	var name strings.Builder
	for {
		tok, err := src.ScanToken()
		if err == io.EOF {
			break
		} else if err != nil {
			return err
		}
		if tok.Kind == token.Space {
			if name.Len() == 0 {
				continue
			}
			break
		}
		if tok.IsCode() || tok.Kind == token.LeftBrace || tok.Kind == token.RightBrace {
			src.PushToken(tok)
			break
		}
		name.WriteRune(tok.Char)
	}
	if name.Len() == 0 {
		return fail(src, interp.ErrCantUseHere, token.CS("input"), "missing file name")
	}
	err := src.Include(name.String())
	if err != nil {
		return fail(src, err, token.CS("input"), name.String())
	}
	return nil
}
