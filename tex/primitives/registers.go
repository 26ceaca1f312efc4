// registers.go -
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

	"github.com/seehuhn/extex/tex/interp"
	"github.com/seehuhn/extex/tex/scanner"
	"github.com/seehuhn/extex/tex/token"
)

// register is implemented by codes which denote a count register.
type register interface {
	registerName(src interp.TokenSource) (string, error)
}

func scanRegisterNumber(src interp.TokenSource) (string, error) {
	n, err := src.ScanInteger()
	if err != nil {
		return "", err
	}
	if n < 0 || n > interp.MaxRegister {
		return "", fail(src, interp.ErrIllegalRegisterNumber, token.Token{},
			strconv.FormatInt(n, 10))
	}
	return strconv.FormatInt(n, 10), nil
}

func assignCount(flags *interp.Flags, ctx interp.Context, src interp.TokenSource, name string) error {
	err := src.ScanOptionalEquals()
	if err != nil {
		return err
	}
	v, err := src.ScanInteger()
	if err != nil {
		return err
	}
	ctx.SetCount(name, v, flags.IsGlobal())
	flags.Unset(interp.Global)
	return nil
}

// countPrimitive implements \count.
type countPrimitive struct{}

func (countPrimitive) Execute(flags *interp.Flags, ctx interp.Context, src interp.TokenSource, ts interp.Typesetter) error {
	name, err := scanRegisterNumber(src)
	if err != nil {
		return err
	}
	return assignCount(flags, ctx, src, name)
}

func (countPrimitive) AcceptsPrefix() bool { return true }

func (countPrimitive) ConvertCount(ctx interp.Context, src interp.TokenSource) (int64, error) {
	name, err := scanRegisterNumber(src)
	if err != nil {
		return 0, err
	}
	return ctx.Count(name), nil
}

func (countPrimitive) registerName(src interp.TokenSource) (string, error) {
	return scanRegisterNumber(src)
}

func (countPrimitive) Show() string { return "\\count" }

// countRegister is the meaning of a control sequence defined by
// \countdef.
type countRegister struct {
	name string
}

func (r countRegister) Execute(flags *interp.Flags, ctx interp.Context, src interp.TokenSource, ts interp.Typesetter) error {
	return assignCount(flags, ctx, src, r.name)
}

func (countRegister) AcceptsPrefix() bool { return true }

func (r countRegister) ConvertCount(ctx interp.Context, src interp.TokenSource) (int64, error) {
	return ctx.Count(r.name), nil
}

func (r countRegister) registerName(interp.TokenSource) (string, error) {
	return r.name, nil
}

func (r countRegister) Show() string { return "\\count" + r.name }

func countdef(flags *interp.Flags, ctx interp.Context, src interp.TokenSource, ts interp.Typesetter) error {
	cs, err := getControlSequence(src)
	if err != nil {
		return err
	}
	err = src.ScanOptionalEquals()
	if err != nil {
		return err
	}
	name, err := scanRegisterNumber(src)
	if err != nil {
		return err
	}
	ctx.Define(cs.Key(), countRegister{name: name}, flags.IsGlobal())
	flags.Unset(interp.Global)
	return nil
}

type arithOp int

const (
	opAdvance arithOp = iota
	opMultiply
	opDivide
)

// scanNonSpace returns the next unexpandable token which is not a
// blank space.
func scanNonSpace(src interp.TokenSource) (token.Token, error) {
	for {
		tok, err := src.ScanToken()
		if err != nil || tok.Kind != token.Space {
			return tok, err
		}
	}
}

func arithmetic(op arithOp) Func {
	return func(flags *interp.Flags, ctx interp.Context, src interp.TokenSource, ts interp.Typesetter) error {
		tok, err := scanNonSpace(src)
		if err == io.EOF {
			return fail(src, interp.ErrMissingControlSequence, token.Token{}, "")
		} else if err != nil {
			return err
		}
		var reg register
		if tok.IsCode() {
			code, _ := ctx.Lookup(tok.Key())
			reg, _ = code.(register)
		}
		if reg == nil {
			src.PushToken(tok)
			return fail(src, ErrNotAssignable, tok, "")
		}
		name, err := reg.registerName(src)
		if err != nil {
			return err
		}
		_, err = src.ScanKeyword("by")
		if err != nil {
			return err
		}
		arg, err := src.ScanInteger()
		if err != nil {
			return err
		}

		v := ctx.Count(name)
		switch op {
		case opAdvance:
			v += arg
		case opMultiply:
			v *= arg
		case opDivide:
			if arg == 0 {
				return fail(src, ErrArithmeticOverflow, tok, "division by zero")
			}
			v /= arg
		}
		if v > scanner.MaxInteger || v < -scanner.MaxInteger {
			return fail(src, ErrArithmeticOverflow, tok, "")
		}
		ctx.SetCount(name, v, flags.IsGlobal())
		flags.Unset(interp.Global)
		return nil
	}
}

// catcodePrimitive implements \catcode.
type catcodePrimitive struct{}

func (catcodePrimitive) Execute(flags *interp.Flags, ctx interp.Context, src interp.TokenSource, ts interp.Typesetter) error {
	r, err := src.ScanCharacterCode()
	if err != nil {
		return err
	}
	err = src.ScanOptionalEquals()
	if err != nil {
		return err
	}
	n, err := src.ScanInteger()
	if err != nil {
		return err
	}
	if n < 0 || n > int64(token.MaxCategory) {
		return fail(src, ErrInvalidCatcode, token.Token{}, strconv.FormatInt(n, 10))
	}
	ctx.SetCatcode(r, token.Category(n), flags.IsGlobal())
	flags.Unset(interp.Global)
	return nil
}

func (catcodePrimitive) AcceptsPrefix() bool { return true }

func (catcodePrimitive) ConvertCount(ctx interp.Context, src interp.TokenSource) (int64, error) {
	r, err := src.ScanCharacterCode()
	if err != nil {
		return 0, err
	}
	return int64(ctx.Catcode(r)), nil
}

func (catcodePrimitive) Show() string { return "\\catcode" }
