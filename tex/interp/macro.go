// macro.go -
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
	"io"
	"strconv"
	"strings"

	"github.com/seehuhn/extex/tex/token"
)

// MaxParams is the largest number of parameters a macro can take.
const MaxParams = 9

// PatternItem is one element of a macro's parameter text: either a
// literal token which must occur in the input, or a parameter.
type PatternItem struct {
	// Param is the parameter number 1..9, or 0 for a literal token.
	Param int
	Tok   token.Token
}

// ParsePattern converts the parameter text of a definition, e.g. the
// tokens "#1,#2", into a pattern.  The number of parameters is
// returned as the second value.
func ParsePattern(toks token.List) ([]PatternItem, int, error) {
	var res []PatternItem
	n := 0
	for i := 0; i < len(toks); i++ {
		tok := toks[i]
		if tok.Kind != token.MacroParam {
			res = append(res, PatternItem{Tok: tok})
			continue
		}
		i++
		if i >= len(toks) || !toks[i].IsDigit() || int(toks[i].Char-'0') != n+1 {
			return nil, 0, &Error{
				Err:    ErrIllegalParameterNumber,
				Detail: "parameters must be numbered consecutively",
			}
		}
		n++
		res = append(res, PatternItem{Param: n, Tok: toks[i]})
	}
	return res, n, nil
}

// Macro is a user-defined control sequence.
type Macro struct {
	Name    string
	Token   token.Token // the token the macro is defined for
	Pattern []PatternItem
	Body    token.List
	Arity   int

	Long      bool
	Outer     bool
	Protected bool
}

// NewMacro creates a macro from the raw parameter text and body of a
// definition.  Parameter references in the body are checked against
// the number of parameters.
func NewMacro(name string, params, body token.List, flags *Flags) (*Macro, error) {
	pattern, n, err := ParsePattern(params)
	if err != nil {
		return nil, err
	}
	for i := 0; i < len(body); i++ {
		if body[i].Kind != token.MacroParam {
			continue
		}
		i++
		if i < len(body) && body[i].Kind == token.MacroParam {
			continue
		}
		if i >= len(body) || !body[i].IsDigit() ||
			body[i].Char == '0' || int(body[i].Char-'0') > n {
			return nil, &Error{Err: ErrIllegalParameterNumber, Detail: name}
		}
	}
	m := &Macro{
		Name:    name,
		Token:   token.CS(name),
		Pattern: pattern,
		Body:    body,
		Arity:   n,
	}
	if flags != nil {
		m.Long = flags.IsLong()
		m.Outer = flags.IsOuter()
		m.Protected = flags.IsProtected()
	}
	return m, nil
}

// Execute implements the Code interface.
func (m *Macro) Execute(flags *Flags, ctx Context, src TokenSource, ts Typesetter) error {
	return m.Invoke(src)
}

// Expand implements the Expandable interface.  Macros expand and
// execute in the same way.
func (m *Macro) Expand(flags *Flags, ctx Context, src TokenSource, ts Typesetter) error {
	return m.Invoke(src)
}

// Invoke reads the arguments of the macro from src and pushes the
// body, with the arguments substituted, back onto the input.
func (m *Macro) Invoke(src TokenSource) error {
	args, err := m.match(src)
	if err != nil {
		return err
	}
	src.PushTokens(m.substitute(args))
	return nil
}

func (m *Macro) fail(src TokenSource, err error, detail string) error {
	return &Error{
		Err:    err,
		Token:  m.Token,
		Loc:    src.Locator(),
		Detail: detail,
	}
}

func (m *Macro) match(src TokenSource) ([]token.List, error) {
	args := make([]token.List, m.Arity)
	i := 0
	for i < len(m.Pattern) {
		item := m.Pattern[i]
		if item.Param == 0 {
			tok, err := src.GetToken()
			if err == io.EOF {
				return nil, m.fail(src, ErrEofInMatch, "")
			} else if err != nil {
				return nil, err
			}
			if tok != item.Tok {
				src.PushToken(tok)
				return nil, m.fail(src, ErrUseDoesNotMatch, "")
			}
			i++
			continue
		}

		j := i + 1
		var delim token.List
		for j < len(m.Pattern) && m.Pattern[j].Param == 0 {
			delim = append(delim, m.Pattern[j].Tok)
			j++
		}
		var arg token.List
		var err error
		if len(delim) == 0 {
			arg, err = m.undelimited(src)
		} else {
			arg, err = m.delimited(src, delim)
		}
		if err != nil {
			return nil, err
		}
		args[item.Param-1] = arg
		i = j
	}
	return args, nil
}

func isPar(tok token.Token) bool {
	return tok.Kind == token.ControlSequence && tok.Name == "par"
}

// undelimited reads a single token or a brace group, after skipping
// blank spaces.
func (m *Macro) undelimited(src TokenSource) (token.List, error) {
	tok, err := src.GetNonSpace()
	if err == io.EOF {
		return nil, m.fail(src, ErrEofInMatch, "")
	} else if err != nil {
		return nil, err
	}
	switch {
	case tok.Kind == token.RightBrace:
		src.PushToken(tok)
		return nil, m.fail(src, ErrRunawayArgument, "argument has an extra }")
	case isPar(tok) && !m.Long:
		src.PushToken(tok)
		return nil, m.fail(src, ErrRunawayArgument, "paragraph ended before argument was complete")
	case tok.Kind != token.LeftBrace:
		return token.List{tok}, nil
	}

	var res token.List
	level := 1
	for {
		tok, err := src.GetToken()
		if err == io.EOF {
			return nil, m.fail(src, ErrEofInMatch, "")
		} else if err != nil {
			return nil, err
		}
		switch {
		case tok.Kind == token.LeftBrace:
			level++
		case tok.Kind == token.RightBrace:
			level--
			if level == 0 {
				return res, nil
			}
		case isPar(tok) && !m.Long:
			src.PushToken(tok)
			return nil, m.fail(src, ErrRunawayArgument, "paragraph ended before argument was complete")
		}
		res = append(res, tok)
	}
}

// delimited reads tokens until delim occurs outside of any brace
// group.  One pair of braces around the whole argument is removed.
func (m *Macro) delimited(src TokenSource, delim token.List) (token.List, error) {
	var res token.List
	level := 0
	for {
		tok, err := src.GetToken()
		if err == io.EOF {
			return nil, m.fail(src, ErrEofInMatch, "")
		} else if err != nil {
			return nil, err
		}
		switch {
		case tok.Kind == token.LeftBrace:
			level++
		case tok.Kind == token.RightBrace:
			if level == 0 {
				src.PushToken(tok)
				return nil, m.fail(src, ErrRunawayArgument, "argument has an extra }")
			}
			level--
		case isPar(tok) && !m.Long:
			src.PushToken(tok)
			return nil, m.fail(src, ErrRunawayArgument, "paragraph ended before argument was complete")
		}
		res = append(res, tok)

		// Delimiters never contain braces, so a matching suffix always
		// lies at brace level 0.
		if level == 0 && len(res) >= len(delim) &&
			res[len(res)-len(delim):].Equal(delim) {
			return stripBraces(res[:len(res)-len(delim)]), nil
		}
	}
}

// stripBraces removes the outer braces of an argument of the form
// {...}, if the two braces match each other.
func stripBraces(arg token.List) token.List {
	n := len(arg)
	if n < 2 || arg[0].Kind != token.LeftBrace || arg[n-1].Kind != token.RightBrace {
		return arg
	}
	level := 0
	for i, tok := range arg {
		switch tok.Kind {
		case token.LeftBrace:
			level++
		case token.RightBrace:
			level--
			if level == 0 && i < n-1 {
				return arg
			}
		}
	}
	return arg[1 : n-1]
}

func (m *Macro) substitute(args []token.List) token.List {
	res := make(token.List, 0, len(m.Body))
	for i := 0; i < len(m.Body); i++ {
		tok := m.Body[i]
		if tok.Kind == token.MacroParam && i+1 < len(m.Body) {
			next := m.Body[i+1]
			if next.Kind == token.MacroParam {
				res = append(res, next)
				i++
				continue
			}
			if next.IsDigit() {
				if k := int(next.Char - '0'); k >= 1 && k <= len(args) {
					res = append(res, args[k-1]...)
					i++
					continue
				}
			}
		}
		res = append(res, tok)
	}
	return res
}

// Show describes the macro the way \show does, for example
// "macro:#1,#2->[#1|#2]".
func (m *Macro) Show() string {
	var b strings.Builder
	if m.Protected {
		b.WriteString("\\protected ")
	}
	if m.Long {
		b.WriteString("\\long ")
	}
	if m.Outer {
		b.WriteString("\\outer ")
	}
	b.WriteString("macro:")
	for _, item := range m.Pattern {
		if item.Param > 0 {
			b.WriteString("#" + strconv.Itoa(item.Param))
		} else {
			b.WriteString(item.Tok.Text())
		}
	}
	b.WriteString("->")
	b.WriteString(m.Body.String())
	return b.String()
}

// Equal reports whether two macros have the same definition.  This is
// the comparison used by \ifx.
func (m *Macro) Equal(other *Macro) bool {
	if m.Long != other.Long || m.Outer != other.Outer ||
		m.Protected != other.Protected || len(m.Pattern) != len(other.Pattern) {
		return false
	}
	for i, item := range m.Pattern {
		if item != other.Pattern[i] {
			return false
		}
	}
	return m.Body.Equal(other.Body)
}
