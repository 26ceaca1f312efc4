// token.go -
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

package token

import (
	"strconv"
	"strings"
)

// Kind is used to enumerate the different kinds of token.
type Kind uint8

// The token kinds.  Comment and ignored characters are consumed while
// reading input and never become tokens.
const (
	ControlSequence Kind = iota
	ActiveChar
	Letter
	Other
	Space
	LeftBrace
	RightBrace
	MathShift
	MacroParam
	SupMark
	SubMark
	TabMark
	Cr
)

var kindNames = [...]string{
	ControlSequence: "control sequence",
	ActiveChar:      "active character",
	Letter:          "letter",
	Other:           "other character",
	Space:           "blank space",
	LeftBrace:       "begin-group character",
	RightBrace:      "end-group character",
	MathShift:       "math shift character",
	MacroParam:      "macro parameter character",
	SupMark:         "superscript character",
	SubMark:         "subscript character",
	TabMark:         "alignment tab character",
	Cr:              "end of line",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// Token is a single unit of TeX input.  Tokens are values; two tokens
// are equal (using ==) if they have the same kind and payload.
type Token struct {
	Kind Kind

	// Char is the character for all kinds except ControlSequence.
	// Space tokens always use ' '.
	Char rune

	// Name and Namespace identify a control sequence.  The name does
	// not include the escape character.
	Name      string
	Namespace string
}

// CS returns a control sequence token in the default namespace.
func CS(name string) Token {
	return Token{Kind: ControlSequence, Name: name}
}

// CSNS returns a control sequence token in the given namespace.
func CSNS(name, namespace string) Token {
	return Token{Kind: ControlSequence, Name: name, Namespace: namespace}
}

// Active returns the active character token for r.
func Active(r rune) Token { return Token{Kind: ActiveChar, Char: r} }

// NewLetter returns a token of kind Letter.
func NewLetter(r rune) Token { return Token{Kind: Letter, Char: r} }

// NewOther returns a token of kind Other.
func NewOther(r rune) Token { return Token{Kind: Other, Char: r} }

// NewSpace returns a blank space token.
func NewSpace() Token { return Token{Kind: Space, Char: ' '} }

// FromCategory returns the token the tokenizer produces for character
// r with category cat.  The second return value is false for the
// categories which never produce tokens (escape, ignore, comment and
// invalid).
func FromCategory(cat Category, r rune) (Token, bool) {
	var kind Kind
	switch cat {
	case CatLeftBrace:
		kind = LeftBrace
	case CatRightBrace:
		kind = RightBrace
	case CatMathShift:
		kind = MathShift
	case CatTabMark:
		kind = TabMark
	case CatCr:
		kind = Cr
	case CatMacroParam:
		kind = MacroParam
	case CatSupMark:
		kind = SupMark
	case CatSubMark:
		kind = SubMark
	case CatSpace:
		return NewSpace(), true
	case CatLetter:
		kind = Letter
	case CatOther:
		kind = Other
	case CatActive:
		kind = ActiveChar
	default:
		return Token{}, false
	}
	return Token{Kind: kind, Char: r}, true
}

// IsCode reports whether the token can be bound to a meaning, i.e.
// whether it is a control sequence or an active character.
func (t Token) IsCode() bool {
	return t.Kind == ControlSequence || t.Kind == ActiveChar
}

// Is checks whether t is a character token of the given kind and
// character.
func (t Token) Is(kind Kind, c rune) bool {
	return t.Kind == kind && t.Char == c
}

// IsDigit reports whether t is an Other token holding one of the
// digits 0 to 9.
func (t Token) IsDigit() bool {
	return t.Kind == Other && t.Char >= '0' && t.Char <= '9'
}

// Key returns the symbol table key for a control sequence or active
// character.
func (t Token) Key() Key {
	if t.Kind == ActiveChar {
		return Key{Active: true, Name: string(t.Char)}
	}
	return Key{Name: t.Name, Namespace: t.Namespace}
}

// Text returns the characters the token would print as, with `\` as
// the escape character.
func (t Token) Text() string {
	if t.Kind == ControlSequence {
		return "\\" + t.Name
	}
	return string(t.Char)
}

func (t Token) String() string {
	switch t.Kind {
	case ControlSequence:
		if t.Namespace != "" {
			return "\\" + t.Name + " (" + t.Namespace + ")"
		}
		return "\\" + t.Name
	case Space:
		return "blank space  "
	default:
		return t.Kind.String() + " " + string(t.Char)
	}
}

// Key identifies a control sequence or active character in the symbol
// table.
type Key struct {
	Active    bool
	Name      string
	Namespace string
}

func (k Key) String() string {
	if k.Active {
		return k.Name
	}
	return "\\" + k.Name
}

// List is a sequence of tokens.
type List []Token

// Equal reports whether two token lists contain the same tokens.
func (toks List) Equal(other List) bool {
	if len(toks) != len(other) {
		return false
	}
	for i, tok := range toks {
		if tok != other[i] {
			return false
		}
	}
	return true
}

// String formats the token list approximately as it would appear in
// TeX input.  A space is inserted after control words which are
// followed by a letter.
func (toks List) String() string {
	var b strings.Builder
	for i, tok := range toks {
		b.WriteString(tok.Text())
		if tok.Kind == ControlSequence && isWord(tok.Name) &&
			i+1 < len(toks) && toks[i+1].Kind == Letter {
			b.WriteByte(' ')
		}
	}
	return b.String()
}

func isWord(name string) bool {
	if name == "" {
		return false
	}
	for _, r := range name {
		if !('a' <= r && r <= 'z' || 'A' <= r && r <= 'Z') {
			return false
		}
	}
	return true
}

// FromString converts s into a token list, using Letter tokens for
// ASCII letters, Space tokens for blanks and Other tokens for
// everything else.  This is how TeX turns the result of \number or
// \the into tokens.
func FromString(s string) List {
	res := make(List, 0, len(s))
	for _, r := range s {
		switch {
		case r == ' ':
			res = append(res, NewSpace())
		case 'a' <= r && r <= 'z' || 'A' <= r && r <= 'Z':
			res = append(res, NewLetter(r))
		default:
			res = append(res, NewOther(r))
		}
	}
	return res
}

// OtherString converts s into a list of Other tokens (Space tokens
// for blanks), as \string does.
func OtherString(s string) List {
	res := make(List, 0, len(s))
	for _, r := range s {
		if r == ' ' {
			res = append(res, NewSpace())
		} else {
			res = append(res, NewOther(r))
		}
	}
	return res
}
