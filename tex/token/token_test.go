// token_test.go -
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

import "testing"

func TestTokenEquality(t *testing.T) {
	testCases := []struct {
		a, b  Token
		equal bool
	}{
		{NewLetter('a'), NewLetter('a'), true},
		{NewLetter('a'), NewOther('a'), false},
		{NewLetter('a'), NewLetter('b'), false},
		{CS("foo"), CS("foo"), true},
		{CS("foo"), CSNS("foo", "x"), false},
		{NewSpace(), NewSpace(), true},
		{Active('~'), Active('~'), true},
		{Active('~'), NewOther('~'), false},
	}
	for i, testCase := range testCases {
		if (testCase.a == testCase.b) != testCase.equal {
			t.Errorf("test %d: %s == %s should be %t",
				i, testCase.a, testCase.b, testCase.equal)
		}
	}
}

func TestFromCategory(t *testing.T) {
	for _, cat := range []Category{CatEscape, CatIgnore, CatComment, CatInvalid} {
		if _, ok := FromCategory(cat, 'x'); ok {
			t.Errorf("category %s produced a token", cat)
		}
	}
	tok, ok := FromCategory(CatSpace, '\t')
	if !ok || tok != NewSpace() {
		t.Errorf("space category gave %v", tok)
	}
	tok, ok = FromCategory(CatActive, '~')
	if !ok || tok != Active('~') {
		t.Errorf("active category gave %v", tok)
	}
}

func TestListString(t *testing.T) {
	toks := List{CS("def"), CS("a"), LeftBrace.tok('{'), NewLetter('x'),
		RightBrace.tok('}'), CS("foo"), NewLetter('y'), CS("{")}
	expected := `\def\a{x}\foo y\{`
	if got := toks.String(); got != expected {
		t.Errorf("wrong formatting: got %q, expected %q", got, expected)
	}
}

func (k Kind) tok(r rune) Token {
	return Token{Kind: k, Char: r}
}

func TestTable(t *testing.T) {
	tab := NewPlainTable()
	testCases := []struct {
		r   rune
		cat Category
	}{
		{'\\', CatEscape},
		{'{', CatLeftBrace},
		{'a', CatLetter},
		{'Z', CatLetter},
		{'é', CatLetter},
		{'1', CatOther},
		{'%', CatComment},
		{'~', CatActive},
		{'\n', CatCr},
	}
	for _, testCase := range testCases {
		if got := tab.Catcode(testCase.r); got != testCase.cat {
			t.Errorf("catcode of %q: got %s, expected %s",
				testCase.r, got, testCase.cat)
		}
	}

	clone := tab.Clone()
	clone.Set('@', CatLetter)
	if tab.Catcode('@') != CatOther {
		t.Error("clone is not independent")
	}
}

func TestParseCategory(t *testing.T) {
	for _, in := range []string{"letter", " Letter ", "11"} {
		cat, err := ParseCategory(in)
		if err != nil || cat != CatLetter {
			t.Errorf("ParseCategory(%q) = %s, %v", in, cat, err)
		}
	}
	if _, err := ParseCategory("16"); err == nil {
		t.Error("category 16 accepted")
	}
}
