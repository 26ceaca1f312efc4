// scanner_test.go -
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

package scanner

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/seehuhn/extex/tex/token"
)

type plainTokenizer struct {
	*token.Table
}

func (plainTokenizer) Namespace() string { return "" }

func newTestScanner(text string) *Scanner {
	scan := New(plainTokenizer{token.NewPlainTable()})
	scan.Prepend([]byte(text), "test data")
	return scan
}

func readAll(t *testing.T, scan *Scanner) token.List {
	t.Helper()
	var res token.List
	for {
		tok, err := scan.GetToken()
		if err == io.EOF {
			return res
		} else if err != nil {
			t.Fatal(err)
		}
		res = append(res, tok)
	}
}

func TestScannerSimple(t *testing.T) {
	scan := New(plainTokenizer{token.NewPlainTable()})
	scan.Prepend([]byte("ng"), "end")
	scan.Prepend([]byte("testi"), "beginning")

	got := readAll(t, scan).String()
	if got != "testing" {
		t.Fatalf("expected %q, got %q", "testing", got)
	}
	if scan.Depth() != 0 {
		t.Error("streams left after end of input")
	}
}

func TestClassification(t *testing.T) {
	testCases := []struct {
		in  string
		out token.List
	}{
		{"a1", token.List{token.NewLetter('a'), token.NewOther('1')}},
		{"\\foo1", token.List{token.CS("foo"), token.NewOther('1')}},
		{"\\foo bar", token.List{token.CS("foo"), token.NewSpace(),
			token.NewLetter('b'), token.NewLetter('a'), token.NewLetter('r')}},
		{"\\2t", token.List{token.CS("2"), token.NewLetter('t')}},
		{"\\{}", token.List{token.CS("{"),
			{Kind: token.RightBrace, Char: '}'}}},
		{"a% comment\nb", token.List{token.NewLetter('a'), token.NewLetter('b')}},
		{"x\x00y", token.List{token.NewLetter('x'), token.NewLetter('y')}},
		{"~", token.List{token.Active('~')}},
		{"\\", token.List{token.CS("")}},
		{"^^41", token.List{token.NewLetter('A')}},
		{"^^M", token.List{{Kind: token.Cr, Char: '\r'}}},
		{"^^zz", token.List{token.NewOther(':'), token.NewLetter('z')}},
		{"^x", token.List{{Kind: token.SupMark, Char: '^'}, token.NewLetter('x')}},
		{"#&_$", token.List{{Kind: token.MacroParam, Char: '#'},
			{Kind: token.TabMark, Char: '&'}, {Kind: token.SubMark, Char: '_'},
			{Kind: token.MathShift, Char: '$'}}},
	}
	for i, testCase := range testCases {
		got := readAll(t, newTestScanner(testCase.in))
		if !got.Equal(testCase.out) {
			t.Errorf("test %d: %q gave %v, expected %v",
				i, testCase.in, got, testCase.out)
		}
	}
}

func TestSkipBlanksAfterControlWord(t *testing.T) {
	scan := New(plainTokenizer{token.NewPlainTable()})
	scan.SkipBlanksAfterControlWord = true
	scan.Prepend([]byte("\\foo  \n x\\ y"), "test data")
	expected := token.List{token.CS("foo"), token.NewLetter('x'),
		token.CS(" "), token.NewLetter('y')}
	got := readAll(t, scan)
	if !got.Equal(expected) {
		t.Errorf("got %v, expected %v", got, expected)
	}
}

func TestInvalidCharacter(t *testing.T) {
	scan := newTestScanner("a\x7fb")
	scan.GetToken()
	_, err := scan.GetToken()
	if !errors.Is(err, ErrInvalidCharacter) {
		t.Fatalf("wrong error %v", err)
	}
	tok, err := scan.GetToken()
	if err != nil || tok != token.NewLetter('b') {
		t.Errorf("reading did not continue after the invalid character")
	}
}

func TestPushBackOrder(t *testing.T) {
	toks := token.List{token.NewLetter('a'), token.CS("b"), token.NewOther('1')}
	src := NewStringStream("", "test")
	for i := len(toks) - 1; i >= 0; i-- {
		src.Put(toks[i])
	}
	tk := plainTokenizer{token.NewPlainTable()}
	for i, expected := range toks {
		tok, err := src.Get(tk)
		if err != nil {
			t.Fatal(err)
		}
		if tok != expected {
			t.Errorf("token %d: got %v, expected %v", i, tok, expected)
		}
	}
	if _, err := src.Get(tk); err != io.EOF {
		t.Error("expected end of input")
	}
}

func TestPushTokens(t *testing.T) {
	scan := New(plainTokenizer{token.NewPlainTable()})
	toks := token.List{token.NewLetter('x'), token.NewLetter('y')}
	scan.PushTokens(toks)
	scan.PushToken(token.NewOther('!'))
	got := readAll(t, scan).String()
	if got != "!xy" {
		t.Errorf("got %q", got)
	}
}

func TestSkipSpaces(t *testing.T) {
	scan := newTestScanner("   a b")
	scan.SkipSpaces()
	tok, _ := scan.GetToken()
	if tok != token.NewLetter('a') {
		t.Fatalf("spaces not skipped: %v", tok)
	}
	tok, _ = scan.GetToken()
	if tok != token.NewSpace() {
		t.Errorf("skip-space mode not disarmed: %v", tok)
	}
}

func TestLocator(t *testing.T) {
	scan := newTestScanner("a\nb\nc")
	for i := 0; i < 3; i++ {
		scan.GetToken()
	}
	loc := scan.Locator()
	if loc.Name != "test data" || loc.Line != 2 {
		t.Errorf("wrong locator %v", loc)
	}
}

func TestEveryEOF(t *testing.T) {
	dir := t.TempDir()
	fileName := filepath.Join(dir, "in.tex")
	err := os.WriteFile(fileName, []byte("ab"), 0644)
	if err != nil {
		t.Fatal(err)
	}

	scan := New(plainTokenizer{token.NewPlainTable()})
	scan.EveryEOF = token.List{token.NewOther('!')}
	scan.Prepend([]byte("z"), "after")
	err = scan.Include(fileName)
	if err != nil {
		t.Fatal(err)
	}
	if scan.BaseDir != dir {
		t.Errorf("wrong base directory %q", scan.BaseDir)
	}
	got := readAll(t, scan).String()
	if got != "ab!z" {
		t.Errorf("got %q, expected %q", got, "ab!z")
	}
}

func TestIncludeAddsExtension(t *testing.T) {
	dir := t.TempDir()
	err := os.WriteFile(filepath.Join(dir, "doc.tex"), []byte("x"), 0644)
	if err != nil {
		t.Fatal(err)
	}
	scan := New(plainTokenizer{token.NewPlainTable()})
	scan.BaseDir = dir
	err = scan.Include("doc")
	if err != nil {
		t.Fatal(err)
	}
	if got := readAll(t, scan).String(); got != "x" {
		t.Errorf("got %q", got)
	}
}

func TestIncludeRejectsBinary(t *testing.T) {
	dir := t.TempDir()
	fileName := filepath.Join(dir, "img.tex")
	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01")
	err := os.WriteFile(fileName, png, 0644)
	if err != nil {
		t.Fatal(err)
	}
	scan := New(plainTokenizer{token.NewPlainTable()})
	err = scan.Include(fileName)
	if !errors.Is(err, ErrNotText) {
		t.Errorf("binary input accepted, err = %v", err)
	}
}

func TestObservers(t *testing.T) {
	scan := newTestScanner("a")
	var events []Event
	scan.Observe(func(ev Event, tok token.Token, src *Stream) {
		events = append(events, ev)
	})
	scan.PushToken(token.NewLetter('b'))
	readAll(t, scan)
	expected := []Event{EventPush, EventPop, EventPop, EventClose, EventEOF}
	if len(events) != len(expected) {
		t.Fatalf("got events %v, expected %v", events, expected)
	}
	for i := range events {
		if events[i] != expected[i] {
			t.Errorf("event %d: got %s, expected %s", i, events[i], expected[i])
		}
	}
}

func TestScannerError(t *testing.T) {
	scan := New(plainTokenizer{token.NewPlainTable()})
	scan.Prepend([]byte("\nline after include\nend\n"), "level1")
	scan.Prepend([]byte("line 1\nline 2\nx"), "level2")
	for i := 0; i < 15; i++ {
		scan.GetToken()
	}
	err := scan.MakeError(ErrMissingNumber, "")
	loc := err.Location()
	if loc.Name != "level2" || loc.Line != 3 {
		t.Errorf("wrong error location in %q", err)
	}
	if !errors.Is(err, ErrMissingNumber) {
		t.Error("error does not wrap its cause")
	}
	if len(err.stack) != 2 || err.stack[1].Name != "level1" {
		t.Error("include stack not recorded")
	}
}
