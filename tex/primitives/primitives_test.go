// primitives_test.go -
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

package primitives_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/seehuhn/extex/tex/interp"
	"github.com/seehuhn/extex/tex/primitives"
	"github.com/seehuhn/extex/tex/symtab"
	"github.com/seehuhn/extex/tex/token"
	"github.com/seehuhn/extex/tex/typeset"
)

// infoHandler collects the messages of all info level log records.
type infoHandler struct {
	msgs *[]string
}

func (h infoHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h infoHandler) Handle(_ context.Context, r slog.Record) error {
	if r.Level == slog.LevelInfo {
		*h.msgs = append(*h.msgs, r.Message)
	}
	return nil
}

func (h infoHandler) WithAttrs([]slog.Attr) slog.Handler { return h }

func (h infoHandler) WithGroup(string) slog.Handler { return h }

type result struct {
	e    *interp.Engine
	rec  *typeset.Recorder
	msgs []string
	err  error
}

func runTeX(t *testing.T, input string) *result {
	t.Helper()
	tab := symtab.New(nil)
	primitives.Install(tab)
	res := &result{rec: &typeset.Recorder{}}
	log := slog.New(infoHandler{&res.msgs})
	e, err := interp.New(tab, res.rec, interp.WithLogger(log))
	if err != nil {
		t.Fatal(err)
	}
	e.SkipBlanksAfterControlWord = true
	e.Prepend([]byte(input), "test")
	res.e = e
	res.err = e.Run()
	return res
}

func TestPrimitives(t *testing.T) {
	testCases := []struct {
		in, out string
	}{
		{"\\def\\a{xy}\\a\\a", "xyxy"},
		{"\\def\\a#1#2{#2#1}\\a bc", "cb"},
		{"\\def\\a{\\b}\\def\\b{c}\\a", "c"},
		{"\\def\\a{x}\\edef\\b{\\a\\a}\\def\\a{z}\\b", "xx"},
		{"\\protected\\def\\p{P}\\edef\\e{\\p}\\def\\p{Q}\\e", "Q"},
		{"\\long\\def\\a#1{[#1]}\\a{x\\par y}", "[x¶y]"},
		{"\\def\\a{x}\\let\\b=\\a\\def\\a{z}\\b\\a", "xz"},
		{"\\let\\b=q\\b", "q"},
		{"\\let\\b = q\\b", "q"},
		{"\\global\\message{m}x", "x"},

		// groups
		{"{\\def\\a{in}}\\ifx\\a\\undefined u\\else d\\fi", "{}u"},
		{"{\\global\\def\\a{g}}\\a", "{}g"},
		{"{\\gdef\\a{g}}\\a", "{}g"},
		{"\\begingroup\\def\\a{i}\\endgroup\\def\\b{o}\\ifx\\a\\undefined\\b\\fi", "o"},

		// registers
		{"\\count1=5 {\\count1=7 \\the\\count1}\\the\\count1", "{7}5"},
		{"{\\global\\count1=3 }\\the\\count1", "{}3"},
		{"\\countdef\\c=2 \\c=10 \\advance\\c by 5 \\multiply\\c 2 \\divide\\c by 3 \\the\\c", "10"},
		{"\\count3=-7 \\divide\\count3 by 2 \\the\\count3", "-3"},
		{"\\def\\b{by}\\count1=5 \\advance\\count1 \\b 3 \\the\\count1", "8"},
		{"\\def\\b{b}\\count1=6 \\divide\\count1 \\b y 2 \\the\\count1", "3"},
		{"\\catcode`\\@=11 \\def\\a@b{z}\\a@b", "z"},
		{"\\the\\catcode`\\{", "1"},

		// expansion
		{"\\number -0012 x", "-12x"},
		{"\\string\\foo", "\\foo"},
		{"\\expandafter\\def\\csname ab\\endcsname{q}\\ab", "q"},
		{"\\csname relax\\endcsname x", "x"},
		{"\\def\\a{b}\\expandafter\\def\\expandafter\\c\\expandafter{\\a}\\def\\a{z}\\c", "b"},
		{"\\expandafter\\ifx\\csname zz\\endcsname\\relax r\\fi", "r"},

		// conditionals
		{"\\ifnum 3<5 a\\else b\\fi", "a"},
		{"\\ifnum 5<3 a\\else b\\fi", "b"},
		{"\\ifnum 4=4 a\\fi\\ifnum 4>4 b\\fi", "a"},
		{"\\ifnum1=2 \\ifnum1=1 x\\else y\\fi z\\else w\\fi", "w"},
		{"\\ifnum1=1 \\ifnum2>1 x\\else y\\fi z\\fi", "xz"},
		{"\\ifodd 3 o\\fi\\ifodd 4 e\\fi", "o"},
		{"\\iftrue t\\else f\\fi\\iffalse t\\else f\\fi", "tf"},
		{"\\def\\a{x}\\def\\b{x}\\ifx\\a\\b s\\else n\\fi", "s"},
		{"\\def\\a{x}\\long\\def\\b{x}\\ifx\\a\\b s\\else n\\fi", "n"},
		{"\\ifx ab s\\else n\\fi", "n"},
		{"\\ifx aa s\\fi", "s"},
		{"\\count1=2 \\ifnum\\count1>1 big\\fi", "big"},
	}
	for i, testCase := range testCases {
		res := runTeX(t, testCase.in)
		if res.err != nil {
			t.Errorf("test %d: %q gave error %v", i, testCase.in, res.err)
			continue
		}
		if errs := res.e.Errors(); len(errs) > 0 {
			t.Errorf("test %d: %q gave errors %v", i, testCase.in, errs)
			continue
		}
		if out := res.rec.String(); out != testCase.out {
			t.Errorf("test %d: %q gave %q, expected %q",
				i, testCase.in, out, testCase.out)
		}
	}
}

func TestPrimitiveErrors(t *testing.T) {
	testCases := []struct {
		in  string
		err error
	}{
		{"\\global\\relax x", interp.ErrUnusedPrefix},
		{"\\long x", interp.ErrUnusedPrefix},
		{"\\global\\show\\relax", interp.ErrUnusedPrefix},
		{"\\advance x by 1", primitives.ErrNotAssignable},
		{"\\count1=5 \\divide\\count1 by 0", primitives.ErrArithmeticOverflow},
		{"\\count1=2000000000 \\multiply\\count1 by 2", primitives.ErrArithmeticOverflow},
		{"\\count40000=1", interp.ErrIllegalRegisterNumber},
		{"\\catcode`a=16", primitives.ErrInvalidCatcode},
		{"\\fi", interp.ErrExtraConditional},
		{"\\else", interp.ErrExtraConditional},
		{"\\endgroup", interp.ErrExtraGroupClose},
		{"\\begingroup}", interp.ErrExtraGroupClose},
		{"\\csname a\\relax\\endcsname", primitives.ErrMissingEndcsname},
		{"\\endcsname", interp.ErrCantUseHere},
		{"\\ifnum 1?2 a\\fi", primitives.ErrMissingRelation},
		{"\\the x", primitives.ErrNoInternalQuantity},
		{"\\undefinedcs", interp.ErrUndefinedControlSequence},
		{"\\def x{}", interp.ErrMissingControlSequence},
		{"\\def\\a#2{}", interp.ErrIllegalParameterNumber},
		{"\\def\\a#1{[#1]}\\a{x\\par y}", interp.ErrRunawayArgument},
		{"\\def\\a{\\a x}\\count1=\\a", interp.ErrRecursionTooDeep},
		{"\\input", interp.ErrCantUseHere},
		{"\\input nonexistent-file-for-testing ", os.ErrNotExist},
	}
	for i, testCase := range testCases {
		res := runTeX(t, testCase.in)
		errs := res.e.Errors()
		if len(errs) == 0 {
			t.Errorf("test %d: %q gave no error", i, testCase.in)
			continue
		}
		if !errors.Is(errs[0], testCase.err) {
			t.Errorf("test %d: %q gave error %v, expected %v",
				i, testCase.in, errs[0], testCase.err)
		}
	}
}

func TestUnusedPrefixDetail(t *testing.T) {
	res := runTeX(t, "\\global\\relax x")
	errs := res.e.Errors()
	if len(errs) != 1 {
		t.Fatalf("got %d errors", len(errs))
	}
	var ie *interp.Error
	if !errors.As(errs[0], &ie) || ie.Detail != "\\global" {
		t.Errorf("wrong error %v", errs[0])
	}
	if out := res.rec.String(); out != "x" {
		t.Errorf("got %q", out)
	}
}

func TestMacroErrorToken(t *testing.T) {
	testCases := []struct {
		in  string
		tok token.Token
	}{
		{"\\def\\a x{}\\a y", token.CS("a")},
		{"\\def~x{}~y", token.Active('~')},
		{"\\def\\~x{}\\~y", token.CS("~")},
	}
	for i, testCase := range testCases {
		res := runTeX(t, testCase.in)
		errs := res.e.Errors()
		if len(errs) == 0 {
			t.Errorf("test %d: %q gave no error", i, testCase.in)
			continue
		}
		var ie *interp.Error
		if !errors.As(errs[0], &ie) || !errors.Is(ie, interp.ErrUseDoesNotMatch) {
			t.Errorf("test %d: wrong error %v", i, errs[0])
			continue
		}
		if ie.Token != testCase.tok {
			t.Errorf("test %d: error for %s, expected %s",
				i, ie.Token, testCase.tok)
		}
	}
}

func TestUnbalancedConditional(t *testing.T) {
	res := runTeX(t, "\\iffalse a")
	var ue *interp.UnbalancedConditionalError
	if !errors.As(res.err, &ue) {
		t.Fatalf("wrong error %v", res.err)
	}
	if ue.Cond.Primitive() != "iffalse" {
		t.Errorf("wrong conditional %s", ue.Cond)
	}
}

func TestInput(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "sub.tex")
	err := os.WriteFile(name, []byte("\\def\\s{S}ab"), 0o644)
	if err != nil {
		t.Fatal(err)
	}

	res := runTeX(t, "\\everyeof{!}\\input "+name+" z\\s")
	if res.err != nil {
		t.Fatal(res.err)
	}
	if errs := res.e.Errors(); len(errs) > 0 {
		t.Fatal(errs)
	}
	if out := res.rec.String(); out != "ab!zS" {
		t.Errorf("got %q", out)
	}
}

func TestMessageAndShow(t *testing.T) {
	in := "\\def\\a{ab}\\message{x\\a y}" +
		"\\show\\a\\show q" +
		"\\long\\protected\\def\\b#1.{}\\show\\b" +
		"\\show\\relax\\show\\nothing"
	res := runTeX(t, in)
	if res.err != nil {
		t.Fatal(res.err)
	}
	expected := []string{
		"xaby",
		"> \\a=macro:->ab.",
		"> the letter q.",
		"> \\b=\\protected \\long macro:#1.->.",
		"> \\relax=\\relax.",
		"> \\nothing=undefined.",
	}
	if len(res.msgs) != len(expected) {
		t.Fatalf("got messages %q", res.msgs)
	}
	for i, msg := range expected {
		if res.msgs[i] != msg {
			t.Errorf("message %d: got %q, expected %q", i, res.msgs[i], msg)
		}
	}
}

func TestMeaning(t *testing.T) {
	tab := symtab.New(nil)
	primitives.Install(tab)
	testCases := []struct {
		tok     token.Token
		meaning string
	}{
		{token.CS("relax"), "\\relax"},
		{token.CS("count"), "\\count"},
		{token.CS("ifnum"), "\\ifnum"},
		{token.CS("nonsense"), "undefined"},
		{token.NewLetter('a'), "letter a"},
	}
	for i, testCase := range testCases {
		m := primitives.Meaning(tab, testCase.tok)
		if m != testCase.meaning {
			t.Errorf("test %d: got %q, expected %q", i, m, testCase.meaning)
		}
	}
}
