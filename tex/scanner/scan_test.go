// scan_test.go -
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
	"testing"
)

func TestScanInteger(t *testing.T) {
	testCases := []struct {
		in   string
		val  int64
		rest string
	}{
		{"123 ", 123, ""},
		{"123  ", 123, " "},
		{"123x", 123, "x"},
		{"-45", -45, ""},
		{"- -+ 7", 7, ""},
		{"  42", 42, ""},
		{"'17", 15, ""},
		{"'178", 15, "8"},
		{"\"1F", 31, ""},
		{"\"1f ", 31, ""},
		{"\"FFx", 255, "x"},
		{"`A", 65, ""},
		{"`A ", 65, " "},
		{"`\\A", 65, ""},
		{"`\\%", 37, ""},
		{"0012", 12, ""},
	}
	for i, testCase := range testCases {
		scan := newTestScanner(testCase.in)
		val, err := scan.ScanInteger()
		if err != nil {
			t.Errorf("test %d: %q gave error %v", i, testCase.in, err)
			continue
		}
		if val != testCase.val {
			t.Errorf("test %d: %q gave %d, expected %d",
				i, testCase.in, val, testCase.val)
		}
		rest := readAll(t, scan).String()
		if rest != testCase.rest {
			t.Errorf("test %d: %q left %q, expected %q",
				i, testCase.in, rest, testCase.rest)
		}
	}
}

func TestScanIntegerErrors(t *testing.T) {
	testCases := []struct {
		in   string
		err  error
		rest string
	}{
		{"x", ErrMissingNumber, "x"},
		{"-y", ErrMissingNumber, "y"},
		{"'9", ErrMissingNumber, "9"},
		{"\"g", ErrMissingNumber, "g"},
		{"", ErrMissingNumber, ""},
		{"\\relax", ErrMissingNumber, "\\relax"},
		{"99999999999", ErrNumberTooBig, ""},
		{"`\\ab", ErrInvalidCharacterCode, ""},
	}
	for i, testCase := range testCases {
		scan := newTestScanner(testCase.in)
		_, err := scan.ScanInteger()
		if !errors.Is(err, testCase.err) {
			t.Errorf("test %d: %q gave error %v, expected %v",
				i, testCase.in, err, testCase.err)
			continue
		}
		rest := readAll(t, scan).String()
		if rest != testCase.rest {
			t.Errorf("test %d: %q left %q, expected %q",
				i, testCase.in, rest, testCase.rest)
		}
	}
}

func TestScanCharacterCode(t *testing.T) {
	scan := newTestScanner("65 -1")
	r, err := scan.ScanCharacterCode()
	if err != nil || r != 'A' {
		t.Errorf("got %q, %v", r, err)
	}
	_, err = scan.ScanCharacterCode()
	if !errors.Is(err, ErrInvalidCharacterCode) {
		t.Errorf("negative code accepted, err = %v", err)
	}
}

func TestScanKeyword(t *testing.T) {
	testCases := []struct {
		in    string
		word  string
		found bool
		rest  string
	}{
		{"by 5", "by", true, "5"},
		{"By5", "by", true, "5"},
		{"  by  5", "by", true, " 5"},
		{"xyz", "by", false, "xyz"},
		{"b", "by", false, "b"},
		{" bx", "by", false, " bx"},
		{"b{", "by", false, "b{"},
		{"", "by", false, ""},
		{"pt", "", true, "pt"},
	}
	for i, testCase := range testCases {
		scan := newTestScanner(testCase.in)
		found, err := scan.ScanKeyword(testCase.word)
		if err != nil {
			t.Errorf("test %d: %v", i, err)
			continue
		}
		if found != testCase.found {
			t.Errorf("test %d: %q found=%t", i, testCase.in, found)
		}
		rest := readAll(t, scan).String()
		if rest != testCase.rest {
			t.Errorf("test %d: %q left %q, expected %q",
				i, testCase.in, rest, testCase.rest)
		}
	}
}

func TestScanOptionalEquals(t *testing.T) {
	for i, in := range []string{" = 5", "5", "  5", "=5"} {
		scan := newTestScanner(in)
		err := scan.ScanOptionalEquals()
		if err != nil {
			t.Fatal(err)
		}
		n, err := scan.ScanInteger()
		if err != nil || n != 5 {
			t.Errorf("test %d: %q gave %d, %v", i, in, n, err)
		}
	}
}

func TestGetTokens(t *testing.T) {
	scan := newTestScanner(" {a{b}c}d")
	toks, err := scan.GetTokens()
	if err != nil {
		t.Fatal(err)
	}
	if toks.String() != "a{b}c" {
		t.Errorf("got %q", toks.String())
	}
	if rest := readAll(t, scan).String(); rest != "d" {
		t.Errorf("left %q", rest)
	}

	scan = newTestScanner("x")
	_, err = scan.GetTokens()
	if !errors.Is(err, ErrMissingLeftBrace) {
		t.Errorf("wrong error %v", err)
	}
}
