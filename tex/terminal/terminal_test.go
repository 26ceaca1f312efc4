// terminal_test.go -
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

package terminal

import (
	"io"
	"strings"
	"testing"

	"github.com/peterh/liner"
)

type fakeLines struct {
	lines   []string
	prompts []string
	last    error
}

func (f *fakeLines) Prompt(prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	if len(f.lines) == 0 {
		return "", f.last
	}
	line := f.lines[0]
	f.lines = f.lines[1:]
	return line, nil
}

func TestBalance(t *testing.T) {
	testCases := []struct {
		line  string
		start int
		depth int
	}{
		{"", 0, 0},
		{"{a}", 0, 0},
		{"\\def\\x{", 0, 1},
		{"{{", 1, 3},
		{"}", 0, 0},
		{"}}", 1, 0},
		{"\\{", 0, 0},
		{"\\\\{", 0, 1},
		{"a % {", 0, 0},
		{"\\%{", 0, 1},
	}
	for i, testCase := range testCases {
		depth := Balance(testCase.line, testCase.start)
		if depth != testCase.depth {
			t.Errorf("test %d: %q gave %d, expected %d",
				i, testCase.line, depth, testCase.depth)
		}
	}
}

func TestReader(t *testing.T) {
	src := &fakeLines{
		lines: []string{"\\def\\x{", "ab}", "", "\\x"},
		last:  io.EOF,
	}
	r := NewReader(src, PromptMain, PromptCont)
	var history []string
	r.OnLine = func(line string) { history = append(history, line) }

	data, err := io.ReadAll(r)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "\\def\\x{\nab}\n\n\\x\n" {
		t.Errorf("got %q", data)
	}
	expected := "* . * * *"
	if got := strings.Join(src.prompts, " "); got != expected {
		t.Errorf("prompts %q, expected %q", got, expected)
	}
	if len(history) != 3 {
		t.Errorf("history %q", history)
	}
	if r.Depth() != 0 {
		t.Errorf("depth %d", r.Depth())
	}
}

func TestReaderAborted(t *testing.T) {
	src := &fakeLines{lines: []string{"a{"}, last: liner.ErrPromptAborted}
	r := NewReader(src, PromptMain, PromptCont)
	data, err := io.ReadAll(r)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "a{\n" {
		t.Errorf("got %q", data)
	}
	if r.Depth() != 1 {
		t.Errorf("depth %d", r.Depth())
	}

	n, err := r.Read(make([]byte, 10))
	if n != 0 || err != io.EOF {
		t.Errorf("read after end gave %d, %v", n, err)
	}
}

func TestReaderSmallBuffer(t *testing.T) {
	src := &fakeLines{lines: []string{"hello"}, last: io.EOF}
	r := NewReader(src, PromptMain, PromptCont)
	p := make([]byte, 2)
	var got []byte
	for {
		n, err := r.Read(p)
		got = append(got, p[:n]...)
		if err == io.EOF {
			break
		} else if err != nil {
			t.Fatal(err)
		}
	}
	if string(got) != "hello\n" {
		t.Errorf("got %q", got)
	}
}
