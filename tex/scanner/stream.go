// stream.go -
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
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/seehuhn/extex/tex/token"
)

// A Tokenizer supplies the information needed to turn characters into
// tokens: the category code of every character and the namespace
// which new control sequences belong to.
type Tokenizer interface {
	token.Classifier
	Namespace() string
}

// Locator describes a position in the input.
type Locator struct {
	Name   string
	Line   int
	Column int
}

func (loc Locator) String() string {
	if loc.Name == "" {
		return "<unknown>"
	}
	return fmt.Sprintf("%s:%d", loc.Name, loc.Line)
}

// Stream converts the characters of a single input source into
// tokens.  Tokens can be pushed back using .Put(); these are returned
// by .Get() before any further characters are read.
type Stream struct {
	// SkipBlanksAfterControlWord, if set, causes spaces and line ends
	// following a multi-letter control sequence name to be discarded,
	// as TeX does.
	SkipBlanksAfterControlWord bool

	name   string
	rd     io.RuneReader
	closer io.Closer
	isFile bool

	line, col   int
	prevLineLen int
	ahead       []rune
	pushed      token.List
	skipping    bool
}

// NewStringStream returns a stream which reads the given text.  The
// argument `name` identifies the stream in error messages.
func NewStringStream(text, name string) *Stream {
	return &Stream{
		name: name,
		rd:   strings.NewReader(text),
	}
}

// NewFileStream returns a stream which reads from r.  The stream is
// marked as file-backed, and r is closed once the stream is
// discarded.
func NewFileStream(r io.ReadCloser, name string) *Stream {
	return &Stream{
		name:   name,
		rd:     bufio.NewReader(r),
		closer: r,
		isFile: true,
	}
}

// IsFile reports whether the stream is backed by a file.
func (s *Stream) IsFile() bool {
	return s.isFile
}

// Name returns the name used for the stream in error messages.
func (s *Stream) Name() string {
	return s.name
}

// Locator returns the current position inside the stream.
func (s *Stream) Locator() Locator {
	return Locator{Name: s.name, Line: s.line + 1, Column: s.col}
}

// Close releases the underlying file, if any.
func (s *Stream) Close() error {
	if s.closer == nil {
		return nil
	}
	err := s.closer.Close()
	s.closer = nil
	return err
}

// Put pushes a token back into the stream.  The token will be
// returned by the next call to .Get().
func (s *Stream) Put(tok token.Token) {
	s.pushed = append(s.pushed, tok)
}

// Pending returns the number of pushed-back tokens not yet read.
func (s *Stream) Pending() int {
	return len(s.pushed)
}

// Get returns the next token.  At the end of input, io.EOF is
// returned.
func (s *Stream) Get(tk Tokenizer) (token.Token, error) {
	if n := len(s.pushed); n > 0 {
		tok := s.pushed[n-1]
		s.pushed = s.pushed[:n-1]
		return tok, nil
	}

	for {
		r, err := s.getChar(tk)
		if err != nil {
			return token.Token{}, err
		}

		cat := tk.Catcode(r)
		switch cat {
		case token.CatComment:
			err = s.skipLine()
			if err != nil && err != io.EOF {
				return token.Token{}, err
			}
			continue
		case token.CatIgnore:
			continue
		case token.CatEscape:
			return s.readControlSequence(tk)
		case token.CatInvalid:
			return token.Token{}, &charError{err: ErrInvalidCharacter, r: r}
		case token.CatSpace, token.CatCr:
			if s.skipping {
				continue
			}
		}
		s.skipping = false

		tok, _ := token.FromCategory(cat, r)
		return tok, nil
	}
}

func (s *Stream) readControlSequence(tk Tokenizer) (token.Token, error) {
	ns := tk.Namespace()
	s.skipping = false

	r, err := s.getChar(tk)
	if err == io.EOF {
		return token.CSNS("", ns), nil
	} else if err != nil {
		return token.Token{}, err
	}
	cat := tk.Catcode(r)
	if cat != token.CatLetter {
		if cat == token.CatSpace {
			s.skipping = s.SkipBlanksAfterControlWord
		}
		return token.CSNS(string(r), ns), nil
	}

	name := []rune{r}
	for {
		r, err = s.getChar(tk)
		if err == io.EOF {
			break
		} else if err != nil {
			return token.Token{}, err
		}
		if tk.Catcode(r) != token.CatLetter {
			s.unreadRune(r)
			break
		}
		name = append(name, r)
	}
	s.skipping = s.SkipBlanksAfterControlWord
	return token.CSNS(string(name), ns), nil
}

// getChar reads one character, decoding TeX's ^^ notation.
func (s *Stream) getChar(tk Tokenizer) (rune, error) {
	r, err := s.readRune()
	if err != nil || tk.Catcode(r) != token.CatSupMark {
		return r, err
	}

	r2, err := s.readRune()
	if err == io.EOF {
		return r, nil
	} else if err != nil {
		return 0, err
	}
	if r2 != r {
		s.unreadRune(r2)
		return r, nil
	}

	r3, err := s.readRune()
	if err == io.EOF {
		s.unreadRune(r2)
		return r, nil
	} else if err != nil {
		return 0, err
	}
	if h3, ok := lowerHex(r3); ok {
		r4, err := s.readRune()
		if err == nil {
			if h4, ok := lowerHex(r4); ok {
				return h3<<4 | h4, nil
			}
			s.unreadRune(r4)
		} else if err != io.EOF {
			return 0, err
		}
	}
	if r3 < 0x80 {
		if r3 < 0x40 {
			return r3 + 0x40, nil
		}
		return r3 - 0x40, nil
	}
	s.unreadRune(r3)
	s.unreadRune(r2)
	return r, nil
}

func lowerHex(r rune) (rune, bool) {
	switch {
	case '0' <= r && r <= '9':
		return r - '0', true
	case 'a' <= r && r <= 'f':
		return r - 'a' + 10, true
	}
	return 0, false
}

func (s *Stream) skipLine() error {
	for {
		r, err := s.readRune()
		if err != nil {
			return err
		}
		if r == '\n' {
			return nil
		}
	}
}

func (s *Stream) readRune() (rune, error) {
	var r rune
	if n := len(s.ahead); n > 0 {
		r = s.ahead[n-1]
		s.ahead = s.ahead[:n-1]
	} else {
		var err error
		r, _, err = s.rd.ReadRune()
		if err != nil {
			return 0, err
		}
	}
	if r == '\n' {
		s.prevLineLen = s.col
		s.line++
		s.col = 0
	} else {
		s.col++
	}
	return r, nil
}

func (s *Stream) unreadRune(r rune) {
	s.ahead = append(s.ahead, r)
	if r == '\n' {
		s.line--
		s.col = s.prevLineLen
	} else {
		s.col--
	}
}
