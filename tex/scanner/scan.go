// scan.go -
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
	"io"
	"unicode"
	"unicode/utf8"

	"github.com/seehuhn/extex/tex/token"
)

// MaxInteger is the largest absolute value of an integer.
const MaxInteger = 1<<31 - 1

// MaxCharCode is the largest valid character code.
const MaxCharCode = unicode.MaxRune

// scanToken returns the next token, expanded if an expander is
// installed.
func (scan *Scanner) scanToken() (token.Token, error) {
	tok, err := scan.GetToken()
	if err != nil {
		return tok, err
	}
	return scan.expand(tok)
}

func (scan *Scanner) expand(tok token.Token) (token.Token, error) {
	if scan.expander == nil || !tok.IsCode() {
		return tok, nil
	}
	return scan.expander.Expand(tok)
}

func (scan *Scanner) missingNumber(err error) error {
	if err == nil || err == io.EOF {
		return scan.MakeError(ErrMissingNumber, "")
	}
	return err
}

// ScanInteger reads an integer, starting with the next non-space
// token.
func (scan *Scanner) ScanInteger() (int64, error) {
	tok, err := scan.GetNonSpace()
	if err != nil {
		return 0, scan.missingNumber(err)
	}
	return scan.ScanNumber(tok)
}

// ScanNumber reads an integer which starts with the token first.
// Leading signs are allowed.  The number can be given in decimal, in
// octal after a leading ', in hexadecimal after a leading ", or as a
// character code after a leading `.  After a sequence of digits, one
// space is consumed.
func (scan *Scanner) ScanNumber(first token.Token) (int64, error) {
	neg := false
	tok, err := scan.expand(first)
loop:
	for err == nil {
		switch {
		case tok.Is(token.Other, '-'):
			neg = !neg
		case tok.Is(token.Other, '+'), tok.Kind == token.Space:
		default:
			break loop
		}
		tok, err = scan.scanToken()
	}
	if err != nil {
		return 0, scan.missingNumber(err)
	}

	n, err := scan.scanUnsigned(tok)
	if neg {
		n = -n
	}
	return n, err
}

func (scan *Scanner) scanUnsigned(tok token.Token) (int64, error) {
	if tok.IsCode() {
		if scan.expander != nil {
			n, ok, err := scan.expander.IntegerValue(tok)
			if err != nil {
				return 0, err
			} else if ok {
				return n, nil
			}
		}
		scan.PushToken(tok)
		return 0, scan.MakeError(ErrMissingNumber, "")
	}

	switch {
	case tok.IsDigit():
		return scan.scanDigits(10, int64(tok.Char-'0'))
	case tok.Is(token.Other, '\''):
		return scan.scanRadix(8)
	case tok.Is(token.Other, '"'):
		return scan.scanRadix(16)
	case tok.Is(token.Other, '`'):
		return scan.scanAlphabetic()
	}
	scan.PushToken(tok)
	return 0, scan.MakeError(ErrMissingNumber, "")
}

func digitValue(tok token.Token, base int) (int64, bool) {
	if tok.Kind != token.Other && tok.Kind != token.Letter {
		return 0, false
	}
	c := tok.Char
	var d int64
	switch {
	case '0' <= c && c <= '9' && tok.Kind == token.Other:
		d = int64(c - '0')
	case 'a' <= c && c <= 'f':
		d = int64(c-'a') + 10
	case 'A' <= c && c <= 'F':
		d = int64(c-'A') + 10
	default:
		return 0, false
	}
	if d >= int64(base) {
		return 0, false
	}
	return d, true
}

// scanRadix reads the digits after a ' or " prefix.  At least one
// digit is required.
func (scan *Scanner) scanRadix(base int) (int64, error) {
	tok, err := scan.scanToken()
	if err != nil {
		return 0, scan.missingNumber(err)
	}
	d, ok := digitValue(tok, base)
	if !ok {
		scan.PushToken(tok)
		return 0, scan.MakeError(ErrMissingNumber, "")
	}
	return scan.scanDigits(base, d)
}

func (scan *Scanner) scanDigits(base int, n int64) (int64, error) {
	tooBig := false
	for {
		tok, err := scan.scanToken()
		if err == io.EOF {
			break
		} else if err != nil {
			return 0, err
		}
		d, ok := digitValue(tok, base)
		if !ok {
			scan.PushToken(tok)
			break
		}
		if !tooBig {
			n = n*int64(base) + d
			if n > MaxInteger {
				tooBig = true
			}
		}
	}

	err := scan.skipOneSpace()
	if err != nil {
		return 0, err
	}
	if tooBig {
		return MaxInteger, scan.MakeError(ErrNumberTooBig, "")
	}
	return n, nil
}

func (scan *Scanner) scanAlphabetic() (int64, error) {
	tok, err := scan.GetToken()
	if err != nil {
		return 0, scan.missingNumber(err)
	}
	switch tok.Kind {
	case token.ControlSequence:
		r, size := utf8.DecodeRuneInString(tok.Name)
		if size == 0 || size != len(tok.Name) {
			return 0, scan.MakeError(ErrInvalidCharacterCode,
				"improper alphabetic constant "+tok.String())
		}
		return int64(r), nil
	default:
		return int64(tok.Char), nil
	}
}

// skipOneSpace consumes the next token if it is a space.
func (scan *Scanner) skipOneSpace() error {
	tok, err := scan.scanToken()
	if err == io.EOF {
		return nil
	} else if err != nil {
		return err
	}
	if tok.Kind != token.Space {
		scan.PushToken(tok)
	}
	return nil
}

// ScanCharacterCode reads a number and checks that it is a valid
// character code.
func (scan *Scanner) ScanCharacterCode() (rune, error) {
	n, err := scan.ScanInteger()
	if err != nil {
		return 0, err
	}
	if n < 0 || n > MaxCharCode {
		return 0, scan.MakeError(ErrInvalidCharacterCode, "bad character code")
	}
	return rune(n), nil
}

// ScanKeyword tries to match the given keyword against the upcoming
// letter and other tokens, ignoring case.  Leading spaces are skipped.
// If the keyword is found, it is consumed together with one optional
// space.  Otherwise, all tokens read are returned to the input and
// the method returns false.  Control sequences are expanded while
// the keyword is read.
func (scan *Scanner) ScanKeyword(word string) (bool, error) {
	if word == "" {
		return true, nil
	}

	var seen token.List
	restore := func(err error) (bool, error) {
		scan.PushTokens(seen)
		if err == io.EOF {
			err = nil
		}
		return false, err
	}

	tok, err := scan.scanToken()
	for err == nil && tok.Kind == token.Space {
		seen = append(seen, tok)
		tok, err = scan.scanToken()
	}
	for i, c := range word {
		if i > 0 {
			tok, err = scan.scanToken()
		}
		if err != nil {
			return restore(err)
		}
		seen = append(seen, tok)
		if tok.Kind != token.Letter && tok.Kind != token.Other ||
			unicode.ToLower(tok.Char) != unicode.ToLower(c) {
			return restore(nil)
		}
	}

	tok, err = scan.scanToken()
	if err == nil && tok.Kind != token.Space {
		scan.PushToken(tok)
	} else if err != nil && err != io.EOF {
		return false, err
	}
	return true, nil
}

// ScanOptionalEquals skips spaces followed by an optional "=" sign.
func (scan *Scanner) ScanOptionalEquals() error {
	tok, err := scan.GetNonSpace()
	if err == io.EOF {
		return nil
	} else if err != nil {
		return err
	}
	if !tok.Is(token.Other, '=') {
		scan.PushToken(tok)
	}
	return nil
}

// GetTokens reads a balanced group of tokens, without expansion.  The
// group must start with a left brace; the enclosing braces are not
// included in the result.
func (scan *Scanner) GetTokens() (token.List, error) {
	tok, err := scan.GetNonSpace()
	if err == io.EOF {
		return nil, scan.MakeError(io.ErrUnexpectedEOF, "file ended while scanning a group")
	} else if err != nil {
		return nil, err
	}
	if tok.Kind != token.LeftBrace {
		scan.PushToken(tok)
		return nil, scan.MakeError(ErrMissingLeftBrace, "")
	}
	return scan.GetBalanced()
}

// GetBalanced reads tokens up to the right brace matching an already
// consumed left brace.  The final right brace is consumed but not
// included in the result.
func (scan *Scanner) GetBalanced() (token.List, error) {
	var res token.List
	balance := 1
	for {
		tok, err := scan.GetToken()
		if err == io.EOF {
			return nil, scan.MakeError(io.ErrUnexpectedEOF, "file ended while scanning a group")
		} else if err != nil {
			return nil, err
		}
		switch tok.Kind {
		case token.LeftBrace:
			balance++
		case token.RightBrace:
			balance--
			if balance == 0 {
				return res, nil
			}
		}
		res = append(res, tok)
	}
}
