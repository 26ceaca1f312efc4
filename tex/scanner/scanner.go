// scanner.go -
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
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gabriel-vasile/mimetype"

	"github.com/seehuhn/extex/tex/token"
)

// Event identifies the different situations reported to observers.
type Event int

// The events reported to observers.
const (
	EventPush Event = iota
	EventPop
	EventClose
	EventEOF
)

func (ev Event) String() string {
	switch ev {
	case EventPush:
		return "push"
	case EventPop:
		return "pop"
	case EventClose:
		return "close"
	case EventEOF:
		return "eof"
	}
	return fmt.Sprintf("event(%d)", int(ev))
}

// An Observer is called synchronously for every event.  For EventClose,
// src is the stream being discarded; tok is only set for EventPush and
// EventPop.
type Observer func(ev Event, tok token.Token, src *Stream)

// An Expander resolves control sequences met while scanning numbers.
type Expander interface {
	// Expand expands tok and its successors until an unexpandable
	// token is found, which is returned.
	Expand(tok token.Token) (token.Token, error)

	// IntegerValue returns the value of an internal integer quantity
	// (like a count register) denoted by tok.  The second return value
	// is false if tok does not denote an integer.
	IntegerValue(tok token.Token) (int64, bool, error)
}

// Scanner manages a stack of token streams.  Tokens are taken from the
// most recently added stream; once a stream is exhausted, it is
// discarded and reading continues with the previous one.
type Scanner struct {
	// BaseDir is the base directory for include files.  Filenames
	// passed to the .Include() method are interpreted as being
	// relative to this directory.
	BaseDir string

	// EveryEOF is inserted into the input whenever a file-backed
	// stream ends.
	EveryEOF token.List

	// SkipBlanksAfterControlWord is copied into every stream created
	// by .Prepend() and .Include().
	SkipBlanksAfterControlWord bool

	tk         Tokenizer
	expander   Expander
	streams    []*Stream
	skipSpaces bool
	observers  []Observer
}

// New creates a scanner which uses tk to classify characters.
func New(tk Tokenizer) *Scanner {
	return &Scanner{tk: tk}
}

// SetExpander installs the object used to expand control sequences
// while numbers are scanned.
func (scan *Scanner) SetExpander(e Expander) {
	scan.expander = e
}

// Observe registers a function which is called for every push, pop,
// close and end-of-file event.
func (scan *Scanner) Observe(fn Observer) {
	scan.observers = append(scan.observers, fn)
}

func (scan *Scanner) notify(ev Event, tok token.Token, src *Stream) {
	for _, fn := range scan.observers {
		fn(ev, tok, src)
	}
}

// Close closes all input files and discards all buffers used by the
// scanner.
func (scan *Scanner) Close() (err error) {
	for _, src := range scan.streams {
		e2 := src.Close()
		if err == nil {
			err = e2
		}
	}
	scan.streams = nil
	return
}

// Push makes src the active stream.
func (scan *Scanner) Push(src *Stream) {
	scan.streams = append(scan.streams, src)
}

// Depth returns the number of streams currently on the stack.
func (scan *Scanner) Depth() int {
	return len(scan.streams)
}

// Pending returns the number of pushed-back tokens waiting in the
// active stream.
func (scan *Scanner) Pending() int {
	if len(scan.streams) == 0 {
		return 0
	}
	return scan.streams[len(scan.streams)-1].Pending()
}

// Prepend adds the given buffer to the list of input sources.  The
// buffer contents are read next, followed by all previous inputs.
// The argument `name` is used to identify the buffer in error
// messages and should be a short, human-readable string.
func (scan *Scanner) Prepend(data []byte, name string) {
	src := NewStringStream(string(data), name)
	src.SkipBlanksAfterControlWord = scan.SkipBlanksAfterControlWord
	scan.Push(src)
}

// Include adds the contents of the given file to the list of input
// sources.  The file contents are read next, followed by all
// remaining, previously registered inputs.  If the file does not
// exist and the name has no extension, ".tex" is appended.
func (scan *Scanner) Include(fileName string) error {
	if scan.BaseDir != "" && !filepath.IsAbs(fileName) {
		fileName = filepath.Join(scan.BaseDir, fileName)
	}
	if filepath.Ext(fileName) == "" {
		if _, err := os.Stat(fileName); errors.Is(err, os.ErrNotExist) {
			fileName += ".tex"
		}
	}

	mtype, err := mimetype.DetectFile(fileName)
	if err != nil {
		return err
	}
	if !isText(mtype) {
		return fmt.Errorf("%s: %w (%s)", fileName, ErrNotText, mtype)
	}

	fd, err := os.Open(fileName)
	if err != nil {
		return err
	}

	src := NewFileStream(fd, filepath.Base(fileName))
	src.SkipBlanksAfterControlWord = scan.SkipBlanksAfterControlWord
	scan.Push(src)

	if scan.BaseDir == "" {
		tmp, err := filepath.Abs(fileName)
		if err != nil {
			return err
		}
		scan.BaseDir = filepath.Dir(tmp)
	}

	return nil
}

func isText(mtype *mimetype.MIME) bool {
	for t := mtype; t != nil; t = t.Parent() {
		if t.Is("text/plain") {
			return true
		}
	}
	return false
}

// Locator returns the position of the active stream.
func (scan *Scanner) Locator() Locator {
	if n := len(scan.streams); n > 0 {
		return scan.streams[n-1].Locator()
	}
	return Locator{}
}

// SkipSpaces arms the one-shot skip-space mode: the next call to
// .GetToken() discards any leading space tokens.
func (scan *Scanner) SkipSpaces() {
	scan.skipSpaces = true
}

// GetToken returns the next token from the input.  io.EOF is returned
// once all streams are exhausted.
func (scan *Scanner) GetToken() (token.Token, error) {
	for {
		tok, err := scan.next()
		if err != nil {
			return tok, err
		}
		if scan.skipSpaces && tok.Kind == token.Space {
			continue
		}
		scan.skipSpaces = false
		return tok, nil
	}
}

func (scan *Scanner) next() (token.Token, error) {
	for len(scan.streams) > 0 {
		idx := len(scan.streams) - 1
		src := scan.streams[idx]
		tok, err := src.Get(scan.tk)
		if err == nil {
			scan.notify(EventPop, tok, src)
			return tok, nil
		}
		if err != io.EOF {
			var ce *charError
			if errors.As(err, &ce) {
				return token.Token{}, scan.MakeError(err, "")
			}
			return token.Token{}, scan.MakeError(fmt.Errorf("%w: %w", ErrInput, err), "")
		}

		scan.notify(EventClose, token.Token{}, src)
		scan.streams = scan.streams[:idx]
		err = src.Close()
		if err != nil {
			return token.Token{}, fmt.Errorf("%w: %w", ErrInput, err)
		}
		if src.IsFile() && len(scan.EveryEOF) > 0 {
			scan.PushTokens(scan.EveryEOF)
		}
	}
	scan.notify(EventEOF, token.Token{}, nil)
	return token.Token{}, io.EOF
}

func (scan *Scanner) active() *Stream {
	if len(scan.streams) == 0 {
		scan.Push(NewStringStream("", "<inserted text>"))
	}
	return scan.streams[len(scan.streams)-1]
}

// PushToken pushes a token back into the input.  It is returned by the
// next call to .GetToken().
func (scan *Scanner) PushToken(tok token.Token) {
	src := scan.active()
	scan.notify(EventPush, tok, src)
	src.Put(tok)
}

// PushTokens inserts the given tokens into the input, such that the
// first token of the list is read first.
func (scan *Scanner) PushTokens(toks token.List) {
	if len(toks) == 0 {
		return
	}
	src := scan.active()
	for i := len(toks) - 1; i >= 0; i-- {
		scan.notify(EventPush, toks[i], src)
		src.Put(toks[i])
	}
}

// GetNonSpace returns the next token which is not a space.
func (scan *Scanner) GetNonSpace() (token.Token, error) {
	for {
		tok, err := scan.GetToken()
		if err != nil || tok.Kind != token.Space {
			return tok, err
		}
	}
}
