// recorder.go -
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

// Package typeset contains simple typesetters which receive the
// material produced by the interpreter.
package typeset

import (
	"encoding/base64"
	"errors"
	"strings"

	"golang.org/x/crypto/sha3"
)

// ErrFinished is returned when material arrives after Finish.
var ErrFinished = errors.New("typesetter already finished")

// EffectKind enumerates the notifications a typesetter receives.
type EffectKind uint8

// The kinds of effect.
const (
	EffectLetter EffectKind = iota
	EffectSpace
	EffectOpenGroup
	EffectCloseGroup
	EffectPar
)

// Effect is one notification received by a Recorder.
type Effect struct {
	Kind EffectKind
	Char rune
}

// Recorder is a typesetter which keeps all notifications in order.
type Recorder struct {
	Effects  []Effect
	finished bool
}

func (r *Recorder) add(e Effect) error {
	if r.finished {
		return ErrFinished
	}
	r.Effects = append(r.Effects, e)
	return nil
}

// AddLetter records a character.
func (r *Recorder) AddLetter(c rune) error {
	return r.add(Effect{Kind: EffectLetter, Char: c})
}

// AddSpace records a blank space.
func (r *Recorder) AddSpace() error {
	return r.add(Effect{Kind: EffectSpace})
}

// OpenGroup records the start of a group.
func (r *Recorder) OpenGroup() error {
	return r.add(Effect{Kind: EffectOpenGroup})
}

// CloseGroup records the end of a group.
func (r *Recorder) CloseGroup() error {
	return r.add(Effect{Kind: EffectCloseGroup})
}

// Par records the end of a paragraph.
func (r *Recorder) Par() error {
	return r.add(Effect{Kind: EffectPar})
}

// Finish marks the end of the material.
func (r *Recorder) Finish() error {
	r.finished = true
	return nil
}

// Finished reports whether Finish has been called.
func (r *Recorder) Finished() bool {
	return r.finished
}

// String renders the recorded material: characters as they are, "␣"
// for spaces, braces for groups and "¶" for paragraph ends.
func (r *Recorder) String() string {
	var b strings.Builder
	for _, e := range r.Effects {
		switch e.Kind {
		case EffectLetter:
			b.WriteRune(e.Char)
		case EffectSpace:
			b.WriteString("␣")
		case EffectOpenGroup:
			b.WriteByte('{')
		case EffectCloseGroup:
			b.WriteByte('}')
		case EffectPar:
			b.WriteString("¶")
		}
	}
	return b.String()
}

// Digest returns a short fingerprint of the recorded material.
func (r *Recorder) Digest() string {
	h := sha3.NewShake128()
	buf := make([]byte, 0, 5)
	for _, e := range r.Effects {
		buf = append(buf[:0], byte(e.Kind),
			byte(e.Char>>24), byte(e.Char>>16), byte(e.Char>>8), byte(e.Char))
		h.Write(buf)
	}
	out := make([]byte, 15)
	h.Read(out)
	return base64.RawURLEncoding.EncodeToString(out)
}
