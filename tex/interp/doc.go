// doc.go -
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

// Package interp implements the main loop of a TeX-like interpreter.
//
// The Engine reads tokens from its scanner and dispatches them by
// kind.  Control sequences and active characters are looked up in the
// Context; macros are matched against the following input and their
// bodies are pushed back, all other codes are executed with a fresh
// set of prefix Flags.  Character tokens and braces are passed on to
// the Typesetter.
//
// While arguments and numbers are scanned, expandable codes are
// expanded instead of executed, see Engine.Expand.  Recoverable
// errors are counted and the run continues with the next token, until
// the configured error limit is reached.
package interp
