// engine.go -
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

package interp

import (
	"errors"
	"io"
	"log/slog"

	"github.com/seehuhn/extex/tex/scanner"
	"github.com/seehuhn/extex/tex/token"
)

// Default limits of the engine.
const (
	DefaultMaxErrors  = 100
	DefaultMaxDepth   = 1000
	DefaultMaxPending = 1 << 16
)

// Engine reads tokens from a stack of input streams and executes
// them.  The embedded scanner gives access to the input.
type Engine struct {
	*scanner.Scanner

	ctx Context
	ts  Typesetter

	maxErrors  int
	maxDepth   int
	maxPending int
	depth      int
	handler    ErrorHandler
	log        *slog.Logger
	jobID      string

	flags *Flags
	errs  []error
}

// Option configures an Engine.
type Option func(*Engine)

// WithMaxErrors sets the number of recoverable errors after which the
// run is aborted.
func WithMaxErrors(n int) Option {
	return func(e *Engine) { e.maxErrors = n }
}

// WithMaxDepth limits the nesting of executions, expansions and
// macro calls.
func WithMaxDepth(n int) Option {
	return func(e *Engine) { e.maxDepth = n }
}

// WithMaxPending limits the number of pushed-back tokens a macro
// call may leave in the active input stream.
func WithMaxPending(n int) Option {
	return func(e *Engine) { e.maxPending = n }
}

// WithErrorHandler installs a handler which is offered every
// recoverable error before it is counted.
func WithErrorHandler(h ErrorHandler) Option {
	return func(e *Engine) { e.handler = h }
}

// WithLogger sets the logger used for errors and messages.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// WithJobID attaches an identifier for the run to all log records.
func WithJobID(id string) Option {
	return func(e *Engine) { e.jobID = id }
}

// New creates an engine which uses ctx as its symbol table and sends
// all material to ts.
func New(ctx Context, ts Typesetter, opts ...Option) (*Engine, error) {
	if ctx == nil {
		return nil, Fatal(ErrNoContext)
	}
	if ts == nil {
		return nil, Fatal(ErrNoTypesetter)
	}
	e := &Engine{
		Scanner:    scanner.New(ctx),
		ctx:        ctx,
		ts:         ts,
		maxErrors:  DefaultMaxErrors,
		maxDepth:   DefaultMaxDepth,
		maxPending: DefaultMaxPending,
		log:        slog.Default(),
		flags:      &Flags{},
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.jobID != "" {
		e.log = e.log.With("job", e.jobID)
	}
	e.SetExpander(e)
	return e, nil
}

// Context returns the symbol table of the engine.
func (e *Engine) Context() Context {
	return e.ctx
}

// Logger returns the logger used by the engine.
func (e *Engine) Logger() *slog.Logger {
	return e.log
}

// Errors returns all errors counted so far, in the order they
// occurred.
func (e *Engine) Errors() []error {
	return e.errs
}

// SetEveryEOF sets the tokens inserted whenever an input file ends.
func (e *Engine) SetEveryEOF(toks token.List) {
	e.EveryEOF = toks
}

// Run processes the input until it is exhausted or a fatal error
// occurs.  Problems found at the end of the input, like unclosed
// groups, are returned together.
func (e *Engine) Run() error {
	err := e.loop()
	if err != nil {
		e.log.Error("run aborted", "err", err)
		return errors.Join(err, e.ts.Finish())
	}
	errs := e.checkBalance()
	errs = append(errs, e.ts.Finish())
	return errors.Join(errs...)
}

func (e *Engine) loop() error {
	for {
		e.flags = &Flags{}
		tok, err := e.GetToken()
		if err == io.EOF {
			return nil
		}
		if err == nil {
			err = e.dispatch(tok, e.flags)
		}
		if err != nil {
			abort := e.handleError(err, tok)
			if abort != nil {
				return abort
			}
		}
	}
}

// handleError deals with an error raised while processing tok.  A
// non-nil return value means the run must be aborted.
func (e *Engine) handleError(err error, tok token.Token) error {
	if IsFatal(err) {
		return err
	}
	if e.handler != nil && e.handler.Handle(err, tok, e, e.ctx) {
		e.log.Debug("error resolved by handler", "err", err)
		return nil
	}
	n := e.ctx.IncErrorCount()
	e.errs = append(e.errs, err)
	e.log.Warn(err.Error(), "count", n)
	if n > e.maxErrors {
		return Fatal(&Error{
			Err:   ErrErrorLimitExceeded,
			Token: tok,
			Loc:   e.Locator(),
		})
	}
	return nil
}

func (e *Engine) checkBalance() []error {
	var errs []error
	if depth := e.ctx.GroupDepth(); depth != 0 {
		gt, _ := e.ctx.CurrentGroup()
		errs = append(errs, &UnbalancedGroupError{
			Closer: gt.Closer(),
			Depth:  depth,
		})
	}
	if conds := e.ctx.Conditionals(); len(conds) > 0 {
		errs = append(errs, &UnbalancedConditionalError{Cond: conds[0]})
	}
	for _, err := range errs {
		e.log.Warn(err.Error())
		e.errs = append(e.errs, err)
	}
	return errs
}

func (e *Engine) fail(err error, tok token.Token, detail string) error {
	return &Error{
		Err:    err,
		Token:  tok,
		Loc:    e.Locator(),
		Detail: detail,
	}
}

func (e *Engine) enter(tok token.Token) error {
	if e.depth >= e.maxDepth {
		return e.fail(ErrRecursionTooDeep, tok, "")
	}
	e.depth++
	return nil
}

func (e *Engine) leave() {
	e.depth--
}

// invoke calls a macro.  Macros which keep growing the input, like
// \def\a{\a x}, are stopped once too many tokens are pending.
func (e *Engine) invoke(tok token.Token, m *Macro) error {
	err := m.Invoke(e)
	if err != nil {
		return err
	}
	if e.Pending() > e.maxPending {
		return e.fail(ErrRecursionTooDeep, tok, "input stack overflow")
	}
	return nil
}

func (e *Engine) dispatch(tok token.Token, flags *Flags) error {
	switch tok.Kind {
	case token.ControlSequence, token.ActiveChar:
		return e.Execute(tok, flags)
	case token.LeftBrace:
		e.ctx.OpenGroup(BraceGroup)
		return e.ts.OpenGroup()
	case token.RightBrace:
		err := e.ctx.CloseGroup(BraceGroup)
		if err != nil {
			return e.fail(err, tok, "")
		}
		return e.ts.CloseGroup()
	case token.Letter, token.Other:
		return e.ts.AddLetter(tok.Char)
	case token.Space, token.Cr:
		return e.ts.AddSpace()
	default:
		return e.fail(ErrCantUseHere, tok, tok.Kind.String())
	}
}

// Execute carries out the meaning of tok with the given prefix flags.
// Character tokens are sent to the typesetter.
func (e *Engine) Execute(tok token.Token, flags *Flags) error {
	if !tok.IsCode() {
		return e.dispatch(tok, flags)
	}

	code, ok := e.ctx.Lookup(tok.Key())
	if !ok {
		return e.fail(ErrUndefinedControlSequence, tok, "")
	}

	err := e.enter(tok)
	if err != nil {
		return err
	}
	defer e.leave()

	if m, isMacro := code.(*Macro); isMacro {
		err = e.invoke(tok, m)
	} else {
		err = code.Execute(flags, e.ctx, e, e.ts)
	}
	if err != nil {
		return err
	}

	if flags.IsDirty() && !acceptsPrefix(code) {
		first, _ := flags.First()
		flags.Clear()
		return e.fail(ErrUnusedPrefix, tok, "\\"+first.String())
	}
	return nil
}

func acceptsPrefix(code Code) bool {
	fa, ok := code.(FlagAware)
	return ok && fa.AcceptsPrefix()
}

// lookupExpandable returns the expandable meaning of tok, if any.
func (e *Engine) lookupExpandable(tok token.Token) (Expandable, error) {
	if !tok.IsCode() {
		return nil, nil
	}
	code, ok := e.ctx.Lookup(tok.Key())
	if !ok {
		return nil, e.fail(ErrUndefinedControlSequence, tok, "")
	}
	exp, _ := code.(Expandable)
	return exp, nil
}

func (e *Engine) expandCode(tok token.Token, exp Expandable) error {
	err := e.enter(tok)
	if err != nil {
		return err
	}
	defer e.leave()
	if m, isMacro := exp.(*Macro); isMacro {
		return e.invoke(tok, m)
	}
	return exp.Expand(e.flags, e.ctx, e, e.ts)
}

// Expand expands tok and the following tokens until a token which
// cannot be expanded is found.  This token is returned.  At most
// MaxDepth expansions are carried out in one call.
func (e *Engine) Expand(tok token.Token) (token.Token, error) {
	for n := 0; ; n++ {
		exp, err := e.lookupExpandable(tok)
		if err != nil {
			return tok, err
		} else if exp == nil {
			return tok, nil
		}
		if n >= e.maxDepth {
			return tok, e.fail(ErrRecursionTooDeep, tok, "expansion does not terminate")
		}
		err = e.expandCode(tok, exp)
		if err != nil {
			return tok, err
		}
		tok, err = e.GetToken()
		if err != nil {
			return tok, err
		}
	}
}

// ExpandOnce expands tok a single time.  If tok cannot be expanded, it
// is pushed back unchanged.
func (e *Engine) ExpandOnce(tok token.Token) error {
	exp, err := e.lookupExpandable(tok)
	if err != nil {
		return err
	} else if exp == nil {
		e.PushToken(tok)
		return nil
	}
	return e.expandCode(tok, exp)
}

// ScanToken returns the next token of the input, after expansion.
func (e *Engine) ScanToken() (token.Token, error) {
	tok, err := e.GetToken()
	if err != nil {
		return tok, err
	}
	return e.Expand(tok)
}

// IntegerValue returns the value of the internal integer denoted by
// tok.  This implements scanner.Expander.
func (e *Engine) IntegerValue(tok token.Token) (int64, bool, error) {
	code, ok := e.ctx.Lookup(tok.Key())
	if !ok {
		return 0, false, e.fail(ErrUndefinedControlSequence, tok, "")
	}
	cc, ok := code.(CountConvertible)
	if !ok {
		return 0, false, nil
	}
	n, err := cc.ConvertCount(e.ctx, e)
	return n, true, err
}
