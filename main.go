// main.go -
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

package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"golang.org/x/term"

	"github.com/seehuhn/extex/tex/config"
	"github.com/seehuhn/extex/tex/interp"
	"github.com/seehuhn/extex/tex/logs"
	"github.com/seehuhn/extex/tex/primitives"
	"github.com/seehuhn/extex/tex/scanner"
	"github.com/seehuhn/extex/tex/symtab"
	"github.com/seehuhn/extex/tex/terminal"
	"github.com/seehuhn/extex/tex/token"
	"github.com/seehuhn/extex/tex/typeset"
)

var (
	configFile = flag.String("config", "", "the YAML configuration file")
	output     = flag.String("output", "", "the output file name")
	maxErrors  = flag.Int("max-errors", -1, "abort after this many errors")
	logDebug   = flag.Bool("log-debug", false, "set log level to debug")
	logJSON    = flag.String("log-json", "", "also write JSON log records to this file")
	journal    = flag.Bool("journal", false, "also log to the systemd journal")
	trace      = flag.Bool("trace", false, "log all input stack events at debug level")
	digest     = flag.Bool("digest", false, "print a fingerprint of the output instead of the text")
)

const historyFile = ".extex_history"

func main() {
	os.Exit(run())
}

func run() int {
	flag.Parse()

	logOpts := logs.Options{Text: os.Stderr, Journal: *journal}
	if *logJSON != "" {
		fd, err := os.Create(*logJSON)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		defer fd.Close()
		logOpts.JSON = fd
	}
	if *logDebug {
		logs.Level.Set(slog.LevelDebug)
	}
	log := logs.New(logOpts)

	if flag.NArg() > 1 {
		log.Error("usage: extex [options] [input.tex]")
		return 2
	}
	interactive := flag.NArg() == 0 && term.IsTerminal(int(os.Stdin.Fd()))

	cfg := config.Default()
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			log.Error("cannot read configuration", "err", err)
			return 1
		}
	}
	if *maxErrors >= 0 {
		cfg.MaxErrors = *maxErrors
	}
	if cfg.JobID == "" {
		cfg.JobID = uuid.NewString()
	}

	var out io.Writer = os.Stdout
	if *output != "" {
		fd, err := os.Create(*output)
		if err != nil {
			log.Error("cannot create output file", "err", err)
			return 1
		}
		defer fd.Close()
		out = fd
	}

	var ts interp.Typesetter
	rec := &typeset.Recorder{}
	if *digest {
		ts = rec
	} else {
		ts = typeset.NewText(out)
	}

	catcodes := token.NewPlainTable()
	cfg.ApplyCatcodes(catcodes)
	tab := symtab.New(catcodes)
	primitives.Install(tab)

	opts := append(cfg.Options(), interp.WithLogger(log))
	e, err := interp.New(tab, ts, opts...)
	if err != nil {
		log.Error("cannot start interpreter", "err", err)
		return 1
	}
	defer e.Close()
	e.SkipBlanksAfterControlWord = cfg.SkipBlanksAfterControlWord
	log = e.Logger()

	if *trace {
		e.Observe(func(ev scanner.Event, tok token.Token, src *scanner.Stream) {
			args := []any{"event", ev}
			if ev == scanner.EventPush || ev == scanner.EventPop {
				args = append(args, "token", tok)
			}
			if src != nil {
				args = append(args, "stream", src.Name())
			}
			log.Debug("input stack", args...)
		})
	}

	switch {
	case interactive:
		var histPath string
		if home, err := os.UserHomeDir(); err == nil {
			histPath = filepath.Join(home, historyFile)
		}
		src := scanner.NewFileStream(terminal.Open(histPath), "<terminal>")
		src.SkipBlanksAfterControlWord = cfg.SkipBlanksAfterControlWord
		e.Push(src)
	case flag.NArg() == 0:
		src := scanner.NewFileStream(io.NopCloser(os.Stdin), "<stdin>")
		src.SkipBlanksAfterControlWord = cfg.SkipBlanksAfterControlWord
		e.Push(src)
	default:
		inputName := flag.Arg(0)
		err = e.Include(inputName)
		if err != nil {
			log.Error("cannot open input", "file", inputName, "err", err)
			return 1
		}
	}
	if pre := cfg.Preamble(); len(pre) > 0 {
		e.Prepend(pre, "config")
	}

	log.Info("start", "config", cfg.Path)
	err = e.Run()
	if *digest {
		fmt.Fprintln(out, rec.Digest())
	}
	if err != nil {
		log.Error("run failed", "err", err, "errors", len(e.Errors()))
		return 1
	}
	if n := len(e.Errors()); n > 0 {
		log.Warn("done with errors", "errors", n)
		return 1
	}
	log.Info("done")
	return 0
}
