// config.go -
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

// Package config reads the settings of an interpreter run from a YAML
// file.
//
// A configuration file looks like this:
//
//	max_errors: 20
//	max_depth: 500
//	skip_blanks_after_control_word: true
//	catcodes:
//	  "@": letter
//	  "|": active
//	every_eof: "\\relax"
//	macros:
//	  bold: "#1{[#1]}"
//	job_id: manual-run
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/seehuhn/extex/tex/interp"
	"github.com/seehuhn/extex/tex/token"
)

// Config holds the settings for one run of the interpreter.
type Config struct {
	// Path is the file the configuration was read from, if any.
	Path string `yaml:"-"`

	MaxErrors                  int               `yaml:"max_errors"`
	MaxDepth                   int               `yaml:"max_depth"`
	SkipBlanksAfterControlWord bool              `yaml:"skip_blanks_after_control_word"`
	Catcodes                   map[string]string `yaml:"catcodes"`
	EveryEOF                   string            `yaml:"every_eof"`
	Macros                     map[string]string `yaml:"macros"`
	JobID                      string            `yaml:"job_id"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		MaxErrors:                  interp.DefaultMaxErrors,
		MaxDepth:                   interp.DefaultMaxDepth,
		SkipBlanksAfterControlWord: true,
	}
}

// ValidationError lists all problems found in a configuration.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "config: invalid configuration"
	}
	var b strings.Builder
	b.WriteString("config validation failed:")
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

// Load reads the configuration file at path.  Settings missing from
// the file keep their default values.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config: empty path")
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("config: resolve %s: %w", path, err)
	}
	file, err := os.Open(absPath)
	if err != nil {
		return nil, fmt.Errorf("config: open %s: %w", absPath, err)
	}
	defer file.Close()

	cfg, err := Parse(file)
	if err != nil {
		return nil, fmt.Errorf("config: %s: %w", absPath, err)
	}
	cfg.Path = absPath
	return cfg, nil
}

// Parse reads a configuration from r.  Unknown fields are rejected.
func Parse(r io.Reader) (*Config, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	cfg := Default()
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for consistency.
func (cfg *Config) Validate() error {
	var errs ValidationError
	if cfg.MaxErrors < 0 {
		errs.Issues = append(errs.Issues, "max_errors must not be negative")
	}
	if cfg.MaxDepth < 1 {
		errs.Issues = append(errs.Issues, "max_depth must be positive")
	}
	for _, key := range sortedKeys(cfg.Catcodes) {
		if utf8.RuneCountInString(key) != 1 {
			errs.Issues = append(errs.Issues,
				fmt.Sprintf("catcodes: key %q must be a single character", key))
		}
		if _, err := token.ParseCategory(cfg.Catcodes[key]); err != nil {
			errs.Issues = append(errs.Issues, fmt.Sprintf("catcodes.%s: %s", key, err))
		}
	}
	for _, name := range sortedKeys(cfg.Macros) {
		if name == "" || strings.ContainsAny(name, " \\{}") {
			errs.Issues = append(errs.Issues,
				fmt.Sprintf("macros: invalid macro name %q", name))
		}
		if !strings.Contains(cfg.Macros[name], "{") {
			errs.Issues = append(errs.Issues,
				fmt.Sprintf("macros.%s: definition needs a body in braces", name))
		}
	}
	if len(errs.Issues) > 0 {
		return &errs
	}
	return nil
}

// ApplyCatcodes sets the configured category codes in tab.  The
// configuration must have been validated.
func (cfg *Config) ApplyCatcodes(tab *token.Table) {
	for key, name := range cfg.Catcodes {
		r, _ := utf8.DecodeRuneInString(key)
		cat, err := token.ParseCategory(name)
		if err != nil {
			continue
		}
		tab.Set(r, cat)
	}
}

// Options returns the engine options for the configured limits.
func (cfg *Config) Options() []interp.Option {
	opts := []interp.Option{
		interp.WithMaxErrors(cfg.MaxErrors),
		interp.WithMaxDepth(cfg.MaxDepth),
	}
	if cfg.JobID != "" {
		opts = append(opts, interp.WithJobID(cfg.JobID))
	}
	return opts
}

// Preamble returns TeX input which defines the configured macros and
// sets the every-EOF tokens.  It is meant to be read before the
// actual input.
func (cfg *Config) Preamble() []byte {
	var b strings.Builder
	for _, name := range sortedKeys(cfg.Macros) {
		b.WriteString("\\def\\")
		b.WriteString(name)
		b.WriteString(cfg.Macros[name])
		b.WriteString("%\n")
	}
	if cfg.EveryEOF != "" {
		b.WriteString("\\everyeof{")
		b.WriteString(cfg.EveryEOF)
		b.WriteString("}%\n")
	}
	return []byte(b.String())
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
