// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package macro expands 'macr'/'endmacr' blocks into a macro-free source.
//
//	macr NAME
//	  ...body...
//	endmacr
//
// A later line holding only NAME, after an optional label, is replaced by
// the body; the label is kept on a line of its own before it. Macros must be defined
// before use and do not nest.
package macro

import (
	"bufio"
	"errors"
	"io"
	"strings"

	"github.com/golang/glog"

	"github.com/ezrec/quadasm/isa"
)

// Macro is a named block of source lines.
type Macro struct {
	LineNo int      // Line number of the definition.
	Name   string   // Macro name.
	Lines  []string // Body, verbatim.
}

type expander struct {
	macros  map[string]*Macro
	current *Macro
	invalid bool
	lines   []string
	errs    []error
}

func (exp *expander) fail(lineno int, line string, err error) {
	exp.errs = append(exp.errs, &ErrSyntax{LineNo: lineno, Line: line, Err: err})
}

func (exp *expander) define(lineno int, line string, words []string) {
	if len(words) < 2 {
		exp.fail(lineno, line, ErrMacroName)
		exp.invalid = true
		exp.current = &Macro{LineNo: lineno}
		return
	}

	name := words[1]
	exp.invalid = true
	switch {
	case len(words) > 2:
		exp.fail(lineno, line, ErrMacroTrailing)
	case exp.macros[name] != nil:
		exp.fail(lineno, line, ErrMacroDuplicate(name))
	default:
		err := isa.ValidLabel(name)
		if err != nil {
			exp.fail(lineno, line, &ErrMacroInvalid{Name: name, Err: err})
		} else {
			exp.invalid = false
		}
	}

	// The body is consumed even for a bad definition.
	exp.current = &Macro{LineNo: lineno, Name: name}
}

func (exp *expander) line(lineno int, line string) {
	code, _, _ := strings.Cut(line, ";")
	words := strings.Fields(code)

	if exp.current != nil {
		switch {
		case len(words) > 0 && words[0] == isa.MACRO_END:
			if len(words) > 1 {
				exp.fail(lineno, line, ErrMacroTrailing)
			}
			if !exp.invalid {
				exp.macros[exp.current.Name] = exp.current
				glog.V(1).Infof("macro: line %d: %v, %d lines", exp.current.LineNo, exp.current.Name, len(exp.current.Lines))
			}
			exp.current = nil
		case len(words) > 0 && words[0] == isa.MACRO_BEGIN:
			exp.fail(lineno, line, ErrMacroNested)
		default:
			exp.current.Lines = append(exp.current.Lines, line)
		}
		return
	}

	if len(words) == 0 {
		exp.lines = append(exp.lines, line)
		return
	}

	switch words[0] {
	case isa.MACRO_BEGIN:
		exp.define(lineno, line, words)
		return
	case isa.MACRO_END:
		exp.fail(lineno, line, ErrMacroEnd)
		return
	}

	label := ""
	if strings.HasSuffix(words[0], ":") {
		label = strings.TrimSuffix(words[0], ":")
		words = words[1:]
		if exp.macros[label] != nil {
			exp.fail(lineno, line, ErrMacroLabel(label))
			return
		}
	}

	var mac *Macro
	if len(words) == 1 {
		mac = exp.macros[words[0]]
	}
	if mac == nil {
		exp.lines = append(exp.lines, line)
		return
	}

	glog.V(2).Infof("macro: line %d: expand %v", lineno, mac.Name)
	// A lone label takes the address of the line after it, so the body
	// keeps any label of its own.
	if len(label) > 0 {
		exp.lines = append(exp.lines, label+":")
	}
	exp.lines = append(exp.lines, mac.Lines...)
}

// Expand reads a source and returns it with every macro expanded.
//
// All problems in the source are reported together; no lines are returned
// when there is any.
func Expand(input io.Reader) (lines []string, err error) {
	exp := &expander{
		macros: map[string]*Macro{},
	}

	scanner := bufio.NewScanner(input)
	scanner.Buffer(make([]byte, 0, 4096), 1<<20)

	lineno := 0
	for scanner.Scan() {
		lineno++
		exp.line(lineno, scanner.Text())
	}

	err = scanner.Err()
	if err != nil {
		return
	}

	if exp.current != nil {
		exp.fail(exp.current.LineNo, isa.MACRO_BEGIN+" "+exp.current.Name, ErrMacroUnterminated)
	}

	if len(exp.errs) > 0 {
		err = errors.Join(exp.errs...)
		return
	}

	lines = exp.lines
	return
}
