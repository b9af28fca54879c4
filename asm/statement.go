// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package asm

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"
	"unicode"

	"github.com/ezrec/quadasm/isa"
)

// MAX_LINE_LENGTH is the longest source line accepted, comment included.
const MAX_LINE_LENGTH = 256

// Statement is one parsed source line.
type Statement struct {
	LineNo   int      // 1-based source line number.
	Line     string   // Source text, without its comment.
	Label    string   // Label name, without the colon.
	Labeled  bool     // Set if the line carried a 'LABEL:' prefix.
	Op       string   // Mnemonic or directive; empty for a label-only line.
	Operands []string // Operand tokens, trimmed.
	Err      error    // Syntax problem found while splitting the line.
}

var reMatrix = regexp.MustCompile(`^(\[[^\]]*\]\s*\[[^\]]*\])\s*(.*)$`)

// stripComment removes a ';' comment that is not inside a string.
func stripComment(line string) string {
	quoted := false
	for n, r := range line {
		switch {
		case r == '"':
			quoted = !quoted
		case r == ';' && !quoted:
			return line[:n]
		}
	}
	return line
}

// splitOperands splits a comma separated operand list.
//
// Commas inside brackets, parentheses or quotes do not separate operands.
// Whitespace between two operand words with no comma is an error.
func splitOperands(args string) (operands []string, err error) {
	if len(strings.TrimSpace(args)) == 0 {
		return
	}

	var token strings.Builder
	depth := 0
	quoted := false
	gap := false

	flush := func() error {
		word := token.String()
		if len(word) == 0 {
			return ErrCommaExtra
		}
		operands = append(operands, word)
		token.Reset()
		gap = false
		return nil
	}

	for _, r := range args {
		switch {
		case quoted:
			if r == '"' {
				quoted = false
			}
		case r == '"':
			quoted = true
		case r == '(' || r == '[':
			depth++
		case r == ')' || r == ']':
			depth--
		case depth == 0 && r == ',':
			err = flush()
			if err != nil {
				return nil, err
			}
			continue
		case depth == 0 && unicode.IsSpace(r):
			if token.Len() > 0 {
				gap = true
			}
			continue
		}
		if gap {
			return nil, ErrCommaMissing
		}
		token.WriteRune(r)
	}

	switch {
	case quoted:
		return nil, ErrStringSyntax
	case depth != 0:
		return nil, ErrBracketSyntax
	}

	err = flush()
	if err != nil {
		return nil, err
	}

	return
}

// parseStatement splits a comment-free line into label, op and operands.
func parseStatement(lineno int, code string) (stmt Statement) {
	stmt.LineNo = lineno
	stmt.Line = code

	head, tail, found := strings.Cut(code, ":")
	if found && !strings.ContainsAny(head, " \t\"") {
		stmt.Label = head
		stmt.Labeled = true
		code = strings.TrimSpace(tail)
	}

	op, args := code, ""
	if n := strings.IndexFunc(code, unicode.IsSpace); n >= 0 {
		op, args = code[:n], strings.TrimSpace(code[n:])
	}
	stmt.Op = op

	switch stmt.Op {
	case isa.DIRECTIVE_STRING:
		if len(args) > 0 {
			stmt.Operands = []string{args}
		}
	case isa.DIRECTIVE_MAT:
		match := reMatrix.FindStringSubmatch(args)
		if match == nil {
			stmt.Err = ErrMatrixSyntax
			return
		}
		stmt.Operands = []string{match[1]}
		values, err := splitOperands(match[2])
		if err != nil {
			stmt.Err = err
			return
		}
		stmt.Operands = append(stmt.Operands, values...)
	default:
		stmt.Operands, stmt.Err = splitOperands(args)
	}

	return
}

// Parse reads a macro-free source and splits it into statements.
//
// Blank and comment-only lines produce no statement. Lines longer than
// MAX_LINE_LENGTH are reported and dropped; other syntax problems are
// carried in Statement.Err so that the label on the line is still seen.
func Parse(input io.Reader) (stmts []Statement, diags Diagnostics) {
	scanner := bufio.NewScanner(input)
	scanner.Buffer(make([]byte, 0, 4096), 1<<20)

	lineno := 0
	for scanner.Scan() {
		lineno++
		text := scanner.Text()
		if len(text) > MAX_LINE_LENGTH {
			diags = append(diags, &Diagnostic{
				LineNo: lineno,
				Line:   text[:32] + "...",
				Err:    ErrLineLength(len(text)),
			})
			continue
		}

		code := strings.TrimSpace(stripComment(text))
		if len(code) == 0 {
			continue
		}

		stmts = append(stmts, parseStatement(lineno, code))
	}

	err := scanner.Err()
	if errors.Is(err, bufio.ErrTooLong) {
		err = fmt.Errorf("%w: %w", ErrResourceExhaustion, err)
	}
	if err != nil {
		diags = append(diags, &Diagnostic{LineNo: lineno + 1, Err: err})
	}

	return
}
