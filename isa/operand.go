// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package isa

import (
	"regexp"
	"strings"
)

// Operand is a classified operand token.
type Operand struct {
	Token    string // Original token text.
	Mode     Mode   // Addressing mode.
	Register int    // Register ordinal, or the row register when indexed.
	Column   int    // Column register when indexed.
	Symbol   string // Label name for direct and indexed modes.
	Literal  string // Literal text after '#' for immediates.
	Err      error  // Lexical problem with the token, if any.
}

var reIndexed = regexp.MustCompile(`^([^\[\]]*)\[([^\[\]]*)\]\[([^\[\]]*)\]$`)

// Classify determines the addressing mode of an operand token.
//
// Classify is total: a malformed token still gets a mode, with Err set,
// so that word counts stay identical wherever it is called.
func Classify(token string) (op Operand) {
	token = strings.TrimSpace(token)
	op.Token = token

	switch {
	case len(token) == 0:
		op.Mode = MODE_DIRECT
		op.Err = ErrOperandEmpty
	case token[0] == '#':
		op.Mode = MODE_IMMEDIATE
		op.Literal = strings.TrimSpace(token[1:])
		if len(op.Literal) == 0 {
			op.Err = ErrImmediateMissing
		}
	case strings.ContainsAny(token, "[]"):
		op.Mode = MODE_INDEXED
		match := reIndexed.FindStringSubmatch(token)
		if match == nil {
			op.Err = ErrIndexSyntax
			return
		}
		op.Symbol = strings.TrimSpace(match[1])
		op.Err = ValidLabel(op.Symbol)
		row, row_ok := Register(strings.TrimSpace(match[2]))
		col, col_ok := Register(strings.TrimSpace(match[3]))
		if op.Err == nil && !(row_ok && col_ok) {
			op.Err = ErrIndexRegister
		}
		op.Register = row
		op.Column = col
	default:
		reg, ok := Register(token)
		if ok {
			op.Mode = MODE_REGISTER
			op.Register = reg
			return
		}
		op.Mode = MODE_DIRECT
		op.Symbol = token
		op.Err = ValidLabel(token)
	}

	return
}

// Length returns the number of words an instruction occupies, given its
// classified operands.
//
// Two register operands share one trailing word; every other operand adds
// Mode.Words() words after the base word.
func Length(ops []Operand) (words int) {
	if len(ops) == 2 && ops[0].Mode == MODE_REGISTER && ops[1].Mode == MODE_REGISTER {
		return 2
	}

	words = 1
	for _, op := range ops {
		words += op.Mode.Words()
	}

	return
}
