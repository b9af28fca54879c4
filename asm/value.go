// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package asm

import (
	"regexp"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/quadasm/isa"
)

// MAX_EXPR_STEPS bounds the work of a single $(...) expression.
const MAX_EXPR_STEPS = 10000

// Predefined expression constants.
var sysEquate = starlark.StringDict{
	"MEMORY_SIZE":    starlark.MakeInt(isa.MEMORY_SIZE),
	"REGISTER_COUNT": starlark.MakeInt(isa.REGISTER_COUNT),
	"VALUE_MIN":      starlark.MakeInt(isa.VALUE_MIN),
	"VALUE_MAX":      starlark.MakeInt(isa.VALUE_MAX),
}

// exprEval evaluates a starlark integer expression.
func exprEval(expr string) (value int64, err error) {
	if strings.ContainsAny(expr, "\r\n") {
		err = &ErrParseExpression{Expr: expr, Err: ErrSyntax}
		return
	}

	thread := starlark.Thread{Name: "expr"}
	thread.SetMaxExecutionSteps(MAX_EXPR_STEPS)
	opts := syntax.FileOptions{}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, sysEquate)
	if err != nil {
		err = &ErrParseExpression{Expr: expr, Err: err}
		return
	}
	st_int, ok := dict["rc"].(starlark.Int)
	if !ok {
		err = &ErrParseExpression{Expr: expr, Err: ErrParseNumber(dict["rc"].String())}
		return
	}
	value, ok = st_int.Int64()
	if !ok {
		err = &ErrParseExpression{Expr: expr, Err: ErrParseNumber(st_int.String())}
		return
	}

	return
}

// parseInt parses a signed decimal integer, or a $(expr) expression.
func parseInt(word string) (value int64, err error) {
	word = strings.TrimSpace(word)
	if strings.HasPrefix(word, "$(") && strings.HasSuffix(word, ")") {
		return exprEval(word[2 : len(word)-1])
	}

	value, err = strconv.ParseInt(word, 10, 32)
	if err != nil {
		err = ErrParseNumber(word)
		return
	}

	return
}

// parseLiteral parses a value that must fit a data word.
func parseLiteral(word string) (value int, err error) {
	v64, err := parseInt(word)
	if err != nil {
		return
	}

	if v64 < isa.VALUE_MIN || v64 > isa.VALUE_MAX {
		err = ErrValueRange(v64)
		return
	}

	value = int(v64)
	return
}

// parseString returns the characters of a double quoted string, plus the
// terminating zero.
func parseString(word string) (values []int, err error) {
	if len(word) < 2 || word[0] != '"' || word[len(word)-1] != '"' {
		err = ErrStringSyntax
		return
	}

	for _, c := range []byte(word[1 : len(word)-1]) {
		if c < ' ' || c > '~' {
			err = ErrStringSyntax
			return
		}
		values = append(values, int(c))
	}
	values = append(values, 0)

	return
}

var reDims = regexp.MustCompile(`^\[([^\]]*)\]\s*\[([^\]]*)\]$`)

// parseDims parses the '[rows][columns]' prefix of a .mat directive.
func parseDims(word string) (rows, cols int, err error) {
	match := reDims.FindStringSubmatch(word)
	if match == nil {
		err = ErrMatrixSyntax
		return
	}

	var dims [2]int64
	for n := range dims {
		dims[n], err = parseInt(match[n+1])
		if err != nil {
			return
		}
		if dims[n] <= 0 || dims[n] > isa.MEMORY_SIZE {
			err = ErrMatrixSyntax
			return
		}
	}

	rows, cols = int(dims[0]), int(dims[1])
	return
}
