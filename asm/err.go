package asm

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/ezrec/quadasm/isa"
	"github.com/ezrec/quadasm/translate"
)

var f = translate.From

var (
	// Error taxonomy
	ErrSyntax              = errors.New(f("syntax error"))
	ErrUnknownMnemonic     = errors.New(f("unknown mnemonic or directive"))
	ErrInvalidOperandType  = errors.New(f("invalid operand type"))
	ErrInvalidOperandCount = errors.New(f("invalid operand count"))
	ErrDuplicateLabel      = errors.New(f("duplicate label"))
	ErrUndefinedSymbol     = errors.New(f("undefined symbol"))
	ErrMemoryCapacity      = errors.New(f("memory capacity exceeded"))
	ErrResourceExhaustion  = errors.New(f("resource exhausted"))

	// Syntax errors
	ErrCommaMissing  = fmt.Errorf("%w: %v", ErrSyntax, f("missing comma"))
	ErrCommaExtra    = fmt.Errorf("%w: %v", ErrSyntax, f("extra comma"))
	ErrStringSyntax  = fmt.Errorf("%w: %v", ErrSyntax, f(".string needs one double quoted ASCII string"))
	ErrMatrixSyntax  = fmt.Errorf("%w: %v", ErrSyntax, f(".mat needs [rows][columns]"))
	ErrBracketSyntax = fmt.Errorf("%w: %v", ErrSyntax, f("unbalanced brackets"))

	// Layout consistency
	ErrNotRebased   = errors.New(f("data symbol read before rebase"))
	ErrRebased      = errors.New(f("symbol table already rebased"))
	ErrPassMismatch = errors.New(f("pass 1 and pass 2 disagree on layout"))
)

type ErrLabelInvalid struct {
	Label string
	Err   error
}

func (err *ErrLabelInvalid) Error() string {
	return f("label '%v' invalid: %v", err.Label, err.Err)
}

func (err *ErrLabelInvalid) Unwrap() error {
	return err.Err
}

func (err *ErrLabelInvalid) Is(target error) bool {
	return target == ErrSyntax
}

type ErrLabelDuplicate string

func (el ErrLabelDuplicate) Error() string {
	return f("label %v duplicated", string(el))
}

func (el ErrLabelDuplicate) Is(target error) bool {
	return target == ErrDuplicateLabel
}

type ErrSymbolUndefined string

func (es ErrSymbolUndefined) Error() string {
	return f("symbol %v undefined", string(es))
}

func (es ErrSymbolUndefined) Is(target error) bool {
	return target == ErrUndefinedSymbol
}

type ErrEntryExternal string

func (ee ErrEntryExternal) Error() string {
	return f("entry %v is declared external", string(ee))
}

func (ee ErrEntryExternal) Is(target error) bool {
	return target == ErrInvalidOperandType
}

type ErrMnemonicUnknown string

func (em ErrMnemonicUnknown) Error() string {
	return f("'%v' is not an instruction or directive", string(em))
}

func (em ErrMnemonicUnknown) Is(target error) bool {
	return target == ErrUnknownMnemonic
}

type ErrOperandCount struct {
	Op   string
	Want int
	Have int
}

func (err *ErrOperandCount) Error() string {
	return f("%v takes %d operand(s), not %d", err.Op, err.Want, err.Have)
}

func (err *ErrOperandCount) Is(target error) bool {
	return target == ErrInvalidOperandCount
}

type ErrOperandMode struct {
	Op      string
	Slot    isa.Slot
	Operand string
	Mode    isa.Mode
}

func (err *ErrOperandMode) Error() string {
	return f("%v: %v operand '%v' may not be %v", err.Op, err.Slot, err.Operand, err.Mode)
}

func (err *ErrOperandMode) Is(target error) bool {
	return target == ErrInvalidOperandType
}

type ErrOperand struct {
	Operand string
	Err     error
}

func (err *ErrOperand) Error() string {
	return f("operand '%v': %v", err.Operand, err.Err)
}

func (err *ErrOperand) Unwrap() error {
	return err.Err
}

func (err *ErrOperand) Is(target error) bool {
	return target == ErrSyntax
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

func (err ErrParseNumber) Is(target error) bool {
	return target == ErrSyntax
}

type ErrParseExpression struct {
	Expr string
	Err  error
}

func (err *ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression: %v", err.Expr, err.Err)
}

func (err *ErrParseExpression) Unwrap() error {
	return err.Err
}

func (err *ErrParseExpression) Is(target error) bool {
	return target == ErrSyntax
}

type ErrValueRange int64

func (err ErrValueRange) Error() string {
	return f("value %d outside [%d, %d]", int64(err), isa.VALUE_MIN, isa.VALUE_MAX)
}

func (err ErrValueRange) Is(target error) bool {
	return target == ErrSyntax
}

type ErrMatrixOverflow struct {
	Size   int
	Values int
}

func (err *ErrMatrixOverflow) Error() string {
	return f(".mat of %d cells given %d values", err.Size, err.Values)
}

func (err *ErrMatrixOverflow) Is(target error) bool {
	return target == ErrInvalidOperandCount
}

type ErrCapacity struct {
	Words    int // Highest address needed, plus one.
	Capacity int
}

func (err *ErrCapacity) Error() string {
	return f("program needs %d words, memory holds %d", err.Words, err.Capacity)
}

func (err *ErrCapacity) Is(target error) bool {
	return target == ErrMemoryCapacity
}

type ErrAddressRange struct {
	Origin   int
	Capacity int
}

func (err *ErrAddressRange) Error() string {
	return f("origin %d with capacity %d leaves [0, %d)", err.Origin, err.Capacity, isa.MEMORY_SIZE)
}

func (err *ErrAddressRange) Is(target error) bool {
	return target == ErrMemoryCapacity
}

type ErrLineLength int

func (err ErrLineLength) Error() string {
	return f("line of %d characters exceeds %d", int(err), MAX_LINE_LENGTH)
}

func (err ErrLineLength) Is(target error) bool {
	return target == ErrResourceExhaustion
}

// Diagnostic locates an error in a source file. A zero LineNo marks a
// file-level problem.
type Diagnostic struct {
	File   string
	LineNo int
	Line   string
	Err    error
}

func (err *Diagnostic) Error() string {
	switch {
	case err.LineNo == 0 && len(err.File) == 0:
		return err.Err.Error()
	case err.LineNo == 0:
		return f("%v: %v", err.File, err.Err)
	case len(err.File) == 0:
		return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
	}
	return f("%v:%d: '%v' %v", err.File, err.LineNo, err.Line, err.Err)
}

func (err *Diagnostic) Unwrap() error {
	return err.Err
}

// Diagnostics is the ordered list of problems found in one file.
type Diagnostics []*Diagnostic

func (diags *Diagnostics) add(stmt *Statement, err error) {
	diag := &Diagnostic{Err: err}
	if stmt != nil {
		diag.LineNo = stmt.LineNo
		diag.Line = stmt.Line
	}
	*diags = append(*diags, diag)
}

// Err returns nil for an empty list, or the list as an error.
func (diags Diagnostics) Err() error {
	if len(diags) == 0 {
		return nil
	}
	return diags
}

func (diags Diagnostics) Error() string {
	lines := make([]string, 0, len(diags))
	for _, diag := range diags {
		lines = append(lines, diag.Error())
	}
	return strings.Join(lines, "\n")
}

func (diags Diagnostics) Unwrap() []error {
	errs := make([]error, 0, len(diags))
	for _, diag := range diags {
		errs = append(errs, diag)
	}
	return errs
}

// WithFile names the source file of every diagnostic.
func (diags Diagnostics) WithFile(name string) Diagnostics {
	for _, diag := range diags {
		diag.File = name
	}
	return diags
}

// Sort orders diagnostics by line, file-level diagnostics last.
func (diags Diagnostics) Sort() {
	slices.SortStableFunc(diags, func(a, b *Diagnostic) int {
		switch {
		case a.LineNo == b.LineNo:
			return 0
		case a.LineNo == 0:
			return 1
		case b.LineNo == 0:
			return -1
		}
		return a.LineNo - b.LineNo
	})
}
