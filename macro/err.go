package macro

import (
	"errors"

	"github.com/ezrec/quadasm/translate"
)

var f = translate.From

var (
	ErrMacroNested       = errors.New(f("macro definition inside a macro definition"))
	ErrMacroEnd          = errors.New(f("endmacr without macr"))
	ErrMacroUnterminated = errors.New(f("macr without endmacr"))
	ErrMacroTrailing     = errors.New(f("unexpected text after macro keyword"))
	ErrMacroName         = errors.New(f("macr needs a name"))
)

type ErrMacroDuplicate string

func (err ErrMacroDuplicate) Error() string {
	return f("macro %v already defined", string(err))
}

type ErrMacroInvalid struct {
	Name string
	Err  error
}

func (err *ErrMacroInvalid) Error() string {
	return f("macro name '%v' invalid: %v", err.Name, err.Err)
}

func (err *ErrMacroInvalid) Unwrap() error {
	return err.Err
}

type ErrMacroLabel string

func (err ErrMacroLabel) Error() string {
	return f("label %v is a macro name", string(err))
}

// ErrSyntax indicates the location of a macro error.
type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err *ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err *ErrSyntax) Unwrap() error {
	return err.Err
}
