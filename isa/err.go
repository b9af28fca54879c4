package isa

import (
	"errors"

	"github.com/ezrec/quadasm/translate"
)

var f = translate.From

var (
	// Label errors
	ErrLabelEmpty     = errors.New(f("label empty"))
	ErrLabelLength    = errors.New(f("label too long"))
	ErrLabelStart     = errors.New(f("label must start with a letter"))
	ErrLabelCharacter = errors.New(f("label must be alphanumeric"))
	ErrLabelReserved  = errors.New(f("label is a reserved word"))

	// Operand errors
	ErrOperandEmpty     = errors.New(f("operand empty"))
	ErrImmediateMissing = errors.New(f("immediate value missing"))
	ErrIndexSyntax      = errors.New(f("index must be [rN][rN]"))
	ErrIndexRegister    = errors.New(f("index register invalid"))
)
