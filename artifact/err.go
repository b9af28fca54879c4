package artifact

import (
	"errors"

	"github.com/ezrec/quadasm/translate"
)

var f = translate.From

var (
	ErrNoObject = errors.New(f("no object to emit"))
)
