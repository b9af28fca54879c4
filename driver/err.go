package driver

import (
	"errors"

	"github.com/ezrec/quadasm/translate"
)

var f = translate.From

var (
	ErrNoSource = errors.New(f("no source file system"))
)

// ErrFile indicates the file a failure belongs to.
type ErrFile struct {
	Name string
	Err  error
}

func (err *ErrFile) Error() string {
	return f("%v: %v", err.Name, err.Err)
}

func (err *ErrFile) Unwrap() error {
	return err.Err
}
