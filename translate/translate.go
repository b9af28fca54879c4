// Package translate renders user-visible assembler messages through the
// message catalog of the host locale.
package translate

import (
	"github.com/golang/glog"
	"github.com/jeandeaual/go-locale"

	"golang.org/x/text/message"
)

//go:generate go tool gotext -srclang=en-US update -out=catalog.go -lang=en-US github.com/ezrec/quadasm/asm github.com/ezrec/quadasm/macro github.com/ezrec/quadasm/driver

var printer *message.Printer

func init() {
	locales, err := locale.GetLocales()
	if err != nil {
		glog.Warningf("quadasm: locale: %v", err)
	}

	if len(locales) == 0 {
		locales = []string{"en-US"}
	}

	printer = message.NewPrinter(message.MatchLanguage(locales...))
}

// From an en-US Sprintf() format, translate to string.
func From(key message.Reference, args ...any) string {
	return printer.Sprintf(key, args...)
}

// Printer returns the locale printer, for callers that format whole reports.
func Printer() *message.Printer {
	return printer
}
