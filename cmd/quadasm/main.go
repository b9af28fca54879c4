// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/golang/glog"
	"github.com/k0kubun/pp/v3"
	"github.com/spf13/cobra"

	"github.com/ezrec/quadasm/artifact"
	"github.com/ezrec/quadasm/asm"
	"github.com/ezrec/quadasm/driver"
	"github.com/ezrec/quadasm/isa"
	"github.com/ezrec/quadasm/translate"
)

var f = translate.From

var ErrFailed = errors.New(f("one or more files failed"))

// dumpSymbols pretty prints a symbol table.
func dumpSymbols(w io.Writer, name string, symbols *asm.SymbolTable) {
	printer := pp.New()
	printer.SetOutput(w)
	printer.SetColoringEnabled(false)
	fmt.Fprintf(w, "%v:\n", name)
	printer.Println(slices.Collect(symbols.All()))
}

func newRootCmd() *cobra.Command {
	drv := &driver.Driver{
		Source: artifact.DirFS(""),
		Output: artifact.DirFS(""),
	}
	var dump bool

	root := &cobra.Command{
		Use:   "quadasm [flags] file...",
		Short: "Two pass assembler for the quadasm CPU",
		Long: `Quadasm assembles each NAME.as given (the extension may be omitted).

Macros are expanded into NAME.am, which is then assembled. A clean file
produces NAME.ob, plus NAME.ent when it declares entry points and NAME.ext
when it refers to external symbols. A file with any error produces no
artifacts; every error in it is reported.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			succeeded, results := drv.Batch(args)
			for _, res := range results {
				if res.Err != nil {
					fmt.Fprintln(cmd.ErrOrStderr(), res.Err)
					continue
				}
				if dump {
					dumpSymbols(cmd.OutOrStdout(), res.Base, res.Object.Symbols)
				}
			}

			translate.Printer().Fprintf(cmd.OutOrStdout(), "Processing complete: %d/%d files successful.\n", succeeded, len(args))

			if succeeded != len(args) {
				return ErrFailed
			}
			return nil
		},
	}

	persistent := root.PersistentFlags()
	persistent.IntVar(&drv.Assembler.Origin, "origin", isa.INITIAL_IC, "first code address")
	persistent.BoolVar(&drv.NoMacro, "no-macro", false, "assemble sources without macro expansion")
	persistent.AddGoFlagSet(flag.CommandLine)

	flags := root.Flags()
	flags.StringVarP(&drv.OutputDir, "output", "o", "", "directory for artifacts (default: next to each source)")
	flags.BoolVar(&dump, "dump-symbols", false, "print the symbol table of each assembled file")

	root.AddCommand(newReplCmd(drv))

	return root
}

func main() {
	flag.Set("logtostderr", "true")
	defer glog.Flush()

	err := newRootCmd().Execute()
	if err != nil {
		if !errors.Is(err, ErrFailed) {
			fmt.Fprintln(os.Stderr, err)
		}
		glog.Flush()
		os.Exit(1)
	}
}
