// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/ezrec/quadasm/artifact"
	"github.com/ezrec/quadasm/asm"
	"github.com/ezrec/quadasm/driver"
	"github.com/ezrec/quadasm/macro"
)

const replHelp = `Lines are collected into a source; commands start with ':'.
  :asm      assemble the source and show its artifacts
  :list     show the source
  :symbols  show the symbols of the last assembly
  :reset    discard the source
  :quit     leave
`

// session is the state of an interactive assembly.
type session struct {
	drv   *driver.Driver
	lines []string
	last  *asm.Object
}

func (ses *session) assemble(w io.Writer) {
	lines := ses.lines
	if !ses.drv.NoMacro {
		var err error
		lines, err = macro.Expand(strings.NewReader(strings.Join(lines, "\n")))
		if err != nil {
			fmt.Fprintln(w, err)
			return
		}
	}

	obj, err := ses.drv.Assembler.Assemble(strings.NewReader(strings.Join(lines, "\n")))
	if err != nil {
		fmt.Fprintln(w, err)
		return
	}
	ses.last = obj

	mfs := artifact.NewMemFS()
	names, err := artifact.Emit(mfs, "repl", obj)
	if err != nil {
		fmt.Fprintln(w, err)
		return
	}
	for _, name := range names {
		data, _ := mfs.ReadFile(name)
		fmt.Fprintf(w, "== %v ==\n%s", name, data)
	}
}

// command runs a ':' command, returning true to leave.
func (ses *session) command(w io.Writer, line string) (exit bool) {
	switch strings.TrimSpace(line) {
	case ":asm":
		ses.assemble(w)
	case ":list":
		for n, text := range ses.lines {
			fmt.Fprintf(w, "%4d  %v\n", n+1, text)
		}
	case ":symbols":
		if ses.last == nil {
			fmt.Fprintln(w, f("nothing assembled"))
			break
		}
		dumpSymbols(w, "repl", ses.last.Symbols)
	case ":reset":
		ses.lines = nil
		ses.last = nil
	case ":quit":
		return true
	default:
		fmt.Fprint(w, replHelp)
	}

	return false
}

// input handles one line typed by the user.
func (ses *session) input(w io.Writer, line string) (exit bool) {
	if strings.HasPrefix(strings.TrimSpace(line), ":") {
		return ses.command(w, line)
	}
	ses.lines = append(ses.lines, line)
	return false
}

func newReplCmd(drv *driver.Driver) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Assemble interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ln := liner.NewLiner()
			defer ln.Close()
			ln.SetCtrlCAborts(true)

			w := cmd.OutOrStdout()
			fmt.Fprint(w, replHelp)

			ses := &session{drv: drv}
			for {
				line, err := ln.Prompt(fmt.Sprintf("%3d> ", len(ses.lines)+1))
				if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
					fmt.Fprintln(w)
					return nil
				}
				if err != nil {
					return err
				}
				ln.AppendHistory(line)
				if ses.input(w, line) {
					return nil
				}
			}
		},
	}
}
