// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package driver runs the assembler over source files.
package driver

import (
	"errors"
	"io"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/golang/glog"

	"github.com/ezrec/quadasm/artifact"
	"github.com/ezrec/quadasm/asm"
	"github.com/ezrec/quadasm/macro"
)

const (
	EXT_SOURCE   = ".as" // Source, with macros.
	EXT_EXPANDED = ".am" // Source, macros expanded.
)

// Driver state. Assembler configuration plus file systems.
type Driver struct {
	Assembler asm.Assembler     // Assembler configuration.
	Source    fs.FS             // Source files.
	Output    artifact.CreateFS // Expanded sources and artifacts.
	OutputDir string            // If set, a directory of Output holding every artifact.
	NoMacro   bool              // If set, sources are assembled without macro expansion.
}

// Result is the outcome of one file.
type Result struct {
	Base      string      // Base name, without extension.
	Artifacts []string    // Files written, relative to the output.
	Object    *asm.Object // Assembled object, nil on failure.
	Err       error       // Failure, if any.
}

// output returns the file system artifacts go to, and the base name in it.
func (drv *Driver) output(base string) (out artifact.CreateFS, name string, err error) {
	if len(drv.OutputDir) == 0 {
		return drv.Output, base, nil
	}

	err = drv.Output.Mkdir(drv.OutputDir, 0o755)
	if err != nil && !errors.Is(err, fs.ErrExist) {
		return
	}

	out, err = drv.Output.Sub(drv.OutputDir)
	if err != nil {
		return
	}

	return out, filepath.Base(base), nil
}

func writeLines(out artifact.CreateFS, name string, lines []string) (err error) {
	file, err := out.Create(name)
	if err != nil {
		return
	}

	for _, line := range lines {
		_, err = io.WriteString(file, line+"\n")
		if err != nil {
			file.Close()
			return
		}
	}

	return file.Close()
}

// File assembles base.as, and writes its artifacts when it is clean.
// The base name may carry the .as extension.
func (drv *Driver) File(base string) (res Result) {
	base = strings.TrimSuffix(base, EXT_SOURCE)
	res.Base = base

	fail := func(name string, err error) Result {
		res.Err = &ErrFile{Name: name, Err: err}
		glog.V(1).Infof("%v: failed", name)
		return res
	}

	if drv.Source == nil {
		return fail(base+EXT_SOURCE, ErrNoSource)
	}

	text, err := fs.ReadFile(drv.Source, base+EXT_SOURCE)
	if err != nil {
		return fail(base+EXT_SOURCE, err)
	}

	out, outbase, err := drv.output(base)
	if err != nil {
		return fail(drv.OutputDir, err)
	}

	name := base + EXT_SOURCE
	source := string(text)
	if !drv.NoMacro {
		lines, err := macro.Expand(strings.NewReader(source))
		if err != nil {
			return fail(name, err)
		}

		name = base + EXT_EXPANDED
		err = writeLines(out, outbase+EXT_EXPANDED, lines)
		if err != nil {
			return fail(name, err)
		}
		res.Artifacts = append(res.Artifacts, outbase+EXT_EXPANDED)
		source = strings.Join(lines, "\n")
	}

	obj, err := drv.Assembler.Assemble(strings.NewReader(source))
	if err != nil {
		var diags asm.Diagnostics
		if errors.As(err, &diags) {
			err = diags.WithFile(name)
		}
		res.Err = err
		glog.V(1).Infof("%v: %d errors", name, len(diags))
		return
	}

	names, err := artifact.Emit(out, outbase, obj)
	res.Artifacts = append(res.Artifacts, names...)
	if err != nil {
		return fail(outbase, err)
	}

	res.Object = obj
	glog.V(1).Infof("%v: wrote %v", name, res.Artifacts)

	return
}

// Batch processes each file in turn. A failure in one file does not
// affect the others.
func (drv *Driver) Batch(bases []string) (succeeded int, results []Result) {
	for _, base := range bases {
		res := drv.File(base)
		if res.Err == nil {
			succeeded++
		}
		results = append(results, res)
	}

	return
}
