// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package artifact

import (
	"bufio"
	"bytes"
	"fmt"
	"io"

	"github.com/golang/glog"

	"github.com/ezrec/quadasm/asm"
)

const (
	EXT_OBJECT    = ".ob"
	EXT_ENTRIES   = ".ent"
	EXT_EXTERNALS = ".ext"
)

// WriteObject writes the object artifact of an image.
func WriteObject(w io.Writer, img *asm.Image) (err error) {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "%s %s\n", Compact(len(img.Code)), Compact(len(img.Data)))
	for addr, word := range img.Words() {
		fmt.Fprintf(bw, "%s  %s\n", Compact(addr), Compact(int(word.Payload())))
	}

	return bw.Flush()
}

// WriteEntries writes one line per entry symbol, in discovery order.
func WriteEntries(w io.Writer, symbols *asm.SymbolTable) (err error) {
	bw := bufio.NewWriter(w)

	for sym := range symbols.Entries() {
		fmt.Fprintf(bw, "%s %04d\n", sym.Name, sym.Address)
	}

	return bw.Flush()
}

// WriteExternals writes one line per external reference, in address order.
func WriteExternals(w io.Writer, externals *asm.Externals) (err error) {
	bw := bufio.NewWriter(w)

	for ref := range externals.All() {
		fmt.Fprintf(bw, "%s %04d\n", ref.Label, ref.Address)
	}

	return bw.Flush()
}

func hasEntries(symbols *asm.SymbolTable) bool {
	for range symbols.Entries() {
		return true
	}
	return false
}

// create writes a single rendered artifact file.
func create(filesys CreateFS, name string, data []byte) (err error) {
	file, err := filesys.Create(name)
	if err != nil {
		return
	}

	_, err = file.Write(data)
	if err != nil {
		file.Close()
		return
	}

	return file.Close()
}

type rendered struct {
	name string
	data bytes.Buffer
}

// Emit writes the artifacts of obj as base.ob, base.ent and base.ext.
// The entries and externals files are only written when non-empty.
//
// Every artifact is rendered before any file is created, and base.ob is
// created last: it exists only if the whole emission succeeded. On error
// the names already written are returned, and the caller should discard
// them.
func Emit(filesys CreateFS, base string, obj *asm.Object) (names []string, err error) {
	if obj == nil {
		err = ErrNoObject
		return
	}

	var files []*rendered

	if hasEntries(obj.Symbols) {
		ent := &rendered{name: base + EXT_ENTRIES}
		err = WriteEntries(&ent.data, obj.Symbols)
		if err != nil {
			return
		}
		files = append(files, ent)
	}

	if obj.Externals.Len() > 0 {
		ext := &rendered{name: base + EXT_EXTERNALS}
		err = WriteExternals(&ext.data, obj.Externals)
		if err != nil {
			return
		}
		files = append(files, ext)
	}

	ob := &rendered{name: base + EXT_OBJECT}
	err = WriteObject(&ob.data, obj.Image)
	if err != nil {
		return
	}
	files = append(files, ob)

	for _, file := range files {
		err = create(filesys, file.name, file.data.Bytes())
		if err != nil {
			return
		}
		names = append(names, file.name)
	}

	glog.V(1).Infof("emit: %v", names)

	return
}
