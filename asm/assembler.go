// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package asm

import (
	"io"

	"github.com/golang/glog"

	"github.com/ezrec/quadasm/isa"
)

// Assembler is a two pass assembler for the quadasm CPU.
//
// The zero value assembles at isa.INITIAL_IC into isa.MEMORY_SIZE words.
// A negative Origin, or a Capacity above isa.MEMORY_SIZE, is rejected by
// Resolve.
type Assembler struct {
	Origin   int // First code address, if non-zero.
	Capacity int // Address space size, if non-zero.
}

func (asm *Assembler) origin() int {
	if asm.Origin == 0 {
		return isa.INITIAL_IC
	}
	return asm.Origin
}

func (asm *Assembler) capacity() int {
	if asm.Capacity == 0 {
		return isa.MEMORY_SIZE
	}
	return asm.Capacity
}

// Assemble parses, resolves and encodes a macro-free source.
//
// On failure the error is the sorted Diagnostics of both passes.
func (asm *Assembler) Assemble(input io.Reader) (obj *Object, err error) {
	stmts, diags := Parse(input)
	glog.V(1).Infof("parse: %d statements", len(stmts))

	table, more := asm.Resolve(stmts)
	diags = append(diags, more...)

	obj, more = asm.Encode(stmts, table)
	diags = append(diags, more...)

	if len(diags) > 0 {
		diags.Sort()
		return nil, diags
	}

	return
}
