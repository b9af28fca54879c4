// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package asm

import (
	"iter"
	"maps"
	"slices"
)

// Symbol is a named address.
type Symbol struct {
	Name     string // Label name.
	Address  int    // Absolute address, or the data offset before rebase.
	External bool   // Declared with .extern; Address is meaningless.
	Entry    bool   // Exported with .entry.
	Data     bool   // Defined in the data region.
}

// SymbolTable holds every symbol of a program, in discovery order.
type SymbolTable struct {
	Origin    int // First code address.
	CodeWords int // Instruction words counted by pass 1.
	DataWords int // Data words counted by pass 1.

	symbols []Symbol
	index   map[string]int
	rebased bool
}

// NewSymbolTable returns an empty table.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{
		index: map[string]int{},
	}
}

// define adds a symbol. An external redeclaration of an external symbol is
// accepted; any other redefinition is ErrLabelDuplicate.
func (st *SymbolTable) define(sym Symbol) (err error) {
	n, ok := st.index[sym.Name]
	if ok {
		if sym.External && st.symbols[n].External {
			return
		}
		err = ErrLabelDuplicate(sym.Name)
		return
	}

	st.index[sym.Name] = len(st.symbols)
	st.symbols = append(st.symbols, sym)
	return
}

// rebase moves every data symbol past the code region. It runs once.
func (st *SymbolTable) rebase(offset int) (err error) {
	if st.rebased {
		err = ErrRebased
		return
	}

	for n := range st.symbols {
		if st.symbols[n].Data {
			st.symbols[n].Address += offset
		}
	}
	st.rebased = true

	return
}

// markEntry flags a symbol for export.
func (st *SymbolTable) markEntry(name string) (err error) {
	n, ok := st.index[name]
	switch {
	case !ok:
		err = ErrSymbolUndefined(name)
	case st.symbols[n].External:
		err = ErrEntryExternal(name)
	default:
		st.symbols[n].Entry = true
	}

	return
}

// Rebased returns true once data addresses are final.
func (st *SymbolTable) Rebased() bool {
	return st.rebased
}

// Len returns the number of symbols.
func (st *SymbolTable) Len() int {
	return len(st.symbols)
}

// Lookup finds a symbol by name.
func (st *SymbolTable) Lookup(name string) (sym Symbol, ok bool) {
	n, ok := st.index[name]
	if !ok {
		return
	}
	sym = st.symbols[n]
	return
}

// Address returns the final address of a symbol.
//
// Data symbols are not readable until the table is rebased.
func (st *SymbolTable) Address(name string) (addr int, sym Symbol, err error) {
	sym, ok := st.Lookup(name)
	switch {
	case !ok:
		err = ErrSymbolUndefined(name)
	case sym.Data && !st.rebased:
		err = ErrNotRebased
	default:
		addr = sym.Address
	}

	return
}

// All iterates over symbols in discovery order.
func (st *SymbolTable) All() iter.Seq[Symbol] {
	return slices.Values(st.symbols)
}

// Entries iterates over exported symbols in discovery order.
func (st *SymbolTable) Entries() iter.Seq[Symbol] {
	return func(yield func(Symbol) bool) {
		for _, sym := range st.symbols {
			if sym.Entry && !yield(sym) {
				return
			}
		}
	}
}

// Clone returns an independent copy.
func (st *SymbolTable) Clone() *SymbolTable {
	clone := *st
	clone.symbols = slices.Clone(st.symbols)
	clone.index = maps.Clone(st.index)
	return &clone
}
