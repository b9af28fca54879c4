// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package asm

import (
	"iter"
	"slices"
)

// ExternalRef is one use of an external symbol.
type ExternalRef struct {
	Label   string // External symbol name.
	Address int    // Address of the word that refers to it.
}

// Externals records external references in emission order.
type Externals struct {
	refs []ExternalRef
}

func (ext *Externals) add(label string, addr int) {
	ext.refs = append(ext.refs, ExternalRef{Label: label, Address: addr})
}

// Len returns the number of references.
func (ext *Externals) Len() int {
	return len(ext.refs)
}

// All iterates over the references in emission order.
func (ext *Externals) All() iter.Seq[ExternalRef] {
	return slices.Values(ext.refs)
}
