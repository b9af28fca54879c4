// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package asm

import (
	"iter"

	"github.com/ezrec/quadasm/internal"
	"github.com/ezrec/quadasm/isa"
)

// Word is one tagged memory word.
type Word struct {
	Value uint16  // Value field, VALUE_BITS wide.
	Tag   isa.Tag // Loader classification.
}

// Payload returns the value and tag packed together.
func (w Word) Payload() uint16 {
	return isa.Payload(w.Value, w.Tag)
}

// Image is the memory image of a program: code, then data.
type Image struct {
	Base int    // First code address.
	Code []Word // Instruction words.
	Data []Word // Data words, following the code.
}

// DataBase returns the address of the first data word.
func (img *Image) DataBase() int {
	return img.Base + len(img.Code)
}

// Words iterates over every word with its address, code first.
func (img *Image) Words() iter.Seq2[int, Word] {
	return internal.IterSeq2Concat(
		internal.IterIndexed(img.Base, img.Code),
		internal.IterIndexed(img.DataBase(), img.Data),
	)
}

// Word returns the word at an address.
func (img *Image) Word(addr int) (w Word, ok bool) {
	switch {
	case addr >= img.Base && addr < img.DataBase():
		return img.Code[addr-img.Base], true
	case addr >= img.DataBase() && addr < img.DataBase()+len(img.Data):
		return img.Data[addr-img.DataBase()], true
	}
	return
}

// Object is the result of a successful assembly.
type Object struct {
	Image     *Image       // Memory image.
	Symbols   *SymbolTable // Symbols, with entry flags set.
	Externals *Externals   // External references.
}
