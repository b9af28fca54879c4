// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package asm

import (
	"github.com/golang/glog"

	"github.com/ezrec/quadasm/isa"
)

// encoder is the state of pass 2.
type encoder struct {
	table     *SymbolTable
	image     *Image
	externals *Externals
	ic        int
	dc        int
	diags     Diagnostics
}

func (enc *encoder) emit(value uint16, tag isa.Tag) {
	glog.V(2).Infof("pass 2: %04d %08b %v", enc.ic, value, tag)
	enc.image.Code = append(enc.image.Code, Word{Value: value & isa.VALUE_MASK, Tag: tag})
	enc.ic++
}

// reference emits the address word of a symbol operand.
//
// An undefined symbol still occupies its word, so later addresses match
// pass 1.
func (enc *encoder) reference(name string) (err error) {
	addr, sym, err := enc.table.Address(name)
	switch {
	case err != nil:
		enc.emit(0, isa.TAG_ABSOLUTE)
	case sym.External:
		enc.externals.add(name, enc.ic)
		enc.emit(0, isa.TAG_EXTERNAL)
	default:
		enc.emit(isa.Value(addr), isa.TAG_RELOCATABLE)
	}

	return
}

func (enc *encoder) operand(op isa.Operand) (err error) {
	switch op.Mode {
	case isa.MODE_IMMEDIATE:
		var value int
		value, err = parseLiteral(op.Literal)
		enc.emit(isa.Value(value), isa.TAG_ABSOLUTE)
	case isa.MODE_DIRECT:
		err = enc.reference(op.Symbol)
	case isa.MODE_INDEXED:
		err = enc.reference(op.Symbol)
		enc.emit(isa.IndexWord(op.Register, op.Column), isa.TAG_ABSOLUTE)
	case isa.MODE_REGISTER:
		enc.emit(uint16(op.Register), isa.TAG_ABSOLUTE)
	}

	return
}

func (enc *encoder) instruction(stmt *Statement, ins instruction) {
	start := enc.ic

	var src, dst isa.Mode
	switch len(ins.operands) {
	case 1:
		dst = ins.operands[0].Mode
	case 2:
		src, dst = ins.operands[0].Mode, ins.operands[1].Mode
	}
	enc.emit(isa.BaseWord(ins.desc.Opcode, src, dst), isa.TAG_ABSOLUTE)

	if len(ins.operands) == 2 && src == isa.MODE_REGISTER && dst == isa.MODE_REGISTER {
		enc.emit(isa.RegisterPair(ins.operands[0].Register, ins.operands[1].Register), isa.TAG_ABSOLUTE)
	} else {
		for _, op := range ins.operands {
			err := enc.operand(op)
			if err != nil {
				enc.diags.add(stmt, err)
			}
		}
	}

	if enc.ic-start != ins.length {
		enc.diags.add(stmt, ErrPassMismatch)
	}
}

func (enc *encoder) statement(stmt *Statement) {
	// Statements that failed pass 1 already have their diagnostic.
	if stmt.Err != nil {
		return
	}

	switch {
	case len(stmt.Op) == 0, stmt.Op == isa.DIRECTIVE_EXTERN:
	case stmt.Op == isa.DIRECTIVE_ENTRY:
		if len(stmt.Operands) != 1 || isa.ValidLabel(stmt.Operands[0]) != nil {
			return
		}
		err := enc.table.markEntry(stmt.Operands[0])
		if err != nil {
			enc.diags.add(stmt, err)
		}
	case isData(stmt.Op):
		values, err := analyzeData(stmt)
		if err != nil {
			return
		}
		for _, value := range values {
			enc.image.Data = append(enc.image.Data, Word{Value: isa.Value(value), Tag: isa.TAG_ABSOLUTE})
		}
		enc.dc += len(values)
	default:
		ins, err := analyzeInstruction(stmt)
		if err != nil {
			return
		}
		enc.instruction(stmt, ins)
	}
}

// Encode runs pass 2 over the statements resolved into symbols.
//
// The table given is not modified: entry flags are set on a copy, which is
// returned in the Object. The Object is returned even when diagnostics
// were raised, for inspection; it must not be emitted.
func (asm *Assembler) Encode(stmts []Statement, symbols *SymbolTable) (obj *Object, diags Diagnostics) {
	enc := &encoder{
		table:     symbols.Clone(),
		image:     &Image{Base: symbols.Origin},
		externals: &Externals{},
		ic:        symbols.Origin,
		dc:        isa.INITIAL_DC,
	}

	if !symbols.Rebased() {
		diags.add(nil, ErrNotRebased)
		return
	}

	for n := range stmts {
		enc.statement(&stmts[n])
	}

	if enc.ic-symbols.Origin != symbols.CodeWords || enc.dc-isa.INITIAL_DC != symbols.DataWords {
		enc.diags.add(nil, ErrPassMismatch)
	}

	glog.V(1).Infof("pass 2: %d code words, %d data words, %d external references, %d errors",
		len(enc.image.Code), len(enc.image.Data), enc.externals.Len(), len(enc.diags))

	obj = &Object{
		Image:     enc.image,
		Symbols:   enc.table,
		Externals: enc.externals,
	}

	return obj, enc.diags
}
