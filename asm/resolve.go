// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package asm

import (
	"github.com/golang/glog"

	"github.com/ezrec/quadasm/isa"
)

// instruction is the analysis of an instruction statement, shared by both
// passes so that they agree on every length.
type instruction struct {
	desc     isa.Descriptor
	operands []isa.Operand
	length   int
}

// analyzeInstruction validates an instruction and computes its length.
func analyzeInstruction(stmt *Statement) (ins instruction, err error) {
	desc, ok := isa.Lookup(stmt.Op)
	if !ok {
		err = ErrMnemonicUnknown(stmt.Op)
		return
	}

	if len(stmt.Operands) != desc.Operands {
		err = &ErrOperandCount{Op: stmt.Op, Want: desc.Operands, Have: len(stmt.Operands)}
		return
	}

	ins.desc = desc
	for n, slot := range desc.Slots() {
		op := isa.Classify(stmt.Operands[n])
		if op.Err != nil {
			err = &ErrOperand{Operand: op.Token, Err: op.Err}
			return
		}
		if !desc.Allowed(slot, op.Mode) {
			err = &ErrOperandMode{Op: stmt.Op, Slot: slot, Operand: op.Token, Mode: op.Mode}
			return
		}
		if op.Mode == isa.MODE_IMMEDIATE {
			_, err = parseLiteral(op.Literal)
			if err != nil {
				err = &ErrOperand{Operand: op.Token, Err: err}
				return
			}
		}
		ins.operands = append(ins.operands, op)
	}
	ins.length = isa.Length(ins.operands)

	return
}

// analyzeData validates a data directive and returns its values.
func analyzeData(stmt *Statement) (values []int, err error) {
	switch stmt.Op {
	case isa.DIRECTIVE_DATA:
		if len(stmt.Operands) == 0 {
			err = &ErrOperandCount{Op: stmt.Op, Want: 1, Have: 0}
			return
		}
		for _, word := range stmt.Operands {
			var value int
			value, err = parseLiteral(word)
			if err != nil {
				return nil, err
			}
			values = append(values, value)
		}
	case isa.DIRECTIVE_STRING:
		if len(stmt.Operands) != 1 {
			err = ErrStringSyntax
			return
		}
		values, err = parseString(stmt.Operands[0])
	case isa.DIRECTIVE_MAT:
		if len(stmt.Operands) == 0 {
			err = ErrMatrixSyntax
			return
		}
		var rows, cols int
		rows, cols, err = parseDims(stmt.Operands[0])
		if err != nil {
			return
		}
		size := rows * cols
		cells := stmt.Operands[1:]
		if len(cells) > size {
			err = &ErrMatrixOverflow{Size: size, Values: len(cells)}
			return
		}
		values = make([]int, size)
		for n, word := range cells {
			values[n], err = parseLiteral(word)
			if err != nil {
				return nil, err
			}
		}
	default:
		err = ErrMnemonicUnknown(stmt.Op)
	}

	return
}

// isData returns true for directives that place words in the data region.
func isData(op string) bool {
	switch op {
	case isa.DIRECTIVE_DATA, isa.DIRECTIVE_STRING, isa.DIRECTIVE_MAT:
		return true
	}
	return false
}

// resolver is the state of pass 1.
type resolver struct {
	table *SymbolTable
	ic    int
	dc    int
	diags Diagnostics
}

// label registers the label of a statement, if any.
func (res *resolver) label(stmt *Statement, addr int, data bool) {
	if !stmt.Labeled {
		return
	}

	err := isa.ValidLabel(stmt.Label)
	if err != nil {
		res.diags.add(stmt, &ErrLabelInvalid{Label: stmt.Label, Err: err})
		return
	}

	err = res.table.define(Symbol{Name: stmt.Label, Address: addr, Data: data})
	if err != nil {
		res.diags.add(stmt, err)
		return
	}

	glog.V(2).Infof("pass 1: line %d: %v = %d (data %v)", stmt.LineNo, stmt.Label, addr, data)
}

// symbolOperand checks the single label operand of .entry and .extern.
func (res *resolver) symbolOperand(stmt *Statement) (name string, ok bool) {
	if len(stmt.Operands) != 1 {
		res.diags.add(stmt, &ErrOperandCount{Op: stmt.Op, Want: 1, Have: len(stmt.Operands)})
		return
	}

	name = stmt.Operands[0]
	err := isa.ValidLabel(name)
	if err != nil {
		res.diags.add(stmt, &ErrLabelInvalid{Label: name, Err: err})
		return
	}

	return name, true
}

func (res *resolver) statement(stmt *Statement) {
	switch {
	case stmt.Op == isa.DIRECTIVE_ENTRY || stmt.Op == isa.DIRECTIVE_EXTERN:
		if stmt.Labeled {
			glog.Warningf("line %d: label %v on %v ignored", stmt.LineNo, stmt.Label, stmt.Op)
		}
	case isData(stmt.Op):
		res.label(stmt, res.dc, true)
	default:
		res.label(stmt, res.ic, false)
	}

	if stmt.Err != nil {
		res.diags.add(stmt, stmt.Err)
		return
	}

	switch {
	case len(stmt.Op) == 0:
	case stmt.Op == isa.DIRECTIVE_ENTRY:
		// Checked in pass 2, once every label is known.
		res.symbolOperand(stmt)
	case stmt.Op == isa.DIRECTIVE_EXTERN:
		name, ok := res.symbolOperand(stmt)
		if !ok {
			return
		}
		err := res.table.define(Symbol{Name: name, External: true})
		if err != nil {
			res.diags.add(stmt, err)
		}
	case isData(stmt.Op):
		values, err := analyzeData(stmt)
		if err != nil {
			res.diags.add(stmt, err)
			return
		}
		res.dc += len(values)
	default:
		ins, err := analyzeInstruction(stmt)
		if err != nil {
			res.diags.add(stmt, err)
			return
		}
		res.ic += ins.length
	}
}

// Resolve runs pass 1: it assigns an address to every label, rebases data
// symbols past the code region and checks the program fits in memory.
//
// The table is returned even when diagnostics were raised.
func (asm *Assembler) Resolve(stmts []Statement) (table *SymbolTable, diags Diagnostics) {
	origin := asm.origin()
	res := &resolver{
		table: NewSymbolTable(),
		ic:    origin,
		dc:    isa.INITIAL_DC,
	}

	for n := range stmts {
		res.statement(&stmts[n])
	}

	table = res.table
	table.Origin = origin
	table.CodeWords = res.ic - origin
	table.DataWords = res.dc - isa.INITIAL_DC

	err := table.rebase(res.ic)
	if err != nil {
		res.diags.add(nil, err)
	}

	// Addresses must fit the value field of a word.
	if origin < 0 || asm.capacity() > isa.MEMORY_SIZE {
		res.diags.add(nil, &ErrAddressRange{Origin: origin, Capacity: asm.capacity()})
	}

	words := origin + table.CodeWords + table.DataWords
	if words > asm.capacity() {
		res.diags.add(nil, &ErrCapacity{Words: words, Capacity: asm.capacity()})
	}

	glog.V(1).Infof("pass 1: %d symbols, %d code words, %d data words, %d errors",
		table.Len(), table.CodeWords, table.DataWords, len(res.diags))

	return table, res.diags
}
