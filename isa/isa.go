// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package isa

import (
	"strings"
)

const (
	MEMORY_SIZE      = 256 // Addressable words, code and data together.
	INITIAL_IC       = 100 // First code address.
	INITIAL_DC       = 0   // First data offset, before rebase.
	REGISTER_COUNT   = 8   // r0 through r7.
	MAX_LABEL_LENGTH = 32  // Labels must be strictly shorter.
)

// Word layout. The value field occupies bits 9-2 of the payload, the tag
// bits 1-0.
//
//	base word:     opcode 7-4 | source mode 3-2 | destination mode 1-0
//	register pair: source register 7-4 | destination register 3-0
//	index word:    row register 7-4 | column register 3-0
const (
	VALUE_BITS = 8
	VALUE_MASK = (1 << VALUE_BITS) - 1
	VALUE_MIN  = -(1 << (VALUE_BITS - 1)) // Smallest literal accepted.
	VALUE_MAX  = VALUE_MASK               // Largest literal accepted.

	TAG_BITS  = 2
	TAG_MASK  = (1 << TAG_BITS) - 1
	WORD_BITS = VALUE_BITS + TAG_BITS

	OPCODE_SHIFT   = 4
	SRC_MODE_SHIFT = 2
	DST_MODE_SHIFT = 0
	SRC_REG_SHIFT  = 4
	DST_REG_SHIFT  = 0
)

// Tag is the loader classification of a word.
type Tag int

//go:generate go tool stringer -linecomment -type=Tag
const (
	TAG_ABSOLUTE    = Tag(0) // A
	TAG_EXTERNAL    = Tag(1) // E
	TAG_RELOCATABLE = Tag(2) // R
)

// Mode is an operand addressing mode.
type Mode int

//go:generate go tool stringer -linecomment -type=Mode
const (
	MODE_IMMEDIATE = Mode(0) // immediate
	MODE_DIRECT    = Mode(1) // direct
	MODE_INDEXED   = Mode(2) // indexed
	MODE_REGISTER  = Mode(3) // register
)

// Words returns the number of trailing words an operand of this mode needs
// when it is not packed with another register.
func (mode Mode) Words() int {
	if mode == MODE_INDEXED {
		return 2
	}
	return 1
}

// ModeSet is a set of addressing modes.
type ModeSet uint8

// Modes builds a ModeSet.
func Modes(modes ...Mode) (ms ModeSet) {
	for _, mode := range modes {
		ms |= 1 << mode
	}
	return
}

// Has returns true if mode is in the set.
func (ms ModeSet) Has(mode Mode) bool {
	return mode >= 0 && mode < 8 && (ms&(1<<mode)) != 0
}

var (
	ALL_MODES      = Modes(MODE_IMMEDIATE, MODE_DIRECT, MODE_INDEXED, MODE_REGISTER)
	WRITABLE_MODES = Modes(MODE_DIRECT, MODE_INDEXED, MODE_REGISTER)
	MEMORY_MODES   = Modes(MODE_DIRECT, MODE_INDEXED)
	JUMP_MODES     = Modes(MODE_DIRECT, MODE_REGISTER)
)

// Opcode is an operation code.
type Opcode int

//go:generate go tool stringer -linecomment -type=Opcode
const (
	OP_MOV = Opcode(0)  // mov
	OP_CMP = Opcode(1)  // cmp
	OP_ADD = Opcode(2)  // add
	OP_SUB = Opcode(3)  // sub
	OP_NOT = Opcode(4)  // not
	OP_CLR = Opcode(5)  // clr
	OP_LEA = Opcode(6)  // lea
	OP_INC = Opcode(7)  // inc
	OP_DEC = Opcode(8)  // dec
	OP_JMP = Opcode(9)  // jmp
	OP_BNE = Opcode(10) // bne
	OP_RED = Opcode(11) // red
	OP_PRN = Opcode(12) // prn
	OP_JSR = Opcode(13) // jsr
	OP_RTS = Opcode(14) // rts
	OP_HLT = Opcode(15) // hlt
)

// Slot is an operand position in an instruction.
type Slot int

const (
	SLOT_SOURCE      = Slot(0)
	SLOT_DESTINATION = Slot(1)
)

func (slot Slot) String() string {
	if slot == SLOT_SOURCE {
		return "source"
	}
	return "destination"
}

// Descriptor describes one instruction.
type Descriptor struct {
	Opcode      Opcode
	Operands    int     // Operand arity, 0 to 2.
	Source      ModeSet // Allowed source modes.
	Destination ModeSet // Allowed destination modes.
}

var descriptors = [...]Descriptor{
	{OP_MOV, 2, ALL_MODES, WRITABLE_MODES},
	{OP_CMP, 2, ALL_MODES, ALL_MODES},
	{OP_ADD, 2, ALL_MODES, WRITABLE_MODES},
	{OP_SUB, 2, ALL_MODES, WRITABLE_MODES},
	{OP_NOT, 1, 0, WRITABLE_MODES},
	{OP_CLR, 1, 0, WRITABLE_MODES},
	{OP_LEA, 2, MEMORY_MODES, WRITABLE_MODES},
	{OP_INC, 1, 0, WRITABLE_MODES},
	{OP_DEC, 1, 0, WRITABLE_MODES},
	{OP_JMP, 1, 0, JUMP_MODES},
	{OP_BNE, 1, 0, JUMP_MODES},
	{OP_RED, 1, 0, WRITABLE_MODES},
	{OP_PRN, 1, 0, ALL_MODES},
	{OP_JSR, 1, 0, JUMP_MODES},
	{OP_RTS, 0, 0, 0},
	{OP_HLT, 0, 0, 0},
}

var mnemonics map[string]Descriptor

func init() {
	mnemonics = make(map[string]Descriptor, len(descriptors))
	for _, desc := range descriptors {
		mnemonics[desc.Opcode.String()] = desc
	}
}

// Lookup finds the descriptor of a mnemonic.
func Lookup(mnemonic string) (desc Descriptor, ok bool) {
	desc, ok = mnemonics[mnemonic]
	return
}

// Descriptors returns the full table, in opcode order.
func Descriptors() []Descriptor {
	return descriptors[:]
}

// Slots returns the operand slots in source order. A single operand always
// occupies the destination slot.
func (desc Descriptor) Slots() []Slot {
	switch desc.Operands {
	case 1:
		return []Slot{SLOT_DESTINATION}
	case 2:
		return []Slot{SLOT_SOURCE, SLOT_DESTINATION}
	}
	return nil
}

// Allowed returns true if mode may appear in slot.
func (desc Descriptor) Allowed(slot Slot, mode Mode) bool {
	if slot == SLOT_SOURCE {
		return desc.Source.Has(mode)
	}
	return desc.Destination.Has(mode)
}

// Directives.
const (
	DIRECTIVE_DATA   = ".data"
	DIRECTIVE_STRING = ".string"
	DIRECTIVE_MAT    = ".mat"
	DIRECTIVE_ENTRY  = ".entry"
	DIRECTIVE_EXTERN = ".extern"
)

var directives = []string{
	DIRECTIVE_DATA,
	DIRECTIVE_STRING,
	DIRECTIVE_MAT,
	DIRECTIVE_ENTRY,
	DIRECTIVE_EXTERN,
}

// IsDirective returns true for a known directive name.
func IsDirective(word string) bool {
	for _, dir := range directives {
		if word == dir {
			return true
		}
	}
	return false
}

// Macro keywords, reserved for the pre-assembler.
const (
	MACRO_BEGIN = "macr"
	MACRO_END   = "endmacr"
)

// Register decodes a register name.
func Register(word string) (reg int, ok bool) {
	if len(word) != 2 || word[0] != 'r' {
		return
	}
	reg = int(word[1]) - '0'
	if reg < 0 || reg >= REGISTER_COUNT {
		return 0, false
	}
	return reg, true
}

// Reserved returns true if word may not be used as a label or macro name.
func Reserved(word string) bool {
	if _, ok := Lookup(word); ok {
		return true
	}
	if IsDirective(word) || IsDirective("."+word) {
		return true
	}
	if _, ok := Register(word); ok {
		return true
	}
	return word == MACRO_BEGIN || word == MACRO_END
}

// ValidLabel checks the lexical rules of a label name.
func ValidLabel(name string) (err error) {
	switch {
	case len(name) == 0:
		return ErrLabelEmpty
	case len(name) >= MAX_LABEL_LENGTH:
		return ErrLabelLength
	case !isLetter(name[0]):
		return ErrLabelStart
	case strings.IndexFunc(name, func(r rune) bool { return !isAlnum(r) }) >= 0:
		return ErrLabelCharacter
	case Reserved(name):
		return ErrLabelReserved
	}

	return
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isAlnum(r rune) bool {
	return r < 0x80 && (isLetter(byte(r)) || (r >= '0' && r <= '9'))
}

// Value masks a literal into the value field (two's complement).
func Value(literal int) uint16 {
	return uint16(literal) & VALUE_MASK
}

// BaseWord encodes the first word of an instruction.
func BaseWord(op Opcode, src, dst Mode) uint16 {
	return uint16(op)<<OPCODE_SHIFT |
		uint16(src)<<SRC_MODE_SHIFT |
		uint16(dst)<<DST_MODE_SHIFT
}

// RegisterPair packs two register ordinals into one word.
func RegisterPair(src, dst int) uint16 {
	return uint16(src&0xf)<<SRC_REG_SHIFT | uint16(dst&0xf)<<DST_REG_SHIFT
}

// IndexWord encodes the row and column registers of an indexed operand.
func IndexWord(row, col int) uint16 {
	return RegisterPair(row, col)
}

// Payload combines a value field and a tag into a WORD_BITS integer.
func Payload(value uint16, tag Tag) uint16 {
	return (value&VALUE_MASK)<<TAG_BITS | uint16(tag)&TAG_MASK
}
