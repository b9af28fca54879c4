package asm

import (
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ezrec/quadasm/isa"
)

func assemble(t *testing.T, program ...string) (obj *Object, err error) {
	t.Helper()
	asm := &Assembler{}
	return asm.Assemble(strings.NewReader(strings.Join(program, "\n")))
}

func code(words ...any) (code []Word) {
	for n := 0; n < len(words); n += 2 {
		code = append(code, Word{Value: uint16(words[n].(int)), Tag: words[n+1].(isa.Tag)})
	}
	return
}

const (
	A = isa.TAG_ABSOLUTE
	E = isa.TAG_EXTERNAL
	R = isa.TAG_RELOCATABLE
)

func TestAssembler_Scenario(t *testing.T) {
	assert := assert.New(t)

	program := []string{
		"X: add r1, r2",
		"Y: inc r3",
		"DATA: .data 4,5,6",
	}

	stmts, diags := Parse(strings.NewReader(strings.Join(program, "\n")))
	require.Empty(t, diags)

	asm := &Assembler{}
	table, diags := asm.Resolve(stmts)
	require.Empty(t, diags)

	for name, expected := range map[string]int{"X": 100, "Y": 102, "DATA": 104} {
		addr, _, err := table.Address(name)
		assert.NoError(err)
		assert.Equal(expected, addr, name)
	}
	assert.Equal(100, table.Origin)
	assert.Equal(4, table.CodeWords)
	assert.Equal(3, table.DataWords)

	obj, diags := asm.Encode(stmts, table)
	require.Empty(t, diags)

	assert.Equal(code(
		0b0010_11_11, A, // add r1, r2
		0b0001_0010, A,
		0b0111_00_11, A, // inc r3
		3, A,
	), obj.Image.Code)
	assert.Equal(code(4, A, 5, A, 6, A), obj.Image.Data)
	assert.Equal(104, obj.Image.DataBase())

	w, ok := obj.Image.Word(105)
	assert.True(ok)
	assert.Equal(Word{Value: 5, Tag: A}, w)
	_, ok = obj.Image.Word(107)
	assert.False(ok)

	addrs := []int{}
	for addr := range obj.Image.Words() {
		addrs = append(addrs, addr)
	}
	assert.Equal([]int{100, 101, 102, 103, 104, 105, 106}, addrs)
}

func TestAssembler_WordCount(t *testing.T) {
	assert := assert.New(t)

	tests := map[string]int{
		"add r1, r2":       2,
		"inc r3":           2,
		"mov #1, r2":       3,
		"mov r1, X":        3,
		"cmp #1, #2":       3,
		"lea X, M[r1][r2]": 4,
		"prn M[r0][r7]":    3,
		"rts":              1,
		"hlt":              1,
	}

	for line, expected := range tests {
		obj, err := assemble(t, line, "X: hlt", "M: .mat [2][2]")
		if !assert.NoError(err, line) {
			continue
		}
		assert.Equal(expected+1, len(obj.Image.Code), line)
		assert.Equal(expected+1, obj.Symbols.CodeWords, line)
	}
}

func TestAssembler_TwoPass(t *testing.T) {
	assert := assert.New(t)

	obj, err := assemble(t,
		"jmp X",
		"X: add r1, r2",
		"jmp X",
	)
	require.NoError(t, err)

	jmp := 0b1001_00_01
	assert.Equal(code(
		jmp, A, 102, R,
		0b0010_11_11, A, 0b0001_0010, A,
		jmp, A, 102, R,
	), obj.Image.Code)
}

func TestAssembler_Rebase(t *testing.T) {
	assert := assert.New(t)

	obj, err := assemble(t,
		"S: .string \"ab\"",
		"MAIN: mov M[r1][r2], r3",
		"M: .mat [2][2] 1, 2, 3",
		"prn #-5",
		"mov S, r1",
		"N: .data $(2*3), -1",
	)
	require.NoError(t, err)

	code_end := obj.Image.DataBase()
	assert.Equal(100+4+2+3, code_end)

	expected := map[string]int{"S": 0, "M": 3, "N": 7}
	for sym := range obj.Symbols.All() {
		if !sym.Data {
			assert.Less(sym.Address, code_end)
			continue
		}
		assert.Equal(expected[sym.Name]+code_end, sym.Address, sym.Name)
		assert.Greater(sym.Address, code_end-1)
	}

	assert.Equal(code(
		0b0000_10_11, A, code_end+3, R, 0x12, A, 3, A,
		0b1100_00_00, A, 251, A,
		0b0000_01_11, A, code_end, R, 1, A,
	), obj.Image.Code)
	assert.Equal(code(
		97, A, 98, A, 0, A, // "ab"
		1, A, 2, A, 3, A, 0, A,
		6, A, 255, A,
	), obj.Image.Data)
}

func TestAssembler_Externals(t *testing.T) {
	assert := assert.New(t)

	obj, err := assemble(t,
		".extern EXT",
		"mov EXT, r1",
		".extern EXT",
		"prn EXT",
	)
	require.NoError(t, err)

	assert.Equal(code(
		0b0000_01_11, A, 0, E, 1, A,
		0b1100_00_01, A, 0, E,
	), obj.Image.Code)

	refs := slices.Collect(obj.Externals.All())
	assert.Equal([]ExternalRef{{"EXT", 101}, {"EXT", 104}}, refs)
	assert.Equal(2, obj.Externals.Len())
}

func TestAssembler_Entries(t *testing.T) {
	assert := assert.New(t)

	program := []string{
		".entry LAST",
		"FIRST: hlt",
		"LAST: .data 1",
		".entry FIRST",
	}

	stmts, _ := Parse(strings.NewReader(strings.Join(program, "\n")))
	asm := &Assembler{Origin: 10}
	table, diags := asm.Resolve(stmts)
	require.Empty(t, diags)
	obj, diags := asm.Encode(stmts, table)
	require.Empty(t, diags)

	entries := slices.Collect(obj.Symbols.Entries())
	assert.Equal([]Symbol{
		{Name: "FIRST", Address: 10, Entry: true},
		{Name: "LAST", Address: 11, Entry: true, Data: true},
	}, entries)

	// The resolver's table is left alone.
	assert.Empty(slices.Collect(table.Entries()))

	_, err := assemble(t, ".extern EXT", ".entry EXT")
	assert.ErrorIs(err, ErrInvalidOperandType)

	_, err = assemble(t, ".entry NOWHERE")
	assert.ErrorIs(err, ErrUndefinedSymbol)
}

func TestAssembler_Undefined(t *testing.T) {
	assert := assert.New(t)

	program := []string{
		"jmp NOWHERE",
		"mov r1, ELSEWHERE",
		"X: hlt",
	}

	obj, err := assemble(t, program...)
	assert.Nil(obj)
	assert.ErrorIs(err, ErrUndefinedSymbol)

	var diags Diagnostics
	require.True(t, errors.As(err, &diags))
	assert.Equal(2, len(diags))
	assert.Equal(1, diags[0].LineNo)
	assert.Equal(ErrSymbolUndefined("NOWHERE"), diags[0].Err)
	assert.Equal(2, diags[1].LineNo)

	// Placeholders keep the layout aligned.
	stmts, _ := Parse(strings.NewReader(strings.Join(program, "\n")))
	asm := &Assembler{}
	table, _ := asm.Resolve(stmts)
	enc, more := asm.Encode(stmts, table)
	assert.Equal(2, len(more))
	assert.Equal(table.CodeWords, len(enc.Image.Code))
	addr, _, _ := table.Address("X")
	assert.Equal(105, addr)
}

func TestAssembler_Duplicate(t *testing.T) {
	assert := assert.New(t)

	_, err := assemble(t,
		"A: hlt",
		"A: rts",
		"jmp MISSING",
		"B: .data 1",
		"B: .data 2",
	)
	assert.ErrorIs(err, ErrDuplicateLabel)
	assert.ErrorIs(err, ErrUndefinedSymbol)

	var diags Diagnostics
	require.True(t, errors.As(err, &diags))
	lines := []int{}
	for _, diag := range diags {
		lines = append(lines, diag.LineNo)
	}
	assert.Equal([]int{2, 3, 5}, lines)
}

func TestAssembler_Errors(t *testing.T) {
	assert := assert.New(t)

	tests := map[string]error{
		"foo r1":               ErrUnknownMnemonic,
		".word 1":              ErrUnknownMnemonic,
		"rts r1":               ErrInvalidOperandCount,
		"mov r1":               ErrInvalidOperandCount,
		".data":                ErrInvalidOperandCount,
		".extern":              ErrInvalidOperandCount,
		".mat [1][2] 1,2,3":    ErrInvalidOperandCount,
		"lea #1, r1":           ErrInvalidOperandType,
		"mov r1, #1":           ErrInvalidOperandType,
		"jmp M[r1][r2]":        ErrInvalidOperandType,
		"mov #300, r1":         ErrSyntax,
		"mov r1 r2":            ErrSyntax,
		"1X: hlt":              ErrSyntax,
		"mov: hlt":             ErrSyntax,
		"prn M[r1][r9]":        ErrSyntax,
		".string abc":          ErrSyntax,
		".extern r1":           ErrSyntax,
		".mat [20][10]":        ErrMemoryCapacity,
		".data 1, 1":           nil,
	}

	for line, expected := range tests {
		obj, err := assemble(t, line, "M: hlt")
		if expected == nil {
			assert.NoError(err, line)
			assert.NotNil(obj, line)
			continue
		}
		assert.ErrorIs(err, expected, line)
		assert.Nil(obj, line)
	}
}

func TestAssembler_AddressRange(t *testing.T) {
	assert := assert.New(t)

	program := "jmp D\nhlt\nD: .data 7\n"

	tests := []struct {
		asm Assembler
		err error
	}{
		{Assembler{Origin: 300, Capacity: 1024}, ErrMemoryCapacity},
		{Assembler{Origin: -5}, ErrMemoryCapacity},
		{Assembler{Capacity: isa.MEMORY_SIZE + 1}, ErrMemoryCapacity},
		{Assembler{Origin: 253}, ErrMemoryCapacity},
		{Assembler{Origin: 252}, nil},
		{Assembler{Origin: 16, Capacity: 20}, nil},
		{Assembler{Origin: 16, Capacity: 19}, ErrMemoryCapacity},
	}

	for _, test := range tests {
		obj, err := test.asm.Assemble(strings.NewReader(program))
		if test.err == nil {
			if assert.NoError(err, test.asm) {
				addr, _, _ := obj.Symbols.Address("D")
				assert.Equal(test.asm.Origin+3, addr, test.asm)
			}
			continue
		}
		assert.ErrorIs(err, test.err, test.asm)
		assert.Nil(obj, test.asm)
	}
}

func TestAssembler_LabelRecovery(t *testing.T) {
	assert := assert.New(t)

	_, err := assemble(t,
		"L: foo r1",
		"jmp L",
		".entry L",
	)
	assert.ErrorIs(err, ErrUnknownMnemonic)
	assert.NotErrorIs(err, ErrUndefinedSymbol)

	obj, err := assemble(t,
		"SKIP: .extern EXT",
		"jmp EXT",
	)
	require.NoError(t, err)
	_, ok := obj.Symbols.Lookup("SKIP")
	assert.False(ok)
}

func TestAssembler_Deterministic(t *testing.T) {
	assert := assert.New(t)

	program := []string{
		".entry MAIN",
		".extern PUTC",
		"MAIN: lea STR, r1",
		"LOOP: cmp #0, STR[r1][r0]",
		"bne DONE",
		"jsr PUTC",
		"inc r1",
		"jmp LOOP",
		"DONE: hlt",
		`STR: .string "hi"`,
	}

	first, err := assemble(t, program...)
	require.NoError(t, err)
	second, err := assemble(t, program...)
	require.NoError(t, err)

	assert.Equal(first, second)
}
