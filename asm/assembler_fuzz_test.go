package asm

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

var fuzzOps = []string{
	"mov", "cmp", "add", "sub", "not", "clr", "lea", "inc",
	"dec", "jmp", "bne", "red", "prn", "jsr", "rts", "hlt",
	".data", ".string", ".mat", ".entry", ".extern", "foo",
}

var fuzzOperands = []string{
	"#1", "#-3", "#$(2*3)", "#999", "#",
	"r0", "r3", "r7", "r8",
	"X", "EXT", "NOWHERE", "1X", "mov",
	"M[r1][r2]", "M[r9][r0]", "M[r1]", "[r1][r2]",
	`"ab"`, "[2][2]", "7", "",
}

// fuzzSource builds one statement per three input bytes.
func fuzzSource(data []byte) string {
	lines := []string{".extern EXT", "X: hlt", "M: .data 0"}
	for n := 0; n+2 < len(data); n += 3 {
		op := fuzzOps[int(data[n])%len(fuzzOps)]
		words := []string{
			fuzzOperands[int(data[n+1])%len(fuzzOperands)],
			fuzzOperands[int(data[n+2])%len(fuzzOperands)],
		}
		line := op
		switch count := int(data[n]>>5) % 3; count {
		case 1:
			line += " " + words[0]
		case 2:
			line += " " + strings.Join(words, ", ")
		}
		if data[n+1]&0x80 != 0 {
			line = "L" + string(rune('A'+data[n+2]%26)) + ": " + line
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func FuzzAssembler(f *testing.F) {
	f.Add([]byte{})
	f.Add([]byte{2, 0x45, 0x46, 9, 9, 9})
	for op := range len(fuzzOps) {
		for operand := range len(fuzzOperands) {
			f.Add([]byte{byte(op + 66), byte(operand), byte(operand*7 + op)})
			f.Add([]byte{byte(op + 22), byte(operand), byte(operand)})
		}
	}

	f.Fuzz(func(t *testing.T, data []byte) {
		assert := assert.New(t)

		source := fuzzSource(data)
		stmts, _ := Parse(strings.NewReader(source))

		asm := &Assembler{Capacity: 1 << 8}
		table, diags := asm.Resolve(stmts)
		obj, more := asm.Encode(stmts, table)
		diags = append(diags, more...)

		for _, diag := range diags {
			assert.False(errors.Is(diag, ErrPassMismatch), "%v\n%v", diag, source)
		}

		if assert.NotNil(obj, source) {
			assert.Equal(table.CodeWords, len(obj.Image.Code), source)
			assert.Equal(table.DataWords, len(obj.Image.Data), source)
			assert.Equal(obj.Image.Base+table.CodeWords, obj.Image.DataBase(), source)

			for ref := range obj.Externals.All() {
				word, ok := obj.Image.Word(ref.Address)
				if assert.True(ok, source) {
					assert.Equal(Word{Value: 0, Tag: E}, word, source)
				}
			}
		}
	})
}
