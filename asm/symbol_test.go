package asm

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSymbolTable(t *testing.T) {
	assert := assert.New(t)

	st := NewSymbolTable()
	assert.NoError(st.define(Symbol{Name: "X", Address: 100}))
	assert.NoError(st.define(Symbol{Name: "DATA", Address: 0, Data: true}))
	assert.NoError(st.define(Symbol{Name: "EXT", External: true}))

	// External redeclaration is accepted, other redefinitions are not.
	assert.NoError(st.define(Symbol{Name: "EXT", External: true}))
	assert.ErrorIs(st.define(Symbol{Name: "X", Address: 110}), ErrDuplicateLabel)
	assert.ErrorIs(st.define(Symbol{Name: "EXT", Address: 110}), ErrDuplicateLabel)
	assert.ErrorIs(st.define(Symbol{Name: "X", External: true}), ErrDuplicateLabel)
	assert.Equal(3, st.Len())

	addr, _, err := st.Address("X")
	assert.NoError(err)
	assert.Equal(100, addr)

	_, _, err = st.Address("DATA")
	assert.ErrorIs(err, ErrNotRebased)

	_, _, err = st.Address("MISSING")
	assert.ErrorIs(err, ErrUndefinedSymbol)

	assert.NoError(st.rebase(104))
	assert.ErrorIs(st.rebase(104), ErrRebased)
	assert.True(st.Rebased())

	addr, sym, err := st.Address("DATA")
	assert.NoError(err)
	assert.Equal(104, addr)
	assert.True(sym.Data)

	addr, _, err = st.Address("X")
	assert.NoError(err)
	assert.Equal(100, addr)

	names := []string{}
	for sym := range st.All() {
		names = append(names, sym.Name)
	}
	assert.Equal([]string{"X", "DATA", "EXT"}, names)
}

func TestSymbolTable_Entries(t *testing.T) {
	assert := assert.New(t)

	st := NewSymbolTable()
	assert.NoError(st.define(Symbol{Name: "B", Address: 101}))
	assert.NoError(st.define(Symbol{Name: "A", Address: 100}))
	assert.NoError(st.define(Symbol{Name: "EXT", External: true}))

	clone := st.Clone()
	assert.NoError(clone.markEntry("A"))
	assert.NoError(clone.markEntry("B"))
	assert.ErrorIs(clone.markEntry("EXT"), ErrInvalidOperandType)
	assert.ErrorIs(clone.markEntry("C"), ErrUndefinedSymbol)

	assert.Empty(slices.Collect(st.Entries()))

	entries := slices.Collect(clone.Entries())
	if assert.Equal(2, len(entries)) {
		assert.Equal("B", entries[0].Name)
		assert.Equal("A", entries[1].Name)
	}

	// Clones do not share definitions.
	assert.NoError(clone.define(Symbol{Name: "C", Address: 102}))
	_, ok := st.Lookup("C")
	assert.False(ok)
}
