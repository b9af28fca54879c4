package asm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLiteral(t *testing.T) {
	assert := assert.New(t)

	good := map[string]int{
		"0":                  0,
		"+7":                 7,
		"-128":               -128,
		"255":                255,
		"$(2 * 3)":           6,
		"$(MEMORY_SIZE - 1)": 255,
		"$(-(1 << 7))":       -128,
		"$(len('abc'))":      3,
	}

	for word, expected := range good {
		value, err := parseLiteral(word)
		assert.NoError(err, word)
		assert.Equal(expected, value, word)
	}

	bad := map[string]error{
		"256":          ErrValueRange(256),
		"-129":         ErrValueRange(-129),
		"0x10":         ErrParseNumber("0x10"),
		"ten":          ErrParseNumber("ten"),
		"$(300)":       ErrValueRange(300),
		"$('text')":    ErrSyntax,
		"$(undefined)": ErrSyntax,
	}

	for word, expected := range bad {
		_, err := parseLiteral(word)
		assert.ErrorIs(err, expected, word)
		assert.ErrorIs(err, ErrSyntax, word)
	}
}

func TestParseString(t *testing.T) {
	assert := assert.New(t)

	values, err := parseString(`"ab"`)
	assert.NoError(err)
	assert.Equal([]int{'a', 'b', 0}, values)

	values, err = parseString(`""`)
	assert.NoError(err)
	assert.Equal([]int{0}, values)

	for _, word := range []string{`ab`, `"ab`, `"a" "b`, "\"\t\"", `"é"`} {
		_, err = parseString(word)
		assert.ErrorIs(err, ErrStringSyntax, word)
	}
}

func TestParseDims(t *testing.T) {
	assert := assert.New(t)

	rows, cols, err := parseDims("[2][3]")
	assert.NoError(err)
	assert.Equal(2, rows)
	assert.Equal(3, cols)

	rows, cols, err = parseDims("[ $(1+1) ] [4]")
	assert.NoError(err)
	assert.Equal(2, rows)
	assert.Equal(4, cols)

	for _, word := range []string{"[0][1]", "[2]", "[-1][2]", "2,3", "[x][1]"} {
		_, _, err = parseDims(word)
		assert.ErrorIs(err, ErrSyntax, word)
	}
}
