package artifact

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompact(t *testing.T) {
	assert := assert.New(t)

	tests := map[int]string{
		0:    "aaaaa",
		3:    "aaaad",
		4:    "aaaba",
		100:  "abcba",
		255:  "adddd",
		256:  "baaaa",
		1023: "ddddd",
		1024: "aaaaa",
	}

	for value, expected := range tests {
		assert.Equal(expected, Compact(value), value)
	}
}
