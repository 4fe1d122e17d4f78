package wscan

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsSpaceByte(t *testing.T) {
	for c := 0; c < 256; c++ {
		want := (c >= 9 && c <= 13) || (c >= 28 && c <= 32)
		assert.Equal(t, want, IsSpaceByte(byte(c)), "byte 0x%02x", c)
	}
}

func TestIsSpace(t *testing.T) {
	tests := []struct {
		r    rune
		want bool
	}{
		{' ', true},
		{'\t', true},
		{'\n', true},
		{'\r', true},
		{'\v', true},
		{'\f', true},
		{'\x1c', true},
		{'\x1f', true},
		{'a', false},
		{'\x00', false},
		{'\u0085', false},
		{'\u00a0', false},
		{'\u1680', true},
		{'\u180e', true},
		{'\u2000', true},
		{'\u2007', true},
		{'\u200a', true},
		{'\u200b', false},
		{'\u2028', true},
		{'\u2029', true},
		{'\u202f', false},
		{'\u205f', true},
		{'\u3000', true},
		{'中', false},
	}

	for i, tt := range tests {
		assert.Equal(t, tt.want, IsSpace(tt.r), "tests[%d] - %U", i, tt.r)
	}
}

func TestIsLineTerminatorAndDigit(t *testing.T) {
	assert.True(t, IsLineTerminator('\n'))
	assert.True(t, IsLineTerminator(byte('\r')))
	assert.False(t, IsLineTerminator(' '))
	assert.False(t, IsLineTerminator('\u2028'))

	for c := byte('0'); c <= '9'; c++ {
		assert.True(t, IsDigit(c))
	}
	assert.False(t, IsDigit('a'))
	assert.False(t, IsDigit('٣'))
}
