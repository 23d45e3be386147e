package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllOnes(t *testing.T) {
	assert.Equal(t, uint16(0x0001), AllOnes[uint16](1))
	assert.Equal(t, uint16(0x001F), AllOnes[uint16](5))
	assert.Equal(t, uint16(0x01FF), AllOnes[uint16](9))
	assert.Equal(t, uint32(0xFFFF), AllOnes[uint32](16))
}

func TestBitRange(t *testing.T) {
	assert.Equal(t, uint16(0xF), BitRange(uint16(0xF025), 12, 4))
	assert.Equal(t, uint16(0x25), BitRange(uint16(0xF025), 0, 8))
	assert.Equal(t, uint16(7), BitRange(uint16(0xC1C0), 6, 3))
}

func TestSignExtend(t *testing.T) {
	tests := []struct {
		input    uint16
		bits     int
		expected uint16
	}{
		{0x0000, 15, 0x0000},
		{0x0000, 1, 0x0000},
		{0x0001, 15, 0x0001},
		{0x0001, 2, 0x0001},
		{0x0001, 1, 0xffff},
		{0x00ff, 15, 0x00ff},
		{0x00ff, 9, 0x00ff},
		{0x00ff, 8, 0xffff},
		{0x00ff, 7, 0xffff},
		{0x0100, 15, 0x0100},
		{0x0100, 10, 0x0100},
		{0x0100, 9, 0xff00},
		{0x0100, 8, 0x0000},
		{0x03ff, 11, 0x03ff},
		{0x03ff, 10, 0xffff},
		{0x0400, 12, 0x0400},
		{0x0400, 11, 0xfc00},
		{0x0400, 10, 0x0000},
		{0x07ff, 12, 0x07ff},
		{0x07ff, 11, 0xffff},
		{0x1000, 13, 0xf000},
		{0x1000, 12, 0x0000},
		{0x3000, 14, 0xf000},
		{0x3000, 12, 0x0000},
		{0x7fff, 15, 0xffff},
		{0xfffe, 2, 0xfffe},
		{0xfffe, 1, 0x0000},
		{0xffff, 1, 0xffff},
	}
	for _, tt := range tests {
		assert.Equalf(t, tt.expected, SignExtend(tt.input, tt.bits),
			"SignExtend(0x%04x, %d)", tt.input, tt.bits)
	}
}
