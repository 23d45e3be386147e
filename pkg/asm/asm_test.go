package asm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lc3kit/lc3kit/pkg/symbols"
)

func TestEncodeBasicInstructions(t *testing.T) {
	encoder := &Encoder{}

	tests := []struct {
		text     string
		expected uint16
	}{
		{"ADD R0, R0, #5", 0x1025},
		{"ADD R1, R0, R0", 0x1240},
		{"add r0, r0, #-1", 0x103F},
		{"AND R1, R1, #0", 0x5260},
		{"AND R2, R3, R4", 0x54C4},
		{"NOT R1, R0", 0x927F},
		{"LD R1, #2", 0x2202},
		{"ST R1, #3", 0x3203},
		{"LDI R1, #1", 0xA201},
		{"STI R2, #-1", 0xB5FF},
		{"LEA R0, #2", 0xE002},
		{"LDR R1, R2, #4", 0x6284},
		{"STR R1, R2, #-4", 0x72BC},
		{"BR #1", 0x0E01},
		{"BRp #1", 0x0201},
		{"BRnz #-2", 0x0DFE},
		{"JMP R2", 0xC080},
		{"RET", 0xC1C0},
		{"JSR #2", 0x4802},
		{"JSRR R3", 0x40C0},
		{"TRAP x25", 0xF025},
		{"HALT", 0xF025},
		{"GETC", 0xF020},
		{"PUTS", 0xF022},
		{"RTI", 0x8000},
		{"NOP", 0x0000},
	}
	for _, tt := range tests {
		word, err := encoder.Encode(tt.text, 0x3000)
		require.NoErrorf(t, err, "Encode(%q)", tt.text)
		assert.Equalf(t, tt.expected, word, "Encode(%q)", tt.text)
	}
}

func TestEncodeErrors(t *testing.T) {
	encoder := &Encoder{}

	for _, text := range []string{
		"",
		"FROB R0",
		"ADD R0, R0",
		"ADD R0, R0, #16",
		"ADD R8, R0, #1",
		"HALT R0",
		"LDR R1, R2, #32",
		"TRAP #256",
		"LEA R0, MISSING",
	} {
		_, err := encoder.Encode(text, 0x3000)
		assert.Errorf(t, err, "Encode(%q) should fail", text)
	}
}

func TestEncodeLabelOperand(t *testing.T) {
	table := symbols.NewTable()
	require.NoError(t, table.Add("LOOP", 2))
	encoder := &Encoder{Symbols: table, Orig: 0x3000}

	// LOOP is the word at 0x3001; branching from 0x3003 is -3 words
	word, err := encoder.Encode("BRp LOOP", 0x3003)
	require.NoError(t, err)
	assert.Equal(t, uint16(0x03FD), word)

	word, err = encoder.Encode("JSR LOOP", 0x3000)
	require.NoError(t, err)
	assert.Equal(t, uint16(0x4800), word)
}

func TestAssembleCountdownProgram(t *testing.T) {
	program, err := Assemble(`
; count down from three
        .ORIG x3000
        ADD R0, R0, #3
LOOP    ADD R0, R0, #-1
        BRp LOOP
        HALT
        .END
`)
	require.NoError(t, err)
	assert.Equal(t, uint16(0x3000), program.Orig)
	require.Equal(t, []uint16{0x1023, 0x103F, 0x03FE, 0xF025}, program.Image)

	offset, ok := program.Symbols.Lookup("LOOP")
	require.True(t, ok)
	assert.Equal(t, uint16(2), offset)
}

func TestAssembleDirectives(t *testing.T) {
	program, err := Assemble(`
        .ORIG x4000
VALUE   .FILL x42
SPACE   .BLKW 2
MSG     .STRINGZ "hi"
        .END
        HALT ; never reached, after .END
`)
	require.NoError(t, err)
	assert.Equal(t, uint16(0x4000), program.Orig)
	assert.Equal(t, []uint16{0x42, 0, 0, 'h', 'i', 0}, program.Image)

	offset, ok := program.Symbols.Lookup("MSG")
	require.True(t, ok)
	assert.Equal(t, uint16(4), offset)
}

func TestAssembleLabelOnOwnLine(t *testing.T) {
	program, err := Assemble(`
        .ORIG x3000
START
        HALT
`)
	require.NoError(t, err)
	offset, ok := program.Symbols.Lookup("START")
	require.True(t, ok)
	assert.Equal(t, uint16(1), offset)
	assert.Equal(t, []uint16{0xF025}, program.Image)
}

func TestAssembleErrors(t *testing.T) {
	for name, source := range map[string]string{
		"duplicate label": "A HALT\nA HALT\n",
		"invalid label":   "9A HALT\n",
		"late orig":       "HALT\n.ORIG x4000\n",
		"bad mnemonic":    "FROB R0\n",
		"bad stringz":     ".STRINGZ hi\n",
	} {
		_, err := Assemble(source)
		assert.Errorf(t, err, "case %q", name)
	}
}
