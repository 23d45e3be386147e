package debugger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRegister(t *testing.T) {
	for token, want := range map[string]Register{
		"r0": 0, "r3": 3, "r7": 7,
		"R0": 0, "R5": 5, "R7": 7,
	} {
		register, ok := parseRegister(token)
		require.True(t, ok, "token %q", token)
		assert.Equal(t, want, register, "token %q", token)
	}

	// Anything longer than two characters may be a label instead
	for _, token := range []string{"", "a", "r", "rn", "r8", "R0n", "r0n", "r12", "x0"} {
		_, ok := parseRegister(token)
		assert.False(t, ok, "token %q", token)
	}
}

func TestParseLabel(t *testing.T) {
	valid := []struct {
		token  string
		name   string
		offset int16
	}{
		{"F", "F", 0},
		{"Foo", "Foo", 0},
		{"_Foo", "_Foo", 0},
		{"F_oo12", "F_oo12", 0},
		{"Foo12_", "Foo12_", 0},
		{"Foo+0", "Foo", 0},
		{"Foo-0", "Foo", 0},
		{"Foo+4", "Foo", 4},
		{"Foo-43", "Foo", -43},
		{"Foo+0x034", "Foo", 0x34},
		{"Foo-0o4", "Foo", -4},
		{"Foo-#24", "Foo", -24},
		{"Foo+#024", "Foo", 24},
	}
	for _, c := range valid {
		label, ok, err := parseLabel(c.token)
		require.NoError(t, err, "token %q", c.token)
		require.True(t, ok, "token %q", c.token)
		assert.Equal(t, Label{Name: c.name, Offset: c.offset}, label, "token %q", c.token)
	}

	// Not labels at all
	for _, token := range []string{"", "0x1283", "!@*)#", "0Foo"} {
		_, ok, err := parseLabel(token)
		require.NoError(t, err, "token %q", token)
		assert.False(t, ok, "token %q", token)
	}

	// Started like a label, then broke the grammar
	for _, token := range []string{"Foo!", "Foo+", "Foo-", "Foo*4", "Foo+x", "Foo-r0"} {
		_, _, err := parseLabel(token)
		assert.Error(t, err, "token %q", token)
	}
}

func TestParsePCOffset(t *testing.T) {
	valid := map[string]MemPCOffset{
		"^":     0,
		"^0":    0,
		"^4":    4,
		"^-4":   -4,
		"^+4":   4,
		"^x10":  0x10,
		"^-x10": -0x10,
		"^#12":  12,
		"^b101": 5,
	}
	for token, want := range valid {
		offset, ok, err := parsePCOffset(token)
		require.NoError(t, err, "token %q", token)
		require.True(t, ok, "token %q", token)
		assert.Equal(t, want, offset, "token %q", token)
	}

	for _, token := range []string{"", "4", "Foo"} {
		_, ok, err := parsePCOffset(token)
		require.NoError(t, err, "token %q", token)
		assert.False(t, ok, "token %q", token)
	}

	for _, token := range []string{"^Foo", "^--4", "^0x", "^x80000000"} {
		_, _, err := parsePCOffset(token)
		assert.Error(t, err, "token %q", token)
	}
}

func TestNarrowing(t *testing.T) {
	word, err := intAsU16(0xFFFF)
	require.NoError(t, err)
	assert.Equal(t, uint16(0xFFFF), word)

	_, err = intAsU16(0x10000)
	assert.Error(t, err)
	_, err = intAsU16(-1)
	assert.Error(t, err)

	offset, err := intAsI16(-32768)
	require.NoError(t, err)
	assert.Equal(t, int16(-32768), offset)

	_, err = intAsI16(32768)
	assert.Error(t, err)

	var tooLarge *IntegerTooLargeError
	_, err = intAsU16(-1)
	require.ErrorAs(t, err, &tooLarge)
	assert.Equal(t, uint32(0xFFFF), tooLarge.Max)
}
