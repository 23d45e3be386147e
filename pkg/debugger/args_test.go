package debugger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArgIterTokens(t *testing.T) {
	it := NewArgIter("  foo bar   baz")
	token, ok := it.nextToken()
	require.True(t, ok)
	assert.Equal(t, "foo", token)
	token, ok = it.nextToken()
	require.True(t, ok)
	assert.Equal(t, "bar", token)
	token, ok = it.nextToken()
	require.True(t, ok)
	assert.Equal(t, "baz", token)
	_, ok = it.nextToken()
	assert.False(t, ok)
	_, ok = it.nextToken()
	assert.False(t, ok)
}

func TestArgIterSemicolonPanics(t *testing.T) {
	it := NewArgIter("  ;  ")
	assert.Panics(t, func() {
		it.nextToken()
	})
}

func TestNextInteger(t *testing.T) {
	it := NewArgIter("x3000 #-1")
	value, err := it.NextInteger("address", 2)
	require.NoError(t, err)
	assert.Equal(t, uint16(0x3000), value)

	// Negative values do not fit an unsigned word
	_, err = it.NextInteger("value", 2)
	var invalid *InvalidValueError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "value", invalid.Argument)
	var tooLarge *IntegerTooLargeError
	assert.ErrorAs(t, err, &tooLarge)
}

func TestNextIntegerMissing(t *testing.T) {
	it := NewArgIter("   ")
	_, err := it.NextInteger("address", 1)
	var missing *MissingArgumentError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "address", missing.Argument)
	assert.Equal(t, 1, missing.Expected)
	assert.Equal(t, 0, missing.Actual)
}

func TestNextIntegerMismatchedType(t *testing.T) {
	it := NewArgIter("Foo")
	_, err := it.NextInteger("value", 1)
	var mismatched *MismatchedTypeError
	require.ErrorAs(t, err, &mismatched)
	assert.Equal(t, "integer", mismatched.Expected)
	assert.Equal(t, "label", mismatched.Actual)
}

func TestNextPositiveIntegerOrDefault(t *testing.T) {
	value, err := NewArgIter("").NextPositiveIntegerOrDefault("count")
	require.NoError(t, err)
	assert.Equal(t, uint16(1), value)

	value, err = NewArgIter("5").NextPositiveIntegerOrDefault("count")
	require.NoError(t, err)
	assert.Equal(t, uint16(5), value)

	// Zero and negatives clamp to one
	value, err = NewArgIter("0").NextPositiveIntegerOrDefault("count")
	require.NoError(t, err)
	assert.Equal(t, uint16(1), value)

	value, err = NewArgIter("-17").NextPositiveIntegerOrDefault("count")
	require.NoError(t, err)
	assert.Equal(t, uint16(1), value)

	_, err = NewArgIter("wat?").NextPositiveIntegerOrDefault("count")
	assert.Error(t, err)
}

func TestNextLocation(t *testing.T) {
	cases := []struct {
		token string
		want  Location
	}{
		{"r0", Register(0)},
		{"R7", Register(7)},
		{"x3000", MemAddress(0x3000)},
		{"123", MemAddress(123)},
		{"xaf", MemAddress(0xaf)},
		{"^", MemPCOffset(0)},
		{"^-2", MemPCOffset(-2)},
		{"Foo", MemLabel{Name: "Foo"}},
		{"Foo+4", MemLabel{Name: "Foo", Offset: 4}},
		// Registers with trailing label characters are labels
		{"r0n", MemLabel{Name: "r0n"}},
		{"r8", MemLabel{Name: "r8"}},
	}
	for _, c := range cases {
		location, err := NewArgIter(c.token).NextLocation("location", 1)
		require.NoError(t, err, "token %q", c.token)
		assert.Equal(t, c.want, location, "token %q", c.token)
	}

	_, err := NewArgIter("").NextLocation("location", 1)
	var missing *MissingArgumentError
	assert.ErrorAs(t, err, &missing)

	_, err = NewArgIter("!!").NextLocation("location", 1)
	var invalid *InvalidValueError
	assert.ErrorAs(t, err, &invalid)
}

func TestNextMemoryLocation(t *testing.T) {
	location, err := NewArgIter("x42").NextMemoryLocation("location", 1)
	require.NoError(t, err)
	assert.Equal(t, MemAddress(0x42), location)

	// A register is not a memory location
	_, err = NewArgIter("r0").NextMemoryLocation("location", 1)
	var mismatched *MismatchedTypeError
	require.ErrorAs(t, err, &mismatched)
	assert.Equal(t, "register", mismatched.Actual)

	location, err = NewArgIter("").NextMemoryLocationOrDefault("location")
	require.NoError(t, err)
	assert.Equal(t, MemPCOffset(0), location)
}

func TestExpectEnd(t *testing.T) {
	it := NewArgIter("x3000")
	_, err := it.NextInteger("address", 1)
	require.NoError(t, err)
	assert.NoError(t, it.ExpectEnd(1))

	it = NewArgIter("x3000 extra junk")
	_, err = it.NextInteger("address", 1)
	require.NoError(t, err)
	var tooMany *TooManyArgumentsError
	require.ErrorAs(t, it.ExpectEnd(1), &tooMany)
	assert.Equal(t, 1, tooMany.Expected)
	assert.Equal(t, 3, tooMany.Actual)
}

func TestCollectRest(t *testing.T) {
	it := NewArgIter("eval add r0, r0, #1")
	token, ok := it.nextToken()
	require.True(t, ok)
	assert.Equal(t, "eval", token)
	assert.Equal(t, "add r0, r0, #1", it.CollectRest())
	assert.Equal(t, "", it.CollectRest())
}
