package debugger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBreakpoints(t *testing.T) {
	var set Breakpoints
	assert.True(t, set.IsEmpty())
	assert.False(t, set.Contains(0x3000))

	require.True(t, set.Insert(Breakpoint{Address: 0x3000}))
	require.True(t, set.Insert(Breakpoint{Address: 0x3005, Predefined: true}))
	require.True(t, set.Insert(Breakpoint{Address: 0x3002}))

	// Duplicates are rejected, keeping the original entry
	assert.False(t, set.Insert(Breakpoint{Address: 0x3005}))
	assert.Equal(t, 3, set.Len())

	point, ok := set.Get(0x3005)
	require.True(t, ok)
	assert.True(t, point.Predefined)

	// Insertion order survives removal
	addresses := func() []uint16 {
		var out []uint16
		for _, point := range set.All() {
			out = append(out, point.Address)
		}
		return out
	}
	assert.Equal(t, []uint16{0x3000, 0x3005, 0x3002}, addresses())

	assert.True(t, set.Remove(0x3005))
	assert.False(t, set.Remove(0x3005))
	assert.Equal(t, []uint16{0x3000, 0x3002}, addresses())
	assert.False(t, set.IsEmpty())
}
