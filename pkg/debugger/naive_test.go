package debugger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		token string
		want  NaiveType
	}{
		// PC offsets win on the first character alone
		{"^", NaivePCOffset},
		{"^4", NaivePCOffset},
		{"^garbage", NaivePCOffset},
		// Registers, unless a label could continue the token
		{"r0", NaiveRegister},
		{"R7", NaiveRegister},
		{"r0n", NaiveLabel},
		{"R0_", NaiveLabel},
		{"r8", NaiveLabel},
		{"r", NaiveLabel},
		// First character commits to integer even if the rest is junk
		{"12a", NaiveInteger},
		{"123", NaiveInteger},
		{"#foo", NaiveInteger},
		{"-", NaiveInteger},
		{"0", NaiveInteger},
		// Prefixed integers must be checked before labels
		{"xaf", NaiveInteger},
		{"X-af", NaiveInteger},
		{"b101", NaiveInteger},
		{"o17", NaiveInteger},
		// Same first characters, but not all digits: labels
		{"xag", NaiveLabel},
		{"beta", NaiveLabel},
		{"offset", NaiveLabel},
		{"x", NaiveLabel},
		{"Foo", NaiveLabel},
		{"_Foo12", NaiveLabel},
		// Nothing at all
		{"", NaiveNone},
		{"&", NaiveNone},
		{"!@*)#", NaiveNone},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, Classify(c.token), "token %q", c.token)
	}
}

func TestNaiveTypeString(t *testing.T) {
	assert.Equal(t, "integer", NaiveInteger.String())
	assert.Equal(t, "register", NaiveRegister.String())
	assert.Equal(t, "label", NaiveLabel.String())
	assert.Equal(t, "PC offset", NaivePCOffset.String())
	assert.Equal(t, "{unknown}", NaiveNone.String())
}
