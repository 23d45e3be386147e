package debugger

import (
	"math"
)

// Sign is a multiplicative unit applied to a parsed magnitude.
type Sign int8

const (
	Positive Sign = 1
	Negative Sign = -1
)

// Radix selects the numeral base for integer digits.
type Radix uint8

const (
	Binary  Radix = 2
	Octal   Radix = 8
	Decimal Radix = 10
	Hex     Radix = 16
)

// parseDigit maps one character to its digit value in the radix.
func (r Radix) parseDigit(ch byte) (uint8, bool) {
	switch r {
	case Binary:
		if ch == '0' || ch == '1' {
			return ch - '0', true
		}
	case Octal:
		if ch >= '0' && ch <= '7' {
			return ch - '0', true
		}
	case Decimal:
		if ch >= '0' && ch <= '9' {
			return ch - '0', true
		}
	case Hex:
		switch {
		case ch >= '0' && ch <= '9':
			return ch - '0', true
		case ch >= 'a' && ch <= 'f':
			return ch - 'a' + 10, true
		case ch >= 'A' && ch <= 'F':
			return ch - 'A' + 10, true
		}
	}
	return 0, false
}

// ParseInteger parses one token under the deliberately liberal integer
// grammar.
//
// Accepts:
//   - Decimal (optional "#"), hex ("x"/"X"), octal ("o"/"O"), binary ("b"/"B").
//   - An optional single zero before a non-decimal radix prefix: "0x4".
//   - Leading zeros after prefix and sign: "0x0004", "#-03".
//   - A sign character before xor after the radix prefix: "-#2", "x+4".
//
// Returns isInteger == false (and no error) for tokens that cannot be an
// integer but may be valid as something else: "xLabel", "o", "foo".
//
// Returns an error for tokens that committed to being an integer and broke
// the grammar: invalid digits for the radix, "#" preceded by a zero,
// multiple signs, a missing sign when requireSign is set, "00x4", or a
// magnitude beyond 32 bits. Fitting a specific smaller width is the
// caller's problem, not checked here.
func ParseInteger(token string, requireSign bool) (value int32, isInteger bool, err error) {
	if token == "" {
		panic("argument token must not be empty")
	}

	cursor := 0

	// Sign BEFORE the prefix
	firstSign := takeSign(token, &cursor)

	prefix, single, ok, err := takePrefix(token, &cursor)
	if err != nil {
		return 0, false, err
	}
	if single {
		// The token is exactly "0"
		return 0, true, nil
	}
	if !ok {
		// A sign was already consumed, so this cannot be a non-integer token
		if firstSign != 0 {
			return 0, false, ErrMalformedInteger
		}
		return 0, false, nil
	}

	// Sign AFTER the prefix
	secondSign := takeSign(token, &cursor)

	var sign Sign
	switch {
	case firstSign != 0 && secondSign != 0:
		// "-x-4", "++4" and friends
		return 0, false, ErrMalformedInteger
	case firstSign != 0:
		sign = firstSign
	case secondSign != 0:
		sign = secondSign
	default:
		if requireSign {
			return 0, false, ErrMalformedInteger
		}
		sign = Positive
	}

	// The next character must be a digit of the radix. Checking here keeps
	// valid non-integer tokens ("xLabel") from producing an error.
	if cursor >= len(token) {
		if firstSign != 0 || secondSign != 0 || prefix.leadingZero || prefix.nonAlpha {
			return 0, false, ErrMalformedInteger
		}
		return 0, false, nil
	}
	if _, ok := prefix.radix.parseDigit(token[cursor]); !ok {
		if firstSign != 0 || secondSign != 0 || prefix.leadingZero || prefix.nonAlpha {
			return 0, false, ErrMalformedInteger
		}
		return 0, false, nil
	}

	// Accumulate in 64 bits so the bound check cannot itself overflow
	var magnitude int64
	for ; cursor < len(token); cursor++ {
		digit, ok := prefix.radix.parseDigit(token[cursor])
		if !ok {
			return 0, false, ErrMalformedInteger
		}
		magnitude = magnitude*int64(prefix.radix) + int64(digit)
		if magnitude > math.MaxInt32 {
			return 0, false, &IntegerTooLargeError{Max: math.MaxInt16}
		}
	}

	return int32(magnitude) * int32(sign), true, nil
}

// takeSign consumes a single '+' or '-', returning 0 when absent.
func takeSign(token string, cursor *int) Sign {
	if *cursor >= len(token) {
		return 0
	}
	switch token[*cursor] {
	case '+':
		*cursor++
		return Positive
	case '-':
		*cursor++
		return Negative
	}
	return 0
}

// integerPrefix retains the syntax observed while parsing the radix prefix,
// needed later to decide between "malformed" and "not an integer".
type integerPrefix struct {
	radix Radix
	// a zero preceded the prefix character
	leadingZero bool
	// the prefix is a symbol ("#"), not a letter
	nonAlpha bool
}

// takePrefix consumes at most one leading zero and an optional radix prefix.
// single reports the special-cased bare "0" token; ok reports whether any
// integer syntax was recognized at all.
func takePrefix(token string, cursor *int) (prefix integerPrefix, single bool, ok bool, err error) {
	// Only one leading zero is taken; "00x4" must fail later
	leadingZero := false
	if *cursor < len(token) && token[*cursor] == '0' {
		leadingZero = true
		*cursor++
	}

	if *cursor >= len(token) {
		if leadingZero {
			return integerPrefix{}, true, false, nil
		}
		return integerPrefix{}, false, false, nil
	}

	consume := true
	var radix Radix
	nonAlpha := false
	switch ch := token[*cursor]; ch {
	case 'b', 'B':
		radix = Binary
	case 'o', 'O':
		radix = Octal
	case 'x', 'X':
		radix = Hex
	case '#':
		// "0#4" is doubly marked
		if leadingZero {
			return integerPrefix{}, false, false, ErrMalformedInteger
		}
		radix = Decimal
		nonAlpha = true
	case '-', '+':
		// "0-4"; any legal sign here was already consumed
		return integerPrefix{}, false, false, ErrMalformedInteger
	default:
		if ch >= '0' && ch <= '9' {
			// Implied decimal; leave the digit for the caller
			radix = Decimal
			consume = false
			break
		}
		return integerPrefix{}, false, false, nil
	}

	if consume {
		*cursor++
	}
	return integerPrefix{radix: radix, leadingZero: leadingZero, nonAlpha: nonAlpha}, false, true, nil
}
