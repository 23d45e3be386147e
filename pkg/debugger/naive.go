package debugger

// NaiveType is the guessed type of an un-parsed token.
//
// A token classifying as NaiveInteger does not necessarily parse as a valid
// integer; it is only guaranteed to be no other type. "12a" classifies as
// NaiveInteger because a token starting with a decimal digit cannot be a
// register, label or PC offset.
//
// The checks run in a fixed order: PC offset, register, integer, label.
// Integer must be checked before label so that prefixes without a preceding
// zero ("xaf") classify as integers even though they also start like labels.
//
// NaiveNone means the token is likely invalid in every context. The caller
// must still attempt the authoritative parse: the classification exists to
// produce a better diagnostic than a misleading "mismatched type", never to
// suppress a parse.
type NaiveType int

const (
	NaiveNone NaiveType = iota
	NaiveInteger
	NaiveRegister
	NaiveLabel
	NaivePCOffset
)

func (n NaiveType) String() string {
	switch n {
	case NaiveInteger:
		return "integer"
	case NaiveRegister:
		return "register"
	case NaiveLabel:
		return "label"
	case NaivePCOffset:
		return "PC offset"
	}
	return "{unknown}"
}

// Classify guesses the type of a token. See the NaiveType documentation for
// the exact patterns and the significance of check order.
func Classify(token string) NaiveType {
	switch {
	case looksLikePCOffset(token):
		return NaivePCOffset
	case looksLikeRegister(token):
		return NaiveRegister
	case looksLikeInteger(token):
		return NaiveInteger
	case looksLikeLabel(token):
		return NaiveLabel
	}
	return NaiveNone
}

// ^ anywhere at the start is enough: everything after is the offset's
// problem.
func looksLikePCOffset(token string) bool {
	return len(token) > 0 && token[0] == '^'
}

// [rR][0-7] followed by nothing a label could continue with.
func looksLikeRegister(token string) bool {
	return len(token) >= 2 &&
		(token[0] == 'r' || token[0] == 'R') &&
		token[1] >= '0' && token[1] <= '7' &&
		!(len(token) > 2 && labelCanContain(token[2]))
}

// A token starting with [-+#0-9] can only be an integer. Otherwise every
// character must be checked, so that labels starting with [bBoOxX] are not
// classified as integers.
func looksLikeInteger(token string) bool {
	if token == "" {
		return false
	}
	switch ch := token[0]; {
	case ch == '-' || ch == '+' || ch == '#' || (ch >= '0' && ch <= '9'):
		return true
	}

	var radix Radix
	switch token[0] {
	case 'b', 'B':
		radix = Binary
	case 'o', 'O':
		radix = Octal
	case 'x', 'X':
		radix = Hex
	default:
		return false
	}

	rest := token[1:]
	if len(rest) > 0 && (rest[0] == '-' || rest[0] == '+') {
		rest = rest[1:]
	}
	if rest == "" {
		return false
	}
	for i := 0; i < len(rest); i++ {
		if _, ok := radix.parseDigit(rest[i]); !ok {
			return false
		}
	}
	return true
}

func looksLikeLabel(token string) bool {
	return len(token) > 0 && labelCanStartWith(token[0])
}

func labelCanStartWith(ch byte) bool {
	return ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func labelCanContain(ch byte) bool {
	return labelCanStartWith(ch) || (ch >= '0' && ch <= '9')
}
