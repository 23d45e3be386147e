package debugger

import (
	"strings"
)

// ArgIter walks a command line token by token, turning tokens into typed
// command arguments. Tokens are runs of non-space characters; the caller
// must have split semicolons and newlines into separate lines already.
type ArgIter struct {
	buffer string
	cursor int
	// arguments consumed so far, successfully or not; used for the
	// expected/actual counts in argument errors
	argCount int
}

// NewArgIter creates an iterator over one command line.
func NewArgIter(line string) *ArgIter {
	return &ArgIter{buffer: line}
}

// nextToken consumes the next space-delimited token, skipping leading
// spaces. Tabs are not special. A semicolon or newline in the buffer is a
// contract violation by the caller, not a parse error.
func (it *ArgIter) nextToken() (string, bool) {
	for it.cursor < len(it.buffer) && it.buffer[it.cursor] == ' ' {
		it.cursor++
	}
	start := it.cursor
	for it.cursor < len(it.buffer) {
		ch := it.buffer[it.cursor]
		if ch == ';' || ch == '\n' {
			panic("semicolons and newlines must be split off before tokenizing")
		}
		if ch == ' ' {
			break
		}
		it.cursor++
	}
	if start == it.cursor {
		return "", false
	}
	return it.buffer[start:it.cursor], true
}

// ArgCount returns how many arguments have been requested so far.
func (it *ArgIter) ArgCount() int {
	return it.argCount
}

func (it *ArgIter) invalidValue(argName, token string, err error) error {
	return &InvalidValueError{Argument: argName, Text: token, Err: err}
}

// integerToken parses one consumed token as a signed 32-bit integer,
// producing argument-level errors.
func (it *ArgIter) integerToken(argName, token string) (int32, error) {
	value, isInteger, err := ParseInteger(token, false)
	if err != nil {
		return 0, it.invalidValue(argName, token, err)
	}
	if !isInteger {
		return 0, it.invalidValue(argName, token, &MismatchedTypeError{
			Expected: "integer",
			Actual:   Classify(token).String(),
		})
	}
	return value, nil
}

// NextInteger parses and consumes a required integer argument, range-checked
// into a 16-bit word.
func (it *ArgIter) NextInteger(argName string, expected int) (uint16, error) {
	token, ok := it.nextToken()
	if !ok {
		return 0, &MissingArgumentError{Argument: argName, Expected: expected, Actual: it.argCount}
	}
	it.argCount++

	value, err := it.integerToken(argName, token)
	if err != nil {
		return 0, err
	}
	word, err := intAsU16(value)
	if err != nil {
		return 0, it.invalidValue(argName, token, err)
	}
	return word, nil
}

// NextPositiveIntegerOrDefault parses an optional integer argument,
// defaulting to 1. Zero and negative values are clamped to 1.
func (it *ArgIter) NextPositiveIntegerOrDefault(argName string) (uint16, error) {
	token, ok := it.nextToken()
	if !ok {
		return 1, nil
	}
	it.argCount++

	value, err := it.integerToken(argName, token)
	if err != nil {
		return 0, err
	}
	if value <= 0 {
		return 1, nil
	}
	word, err := intAsU16(value)
	if err != nil {
		return 0, it.invalidValue(argName, token, err)
	}
	return word, nil
}

// NextLocation parses and consumes a required location argument: a register
// or any memory location form.
func (it *ArgIter) NextLocation(argName string, expected int) (Location, error) {
	token, ok := it.nextToken()
	if !ok {
		return nil, &MissingArgumentError{Argument: argName, Expected: expected, Actual: it.argCount}
	}
	it.argCount++

	if register, ok := parseRegister(token); ok {
		return register, nil
	}
	return it.memoryLocationFromToken(argName, token, "location")
}

// NextMemoryLocation parses and consumes a required memory location
// argument: an address, a PC offset or a label.
func (it *ArgIter) NextMemoryLocation(argName string, expected int) (MemoryLocation, error) {
	token, ok := it.nextToken()
	if !ok {
		return nil, &MissingArgumentError{Argument: argName, Expected: expected, Actual: it.argCount}
	}
	it.argCount++
	return it.memoryLocationFromToken(argName, token, "memory location")
}

// NextMemoryLocationOrDefault is NextMemoryLocation with a missing argument
// defaulting to the current program counter.
func (it *ArgIter) NextMemoryLocationOrDefault(argName string) (MemoryLocation, error) {
	token, ok := it.nextToken()
	if !ok {
		return MemPCOffset(0), nil
	}
	it.argCount++
	return it.memoryLocationFromToken(argName, token, "memory location")
}

// memoryLocationFromToken tries the memory location forms in classifier
// order: integer address first, so "xaf" is an address and not a label,
// then PC offset, then label.
func (it *ArgIter) memoryLocationFromToken(argName, token, expectedType string) (MemoryLocation, error) {
	value, isInteger, err := ParseInteger(token, false)
	if err != nil {
		return nil, it.invalidValue(argName, token, err)
	}
	if isInteger {
		address, err := intAsU16(value)
		if err != nil {
			return nil, it.invalidValue(argName, token, err)
		}
		return MemAddress(address), nil
	}

	if offset, ok, err := parsePCOffset(token); err != nil {
		return nil, it.invalidValue(argName, token, err)
	} else if ok {
		return offset, nil
	}

	if label, ok, err := parseLabel(token); err != nil {
		return nil, it.invalidValue(argName, token, err)
	} else if ok {
		return MemLabel(label), nil
	}

	return nil, it.invalidValue(argName, token, &MismatchedTypeError{
		Expected: expectedType,
		Actual:   Classify(token).String(),
	})
}

// ExpectEnd errors if any argument remains unconsumed.
func (it *ArgIter) ExpectEnd(expected int) error {
	remaining := 0
	for {
		if _, ok := it.nextToken(); !ok {
			break
		}
		remaining++
	}
	if remaining == 0 {
		return nil
	}
	return &TooManyArgumentsError{Expected: expected, Actual: it.argCount + remaining}
}

// CollectRest consumes the remainder of the line verbatim, trimmed. Used
// for commands that take free text, like eval.
func (it *ArgIter) CollectRest() string {
	rest := strings.TrimSpace(it.buffer[it.cursor:])
	it.cursor = len(it.buffer)
	return rest
}
