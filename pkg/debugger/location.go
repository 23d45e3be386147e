package debugger

import (
	"fmt"
	"math"
)

// Register is one of the eight general purpose registers R0..R7.
type Register uint16

func (r Register) String() string {
	return fmt.Sprintf("R%d", uint16(r))
}

// Label is a symbol name with an optional signed word offset.
type Label struct {
	Name   string
	Offset int16
}

// Location is a register or a memory location: the target of get/set.
type Location interface {
	isLocation()
}

// MemoryLocation is a location in memory, before address resolution.
type MemoryLocation interface {
	Location
	isMemoryLocation()
}

// MemAddress is an explicit absolute address.
type MemAddress uint16

// MemPCOffset is a signed displacement from the current program counter.
// A bare reference to the program counter is MemPCOffset(0).
type MemPCOffset int16

// MemLabel is a symbol reference resolved against the symbol table.
type MemLabel Label

func (Register) isLocation()    {}
func (MemAddress) isLocation()  {}
func (MemPCOffset) isLocation() {}
func (MemLabel) isLocation()    {}

func (MemAddress) isMemoryLocation()  {}
func (MemPCOffset) isMemoryLocation() {}
func (MemLabel) isMemoryLocation()    {}

// parseRegister accepts exactly [rR][0-7] with nothing following; anything
// longer may be the start of a label.
func parseRegister(token string) (Register, bool) {
	if len(token) != 2 {
		return 0, false
	}
	if token[0] != 'r' && token[0] != 'R' {
		return 0, false
	}
	if token[1] < '0' || token[1] > '7' {
		return 0, false
	}
	return Register(token[1] - '0'), true
}

// parseLabel parses a label token: a name, then an optional offset whose
// sign is mandatory ("Foo+4", "Foo-0x2"). Returns ok == false for tokens
// that do not start like a label at all.
func parseLabel(token string) (Label, bool, error) {
	if token == "" || !labelCanStartWith(token[0]) {
		return Label{}, false, nil
	}
	end := 1
	for end < len(token) && labelCanContain(token[end]) {
		end++
	}

	label := Label{Name: token[:end]}
	rest := token[end:]
	if rest == "" {
		return label, true, nil
	}
	if rest[0] != '+' && rest[0] != '-' {
		return Label{}, false, ErrMalformedLabel
	}

	value, isInteger, err := ParseInteger(rest, true)
	if err != nil {
		return Label{}, false, err
	}
	if !isInteger {
		return Label{}, false, ErrMalformedLabel
	}
	offset, err := intAsI16(value)
	if err != nil {
		return Label{}, false, err
	}
	label.Offset = offset
	return label, true, nil
}

// parsePCOffset parses "^", optionally followed by a signed integer.
func parsePCOffset(token string) (MemPCOffset, bool, error) {
	if token == "" || token[0] != '^' {
		return 0, false, nil
	}
	rest := token[1:]
	if rest == "" {
		return MemPCOffset(0), true, nil
	}

	value, isInteger, err := ParseInteger(rest, false)
	if err != nil {
		return 0, false, err
	}
	if !isInteger {
		return 0, false, ErrMalformedPCOffset
	}
	offset, err := intAsI16(value)
	if err != nil {
		return 0, false, err
	}
	return MemPCOffset(offset), true, nil
}

// intAsU16 narrows a parsed integer into an unsigned 16-bit word.
func intAsU16(value int32) (uint16, error) {
	if value < 0 || value > math.MaxUint16 {
		return 0, &IntegerTooLargeError{Max: math.MaxUint16}
	}
	return uint16(value), nil
}

// intAsI16 narrows a parsed integer into a signed 16-bit offset.
func intAsI16(value int32) (int16, error) {
	if value < math.MinInt16 || value > math.MaxInt16 {
		return 0, &IntegerTooLargeError{Max: math.MaxInt16}
	}
	return int16(value), nil
}
