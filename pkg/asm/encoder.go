// Package asm implements the LC-3 assembler: a single-instruction encoder,
// used directly by the debugger's eval command, and a two-pass line assembler
// built on top of it.
package asm

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lc3kit/lc3kit/pkg/machine"
	"github.com/lc3kit/lc3kit/pkg/symbols"
)

// Encoder turns one instruction of assembly text into a machine word.
// PC-relative operands are resolved against the word's own address and the
// symbol table, when one is present.
type Encoder struct {
	// Symbols resolves label operands. May be nil.
	Symbols *symbols.Table
	// Orig is the load origin labels are resolved against.
	Orig uint16
}

// Encode assembles a single instruction located at addr.
// The text must contain exactly one instruction, no label and no comment.
func (e *Encoder) Encode(text string, addr uint16) (uint16, error) {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return 0, fmt.Errorf("empty instruction")
	}
	mnemonic := strings.ToUpper(fields[0])
	operands := splitOperands(strings.TrimSpace(text[len(fields[0]):]))

	if word, ok := fixedWords[mnemonic]; ok {
		if len(operands) != 0 {
			return 0, fmt.Errorf("%s takes no operands", mnemonic)
		}
		return word, nil
	}
	if mask, ok := branchMask(mnemonic); ok {
		offset, err := e.pcOffset(operands, 0, addr, 9)
		if err != nil {
			return 0, operandError(mnemonic, err)
		}
		if err := expectOperands(mnemonic, operands, 1); err != nil {
			return 0, err
		}
		return machine.OpBR<<12 | mask<<9 | offset, nil
	}

	switch mnemonic {
	case "ADD", "AND":
		op := machine.OpADD
		if mnemonic == "AND" {
			op = machine.OpAND
		}
		if err := expectOperands(mnemonic, operands, 3); err != nil {
			return 0, err
		}
		dr, err := register(operands[0])
		if err != nil {
			return 0, operandError(mnemonic, err)
		}
		sr, err := register(operands[1])
		if err != nil {
			return 0, operandError(mnemonic, err)
		}
		word := op<<12 | dr<<9 | sr<<6
		if sr2, err := register(operands[2]); err == nil {
			return word | sr2, nil
		}
		imm, err := immediate(operands[2], 5)
		if err != nil {
			return 0, operandError(mnemonic, err)
		}
		return word | 0x20 | imm, nil

	case "NOT":
		if err := expectOperands(mnemonic, operands, 2); err != nil {
			return 0, err
		}
		dr, err := register(operands[0])
		if err != nil {
			return 0, operandError(mnemonic, err)
		}
		sr, err := register(operands[1])
		if err != nil {
			return 0, operandError(mnemonic, err)
		}
		return machine.OpNOT<<12 | dr<<9 | sr<<6 | 0x3F, nil

	case "LD", "LDI", "LEA", "ST", "STI":
		op := map[string]uint16{
			"LD": machine.OpLD, "LDI": machine.OpLDI, "LEA": machine.OpLEA,
			"ST": machine.OpST, "STI": machine.OpSTI,
		}[mnemonic]
		if err := expectOperands(mnemonic, operands, 2); err != nil {
			return 0, err
		}
		reg, err := register(operands[0])
		if err != nil {
			return 0, operandError(mnemonic, err)
		}
		offset, err := e.pcOffset(operands, 1, addr, 9)
		if err != nil {
			return 0, operandError(mnemonic, err)
		}
		return op<<12 | reg<<9 | offset, nil

	case "LDR", "STR":
		op := machine.OpLDR
		if mnemonic == "STR" {
			op = machine.OpSTR
		}
		if err := expectOperands(mnemonic, operands, 3); err != nil {
			return 0, err
		}
		reg, err := register(operands[0])
		if err != nil {
			return 0, operandError(mnemonic, err)
		}
		base, err := register(operands[1])
		if err != nil {
			return 0, operandError(mnemonic, err)
		}
		offset, err := immediate(operands[2], 6)
		if err != nil {
			return 0, operandError(mnemonic, err)
		}
		return op<<12 | reg<<9 | base<<6 | offset, nil

	case "JMP", "JSRR":
		if err := expectOperands(mnemonic, operands, 1); err != nil {
			return 0, err
		}
		base, err := register(operands[0])
		if err != nil {
			return 0, operandError(mnemonic, err)
		}
		if mnemonic == "JMP" {
			return machine.OpJMP<<12 | base<<6, nil
		}
		return machine.OpJSR<<12 | base<<6, nil

	case "JSR":
		offset, err := e.pcOffset(operands, 0, addr, 11)
		if err != nil {
			return 0, operandError(mnemonic, err)
		}
		if err := expectOperands(mnemonic, operands, 1); err != nil {
			return 0, err
		}
		return machine.OpJSR<<12 | 0x0800 | offset, nil

	case "TRAP":
		if err := expectOperands(mnemonic, operands, 1); err != nil {
			return 0, err
		}
		vector, err := immediateUnsigned(operands[0], 8)
		if err != nil {
			return 0, operandError(mnemonic, err)
		}
		return machine.OpTRAP<<12 | vector, nil
	}

	return 0, fmt.Errorf("unknown mnemonic %q", fields[0])
}

// Zero-operand instructions and trap aliases.
var fixedWords = map[string]uint16{
	"RET":   machine.OpJMP<<12 | 7<<6,
	"RTI":   machine.OpRTI << 12,
	"NOP":   0x0000,
	"GETC":  machine.OpTRAP<<12 | machine.TrapGETC,
	"OUT":   machine.OpTRAP<<12 | machine.TrapOUT,
	"PUTS":  machine.OpTRAP<<12 | machine.TrapPUTS,
	"IN":    machine.OpTRAP<<12 | machine.TrapIN,
	"PUTSP": machine.OpTRAP<<12 | machine.TrapPUTSP,
	"HALT":  machine.OpTRAP<<12 | machine.TrapHALT,
	"PUTN":  machine.OpTRAP<<12 | machine.TrapPUTN,
	"REG":   machine.OpTRAP<<12 | machine.TrapREG,
}

func branchMask(mnemonic string) (uint16, bool) {
	if !strings.HasPrefix(mnemonic, "BR") {
		return 0, false
	}
	suffix := mnemonic[2:]
	if suffix == "" {
		return 0b111, true
	}
	var mask uint16
	for _, ch := range suffix {
		switch ch {
		case 'N':
			mask |= 0b100
		case 'Z':
			mask |= 0b010
		case 'P':
			mask |= 0b001
		default:
			return 0, false
		}
	}
	return mask, true
}

func splitOperands(rest string) []string {
	if strings.TrimSpace(rest) == "" {
		return nil
	}
	parts := strings.FieldsFunc(rest, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	return parts
}

func expectOperands(mnemonic string, operands []string, count int) error {
	if len(operands) != count {
		return fmt.Errorf("%s expects %d operands, found %d", mnemonic, count, len(operands))
	}
	return nil
}

func operandError(mnemonic string, err error) error {
	return fmt.Errorf("%s: %w", mnemonic, err)
}

func register(token string) (uint16, error) {
	if len(token) == 2 && (token[0] == 'r' || token[0] == 'R') && token[1] >= '0' && token[1] <= '7' {
		return uint16(token[1] - '0'), nil
	}
	return 0, fmt.Errorf("expected register, found %q", token)
}

// parseValue accepts the assembler integer spellings: optional sign, then
// "#" decimal, "x" hex, "b" binary (with an optional single leading zero
// before the alphabetic prefixes), or bare decimal.
func parseValue(token string) (int64, error) {
	body := token
	negative := false
	switch {
	case strings.HasPrefix(body, "-"):
		negative = true
		body = body[1:]
	case strings.HasPrefix(body, "+"):
		body = body[1:]
	}

	base := 10
	lower := strings.ToLower(body)
	switch {
	case strings.HasPrefix(lower, "#"):
		body = body[1:]
	case strings.HasPrefix(lower, "0x"), strings.HasPrefix(lower, "x"):
		base = 16
		body = body[strings.IndexAny(body, "xX")+1:]
	case strings.HasPrefix(lower, "0b"), strings.HasPrefix(lower, "b"):
		base = 2
		body = body[strings.IndexAny(body, "bB")+1:]
	}

	value, err := strconv.ParseInt(body, base, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid integer %q", token)
	}
	if negative {
		value = -value
	}
	return value, nil
}

// immediate parses a signed immediate that must fit in the given bit width.
func immediate(token string, bits int) (uint16, error) {
	value, err := parseValue(token)
	if err != nil {
		return 0, err
	}
	min, max := -(int64(1) << (bits - 1)), int64(1)<<(bits-1)-1
	if value < min || value > max {
		return 0, fmt.Errorf("immediate %d does not fit in %d bits", value, bits)
	}
	return uint16(value) & uint16(int64(1)<<bits-1), nil
}

// immediateUnsigned parses an unsigned immediate of the given bit width.
func immediateUnsigned(token string, bits int) (uint16, error) {
	value, err := parseValue(token)
	if err != nil {
		return 0, err
	}
	if value < 0 || value >= int64(1)<<bits {
		return 0, fmt.Errorf("value %d does not fit in %d unsigned bits", value, bits)
	}
	return uint16(value), nil
}

// pcOffset resolves operand i as either a label or a numeric offset, encoded
// as a PC-relative displacement of the given width.
func (e *Encoder) pcOffset(operands []string, i int, addr uint16, bits int) (uint16, error) {
	if i >= len(operands) {
		return 0, fmt.Errorf("missing operand")
	}
	token := operands[i]

	// Numeric spellings win over labels, so "x10" is always an offset
	if _, err := parseValue(token); err == nil {
		return immediate(token, bits)
	}

	if e.Symbols == nil {
		return 0, fmt.Errorf("no symbol table to resolve label %q", token)
	}
	raw, ok := e.Symbols.Lookup(token)
	if !ok {
		return 0, fmt.Errorf("label %q not found", token)
	}
	// Raw offsets record the pre-incremented PC relative to the origin
	target := int64(e.Orig) + int64(raw) - 1
	displacement := target - int64(addr) - 1
	min, max := -(int64(1) << (bits - 1)), int64(1)<<(bits-1)-1
	if displacement < min || displacement > max {
		return 0, fmt.Errorf("label %q is out of range (%d words away)", token, displacement)
	}
	return uint16(displacement) & uint16(int64(1)<<bits-1), nil
}
