package asm

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lc3kit/lc3kit/pkg/machine"
	"github.com/lc3kit/lc3kit/pkg/symbols"
)

// Program is the output of the assembler: an origin-addressed word image and
// the symbol table recorded for it.
type Program struct {
	Orig    uint16
	Image   []uint16
	Symbols *symbols.Table
}

// State builds runnable machine state from the assembled image.
func (p *Program) State() (*machine.State, error) {
	return machine.NewState(p.Orig, p.Image)
}

type pendingWord struct {
	// line number for diagnostics
	line int
	// instruction text to encode in pass two; empty for literal words
	text string
	// literal value when text is empty
	word uint16
}

// Assemble runs the two-pass assembler over complete source text.
//
// Supported surface: one instruction per line, optional leading label,
// ';' comments, and the .ORIG/.FILL/.BLKW/.STRINGZ/.END directives.
func Assemble(source string) (*Program, error) {
	table := symbols.NewTable()
	orig := machine.DefaultOrigin
	sawOrig := false
	var pending []pendingWord

	// Pass one: record labels and lay out words
	for i, raw := range strings.Split(source, "\n") {
		line := i + 1
		text := strings.TrimSpace(stripComment(raw))
		if text == "" {
			continue
		}

		fields := strings.Fields(text)
		head := strings.ToUpper(fields[0])

		if !isDirective(head) && !isMnemonic(head) {
			label := fields[0]
			if !validLabel(label) {
				return nil, fmt.Errorf("line %d: invalid label %q", line, label)
			}
			// Recorded offsets are one past the word index, matching the
			// pre-incremented PC the debugger resolves against
			if err := table.Add(label, uint16(len(pending)+1)); err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			text = strings.TrimSpace(text[len(label):])
			if text == "" {
				continue
			}
			fields = fields[1:]
			head = strings.ToUpper(fields[0])
		}

		switch head {
		case ".ORIG":
			if sawOrig || len(pending) > 0 {
				return nil, fmt.Errorf("line %d: .ORIG must be the first statement", line)
			}
			value, err := directiveValue(fields, line)
			if err != nil {
				return nil, err
			}
			orig = value
			sawOrig = true
		case ".END":
			goto passTwo
		case ".FILL":
			value, err := directiveValue(fields, line)
			if err != nil {
				return nil, err
			}
			pending = append(pending, pendingWord{line: line, word: value})
		case ".BLKW":
			count, err := directiveValue(fields, line)
			if err != nil {
				return nil, err
			}
			for n := uint16(0); n < count; n++ {
				pending = append(pending, pendingWord{line: line})
			}
		case ".STRINGZ":
			literal, err := stringLiteral(strings.TrimSpace(text[len(".STRINGZ"):]))
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			for _, ch := range literal {
				pending = append(pending, pendingWord{line: line, word: uint16(ch)})
			}
			pending = append(pending, pendingWord{line: line})
		default:
			pending = append(pending, pendingWord{line: line, text: text})
		}
	}

passTwo:
	encoder := &Encoder{Symbols: table, Orig: orig}
	image := make([]uint16, 0, len(pending))
	for i, entry := range pending {
		if entry.text == "" {
			image = append(image, entry.word)
			continue
		}
		word, err := encoder.Encode(entry.text, orig+uint16(i))
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", entry.line, err)
		}
		image = append(image, word)
	}

	return &Program{Orig: orig, Image: image, Symbols: table}, nil
}

func stripComment(line string) string {
	// Quotes may contain semicolons (.STRINGZ "a;b")
	inString := false
	for i, ch := range line {
		switch {
		case ch == '"':
			inString = !inString
		case ch == ';' && !inString:
			return line[:i]
		}
	}
	return line
}

func isDirective(head string) bool {
	switch head {
	case ".ORIG", ".FILL", ".BLKW", ".STRINGZ", ".END":
		return true
	}
	return false
}

func isMnemonic(head string) bool {
	if _, ok := fixedWords[head]; ok {
		return true
	}
	if _, ok := branchMask(head); ok {
		return true
	}
	switch head {
	case "ADD", "AND", "NOT", "LD", "LDI", "LDR", "LEA",
		"ST", "STI", "STR", "JMP", "JSR", "JSRR", "TRAP":
		return true
	}
	return false
}

func validLabel(label string) bool {
	for i, ch := range label {
		ok := ch == '_' ||
			(ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') ||
			(i > 0 && ch >= '0' && ch <= '9')
		if !ok {
			return false
		}
	}
	return label != ""
}

func directiveValue(fields []string, line int) (uint16, error) {
	if len(fields) != 2 {
		return 0, fmt.Errorf("line %d: %s expects one value", line, fields[0])
	}
	value, err := parseValue(fields[1])
	if err != nil {
		return 0, fmt.Errorf("line %d: %w", line, err)
	}
	if value < -0x8000 || value > 0xFFFF {
		return 0, fmt.Errorf("line %d: value %d does not fit in a word", line, value)
	}
	return uint16(value), nil
}

func stringLiteral(text string) (string, error) {
	if len(text) < 2 || !strings.HasPrefix(text, `"`) || !strings.HasSuffix(text, `"`) {
		return "", fmt.Errorf("expected quoted string, found %q", text)
	}
	literal, err := strconv.Unquote(text)
	if err != nil {
		return "", fmt.Errorf("malformed string literal %s", text)
	}
	return literal, nil
}
