package machine

import (
	"fmt"
	"io"

	"github.com/lc3kit/lc3kit/pkg/utils"
)

func signExtend(instr uint16, bits int) uint16 {
	return utils.SignExtend(instr, bits)
}

func (m *Machine) trap(vector uint16) error {
	switch vector {
	case TrapGETC:
		ch, err := m.readByte()
		if err != nil {
			return err
		}
		m.State.reg[0] = uint16(ch)
	case TrapOUT:
		fmt.Fprintf(m.out, "%c", rune(m.State.reg[0]&0xFF))
	case TrapPUTS:
		for addr := m.State.reg[0]; ; addr++ {
			ch := m.State.mem[addr] & 0xFF
			if ch == 0 {
				break
			}
			fmt.Fprintf(m.out, "%c", rune(ch))
		}
	case TrapIN:
		ch, err := m.readByte()
		if err != nil {
			return err
		}
		m.State.reg[0] = uint16(ch)
		fmt.Fprintf(m.out, "%c", rune(ch))
	case TrapPUTSP:
		// Two packed characters per word, low byte first
	words:
		for addr := m.State.reg[0]; ; addr++ {
			word := m.State.mem[addr]
			for _, ch := range []uint16{word & 0xFF, word >> 8} {
				if ch == 0 {
					break words
				}
				fmt.Fprintf(m.out, "%c", rune(ch))
			}
		}
	case TrapHALT:
		m.State.pc = HaltSentinel
		fmt.Fprintf(m.out, "\n%12s\n", "Halted")
	case TrapPUTN:
		fmt.Fprintf(m.out, "%d\n", m.State.reg[0])
	case TrapREG:
		fmt.Fprintln(m.out, "\n------ Registers ------")
		for i, value := range m.State.reg {
			fmt.Fprintf(m.out, "r%d: %#19x\n", i, value)
		}
		fmt.Fprintln(m.out, "-----------------------")
	default:
		return utils.MakeError(ErrEngineFault, "trap with unknown vector 0x%02x at 0x%04x", vector, m.State.pc-1)
	}
	return nil
}

func (m *Machine) readByte() (byte, error) {
	ch, err := m.in.ReadByte()
	if err == io.EOF {
		// A program reading past end of input sees NUL, not an engine fault
		return 0, nil
	}
	return ch, err
}
