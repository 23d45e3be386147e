// Package machine implements the LC-3 fetch/decode/execute engine: registers,
// memory, condition flags, the opcode table and the trap routines. The
// debugger drives it through the narrow State accessors and Step.
package machine

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/lc3kit/lc3kit/pkg/utils"
)

// State is the complete mutable machine state. The debugger's reset command
// relies on Clone producing a deep, independent copy.
type State struct {
	mem  []uint16
	reg  [8]uint16
	pc   uint16
	flag uint16
}

// NewState builds machine state with the given program image loaded at orig
// and the program counter pointing at the first word.
func NewState(orig uint16, image []uint16) (*State, error) {
	if int(orig)+len(image) > MemSize {
		return nil, fmt.Errorf("program of %d words does not fit in memory at origin 0x%04x", len(image), orig)
	}
	s := &State{
		mem: make([]uint16, MemSize),
		pc:  orig,
	}
	copy(s.mem[orig:], image)
	// R7 starts just below device space, leaving room for the stack
	s.reg[7] = 0xFDFF
	return s, nil
}

// Clone returns a deep copy of the state. No memory is shared with the
// receiver.
func (s *State) Clone() *State {
	dup := *s
	dup.mem = make([]uint16, MemSize)
	copy(dup.mem, s.mem)
	return &dup
}

// PC returns the current program counter.
func (s *State) PC() uint16 { return s.pc }

// SetPC moves the program counter.
func (s *State) SetPC(pc uint16) { s.pc = pc }

// Reg reads a register. Index must be 0-7.
func (s *State) Reg(i uint16) uint16 { return s.reg[i&7] }

// SetReg writes a register. Index must be 0-7.
func (s *State) SetReg(i uint16, value uint16) { s.reg[i&7] = value }

// Flag returns the current condition flag, one of the Flag constants.
func (s *State) Flag() uint16 { return s.flag }

// Mem reads a memory word.
func (s *State) Mem(addr uint16) uint16 { return s.mem[addr] }

// SetMem writes a memory word.
func (s *State) SetMem(addr uint16, value uint16) { s.mem[addr] = value }

func (s *State) setFlags(value uint16) {
	switch {
	case value == 0:
		s.flag = FlagZero
	case value&0x8000 != 0:
		s.flag = FlagNegative
	default:
		s.flag = FlagPositive
	}
}

// Machine couples machine state with the I/O endpoints used by the trap
// routines.
type Machine struct {
	State *State

	in  *bufio.Reader
	out io.Writer
}

// New creates a machine around existing state, reading trap input from in
// and writing trap output to out. Nil readers/writers default to stdin and
// stdout.
func New(state *State, in io.Reader, out io.Writer) *Machine {
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}
	return &Machine{
		State: state,
		in:    bufio.NewReader(in),
		out:   out,
	}
}

// Step fetches, decodes and executes exactly one instruction. The program
// counter is incremented before the instruction executes, so PC-relative
// operands are resolved against the address of the *next* instruction.
//
// Errors are engine-fatal: a reserved opcode, RTI outside supervisor mode or
// an unknown trap vector leave the machine in an undefined state.
func (m *Machine) Step() error {
	instr := m.State.mem[m.State.pc]
	m.State.pc++
	return m.execute(instr)
}

// Execute runs one already-fetched instruction word as if it had been
// fetched at the current program counter. The program counter is incremented
// first, matching Step; control-flow effects of the word are kept, but for
// straight-line words the counter is restored afterwards. Used by the
// debugger's eval command, which must not advance the program.
func (m *Machine) Execute(instr uint16) error {
	old := m.State.pc
	m.State.pc++
	err := m.execute(instr)
	if m.State.pc == old+1 {
		m.State.pc = old
	}
	return err
}

// Run executes instructions until the program counter enters device space
// (which includes the HALT sentinel) or an instruction fails.
func (m *Machine) Run() error {
	for m.State.pc < DeviceSpace {
		if err := m.Step(); err != nil {
			return err
		}
	}
	return nil
}

func (m *Machine) execute(instr uint16) error {
	s := m.State
	switch instr >> 12 {
	case OpBR:
		if s.flag&utils.BitRange(instr, 9, 3) != 0 {
			s.pc += signExtend(instr, 9)
		}
	case OpADD:
		dr, sr := instr>>9&7, instr>>6&7
		result := s.reg[sr] + m.operand2(instr)
		s.reg[dr] = result
		s.setFlags(result)
	case OpLD:
		dr := instr >> 9 & 7
		value := s.mem[s.pc+signExtend(instr, 9)]
		s.reg[dr] = value
		s.setFlags(value)
	case OpST:
		sr := instr >> 9 & 7
		s.mem[s.pc+signExtend(instr, 9)] = s.reg[sr]
	case OpJSR:
		s.reg[7] = s.pc
		if utils.Bit(instr, 11) {
			s.pc += signExtend(instr, 11)
		} else {
			s.pc = s.reg[instr>>6&7]
		}
	case OpAND:
		dr, sr := instr>>9&7, instr>>6&7
		result := s.reg[sr] & m.operand2(instr)
		s.reg[dr] = result
		s.setFlags(result)
	case OpLDR:
		dr, br := instr>>9&7, instr>>6&7
		value := s.mem[s.reg[br]+signExtend(instr, 6)]
		s.reg[dr] = value
		s.setFlags(value)
	case OpSTR:
		sr, br := instr>>9&7, instr>>6&7
		s.mem[s.reg[br]+signExtend(instr, 6)] = s.reg[sr]
	case OpRTI:
		return utils.MakeError(ErrEngineFault, "RTI executed outside supervisor mode at 0x%04x", s.pc-1)
	case OpNOT:
		dr, sr := instr>>9&7, instr>>6&7
		value := ^s.reg[sr]
		s.reg[dr] = value
		s.setFlags(value)
	case OpLDI:
		dr := instr >> 9 & 7
		ptr := s.mem[s.pc+signExtend(instr, 9)]
		value := s.mem[ptr]
		s.reg[dr] = value
		s.setFlags(value)
	case OpSTI:
		sr := instr >> 9 & 7
		ptr := s.mem[s.pc+signExtend(instr, 9)]
		s.mem[ptr] = s.reg[sr]
	case OpJMP:
		s.pc = s.reg[instr>>6&7]
	case OpReserved:
		return utils.MakeError(ErrEngineFault, "reserved opcode 0xD at 0x%04x", s.pc-1)
	case OpLEA:
		dr := instr >> 9 & 7
		value := s.pc + signExtend(instr, 9)
		s.reg[dr] = value
		s.setFlags(value)
	case OpTRAP:
		return m.trap(instr & 0xFF)
	}
	return nil
}

// operand2 resolves the second source operand of ADD/AND: a register, or a
// 5-bit sign-extended immediate.
func (m *Machine) operand2(instr uint16) uint16 {
	if utils.Bit(instr, 5) {
		return signExtend(instr, 5)
	}
	return m.State.reg[instr&7]
}
