// Package debugger implements interactive execution control for the machine:
// the command grammar, breakpoints, the step/next/continue/finish state
// machine and address resolution against the program's symbol table.
//
// The debugger owns no thread. The loop driving fetch/decode/execute calls
// BeforeInstruction once per instruction boundary, with the program counter
// already pointing at the instruction about to execute, and interprets the
// returned Action.
package debugger

import (
	"errors"
	"log/slog"

	"github.com/lc3kit/lc3kit/pkg/machine"
	"github.com/lc3kit/lc3kit/pkg/symbols"
)

// Debugger holds the execution control state for one session.
type Debugger struct {
	status  status
	source  Source
	out     *Output
	log     *slog.Logger
	symbols *symbols.Table
	orig    uint16

	breakpoints Breakpoints
	// one-shot debounce: the breakpoint address paused at on the previous
	// boundary, so resuming does not immediately re-trigger it
	currentBreakpoint uint16
	pausedAtBreak     bool

	// instructions executed since control last returned to the operator;
	// reported and reset at the next prompt. Also tells a stepped-over
	// subroutine from a single-instruction step under `next`.
	instructionCount uint64
	// the program counter may have moved non-sequentially since the last
	// report; set by the resuming and pc-mutating commands
	pcChanged bool

	// deep snapshot for the reset command
	initial *machine.State
}

// New builds a debugger around an initial machine state. The snapshot for
// reset is taken here; the caller must not mutate initial afterwards.
func New(source Source, out *Output, log *slog.Logger, syms *symbols.Table, orig uint16, initial *machine.State) *Debugger {
	if syms == nil {
		syms = symbols.NewTable()
	}
	if log == nil {
		log = slog.Default()
	}
	return &Debugger{
		status:  statusWaitForAction{},
		source:  source,
		out:     out,
		log:     log,
		symbols: syms,
		orig:    orig,
		initial: initial.Clone(),
	}
}

// AddBreakpoint seeds a breakpoint before the session starts. Used for
// breakpoints given on the command line.
func (d *Debugger) AddBreakpoint(address uint16, predefined bool) bool {
	return d.breakpoints.Insert(Breakpoint{Address: address, Predefined: predefined})
}

// Run drives the machine under debugger control until the program halts,
// the operator exits, or an instruction fails. A StopDebugger action
// detaches and lets the program run to completion on its own.
func (d *Debugger) Run(m *machine.Machine) error {
	defer d.source.Close()
	for m.State.PC() != machine.HaltSentinel {
		switch d.BeforeInstruction(m) {
		case StopDebugger:
			d.out.Print(Sometimes, "detaching debugger")
			return m.Run()
		case ExitProgram:
			return nil
		}
		if err := m.Step(); err != nil {
			return err
		}
		d.instructionCount++
	}
	return nil
}

// The two instruction forms the debugger must recognize at a boundary.
// Everything else about decoding belongs to the execution engine.
type relevantInstr int

const (
	instrOther relevantInstr = iota
	instrRet
	instrTrapHalt
)

func classifyInstr(word uint16) relevantInstr {
	switch {
	case word>>12 == machine.OpJMP && word>>6&7 == 7:
		return instrRet
	case word>>12 == machine.OpTRAP && word&0xFF == machine.TrapHALT:
		return instrTrapHalt
	}
	return instrOther
}

// BeforeInstruction runs the per-boundary protocol: device-space warning,
// breakpoint and HALT interception, then status dispatch. It may block on
// operator input but never executes machine instructions itself.
func (d *Debugger) BeforeInstruction(m *machine.Machine) Action {
	pc := m.State.PC()
	if pc >= machine.DeviceSpace && pc != machine.HaltSentinel {
		d.out.Notice("warning: program counter entered device address space (x%04X)", pc)
		return Proceed
	}
	instr := classifyInstr(m.State.Mem(pc))

	if point, ok := d.breakpoints.Get(pc); ok && !(d.pausedAtBreak && d.currentBreakpoint == pc) {
		if point.Predefined {
			d.out.Notice("reached predefined breakpoint at x%04X", pc)
		} else {
			d.out.Notice("reached breakpoint at x%04X", pc)
		}
		d.pausedAtBreak = true
		d.currentBreakpoint = pc
		d.status = statusWaitForAction{}
	} else {
		d.pausedAtBreak = false
	}

	if instr == instrTrapHalt {
		d.out.Notice("reached HALT at x%04X", pc)
		d.status = statusWaitForAction{}
	}

	for {
		switch st := d.status.(type) {
		case statusWaitForAction:
			if d.pcChanged {
				d.out.Print(Sometimes, "program counter at x%04X", m.State.PC())
				d.pcChanged = false
			}
			if d.instructionCount > 0 {
				d.out.Print(Always, "executed %d instructions", d.instructionCount)
				d.instructionCount = 0
			}
			line, ok := d.source.Read()
			if !ok {
				// end-of-input is an implicit quit
				return StopDebugger
			}
			d.log.Debug("debugger command", "line", line)
			command, err := ParseCommand(line)
			if err != nil {
				d.out.Error(err)
				var invalid *InvalidCommandError
				if errors.As(err, &invalid) {
					d.out.Print(Always, "type `help` for a list of commands")
				}
				continue
			}
			if action, terminal := d.execute(m, command); terminal {
				return action
			}

		case statusStep:
			if st.remaining > 0 {
				d.status = statusStep{remaining: st.remaining - 1}
				return Proceed
			}
			// The instruction at this boundary still executes once more
			d.status = statusWaitForAction{}
			return Proceed

		case statusNext:
			if pc == st.returnAddress {
				// More than one instruction means a whole subroutine ran,
				// as opposed to a single stepped-over instruction
				if d.instructionCount > 1 {
					d.out.Print(Always, "reached end of subroutine")
				}
				d.status = statusWaitForAction{}
				continue
			}
			return Proceed

		case statusContinue:
			return Proceed

		case statusFinish:
			if instr == instrRet {
				d.out.Print(Always, "reached end of subroutine")
				// Step{0} so the RET itself executes before re-prompting
				d.status = statusStep{remaining: 0}
			}
			return Proceed
		}
	}
}

// execute applies one parsed command. terminal reports that the boundary
// call must return the action instead of dispatching again.
func (d *Debugger) execute(m *machine.Machine, command Command) (action Action, terminal bool) {
	switch cmd := command.(type) {
	case HelpCommand:
		d.out.Print(Always, "%s", HelpText)

	case ContinueCommand:
		d.status = statusContinue{}
		d.pcChanged = true
		d.out.Print(Sometimes, "continuing")

	case FinishCommand:
		d.status = statusFinish{}
		d.pcChanged = true
		d.out.Print(Sometimes, "running until subroutine returns")

	case ExitCommand:
		return ExitProgram, true

	case QuitCommand:
		return StopDebugger, true

	case RegistersCommand:
		d.out.PrintRegisters(m.State)

	case ResetCommand:
		m.State = d.initial.Clone()
		d.pcChanged = true
		d.out.Print(Sometimes, "machine reset to initial state")

	case ProgressCommand:
		d.status = statusStep{remaining: cmd.Count - 1}
		d.pcChanged = true

	case NextCommand:
		d.status = statusNext{returnAddress: m.State.PC() + 1}
		d.pcChanged = true

	case GetCommand:
		switch loc := cmd.Location.(type) {
		case Register:
			d.out.PrintInteger(m.State.Reg(uint16(loc)))
		case MemoryLocation:
			if addr, ok := d.resolve(m, loc); ok {
				d.out.PrintInteger(m.State.Mem(addr))
			}
		}

	case SetCommand:
		switch loc := cmd.Location.(type) {
		case Register:
			m.State.SetReg(uint16(loc), cmd.Value)
			d.out.Print(Sometimes, "%s = x%04X", loc, cmd.Value)
		case MemoryLocation:
			if addr, ok := d.resolve(m, loc); ok {
				m.State.SetMem(addr, cmd.Value)
				d.out.Print(Sometimes, "mem[x%04X] = x%04X", addr, cmd.Value)
			}
		}

	case JumpCommand, AssemblyCommand:
		d.out.Print(Always, "not implemented")

	case EvalCommand:
		d.pcChanged = true
		d.eval(m, cmd.Line)

	case BreakListCommand:
		if d.breakpoints.IsEmpty() {
			d.out.Print(Always, "no breakpoints")
			break
		}
		for _, point := range d.breakpoints.All() {
			d.out.PrintBreakpoint(point)
		}

	case BreakAddCommand:
		if addr, ok := d.resolve(m, cmd.Location); ok {
			if d.breakpoints.Insert(Breakpoint{Address: addr}) {
				d.out.Print(Sometimes, "added breakpoint at x%04X", addr)
			} else {
				d.out.Notice("breakpoint already exists at x%04X", addr)
			}
		}

	case BreakRemoveCommand:
		if addr, ok := d.resolve(m, cmd.Location); ok {
			if d.breakpoints.Remove(addr) {
				d.out.Print(Sometimes, "removed breakpoint at x%04X", addr)
			} else {
				d.out.Notice("no breakpoint at x%04X", addr)
			}
		}
	}
	return Proceed, false
}

// resolve turns a memory location into a concrete address. Failures are
// recoverable: they are reported and abort only the current command.
func (d *Debugger) resolve(m *machine.Machine, location MemoryLocation) (uint16, bool) {
	switch loc := location.(type) {
	case MemAddress:
		return uint16(loc), true

	case MemPCOffset:
		addr := m.State.PC() + uint16(loc)
		if !d.inUserSpace(addr) {
			d.out.Notice("address x%04X is out of bounds", addr)
			return 0, false
		}
		return addr, true

	case MemLabel:
		raw, ok := d.symbols.Lookup(loc.Name)
		if !ok {
			d.out.Notice("label not found: %s", loc.Name)
			return 0, false
		}
		// Recorded offsets are relative to the pre-incremented program
		// counter, hence the -1
		addr := d.orig + raw - 1 + uint16(loc.Offset)
		if !d.inUserSpace(addr) {
			d.out.Notice("address x%04X is out of bounds", addr)
			return 0, false
		}
		d.out.Print(Sometimes, "%s is at x%04X", loc.Name, addr)
		return addr, true
	}
	panic("unreachable: unknown memory location form")
}

func (d *Debugger) inUserSpace(addr uint16) bool {
	return addr >= d.orig && addr < machine.DeviceSpace
}
