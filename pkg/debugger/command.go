package debugger

import (
	"strings"
)

// Command is one fully parsed operator command, arguments included.
type Command interface {
	isCommand()
}

type (
	// HelpCommand prints the command reference.
	HelpCommand struct{}
	// ContinueCommand resumes execution until a breakpoint or HALT.
	ContinueCommand struct{}
	// FinishCommand runs until the current subroutine returns.
	FinishCommand struct{}
	// ExitCommand terminates the whole process.
	ExitCommand struct{}
	// QuitCommand stops the debugger but lets the program keep running.
	QuitCommand struct{}
	// RegistersCommand prints every register.
	RegistersCommand struct{}
	// ResetCommand restores the machine to its initial snapshot.
	ResetCommand struct{}
	// ProgressCommand executes Count instructions, then pauses.
	ProgressCommand struct {
		Count uint16
	}
	// NextCommand steps one instruction, stepping over subroutine calls.
	NextCommand struct{}
	// GetCommand prints the value at a register or memory location.
	GetCommand struct {
		Location Location
	}
	// SetCommand writes a value to a register or memory location.
	SetCommand struct {
		Location Location
		Value    uint16
	}
	// JumpCommand is reserved: it parses but is not implemented.
	JumpCommand struct {
		Location MemoryLocation
	}
	// AssemblyCommand is reserved: it parses but is not implemented.
	AssemblyCommand struct {
		Location MemoryLocation
	}
	// EvalCommand assembles and executes one instruction line.
	EvalCommand struct {
		Line string
	}
	// BreakListCommand enumerates breakpoints in insertion order.
	BreakListCommand struct{}
	// BreakAddCommand inserts a breakpoint at a memory location.
	BreakAddCommand struct {
		Location MemoryLocation
	}
	// BreakRemoveCommand removes every breakpoint at a memory location.
	BreakRemoveCommand struct {
		Location MemoryLocation
	}
)

func (HelpCommand) isCommand()        {}
func (ContinueCommand) isCommand()    {}
func (FinishCommand) isCommand()      {}
func (ExitCommand) isCommand()        {}
func (QuitCommand) isCommand()        {}
func (RegistersCommand) isCommand()   {}
func (ResetCommand) isCommand()       {}
func (ProgressCommand) isCommand()    {}
func (NextCommand) isCommand()        {}
func (GetCommand) isCommand()         {}
func (SetCommand) isCommand()         {}
func (JumpCommand) isCommand()        {}
func (AssemblyCommand) isCommand()    {}
func (EvalCommand) isCommand()        {}
func (BreakListCommand) isCommand()   {}
func (BreakAddCommand) isCommand()    {}
func (BreakRemoveCommand) isCommand() {}

type commandName int

const (
	cmdHelp commandName = iota
	cmdContinue
	cmdFinish
	cmdExit
	cmdQuit
	cmdRegisters
	cmdReset
	cmdProgress
	cmdNext
	cmdGet
	cmdSet
	cmdJump
	cmdAssembly
	cmdEval
	cmdBreakList
	cmdBreakAdd
	cmdBreakRemove
	// cmdBreak needs a subcommand from breakAliases
	cmdBreak
)

type aliasEntry struct {
	name    commandName
	aliases []string
}

// Alias tables. Matching is case-insensitive, first match wins; none of the
// aliases conflict, but insertion order is kept stable anyway.
var commandAliases = []aliasEntry{
	{cmdHelp, []string{"help", "--help", "h", "-h"}},
	{cmdContinue, []string{"continue", "cont", "c"}},
	{cmdFinish, []string{"finish", "fin", "f"}},
	{cmdExit, []string{"exit"}},
	{cmdQuit, []string{"quit", "q"}},
	{cmdRegisters, []string{"registers", "reg", "r"}},
	{cmdReset, []string{"reset"}},
	{cmdProgress, []string{"progress", "p"}},
	{cmdNext, []string{"next", "n"}},
	{cmdGet, []string{"get", "g"}},
	{cmdSet, []string{"set", "s"}},
	{cmdJump, []string{"jump", "j"}},
	{cmdAssembly, []string{"assembly", "asm", "a"}},
	{cmdEval, []string{"eval", "e"}},
	{cmdBreakList, []string{"breaklist", "bl"}},
	{cmdBreakAdd, []string{"breakadd", "ba"}},
	{cmdBreakRemove, []string{"breakremove", "br"}},
	{cmdBreak, []string{"break", "b"}},
}

var breakAliases = []aliasEntry{
	{cmdBreakList, []string{"list", "l"}},
	{cmdBreakAdd, []string{"add", "a"}},
	{cmdBreakRemove, []string{"remove", "r"}},
}

func lookupAlias(table []aliasEntry, token string) (commandName, bool) {
	for _, entry := range table {
		for _, alias := range entry.aliases {
			if strings.EqualFold(token, alias) {
				return entry.name, true
			}
		}
	}
	return 0, false
}

// ParseCommand parses one full command line. The line must contain at least
// one token; empty lines are filtered by the input source.
func ParseCommand(line string) (Command, error) {
	it := NewArgIter(line)
	token, ok := it.nextToken()
	if !ok {
		panic("command line must contain at least one token")
	}

	name, ok := lookupAlias(commandAliases, token)
	if !ok {
		return nil, &InvalidCommandError{Name: token}
	}
	if name == cmdBreak {
		subtoken, ok := it.nextToken()
		if !ok {
			return nil, &MissingSubcommandError{Command: token}
		}
		name, ok = lookupAlias(breakAliases, subtoken)
		if !ok {
			return nil, &InvalidSubcommandError{Command: token, Subcommand: subtoken}
		}
	}

	switch name {
	case cmdHelp:
		return HelpCommand{}, it.ExpectEnd(0)
	case cmdContinue:
		return ContinueCommand{}, it.ExpectEnd(0)
	case cmdFinish:
		return FinishCommand{}, it.ExpectEnd(0)
	case cmdExit:
		return ExitCommand{}, it.ExpectEnd(0)
	case cmdQuit:
		return QuitCommand{}, it.ExpectEnd(0)
	case cmdRegisters:
		return RegistersCommand{}, it.ExpectEnd(0)
	case cmdReset:
		return ResetCommand{}, it.ExpectEnd(0)
	case cmdNext:
		return NextCommand{}, it.ExpectEnd(0)
	case cmdBreakList:
		return BreakListCommand{}, it.ExpectEnd(0)

	case cmdProgress:
		count, err := it.NextPositiveIntegerOrDefault("count")
		if err != nil {
			return nil, err
		}
		return ProgressCommand{Count: count}, it.ExpectEnd(1)

	case cmdGet:
		location, err := it.NextLocation("location", 1)
		if err != nil {
			return nil, err
		}
		return GetCommand{Location: location}, it.ExpectEnd(1)

	case cmdSet:
		location, err := it.NextLocation("location", 2)
		if err != nil {
			return nil, err
		}
		value, err := it.NextInteger("value", 2)
		if err != nil {
			return nil, err
		}
		return SetCommand{Location: location, Value: value}, it.ExpectEnd(2)

	case cmdJump:
		location, err := it.NextMemoryLocation("location", 1)
		if err != nil {
			return nil, err
		}
		return JumpCommand{Location: location}, it.ExpectEnd(1)

	case cmdAssembly:
		location, err := it.NextMemoryLocationOrDefault("location")
		if err != nil {
			return nil, err
		}
		return AssemblyCommand{Location: location}, it.ExpectEnd(1)

	case cmdEval:
		rest := it.CollectRest()
		if rest == "" {
			return nil, &MissingArgumentError{Argument: "instruction", Expected: 1, Actual: 0}
		}
		return EvalCommand{Line: rest}, nil

	case cmdBreakAdd:
		location, err := it.NextMemoryLocation("location", 1)
		if err != nil {
			return nil, err
		}
		return BreakAddCommand{Location: location}, it.ExpectEnd(1)

	case cmdBreakRemove:
		location, err := it.NextMemoryLocation("location", 1)
		if err != nil {
			return nil, err
		}
		return BreakRemoveCommand{Location: location}, it.ExpectEnd(1)
	}
	panic("unreachable: alias table names a command with no parser")
}

// HelpText is the operator command reference, printed by the help command.
const HelpText = `Debugger commands:

  help                        Print this reference.
  continue    c               Run until a breakpoint or HALT.
  progress    p [count]       Execute count instructions (default 1).
  next        n               Like progress, but step over subroutine calls.
  finish      f               Run until the current subroutine returns.
  get         g <loc>         Print the value at a register or address.
  set         s <loc> <val>   Write a value to a register or address.
  registers   r               Print all registers.
  eval        e <instr>       Assemble and execute one instruction.
  break add     ba <loc>      Add a breakpoint.
  break remove  br <loc>      Remove breakpoints at a location.
  break list    bl            List breakpoints.
  reset                       Restore the machine to its initial state.
  quit        q               Stop debugging, keep the program running.
  exit                        Terminate program and debugger.

Locations: a register (r0..r7), an address (x3000), a label with an
optional offset (Loop+2), or a program counter offset (^, ^-1, ^x10).
Integers accept decimal (#), hex (x), octal (o) and binary (b) spellings.`
