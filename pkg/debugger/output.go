package debugger

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/lc3kit/lc3kit/pkg/machine"
)

// Condition gates operator-facing output. Always lines are the command
// results themselves; Sometimes lines are commentary suppressed in minimal
// mode, keeping scripted sessions machine-readable.
type Condition int

const (
	Always Condition = iota
	Sometimes
)

var (
	colorAddr    = color.New(color.FgCyan)
	colorValue   = color.New(color.FgWhite, color.Bold)
	colorReg     = color.New(color.FgGreen)
	colorPC      = color.New(color.FgGreen, color.Bold)
	colorError   = color.New(color.FgRed, color.Bold)
	colorNotice  = color.New(color.FgYellow)
	colorBreak   = color.New(color.FgRed, color.Bold)
	colorHiBlack = color.New(color.FgHiBlack)
)

// Output writes operator-facing debugger text.
type Output struct {
	w       io.Writer
	minimal bool
}

// NewOutput creates an Output. In minimal mode Sometimes-conditioned lines
// are dropped.
func NewOutput(w io.Writer, minimal bool) *Output {
	return &Output{w: w, minimal: minimal}
}

// Print writes one formatted line under a condition.
func (o *Output) Print(cond Condition, format string, args ...any) {
	if cond == Sometimes && o.minimal {
		return
	}
	fmt.Fprintf(o.w, format+"\n", args...)
}

// Error reports a recoverable command failure.
func (o *Output) Error(err error) {
	colorError.Fprintf(o.w, "error: %s\n", err)
}

// Notice writes an Always-shown advisory line.
func (o *Output) Notice(format string, args ...any) {
	colorNotice.Fprintf(o.w, format+"\n", args...)
}

// PrintInteger shows one 16-bit word in hex, unsigned and signed decimal.
func (o *Output) PrintInteger(value uint16) {
	colorValue.Fprintf(o.w, "x%04X", value)
	fmt.Fprintf(o.w, "  #%d", value)
	if value >= 0x8000 {
		colorHiBlack.Fprintf(o.w, "  (#%d)", int16(value))
	}
	fmt.Fprintln(o.w)
}

// PrintRegisters dumps the program counter, the general purpose registers
// and the condition flag.
func (o *Output) PrintRegisters(s *machine.State) {
	colorPC.Fprint(o.w, "PC")
	fmt.Fprintf(o.w, "  x%04X\n", s.PC())
	for i := 0; i < machine.RegisterCount; i++ {
		value := s.Reg(uint16(i))
		colorReg.Fprintf(o.w, "R%d", i)
		fmt.Fprintf(o.w, "  x%04X  #%d\n", value, value)
	}
	colorReg.Fprint(o.w, "CC")
	fmt.Fprintf(o.w, "  %s\n", flagName(s.Flag()))
}

// PrintBreakpoint shows one breakpoint list entry.
func (o *Output) PrintBreakpoint(point Breakpoint) {
	colorBreak.Fprint(o.w, "breakpoint")
	colorAddr.Fprintf(o.w, " x%04X", point.Address)
	if point.Predefined {
		colorHiBlack.Fprint(o.w, "  (predefined)")
	}
	fmt.Fprintln(o.w)
}

func flagName(flag uint16) string {
	switch flag {
	case machine.FlagNegative:
		return "n"
	case machine.FlagZero:
		return "z"
	case machine.FlagPositive:
		return "p"
	}
	return "?"
}
