package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/lc3kit/lc3kit/pkg/debugger"
	"github.com/lc3kit/lc3kit/pkg/machine"
	"github.com/lc3kit/lc3kit/pkg/symbols"
)

var (
	debugMinimal bool
	debugScript  string
	debugBreaks  []string
	debugSymbols string
)

var debugCmd = &cobra.Command{
	Use:   "debug <file.obj>",
	Short: "Run an LC-3 program under the interactive debugger",
	Long: `Loads a .obj word image and pauses before the first instruction.
Type 'help' at the prompt for the command reference.

Labels resolve against the .sym file written by 'lc3kit asm', looked up
next to the object file unless --symbols says otherwise.

Example:
  lc3kit debug countdown.obj
  lc3kit debug countdown.obj --break x3005 --command 'continue; registers'`,
	Args: cobra.ExactArgs(1),
	RunE: runDebug,
}

func init() {
	RootCmd.AddCommand(debugCmd)
	debugCmd.Flags().BoolVar(&debugMinimal, "minimal", false, "suppress commentary, print command results only")
	debugCmd.Flags().StringVar(&debugScript, "command", "", "debugger commands to run before prompting, split on ';'")
	debugCmd.Flags().StringArrayVar(&debugBreaks, "break", nil, "address to break at (repeatable)")
	debugCmd.Flags().StringVar(&debugSymbols, "symbols", "", "symbol table file (default: object with .sym extension)")
}

func runDebug(cmd *cobra.Command, args []string) error {
	objPath := args[0]
	f, err := os.Open(objPath)
	if err != nil {
		return err
	}
	state, err := machine.LoadImage(f)
	f.Close()
	if err != nil {
		return err
	}
	orig := state.PC()

	symPath := debugSymbols
	if symPath == "" {
		symPath = replaceExt(objPath, ".sym")
	}
	syms, err := symbols.Load(symPath)
	if err != nil {
		return fmt.Errorf("%s: %w", symPath, err)
	}
	slog.Info("debugging program",
		"file", objPath,
		"origin", fmt.Sprintf("x%04X", orig),
		"labels", syms.Len())

	var sources []debugger.Source
	if debugScript != "" {
		sources = append(sources, debugger.NewScriptSource(debugScript))
	}
	if term.IsTerminal(int(os.Stdin.Fd())) {
		sources = append(sources, debugger.NewTerminalSource("(lc3db) "))
	} else {
		sources = append(sources, debugger.NewScannerSource(os.Stdin))
	}

	out := debugger.NewOutput(os.Stdout, debugMinimal)
	d := debugger.New(debugger.NewMultiSource(sources...), out, slog.Default(), syms, orig, state)

	for _, raw := range debugBreaks {
		addr, err := parseAddress(raw)
		if err != nil {
			return err
		}
		d.AddBreakpoint(addr, true)
	}

	m := machine.New(state, os.Stdin, os.Stdout)
	return d.Run(m)
}

func parseAddress(raw string) (uint16, error) {
	if raw == "" {
		return 0, fmt.Errorf("empty breakpoint address")
	}
	value, isInteger, err := debugger.ParseInteger(raw, false)
	if err != nil || !isInteger || value < 0 || value > 0xFFFF {
		return 0, fmt.Errorf("invalid breakpoint address %q", raw)
	}
	return uint16(value), nil
}
