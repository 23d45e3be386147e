package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lc3kit/lc3kit/pkg/asm"
	"github.com/lc3kit/lc3kit/pkg/machine"
)

var (
	asmOutput  string
	asmSymbols string
)

var asmCmd = &cobra.Command{
	Use:   "asm <file.asm>",
	Short: "Assemble an LC-3 source file",
	Long: `Assembles LC-3 source into a big-endian .obj word image whose first
word is the load origin. The symbol table is written alongside as a YAML
.sym file, which the debugger uses to resolve labels.

Example:
  lc3kit asm countdown.asm
  lc3kit asm countdown.asm -o build/countdown.obj`,
	Args: cobra.ExactArgs(1),
	RunE: runAsm,
}

func init() {
	RootCmd.AddCommand(asmCmd)
	asmCmd.Flags().StringVarP(&asmOutput, "output", "o", "", "output object file (default: source with .obj extension)")
	asmCmd.Flags().StringVar(&asmSymbols, "symbols", "", "symbol table file (default: output with .sym extension)")
}

func runAsm(cmd *cobra.Command, args []string) error {
	sourcePath := args[0]
	source, err := os.ReadFile(sourcePath)
	if err != nil {
		return err
	}

	program, err := asm.Assemble(string(source))
	if err != nil {
		return fmt.Errorf("%s: %w", sourcePath, err)
	}
	slog.Info("assembled program",
		"source", sourcePath,
		"origin", fmt.Sprintf("x%04X", program.Orig),
		"words", len(program.Image),
		"labels", program.Symbols.Len())

	objPath := asmOutput
	if objPath == "" {
		objPath = replaceExt(sourcePath, ".obj")
	}
	obj, err := os.Create(objPath)
	if err != nil {
		return err
	}
	defer obj.Close()
	if err := machine.WriteImage(obj, program.Orig, program.Image); err != nil {
		return err
	}

	symPath := asmSymbols
	if symPath == "" {
		symPath = replaceExt(objPath, ".sym")
	}
	sym, err := os.Create(symPath)
	if err != nil {
		return err
	}
	defer sym.Close()
	return program.Symbols.Save(sym)
}

func replaceExt(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext
}
