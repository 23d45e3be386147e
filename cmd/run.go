package cmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/lc3kit/lc3kit/pkg/machine"
)

var runCmd = &cobra.Command{
	Use:   "run <file.obj>",
	Short: "Execute an LC-3 object file",
	Long: `Loads a .obj word image and runs it to completion. Trap input and
output use stdin and stdout.`,
	Args: cobra.ExactArgs(1),
	RunE: runRun,
}

func init() {
	RootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	state, err := machine.LoadImage(f)
	f.Close()
	if err != nil {
		return err
	}
	slog.Info("loaded program", "file", args[0], "origin", state.PC())

	return machine.New(state, os.Stdin, os.Stdout).Run()
}
