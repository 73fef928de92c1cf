package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

var execCmd = &cobra.Command{
	Use:   "exec <command line>...",
	Short: "Run one command line and exit",
	Long: `Run one command line against a fresh (or restored) session and exit.

The words after the flags are joined with spaces, so quote pipes and
redirections to keep the host shell from interpreting them.

Examples:
  dossim exec DIR /W
  dossim exec --snapshot work.yaml "TYPE NOTES.TXT | FIND /I \"todo\""`,
	Args:          RequireCommandLine,
	RunE:          runExec,
	SilenceErrors: true,
}

func init() {
	addSessionFlags(execCmd.Flags())
	execCmd.Flags().SetInterspersed(false)
	rootCmd.AddCommand(execCmd)
}

func runExec(cmd *cobra.Command, args []string) error {
	a, err := appFromCommand(cmd, false)
	if err != nil {
		cmd.PrintErrln("Error:", err)
		return err
	}
	defer a.close()

	ctx, cancel := signalContext(cmd, a.logger)
	defer cancel()

	res := a.console.Execute(ctx, strings.Join(args, " "))
	if res.Err != nil {
		return res.Err
	}
	return a.autosave()
}
