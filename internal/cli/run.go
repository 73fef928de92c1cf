package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Acmi1/MS-Dos-Simulator/internal/batch"
	"github.com/Acmi1/MS-Dos-Simulator/pkg/dossim"
)

var runCmd = &cobra.Command{
	Use:   "run <script> [args...]",
	Short: "Run a batch file and exit",
	Long: `Run a batch file from the virtual disk, or from the host with --file, and
print what a console would show.

A failed line does not stop the run. With --strict the exit code is 13 when
any line failed. Nesting deeper than batch.max_depth aborts with exit code 12.

Examples:
  dossim run C:\DOS\HELLO.BAT Alice
  dossim run --file ./setup.bat --strict
  dossim run --snapshot work.yaml BUILD release`,
	Args: RequireScript,
	RunE: runBatch,
}

func init() {
	addSessionFlags(runCmd.Flags())
	runCmd.Flags().String("file", "", "Read the batch text from this host file instead of the disk")
	runCmd.Flags().Bool("strict", false, "Fail when any line of the batch file fails")
	runCmd.Flags().SetInterspersed(false)
	rootCmd.AddCommand(runCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	a, err := appFromCommand(cmd, false)
	if err != nil {
		return err
	}
	defer a.close()

	ctx, cancel := signalContext(cmd, a.logger)
	defer cancel()

	var (
		results []dossim.Result
		runErr  error
	)
	if hostFile, _ := cmd.Flags().GetString("file"); hostFile != "" {
		text, err := os.ReadFile(hostFile)
		if err != nil {
			return fmt.Errorf("failed to read batch file: %w", err)
		}
		name := strings.ToUpper(filepath.Base(hostFile))
		results, runErr = a.executor.RunText(ctx, name, string(text), a.sess, args)
	} else {
		id, ok := a.executor.Find(a.sess, args[0])
		if !ok {
			return dossim.PathError(dossim.KindNotFound, args[0], "Batch file not found - %s", args[0])
		}
		results, runErr = a.executor.Run(ctx, id, a.sess, args[1:])
	}

	out := cmd.OutOrStdout()
	for _, line := range batch.Render(results) {
		fmt.Fprintln(out, line)
	}
	if runErr != nil {
		return fmt.Errorf("batch run aborted: %w", runErr)
	}

	if strict, _ := cmd.Flags().GetBool("strict"); strict {
		if failed := countFailed(results); failed > 0 {
			return fmt.Errorf("%w: %d of %d command(s) failed", dossim.ErrBatchFailed, failed, len(results))
		}
	}
	return a.autosave()
}

func countFailed(results []dossim.Result) int {
	n := 0
	for _, r := range results {
		if !r.OK() {
			n++
		}
	}
	return n
}
