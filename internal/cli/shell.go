package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/Acmi1/MS-Dos-Simulator/internal/tui"
	"github.com/Acmi1/MS-Dos-Simulator/pkg/dossim"
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Start the interactive DOS prompt (default)",
	Long: `Start the interactive DOS prompt.

The disk starts from the seed template (or the snapshot given with
--snapshot), AUTOEXEC.BAT runs, then commands are read until EXIT or end of
input. Piped input is echoed after the prompt so transcripts read naturally.

Examples:
  dossim
  dossim shell --snapshot work.yaml --set GREETING=hello
  echo DIR | dossim shell --no-autoexec`,
	Args: cobra.NoArgs,
	RunE: runShell,
}

func init() {
	addSessionFlags(shellCmd.Flags())
	addMetricsFlag(shellCmd.Flags())
	addMetricsFlag(rootCmd.Flags())
	rootCmd.AddCommand(shellCmd)
}

func addMetricsFlag(flags *pflag.FlagSet) {
	flags.String("metrics-addr", "", "Serve Prometheus metrics on this address (e.g. :9090)")
}

func runShell(cmd *cobra.Command, args []string) error {
	mode := tui.DetectMode()
	a, err := appFromCommand(cmd, mode == tui.ModeInteractive)
	if err != nil {
		return err
	}
	defer a.close()
	a.logger.Verbose("Console mode: %s", mode)

	ctx := commandContext(cmd)

	if addr, _ := cmd.Flags().GetString("metrics-addr"); addr != "" {
		stop := serveMetrics(addr, a.metrics.Handler(), a.logger)
		defer stop()
	}

	if mode == tui.ModeInteractive {
		a.console.Banner()
	}
	if noAutoexec, _ := cmd.Flags().GetBool("no-autoexec"); !noAutoexec {
		a.autoexec(ctx)
	}

	if err := a.console.Run(ctx); err != nil {
		return err
	}
	return a.autosave()
}

// serveMetrics exposes handler at /metrics until the returned stop function
// is called.
func serveMetrics(addr string, handler http.Handler, logger dossim.Logger) func() {
	mux := http.NewServeMux()
	mux.Handle("/metrics", handler)
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Verbose("Serving metrics on %s/metrics", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server: %v", err)
		}
	}()

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// signalContext cancels on Ctrl+C or SIGTERM.
func signalContext(cmd *cobra.Command, logger dossim.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(commandContext(cmd))

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		select {
		case <-sigChan:
			logger.Info("Received interrupt signal, stopping batch run...")
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, func() {
		signal.Stop(sigChan)
		cancel()
	}
}
