package ui

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/Acmi1/MS-Dos-Simulator/pkg/dossim"
)

// ForcedApprover implements the Approver interface for non-interactive
// sessions. It answers Y to every prompt and prints the question with the
// answer so transcripts show what was approved.
type ForcedApprover struct {
	output  io.Writer
	verbose bool
}

// NewForcedApprover creates a ForcedApprover writing to stderr. When verbose
// is false the notice is suppressed.
func NewForcedApprover(verbose bool) dossim.Approver {
	return &ForcedApprover{output: os.Stderr, verbose: verbose}
}

// Confirm approves target unless ctx is already done.
func (a *ForcedApprover) Confirm(ctx context.Context, target string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if a.verbose {
		fmt.Fprintf(a.output, "%s, Are you sure (Y/N)? Y (auto-approved)\n", target)
	}
	return true, nil
}

var _ dossim.Approver = (*ForcedApprover)(nil)
