package ui

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/Acmi1/MS-Dos-Simulator/pkg/dossim"
)

// InteractiveApprover implements the Approver interface for console
// sessions. It asks "Are you sure (Y/N)?" and repeats the question until
// the answer starts with Y or N.
//
// The reader is shared with the console loop so that buffered input typed
// ahead of the prompt is not lost.
type InteractiveApprover struct {
	input  *bufio.Reader
	output io.Writer
}

// NewInteractiveApprover creates an InteractiveApprover over the console's
// reader and writer.
func NewInteractiveApprover(input *bufio.Reader, output io.Writer) dossim.Approver {
	return &InteractiveApprover{input: input, output: output}
}

// Confirm prompts for target. End of input counts as N.
func (a *InteractiveApprover) Confirm(ctx context.Context, target string) (bool, error) {
	for {
		fmt.Fprintf(a.output, "%s, Are you sure (Y/N)? ", target)

		answer, err := a.readLine(ctx)
		if err == io.EOF {
			fmt.Fprintln(a.output)
			return false, nil
		}
		if err != nil {
			return false, err
		}

		switch strings.ToUpper(strings.TrimSpace(answer)) {
		case "Y", "YES":
			return true, nil
		case "N", "NO":
			return false, nil
		}
	}
}

// readLine reads one line while honouring ctx. A read abandoned by
// cancellation completes in the background.
func (a *InteractiveApprover) readLine(ctx context.Context) (string, error) {
	type line struct {
		text string
		err  error
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	ch := make(chan line, 1)

	go func() {
		text, err := a.input.ReadString('\n')
		if err == io.EOF && text != "" {
			err = nil
		}
		ch <- line{text: text, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case l := <-ch:
		if l.err != nil {
			return "", l.err
		}
		return l.text, nil
	}
}

var _ dossim.Approver = (*InteractiveApprover)(nil)
