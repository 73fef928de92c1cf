package dossim

import "context"

// Editor lets the user change the content of a text file.
//
// Implementations:
//   - editor.TUI: full-screen editor for interactive terminals
//   - editor.Lines: line-oriented input for scripts and pipes
type Editor interface {
	// Edit shows content under the title name and returns the edited text.
	// saved is false when the user quit without saving; updated is then
	// the original content.
	Edit(ctx context.Context, name string, content []byte) (updated []byte, saved bool, err error)
}
