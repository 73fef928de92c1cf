package dossim

import "context"

// Approver handles user interaction for destructive operations such as
// RD /S or deleting every file of a directory.
//
// Implementations:
//   - ForcedApprover: approves without asking (non-interactive sessions)
//   - InteractiveApprover: asks "Are you sure (Y/N)?" on the console
type Approver interface {
	// Confirm asks the user to approve an operation on target.
	//
	// Returns:
	//   - bool: true if approved, false if denied
	//   - error: Any error that occurred while asking
	Confirm(ctx context.Context, target string) (bool, error)
}
