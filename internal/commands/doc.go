// Package commands implements the DOS verbs on top of the shell dispatcher.
//
// Each verb is a shell.Handler built from a Spec and a run function. The
// handlers only touch the tree through the vfs API and the session, so every
// failure surfaces as a *dossim.Error that the dispatcher reports.
package commands
