// Package session holds the per-run state threaded through every command:
// current directory, variables, echo flag and batch depth.
package session
