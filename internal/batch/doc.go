// Package batch runs .BAT scripts stored in the virtual disk.
//
// A script is a list of command lines executed in order against one session.
// The executor supports:
//
//   - REM, :: and :label lines, which are skipped
//   - %0 to %9 argument substitution
//   - a leading @ to hide one line, and ECHO OFF/ON for the rest
//   - nesting through CALL or by naming another script, up to the session's
//     depth limit
//
// Failing lines do not stop the script unless the failure kind is
// unrecoverable (see dossim.Kind.Recoverable).
package batch
