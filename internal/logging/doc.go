// Package logging provides concrete implementations of the dossim.Logger interface.
//
// Available implementations:
//   - ConsoleLogger: Writes prefixed, optionally coloured messages to stderr
//   - NullLogger: Discards all messages (useful for testing)
//
// All logger implementations are safe for concurrent use by multiple goroutines.
package logging
