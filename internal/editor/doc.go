// Package editor implements the EDIT command's text editors.
//
// TUI is a full-screen editor built on bubbletea and the bubbles textarea.
// Lines reads replacement text line by line and is used whenever the
// console is not attached to a terminal.
package editor
