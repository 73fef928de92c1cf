// Package vfs implements the in-memory filesystem behind the simulator.
//
// Nodes live in an arena addressed by NodeID. A directory owns its children
// by id, keyed by upper-cased name, and every node keeps the id of its parent
// as a plain lookup key. Identifiers are allocated monotonically and never
// reused.
//
// Names are case-preserving and case-insensitive:
//
//	fs := vfs.New()
//	docs, _ := fs.CreateDirectory(fs.Root(), "Docs")
//	id, _ := fs.Resolve(fs.Root(), `C:\DOCS`) // id == docs
//
// All operations return *dossim.Error values classified by dossim.Kind.
package vfs
