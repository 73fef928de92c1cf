// Package snapshot saves and restores a session as a YAML document.
//
// Text files are stored inline; other payloads are base64 encoded. Each file
// carries a SHA-256 checksum that is verified on restore, so a hand-edited
// snapshot that no longer matches is rejected as corrupt instead of loading
// half a tree.
package snapshot
