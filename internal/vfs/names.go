package vfs

import (
	"strings"
	"unicode"

	"github.com/Acmi1/MS-Dos-Simulator/pkg/dossim"
)

// Separator is the path separator shown to users. Forward slashes are
// accepted on input and rewritten to it.
const Separator = `\`

const invalidNameChars = `<>:"/\|?*`

// MaxLabelLength bounds volume labels. Real DOS allows 11 characters; the
// simulator's own default label is longer.
const MaxLabelLength = 32

// Normalize returns the case-insensitive key of a name. Two names share a
// key exactly when strings.EqualFold reports them equal. ASCII letters map
// to upper case.
func Normalize(name string) string {
	return strings.Map(foldRune, name)
}

// foldRune maps r to the smallest rune of its simple case-folding orbit.
func foldRune(r rune) rune {
	least := r
	for f := unicode.SimpleFold(r); f != r; f = unicode.SimpleFold(f) {
		if f < least {
			least = f
		}
	}
	return least
}

// ValidateName checks a single file or directory name.
func ValidateName(name string) error {
	switch {
	case name == "":
		return dossim.PathError(dossim.KindInvalidName, name, "The filename, directory name, or volume label syntax is incorrect.")
	case name == "." || name == "..":
		return dossim.PathError(dossim.KindInvalidName, name, "The filename, directory name, or volume label syntax is incorrect - %s", name)
	case len(name) > dossim.MaxNameLength:
		return dossim.PathError(dossim.KindInvalidName, name, "The filename or extension is too long.")
	}

	for _, r := range name {
		if r < 0x20 || strings.ContainsRune(invalidNameChars, r) {
			return dossim.PathError(dossim.KindInvalidName, name, "The filename, directory name, or volume label syntax is incorrect - %s", name)
		}
	}
	return nil
}

// ValidateLabel checks a volume label: at most MaxLabelLength characters and
// none that are invalid in names.
func ValidateLabel(label string) error {
	if len(label) > MaxLabelLength {
		return dossim.Errorf(dossim.KindInvalidName, "Invalid volume label - %s", label)
	}
	for _, r := range label {
		if r < 0x20 || strings.ContainsRune(invalidNameChars, r) {
			return dossim.Errorf(dossim.KindInvalidName, "Invalid volume label - %s", label)
		}
	}
	return nil
}

// hasDrivePrefix reports whether text starts with "X:".
func hasDrivePrefix(text string) bool {
	if len(text) < 2 || text[1] != ':' {
		return false
	}
	c := text[0]
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}

// cleanSeparators rewrites forward slashes to the DOS separator.
func cleanSeparators(text string) string {
	return strings.ReplaceAll(text, "/", Separator)
}

// SplitLeaf splits path text into its directory part and final name. The
// directory part keeps any drive prefix; an empty directory part means
// "relative to the base directory".
func SplitLeaf(text string) (dir, leaf string) {
	text = cleanSeparators(text)

	prefix := ""
	if hasDrivePrefix(text) {
		prefix, text = text[:2], text[2:]
	}

	text = strings.TrimRight(text, Separator)
	i := strings.LastIndex(text, Separator)
	if i < 0 {
		return prefix, text
	}

	d := text[:i]
	if d == "" {
		d = Separator
	}
	return prefix + d, text[i+1:]
}
