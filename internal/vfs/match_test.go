package vfs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatch(t *testing.T) {
	tests := []struct {
		pattern string
		name    string
		want    bool
	}{
		{"*", "ANYTHING", true},
		{"*.*", "README.TXT", true},
		{"*.*", "NODOT", true},
		{"*.txt", "README.TXT", true},
		{"*.TXT", "notes.txt", true},
		{"*.txt", "README.BAT", false},
		{"read*", "README.TXT", true},
		{"read*", "NOTES.TXT", false},
		{"r*.txt", "README.TXT", true},
		{"r*.txt", "R.TXT", true},
		{"ab*ba", "ABA", false},
		{"readme.txt", "README.TXT", true},
		{"readme.txt", "README.TX", false},
		{"a*b*c", "ABC", false},
	}

	for _, tt := range tests {
		t.Run(tt.pattern+"/"+tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Match(tt.pattern, tt.name))
		})
	}
}

func TestHasWildcard(t *testing.T) {
	assert.True(t, HasWildcard("*.TXT"))
	assert.False(t, HasWildcard("README.TXT"))
}

func TestSplitLeaf(t *testing.T) {
	tests := []struct {
		text string
		dir  string
		leaf string
	}{
		{"FILE.TXT", "", "FILE.TXT"},
		{`A\B\FILE.TXT`, `A\B`, "FILE.TXT"},
		{`\FILE.TXT`, `\`, "FILE.TXT"},
		{`C:\FILE.TXT`, `C:\`, "FILE.TXT"},
		{"C:FILE.TXT", "C:", "FILE.TXT"},
		{"a/b", "a", "b"},
		{`A\B\`, "A", "B"},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			dir, leaf := SplitLeaf(tt.text)
			assert.Equal(t, tt.dir, dir)
			assert.Equal(t, tt.leaf, leaf)
		})
	}
}
