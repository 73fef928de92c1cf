package vfs

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Acmi1/MS-Dos-Simulator/pkg/dossim"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		a, b string
	}{
		{"readme.txt", "README.TXT"},
		{"Games", "gAMES"},
		{"\u212Aey", "KEY"},            // Kelvin sign
		{"cla\u017Fs", "CLASS"},        // long s
		{"\u01C5", "\u01C6"},           // title case dz
		{"\u2126", "\u03C9"},           // Ohm sign
		{"stra\u00DFe", "STRA\u1E9EE"}, // sharp s
	}

	for _, tt := range tests {
		t.Run(tt.b, func(t *testing.T) {
			require.True(t, strings.EqualFold(tt.a, tt.b))
			assert.Equal(t, Normalize(tt.a), Normalize(tt.b))
		})
	}

	assert.Equal(t, "AUTOEXEC.BAT", Normalize("autoexec.bat"))
	assert.NotEqual(t, Normalize("A"), Normalize("B"))
}

func TestCreateFile_FoldedNamesConflict(t *testing.T) {
	fs := newTestFS(t)

	_, err := fs.CreateFile(fs.Root(), "\u212Aey.txt", []byte("x"), false)
	require.NoError(t, err)

	_, err = fs.CreateFile(fs.Root(), "KEY.TXT", nil, false)
	require.ErrorIs(t, err, dossim.ErrNameConflict)

	id, err := fs.Resolve(fs.Root(), "key.txt")
	require.NoError(t, err)
	info, err := fs.Stat(id)
	require.NoError(t, err)
	assert.Equal(t, "\u212Aey.txt", info.Name, "the typed spelling is preserved")
}
