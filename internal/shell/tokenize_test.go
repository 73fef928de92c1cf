package shell

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Acmi1/MS-Dos-Simulator/pkg/dossim"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		line string
		want []string
	}{
		{name: "simple", line: "DIR /W", want: []string{"DIR", "/W"}},
		{name: "extra whitespace", line: "  COPY \t A.TXT   B.TXT ", want: []string{"COPY", "A.TXT", "B.TXT"}},
		{name: "quoted argument", line: `MD "My Documents"`, want: []string{"MD", "My Documents"}},
		{name: "empty quotes", line: `FIND "" A.TXT`, want: []string{"FIND", "", "A.TXT"}},
		{name: "backslashes are literal", line: `CD C:\DOS\UTIL`, want: []string{"CD", `C:\DOS\UTIL`}},
		{name: "quote inside word", line: `TYPE C:\"My Docs"\A.TXT`, want: []string{"TYPE", `C:\My Docs\A.TXT`}},
		{name: "redirect glued", line: "DIR>OUT.TXT", want: []string{"DIR", ">", "OUT.TXT"}},
		{name: "append", line: "ECHO hi >> LOG.TXT", want: []string{"ECHO", "hi", ">>", "LOG.TXT"}},
		{name: "pipe and input", line: "SORT < A.TXT | FIND x", want: []string{"SORT", "<", "A.TXT", "|", "FIND", "x"}},
		{name: "quoted operator", line: `ECHO "a > b"`, want: []string{"ECHO", "a > b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, err := tokenize(tt.line)
			require.NoError(t, err)
			require.Equal(t, tt.want, texts(tokens))
		})
	}
}

func TestTokenize_Offsets(t *testing.T) {
	tokens, err := tokenize(`ECHO  "a b"  c`)
	require.NoError(t, err)
	require.Len(t, tokens, 3)

	require.Equal(t, 0, tokens[0].start)
	require.Equal(t, 4, tokens[0].end)
	require.Equal(t, 6, tokens[1].start)
	require.Equal(t, 11, tokens[1].end)
	require.True(t, tokens[1].quoted)
}

func TestTokenize_UnterminatedQuote(t *testing.T) {
	_, err := tokenize(`MD "oops`)
	require.ErrorIs(t, err, dossim.ErrInvalidArguments)
}

func TestSplitPipeline(t *testing.T) {
	tokens, err := tokenize("TYPE A.TXT | SORT | FIND x")
	require.NoError(t, err)

	stages, err := splitPipeline(tokens)
	require.NoError(t, err)
	require.Len(t, stages, 3)
	require.Equal(t, []string{"SORT"}, texts(stages[1]))

	for _, line := range []string{"| SORT", "DIR |", "DIR || SORT"} {
		tokens, err := tokenize(line)
		require.NoError(t, err)
		_, err = splitPipeline(tokens)
		require.ErrorIs(t, err, dossim.ErrInvalidArguments, line)
	}
}
