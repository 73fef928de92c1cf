package ui

import (
	"bufio"
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForcedApprover_Approves(t *testing.T) {
	var output bytes.Buffer
	approver := &ForcedApprover{output: &output, verbose: true}

	approved, err := approver.Confirm(context.Background(), `C:\GAMES\*`)
	require.NoError(t, err)
	assert.True(t, approved)
	assert.Equal(t, "C:\\GAMES\\*, Are you sure (Y/N)? Y (auto-approved)\n", output.String())
}

func TestForcedApprover_Quiet(t *testing.T) {
	var output bytes.Buffer
	approver := &ForcedApprover{output: &output}

	approved, err := approver.Confirm(context.Background(), "X")
	require.NoError(t, err)
	assert.True(t, approved)
	assert.Empty(t, output.String())
}

func TestForcedApprover_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	approved, err := (&ForcedApprover{output: &bytes.Buffer{}}).Confirm(ctx, "X")
	require.ErrorIs(t, err, context.Canceled)
	assert.False(t, approved)
}

func TestNewForcedApprover(t *testing.T) {
	fa, ok := NewForcedApprover(true).(*ForcedApprover)
	require.True(t, ok)
	assert.True(t, fa.verbose)
	assert.NotNil(t, fa.output)
}

func TestInteractiveApprover_Answers(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    bool
		prompts int
	}{
		{"yes", "y\n", true, 1},
		{"full yes", "Yes\n", true, 1},
		{"no", "N\n", false, 1},
		{"retry until valid", "maybe\n\ny\n", true, 3},
		{"no trailing newline", "y", true, 1},
		{"eof", "", false, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var output bytes.Buffer
			approver := NewInteractiveApprover(bufio.NewReader(strings.NewReader(tt.input)), &output)

			approved, err := approver.Confirm(context.Background(), `C:\TEMP`)
			require.NoError(t, err)
			assert.Equal(t, tt.want, approved)
			assert.Equal(t, tt.prompts, strings.Count(output.String(), `C:\TEMP, Are you sure (Y/N)? `))
		})
	}
}

func TestInteractiveApprover_LeavesRemainingInput(t *testing.T) {
	reader := bufio.NewReader(strings.NewReader("y\nDIR\n"))
	approver := NewInteractiveApprover(reader, &bytes.Buffer{})

	approved, err := approver.Confirm(context.Background(), "X")
	require.NoError(t, err)
	assert.True(t, approved)

	rest, err := reader.ReadString('\n')
	require.NoError(t, err)
	assert.Equal(t, "DIR\n", rest)
}

func TestInteractiveApprover_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	blocked := bufio.NewReader(blockingReader{})
	approved, err := NewInteractiveApprover(blocked, &bytes.Buffer{}).Confirm(ctx, "X")
	require.ErrorIs(t, err, context.Canceled)
	assert.False(t, approved)
}

type blockingReader struct{}

func (blockingReader) Read([]byte) (int, error) { select {} }
