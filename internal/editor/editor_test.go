package editor

import (
	"bytes"
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Acmi1/MS-Dos-Simulator/internal/tui"
)

func TestLines_ReplacesContentUntilDot(t *testing.T) {
	var out bytes.Buffer
	ed := NewLines(strings.NewReader("first\nsecond\n.\nignored\n"), &out)

	updated, saved, err := ed.Edit(context.Background(), "NOTE.TXT", []byte("old\r\n"))
	require.NoError(t, err)
	assert.True(t, saved)
	assert.Equal(t, "first\nsecond\n", string(updated))
	assert.Contains(t, out.String(), "Editing NOTE.TXT")
	assert.Contains(t, out.String(), "  old")
}

func TestLines_StopsAtCtrlZ(t *testing.T) {
	ed := NewLines(strings.NewReader("only\n\x1a\n"), &bytes.Buffer{})

	updated, saved, err := ed.Edit(context.Background(), "A.TXT", nil)
	require.NoError(t, err)
	assert.True(t, saved)
	assert.Equal(t, "only\n", string(updated))
}

func TestLines_EOFWithoutTerminator(t *testing.T) {
	ed := NewLines(strings.NewReader("one\ntwo"), &bytes.Buffer{})

	updated, saved, err := ed.Edit(context.Background(), "A.TXT", nil)
	require.NoError(t, err)
	assert.True(t, saved)
	assert.Equal(t, "one\ntwo\n", string(updated))
}

func TestLines_EmptyInputKeepsFile(t *testing.T) {
	ed := NewLines(strings.NewReader(""), &bytes.Buffer{})

	updated, saved, err := ed.Edit(context.Background(), "A.TXT", []byte("keep"))
	require.NoError(t, err)
	assert.False(t, saved)
	assert.Equal(t, "keep", string(updated))
}

func TestLines_DotOnlyTruncates(t *testing.T) {
	ed := NewLines(strings.NewReader(".\n"), &bytes.Buffer{})

	updated, saved, err := ed.Edit(context.Background(), "A.TXT", []byte("gone"))
	require.NoError(t, err)
	assert.True(t, saved)
	assert.Empty(t, updated)
}

func TestLines_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	ed := NewLines(strings.NewReader("x\n"), &bytes.Buffer{})

	_, saved, err := ed.Edit(ctx, "A.TXT", nil)
	require.ErrorIs(t, err, context.Canceled)
	assert.False(t, saved)
}

func TestModel_SaveKey(t *testing.T) {
	m := newModel("A.TXT", "hello\r\nworld", tui.DefaultKeyMap())

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	require.NotNil(t, cmd)

	fm := next.(model)
	assert.True(t, fm.saved)
	assert.Equal(t, "hello\nworld", fm.result)
}

func TestModel_QuitKeyDiscards(t *testing.T) {
	m := newModel("A.TXT", "hello", tui.DefaultKeyMap())

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.False(t, next.(model).saved)
}

func TestModel_TypingMarksModified(t *testing.T) {
	m := newModel("A.TXT", "", tui.DefaultKeyMap())

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("hi")})
	fm := next.(model)
	assert.Equal(t, "hi", fm.area.Value())
	assert.Contains(t, fm.View(), "A.TXT *")
}

func TestModel_WindowResize(t *testing.T) {
	m := newModel("A.TXT", "", tui.DefaultKeyMap())

	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	assert.Equal(t, 100, next.(model).width)
}
