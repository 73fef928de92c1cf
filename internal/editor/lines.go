package editor

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/Acmi1/MS-Dos-Simulator/pkg/dossim"
)

var _ dossim.Editor = (*Lines)(nil)

// Lines is a line-oriented editor. It prints the current content, then reads
// replacement lines until a line holding only "." or ^Z, or end of input.
// Input that ends before any line is read leaves the file unchanged.
type Lines struct {
	in  *bufio.Reader
	out io.Writer
}

// NewLines creates a Lines editor reading from in and echoing to out.
func NewLines(in io.Reader, out io.Writer) *Lines {
	return &Lines{in: bufio.NewReader(in), out: out}
}

// Edit implements dossim.Editor.
func (e *Lines) Edit(ctx context.Context, name string, content []byte) ([]byte, bool, error) {
	fmt.Fprintf(e.out, "Editing %s. End with a line containing only '.' or ^Z.\n", name)
	for _, line := range strings.Split(strings.TrimSuffix(strings.ReplaceAll(string(content), "\r\n", "\n"), "\n"), "\n") {
		if line != "" {
			fmt.Fprintf(e.out, "  %s\n", line)
		}
	}

	var (
		lines []string
		read  bool
	)
	for {
		if err := ctx.Err(); err != nil {
			return content, false, err
		}

		text, err := e.in.ReadString('\n')
		if text != "" {
			read = true
		}
		text = strings.TrimRight(text, "\r\n")
		if text == "." || text == "\x1a" {
			break
		}
		if text != "" || err == nil {
			lines = append(lines, text)
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return content, false, fmt.Errorf("read editor input: %w", err)
		}
	}

	if !read {
		return content, false, nil
	}
	if len(lines) == 0 {
		return []byte{}, true, nil
	}
	return []byte(strings.Join(lines, "\n") + "\n"), true, nil
}
