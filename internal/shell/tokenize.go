package shell

import (
	"strings"

	"github.com/Acmi1/MS-Dos-Simulator/pkg/dossim"
)

// Operators recognised outside quotes.
const (
	opRedirect = ">"
	opAppend   = ">>"
	opInput    = "<"
	opPipe     = "|"
)

// token is one word of a command line. start and end are byte offsets into
// the line so the dispatcher can recover the untokenised argument text.
type token struct {
	text   string
	op     string
	quoted bool
	start  int
	end    int
}

func (t token) isOp() bool { return t.op != "" }

// tokenize splits a command line into words and operators.
//
// Whitespace separates words. Double quotes group text into one word and are
// removed; a word may mix quoted and unquoted parts. Backslashes are plain
// characters so DOS paths survive untouched. Outside quotes the characters
// '>', '<' and '|' end the current word and form operators.
func tokenize(line string) ([]token, error) {
	var (
		tokens  []token
		cur     strings.Builder
		inWord  bool
		quoted  bool
		inQuote bool
		start   int
	)

	flush := func(end int) {
		if inWord {
			tokens = append(tokens, token{text: cur.String(), quoted: quoted, start: start, end: end})
		}
		cur.Reset()
		inWord, quoted = false, false
	}

	for i := 0; i < len(line); i++ {
		c := line[i]

		if inQuote {
			if c == '"' {
				inQuote = false
				continue
			}
			cur.WriteByte(c)
			continue
		}

		switch c {
		case '"':
			if !inWord {
				inWord, start = true, i
			}
			inQuote, quoted = true, true
		case ' ', '\t':
			flush(i)
		case '>', '<', '|':
			flush(i)
			op := string(c)
			if c == '>' && i+1 < len(line) && line[i+1] == '>' {
				op = opAppend
			}
			tokens = append(tokens, token{text: op, op: op, start: i, end: i + len(op)})
			i += len(op) - 1
		default:
			if !inWord {
				inWord, start = true, i
			}
			cur.WriteByte(c)
		}
	}

	if inQuote {
		return nil, dossim.Errorf(dossim.KindInvalidArguments, "Unterminated quoted string")
	}
	flush(len(line))
	return tokens, nil
}

// splitPipeline cuts the token list at '|' operators.
func splitPipeline(tokens []token) ([][]token, error) {
	var (
		segments [][]token
		cur      []token
	)
	for _, t := range tokens {
		if t.op == opPipe {
			if len(cur) == 0 {
				return nil, errSyntax()
			}
			segments = append(segments, cur)
			cur = nil
			continue
		}
		cur = append(cur, t)
	}
	if len(cur) == 0 {
		return nil, errSyntax()
	}
	return append(segments, cur), nil
}

func errSyntax() *dossim.Error {
	return dossim.Errorf(dossim.KindInvalidArguments, "The syntax of the command is incorrect.")
}
