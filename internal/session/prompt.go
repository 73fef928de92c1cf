package session

import (
	"strings"
	"time"

	"github.com/Acmi1/MS-Dos-Simulator/pkg/dossim"
)

// Prompt renders the PROMPT variable. Supported codes:
//
//	$P current path      $G >     $L <     $B |     $Q =
//	$N drive letter      $D date  $T time  $V version
//	$_ line break        $E escape  $$ dollar sign
//
// Unknown codes are dropped, as COMMAND.COM does.
func (s *Session) Prompt(now time.Time) string {
	spec, ok := s.Var("PROMPT")
	if !ok {
		spec = dossim.DefaultPrompt
	}

	var b strings.Builder
	for i := 0; i < len(spec); i++ {
		c := spec[i]
		if c != '$' || i+1 >= len(spec) {
			b.WriteByte(c)
			continue
		}
		i++
		switch spec[i] {
		case 'P', 'p':
			b.WriteString(s.CwdPath())
		case 'G', 'g':
			b.WriteByte('>')
		case 'L', 'l':
			b.WriteByte('<')
		case 'B', 'b':
			b.WriteByte('|')
		case 'Q', 'q':
			b.WriteByte('=')
		case 'N', 'n':
			b.WriteByte(s.fs.Drive())
		case 'D', 'd':
			b.WriteString(now.Format("Mon 01-02-2006"))
		case 'T', 't':
			b.WriteString(now.Format("15:04:05.00"))
		case 'V', 'v':
			b.WriteString("DOS-Simulator Version " + dossim.Version)
		case '_':
			b.WriteByte('\n')
		case 'E', 'e':
			b.WriteByte(0x1b)
		case '$':
			b.WriteByte('$')
		}
	}
	return b.String()
}
