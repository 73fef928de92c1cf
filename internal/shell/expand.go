package shell

import "strings"

// VarLookup resolves a variable name to its value.
type VarLookup func(name string) (string, bool)

// Expand replaces %NAME% references with the values returned by lookup.
// Undefined names are left as typed and "%%" collapses to a single "%".
func Expand(line string, lookup VarLookup) string {
	if !strings.Contains(line, "%") {
		return line
	}

	var b strings.Builder
	b.Grow(len(line))

	for i := 0; i < len(line); i++ {
		c := line[i]
		if c != '%' {
			b.WriteByte(c)
			continue
		}
		if i+1 < len(line) && line[i+1] == '%' {
			b.WriteByte('%')
			i++
			continue
		}

		end := strings.IndexByte(line[i+1:], '%')
		if end <= 0 {
			b.WriteByte('%')
			continue
		}
		name := line[i+1 : i+1+end]
		if strings.ContainsAny(name, " \t") {
			b.WriteByte('%')
			continue
		}
		value, ok := lookup(name)
		if !ok {
			b.WriteByte('%')
			continue
		}
		b.WriteString(value)
		i += end + 1
	}
	return b.String()
}
