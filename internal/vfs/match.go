package vfs

import "strings"

// HasWildcard reports whether text contains a '*' pattern.
func HasWildcard(text string) bool {
	return strings.Contains(text, "*")
}

// Match reports whether name matches pattern, ignoring case. Only a single
// '*' is understood: "*", "*.*", "prefix*", "*suffix" and "prefix*suffix".
// A pattern without '*' must equal the name. "*.*" matches every name,
// including names without a dot, as DOS does.
func Match(pattern, name string) bool {
	p := Normalize(pattern)
	n := Normalize(name)

	if p == "*" || p == "*.*" {
		return true
	}

	i := strings.Index(p, "*")
	if i < 0 {
		return p == n
	}
	if strings.Count(p, "*") > 1 {
		return false
	}

	prefix, suffix := p[:i], p[i+1:]
	return len(n) >= len(prefix)+len(suffix) &&
		strings.HasPrefix(n, prefix) &&
		strings.HasSuffix(n, suffix)
}
