package params

import (
	"fmt"
	"strings"
)

// ParseKeyValuePairs converts a slice of "NAME=value" strings into a map with
// upper-cased names.
//
// Example:
//
//	vars, err := ParseKeyValuePairs([]string{"greeting=hi", "PATH=C:\\BIN"})
//	// Returns: map[string]string{"GREETING": "hi", "PATH": "C:\\BIN"}
func ParseKeyValuePairs(pairs []string) (map[string]string, error) {
	result := make(map[string]string, len(pairs))

	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("variable %q is not in NAME=value format (example: --set GREETING=hello)", pair)
		}

		key = strings.TrimSpace(key)
		if key == "" {
			return nil, fmt.Errorf("variable has empty key: %q", pair)
		}

		result[strings.ToUpper(key)] = value
	}

	return result, nil
}

// Merge layers variable maps, later maps overriding earlier ones. Names are
// upper-cased; nil maps are skipped.
func Merge(layers ...map[string]string) map[string]string {
	result := make(map[string]string)
	for _, layer := range layers {
		for k, v := range layer {
			result[strings.ToUpper(k)] = v
		}
	}
	return result
}
