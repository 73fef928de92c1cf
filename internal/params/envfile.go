package params

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// ParseEnvFile parses environment file content in .env format. Keys are
// upper-cased.
//
// Format rules follow godotenv: # comments, blank lines, optional "export"
// prefix, single or double quoted values.
func ParseEnvFile(content []byte) (map[string]string, error) {
	parsed, err := godotenv.Parse(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("invalid env file: %w", err)
	}
	if _, ok := parsed[""]; ok {
		return nil, errors.New("invalid env file: empty key, expected KEY=VALUE")
	}

	result := make(map[string]string, len(parsed))
	for k, v := range parsed {
		result[strings.ToUpper(k)] = v
	}
	return result, nil
}

// LoadEnvFile reads and parses the env file at path.
func LoadEnvFile(path string) (map[string]string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read env file %s: %w", path, err)
	}
	vars, err := ParseEnvFile(content)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return vars, nil
}
