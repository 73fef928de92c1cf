package checksum

import (
	"testing"
)

func TestSHA256Calculator_CalculateRaw(t *testing.T) {
	calc := New()

	tests := []struct {
		name     string
		content  string
		expected string
	}{
		{
			name:     "Empty string",
			content:  "",
			expected: "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855",
		},
		{
			name:     "abc",
			content:  "abc",
			expected: "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := calc.CalculateRaw([]byte(tt.content))
			if result != tt.expected {
				t.Errorf("CalculateRaw() = %s, want %s", result, tt.expected)
			}
			if !calc.Verify([]byte(tt.content), tt.expected) {
				t.Errorf("Verify() rejected matching content")
			}
		})
	}
}

func TestSHA256Calculator_RawDetectsWhitespace(t *testing.T) {
	calc := New()

	a := calc.CalculateRaw([]byte("ECHO HELLO"))
	b := calc.CalculateRaw([]byte("ECHO  HELLO"))
	if a == b {
		t.Error("raw checksums should differ on whitespace changes")
	}
}

func TestSHA256Calculator_CalculateNormalized(t *testing.T) {
	calc := New()

	tests := []struct {
		name      string
		a         string
		b         string
		wantEqual bool
	}{
		{name: "Case differences", a: "echo hello", b: "ECHO HELLO", wantEqual: true},
		{name: "Whitespace runs", a: "ECHO   HELLO", b: "ECHO HELLO", wantEqual: true},
		{name: "Line endings", a: "LINE1\r\nLINE2\r\n", b: "LINE1\nLINE2", wantEqual: true},
		{name: "Leading and trailing space", a: "  DIR  ", b: "DIR", wantEqual: true},
		{name: "Different words", a: "ECHO HELLO", b: "ECHO WORLD", wantEqual: false},
		{name: "Whitespace inside a word matters", a: "HEL LO", b: "HELLO", wantEqual: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := calc.CalculateNormalized([]byte(tt.a))
			b := calc.CalculateNormalized([]byte(tt.b))
			if (a == b) != tt.wantEqual {
				t.Errorf("CalculateNormalized(%q) == CalculateNormalized(%q) is %v, want %v", tt.a, tt.b, a == b, tt.wantEqual)
			}
		})
	}
}

func TestSHA256Calculator_Verify(t *testing.T) {
	calc := New()
	sum := calc.CalculateRaw([]byte("payload"))

	if calc.Verify([]byte("tampered"), sum) {
		t.Error("Verify() accepted tampered content")
	}
}
