package dossim

// Result is what the dispatcher returns for one command line.
//
// A nil Err means success. Otherwise Err carries the kind and the message to
// show the user. Output holds the lines produced by the command in order.
type Result struct {
	// Command is the line as it was dispatched (after variable expansion).
	Command string

	// Output holds the text lines produced by the command.
	Output []string

	// Err is nil on success.
	Err *Error

	// Echo is set by the batch executor when the command line itself should be
	// shown before its output.
	Echo bool

	// Prompt is the rendered prompt to show in front of an echoed command.
	Prompt string

	// Exit asks the presentation layer to end the session.
	Exit bool

	// Clear asks the presentation layer to clear the screen.
	Clear bool
}

// OK reports whether the command succeeded.
func (r Result) OK() bool { return r.Err == nil }

// Kind returns the failure kind, or an empty kind on success.
func (r Result) Kind() Kind {
	if r.Err == nil {
		return ""
	}
	return r.Err.Kind
}
