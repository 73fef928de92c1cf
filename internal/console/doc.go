// Package console runs the interactive prompt loop: print the prompt, read a
// line, dispatch it and print the outcome until EXIT or end of input.
package console
