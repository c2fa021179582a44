package asm

import "fmt"

// SyntaxError is raised by the lexer on an illegal character and by the
// parser on malformed source. It carries enough context for a caller to
// print a `line:column` diagnostic.
type SyntaxError struct {
	Message string
	Line    int
	Column  int
	Context string
	Help    string
}

func (e *SyntaxError) Error() string {
	if e.Help != "" {
		return fmt.Sprintf("%d:%d: %s (near %q)\n\n%s", e.Line, e.Column, e.Message, e.Context, e.Help)
	}
	return fmt.Sprintf("%d:%d: %s (near %q)", e.Line, e.Column, e.Message, e.Context)
}

// HasHelp reports whether this error carries supplementary usage text.
func (e *SyntaxError) HasHelp() bool {
	return e.Help != ""
}
