package extractor

import "fmt"

// Occurrence is one literal regular-expression pattern found at one call site
// in one file. Identity is positional: (FilePath, Line, Column). Records are
// created here and never mutated downstream.
type Occurrence struct {
	Pattern      string
	FilePath     string
	Line         int // 1-based, start of the string literal argument
	Column       int // 0-based, start of the string literal argument
	ContextLines []string
	Suppressed   bool
}

// SyntaxError reports a file whose contents could not be parsed as Python.
type SyntaxError struct {
	Path string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("failed to parse %s: invalid syntax", e.Path)
}
