package parser

import "fmt"

// Position is a location in the parsed text. Line and Column are 1-based,
// Index is a 0-based byte offset.
type Position struct {
	Line   int
	Column int
	Index  int
}

// Start returns the position of the first character of any input.
func Start() Position {
	return Position{Line: 1, Column: 1, Index: 0}
}

// advance moves the position past r, which takes size bytes of the input.
// An invalid byte decodes as RuneError with a size of 1.
func (p Position) advance(r rune, size int) Position {
	p.Index += size
	p.Column++
	if r == '\n' {
		p.Line++
		p.Column = 1
	}
	return p
}

// String renders the position as "line:column".
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Span is the half-open range [Start, End) covered by a node.
type Span struct {
	Start Position
	End   Position
}

// Len returns the number of bytes covered by the span.
func (s Span) Len() int {
	return s.End.Index - s.Start.Index
}

// Text returns the slice of text the span covers.
func (s Span) Text(text string) string {
	return text[s.Start.Index:s.End.Index]
}
