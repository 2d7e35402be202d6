package serialize

import "fmt"

// Span identifies a contiguous run of runes in the text being parsed.
type Span struct {
	start int
	end   int
}

// NewSpan constructs a span, panicking if the bounds are inverted.
func NewSpan(start, end int) Span {
	if start > end {
		panic("serialize: invalid span")
	}
	//
	return Span{start, end}
}

// Start returns the first rune index covered by the span.
func (s Span) Start() int { return s.start }

// End returns one past the last rune index covered by the span.
func (s Span) End() int { return s.end }

// SyntaxError reports a malformed S-expression at a given rune span.
type SyntaxError struct {
	span Span
	msg  string
}

// Span returns the span the error was reported against.
func (e *SyntaxError) Span() Span { return e.span }

// Message returns the human-readable error text.
func (e *SyntaxError) Message() string { return e.msg }

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.span.start, e.span.end, e.msg)
}
