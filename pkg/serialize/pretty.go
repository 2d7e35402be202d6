package serialize

import (
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/trijezdci/m2c/pkg/ast"
)

const defaultWidth = 80
const indentWidth = 2

// Pretty renders n as a multi-line, indented S-expression. A list is kept
// on one line when it fits within width; width <= 0 asks the terminal
// attached to stdout for its current column count, falling back to
// defaultWidth when stdout isn't a terminal.
func Pretty(n *ast.Node, width int) string {
	if width <= 0 {
		width = terminalWidth()
	}
	//
	var b strings.Builder
	writeIndented(&b, Encode(n), 0, width)
	//
	return b.String()
}

func terminalWidth() int {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	//
	return defaultWidth
}

func writeIndented(b *strings.Builder, s SExp, depth, width int) {
	flat := s.String()
	//
	if len(flat)+depth*indentWidth <= width {
		b.WriteString(flat)
		return
	}
	//
	l, ok := s.(*List)
	if !ok {
		b.WriteString(flat)
		return
	}
	//
	b.WriteString("(")
	//
	for i, e := range l.Elements {
		if i != 0 {
			b.WriteString("\n")
			b.WriteString(strings.Repeat(" ", (depth+1)*indentWidth))
		}
		//
		writeIndented(b, e, depth+1, width)
	}
	//
	b.WriteString(")")
}
