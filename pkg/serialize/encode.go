package serialize

import (
	"strconv"
	"strings"

	"github.com/trijezdci/m2c/pkg/ast"
)

// Encode converts an AST node into its S-expression form: a list tagged
// with the node's kind name, followed by its subnodes (non-terminals) or
// its interned values (terminals), recursively. Empty nodes encode as the
// bare symbol EMPTY.
func Encode(n *ast.Node) SExp {
	if n == nil || n.Kind() == ast.Empty {
		return &Symbol{"EMPTY"}
	}
	//
	if n.Kind().IsTerminal() {
		return encodeTerminal(n)
	}
	//
	elements := []SExp{&Symbol{n.Kind().String()}}
	//
	for i := 0; i < n.SubnodeCount(); i++ {
		elements = append(elements, Encode(n.Subnode(i)))
	}
	//
	return &List{elements}
}

// encodeTerminal renders a terminal's interned values, quoting string and
// character literals so embedded whitespace and parens survive a round
// trip through Parse.
func encodeTerminal(n *ast.Node) SExp {
	elements := []SExp{&Symbol{n.Kind().String()}}
	needsQuote := n.Kind() == ast.StringLit || n.Kind() == ast.CharLiteral
	//
	for i := 0; ; i++ {
		h := n.Value(i)
		if h == nil {
			break
		}
		//
		text := h.String()
		if needsQuote {
			text = quote(text)
		}
		//
		elements = append(elements, &Symbol{text})
	}
	//
	if len(elements) == 1 {
		return elements[0]
	}
	//
	return &List{elements}
}

func quote(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	//
	for _, r := range s {
		if r == '"' || r == '\\' {
			b.WriteByte('\\')
		}
		//
		b.WriteRune(r)
	}
	//
	b.WriteByte('"')
	//
	return b.String()
}

func unquote(s string) string {
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return s
	}
	//
	unescaped, err := strconv.Unquote(s)
	if err != nil {
		return s[1 : len(s)-1]
	}
	//
	return unescaped
}
