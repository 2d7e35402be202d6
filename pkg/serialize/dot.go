package serialize

import (
	"fmt"
	"io"
	"strings"

	"github.com/trijezdci/m2c/pkg/ast"
)

// WriteDOT renders n as a Graphviz DOT digraph: one node per AST node
// (labeled with its kind name, and its interned values when terminal),
// one edge per parent/child relationship.
func WriteDOT(w io.Writer, n *ast.Node) error {
	if _, err := io.WriteString(w, "digraph AST {\n  node [shape=box, fontname=\"monospace\"];\n"); err != nil {
		return err
	}
	//
	next := 0
	//
	if err := writeDOTNode(w, n, &next); err != nil {
		return err
	}
	//
	_, err := io.WriteString(w, "}\n")
	return err
}

func writeDOTNode(w io.Writer, n *ast.Node, next *int) (err error) {
	id := *next
	*next++
	//
	label := dotLabel(n)
	//
	if _, err = fmt.Fprintf(w, "  n%d [label=%q];\n", id, label); err != nil {
		return err
	}
	//
	if n == nil || n.Kind() == ast.Empty || n.Kind().IsTerminal() {
		return nil
	}
	//
	for i := 0; i < n.SubnodeCount(); i++ {
		childID := *next
		//
		if err = writeDOTNode(w, n.Subnode(i), next); err != nil {
			return err
		}
		//
		if _, err = fmt.Fprintf(w, "  n%d -> n%d;\n", id, childID); err != nil {
			return err
		}
	}
	//
	return nil
}

func dotLabel(n *ast.Node) string {
	if n == nil || n.Kind() == ast.Empty {
		return "EMPTY"
	}
	//
	if !n.Kind().IsTerminal() {
		return n.Kind().String()
	}
	//
	var values []string
	//
	for i := 0; ; i++ {
		h := n.Value(i)
		if h == nil {
			break
		}
		//
		values = append(values, h.String())
	}
	//
	if len(values) == 0 {
		return n.Kind().String()
	}
	//
	return n.Kind().String() + " " + strings.Join(values, ",")
}
