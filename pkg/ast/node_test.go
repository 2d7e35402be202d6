package ast

import (
	"testing"

	"github.com/trijezdci/m2c/pkg/strpool"
)

func ident(t *testing.T, pool *strpool.Pool, name string) *Node {
	t.Helper()
	//
	h, status := pool.GetString(name)
	if status != strpool.StatusOK {
		t.Fatalf("interning %q: %s", name, status)
	}
	//
	n, ok := NewTerminal(Ident, h)
	if !ok {
		t.Fatalf("constructing ident %q", name)
	}
	//
	return n
}

func TestNewBranchArityMismatchFails(t *testing.T) {
	pool := strpool.New(0)
	m := ident(t, pool, "M")
	//
	if _, ok := NewBranch(DefinitionModule, m); ok {
		t.Error("expected arity mismatch to fail construction")
	}
}

func TestNewBranchSubnodeTypeViolationFails(t *testing.T) {
	pool := strpool.New(0)
	m := ident(t, pool, "M")
	//
	if _, ok := NewBranch(Import, m); ok {
		t.Error("IMPORT requires an IDENTLIST child, not IDENT")
	}
}

func TestNewBranchSucceeds(t *testing.T) {
	pool := strpool.New(0)
	m := ident(t, pool, "M")
	//
	node, ok := NewBranch(DefinitionModule, m, EmptyNode(), EmptyNode(), EmptyNode())
	if !ok {
		t.Fatal("expected construction to succeed")
	}
	//
	if node.Kind() != DefinitionModule || node.SubnodeCount() != 4 {
		t.Errorf("unexpected node shape: %s", node)
	}
	//
	if node.Subnode(0) != m {
		t.Error("subnode 0 should be the name ident")
	}
}

func TestVarDeclAcceptsQualidentOrStructuredType(t *testing.T) {
	pool := strpool.New(0)
	names, _ := NewTerminalList(IdentList, nil)
	intType := ident(t, pool, "INTEGER")
	//
	if _, ok := NewBranch(VarDecl, names, intType); !ok {
		t.Error("VARDECL should accept a QUALIDENT-or-IDENT type denoter")
	}
	//
	arr, _ := NewBranch(ArrayType, EmptyNode(), intType)
	//
	if _, ok := NewBranch(VarDecl, names, arr); !ok {
		t.Error("VARDECL should accept a structured type denoter")
	}
	//
	if _, ok := NewBranch(VarDecl, intType, arr); ok {
		t.Error("VARDECL's first child must be an IDENTLIST")
	}
}

func TestNewListBranchVariadic(t *testing.T) {
	pool := strpool.New(0)
	a := ident(t, pool, "A")
	b := ident(t, pool, "B")
	//
	group, ok := NewBranch(FormalParamGroup, EmptyNode(), EmptyNode(), EmptyNode())
	if !ok {
		t.Fatal("constructing FORMALPARAMGROUP")
	}
	_ = a
	_ = b
	//
	params, ok := NewListBranch(FormalParams, []*Node{group, group})
	if !ok {
		t.Fatal("expected variadic construction to succeed")
	}
	//
	if params.SubnodeCount() != 2 {
		t.Errorf("expected 2 subnodes, got %d", params.SubnodeCount())
	}
}

func TestNewTerminalListIdentList(t *testing.T) {
	pool := strpool.New(0)
	a, _ := pool.GetString("A")
	b, _ := pool.GetString("B")
	//
	list, ok := NewTerminalList(IdentList, []*strpool.Handle{a, b})
	if !ok {
		t.Fatal("expected identlist construction to succeed")
	}
	//
	if list.Value(0) != a || list.Value(1) != b {
		t.Error("identlist values not preserved in order")
	}
}

func TestReplaceSubnodeRejectsBadKind(t *testing.T) {
	pool := strpool.New(0)
	m := ident(t, pool, "M")
	node, _ := NewBranch(DefinitionModule, m, EmptyNode(), EmptyNode(), EmptyNode())
	//
	bogus, _ := NewBranch(AssignStmt, EmptyNode(), EmptyNode())
	//
	if _, ok := node.ReplaceSubnode(0, bogus); ok {
		t.Error("replacing the name ident with an ASSIGN node should fail")
	}
}

func TestReleaseClearsNode(t *testing.T) {
	pool := strpool.New(0)
	m := ident(t, pool, "M")
	node, _ := NewBranch(DefinitionModule, m, EmptyNode(), EmptyNode(), EmptyNode())
	//
	Release(node)
	//
	if node.SubnodeCount() != 0 {
		t.Error("expected released node to report zero subnodes")
	}
}

func TestReleaseIgnoresEmptySingleton(t *testing.T) {
	// Must not panic and must leave the singleton usable afterward.
	Release(EmptyNode())
	//
	if EmptyNode().Kind() != Empty {
		t.Error("empty singleton must survive Release unharmed")
	}
}
