package ast

import (
	"fmt"

	"github.com/trijezdci/m2c/pkg/strpool"
)

// arity is either a fixed non-negative count or a lower bound for a
// variadic ("≥ k") kind.
type arity struct {
	count    int
	variadic bool
}

func fixed(n int) arity    { return arity{count: n} }
func atLeast(n int) arity  { return arity{count: n, variadic: true} }

func (a arity) accepts(n int) bool {
	if a.variadic {
		return n >= a.count
	}
	//
	return n == a.count
}

// subnodeRule maps a position to the set of kinds a subnode at that position
// may have. Every kind in the rules table carries a non-nil rule; the
// any rule below accepts every valid kind, Empty included.
type subnodeRule func(pos int, child Kind) bool

// kindRule bundles the arity and subnode-type constraints for one
// non-terminal kind.
type kindRule struct {
	arity arity
	rule  subnodeRule
}

// any accepts every valid kind, including Empty, at every position: used for
// kinds whose children are themselves validated one level down and for
// variadic list kinds holding homogeneous children checked structurally by
// rule.
func any(pos int, child Kind) bool { return child.IsValid() }

// identThenAny restricts position 0 (a module's name) to Ident and accepts
// any valid kind at every later position.
func identThenAny(pos int, child Kind) bool {
	if pos == 0 {
		return child == Ident
	}
	//
	return child.IsValid()
}

// only restricts every position to a fixed set of acceptable kinds.
func only(kinds ...Kind) subnodeRule {
	return func(_ int, child Kind) bool {
		if child == Empty {
			return true
		}
		//
		for _, k := range kinds {
			if child == k {
				return true
			}
		}
		//
		return false
	}
}

// rules tabulates, for every non-terminal kind, its arity and per-position
// subnode-type constraint. Kinds absent from this table are either Empty,
// Invalid, or terminal kinds (value-bearing, validated by valueRules
// instead).
var rules = map[Kind]kindRule{
	Root: {fixed(1), only(DefinitionModule, ImplementationModule, ProgramModule)},

	DefinitionModule:     {fixed(4), identThenAny},
	ImplementationModule: {fixed(4), identThenAny},
	ProgramModule:        {fixed(4), identThenAny},
	Import:               {fixed(1), only(IdentList)},
	ImportFrom:           {fixed(2), any},
	ImportList:           {atLeast(0), only(Import, ImportFrom)},
	ExportQualified:      {fixed(1), only(IdentList)},
	ExportUnqualified:    {fixed(1), only(IdentList)},

	ConstDef:         {fixed(2), any},
	TypeDef:          {fixed(2), any},
	VarDecl:          {fixed(2), only2(IdentList)},
	ProcDecl:         {fixed(3), any}, // (header, local declarations DeclSeq, body StatementSeq-or-Empty)
	ProcHeader:       {fixed(3), any},
	FormalParams:     {atLeast(0), only(FormalParamGroup)},
	FormalParamGroup: {fixed(3), any}, // (qualifier OptionFlag-or-Empty, IdentList, type denoter)
	FormalTypeList:   {atLeast(0), any},
	DeclSeq:          {atLeast(0), any},

	EnumType:     {fixed(1), only(IdentList)},
	SubrangeType: {fixed(2), any},
	SetType:      {fixed(1), any},
	ArrayType:    {fixed(2), any},
	RecordType:   {fixed(1), only(FieldList, VariantFieldList)},
	PointerType:  {fixed(1), any},
	ProcType:     {fixed(1), only(FormalTypeList)},

	FieldList:        {atLeast(0), only(FieldGroup)},
	FieldGroup:       {fixed(2), only2(IdentList)},
	VariantFieldList: {atLeast(1), only(Variant)},
	Variant:          {fixed(2), any},

	StatementSeq: {atLeast(0), any},
	AssignStmt:   {fixed(2), any},
	ProcCallStmt: {fixed(2), any},
	IfStmt:       {atLeast(1), only(IfBranch)},
	IfBranch:     {fixed(2), any},
	CaseStmt:     {atLeast(2), selectorThenOnly(CaseBranch)},
	CaseBranch:   {fixed(2), any},
	WhileStmt:    {fixed(2), any},
	RepeatStmt:   {fixed(2), any},
	LoopStmt:     {fixed(1), only(StatementSeq)},
	ForStmt:      {fixed(5), any},
	WithStmt:     {fixed(2), any},
	ExitStmt:     {fixed(0), any},
	ReturnStmt:   {fixed(1), any},

	BinaryExpr:   {fixed(3), any},
	UnaryExpr:    {fixed(2), any},
	SetExpr:      {fixed(2), any},
	SetElement:   {fixed(2), any},
	FuncCallExpr: {fixed(2), any},
	IndexExpr:    {fixed(2), any},
	FieldExpr:    {fixed(2), any},
	DerefExpr:    {fixed(1), any},
	ActualParams: {atLeast(0), any},
	RangeExpr:    {fixed(2), any},
}

// selectorThenOnly accepts anything at position 0 (a case selector
// expression) and restricts every later position to rest (a branch kind).
func selectorThenOnly(rest Kind) subnodeRule {
	return func(pos int, child Kind) bool {
		if child == Empty {
			return true
		}
		//
		if pos == 0 {
			return child.IsValid()
		}
		//
		return child == rest
	}
}

// only2 is a convenience for the common two-position pattern
// (identlist-like-thing, type-denoter): position 0 must be first; every
// later position must be a named type reference (a plain Ident when
// unqualified, or a Qualident when module-qualified) or a structured
// type-definition-family node.
func only2(first Kind) subnodeRule {
	return func(pos int, child Kind) bool {
		if child == Empty {
			return true
		}
		//
		if pos == 0 {
			return child == first
		}
		//
		return child.IsTypeDefinition() || child == Qualident || child == Ident
	}
}

// Node is a single AST node: either a non-terminal holding child references,
// or a terminal holding interned string values. The zero Node is never
// valid; use the constructors below, or Empty() for the shared singleton.
type Node struct {
	kind     Kind
	children []*Node
	values   []*strpool.Handle
}

var emptySingleton = &Node{kind: Empty}

// EmptyNode returns the shared empty-node singleton used wherever an
// optional child is absent.
func EmptyNode() *Node { return emptySingleton }

// Kind returns n's discriminant.
func (n *Node) Kind() Kind { return n.kind }

// SubnodeCount returns the number of child references held by a
// non-terminal node (zero for terminals and Empty).
func (n *Node) SubnodeCount() int { return len(n.children) }

// Subnode returns the child at position i, or EmptyNode() if i is out of
// range.
func (n *Node) Subnode(i int) *Node {
	if i < 0 || i >= len(n.children) {
		return emptySingleton
	}
	//
	return n.children[i]
}

// Value returns the terminal value at position i, or nil if i is out of
// range or n is not a terminal.
func (n *Node) Value(i int) *strpool.Handle {
	if i < 0 || i >= len(n.values) {
		return nil
	}
	//
	return n.values[i]
}

// Value0 is an alias for Value(0), the common case of a single-value
// terminal.
func (n *Node) Value0() *strpool.Handle { return n.Value(0) }

// NewBranch constructs a fixed-arity non-terminal node, validating arity and
// every subnode's kind against kind's rule. It returns (nil, false) on any
// violation, allocating nothing.
func NewBranch(kind Kind, subnodes ...*Node) (*Node, bool) {
	rule, ok := rules[kind]
	if !ok || rule.arity.variadic {
		return nil, false
	}
	//
	if !rule.arity.accepts(len(subnodes)) {
		return nil, false
	}
	//
	for i, child := range subnodes {
		if child == nil {
			return nil, false
		}
		//
		if !rule.rule(i, child.kind) {
			return nil, false
		}
	}
	//
	children := make([]*Node, len(subnodes))
	copy(children, subnodes)
	//
	return &Node{kind: kind, children: children}, true
}

// NewListBranch constructs a variadic non-terminal ("≥ k" arity) from an
// ordered slice of children, in order.
func NewListBranch(kind Kind, list []*Node) (*Node, bool) {
	rule, ok := rules[kind]
	if !ok || !rule.arity.variadic {
		return nil, false
	}
	//
	if !rule.arity.accepts(len(list)) {
		return nil, false
	}
	//
	for i, child := range list {
		if child == nil {
			return nil, false
		}
		//
		if !rule.rule(i, child.kind) {
			return nil, false
		}
	}
	//
	children := make([]*Node, len(list))
	copy(children, list)
	//
	return &Node{kind: kind, children: children}, true
}

// valueArities tabulates the fixed arity of the single-value terminal
// kinds; IdentList and the other sequence-valued terminals are handled by
// NewTerminalList instead.
var valueArities = map[Kind]int{
	Ident:       1,
	Qualident:   1,
	IntLiteral:  1,
	RealLiteral: 1,
	CharLiteral: 1,
	StringLit:   1,
	OptionFlag:  1,
}

// NewTerminal constructs a single-value terminal node.
func NewTerminal(kind Kind, value *strpool.Handle) (*Node, bool) {
	if _, ok := valueArities[kind]; !ok {
		return nil, false
	}
	//
	if value == nil {
		return nil, false
	}
	//
	return &Node{kind: kind, values: []*strpool.Handle{value}}, true
}

// NewTerminalList constructs a terminal whose value is an ordered sequence
// (identlist, option-flag list).
func NewTerminalList(kind Kind, values []*strpool.Handle) (*Node, bool) {
	switch kind {
	case IdentList, OptionFlag:
		// ok
	default:
		return nil, false
	}
	//
	for _, v := range values {
		if v == nil {
			return nil, false
		}
	}
	//
	owned := make([]*strpool.Handle, len(values))
	copy(owned, values)
	//
	return &Node{kind: kind, values: owned}, true
}

// ReplaceSubnode replaces the child at position i with newChild, returning
// the previously stored child, or (nil, false) if the replacement would
// violate n's kind rule.
func (n *Node) ReplaceSubnode(i int, newChild *Node) (*Node, bool) {
	rule, ok := rules[n.kind]
	if !ok || i < 0 || i >= len(n.children) || newChild == nil {
		return nil, false
	}
	//
	if !rule.rule(i, newChild.kind) {
		return nil, false
	}
	//
	prior := n.children[i]
	n.children[i] = newChild
	//
	return prior, true
}

// ReplaceValue replaces the value at position i with newValue, returning the
// previously stored value, or (nil, false) on an out-of-range position or a
// nil replacement.
func (n *Node) ReplaceValue(i int, newValue *strpool.Handle) (*strpool.Handle, bool) {
	if i < 0 || i >= len(n.values) || newValue == nil {
		return nil, false
	}
	//
	prior := n.values[i]
	n.values[i] = newValue
	//
	return prior, true
}

// Release deallocates n. Children must be released by the caller first; the
// Empty singleton is ignored. Release does not recurse, matching the
// "callers are responsible for traversing and releasing owned children"
// ownership rule.
func Release(n *Node) {
	if n == nil || n == emptySingleton {
		return
	}
	//
	n.children = nil
	n.values = nil
}

// String renders a compact, debug-only summary of a node: its kind and
// arity, never its full subtree (see package serialize for tree dumps).
func (n *Node) String() string {
	if n == nil {
		return "<nil>"
	}
	//
	if n.kind.IsTerminal() {
		return fmt.Sprintf("%s(%d values)", n.kind, len(n.values))
	}
	//
	return fmt.Sprintf("%s(%d subnodes)", n.kind, len(n.children))
}
