// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

// Package symtab implements the scoped symbol table: a stack of
// hash-bucket scopes with shadowing lookup, bucketed by the same FNV-1a
// hash (package hashkey) the string repository uses, so a symbol's bucket
// index is derived directly from its already-computed string-pool hash.
package symtab

import (
	"fmt"

	"github.com/trijezdci/m2c/pkg/ast"
	"github.com/trijezdci/m2c/pkg/strpool"
)

// SymbolKind is the closed set of roles a declared identifier may play.
type SymbolKind int

// The closed set of symbol kinds.
const (
	KindModule SymbolKind = iota
	KindConst
	KindType
	KindVar
	KindProcedure
	KindField
	KindValueParam
	KindVarParam
	KindConstParam
)

func (k SymbolKind) String() string {
	switch k {
	case KindModule:
		return "module"
	case KindConst:
		return "const"
	case KindType:
		return "type"
	case KindVar:
		return "var"
	case KindProcedure:
		return "procedure"
	case KindField:
		return "field"
	case KindValueParam:
		return "value-param"
	case KindVarParam:
		return "var-param"
	case KindConstParam:
		return "const-param"
	default:
		return "unknown-symbol-kind"
	}
}

// Symbol is a single declared identifier, owned by exactly one Scope.
type Symbol struct {
	Ident      *strpool.Handle
	Kind       SymbolKind
	TypeID     *strpool.Handle // nil if absent
	Definition *ast.Node       // nil if absent
	next       *Symbol         // sibling in the same hash bucket
}

// topBuckets and innerBuckets are the fixed bucket counts for the
// outermost and every nested scope, respectively.
const (
	topBuckets   = 97
	innerBuckets = 17
)

// Scope is one level of the symbol-table stack.
type Scope struct {
	Ident    *strpool.Handle
	previous *Scope
	buckets  []*Symbol
	count    int
}

// newScope allocates a scope named ident, with bucketCount buckets, linked
// to previous.
func newScope(ident *strpool.Handle, bucketCount int, previous *Scope) *Scope {
	return &Scope{Ident: ident, previous: previous, buckets: make([]*Symbol, bucketCount)}
}

func (s *Scope) bucketFor(h uint64) int {
	return int(h % uint64(len(s.buckets)))
}

// lookupLocal returns the symbol named by handle in this scope only, or nil.
func (s *Scope) lookupLocal(handle *strpool.Handle) *Symbol {
	for sym := s.buckets[s.bucketFor(handle.Hash())]; sym != nil; sym = sym.next {
		if sym.Ident == handle {
			return sym
		}
	}
	//
	return nil
}

// insert adds a new symbol to this scope without checking for a prior
// definition; callers (Table.Insert) perform the duplicate check first.
func (s *Scope) insert(sym *Symbol) {
	bucket := s.bucketFor(sym.Ident.Hash())
	sym.next = s.buckets[bucket]
	s.buckets[bucket] = sym
	s.count++
}

// Count returns the number of symbols directly owned by this scope.
func (s *Scope) Count() int { return s.count }

// Table is the symbol table: a stack of scopes plus running totals.
type Table struct {
	top         *Scope
	current     *Scope
	scopeCount  int
	symbolCount int
}

// New constructs an empty symbol table with no open scopes.
func New() *Table {
	return &Table{}
}

// OpenScope pushes a new scope named ident onto the stack. The first scope
// opened uses topBuckets buckets; every subsequent scope uses innerBuckets.
func (t *Table) OpenScope(ident *strpool.Handle) *Scope {
	bucketCount := innerBuckets
	if t.current == nil {
		bucketCount = topBuckets
	}
	//
	scope := newScope(ident, bucketCount, t.current)
	//
	if t.top == nil {
		t.top = scope
	}
	//
	t.current = scope
	t.scopeCount++
	//
	return scope
}

// CloseScope pops the current scope, removing it and (per the "close-scope
// removes contiguous scopes from current back to and including the target"
// invariant) every scope above target if target is an ancestor other than
// current. Passing nil closes exactly the current scope.
func (t *Table) CloseScope(target *Scope) {
	for t.current != nil {
		closing := t.current
		t.symbolCount -= closing.count
		t.current = closing.previous
		t.scopeCount--
		//
		if target == nil || closing == target {
			break
		}
	}
	//
	if t.current == nil {
		t.top = nil
	}
}

// CurrentScope returns the top-of-stack scope, or nil if none is open.
func (t *Table) CurrentScope() *Scope { return t.current }

// ScopeCount returns the current stack depth.
func (t *Table) ScopeCount() int { return t.scopeCount }

// SymbolCount returns the sum of symbol populations across all live scopes.
func (t *Table) SymbolCount() int { return t.symbolCount }

// Insert adds sym to the current scope, failing (returning false) if an
// identifier of the same name is already declared in that scope — the
// front end's one semantic check, duplicate identifiers within a scope.
func (t *Table) Insert(sym *Symbol) bool {
	if t.current == nil {
		return false
	}
	//
	if t.current.lookupLocal(sym.Ident) != nil {
		return false
	}
	//
	t.current.insert(sym)
	t.symbolCount++
	//
	return true
}

// Lookup searches the scope stack from current outward, returning the
// first (innermost, shadowing) match, or nil if undeclared.
func (t *Table) Lookup(handle *strpool.Handle) *Symbol {
	for scope := t.current; scope != nil; scope = scope.previous {
		if sym := scope.lookupLocal(handle); sym != nil {
			return sym
		}
	}
	//
	return nil
}

// LookupLocal searches only the current scope.
func (t *Table) LookupLocal(handle *strpool.Handle) *Symbol {
	if t.current == nil {
		return nil
	}
	//
	return t.current.lookupLocal(handle)
}

// Dump renders a debug-only summary of the scope stack and its symbols,
// innermost scope first, for use by --parser-debug traces; it is not part
// of the serializer output formats.
func (t *Table) Dump() string {
	out := ""
	//
	for scope, depth := t.current, 0; scope != nil; scope, depth = scope.previous, depth+1 {
		name := "<anonymous>"
		//
		if scope.Ident != nil {
			name = scope.Ident.String()
		}
		//
		out += fmt.Sprintf("scope[%d] %s (%d buckets, %d symbols):\n", depth, name, len(scope.buckets), scope.count)
		//
		for _, bucket := range scope.buckets {
			for sym := bucket; sym != nil; sym = sym.next {
				out += fmt.Sprintf("  %s: %s\n", sym.Ident.String(), sym.Kind)
			}
		}
	}
	//
	return out
}
