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

// Package tables holds the precomputed FIRST, FOLLOW, and RESYNC token
// sets the parser consults at every production. A handful of productions
// are option-dependent: they carry a primary and an alternate set, selected
// at lookup time by the caller's dialect.Options.
package tables

import (
	"fmt"

	"github.com/trijezdci/m2c/pkg/dialect"
	"github.com/trijezdci/m2c/pkg/token"
)

// Production names the fixed, ordered enumeration of non-terminals this
// front end's grammar recognizes.
type Production int

// The enumeration of productions with precomputed FIRST/FOLLOW sets.
const (
	Module Production = iota
	ImportList
	Import
	ExportList
	DeclarationSequence
	ConstDeclaration
	TypeDeclaration
	VarDeclaration
	ProcedureDeclaration
	FormalParameters
	FormalParamGroup
	TypeDenoter
	EnumType
	SubrangeType
	SetType
	ArrayType
	RecordType
	FieldListSequence
	PointerType
	ProcedureType
	StatementSequence
	Statement
	Designator
	ActualParameters
	Expression
	SimpleExpression
	Term
	Factor
	numProductions
)

var productionNames = map[Production]string{
	Module:               "module",
	ImportList:           "import-list",
	Import:               "import",
	ExportList:           "export-list",
	DeclarationSequence:  "declaration-sequence",
	ConstDeclaration:     "const-declaration",
	TypeDeclaration:      "type-declaration",
	VarDeclaration:       "var-declaration",
	ProcedureDeclaration: "procedure-declaration",
	FormalParameters:     "formal-parameters",
	FormalParamGroup:     "formal-param-group",
	TypeDenoter:          "type-denoter",
	EnumType:             "enum-type",
	SubrangeType:         "subrange-type",
	SetType:              "set-type",
	ArrayType:            "array-type",
	RecordType:           "record-type",
	FieldListSequence:    "field-list-sequence",
	PointerType:          "pointer-type",
	ProcedureType:        "procedure-type",
	StatementSequence:    "statement-sequence",
	Statement:            "statement",
	Designator:           "designator",
	ActualParameters:     "actual-parameters",
	Expression:           "expression",
	SimpleExpression:     "simple-expression",
	Term:                 "term",
	Factor:               "factor",
}

// Name returns a human-readable identifier for a production, used in
// parser-debug traces.
func (p Production) Name() string {
	if name, ok := productionNames[p]; ok {
		return name
	}
	//
	return fmt.Sprintf("production(%d)", int(p))
}

// Resync names the fixed enumeration of recovery sets consulted by the
// parser's panic-mode resynchronization routine.
type Resync int

// The enumeration of resync sets.
const (
	ResyncDeclaration Resync = iota
	ResyncStatement
	ResyncModuleEnd
	numResyncs
)

var resyncNames = map[Resync]string{
	ResyncDeclaration: "resync-declaration",
	ResyncStatement:   "resync-statement",
	ResyncModuleEnd:   "resync-module-end",
}

func (r Resync) Name() string {
	if name, ok := resyncNames[r]; ok {
		return name
	}
	//
	return fmt.Sprintf("resync(%d)", int(r))
}

// entry holds a production's primary set and, for option-dependent
// productions, its alternate.
type entry struct {
	primary    token.Set
	alternate  token.Set
	hasAlt     bool
}

var firstSets = map[Production]entry{}
var followSets = map[Production]entry{}
var resyncSets = map[Resync]token.Set{}

func set(kinds ...token.Kind) token.Set { return token.Of(kinds...) }

func init() {
	firstSets[Module] = entry{primary: set(token.Definition, token.Implementation, token.Module)}
	followSets[Module] = entry{primary: set(token.EOF)}

	firstSets[ImportList] = entry{primary: set(token.From, token.Import)}
	followSets[ImportList] = entry{primary: set(token.Const, token.Type, token.Var, token.Procedure, token.Begin, token.End, token.Export)}

	firstSets[Import] = entry{primary: set(token.From, token.Import)}
	followSets[Import] = entry{primary: set(token.From, token.Import, token.Const, token.Type, token.Var, token.Procedure, token.Begin, token.End)}

	firstSets[ExportList] = entry{primary: set(token.Export)}
	followSets[ExportList] = entry{primary: set(token.Const, token.Type, token.Var, token.Procedure, token.Begin, token.End)}

	declFirst := set(token.Const, token.Type, token.Var, token.Procedure)
	declFollow := set(token.Begin, token.End, token.Procedure, token.Const, token.Type, token.Var)
	firstSets[DeclarationSequence] = entry{primary: declFirst}
	followSets[DeclarationSequence] = entry{primary: declFollow}

	firstSets[ConstDeclaration] = entry{primary: set(token.Const)}
	followSets[ConstDeclaration] = entry{primary: declFollow}

	firstSets[TypeDeclaration] = entry{primary: set(token.Type)}
	followSets[TypeDeclaration] = entry{primary: declFollow}

	firstSets[VarDeclaration] = entry{primary: set(token.Var)}
	followSets[VarDeclaration] = entry{primary: declFollow}

	firstSets[ProcedureDeclaration] = entry{primary: set(token.Procedure)}
	followSets[ProcedureDeclaration] = entry{primary: declFollow}

	// FormalParamGroup (not FormalParameters) is option-dependent on
	// const-parameters: the primary set additionally admits the CONST
	// qualifier before a formal parameter group; the alternate does not.
	firstSets[FormalParameters] = entry{primary: set(token.LParen)}
	followSets[FormalParameters] = entry{primary: set(token.Colon, token.Semicolon, token.RParen)}

	firstSets[FormalParamGroup] = entry{
		primary:   set(token.Const, token.Var, token.Ident),
		alternate: set(token.Var, token.Ident),
		hasAlt:    true,
	}
	followSets[FormalParamGroup] = entry{primary: set(token.Semicolon, token.RParen)}

	typeFirst := set(token.Ident, token.Array, token.Record, token.Set, token.Pointer, token.Procedure, token.LParen, token.LBracket)
	firstSets[TypeDenoter] = entry{primary: typeFirst}
	followSets[TypeDenoter] = entry{primary: set(token.Semicolon, token.End, token.RParen, token.RBracket)}

	firstSets[EnumType] = entry{primary: set(token.LParen)}
	followSets[EnumType] = entry{primary: set(token.Semicolon, token.End)}

	firstSets[SubrangeType] = entry{primary: set(token.LBracket, token.Ident, token.IntegerLiteral)}
	followSets[SubrangeType] = entry{primary: set(token.Semicolon, token.End)}

	firstSets[SetType] = entry{primary: set(token.Set)}
	followSets[SetType] = entry{primary: set(token.Semicolon, token.End)}

	firstSets[ArrayType] = entry{primary: set(token.Array)}
	followSets[ArrayType] = entry{primary: set(token.Semicolon, token.End)}

	firstSets[RecordType] = entry{primary: set(token.Record)}
	followSets[RecordType] = entry{primary: set(token.Semicolon, token.End)}

	// FieldListSequence is option-dependent on variant-records: the
	// primary set admits CASE as an alternative field-list form; the
	// alternate does not.
	firstSets[FieldListSequence] = entry{
		primary:   set(token.Ident, token.Case),
		alternate: set(token.Ident),
		hasAlt:    true,
	}
	followSets[FieldListSequence] = entry{primary: set(token.End)}

	firstSets[PointerType] = entry{primary: set(token.Pointer)}
	followSets[PointerType] = entry{primary: set(token.Semicolon, token.End)}

	firstSets[ProcedureType] = entry{primary: set(token.Procedure)}
	followSets[ProcedureType] = entry{primary: set(token.Semicolon, token.End)}

	stmtFirst := set(token.Ident, token.If, token.Case, token.While, token.Repeat, token.Loop,
		token.For, token.With, token.Exit, token.Return)
	stmtFollow := set(token.Semicolon, token.End, token.Else, token.Elsif, token.Until)
	firstSets[StatementSequence] = entry{primary: stmtFirst}
	followSets[StatementSequence] = entry{primary: stmtFollow}

	firstSets[Statement] = entry{primary: stmtFirst}
	followSets[Statement] = entry{primary: set(token.Semicolon, token.End, token.Else, token.Elsif, token.Until, token.EOF)}

	firstSets[Designator] = entry{primary: set(token.Ident)}
	followSets[Designator] = entry{primary: set(token.Assign, token.LParen, token.Semicolon, token.End,
		token.Plus, token.Minus, token.Star, token.Slash, token.Equal, token.NotEqual,
		token.Less, token.Greater, token.LessEqual, token.GreaterEqual, token.RParen, token.Comma,
		token.RBracket, token.Of, token.Do, token.Then)}

	firstSets[ActualParameters] = entry{primary: set(token.LParen)}
	followSets[ActualParameters] = entry{primary: set(token.Semicolon, token.End, token.RParen)}

	exprFollow := set(token.Semicolon, token.End, token.RParen, token.RBracket, token.Comma, token.Do,
		token.Then, token.Of, token.To, token.By, token.Range)
	exprFirst := set(token.Ident, token.IntegerLiteral, token.RealLiteral, token.CharLiteral, token.StringLiteral,
		token.LParen, token.LBrace, token.Plus, token.Minus, token.Not, token.Tilde)
	firstSets[Expression] = entry{primary: exprFirst}
	followSets[Expression] = entry{primary: exprFollow}

	firstSets[SimpleExpression] = entry{primary: exprFirst}
	followSets[SimpleExpression] = entry{primary: Union(exprFollow, set(token.Equal, token.NotEqual, token.Less,
		token.Greater, token.LessEqual, token.GreaterEqual, token.In))}

	firstSets[Term] = entry{primary: exprFirst}
	followSets[Term] = entry{primary: Union(exprFollow, set(token.Plus, token.Minus, token.Or))}

	firstSets[Factor] = entry{primary: exprFirst}
	followSets[Factor] = entry{primary: Union(exprFollow, set(token.Star, token.Slash, token.Div, token.Mod, token.And))}

	resyncSets[ResyncDeclaration] = Union(declFirst, set(token.Begin, token.End))
	resyncSets[ResyncStatement] = Union(stmtFirst, set(token.Semicolon, token.End))
	resyncSets[ResyncModuleEnd] = set(token.End, token.EOF)
}

// Union is a small re-export of token.Union used while building the tables
// above, exported so callers outside this package can compose ad hoc sets
// such as FIRST(p) ∪ FOLLOW(p) ∪ RESYNC(r). The parser itself does not call
// it.
func Union(sets ...token.Set) token.Set {
	return token.Union(sets...)
}

// FIRST returns the FIRST set of production p under the given dialect
// options.
func FIRST(p Production, opts dialect.Options) token.Set {
	return selectEntry(firstSets, p, opts)
}

// FOLLOW returns the FOLLOW set of production p under the given dialect
// options.
func FOLLOW(p Production, opts dialect.Options) token.Set {
	return selectEntry(followSets, p, opts)
}

func selectEntry(table map[Production]entry, p Production, opts dialect.Options) token.Set {
	e, ok := table[p]
	if !ok {
		return token.NewSet()
	}
	//
	if !e.hasAlt {
		return e.primary
	}
	//
	switch p {
	case FormalParamGroup:
		if opts.ConstParameters {
			return e.primary
		}
		//
		return e.alternate
	case FieldListSequence:
		if opts.VariantRecords {
			return e.primary
		}
		//
		return e.alternate
	default:
		return e.primary
	}
}

// RESYNC returns the named resync set.
func RESYNC(r Resync) token.Set {
	return resyncSets[r]
}
