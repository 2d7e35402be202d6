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

// Package parser implements the dialect-aware recursive-descent parser:
// one routine per production, each following the same contract — the
// lookahead starts in FIRST(p) (or the caller reports "unexpected token"),
// the routine consumes tokens and builds the corresponding AST node, and
// on return the lookahead lies in FOLLOW(p) ∪ {end-of-file} or the
// production has engaged panic-mode recovery.
package parser

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/trijezdci/m2c/pkg/ast"
	"github.com/trijezdci/m2c/pkg/dialect"
	"github.com/trijezdci/m2c/pkg/diag"
	"github.com/trijezdci/m2c/pkg/lexer"
	"github.com/trijezdci/m2c/pkg/source"
	"github.com/trijezdci/m2c/pkg/strpool"
	"github.com/trijezdci/m2c/pkg/symtab"
	"github.com/trijezdci/m2c/pkg/tables"
	"github.com/trijezdci/m2c/pkg/token"
)

// ModuleKind selects which of the three module forms ParseFile expects at
// the top of the file.
type ModuleKind int

// The module kinds ParseFile accepts.
const (
	KindDefinitionModule ModuleKind = iota
	KindImplementationOrProgramModule
)

// Status is the closed set of outcomes for ParseFile.
type Status int

// The closed set of parse statuses.
const (
	StatusSuccess Status = iota
	StatusInvalidReference
	StatusInvalidSourceKind
	StatusAllocationFailed
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusInvalidReference:
		return "invalid-reference"
	case StatusInvalidSourceKind:
		return "invalid-source-kind"
	case StatusAllocationFailed:
		return "allocation-failed"
	default:
		return "unknown-status"
	}
}

// Stats carries the counts spec's error-handling design attaches to every
// returned parse result.
type Stats struct {
	Warnings int
	Errors   int
	Lines    int
}

// Parser owns its lexer and the symbol table it populates, and returns a
// single root AST node to its caller.
type Parser struct {
	lx          *lexer.Lexer
	pool        *strpool.Pool
	opts        dialect.Options
	bag         *diag.Bag
	syms        *symtab.Table
	log         *logrus.Logger
	errCount    int
	headersOnly bool // true while parsing a definition module: procedures have no body
}

// ParseFile is the top-level entry point: it opens path, runs the lexer and
// parser, and returns the resulting AST root alongside statistics.
func ParseFile(kind ModuleKind, path string, pool *strpool.Pool, opts dialect.Options, log *logrus.Logger) (*ast.Node, Stats, Status) {
	if path == "" || pool == nil {
		return nil, Stats{}, StatusInvalidReference
	}
	//
	src, sstatus := source.OpenFile(pool, path)
	if sstatus != source.StatusOK {
		return nil, Stats{}, StatusAllocationFailed
	}
	//
	bag := diag.NewBag()
	lx := lexer.New(src, pool, opts, bag, log)
	//
	p := &Parser{lx: lx, pool: pool, opts: opts, bag: bag, syms: symtab.New(), log: log}
	//
	root := p.parseModule(kind)
	bag.SetLinesRead(src.Line())
	//
	stats := Stats{Warnings: bag.WarningCount(), Errors: bag.ErrorCount(), Lines: bag.LinesRead()}
	//
	return root, stats, StatusSuccess
}

func (p *Parser) debugf(production string, entering bool) {
	if p.log == nil {
		return
	}
	//
	verb := "enter"
	if !entering {
		verb = "leave"
	}
	//
	p.log.WithField("production", production).Debug("parser: " + verb)
}

func (p *Parser) pos() diag.Position {
	sym := p.lx.NextSym()
	//
	return diag.Position{Line: sym.Line, Column: sym.Column}
}

// expect consumes the current lookahead if it matches want, reporting an
// unexpected-token diagnostic and engaging recovery otherwise.
func (p *Parser) expect(want token.Kind, resync tables.Resync) (lexer.Symbol, bool) {
	sym := p.lx.NextSym()
	//
	if sym.Kind == want {
		return p.lx.ReadSym(), true
	}
	//
	p.unexpected(token.Of(want), resync)
	//
	return sym, false
}

// unexpected reports the panic-mode diagnostic and discards tokens until
// the lookahead lies in the given resync set or is end-of-file.
func (p *Parser) unexpected(expected token.Set, resync tables.Resync) {
	sym := p.lx.NextSym()
	//
	p.errCount++
	p.bag.Add(diag.Diagnostic{
		Code:      diag.CodeUnexpectedToken,
		Severity:  diag.SeverityError,
		Pos:       diag.Position{Line: sym.Line, Column: sym.Column},
		Message:   "unexpected token",
		Offending: sym.Kind.String(),
		Expected:  expected.ListString(),
	})
	//
	resyncSet := tables.RESYNC(resync)
	//
	for {
		sym := p.lx.NextSym()
		//
		if sym.Kind == token.EOF || resyncSet.Contains(sym.Kind) {
			return
		}
		//
		p.lx.ConsumeSym()
	}
}

// errantSemicolon reports a stray semicolon, as a warning or an error
// depending on the errant-semicolon dialect option.
func (p *Parser) errantSemicolon() {
	sym := p.lx.ReadSym()
	severity := diag.SeverityError
	//
	if p.opts.ErrantSemicolon {
		severity = diag.SeverityWarning
	}
	//
	p.bag.Add(diag.Diagnostic{
		Code:     diag.CodeErrantSemicolon,
		Severity: severity,
		Pos:      diag.Position{Line: sym.Line, Column: sym.Column},
		Message:  "stray semicolon",
	})
}

func (p *Parser) internLexeme(sym lexer.Symbol) *strpool.Handle {
	if sym.Lexeme != nil {
		return sym.Lexeme
	}
	//
	h, _ := p.pool.GetString(sym.Kind.String())
	//
	return h
}

func mustBranch(kind ast.Kind, subnodes ...*ast.Node) *ast.Node {
	n, ok := ast.NewBranch(kind, subnodes...)
	if !ok {
		panic(fmt.Sprintf("parser: internal arity/type violation constructing %s", kind))
	}
	//
	return n
}

func mustListBranch(kind ast.Kind, list []*ast.Node) *ast.Node {
	n, ok := ast.NewListBranch(kind, list)
	if !ok {
		panic(fmt.Sprintf("parser: internal arity/type violation constructing list %s", kind))
	}
	//
	return n
}
