package parser

import (
	"github.com/trijezdci/m2c/pkg/ast"
	"github.com/trijezdci/m2c/pkg/diag"
	"github.com/trijezdci/m2c/pkg/lexer"
	"github.com/trijezdci/m2c/pkg/strpool"
	"github.com/trijezdci/m2c/pkg/symtab"
	"github.com/trijezdci/m2c/pkg/tables"
	"github.com/trijezdci/m2c/pkg/token"
)

// parseDeclarationSequence recognizes a mixture of CONST, TYPE, VAR and
// PROCEDURE declarations in any order, building a DECLSEQ list node.
func (p *Parser) parseDeclarationSequence() *ast.Node {
	p.debugf(tables.DeclarationSequence.Name(), true)
	defer p.debugf(tables.DeclarationSequence.Name(), false)
	//
	var items []*ast.Node
	//
	for {
		switch p.lx.NextSym().Kind {
		case token.Const:
			items = append(items, p.parseConstDeclarations()...)
		case token.Type:
			items = append(items, p.parseTypeDeclarations()...)
		case token.Var:
			items = append(items, p.parseVarDeclarations()...)
		case token.Procedure:
			items = append(items, p.parseProcedureDeclaration())
		default:
			return mustListBranch(ast.DeclSeq, items)
		}
	}
}

// parseConstDeclarations recognizes CONST (id "=" expression ";")* .
func (p *Parser) parseConstDeclarations() []*ast.Node {
	p.expect(token.Const, tables.ResyncDeclaration)
	var out []*ast.Node
	//
	for p.lx.NextSym().Kind == token.Ident {
		nameSym, _ := p.expect(token.Ident, tables.ResyncDeclaration)
		p.expect(token.Equal, tables.ResyncDeclaration)
		value := p.parseExpression()
		p.expect(token.Semicolon, tables.ResyncDeclaration)
		//
		name, _ := ast.NewTerminal(ast.Ident, p.internLexeme(nameSym))
		out = append(out, mustBranch(ast.ConstDef, name, value))
		p.insertSymbol(nameSym, symtab.KindConst)
	}
	//
	return out
}

// parseTypeDeclarations recognizes TYPE (id "=" typeDenoter ";")* .
func (p *Parser) parseTypeDeclarations() []*ast.Node {
	p.expect(token.Type, tables.ResyncDeclaration)
	var out []*ast.Node
	//
	for p.lx.NextSym().Kind == token.Ident {
		nameSym, _ := p.expect(token.Ident, tables.ResyncDeclaration)
		p.expect(token.Equal, tables.ResyncDeclaration)
		denoter := p.parseTypeDenoter()
		p.expect(token.Semicolon, tables.ResyncDeclaration)
		//
		name, _ := ast.NewTerminal(ast.Ident, p.internLexeme(nameSym))
		out = append(out, mustBranch(ast.TypeDef, name, denoter))
		p.insertSymbol(nameSym, symtab.KindType)
	}
	//
	return out
}

// parseVarDeclarations recognizes VAR (identList ":" typeDenoter ";")* .
func (p *Parser) parseVarDeclarations() []*ast.Node {
	p.expect(token.Var, tables.ResyncDeclaration)
	var out []*ast.Node
	//
	for p.lx.NextSym().Kind == token.Ident {
		pos := p.pos()
		names := p.parseIdentList()
		p.expect(token.Colon, tables.ResyncDeclaration)
		denoter := p.parseTypeDenoter()
		p.expect(token.Semicolon, tables.ResyncDeclaration)
		//
		out = append(out, mustBranch(ast.VarDecl, names, denoter))
		p.insertIdentListSymbols(names, symtab.KindVar, pos)
	}
	//
	return out
}

// insertSymbol records a declared identifier in the current scope, reporting
// a duplicate-identifier diagnostic when the insertion is rejected.
func (p *Parser) insertSymbol(nameSym lexer.Symbol, kind symtab.SymbolKind) {
	p.insertHandle(p.internLexeme(nameSym), kind, diag.Position{Line: nameSym.Line, Column: nameSym.Column})
}

// insertIdentListSymbols records every name in an IDENTLIST terminal as a
// symbol of the given kind, used for VAR and record-field declarations
// where a single identList introduces several identifiers at once.
func (p *Parser) insertIdentListSymbols(names *ast.Node, kind symtab.SymbolKind, pos diag.Position) {
	for i := 0; ; i++ {
		h := names.Value(i)
		if h == nil {
			return
		}
		//
		p.insertHandle(h, kind, pos)
	}
}

func (p *Parser) insertHandle(h *strpool.Handle, kind symtab.SymbolKind, pos diag.Position) {
	if ok := p.syms.Insert(&symtab.Symbol{Ident: h, Kind: kind}); !ok {
		p.bag.Add(diag.Diagnostic{
			Code:      diag.CodeIdentNotUnique,
			Severity:  diag.SeverityError,
			Pos:       pos,
			Message:   "identifier already declared in this scope",
			Offending: h.String(),
		})
	}
}

// parseProcedureDeclaration recognizes, in a definition module,
//
//	PROCEDURE id formalParameters? (":" qualident)? ";" .
//
// and, in an implementation or program module,
//
//	PROCEDURE id formalParameters? (":" qualident)? ";"
//	  declarationSequence (BEGIN statementSequence)? END id ";" .
//
// the two forms distinguished by p.headersOnly, set once per module by its
// caller rather than guessed from lookahead.
func (p *Parser) parseProcedureDeclaration() *ast.Node {
	p.expect(token.Procedure, tables.ResyncDeclaration)
	nameSym, _ := p.expect(token.Ident, tables.ResyncDeclaration)
	//
	p.insertSymbol(nameSym, symtab.KindProcedure)
	//
	// The procedure's own scope opens before its formal parameters are
	// parsed, since a parameter name belongs to the procedure's scope, not
	// its enclosing one.
	scope := p.syms.OpenScope(p.internLexeme(nameSym))
	//
	formals := mustListBranch(ast.FormalParams, nil)
	//
	if p.lx.NextSym().Kind == token.LParen {
		formals = p.parseFormalParameters()
	}
	//
	var retType *ast.Node = ast.EmptyNode()
	//
	if p.lx.NextSym().Kind == token.Colon {
		p.lx.ConsumeSym()
		retType = p.parseQualident()
	}
	//
	p.expect(token.Semicolon, tables.ResyncDeclaration)
	//
	name, _ := ast.NewTerminal(ast.Ident, p.internLexeme(nameSym))
	header := mustBranch(ast.ProcHeader, name, formals, retType)
	//
	if p.headersOnly {
		p.syms.CloseScope(scope)
		//
		return mustBranch(ast.ProcDecl, header, ast.EmptyNode(), ast.EmptyNode())
	}
	//
	defer p.syms.CloseScope(scope)
	//
	localDecls := p.parseDeclarationSequence()
	var body *ast.Node = ast.EmptyNode()
	//
	if p.lx.NextSym().Kind == token.Begin {
		p.lx.ConsumeSym()
		body = p.parseStatementSequence()
	}
	//
	p.expect(token.End, tables.ResyncDeclaration)
	p.expect(token.Ident, tables.ResyncDeclaration)
	p.expect(token.Semicolon, tables.ResyncDeclaration)
	//
	return mustBranch(ast.ProcDecl, header, localDecls, body)
}

// parseFormalParameters recognizes "(" (formalParamGroup (";" formalParamGroup)*)? ")" .
func (p *Parser) parseFormalParameters() *ast.Node {
	p.expect(token.LParen, tables.ResyncDeclaration)
	var groups []*ast.Node
	//
	for {
		sym := p.lx.NextSym()
		//
		if sym.Kind != token.Ident && sym.Kind != token.Var &&
			(sym.Kind != token.Const || !p.opts.ConstParameters) {
			break
		}
		//
		groups = append(groups, p.parseFormalParamGroup())
		//
		if p.lx.NextSym().Kind != token.Semicolon {
			break
		}
		//
		p.lx.ConsumeSym()
	}
	//
	p.expect(token.RParen, tables.ResyncDeclaration)
	//
	return mustListBranch(ast.FormalParams, groups)
}

// parseFormalParamGroup recognizes (CONST | VAR)? identList ":" typeDenoter,
// registering each name in the procedure's own scope (already open by the
// time this is called) as a KindConstParam, KindVarParam or KindValueParam
// symbol, by qualifier.
func (p *Parser) parseFormalParamGroup() *ast.Node {
	qualifier := ast.EmptyNode()
	kind := symtab.KindValueParam
	//
	switch {
	case p.opts.ConstParameters && p.lx.NextSym().Kind == token.Const:
		p.lx.ConsumeSym()
		h, _ := p.pool.GetString("CONST")
		qualifier, _ = ast.NewTerminal(ast.OptionFlag, h)
		kind = symtab.KindConstParam
	case p.lx.NextSym().Kind == token.Var:
		p.lx.ConsumeSym()
		h, _ := p.pool.GetString("VAR")
		qualifier, _ = ast.NewTerminal(ast.OptionFlag, h)
		kind = symtab.KindVarParam
	}
	//
	pos := p.pos()
	names := p.parseIdentList()
	p.expect(token.Colon, tables.ResyncDeclaration)
	denoter := p.parseTypeDenoter()
	//
	p.insertIdentListSymbols(names, kind, pos)
	//
	return mustBranch(ast.FormalParamGroup, qualifier, names, denoter)
}
