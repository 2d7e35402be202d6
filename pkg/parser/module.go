package parser

import (
	"github.com/trijezdci/m2c/pkg/ast"
	"github.com/trijezdci/m2c/pkg/strpool"
	"github.com/trijezdci/m2c/pkg/symtab"
	"github.com/trijezdci/m2c/pkg/tables"
	"github.com/trijezdci/m2c/pkg/token"
)

// parseModule dispatches to the definition-module or implementation/program
// module production according to kind, and wraps the result in a Root node.
func (p *Parser) parseModule(kind ModuleKind) *ast.Node {
	p.debugf(tables.Module.Name(), true)
	defer p.debugf(tables.Module.Name(), false)
	//
	sym := p.lx.NextSym()
	var inner *ast.Node
	//
	switch {
	case kind == KindDefinitionModule && sym.Kind == token.Definition:
		inner = p.parseDefinitionModule()
	case kind != KindDefinitionModule && sym.Kind == token.Implementation:
		inner = p.parseImplementationModule()
	case kind != KindDefinitionModule && sym.Kind == token.Module:
		inner = p.parseProgramModule()
	default:
		p.unexpected(tables.FIRST(tables.Module, p.opts), tables.ResyncModuleEnd)
		inner = ast.EmptyNode()
	}
	//
	return mustBranch(ast.Root, inner)
}

// parseDefinitionModule recognizes
// DEFINITION MODULE id ";" import* export? declaration* END id "." .
func (p *Parser) parseDefinitionModule() *ast.Node {
	p.headersOnly = true
	defer func() { p.headersOnly = false }()
	//
	p.expect(token.Definition, tables.ResyncModuleEnd)
	p.expect(token.Module, tables.ResyncModuleEnd)
	nameSym, _ := p.expect(token.Ident, tables.ResyncModuleEnd)
	p.expect(token.Semicolon, tables.ResyncDeclaration)
	//
	scope := p.syms.OpenScope(p.internLexeme(nameSym))
	defer p.syms.CloseScope(scope)
	//
	// A top-level module has no enclosing scope to hold its own name, so the
	// module symbol goes into the scope it just opened, alongside its members.
	p.insertSymbol(nameSym, symtab.KindModule)
	//
	imports := p.parseImportList()
	exports := p.parseExportList()
	decls := p.parseDeclarationSequence()
	//
	p.expect(token.End, tables.ResyncModuleEnd)
	p.expect(token.Ident, tables.ResyncModuleEnd)
	p.expect(token.Period, tables.ResyncModuleEnd)
	//
	name, _ := ast.NewTerminal(ast.Ident, p.internLexeme(nameSym))
	//
	return mustBranch(ast.DefinitionModule, name, imports, exports, decls)
}

// parseImplementationModule recognizes
// IMPLEMENTATION MODULE id ";" import* declaration* (BEGIN stmtSeq)? END id "." .
func (p *Parser) parseImplementationModule() *ast.Node {
	p.expect(token.Implementation, tables.ResyncModuleEnd)
	return p.parseModuleBody(ast.ImplementationModule)
}

// parseProgramModule recognizes
// MODULE id ";" import* declaration* (BEGIN stmtSeq)? END id "." .
func (p *Parser) parseProgramModule() *ast.Node {
	return p.parseModuleBody(ast.ProgramModule)
}

func (p *Parser) parseModuleBody(kind ast.Kind) *ast.Node {
	p.expect(token.Module, tables.ResyncModuleEnd)
	nameSym, _ := p.expect(token.Ident, tables.ResyncModuleEnd)
	p.expect(token.Semicolon, tables.ResyncDeclaration)
	//
	scope := p.syms.OpenScope(p.internLexeme(nameSym))
	defer p.syms.CloseScope(scope)
	//
	p.insertSymbol(nameSym, symtab.KindModule)
	//
	imports := p.parseImportList()
	decls := p.parseDeclarationSequence()
	//
	var body *ast.Node
	//
	if p.lx.NextSym().Kind == token.Begin {
		p.lx.ConsumeSym()
		body = p.parseStatementSequence()
	} else {
		body = ast.EmptyNode()
	}
	//
	p.expect(token.End, tables.ResyncModuleEnd)
	p.expect(token.Ident, tables.ResyncModuleEnd)
	p.expect(token.Period, tables.ResyncModuleEnd)
	//
	name, _ := ast.NewTerminal(ast.Ident, p.internLexeme(nameSym))
	//
	return mustBranch(kind, name, imports, body, decls)
}

// parseImportList recognizes a possibly empty sequence of IMPORT/FROM
// clauses, producing an IMPORTLIST node (or Empty if none appear).
func (p *Parser) parseImportList() *ast.Node {
	p.debugf(tables.ImportList.Name(), true)
	defer p.debugf(tables.ImportList.Name(), false)
	//
	var items []*ast.Node
	//
	for {
		sym := p.lx.NextSym()
		//
		if sym.Kind != token.Import && sym.Kind != token.From {
			break
		}
		//
		items = append(items, p.parseImport())
	}
	//
	if len(items) == 0 {
		return ast.EmptyNode()
	}
	//
	return mustListBranch(ast.ImportList, items)
}

func (p *Parser) parseImport() *ast.Node {
	if p.lx.NextSym().Kind == token.From {
		p.lx.ConsumeSym()
		fromName, _ := p.expect(token.Ident, tables.ResyncDeclaration)
		p.expect(token.Import, tables.ResyncDeclaration)
		names := p.parseIdentList()
		p.expect(token.Semicolon, tables.ResyncDeclaration)
		//
		from, _ := ast.NewTerminal(ast.Ident, p.internLexeme(fromName))
		//
		return mustBranch(ast.ImportFrom, from, names)
	}
	//
	p.expect(token.Import, tables.ResyncDeclaration)
	names := p.parseIdentList()
	p.expect(token.Semicolon, tables.ResyncDeclaration)
	//
	return mustBranch(ast.Import, names)
}

// parseExportList recognizes an optional EXPORT [QUALIFIED] identList ";" .
func (p *Parser) parseExportList() *ast.Node {
	if p.lx.NextSym().Kind != token.Export {
		return ast.EmptyNode()
	}
	//
	p.lx.ConsumeSym()
	qualified := false
	//
	if p.lx.NextSym().Kind == token.Qualified {
		p.lx.ConsumeSym()
		qualified = true
	}
	//
	names := p.parseIdentList()
	p.expect(token.Semicolon, tables.ResyncDeclaration)
	//
	if qualified {
		return mustBranch(ast.ExportQualified, names)
	}
	//
	return mustBranch(ast.ExportUnqualified, names)
}

// parseIdentList recognizes id ("," id)* and builds an IDENTLIST terminal.
func (p *Parser) parseIdentList() *ast.Node {
	first, ok := p.expect(token.Ident, tables.ResyncDeclaration)
	if !ok {
		n, _ := ast.NewTerminalList(ast.IdentList, nil)
		return n
	}
	//
	values := []*strpool.Handle{p.internLexeme(first)}
	//
	for p.lx.NextSym().Kind == token.Comma {
		p.lx.ConsumeSym()
		idSym, ok := p.expect(token.Ident, tables.ResyncDeclaration)
		//
		if !ok {
			break
		}
		//
		values = append(values, p.internLexeme(idSym))
	}
	//
	n, _ := ast.NewTerminalList(ast.IdentList, values)
	//
	return n
}
