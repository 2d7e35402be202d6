package parser

import (
	"github.com/trijezdci/m2c/pkg/ast"
	"github.com/trijezdci/m2c/pkg/symtab"
	"github.com/trijezdci/m2c/pkg/tables"
	"github.com/trijezdci/m2c/pkg/token"
)

// parseQualident recognizes id ("." id)*, interning the dotted spelling as a
// single QUALIDENT value when a module qualifier is present, or an IDENT
// otherwise.
func (p *Parser) parseQualident() *ast.Node {
	first, ok := p.expect(token.Ident, tables.ResyncDeclaration)
	if !ok {
		n, _ := ast.NewTerminal(ast.Ident, p.internLexeme(first))
		return n
	}
	//
	if p.lx.NextSym().Kind != token.Period {
		n, _ := ast.NewTerminal(ast.Ident, p.internLexeme(first))
		return n
	}
	//
	h := p.internLexeme(first)
	//
	for p.lx.NextSym().Kind == token.Period {
		p.lx.ConsumeSym()
		tailSym, ok := p.expect(token.Ident, tables.ResyncDeclaration)
		//
		if !ok {
			break
		}
		//
		dot, _ := p.pool.GetString(".")
		h, _ = p.pool.GetConcat(h, dot)
		h, _ = p.pool.GetConcat(h, p.internLexeme(tailSym))
	}
	//
	n, _ := ast.NewTerminal(ast.Qualident, h)
	//
	return n
}

// parseTypeDenoter recognizes a qualident or one of the structured type
// forms (enumeration, subrange, set, array, record, pointer, procedure).
func (p *Parser) parseTypeDenoter() *ast.Node {
	sym := p.lx.NextSym()
	//
	switch sym.Kind {
	case token.Ident:
		return p.parseQualident()
	case token.LParen:
		return p.parseEnumType()
	case token.LBracket:
		return p.parseSubrangeType()
	case token.Set:
		return p.parseSetType()
	case token.Array:
		return p.parseArrayType()
	case token.Record:
		return p.parseRecordType()
	case token.Pointer:
		return p.parsePointerType()
	case token.Procedure:
		return p.parseProcedureType()
	default:
		p.unexpected(tables.FIRST(tables.TypeDenoter, p.opts), tables.ResyncDeclaration)
		return ast.EmptyNode()
	}
}

// parseEnumType recognizes "(" identList ")" .
func (p *Parser) parseEnumType() *ast.Node {
	p.expect(token.LParen, tables.ResyncDeclaration)
	names := p.parseIdentList()
	p.expect(token.RParen, tables.ResyncDeclaration)
	//
	return mustBranch(ast.EnumType, names)
}

// parseSubrangeType recognizes "[" constExpr ".." constExpr "]" .
func (p *Parser) parseSubrangeType() *ast.Node {
	p.expect(token.LBracket, tables.ResyncDeclaration)
	lo := p.parseExpression()
	p.expect(token.Range, tables.ResyncDeclaration)
	hi := p.parseExpression()
	p.expect(token.RBracket, tables.ResyncDeclaration)
	//
	return mustBranch(ast.SubrangeType, lo, hi)
}

// parseSetType recognizes SET OF typeDenoter .
func (p *Parser) parseSetType() *ast.Node {
	p.expect(token.Set, tables.ResyncDeclaration)
	p.expect(token.Of, tables.ResyncDeclaration)
	base := p.parseTypeDenoter()
	//
	return mustBranch(ast.SetType, base)
}

// parseArrayType recognizes ARRAY (typeDenoter ("," typeDenoter)*)? OF typeDenoter .
// The index-less form (open array, e.g. formal parameter "ARRAY OF CHAR")
// folds to a single ARRAYTYPE whose index child is Empty. Multiple index
// types nest in the element (right) child, so ARRAY A, B OF T becomes
// ARRAYTYPE(A, ARRAYTYPE(B, T)) and the stored arity always stays at two:
// (index, element).
func (p *Parser) parseArrayType() *ast.Node {
	p.expect(token.Array, tables.ResyncDeclaration)
	var indices []*ast.Node
	//
	if p.lx.NextSym().Kind != token.Of {
		indices = append(indices, p.parseTypeDenoter())
		//
		for p.lx.NextSym().Kind == token.Comma {
			p.lx.ConsumeSym()
			indices = append(indices, p.parseTypeDenoter())
		}
	}
	//
	p.expect(token.Of, tables.ResyncDeclaration)
	element := p.parseTypeDenoter()
	//
	if len(indices) == 0 {
		return mustBranch(ast.ArrayType, ast.EmptyNode(), element)
	}
	//
	for i := len(indices) - 1; i >= 0; i-- {
		element = mustBranch(ast.ArrayType, indices[i], element)
	}
	//
	return element
}

// parseRecordType recognizes RECORD fieldListSequence END, opening a scope
// for the record's own fields (including any variant arms) so two fields of
// the same record cannot share a name.
func (p *Parser) parseRecordType() *ast.Node {
	p.expect(token.Record, tables.ResyncDeclaration)
	//
	scope := p.syms.OpenScope(nil)
	defer p.syms.CloseScope(scope)
	//
	fields := p.parseFieldListSequence()
	p.expect(token.End, tables.ResyncDeclaration)
	//
	return mustBranch(ast.RecordType, fields)
}

// parseFieldListSequence recognizes a ";"-separated sequence of field
// groups, with an optional trailing variant-case form gated by the
// variant-records dialect option.
func (p *Parser) parseFieldListSequence() *ast.Node {
	var groups []*ast.Node
	//
	for {
		sym := p.lx.NextSym()
		//
		switch {
		case sym.Kind == token.Ident:
			groups = append(groups, p.parseFieldGroup())
		case p.opts.VariantRecords && sym.Kind == token.Case:
			return p.parseVariantFields()
		default:
			return mustListBranch(ast.FieldList, groups)
		}
		//
		if p.lx.NextSym().Kind != token.Semicolon {
			break
		}
		//
		p.lx.ConsumeSym()
	}
	//
	return mustListBranch(ast.FieldList, groups)
}

// parseFieldGroup recognizes identList ":" typeDenoter .
func (p *Parser) parseFieldGroup() *ast.Node {
	pos := p.pos()
	names := p.parseIdentList()
	p.expect(token.Colon, tables.ResyncDeclaration)
	denoter := p.parseTypeDenoter()
	//
	p.insertIdentListSymbols(names, symtab.KindField, pos)
	//
	return mustBranch(ast.FieldGroup, names, denoter)
}

// parseVariantFields recognizes CASE id? ":" qualident OF variant
// ("|" variant)* (ELSE fieldListSequence)? END, building a single
// VARIANTFIELDLIST wrapping its VARIANT children. An ELSE arm has no case
// labels of its own, so it is wrapped with an Empty label-list child.
func (p *Parser) parseVariantFields() *ast.Node {
	p.expect(token.Case, tables.ResyncDeclaration)
	//
	if p.lx.NextSym().Kind == token.Ident {
		p.lx.ConsumeSym()
	}
	//
	p.expect(token.Colon, tables.ResyncDeclaration)
	p.parseQualident() // tag's type: parsed as a syntax check and not recorded in the tree, see spec's Non-goal on semantic analysis
	p.expect(token.Of, tables.ResyncDeclaration)
	//
	var variants []*ast.Node
	variants = append(variants, p.parseVariant())
	//
	for p.lx.NextSym().Kind == token.Bar {
		p.lx.ConsumeSym()
		variants = append(variants, p.parseVariant())
	}
	//
	if p.lx.NextSym().Kind == token.Else {
		p.lx.ConsumeSym()
		elseFields := p.parseFieldListSequence()
		variants = append(variants, mustBranch(ast.Variant, ast.EmptyNode(), elseFields))
	}
	//
	p.expect(token.End, tables.ResyncDeclaration)
	//
	return mustListBranch(ast.VariantFieldList, variants)
}

// parseVariant recognizes caseLabelList ":" fieldListSequence .
func (p *Parser) parseVariant() *ast.Node {
	labels := p.parseCaseLabelList()
	p.expect(token.Colon, tables.ResyncDeclaration)
	fields := p.parseFieldListSequence()
	//
	return mustBranch(ast.Variant, labels, fields)
}

// parsePointerType recognizes POINTER TO typeDenoter .
func (p *Parser) parsePointerType() *ast.Node {
	p.expect(token.Pointer, tables.ResyncDeclaration)
	p.expect(token.To, tables.ResyncDeclaration)
	base := p.parseTypeDenoter()
	//
	return mustBranch(ast.PointerType, base)
}

// parseProcedureType recognizes PROCEDURE formalTypeList? .
func (p *Parser) parseProcedureType() *ast.Node {
	p.expect(token.Procedure, tables.ResyncDeclaration)
	//
	if p.lx.NextSym().Kind != token.LParen {
		return mustBranch(ast.ProcType, mustListBranch(ast.FormalTypeList, nil))
	}
	//
	p.expect(token.LParen, tables.ResyncDeclaration)
	var types []*ast.Node
	//
	for {
		sym := p.lx.NextSym()
		//
		if sym.Kind != token.Ident && sym.Kind != token.Array && sym.Kind != token.Record &&
			sym.Kind != token.Set && sym.Kind != token.Pointer && sym.Kind != token.Procedure {
			break
		}
		//
		types = append(types, p.parseTypeDenoter())
		//
		if p.lx.NextSym().Kind != token.Comma {
			break
		}
		//
		p.lx.ConsumeSym()
	}
	//
	p.expect(token.RParen, tables.ResyncDeclaration)
	//
	if p.lx.NextSym().Kind == token.Colon {
		p.lx.ConsumeSym()
		ret := p.parseQualident()
		types = append(types, ret)
	}
	//
	return mustBranch(ast.ProcType, mustListBranch(ast.FormalTypeList, types))
}
