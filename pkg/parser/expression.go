package parser

import (
	"github.com/trijezdci/m2c/pkg/ast"
	"github.com/trijezdci/m2c/pkg/tables"
	"github.com/trijezdci/m2c/pkg/token"
)

// relOps is the set of relational operators recognized at the top level of
// an expression: Modula-2 forbids chaining them, so parseExpression accepts
// at most one.
var relOps = map[token.Kind]bool{
	token.Equal: true, token.NotEqual: true, token.Less: true,
	token.Greater: true, token.LessEqual: true, token.GreaterEqual: true,
	token.In: true,
}

var addOps = map[token.Kind]bool{token.Plus: true, token.Minus: true, token.Or: true}

var mulOps = map[token.Kind]bool{
	token.Star: true, token.Slash: true, token.Div: true, token.Mod: true, token.And: true,
}

func (p *Parser) opFlag(sym token.Kind) *ast.Node {
	h, _ := p.pool.GetString(sym.String())
	n, _ := ast.NewTerminal(ast.OptionFlag, h)
	//
	return n
}

// parseExpression recognizes simpleExpression (relOp simpleExpression)? .
func (p *Parser) parseExpression() *ast.Node {
	left := p.parseSimpleExpression()
	sym := p.lx.NextSym()
	//
	if !relOps[sym.Kind] {
		return left
	}
	//
	op := p.opFlag(sym.Kind)
	p.lx.ConsumeSym()
	right := p.parseSimpleExpression()
	//
	return mustBranch(ast.BinaryExpr, op, left, right)
}

// parseSimpleExpression recognizes ("+"|"-")? term (("+"|"-"|OR) term)* .
func (p *Parser) parseSimpleExpression() *ast.Node {
	var leading *ast.Node
	//
	if sym := p.lx.NextSym(); sym.Kind == token.Plus || sym.Kind == token.Minus {
		leading = p.opFlag(sym.Kind)
		p.lx.ConsumeSym()
	}
	//
	left := p.parseTerm()
	//
	if leading != nil {
		left = mustBranch(ast.UnaryExpr, leading, left)
	}
	//
	for {
		sym := p.lx.NextSym()
		//
		if !addOps[sym.Kind] {
			return left
		}
		//
		op := p.opFlag(sym.Kind)
		p.lx.ConsumeSym()
		right := p.parseTerm()
		left = mustBranch(ast.BinaryExpr, op, left, right)
	}
}

// parseTerm recognizes factor (("*"|"/"|DIV|MOD|AND) factor)* .
func (p *Parser) parseTerm() *ast.Node {
	left := p.parseFactor()
	//
	for {
		sym := p.lx.NextSym()
		//
		if !mulOps[sym.Kind] {
			return left
		}
		//
		op := p.opFlag(sym.Kind)
		p.lx.ConsumeSym()
		right := p.parseFactor()
		left = mustBranch(ast.BinaryExpr, op, left, right)
	}
}

// parseFactor recognizes a literal, a set value, a parenthesized expression,
// a negation, or a designator optionally followed by actual parameters
// (a function call).
func (p *Parser) parseFactor() *ast.Node {
	sym := p.lx.NextSym()
	//
	switch sym.Kind {
	case token.IntegerLiteral:
		p.lx.ConsumeSym()
		n, _ := ast.NewTerminal(ast.IntLiteral, p.internLexeme(sym))
		//
		return n
	case token.RealLiteral:
		p.lx.ConsumeSym()
		n, _ := ast.NewTerminal(ast.RealLiteral, p.internLexeme(sym))
		//
		return n
	case token.CharLiteral:
		p.lx.ConsumeSym()
		n, _ := ast.NewTerminal(ast.CharLiteral, p.internLexeme(sym))
		//
		return n
	case token.StringLiteral:
		p.lx.ConsumeSym()
		n, _ := ast.NewTerminal(ast.StringLit, p.internLexeme(sym))
		//
		return n
	case token.LBrace:
		return p.parseSetExpr(ast.EmptyNode())
	case token.LParen:
		p.lx.ConsumeSym()
		inner := p.parseExpression()
		p.expect(token.RParen, tables.ResyncStatement)
		//
		return inner
	case token.Not, token.Tilde:
		p.lx.ConsumeSym()
		operand := p.parseFactor()
		//
		return mustBranch(ast.UnaryExpr, p.opFlag(sym.Kind), operand)
	case token.Ident:
		designator := p.parseDesignator()
		//
		if p.lx.NextSym().Kind == token.LBrace {
			return p.parseSetExpr(designator)
		}
		//
		if p.lx.NextSym().Kind == token.LParen {
			params := p.parseActualParameters()
			//
			return mustBranch(ast.FuncCallExpr, designator, params)
		}
		//
		return designator
	default:
		p.unexpected(tables.FIRST(tables.Factor, p.opts), tables.ResyncStatement)
		//
		return ast.EmptyNode()
	}
}

// parseSetExpr recognizes "{" (element ("," element)*)? "}", where baseType
// is the preceding qualident naming the set type, or Empty for an anonymous
// set value.
func (p *Parser) parseSetExpr(baseType *ast.Node) *ast.Node {
	p.expect(token.LBrace, tables.ResyncStatement)
	var elements []*ast.Node
	//
	if p.lx.NextSym().Kind != token.RBrace {
		elements = append(elements, p.parseSetElement())
		//
		for p.lx.NextSym().Kind == token.Comma {
			p.lx.ConsumeSym()
			elements = append(elements, p.parseSetElement())
		}
	}
	//
	p.expect(token.RBrace, tables.ResyncStatement)
	//
	return mustBranch(ast.SetExpr, baseType, mustListBranch(ast.ActualParams, elements))
}

// parseSetElement recognizes expr (".." expr)? .
func (p *Parser) parseSetElement() *ast.Node {
	lo := p.parseExpression()
	hi := ast.EmptyNode()
	//
	if p.lx.NextSym().Kind == token.Range {
		p.lx.ConsumeSym()
		hi = p.parseExpression()
	}
	//
	return mustBranch(ast.SetElement, lo, hi)
}
