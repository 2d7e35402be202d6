package parser

import (
	"github.com/trijezdci/m2c/pkg/ast"
	"github.com/trijezdci/m2c/pkg/tables"
	"github.com/trijezdci/m2c/pkg/token"
)

// parseStatementSequence recognizes statement (";" statement)*, building a
// STATEMENTSEQ list node. A stray trailing semicolon before a FOLLOW token
// is reported via errantSemicolon rather than treated as a new statement.
func (p *Parser) parseStatementSequence() *ast.Node {
	p.debugf(tables.StatementSequence.Name(), true)
	defer p.debugf(tables.StatementSequence.Name(), false)
	//
	var stmts []*ast.Node
	stmts = append(stmts, p.parseStatement())
	//
	for p.lx.NextSym().Kind == token.Semicolon {
		p.lx.ConsumeSym()
		//
		if tables.FOLLOW(tables.StatementSequence, p.opts).Contains(p.lx.NextSym().Kind) {
			p.errantSemicolon()
			break
		}
		//
		stmts = append(stmts, p.parseStatement())
	}
	//
	return mustListBranch(ast.StatementSeq, stmts)
}

// parseStatement dispatches on the lookahead to one of the statement forms.
// A lookahead already in FOLLOW(statement) is an empty statement and yields
// Empty without a diagnostic; any other lookahead that matches no form is
// reported as "unexpected token" and recovered via RESYNC(statement).
func (p *Parser) parseStatement() *ast.Node {
	switch p.lx.NextSym().Kind {
	case token.Ident:
		return p.parseAssignOrCall()
	case token.If:
		return p.parseIfStmt()
	case token.Case:
		return p.parseCaseStmt()
	case token.While:
		return p.parseWhileStmt()
	case token.Repeat:
		return p.parseRepeatStmt()
	case token.Loop:
		return p.parseLoopStmt()
	case token.For:
		return p.parseForStmt()
	case token.With:
		return p.parseWithStmt()
	case token.Exit:
		p.lx.ConsumeSym()
		return mustBranch(ast.ExitStmt)
	case token.Return:
		p.lx.ConsumeSym()
		//
		if tables.FOLLOW(tables.Statement, p.opts).Contains(p.lx.NextSym().Kind) {
			return mustBranch(ast.ReturnStmt, ast.EmptyNode())
		}
		//
		return mustBranch(ast.ReturnStmt, p.parseExpression())
	default:
		if tables.FOLLOW(tables.Statement, p.opts).Contains(p.lx.NextSym().Kind) {
			return ast.EmptyNode()
		}
		//
		p.unexpected(tables.FIRST(tables.Statement, p.opts), tables.ResyncStatement)
		return ast.EmptyNode()
	}
}

// parseAssignOrCall recognizes designator (":=" expression | actualParameters?) .
func (p *Parser) parseAssignOrCall() *ast.Node {
	designator := p.parseDesignator()
	//
	if p.lx.NextSym().Kind == token.Assign {
		p.lx.ConsumeSym()
		rhs := p.parseExpression()
		//
		return mustBranch(ast.AssignStmt, designator, rhs)
	}
	//
	if p.lx.NextSym().Kind == token.LParen {
		params := p.parseActualParameters()
		//
		return mustBranch(ast.ProcCallStmt, designator, params)
	}
	//
	return mustBranch(ast.ProcCallStmt, designator, ast.EmptyNode())
}

// parseIfStmt recognizes IF expr THEN stmtSeq (ELSIF expr THEN stmtSeq)*
// (ELSE stmtSeq)? END .
func (p *Parser) parseIfStmt() *ast.Node {
	p.expect(token.If, tables.ResyncStatement)
	cond := p.parseExpression()
	p.expect(token.Then, tables.ResyncStatement)
	body := p.parseStatementSequence()
	//
	branches := []*ast.Node{mustBranch(ast.IfBranch, cond, body)}
	//
	for p.lx.NextSym().Kind == token.Elsif {
		p.lx.ConsumeSym()
		elsifCond := p.parseExpression()
		p.expect(token.Then, tables.ResyncStatement)
		elsifBody := p.parseStatementSequence()
		branches = append(branches, mustBranch(ast.IfBranch, elsifCond, elsifBody))
	}
	//
	if p.lx.NextSym().Kind == token.Else {
		p.lx.ConsumeSym()
		elseBody := p.parseStatementSequence()
		branches = append(branches, mustBranch(ast.IfBranch, ast.EmptyNode(), elseBody))
	}
	//
	p.expect(token.End, tables.ResyncStatement)
	//
	return mustListBranch(ast.IfStmt, branches)
}

// parseCaseStmt recognizes CASE expr OF caseBranch ("|" caseBranch)*
// (ELSE stmtSeq)? END .
func (p *Parser) parseCaseStmt() *ast.Node {
	p.expect(token.Case, tables.ResyncStatement)
	selector := p.parseExpression()
	p.expect(token.Of, tables.ResyncStatement)
	//
	children := []*ast.Node{selector}
	children = append(children, p.parseCaseBranch())
	//
	for p.lx.NextSym().Kind == token.Bar {
		p.lx.ConsumeSym()
		children = append(children, p.parseCaseBranch())
	}
	//
	if p.lx.NextSym().Kind == token.Else {
		p.lx.ConsumeSym()
		elseBody := p.parseStatementSequence()
		children = append(children, mustBranch(ast.CaseBranch, ast.EmptyNode(), elseBody))
	}
	//
	p.expect(token.End, tables.ResyncStatement)
	//
	return mustListBranch(ast.CaseStmt, children)
}

// parseCaseBranch recognizes caseLabelList ":" stmtSeq .
func (p *Parser) parseCaseBranch() *ast.Node {
	labels := p.parseCaseLabelList()
	p.expect(token.Colon, tables.ResyncStatement)
	body := p.parseStatementSequence()
	//
	return mustBranch(ast.CaseBranch, labels, body)
}

// parseCaseLabelList recognizes caseLabel ("," caseLabel)*, each caseLabel
// being constExpr (".." constExpr)?, and wraps them as an ACTUALPARAMS list
// node (the generic expression-sequence carrier).
func (p *Parser) parseCaseLabelList() *ast.Node {
	var labels []*ast.Node
	labels = append(labels, p.parseCaseLabel())
	//
	for p.lx.NextSym().Kind == token.Comma {
		p.lx.ConsumeSym()
		labels = append(labels, p.parseCaseLabel())
	}
	//
	return mustListBranch(ast.ActualParams, labels)
}

func (p *Parser) parseCaseLabel() *ast.Node {
	lo := p.parseExpression()
	//
	if p.lx.NextSym().Kind != token.Range {
		return lo
	}
	//
	p.lx.ConsumeSym()
	hi := p.parseExpression()
	//
	return mustBranch(ast.RangeExpr, lo, hi)
}

// parseWhileStmt recognizes WHILE expr DO stmtSeq END .
func (p *Parser) parseWhileStmt() *ast.Node {
	p.expect(token.While, tables.ResyncStatement)
	cond := p.parseExpression()
	p.expect(token.Do, tables.ResyncStatement)
	body := p.parseStatementSequence()
	p.expect(token.End, tables.ResyncStatement)
	//
	return mustBranch(ast.WhileStmt, cond, body)
}

// parseRepeatStmt recognizes REPEAT stmtSeq UNTIL expr .
func (p *Parser) parseRepeatStmt() *ast.Node {
	p.expect(token.Repeat, tables.ResyncStatement)
	body := p.parseStatementSequence()
	p.expect(token.Until, tables.ResyncStatement)
	cond := p.parseExpression()
	//
	return mustBranch(ast.RepeatStmt, body, cond)
}

// parseLoopStmt recognizes LOOP stmtSeq END .
func (p *Parser) parseLoopStmt() *ast.Node {
	p.expect(token.Loop, tables.ResyncStatement)
	body := p.parseStatementSequence()
	p.expect(token.End, tables.ResyncStatement)
	//
	return mustBranch(ast.LoopStmt, body)
}

// parseForStmt recognizes
// FOR id ":=" expr TO expr (BY constExpr)? DO stmtSeq END .
func (p *Parser) parseForStmt() *ast.Node {
	p.expect(token.For, tables.ResyncStatement)
	nameSym, _ := p.expect(token.Ident, tables.ResyncStatement)
	p.expect(token.Assign, tables.ResyncStatement)
	from := p.parseExpression()
	p.expect(token.To, tables.ResyncStatement)
	to := p.parseExpression()
	//
	by := ast.EmptyNode()
	//
	if p.lx.NextSym().Kind == token.By {
		p.lx.ConsumeSym()
		by = p.parseExpression()
	}
	//
	p.expect(token.Do, tables.ResyncStatement)
	body := p.parseStatementSequence()
	p.expect(token.End, tables.ResyncStatement)
	//
	name, _ := ast.NewTerminal(ast.Ident, p.internLexeme(nameSym))
	//
	return mustBranch(ast.ForStmt, name, from, to, by, body)
}

// parseWithStmt recognizes WITH designator DO stmtSeq END .
func (p *Parser) parseWithStmt() *ast.Node {
	p.expect(token.With, tables.ResyncStatement)
	designator := p.parseDesignator()
	p.expect(token.Do, tables.ResyncStatement)
	body := p.parseStatementSequence()
	p.expect(token.End, tables.ResyncStatement)
	//
	return mustBranch(ast.WithStmt, designator, body)
}

// parseDesignator recognizes qualident (("." id) | ("[" exprList "]") | "^")* .
func (p *Parser) parseDesignator() *ast.Node {
	base := p.parseQualident()
	//
	for {
		switch p.lx.NextSym().Kind {
		case token.Period:
			p.lx.ConsumeSym()
			fieldSym, _ := p.expect(token.Ident, tables.ResyncStatement)
			field, _ := ast.NewTerminal(ast.Ident, p.internLexeme(fieldSym))
			base = mustBranch(ast.FieldExpr, base, field)
		case token.LBracket:
			p.lx.ConsumeSym()
			var indices []*ast.Node
			indices = append(indices, p.parseExpression())
			//
			for p.lx.NextSym().Kind == token.Comma {
				p.lx.ConsumeSym()
				indices = append(indices, p.parseExpression())
			}
			//
			p.expect(token.RBracket, tables.ResyncStatement)
			base = mustBranch(ast.IndexExpr, base, mustListBranch(ast.ActualParams, indices))
		case token.UpArrow:
			p.lx.ConsumeSym()
			base = mustBranch(ast.DerefExpr, base)
		default:
			return base
		}
	}
}

// parseActualParameters recognizes "(" (expression ("," expression)*)? ")" .
func (p *Parser) parseActualParameters() *ast.Node {
	p.expect(token.LParen, tables.ResyncStatement)
	var args []*ast.Node
	//
	if p.lx.NextSym().Kind != token.RParen {
		args = append(args, p.parseExpression())
		//
		for p.lx.NextSym().Kind == token.Comma {
			p.lx.ConsumeSym()
			args = append(args, p.parseExpression())
		}
	}
	//
	p.expect(token.RParen, tables.ResyncStatement)
	//
	return mustListBranch(ast.ActualParams, args)
}
