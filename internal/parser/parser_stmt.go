package parser

import "ccdsl/internal/ast"

func (p *Parser) parseBlock() *ast.Block {
	start := p.consume(LEFT_BRACE, "expected '{'").Pos
	var stmts []ast.Stmt
	for !p.check(RIGHT_BRACE) && !p.isAtEnd() {
		stmts = append(stmts, p.parseStmt())
	}
	p.consume(RIGHT_BRACE, "expected '}' to close block")
	return ast.NewBlock(start, p.previous().Pos, stmts)
}

func (p *Parser) parseStmt() ast.Stmt {
	switch p.peek().Type {
	case LET:
		return p.parseLetStmt()
	case IF:
		return p.parseIfStmt()
	case WHILE:
		return p.parseWhileStmt()
	case FOR:
		return p.parseForStmt()
	case REQUIRE:
		return p.parseRequireStmt()
	case ASSERT:
		return p.parseAssertStmt()
	case EMIT:
		return p.parseEmitStmt()
	case RETURN:
		return p.parseReturnStmt()
	case BREAK:
		start := p.advance().Pos
		p.consume(SEMICOLON, "expected ';' after 'break'")
		return ast.NewBreakStmt(start, p.previous().Pos)
	case CONTINUE:
		start := p.advance().Pos
		p.consume(SEMICOLON, "expected ';' after 'continue'")
		return ast.NewContinueStmt(start, p.previous().Pos)
	case LEFT_BRACE:
		return p.parseBlock()
	default:
		return p.parseAssignOrExprStmt()
	}
}

func (p *Parser) parseLetStmt() *ast.LetStmt {
	start := p.consume(LET, "expected 'let'").Pos
	mutable := p.match(MUT)
	name := p.consume(IDENTIFIER, "expected variable name")
	var ty *ast.Type
	if p.match(COLON) {
		ty = p.parseType()
	}
	p.consume(EQUAL, "expected '=' in let statement")
	value := p.parseExpr()
	p.consume(SEMICOLON, "expected ';' after let statement")
	return ast.NewLetStmt(start, p.previous().Pos, name.Lexeme, ty, mutable, value)
}

func (p *Parser) parseIfStmt() *ast.IfStmt {
	start := p.consume(IF, "expected 'if'").Pos
	cond := p.parseExpr()
	then := p.parseBlock()
	var els ast.Stmt
	if p.match(ELSE) {
		if p.check(IF) {
			els = p.parseIfStmt()
		} else {
			els = p.parseBlock()
		}
	}
	return ast.NewIfStmt(start, p.previous().Pos, cond, then, els)
}

func (p *Parser) parseWhileStmt() *ast.WhileStmt {
	start := p.consume(WHILE, "expected 'while'").Pos
	cond := p.parseExpr()
	body := p.parseBlock()
	return ast.NewWhileStmt(start, p.previous().Pos, cond, body)
}

func (p *Parser) parseForStmt() ast.Stmt {
	start := p.consume(FOR, "expected 'for'").Pos
	// for-each: `for name in iterable { ... }`
	if p.check(IDENTIFIER) && p.tokens[p.current+1].Type == IN {
		name := p.advance().Lexeme
		p.advance() // 'in'
		iter := p.parseExpr()
		body := p.parseBlock()
		return ast.NewForEachStmt(start, p.previous().Pos, name, iter, body)
	}
	p.consume(LEFT_PAREN, "expected '(' after 'for'")
	var init ast.Stmt
	if !p.check(SEMICOLON) {
		init = p.parseAssignOrExprStmtNoConsume()
	}
	p.consume(SEMICOLON, "expected ';' after for-loop init")
	var cond ast.Expr
	if !p.check(SEMICOLON) {
		cond = p.parseExpr()
	}
	p.consume(SEMICOLON, "expected ';' after for-loop condition")
	var post ast.Stmt
	if !p.check(RIGHT_PAREN) {
		post = p.parseAssignOrExprStmtNoConsume()
	}
	p.consume(RIGHT_PAREN, "expected ')' to close for-loop header")
	body := p.parseBlock()
	return ast.NewForStmt(start, p.previous().Pos, init, cond, post, body)
}

func (p *Parser) parseRequireStmt() *ast.RequireStmt {
	start := p.consume(REQUIRE, "expected 'require'").Pos
	p.consume(LEFT_PAREN, "expected '(' after 'require'")
	cond := p.parseExpr()
	var code ast.Expr
	if p.match(COMMA) {
		code = p.parseExpr()
	}
	p.consume(RIGHT_PAREN, "expected ')' to close 'require'")
	p.consume(SEMICOLON, "expected ';' after require statement")
	return ast.NewRequireStmt(start, p.previous().Pos, cond, code)
}

func (p *Parser) parseAssertStmt() *ast.AssertStmt {
	start := p.consume(ASSERT, "expected 'assert'").Pos
	p.consume(BANG, "expected '!' after 'assert'")
	p.consume(LEFT_PAREN, "expected '(' after 'assert!'")
	var args []ast.Expr
	for !p.check(RIGHT_PAREN) {
		args = append(args, p.parseExpr())
		if !p.match(COMMA) {
			break
		}
	}
	p.consume(RIGHT_PAREN, "expected ')' to close 'assert!'")
	p.consume(SEMICOLON, "expected ';' after assert statement")
	return ast.NewAssertStmt(start, p.previous().Pos, args)
}

func (p *Parser) parseEmitStmt() *ast.EmitStmt {
	start := p.consume(EMIT, "expected 'emit'").Pos
	name := p.consume(IDENTIFIER, "expected event name")
	p.consume(LEFT_PAREN, "expected '(' after event name")
	var args []ast.Expr
	for !p.check(RIGHT_PAREN) {
		args = append(args, p.parseExpr())
		if !p.match(COMMA) {
			break
		}
	}
	p.consume(RIGHT_PAREN, "expected ')' to close emit arguments")
	p.consume(SEMICOLON, "expected ';' after emit statement")
	return ast.NewEmitStmt(start, p.previous().Pos, name.Lexeme, args)
}

func (p *Parser) parseReturnStmt() *ast.ReturnStmt {
	start := p.consume(RETURN, "expected 'return'").Pos
	var value ast.Expr
	if !p.check(SEMICOLON) {
		value = p.parseExpr()
	}
	p.consume(SEMICOLON, "expected ';' after return statement")
	return ast.NewReturnStmt(start, p.previous().Pos, value)
}

// parseAssignOrExprStmt parses either `lvalue = expr;` or `expr;`.
func (p *Parser) parseAssignOrExprStmt() ast.Stmt {
	start := p.peek().Pos
	expr := p.parseExpr()
	if p.match(EQUAL) {
		lv := exprToLValue(expr, start)
		value := p.parseExpr()
		p.consume(SEMICOLON, "expected ';' after assignment")
		return ast.NewAssignStmt(start, p.previous().Pos, lv, value)
	}
	p.consume(SEMICOLON, "expected ';' after expression statement")
	return ast.NewExprStmt(start, p.previous().Pos, expr)
}

// parseAssignOrExprStmtNoConsume is used inside a for-loop header, where the
// statement is not semicolon-terminated by this call (the caller consumes
// the separating ';' or closing ')').
func (p *Parser) parseAssignOrExprStmtNoConsume() ast.Stmt {
	start := p.peek().Pos
	expr := p.parseExpr()
	if p.match(EQUAL) {
		lv := exprToLValue(expr, start)
		value := p.parseExpr()
		return ast.NewAssignStmt(start, p.previous().Pos, lv, value)
	}
	return ast.NewExprStmt(start, p.previous().Pos, expr)
}

// exprToLValue reinterprets an already-parsed primary/postfix expression as
// an lvalue, since identifier/index/field expressions and lvalues share a
// grammar prefix and are only disambiguated by what follows '='.
func exprToLValue(e ast.Expr, pos ast.Position) ast.LValue {
	switch n := e.(type) {
	case *ast.IdentExpr:
		return ast.NewIdentLValue(n.NodePos(), n.NodeEndPos(), n.Name)
	case *ast.IndexExpr:
		return ast.NewIndexLValue(n.NodePos(), n.NodeEndPos(), exprToLValue(n.Target, pos), n.Index)
	case *ast.FieldExpr:
		return ast.NewFieldLValue(n.NodePos(), n.NodeEndPos(), exprToLValue(n.Target, pos), n.Field)
	default:
		panic(&ParseError{Message: "invalid assignment target", Pos: pos})
	}
}
