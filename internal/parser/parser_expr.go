package parser

import (
	"strconv"

	"ccdsl/internal/ast"
)

// binaryPrecedence assigns each binary operator token a precedence level;
// parseExpr climbs this table (precedence climbing / Pratt parsing) rather
// than encoding precedence as nested grammar productions.
var binaryPrecedence = map[TokenType]int{
	OR:            1,
	AND:           2,
	PIPE:          3,
	CARET:         4,
	AMPERSAND:     5,
	EQUAL_EQUAL:   6,
	BANG_EQUAL:    6,
	LESS:          7,
	LESS_EQUAL:    7,
	GREATER:       7,
	GREATER_EQUAL: 7,
	SHL:           8,
	SHR:           8,
	PLUS:          9,
	MINUS:         9,
	STAR:          10,
	SLASH:         10,
	PERCENT:       10,
	STAR_STAR:     11,
}

var tokenToBinOp = map[TokenType]ast.BinaryOp{
	PLUS: ast.OpAdd, MINUS: ast.OpSub, STAR: ast.OpMul, SLASH: ast.OpDiv, PERCENT: ast.OpMod,
	STAR_STAR: ast.OpPow, EQUAL_EQUAL: ast.OpEq, BANG_EQUAL: ast.OpNeq,
	LESS: ast.OpLt, LESS_EQUAL: ast.OpLte, GREATER: ast.OpGt, GREATER_EQUAL: ast.OpGte,
	AND: ast.OpAnd, OR: ast.OpOr, AMPERSAND: ast.OpBitAnd, PIPE: ast.OpBitOr, CARET: ast.OpBitXor,
	SHL: ast.OpShl, SHR: ast.OpShr,
}

// envAccessorNames maps the zero-argument builtin call names to the
// environment accessor they desugar to.
var envAccessorNames = map[string]ast.EnvAccessorKind{
	"msg_sender":       ast.EnvMsgSender,
	"msg_value":        ast.EnvMsgValue,
	"block_number":     ast.EnvBlockNumber,
	"block_timestamp":  ast.EnvBlockTimestamp,
}

func (p *Parser) parseExpr() ast.Expr {
	return p.parseTernary()
}

func (p *Parser) parseTernary() ast.Expr {
	start := p.peek().Pos
	cond := p.parseBinary(0)
	if p.match(QUESTION) {
		then := p.parseExpr()
		p.consume(COLON, "expected ':' in ternary expression")
		els := p.parseExpr()
		return ast.NewTernaryExpr(start, p.previous().Pos, cond, then, els)
	}
	return cond
}

func (p *Parser) parseBinary(minPrec int) ast.Expr {
	start := p.peek().Pos
	left := p.parseUnary()
	for {
		prec, ok := binaryPrecedence[p.peek().Type]
		if !ok || prec < minPrec {
			return left
		}
		opTok := p.advance()
		right := p.parseBinary(prec + 1)
		left = ast.NewBinaryExpr(start, p.previous().Pos, tokenToBinOp[opTok.Type], left, right)
	}
}

func (p *Parser) parseUnary() ast.Expr {
	start := p.peek().Pos
	switch p.peek().Type {
	case BANG:
		p.advance()
		operand := p.parseUnary()
		return ast.NewUnaryExpr(start, p.previous().Pos, ast.OpNot, operand)
	case MINUS:
		p.advance()
		operand := p.parseUnary()
		return ast.NewUnaryExpr(start, p.previous().Pos, ast.OpNeg, operand)
	case TILDE:
		p.advance()
		operand := p.parseUnary()
		return ast.NewUnaryExpr(start, p.previous().Pos, ast.OpBitNot, operand)
	default:
		return p.parsePostfix()
	}
}

func (p *Parser) parsePostfix() ast.Expr {
	start := p.peek().Pos
	expr := p.parsePrimary()
	for {
		switch p.peek().Type {
		case DOT:
			p.advance()
			name := p.consume(IDENTIFIER, "expected field or method name after '.'")
			if p.check(LEFT_PAREN) {
				p.advance()
				args := p.parseArgList()
				p.consume(RIGHT_PAREN, "expected ')' to close method call")
				expr = ast.NewMethodCallExpr(start, p.previous().Pos, expr, name.Lexeme, args)
			} else {
				expr = ast.NewFieldExpr(start, p.previous().Pos, expr, name.Lexeme)
			}
		case LEFT_BRACKET:
			p.advance()
			idx := p.parseExpr()
			p.consume(RIGHT_BRACKET, "expected ']' to close index expression")
			expr = ast.NewIndexExpr(start, p.previous().Pos, expr, idx)
		default:
			return expr
		}
	}
}

func (p *Parser) parseArgList() []ast.Expr {
	var args []ast.Expr
	for !p.check(RIGHT_PAREN) && !p.isAtEnd() {
		args = append(args, p.parseExpr())
		if !p.match(COMMA) {
			break
		}
	}
	return args
}

func (p *Parser) parsePrimary() ast.Expr {
	start := p.peek().Pos
	switch p.peek().Type {
	case NUMBER:
		tok := p.advance()
		v, _ := strconv.ParseUint(tok.Lexeme, 10, 64)
		return ast.NewIntLiteral(start, p.previous().Pos, v)
	case HEX_NUMBER:
		tok := p.advance()
		v, _ := strconv.ParseUint(tok.Lexeme[2:], 16, 64)
		return ast.NewIntLiteral(start, p.previous().Pos, v)
	case STRING_LIT:
		tok := p.advance()
		return ast.NewStringLiteral(start, p.previous().Pos, tok.Lexeme)
	case TRUE:
		p.advance()
		return ast.NewBoolLiteral(start, p.previous().Pos, true)
	case FALSE:
		p.advance()
		return ast.NewBoolLiteral(start, p.previous().Pos, false)
	case LEFT_PAREN:
		p.advance()
		first := p.parseExpr()
		if p.match(COMMA) {
			elems := []ast.Expr{first}
			for !p.check(RIGHT_PAREN) {
				elems = append(elems, p.parseExpr())
				if !p.match(COMMA) {
					break
				}
			}
			p.consume(RIGHT_PAREN, "expected ')' to close tuple literal")
			return ast.NewTupleLiteral(start, p.previous().Pos, elems)
		}
		p.consume(RIGHT_PAREN, "expected ')' to close parenthesized expression")
		return first
	case LEFT_BRACKET:
		p.advance()
		var elems []ast.Expr
		for !p.check(RIGHT_BRACKET) {
			elems = append(elems, p.parseExpr())
			if !p.match(COMMA) {
				break
			}
		}
		p.consume(RIGHT_BRACKET, "expected ']' to close array literal")
		return ast.NewArrayLiteral(start, p.previous().Pos, elems)
	case PIPE:
		return p.parseLambda()
	case IDENTIFIER:
		return p.parseIdentLed()
	}
	p.fail("expected an expression")
	return nil
}

func (p *Parser) parseLambda() ast.Expr {
	start := p.consume(PIPE, "expected '|'").Pos
	var params []*ast.Parameter
	for !p.check(PIPE) && !p.isAtEnd() {
		pstart := p.peek().Pos
		name := p.consume(IDENTIFIER, "expected lambda parameter name")
		var ty *ast.Type
		if p.match(COLON) {
			ty = p.parseType()
		}
		params = append(params, ast.NewParameter(pstart, p.previous().Pos, name.Lexeme, ty))
		if !p.match(COMMA) {
			break
		}
	}
	p.consume(PIPE, "expected '|' to close lambda parameters")
	body := p.parseExpr()
	return ast.NewLambdaExpr(start, p.previous().Pos, params, body)
}

// parseIdentLed handles every primary expression that starts with a bare
// identifier: a plain variable reference, a call, a struct literal, or one
// of the zero-arg environment-accessor builtins (msg_sender() and friends).
func (p *Parser) parseIdentLed() ast.Expr {
	start := p.peek().Pos
	name := p.advance().Lexeme

	if p.check(LEFT_PAREN) {
		p.advance()
		args := p.parseArgList()
		p.consume(RIGHT_PAREN, "expected ')' to close call arguments")
		if kind, ok := envAccessorNames[name]; ok && len(args) == 0 {
			return ast.NewEnvAccessor(start, p.previous().Pos, kind)
		}
		return ast.NewCallExpr(start, p.previous().Pos, name, args)
	}

	if p.check(LEFT_BRACE) && isUpper(name) {
		return p.parseStructLiteral(start, name)
	}

	return ast.NewIdentExpr(start, p.previous().Pos, name)
}

func isUpper(s string) bool {
	return len(s) > 0 && s[0] >= 'A' && s[0] <= 'Z'
}

func (p *Parser) parseStructLiteral(start ast.Position, name string) ast.Expr {
	p.consume(LEFT_BRACE, "expected '{' to open struct literal")
	var fields []*ast.StructLiteralField
	for !p.check(RIGHT_BRACE) && !p.isAtEnd() {
		fstart := p.peek().Pos
		fname := p.consume(IDENTIFIER, "expected field name in struct literal")
		var value ast.Expr
		if p.match(COLON) {
			value = p.parseExpr()
		} else {
			value = ast.NewIdentExpr(fstart, fstart, fname.Lexeme)
		}
		fields = append(fields, ast.NewStructLiteralField(fstart, p.previous().Pos, fname.Lexeme, value))
		if !p.match(COMMA) {
			break
		}
	}
	p.consume(RIGHT_BRACE, "expected '}' to close struct literal")
	return ast.NewStructLiteralExpr(start, p.previous().Pos, name, fields)
}
