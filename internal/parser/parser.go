// Package parser turns ccdsl source text into the internal/ast tree. It
// never produces a partial AST: on the first error it stops and returns that
// error instead, per the parser collaborator contract.
package parser

import (
	"fmt"

	"ccdsl/internal/ast"
)

// ParseError is the single error value the parser ever returns.
type ParseError struct {
	Message string
	Pos     ast.Position
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Message)
}

type Parser struct {
	filename string
	tokens   []Token
	current  int
}

// Parse scans and parses source, returning a Program or the first error
// encountered (scan errors take priority since later tokens are unreliable).
func Parse(filename, source string) (*ast.Program, *ParseError) {
	sc := NewScanner(filename, source)
	tokens := sc.ScanTokens()
	if errs := sc.Errors(); len(errs) > 0 {
		return nil, &ParseError{Message: errs[0].Message, Pos: errs[0].Pos}
	}

	p := &Parser{filename: filename, tokens: tokens}
	return p.parseProgram()
}

func (p *Parser) parseProgram() (prog *ast.Program, perr *ParseError) {
	defer func() {
		if r := recover(); r != nil {
			pe, ok := r.(*ParseError)
			if !ok {
				panic(r)
			}
			prog, perr = nil, pe
		}
	}()

	start := p.peek().Pos
	program := ast.NewProgram(start, start)
	for !p.isAtEnd() {
		switch p.peek().Type {
		case USE:
			program.Imports = append(program.Imports, p.parseImport())
		case TYPE:
			program.TypeAlias = append(program.TypeAlias, p.parseTypeAlias())
		case CONTRACT:
			program.Contracts = append(program.Contracts, p.parseContract())
		default:
			p.fail("expected 'use', 'type' or 'contract'")
		}
	}
	return program, nil
}

func (p *Parser) fail(message string) {
	panic(&ParseError{Message: message, Pos: p.peek().Pos})
}

// --- token stream helpers -------------------------------------------------

func (p *Parser) peek() Token     { return p.tokens[p.current] }
func (p *Parser) previous() Token { return p.tokens[p.current-1] }
func (p *Parser) isAtEnd() bool   { return p.peek().Type == EOF }

func (p *Parser) advance() Token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

func (p *Parser) check(tt TokenType) bool {
	if p.isAtEnd() {
		return tt == EOF
	}
	return p.peek().Type == tt
}

func (p *Parser) match(types ...TokenType) bool {
	for _, tt := range types {
		if p.check(tt) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) consume(tt TokenType, message string) Token {
	if p.check(tt) {
		return p.advance()
	}
	p.fail(message)
	return Token{}
}

// --- top-level declarations ------------------------------------------------

func (p *Parser) parseImport() *ast.Import {
	start := p.consume(USE, "expected 'use'").Pos
	var path []string
	ident := p.consume(IDENTIFIER, "expected identifier in import path")
	path = append(path, ident.Lexeme)
	for p.match(DOUBLE_COLON) {
		ident = p.consume(IDENTIFIER, "expected identifier after '::'")
		path = append(path, ident.Lexeme)
	}
	p.consume(SEMICOLON, "expected ';' after import")
	return ast.NewImport(start, p.previous().Pos, path)
}

func (p *Parser) parseTypeAlias() *ast.TypeAlias {
	start := p.consume(TYPE, "expected 'type'").Pos
	name := p.consume(IDENTIFIER, "expected type alias name")
	p.consume(EQUAL, "expected '=' in type alias")
	ty := p.parseType()
	p.consume(SEMICOLON, "expected ';' after type alias")
	return ast.NewTypeAlias(start, p.previous().Pos, name.Lexeme, ty)
}

func (p *Parser) parseContract() *ast.Contract {
	start := p.consume(CONTRACT, "expected 'contract'").Pos
	name := p.consume(IDENTIFIER, "expected contract name")
	p.consume(LEFT_BRACE, "expected '{' after contract name")

	c := ast.NewContract(start, start, ast.NewIdent(name.Pos, name.Pos, name.Lexeme))
	for !p.check(RIGHT_BRACE) && !p.isAtEnd() {
		switch p.peek().Type {
		case STATE:
			c.State = append(c.State, p.parseStateVariable())
		case STRUCT:
			c.Structs = append(c.Structs, p.parseStructDef())
		case EVENT:
			c.Events = append(c.Events, p.parseEventDef())
		case MODIFIER:
			c.Modifiers = append(c.Modifiers, p.parseModifier())
		case PUBLIC, PRIVATE, INTERNAL, EXTERNAL, PAYABLE, VIEW, FUN:
			c.Functions = append(c.Functions, p.parseFunction())
		default:
			p.fail("expected a contract member")
		}
	}
	p.consume(RIGHT_BRACE, "expected '}' to close contract")
	c.EndPos = p.previous().Pos
	return c
}

func (p *Parser) parseStateVariable() *ast.StateVariable {
	start := p.consume(STATE, "expected 'state'").Pos
	mutable := p.match(MUT)
	name := p.consume(IDENTIFIER, "expected state variable name")
	p.consume(COLON, "expected ':' after state variable name")
	ty := p.parseType()
	var init ast.Expr
	if p.match(EQUAL) {
		init = p.parseExpr()
	}
	p.consume(SEMICOLON, "expected ';' after state variable declaration")
	return ast.NewStateVariable(start, p.previous().Pos, name.Lexeme, ty, ast.Public, mutable, init)
}

func (p *Parser) parseStructDef() *ast.StructDef {
	start := p.consume(STRUCT, "expected 'struct'").Pos
	name := p.consume(IDENTIFIER, "expected struct name")
	p.consume(LEFT_BRACE, "expected '{' after struct name")
	var fields []*ast.StructField
	for !p.check(RIGHT_BRACE) && !p.isAtEnd() {
		fstart := p.peek().Pos
		fname := p.consume(IDENTIFIER, "expected field name")
		p.consume(COLON, "expected ':' after field name")
		ty := p.parseType()
		fields = append(fields, ast.NewStructField(fstart, p.previous().Pos, fname.Lexeme, ty))
		if !p.match(COMMA) {
			break
		}
	}
	p.consume(RIGHT_BRACE, "expected '}' to close struct")
	return ast.NewStructDef(start, p.previous().Pos, name.Lexeme, fields)
}

func (p *Parser) parseEventDef() *ast.EventDef {
	start := p.consume(EVENT, "expected 'event'").Pos
	name := p.consume(IDENTIFIER, "expected event name")
	p.consume(LEFT_PAREN, "expected '(' after event name")
	var params []*ast.EventParam
	for !p.check(RIGHT_PAREN) && !p.isAtEnd() {
		pstart := p.peek().Pos
		indexed := p.match(INDEXED)
		pname := p.consume(IDENTIFIER, "expected parameter name")
		p.consume(COLON, "expected ':' after parameter name")
		ty := p.parseType()
		params = append(params, ast.NewEventParam(pstart, p.previous().Pos, pname.Lexeme, ty, indexed))
		if !p.match(COMMA) {
			break
		}
	}
	p.consume(RIGHT_PAREN, "expected ')' to close event parameters")
	p.consume(SEMICOLON, "expected ';' after event declaration")
	return ast.NewEventDef(start, p.previous().Pos, name.Lexeme, params)
}

func (p *Parser) parseModifier() *ast.Modifier {
	start := p.consume(MODIFIER, "expected 'modifier'").Pos
	name := p.consume(IDENTIFIER, "expected modifier name")
	var params []*ast.Parameter
	if p.match(LEFT_PAREN) {
		params = p.parseParamList()
		p.consume(RIGHT_PAREN, "expected ')' to close modifier parameters")
	}
	body := p.parseBlock()
	return ast.NewModifier(start, p.previous().Pos, name.Lexeme, params, body)
}

func (p *Parser) parseFunction() *ast.Function {
	start := p.peek().Pos
	vis := ast.Private
	payable, view := false, false
loop:
	for {
		switch p.peek().Type {
		case PUBLIC:
			p.advance()
			vis = ast.Public
		case PRIVATE:
			p.advance()
			vis = ast.Private
		case INTERNAL:
			p.advance()
			vis = ast.Internal
		case EXTERNAL:
			p.advance()
			vis = ast.External
		case PAYABLE:
			p.advance()
			payable = true
		case VIEW:
			p.advance()
			view = true
		default:
			break loop
		}
	}
	p.consume(FUN, "expected 'fn'")
	name := p.consume(IDENTIFIER, "expected function name")
	p.consume(LEFT_PAREN, "expected '(' after function name")
	params := p.parseParamList()
	p.consume(RIGHT_PAREN, "expected ')' to close parameter list")

	var ret *ast.Type
	if p.match(COLON) {
		ret = p.parseType()
	}

	var mods []string
	if p.check(IDENTIFIER) && p.peek().Lexeme == "modifiers" {
		p.advance()
		p.consume(LEFT_PAREN, "expected '(' after 'modifiers'")
		for !p.check(RIGHT_PAREN) {
			id := p.consume(IDENTIFIER, "expected modifier name")
			mods = append(mods, id.Lexeme)
			if !p.match(COMMA) {
				break
			}
		}
		p.consume(RIGHT_PAREN, "expected ')' to close modifiers list")
	}

	body := p.parseBlock()
	return ast.NewFunction(start, p.previous().Pos, name.Lexeme, vis, params, ret, mods, payable, view, body)
}

func (p *Parser) parseParamList() []*ast.Parameter {
	var params []*ast.Parameter
	for !p.check(RIGHT_PAREN) && !p.isAtEnd() {
		start := p.peek().Pos
		mutable := p.match(MUT)
		name := p.consume(IDENTIFIER, "expected parameter name")
		p.consume(COLON, "expected ':' after parameter name")
		ty := p.parseType()
		params = append(params, ast.NewMutParameter(start, p.previous().Pos, name.Lexeme, ty, mutable))
		if !p.match(COMMA) {
			break
		}
	}
	return params
}

// --- types ------------------------------------------------------------

func (p *Parser) parseType() *ast.Type {
	if p.check(IDENTIFIER) {
		switch p.peek().Lexeme {
		case "u8":
			p.advance()
			return ast.U8()
		case "u16":
			p.advance()
			return ast.U16()
		case "u32":
			p.advance()
			return ast.U32()
		case "u64":
			p.advance()
			return ast.U64()
		case "u128":
			p.advance()
			return ast.U128()
		case "u256":
			p.advance()
			return ast.U256()
		case "i8":
			p.advance()
			return ast.I8()
		case "i16":
			p.advance()
			return ast.I16()
		case "i32":
			p.advance()
			return ast.I32()
		case "i64":
			p.advance()
			return ast.I64()
		case "i128":
			p.advance()
			return ast.I128()
		}
	}
	switch p.peek().Type {
	case TY_BOOL:
		p.advance()
		return ast.BoolT()
	case TY_ADDRESS:
		p.advance()
		return ast.AddressT()
	case TY_STRING:
		p.advance()
		return ast.StringT()
	case TY_BYTES:
		p.advance()
		return ast.BytesT()
	case TY_MAP:
		p.advance()
		p.consume(LESS, "expected '<' after Map")
		k := p.parseType()
		p.consume(COMMA, "expected ',' in Map type")
		v := p.parseType()
		p.consume(GREATER, "expected '>' to close Map type")
		return ast.MapT(k, v)
	case TY_VEC:
		p.advance()
		p.consume(LESS, "expected '<' after Vec")
		e := p.parseType()
		p.consume(GREATER, "expected '>' to close Vec type")
		return ast.VecT(e)
	case TY_OPTION:
		p.advance()
		p.consume(LESS, "expected '<' after Option")
		e := p.parseType()
		p.consume(GREATER, "expected '>' to close Option type")
		return ast.OptionT(e)
	case TY_RESULT:
		p.advance()
		p.consume(LESS, "expected '<' after Result")
		ok := p.parseType()
		p.consume(COMMA, "expected ',' in Result type")
		errT := p.parseType()
		p.consume(GREATER, "expected '>' to close Result type")
		return ast.ResultT(ok, errT)
	case LEFT_BRACKET:
		p.advance()
		e := p.parseType()
		p.consume(SEMICOLON, "expected ';' in array type")
		n := p.consume(NUMBER, "expected array size")
		p.consume(RIGHT_BRACKET, "expected ']' to close array type")
		size := 0
		fmt.Sscanf(n.Lexeme, "%d", &size)
		return ast.ArrayT(e, size)
	case LEFT_PAREN:
		p.advance()
		var elems []*ast.Type
		for !p.check(RIGHT_PAREN) {
			elems = append(elems, p.parseType())
			if !p.match(COMMA) {
				break
			}
		}
		p.consume(RIGHT_PAREN, "expected ')' to close tuple type")
		return ast.TupleT(elems...)
	case IDENTIFIER:
		name := p.advance()
		return ast.StructT(name.Lexeme)
	}
	p.fail("expected a type")
	return nil
}
