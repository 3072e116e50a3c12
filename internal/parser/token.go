package parser

import "ccdsl/internal/ast"

type TokenType int

const (
	EOF TokenType = iota
	ILLEGAL

	IDENTIFIER
	NUMBER
	HEX_NUMBER
	STRING_LIT

	// keywords
	CONTRACT
	STATE
	STRUCT
	EVENT
	MODIFIER
	FUN
	PUBLIC
	PRIVATE
	INTERNAL
	EXTERNAL
	PAYABLE
	VIEW
	LET
	MUT
	IF
	ELSE
	WHILE
	FOR
	IN
	REQUIRE
	ASSERT
	EMIT
	RETURN
	BREAK
	CONTINUE
	TRUE
	FALSE
	USE
	TYPE
	INDEXED

	// type keywords
	TY_BOOL
	TY_ADDRESS
	TY_STRING
	TY_BYTES
	TY_MAP
	TY_VEC
	TY_OPTION
	TY_RESULT

	// punctuation
	LEFT_PAREN
	RIGHT_PAREN
	LEFT_BRACE
	RIGHT_BRACE
	LEFT_BRACKET
	RIGHT_BRACKET
	COMMA
	DOT
	SEMICOLON
	COLON
	DOUBLE_COLON
	QUESTION
	ARROW

	// operators
	PLUS
	MINUS
	STAR
	SLASH
	PERCENT
	STAR_STAR
	EQUAL
	EQUAL_EQUAL
	BANG
	BANG_EQUAL
	LESS
	LESS_EQUAL
	GREATER
	GREATER_EQUAL
	AND
	OR
	AMPERSAND
	PIPE
	CARET
	SHL
	SHR
	TILDE
)

var keywords = map[string]TokenType{
	"contract": CONTRACT, "state": STATE, "struct": STRUCT, "event": EVENT,
	"modifier": MODIFIER, "fn": FUN, "public": PUBLIC, "private": PRIVATE,
	"internal": INTERNAL, "external": EXTERNAL, "payable": PAYABLE, "view": VIEW,
	"let": LET, "mut": MUT, "if": IF, "else": ELSE, "while": WHILE, "for": FOR,
	"in": IN, "require": REQUIRE, "assert": ASSERT, "emit": EMIT, "return": RETURN,
	"break": BREAK, "continue": CONTINUE, "true": TRUE, "false": FALSE,
	"use": USE, "type": TYPE, "indexed": INDEXED,
	"bool": TY_BOOL, "address": TY_ADDRESS, "string": TY_STRING, "bytes": TY_BYTES,
	"Map": TY_MAP, "Vec": TY_VEC, "Option": TY_OPTION, "Result": TY_RESULT,
}

type Token struct {
	Type   TokenType
	Lexeme string
	Pos    ast.Position
}
