package codegen

import (
	"fmt"
	"strings"

	"ccdsl/internal/ast"
)

// solanaProgramID is the placeholder declared by every generated program,
// restored from the original Rust generator's literal (the CORE never
// allocates a real on-chain address).
const solanaProgramID = "11111111111111111111111111111111"

type solanaEmitter struct {
	state   map[string]bool
	sb      strings.Builder
	indent  int
}

// EmitSolana lowers contract to a single Anchor-style Rust source file,
// following the structure of the reference SolanaCodeGenerator: a
// declare_id!, a #[program] module with one entry per function, one
// #[derive(Accounts)] struct per function, a #[account] state record, and a
// fixed #[error_code] enum.
func EmitSolana(contract *ast.Contract, opts Options) (string, error) {
	e := &solanaEmitter{state: stateNames(contract)}
	e.writeln("use anchor_lang::prelude::*;")
	e.writeln("")
	e.writeln("declare_id!(\"" + solanaProgramID + "\");")
	e.writeln("")
	e.writeln("#[program]")
	e.writeln("pub mod " + strings.ToLower(contract.Name.Value) + " {")
	e.indent++
	e.writeln("use super::*;")
	e.writeln("")
	for _, fn := range contract.Functions {
		if err := e.emitFunction(fn); err != nil {
			return "", err
		}
	}
	e.indent--
	e.writeln("}")
	e.writeln("")
	e.emitAccounts(contract)
	e.emitState(contract)
	e.emitErrors()
	return e.sb.String(), nil
}

func (e *solanaEmitter) writeln(s string) {
	if s != "" {
		e.sb.WriteString(strings.Repeat("    ", e.indent))
		e.sb.WriteString(s)
	}
	e.sb.WriteString("\n")
}

func (e *solanaEmitter) emitFunction(fn *ast.Function) error {
	sig := fmt.Sprintf("pub fn %s(ctx: Context<%s>", fn.Name, capitalize(fn.Name))
	for _, p := range fn.Params {
		sig += fmt.Sprintf(", %s: %s", p.Name, e.typeToRust(p.Type))
	}
	sig += ") -> Result<()> {"
	e.writeln(sig)
	e.indent++
	for _, s := range fn.Body.Stmts {
		line, err := e.stmt(s)
		if err != nil {
			return err
		}
		e.writeln(line)
	}
	e.writeln("Ok(())")
	e.indent--
	e.writeln("}")
	e.writeln("")
	return nil
}

func (e *solanaEmitter) emitAccounts(contract *ast.Contract) {
	for _, fn := range contract.Functions {
		e.writeln("#[derive(Accounts)]")
		e.writeln("pub struct " + capitalize(fn.Name) + "<'info> {")
		e.indent++
		e.writeln("#[account(mut)]")
		e.writeln("pub user: Signer<'info>,")
		if len(contract.State) > 0 {
			e.writeln("#[account(")
			e.indent++
			e.writeln("mut,")
			e.writeln("seeds = [b\"state\"],")
			e.writeln("bump")
			e.indent--
			e.writeln(")]")
			e.writeln("pub state: Account<'info, State>,")
		}
		e.writeln("pub system_program: Program<'info, System>,")
		e.indent--
		e.writeln("}")
		e.writeln("")
	}
}

func (e *solanaEmitter) emitState(contract *ast.Contract) {
	e.writeln("#[account]")
	e.writeln("pub struct State {")
	e.indent++
	for _, sv := range contract.State {
		e.writeln("pub " + sv.Name + ": " + e.typeToRust(sv.Type) + ",")
	}
	e.indent--
	e.writeln("}")
	e.writeln("")
}

func (e *solanaEmitter) emitErrors() {
	e.writeln("#[error_code]")
	e.writeln("pub enum ErrorCode {")
	e.indent++
	e.writeln("#[msg(\"Unauthorized\")]")
	e.writeln("Unauthorized,")
	e.writeln("#[msg(\"Insufficient balance\")]")
	e.writeln("InsufficientBalance,")
	e.writeln("#[msg(\"Invalid parameter\")]")
	e.writeln("InvalidParameter,")
	e.indent--
	e.writeln("}")
}

func (e *solanaEmitter) typeToRust(t *ast.Type) string {
	switch t.Kind {
	case ast.TU8:
		return "u8"
	case ast.TU16:
		return "u16"
	case ast.TU32:
		return "u32"
	case ast.TU64:
		return "u64"
	case ast.TU128:
		return "u128"
	case ast.TU256:
		return "[u8; 32]" // no native u256 on this target
	case ast.TI8:
		return "i8"
	case ast.TI16:
		return "i16"
	case ast.TI32:
		return "i32"
	case ast.TI64:
		return "i64"
	case ast.TI128:
		return "i128"
	case ast.TBool:
		return "bool"
	case ast.TAddress:
		return "Pubkey"
	case ast.TString:
		return "String"
	case ast.TBytes:
		return "Vec<u8>"
	case ast.TMap:
		return fmt.Sprintf("std::collections::HashMap<%s, %s>", e.typeToRust(t.Key), e.typeToRust(t.Elem))
	case ast.TVec:
		return "Vec<" + e.typeToRust(t.Elem) + ">"
	case ast.TArray:
		return fmt.Sprintf("[%s; %d]", e.typeToRust(t.Elem), t.Size)
	case ast.TTuple:
		parts := make([]string, len(t.Elems))
		for i, el := range t.Elems {
			parts[i] = e.typeToRust(el)
		}
		return "(" + strings.Join(parts, ", ") + ")"
	case ast.TStruct:
		return t.Name
	case ast.TOption:
		return "Option<" + e.typeToRust(t.Elem) + ">"
	case ast.TResult:
		return fmt.Sprintf("Result<%s, %s>", e.typeToRust(t.OkType), e.typeToRust(t.ErrT))
	case ast.TVoid:
		return "()"
	default:
		return "()"
	}
}

func (e *solanaEmitter) stmt(s ast.Stmt) (string, error) {
	switch n := s.(type) {
	case *ast.LetStmt:
		return fmt.Sprintf("let %s = %s;", n.Name, e.expr(n.Value)), nil
	case *ast.AssignStmt:
		return fmt.Sprintf("%s = %s;", e.lvalue(n.Target), e.expr(n.Value)), nil
	case *ast.IfStmt:
		return e.ifStmt(n)
	case *ast.WhileStmt:
		return e.block("while "+e.expr(n.Cond)+" {", n.Body)
	case *ast.ForEachStmt:
		return e.block(fmt.Sprintf("for %s in %s.iter() {", n.VarName, e.expr(n.Iter)), n.Body)
	case *ast.RequireStmt:
		return fmt.Sprintf("require!(%s, ErrorCode::InvalidParameter);", e.expr(n.Cond)), nil
	case *ast.AssertStmt:
		parts := make([]string, len(n.Args))
		for i, a := range n.Args {
			parts[i] = e.expr(a)
		}
		return fmt.Sprintf("require!(%s, ErrorCode::InvalidParameter);", strings.Join(parts, ", ")), nil
	case *ast.EmitStmt:
		parts := make([]string, len(n.Args))
		for i, a := range n.Args {
			parts[i] = e.expr(a)
		}
		return fmt.Sprintf("emit!(%s { /* %s */ });", n.Event, strings.Join(parts, ", ")), nil
	case *ast.ReturnStmt:
		if n.Value == nil {
			return "return Ok(());", nil
		}
		return fmt.Sprintf("return Ok(%s);", e.expr(n.Value)), nil
	case *ast.BreakStmt:
		return "break;", nil
	case *ast.ContinueStmt:
		return "continue;", nil
	case *ast.ExprStmt:
		return e.expr(n.Expr) + ";", nil
	default:
		return "", &UnsupportedFeatureError{Target: TargetSolana, Feature: fmt.Sprintf("%T statement", s)}
	}
}

func (e *solanaEmitter) ifStmt(n *ast.IfStmt) (string, error) {
	var sb strings.Builder
	sb.WriteString("if " + e.expr(n.Cond) + " {\n")
	e.indent++
	for _, st := range n.Then.Stmts {
		line, err := e.stmt(st)
		if err != nil {
			return "", err
		}
		sb.WriteString(strings.Repeat("    ", e.indent) + line + "\n")
	}
	e.indent--
	sb.WriteString(strings.Repeat("    ", e.indent) + "}")
	if n.Else != nil {
		switch els := n.Else.(type) {
		case *ast.Block:
			sb.WriteString(" else {\n")
			e.indent++
			for _, st := range els.Stmts {
				line, err := e.stmt(st)
				if err != nil {
					return "", err
				}
				sb.WriteString(strings.Repeat("    ", e.indent) + line + "\n")
			}
			e.indent--
			sb.WriteString(strings.Repeat("    ", e.indent) + "}")
		case *ast.IfStmt:
			elseIf, err := e.ifStmt(els)
			if err != nil {
				return "", err
			}
			sb.WriteString(" else " + elseIf)
		}
	}
	return sb.String(), nil
}

func (e *solanaEmitter) block(header string, body *ast.Block) (string, error) {
	var sb strings.Builder
	sb.WriteString(header + "\n")
	e.indent++
	for _, st := range body.Stmts {
		line, err := e.stmt(st)
		if err != nil {
			return "", err
		}
		sb.WriteString(strings.Repeat("    ", e.indent) + line + "\n")
	}
	e.indent--
	sb.WriteString(strings.Repeat("    ", e.indent) + "}")
	return sb.String(), nil
}

func (e *solanaEmitter) lvalue(lv ast.LValue) string {
	switch n := lv.(type) {
	case *ast.IdentLValue:
		if e.state[n.Name] {
			return "ctx.accounts.state." + n.Name
		}
		return n.Name
	case *ast.IndexLValue:
		return e.lvalue(n.Target) + "[" + e.expr(n.Index) + "]"
	case *ast.FieldLValue:
		return e.lvalue(n.Target) + "." + n.Field
	default:
		return "/* lvalue */"
	}
}

func (e *solanaEmitter) expr(ex ast.Expr) string {
	switch n := ex.(type) {
	case *ast.IntLiteral:
		return fmt.Sprintf("%d", n.Value)
	case *ast.BoolLiteral:
		return fmt.Sprintf("%t", n.Value)
	case *ast.StringLiteral:
		return fmt.Sprintf("%q", n.Value)
	case *ast.AddressLiteral:
		return "Pubkey::from_str(\"" + n.Value + "\").unwrap()"
	case *ast.IdentExpr:
		if e.state[n.Name] {
			return "ctx.accounts.state." + n.Name
		}
		return n.Name
	case *ast.BinaryExpr:
		return "(" + e.expr(n.Left) + " " + n.Op.String() + " " + e.expr(n.Right) + ")"
	case *ast.UnaryExpr:
		return n.Op.String() + e.expr(n.Operand)
	case *ast.TernaryExpr:
		return fmt.Sprintf("(if %s { %s } else { %s })", e.expr(n.Cond), e.expr(n.Then), e.expr(n.Else))
	case *ast.CallExpr:
		return n.Callee + "(" + e.exprList(n.Args) + ")"
	case *ast.MethodCallExpr:
		return e.expr(n.Receiver) + "." + n.Method + "(" + e.exprList(n.Args) + ")"
	case *ast.IndexExpr:
		return e.expr(n.Target) + "[" + e.expr(n.Index) + " as usize]"
	case *ast.FieldExpr:
		return e.expr(n.Target) + "." + n.Field
	case *ast.ArrayLiteral:
		return "[" + e.exprList(n.Elements) + "]"
	case *ast.TupleLiteral:
		return "(" + e.exprList(n.Elements) + ")"
	case *ast.StructLiteralExpr:
		parts := make([]string, len(n.Fields))
		for i, f := range n.Fields {
			parts[i] = f.Name + ": " + e.expr(f.Value)
		}
		return n.StructName + " { " + strings.Join(parts, ", ") + " }"
	case *ast.LambdaExpr:
		params := make([]string, len(n.Params))
		for i, p := range n.Params {
			params[i] = p.Name
		}
		return "|" + strings.Join(params, ", ") + "| " + e.expr(n.Body)
	case *ast.EnvAccessor:
		switch n.Kind {
		case ast.EnvMsgSender:
			return "ctx.accounts.user.key()"
		case ast.EnvMsgValue:
			return "ctx.accounts.user.lamports()"
		case ast.EnvBlockNumber:
			return "Clock::get()?.slot"
		default:
			return "Clock::get()?.unix_timestamp"
		}
	default:
		return "/* expr */"
	}
}

func (e *solanaEmitter) exprList(in []ast.Expr) string {
	parts := make([]string, len(in))
	for i, a := range in {
		parts[i] = e.expr(a)
	}
	return strings.Join(parts, ", ")
}
