package codegen

import (
	"fmt"
	"strings"

	"ccdsl/internal/ast"
)

// movePolicy isolates the handful of places where Aptos and Sui Move differ:
// the outer module address, the signer/context parameter, and how the State
// resource is published. Everything else (type mapping, statement and
// expression lowering, visibility, acquires) is shared by moveEmitter.
type movePolicy interface {
	// moduleAddress is the fixed outer namespace the generated module lives
	// under, e.g. "cross_chain" for Aptos.
	moduleAddress() string
	// contextParam returns the name and type of the implicit first parameter
	// threaded into every entry function body (a signer ref on Aptos, a
	// transaction-context ref on Sui).
	contextParam() (name, typ string)
	// stateAbilities renders the ability list after `has`, and
	// stateExtraFields any extra fields the State resource needs (e.g. Sui's
	// UID).
	stateAbilities() string
	stateExtraFields() []string
	// initFunction renders the module's init function body, responsible for
	// publishing (Aptos: move_to under the signer) or sharing (Sui:
	// transfer::share_object) the State resource.
	initFunction(e *moveEmitter, contract *ast.Contract) string
	// target identifies which Target this policy lowers to, for error
	// reporting.
	target() Target
}

type aptosPolicy struct{}

func (aptosPolicy) target() Target        { return TargetAptos }
func (aptosPolicy) moduleAddress() string { return "cross_chain" }
func (aptosPolicy) contextParam() (string, string) { return "account", "&signer" }
func (aptosPolicy) stateAbilities() string         { return "key" }
func (aptosPolicy) stateExtraFields() []string      { return nil }
func (aptosPolicy) initFunction(e *moveEmitter, contract *ast.Contract) string {
	var sb strings.Builder
	sb.WriteString("    fun init_module(account: &signer) {\n")
	sb.WriteString("        move_to(account, " + defaultStateLiteral(e, contract) + ");\n")
	sb.WriteString("    }\n")
	return sb.String()
}

type suiPolicy struct{}

func (suiPolicy) target() Target        { return TargetSui }
func (suiPolicy) moduleAddress() string { return "cross_chain" }
func (suiPolicy) contextParam() (string, string) { return "ctx", "&mut TxContext" }
func (suiPolicy) stateAbilities() string         { return "key" }
func (suiPolicy) stateExtraFields() []string {
	return []string{"id: UID,"}
}
func (suiPolicy) initFunction(e *moveEmitter, contract *ast.Contract) string {
	var sb strings.Builder
	sb.WriteString("    fun init(ctx: &mut TxContext) {\n")
	sb.WriteString("        let state = State {\n")
	sb.WriteString("            id: object::new(ctx),\n")
	for _, sv := range contract.State {
		sb.WriteString("            " + sv.Name + ": " + defaultValueLiteral(e, sv) + ",\n")
	}
	sb.WriteString("        };\n")
	sb.WriteString("        transfer::share_object(state);\n")
	sb.WriteString("    }\n")
	return sb.String()
}

func defaultStateLiteral(e *moveEmitter, contract *ast.Contract) string {
	if len(contract.State) == 0 {
		return "State {}"
	}
	var sb strings.Builder
	sb.WriteString("State {\n")
	for _, sv := range contract.State {
		sb.WriteString("            " + sv.Name + ": " + defaultValueLiteral(e, sv) + ",\n")
	}
	sb.WriteString("        }")
	return sb.String()
}

func defaultValueLiteral(e *moveEmitter, sv *ast.StateVariable) string {
	if sv.Initializer != nil {
		return e.expr(sv.Initializer)
	}
	switch {
	case sv.Type.IsInteger():
		return "0"
	case sv.Type.Kind == ast.TBool:
		return "false"
	case sv.Type.Kind == ast.TString || sv.Type.Kind == ast.TBytes:
		return "b\"\""
	default:
		return "/* zero value */"
	}
}

// abortCode is the stable error-kind-to-numeric-abort mapping every Move
// target must agree on, since `assert!` only carries an integer.
var abortCode = map[string]uint64{
	"Unauthorized":        1,
	"InsufficientBalance": 2,
	"InvalidParameter":    3,
}

type moveEmitter struct {
	state    map[string]bool
	policy   movePolicy
	opts     Options
	sb       strings.Builder
	indent   int
	strictErr error
}

// EmitMove lowers contract to a Move module under the given policy (Aptos or
// Sui), following the structure of the reference MoveCodeGenerator: a module
// declaration, a State resource, and one function per contract function with
// an unconditional `acquires State`.
func EmitMove(contract *ast.Contract, policy movePolicy, opts Options) (string, error) {
	e := &moveEmitter{state: stateNames(contract), policy: policy, opts: opts}
	name := strings.ToLower(contract.Name.Value)
	e.writeln(fmt.Sprintf("module %s::%s {", policy.moduleAddress(), name))
	e.indent++
	e.writeln("use std::signer;")
	e.writeln("use aptos_framework::event;")
	e.writeln("use aptos_framework::timestamp;")
	e.writeln("")
	e.emitState(contract)
	e.writeln(e.policy.initFunction(e, contract))
	for _, fn := range contract.Functions {
		if err := e.emitFunction(fn); err != nil {
			return "", err
		}
	}
	e.indent--
	e.writeln("}")
	if e.strictErr != nil {
		return "", e.strictErr
	}
	return e.sb.String(), nil
}

func (e *moveEmitter) writeln(s string) {
	if s != "" {
		e.sb.WriteString(strings.Repeat("    ", e.indent))
		e.sb.WriteString(s)
	}
	e.sb.WriteString("\n")
}

func (e *moveEmitter) emitState(contract *ast.Contract) {
	e.writeln("struct State has " + e.policy.stateAbilities() + " {")
	e.indent++
	for _, f := range e.policy.stateExtraFields() {
		e.writeln(f)
	}
	for _, sv := range contract.State {
		e.writeln(sv.Name + ": " + e.typeToMove(sv.Type) + ",")
	}
	e.indent--
	e.writeln("}")
	e.writeln("")
}

func (e *moveEmitter) emitFunction(fn *ast.Function) error {
	vis := ""
	switch fn.Visibility {
	case ast.Internal:
		vis = "public(friend) "
	case ast.Public:
		vis = "public entry "
	case ast.External:
		vis = "public "
	default:
		vis = ""
	}
	ctxName, ctxType := e.policy.contextParam()
	params := []string{ctxName + ": " + ctxType}
	for _, p := range fn.Params {
		params = append(params, p.Name+": "+e.typeToMove(p.Type))
	}
	ret := ""
	if fn.Return != nil && fn.Return.Kind != ast.TVoid {
		ret = ": " + e.typeToMove(fn.Return)
	}
	sig := fmt.Sprintf("fun %s(%s)%s acquires State {", fn.Name, strings.Join(params, ", "), ret)
	e.writeln(vis + sig)
	e.indent++
	for _, s := range fn.Body.Stmts {
		line, err := e.stmt(s)
		if err != nil {
			return err
		}
		e.writeln(line)
	}
	e.indent--
	e.writeln("}")
	e.writeln("")
	return nil
}

func (e *moveEmitter) typeToMove(t *ast.Type) string {
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
		return "u256"
	case ast.TI8, ast.TI16, ast.TI32, ast.TI64, ast.TI128:
		return e.signedToMove(t)
	case ast.TBool:
		return "bool"
	case ast.TAddress:
		return "address"
	case ast.TString, ast.TBytes:
		return "vector<u8>"
	case ast.TMap:
		return fmt.Sprintf("aptos_std::simple_map::SimpleMap<%s, %s>", e.typeToMove(t.Key), e.typeToMove(t.Elem))
	case ast.TVec:
		return "vector<" + e.typeToMove(t.Elem) + ">"
	case ast.TArray:
		return "vector<" + e.typeToMove(t.Elem) + ">"
	case ast.TTuple:
		parts := make([]string, len(t.Elems))
		for i, el := range t.Elems {
			parts[i] = e.typeToMove(el)
		}
		return "(" + strings.Join(parts, ", ") + ")"
	case ast.TStruct:
		return t.Name
	case ast.TOption:
		return "Option<" + e.typeToMove(t.Elem) + ">"
	case ast.TResult:
		return fmt.Sprintf("Result<%s, %s>", e.typeToMove(t.OkType), e.typeToMove(t.ErrT))
	case ast.TVoid:
		return ""
	default:
		return "u64"
	}
}

// signedToMove maps a signed integer to its equal-width unsigned Move type,
// since Move has no signed integers. When StrictSignedInts is set this is a
// policy violation the caller must refuse rather than silently lower; the
// first offending type wins since EmitMove returns one error, not a list.
func (e *moveEmitter) signedToMove(t *ast.Type) string {
	if e.opts.StrictSignedInts && e.strictErr == nil {
		e.strictErr = &UnsupportedFeatureError{Target: e.policy.target(), Feature: "signed type " + t.String() + " under strict-signed-ints policy"}
	}
	w := t.Width()
	return fmt.Sprintf("u%d", w)
}

func (e *moveEmitter) stmt(s ast.Stmt) (string, error) {
	switch n := s.(type) {
	case *ast.LetStmt:
		kw := "let "
		if n.Mutable {
			kw = "let mut "
		}
		return kw + n.Name + " = " + e.expr(n.Value) + ";", nil
	case *ast.AssignStmt:
		return e.assignLvalue(n.Target) + " = " + e.expr(n.Value) + ";", nil
	case *ast.IfStmt:
		return e.ifStmt(n)
	case *ast.WhileStmt:
		return e.block("while ("+e.expr(n.Cond)+") {", n.Body)
	case *ast.ForEachStmt:
		return e.block(fmt.Sprintf("let mut i = 0; while (i < vector::length(&%s)) {", e.expr(n.Iter)), n.Body)
	case *ast.RequireStmt:
		code := e.requireCode(n.Code)
		return fmt.Sprintf("assert!(%s, %d);", e.expr(n.Cond), code), nil
	case *ast.AssertStmt:
		parts := make([]string, len(n.Args))
		for i, a := range n.Args {
			parts[i] = e.expr(a)
		}
		return fmt.Sprintf("assert!(%s, %d);", strings.Join(parts, ", "), abortCode["InvalidParameter"]), nil
	case *ast.EmitStmt:
		parts := make([]string, len(n.Args))
		for i, a := range n.Args {
			parts[i] = e.expr(a)
		}
		return fmt.Sprintf("event::emit(%s { %s });", n.Event, strings.Join(parts, ", ")), nil
	case *ast.ReturnStmt:
		if n.Value == nil {
			return "return;", nil
		}
		return e.expr(n.Value), nil
	case *ast.BreakStmt:
		return "break;", nil
	case *ast.ContinueStmt:
		return "continue;", nil
	case *ast.ExprStmt:
		return e.expr(n.Expr) + ";", nil
	default:
		return "", &UnsupportedFeatureError{Target: e.policy.target(), Feature: fmt.Sprintf("%T statement", s)}
	}
}

// requireCode resolves a require's optional code expression to a stable
// numeric abort code; absent a literal it falls back to InvalidParameter.
func (e *moveEmitter) requireCode(code ast.Expr) uint64 {
	if sl, ok := code.(*ast.StringLiteral); ok {
		if c, ok := abortCode[sl.Value]; ok {
			return c
		}
	}
	if il, ok := code.(*ast.IntLiteral); ok {
		return il.Value
	}
	return abortCode["InvalidParameter"]
}

func (e *moveEmitter) ifStmt(n *ast.IfStmt) (string, error) {
	var sb strings.Builder
	sb.WriteString("if (" + e.expr(n.Cond) + ") {\n")
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

func (e *moveEmitter) block(header string, body *ast.Block) (string, error) {
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

// assignLvalue renders the dereference-and-assign form `*&mut path` for a
// simple ident/field target, or a `vector::borrow_mut` call for an indexed
// one, since Move assigns through an explicit mutable reference rather than
// an lvalue path.
func (e *moveEmitter) assignLvalue(lv ast.LValue) string {
	if idx, ok := lv.(*ast.IndexLValue); ok {
		return "*vector::borrow_mut(&mut " + e.lvaluePath(idx.Target) + ", (" + e.expr(idx.Index) + " as u64))"
	}
	return "*&mut " + e.lvaluePath(lv)
}

// lvaluePath renders the field/ident path for embedding inside a single
// outer &mut. Ident and field steps add no reference operators; an index
// step inside the path renders as a `*vector::borrow(&...)` read.
func (e *moveEmitter) lvaluePath(lv ast.LValue) string {
	switch n := lv.(type) {
	case *ast.IdentLValue:
		if e.state[n.Name] {
			return "state." + n.Name
		}
		return n.Name
	case *ast.IndexLValue:
		return "(*vector::borrow(&" + e.lvaluePath(n.Target) + ", (" + e.expr(n.Index) + " as u64)))"
	case *ast.FieldLValue:
		return e.lvaluePath(n.Target) + "." + n.Field
	default:
		return "/* lvalue */"
	}
}

func (e *moveEmitter) expr(ex ast.Expr) string {
	switch n := ex.(type) {
	case *ast.IntLiteral:
		return fmt.Sprintf("%d", n.Value)
	case *ast.BoolLiteral:
		return fmt.Sprintf("%t", n.Value)
	case *ast.StringLiteral:
		return fmt.Sprintf("b%q", n.Value)
	case *ast.AddressLiteral:
		return "@" + n.Value
	case *ast.IdentExpr:
		if e.state[n.Name] {
			return "state." + n.Name
		}
		return n.Name
	case *ast.BinaryExpr:
		if n.Op == ast.OpPow {
			return "math128::pow(" + e.expr(n.Left) + ", " + e.expr(n.Right) + ")"
		}
		return "(" + e.expr(n.Left) + " " + n.Op.String() + " " + e.expr(n.Right) + ")"
	case *ast.UnaryExpr:
		return n.Op.String() + e.expr(n.Operand)
	case *ast.TernaryExpr:
		return fmt.Sprintf("(if (%s) { %s } else { %s })", e.expr(n.Cond), e.expr(n.Then), e.expr(n.Else))
	case *ast.CallExpr:
		return n.Callee + "(" + e.exprList(n.Args) + ")"
	case *ast.MethodCallExpr:
		return e.expr(n.Receiver) + "." + n.Method + "(" + e.exprList(n.Args) + ")"
	case *ast.IndexExpr:
		return "*vector::borrow(&" + e.expr(n.Target) + ", (" + e.expr(n.Index) + " as u64))"
	case *ast.FieldExpr:
		return e.expr(n.Target) + "." + n.Field
	case *ast.ArrayLiteral:
		return "vector[" + e.exprList(n.Elements) + "]"
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
			if _, ctxType := e.policy.contextParam(); ctxType == "&mut TxContext" {
				return "tx_context::sender(ctx)"
			}
			return "signer::address_of(account)"
		case ast.EnvMsgValue:
			return "0" // Move has no implicit native-coin attachment on a call
		case ast.EnvBlockNumber:
			return "0" // no block-height oracle in the Move stdlib surface used here
		default:
			return "timestamp::now_seconds()"
		}
	default:
		return "/* expr */"
	}
}

func (e *moveEmitter) exprList(in []ast.Expr) string {
	parts := make([]string, len(in))
	for i, a := range in {
		parts[i] = e.expr(a)
	}
	return strings.Join(parts, ", ")
}
