package semantic

import (
	"strconv"

	"ccdsl/internal/ast"
)

// inferExpr walks e, recording constraints for its subexpressions and
// returning e's type. Errors encountered along the way are recorded as
// findings and the unknown sentinel is returned so a single failure doesn't
// cascade into unrelated mismatches further up the expression tree.
func (a *Analyzer) inferExpr(e ast.Expr) *ast.Type {
	switch n := e.(type) {
	case *ast.IntLiteral:
		if n.Type != nil {
			return n.Type
		}
		return ast.U64()
	case *ast.BoolLiteral:
		return ast.BoolT()
	case *ast.StringLiteral:
		return ast.StringT()
	case *ast.AddressLiteral:
		return ast.AddressT()
	case *ast.IdentExpr:
		sym, ok := a.table.Lookup(n.Name)
		if !ok {
			a.addUndefined(n.Name, n.NodePos())
			return unknown()
		}
		sym.Used = true
		return sym.Type
	case *ast.BinaryExpr:
		return a.inferBinary(n)
	case *ast.UnaryExpr:
		return a.inferUnary(n)
	case *ast.TernaryExpr:
		condType := a.inferExpr(n.Cond)
		a.constraints = append(a.constraints, Constraint{Kind: CEqual, A: ast.BoolT(), B: condType, Pos: n.NodePos(), Context: "ternary condition"})
		thenType := a.inferExpr(n.Then)
		elseType := a.inferExpr(n.Else)
		a.constraints = append(a.constraints, Constraint{Kind: CEqual, A: thenType, B: elseType, Pos: n.NodePos(), Context: "ternary branches"})
		return thenType
	case *ast.CallExpr:
		return a.inferCall(n)
	case *ast.MethodCallExpr:
		a.inferExpr(n.Receiver)
		for _, arg := range n.Args {
			a.inferExpr(arg)
		}
		return unknown()
	case *ast.IndexExpr:
		return a.inferIndex(n)
	case *ast.FieldExpr:
		return a.inferField(n)
	case *ast.ArrayLiteral:
		return a.inferArray(n)
	case *ast.TupleLiteral:
		elems := make([]*ast.Type, len(n.Elements))
		for i, el := range n.Elements {
			elems[i] = a.inferExpr(el)
		}
		return ast.TupleT(elems...)
	case *ast.StructLiteralExpr:
		return a.inferStructLiteral(n)
	case *ast.LambdaExpr:
		a.table.Push()
		for _, p := range n.Params {
			a.table.Define(&Symbol{Name: p.Name, Kind: SymParameter, Type: p.Type, Mutable: p.Mutable, Pos: p.NodePos()})
		}
		bodyType := a.inferExpr(n.Body)
		a.table.Pop()
		return bodyType
	case *ast.EnvAccessor:
		switch n.Kind {
		case ast.EnvMsgSender:
			return ast.AddressT()
		default:
			return ast.U64()
		}
	}
	return unknown()
}

func (a *Analyzer) inferBinary(n *ast.BinaryExpr) *ast.Type {
	left := a.inferExpr(n.Left)
	right := a.inferExpr(n.Right)
	switch n.Op {
	case ast.OpAnd, ast.OpOr:
		a.constraints = append(a.constraints, Constraint{Kind: CEqual, A: ast.BoolT(), B: left, Pos: n.NodePos(), Context: "logical operand"})
		a.constraints = append(a.constraints, Constraint{Kind: CEqual, A: ast.BoolT(), B: right, Pos: n.NodePos(), Context: "logical operand"})
		return ast.BoolT()
	case ast.OpEq, ast.OpNeq:
		a.constraints = append(a.constraints, Constraint{Kind: CEqual, A: left, B: right, Pos: n.NodePos(), Context: "equality operands"})
		return ast.BoolT()
	case ast.OpLt, ast.OpLte, ast.OpGt, ast.OpGte:
		a.constraints = append(a.constraints, Constraint{Kind: CEqual, A: left, B: right, Pos: n.NodePos(), Context: "comparison operands"})
		return ast.BoolT()
	default:
		// Arithmetic and bitwise ops: both operands and the result share a type.
		a.constraints = append(a.constraints, Constraint{Kind: CEqual, A: left, B: right, Pos: n.NodePos(), Context: "arithmetic operands"})
		return left
	}
}

func (a *Analyzer) inferUnary(n *ast.UnaryExpr) *ast.Type {
	operand := a.inferExpr(n.Operand)
	if n.Op == ast.OpNot {
		a.constraints = append(a.constraints, Constraint{Kind: CEqual, A: ast.BoolT(), B: operand, Pos: n.NodePos(), Context: "logical not operand"})
		return ast.BoolT()
	}
	return operand
}

func (a *Analyzer) inferCall(n *ast.CallExpr) *ast.Type {
	argTypes := make([]*ast.Type, len(n.Args))
	for i, arg := range n.Args {
		argTypes[i] = a.inferExpr(arg)
	}
	sym, ok := a.table.Lookup(n.Callee)
	if !ok {
		a.addUndefined(n.Callee, n.NodePos())
		return unknown()
	}
	if sym.Kind != SymFunction {
		a.addFinding(KindTypeMismatch, n.NodePos(), "`"+n.Callee+"` is not callable")
		return unknown()
	}
	if len(sym.Params) != len(argTypes) {
		a.addFinding(KindArityMismatch, n.NodePos(), "function `"+n.Callee+"` expects "+strconv.Itoa(len(sym.Params))+" argument(s), found "+strconv.Itoa(len(argTypes)))
		return sym.Return
	}
	for i, pt := range sym.Params {
		a.constraints = append(a.constraints, Constraint{Kind: CEqual, A: pt, B: argTypes[i], Pos: n.NodePos(), Context: "call argument"})
	}
	if sym.Return == nil {
		return ast.VoidT()
	}
	return sym.Return
}

func (a *Analyzer) inferIndex(n *ast.IndexExpr) *ast.Type {
	targetType := a.inferExpr(n.Target)
	idxType := a.inferExpr(n.Index)
	switch targetType.Kind {
	case ast.TMap:
		a.constraints = append(a.constraints, Constraint{Kind: CEqual, A: targetType.Key, B: idxType, Pos: n.NodePos(), Context: "map index"})
		return targetType.Elem
	case ast.TVec, ast.TArray:
		a.constraints = append(a.constraints, Constraint{Kind: CSubtype, A: idxType, B: ast.U64(), Pos: n.NodePos(), Context: "index"})
		return targetType.Elem
	case ast.TUnknown:
		return unknown()
	default:
		a.addFinding(KindIndexTypeError, n.NodePos(), "cannot index into type "+targetType.String())
		return unknown()
	}
}

func (a *Analyzer) inferField(n *ast.FieldExpr) *ast.Type {
	targetType := a.inferExpr(n.Target)
	if targetType.Kind == ast.TUnknown {
		return unknown()
	}
	if targetType.Kind != ast.TStruct {
		a.addFinding(KindFieldOnNonStruct, n.NodePos(), "field access on non-struct type "+targetType.String())
		return unknown()
	}
	ft, found := a.fieldType(targetType.Name, n.Field)
	if !found {
		a.addFinding(KindUnknownField, n.NodePos(), "unknown field `"+n.Field+"` on struct `"+targetType.Name+"`")
		return unknown()
	}
	return ft
}

func (a *Analyzer) inferArray(n *ast.ArrayLiteral) *ast.Type {
	if len(n.Elements) == 0 {
		return ast.VecT(unknown())
	}
	first := a.inferExpr(n.Elements[0])
	for _, el := range n.Elements[1:] {
		t := a.inferExpr(el)
		a.constraints = append(a.constraints, Constraint{Kind: CEqual, A: first, B: t, Pos: n.NodePos(), Context: "array element"})
	}
	return ast.ArrayT(first, len(n.Elements))
}

func (a *Analyzer) inferStructLiteral(n *ast.StructLiteralExpr) *ast.Type {
	sym, ok := a.table.Lookup(n.StructName)
	if !ok || sym.Kind != SymStruct || sym.Struct == nil {
		a.addUndefined(n.StructName, n.NodePos())
		for _, f := range n.Fields {
			a.inferExpr(f.Value)
		}
		return unknown()
	}
	if len(n.Fields) != len(sym.Struct.Fields) {
		a.addFinding(KindArityMismatch, n.NodePos(), "struct literal `"+n.StructName+"` expects "+strconv.Itoa(len(sym.Struct.Fields))+" field(s), found "+strconv.Itoa(len(n.Fields)))
	}
	for _, lf := range n.Fields {
		valType := a.inferExpr(lf.Value)
		if lf.Name == "" {
			continue
		}
		ft, found := a.fieldType(n.StructName, lf.Name)
		if !found {
			a.addFinding(KindUnknownField, lf.NodePos(), "unknown field `"+lf.Name+"` on struct `"+n.StructName+"`")
			continue
		}
		a.constraints = append(a.constraints, Constraint{Kind: CEqual, A: ft, B: valType, Pos: lf.NodePos(), Context: "struct literal field `" + lf.Name + "`"})
	}
	return ast.StructT(n.StructName)
}

