package optimizer

import "ccdsl/internal/ast"

// foldBinary evaluates a binary operator over two literal operands under
// wrapping arithmetic, matching Optimizer::fold_binary_op. Division and
// modulo by zero are left unfolded so the runtime error surfaces later,
// per the declared correctness envelope.
func foldBinary(op ast.BinaryOp, left, right ast.Expr) (ast.Expr, bool) {
	if li, lok := left.(*ast.IntLiteral); lok {
		if ri, rok := right.(*ast.IntLiteral); rok {
			return foldIntBinary(op, li, ri)
		}
	}
	if lb, lok := left.(*ast.BoolLiteral); lok {
		if rb, rok := right.(*ast.BoolLiteral); rok {
			return foldBoolBinary(op, lb, rb)
		}
	}
	return nil, false
}

func foldIntBinary(op ast.BinaryOp, l, r *ast.IntLiteral) (ast.Expr, bool) {
	mkInt := func(v uint64) ast.Expr { return ast.NewIntLiteral(l.NodePos(), r.NodeEndPos(), v) }
	mkBool := func(v bool) ast.Expr { return ast.NewBoolLiteral(l.NodePos(), r.NodeEndPos(), v) }
	switch op {
	case ast.OpAdd:
		return mkInt(l.Value + r.Value), true
	case ast.OpSub:
		return mkInt(l.Value - r.Value), true
	case ast.OpMul:
		return mkInt(l.Value * r.Value), true
	case ast.OpDiv:
		if r.Value == 0 {
			return nil, false
		}
		return mkInt(l.Value / r.Value), true
	case ast.OpMod:
		if r.Value == 0 {
			return nil, false
		}
		return mkInt(l.Value % r.Value), true
	case ast.OpEq:
		return mkBool(l.Value == r.Value), true
	case ast.OpNeq:
		return mkBool(l.Value != r.Value), true
	case ast.OpLt:
		return mkBool(l.Value < r.Value), true
	case ast.OpLte:
		return mkBool(l.Value <= r.Value), true
	case ast.OpGt:
		return mkBool(l.Value > r.Value), true
	case ast.OpGte:
		return mkBool(l.Value >= r.Value), true
	default:
		// Pow, shifts and bitwise ops are not folded here: Pow lowers to a
		// prelude call on resource-oriented targets rather than a native
		// operator, so leaving it as a tree keeps one codegen-time decision
		// instead of two.
		return nil, false
	}
}

func foldBoolBinary(op ast.BinaryOp, l, r *ast.BoolLiteral) (ast.Expr, bool) {
	mk := func(v bool) ast.Expr { return ast.NewBoolLiteral(l.NodePos(), r.NodeEndPos(), v) }
	switch op {
	case ast.OpAnd:
		return mk(l.Value && r.Value), true
	case ast.OpOr:
		return mk(l.Value || r.Value), true
	case ast.OpEq:
		return mk(l.Value == r.Value), true
	case ast.OpNeq:
		return mk(l.Value != r.Value), true
	default:
		return nil, false
	}
}

// foldUnary evaluates Not on a bool literal and Neg/BitNot on an int
// literal under the natural (64-bit) wrapping width.
func foldUnary(op ast.UnaryOp, operand ast.Expr) (ast.Expr, bool) {
	switch op {
	case ast.OpNot:
		if b, ok := operand.(*ast.BoolLiteral); ok {
			return ast.NewBoolLiteral(b.NodePos(), b.NodeEndPos(), !b.Value), true
		}
	case ast.OpNeg:
		if n, ok := operand.(*ast.IntLiteral); ok {
			return ast.NewIntLiteral(n.NodePos(), n.NodeEndPos(), (^n.Value)+1), true
		}
	case ast.OpBitNot:
		if n, ok := operand.(*ast.IntLiteral); ok {
			return ast.NewIntLiteral(n.NodePos(), n.NodeEndPos(), ^n.Value), true
		}
	}
	return nil, false
}

// simplifyBinary applies the algebraic identities (x+0, x*1, x&&true, ...)
// that hold regardless of what the non-literal operand is.
func simplifyBinary(op ast.BinaryOp, left, right ast.Expr) (ast.Expr, bool) {
	switch op {
	case ast.OpAdd:
		if isIntZero(right) {
			return left, true
		}
		if isIntZero(left) {
			return right, true
		}
	case ast.OpSub:
		if isIntZero(right) {
			return left, true
		}
	case ast.OpMul:
		if isIntOne(right) {
			return left, true
		}
		if isIntOne(left) {
			return right, true
		}
		if isIntZero(right) || isIntZero(left) {
			return ast.NewIntLiteral(left.NodePos(), right.NodeEndPos(), 0), true
		}
	case ast.OpDiv:
		if isIntOne(right) {
			return left, true
		}
	case ast.OpAnd:
		if isBool(right, true) {
			return left, true
		}
		if isBool(left, true) {
			return right, true
		}
		if isBool(right, false) || isBool(left, false) {
			return ast.NewBoolLiteral(left.NodePos(), right.NodeEndPos(), false), true
		}
	case ast.OpOr:
		if isBool(right, false) {
			return left, true
		}
		if isBool(left, false) {
			return right, true
		}
		if isBool(right, true) || isBool(left, true) {
			return ast.NewBoolLiteral(left.NodePos(), right.NodeEndPos(), true), true
		}
	}
	return nil, false
}

func isIntZero(e ast.Expr) bool {
	n, ok := e.(*ast.IntLiteral)
	return ok && n.Value == 0
}

func isIntOne(e ast.Expr) bool {
	n, ok := e.(*ast.IntLiteral)
	return ok && n.Value == 1
}

func isBool(e ast.Expr, v bool) bool {
	b, ok := e.(*ast.BoolLiteral)
	return ok && b.Value == v
}
