package optimizer

import "ccdsl/internal/ast"

// FoldPass performs constant folding, algebraic identity simplification,
// constant propagation and dead-statement elimination in a single bottom-up
// walk of a function body, mirroring the combined traversal of the
// reference optimizer (Optimizer::optimize_statement/optimize_expression):
// folding and propagation happen together because propagating a constant
// into an expression immediately creates new folding opportunities.
//
// The per-function constant environment (variable name -> known literal) is
// a plain map threaded through the walk; entering a nested block clones it
// so writes inside If/While/For bodies never leak back into the enclosing
// scope, and once a nested block exits the enclosing environment is dropped,
// since the block may have reassigned any variable. Loop conditions, posts
// and bodies start with no known constants, because one iteration may read
// what an earlier one wrote.
type FoldPass struct{}

func (FoldPass) Name() string { return "constant-fold" }
func (FoldPass) Description() string {
	return "constant folding, algebraic simplification, constant propagation and dead-code elimination"
}

func (FoldPass) Apply(fn *ast.Function, stats *Stats) {
	env := map[string]ast.Expr{}
	fn.Body = optimizeBlock(fn.Body, env, stats)
}

func optimizeBlock(b *ast.Block, env map[string]ast.Expr, stats *Stats) *ast.Block {
	local := cloneEnv(env)
	out := make([]ast.Stmt, 0, len(b.Stmts))
	for _, s := range b.Stmts {
		ns, keep := optimizeStmt(s, local, stats)
		if keep {
			out = append(out, ns)
		} else {
			stats.DeadCodeRemoved++
		}
		switch s.(type) {
		case *ast.IfStmt, *ast.WhileStmt, *ast.ForStmt, *ast.ForEachStmt, *ast.Block:
			clear(local)
		}
	}
	return ast.NewBlock(b.NodePos(), b.NodeEndPos(), out)
}

func cloneEnv(env map[string]ast.Expr) map[string]ast.Expr {
	out := make(map[string]ast.Expr, len(env))
	for k, v := range env {
		out[k] = v
	}
	return out
}

// optimizeStmt returns the rewritten statement and whether it should be kept
// in the output. false means the statement was dead and was dropped.
func optimizeStmt(s ast.Stmt, env map[string]ast.Expr, stats *Stats) (ast.Stmt, bool) {
	switch n := s.(type) {
	case *ast.LetStmt:
		value := optimizeExpr(n.Value, env, stats)
		if isConstant(value) {
			env[n.Name] = value
		} else {
			delete(env, n.Name)
		}
		return ast.NewLetStmt(n.NodePos(), n.NodeEndPos(), n.Name, n.Type, n.Mutable, value), true

	case *ast.AssignStmt:
		value := optimizeExpr(n.Value, env, stats)
		target := optimizeLValue(n.Target, env, stats)
		if id, ok := n.Target.(*ast.IdentLValue); ok {
			if isConstant(value) {
				env[id.Name] = value
			} else {
				delete(env, id.Name)
			}
		}
		return ast.NewAssignStmt(n.NodePos(), n.NodeEndPos(), target, value), true

	case *ast.IfStmt:
		cond := optimizeExpr(n.Cond, env, stats)
		if lit, ok := cond.(*ast.BoolLiteral); ok {
			if lit.Value {
				if n.Else != nil {
					stats.DeadCodeRemoved += elseLen(n.Else)
				}
				return optimizeBlock(n.Then, env, stats), true
			}
			stats.DeadCodeRemoved += len(n.Then.Stmts)
			if n.Else == nil {
				return nil, false
			}
			return optimizeElseStmt(n.Else, env, stats), true
		}
		then := optimizeBlock(n.Then, env, stats)
		var els ast.Stmt
		if n.Else != nil {
			els = optimizeElseStmt(n.Else, env, stats)
		}
		return ast.NewIfStmt(n.NodePos(), n.NodeEndPos(), cond, then, els), true

	case *ast.WhileStmt:
		clear(env)
		cond := optimizeExpr(n.Cond, env, stats)
		body := optimizeBlock(n.Body, cloneEnv(env), stats)
		return ast.NewWhileStmt(n.NodePos(), n.NodeEndPos(), cond, body), true

	case *ast.ForStmt:
		loopEnv := cloneEnv(env)
		var init ast.Stmt
		if n.Init != nil {
			init, _ = optimizeStmt(n.Init, loopEnv, stats)
		}
		clear(loopEnv)
		var cond ast.Expr
		if n.Cond != nil {
			cond = optimizeExpr(n.Cond, loopEnv, stats)
		}
		var post ast.Stmt
		if n.Post != nil {
			post, _ = optimizeStmt(n.Post, loopEnv, stats)
		}
		body := optimizeBlock(n.Body, cloneEnv(loopEnv), stats)
		return ast.NewForStmt(n.NodePos(), n.NodeEndPos(), init, cond, post, body), true

	case *ast.ForEachStmt:
		iter := optimizeExpr(n.Iter, env, stats)
		clear(env)
		body := optimizeBlock(n.Body, cloneEnv(env), stats)
		return ast.NewForEachStmt(n.NodePos(), n.NodeEndPos(), n.VarName, iter, body), true

	case *ast.RequireStmt:
		cond := optimizeExpr(n.Cond, env, stats)
		if lit, ok := cond.(*ast.BoolLiteral); ok && lit.Value {
			return nil, false
		}
		var code ast.Expr
		if n.Code != nil {
			code = optimizeExpr(n.Code, env, stats)
		}
		return ast.NewRequireStmt(n.NodePos(), n.NodeEndPos(), cond, code), true

	case *ast.AssertStmt:
		args := optimizeExprSlice(n.Args, env, stats)
		return ast.NewAssertStmt(n.NodePos(), n.NodeEndPos(), args), true

	case *ast.EmitStmt:
		args := optimizeExprSlice(n.Args, env, stats)
		return ast.NewEmitStmt(n.NodePos(), n.NodeEndPos(), n.Event, args), true

	case *ast.ReturnStmt:
		if n.Value == nil {
			return n, true
		}
		value := optimizeExpr(n.Value, env, stats)
		return ast.NewReturnStmt(n.NodePos(), n.NodeEndPos(), value), true

	case *ast.ExprStmt:
		value := optimizeExpr(n.Expr, env, stats)
		if isNoOp(value) {
			return nil, false
		}
		return ast.NewExprStmt(n.NodePos(), n.NodeEndPos(), value), true

	case *ast.Block:
		return optimizeBlock(n, env, stats), true

	default:
		return s, true
	}
}

func optimizeElseStmt(s ast.Stmt, env map[string]ast.Expr, stats *Stats) ast.Stmt {
	switch n := s.(type) {
	case *ast.Block:
		return optimizeBlock(n, env, stats)
	case *ast.IfStmt:
		ns, keep := optimizeStmt(n, env, stats)
		if !keep {
			return nil
		}
		return ns
	default:
		return s
	}
}

func elseLen(s ast.Stmt) int {
	switch n := s.(type) {
	case *ast.Block:
		return len(n.Stmts)
	default:
		return 1
	}
}

func optimizeLValue(lv ast.LValue, env map[string]ast.Expr, stats *Stats) ast.LValue {
	switch n := lv.(type) {
	case *ast.IdentLValue:
		return n
	case *ast.IndexLValue:
		target := optimizeLValue(n.Target, env, stats)
		index := optimizeExpr(n.Index, env, stats)
		return ast.NewIndexLValue(n.NodePos(), n.NodeEndPos(), target, index)
	case *ast.FieldLValue:
		target := optimizeLValue(n.Target, env, stats)
		return ast.NewFieldLValue(n.NodePos(), n.NodeEndPos(), target, n.Field)
	default:
		return lv
	}
}

func optimizeExprSlice(in []ast.Expr, env map[string]ast.Expr, stats *Stats) []ast.Expr {
	if in == nil {
		return nil
	}
	out := make([]ast.Expr, len(in))
	for i, e := range in {
		out[i] = optimizeExpr(e, env, stats)
	}
	return out
}

func optimizeExpr(e ast.Expr, env map[string]ast.Expr, stats *Stats) ast.Expr {
	switch n := e.(type) {
	case *ast.IdentExpr:
		if c, ok := env[n.Name]; ok {
			stats.ExpressionsSimplified++
			return ast.CloneExpr(c)
		}
		return n

	case *ast.BinaryExpr:
		left := optimizeExpr(n.Left, env, stats)
		right := optimizeExpr(n.Right, env, stats)
		if folded, ok := foldBinary(n.Op, left, right); ok {
			stats.ConstantsFolded++
			return folded
		}
		if simplified, ok := simplifyBinary(n.Op, left, right); ok {
			stats.ExpressionsSimplified++
			return simplified
		}
		return ast.NewBinaryExpr(n.NodePos(), n.NodeEndPos(), n.Op, left, right)

	case *ast.UnaryExpr:
		operand := optimizeExpr(n.Operand, env, stats)
		if folded, ok := foldUnary(n.Op, operand); ok {
			stats.ConstantsFolded++
			return folded
		}
		return ast.NewUnaryExpr(n.NodePos(), n.NodeEndPos(), n.Op, operand)

	case *ast.TernaryExpr:
		cond := optimizeExpr(n.Cond, env, stats)
		then := optimizeExpr(n.Then, env, stats)
		els := optimizeExpr(n.Else, env, stats)
		if lit, ok := cond.(*ast.BoolLiteral); ok {
			stats.ExpressionsSimplified++
			if lit.Value {
				return then
			}
			return els
		}
		return ast.NewTernaryExpr(n.NodePos(), n.NodeEndPos(), cond, then, els)

	case *ast.CallExpr:
		args := optimizeExprSlice(n.Args, env, stats)
		return ast.NewCallExpr(n.NodePos(), n.NodeEndPos(), n.Callee, args)

	case *ast.MethodCallExpr:
		receiver := optimizeExpr(n.Receiver, env, stats)
		args := optimizeExprSlice(n.Args, env, stats)
		return ast.NewMethodCallExpr(n.NodePos(), n.NodeEndPos(), receiver, n.Method, args)

	case *ast.IndexExpr:
		target := optimizeExpr(n.Target, env, stats)
		index := optimizeExpr(n.Index, env, stats)
		return ast.NewIndexExpr(n.NodePos(), n.NodeEndPos(), target, index)

	case *ast.FieldExpr:
		target := optimizeExpr(n.Target, env, stats)
		return ast.NewFieldExpr(n.NodePos(), n.NodeEndPos(), target, n.Field)

	case *ast.ArrayLiteral:
		elements := optimizeExprSlice(n.Elements, env, stats)
		return ast.NewArrayLiteral(n.NodePos(), n.NodeEndPos(), elements)

	case *ast.TupleLiteral:
		elements := optimizeExprSlice(n.Elements, env, stats)
		return ast.NewTupleLiteral(n.NodePos(), n.NodeEndPos(), elements)

	case *ast.StructLiteralExpr:
		fields := make([]*ast.StructLiteralField, len(n.Fields))
		for i, f := range n.Fields {
			fields[i] = ast.NewStructLiteralField(f.NodePos(), f.NodeEndPos(), f.Name, optimizeExpr(f.Value, env, stats))
		}
		return ast.NewStructLiteralExpr(n.NodePos(), n.NodeEndPos(), n.StructName, fields)

	case *ast.LambdaExpr:
		inner := cloneEnv(env)
		for _, p := range n.Params {
			delete(inner, p.Name)
		}
		body := optimizeExpr(n.Body, inner, stats)
		return ast.NewLambdaExpr(n.NodePos(), n.NodeEndPos(), n.Params, body)

	default:
		return e
	}
}

func isConstant(e ast.Expr) bool {
	switch e.(type) {
	case *ast.IntLiteral, *ast.BoolLiteral, *ast.StringLiteral:
		return true
	default:
		return false
	}
}

// isNoOp reports whether a standalone expression statement has no observable
// effect and can be dropped, mirroring the reference optimizer's
// is_no_op (a bare literal used as a statement).
func isNoOp(e ast.Expr) bool {
	return isConstant(e)
}
