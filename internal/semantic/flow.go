package semantic

import "ccdsl/internal/ast"

// ReturnsOnAllPaths implements the return-path check (§4.2.4): a recursive
// check over a block's statement list returning true iff every acyclic path
// through the block reaches a Return. Loop bodies never contribute, since a
// loop may execute zero times.
func ReturnsOnAllPaths(b *ast.Block) bool {
	for _, s := range b.Stmts {
		if stmtReturns(s) {
			return true
		}
	}
	return false
}

func stmtReturns(s ast.Stmt) bool {
	switch n := s.(type) {
	case *ast.ReturnStmt:
		return true
	case *ast.IfStmt:
		if n.Else == nil {
			return false
		}
		thenReturns := ReturnsOnAllPaths(n.Then)
		var elseReturns bool
		switch e := n.Else.(type) {
		case *ast.Block:
			elseReturns = ReturnsOnAllPaths(e)
		case *ast.IfStmt:
			elseReturns = stmtReturns(e)
		}
		return thenReturns && elseReturns
	case *ast.Block:
		return ReturnsOnAllPaths(n)
	default:
		return false
	}
}
