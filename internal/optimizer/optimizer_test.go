package optimizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ccdsl/internal/ast"
	"ccdsl/internal/parser"
)

func parseFunction(t *testing.T, source string) *ast.Function {
	t.Helper()
	program, err := parser.Parse("test.ccdsl", source)
	require.Nil(t, err)
	require.Len(t, program.Contracts, 1)
	require.Len(t, program.Contracts[0].Functions, 1)
	return program.Contracts[0].Functions[0]
}

func TestFoldPassConstantArithmetic(t *testing.T) {
	fn := parseFunction(t, `contract C {
        public fn f(): u64 {
            let a = 10 + 20;
            let b = 100 - 50;
            let c = 5 * 10;
            let d = 100 / 2;
            return a + b + c + d;
        }
    }`)
	var stats Stats
	(&FoldPass{}).Apply(fn, &stats)

	require.Len(t, fn.Body.Stmts, 5)
	let0 := fn.Body.Stmts[0].(*ast.LetStmt)
	let1 := fn.Body.Stmts[1].(*ast.LetStmt)
	let2 := fn.Body.Stmts[2].(*ast.LetStmt)
	let3 := fn.Body.Stmts[3].(*ast.LetStmt)
	assert.Equal(t, uint64(30), let0.Value.(*ast.IntLiteral).Value)
	assert.Equal(t, uint64(50), let1.Value.(*ast.IntLiteral).Value)
	assert.Equal(t, uint64(50), let2.Value.(*ast.IntLiteral).Value)
	assert.Equal(t, uint64(50), let3.Value.(*ast.IntLiteral).Value)

	ret := fn.Body.Stmts[4].(*ast.ReturnStmt)
	num, ok := ret.Value.(*ast.IntLiteral)
	require.True(t, ok, "return expression should fold to a single literal")
	assert.Equal(t, uint64(180), num.Value)
}

func TestFoldPassDeadIfElimination(t *testing.T) {
	fn := parseFunction(t, `contract C {
        public fn f() {
            if true {
                let a = 10;
            } else {
                let b = 20;
            }
        }
    }`)
	var stats Stats
	(&FoldPass{}).Apply(fn, &stats)

	require.Len(t, fn.Body.Stmts, 1)
	block, ok := fn.Body.Stmts[0].(*ast.Block)
	require.True(t, ok, "constant-true if should collapse to its then-block")
	require.Len(t, block.Stmts, 1)
	assert.Equal(t, 1, stats.DeadCodeRemoved, "the dropped else-block counts as one dead statement")
}

func TestFoldPassDivByZeroNotFolded(t *testing.T) {
	fn := parseFunction(t, `contract C {
        public fn f(x: u64): u64 {
            return x / 0;
        }
    }`)
	var stats Stats
	(&FoldPass{}).Apply(fn, &stats)

	ret := fn.Body.Stmts[0].(*ast.ReturnStmt)
	_, isLiteral := ret.Value.(*ast.IntLiteral)
	assert.False(t, isLiteral, "division by a literal zero must not be folded")
}

func TestFoldPassIdempotent(t *testing.T) {
	fn := parseFunction(t, `contract C {
        public fn f(): u64 {
            let a = 1 + 2;
            if a == 3 {
                return a;
            } else {
                return 0;
            }
        }
    }`)
	var stats1 Stats
	(&FoldPass{}).Apply(fn, &stats1)
	before := fn.Body.String()

	var stats2 Stats
	(&FoldPass{}).Apply(fn, &stats2)
	after := fn.Body.String()

	assert.Equal(t, before, after, "optimizing an already-optimized function must be a no-op")
}

func TestFoldPassNoOpWithoutLiterals(t *testing.T) {
	fn := parseFunction(t, `contract C {
        public fn f(x: u64, y: u64): u64 {
            return x + y;
        }
    }`)
	var stats Stats
	(&FoldPass{}).Apply(fn, &stats)
	assert.Equal(t, 0, stats.DeadCodeRemoved)
	assert.Equal(t, 0, stats.ConstantsFolded)
}
