// Package optimizer implements the pure AST-to-AST rewriter: constant
// folding, algebraic simplification, constant propagation and dead-code
// elimination over a contract's function bodies.
package optimizer

import "ccdsl/internal/ast"

// Stats accumulates the observable counters across a pipeline run: dead
// statements removed, constants folded, expressions simplified.
type Stats struct {
	DeadCodeRemoved       int
	ConstantsFolded       int
	ExpressionsSimplified int
}

// Pass is one AST-to-AST rewrite stage, applied to one function body at a
// time. Implementations must be idempotent: running a pass twice in a row
// must leave the second run's output identical to the first.
type Pass interface {
	Name() string
	Description() string
	Apply(fn *ast.Function, stats *Stats)
}

// Pipeline runs a fixed ordered list of passes over every function in a
// contract, in order, accumulating one shared Stats.
type Pipeline struct {
	passes []Pass
}

func NewPipeline(passes ...Pass) *Pipeline {
	return &Pipeline{passes: passes}
}

// DefaultPipeline returns the standard pipeline: constant folding, algebraic
// simplification and propagation, and dead-code elimination, all performed
// in one bottom-up tree walk per function (see FoldPass).
func DefaultPipeline() *Pipeline {
	return NewPipeline(&FoldPass{})
}

// Run applies every pass, in order, to every function in contract and
// returns the accumulated statistics. The contract is mutated in place.
func (p *Pipeline) Run(contract *ast.Contract) Stats {
	var stats Stats
	for _, pass := range p.passes {
		for _, fn := range contract.Functions {
			pass.Apply(fn, &stats)
		}
	}
	return stats
}
