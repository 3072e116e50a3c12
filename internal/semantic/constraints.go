package semantic

import "ccdsl/internal/ast"

type ConstraintKind int

const (
	CEqual ConstraintKind = iota
	CSubtype
)

// Constraint is one obligation generated while walking a function body;
// the solve pass (§4.2.2 step 4) checks every constraint collected across
// every function after all functions have been locally checked.
type Constraint struct {
	Kind    ConstraintKind
	A, B    *ast.Type
	Pos     ast.Position
	Context string
}

// Solve checks every constraint and returns one TypeMismatch-shaped error
// per failing constraint; it never stops early.
func Solve(constraints []Constraint) []*Finding {
	var out []*Finding
	for _, c := range constraints {
		switch c.Kind {
		case CEqual:
			if !c.A.Equal(c.B) {
				out = append(out, &Finding{
					Kind: KindTypeMismatch, Pos: c.Pos,
					Message: "type mismatch in " + c.Context + ": expected " + c.A.String() + ", found " + c.B.String(),
				})
			}
		case CSubtype:
			if !subtypeOK(c.A, c.B) {
				out = append(out, &Finding{
					Kind: KindTypeMismatch, Pos: c.Pos,
					Message: "type mismatch in " + c.Context + ": " + c.A.String() + " cannot widen to " + c.B.String(),
				})
			}
		}
	}
	return out
}

// subtypeOK implements Subtype(s, t): s reachable from t through the integer
// widening lattice, or s == t, per the solver semantics.
func subtypeOK(s, t *ast.Type) bool {
	if s.Kind == ast.TUnknown || t.Kind == ast.TUnknown {
		return true
	}
	if s.Equal(t) {
		return true
	}
	return s.CanWidenTo(t)
}
