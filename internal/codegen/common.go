package codegen

import "ccdsl/internal/ast"

// stateNames collects the set of a contract's state variable names, used by
// both emitters to decide whether an identifier reference must be routed
// through the target's state-storage accessor instead of emitted bare.
func stateNames(c *ast.Contract) map[string]bool {
	out := make(map[string]bool, len(c.State))
	for _, sv := range c.State {
		out[sv.Name] = true
	}
	return out
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	b := []byte(s)
	if b[0] >= 'a' && b[0] <= 'z' {
		b[0] -= 'a' - 'A'
	}
	return string(b)
}
