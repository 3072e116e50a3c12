package semantic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ccdsl/internal/parser"
)

func analyzeSource(t *testing.T, source string) []*Finding {
	t.Helper()
	program, perr := parser.Parse("test.ccdsl", source)
	require.Nil(t, perr)
	require.Len(t, program.Contracts, 1)
	a := NewAnalyzer()
	return a.Analyze(program.Contracts[0])
}

func TestAnalyzeHappyPathToken(t *testing.T) {
	findings := analyzeSource(t, `contract Token {
        state mut balance: u64 = 0;

        public fn mint(amount: u64) {
            require(amount > 0);
            balance = balance + amount;
        }

        public fn get_balance(): u64 {
            return balance;
        }
    }`)
	assert.Empty(t, findings)
}

func TestAnalyzeTypeMismatch(t *testing.T) {
	findings := analyzeSource(t, `contract Bad {
        public fn f(): u64 {
            let a: bool = 10;
            return a;
        }
    }`)
	require.NotEmpty(t, findings)
	found := false
	for _, f := range findings {
		if f.Kind == KindTypeMismatch {
			found = true
		}
	}
	assert.True(t, found, "expected a type mismatch finding")
}

func TestAnalyzeUndefinedIdentifier(t *testing.T) {
	findings := analyzeSource(t, `contract Bad {
        public fn f(): u64 {
            return missing;
        }
    }`)
	require.NotEmpty(t, findings)
	assert.Equal(t, KindUndefinedIdentifier, findings[0].Kind)
}

func TestAnalyzeArityMismatch(t *testing.T) {
	findings := analyzeSource(t, `contract Bad {
        public fn helper(a: u64, b: u64): u64 {
            return a + b;
        }

        public fn f(): u64 {
            return helper(1);
        }
    }`)
	require.NotEmpty(t, findings)
	found := false
	for _, f := range findings {
		if f.Kind == KindArityMismatch {
			found = true
		}
	}
	assert.True(t, found, "expected an arity mismatch finding")
}

func TestAnalyzeMissingReturnWithoutElse(t *testing.T) {
	findings := analyzeSource(t, `contract Bad {
        public fn f(x: u64): u64 {
            if x > 0 {
                return x;
            }
        }
    }`)
	require.NotEmpty(t, findings)
	found := false
	for _, f := range findings {
		if f.Kind == KindMissingReturn {
			found = true
		}
	}
	assert.True(t, found, "expected a missing-return finding")
}

func TestAnalyzeReturnPathWithElseSucceeds(t *testing.T) {
	findings := analyzeSource(t, `contract Good {
        public fn f(x: u64): u64 {
            if x > 0 {
                return x;
            } else {
                return 0;
            }
        }
    }`)
	assert.Empty(t, findings)
}

func TestAnalyzeImmutableAssignment(t *testing.T) {
	findings := analyzeSource(t, `contract Bad {
        public fn f(x: u64) {
            x = 1;
        }
    }`)
	require.NotEmpty(t, findings)
	found := false
	for _, f := range findings {
		if f.Kind == KindImmutableAssignment {
			found = true
		}
	}
	assert.True(t, found, "expected an immutable-assignment finding")
}

func TestAnalyzeScopeHygiene(t *testing.T) {
	findings := analyzeSource(t, `contract Scoped {
        public fn f(): u64 {
            if true {
                let a = 1;
            }
            return a;
        }
    }`)
	require.NotEmpty(t, findings)
	assert.Equal(t, KindUndefinedIdentifier, findings[0].Kind)
}
