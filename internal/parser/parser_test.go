package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSimpleTokenContract(t *testing.T) {
	source := `contract Token {
    state mut balance: u64 = 0;

    public fn mint(amount: u64) {
        require(amount > 0);
        balance = balance + amount;
    }

    public fn get_balance(): u64 {
        return balance;
    }
}`
	program, err := Parse("token.ccdsl", source)
	require.Nil(t, err)
	require.Len(t, program.Contracts, 1)

	c := program.Contracts[0]
	assert.Equal(t, "Token", c.Name.Value)
	assert.Len(t, c.State, 1)
	assert.Equal(t, "balance", c.State[0].Name)
	assert.Len(t, c.Functions, 2)
	assert.Equal(t, "mint", c.Functions[0].Name)
	assert.Equal(t, "get_balance", c.Functions[1].Name)
}

func TestParseMissingSemicolonFailsFast(t *testing.T) {
	source := `contract Broken {
    public fn f() {
        let a = 1
    }
}`
	_, err := Parse("broken.ccdsl", source)
	require.NotNil(t, err)
	assert.Contains(t, err.Message, "';'")
}

func TestParseIfElseReturn(t *testing.T) {
	source := `contract Cond {
    public fn check(x: u64): u64 {
        if x > 0 {
            return x;
        } else {
            return 0;
        }
    }
}`
	program, err := Parse("cond.ccdsl", source)
	require.Nil(t, err)
	fn := program.Contracts[0].Functions[0]
	require.Len(t, fn.Body.Stmts, 1)
}
