package codegen

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ccdsl/internal/ast"
	"ccdsl/internal/optimizer"
	"ccdsl/internal/parser"
)

const sampleSource = `contract Token {
    state mut balance: u64 = 0;
    state owner: address;

    event Transfer(indexed from: address, indexed to: address, amount: u64);

    public fn mint(to: address, amount: u64) {
        require(amount > 0);
        balance = balance + amount;
        emit Transfer(owner, to, amount);
    }

    public fn get_balance(): u64 {
        return balance;
    }
}`

func sampleContract(t *testing.T) *ast.Contract {
	t.Helper()
	program, err := parser.Parse("sample.ccdsl", sampleSource)
	require.Nil(t, err)
	require.Len(t, program.Contracts, 1)
	c := program.Contracts[0]
	optimizer.DefaultPipeline().Run(c)
	return c
}

func TestEmitSolanaProducesExpectedScaffolding(t *testing.T) {
	src, err := EmitSolana(sampleContract(t), Options{})
	require.NoError(t, err)
	assert.Contains(t, src, "declare_id!(\""+solanaProgramID+"\")")
	assert.Contains(t, src, "#[program]")
	assert.Contains(t, src, "pub struct State {")
	assert.Contains(t, src, "pub enum ErrorCode {")
	assert.Contains(t, src, "ctx.accounts.state.balance")
}

func TestEmitMoveAptosProducesEntryFunctions(t *testing.T) {
	src, err := EmitMove(sampleContract(t), aptosPolicy{}, Options{})
	require.NoError(t, err)
	assert.Contains(t, src, "module cross_chain::token")
	assert.Contains(t, src, "struct State has key")
	assert.Contains(t, src, "public entry fun mint")
	assert.Contains(t, src, "acquires State")
}

func TestEmitMoveSuiUsesTxContext(t *testing.T) {
	src, err := EmitMove(sampleContract(t), suiPolicy{}, Options{})
	require.NoError(t, err)
	assert.Contains(t, src, "id: UID")
	assert.Contains(t, src, "ctx: &mut TxContext")
	assert.Contains(t, src, "transfer::share_object(state)")
}

func TestDispatchWritesAllTargets(t *testing.T) {
	dir := t.TempDir()
	targets, ok := ParseTarget("all")
	require.True(t, ok)

	results := Dispatch(sampleContract(t), targets, dir, Options{})
	require.Len(t, results, 3)
	for _, r := range results {
		assert.NoError(t, r.Err)
		require.Len(t, r.Files, 1)
		_, err := os.Stat(r.Files[0])
		assert.NoError(t, err)
	}
	assert.FileExists(t, filepath.Join(dir, "solana", "lib.rs"))
	assert.FileExists(t, filepath.Join(dir, "aptos", "Token.move"))
	assert.FileExists(t, filepath.Join(dir, "sui", "Token.move"))
}

func TestEmitSolanaDeterministicAcrossRuns(t *testing.T) {
	c := sampleContract(t)
	first, err := EmitSolana(c, Options{})
	require.NoError(t, err)
	second, err := EmitSolana(c, Options{})
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestParseTargetUnknown(t *testing.T) {
	_, ok := ParseTarget("cosmos")
	assert.False(t, ok)
}

func TestStrictSignedIntsRejectsSignedSignature(t *testing.T) {
	program, err := parser.Parse("signed.ccdsl", `contract Signed {
        public fn f(x: i32): i32 {
            return x;
        }
    }`)
	require.Nil(t, err)
	c := program.Contracts[0]
	optimizer.DefaultPipeline().Run(c)

	_, emitErr := EmitMove(c, aptosPolicy{}, Options{StrictSignedInts: true})
	require.Error(t, emitErr)
}
