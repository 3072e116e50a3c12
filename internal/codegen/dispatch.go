package codegen

import (
	"os"
	"path/filepath"

	"ccdsl/internal/ast"
)

// BackendResult is one target's outcome: the files it wrote, or the error
// that stopped it. A failing backend never prevents the others from
// running (§4.4/§7).
type BackendResult struct {
	Target Target
	Files  []string
	Err    error
}

// Dispatch emits contract for every selected target under outDir, per the
// §6 output layout (solana/lib.<ext>, aptos/<contract>.<ext>,
// sui/<contract>.<ext>). The dispatcher itself never returns early: one
// target's failure is recorded in its BackendResult and the rest proceed.
func Dispatch(contract *ast.Contract, targets []Target, outDir string, opts Options) []BackendResult {
	results := make([]BackendResult, 0, len(targets))
	for _, t := range targets {
		files, err := emitTarget(contract, t, outDir, opts)
		results = append(results, BackendResult{Target: t, Files: files, Err: err})
	}
	return results
}

func emitTarget(contract *ast.Contract, t Target, outDir string, opts Options) ([]string, error) {
	switch t {
	case TargetSolana:
		src, err := EmitSolana(contract, opts)
		if err != nil {
			return nil, err
		}
		return writeOne(outDir, "solana", "lib.rs", src)
	case TargetAptos:
		src, err := EmitMove(contract, aptosPolicy{}, opts)
		if err != nil {
			return nil, err
		}
		return writeOne(outDir, "aptos", contract.Name.Value+".move", src)
	case TargetSui:
		src, err := EmitMove(contract, suiPolicy{}, opts)
		if err != nil {
			return nil, err
		}
		return writeOne(outDir, "sui", contract.Name.Value+".move", src)
	default:
		return nil, &UnsupportedFeatureError{Target: t, Feature: "unknown target"}
	}
}

func writeOne(outDir, subdir, filename string, src string) ([]string, error) {
	dir := filepath.Join(outDir, subdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		return nil, err
	}
	return []string{path}, nil
}
