package main

import (
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"ccdsl/internal/ast"
	"ccdsl/internal/codegen"
	cerr "ccdsl/internal/errors"
	"ccdsl/internal/optimizer"
	"ccdsl/internal/parser"
	"ccdsl/internal/semantic"
)

// Exit codes per the CLI contract: 0 success, 1 parse error, 2 semantic
// error, 3 I/O error, 4 unknown target.
const (
	exitOK             = 0
	exitParseError     = 1
	exitSemanticError  = 2
	exitIOError        = 3
	exitUnknownTarget  = 4
)

func main() {
	root := &cobra.Command{
		Use:           "ccdsl",
		Short:         "Multi-backend compiler for the cross-chain contract DSL",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newCompileCmd(), newValidateCmd(), newExampleCmd())

	if err := root.Execute(); err != nil {
		color.Red("error: %s", err)
		os.Exit(exitIOError)
	}
}

func newCompileCmd() *cobra.Command {
	var input, target, output string
	cmd := &cobra.Command{
		Use:   "compile",
		Short: "Compile a .ccdsl source file to one or more backend targets",
		RunE: func(cmd *cobra.Command, args []string) error {
			targets, ok := codegen.ParseTarget(target)
			if !ok {
				color.Red("unknown target %q (want solana, aptos, sui, or all)", target)
				os.Exit(exitUnknownTarget)
			}
			program, source := mustParse(input)
			for _, contract := range program.Contracts {
				if code := runSemantic(input, source, contract); code != exitOK {
					os.Exit(code)
				}
				stats := optimizer.DefaultPipeline().Run(contract)
				color.Cyan(
					"optimized %s: %d dead statement(s) removed, %d constant(s) folded, %d expression(s) simplified",
					contract.Name.Value, stats.DeadCodeRemoved, stats.ConstantsFolded, stats.ExpressionsSimplified,
				)
				outDir := output
				if len(program.Contracts) > 1 {
					outDir = filepath.Join(output, contract.Name.Value)
				}
				results := codegen.Dispatch(contract, targets, outDir, codegen.Options{})
				for _, r := range results {
					if r.Err != nil {
						color.Red("%s: %s", r.Target, r.Err)
						os.Exit(exitIOError)
					}
					for _, f := range r.Files {
						color.Green("wrote %s", f)
					}
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&input, "input", "", "path to a .ccdsl source file")
	cmd.Flags().StringVar(&target, "target", "all", "solana, aptos, sui, or all")
	cmd.Flags().StringVar(&output, "output", "out", "output directory")
	cmd.MarkFlagRequired("input")
	return cmd
}

func newValidateCmd() *cobra.Command {
	var input string
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Parse and semantically check a .ccdsl source file without emitting code",
		RunE: func(cmd *cobra.Command, args []string) error {
			program, source := mustParse(input)
			for _, contract := range program.Contracts {
				if code := runSemantic(input, source, contract); code != exitOK {
					os.Exit(code)
				}
			}
			color.Green("✅ %s is valid", input)
			return nil
		},
	}
	cmd.Flags().StringVar(&input, "input", "", "path to a .ccdsl source file")
	cmd.MarkFlagRequired("input")
	return cmd
}

func newExampleCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "example",
		Short: "Write a canned example .ccdsl file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := os.WriteFile(output, []byte(exampleSource), 0o644); err != nil {
				color.Red("failed to write %s: %s", output, err)
				os.Exit(exitIOError)
			}
			color.Green("wrote %s", output)
			return nil
		},
	}
	cmd.Flags().StringVar(&output, "output", "example.ccdsl", "path to write the example to")
	return cmd
}

// mustParse reads and parses input, exiting with exitIOError or
// exitParseError on failure rather than returning, since every subcommand
// needs an AST before it can do anything useful.
func mustParse(input string) (*ast.Program, string) {
	source, err := os.ReadFile(input)
	if err != nil {
		color.Red("failed to read %s: %s", input, err)
		os.Exit(exitIOError)
	}
	program, perr := parser.Parse(input, string(source))
	if perr != nil {
		reporter := cerr.NewErrorReporter(input, string(source))
		reporter.Report(os.Stderr, []*cerr.CompilerError{{
			Level:    cerr.LevelError,
			Code:     cerr.ErrUnexpectedToken,
			Message:  perr.Message,
			Position: perr.Pos,
		}})
		os.Exit(exitParseError)
	}
	return program, string(source)
}

// runSemantic runs the analyzer over contract and reports any findings,
// returning the exit code the caller should use (exitOK if clean).
func runSemantic(input, source string, contract *ast.Contract) int {
	a := semantic.NewAnalyzer()
	findings := a.Analyze(contract)
	if len(findings) == 0 {
		return exitOK
	}
	reporter := cerr.NewErrorReporter(input, source)
	reporter.Report(os.Stderr, semantic.ToCompilerErrors(findings))
	return exitSemanticError
}
