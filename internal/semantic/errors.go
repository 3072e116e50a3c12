package semantic

import (
	"ccdsl/internal/ast"
	cerr "ccdsl/internal/errors"
)

// FindingKind names one error kind from the collected taxonomy; Finding is
// the analyzer-internal shape before it's rendered into a CompilerError.
type FindingKind int

const (
	KindDuplicateDeclaration FindingKind = iota
	KindUndefinedIdentifier
	KindTypeMismatch
	KindArityMismatch
	KindNonBooleanCondition
	KindImmutableAssignment
	KindIndexTypeError
	KindFieldOnNonStruct
	KindUnknownField
	KindUnknownEvent
	KindMissingReturn
	KindReturnInVoid
)

type Finding struct {
	Kind       FindingKind
	Pos        ast.Position
	Message    string
	Suggestion string
}

func (f *Finding) toCompilerError() *cerr.CompilerError {
	code := findingCode(f.Kind)
	ce := &cerr.CompilerError{Level: cerr.LevelError, Code: code, Message: f.Message, Position: f.Pos}
	if f.Suggestion != "" {
		ce.Suggestions = []cerr.Suggestion{{Message: "did you mean `" + f.Suggestion + "`?", Replacement: f.Suggestion}}
	}
	return ce
}

func findingCode(k FindingKind) cerr.Code {
	switch k {
	case KindDuplicateDeclaration:
		return cerr.ErrDuplicateBinding
	case KindUndefinedIdentifier:
		return cerr.ErrUndefinedVariable
	case KindTypeMismatch:
		return cerr.ErrTypeMismatch
	case KindArityMismatch:
		return cerr.ErrArityMismatch
	case KindNonBooleanCondition:
		return cerr.ErrInvalidOperandType
	case KindImmutableAssignment:
		return cerr.ErrImmutableAssign
	case KindIndexTypeError:
		return cerr.ErrInvalidOperandType
	case KindFieldOnNonStruct:
		return cerr.ErrFieldNotFound
	case KindUnknownField:
		return cerr.ErrFieldNotFound
	case KindUnknownEvent:
		return cerr.ErrUndefinedFunction
	case KindMissingReturn:
		return cerr.ErrMissingReturn
	case KindReturnInVoid:
		return cerr.ErrTypeMismatch
	default:
		return cerr.ErrTypeMismatch
	}
}

// ToCompilerErrors renders a batch of findings for the CLI's error reporter.
func ToCompilerErrors(findings []*Finding) []*cerr.CompilerError {
	out := make([]*cerr.CompilerError, len(findings))
	for i, f := range findings {
		out[i] = f.toCompilerError()
	}
	return out
}
