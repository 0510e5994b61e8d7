package driver

import (
	"errors"

	"ldc/internal/diag"
	"ldc/internal/sema"
	"ldc/internal/source"
	"ldc/internal/symbols"
)

type CheckResult struct {
	Parse *ParseResult
	// Table holds the scopes and the populated struct/enum registry of the
	// run; valid even when the check failed part-way.
	Table *symbols.Table
	Bag   *diag.Bag
}

// Check runs the full single-file pipeline: load, parse, typecheck. The
// check is skipped when parsing already produced errors.
func Check(path string, maxDiagnostics int) (*CheckResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	return checkLoaded(fs, fileID, maxDiagnostics)
}

func checkLoaded(fs *source.FileSet, fileID source.FileID, maxDiagnostics int) (*CheckResult, error) {
	parsed, err := parseLoaded(fs, fileID, maxDiagnostics)
	if err != nil {
		return nil, err
	}

	checker := sema.NewChecker(parsed.Builder, parsed.Types, nil)
	result := &CheckResult{
		Parse: parsed,
		Table: checker.Table(),
		Bag:   parsed.Bag,
	}
	if parsed.Bag.HasErrors() {
		return result, nil
	}

	if err := checker.CheckFile(parsed.FileID); err != nil {
		reportSemaError(parsed.Bag, err)
	}
	return result, nil
}

// reportSemaError maps the typed checker error onto its diagnostic code.
func reportSemaError(bag *diag.Bag, err error) {
	code := diag.UnknownCode
	primary := source.Span{}

	var invalidType *sema.InvalidTypeError
	var invalidArgs *sema.InvalidArgumentsError
	var unresolved *sema.UnresolvedIdentifierError
	switch {
	case errors.As(err, &invalidType):
		code = diag.SemaInvalidType
		primary = invalidType.Primary()
	case errors.As(err, &invalidArgs):
		code = diag.SemaInvalidArguments
		primary = invalidArgs.Primary()
	case errors.As(err, &unresolved):
		code = diag.SemaUnresolvedIdentifier
		primary = unresolved.Primary()
	}

	bag.Add(diag.Diagnostic{
		Severity: diag.SevError,
		Code:     code,
		Message:  err.Error(),
		Primary:  primary,
	})
}
