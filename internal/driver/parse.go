package driver

import (
	"fortio.org/safecast"

	"ldc/internal/ast"
	"ldc/internal/diag"
	"ldc/internal/lexer"
	"ldc/internal/parser"
	"ldc/internal/source"
	"ldc/internal/types"
)

type ParseResult struct {
	FileSet *source.FileSet
	File    *source.File
	Builder *ast.Builder
	Types   *types.Interner
	FileID  ast.FileID
	Bag     *diag.Bag
}

// Parse loads and parses one file.
func Parse(path string, maxDiagnostics int) (*ParseResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	return parseLoaded(fs, fileID, maxDiagnostics)
}

func parseLoaded(fs *source.FileSet, fileID source.FileID, maxDiagnostics int) (*ParseResult, error) {
	file := fs.Get(fileID)
	bag := diag.NewBag(maxDiagnostics)
	reporter := diag.BagReporter{Bag: bag}

	lx := lexer.New(file, lexer.Options{Reporter: reporter})
	builder := ast.NewBuilder(ast.Hints{})
	tin := types.NewInterner()

	maxErrors, err := safecast.Conv[uint](maxDiagnostics)
	if err != nil {
		return nil, err
	}
	result := parser.ParseFile(fs, lx, builder, tin, parser.Options{
		Reporter:  reporter,
		MaxErrors: maxErrors,
	})

	return &ParseResult{
		FileSet: fs,
		File:    file,
		Builder: builder,
		Types:   tin,
		FileID:  result.File,
		Bag:     bag,
	}, nil
}
