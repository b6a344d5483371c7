package driver

import (
	"fortio.org/safecast"

	"jsxstream/internal/ast"
	"jsxstream/internal/diag"
	"jsxstream/internal/parser"
	"jsxstream/internal/source"
)

type ParseResult struct {
	FileSet *source.FileSet
	File    *source.File
	Program *ast.Program // nil после синтаксической ошибки
	Bag     *diag.Bag
}

// Parse parses the file at path; TypeScript syntax is enabled by its
// extension.
func Parse(filePath string, maxDiagnostics int) (*ParseResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(filePath)
	if err != nil {
		return nil, &ResourceError{Op: "read", Path: filePath, Err: err}
	}
	file := fs.Get(fileID)

	maxErrors, err := safecast.Conv[uint](max(maxDiagnostics, 0))
	if err != nil {
		return nil, err
	}

	bag := diag.NewBag(maxDiagnostics)
	result := parser.ParseFile(file, parser.Options{
		TypeScript: isTypeScript(filePath),
		Reporter:   diag.BagReporter{Bag: bag},
		MaxErrors:  maxErrors,
	})

	return &ParseResult{
		FileSet: fs,
		File:    file,
		Program: result.Program,
		Bag:     bag,
	}, nil
}
