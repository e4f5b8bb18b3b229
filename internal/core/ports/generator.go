package ports

import "github.com/uibind/uibind/internal/core/domain"

// BindingOptions parameterize binding generation and linkage emission.
type BindingOptions struct {
	// Package is the name of the generated Go package.
	Package string
	// OutDir is the directory generated files are written to.
	OutDir string
	// Target selects the platform header set and file suffixes.
	Target domain.Target
	// IncludeDirs become -I entries in the generated cgo preamble.
	IncludeDirs []string
}

// BindingGenerator extracts the C declaration surface and renders it as Go.
//
//go:generate mockgen -source=generator.go -destination=mocks/mock_generator.go -package=mocks
type BindingGenerator interface {
	// Parse scans ui.h and the target's platform header under headerDir
	// and returns the allow-listed declaration set. Parsing is
	// deterministic and aborts on input it cannot understand, naming
	// file and line.
	Parse(headerDir string, target domain.Target) (*domain.DeclSet, error)

	// Render produces the generated bindings source for a declaration
	// set. Identical input yields byte-identical output.
	Render(decls *domain.DeclSet, opts BindingOptions) ([]byte, error)

	// Write renders the bindings and writes them into the output
	// package, returning the written path.
	Write(decls *domain.DeclSet, opts BindingOptions) (string, error)
}
