// Package bindgen extracts the public C declaration surface of the native
// library and renders it as a cgo-backed Go package. Extraction is a pure
// text transformation: identical headers always produce identical bindings.
package bindgen

import (
	"bytes"
	"fmt"
	"go/format"
	"os"
	"path/filepath"

	"github.com/uibind/uibind/internal/core/domain"
	"github.com/uibind/uibind/internal/core/ports"
	"go.trai.ch/zerr"
)

// Generator implements ports.BindingGenerator over the header subset the
// public ui.h family actually uses.
type Generator struct {
	Logger ports.Logger
}

// NewGenerator creates a new Generator.
func NewGenerator(logger ports.Logger) *Generator {
	return &Generator{Logger: logger}
}

// Parse scans ui.h and the target's platform header under headerDir and
// returns everything the allowlist admits, in header order.
func (g *Generator) Parse(headerDir string, target domain.Target) (*domain.DeclSet, error) {
	decls := &domain.DeclSet{}
	structs := make(map[string]int)
	for _, name := range []string{"ui.h", target.PlatformHeader()} {
		if err := parseHeader(filepath.Join(headerDir, name), decls, structs); err != nil {
			return nil, err
		}
		decls.Headers = append(decls.Headers, name)
	}
	return decls, nil
}

// Render produces the generated bindings file for one target. The emitter
// writes gofmt-shaped source and go/format verifies it, so output is
// byte-identical across runs on the same declaration set.
func (g *Generator) Render(decls *domain.DeclSet, opts ports.BindingOptions) ([]byte, error) {
	e := newEmitter(decls)
	e.emit(decls)

	var out bytes.Buffer
	out.WriteString("// Code generated by uibind. DO NOT EDIT.\n\n")
	fmt.Fprintf(&out, "package %s\n\n", opts.Package)
	out.WriteString("/*\n")
	for _, dir := range opts.IncludeDirs {
		fmt.Fprintf(&out, "#cgo CFLAGS: -I%s\n", dir)
	}
	for _, include := range systemIncludes(opts.Target.OS) {
		fmt.Fprintf(&out, "#include %s\n", include)
	}
	for _, header := range decls.Headers {
		fmt.Fprintf(&out, "#include %q\n", header)
	}
	out.WriteString("*/\n")
	out.WriteString("import \"C\"\n")
	if e.unsafe {
		out.WriteString("\nimport \"unsafe\"\n")
	}
	out.Write(e.body.Bytes())

	src, err := format.Source(out.Bytes())
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrFormatFailed.Error())
	}
	return src, nil
}

// Write renders the bindings and writes them into the output package.
func (g *Generator) Write(decls *domain.DeclSet, opts ports.BindingOptions) (string, error) {
	src, err := g.Render(decls, opts)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(opts.OutDir, domain.DirPerm); err != nil {
		return "", zerr.With(zerr.Wrap(err, domain.ErrBindingsWriteFailed.Error()), "dir", opts.OutDir)
	}
	path := filepath.Join(opts.OutDir, BindingsFileName(opts.Target))
	if err := os.WriteFile(path, src, domain.FilePerm); err != nil {
		return "", zerr.With(zerr.Wrap(err, domain.ErrBindingsWriteFailed.Error()), "path", path)
	}
	g.Logger.Info(fmt.Sprintf("wrote %d declarations to %s", decls.Len(), path))
	return path, nil
}

// BindingsFileName returns the per-OS bindings file name. The GOOS suffix
// doubles as the build constraint.
func BindingsFileName(t domain.Target) string {
	return fmt.Sprintf("ui_%s.go", t.OS)
}

// systemIncludes returns the toolkit headers each platform header depends
// on, included first the same way the native build does.
func systemIncludes(os domain.OS) []string {
	switch os {
	case domain.OSDarwin:
		return []string{"<Cocoa/Cocoa.h>"}
	case domain.OSWindows:
		return []string{"<windows.h>"}
	default:
		return []string{"<gtk/gtk.h>"}
	}
}
