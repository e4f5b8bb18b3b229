// Package cgolink emits the cgo linkage surface of the generated package: a
// directives-only Go file per target OS, plus the compiled resource manifest
// Windows binaries need for themed common controls.
package cgolink

import (
	"bytes"
	"fmt"
	"go/format"
	"os"
	"path/filepath"
	"strings"

	"github.com/uibind/uibind/internal/core/domain"
	"github.com/uibind/uibind/internal/core/ports"
	"go.trai.ch/zerr"
)

// Writer implements ports.LinkWriter.
type Writer struct {
	Executor ports.Executor
	Logger   ports.Logger
}

// NewWriter creates a new Writer. The executor is only exercised on Windows
// targets, where the manifest is compiled with windres.
func NewWriter(executor ports.Executor, logger ports.Logger) *Writer {
	return &Writer{Executor: executor, Logger: logger}
}

// Write emits the linkage file for the target. The file carries nothing but
// cgo directives so regenerating bindings never touches linkage and vice
// versa.
func (w *Writer) Write(spec domain.LinkSpec, opts ports.BindingOptions) (string, error) {
	src, err := render(spec, opts)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(opts.OutDir, domain.DirPerm); err != nil {
		return "", zerr.With(zerr.Wrap(err, domain.ErrLinkWriteFailed.Error()), "dir", opts.OutDir)
	}
	path := filepath.Join(opts.OutDir, LinkFileName(opts.Target))
	if err := os.WriteFile(path, src, domain.FilePerm); err != nil {
		return "", zerr.With(zerr.Wrap(err, domain.ErrLinkWriteFailed.Error()), "path", path)
	}
	w.Logger.Info("wrote linkage directives to " + path)
	return path, nil
}

func render(spec domain.LinkSpec, opts ports.BindingOptions) ([]byte, error) {
	var out bytes.Buffer
	out.WriteString("// Code generated by uibind. DO NOT EDIT.\n\n")
	fmt.Fprintf(&out, "package %s\n\n", opts.Package)
	out.WriteString("/*\n")
	if len(spec.PkgConfig) > 0 {
		fmt.Fprintf(&out, "#cgo pkg-config: %s\n", strings.Join(spec.PkgConfig, " "))
	}
	fmt.Fprintf(&out, "#cgo LDFLAGS: %s\n", strings.Join(ldflags(spec), " "))
	out.WriteString("*/\n")
	out.WriteString("import \"C\"\n")

	src, err := format.Source(out.Bytes())
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrFormatFailed.Error())
	}
	return src, nil
}

func ldflags(spec domain.LinkSpec) []string {
	var flags []string
	for _, dir := range spec.LibDirs {
		flags = append(flags, "-L"+dir)
	}
	for _, lib := range spec.Libs {
		flags = append(flags, "-l"+lib)
	}
	for _, framework := range spec.Frameworks {
		flags = append(flags, "-framework", framework)
	}
	return flags
}

// LinkFileName returns the per-OS linkage file name. The GOOS suffix doubles
// as the build constraint, matching the bindings file next to it.
func LinkFileName(t domain.Target) string {
	return fmt.Sprintf("link_%s.go", t.OS)
}
