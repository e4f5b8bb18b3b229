package cgolink

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/uibind/uibind/internal/core/domain"
	"github.com/uibind/uibind/internal/core/ports"
	"go.trai.ch/zerr"
)

// outputTailLines caps how much windres output travels with an error.
const outputTailLines = 20

const (
	manifestFileName = "uibind.manifest"
	rcFileName       = "uibind.rc"
)

// applicationManifest opts the process into Common Controls 6, which the
// native library requires for themed widgets on Windows.
const applicationManifest = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<assembly xmlns="urn:schemas-microsoft-com:asm.v1" manifestVersion="1.0">
	<assemblyIdentity version="1.0.0.0" processorArchitecture="*" name="uibind.generated.app" type="win32"/>
	<dependency>
		<dependentAssembly>
			<assemblyIdentity type="win32" name="Microsoft.Windows.Common-Controls" version="6.0.0.0" processorArchitecture="*" publicKeyToken="6595b64144ccf1df" language="*"/>
		</dependentAssembly>
	</dependency>
</assembly>
`

// resourceScript binds the manifest as RT_MANIFEST resource 1, the id the
// loader reads for executables.
const resourceScript = "1 24 \"" + manifestFileName + "\"\n"

// WriteManifest writes the application manifest and resource script into the
// output package and compiles them with windres into a .syso object, which
// the Go linker picks up by name. Non-Windows targets take no manifest and
// return an empty path.
func (w *Writer) WriteManifest(ctx context.Context, opts ports.BindingOptions) (string, error) {
	if opts.Target.OS != domain.OSWindows {
		return "", nil
	}

	windres, err := w.Executor.LookPath("windres")
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(opts.OutDir, domain.DirPerm); err != nil {
		return "", zerr.With(zerr.Wrap(err, domain.ErrManifestCompileFailed.Error()), "dir", opts.OutDir)
	}
	if err := writeResource(opts.OutDir, manifestFileName, applicationManifest); err != nil {
		return "", err
	}
	if err := writeResource(opts.OutDir, rcFileName, resourceScript); err != nil {
		return "", err
	}

	// The resource script names the manifest relative to itself, so windres
	// runs inside the output package.
	syso := SysoFileName(opts.Target)
	cmd := domain.Command{
		Argv: []string{windres, "-i", rcFileName, "-o", syso, "-O", "coff"},
		Dir:  opts.OutDir,
	}
	res, err := w.Executor.Run(ctx, cmd, io.Discard)
	if err != nil {
		return "", zerr.Wrap(err, domain.ErrManifestCompileFailed.Error())
	}
	if res.ExitCode != 0 {
		compileErr := zerr.With(domain.ErrManifestCompileFailed, "command", cmd.String())
		compileErr = zerr.With(compileErr, "exit_code", res.ExitCode)
		if tail := res.Tail(outputTailLines); tail != "" {
			compileErr = zerr.With(compileErr, "output", tail)
		}
		return "", compileErr
	}

	path := filepath.Join(opts.OutDir, syso)
	if _, err := os.Stat(path); err != nil {
		compileErr := zerr.With(domain.ErrManifestCompileFailed, "path", path)
		return "", zerr.With(compileErr, "reason", "windres exited cleanly but produced no object")
	}
	w.Logger.Info("compiled resource manifest to " + path)
	return path, nil
}

func writeResource(dir, name, content string) error {
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), domain.FilePerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrManifestCompileFailed.Error()), "path", name)
	}
	return nil
}

// SysoFileName returns the resource object name for the target. Go links
// rsrc_windows_<arch>.syso objects into any package built for that platform.
func SysoFileName(t domain.Target) string {
	return fmt.Sprintf("rsrc_windows_%s.syso", t.Arch)
}
