package native

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/uibind/uibind/internal/core/domain"
	"go.trai.ch/zerr"
)

// toolchainSources lists the source globs the direct-toolchain build
// compiles, relative to the library checkout.
func toolchainSources(t domain.Target) []string {
	if t.OS == domain.OSDarwin {
		return []string{"common/*.c", "darwin/*.m"}
	}
	return []string{"common/*.c", "unix/*.c"}
}

// buildToolchain compiles the sources directly with the platform C compiler
// and archives or links them, bypassing meson entirely.
func (i *Invoker) buildToolchain(ctx context.Context, plan domain.BuildPlan, out io.Writer) (string, error) {
	libuiDir := plan.Layout.SourceDir(domain.DepLibui)
	outDir := plan.Layout.ToolchainOutDir()

	if err := os.MkdirAll(outDir, domain.DirPerm); err != nil {
		return "", zerr.With(zerr.Wrap(err, domain.ErrStagingCreateFailed.Error()), "path", outDir)
	}

	cflags, err := i.platformCFlags(ctx, plan.Target)
	if err != nil {
		return "", err
	}
	if plan.Library == domain.LibraryShared {
		cflags = append(cflags, "-fPIC")
	}

	sources, err := i.Resolver.Resolve(libuiDir, toolchainSources(plan.Target))
	if err != nil {
		return "", err
	}

	objects := make([]string, 0, len(sources))
	for _, src := range sources {
		object := filepath.Join(outDir, objectName(libuiDir, src))

		argv := []string{"cc", "-c", src, "-o", object, "-I" + libuiDir, "-I" + filepath.Join(libuiDir, "common")}
		argv = append(argv, cflags...)

		if err := i.run(ctx, domain.ErrCompileFailed, domain.Command{Argv: argv}, out); err != nil {
			return "", zerr.With(err, "file", src)
		}
		objects = append(objects, object)
	}

	if err := i.linkObjects(ctx, plan, outDir, objects, out); err != nil {
		return "", err
	}

	return outDir, nil
}

// platformCFlags queries pkg-config for the GUI stack's compile flags where
// the platform needs them. The tool is resolved eagerly so a bare system
// fails before the first compile.
func (i *Invoker) platformCFlags(ctx context.Context, t domain.Target) ([]string, error) {
	if t.OS != domain.OSLinux {
		return nil, nil
	}

	if _, err := i.Executor.LookPath("pkg-config"); err != nil {
		return nil, err
	}

	cmd := domain.Command{Argv: []string{"pkg-config", "--cflags", "gtk+-3.0"}}
	res, err := i.Executor.Run(ctx, cmd, nil)
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrPkgConfigFailed.Error())
	}
	if !res.Success() {
		pkgErr := zerr.With(domain.ErrPkgConfigFailed, "command", cmd.String())
		pkgErr = zerr.With(pkgErr, "exit_code", res.ExitCode)
		if tail := res.Tail(outputTailLines); tail != "" {
			pkgErr = zerr.With(pkgErr, "output", tail)
		}
		return nil, pkgErr
	}

	return strings.Fields(string(res.Output)), nil
}

// linkObjects produces the final library from the compiled objects.
func (i *Invoker) linkObjects(ctx context.Context, plan domain.BuildPlan, outDir string, objects []string, out io.Writer) error {
	if plan.Library == domain.LibraryStatic {
		argv := append([]string{"ar", "rcs", filepath.Join(outDir, "lib"+domain.LibName+".a")}, objects...)
		return i.run(ctx, domain.ErrArchiveFailed, domain.Command{Argv: argv}, out)
	}

	shared := "lib" + domain.LibName + ".so"
	flag := "-shared"
	if plan.Target.OS == domain.OSDarwin {
		shared = "lib" + domain.LibName + ".dylib"
		flag = "-dynamiclib"
	}

	argv := append([]string{"cc", flag, "-o", filepath.Join(outDir, shared)}, objects...)
	return i.run(ctx, domain.ErrSharedLinkFailed, domain.Command{Argv: argv}, out)
}

// objectName maps a source path to a unique object file name. The parent
// directory is folded in because common/ and unix/ carry same-named sources.
func objectName(root, src string) string {
	rel, err := filepath.Rel(root, src)
	if err != nil {
		rel = filepath.Base(src)
	}

	flat := strings.ReplaceAll(filepath.ToSlash(rel), "/", "_")
	return strings.TrimSuffix(flat, filepath.Ext(flat)) + ".o"
}
