package native

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/uibind/uibind/internal/core/domain"
	"go.trai.ch/zerr"
)

// Backend marker files. Their presence means meson setup already ran for the
// staging tree, so setup is skipped on reuse.
const (
	ninjaMarker = "build.ninja"
	vsMarker    = "libui.sln"
)

// buildNinjaFetched bootstraps the pinned ninja once, then drives the meson
// build with it.
func (i *Invoker) buildNinjaFetched(ctx context.Context, plan domain.BuildPlan, out io.Writer) (string, error) {
	ninja, err := i.bootstrapNinja(ctx, plan, out)
	if err != nil {
		return "", err
	}

	env := map[string]string{"NINJA": ninja}
	if err := i.mesonSetup(ctx, plan, out, env, nil, ninjaMarker); err != nil {
		return "", err
	}
	if err := i.ninjaBuild(ctx, plan, ninja, out); err != nil {
		return "", err
	}

	return plan.Layout.MesonOutDir(), nil
}

// buildNinjaSystem drives the meson build with the ninja found on PATH.
func (i *Invoker) buildNinjaSystem(ctx context.Context, plan domain.BuildPlan, out io.Writer) (string, error) {
	if err := i.mesonSetup(ctx, plan, out, nil, nil, ninjaMarker); err != nil {
		return "", err
	}
	if err := i.ninjaBuild(ctx, plan, "ninja", out); err != nil {
		return "", err
	}

	return plan.Layout.MesonOutDir(), nil
}

// buildMSBuild generates a Visual Studio solution with meson and compiles it
// with msbuild.
func (i *Invoker) buildMSBuild(ctx context.Context, plan domain.BuildPlan, out io.Writer) (string, error) {
	if err := i.mesonSetup(ctx, plan, out, nil, []string{"--backend=vs"}, vsMarker); err != nil {
		return "", err
	}

	cmd := domain.Command{
		Argv: []string{"msbuild", vsMarker},
		Dir:  plan.Layout.BuildDir(),
	}
	if err := i.run(ctx, domain.ErrMSBuildFailed, cmd, out); err != nil {
		return "", err
	}

	return plan.Layout.MesonOutDir(), nil
}

// bootstrapNinja builds the fetched ninja with its own configure script and
// returns the absolute binary path. An existing binary is reused: the
// checkout is pinned, so the binary cannot be stale.
func (i *Invoker) bootstrapNinja(ctx context.Context, plan domain.BuildPlan, out io.Writer) (string, error) {
	binary := plan.Layout.NinjaBinary(plan.Target)

	abs, err := filepath.Abs(binary)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, domain.ErrBootstrapFailed.Error()), "path", binary)
	}

	if _, statErr := os.Stat(binary); statErr == nil {
		i.Logger.Info("ninja already bootstrapped")
		return abs, nil
	}

	i.Logger.Info("bootstrapping ninja")
	cmd := domain.Command{
		Argv: []string{"python3", "configure.py", "--bootstrap"},
		Dir:  plan.Layout.SourceDir(domain.DepNinja),
	}
	if err := i.run(ctx, domain.ErrBootstrapFailed, cmd, out); err != nil {
		return "", err
	}

	if _, statErr := os.Stat(binary); statErr != nil {
		bootErr := zerr.With(domain.ErrBootstrapFailed, "path", binary)
		return "", zerr.With(bootErr, "reason", "bootstrap exited cleanly but produced no binary")
	}

	return abs, nil
}

// mesonSetup configures the build directory with the fetched meson. The env
// map carries variables meson consults, NINJA in particular.
func (i *Invoker) mesonSetup(ctx context.Context, plan domain.BuildPlan, out io.Writer, env map[string]string, extraArgs []string, marker string) error {
	if _, err := os.Stat(filepath.Join(plan.Layout.BuildDir(), marker)); err == nil {
		i.Logger.Info("build directory already configured")
		return nil
	}

	script, err := filepath.Abs(plan.Layout.MesonScript())
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrMesonSetupFailed.Error()), "path", plan.Layout.MesonScript())
	}

	argv := []string{
		"python3", script, "setup",
		fmt.Sprintf("--default-library=%s", plan.Library.DefaultLibraryArg()),
		fmt.Sprintf("--buildtype=%s", plan.Profile.BuildType()),
	}
	argv = append(argv, extraArgs...)
	argv = append(argv, "build")

	cmd := domain.Command{
		Argv: argv,
		Dir:  plan.Layout.SourceDir(domain.DepLibui),
		Env:  env,
	}
	return i.run(ctx, domain.ErrMesonSetupFailed, cmd, out)
}

// ninjaBuild compiles the configured build directory.
func (i *Invoker) ninjaBuild(ctx context.Context, plan domain.BuildPlan, ninja string, out io.Writer) error {
	cmd := domain.Command{
		Argv: []string{ninja, "-C", "build"},
		Dir:  plan.Layout.SourceDir(domain.DepLibui),
	}
	return i.run(ctx, domain.ErrNinjaBuildFailed, cmd, out)
}
