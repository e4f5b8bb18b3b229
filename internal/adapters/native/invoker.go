// Package native drives the external build of the library per strategy.
package native

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/uibind/uibind/internal/adapters/fs"
	"github.com/uibind/uibind/internal/core/domain"
	"github.com/uibind/uibind/internal/core/ports"
	"go.trai.ch/zerr"
)

// outputTailLines caps how much captured build output travels with an error.
const outputTailLines = 40

// Invoker implements ports.Invoker. All external processes run through the
// executor; required tools are resolved eagerly so a missing compiler fails
// the build before any work starts.
type Invoker struct {
	Executor ports.Executor
	Resolver *fs.Resolver
	Verifier *fs.Verifier
	Logger   ports.Logger
}

// NewInvoker creates a new Invoker.
func NewInvoker(executor ports.Executor, resolver *fs.Resolver, verifier *fs.Verifier, logger ports.Logger) *Invoker {
	return &Invoker{
		Executor: executor,
		Resolver: resolver,
		Verifier: verifier,
		Logger:   logger,
	}
}

// Invoke compiles the library according to the plan and returns the artifact
// location. A zero exit that leaves no library on disk is still an error:
// there is no partial success.
func (i *Invoker) Invoke(ctx context.Context, plan domain.BuildPlan, out io.Writer) (domain.Artifact, error) {
	if !plan.Strategy.BuildsFromSource() {
		return domain.Artifact{}, zerr.With(zerr.New("strategy does not build from source"), "strategy", string(plan.Strategy))
	}

	if err := i.checkTools(plan.Strategy); err != nil {
		return domain.Artifact{}, err
	}

	var (
		dir string
		err error
	)
	switch plan.Strategy {
	case domain.StrategyNinjaFetched:
		dir, err = i.buildNinjaFetched(ctx, plan, out)
	case domain.StrategyNinjaSystem:
		dir, err = i.buildNinjaSystem(ctx, plan, out)
	case domain.StrategyToolchain:
		dir, err = i.buildToolchain(ctx, plan, out)
	case domain.StrategyMSBuild:
		dir, err = i.buildMSBuild(ctx, plan, out)
	default:
		return domain.Artifact{}, zerr.With(zerr.New("unknown build strategy"), "strategy", string(plan.Strategy))
	}
	if err != nil {
		return domain.Artifact{}, err
	}

	artifact := domain.Artifact{Dir: dir, Name: domain.LibName, Kind: plan.Library}
	return i.verifyArtifact(artifact, plan.Target)
}

// checkTools resolves every executable the strategy expects on PATH.
func (i *Invoker) checkTools(strategy domain.Strategy) error {
	for _, tool := range strategy.Tools() {
		if _, err := i.Executor.LookPath(tool); err != nil {
			return err
		}
	}
	return nil
}

// verifyArtifact confirms the build left a library behind.
func (i *Invoker) verifyArtifact(artifact domain.Artifact, target domain.Target) (domain.Artifact, error) {
	candidates := artifact.LibFileCandidates(target)

	path, found, err := i.Verifier.FindAny(artifact.Dir, candidates)
	if err != nil {
		return domain.Artifact{}, err
	}
	if !found {
		missingErr := zerr.With(domain.ErrArtifactMissing, "dir", artifact.Dir)
		return domain.Artifact{}, zerr.With(missingErr, "expected", strings.Join(candidates, ", "))
	}

	i.Logger.Info(fmt.Sprintf("built %s", path))
	return artifact, nil
}

// run executes one build command and folds a failure into the sentinel.
func (i *Invoker) run(ctx context.Context, sentinel error, cmd domain.Command, out io.Writer) error {
	res, err := i.Executor.Run(ctx, cmd, out)
	if err != nil {
		return zerr.Wrap(err, sentinel.Error())
	}
	if !res.Success() {
		buildErr := zerr.With(sentinel, "command", cmd.String())
		buildErr = zerr.With(buildErr, "exit_code", res.ExitCode)
		if tail := res.Tail(outputTailLines); tail != "" {
			buildErr = zerr.With(buildErr, "output", tail)
		}
		return buildErr
	}
	return nil
}
