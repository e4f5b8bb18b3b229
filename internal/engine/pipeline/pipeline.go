// Package pipeline sequences the binding stages of a run: select, fetch,
// build, extract, link. Stages run strictly in order against the injected
// ports, and the first failure aborts the run. Which stages a run contains
// depends on the mode and the selected strategy; the full list is announced
// through the tracer before anything executes.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/uibind/uibind/internal/core/domain"
	"github.com/uibind/uibind/internal/core/ports"
	"go.trai.ch/zerr"
)

// Mode narrows a run to a subset of the pipeline.
type Mode string

const (
	// ModeBuild runs every stage the strategy calls for.
	ModeBuild Mode = "build"
	// ModeFetch stops after the pinned sources are staged.
	ModeFetch Mode = "fetch"
	// ModeGenerate regenerates bindings and linkage from an existing
	// staging tree, without fetching or building.
	ModeGenerate Mode = "generate"
)

// Pipeline drives one run against the injected ports. Selection is pure, so
// configuration errors surface before any filesystem or network work starts.
type Pipeline struct {
	loader    ports.ConfigLoader
	fetcher   ports.Fetcher
	invoker   ports.Invoker
	generator ports.BindingGenerator
	linker    ports.LinkWriter
	store     ports.StagingStore
	hasher    ports.Hasher
	tracer    ports.Tracer
}

// NewPipeline creates a pipeline with all its dependencies.
func NewPipeline(
	loader ports.ConfigLoader,
	fetcher ports.Fetcher,
	invoker ports.Invoker,
	generator ports.BindingGenerator,
	linker ports.LinkWriter,
	store ports.StagingStore,
	hasher ports.Hasher,
	tracer ports.Tracer,
) *Pipeline {
	return &Pipeline{
		loader:    loader,
		fetcher:   fetcher,
		invoker:   invoker,
		generator: generator,
		linker:    linker,
		store:     store,
		hasher:    hasher,
		tracer:    tracer,
	}
}

// run carries the state one stage hands to the next.
type run struct {
	settings *domain.Settings
	layout   domain.StagingLayout
	mode     Mode

	strategy domain.Strategy
	artifact domain.Artifact
	built    bool
}

// Run executes the stages of one pipeline run. The settings must already be
// fully resolved. The returned error names the failed stage and wraps the
// cause, so sentinel checks against the underlying error still work.
func (p *Pipeline) Run(ctx context.Context, settings *domain.Settings, mode Mode) error {
	r := &run{settings: settings, layout: settings.Layout(), mode: mode}

	stages := plannedStages(settings, mode)
	titles := make([]string, len(stages))
	for i, stage := range stages {
		titles[i] = stage.Title()
	}
	p.tracer.EmitPlan(ctx, titles, settings.Target.String())

	for _, stage := range stages {
		if err := p.runStage(ctx, r, stage); err != nil {
			return zerr.With(
				zerr.Wrap(err, domain.ErrStageFailed.Error()),
				"stage", stage.String(),
			)
		}
	}
	return nil
}

// plannedStages computes the stage list for a run up front so the plan can be
// announced before execution. Selection runs again as the first stage; when
// it would fail, the plan holds only that stage and the failure surfaces
// there.
func plannedStages(settings *domain.Settings, mode Mode) []domain.Stage {
	strategy, err := domain.SelectStrategy(settings.Features, settings.Target)
	if err != nil {
		return []domain.Stage{domain.StageSelect}
	}

	stages := []domain.Stage{domain.StageSelect}
	switch mode {
	case ModeFetch:
		if len(strategy.Dependencies()) > 0 {
			stages = append(stages, domain.StageFetch)
		}
	case ModeGenerate:
		if strategy.BuildsFromSource() {
			stages = append(stages, domain.StageExtract)
		}
		stages = append(stages, domain.StageLink)
	default:
		if strategy.BuildsFromSource() {
			stages = append(stages, domain.StageFetch, domain.StageBuild, domain.StageExtract)
		}
		stages = append(stages, domain.StageLink)
	}
	return stages
}

func (p *Pipeline) runStage(ctx context.Context, r *run, stage domain.Stage) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	ctx, span := p.tracer.Start(ctx, stage.Title(),
		ports.WithAttribute("target", r.settings.Target.String()))
	defer span.End()

	var err error
	switch stage {
	case domain.StageSelect:
		err = p.selectStrategy(r, span)
	case domain.StageFetch:
		err = p.fetchSources(ctx, r, span)
	case domain.StageBuild:
		err = p.buildLibrary(ctx, r, span)
	case domain.StageExtract:
		err = p.extractDeclarations(r, span)
	case domain.StageLink:
		err = p.writeLinkage(ctx, r, span)
	}
	if err != nil {
		span.RecordError(err)
	}
	return err
}

func (p *Pipeline) selectStrategy(r *run, span ports.Span) error {
	strategy, err := domain.SelectStrategy(r.settings.Features, r.settings.Target)
	if err != nil {
		return err
	}
	r.strategy = strategy

	span.SetAttribute("strategy", string(strategy))
	fmt.Fprintf(span, "selected %s for %s\n", strategy, r.settings.Target)
	return nil
}

func (p *Pipeline) fetchSources(ctx context.Context, r *run, span ports.Span) error {
	pins, err := p.loader.LoadPins(r.settings.Release, r.settings.PinsPath)
	if err != nil {
		return err
	}

	if r.settings.StagingPolicy == domain.PolicyClean {
		fmt.Fprintf(span, "cleaning %s\n", r.layout.Root)
		if err := os.RemoveAll(r.layout.Root); err != nil {
			return zerr.With(
				zerr.Wrap(err, domain.ErrStagingCleanFailed.Error()),
				"dir", r.layout.Root,
			)
		}
	}

	manifest, err := p.store.Load(r.layout)
	if err != nil {
		return err
	}
	// Entries recorded for a different release pin different revisions.
	if manifest == nil || manifest.Release != pins.Release {
		manifest = domain.NewStagingManifest(pins.Release)
	}

	for _, dep := range r.strategy.Dependencies() {
		pin, err := pins.Lookup(dep)
		if err != nil {
			return err
		}
		if err := pin.Validate(); err != nil {
			return err
		}

		dir := r.layout.SourceDir(dep)
		if p.verified(manifest, dep, pin, dir) {
			fmt.Fprintf(span, "%s: checkout verified, reusing\n", dep)
			continue
		}

		if err := p.fetcher.Ensure(ctx, pin, dir, span); err != nil {
			return err
		}

		fingerprint, err := p.hasher.TreeFingerprint(dir)
		if err != nil {
			return err
		}
		manifest.Record(dep, domain.StagingEntry{
			Revision:    pin.Revision,
			Fingerprint: fingerprint,
			FetchedAt:   time.Now().UTC(),
		})
	}

	return p.store.Save(r.layout, manifest)
}

// verified reports whether the checkout at dir can be trusted as-is: the
// manifest entry must match the pin and the tree fingerprint must still
// verify. Any mismatch, including a missing checkout, refetches.
func (p *Pipeline) verified(manifest *domain.StagingManifest, dep string, pin domain.Pin, dir string) bool {
	entry, ok := manifest.Entry(dep)
	if !ok || entry.Revision != pin.Revision {
		return false
	}
	fingerprint, err := p.hasher.TreeFingerprint(dir)
	if err != nil {
		return false
	}
	return fingerprint == entry.Fingerprint
}

func (p *Pipeline) buildLibrary(ctx context.Context, r *run, span ports.Span) error {
	plan := domain.BuildPlan{
		Strategy: r.strategy,
		Target:   r.settings.Target,
		Profile:  r.settings.Profile,
		Library:  r.settings.Library,
		Layout:   r.layout,
	}

	artifact, err := p.invoker.Invoke(ctx, plan, span)
	if err != nil {
		return err
	}
	r.artifact = artifact
	r.built = true

	span.SetAttribute("artifact_dir", artifact.Dir)
	return nil
}

func (p *Pipeline) extractDeclarations(r *run, span ports.Span) error {
	headerDir := r.layout.SourceDir(domain.DepLibui)
	if _, err := os.Stat(headerDir); err != nil {
		return zerr.With(domain.ErrSourcesMissing, "dir", headerDir)
	}

	decls, err := p.generator.Parse(headerDir, r.settings.Target)
	if err != nil {
		return err
	}

	path, err := p.generator.Write(decls, p.bindingOptions(r))
	if err != nil {
		return err
	}

	span.SetAttribute("declarations", decls.Len())
	fmt.Fprintf(span, "%d declarations from %s\n", decls.Len(), strings.Join(decls.Headers, ", "))
	fmt.Fprintf(span, "wrote %s\n", path)
	return nil
}

func (p *Pipeline) writeLinkage(ctx context.Context, r *run, span ports.Span) error {
	artifact := r.artifact
	if !r.built && r.strategy.BuildsFromSource() {
		// Linkage regenerated without a build in the same run points at
		// the directory the strategy's build would have produced.
		artifact = domain.Artifact{
			Dir:  r.layout.ArtifactDir(r.strategy),
			Name: domain.LibName,
			Kind: r.settings.Library,
		}
	}

	spec, err := domain.LinkSpecFor(r.strategy, r.settings.Target, artifact)
	if err != nil {
		return err
	}

	opts := p.bindingOptions(r)
	path, err := p.linker.Write(spec, opts)
	if err != nil {
		return err
	}
	fmt.Fprintf(span, "wrote %s\n", path)

	if r.settings.Features.Manifest {
		manifestPath, err := p.linker.WriteManifest(ctx, opts)
		if err != nil {
			return err
		}
		if manifestPath != "" {
			fmt.Fprintf(span, "wrote %s\n", manifestPath)
		}
	}
	return nil
}

func (p *Pipeline) bindingOptions(r *run) ports.BindingOptions {
	opts := ports.BindingOptions{
		Package: r.settings.Package,
		OutDir:  r.settings.OutDir,
		Target:  r.settings.Target,
	}
	if r.strategy.BuildsFromSource() {
		opts.IncludeDirs = []string{r.layout.SourceDir(domain.DepLibui)}
	}
	return opts
}
