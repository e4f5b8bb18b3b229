package pipeline_test

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uibind/uibind/internal/core/domain"
	"github.com/uibind/uibind/internal/core/ports"
	"github.com/uibind/uibind/internal/core/ports/mocks"
	"github.com/uibind/uibind/internal/engine/pipeline"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

type pipelineMocks struct {
	loader    *mocks.MockConfigLoader
	fetcher   *mocks.MockFetcher
	invoker   *mocks.MockInvoker
	generator *mocks.MockBindingGenerator
	linker    *mocks.MockLinkWriter
	store     *mocks.MockStagingStore
	hasher    *mocks.MockHasher
	tracer    *mocks.MockTracer
}

// traceRecord captures what the pipeline reported through the tracer, so
// tests can assert on the announced plan, the span sequence and the span
// output without ordering-sensitive mock expectations.
type traceRecord struct {
	planStages []string
	planTarget string
	spans      []string
	output     strings.Builder
	errs       []error
}

func setupPipelineTest(t *testing.T) (*pipeline.Pipeline, pipelineMocks, *traceRecord) {
	t.Helper()
	ctrl := gomock.NewController(t)
	m := pipelineMocks{
		loader:    mocks.NewMockConfigLoader(ctrl),
		fetcher:   mocks.NewMockFetcher(ctrl),
		invoker:   mocks.NewMockInvoker(ctrl),
		generator: mocks.NewMockBindingGenerator(ctrl),
		linker:    mocks.NewMockLinkWriter(ctrl),
		store:     mocks.NewMockStagingStore(ctrl),
		hasher:    mocks.NewMockHasher(ctrl),
		tracer:    mocks.NewMockTracer(ctrl),
	}

	rec := &traceRecord{}
	span := mocks.NewMockSpan(ctrl)
	span.EXPECT().End().AnyTimes()
	span.EXPECT().SetAttribute(gomock.Any(), gomock.Any()).AnyTimes()
	span.EXPECT().RecordError(gomock.Any()).Do(func(err error) {
		rec.errs = append(rec.errs, err)
	}).AnyTimes()
	span.EXPECT().Write(gomock.Any()).DoAndReturn(func(p []byte) (int, error) {
		rec.output.Write(p)
		return len(p), nil
	}).AnyTimes()

	m.tracer.EXPECT().Start(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, name string, _ ...ports.SpanOption) (context.Context, ports.Span) {
			rec.spans = append(rec.spans, name)
			return ctx, span
		},
	).AnyTimes()
	m.tracer.EXPECT().EmitPlan(gomock.Any(), gomock.Any(), gomock.Any()).Do(
		func(_ context.Context, stages []string, target string) {
			rec.planStages = stages
			rec.planTarget = target
		},
	).AnyTimes()

	p := pipeline.NewPipeline(
		m.loader, m.fetcher, m.invoker, m.generator, m.linker, m.store, m.hasher, m.tracer,
	)
	return p, m, rec
}

// testSettings resolves default settings against a throwaway staging root.
// The root's parent exists but the root itself does not, so tests can assert
// the pipeline never touched it.
func testSettings(t *testing.T) *domain.Settings {
	t.Helper()
	s := domain.DefaultSettings()
	s.Target = domain.Target{OS: domain.OSLinux, Arch: "amd64"}
	s.StagingDir = filepath.Join(t.TempDir(), "staging")
	return s
}

func testPins(deps ...string) domain.PinSet {
	pins := make(map[string]domain.Pin, len(deps))
	for i, dep := range deps {
		pins[dep] = domain.Pin{
			Name:     dep,
			Repo:     "https://github.com/libui-ng/" + dep + ".git",
			Revision: strings.Repeat(string(rune('a'+i)), 40),
		}
	}
	return domain.PinSet{Release: "0.1.0", Pins: pins}
}

func TestRun_BuildNinjaFetched(t *testing.T) {
	p, m, rec := setupPipelineTest(t)
	settings := testSettings(t)
	layout := settings.Layout()
	pins := testPins(domain.DepLibui, domain.DepMeson, domain.DepNinja)

	sourceDir := layout.SourceDir(domain.DepLibui)
	require.NoError(t, os.MkdirAll(sourceDir, 0o750))

	m.loader.EXPECT().LoadPins("", "").Return(pins, nil)
	m.store.EXPECT().Load(layout).Return(nil, nil)

	gomock.InOrder(
		m.fetcher.EXPECT().Ensure(gomock.Any(), pins.Pins[domain.DepLibui], layout.SourceDir(domain.DepLibui), gomock.Any()).Return(nil),
		m.fetcher.EXPECT().Ensure(gomock.Any(), pins.Pins[domain.DepMeson], layout.SourceDir(domain.DepMeson), gomock.Any()).Return(nil),
		m.fetcher.EXPECT().Ensure(gomock.Any(), pins.Pins[domain.DepNinja], layout.SourceDir(domain.DepNinja), gomock.Any()).Return(nil),
	)

	m.hasher.EXPECT().TreeFingerprint(gomock.Any()).DoAndReturn(func(root string) (string, error) {
		return "fp-" + filepath.Base(root), nil
	}).Times(3)

	var saved *domain.StagingManifest
	m.store.EXPECT().Save(layout, gomock.Any()).DoAndReturn(
		func(_ domain.StagingLayout, manifest *domain.StagingManifest) error {
			saved = manifest
			return nil
		},
	)

	artifact := domain.Artifact{Dir: layout.MesonOutDir(), Name: domain.LibName, Kind: domain.LibraryStatic}
	var gotPlan domain.BuildPlan
	m.invoker.EXPECT().Invoke(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, plan domain.BuildPlan, _ io.Writer) (domain.Artifact, error) {
			gotPlan = plan
			return artifact, nil
		},
	)

	decls := &domain.DeclSet{
		Headers:   []string{"ui.h", "ui_unix.h"},
		Functions: []domain.Function{{Name: "uiInit"}, {Name: "uiMain"}},
	}
	opts := ports.BindingOptions{
		Package:     "ui",
		OutDir:      "ui",
		Target:      settings.Target,
		IncludeDirs: []string{sourceDir},
	}
	m.generator.EXPECT().Parse(sourceDir, settings.Target).Return(decls, nil)
	m.generator.EXPECT().Write(decls, opts).Return(filepath.Join("ui", "ui_linux.go"), nil)

	var gotSpec domain.LinkSpec
	m.linker.EXPECT().Write(gomock.Any(), opts).DoAndReturn(
		func(spec domain.LinkSpec, _ ports.BindingOptions) (string, error) {
			gotSpec = spec
			return filepath.Join("ui", "link_linux.go"), nil
		},
	)
	m.linker.EXPECT().WriteManifest(gomock.Any(), opts).Return("", nil)

	err := p.Run(t.Context(), settings, pipeline.ModeBuild)
	require.NoError(t, err)

	wantStages := []string{
		"select strategy", "fetch sources", "build library", "extract declarations", "write linkage",
	}
	assert.Equal(t, wantStages, rec.planStages)
	assert.Equal(t, "linux/amd64", rec.planTarget)
	assert.Equal(t, wantStages, rec.spans)
	assert.Empty(t, rec.errs)

	assert.Equal(t, domain.StrategyNinjaFetched, gotPlan.Strategy)
	assert.Equal(t, domain.ProfileRelease, gotPlan.Profile)
	assert.Equal(t, domain.LibraryStatic, gotPlan.Library)
	assert.Equal(t, layout, gotPlan.Layout)

	assert.Equal(t, []string{artifact.Dir}, gotSpec.LibDirs)

	require.NotNil(t, saved)
	assert.Equal(t, "0.1.0", saved.Release)
	assert.Len(t, saved.Entries, 3)
	for _, dep := range []string{domain.DepLibui, domain.DepMeson, domain.DepNinja} {
		entry, ok := saved.Entry(dep)
		require.True(t, ok, "missing manifest entry for %s", dep)
		assert.Equal(t, pins.Pins[dep].Revision, entry.Revision)
		assert.Equal(t, "fp-"+dep, entry.Fingerprint)
		assert.False(t, entry.FetchedAt.IsZero())
	}
}

func TestRun_SystemLibraryLinksOnly(t *testing.T) {
	p, m, rec := setupPipelineTest(t)
	settings := testSettings(t)
	settings.Features = domain.Features{Manifest: true}

	var gotSpec domain.LinkSpec
	var gotOpts ports.BindingOptions
	m.linker.EXPECT().Write(gomock.Any(), gomock.Any()).DoAndReturn(
		func(spec domain.LinkSpec, opts ports.BindingOptions) (string, error) {
			gotSpec = spec
			gotOpts = opts
			return filepath.Join("ui", "link_linux.go"), nil
		},
	)
	m.linker.EXPECT().WriteManifest(gomock.Any(), gomock.Any()).Return("", nil)

	err := p.Run(t.Context(), settings, pipeline.ModeBuild)
	require.NoError(t, err)

	assert.Equal(t, []string{"select strategy", "write linkage"}, rec.planStages)
	assert.Equal(t, []string{"select strategy", "write linkage"}, rec.spans)

	assert.Empty(t, gotSpec.LibDirs)
	assert.Empty(t, gotOpts.IncludeDirs)

	// Linking against the system copy must not create a staging tree.
	_, statErr := os.Stat(settings.StagingDir)
	assert.True(t, os.IsNotExist(statErr))
}

func TestRun_UnsupportedTargetFailsAtSelect(t *testing.T) {
	p, _, rec := setupPipelineTest(t)
	settings := testSettings(t)
	settings.Target = domain.Target{OS: "plan9", Arch: "amd64"}

	err := p.Run(t.Context(), settings, pipeline.ModeBuild)
	require.ErrorIs(t, err, domain.ErrUnsupportedTarget)
	require.ErrorContains(t, err, domain.ErrStageFailed.Error())

	assert.Equal(t, []string{"select strategy"}, rec.planStages)
	assert.Equal(t, []string{"select strategy"}, rec.spans)
	require.Len(t, rec.errs, 1)
	assert.ErrorIs(t, rec.errs[0], domain.ErrUnsupportedTarget)

	// A configuration error must leave no trace on disk.
	_, statErr := os.Stat(settings.StagingDir)
	assert.True(t, os.IsNotExist(statErr))
}

func TestRun_BuildFailureStopsPipeline(t *testing.T) {
	p, m, rec := setupPipelineTest(t)
	settings := testSettings(t)
	layout := settings.Layout()
	pins := testPins(domain.DepLibui, domain.DepMeson, domain.DepNinja)

	m.loader.EXPECT().LoadPins("", "").Return(pins, nil)
	m.store.EXPECT().Load(layout).Return(nil, nil)
	m.fetcher.EXPECT().Ensure(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(3)
	m.hasher.EXPECT().TreeFingerprint(gomock.Any()).Return("fp", nil).Times(3)
	m.store.EXPECT().Save(layout, gomock.Any()).Return(nil)

	buildErr := zerr.New("ninja exited with status 1")
	m.invoker.EXPECT().Invoke(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(domain.Artifact{}, buildErr)

	err := p.Run(t.Context(), settings, pipeline.ModeBuild)
	require.ErrorIs(t, err, buildErr)
	require.ErrorContains(t, err, domain.ErrStageFailed.Error())

	// extract and link never start after a build failure.
	assert.Equal(t, []string{"select strategy", "fetch sources", "build library"}, rec.spans)
	require.Len(t, rec.errs, 1)
	assert.ErrorIs(t, rec.errs[0], buildErr)
}

func TestRun_FetchReusesVerifiedCheckout(t *testing.T) {
	p, m, rec := setupPipelineTest(t)
	settings := testSettings(t)
	layout := settings.Layout()
	pins := testPins(domain.DepLibui, domain.DepMeson, domain.DepNinja)

	manifest := domain.NewStagingManifest("0.1.0")
	for dep, pin := range pins.Pins {
		manifest.Record(dep, domain.StagingEntry{Revision: pin.Revision, Fingerprint: "fp-" + dep})
	}

	m.loader.EXPECT().LoadPins("", "").Return(pins, nil)
	m.store.EXPECT().Load(layout).Return(manifest, nil)
	m.hasher.EXPECT().TreeFingerprint(gomock.Any()).DoAndReturn(func(root string) (string, error) {
		return "fp-" + filepath.Base(root), nil
	}).Times(3)
	m.store.EXPECT().Save(layout, gomock.Any()).Return(nil)

	err := p.Run(t.Context(), settings, pipeline.ModeFetch)
	require.NoError(t, err)

	assert.Equal(t, []string{"select strategy", "fetch sources"}, rec.planStages)
	assert.Contains(t, rec.output.String(), "checkout verified, reusing")
}

func TestRun_FetchRefetchesStaleRevision(t *testing.T) {
	p, m, rec := setupPipelineTest(t)
	settings := testSettings(t)
	layout := settings.Layout()
	pins := testPins(domain.DepLibui, domain.DepMeson, domain.DepNinja)

	manifest := domain.NewStagingManifest("0.1.0")
	manifest.Record(domain.DepLibui, domain.StagingEntry{
		Revision:    strings.Repeat("f", 40),
		Fingerprint: "fp-" + domain.DepLibui,
	})
	manifest.Record(domain.DepMeson, domain.StagingEntry{
		Revision:    pins.Pins[domain.DepMeson].Revision,
		Fingerprint: "fp-" + domain.DepMeson,
	})
	manifest.Record(domain.DepNinja, domain.StagingEntry{
		Revision:    pins.Pins[domain.DepNinja].Revision,
		Fingerprint: "fp-" + domain.DepNinja,
	})

	m.loader.EXPECT().LoadPins("", "").Return(pins, nil)
	m.store.EXPECT().Load(layout).Return(manifest, nil)
	m.hasher.EXPECT().TreeFingerprint(gomock.Any()).DoAndReturn(func(root string) (string, error) {
		return "fp-" + filepath.Base(root), nil
	}).Times(3)

	// Only the stale checkout is fetched again.
	m.fetcher.EXPECT().Ensure(
		gomock.Any(), pins.Pins[domain.DepLibui], layout.SourceDir(domain.DepLibui), gomock.Any(),
	).Return(nil)

	var saved *domain.StagingManifest
	m.store.EXPECT().Save(layout, gomock.Any()).DoAndReturn(
		func(_ domain.StagingLayout, mf *domain.StagingManifest) error {
			saved = mf
			return nil
		},
	)

	err := p.Run(t.Context(), settings, pipeline.ModeFetch)
	require.NoError(t, err)

	require.NotNil(t, saved)
	entry, ok := saved.Entry(domain.DepLibui)
	require.True(t, ok)
	assert.Equal(t, pins.Pins[domain.DepLibui].Revision, entry.Revision)
	assert.Contains(t, rec.output.String(), domain.DepMeson+": checkout verified")
}

func TestRun_CleanPolicyWipesStaging(t *testing.T) {
	p, m, rec := setupPipelineTest(t)
	settings := testSettings(t)
	settings.StagingPolicy = domain.PolicyClean
	layout := settings.Layout()
	pins := testPins(domain.DepLibui, domain.DepMeson, domain.DepNinja)

	marker := filepath.Join(settings.StagingDir, "stale.txt")
	require.NoError(t, os.MkdirAll(settings.StagingDir, 0o750))
	require.NoError(t, os.WriteFile(marker, []byte("old"), 0o600))

	m.loader.EXPECT().LoadPins("", "").Return(pins, nil)
	m.store.EXPECT().Load(layout).Return(nil, nil)
	m.fetcher.EXPECT().Ensure(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(3)
	m.hasher.EXPECT().TreeFingerprint(gomock.Any()).Return("fp", nil).Times(3)
	m.store.EXPECT().Save(layout, gomock.Any()).Return(nil)

	err := p.Run(t.Context(), settings, pipeline.ModeFetch)
	require.NoError(t, err)

	_, statErr := os.Stat(marker)
	assert.True(t, os.IsNotExist(statErr))
	assert.Contains(t, rec.output.String(), "cleaning")
}

func TestRun_GenerateUsesStagedSources(t *testing.T) {
	p, m, rec := setupPipelineTest(t)
	settings := testSettings(t)
	layout := settings.Layout()

	sourceDir := layout.SourceDir(domain.DepLibui)
	require.NoError(t, os.MkdirAll(sourceDir, 0o750))

	decls := &domain.DeclSet{Headers: []string{"ui.h", "ui_unix.h"}}
	m.generator.EXPECT().Parse(sourceDir, settings.Target).Return(decls, nil)
	m.generator.EXPECT().Write(decls, gomock.Any()).Return(filepath.Join("ui", "ui_linux.go"), nil)

	var gotSpec domain.LinkSpec
	m.linker.EXPECT().Write(gomock.Any(), gomock.Any()).DoAndReturn(
		func(spec domain.LinkSpec, _ ports.BindingOptions) (string, error) {
			gotSpec = spec
			return filepath.Join("ui", "link_linux.go"), nil
		},
	)
	m.linker.EXPECT().WriteManifest(gomock.Any(), gomock.Any()).Return("", nil)

	err := p.Run(t.Context(), settings, pipeline.ModeGenerate)
	require.NoError(t, err)

	assert.Equal(t, []string{"select strategy", "extract declarations", "write linkage"}, rec.planStages)

	// Without a build in the run, linkage points at the directory the
	// strategy's build produces.
	assert.Equal(t, []string{layout.MesonOutDir()}, gotSpec.LibDirs)
}

func TestRun_GenerateWithoutSourcesFails(t *testing.T) {
	p, _, rec := setupPipelineTest(t)
	settings := testSettings(t)

	err := p.Run(t.Context(), settings, pipeline.ModeGenerate)
	require.ErrorIs(t, err, domain.ErrSourcesMissing)
	require.ErrorContains(t, err, domain.ErrStageFailed.Error())

	assert.Equal(t, []string{"select strategy", "extract declarations"}, rec.spans)
}

func TestRun_FetchModeSystemLibrary(t *testing.T) {
	p, _, rec := setupPipelineTest(t)
	settings := testSettings(t)
	settings.Features = domain.Features{}

	err := p.Run(t.Context(), settings, pipeline.ModeFetch)
	require.NoError(t, err)

	// Nothing is pinned for a system-library run, so there is nothing to
	// fetch.
	assert.Equal(t, []string{"select strategy"}, rec.planStages)
	assert.Equal(t, []string{"select strategy"}, rec.spans)
}

func TestRun_ContextCanceled(t *testing.T) {
	p, _, rec := setupPipelineTest(t)
	settings := testSettings(t)

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	err := p.Run(ctx, settings, pipeline.ModeBuild)
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, rec.spans)
}

func TestRun_ManifestEmittedOnWindows(t *testing.T) {
	p, m, rec := setupPipelineTest(t)
	settings := testSettings(t)
	settings.Target = domain.Target{OS: domain.OSWindows, Arch: "amd64"}
	settings.Features = domain.Features{Manifest: true}

	m.linker.EXPECT().Write(gomock.Any(), gomock.Any()).
		Return(filepath.Join("ui", "link_windows.go"), nil)
	m.linker.EXPECT().WriteManifest(gomock.Any(), gomock.Any()).
		Return(filepath.Join("ui", "rsrc_windows_amd64.syso"), nil)

	err := p.Run(t.Context(), settings, pipeline.ModeBuild)
	require.NoError(t, err)

	assert.Contains(t, rec.output.String(), "rsrc_windows_amd64.syso")
}
