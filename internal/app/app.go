// Package app implements the application layer for uibind.
package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"

	"github.com/uibind/uibind/internal/adapters/detector"
	"github.com/uibind/uibind/internal/adapters/linear"
	"github.com/uibind/uibind/internal/adapters/telemetry"
	"github.com/uibind/uibind/internal/adapters/tui"
	"github.com/uibind/uibind/internal/adapters/watcher"
	"github.com/uibind/uibind/internal/core/domain"
	"github.com/uibind/uibind/internal/core/ports"
	"github.com/uibind/uibind/internal/engine/pipeline"
)

// App represents the main application logic.
type App struct {
	loader    ports.ConfigLoader
	fetcher   ports.Fetcher
	invoker   ports.Invoker
	generator ports.BindingGenerator
	linker    ports.LinkWriter
	store     ports.StagingStore
	hasher    ports.Hasher
	watcher   ports.Watcher
	logger    ports.Logger

	teaOptions []tea.ProgramOption
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	fetcher ports.Fetcher,
	invoker ports.Invoker,
	generator ports.BindingGenerator,
	linker ports.LinkWriter,
	store ports.StagingStore,
	hasher ports.Hasher,
	watch ports.Watcher,
	log ports.Logger,
) *App {
	return &App{
		loader:    loader,
		fetcher:   fetcher,
		invoker:   invoker,
		generator: generator,
		linker:    linker,
		store:     store,
		hasher:    hasher,
		watcher:   watch,
		logger:    log,
	}
}

// WithTeaOptions adds bubbletea program options to the App.
// This is primarily used for testing to disable input/output.
func (a *App) WithTeaOptions(opts ...tea.ProgramOption) *App {
	a.teaOptions = append(a.teaOptions, opts...)
	return a
}

// RunOptions configuration for the pipeline commands.
type RunOptions struct {
	// ConfigPath names the configuration file explicitly. Empty means
	// discovery at or above the working directory.
	ConfigPath string
	// OutputMode overrides renderer auto-detection: "tui", "linear",
	// "ci", or "auto".
	OutputMode string
	// Overrides carries command-line values layered over the loaded
	// settings.
	Overrides domain.Overrides
	// Watch keeps generation running, re-extracting when the staged
	// public headers change. Honored by Generate only.
	Watch bool
}

// Build runs the full pipeline: select, fetch, build, extract, link.
func (a *App) Build(ctx context.Context, opts RunOptions) error {
	settings, err := a.resolveSettings(opts.ConfigPath, opts.Overrides)
	if err != nil {
		return err
	}
	return a.runPipeline(ctx, settings, pipeline.ModeBuild, opts.OutputMode)
}

// Fetch stages the pinned sources without building.
func (a *App) Fetch(ctx context.Context, opts RunOptions) error {
	settings, err := a.resolveSettings(opts.ConfigPath, opts.Overrides)
	if err != nil {
		return err
	}
	return a.runPipeline(ctx, settings, pipeline.ModeFetch, opts.OutputMode)
}

// Generate regenerates bindings and linkage from already staged sources.
func (a *App) Generate(ctx context.Context, opts RunOptions) error {
	settings, err := a.resolveSettings(opts.ConfigPath, opts.Overrides)
	if err != nil {
		return err
	}
	if opts.Watch {
		return a.watch(ctx, settings)
	}
	return a.runPipeline(ctx, settings, pipeline.ModeGenerate, opts.OutputMode)
}

// resolveSettings loads the configuration and layers command-line
// overrides on top.
func (a *App) resolveSettings(configPath string, overrides domain.Overrides) (*domain.Settings, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, zerr.Wrap(err, "failed to resolve working directory")
	}

	settings, err := a.loader.Load(cwd, configPath)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}

	if err := settings.Apply(overrides); err != nil {
		return nil, err
	}
	return settings, nil
}

// runPipeline executes one pipeline pass with a renderer attached.
//
//nolint:cyclop // orchestration function
func (a *App) runPipeline(ctx context.Context, settings *domain.Settings, mode pipeline.Mode, outputMode string) error {
	// Detect environment and resolve output mode.
	autoMode := detector.DetectEnvironment()
	renderMode := detector.ResolveMode(autoMode, outputMode)

	var renderer ports.Renderer
	if renderMode == detector.ModeTUI {
		model := tui.NewModel(os.Stderr)
		optsTea := append([]tea.ProgramOption{tea.WithContext(ctx)}, a.teaOptions...)
		renderer = tui.NewRenderer(&model, optsTea...)
	} else {
		renderer = linear.NewRenderer(os.Stdout, os.Stderr)
	}

	// Create a bridge that sends OTel spans to the renderer, and make
	// it the span processor of the global provider so every span the
	// tracer starts reaches the renderer.
	bridge := telemetry.NewBridge(renderer)
	tp := setupOTel(bridge)
	defer func() {
		_ = tp.Shutdown(ctx)
	}()

	// The renderer is injected so stage output streams through the
	// batcher as well.
	tracer := telemetry.NewOTelTracer("uibind").WithRenderer(renderer)

	eng := pipeline.NewPipeline(
		a.loader,
		a.fetcher,
		a.invoker,
		a.generator,
		a.linker,
		a.store,
		a.hasher,
		tracer,
	)

	g, ctx := errgroup.WithContext(ctx)

	// Renderer routine.
	g.Go(func() error {
		if err := renderer.Start(ctx); err != nil {
			return err
		}
		// Wait blocks until the renderer has terminated.
		return renderer.Wait()
	})

	// Pipeline routine.
	g.Go(func() error {
		defer func() {
			if r := recover(); r != nil {
				// Print panic info before the renderer shuts down.
				fmt.Fprintf(os.Stderr, "pipeline panic: %v\n", r)
			}
			// The renderer stops when the pipeline finishes either way.
			_ = renderer.Stop()
		}()

		if err := eng.Run(ctx, settings, mode); err != nil {
			return errors.Join(domain.ErrPipelineFailed, err)
		}
		return nil
	})

	return g.Wait()
}

// watch re-runs generation whenever the staged public headers change.
// The session ends with the context.
func (a *App) watch(ctx context.Context, settings *domain.Settings) error {
	headerDir := settings.Layout().SourceDir(domain.DepLibui)
	if _, err := os.Stat(headerDir); err != nil {
		return zerr.With(domain.ErrSourcesMissing, "dir", headerDir)
	}

	if err := a.watcher.Start(ctx, headerDir); err != nil {
		return zerr.Wrap(err, "failed to start watcher")
	}
	defer func() {
		_ = a.watcher.Stop()
	}()

	// Initial pass so the output matches the tree before the first event.
	if err := a.generateOnce(ctx, settings); err != nil {
		a.logger.Error(err)
	}

	a.logger.Info(fmt.Sprintf("watching %s", headerDir))

	// The debouncer fires on its own goroutine; the mutex keeps
	// regenerations from overlapping when edits straddle a window.
	var running sync.Mutex
	debouncer := watcher.NewDebouncer(watcher.DefaultDebounceWindow, func(paths []string) {
		if ctx.Err() != nil {
			return
		}
		running.Lock()
		defer running.Unlock()

		a.logger.Info(fmt.Sprintf("%d header(s) changed, regenerating", len(paths)))
		if err := a.generateOnce(ctx, settings); err != nil {
			a.logger.Error(err)
		}
	})

	// The event stream closes when the context ends.
	for event := range a.watcher.Events() {
		debouncer.Add(event.Path)
	}

	return nil
}

// generateOnce runs a single generate pass. Watch passes render
// linearly: a TUI program per pass would churn the terminal.
func (a *App) generateOnce(ctx context.Context, settings *domain.Settings) error {
	return a.runPipeline(ctx, settings, pipeline.ModeGenerate, "linear")
}

// CleanOptions configuration for the Clean method.
type CleanOptions struct {
	ConfigPath string
	Overrides  domain.Overrides
	// Output also removes the generated binding and linkage files.
	Output bool
}

// Clean removes the staging tree and, optionally, the generated output.
func (a *App) Clean(_ context.Context, opts CleanOptions) error {
	settings, err := a.resolveSettings(opts.ConfigPath, opts.Overrides)
	if err != nil {
		return err
	}

	var errs error

	remove := func(path string, name string) {
		a.logger.Info(fmt.Sprintf("removing %s...", name))
		if err := os.RemoveAll(path); err != nil {
			errs = errors.Join(errs, zerr.Wrap(err, fmt.Sprintf("failed to remove %s", name)))
			return
		}
		a.logger.Info(fmt.Sprintf("removed %s", name))
	}

	remove(settings.StagingDir, "staging tree")

	if opts.Output {
		// Only the files generation produces; the output package may
		// hold handwritten code.
		for _, pattern := range []string{"ui_*.go", "link_*.go", "rsrc_windows_*.syso"} {
			matches, err := filepath.Glob(filepath.Join(settings.OutDir, pattern))
			if err != nil {
				continue
			}
			for _, match := range matches {
				remove(match, filepath.Base(match))
			}
		}
	}

	return errs
}

// setupOTel configures the OpenTelemetry SDK with the renderer bridge.
func setupOTel(bridge *telemetry.Bridge) *sdktrace.TracerProvider {
	// All started spans are reported to the renderer.
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSpanProcessor(bridge),
	)

	// Register it as the global provider.
	otel.SetTracerProvider(tp)
	return tp
}
