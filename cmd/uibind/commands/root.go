// Package commands implements the CLI commands for the uibind binding generator.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/uibind/uibind/internal/app"
	"github.com/uibind/uibind/internal/build"
	"github.com/uibind/uibind/internal/core/domain"
	"github.com/uibind/uibind/internal/core/ports"
)

// CLI represents the command line interface for uibind.
type CLI struct {
	app     Application
	logger  ports.Logger
	rootCmd *cobra.Command
}

// Application represents the application logic interface.
type Application interface {
	Build(ctx context.Context, opts app.RunOptions) error
	Fetch(ctx context.Context, opts app.RunOptions) error
	Generate(ctx context.Context, opts app.RunOptions) error
	Clean(ctx context.Context, opts app.CleanOptions) error
}

// New creates a new CLI instance with the given app and logger.
func New(a Application, log ports.Logger) *CLI {
	rootCmd := &cobra.Command{
		Use:           "uibind",
		Short:         "Build the pinned libui-ng and generate its Go bindings",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	pf := rootCmd.PersistentFlags()
	pf.StringP("config", "c", "", "Path to the configuration file")
	pf.String("staging", "", "Staging directory for sources and build trees")
	pf.String("out", "", "Output directory for the generated package")
	pf.String("package", "", "Package name for the generated bindings")
	pf.String("os", "", "Target operating system: linux, darwin or windows")
	pf.String("arch", "", "Target architecture in GOARCH syntax")
	pf.String("profile", "", "Build profile: release or debug")
	pf.String("library", "", "Library kind: static or shared")
	pf.String("release", "", "libui-ng release to resolve pins for")
	pf.String("pins", "", "Path to a pin table override file")
	pf.String("staging-policy", "", "Staging policy: reuse or clean")
	pf.Bool("no-build", false, "Skip building and link against a system libui")
	pf.Bool("system-ninja", false, "Build with the ninja found on PATH")
	pf.Bool("toolchain", false, "Build by invoking the C toolchain directly")
	pf.Bool("msbuild", false, "Build with msbuild (windows targets only)")
	pf.Bool("no-manifest", false, "Skip the windows resource manifest")
	pf.StringP("output-mode", "o", "auto", "Output mode: auto, tui, or linear")
	pf.Bool("ci", false, "Use linear output mode (shorthand for --output-mode=linear)")
	pf.Bool("json-logs", false, "Emit logs as JSON")

	c := &CLI{
		app:     a,
		logger:  log,
		rootCmd: rootCmd,
	}

	rootCmd.PersistentPreRun = func(cmd *cobra.Command, _ []string) {
		if jsonLogs, _ := cmd.Flags().GetBool("json-logs"); jsonLogs && c.logger != nil {
			c.logger.SetJSON(true)
		}
	}

	rootCmd.AddCommand(c.newBuildCmd())
	rootCmd.AddCommand(c.newFetchCmd())
	rootCmd.AddCommand(c.newGenerateCmd())
	rootCmd.AddCommand(c.newCleanCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}

// runOptions collects the root flag values into RunOptions.
func runOptions(cmd *cobra.Command) app.RunOptions {
	configPath, _ := cmd.Flags().GetString("config")
	outputMode, _ := cmd.Flags().GetString("output-mode")

	// If --ci is set, override output-mode to "linear".
	if ci, _ := cmd.Flags().GetBool("ci"); ci {
		outputMode = "linear"
	}

	return app.RunOptions{
		ConfigPath: configPath,
		OutputMode: outputMode,
		Overrides:  overrides(cmd),
	}
}

// overrides maps the root flags onto settings overrides. Feature
// toggles carry over only when the flag was set, so an untouched flag
// leaves the configuration file in charge.
func overrides(cmd *cobra.Command) domain.Overrides {
	flags := cmd.Flags()

	var o domain.Overrides
	o.OS, _ = flags.GetString("os")
	o.Arch, _ = flags.GetString("arch")
	o.Profile, _ = flags.GetString("profile")
	o.Library, _ = flags.GetString("library")
	o.StagingDir, _ = flags.GetString("staging")
	o.StagingPolicy, _ = flags.GetString("staging-policy")
	o.OutDir, _ = flags.GetString("out")
	o.Package, _ = flags.GetString("package")
	o.Release, _ = flags.GetString("release")
	o.PinsPath, _ = flags.GetString("pins")

	if flags.Changed("no-build") {
		noBuild, _ := flags.GetBool("no-build")
		enabled := !noBuild
		o.Build = &enabled
	}
	if flags.Changed("system-ninja") {
		v, _ := flags.GetBool("system-ninja")
		o.SystemNinja = &v
	}
	if flags.Changed("toolchain") {
		v, _ := flags.GetBool("toolchain")
		o.Toolchain = &v
	}
	if flags.Changed("msbuild") {
		v, _ := flags.GetBool("msbuild")
		o.MSBuild = &v
	}
	if flags.Changed("no-manifest") {
		noManifest, _ := flags.GetBool("no-manifest")
		enabled := !noManifest
		o.Manifest = &enabled
	}

	return o
}
