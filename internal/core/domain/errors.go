package domain

import "go.trai.ch/zerr"

var (
	// ErrUnsupportedTarget is returned when the target OS is not one the library supports.
	ErrUnsupportedTarget = zerr.New("unsupported target operating system")

	// ErrConflictingBuildModes is returned when more than one build mode is enabled.
	ErrConflictingBuildModes = zerr.New("conflicting build modes, enable at most one of fetch-ninja, system-ninja, toolchain and msbuild")

	// ErrNoBuildMode is returned when building from source without any build mode enabled.
	ErrNoBuildMode = zerr.New("no build mode selected")

	// ErrBuildModeWithoutBuild is returned when a build mode is enabled while building from source is off.
	ErrBuildModeWithoutBuild = zerr.New("build mode selected but building from source is disabled")

	// ErrMSBuildRequiresWindows is returned when the msbuild mode is enabled off Windows.
	ErrMSBuildRequiresWindows = zerr.New("msbuild mode requires a windows target")

	// ErrToolchainUnsupportedOnWindows is returned when the direct toolchain mode is enabled on Windows.
	ErrToolchainUnsupportedOnWindows = zerr.New("toolchain mode is not supported on windows, use msbuild")

	// ErrInvalidProfile is returned when a profile is neither release nor debug.
	ErrInvalidProfile = zerr.New("invalid profile, expected 'release' or 'debug'")

	// ErrInvalidLibraryKind is returned when a library kind is neither static nor shared.
	ErrInvalidLibraryKind = zerr.New("invalid library kind, expected 'static' or 'shared'")

	// ErrInvalidStagingPolicy is returned when a staging policy is neither reuse nor clean.
	ErrInvalidStagingPolicy = zerr.New("invalid staging policy, expected 'reuse' or 'clean'")

	// ErrInvalidPackageName is returned when the generated package name is not a valid Go identifier.
	ErrInvalidPackageName = zerr.New("invalid package name")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrPinsReadFailed is returned when the pin table cannot be read.
	ErrPinsReadFailed = zerr.New("failed to read pin table")

	// ErrPinsParseFailed is returned when the pin table cannot be parsed.
	ErrPinsParseFailed = zerr.New("failed to parse pin table")

	// ErrReleaseNotPinned is returned when the pin table has no row for the requested release.
	ErrReleaseNotPinned = zerr.New("release not present in pin table")

	// ErrDependencyNotPinned is returned when a required dependency has no pin for the release.
	ErrDependencyNotPinned = zerr.New("dependency not present in pin table")

	// ErrPinMissingRepo is returned when a pin has no repository URL.
	ErrPinMissingRepo = zerr.New("pin is missing a repository URL")

	// ErrPinInvalidRevision is returned when a pinned revision is not a full 40-hex commit.
	ErrPinInvalidRevision = zerr.New("pinned revision is not a 40-character hex commit")

	// ErrToolNotFound is returned when a required executable is not on PATH.
	ErrToolNotFound = zerr.New("required tool not found on PATH")

	// ErrStagingCreateFailed is returned when the staging directory cannot be created.
	ErrStagingCreateFailed = zerr.New("failed to create staging directory")

	// ErrStagingCleanFailed is returned when removing the staging directory fails.
	ErrStagingCleanFailed = zerr.New("failed to clean staging directory")

	// ErrCloneFailed is returned when cloning a pinned repository fails.
	ErrCloneFailed = zerr.New("failed to clone repository")

	// ErrFetchFailed is returned when fetching from a pinned repository fails.
	ErrFetchFailed = zerr.New("failed to fetch repository")

	// ErrCheckoutFailed is returned when checking out a pinned revision fails.
	ErrCheckoutFailed = zerr.New("failed to check out pinned revision")

	// ErrSubmoduleUpdateFailed is returned when updating submodules fails.
	ErrSubmoduleUpdateFailed = zerr.New("failed to update submodules")

	// ErrRevisionMismatch is returned when a checkout does not land on the pinned revision.
	ErrRevisionMismatch = zerr.New("checkout is not at the pinned revision")

	// ErrBootstrapFailed is returned when bootstrapping the fetched ninja fails.
	ErrBootstrapFailed = zerr.New("failed to bootstrap ninja")

	// ErrMesonSetupFailed is returned when meson setup fails.
	ErrMesonSetupFailed = zerr.New("meson setup failed")

	// ErrNinjaBuildFailed is returned when the ninja build fails.
	ErrNinjaBuildFailed = zerr.New("ninja build failed")

	// ErrCompileFailed is returned when a direct toolchain compilation fails.
	ErrCompileFailed = zerr.New("compilation failed")

	// ErrArchiveFailed is returned when creating the static archive fails.
	ErrArchiveFailed = zerr.New("failed to create static archive")

	// ErrSharedLinkFailed is returned when linking the shared library fails.
	ErrSharedLinkFailed = zerr.New("failed to link shared library")

	// ErrMSBuildFailed is returned when the msbuild invocation fails.
	ErrMSBuildFailed = zerr.New("msbuild failed")

	// ErrPkgConfigFailed is returned when querying pkg-config for compile flags fails.
	ErrPkgConfigFailed = zerr.New("pkg-config query failed")

	// ErrArtifactMissing is returned when the build exits cleanly but no library was produced.
	ErrArtifactMissing = zerr.New("build completed but produced no library artifact")

	// ErrHeaderNotFound is returned when a public header is missing from the checkout.
	ErrHeaderNotFound = zerr.New("public header not found")

	// ErrHeaderParseFailed is returned when a public header cannot be parsed.
	ErrHeaderParseFailed = zerr.New("failed to parse header")

	// ErrFormatFailed is returned when formatting generated source fails.
	ErrFormatFailed = zerr.New("failed to format generated source")

	// ErrBindingsWriteFailed is returned when the generated bindings cannot be written.
	ErrBindingsWriteFailed = zerr.New("failed to write generated bindings")

	// ErrLinkWriteFailed is returned when the linkage file cannot be written.
	ErrLinkWriteFailed = zerr.New("failed to write linkage directives")

	// ErrManifestCompileFailed is returned when compiling the windows resource manifest fails.
	ErrManifestCompileFailed = zerr.New("failed to compile resource manifest")

	// ErrManifestReadFailed is returned when the staging manifest cannot be read.
	ErrManifestReadFailed = zerr.New("failed to read staging manifest")

	// ErrManifestParseFailed is returned when the staging manifest cannot be parsed.
	ErrManifestParseFailed = zerr.New("failed to parse staging manifest")

	// ErrManifestWriteFailed is returned when the staging manifest cannot be written.
	ErrManifestWriteFailed = zerr.New("failed to write staging manifest")

	// ErrFileOpenFailed is returned when a file cannot be opened.
	ErrFileOpenFailed = zerr.New("failed to open file")

	// ErrFileHashFailed is returned when hashing a file fails.
	ErrFileHashFailed = zerr.New("failed to hash file content")

	// ErrPathStatFailed is returned when stating a path fails.
	ErrPathStatFailed = zerr.New("failed to stat path")

	// ErrSourcesMissing is returned when generation is requested but no checkout is staged.
	ErrSourcesMissing = zerr.New("library sources not staged, run fetch first")

	// ErrStageFailed is returned when a pipeline stage fails.
	ErrStageFailed = zerr.New("stage failed")

	// ErrPipelineFailed is returned when a pipeline run fails.
	ErrPipelineFailed = zerr.New("pipeline failed")
)
