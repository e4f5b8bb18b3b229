//go:build mage

// Repo tasks. Run `mage -l` for the list.
package main

import (
	"fmt"
	"time"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Default is the target run when mage is invoked without arguments.
var Default = Build

// Build compiles the uibind binary with version metadata baked in.
func Build() error {
	version, err := sh.Output("git", "describe", "--tags", "--always", "--dirty")
	if err != nil {
		version = "dev"
	}
	commit, err := sh.Output("git", "rev-parse", "--short", "HEAD")
	if err != nil {
		commit = "none"
	}
	date := time.Now().UTC().Format(time.RFC3339)

	ldflags := fmt.Sprintf(
		"-X github.com/uibind/uibind/internal/build.Version=%s "+
			"-X github.com/uibind/uibind/internal/build.Commit=%s "+
			"-X github.com/uibind/uibind/internal/build.Date=%s",
		version, commit, date,
	)

	return sh.RunV("go", "build", "-ldflags", ldflags, "-o", "uibind", "./cmd/uibind")
}

// Test runs the unit tests.
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// E2E runs the end-to-end scripts, building the binary first.
func E2E() error {
	return sh.RunV("go", "test", "-tags", "e2e", "./e2e")
}

// Generate regenerates the port mocks.
func Generate() error {
	return sh.RunV("go", "generate", "./...")
}

// Lint runs golangci-lint over the module.
func Lint() error {
	return sh.RunV("golangci-lint", "run")
}

// All runs the full chain: generate, lint, test, build.
func All() {
	mg.SerialDeps(Generate, Lint, Test, Build)
}
