// Package build holds build-time information.
package build

// Version is the application version.
// It defaults to "dev" and can be overwritten by linker flags.
var Version = "dev"

// Commit is the git commit the binary was built from.
// It is overwritten by linker flags on release builds.
var Commit = "none"

// Date is the build timestamp.
// It is overwritten by linker flags on release builds.
var Date = "unknown"
