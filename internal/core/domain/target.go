// Package domain contains the core types for the binding pipeline.
package domain

import "runtime"

// OS identifies a target operating system.
type OS string

// Supported operating systems.
const (
	OSLinux   OS = "linux"
	OSDarwin  OS = "darwin"
	OSWindows OS = "windows"
)

// Target identifies the platform bindings are produced for.
type Target struct {
	OS   OS
	Arch string
}

// CurrentTarget returns the host platform.
func CurrentTarget() Target {
	return Target{
		OS:   OS(runtime.GOOS),
		Arch: runtime.GOARCH,
	}
}

// Supported reports whether the target OS is one the library builds on.
func (t Target) Supported() bool {
	switch t.OS {
	case OSLinux, OSDarwin, OSWindows:
		return true
	default:
		return false
	}
}

// String returns the target in GOOS/GOARCH form.
func (t Target) String() string {
	return string(t.OS) + "/" + t.Arch
}

// PlatformHeader returns the OS-specific public header that accompanies ui.h.
func (t Target) PlatformHeader() string {
	switch t.OS {
	case OSDarwin:
		return "ui_darwin.h"
	case OSWindows:
		return "ui_windows.h"
	default:
		return "ui_unix.h"
	}
}

// ExeSuffix returns the executable suffix for the target OS.
func (t Target) ExeSuffix() string {
	if t.OS == OSWindows {
		return ".exe"
	}
	return ""
}
