package config

import "github.com/uibind/uibind/internal/core/domain"

// ConfigFile represents the structure of the uibind.yaml configuration file.
type ConfigFile struct {
	Version  string      `yaml:"version"`
	Target   TargetDTO   `yaml:"target"`
	Profile  string      `yaml:"profile"`
	Library  string      `yaml:"library"`
	Staging  StagingDTO  `yaml:"staging"`
	Output   OutputDTO   `yaml:"output"`
	Release  string      `yaml:"release"`
	Pins     string      `yaml:"pins"`
	Features FeaturesDTO `yaml:"features"`
}

// TargetDTO selects the platform bindings are produced for.
type TargetDTO struct {
	OS   string `yaml:"os"`
	Arch string `yaml:"arch"`
}

// StagingDTO configures the staging tree.
type StagingDTO struct {
	Dir    string `yaml:"dir"`
	Policy string `yaml:"policy"`
}

// OutputDTO configures the generated package.
type OutputDTO struct {
	Dir     string `yaml:"dir"`
	Package string `yaml:"package"`
}

// FeaturesDTO holds the build-mode switches. Fields are pointers so an
// absent key leaves the default untouched.
type FeaturesDTO struct {
	Build       *bool `yaml:"build"`
	FetchNinja  *bool `yaml:"fetchNinja"`
	SystemNinja *bool `yaml:"systemNinja"`
	Toolchain   *bool `yaml:"toolchain"`
	MSBuild     *bool `yaml:"msbuild"`
	Manifest    *bool `yaml:"manifest"`
}

// Overrides converts the file values into the override layer applied on top
// of the defaults. Absent keys map to zero values, which Apply skips.
func (f *ConfigFile) Overrides() domain.Overrides {
	return domain.Overrides{
		OS:            f.Target.OS,
		Arch:          f.Target.Arch,
		Profile:       f.Profile,
		Library:       f.Library,
		StagingDir:    f.Staging.Dir,
		StagingPolicy: f.Staging.Policy,
		OutDir:        f.Output.Dir,
		Package:       f.Output.Package,
		Release:       f.Release,
		PinsPath:      f.Pins,
		Build:         f.Features.Build,
		FetchNinja:    f.Features.FetchNinja,
		SystemNinja:   f.Features.SystemNinja,
		Toolchain:     f.Features.Toolchain,
		MSBuild:       f.Features.MSBuild,
		Manifest:      f.Features.Manifest,
	}
}
