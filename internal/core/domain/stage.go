package domain

// Stage is one step of the linear binding pipeline.
type Stage string

const (
	// StageSelect validates configuration and picks the build strategy.
	StageSelect Stage = "select"
	// StageFetch materializes pinned dependency sources.
	StageFetch Stage = "fetch"
	// StageBuild compiles the native library.
	StageBuild Stage = "build"
	// StageExtract scans the public headers and generates declarations.
	StageExtract Stage = "extract"
	// StageLink emits the cgo linkage directives.
	StageLink Stage = "link"
)

// Stages returns all pipeline stages in execution order.
func Stages() []Stage {
	return []Stage{StageSelect, StageFetch, StageBuild, StageExtract, StageLink}
}

func (s Stage) String() string {
	return string(s)
}

// Title returns the display name of the stage, used for span names and
// renderer output.
func (s Stage) Title() string {
	switch s {
	case StageSelect:
		return "select strategy"
	case StageFetch:
		return "fetch sources"
	case StageBuild:
		return "build library"
	case StageExtract:
		return "extract declarations"
	case StageLink:
		return "write linkage"
	default:
		return string(s)
	}
}
