package domain

// Strategy is the selected build backend. Exactly one strategy results from
// any valid feature/target combination.
type Strategy string

const (
	// StrategyNinjaFetched builds with meson and a ninja bootstrapped from
	// pinned sources.
	StrategyNinjaFetched Strategy = "ninja-fetched"
	// StrategyNinjaSystem builds with meson and the ninja found on PATH.
	StrategyNinjaSystem Strategy = "ninja-system"
	// StrategyToolchain compiles the sources directly with the platform C
	// toolchain.
	StrategyToolchain Strategy = "toolchain"
	// StrategyMSBuild builds through the Visual Studio toolchain.
	StrategyMSBuild Strategy = "msbuild"
	// StrategySystemLibrary skips fetching and building entirely and links
	// against a system-installed copy of the library.
	StrategySystemLibrary Strategy = "system-library"
)

// SelectStrategy maps a feature set and target onto the single strategy that
// serves it, or a configuration error. It never returns both and never
// performs I/O, so callers can rely on it failing before any side effects.
func SelectStrategy(f Features, t Target) (Strategy, error) {
	if err := f.Validate(t); err != nil {
		return "", err
	}

	switch {
	case !f.Build:
		return StrategySystemLibrary, nil
	case f.MSBuild:
		return StrategyMSBuild, nil
	case f.Toolchain:
		return StrategyToolchain, nil
	case f.SystemNinja:
		return StrategyNinjaSystem, nil
	default:
		return StrategyNinjaFetched, nil
	}
}

// BuildsFromSource reports whether the strategy compiles the library.
func (s Strategy) BuildsFromSource() bool {
	return s != StrategySystemLibrary
}

// Dependencies returns the pinned dependencies the strategy needs fetched,
// in fetch order.
func (s Strategy) Dependencies() []string {
	switch s {
	case StrategyNinjaFetched:
		return []string{DepLibui, DepMeson, DepNinja}
	case StrategyNinjaSystem, StrategyMSBuild:
		return []string{DepLibui, DepMeson}
	case StrategyToolchain:
		return []string{DepLibui}
	default:
		return nil
	}
}

// Tools returns the executables the strategy expects on PATH. The invoker
// checks these eagerly before running any build command.
func (s Strategy) Tools() []string {
	switch s {
	case StrategyNinjaFetched:
		return []string{"python3"}
	case StrategyNinjaSystem:
		return []string{"python3", "ninja"}
	case StrategyToolchain:
		return []string{"cc", "ar"}
	case StrategyMSBuild:
		return []string{"python3", "msbuild"}
	default:
		return nil
	}
}
