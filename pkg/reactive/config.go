package reactive

// Config is the tuning surface named in spec §6: cycle-guard thresholds
// plus the dev/release gate. It is not a CLI surface — hosts construct one
// and pass it to NewRuntime or Configure.
//
// Grounded on the teacher's DebugConfig/StormBudgetConfig
// (pkg/vango/config.go, pkg/vango/storm_budget.go), trimmed of the
// SSR-only prefetch-mode fields and renamed to this spec's vocabulary.
type Config struct {
	// DevMode gates every dev-only behavior: the cycle guard, duplicate-key
	// warnings, and descriptive (vs. stable-short-code) error messages.
	// A zero-value Config (DevMode: false) costs nothing at runtime beyond
	// a single bool check.
	DevMode bool

	// Mode selects what the cycle guard does when a threshold trips.
	Mode StrictMode

	// MaxEffectRunsPerFlush bounds how many effect bodies may run within a
	// single flush before the guard trips. Zero disables the check.
	MaxEffectRunsPerFlush int

	// MaxFlushCyclesPerMicrotask bounds how many normal/transition rounds a
	// single flush() call may take before the guard trips — a flush that
	// keeps re-dirtying itself is a runaway amplification, not legitimate
	// settling. Zero disables the check.
	MaxFlushCyclesPerMicrotask int

	// MaxRootReentrantDepth bounds how deeply push_root may recurse
	// re-entrantly (e.g. a mount callback that itself mounts a root whose
	// mount callback does the same). Zero disables the check.
	MaxRootReentrantDepth int

	// WindowSize and HighUsageRatio mirror the teacher's sliding-window
	// budget shape for hosts that want to fold cycle-guard trips into their
	// own external rate telemetry; the fixed per-flush counters above are
	// what the guard itself enforces.
	WindowSize     int
	HighUsageRatio float64
}

// strictMode resolves the effective StrictMode: DevMode false always
// behaves as StrictOff regardless of Mode.
func (c Config) strictMode() StrictMode {
	if !c.DevMode {
		return StrictOff
	}
	return c.Mode
}

// DefaultConfig returns the zero-tuning, release-mode configuration: no
// cycle guard, no dev warnings.
func DefaultConfig() Config {
	return Config{}
}

// DevConfig returns a reasonable development configuration: a permissive
// (warn, not panic) cycle guard with generous thresholds.
func DevConfig() Config {
	return Config{
		DevMode:                    true,
		Mode:                       StrictWarn,
		MaxEffectRunsPerFlush:      10_000,
		MaxFlushCyclesPerMicrotask: 1_000,
		MaxRootReentrantDepth:      1_000,
	}
}
