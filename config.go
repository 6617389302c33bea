package yeet

import "github.com/mbrla0/yeet/metrics"

// config holds per-Generator configuration assembled by Option values.
type config struct {
	// name is an optional debug label surfaced in fault messages and logged
	// before an abort. Empty by default.
	name string

	// stackBudget is an advisory accounting value. Go goroutine stacks grow
	// and shrink automatically; this value is never used to allocate
	// memory, only reported via metrics and checked for sanity.
	// Default: 2 MiB.
	stackBudget uint64

	// metrics receives lifecycle instrumentation. Default: metrics.NewNoopProvider().
	metrics metrics.Provider

	// panicOnTrampolineEscape controls whether an invariant violation that
	// escapes the inner fault boundary calls os.Exit. Default: true.
	// Exposed only so the test suite can observe the condition instead of
	// terminating the test binary.
	panicOnTrampolineEscape bool
}

const defaultStackBudget uint64 = 2 << 20 // 2 MiB

// defaultConfig centralizes default values for config.
func defaultConfig() config {
	return config{
		stackBudget:             defaultStackBudget,
		metrics:                 metrics.NewNoopProvider(),
		panicOnTrampolineEscape: true,
	}
}
