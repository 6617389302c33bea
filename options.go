package yeet

import "github.com/mbrla0/yeet/metrics"

// Option configures a Generator at construction time via Make.
type Option func(*config)

// WithName attaches a debug label to a generator. The name is surfaced in
// fault messages and in the diagnostic logged before an unrecoverable abort.
func WithName(name string) Option {
	return func(c *config) { c.name = name }
}

// WithStackBudget sets the advisory stack-size accounting value (default
// 2 MiB). This never allocates or caps memory; it only feeds metrics and
// is rejected (panics at construction) if zero.
func WithStackBudget(bytes uint64) Option {
	return func(c *config) {
		if bytes == 0 {
			panic("yeet: WithStackBudget requires bytes > 0")
		}
		c.stackBudget = bytes
	}
}

// WithMetrics wires a metrics.Provider that records generator lifecycle
// instrumentation. The default is metrics.NewNoopProvider().
func WithMetrics(p metrics.Provider) Option {
	return func(c *config) {
		if p == nil {
			panic("yeet: WithMetrics requires a non-nil Provider")
		}
		c.metrics = p
	}
}

// withPanicOnTrampolineEscape is unexported: it exists only so the test
// suite can observe a trampoline-escape invariant violation instead of the
// process aborting. Production callers always get panicOnTrampolineEscape
// == true.
func withPanicOnTrampolineEscape(v bool) Option {
	return func(c *config) { c.panicOnTrampolineEscape = v }
}

func buildConfig(opts []Option) config {
	c := defaultConfig()
	for _, opt := range opts {
		if opt == nil {
			panic("yeet: nil Option")
		}
		opt(&c)
	}
	return c
}
