// Package yeet provides a stackful generator runtime: it turns an ordinary
// Go function into a resumable, value-producing task driven one step at a
// time by a consumer.
//
// A Generator[T] wraps a user entry function that calls Yield[T] to hand
// values back to whoever is pulling with Next. Entry functions run on a
// dedicated goroutine, so they may call arbitrary nested functions,
// including functions that themselves drive sub-generators with YieldFrom:
// the entire call stack suspends at a yield point, not just one frame.
//
// # Constructors
//
//   - Make[T](entry func()) *Generator[T]: wraps entry, which must call
//     Yield[T] with the same T to produce values. The Generator is not
//     started until the first call to Next.
//
// # Lifecycle
//
// Pulling values:
//
//	g := yeet.Make[int](func() {
//	    for i := 0; i < 3; i++ {
//	        yeet.Yield(i)
//	    }
//	})
//	defer g.Close()
//	for {
//	    v, ok, err := g.Next()
//	    if err != nil {
//	        // producer faulted; err wraps the original payload
//	    }
//	    if !ok {
//	        break // exhausted
//	    }
//	    _ = v
//	}
//
// Close forces producer teardown if the generator was ever entered,
// running every deferred cleanup on the producer's stack exactly once
// before returning. An un-entered generator is released directly.
//
// # Defaults
//
// Unless overridden via Option values passed to Make, a Generator uses:
//   - stack budget: 2 MiB (advisory accounting only)
//   - metrics: a no-op provider
//   - panic-on-trampoline-escape: enabled
//
// # Observability
//
// WithMetrics wires a metrics.Provider (Counter/UpDownCounter/Histogram)
// that records generator creation, active count, yields, faults, and
// cancellations, a gauge of total stack budget committed across active
// generators, plus a histogram of per-Next wall-clock time.
package yeet
