package yeet

import (
	"sync"
	"time"
)

// Generator is a handle to one stackful, resumable task. The zero value is
// not usable; construct one with Make. A Generator is safe to call from a
// single goroutine at a time (Next and Close may race each other safely,
// but two concurrent Next calls on the same Generator are a programmer
// error, exactly like calling Next and Close concurrently from the same
// consumer would be pointless).
type Generator[T any] struct {
	mu    sync.Mutex
	task  *task[T]
	cfg   config
	lc    *lifecycleCoordinator[T]
	state State

	closed     bool
	terminated bool // true once a terminal state has been reported at least once
}

// Make builds a Generator around entry without starting it. entry must
// call Yield[T] to produce values of the same T the Generator is
// parameterized over; calling Yield with any other type faults the
// generator with ErrWrongYieldType.
func Make[T any](entry func(), opts ...Option) *Generator[T] {
	cfg := buildConfig(opts)

	t := newTask[T](entry, taskOpts{
		name:          cfg.name,
		panicOnEscape: cfg.panicOnTrampolineEscape,
		metrics:       cfg.metrics,
	})

	cfg.metrics.Counter("generators_created_total").Add(1)
	cfg.metrics.UpDownCounter("generators_active").Add(1)
	cfg.metrics.UpDownCounter("stack_budget_bytes").Add(int64(cfg.stackBudget))

	return &Generator[T]{
		task:  t,
		cfg:   cfg,
		lc:    &lifecycleCoordinator[T]{task: t},
		state: StateFresh,
	}
}

// Next resumes the producer and returns the value it yields.
//
// ok is false exactly when the generator is exhausted: value is then the
// zero value of T and err is nil unless this is the first call to observe
// exhaustion after a fault (in which case err carries that fault). Once a
// terminal state (Exhausted, Faulted, Cancelled) has been reported, every
// subsequent call returns (zero, false, nil) forever, regardless of what
// the underlying task does; this is the sticky behavior a consumer's
// range-style loop depends on.
func (g *Generator[T]) Next() (value T, ok bool, err error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.terminated || g.closed {
		var zero T
		return zero, false, nil
	}

	start := time.Now()
	g.state = StateRunning
	y := g.task.enter(Continue)
	g.cfg.metrics.Histogram("next_duration_seconds").Record(time.Since(start).Seconds())

	switch y.kind {
	case kindValue:
		g.state = StateYielded
		return y.value, true, nil
	case kindStop:
		g.state = StateExhausted
		g.terminated = true
		var zero T
		return zero, false, nil
	case kindPanic:
		g.terminated = true
		var zero T
		if _, cancelled := y.payload.(cancelSentinel); cancelled {
			g.state = StateCancelled
			return zero, false, nil
		}
		g.state = StateFaulted
		g.cfg.metrics.Counter("faults_total").Add(1)
		return zero, false, newFaultError(g.task, y.payload)
	default:
		var zero T
		return zero, false, nil
	}
}

// Close unwinds the producer if it was ever started, running every
// deferred cleanup on its stack exactly once. It is idempotent: the
// second and later calls are no-ops that return the same error the first
// call observed, if any. Close never blocks on a producer that never ran.
func (g *Generator[T]) Close() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.closed {
		return g.lc.err
	}
	g.closed = true
	g.cfg.metrics.UpDownCounter("generators_active").Add(-1)
	g.cfg.metrics.UpDownCounter("stack_budget_bytes").Add(-int64(g.cfg.stackBudget))

	if !g.task.started {
		return nil
	}
	err := g.lc.close()
	if !g.terminated {
		g.state = StateCancelled
		g.terminated = true
	}
	return err
}

// State reports the generator's current position in its lifecycle.
func (g *Generator[T]) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}
