package yeet

import (
	"fmt"
	"reflect"

	"github.com/mbrla0/yeet/internal/gls"
	"github.com/mbrla0/yeet/internal/sched"
	"github.com/mbrla0/yeet/metrics"
)

// taskOpts is the subset of config a task needs for its own lifetime. It
// is copied out of config at construction time (rather than holding a
// pointer to the caller's config) so a task's behavior can never change
// after Make returns.
type taskOpts struct {
	name          string
	panicOnEscape bool
	metrics       metrics.Provider
}

// task is the runtime record for one suspended-or-running generator. A
// dedicated goroutine backs it for its entire lifetime; a sched.Rendezvous
// stands in for the two-way control transfer between that goroutine and
// whichever goroutine calls Next. Its stack is an ordinary Go goroutine
// stack, not a manual allocation; the advisory stack budget is kept in the
// Generator's config, not here.
type task[T any] struct {
	rendezvous *sched.Rendezvous[Send, yieldMsg[T]]
	fn         func() // the user's entry function; consumed once, by the trampoline
	started    bool
	yields     int64 // yields emitted so far; only the producer goroutine writes this
	opts       taskOpts
	elemType   reflect.Type
}

// newTask allocates a task. It never runs fn.
func newTask[T any](fn func(), opts taskOpts) *task[T] {
	return &task[T]{
		rendezvous: sched.New[Send, yieldMsg[T]](),
		fn:         fn,
		opts:       opts,
		elemType:   reflect.TypeFor[T](),
	}
}

// enter is called only by the consumer. On first call it starts the
// trampoline on a dedicated goroutine; every call then performs the
// two-way switch and returns what the producer sent back.
func (t *task[T]) enter(send Send) yieldMsg[T] {
	if !t.started {
		t.started = true
		sched.Prepare(t.trampoline)
	}
	return t.rendezvous.Enter(send)
}

// trampoline is the producer's root function. It runs for the entire
// lifetime of the dedicated goroutine backing this task: it binds the
// goroutine's identity in internal/gls, runs the user function under an
// inner fault boundary, and then answers every further resume with
// StopIteration forever.
func (t *task[T]) trampoline() {
	gls.Push(gls.Frame{Task: t, Type: t.elemType})
	defer func() {
		if _, ok := gls.Pop(); !ok {
			abortProcess(t.opts.name, ErrTaskStackCorrupted, !t.opts.panicOnEscape)
		}
	}()

	defer func() {
		// Outer fault boundary: anything reaching here is not a user
		// fault or a cancellation (both are caught and converted to a
		// Yield inside runUserFunc): it is a runtime invariant
		// violation. There is no valid return address above this frame.
		if r := recover(); r != nil {
			abortProcess(t.opts.name, panicPayloadError(r), !t.opts.panicOnEscape)
		}
	}()

	t.runUserFunc()

	for {
		t.rendezvous.Exit(yieldMsg[T]{kind: kindStop})
	}
}

// runUserFunc invokes the user's entry function under an inner fault
// boundary: any panic, including the cancellation sentinel, is converted
// into a single panic-kind yield and handed to the consumer. Whether the
// function returns normally or faults, control falls back to
// trampoline's termination loop afterward.
func (t *task[T]) runUserFunc() {
	defer func() {
		if r := recover(); r != nil {
			t.rendezvous.Exit(yieldMsg[T]{kind: kindPanic, payload: r})
		}
	}()
	t.fn()
}

func panicPayloadError(r any) error {
	if err, ok := r.(error); ok {
		return err
	}
	return fmt.Errorf("unrecovered panic: %v", r)
}
