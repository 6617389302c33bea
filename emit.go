package yeet

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/mbrla0/yeet/internal/gls"
)

// Yield suspends the calling producer and hands v to whichever consumer
// called Next. It must be called from inside a generator's entry function
// (or something that function calls, however deeply nested: the whole
// call chain suspends, not just one frame), with T matching the element
// type the owning Generator was created with.
//
// Yield returns the Send the consumer replied with: Continue means resume
// normally; Cancel is never returned: instead Yield raises the
// cancellation sentinel itself, unwinding the producer's stack via
// ordinary deferred functions, exactly like any other panic.
func Yield[T any](v T) Send {
	frame, ok := gls.Top()
	if !ok {
		panic(fmt.Errorf("%w", ErrYieldOutsideTask))
	}

	t, ok := frame.Task.(*task[T])
	if !ok {
		panic(fmt.Errorf("%w: generator expects %s, got %s", ErrWrongYieldType, frame.Type, reflect.TypeFor[T]()))
	}

	send := t.rendezvous.Exit(yieldMsg[T]{kind: kindValue, value: v})
	t.yields++
	t.opts.metrics.Counter("yields_total").Add(1)

	if send == Cancel {
		panic(cancelSentinel{})
	}
	return send
}

// YieldFrom drains src, calling Yield for each value it produces. It is
// exactly equivalent to iterating src to exhaustion and re-yielding every
// element: sub-generators impose no extra reordering on the outer
// consumer. If src faults, the fault propagates to this producer's own
// consumer unchanged, by panicking with the same payload.
func YieldFrom[T any](src *Generator[T]) {
	for {
		v, ok, err := src.Next()
		if err != nil {
			var fe *FaultError
			if errors.As(err, &fe) {
				panic(fe.Payload)
			}
			panic(err)
		}
		if !ok {
			return
		}
		Yield[T](v)
	}
}

