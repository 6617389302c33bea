// Package gls provides goroutine-local task binding: a way for Yield,
// called from deep inside arbitrary user code with no generator handle
// threaded through the call chain, to find which task it is running for.
//
// Every task gets its own permanent goroutine (see internal/sched), so a
// producer's identity never changes for the lifetime of its goroutine;
// nesting via YieldFrom is realized as one goroutine blocking on another.
// The push/pop vocabulary reflects that each producer goroutine pushes
// exactly once, when its trampoline starts, and pops exactly once, when it
// terminates.
package gls

import (
	"reflect"
	"runtime"
	"strconv"
	"sync"
)

// Frame identifies the task bound to one goroutine: a type-erased pointer
// to it, and the reflect.Type of the element it produces, used to catch a
// mismatched Yield[T] call before it corrupts a mailbox.
type Frame struct {
	Task any
	Type reflect.Type
}

var frames sync.Map // goroutine id (uint64) -> Frame

// Push binds f to the calling goroutine. It must be called at most once
// per goroutine, from the goroutine it binds.
func Push(f Frame) {
	id := goroutineID()
	if _, loaded := frames.LoadOrStore(id, f); loaded {
		panic("yeet/internal/gls: Push called twice on the same goroutine")
	}
}

// Pop removes the binding for the calling goroutine and returns it. ok is
// false if the calling goroutine had no binding, which signals an
// unrecoverable invariant violation: the caller must abort rather than
// continue.
func Pop() (Frame, bool) {
	id := goroutineID()
	v, ok := frames.LoadAndDelete(id)
	if !ok {
		return Frame{}, false
	}
	return v.(Frame), true
}

// Top returns the binding for the calling goroutine without removing it.
// ok is false when called from a goroutine that is not currently running
// as a generator's producer: yielding outside a task is a programmer error.
func Top() (Frame, bool) {
	id := goroutineID()
	v, ok := frames.Load(id)
	if !ok {
		return Frame{}, false
	}
	return v.(Frame), true
}

// goroutineID parses the numeric goroutine id out of runtime.Stack's
// header line ("goroutine 123 [running]:"). This is the standard
// dependency-free technique for goroutine-scoped storage in Go, which
// exposes no public goroutine-local-storage API; it only ever reads the
// stable textual prefix of runtime.Stack's output, never runtime internals.
func goroutineID() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	b := buf[:n]

	const prefix = "goroutine "
	if len(b) < len(prefix) {
		panic("yeet/internal/gls: unexpected runtime.Stack output")
	}
	b = b[len(prefix):]

	i := 0
	for i < len(b) && b[i] != ' ' {
		i++
	}
	id, err := strconv.ParseUint(string(b[:i]), 10, 64)
	if err != nil {
		panic("yeet/internal/gls: could not parse goroutine id: " + err.Error())
	}
	return id
}
