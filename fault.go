package yeet

import (
	"fmt"
	"log/slog"
	"os"
)

// cancelSentinel is the private payload of the synthetic panic Yield
// raises inside a producer on receipt of Cancel. The runtime recognizes it
// by type identity and never surfaces it as a caller-visible error.
type cancelSentinel struct{}

func (cancelSentinel) Error() string { return Namespace + ": generator cancelled" }

// FaultError wraps a producer's panic payload for delivery to the
// consumer. It carries enough correlation metadata (generator name, yields
// emitted so far) to identify which generator in a tree faulted.
type FaultError struct {
	// GeneratorName is the value passed to WithName, or "" if unset.
	GeneratorName string
	// YieldCount is the number of values the generator had already
	// produced before it faulted.
	YieldCount int64
	// Payload is the original value passed to panic() inside the producer.
	Payload any
}

func (e *FaultError) Error() string {
	name := e.GeneratorName
	if name == "" {
		name = "<unnamed>"
	}
	return fmt.Sprintf("%s: generator %q faulted after %d yield(s): %v", Namespace, name, e.YieldCount, e.Payload)
}

// Unwrap exposes the payload for errors.As/errors.Is when it is itself an
// error (e.g. one produced by ErrYieldOutsideTask or ErrWrongYieldType).
func (e *FaultError) Unwrap() error {
	if err, ok := e.Payload.(error); ok {
		return err
	}
	return nil
}

// abortProcess is called when a runtime invariant breaks in a way that
// cannot be attributed to user code: the goroutine-local frame stack
// could not be popped, or a panic escaped the trampoline's outer fault
// boundary. There is no valid return address above these call sites, so
// the only safe action is to terminate.
//
// panicInstead lets the test suite observe this path without killing the
// test binary; production code always aborts.
func abortProcess(name string, reason error, panicInstead bool) {
	if panicInstead {
		panic(reason)
	}
	slog.Error("yeet: unrecoverable generator runtime invariant violated",
		"generator", name, "reason", reason)
	os.Exit(2)
}
