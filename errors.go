package yeet

import "errors"

// Namespace prefixes every sentinel error string emitted by this module.
const Namespace = "yeet"

var (
	// ErrYieldOutsideTask is the underlying cause of a fault raised when
	// Yield or YieldFrom is called from a goroutine that is not currently
	// running as a generator's producer.
	ErrYieldOutsideTask = errors.New(Namespace + ": yield called outside a running generator")

	// ErrWrongYieldType is the underlying cause of a fault raised when a
	// Yield[T] call's T does not match the Generator's element type.
	ErrWrongYieldType = errors.New(Namespace + ": yield type does not match generator's element type")

	// ErrClosed is reserved for callers building their own wrappers around
	// Generator that want to distinguish "closed" from "exhausted"; the
	// Generator type itself treats both as plain end-of-sequence.
	ErrClosed = errors.New(Namespace + ": generator is closed")

	// ErrTaskStackCorrupted is logged, never returned, immediately before
	// the process aborts because the goroutine-local frame binding could
	// not be restored. See internal/gls.
	ErrTaskStackCorrupted = errors.New(Namespace + ": task stack invariant violated")
)
