package yeet

import "sync"

// lifecycleCoordinator encapsulates a Generator's shutdown sequence: a
// loop of repeated cancellation attempts until the producer acknowledges
// termination. It doesn't own the rendezvous, only orchestrates it.
//
// close is safe for concurrent calls; the sequence executes exactly once.
type lifecycleCoordinator[T any] struct {
	task *task[T]

	once sync.Once
	err  error
}

// close repeatedly enters the task with Cancel until it confirms
// termination:
//   - StopIteration: the producer had already finished; done.
//   - Panic(cancelSentinel): cancellation acknowledged, stack unwound
//     cleanly; done.
//   - Panic(anything else): a genuine user fault surfaced during
//     unwinding; returned to the caller.
//   - Value(_): the producer yielded from a destructor during unwinding;
//     discarded, loop continues.
//
// The loop terminates because the trampoline's termination sink
// eventually answers StopIteration even if the producer ignores Cancel.
func (lc *lifecycleCoordinator[T]) close() error {
	lc.once.Do(func() {
		for {
			y := lc.task.enter(Cancel)
			switch y.kind {
			case kindStop:
				return
			case kindPanic:
				if _, cancelled := y.payload.(cancelSentinel); cancelled {
					lc.task.opts.metrics.Counter("cancellations_total").Add(1)
					return
				}
				lc.err = newFaultError(lc.task, y.payload)
				lc.task.opts.metrics.Counter("faults_total").Add(1)
				return
			case kindValue:
				continue
			}
		}
	})
	return lc.err
}

func newFaultError[T any](t *task[T], payload any) *FaultError {
	return &FaultError{
		GeneratorName: t.opts.name,
		YieldCount:    t.yields,
		Payload:       payload,
	}
}
