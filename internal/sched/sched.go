// Package sched hides a context-switch mechanism behind a
// prepare/switch-shaped API so the task core above it never has to know how
// control transfer actually happens.
//
// Go gives every goroutine its own growable, independently scheduled stack;
// a goroutine already is a stackful execution context, so there is no
// per-ISA register snapshot to take. The switch itself is a rendezvous on
// two single-slot, unbuffered channels: sending on one and receiving on the
// other is the two-way handoff, and because both operations block, exactly
// one side is ever runnable at a time.
package sched

// Rendezvous is the two-channel handoff between a consumer goroutine and
// the dedicated producer goroutine backing one task. Send and Recv values
// are generic over the payload type in each direction: ToProducer carries
// the consumer's signal and ToConsumer carries the producer's yield.
type Rendezvous[Send, Recv any] struct {
	toProducer chan Send
	toConsumer chan Recv
}

// New constructs a Rendezvous with single-slot, unbuffered channels.
func New[Send, Recv any]() *Rendezvous[Send, Recv] {
	return &Rendezvous[Send, Recv]{
		toProducer: make(chan Send),
		toConsumer: make(chan Recv),
	}
}

// Prepare spawns the dedicated goroutine that will run entry, pointing a
// fresh stack at a trampoline. entry is expected to eventually call Exit
// at least once; Prepare itself never blocks.
func Prepare(entry func()) {
	go entry()
}

// Enter is the consumer-side half of switch: it blocks until the producer
// calls Exit, then hands send back to the producer and returns what the
// producer sent. Enter must only be called by the goroutine that owns this
// Rendezvous's consumer side.
//
// Enter receives before it sends, the mirror image of Exit, so the two
// always alternate instead of both blocking on a send nobody is ready to
// receive yet.
func (r *Rendezvous[Send, Recv]) Enter(send Send) Recv {
	y := <-r.toConsumer
	r.toProducer <- send
	return y
}

// Exit is the producer-side half of switch: it hands y to the consumer and
// blocks until the consumer calls Enter again, returning what the consumer
// sent. Exit must only be called from the dedicated goroutine running this
// Rendezvous's producer side.
func (r *Rendezvous[Send, Recv]) Exit(y Recv) Send {
	r.toConsumer <- y
	return <-r.toProducer
}
