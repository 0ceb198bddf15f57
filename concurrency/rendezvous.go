package concurrency

import "sync/atomic"

// Rendezvous states. Each side arrives exactly once; the packed bits record
// who has arrived so far.
const (
	rendezvousInitial  int32 = 0
	rendezvousConsumer int32 = 1
	rendezvousProducer int32 = 2
)

// Rendezvous is a wait-free two-party synchronization cell. Producer and
// consumer each arrive exactly once, in either order; the arrival that
// completes the pair is told so, and takes responsibility for the combined
// action.
//
// The zero value is an empty rendezvous.
type Rendezvous struct {
	state atomic.Int32
}

// Produce records the producer's arrival. Returns true iff the consumer
// had already arrived.
func (r *Rendezvous) Produce() bool {
	switch r.state.Or(rendezvousProducer) {
	case rendezvousInitial:
		return false
	case rendezvousConsumer:
		return true
	default:
		panic("concurrency: producer arrived twice at rendezvous")
	}
}

// Consume records the consumer's arrival. Returns true iff the producer
// had already arrived.
func (r *Rendezvous) Consume() bool {
	switch r.state.Or(rendezvousConsumer) {
	case rendezvousInitial:
		return false
	case rendezvousProducer:
		return true
	default:
		panic("concurrency: consumer arrived twice at rendezvous")
	}
}

// Produced reports whether only the producer has arrived so far.
func (r *Rendezvous) Produced() bool {
	return r.state.Load() == rendezvousProducer
}
