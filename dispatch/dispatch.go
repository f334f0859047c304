// Package dispatch implements a single-threaded cooperative event
// dispatcher: a typed event enumeration and a priority-ordered observer
// registry draining one in-process queue. Nothing here crosses a
// goroutine boundary.
package dispatch

import (
	"sort"
	"sync"

	"github.com/nwralert/radiocache/message"
)

// Event is a closed set of tagged variants; observers match on the
// concrete type rather than a handler name.
type Event interface {
	eventTag()
}

// NewMessageEvent carries a freshly decoded/parsed message into the cache.
type NewMessageEvent struct{ Msg message.Message }

// TickEvent prompts re-evaluation at the dispatcher's current clock
// reading; it carries no payload because the clock closure, not the
// event, is the source of truth for "now".
type TickEvent struct{}

// NewScoreEvent is fired when MessageCache's re-evaluation changes the
// published score. It always precedes the paired UpdateScoreEvent for the
// same re-evaluation.
type NewScoreEvent struct {
	Score int
	Msg   message.Message
}

// UpdateScoreEvent is fired immediately after NewScoreEvent for the same
// re-evaluation, once the cache's new active-here/active-elsewhere/score
// snapshot is settled.
type UpdateScoreEvent struct{ Msg message.Message }

// ShutdownEvent drains the queue and then ends the loop.
type ShutdownEvent struct{}

func (NewMessageEvent) eventTag()  {}
func (TickEvent) eventTag()        {}
func (NewScoreEvent) eventTag()    {}
func (UpdateScoreEvent) eventTag() {}
func (ShutdownEvent) eventTag()    {}

// Observer reacts to dispatched events. Priority orders delivery within a
// single event: higher values are delivered first. A monitor that must
// see the cache's post-update state registers at a low (even negative)
// priority so it runs after the score watchers.
type Observer interface {
	Priority() int
	Handle(ev Event)
}

// Dispatcher is the single logical executor: one queue, drained to
// completion before control returns to the caller that triggered Emit.
// mu only guards against accidental concurrent use from outside the
// single-executor model.
type Dispatcher struct {
	mu        sync.Mutex
	observers []Observer
	queue     []Event
	draining  bool
	shutdown  bool
}

// NewDispatcher returns an empty, ready-to-use dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{}
}

// Register adds an observer. Delivery order is by Priority(); observers
// of equal priority are delivered in registration order.
func (d *Dispatcher) Register(o Observer) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.observers = append(d.observers, o)
}

// Emit enqueues ev. If the dispatcher is not already draining its queue
// (i.e. this is not a re-entrant call from inside a handler), Emit drains
// synchronously until the queue is empty before returning — events
// emitted from a handler within the same tick are therefore delivered
// before the next source-generated event, since the source's loop only
// calls Emit again after the previous call fully drained.
func (d *Dispatcher) Emit(ev Event) {
	d.mu.Lock()
	if d.shutdown {
		d.mu.Unlock()
		return
	}
	d.queue = append(d.queue, ev)
	if d.draining {
		d.mu.Unlock()
		return
	}
	d.draining = true
	d.mu.Unlock()

	d.drain()

	d.mu.Lock()
	d.draining = false
	d.mu.Unlock()
}

func (d *Dispatcher) drain() {
	for {
		d.mu.Lock()
		if len(d.queue) == 0 {
			d.mu.Unlock()
			return
		}
		ev := d.queue[0]
		d.queue = d.queue[1:]
		observers := d.sortedObservers()
		d.mu.Unlock()

		for _, o := range observers {
			o.Handle(ev)
		}
		if _, ok := ev.(ShutdownEvent); ok {
			d.mu.Lock()
			d.shutdown = true
			d.mu.Unlock()
		}
	}
}

func (d *Dispatcher) sortedObservers() []Observer {
	out := make([]Observer, len(d.observers))
	copy(out, d.observers)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Priority() > out[j].Priority()
	})
	return out
}

// ShuttingDown reports whether ShutdownEvent has already been processed;
// once true, the drain loop still delivers events already in the queue,
// and Emit rejects every new event.
func (d *Dispatcher) ShuttingDown() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.shutdown
}
