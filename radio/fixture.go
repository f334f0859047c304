package radio

import (
	"github.com/nwralert/radiocache/dispatch"
	"github.com/nwralert/radiocache/message"
)

// ScriptedAlert pairs a message with the simulated-clock second at which
// the source makes it available.
type ScriptedAlert struct {
	Msg   message.Message
	DueAt int64
}

// FixtureSource drives a dispatcher from a pre-scripted, time-ordered list
// of alerts instead of a real AFSK/network feed. Each GenerateEvents call
// emits every alert now due, then a tick, advancing its internal clock by
// TickStep (default 15s), and emits shutdown once the clock passes the
// last alert's end time plus Grace (default 300s).
type FixtureSource struct {
	alerts []ScriptedAlert
	idx    int

	clockSec int64
	TickStep int64
	Grace    int64

	dispatcher *dispatch.Dispatcher
}

// NewFixtureSource returns a FixtureSource whose clock starts at the first
// alert's DueAt (or 0 if alerts is empty).
func NewFixtureSource(alerts []ScriptedAlert, d *dispatch.Dispatcher) *FixtureSource {
	var start int64
	if len(alerts) > 0 {
		start = alerts[0].DueAt
	}
	return &FixtureSource{
		alerts:     alerts,
		clockSec:   start,
		TickStep:   15,
		Grace:      message.DefaultGrace,
		dispatcher: d,
	}
}

// Now returns the source's simulated clock in seconds since epoch. This
// is the function a MessageCache built over this source should use as its
// clock closure, so the cache and the source share one notion of time.
func (s *FixtureSource) Now() int64 { return s.clockSec }

// GenerateEvents emits new_message for every alert now due, then a tick,
// advances the clock by TickStep, and emits shutdown once the clock has
// moved Grace seconds past the last alert's end time.
func (s *FixtureSource) GenerateEvents() {
	for s.idx < len(s.alerts) && s.alerts[s.idx].DueAt <= s.clockSec {
		s.dispatcher.Emit(dispatch.NewMessageEvent{Msg: s.alerts[s.idx].Msg})
		s.idx++
	}
	s.dispatcher.Emit(dispatch.TickEvent{})
	s.clockSec += s.TickStep

	if len(s.alerts) == 0 {
		return
	}
	last := s.alerts[len(s.alerts)-1]
	if s.clockSec > last.Msg.End()+s.Grace {
		s.dispatcher.Emit(dispatch.ShutdownEvent{})
	}
}

// Run drives GenerateEvents until the dispatcher has processed shutdown.
func (s *FixtureSource) Run() {
	for !s.dispatcher.ShuttingDown() {
		s.GenerateEvents()
	}
}
