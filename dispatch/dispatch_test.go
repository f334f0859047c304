package dispatch

import "testing"

type recordingObserver struct {
	priority int
	seen     *[]string
	name     string
}

func (r recordingObserver) Priority() int { return r.priority }
func (r recordingObserver) Handle(ev Event) {
	tag := "?"
	switch ev.(type) {
	case NewMessageEvent:
		tag = "new_message"
	case TickEvent:
		tag = "tick"
	case NewScoreEvent:
		tag = "new_score"
	case UpdateScoreEvent:
		tag = "update_score"
	case ShutdownEvent:
		tag = "shutdown"
	}
	*r.seen = append(*r.seen, r.name+":"+tag)
}

func TestDispatcher_PriorityOrdersDeliveryWithinOneEvent(t *testing.T) {
	var seen []string
	d := NewDispatcher()
	// The monitor registers at a very low priority so it runs after the
	// score watcher and snapshots the post-update state.
	d.Register(recordingObserver{priority: 0, seen: &seen, name: "watcher"})
	d.Register(recordingObserver{priority: -1000, seen: &seen, name: "monitor"})

	d.Emit(NewScoreEvent{Score: 10})

	want := []string{"watcher:new_score", "monitor:new_score"}
	if !equalSlices(seen, want) {
		t.Fatalf("got %v, want %v", seen, want)
	}
}

func TestDispatcher_HandlerEmittedEventsDrainBeforeReturn(t *testing.T) {
	var seen []string
	d := NewDispatcher()

	// A handler that, upon receiving new_message, emits new_score then
	// update_score itself — both must be fully delivered before Emit
	// returns to the caller (the source's loop).
	chain := chainObserver{d: d, seen: &seen}
	d.Register(chain)

	d.Emit(NewMessageEvent{})

	want := []string{"chain:new_message", "chain:new_score", "chain:update_score"}
	if !equalSlices(seen, want) {
		t.Fatalf("got %v, want %v", seen, want)
	}
}

type chainObserver struct {
	d    *Dispatcher
	seen *[]string
}

func (c chainObserver) Priority() int { return 0 }
func (c chainObserver) Handle(ev Event) {
	switch ev.(type) {
	case NewMessageEvent:
		*c.seen = append(*c.seen, "chain:new_message")
		c.d.Emit(NewScoreEvent{})
		c.d.Emit(UpdateScoreEvent{})
	case NewScoreEvent:
		*c.seen = append(*c.seen, "chain:new_score")
	case UpdateScoreEvent:
		*c.seen = append(*c.seen, "chain:update_score")
	}
}

func TestDispatcher_ShutdownDrainsThenRejectsFurtherEmits(t *testing.T) {
	var seen []string
	d := NewDispatcher()
	d.Register(recordingObserver{priority: 0, seen: &seen, name: "obs"})

	d.Emit(ShutdownEvent{})
	if !d.ShuttingDown() {
		t.Fatal("expected ShuttingDown() == true after ShutdownEvent")
	}

	d.Emit(NewMessageEvent{})
	for _, s := range seen {
		if s == "obs:new_message" {
			t.Fatal("event delivered after shutdown, want rejected")
		}
	}
}

func equalSlices(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
