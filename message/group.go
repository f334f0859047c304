package message

import (
	"fmt"
	"sort"

	"github.com/nwralert/radiocache/geo"
)

// State is an EventMessageGroup's computed lifecycle state. States are
// queries over the group's messages and the clock, never stored.
type State string

const (
	Pending   State = "PENDING"
	Active    State = "ACTIVE"
	Cancelled State = "CANCELLED"
	Expired   State = "EXPIRED"
)

// EventMessageGroup is the ordered sequence of updates sharing one
// event_id, sorted by published-time ascending.
type EventMessageGroup struct {
	eventID  string
	messages []Message
}

// NewEventMessageGroup creates an empty group for the given event id. The
// zero-value group (no messages yet) is not usable until the first
// AddMessage call; every exported accessor besides AddMessage assumes at
// least one message is present.
func NewEventMessageGroup(eventID string) *EventMessageGroup {
	return &EventMessageGroup{eventID: eventID}
}

// EventID returns the group's identity.
func (g *EventMessageGroup) EventID() string { return g.eventID }

// Len reports how many distinct updates the group holds.
func (g *EventMessageGroup) Len() int { return len(g.messages) }

// AddMessage appends m, re-sorting the group by published-time ascending.
// A message identical to one already present (same event id, same action,
// same start/end, same published time) is a duplicate update and is
// silently ignored.
func (g *EventMessageGroup) AddMessage(m Message) error {
	if m.EventID() != g.eventID {
		return fmt.Errorf("message: event id %q does not match group %q", m.EventID(), g.eventID)
	}
	for _, existing := range g.messages {
		if isDuplicate(existing, m) {
			return nil
		}
	}
	g.messages = append(g.messages, m)
	sort.SliceStable(g.messages, func(i, j int) bool {
		return g.messages[i].Published() < g.messages[j].Published()
	})
	return nil
}

func isDuplicate(a, b Message) bool {
	return a.EventID() == b.EventID() &&
		a.Action() == b.Action() &&
		a.Start() == b.Start() &&
		a.End() == b.End() &&
		a.Published() == b.Published()
}

// Latest returns the most recently published message in the group,
// regardless of its action. Callers must only invoke this on a non-empty
// group.
func (g *EventMessageGroup) Latest() Message {
	return g.messages[len(g.messages)-1]
}

// latestNonCancelled scans backward from the most recent message, skipping
// CAN/UPG updates, and returns the first one found. If every message is
// CAN/UPG, it falls back to the literal latest (a group all of whose
// history is cancellations still needs a window to report).
func (g *EventMessageGroup) latestNonCancelled() Message {
	for i := len(g.messages) - 1; i >= 0; i-- {
		m := g.messages[i]
		if m.Action() != ActionCan && m.Action() != ActionUpg {
			return m
		}
	}
	return g.Latest()
}

// GetStartTimeSec returns the effective window start of the latest
// non-cancelled member.
func (g *EventMessageGroup) GetStartTimeSec() int64 {
	return g.latestNonCancelled().Start()
}

// GetEndTimeSec returns the effective window end of the latest
// non-cancelled member.
func (g *EventMessageGroup) GetEndTimeSec() int64 {
	return g.latestNonCancelled().End()
}

// State computes PENDING/ACTIVE/CANCELLED/EXPIRED for the group at now,
// with grace seconds of retention past end before EXPIRED.
func (g *EventMessageGroup) State(now int64, grace int64) State {
	latest := g.Latest()
	if latest.Action() == ActionCan || latest.Action() == ActionUpg {
		return Cancelled
	}
	start, end := g.GetStartTimeSec(), g.GetEndTimeSec()
	if now < start {
		return Pending
	}
	if now > end+grace {
		return Expired
	}
	return Active
}

// IsEffective reports whether the group is in force for the receiver:
// the latest non-cancelled member's window contains now, the literal
// latest message's action is not CAN/EXP, and the location intersects
// the message's coverage (polygon when present and considered, FIPS
// otherwise).
func (g *EventMessageGroup) IsEffective(loc geo.Location, fips6 string, considerPolygon bool, now int64) bool {
	start, end := g.GetStartTimeSec(), g.GetEndTimeSec()
	if now < start || now > end {
		return false
	}
	latest := g.Latest()
	if latest.Action() == ActionCan || latest.Action() == ActionExp {
		return false
	}
	return g.hereAt(loc, fips6, considerPolygon)
}

// AppliesToFIPS applies the same FIPS rule as IsEffective, with no time
// check.
func (g *EventMessageGroup) AppliesToFIPS(fips6 string) bool {
	return geo.AnyFIPSMatches(fips6, g.latestNonCancelled().FIPSList())
}

func (g *EventMessageGroup) hereAt(loc geo.Location, fips6 string, considerPolygon bool) bool {
	m := g.latestNonCancelled()
	if considerPolygon {
		if poly := m.Polygon(); len(poly) >= 3 {
			return geo.PointInPolygon(geo.Point{Lat: loc.Lat, Lon: loc.Lon}, poly)
		}
	}
	return geo.AnyFIPSMatches(fips6, m.FIPSList())
}
